package parser

import (
	"strconv"

	"github.com/treepath/treepath/pkg/types"
)

// compilePredicate compiles the inclusive '[' ... ']' token slice of one
// bracketed predicate into a single predicate expression.
//
// Compilation runs in two passes: a shunting-yard conversion of the infix
// token order to postfix, then a stack reduction of the postfix stream into
// an expression tree.
func compilePredicate(tokens []Token) (types.Expr, error) {
	postfix, err := infixToPostfix(tokens)
	if err != nil {
		return nil, err
	}
	return postfixToTree(postfix)
}

// matchingOpener maps a closing bracket token type to its opener.
func matchingOpener(tt TokenType) TokenType {
	switch tt {
	case TokenParenClose:
		return TokenParenOpen
	case TokenBraceClose:
		return TokenBraceOpen
	case TokenBracketClose:
		return TokenBracketOpen
	default:
		return TokenError
	}
}

// infixToPostfix reorders a predicate token slice into postfix (reverse
// Polish) order using an explicit operator stack. Brackets structure the
// conversion but are not emitted; commas are ignored.
//
// There is no final stack drain: the predicate slice is inclusive of its
// surrounding brackets, so the closing ']' pops every pending operator
// down to the matching '['.
func infixToPostfix(tokens []Token) ([]Token, error) {
	var out []Token
	var stack []Token

	for _, t := range tokens {
		switch {
		case t.Type == TokenComma:
			// Argument separators carry no meaning in postfix order.

		case isOpener(t):
			stack = append(stack, t)

		case isCloser(t):
			// Pop operators to the output until the matching opener surfaces.
			for len(stack) > 0 && !isOpener(stack[len(stack)-1]) {
				out = append(out, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
			if len(stack) == 0 {
				return nil, types.NewError(types.ErrUnmatchedBracket,
					"Unmatched "+t.Type.String(), t.Position).WithToken(t.Value)
			}
			opener := stack[len(stack)-1]
			if opener.Type != matchingOpener(t.Type) {
				return nil, types.NewError(types.ErrUnmatchedBracket,
					"Mismatched "+opener.Type.String()+" closed by "+t.Type.String(),
					t.Position).WithToken(t.Value)
			}
			// Discard the opener; brackets themselves emit no operator.
			stack = stack[:len(stack)-1]
			// A function name sitting under its argument parentheses is
			// complete once they close.
			if len(stack) > 0 && stack[len(stack)-1].Type == TokenName {
				out = append(out, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}

		case isOperand(t):
			out = append(out, t)

		case isPrefixWord(t):
			// Function names and 'not' apply to what follows; nothing
			// already on the stack can pop for them.
			stack = append(stack, t)

		default:
			// Operator: pop while the stack top is a binary operator that
			// binds at least as tightly (all operators are left-associative).
			// Prefix words stay put; their operands are still pending.
			for len(stack) > 0 && !isOpener(stack[len(stack)-1]) && !isPrefixWord(stack[len(stack)-1]) &&
				(precedence(stack[len(stack)-1].Type) > precedence(t.Type) ||
					(precedence(stack[len(stack)-1].Type) == precedence(t.Type) && isLeftAssociative(t.Type))) {
				out = append(out, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, t)
		}
	}

	return out, nil
}

// postfixToTree reduces a postfix token stream into a single predicate
// expression using an operand stack. Binary operators pop two subtrees:
// the first pop is the right-hand infix operand, the second the left-hand
// one. This ordering is load-bearing; comparison evaluation distinguishes
// which side held an attribute reference.
func postfixToTree(postfix []Token) (types.Expr, error) {
	var stack []types.Expr

	pop := func(t Token) (types.Expr, error) {
		if len(stack) == 0 {
			return nil, types.NewError(types.ErrMissingOperand,
				"Operator "+t.Type.String()+" is missing an operand",
				t.Position).WithToken(t.Value)
		}
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return e, nil
	}

	pop2 := func(t Token) (right, left types.Expr, err error) {
		if right, err = pop(t); err != nil {
			return nil, nil, err
		}
		if left, err = pop(t); err != nil {
			return nil, nil, err
		}
		return right, left, nil
	}

	for _, t := range postfix {
		switch t.Type {
		case TokenAttribute:
			stack = append(stack, &types.AttributeRef{Name: t.Value})

		case TokenString:
			stack = append(stack, &types.StringLit{Value: t.Value})

		case TokenNumber:
			n, err := strconv.Atoi(t.Value)
			if err != nil {
				return nil, types.NewError(types.ErrInvalidCharacter,
					"Invalid number literal", t.Position).WithToken(t.Value).WithCause(err)
			}
			stack = append(stack, &types.NumberLit{Value: n})

		case TokenGreater, TokenGreaterEqual, TokenLess, TokenLessEqual, TokenEqual, TokenNotEqual:
			right, left, err := pop2(t)
			if err != nil {
				return nil, err
			}
			stack = append(stack, &types.Comparison{Op: compareOp(t.Type), Right: right, Left: left})

		case TokenAnd, TokenOr:
			right, left, err := pop2(t)
			if err != nil {
				return nil, err
			}
			op := types.LogicalAnd
			if t.Type == TokenOr {
				op = types.LogicalOr
			}
			stack = append(stack, &types.Logical{Op: op, Right: right, Left: left})

		case TokenNot:
			arg, err := pop(t)
			if err != nil {
				return nil, err
			}
			stack = append(stack, &types.Logical{Op: types.LogicalNot, Left: arg})

		case TokenName:
			switch t.Value {
			case "contains", "starts-with", "ends-with":
				right, left, err := pop2(t)
				if err != nil {
					return nil, err
				}
				stack = append(stack, &types.TextPredicate{Op: textOp(t.Value), Right: right, Left: left})
			case "length":
				arg, err := pop(t)
				if err != nil {
					return nil, err
				}
				stack = append(stack, &types.Length{Arg: arg})
			default:
				// Unknown names that survived the postfix pass carry no
				// meaning; skip them like the path compiler skips unknown
				// tokens.
			}

		default:
			// Reserved operators ('+', '-', multiply/divide) are not wired
			// into the grammar yet; skip.
		}
	}

	switch len(stack) {
	case 1:
		return stack[0], nil
	case 0:
		return nil, types.NewError(types.ErrMissingOperand, "Empty predicate", -1)
	default:
		return nil, types.NewError(types.ErrMultipleRoots,
			"Predicate reduces to more than one expression", -1)
	}
}

// compareOp maps a comparison token type to its AST operator.
func compareOp(tt TokenType) types.CompareOp {
	switch tt {
	case TokenGreater:
		return types.CompareGt
	case TokenGreaterEqual:
		return types.CompareGe
	case TokenLess:
		return types.CompareLt
	case TokenLessEqual:
		return types.CompareLe
	case TokenNotEqual:
		return types.CompareNe
	default:
		return types.CompareEq
	}
}

// textOp maps a text function name to its AST operator.
func textOp(name string) types.TextOp {
	switch name {
	case "starts-with":
		return types.TextStartsWith
	case "ends-with":
		return types.TextEndsWith
	default:
		return types.TextContains
	}
}
