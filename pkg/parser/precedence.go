package parser

// Operator precedence for the shunting-yard pass. Higher binds tighter.
//
// The table anticipates arithmetic operators the grammar does not yet wire
// in ('+', '-', '*', '/'); they hold their classic slots so adding them later
// does not reshuffle existing tiers. Equality and inequality share the
// relational tier: 'a = b and c = d' must reduce to a conjunction of two
// comparisons, which requires the comparisons to bind tighter than 'and'.
// Names absent from the table share the highest (default) tier.
const defaultPrecedence = 8

// precedence returns the binding strength of an operator token.
func precedence(tt TokenType) int {
	switch tt {
	case TokenOr:
		return 2
	case TokenAnd:
		return 3
	case TokenEqual, TokenNotEqual, TokenGreater, TokenGreaterEqual, TokenLess, TokenLessEqual:
		return 4
	case TokenPlus, TokenMinus:
		return 5
	case TokenStar, TokenSlash:
		// Reserved for multiply/divide.
		return 6
	case TokenNot:
		return 7
	default:
		return defaultPrecedence
	}
}

// isLeftAssociative reports whether an operator associates to the left.
// Every current operator does; the hook exists so right-associative
// operators can be added without touching the shunting-yard loop.
func isLeftAssociative(TokenType) bool {
	return true
}

// isOperand reports whether a token is a predicate operand rather than
// an operator.
func isOperand(t Token) bool {
	switch t.Type {
	case TokenAttribute, TokenString, TokenNumber:
		return true
	default:
		return false
	}
}

// isPrefixWord reports whether a token is pushed onto the operator stack
// directly, bypassing the precedence loop. Function names (contains,
// starts-with, ends-with, length) and the prefix 'not' apply to operands
// that follow them, so no operator to their left may pop them; they are
// popped by their closing bracket or by the predicate's final ']'.
func isPrefixWord(t Token) bool {
	switch t.Type {
	case TokenName, TokenNot:
		return true
	default:
		return false
	}
}

// isOpener reports whether a token opens a bracket group.
func isOpener(t Token) bool {
	switch t.Type {
	case TokenParenOpen, TokenBraceOpen, TokenBracketOpen:
		return true
	default:
		return false
	}
}

// isCloser reports whether a token closes a bracket group.
func isCloser(t Token) bool {
	switch t.Type {
	case TokenParenClose, TokenBraceClose, TokenBracketClose:
		return true
	default:
		return false
	}
}
