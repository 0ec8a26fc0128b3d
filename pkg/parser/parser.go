// Package parser compiles query strings into step pipelines.
//
// The package consists of three components:
//   - Lexer: tokenizes the query string
//   - Predicate compiler: shunting-yard conversion of bracketed predicates
//     into expression trees
//   - Path compiler: a single left-to-right scan turning the token stream
//     into a flat pipeline of step expressions
//
// # Example
//
//	query, err := parser.Compile("//div[@class='x']/text()")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	steps := query.Steps()
package parser

import (
	"github.com/treepath/treepath/pkg/types"
)

// Parse compiles a query string and returns the compiled Query.
// If compilation fails, it returns a coded error with position information.
func Parse(query string) (*types.Query, error) {
	tokens, err := Tokenize(query)
	if err != nil {
		return nil, err
	}
	steps, err := compilePath(tokens)
	if err != nil {
		return nil, err
	}
	return types.NewQuery(steps, query), nil
}

// Compile is an alias for Parse, provided for API consistency.
func Compile(query string) (*types.Query, error) {
	return Parse(query)
}

// compilePath scans the full token stream once, left to right, emitting the
// flat expression pipeline. Bracketed predicates are handed to the predicate
// compiler and spliced in as a single expression. Tokens that fit no rule
// are skipped; skipping is a defensive default, not an error.
func compilePath(tokens []Token) ([]types.Expr, error) {
	var steps []types.Expr
	terminal := -1 // index into steps of the terminal step, if any

	appendStep := func(e types.Expr, t Token) error {
		if terminal >= 0 {
			return types.NewError(types.ErrStepAfterTerminal,
				"No step may follow a text() or attribute extraction step",
				t.Position).WithToken(t.Value)
		}
		steps = append(steps, e)
		if types.IsTerminal(e) {
			terminal = len(steps) - 1
		}
		return nil
	}

	i := 0
	for i < len(tokens) {
		t := tokens[i]
		switch {
		case t.Type == TokenBracketOpen:
			// Locate the predicate's closing bracket and hand the inclusive
			// slice to the predicate compiler.
			j := i + 1
			for j < len(tokens) && tokens[j].Type != TokenBracketClose {
				j++
			}
			if j == len(tokens) {
				return nil, types.NewError(types.ErrUnmatchedBracket,
					"Predicate bracket is never closed", t.Position).WithToken(t.Value)
			}
			pred, err := compilePredicate(tokens[i : j+1])
			if err != nil {
				return nil, err
			}
			if err := appendStep(pred, t); err != nil {
				return nil, err
			}
			i = j + 1

		case t.Type == TokenSlash:
			if err := appendStep(&types.Root{}, t); err != nil {
				return nil, err
			}
			i++

		case t.Type == TokenDoubleSlash:
			if err := appendStep(&types.DescendantsOrSelf{}, t); err != nil {
				return nil, err
			}
			i++

		case t.Type == TokenStar:
			if err := appendStep(&types.Wildcard{}, t); err != nil {
				return nil, err
			}
			i++

		case t.Type == TokenAttribute:
			if err := appendStep(&types.AttributeValue{Name: t.Value}, t); err != nil {
				return nil, err
			}
			i++

		case t.Type == TokenName && t.Value == "text":
			if err := appendStep(&types.Text{}, t); err != nil {
				return nil, err
			}
			i++
			// Consume the optional '()' pair.
			if i+1 < len(tokens) && tokens[i].Type == TokenParenOpen && tokens[i+1].Type == TokenParenClose {
				i += 2
			}

		case isNameLike(t) && isAlpha(t.Value):
			// Keywords double as tag names outside brackets; any token that
			// is purely letters selects by tag.
			if err := appendStep(&types.Tag{Name: t.Value}, t); err != nil {
				return nil, err
			}
			i++

		default:
			i++
		}
	}

	return steps, nil
}

// isNameLike reports whether a token is a name or a keyword that could
// serve as a tag name in path position.
func isNameLike(t Token) bool {
	switch t.Type {
	case TokenName, TokenAnd, TokenOr, TokenNot:
		return true
	default:
		return false
	}
}

// isAlpha reports whether s is a non-empty run of ASCII letters.
// Only such names are tag steps; names with digits or hyphens are not.
func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isNameStart(r) {
			return false
		}
	}
	return true
}
