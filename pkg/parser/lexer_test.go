package parser_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/treepath/treepath/pkg/parser"
)

type lexerTestCase struct {
	name      string
	input     string
	expected  []parser.Token
	expectErr bool
}

func runLexerTests(t *testing.T, tests []lexerTestCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := parser.Tokenize(tt.input)
			if tt.expectErr {
				if err == nil {
					t.Fatalf("Tokenize(%q): expected error, got %v", tt.input, tokens)
				}
				return
			}
			if err != nil {
				t.Fatalf("Tokenize(%q): %v", tt.input, err)
			}
			if diff := cmp.Diff(tt.expected, tokens); diff != "" {
				t.Errorf("Tokenize(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestLexerSteps(t *testing.T) {
	runLexerTests(t, []lexerTestCase{
		{
			name:  "single slash",
			input: "/",
			expected: []parser.Token{
				{Type: parser.TokenSlash, Value: "/", Position: 0},
			},
		},
		{
			name:  "double slash is one token",
			input: "//",
			expected: []parser.Token{
				{Type: parser.TokenDoubleSlash, Value: "//", Position: 0},
			},
		},
		{
			name:  "simple path",
			input: "/div/span",
			expected: []parser.Token{
				{Type: parser.TokenSlash, Value: "/", Position: 0},
				{Type: parser.TokenName, Value: "div", Position: 1},
				{Type: parser.TokenSlash, Value: "/", Position: 4},
				{Type: parser.TokenName, Value: "span", Position: 5},
			},
		},
		{
			name:  "wildcard descent",
			input: "//*",
			expected: []parser.Token{
				{Type: parser.TokenDoubleSlash, Value: "//", Position: 0},
				{Type: parser.TokenStar, Value: "*", Position: 2},
			},
		},
		{
			name:  "text with parens",
			input: "text()",
			expected: []parser.Token{
				{Type: parser.TokenName, Value: "text", Position: 0},
				{Type: parser.TokenParenOpen, Value: "(", Position: 4},
				{Type: parser.TokenParenClose, Value: ")", Position: 5},
			},
		},
	})
}

func TestLexerOperators(t *testing.T) {
	runLexerTests(t, []lexerTestCase{
		{
			name:  "multi character comparisons are single tokens",
			input: ">= <= != =",
			expected: []parser.Token{
				{Type: parser.TokenGreaterEqual, Value: ">=", Position: 0},
				{Type: parser.TokenLessEqual, Value: "<=", Position: 3},
				{Type: parser.TokenNotEqual, Value: "!=", Position: 6},
				{Type: parser.TokenEqual, Value: "=", Position: 9},
			},
		},
		{
			name:  "keywords",
			input: "and or not",
			expected: []parser.Token{
				{Type: parser.TokenAnd, Value: "and", Position: 0},
				{Type: parser.TokenOr, Value: "or", Position: 4},
				{Type: parser.TokenNot, Value: "not", Position: 7},
			},
		},
		{
			name:  "hyphenated function names stay whole",
			input: "starts-with ends-with contains",
			expected: []parser.Token{
				{Type: parser.TokenName, Value: "starts-with", Position: 0},
				{Type: parser.TokenName, Value: "ends-with", Position: 12},
				{Type: parser.TokenName, Value: "contains", Position: 22},
			},
		},
		{
			name:      "bare bang is invalid",
			input:     "!",
			expectErr: true,
		},
	})
}

func TestLexerOperands(t *testing.T) {
	runLexerTests(t, []lexerTestCase{
		{
			name:  "attribute reference",
			input: "@class",
			expected: []parser.Token{
				{Type: parser.TokenAttribute, Value: "class", Position: 1},
			},
		},
		{
			name:  "single quoted string",
			input: "'hello'",
			expected: []parser.Token{
				{Type: parser.TokenString, Value: "hello", Position: 1},
			},
		},
		{
			name:  "double quoted string",
			input: `"hello"`,
			expected: []parser.Token{
				{Type: parser.TokenString, Value: "hello", Position: 1},
			},
		},
		{
			name:  "empty string",
			input: "''",
			expected: []parser.Token{
				{Type: parser.TokenString, Value: "", Position: 1},
			},
		},
		{
			name:  "integer",
			input: "42",
			expected: []parser.Token{
				{Type: parser.TokenNumber, Value: "42", Position: 0},
			},
		},
		{
			name:      "unterminated string",
			input:     "'abc",
			expectErr: true,
		},
	})
}

func TestLexerPredicate(t *testing.T) {
	runLexerTests(t, []lexerTestCase{
		{
			name:  "full predicate",
			input: "[@class='x']",
			expected: []parser.Token{
				{Type: parser.TokenBracketOpen, Value: "[", Position: 0},
				{Type: parser.TokenAttribute, Value: "class", Position: 2},
				{Type: parser.TokenEqual, Value: "=", Position: 7},
				{Type: parser.TokenString, Value: "x", Position: 9},
				{Type: parser.TokenBracketClose, Value: "]", Position: 11},
			},
		},
		{
			name:  "function call with comma",
			input: "contains(@a,'b')",
			expected: []parser.Token{
				{Type: parser.TokenName, Value: "contains", Position: 0},
				{Type: parser.TokenParenOpen, Value: "(", Position: 8},
				{Type: parser.TokenAttribute, Value: "a", Position: 10},
				{Type: parser.TokenComma, Value: ",", Position: 11},
				{Type: parser.TokenString, Value: "b", Position: 13},
				{Type: parser.TokenParenClose, Value: ")", Position: 15},
			},
		},
		{
			name:  "whitespace tolerated anywhere",
			input: " [ @a  >  5 ] ",
			expected: []parser.Token{
				{Type: parser.TokenBracketOpen, Value: "[", Position: 1},
				{Type: parser.TokenAttribute, Value: "a", Position: 4},
				{Type: parser.TokenGreater, Value: ">", Position: 7},
				{Type: parser.TokenNumber, Value: "5", Position: 10},
				{Type: parser.TokenBracketClose, Value: "]", Position: 12},
			},
		},
	})
}
