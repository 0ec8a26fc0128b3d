package types

// Expr is the closed set of compiled expression variants.
//
// A compiled query is a flat []Expr pipeline; predicate variants additionally
// form small trees through their operand fields. The interface is sealed so
// the evaluator can type-switch exhaustively instead of inspecting kind
// strings at runtime.
//
// Expressions are immutable after compilation and carry no evaluation state,
// so a single compiled query may be evaluated concurrently from any number
// of goroutines.
type Expr interface {
	isExpr()
}

// Operand variants. These appear only inside predicates.

// AttributeRef refers to an attribute on a candidate node, written @name.
type AttributeRef struct {
	// Name is the attribute key, without the leading '@'.
	Name string
}

// StringLit is a quoted string literal, stored without its quotes.
type StringLit struct {
	Value string
}

// NumberLit is a bare integer literal. The language has no floats.
type NumberLit struct {
	Value int
}

// Step variants. These navigate or extract; each consumes the running
// (selected, rejected) node sets and produces the next pair.

// Root is the '/' step: an identity pass-through anchoring the path.
type Root struct{}

// DescendantsOrSelf is the '//' step: expands every selected node to its
// descendants (the node itself is not included).
type DescendantsOrSelf struct{}

// Wildcard is the '*' step. It matches every tag, which makes it behave
// exactly like DescendantsOrSelf.
type Wildcard struct{}

// Tag keeps only selected nodes whose element name matches.
type Tag struct {
	Name string
}

// Text is the terminal 'text()' step: maps nodes to their text content,
// turning the pipeline's node set into a string sequence.
type Text struct{}

// AttributeValue is the terminal '@name' step outside brackets: maps nodes
// to the named attribute's value, or the empty string when absent.
type AttributeValue struct {
	Name string
}

// Predicate variants.

// CompareOp identifies a relational operator.
type CompareOp uint8

const (
	CompareGt CompareOp = iota // >
	CompareGe                  // >=
	CompareLt                  // <
	CompareLe                  // <=
	CompareEq                  // =
	CompareNe                  // !=
)

// String returns the operator as written in a query.
func (op CompareOp) String() string {
	switch op {
	case CompareGt:
		return ">"
	case CompareGe:
		return ">="
	case CompareLt:
		return "<"
	case CompareLe:
		return "<="
	case CompareEq:
		return "="
	case CompareNe:
		return "!="
	default:
		return "(unknown)"
	}
}

// Comparison is a binary relational predicate.
//
// Right is the first operand popped from the postfix stack (the right-hand
// infix operand), Left the second. The distinction matters: evaluation is
// not symmetric in which side holds an attribute reference.
type Comparison struct {
	Op    CompareOp
	Right Expr
	Left  Expr
}

// LogicalOp identifies a logical combinator.
type LogicalOp uint8

const (
	LogicalAnd LogicalOp = iota // and
	LogicalOr                   // or
	LogicalNot                  // not
)

// String returns the operator keyword.
func (op LogicalOp) String() string {
	switch op {
	case LogicalAnd:
		return "and"
	case LogicalOr:
		return "or"
	case LogicalNot:
		return "not"
	default:
		return "(unknown)"
	}
}

// Logical combines one or two predicate children.
//
// For And/Or both children are evaluated against the same input pair.
// For Not only Left is set, and it is deliberately never evaluated: not
// inverts the classification made by whatever predicate produced the
// current (selected, rejected) pair.
type Logical struct {
	Op    LogicalOp
	Right Expr // nil for Not
	Left  Expr
}

// TextOp identifies a substring test.
type TextOp uint8

const (
	TextContains   TextOp = iota // contains(a, b)
	TextStartsWith               // starts-with(a, b)
	TextEndsWith                 // ends-with(a, b)
)

// String returns the function name as written in a query.
func (op TextOp) String() string {
	switch op {
	case TextContains:
		return "contains"
	case TextStartsWith:
		return "starts-with"
	case TextEndsWith:
		return "ends-with"
	default:
		return "(unknown)"
	}
}

// TextPredicate tests an attribute value against a string literal.
// Exactly one of its operands must be an AttributeRef and the other a
// StringLit, in either order.
type TextPredicate struct {
	Op    TextOp
	Right Expr
	Left  Expr
}

// Length is the reserved 'length(a)' predicate. It parses but always fails
// evaluation with an unsupported-feature error.
type Length struct {
	Arg Expr
}

func (*AttributeRef) isExpr()      {}
func (*StringLit) isExpr()         {}
func (*NumberLit) isExpr()         {}
func (*Root) isExpr()              {}
func (*DescendantsOrSelf) isExpr() {}
func (*Wildcard) isExpr()          {}
func (*Tag) isExpr()               {}
func (*Text) isExpr()              {}
func (*AttributeValue) isExpr()    {}
func (*Comparison) isExpr()        {}
func (*Logical) isExpr()           {}
func (*TextPredicate) isExpr()     {}
func (*Length) isExpr()            {}

// IsTerminal reports whether e converts the pipeline's node set into a
// string sequence. No step may follow a terminal one.
func IsTerminal(e Expr) bool {
	switch e.(type) {
	case *Text, *AttributeValue:
		return true
	default:
		return false
	}
}

// IsOperand reports whether e is a predicate operand leaf.
func IsOperand(e Expr) bool {
	switch e.(type) {
	case *AttributeRef, *StringLit, *NumberLit:
		return true
	default:
		return false
	}
}
