// Package types defines the core type system for the treepath engine.
//
// This package contains type definitions for:
//   - Query: compiled query pipelines
//   - Expr: the expression variants making up a pipeline
//   - Node: the capability interface document nodes must satisfy
//   - Result: node-set or string-sequence evaluation results
//   - Error types: structured errors with codes
package types

// Query represents a compiled query.
//
// A Query is a flat pipeline of step and predicate expressions, evaluated
// left to right. It can be evaluated multiple times against different
// candidate sets by passing it to [evaluator.Evaluator.Eval]. It is safe for
// concurrent use by multiple goroutines.
type Query struct {
	steps  []Expr
	source string
}

// NewQuery creates a new Query from a compiled pipeline.
func NewQuery(steps []Expr, source string) *Query {
	return &Query{
		steps:  steps,
		source: source,
	}
}

// Steps returns the compiled expression pipeline, in evaluation order.
func (q *Query) Steps() []Expr {
	return q.steps
}

// Source returns the original query text.
func (q *Query) Source() string {
	return q.source
}

// String returns a string representation of the query.
func (q *Query) String() string {
	return q.source
}
