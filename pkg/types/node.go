package types

// Node is the capability a document node must expose to be queried.
//
// The engine never constructs nodes itself; it only filters and maps the
// nodes handed to it. Any tree type can be queried by implementing this
// interface (see pkg/dom for an HTML adapter).
type Node interface {
	// TagName returns the node's element name.
	TagName() string
	// Attributes returns the node's attribute map. Values are always strings.
	Attributes() map[string]string
	// Text returns the node's text content.
	Text() string
	// Descendants returns every node below this one, self excluded,
	// in document order.
	Descendants() []Node
}

// Result is the outcome of evaluating a compiled query.
//
// A query pipeline carries a node set until a terminal step (text() or
// @attr extraction) fires, at which point it becomes a string sequence.
// Exactly one of Nodes and Strings is meaningful, as reported by IsScalar.
type Result struct {
	// Nodes holds the selected nodes when no terminal step was present.
	Nodes []Node
	// Strings holds the extracted values once a terminal step has fired.
	Strings []string
	// Scalar reports whether a terminal step fired.
	Scalar bool
}

// IsScalar reports whether the result is a string sequence rather than
// a node set.
func (r Result) IsScalar() bool {
	return r.Scalar
}
