// Package dom adapts parsed HTML documents to the engine's node interface.
//
// The query engine consumes documents only through [types.Node]; this package
// provides that interface on top of golang.org/x/net/html trees so queries
// can run against real markup.
//
// # Example
//
//	roots, err := dom.ParseString("<div class='x'>hello</div>")
//	result, err := treepath.Eval(ctx, "//div[@class='x']/text()", roots)
package dom

import (
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/treepath/treepath/pkg/types"
)

// Element wraps an HTML element node and implements [types.Node].
//
// Wrappers are built once per parse, so the same element is always
// represented by the same *Element value; the evaluator's node-set
// membership tests rely on that identity.
type Element struct {
	node     *html.Node
	attrs    map[string]string
	children []*Element
}

// Parse reads and parses an HTML document and returns its top-level
// element(s) as query roots.
func Parse(r io.Reader) ([]types.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return Roots(doc), nil
}

// ParseString parses an HTML document from a string.
func ParseString(s string) ([]types.Node, error) {
	return Parse(strings.NewReader(s))
}

// Roots wraps the element children of an already parsed document node.
func Roots(doc *html.Node) []types.Node {
	var roots []types.Node
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			roots = append(roots, Wrap(c))
		}
	}
	return roots
}

// Wrap adapts a single parsed element to [types.Node].
// The whole subtree is wrapped eagerly.
func Wrap(n *html.Node) types.Node {
	return build(n)
}

func build(n *html.Node) *Element {
	e := &Element{
		node:  n,
		attrs: make(map[string]string, len(n.Attr)),
	}
	for _, a := range n.Attr {
		e.attrs[a.Key] = a.Val
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			e.children = append(e.children, build(c))
		}
	}
	return e
}

// TagName returns the element's tag name.
func (e *Element) TagName() string {
	return e.node.Data
}

// Attributes returns the element's attribute map.
// The map is shared; callers must not mutate it.
func (e *Element) Attributes() map[string]string {
	return e.attrs
}

// Text returns the concatenated text content of the element's subtree.
func (e *Element) Text() string {
	var b strings.Builder
	collectText(e.node, &b)
	return b.String()
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}

// Descendants returns every element below this one, self excluded,
// in document order.
func (e *Element) Descendants() []types.Node {
	var out []types.Node
	for _, c := range e.children {
		out = append(out, c)
		out = append(out, c.Descendants()...)
	}
	return out
}
