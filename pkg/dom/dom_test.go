package dom_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/treepath/treepath/pkg/dom"
	"github.com/treepath/treepath/pkg/types"
)

const page = `<html><body>
<div id="main" class="content">
  <p id="p1">hello <b id="b1">world</b></p>
  <p id="p2">bye</p>
</div>
<a id="link" href="https://example.com">site</a>
</body></html>`

func parseRoot(t *testing.T, src string) types.Node {
	t.Helper()
	roots, err := dom.ParseString(src)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	if len(roots) != 1 {
		t.Fatalf("expected a single root, got %d", len(roots))
	}
	return roots[0]
}

func findByID(n types.Node, id string) types.Node {
	for _, d := range n.Descendants() {
		if d.Attributes()["id"] == id {
			return d
		}
	}
	return nil
}

func TestParseWrapsDocument(t *testing.T) {
	root := parseRoot(t, page)
	// html.Parse normalizes fragments into a full document.
	if got := root.TagName(); got != "html" {
		t.Errorf("root TagName() = %q, want html", got)
	}
}

func TestParseReader(t *testing.T) {
	roots, err := dom.Parse(strings.NewReader(page))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(roots) != 1 || roots[0].TagName() != "html" {
		t.Fatalf("unexpected roots %v", roots)
	}
}

func TestAttributes(t *testing.T) {
	root := parseRoot(t, page)
	div := findByID(root, "main")
	if div == nil {
		t.Fatal("div#main not found")
	}
	want := map[string]string{"id": "main", "class": "content"}
	if diff := cmp.Diff(want, div.Attributes()); diff != "" {
		t.Errorf("Attributes() mismatch (-want +got):\n%s", diff)
	}
}

func TestText(t *testing.T) {
	root := parseRoot(t, page)
	p := findByID(root, "p1")
	if p == nil {
		t.Fatal("p#p1 not found")
	}
	// Text is the concatenation of the subtree's text nodes.
	if got := p.Text(); got != "hello world" {
		t.Errorf("Text() = %q, want %q", got, "hello world")
	}
}

func TestDescendantsOrderAndIdentity(t *testing.T) {
	root := parseRoot(t, page)
	div := findByID(root, "main")
	if div == nil {
		t.Fatal("div#main not found")
	}

	var gotIDs []string
	for _, d := range div.Descendants() {
		gotIDs = append(gotIDs, d.Attributes()["id"])
	}
	want := []string{"p1", "b1", "p2"}
	if diff := cmp.Diff(want, gotIDs); diff != "" {
		t.Errorf("Descendants() order mismatch (-want +got):\n%s", diff)
	}

	// Repeated traversals yield the same wrapper values, so nodes can be
	// used as map keys for set membership.
	again := findByID(root, "p1")
	if again != div.Descendants()[0] {
		t.Error("expected stable wrapper identity across traversals")
	}
}

func TestDescendantsSkipNonElements(t *testing.T) {
	root := parseRoot(t, "<p>just <!-- a comment --> text</p>")
	for _, d := range root.Descendants() {
		switch d.TagName() {
		case "head", "body", "p":
		default:
			t.Errorf("unexpected node %q among descendants", d.TagName())
		}
	}
}
