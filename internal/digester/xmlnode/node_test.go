package xmlnode

import (
	"strings"
	"testing"
)

func TestParseBuildsTree(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	doc := `<root attr="v"><child>text</child></root>`

	// --- Act ---
	node, err := Parse(strings.NewReader(doc))

	// --- Assert ---
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if node.Local != "root" {
		t.Fatalf("expected root element, got %q", node.Local)
	}
	v, ok := node.Attr("attr")
	if !ok || v != "v" {
		t.Errorf("expected attr=v, got %q (ok=%v)", v, ok)
	}
	if len(node.Children) != 1 || node.Children[0].Local != "child" {
		t.Fatalf("expected one child element, got %+v", node.Children)
	}
	if node.Children[0].Text != "text" {
		t.Errorf("expected child text %q, got %q", "text", node.Children[0].Text)
	}
}

func TestInnerXMLReserializesElementChildren(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	doc := `<param><a x="1">one</a><b>two</b></param>`
	node, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	// --- Act ---
	got := InnerXML(node)

	// --- Assert ---
	want := `<a x="1">one</a><b>two</b>`
	if got != want {
		t.Errorf("InnerXML = %q, want %q", got, want)
	}
}

func TestInnerXMLFallsBackToTextWhenNoChildren(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	doc := `<param>  http://x  </param>`
	node, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	// --- Act ---
	got := InnerXML(node)

	// --- Assert ---
	if got != "http://x" {
		t.Errorf("InnerXML = %q, want %q", got, "http://x")
	}
}
