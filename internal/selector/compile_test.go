package selector

import "testing"

func TestCompileSimpleElement(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// --- Act ---
	path, err := Compile("order", nil)

	// --- Assert ---
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	if len(path.Steps) != 1 {
		t.Fatalf("expected 1 step, got %d", len(path.Steps))
	}
	if path.Steps[0].Kind != Element || path.Steps[0].Local != "order" {
		t.Errorf("expected Element(order), got %+v", path.Steps[0])
	}
	if !path.Indexed() {
		t.Errorf("expected path to be indexed")
	}
	if path.DispatchKey() != "order" {
		t.Errorf("DispatchKey() = %q, want %q", path.DispatchKey(), "order")
	}
}

func TestCompileLeadingSlashYieldsDocumentStep(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// --- Act ---
	path, err := Compile("/a/b", nil)

	// --- Assert ---
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	if len(path.Steps) != 3 {
		t.Fatalf("expected 3 steps (document, a, b), got %d", len(path.Steps))
	}
	if path.Steps[0].Kind != Document {
		t.Errorf("expected first step to be Document, got %v", path.Steps[0].Kind)
	}
}

func TestCompilePositionPredicate(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// --- Act ---
	path, err := Compile("a/b[2]", nil)

	// --- Assert ---
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	last := path.Steps[len(path.Steps)-1]
	if len(last.Predicates) != 1 || last.Predicates[0].Kind != Position || last.Predicates[0].N != 2 {
		t.Fatalf("expected Position(2) predicate, got %+v", last.Predicates)
	}
}

func TestCompileAttributeEqualsPredicate(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// --- Act ---
	path, err := Compile(`a[@id='42']`, nil)

	// --- Assert ---
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	pred := path.Steps[0].Predicates[0]
	if pred.Kind != AttributeEquals || pred.AttrLocal != "id" || pred.Literal != "42" {
		t.Fatalf("expected AttributeEquals(id, 42), got %+v", pred)
	}
}

func TestCompileExpressionPredicate(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// --- Act ---
	path, err := Compile("a[@id != '42']", nil)

	// --- Assert ---
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	pred := path.Steps[0].Predicates[0]
	if pred.Kind != Expression || pred.Expr != "@id != '42'" {
		t.Fatalf("expected Expression predicate, got %+v", pred)
	}
}

func TestCompileTextStepMarksAccessesText(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// --- Act ---
	path, err := Compile("a/b/text()", nil)

	// --- Assert ---
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	b := path.Steps[len(path.Steps)-2]
	if b.Kind != Element || b.Local != "b" || !b.AccessesText() {
		t.Fatalf("expected b step to access text, got %+v", b)
	}
	if path.Indexed() {
		t.Errorf("a path ending in text() must not be indexed")
	}
}

func TestCompileNamespacePrefixResolution(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	namespaces := map[string]string{"o": "http://example.com/orders"}

	// --- Act ---
	path, err := Compile("o:order", namespaces)

	// --- Assert ---
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	if path.Steps[0].NamespaceURI != "http://example.com/orders" {
		t.Errorf("expected namespace to be resolved at compile time, got %+v", path.Steps[0])
	}
}

func TestCompileUnknownPrefixFails(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// --- Act ---
	_, err := Compile("o:order", nil)

	// --- Assert ---
	if err == nil {
		t.Fatalf("expected error for unbound namespace prefix")
	}
}

func TestCompileWildcardDispatchKey(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// --- Act ---
	path, err := Compile("*", nil)

	// --- Assert ---
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	if path.DispatchKey() != "*" {
		t.Errorf("DispatchKey() = %q, want \"*\"", path.DispatchKey())
	}
}
