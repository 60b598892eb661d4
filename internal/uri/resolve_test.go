package uri

import "testing"

func TestResolve(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	cases := []struct {
		base, ref, want string
	}{
		{"file:///configs/root.cdrl", "imported.cdrl", "file:///configs/imported.cdrl"},
		{"file:///configs/root.cdrl", "sub/child.cdrl", "file:///configs/sub/child.cdrl"},
		{"", "file:///a.cdrl", "file:///a.cdrl"},
	}

	for _, c := range cases {
		// --- Act ---
		got, err := Resolve(c.base, c.ref)

		// --- Assert ---
		if err != nil {
			t.Fatalf("Resolve(%q, %q) returned error: %v", c.base, c.ref, err)
		}
		if got != c.want {
			t.Errorf("Resolve(%q, %q) = %q, want %q", c.base, c.ref, got, c.want)
		}
	}
}

func TestParent(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// --- Act ---
	got, err := Parent("file:///configs/sub/child.cdrl")

	// --- Assert ---
	if err != nil {
		t.Fatalf("Parent returned error: %v", err)
	}
	if got != "file:///configs/sub/" {
		t.Errorf("Parent = %q, want %q", got, "file:///configs/sub/")
	}
}

func TestNormalizeCollapsesEquivalentPaths(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	a := "file:///configs/./root.cdrl"
	b := "file:///configs/root.cdrl"

	// --- Act ---
	na, err := Normalize(a)
	if err != nil {
		t.Fatalf("Normalize(%q) error: %v", a, err)
	}
	nb, err := Normalize(b)
	if err != nil {
		t.Fatalf("Normalize(%q) error: %v", b, err)
	}

	// --- Assert ---
	if na != nb {
		t.Errorf("expected normalized forms to match: %q vs %q", na, nb)
	}
}
