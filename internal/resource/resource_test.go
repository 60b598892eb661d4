package resource

import "testing"

func TestParamListPreservesOrderAndDuplicates(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	list := &ParamList{}
	list.Add(Parameter{Name: "sax-handler", Value: "a"})
	list.Add(Parameter{Name: "sax-handler", Value: "b"})
	list.Add(Parameter{Name: "other", Value: "c"})

	// --- Act ---
	handlers := list.Named("sax-handler")
	all := list.All()

	// --- Assert ---
	if len(handlers) != 2 || handlers[0].Value != "a" || handlers[1].Value != "b" {
		t.Fatalf("expected duplicate sax-handler values preserved in order, got %+v", handlers)
	}
	if len(all) != 3 || all[2].Name != "other" {
		t.Fatalf("expected insertion order preserved across names, got %+v", all)
	}
}

func TestProfileStoreAddOverwritesSameBaseProfile(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	store := NewProfileStore()
	set1 := NewProfileSet("device1")
	set2 := NewProfileSet("device2")

	// --- Act ---
	store.Add(set1)
	store.Add(set2)

	// --- Assert ---
	if _, ok := store.Get("device3"); ok {
		t.Fatalf("expected no profile set for unknown base profile")
	}
	got1, ok := store.Get("device1")
	if !ok || got1 != set1 {
		t.Fatalf("expected to get back set1 for device1")
	}
	got2, ok := store.Get("device2")
	if !ok || got2 != set2 {
		t.Fatalf("expected to get back set2 for device2")
	}

	// Re-adding under an existing base profile replaces the prior entry.
	replacement := NewProfileSet("device2")
	store.Add(replacement)
	got2, ok = store.Get("device2")
	if !ok || got2 != replacement {
		t.Fatalf("expected device2 to be replaced by the new registration")
	}
}

func TestSeqAppendPreservesOrder(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	outer := NewSeq("root")
	outer.AddConfig(NewConfig(nil, "first"))
	inner := NewSeq("imported")
	inner.AddConfig(NewConfig(nil, "second"))
	inner.AddConfig(NewConfig(nil, "third"))

	// --- Act ---
	outer.Append(inner)

	// --- Assert ---
	configs := outer.Configs()
	if len(configs) != 3 {
		t.Fatalf("expected 3 configs, got %d", len(configs))
	}
	want := []string{"first", "second", "third"}
	for i, c := range configs {
		if c.Resource != want[i] {
			t.Errorf("configs[%d].Resource = %q, want %q", i, c.Resource, want[i])
		}
	}
}

func TestNewGlobalParametersConfig(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// --- Act ---
	cfg := NewGlobalParametersConfig()

	// --- Assert ---
	if cfg.Resource != GlobalParametersSelector {
		t.Errorf("expected sentinel resource name, got %q", cfg.Resource)
	}
	if cfg.Params == nil || cfg.Params.Len() != 0 {
		t.Errorf("expected an empty, initialized Params list")
	}
}
