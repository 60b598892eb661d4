package registry

import (
	"errors"
	"testing"

	"github.com/smooks-go/cdrl/internal/dispatch"
	"github.com/smooks-go/cdrl/internal/selector"
)

type stubVisitor struct{}

func (stubVisitor) VisitBefore(ctx selector.Context) error { return nil }

func TestRegistryBuildReturnsRegisteredVisitor(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	r := New()
	r.RegisterVisitor("trace.Logger", func() (dispatch.Visitor, error) { return stubVisitor{}, nil })

	// --- Act ---
	visitor, err := r.Build("trace.Logger")

	// --- Assert ---
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if _, ok := visitor.(stubVisitor); !ok {
		t.Fatalf("expected the registered stubVisitor, got %T", visitor)
	}
}

func TestRegistryBuildReturnsUnknownResourceError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	r := New()

	// --- Act ---
	_, err := r.Build("does.not.Exist")

	// --- Assert ---
	var unknown *UnknownResourceError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected *UnknownResourceError, got %v (%T)", err, err)
	}
	if unknown.Resource != "does.not.Exist" {
		t.Errorf("expected error to name the missing resource, got %q", unknown.Resource)
	}
}
