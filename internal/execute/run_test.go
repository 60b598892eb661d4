package execute

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/smooks-go/cdrl/internal/dispatch"
	"github.com/smooks-go/cdrl/internal/resource"
	"github.com/smooks-go/cdrl/internal/selector"
)

type sliceEventSource struct {
	events []SAXEvent
	i      int
}

func (s *sliceEventSource) Next() (SAXEvent, error) {
	if s.i >= len(s.events) {
		return nil, io.EOF
	}
	e := s.events[s.i]
	s.i++
	return e, nil
}

type recordingVisitor struct {
	before []string
	child  []string
	after  []string
}

func (v *recordingVisitor) VisitBefore(ctx selector.Context) error {
	v.before = append(v.before, ctx.ElementName())
	return nil
}

func (v *recordingVisitor) VisitChildText(ctx selector.Context, text string) error {
	v.child = append(v.child, text)
	return nil
}

func (v *recordingVisitor) VisitAfter(ctx selector.Context) error {
	v.after = append(v.after, ctx.ElementName())
	return nil
}

type fakeEvaluator struct{ result bool }

func (f *fakeEvaluator) Evaluate(ctx selector.Context) (bool, error) {
	return f.result, nil
}

func mustCompilePath(t *testing.T, sel string) *selector.Path {
	t.Helper()
	path, err := selector.Compile(sel, nil)
	if err != nil {
		t.Fatalf("Compile(%q) error: %v", sel, err)
	}
	return path
}

func TestRunFiresBeforeChildAfterInOrderForMatchingElement(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	visitor := &recordingVisitor{}
	path := mustCompilePath(t, "order")
	cfg, _, err := dispatch.Plan([]dispatch.Binding{{Config: resource.NewConfig(path, "r1"), Handler: visitor}}, nil, nil)
	if err != nil {
		t.Fatalf("Plan error: %v", err)
	}
	src := &sliceEventSource{events: []SAXEvent{
		StartElement{Name: "order", Path: []string{"order"}},
		Characters{Text: "42"},
		EndElement{Name: "order", Path: []string{"order"}},
	}}

	// --- Act ---
	err = Run(context.Background(), cfg, src)

	// --- Assert ---
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(visitor.before) != 1 || visitor.before[0] != "order" {
		t.Errorf("expected VisitBefore fired once for order, got %+v", visitor.before)
	}
	if len(visitor.child) != 1 || visitor.child[0] != "42" {
		t.Errorf("expected VisitChildText fired once with \"42\", got %+v", visitor.child)
	}
	if len(visitor.after) != 1 || visitor.after[0] != "order" {
		t.Errorf("expected VisitAfter fired once for order, got %+v", visitor.after)
	}
}

func TestRunPositionalSelectorFiresOnlyOnSecondMatch(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	visitor := &recordingVisitor{}
	path := mustCompilePath(t, "a/b[2]")
	cfg, _, err := dispatch.Plan([]dispatch.Binding{{Config: resource.NewConfig(path, "r1"), Handler: visitor}}, nil, nil)
	if err != nil {
		t.Fatalf("Plan error: %v", err)
	}
	src := &sliceEventSource{events: []SAXEvent{
		StartElement{Name: "a", Path: []string{"a"}},
		StartElement{Name: "b", Path: []string{"a", "b"}},
		EndElement{Name: "b", Path: []string{"a", "b"}},
		StartElement{Name: "b", Path: []string{"a", "b"}},
		EndElement{Name: "b", Path: []string{"a", "b"}},
		EndElement{Name: "a", Path: []string{"a"}},
	}}

	// --- Act ---
	err = Run(context.Background(), cfg, src)

	// --- Assert ---
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(visitor.before) != 1 {
		t.Fatalf("expected the Before handler to fire exactly once (on the second <b>), got %d firings: %+v", len(visitor.before), visitor.before)
	}
}

func TestRunSkipsVisitorWhenConditionIsFalse(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	visitor := &recordingVisitor{}
	path := mustCompilePath(t, "order")
	resourceCfg := resource.NewConfig(path, "r1")
	resourceCfg.Condition = &fakeEvaluator{result: false}
	cfg, _, err := dispatch.Plan([]dispatch.Binding{{Config: resourceCfg, Handler: visitor}}, nil, nil)
	if err != nil {
		t.Fatalf("Plan error: %v", err)
	}
	src := &sliceEventSource{events: []SAXEvent{
		StartElement{Name: "order", Path: []string{"order"}},
		EndElement{Name: "order", Path: []string{"order"}},
	}}

	// --- Act ---
	err = Run(context.Background(), cfg, src)

	// --- Assert ---
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(visitor.before) != 0 || len(visitor.after) != 0 {
		t.Fatalf("expected a false condition to suppress both Before and After firing, got before=%+v after=%+v", visitor.before, visitor.after)
	}
}

func TestRunReturnsContextErrorWhenCancelled(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := &dispatch.DeliveryConfig{Before: map[string][]dispatch.Binding{}, Child: map[string][]dispatch.Binding{}, After: map[string][]dispatch.Binding{}}
	src := &sliceEventSource{events: []SAXEvent{StartElement{Name: "order", Path: []string{"order"}}}}

	// --- Act ---
	err := Run(ctx, cfg, src)

	// --- Assert ---
	if err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestXMLEventSourceEmitsStartCharsEnd(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	src := NewXMLEventSource(strings.NewReader(`<order id="1">42</order>`))

	// --- Act ---
	first, err := src.Next()
	if err != nil {
		t.Fatalf("first Next error: %v", err)
	}
	second, err := src.Next()
	if err != nil {
		t.Fatalf("second Next error: %v", err)
	}
	third, err := src.Next()
	if err != nil {
		t.Fatalf("third Next error: %v", err)
	}

	// --- Assert ---
	start, ok := first.(StartElement)
	if !ok || start.Name != "order" || start.Attrs["id"] != "1" {
		t.Fatalf("expected StartElement order with id=1, got %+v", first)
	}
	chars, ok := second.(Characters)
	if !ok || chars.Text != "42" {
		t.Fatalf("expected Characters \"42\", got %+v", second)
	}
	end, ok := third.(EndElement)
	if !ok || end.Name != "order" {
		t.Fatalf("expected EndElement order, got %+v", third)
	}
}
