package dispatch

import (
	"fmt"
	"strings"

	"github.com/smooks-go/cdrl/internal/resource"
	"github.com/smooks-go/cdrl/internal/selector"
)

// DeliveryConfig holds the three dispatch indices a planned set of
// bindings compiles to. Each is a mapping from dispatch key to an
// insertion-ordered list of bindings; the wildcard key "*" is a distinct
// bucket for non-indexed selector paths.
type DeliveryConfig struct {
	Before map[string][]Binding
	Child  map[string][]Binding
	After  map[string][]Binding
}

func newDeliveryConfig() *DeliveryConfig {
	return &DeliveryConfig{
		Before: map[string][]Binding{},
		Child:  map[string][]Binding{},
		After:  map[string][]Binding{},
	}
}

// PlanEvent records one decision the planner made, for diagnostics.
type PlanEvent struct {
	Config  *resource.Config
	Message string
}

// InvalidSelectorError is returned when a selector accessing text() is
// bound to a Before or Children handler; text() is only supported on
// After-only visitors.
type InvalidSelectorError struct {
	Selector string
	Resource string
}

func (e *InvalidSelectorError) Error() string {
	return fmt.Sprintf(
		"dispatch: unsupported selector %q on resource %q: the text() token is only supported on visitors that implement AfterVisitor only",
		e.Selector, e.Resource,
	)
}

// Plan builds a DeliveryConfig from bindings, implementing the streaming
// dispatch-planning algorithm: installing namespaces, wrapping handlers
// in the interceptor chain, deriving dispatch keys, registering by
// capability, and synthesizing position counters. chain may be nil, in
// which case handlers are registered unwrapped.
func Plan(bindings []Binding, namespaces map[string]string, chain *InterceptorChainFactory) (*DeliveryConfig, []PlanEvent, error) {
	cfg := newDeliveryConfig()
	var events []PlanEvent
	bound := map[*selector.Path]map[int]bool{}

	for _, b := range bindings {
		if len(b.Config.SelectorPath.Namespaces) == 0 && len(namespaces) > 0 {
			b.Config.SelectorPath.Namespaces = namespaces
		}

		_, isBefore := b.Handler.(BeforeVisitor)
		_, isAfter := b.Handler.(AfterVisitor)
		if !isBefore && !isAfter {
			// This planner is for the streaming strategy only; a
			// separate planner handles DOM-only handlers.
			continue
		}

		_, isChildren := b.Handler.(ChildrenVisitor)
		if isBefore || isChildren {
			if err := assertNotAccessingText(b); err != nil {
				return nil, nil, err
			}
		}

		wrapped := b
		if chain != nil {
			wrapped = chain.CreateChain(b)
		}

		key := wrapped.Config.SelectorPath.DispatchKey()
		registerBinding(cfg, key, wrapped)

		if err := bindPositionCounters(wrapped, cfg, bound); err != nil {
			return nil, nil, err
		}

		events = append(events, PlanEvent{Config: wrapped.Config, Message: "Added as a streaming visitor."})
	}

	return cfg, events, nil
}

func registerBinding(cfg *DeliveryConfig, key string, wrapped Binding) {
	_, wrappedBefore := wrapped.Handler.(BeforeVisitor)
	_, wrappedChildren := wrapped.Handler.(ChildrenVisitor)
	_, wrappedAfter := wrapped.Handler.(AfterVisitor)

	registeredChild := false
	if wrappedBefore {
		cfg.Before[key] = append(cfg.Before[key], wrapped)
		if wrappedChildren {
			cfg.Child[key] = append(cfg.Child[key], wrapped)
			registeredChild = true
		}
	}
	if wrappedAfter {
		cfg.After[key] = append(cfg.After[key], wrapped)
		// Prevents double registration in Child for handlers that are
		// both Before and After.
		if !wrappedBefore && wrappedChildren && !registeredChild {
			cfg.Child[key] = append(cfg.Child[key], wrapped)
		}
	}
}

func assertNotAccessingText(b Binding) error {
	for _, step := range b.Config.SelectorPath.Steps {
		if step.Kind == selector.Element && step.AccessesText() {
			return &InvalidSelectorError{Selector: b.Config.SelectorPath.Raw, Resource: b.Config.Resource}
		}
	}
	return nil
}

// bindPositionCounters synthesizes one ElementPositionCounter per
// (path-prefix, target-step), binds it into the Position predicate it
// serves, and registers the counter itself as a Before visitor on the
// local name of that prefix's last element. bound tracks which
// (path, step-index) pairs have already been synthesized so that a path
// shared by more than one binding is never double-counted.
func bindPositionCounters(wrapped Binding, cfg *DeliveryConfig, bound map[*selector.Path]map[int]bool) error {
	path := wrapped.Config.SelectorPath
	seen, ok := bound[path]
	if !ok {
		seen = map[int]bool{}
		bound[path] = seen
	}

	for i := range path.Steps {
		step := &path.Steps[i]
		if step.Kind != selector.Element || seen[i] {
			continue
		}
		hasPosition := false
		for _, p := range step.Predicates {
			if p.Kind == selector.Position {
				hasPosition = true
				break
			}
		}
		if !hasPosition {
			continue
		}
		seen[i] = true

		counter := NewElementPositionCounter()
		for j := range step.Predicates {
			if step.Predicates[j].Kind == selector.Position {
				step.Predicates[j].Counter = counter
			}
		}

		prefixSelector := renderPrefix(path.Steps[:i+1])
		counterPath, err := selector.Compile(prefixSelector, path.Namespaces)
		if err != nil {
			return fmt.Errorf("dispatch: synthesizing position counter for %q: %w", path.Raw, err)
		}
		// The counter only counts elements that satisfy the predicates to
		// the left of the first Position predicate in the same step.
		counterTarget := &counterPath.Steps[len(counterPath.Steps)-1]
		for _, p := range step.Predicates {
			if p.Kind == selector.Position {
				break
			}
			counterTarget.Predicates = append(counterTarget.Predicates, p)
		}
		counterConfig := resource.NewConfig(counterPath, "position-counter")
		cfg.Before[step.Local] = append(cfg.Before[step.Local], Binding{Config: counterConfig, Handler: counter})
	}
	return nil
}

func renderPrefix(steps []selector.Step) string {
	var parts []string
	for _, s := range steps {
		if s.Kind == selector.Document {
			continue
		}
		if s.Prefix != "" {
			parts = append(parts, s.Prefix+":"+s.Local)
		} else {
			parts = append(parts, s.Local)
		}
	}
	return strings.Join(parts, "/")
}
