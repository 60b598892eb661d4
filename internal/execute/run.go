package execute

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/smooks-go/cdrl/internal/dispatch"
)

// Run walks every event src produces, firing Before/Child/After visitors
// from cfg in the order spec.md §4.6 describes: Before on element start
// (position counters first), Child once per character run under the
// innermost open element, After on element end (re-evaluating the
// selector match rather than depending on whether Before fired). Run
// returns as soon as ctx is done, any visitor returns an error, or src is
// exhausted (io.EOF is not an error).
func Run(ctx context.Context, cfg *dispatch.DeliveryConfig, src EventSource) error {
	var stack []*elementFrame

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		ev, err := src.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("execute: reading next event: %w", err)
		}

		switch e := ev.(type) {
		case StartElement:
			frame := &elementFrame{local: e.Name, attrs: e.Attrs}
			stack = append(stack, frame)
			if err := fireBefore(cfg, stack, e.Name); err != nil {
				return err
			}
		case Characters:
			if len(stack) == 0 {
				continue
			}
			top := stack[len(stack)-1]
			top.text = append(top.text, e.Text...)
			if err := fireChild(cfg, stack, top.local, e.Text); err != nil {
				return err
			}
		case EndElement:
			if len(stack) == 0 {
				continue
			}
			if err := fireAfter(cfg, stack, e.Name); err != nil {
				return err
			}
			stack = stack[:len(stack)-1]
		}
	}
}

func fireBefore(cfg *dispatch.DeliveryConfig, stack []*elementFrame, name string) error {
	for _, b := range beforeCandidates(cfg, name) {
		ctx := &elementContext{frame: stack[len(stack)-1], params: b.Config.Params}
		matched, err := matchAndCondition(b, stack, ctx)
		if err != nil {
			return err
		}
		if !matched {
			continue
		}
		before, ok := b.Handler.(dispatch.BeforeVisitor)
		if !ok {
			continue
		}
		if err := before.VisitBefore(ctx); err != nil {
			return fmt.Errorf("execute: Before visitor for %q: %w", b.Config.Resource, err)
		}
	}
	return nil
}

func fireChild(cfg *dispatch.DeliveryConfig, stack []*elementFrame, name string, text string) error {
	for _, b := range combinedBindings(cfg.Child, name) {
		ctx := &elementContext{frame: stack[len(stack)-1], params: b.Config.Params}
		matched, err := matchAndCondition(b, stack, ctx)
		if err != nil {
			return err
		}
		if !matched {
			continue
		}
		child, ok := b.Handler.(dispatch.ChildrenVisitor)
		if !ok {
			continue
		}
		if err := child.VisitChildText(ctx, text); err != nil {
			return fmt.Errorf("execute: Child visitor for %q: %w", b.Config.Resource, err)
		}
	}
	return nil
}

func fireAfter(cfg *dispatch.DeliveryConfig, stack []*elementFrame, name string) error {
	for _, b := range combinedBindings(cfg.After, name) {
		ctx := &elementContext{frame: stack[len(stack)-1], params: b.Config.Params}
		matched, err := matchAndCondition(b, stack, ctx)
		if err != nil {
			return err
		}
		if !matched {
			continue
		}
		after, ok := b.Handler.(dispatch.AfterVisitor)
		if !ok {
			continue
		}
		if err := after.VisitAfter(ctx); err != nil {
			return fmt.Errorf("execute: After visitor for %q: %w", b.Config.Resource, err)
		}
	}
	return nil
}

func matchAndCondition(b dispatch.Binding, stack []*elementFrame, ctx *elementContext) (bool, error) {
	ok, err := matchPath(b.Config.SelectorPath, stack, ctx)
	if err != nil || !ok {
		return false, err
	}
	if b.Config.Condition == nil {
		return true, nil
	}
	return b.Config.Condition.Evaluate(ctx)
}

// combinedBindings concatenates the specific-key and wildcard buckets in
// registration order.
func combinedBindings(idx map[string][]dispatch.Binding, name string) []dispatch.Binding {
	if len(idx[name]) == 0 && len(idx["*"]) == 0 {
		return nil
	}
	out := make([]dispatch.Binding, 0, len(idx[name])+len(idx["*"]))
	out = append(out, idx[name]...)
	out = append(out, idx["*"]...)
	return out
}

// beforeCandidates orders Before bindings with position counters first,
// per spec.md §4.6, since a counter for a step must have already
// incremented before a sibling Position predicate referencing it is
// evaluated on the same element.
func beforeCandidates(cfg *dispatch.DeliveryConfig, name string) []dispatch.Binding {
	all := combinedBindings(cfg.Before, name)
	counters := make([]dispatch.Binding, 0, len(all))
	rest := make([]dispatch.Binding, 0, len(all))
	for _, b := range all {
		if _, ok := b.Handler.(*dispatch.ElementPositionCounter); ok {
			counters = append(counters, b)
		} else {
			rest = append(rest, b)
		}
	}
	return append(counters, rest...)
}
