package execute

import (
	"fmt"

	"github.com/smooks-go/cdrl/internal/selector"
)

// matchPath reports whether path matches the current ancestor stack
// (outermost first, the currently-open element last). A path with a
// leading Document step anchors to the document root and must match the
// stack exactly; otherwise it matches as a suffix, the way Smooks
// selectors are conventionally interpreted. Predicates on each matched
// Element step evaluate left to right, short-circuiting on the first
// false.
func matchPath(path *selector.Path, stack []*elementFrame, ctx selector.Context) (bool, error) {
	steps := path.Steps
	rooted := len(steps) > 0 && steps[0].Kind == selector.Document
	if rooted {
		steps = steps[1:]
	}

	var elementSteps []selector.Step
	for _, s := range steps {
		if s.Kind == selector.Element {
			elementSteps = append(elementSteps, s)
		}
	}
	if len(elementSteps) == 0 {
		return false, nil
	}
	if rooted && len(elementSteps) != len(stack) {
		return false, nil
	}
	if !rooted && len(elementSteps) > len(stack) {
		return false, nil
	}

	offset := len(stack) - len(elementSteps)
	for i, step := range elementSteps {
		frame := stack[offset+i]
		if step.Local != "*" && step.Local != frame.local {
			return false, nil
		}

		for _, pred := range step.Predicates {
			stepCtx := ctx
			if base, ok := ctx.(*elementContext); ok && frame != base.frame {
				// Predicates on a non-target ancestor step evaluate
				// against that ancestor's attributes/text, but keep the
				// same binding's Param visibility.
				stepCtx = &elementContext{frame: frame, params: base.params}
			}
			ok, err := evalPredicate(pred, stepCtx)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
	}
	return true, nil
}

func evalPredicate(pred selector.Predicate, ctx selector.Context) (bool, error) {
	switch pred.Kind {
	case selector.Position:
		if pred.Counter == nil {
			return false, fmt.Errorf("execute: position predicate [%d] has no bound counter", pred.N)
		}
		return pred.Counter.Value() == pred.N, nil
	case selector.AttributeEquals:
		v, ok := ctx.Attribute(pred.AttrLocal)
		return ok && v == pred.Literal, nil
	case selector.Expression:
		if pred.Evaluator == nil {
			return false, fmt.Errorf("execute: expression predicate [%s] has no bound evaluator", pred.Expr)
		}
		return pred.Evaluator.Evaluate(ctx)
	default:
		return false, fmt.Errorf("execute: unknown predicate kind %v", pred.Kind)
	}
}
