package evalfactory

import (
	"fmt"

	"github.com/dop251/goja"

	"github.com/smooks-go/cdrl/internal/selector"
)

// gojaEvaluator is the default MVEL-style condition evaluator. Expressions
// are treated as JavaScript, compiled once at construction and evaluated
// against a fresh runtime per call so that concurrent evaluations of the
// same compiled program never race on shared VM state.
type gojaEvaluator struct {
	source     string
	expression string
	program    *goja.Program
}

func newGojaEvaluator(expression string) (*gojaEvaluator, error) {
	program, err := goja.Compile("condition", expression, false)
	if err != nil {
		return nil, &FactoryInstantiationFailureError{ClassName: MVELClassName, Cause: err}
	}
	return &gojaEvaluator{source: expression, expression: expression, program: program}, nil
}

// Evaluate runs the compiled expression against ctx, exposing the current
// element, its attributes and text, and resource parameters through a
// "bindings" object.
func (e *gojaEvaluator) Evaluate(ctx selector.Context) (bool, error) {
	vm := goja.New()
	if err := vm.Set("bindings", newBindings(ctx)); err != nil {
		return false, fmt.Errorf("evalfactory: binding evaluation context: %w", err)
	}

	value, err := vm.RunProgram(e.program)
	if err != nil {
		return false, fmt.Errorf("evalfactory: evaluating expression %q: %w", e.expression, err)
	}
	return value.ToBoolean(), nil
}

// bindings is the JS-visible object exposed as the global "bindings" while
// evaluating a compiled expression.
type bindings struct {
	ctx selector.Context
}

func newBindings(ctx selector.Context) *bindings {
	return &bindings{ctx: ctx}
}

// Element returns the local name of the element currently being matched.
func (b *bindings) Element() string {
	return b.ctx.ElementName()
}

// Attribute returns the string value of a named attribute, or "" if
// absent.
func (b *bindings) Attribute(name string) string {
	value, _ := b.ctx.Attribute(name)
	return value
}

// Text returns the accumulated character content of the current element.
func (b *bindings) Text() string {
	return b.ctx.Text()
}

// Param returns the string value of a resource-config parameter, or "" if
// absent.
func (b *bindings) Param(name string) string {
	value, _ := b.ctx.Param(name)
	return value
}
