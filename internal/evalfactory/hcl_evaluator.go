package evalfactory

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/smooks-go/cdrl/internal/selector"
)

// hclEvaluator is the non-JS alternate evaluator: expressions are parsed
// once with hclsyntax and evaluated against an hcl.EvalContext built from
// the current selector.Context on every call.
type hclEvaluator struct {
	expression string
	parsed     hclsyntax.Expression
}

func newHCLEvaluator(expression string) (*hclEvaluator, error) {
	parsed, diags := hclsyntax.ParseExpression([]byte(expression), "condition", hcl.InitialPos)
	if diags.HasErrors() {
		return nil, &FactoryInstantiationFailureError{ClassName: HCLClassName, Cause: diags}
	}
	return &hclEvaluator{expression: expression, parsed: parsed}, nil
}

func (e *hclEvaluator) Evaluate(ctx selector.Context) (bool, error) {
	attrValues := map[string]cty.Value{}
	for name, value := range ctx.Attributes() {
		attrValues[name] = cty.StringVal(value)
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"element":    cty.StringVal(ctx.ElementName()),
			"text":       cty.StringVal(ctx.Text()),
			"attributes": cty.ObjectVal(attrValues),
		},
	}

	value, diags := e.parsed.Value(evalCtx)
	if diags.HasErrors() {
		return false, fmt.Errorf("evalfactory: evaluating expression %q: %w", e.expression, diags)
	}

	converted, err := convert.Convert(value, cty.Bool)
	if err != nil {
		return false, fmt.Errorf("evalfactory: expression %q did not evaluate to a boolean: %w", e.expression, err)
	}
	return converted.True(), nil
}
