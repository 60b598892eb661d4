package evalfactory

import (
	"strings"

	"github.com/smooks-go/cdrl/internal/selector"
)

// Well-known evaluator class names, kept spelled out as in the original
// configuration format so existing .cdrl documents remain valid.
const (
	MVELClassName = "org.smooks.javabean.mvel.MVELExpressionEvaluator"
	HCLClassName  = "org.smooks.cdr.HCLExpressionEvaluator"
)

// Factory builds selector.Evaluator instances from a (className,
// expression) pair, the same shape as the original's
// ExpressionEvaluatorFactory.
type Factory struct{}

// NewFactory returns a ready-to-use Factory. It carries no state: each
// evaluator compiles its own expression independently.
func NewFactory() *Factory {
	return &Factory{}
}

// Create compiles expression under the evaluator family named by
// className. An empty className selects the default JavaScript-flavored
// evaluator.
func (f *Factory) Create(className, expression string) (selector.Evaluator, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, &EmptyConditionExpressionError{}
	}

	switch className {
	case "", MVELClassName:
		return newGojaEvaluator(expression)
	case HCLClassName:
		return newHCLEvaluator(expression)
	default:
		return nil, &FactoryInstantiationFailureError{ClassName: className}
	}
}
