package selector

// StepKind identifies what kind of document node a Step addresses.
type StepKind int

const (
	// Document is the synthetic root step produced by a leading '/'.
	Document StepKind = iota
	Element
	Attribute
	Text
)

func (k StepKind) String() string {
	switch k {
	case Document:
		return "document"
	case Element:
		return "element"
	case Attribute:
		return "attribute"
	case Text:
		return "text"
	default:
		return "unknown"
	}
}

// PredicateKind identifies which of the three predicate shapes a Predicate
// holds.
type PredicateKind int

const (
	Position PredicateKind = iota
	AttributeEquals
	Expression
)

// Context is consulted when evaluating an Expression predicate or a
// resource-config condition against the element currently being matched.
// It is implemented by the execution engine (package execute); selector
// and evalfactory only depend on this interface, never on a concrete
// element representation.
type Context interface {
	// ElementName returns the local name of the current candidate element.
	ElementName() string
	// Attribute returns the string value of the named attribute on the
	// current candidate element, and whether it was present.
	Attribute(local string) (string, bool)
	// Attributes returns every attribute on the current candidate
	// element, keyed by local name.
	Attributes() map[string]string
	// Text returns the accumulated character content of the current
	// candidate element.
	Text() string
	// Param returns the string value of a resource-config parameter
	// visible at the current binding, if any.
	Param(name string) (string, bool)
}

// Evaluator is the capability a condition or Expression predicate exposes:
// evaluate to true or false against a Context, or fail.
type Evaluator interface {
	Evaluate(ctx Context) (bool, error)
}

// PositionCounter tracks how many candidate elements matching a selector
// prefix have been seen so far. It is synthesized and bound by the
// dispatch planner (package dispatch), never by selector itself. Next is
// called once per matching prefix element, by the counter's own
// synthesized Before visitor; Value is called by Position predicate
// evaluation to read the count that visitor already incremented, without
// incrementing again.
type PositionCounter interface {
	// Next increments and returns the new count.
	Next() int
	// Value returns the current count without incrementing it.
	Value() int
}

// Predicate narrows which candidate elements a Step matches.
type Predicate struct {
	Kind PredicateKind

	// Position fields.
	N       int
	Counter PositionCounter

	// AttributeEquals fields.
	AttrLocal string
	Literal   string

	// Expression fields.
	Expr      string
	Evaluator Evaluator
}

// Step is one segment of a compiled selector Path.
type Step struct {
	Kind StepKind

	// Local and NamespaceURI identify an Element or Attribute step. Local
	// is "*" for the wildcard name test.
	Local        string
	Prefix       string
	NamespaceURI string

	Predicates []Predicate

	// accessesText is set when this Element step has a child text() step
	// in the same Path.
	accessesText bool
}

// AccessesText reports whether this Element step is immediately followed,
// in its Path, by a text() step.
func (s Step) AccessesText() bool {
	return s.accessesText
}

// Path is a compiled selector: an ordered sequence of Steps plus the
// namespace-prefix table captured at compile time.
type Path struct {
	Steps      []Step
	Namespaces map[string]string
	Raw        string
}

// Indexed reports whether the Path's final step is an Element step. Only
// indexed paths participate in element dispatch.
func (p *Path) Indexed() bool {
	if len(p.Steps) == 0 {
		return false
	}
	return p.Steps[len(p.Steps)-1].Kind == Element
}

// DispatchKey returns the local name of the Path's final Element step, or
// "*" if the Path is not indexed.
func (p *Path) DispatchKey() string {
	if !p.Indexed() {
		return "*"
	}
	return p.Steps[len(p.Steps)-1].Local
}

// TargetStep returns the final step of the Path, the one dispatch keys
// off of. It panics on an empty Path, which Compile returns for an empty
// selector string.
func (p *Path) TargetStep() *Step {
	return &p.Steps[len(p.Steps)-1]
}
