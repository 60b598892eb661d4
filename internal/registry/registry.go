package registry

import "github.com/smooks-go/cdrl/internal/dispatch"

// VisitorFactory builds a fresh dispatch.Visitor for one resource-config
// occurrence bound to it.
type VisitorFactory func() (dispatch.Visitor, error)

// Module registers its visitor factories into a Registry. Core and
// user-supplied packages under modules/ implement this the same way the
// teacher's modules implement registry.Module.
type Module interface {
	Register(r *Registry)
}

// Registry maps a resource locator string (the value a <resource-config
// resource="..."> or factory="..."> attribute carries) to the
// VisitorFactory that builds its handler.
type Registry struct {
	factories map[string]VisitorFactory
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{factories: map[string]VisitorFactory{}}
}

// RegisterVisitor associates resourceLocator with factory, overwriting any
// prior registration under the same name.
func (r *Registry) RegisterVisitor(resourceLocator string, factory VisitorFactory) {
	r.factories[resourceLocator] = factory
}

// Build constructs the visitor registered for resourceLocator.
func (r *Registry) Build(resourceLocator string) (dispatch.Visitor, error) {
	factory, ok := r.factories[resourceLocator]
	if !ok {
		return nil, &UnknownResourceError{Resource: resourceLocator}
	}
	return factory()
}

// Names returns every registered resource locator, for diagnostics.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	return names
}
