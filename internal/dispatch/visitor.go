package dispatch

import (
	"github.com/smooks-go/cdrl/internal/resource"
	"github.com/smooks-go/cdrl/internal/selector"
)

// Visitor is the supplied handler a resource-config binds to a selector.
// Concrete visitors are polymorphic over the capability set below by
// implementing whichever of BeforeVisitor, ChildrenVisitor, AfterVisitor
// they support; the planner detects capabilities with type assertions,
// never inheritance.
type Visitor interface{}

// BeforeVisitor fires when the selector's target element starts.
type BeforeVisitor interface {
	Visitor
	VisitBefore(ctx selector.Context) error
}

// ChildrenVisitor fires once per run of character content found directly
// inside the selector's target element. Child element starts do not fire
// it.
type ChildrenVisitor interface {
	Visitor
	VisitChildText(ctx selector.Context, text string) error
}

// AfterVisitor fires when the selector's target element ends.
type AfterVisitor interface {
	Visitor
	VisitAfter(ctx selector.Context) error
}

// Binding pairs a resource-config with the visitor it is bound to.
type Binding struct {
	Config  *resource.Config
	Handler Visitor
}
