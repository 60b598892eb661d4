// Package registry provides the central "glue" between a digested
// resource-config's resource locator string and the concrete dispatch.Visitor
// Go code that implements it.
//
// A Registry is populated at startup from one or more Modules, each
// contributing its own named VisitorFactory entries, then consulted once per
// resource-config while building the binding list the dispatch planner
// compiles. This mirrors the teacher's handler-registry/Module convention,
// generalized from named runner functions to named visitor constructors.
package registry
