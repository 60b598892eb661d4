package resource

import "github.com/smooks-go/cdrl/internal/digester/xmlnode"

// Parameter is a single typed parameter occurrence inside a resource
// config's parameter map, or a <reader> element's handler/feature list.
type Parameter struct {
	Name  string
	Type  string
	Value string

	// XML holds the decoded <param> element itself, whose Children are
	// the markup, when the parameter carries element markup rather than
	// plain text. Nil for plain-text parameters.
	XML *xmlnode.Node
}

// ParamList is an insertion-ordered, duplicate-preserving multimap from
// parameter name to its occurrences. It is never backed by a map: the
// <reader> element's repeated "sax-handler" parameters, and any other
// multi-valued parameter, rely on both order and duplicates surviving.
type ParamList struct {
	entries []Parameter
}

// Add appends a new parameter occurrence, preserving any prior occurrence
// of the same name.
func (p *ParamList) Add(param Parameter) {
	p.entries = append(p.entries, param)
}

// All returns every occurrence in insertion order.
func (p *ParamList) All() []Parameter {
	return p.entries
}

// Named returns every occurrence with the given name, in insertion order.
func (p *ParamList) Named(name string) []Parameter {
	var out []Parameter
	for _, e := range p.entries {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}

// First returns the first occurrence of name, if any. Most callers that
// know a parameter is single-valued use this instead of Named.
func (p *ParamList) First(name string) (Parameter, bool) {
	for _, e := range p.entries {
		if e.Name == name {
			return e, true
		}
	}
	return Parameter{}, false
}

// Len reports how many occurrences, across all names, are present.
func (p *ParamList) Len() int {
	return len(p.entries)
}
