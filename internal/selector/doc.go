// Package selector compiles the XPath-subset selector grammar used by
// resource-config bindings into an ordered, indexed Path of steps and
// predicates. A compiled Path never needs the original namespace-prefix
// table again: prefixes are resolved to URIs once, at compile time.
package selector
