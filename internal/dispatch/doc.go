// Package dispatch plans the Before/Child/After dispatch indices for the
// streaming delivery strategy: given a list of visitor bindings, it
// determines each binding's dispatch key, wraps the handler in an
// interceptor chain, synthesizes position counters for positional
// predicates, and rejects selectors that access text() from a
// Before/Children handler. It is the Go equivalent of SaxNgFilterProvider.
package dispatch
