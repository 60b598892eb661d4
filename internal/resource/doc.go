// Package resource holds the ResourceConfig model: the in-memory
// representation of a single selector-path/handler/parameter-map/condition
// unit, the ordered sequence that collects them during digestion, and the
// profile sets that scope which configs apply to which target.
package resource
