package dispatch

import (
	"sync/atomic"

	"github.com/smooks-go/cdrl/internal/selector"
)

// ElementPositionCounter is a synthetic Before visitor tracking how many
// candidate elements matching a selector prefix have been seen so far,
// so a Position(n) predicate elsewhere in the same selector can compare
// against it. It is registered as a Before visitor on the local name of
// its prefix's last element, and bound into the predicate it serves.
type ElementPositionCounter struct {
	count atomic.Int64
}

// NewElementPositionCounter returns a counter starting at zero.
func NewElementPositionCounter() *ElementPositionCounter {
	return &ElementPositionCounter{}
}

// Next increments and returns the new count. It implements
// selector.PositionCounter.
func (c *ElementPositionCounter) Next() int {
	return int(c.count.Add(1))
}

// Value returns the current count without incrementing it. It implements
// selector.PositionCounter.
func (c *ElementPositionCounter) Value() int {
	return int(c.count.Load())
}

// VisitBefore increments the counter on every matching element start. It
// implements BeforeVisitor so the counter can be registered directly in
// the Before index like any other visitor.
func (c *ElementPositionCounter) VisitBefore(ctx selector.Context) error {
	c.Next()
	return nil
}

var _ BeforeVisitor = (*ElementPositionCounter)(nil)
var _ selector.PositionCounter = (*ElementPositionCounter)(nil)
