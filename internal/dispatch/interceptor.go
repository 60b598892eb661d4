package dispatch

import (
	"fmt"
	"sync"
	"time"

	"github.com/smooks-go/cdrl/internal/selector"
)

// Interceptor wraps a Visitor with additional behavior while preserving
// exactly the capability set (Before/Children/After) the wrapped visitor
// already has: the outermost visitor presented to the planner must expose
// the union of capabilities of everything inside it, so capability-based
// index registration stays correct.
type Interceptor interface {
	Wrap(v Visitor) Visitor
}

// InterceptorChainFactory produces the wrapped visitor a Binding is
// registered under, by applying zero or more Interceptors in sequence.
type InterceptorChainFactory struct {
	interceptors []Interceptor
}

// NewInterceptorChainFactory returns a factory that applies interceptors
// in the given order, outermost last.
func NewInterceptorChainFactory(interceptors ...Interceptor) *InterceptorChainFactory {
	return &InterceptorChainFactory{interceptors: interceptors}
}

// CreateChain wraps b.Handler with every registered interceptor and
// returns a new Binding carrying the wrapped visitor.
func (f *InterceptorChainFactory) CreateChain(b Binding) Binding {
	handler := b.Handler
	for _, interceptor := range f.interceptors {
		handler = interceptor.Wrap(handler)
	}
	return Binding{Config: b.Config, Handler: handler}
}

// TimingInterceptor records per-visitor elapsed wall-clock time for
// diagnostics. It is the one built-in interceptor shipped here; the
// original ships several (exception handling, termination, static
// proxying) but those are collaborators outside this core's scope.
type TimingInterceptor struct {
	Stats *TimingStats
}

// NewTimingInterceptor returns an interceptor recording into stats.
func NewTimingInterceptor(stats *TimingStats) *TimingInterceptor {
	return &TimingInterceptor{Stats: stats}
}

// TimingStats accumulates elapsed time per wrapped visitor. It is safe for
// concurrent use.
type TimingStats struct {
	mu     sync.Mutex
	totals map[string]time.Duration
}

// NewTimingStats returns an empty TimingStats.
func NewTimingStats() *TimingStats {
	return &TimingStats{totals: map[string]time.Duration{}}
}

func (s *TimingStats) record(label string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totals[label] += d
}

// Total returns the accumulated elapsed time recorded under label.
func (s *TimingStats) Total(label string) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totals[label]
}

func (t *TimingInterceptor) Wrap(v Visitor) Visitor {
	_, before := v.(BeforeVisitor)
	_, children := v.(ChildrenVisitor)
	_, after := v.(AfterVisitor)

	switch {
	case before && children && after:
		return &timingBeforeChildrenAfter{v.(BeforeVisitor), v.(ChildrenVisitor), v.(AfterVisitor), t.Stats}
	case before && children:
		return &timingBeforeChildren{v.(BeforeVisitor), v.(ChildrenVisitor), t.Stats}
	case before && after:
		return &timingBeforeAfter{v.(BeforeVisitor), v.(AfterVisitor), t.Stats}
	case children && after:
		return &timingChildrenAfter{v.(ChildrenVisitor), v.(AfterVisitor), t.Stats}
	case before:
		return &timingBefore{v.(BeforeVisitor), t.Stats}
	case children:
		return &timingChildren{v.(ChildrenVisitor), t.Stats}
	case after:
		return &timingAfter{v.(AfterVisitor), t.Stats}
	default:
		return v
	}
}

func label(v Visitor) string {
	return fmt.Sprintf("%T", v)
}

type timingBefore struct {
	inner BeforeVisitor
	stats *TimingStats
}

func (w *timingBefore) VisitBefore(ctx selector.Context) error {
	start := time.Now()
	err := w.inner.VisitBefore(ctx)
	w.stats.record(label(w.inner), time.Since(start))
	return err
}

type timingChildren struct {
	inner ChildrenVisitor
	stats *TimingStats
}

func (w *timingChildren) VisitChildText(ctx selector.Context, text string) error {
	start := time.Now()
	err := w.inner.VisitChildText(ctx, text)
	w.stats.record(label(w.inner), time.Since(start))
	return err
}

type timingAfter struct {
	inner AfterVisitor
	stats *TimingStats
}

func (w *timingAfter) VisitAfter(ctx selector.Context) error {
	start := time.Now()
	err := w.inner.VisitAfter(ctx)
	w.stats.record(label(w.inner), time.Since(start))
	return err
}

type timingBeforeChildren struct {
	before BeforeVisitor
	child  ChildrenVisitor
	stats  *TimingStats
}

func (w *timingBeforeChildren) VisitBefore(ctx selector.Context) error {
	start := time.Now()
	err := w.before.VisitBefore(ctx)
	w.stats.record(label(w.before), time.Since(start))
	return err
}

func (w *timingBeforeChildren) VisitChildText(ctx selector.Context, text string) error {
	start := time.Now()
	err := w.child.VisitChildText(ctx, text)
	w.stats.record(label(w.child), time.Since(start))
	return err
}

type timingBeforeAfter struct {
	before BeforeVisitor
	after  AfterVisitor
	stats  *TimingStats
}

func (w *timingBeforeAfter) VisitBefore(ctx selector.Context) error {
	start := time.Now()
	err := w.before.VisitBefore(ctx)
	w.stats.record(label(w.before), time.Since(start))
	return err
}

func (w *timingBeforeAfter) VisitAfter(ctx selector.Context) error {
	start := time.Now()
	err := w.after.VisitAfter(ctx)
	w.stats.record(label(w.after), time.Since(start))
	return err
}

type timingChildrenAfter struct {
	child ChildrenVisitor
	after AfterVisitor
	stats *TimingStats
}

func (w *timingChildrenAfter) VisitChildText(ctx selector.Context, text string) error {
	start := time.Now()
	err := w.child.VisitChildText(ctx, text)
	w.stats.record(label(w.child), time.Since(start))
	return err
}

func (w *timingChildrenAfter) VisitAfter(ctx selector.Context) error {
	start := time.Now()
	err := w.after.VisitAfter(ctx)
	w.stats.record(label(w.after), time.Since(start))
	return err
}

type timingBeforeChildrenAfter struct {
	before BeforeVisitor
	child  ChildrenVisitor
	after  AfterVisitor
	stats  *TimingStats
}

func (w *timingBeforeChildrenAfter) VisitBefore(ctx selector.Context) error {
	start := time.Now()
	err := w.before.VisitBefore(ctx)
	w.stats.record(label(w.before), time.Since(start))
	return err
}

func (w *timingBeforeChildrenAfter) VisitChildText(ctx selector.Context, text string) error {
	start := time.Now()
	err := w.child.VisitChildText(ctx, text)
	w.stats.record(label(w.child), time.Since(start))
	return err
}

func (w *timingBeforeChildrenAfter) VisitAfter(ctx selector.Context) error {
	start := time.Now()
	err := w.after.VisitAfter(ctx)
	w.stats.record(label(w.after), time.Since(start))
	return err
}
