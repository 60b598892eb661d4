package runtime

import "context"

// Reader is an opaque, reusable handle to whatever per-document parsing
// resource is expensive enough to pool (e.g. a compiled parser or decoder
// state). ReaderPool manages its lifecycle; it never looks inside one.
type Reader struct {
	ID int
}

// ReaderFactory constructs one fresh Reader. Pools call it once per slot
// at construction time; a Reader is never reconstructed after that except
// by the caller replacing the pool.
type ReaderFactory func() (*Reader, error)

// ReaderPool is a blocking bounded pool of Readers, implemented as a
// buffered channel so Acquire/Release never need their own locking.
type ReaderPool struct {
	slots chan *Reader
}

// NewReaderPool builds size Readers via factory and returns a pool
// holding them.
func NewReaderPool(size int, factory ReaderFactory) (*ReaderPool, error) {
	pool := &ReaderPool{slots: make(chan *Reader, size)}
	for i := 0; i < size; i++ {
		r, err := factory()
		if err != nil {
			return nil, err
		}
		pool.slots <- r
	}
	return pool, nil
}

// Acquire blocks until a Reader is available or ctx is done, in which
// case it returns a ReaderAcquisitionTimeoutError.
func (p *ReaderPool) Acquire(ctx context.Context) (*Reader, error) {
	select {
	case r := <-p.slots:
		return r, nil
	case <-ctx.Done():
		return nil, &ReaderAcquisitionTimeoutError{Cause: ctx.Err()}
	}
}

// Release returns r to the pool. A tainted Reader (one that errored
// mid-document) is discarded instead of recycled, per spec.md §5; the
// pool shrinks by one slot rather than risk handing out corrupted state.
func (p *ReaderPool) Release(r *Reader, tainted bool) {
	if tainted {
		return
	}
	select {
	case p.slots <- r:
	default:
		// Pool was over capacity (shouldn't happen with correct
		// Acquire/Release pairing); drop rather than block the caller.
	}
}

// Len reports how many Readers are currently available, for diagnostics
// and tests.
func (p *ReaderPool) Len() int {
	return len(p.slots)
}
