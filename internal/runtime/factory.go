package runtime

import (
	"sync"

	"github.com/smooks-go/cdrl/internal/dispatch"
	"github.com/smooks-go/cdrl/internal/resource"
)

// Runtime bundles a compiled delivery config with the reader pool that
// serves it. It references, never owns, the Factory's cached pool: two
// callers asking for the same profile get Runtimes pointing at the same
// underlying pool. Config is built anew by each Create call and is not
// shared between Runtimes.
type Runtime struct {
	Config *dispatch.DeliveryConfig
	Pool   *ReaderPool
}

// Factory caches one ConfigBuilder per base profile and one ReaderPool
// per builder, using sync.Map for lock-free concurrent access in the
// common case of many callers requesting the same profile (grounded on
// the sync.Map compute-if-absent idiom in
// internal/inmemorystore/store.go).
type Factory struct {
	configs sync.Map // baseProfile string -> *ConfigBuilder
	pools   sync.Map // *ConfigBuilder -> *ReaderPool

	namespaces    map[string]string
	chain         *dispatch.InterceptorChainFactory
	providers     []FilterProvider
	poolSize      int
	readerFactory ReaderFactory
}

// NewFactory returns a Factory that builds delivery configs against
// namespaces using providers (tried in order), wraps handlers through
// chain, and sizes each profile's reader pool to poolSize readers built
// by readerFactory.
func NewFactory(namespaces map[string]string, chain *dispatch.InterceptorChainFactory, poolSize int, readerFactory ReaderFactory, providers ...FilterProvider) *Factory {
	return &Factory{
		namespaces:    namespaces,
		chain:         chain,
		providers:     providers,
		poolSize:      poolSize,
		readerFactory: readerFactory,
	}
}

// Create returns the Runtime for profile, building and caching its
// ConfigBuilder and ReaderPool on first use. profile may be nil, in which
// case the empty base profile is used.
func (f *Factory) Create(profile *resource.ProfileSet, extended []dispatch.Binding) (*Runtime, error) {
	base := ""
	if profile != nil {
		base = profile.BaseProfile
	}

	builder := f.builderFor(base)
	cfg, err := builder.Build(extended)
	if err != nil {
		return nil, err
	}

	pool, err := f.poolFor(builder)
	if err != nil {
		return nil, err
	}

	return &Runtime{Config: cfg, Pool: pool}, nil
}

func (f *Factory) builderFor(baseProfile string) *ConfigBuilder {
	if v, ok := f.configs.Load(baseProfile); ok {
		return v.(*ConfigBuilder)
	}
	builder := NewConfigBuilder(f.namespaces, f.chain, f.providers...)
	actual, _ := f.configs.LoadOrStore(baseProfile, builder)
	return actual.(*ConfigBuilder)
}

func (f *Factory) poolFor(builder *ConfigBuilder) (*ReaderPool, error) {
	if v, ok := f.pools.Load(builder); ok {
		return v.(*ReaderPool), nil
	}
	pool, err := NewReaderPool(f.poolSize, f.readerFactory)
	if err != nil {
		return nil, err
	}
	actual, _ := f.pools.LoadOrStore(builder, pool)
	return actual.(*ReaderPool), nil
}
