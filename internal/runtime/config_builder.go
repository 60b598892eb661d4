package runtime

import "github.com/smooks-go/cdrl/internal/dispatch"

// FilterProvider claims a binding set and compiles it into a delivery
// config. Exactly one provider is expected to claim any given binding set;
// ConfigBuilder.Build asks each in registration order and uses the first
// that claims it.
type FilterProvider interface {
	// IsProvider reports whether this provider can build a delivery
	// config for bindings.
	IsProvider(bindings []dispatch.Binding) bool
	// Build compiles bindings into a delivery config.
	Build(bindings []dispatch.Binding, namespaces map[string]string, chain *dispatch.InterceptorChainFactory) (*dispatch.DeliveryConfig, error)
}

// saxNGProvider is the one FilterProvider this engine ships: the
// streaming, SAX-NG-equivalent strategy. A DOM provider would be a second
// FilterProvider implementation selected the same way; spec.md's
// Non-goals exclude it, so it is never registered.
type saxNGProvider struct{}

// NewSAXNGProvider returns the streaming filter provider.
func NewSAXNGProvider() FilterProvider {
	return saxNGProvider{}
}

func (saxNGProvider) IsProvider(bindings []dispatch.Binding) bool {
	// The streaming provider accepts any binding set; it is always
	// registered last so a future DOM provider could claim DOM-only
	// bindings first.
	return true
}

func (saxNGProvider) Build(bindings []dispatch.Binding, namespaces map[string]string, chain *dispatch.InterceptorChainFactory) (*dispatch.DeliveryConfig, error) {
	cfg, _, err := dispatch.Plan(bindings, namespaces, chain)
	return cfg, err
}

// ConfigBuilder compiles a binding set into a delivery config by asking
// each registered FilterProvider, in order, whether it claims the set.
type ConfigBuilder struct {
	providers  []FilterProvider
	namespaces map[string]string
	chain      *dispatch.InterceptorChainFactory
}

// NewConfigBuilder returns a ConfigBuilder trying providers in order.
func NewConfigBuilder(namespaces map[string]string, chain *dispatch.InterceptorChainFactory, providers ...FilterProvider) *ConfigBuilder {
	return &ConfigBuilder{providers: providers, namespaces: namespaces, chain: chain}
}

// Build selects the first provider that claims bindings and asks it to
// compile the delivery config.
func (b *ConfigBuilder) Build(extended []dispatch.Binding) (*dispatch.DeliveryConfig, error) {
	for _, p := range b.providers {
		if p.IsProvider(extended) {
			return p.Build(extended, b.namespaces, b.chain)
		}
	}
	return nil, &NoFilterProviderError{BindingCount: len(extended)}
}
