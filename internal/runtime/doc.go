// Package runtime caches compiled delivery configs per profile and hands
// out pooled readers that drive the streaming engine against them. It is
// the Go equivalent of DefaultContentDeliveryRuntimeFactory: a Factory
// builds a ConfigBuilder once per base profile and a *ReaderPool once per
// builder, reusing both on every later Create call for the same profile.
// The *dispatch.DeliveryConfig itself is not cached: every Create call
// builds a new one from the bindings it is given.
package runtime
