package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/smooks-go/cdrl/internal/ctxlog"
	"github.com/smooks-go/cdrl/internal/dispatch"
	"github.com/smooks-go/cdrl/internal/execute"
	"github.com/smooks-go/cdrl/internal/registry"
	"github.com/smooks-go/cdrl/internal/resource"
	"github.com/smooks-go/cdrl/internal/runtime"
)

// Run drives one input document through the delivery config built from
// the App's digested resource.Seq: bind visitors, plan the delivery
// config, acquire a pooled reader, and execute.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	bindings, err := bindVisitors(a.registry, a.seq)
	if err != nil {
		return err
	}
	a.logger.Debug("Visitors bound.", "count", len(bindings))

	chain := dispatch.NewInterceptorChainFactory(dispatch.NewTimingInterceptor(dispatch.NewTimingStats()))
	factory := runtime.NewFactory(nil, chain, cfg.ReaderPoolSize, trivialReaderFactory, runtime.NewSAXNGProvider())

	rt, err := factory.Create(profileSet(cfg.Profile), bindings)
	if err != nil {
		return fmt.Errorf("building runtime: %w", err)
	}
	a.logger.Debug("Runtime built.", "reader_pool_size", cfg.ReaderPoolSize)

	reader, err := rt.Pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquiring pooled reader: %w", err)
	}
	tainted := false
	defer func() { rt.Pool.Release(reader, tainted) }()

	inputFile, err := os.Open(cfg.InputPath)
	if err != nil {
		tainted = true
		return fmt.Errorf("opening input %q: %w", cfg.InputPath, err)
	}
	defer inputFile.Close()

	src := execute.NewXMLEventSource(inputFile)
	if err := execute.Run(ctx, rt.Config, src); err != nil {
		tainted = true
		return fmt.Errorf("execution failed: %w", err)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// bindVisitors builds the Binding list the planner consumes: one Binding
// per resource-config, skipping the GLOBAL_PARAMETERS sentinel and the
// org.xml.sax.driver reader configs, neither of which names a
// dispatch.Visitor.
func bindVisitors(reg *registry.Registry, seq *resource.Seq) ([]dispatch.Binding, error) {
	var bindings []dispatch.Binding
	for _, c := range seq.Configs() {
		if c.Resource == resource.GlobalParametersSelector {
			continue
		}
		if c.SelectorPath.Raw == "org.xml.sax.driver" {
			continue
		}
		visitor, err := reg.Build(c.Resource)
		if err != nil {
			return nil, fmt.Errorf("binding resource-config %q: %w", c.Resource, err)
		}
		bindings = append(bindings, dispatch.Binding{Config: c, Handler: visitor})
	}
	return bindings, nil
}

// profileSet parses the --profile flag's "base[,sub1,sub2]" form into a
// resource.ProfileSet, or returns nil when raw is empty (the default
// profile).
func profileSet(raw string) *resource.ProfileSet {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	return resource.NewProfileSet(parts[0], parts[1:]...)
}

// trivialReaderFactory builds the pool's Reader handles. Readers carry no
// per-document state in this engine's execution model, so every slot is
// interchangeable.
func trivialReaderFactory() (*runtime.Reader, error) {
	return &runtime.Reader{}, nil
}
