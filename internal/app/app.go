package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/smooks-go/cdrl/internal/ctxlog"
	"github.com/smooks-go/cdrl/internal/digester"
	"github.com/smooks-go/cdrl/internal/registry"
	"github.com/smooks-go/cdrl/internal/resource"
	"github.com/smooks-go/cdrl/modules/trace"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle: a logger, a populated visitor Registry, and the digested
// resource.Seq backing the .cdrl document named by Config.ConfigPath.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	seq      *resource.Seq
}

// NewApp is the constructor for the main application. It digests
// cfg.ConfigPath eagerly, the same way the teacher's NewApp loads the grid
// eagerly: a malformed configuration is a fatal startup error, not
// something deferred to Run.
func NewApp(outW io.Writer, cfg *Config, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		// A trace.Module without its own logger logs through the App's.
		if tm, ok := mod.(*trace.Module); ok && tm.Logger == nil {
			mod = &trace.Module{Logger: logger}
		}
		mod.Register(reg)
	}
	logger.Debug("All Go modules registered.", "count", len(modules))

	configFile, err := os.Open(cfg.ConfigPath)
	if err != nil {
		panic(fmt.Errorf("failed to open configuration %q: %w", cfg.ConfigPath, err))
	}
	defer configFile.Close()

	baseURI, err := fileURI(cfg.ConfigPath)
	if err != nil {
		panic(err)
	}

	seq, err := digester.Digest(ctx, configFile, baseURI, fileLoader{}, noExtensionResolver{})
	if err != nil {
		panic(fmt.Errorf("failed to digest configuration: %w", err))
	}
	logger.Debug("Configuration digested.", "resource_configs", seq.Len())

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		seq:      seq,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
