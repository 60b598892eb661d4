// Package trace provides the one built-in visitor this engine ships: a
// diagnostic logger bound to "cdrl.trace.Logger" that records every
// element it is bound to at debug level. It follows the teacher's
// registry.Module convention (see modules/socketio/module.go in the
// pack) generalized from runner registration to visitor registration.
package trace

import (
	"log/slog"

	"github.com/smooks-go/cdrl/internal/dispatch"
	"github.com/smooks-go/cdrl/internal/registry"
	"github.com/smooks-go/cdrl/internal/selector"
)

// ResourceName is the resource locator a <resource-config resource="..."/>
// binds to this visitor.
const ResourceName = "cdrl.trace.Logger"

// Logger visits Before/Child/After, logging each firing at debug level.
type Logger struct {
	logger *slog.Logger
}

// New returns a Logger writing through logger.
func New(logger *slog.Logger) *Logger {
	return &Logger{logger: logger}
}

// VisitBefore implements dispatch.BeforeVisitor.
func (l *Logger) VisitBefore(ctx selector.Context) error {
	l.logger.Debug("trace: before", "element", ctx.ElementName(), "attributes", ctx.Attributes())
	return nil
}

// VisitChildText implements dispatch.ChildrenVisitor.
func (l *Logger) VisitChildText(ctx selector.Context, text string) error {
	l.logger.Debug("trace: child text", "element", ctx.ElementName(), "text", text)
	return nil
}

// VisitAfter implements dispatch.AfterVisitor.
func (l *Logger) VisitAfter(ctx selector.Context) error {
	l.logger.Debug("trace: after", "element", ctx.ElementName(), "text", ctx.Text())
	return nil
}

// Module registers the Logger visitor factory under ResourceName.
type Module struct {
	Logger *slog.Logger
}

// Register implements registry.Module.
func (m *Module) Register(r *registry.Registry) {
	logger := m.Logger
	if logger == nil {
		logger = slog.Default()
	}
	r.RegisterVisitor(ResourceName, func() (dispatch.Visitor, error) {
		return New(logger), nil
	})
}
