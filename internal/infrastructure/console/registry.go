package console

import (
	"context"
	"errors"
	"log/slog"
)

// Registry is the logging configuration: a set of named appenders that every
// logger created from it fans out to.
type Registry struct {
	appenders map[string]slog.Handler
	order     []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{appenders: make(map[string]slog.Handler)}
}

// Register adds or replaces a named appender.
func (r *Registry) Register(name string, h slog.Handler) {
	if _, ok := r.appenders[name]; !ok {
		r.order = append(r.order, name)
	}
	r.appenders[name] = h
}

// Appender returns the appender registered under name.
func (r *Registry) Appender(name string) (any, bool) {
	h, ok := r.appenders[name]
	return h, ok
}

// Logger returns a logger named name that writes to every appender.
func (r *Registry) Logger(name string) *slog.Logger {
	handlers := make([]slog.Handler, 0, len(r.order))
	for _, n := range r.order {
		handlers = append(handlers, r.appenders[n])
	}
	return slog.New(fanout(handlers)).With(LoggerKey, name)
}

type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}
