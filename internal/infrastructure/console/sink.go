package console

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"sync"

	"github.com/mattn/go-colorable"
	"github.com/muesli/termenv"
	"github.com/reglet-dev/consolepatch/internal/domain/values"
)

// CapabilitySource supplies the capability record the sink acquires its terminal from.
type CapabilitySource interface {
	Current() values.CapabilityRecord
}

// Sink writes formatted events to a terminal.
//
// The sink reads the capability record only when it acquires the terminal,
// so a changed record takes effect after Close and InitializeTerminal.
type Sink struct {
	out    io.Writer // nil while closed
	target io.Writer
	caps   CapabilitySource
	layout Layout
	level  slog.Leveler
	name   string

	mu    sync.Mutex
	inits int
	ansi  bool
}

// SinkOption configures a Sink.
type SinkOption func(*Sink)

// WithLevel sets the minimum level the sink accepts.
func WithLevel(level slog.Leveler) SinkOption {
	return func(s *Sink) {
		s.level = level
	}
}

// NewSink creates a sink. It must be initialized before it writes anything.
func NewSink(name string, target io.Writer, caps CapabilitySource, layout Layout, opts ...SinkOption) *Sink {
	s := &Sink{
		name:   name,
		target: target,
		caps:   caps,
		layout: layout,
		level:  slog.LevelInfo,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the appender name.
func (s *Sink) Name() string {
	return s.name
}

// Layout returns the sink's layout.
func (s *Sink) Layout() any {
	return s.layout
}

// InitializeTerminal acquires the terminal according to the current
// capability record. With ANSI support an attribute reset is printed first.
func (s *Sink) InitializeTerminal() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.caps.Current().IsSupported() {
		w := s.target
		if f, ok := s.target.(*os.File); ok {
			w = colorable.NewColorable(f)
		}
		if _, err := fmt.Fprint(w, termenv.CSI+termenv.ResetSeq+"m"); err != nil {
			return fmt.Errorf("failed to reset terminal attributes: %w", err)
		}
		s.out = w
		s.ansi = true
	} else {
		s.out = colorable.NewNonColorable(s.target)
		s.ansi = false
	}

	s.inits++
	return nil
}

// Close releases the terminal. Events handled while closed are dropped.
func (s *Sink) Close() error {
	s.mu.Lock()
	s.out = nil
	s.mu.Unlock()
	return nil
}

// ANSI reports whether the acquired terminal passes escape sequences through.
func (s *Sink) ANSI() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ansi
}

// Initializations returns how many times the terminal has been acquired.
func (s *Sink) Initializations() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inits
}

// Enabled implements slog.Handler.
func (s *Sink) Enabled(_ context.Context, level slog.Level) bool {
	return level >= s.level.Level()
}

// Handle implements slog.Handler.
func (s *Sink) Handle(ctx context.Context, r slog.Record) error {
	return (&boundHandler{sink: s}).Handle(ctx, r)
}

// WithAttrs implements slog.Handler.
func (s *Sink) WithAttrs(attrs []slog.Attr) slog.Handler {
	return (&boundHandler{sink: s}).WithAttrs(attrs)
}

// WithGroup implements slog.Handler.
func (s *Sink) WithGroup(name string) slog.Handler {
	return (&boundHandler{sink: s}).WithGroup(name)
}

func (s *Sink) write(e *Event) error {
	var buf bytes.Buffer
	s.layout.Format(&buf, e)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.out == nil {
		return nil
	}
	_, err := s.out.Write(buf.Bytes())
	return err
}

// boundHandler carries logger name, attributes and groups on top of a Sink.
type boundHandler struct {
	sink   *Sink
	logger string
	group  string
	attrs  []slog.Attr
}

func (h *boundHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.sink.Enabled(ctx, level)
}

func (h *boundHandler) Handle(_ context.Context, r slog.Record) error {
	e := &Event{
		Time:    r.Time,
		Level:   r.Level,
		Message: r.Message,
		Logger:  h.logger,
		Attrs:   slices.Clone(h.attrs),
	}
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == LoggerKey && h.group == "" {
			e.Logger = a.Value.String()
			return true
		}
		e.Attrs = append(e.Attrs, h.qualify(a))
		return true
	})
	return h.sink.write(e)
}

func (h *boundHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := h.clone()
	for _, a := range attrs {
		if a.Key == LoggerKey && h.group == "" {
			next.logger = a.Value.String()
			continue
		}
		next.attrs = append(next.attrs, h.qualify(a))
	}
	return next
}

func (h *boundHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := h.clone()
	if next.group != "" {
		next.group += "."
	}
	next.group += name
	return next
}

func (h *boundHandler) clone() *boundHandler {
	return &boundHandler{
		sink:   h.sink,
		logger: h.logger,
		group:  h.group,
		attrs:  slices.Clone(h.attrs),
	}
}

func (h *boundHandler) qualify(a slog.Attr) slog.Attr {
	if h.group == "" {
		return a
	}
	return slog.Attr{Key: h.group + "." + a.Key, Value: a.Value}
}
