// Package console implements the terminal log sink used by launched
// applications: a slog.Handler whose output is produced by a pattern layout
// and whose ANSI support is decided by the terminal capability record.
package console

import (
	"bytes"
	"log/slog"
	"time"

	"github.com/fatih/color"
)

// LoggerKey is the attribute that carries a logger's name.
const LoggerKey = "logger"

// Event is a log record flattened for formatting.
type Event struct {
	Time    time.Time
	Logger  string
	Message string
	Attrs   []slog.Attr
	Level   slog.Level
}

// Formatter renders one piece of an event.
type Formatter interface {
	Format(buf *bytes.Buffer, e *Event)
}

type literalFormatter string

func (f literalFormatter) Format(buf *bytes.Buffer, _ *Event) {
	buf.WriteString(string(f))
}

type timeFormatter struct {
	layout string
}

func (f timeFormatter) Format(buf *bytes.Buffer, e *Event) {
	buf.WriteString(e.Time.Format(f.layout))
}

type levelFormatter struct{}

func (levelFormatter) Format(buf *bytes.Buffer, e *Event) {
	buf.WriteString(e.Level.String())
}

type loggerFormatter struct{}

func (loggerFormatter) Format(buf *bytes.Buffer, e *Event) {
	buf.WriteString(e.Logger)
}

type messageFormatter struct{}

func (messageFormatter) Format(buf *bytes.Buffer, e *Event) {
	buf.WriteString(e.Message)
}

type attrsFormatter struct{}

func (attrsFormatter) Format(buf *bytes.Buffer, e *Event) {
	for _, a := range e.Attrs {
		buf.WriteByte(' ')
		buf.WriteString(a.Key)
		buf.WriteByte('=')
		buf.WriteString(a.Value.String())
	}
}

// HighlightFormatter colors the output of its children by event level.
type HighlightFormatter struct {
	children []Formatter
	errorC   *color.Color
	warnC    *color.Color
	infoC    *color.Color
	debugC   *color.Color
	noANSI   bool
}

// NewHighlightFormatter wraps children with level-based coloring.
func NewHighlightFormatter(children []Formatter) *HighlightFormatter {
	h := &HighlightFormatter{
		children: children,
		errorC:   color.New(color.FgRed, color.Bold),
		warnC:    color.New(color.FgYellow),
		infoC:    color.New(color.FgGreen),
		debugC:   color.New(color.FgCyan),
	}
	// The sink decides whether escapes reach the terminal, not fatih/color's
	// own TTY detection.
	for _, c := range []*color.Color{h.errorC, h.warnC, h.infoC, h.debugC} {
		c.EnableColor()
	}
	return h
}

// NoANSI reports whether coloring is suppressed.
func (h *HighlightFormatter) NoANSI() bool {
	return h.noANSI
}

// SetNoANSI suppresses or restores coloring.
func (h *HighlightFormatter) SetNoANSI(noANSI bool) {
	h.noANSI = noANSI
}

// Children returns the wrapped formatters.
func (h *HighlightFormatter) Children() []Formatter {
	return h.children
}

func (h *HighlightFormatter) Format(buf *bytes.Buffer, e *Event) {
	if h.noANSI {
		for _, c := range h.children {
			c.Format(buf, e)
		}
		return
	}

	var inner bytes.Buffer
	for _, c := range h.children {
		c.Format(&inner, e)
	}
	buf.WriteString(h.colorFor(e.Level).Sprint(inner.String()))
}

func (h *HighlightFormatter) colorFor(level slog.Level) *color.Color {
	switch {
	case level >= slog.LevelError:
		return h.errorC
	case level >= slog.LevelWarn:
		return h.warnC
	case level >= slog.LevelInfo:
		return h.infoC
	default:
		return h.debugC
	}
}
