// Package ports defines interfaces for infrastructure dependencies.
// These are the "ports" in hexagonal architecture - abstractions that
// the application layer depends on but doesn't implement.
//
// Every handle here is host-owned and patched by this system; none of them
// is created or destroyed by the application layer.
package ports

import (
	"net/url"

	"github.com/reglet-dev/consolepatch/internal/domain/values"
)

// EnvironmentProbe classifies the launch environment.
type EnvironmentProbe interface {
	// Classify never fails; inspection errors yield ClassificationNormal.
	Classify() values.Classification
}

// CapabilityStore is the process-wide cached capability record.
type CapabilityStore interface {
	// Current reads the live cached record.
	Current() values.CapabilityRecord

	// Override assigns the record even when the owner has sealed it.
	Override(target values.CapabilityRecord) error
}

// TerminalSink is a console sink that can drop and reacquire its terminal.
type TerminalSink interface {
	Close() error
	InitializeTerminal() error

	// Layout returns the sink's layout. Callers type-assert it to PatternLayout.
	Layout() any
}

// PatternLayout is a layout whose formatting is chosen by a pattern selector.
type PatternLayout interface {
	// Selector returns the pattern selector. Callers type-assert it to LoggerNameSelector.
	Selector() any
}

// LoggerNameSelector selects a formatter chain by logger name.
type LoggerNameSelector interface {
	DefaultFormatters() []any
	LoggerFormatters() [][]any
}

// HighlightFormatter is a formatter that colors its output by log level.
type HighlightFormatter interface {
	NoANSI() bool
	SetNoANSI(noANSI bool)
}

// AppenderRegistry exposes the logging configuration's named appenders.
type AppenderRegistry interface {
	Appender(name string) (any, bool)
}

// Classpath is the host's main loader search path.
type Classpath interface {
	Contains(u *url.URL) bool
	Append(u *url.URL) error
}

// PathQueue is the host's ordered collection of plugin paths to exclude from
// regular discovery. Append-only from this system's point of view.
type PathQueue interface {
	Contains(path string) bool
	Append(path string)
	Paths() []string
}

// LaunchEnvironment is what the host hands to a service during bootstrap.
type LaunchEnvironment interface {
	// BaseDir returns the host's working directory, if one is configured.
	BaseDir() (string, bool)
	Classpath() Classpath
	TransformerQueue() PathQueue
}

// ArtifactLocator reports where the running plugin artifact was loaded from.
type ArtifactLocator interface {
	Location() (string, error)
}
