// Package adapters provides infrastructure adapters that implement application ports.
// These adapters wrap existing infrastructure components to satisfy port interfaces.
package adapters

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/reglet-dev/consolepatch/internal/application/ports"
	"github.com/reglet-dev/consolepatch/internal/infrastructure/console"
	"github.com/reglet-dev/consolepatch/internal/infrastructure/host"
	"github.com/reglet-dev/consolepatch/internal/infrastructure/probe"
	"github.com/reglet-dev/consolepatch/internal/infrastructure/terminal"
)

// Ensure adapters implement ports at compile time
var (
	_ ports.ArtifactLocator    = (*ExecutableLocator)(nil)
	_ ports.ArtifactLocator    = StaticLocator("")
	_ ports.EnvironmentProbe   = (*probe.StackProbe)(nil)
	_ ports.CapabilityStore    = (*terminal.Store)(nil)
	_ ports.AppenderRegistry   = (*console.Registry)(nil)
	_ ports.TerminalSink       = (*console.Sink)(nil)
	_ ports.PatternLayout      = (*console.PatternLayout)(nil)
	_ ports.LoggerNameSelector = (*console.LoggerNameSelector)(nil)
	_ ports.HighlightFormatter = (*console.HighlightFormatter)(nil)
	_ ports.LaunchEnvironment  = (*host.Environment)(nil)
	_ ports.Classpath          = (*host.Classpath)(nil)
	_ ports.PathQueue          = (*host.PathQueue)(nil)
)

// ExecutableLocator reports the running executable as the plugin artifact.
type ExecutableLocator struct {
	executable func() (string, error)
}

// NewExecutableLocator creates a locator backed by os.Executable.
func NewExecutableLocator() *ExecutableLocator {
	return &ExecutableLocator{executable: os.Executable}
}

// Location returns the absolute path the executable was started from.
// Symbolic links are deliberately left unresolved.
func (l *ExecutableLocator) Location() (string, error) {
	path, err := l.executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate plugin artifact: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to locate plugin artifact: %w", err)
	}
	return abs, nil
}

// StaticLocator reports a fixed artifact path, e.g. one supplied on the command line.
type StaticLocator string

// Location returns the configured path.
func (l StaticLocator) Location() (string, error) {
	if l == "" {
		return "", fmt.Errorf("no plugin artifact configured")
	}
	return string(l), nil
}
