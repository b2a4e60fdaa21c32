package services

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	apperrors "github.com/reglet-dev/consolepatch/internal/application/errors"
	"github.com/reglet-dev/consolepatch/internal/application/ports"
)

// DefaultPluginDirName is the plugin directory below the host base directory.
const DefaultPluginDirName = "plugins"

// DeduplicationGuard keeps the host scanner from discovering the plugin
// artifact a second time through a symbolic link alias.
type DeduplicationGuard struct {
	locator       ports.ArtifactLocator
	logger        *slog.Logger
	pluginDirName string
}

// NewDeduplicationGuard creates a guard for the plugin directory pluginDirName.
func NewDeduplicationGuard(locator ports.ArtifactLocator, pluginDirName string, logger *slog.Logger) *DeduplicationGuard {
	if pluginDirName == "" {
		pluginDirName = DefaultPluginDirName
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DeduplicationGuard{
		locator:       locator,
		pluginDirName: pluginDirName,
		logger:        logger,
	}
}

// Run applies the guard to the launch environment. It never fails.
func (g *DeduplicationGuard) Run(env ports.LaunchEnvironment) {
	base, ok := env.BaseDir()
	if !ok {
		return
	}
	location, err := g.locator.Location()
	if err != nil {
		return
	}
	g.EnsureExcluded(filepath.Join(base, g.pluginDirName), location, env.TransformerQueue())
}

// EnsureExcluded queues the plugin directory's copy of the artifact when that
// copy is a symbolic link. All failures are swallowed.
func (g *DeduplicationGuard) EnsureExcluded(pluginDir, artifactLocation string, queue ports.PathQueue) {
	defer func() {
		_ = recover()
	}()
	_ = g.ensureExcluded(pluginDir, artifactLocation, queue)
}

func (g *DeduplicationGuard) ensureExcluded(pluginDir, artifactLocation string, queue ports.PathQueue) error {
	dir, err := filepath.Abs(pluginDir)
	if err != nil {
		return apperrors.NewGuardError(pluginDir, err)
	}
	path := filepath.Join(dir, filepath.Base(artifactLocation))

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return apperrors.NewGuardError(path, err)
	}

	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return apperrors.NewGuardError(path, err)
	}
	if resolved == path {
		return nil
	}

	if queue == nil {
		return apperrors.NewGuardError(path, fmt.Errorf("host has no transformer queue"))
	}
	if !queue.Contains(path) {
		queue.Append(path)
	}
	return nil
}
