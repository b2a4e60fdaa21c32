package services

import (
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path/filepath"

	apperrors "github.com/reglet-dev/consolepatch/internal/application/errors"
	"github.com/reglet-dev/consolepatch/internal/application/ports"
	"github.com/reglet-dev/consolepatch/internal/domain/values"
)

// CursorLeft10 moves the cursor ten columns left, over the attribute reset
// the sink prints when it acquires an ANSI terminal.
const CursorLeft10 = "\x1b[10D"

// EnableANSITask forces ANSI output on.
type EnableANSITask struct {
	locator   ports.ArtifactLocator
	patcher   *PatchEngine
	reinit    *SinkReinitializer
	stdout    io.Writer
	logger    *slog.Logger
	target    values.CapabilityRecord
	cursorFix bool
}

// EnableANSIOptions configures an EnableANSITask.
type EnableANSIOptions struct {
	Locator   ports.ArtifactLocator
	Patcher   *PatchEngine
	Reinit    *SinkReinitializer
	Stdout    io.Writer
	Logger    *slog.Logger
	Target    values.CapabilityRecord
	CursorFix bool
}

// NewEnableANSITask creates the task.
func NewEnableANSITask(opts EnableANSIOptions) *EnableANSITask {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &EnableANSITask{
		locator:   opts.Locator,
		patcher:   opts.Patcher,
		reinit:    opts.Reinit,
		stdout:    opts.Stdout,
		logger:    opts.Logger,
		target:    opts.Target,
		cursorFix: opts.CursorFix,
	}
}

// AugmentClasspath appends the plugin artifact to cp unless it is already there.
func (t *EnableANSITask) AugmentClasspath(cp ports.Classpath) error {
	location, err := t.locator.Location()
	if err != nil {
		return apperrors.NewClasspathError("<unknown>", err)
	}

	abs, err := filepath.Abs(location)
	if err != nil {
		return apperrors.NewClasspathError(location, err)
	}

	u := &url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	if cp.Contains(u) {
		return nil
	}
	if err := cp.Append(u); err != nil {
		return apperrors.NewClasspathError(u.String(), err)
	}

	t.logger.Debug("appended plugin artifact to the class path", "artifact", u.String())
	return nil
}

// Execute overrides the capability record, reinitializes the sink and
// repositions the cursor. It stops at the first failing step.
func (t *EnableANSITask) Execute() error {
	if err := t.patcher.ForceCapability(t.target); err != nil {
		return err
	}
	t.logger.Debug("capability version", "version", t.patcher.CurrentCapability().String())

	if err := t.reinit.Reinitialize(); err != nil {
		return err
	}

	if t.cursorFix {
		if _, err := io.WriteString(t.stdout, CursorLeft10); err != nil {
			return fmt.Errorf("failed to reposition cursor: %w", err)
		}
	}
	return nil
}
