package services

import (
	"errors"
	"fmt"
	"log/slog"

	apperrors "github.com/reglet-dev/consolepatch/internal/application/errors"
	"github.com/reglet-dev/consolepatch/internal/application/ports"
)

// SinkReinitializer makes the console sink reacquire its terminal so it
// picks up a patched capability record.
type SinkReinitializer struct {
	registry ports.AppenderRegistry
	logger   *slog.Logger
	appender string
}

// NewSinkReinitializer creates a reinitializer for the named appender.
func NewSinkReinitializer(registry ports.AppenderRegistry, appender string, logger *slog.Logger) *SinkReinitializer {
	if logger == nil {
		logger = slog.Default()
	}
	return &SinkReinitializer{
		registry: registry,
		appender: appender,
		logger:   logger,
	}
}

// Reinitialize closes the sink and acquires the terminal again.
// Writes issued between the two steps are lost.
func (r *SinkReinitializer) Reinitialize() error {
	appender, ok := r.registry.Appender(r.appender)
	if !ok {
		return apperrors.NewSinkError(r.appender, "lookup", errors.New("appender not registered"))
	}

	sink, ok := appender.(ports.TerminalSink)
	if !ok {
		return apperrors.NewSinkError(r.appender, "lookup", fmt.Errorf("appender is %T, not a terminal sink", appender))
	}

	if err := sink.Close(); err != nil {
		return apperrors.NewSinkError(r.appender, "close", err)
	}
	if err := sink.InitializeTerminal(); err != nil {
		return apperrors.NewSinkError(r.appender, "initialize", err)
	}

	r.logger.Debug("console sink reinitialized", "appender", r.appender)
	return nil
}
