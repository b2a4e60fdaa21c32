package services

import (
	"fmt"
	"log/slog"

	"github.com/reglet-dev/consolepatch/internal/application/ports"
)

// DisableANSITask suppresses ANSI output in every highlight formatter of
// the console sink.
type DisableANSITask struct {
	registry ports.AppenderRegistry
	logger   *slog.Logger
	appender string
}

// NewDisableANSITask creates the task for the named appender.
func NewDisableANSITask(registry ports.AppenderRegistry, appender string, logger *slog.Logger) *DisableANSITask {
	if logger == nil {
		logger = slog.Default()
	}
	return &DisableANSITask{
		registry: registry,
		appender: appender,
		logger:   logger,
	}
}

// Execute sets NoANSI on every highlight formatter and returns how many it
// changed. When the logging configuration does not have the expected shape
// it logs why and changes nothing.
func (t *DisableANSITask) Execute() int {
	selector, ok := t.locateSelector()
	if !ok {
		return 0
	}

	var highlights []ports.HighlightFormatter
	collect := func(formatters []any) {
		for _, f := range formatters {
			if h, ok := f.(ports.HighlightFormatter); ok {
				highlights = append(highlights, h)
			}
		}
	}

	collect(selector.DefaultFormatters())
	for _, chain := range selector.LoggerFormatters() {
		collect(chain)
	}

	for _, h := range highlights {
		h.SetNoANSI(true)
	}

	t.logger.Debug("disabled ANSI highlighting", "appender", t.appender, "formatters", len(highlights))
	return len(highlights)
}

func (t *DisableANSITask) locateSelector() (ports.LoggerNameSelector, bool) {
	appender, ok := t.registry.Appender(t.appender)
	if !ok {
		t.logger.Error("console appender not found", "appender", t.appender)
		return nil, false
	}

	sink, ok := appender.(ports.TerminalSink)
	if !ok {
		t.logger.Error("appender is not a terminal sink", "appender", t.appender, "type", fmt.Sprintf("%T", appender))
		return nil, false
	}

	layout, ok := sink.Layout().(ports.PatternLayout)
	if !ok {
		t.logger.Error("sink layout is not a pattern layout", "appender", t.appender, "type", fmt.Sprintf("%T", sink.Layout()))
		return nil, false
	}

	selector, ok := layout.Selector().(ports.LoggerNameSelector)
	if !ok {
		t.logger.Error("pattern selector is not a logger name selector", "appender", t.appender, "type", fmt.Sprintf("%T", layout.Selector()))
		return nil, false
	}

	return selector, true
}
