package console

import (
	"fmt"
	"strings"
)

// LoggerPattern routes a logger (and its children) to its own pattern.
type LoggerPattern struct {
	Logger  string
	Pattern string
}

type loggerRoute struct {
	logger     string
	formatters []Formatter
}

// LoggerNameSelector chooses a formatter chain by logger name, falling back
// to a default chain.
type LoggerNameSelector struct {
	defaults []Formatter
	routes   []loggerRoute
}

// NewLoggerNameSelector compiles the default pattern and every logger route.
func NewLoggerNameSelector(defaultPattern string, loggers ...LoggerPattern) (*LoggerNameSelector, error) {
	if defaultPattern == "" {
		defaultPattern = DefaultPattern
	}
	defaults, err := CompilePattern(defaultPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid default pattern: %w", err)
	}

	s := &LoggerNameSelector{defaults: defaults}
	for _, lp := range loggers {
		formatters, err := CompilePattern(lp.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern for logger %s: %w", lp.Logger, err)
		}
		s.routes = append(s.routes, loggerRoute{logger: lp.Logger, formatters: formatters})
	}
	return s, nil
}

// Select returns the chain of the first route matching logger.
func (s *LoggerNameSelector) Select(logger string) []Formatter {
	for _, r := range s.routes {
		if logger == r.logger || strings.HasPrefix(logger, r.logger+".") {
			return r.formatters
		}
	}
	return s.defaults
}

// DefaultFormatters returns the top-level default chain.
func (s *LoggerNameSelector) DefaultFormatters() []any {
	return toAny(s.defaults)
}

// LoggerFormatters returns the top-level chain of every logger route.
func (s *LoggerNameSelector) LoggerFormatters() [][]any {
	out := make([][]any, 0, len(s.routes))
	for _, r := range s.routes {
		out = append(out, toAny(r.formatters))
	}
	return out
}

func toAny(formatters []Formatter) []any {
	out := make([]any, len(formatters))
	for i, f := range formatters {
		out[i] = f
	}
	return out
}
