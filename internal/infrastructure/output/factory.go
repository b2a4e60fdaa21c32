// Package output renders patch plans for the CLI.
package output

import (
	"fmt"
	"io"

	"github.com/reglet-dev/consolepatch/internal/application/dto"
)

// Formatter writes a patch plan.
type Formatter interface {
	Format(plan dto.PatchPlan) error
}

// FormatterFactory creates formatters by name.
type FormatterFactory struct{}

// NewFormatterFactory creates a new formatter factory.
func NewFormatterFactory() *FormatterFactory {
	return &FormatterFactory{}
}

// Create returns a formatter for the given format name.
func (f *FormatterFactory) Create(format string, writer io.Writer, color bool) (Formatter, error) {
	switch format {
	case "text":
		t := NewTextFormatter(writer)
		t.EnableColor = color
		return t, nil
	case "json":
		return NewJSONFormatter(writer), nil
	case "yaml":
		return NewYAMLFormatter(writer), nil
	default:
		return nil, fmt.Errorf(
			"unknown format: %s (supported: %v)",
			format, f.SupportedFormats(),
		)
	}
}

// SupportedFormats returns list of available format names.
func (f *FormatterFactory) SupportedFormats() []string {
	return []string{"text", "json", "yaml"}
}
