package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/reglet-dev/consolepatch/internal/application/dto"
)

// TextFormatter writes a patch plan as aligned key/value lines.
type TextFormatter struct {
	writer      io.Writer
	EnableColor bool
}

// NewTextFormatter creates a new text formatter.
func NewTextFormatter(w io.Writer) *TextFormatter {
	return &TextFormatter{writer: w}
}

func (f *TextFormatter) colorize(text string, attrs ...color.Attribute) string {
	if !f.EnableColor {
		return text
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(text)
}

func (f *TextFormatter) actionColor(a dto.PatchAction) color.Attribute {
	switch a {
	case dto.ActionEnable:
		return color.FgGreen
	case dto.ActionDisable:
		return color.FgYellow
	default:
		return color.FgCyan
	}
}

// Format writes the plan.
//
//nolint:errcheck // best-effort terminal output
func (f *TextFormatter) Format(plan dto.PatchPlan) error {
	fmt.Fprintf(f.writer, "classification:  %s\n", plan.Classification)
	fmt.Fprintf(f.writer, "capability:      %s (supported: %t)\n", plan.Capability, plan.Supported)
	fmt.Fprintf(f.writer, "skip constraint: %s\n", plan.SkipConstraint)
	fmt.Fprintf(f.writer, "action:          %s\n", f.colorize(string(plan.Action), f.actionColor(plan.Action), color.Bold))
	return nil
}
