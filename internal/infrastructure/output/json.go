package output

import (
	"encoding/json"
	"io"

	"github.com/reglet-dev/consolepatch/internal/application/dto"
)

// JSONFormatter formats patch plans as indented JSON.
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// Format writes the plan as JSON.
func (f *JSONFormatter) Format(plan dto.PatchPlan) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(plan)
}
