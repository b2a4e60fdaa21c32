package output

import (
	"io"

	"github.com/goccy/go-yaml"
	"github.com/reglet-dev/consolepatch/internal/application/dto"
)

// YAMLFormatter formats patch plans as YAML.
type YAMLFormatter struct {
	writer io.Writer
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter(w io.Writer) *YAMLFormatter {
	return &YAMLFormatter{writer: w}
}

// Format writes the plan as YAML.
func (f *YAMLFormatter) Format(plan dto.PatchPlan) error {
	encoder := yaml.NewEncoder(f.writer, yaml.Indent(2))

	if err := encoder.Encode(plan); err != nil {
		return err
	}

	return encoder.Close()
}
