// Package dto contains data transfer objects passed between the CLI and
// the application services.
package dto

// PatchAction is what the console patch service does on load.
type PatchAction string

const (
	// ActionEnable forces ANSI output on.
	ActionEnable PatchAction = "enable"
	// ActionDisable turns highlighting off for an incompatible front-end.
	ActionDisable PatchAction = "disable"
	// ActionSkip leaves a satisfactory capability record alone.
	ActionSkip PatchAction = "skip"
)

// PatchPlan describes the decision the service would make for the current
// environment without applying it.
type PatchPlan struct {
	Classification string      `json:"classification" yaml:"classification"`
	Capability     string      `json:"capability" yaml:"capability"`
	SkipConstraint string      `json:"skip_constraint" yaml:"skip_constraint"`
	Action         PatchAction `json:"action" yaml:"action"`
	Supported      bool        `json:"supported" yaml:"supported"`
}
