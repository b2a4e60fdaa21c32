// Package apperrors defines application-level error types.
package apperrors

import (
	"fmt"
)

// ProbeError indicates environment classification failed.
// Always recovered to a normal classification by the caller.
type ProbeError struct {
	Cause   error
	Message string
}

func (e *ProbeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("environment probe failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("environment probe failed: %s", e.Message)
}

func (e *ProbeError) Unwrap() error {
	return e.Cause
}

// NewProbeError creates a new probe error.
func NewProbeError(message string, cause error) *ProbeError {
	return &ProbeError{
		Message: message,
		Cause:   cause,
	}
}

// PatchError indicates a capability field override failed.
type PatchError struct {
	Cause error
	Field string // Qualified name of the field being overridden
}

func (e *PatchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to override %s: %v", e.Field, e.Cause)
	}
	return fmt.Sprintf("failed to override %s", e.Field)
}

func (e *PatchError) Unwrap() error {
	return e.Cause
}

// NewPatchError creates a new patch error.
func NewPatchError(field string, cause error) *PatchError {
	return &PatchError{
		Field: field,
		Cause: cause,
	}
}

// SinkError indicates the console sink could not be reinitialized.
type SinkError struct {
	Cause error
	Sink  string
	Stage string // "lookup", "close" or "initialize"
}

func (e *SinkError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("sink %s: %s failed: %v", e.Sink, e.Stage, e.Cause)
	}
	return fmt.Sprintf("sink %s: %s failed", e.Sink, e.Stage)
}

func (e *SinkError) Unwrap() error {
	return e.Cause
}

// NewSinkError creates a new sink error.
func NewSinkError(sink, stage string, cause error) *SinkError {
	return &SinkError{
		Sink:  sink,
		Stage: stage,
		Cause: cause,
	}
}

// ClasspathError indicates the plugin artifact could not be appended to the host classpath.
type ClasspathError struct {
	Cause    error
	Artifact string
}

func (e *ClasspathError) Error() string {
	return fmt.Sprintf("failed to append %s to the class path: %v", e.Artifact, e.Cause)
}

func (e *ClasspathError) Unwrap() error {
	return e.Cause
}

// NewClasspathError creates a new classpath error.
func NewClasspathError(artifact string, cause error) *ClasspathError {
	return &ClasspathError{
		Artifact: artifact,
		Cause:    cause,
	}
}

// GuardError indicates the deduplication guard could not complete.
// Never surfaced beyond the guard itself.
type GuardError struct {
	Cause error
	Path  string
}

func (e *GuardError) Error() string {
	return fmt.Sprintf("deduplication guard failed for %s: %v", e.Path, e.Cause)
}

func (e *GuardError) Unwrap() error {
	return e.Cause
}

// NewGuardError creates a new guard error.
func NewGuardError(path string, cause error) *GuardError {
	return &GuardError{
		Path:  path,
		Cause: cause,
	}
}

// IncompatibleEnvironmentError is the host-visible signal that this plugin
// cannot participate in the current launch.
type IncompatibleEnvironmentError struct {
	Cause   error
	Message string
}

func (e *IncompatibleEnvironmentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("incompatible environment: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("incompatible environment: %s", e.Message)
}

func (e *IncompatibleEnvironmentError) Unwrap() error {
	return e.Cause
}

// NewIncompatibleEnvironmentError creates a new incompatible environment error.
func NewIncompatibleEnvironmentError(message string, cause error) *IncompatibleEnvironmentError {
	return &IncompatibleEnvironmentError{
		Message: message,
		Cause:   cause,
	}
}

// ValidationError indicates system configuration validation failed.
type ValidationError struct {
	Field   string   // Field that failed validation
	Message string   // Error message
	Details []string // Additional details
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s: %s (%d issues)", e.Field, e.Message, len(e.Details))
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string, details ...string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Details: details,
	}
}

// ConfigurationError indicates system config or setup issue.
type ConfigurationError struct {
	Cause   error
	Aspect  string
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("configuration error (%s): %s: %v", e.Aspect, e.Message, e.Cause)
	}
	return fmt.Sprintf("configuration error (%s): %s", e.Aspect, e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// NewConfigurationError creates a new configuration error.
func NewConfigurationError(aspect, message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		Aspect:  aspect,
		Message: message,
		Cause:   cause,
	}
}
