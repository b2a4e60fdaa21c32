// Package system provides infrastructure for system-level configuration.
// This includes loading the system config file (~/.consolepatch/config.yaml)
// and converting it into the settings each component consumes.
package system

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/goccy/go-yaml"
	apperrors "github.com/reglet-dev/consolepatch/internal/application/errors"
	"github.com/reglet-dev/consolepatch/internal/domain/values"
	"github.com/reglet-dev/consolepatch/internal/infrastructure/console"
	"github.com/reglet-dev/consolepatch/internal/infrastructure/probe"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var schemaJSON []byte

// Config represents the global configuration file (~/.consolepatch/config.yaml).
type Config struct {
	Console    ConsoleConfig    `yaml:"console"`
	Capability CapabilityConfig `yaml:"capability"`
	Plugins    PluginsConfig    `yaml:"plugins"`
	Probe      ProbeConfig      `yaml:"probe"`
}

// ConsoleConfig configures the console sink.
type ConsoleConfig struct {
	Appender  string                `yaml:"appender"`
	Pattern   string                `yaml:"pattern"`
	Level     string                `yaml:"level"`
	Loggers   []LoggerPatternConfig `yaml:"loggers"`
	CursorFix bool                  `yaml:"cursor_fix"`
}

// LoggerPatternConfig routes one logger to its own pattern.
type LoggerPatternConfig struct {
	Name    string `yaml:"name"`
	Pattern string `yaml:"pattern"`
}

// ProbeConfig lists the launcher front-ends that cannot render ANSI output.
type ProbeConfig struct {
	Frontends []FrontendConfig `yaml:"frontends"`
}

// FrontendConfig describes one incompatible front-end.
type FrontendConfig struct {
	Name          string `yaml:"name"`
	EntryPoint    string `yaml:"entry_point"`
	ParentProcess string `yaml:"parent_process"`
	Rule          string `yaml:"rule"`
}

// CapabilityConfig controls when and how the capability record is overridden.
type CapabilityConfig struct {
	// SkipConstraint is a semver constraint; a matching record is left alone.
	SkipConstraint string `yaml:"skip_constraint"`
	// Target is the record written by the override ("major.minor").
	Target string `yaml:"target"`
}

// PluginsConfig locates the host plugin directory.
type PluginsConfig struct {
	DirName string `yaml:"dir_name"`
}

// ConfigLoader loads system configuration from disk.
type ConfigLoader struct{}

// NewConfigLoader creates a new system config loader.
func NewConfigLoader() *ConfigLoader {
	return &ConfigLoader{}
}

// DefaultConfig returns a Config with safe defaults for all fields.
// This is used when no system config file exists.
func DefaultConfig() *Config {
	frontends := make([]FrontendConfig, 0, len(probe.DefaultFrontends()))
	for _, f := range probe.DefaultFrontends() {
		frontends = append(frontends, FrontendConfig{
			Name:          f.Name,
			EntryPoint:    f.EntryPoint,
			ParentProcess: f.ParentProcess,
			Rule:          f.Rule,
		})
	}

	return &Config{
		Console: ConsoleConfig{
			Appender:  "Console",
			Pattern:   console.DefaultPattern,
			Level:     "info",
			Loggers:   []LoggerPatternConfig{},
			CursorFix: true,
		},
		Probe: ProbeConfig{
			Frontends: frontends,
		},
		Capability: CapabilityConfig{
			SkipConstraint: ">= 1",
			Target:         values.RichANSI.String(),
		},
		Plugins: PluginsConfig{
			DirName: "plugins",
		},
	}
}

// Load loads the system configuration from the specified path.
// If the file does not exist, returns DefaultConfig(). Keys missing from
// the file keep their default values.
func (l *ConfigLoader) Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}

	//nolint:gosec // G304: path is user-provided config file, validated to exist above
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read system config: %w", err)
	}

	return Parse(data)
}

// Parse validates data against the config schema and decodes it over the defaults.
func Parse(data []byte) (*Config, error) {
	config := DefaultConfig()
	if len(bytes.TrimSpace(data)) == 0 {
		return config, nil
	}

	if err := validate(data); err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse system config: %w", err)
	}

	return config, nil
}

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("config.schema.json", bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("failed to load config schema: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile("config.schema.json")
	})
	return schema, schemaErr
}

func validate(data []byte) error {
	sch, err := compiledSchema()
	if err != nil {
		return err
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse system config: %w", err)
	}

	if err := sch.Validate(doc); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return apperrors.NewValidationError("system config", "does not match schema", schemaMessages(validationErr)...)
		}
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

func schemaMessages(err *jsonschema.ValidationError) []string {
	var messages []string

	var collect func(*jsonschema.ValidationError)
	collect = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 && e.Message != "" {
			location := e.InstanceLocation
			if location == "" {
				location = "(root)"
			}
			messages = append(messages, fmt.Sprintf("%s: %s", location, e.Message))
		}
		for _, cause := range e.Causes {
			collect(cause)
		}
	}
	collect(err)

	return messages
}

// ToFrontends converts the probe section into probe frontends.
func (c *Config) ToFrontends() []probe.Frontend {
	frontends := make([]probe.Frontend, 0, len(c.Probe.Frontends))
	for _, f := range c.Probe.Frontends {
		frontends = append(frontends, probe.Frontend{
			Name:          f.Name,
			EntryPoint:    f.EntryPoint,
			ParentProcess: f.ParentProcess,
			Rule:          f.Rule,
		})
	}
	return frontends
}

// ToLoggerPatterns converts the console logger routes.
func (c *Config) ToLoggerPatterns() []console.LoggerPattern {
	patterns := make([]console.LoggerPattern, 0, len(c.Console.Loggers))
	for _, l := range c.Console.Loggers {
		patterns = append(patterns, console.LoggerPattern{Logger: l.Name, Pattern: l.Pattern})
	}
	return patterns
}

// TargetRecord parses the override target.
func (c *Config) TargetRecord() (values.CapabilityRecord, error) {
	return values.ParseCapabilityRecord(c.Capability.Target)
}

// ConsoleLevel returns the console sink level, defaulting to info.
func (c *Config) ConsoleLevel() slog.Level {
	switch strings.ToLower(c.Console.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
