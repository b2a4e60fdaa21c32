package system

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/reglet-dev/consolepatch/internal/application/errors"
	"github.com/reglet-dev/consolepatch/internal/domain/values"
	"github.com/reglet-dev/consolepatch/internal/infrastructure/console"
	"github.com/reglet-dev/consolepatch/internal/infrastructure/probe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigLoader_Load_FileNotExists(t *testing.T) {
	loader := NewConfigLoader()
	cfg, err := loader.Load("/nonexistent/config.yaml")

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "Console", cfg.Console.Appender)
	assert.Equal(t, console.DefaultPattern, cfg.Console.Pattern)
	assert.True(t, cfg.Console.CursorFix)
	assert.Equal(t, ">= 1", cfg.Capability.SkipConstraint)
	assert.Equal(t, "plugins", cfg.Plugins.DirName)
	assert.Len(t, cfg.Probe.Frontends, len(probe.DefaultFrontends()))

	target, err := cfg.TargetRecord()
	require.NoError(t, err)
	assert.Equal(t, values.RichANSI, target)
}

func TestConfigLoader_Load_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yaml := `
console:
  appender: Terminal
  pattern: "%msg%n"
  level: debug
  cursor_fix: false
  loggers:
    - name: net.minecraft
      pattern: "[%logger] %msg%n"

probe:
  frontends:
    - name: custom
      parent_process: customlauncher

capability:
  skip_constraint: ">= 1.18"
  target: "1.18"
`
	err := os.WriteFile(configPath, []byte(yaml), 0600)
	require.NoError(t, err)

	loader := NewConfigLoader()
	cfg, err := loader.Load(configPath)

	require.NoError(t, err)
	assert.Equal(t, "Terminal", cfg.Console.Appender)
	assert.Equal(t, "%msg%n", cfg.Console.Pattern)
	assert.False(t, cfg.Console.CursorFix)
	assert.Equal(t, slog.LevelDebug, cfg.ConsoleLevel())
	require.Len(t, cfg.Console.Loggers, 1)
	assert.Equal(t, "net.minecraft", cfg.Console.Loggers[0].Name)

	require.Len(t, cfg.Probe.Frontends, 1)
	assert.Equal(t, "customlauncher", cfg.Probe.Frontends[0].ParentProcess)
	assert.Equal(t, ">= 1.18", cfg.Capability.SkipConstraint)

	// Sections absent from the file keep their defaults.
	assert.Equal(t, "plugins", cfg.Plugins.DirName)
}

func TestConfigLoader_Load_EmptyFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("\n"), 0600))

	cfg, err := NewConfigLoader().Load(configPath)

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestParse_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "unknown top-level key",
			yaml: "capabilities: []\n",
		},
		{
			name: "unknown level",
			yaml: "console:\n  level: trace\n",
		},
		{
			name: "frontend without criteria",
			yaml: "probe:\n  frontends:\n    - name: empty\n",
		},
		{
			name: "malformed target",
			yaml: "capability:\n  target: \"one.eighteen\"\n",
		},
		{
			name: "logger route without pattern",
			yaml: "console:\n  loggers:\n    - name: app\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)

			var validationErr *apperrors.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.NotEmpty(t, validationErr.Details)
		})
	}
}

func TestConfig_ToFrontends(t *testing.T) {
	cfg := &Config{
		Probe: ProbeConfig{
			Frontends: []FrontendConfig{
				{Name: "multimc", EntryPoint: probe.MultiMCEntryPoint},
				{Name: "other", ParentProcess: "other", Rule: `env["TERM"] == "dumb"`},
			},
		},
	}

	frontends := cfg.ToFrontends()

	require.Len(t, frontends, 2)
	assert.Equal(t, probe.MultiMCEntryPoint, frontends[0].EntryPoint)
	assert.Equal(t, "other", frontends[1].ParentProcess)
	assert.Equal(t, `env["TERM"] == "dumb"`, frontends[1].Rule)
}

func TestConfig_ToLoggerPatterns(t *testing.T) {
	cfg := &Config{
		Console: ConsoleConfig{
			Loggers: []LoggerPatternConfig{{Name: "app", Pattern: "%msg%n"}},
		},
	}

	assert.Equal(t, []console.LoggerPattern{{Logger: "app", Pattern: "%msg%n"}}, cfg.ToLoggerPatterns())
}

func TestConfig_ConsoleLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		cfg := &Config{Console: ConsoleConfig{Level: tt.level}}
		assert.Equal(t, tt.want, cfg.ConsoleLevel(), tt.level)
	}
}
