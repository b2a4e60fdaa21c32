// Package container provides dependency injection for the application.
package container

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/reglet-dev/consolepatch/internal/application/ports"
	"github.com/reglet-dev/consolepatch/internal/application/services"
	"github.com/reglet-dev/consolepatch/internal/infrastructure/adapters"
	"github.com/reglet-dev/consolepatch/internal/infrastructure/console"
	"github.com/reglet-dev/consolepatch/internal/infrastructure/host"
	"github.com/reglet-dev/consolepatch/internal/infrastructure/probe"
	"github.com/reglet-dev/consolepatch/internal/infrastructure/system"
	"github.com/reglet-dev/consolepatch/internal/infrastructure/terminal"
)

// Container holds all application dependencies.
type Container struct {
	probe     ports.EnvironmentProbe
	store     *terminal.Store
	sink      *console.Sink
	registry  *console.Registry
	service   *services.ConsolePatchService
	launcher  *host.Launcher
	systemCfg *system.Config
	logger    *slog.Logger
}

// Options configure the container.
type Options struct {
	Logger           *slog.Logger
	Stdout           io.Writer
	Probe            ports.EnvironmentProbe // overrides the stack probe
	Store            *terminal.Store        // overrides detection on Stdout
	SystemConfigPath string
	BaseDir          string
	Artifact         string // overrides the running executable as the plugin artifact
	Strict           bool
}

// DefaultSystemConfigPath returns ~/.consolepatch/config.yaml, or "" when
// the home directory cannot be determined.
func DefaultSystemConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".consolepatch", "config.yaml")
}

// New creates a new dependency injection container.
func New(opts Options) (*Container, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}

	configPath := opts.SystemConfigPath
	if configPath == "" {
		configPath = DefaultSystemConfigPath()
	}
	systemCfg := system.DefaultConfig()
	if configPath != "" {
		cfg, err := system.NewConfigLoader().Load(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load system config: %w", err)
		}
		systemCfg = cfg
	}

	target, err := systemCfg.TargetRecord()
	if err != nil {
		return nil, fmt.Errorf("invalid capability target: %w", err)
	}

	// The capability store is populated and sealed before anything reads it.
	store := opts.Store
	if store == nil {
		store = terminal.Detect(opts.Stdout)
	}

	// Console sink
	selector, err := console.NewLoggerNameSelector(systemCfg.Console.Pattern, systemCfg.ToLoggerPatterns()...)
	if err != nil {
		return nil, fmt.Errorf("invalid console pattern: %w", err)
	}
	appender := systemCfg.Console.Appender
	sink := console.NewSink(appender, opts.Stdout, store, console.NewPatternLayout(selector),
		console.WithLevel(systemCfg.ConsoleLevel()))
	if err := sink.InitializeTerminal(); err != nil {
		return nil, fmt.Errorf("failed to initialize console sink: %w", err)
	}
	registry := console.NewRegistry()
	registry.Register(appender, sink)

	envProbe := opts.Probe
	if envProbe == nil {
		stackProbe, err := probe.New(systemCfg.ToFrontends(), probe.WithLogger(opts.Logger))
		if err != nil {
			return nil, fmt.Errorf("invalid probe configuration: %w", err)
		}
		envProbe = stackProbe
	}

	var locator ports.ArtifactLocator = adapters.NewExecutableLocator()
	if opts.Artifact != "" {
		locator = adapters.StaticLocator(opts.Artifact)
	}

	// Wire up the service
	patcher := services.NewPatchEngine(store, opts.Logger)
	service, err := services.NewConsolePatchService(services.ConsolePatchOptions{
		Probe:   envProbe,
		Patcher: patcher,
		Enable: services.NewEnableANSITask(services.EnableANSIOptions{
			Locator:   locator,
			Patcher:   patcher,
			Reinit:    services.NewSinkReinitializer(registry, appender, opts.Logger),
			Stdout:    opts.Stdout,
			Logger:    opts.Logger,
			Target:    target,
			CursorFix: systemCfg.Console.CursorFix,
		}),
		Disable:        services.NewDisableANSITask(registry, appender, opts.Logger),
		Guard:          services.NewDeduplicationGuard(locator, systemCfg.Plugins.DirName, opts.Logger),
		Logger:         opts.Logger,
		SkipConstraint: systemCfg.Capability.SkipConstraint,
	})
	if err != nil {
		return nil, err
	}

	launcher := host.NewLauncher(host.NewEnvironment(opts.BaseDir),
		host.WithLogger(opts.Logger),
		host.WithStrict(opts.Strict))
	launcher.Register(service)

	return &Container{
		probe:     envProbe,
		store:     store,
		sink:      sink,
		registry:  registry,
		service:   service,
		launcher:  launcher,
		systemCfg: systemCfg,
		logger:    opts.Logger,
	}, nil
}

// Launcher returns the host launcher with the console patch service registered.
func (c *Container) Launcher() *host.Launcher {
	return c.launcher
}

// Service returns the console patch service.
func (c *Container) Service() *services.ConsolePatchService {
	return c.service
}

// Probe returns the environment probe.
func (c *Container) Probe() ports.EnvironmentProbe {
	return c.probe
}

// Store returns the capability store.
func (c *Container) Store() *terminal.Store {
	return c.store
}

// Sink returns the console sink.
func (c *Container) Sink() *console.Sink {
	return c.sink
}

// Registry returns the appender registry.
func (c *Container) Registry() *console.Registry {
	return c.registry
}

// SystemConfig returns the system configuration.
func (c *Container) SystemConfig() *system.Config {
	return c.systemCfg
}

// Logger returns the configured logger.
func (c *Container) Logger() *slog.Logger {
	return c.logger
}
