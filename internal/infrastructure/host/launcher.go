package host

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	apperrors "github.com/reglet-dev/consolepatch/internal/application/errors"
	"github.com/reglet-dev/consolepatch/internal/application/ports"
	"github.com/reglet-dev/consolepatch/internal/domain/values"
)

// Service is a plugin taking part in the launch.
type Service interface {
	Name() string
	OnInitialize(env ports.LaunchEnvironment)
	OnLoad(env ports.LaunchEnvironment, otherServices []string) error
}

// Launcher drives the lifecycle of registered services.
type Launcher struct {
	env      *Environment
	logger   *slog.Logger
	services []Service
	strict   bool
}

// Option configures a Launcher.
type Option func(*Launcher)

// WithLogger sets the launcher logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Launcher) { l.logger = logger }
}

// WithStrict makes an incompatible environment fatal to the whole launch.
func WithStrict(strict bool) Option {
	return func(l *Launcher) { l.strict = strict }
}

// NewLauncher creates a launcher for env.
func NewLauncher(env *Environment, opts ...Option) *Launcher {
	l := &Launcher{
		env:    env,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Register adds a service. Services run in registration order.
func (l *Launcher) Register(s Service) {
	l.services = append(l.services, s)
}

// Environment returns the launch environment.
func (l *Launcher) Environment() *Environment {
	return l.env
}

// Launch calls OnInitialize on every service, then OnLoad. A service whose
// OnLoad fails is dropped from the launch; the names of the remaining
// services are returned.
func (l *Launcher) Launch(ctx context.Context) ([]string, error) {
	launchID := values.NewLaunchID()
	logger := l.logger.With("launch_id", launchID.String())

	for _, s := range l.services {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		logger.Debug("initializing service", "service", s.Name())
		s.OnInitialize(l.env)
	}

	var participants []string
	for _, s := range l.services {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		err := s.OnLoad(l.env, l.otherNames(s))
		if err == nil {
			participants = append(participants, s.Name())
			continue
		}

		var incompatible *apperrors.IncompatibleEnvironmentError
		if errors.As(err, &incompatible) {
			logger.Error("service reported an incompatible environment", "service", s.Name(), "error", err)
		} else {
			logger.Error("service failed to load", "service", s.Name(), "error", err)
		}
		if l.strict {
			return nil, fmt.Errorf("service %s: %w", s.Name(), err)
		}
	}

	l.env.classpath.seal()
	logger.Debug("launch complete", "services", participants)
	return participants, nil
}

func (l *Launcher) otherNames(self Service) []string {
	names := make([]string, 0, len(l.services))
	for _, s := range l.services {
		if s != self {
			names = append(names, s.Name())
		}
	}
	return names
}
