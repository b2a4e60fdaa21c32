package services

import (
	"fmt"
	"log/slog"

	"github.com/Masterminds/semver/v3"
	"github.com/reglet-dev/consolepatch/internal/application/dto"
	apperrors "github.com/reglet-dev/consolepatch/internal/application/errors"
	"github.com/reglet-dev/consolepatch/internal/application/ports"
	"github.com/reglet-dev/consolepatch/internal/domain/values"
)

// ServiceName is the name the service registers with the host under.
const ServiceName = "consolepatch"

// DefaultSkipConstraint treats any capability record with a non-zero major
// version as already satisfactory.
const DefaultSkipConstraint = ">= 1"

// ConsolePatchService reconciles ANSI capability detection during host
// bootstrap. The environment classification selects the disable path or
// the enable path; each runs at most once per process.
type ConsolePatchService struct {
	probe   ports.EnvironmentProbe
	patcher *PatchEngine
	enable  *EnableANSITask
	disable *DisableANSITask
	guard   *DeduplicationGuard
	skip    *semver.Constraints
	logger  *slog.Logger
	skipRaw string
	loaded  bool
}

// ConsolePatchOptions holds the service's collaborators.
type ConsolePatchOptions struct {
	Probe   ports.EnvironmentProbe
	Patcher *PatchEngine
	Enable  *EnableANSITask
	Disable *DisableANSITask
	Guard   *DeduplicationGuard
	Logger  *slog.Logger

	// SkipConstraint is matched against the current capability record; a
	// matching record skips the enable path. Defaults to DefaultSkipConstraint.
	SkipConstraint string
}

// NewConsolePatchService creates the service.
func NewConsolePatchService(opts ConsolePatchOptions) (*ConsolePatchService, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.SkipConstraint == "" {
		opts.SkipConstraint = DefaultSkipConstraint
	}

	skip, err := semver.NewConstraint(opts.SkipConstraint)
	if err != nil {
		return nil, apperrors.NewConfigurationError("capability", fmt.Sprintf("invalid skip constraint %q", opts.SkipConstraint), err)
	}

	return &ConsolePatchService{
		probe:   opts.Probe,
		patcher: opts.Patcher,
		enable:  opts.Enable,
		disable: opts.Disable,
		guard:   opts.Guard,
		skip:    skip,
		skipRaw: opts.SkipConstraint,
		logger:  opts.Logger,
	}, nil
}

// Name implements host.Service.
func (s *ConsolePatchService) Name() string {
	return ServiceName
}

// OnInitialize runs the deduplication guard.
func (s *ConsolePatchService) OnInitialize(env ports.LaunchEnvironment) {
	s.guard.Run(env)
}

// OnLoad classifies the environment and applies the matching path.
// The only error returned is an IncompatibleEnvironmentError, raised when
// the plugin artifact cannot be added to the host classpath.
func (s *ConsolePatchService) OnLoad(env ports.LaunchEnvironment, _ []string) error {
	if s.loaded {
		return nil
	}
	s.loaded = true

	classification := s.probe.Classify()
	current := s.patcher.CurrentCapability()

	switch s.decide(classification, current) {
	case dto.ActionDisable:
		n := s.disable.Execute()
		s.logger.Info("ANSI output disabled for incompatible front-end", "formatters", n)
		return nil
	case dto.ActionSkip:
		s.logger.Debug("capability record already satisfactory", "version", current.String())
		return nil
	}

	if err := s.enable.AugmentClasspath(env.Classpath()); err != nil {
		s.logger.Error("encountered an error while attempting to append to the class path", "error", err)
		return apperrors.NewIncompatibleEnvironmentError("failed to append to the class path", err)
	}

	if err := s.enable.Execute(); err != nil {
		s.logger.Error("failed to enable ANSI output", "error", err)
		return nil
	}

	s.logger.Debug("ANSI output enabled", "version", s.patcher.CurrentCapability().String())
	return nil
}

// Plan classifies the environment and reports the action OnLoad would take.
// Nothing is modified.
func (s *ConsolePatchService) Plan() dto.PatchPlan {
	classification := s.probe.Classify()
	current := s.patcher.CurrentCapability()
	return dto.PatchPlan{
		Classification: classification.String(),
		Capability:     current.String(),
		Supported:      current.IsSupported(),
		SkipConstraint: s.skipRaw,
		Action:         s.decide(classification, current),
	}
}

func (s *ConsolePatchService) decide(c values.Classification, current values.CapabilityRecord) dto.PatchAction {
	switch {
	case c.IsIncompatible():
		return dto.ActionDisable
	case current.Satisfies(s.skip):
		return dto.ActionSkip
	default:
		return dto.ActionEnable
	}
}
