// Package probe classifies the launch environment by inspecting the call
// stack and the parent process.
package probe

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	apperrors "github.com/reglet-dev/consolepatch/internal/application/errors"
	"github.com/reglet-dev/consolepatch/internal/application/ports"
	"github.com/reglet-dev/consolepatch/internal/domain/values"
	"github.com/shirou/gopsutil/v3/process"
)

// MultiMCEntryPoint is the entry-point identifier of the MultiMC front-end.
const MultiMCEntryPoint = "org.multimc.EntryPoint"

// Frontend describes a launcher front-end that cannot render ANSI output.
// A launch matches when any configured criterion matches.
type Frontend struct {
	Name          string
	EntryPoint    string // qualified identifier of the outermost frame
	ParentProcess string // executable name of the parent process
	Rule          string // expr expression over RuleEnv
}

// DefaultFrontends returns the front-ends known to be incompatible.
func DefaultFrontends() []Frontend {
	return []Frontend{
		{Name: "multimc", EntryPoint: MultiMCEntryPoint},
	}
}

// RuleEnv is the environment frontend rules are evaluated against.
type RuleEnv struct {
	Env    map[string]string `expr:"env"`
	Entry  string            `expr:"entry"`
	Parent string            `expr:"parent"`
	Frames []string          `expr:"frames"`
}

// FrameSource returns the caller's stack, innermost frame first.
type FrameSource func() ([]runtime.Frame, error)

// ParentSource returns the parent process name.
type ParentSource func() (string, error)

type compiledFrontend struct {
	program *vm.Program
	Frontend
}

// StackProbe implements ports.EnvironmentProbe.
type StackProbe struct {
	frames    FrameSource
	parent    ParentSource
	mainPath  func() string
	environ   func() []string
	logger    *slog.Logger
	frontends []compiledFrontend
}

var _ ports.EnvironmentProbe = (*StackProbe)(nil)

// Option configures a StackProbe.
type Option func(*StackProbe)

// WithFrameSource replaces runtime stack capture.
func WithFrameSource(fs FrameSource) Option {
	return func(p *StackProbe) { p.frames = fs }
}

// WithParentSource replaces parent process lookup.
func WithParentSource(ps ParentSource) Option {
	return func(p *StackProbe) { p.parent = ps }
}

// WithMainPath replaces the main package path lookup.
func WithMainPath(fn func() string) Option {
	return func(p *StackProbe) { p.mainPath = fn }
}

// WithEnviron replaces os.Environ.
func WithEnviron(fn func() []string) Option {
	return func(p *StackProbe) { p.environ = fn }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *StackProbe) { p.logger = logger }
}

// New compiles the frontend rules. A frontend without any criterion is rejected.
func New(frontends []Frontend, opts ...Option) (*StackProbe, error) {
	p := &StackProbe{
		frames:   callerFrames,
		parent:   parentProcessName,
		mainPath: mainPackagePath,
		environ:  os.Environ,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}

	for _, f := range frontends {
		if f.EntryPoint == "" && f.ParentProcess == "" && f.Rule == "" {
			return nil, fmt.Errorf("frontend %q has no entry point, parent process or rule", f.Name)
		}

		cf := compiledFrontend{Frontend: f}
		if f.Rule != "" {
			program, err := expr.Compile(f.Rule, expr.Env(RuleEnv{}), expr.AsBool())
			if err != nil {
				return nil, fmt.Errorf("invalid rule for frontend %q: %w", f.Name, err)
			}
			cf.program = program
		}
		p.frontends = append(p.frontends, cf)
	}

	return p, nil
}

// Classify returns ClassificationIncompatibleFrontend when the launch matches a
// known front-end. Any failure is logged and treated as a normal launch.
func (p *StackProbe) Classify() values.Classification {
	c, err := p.classify()
	if err != nil {
		p.logger.Warn("environment probe failed, assuming normal launch", "error", err)
		return values.ClassificationNormal
	}
	return c
}

func (p *StackProbe) classify() (c values.Classification, err error) {
	defer func() {
		if r := recover(); r != nil {
			c = values.ClassificationNormal
			err = apperrors.NewProbeError("panic while inspecting launch context", fmt.Errorf("%v", r))
		}
	}()

	frames, err := p.frames()
	if err != nil {
		return values.ClassificationNormal, apperrors.NewProbeError("failed to capture call stack", err)
	}

	entry, ok := EntryPoint(frames, p.mainPath())
	if !ok {
		return values.ClassificationNormal, apperrors.NewProbeError("call stack has no entry frame", nil)
	}

	parent, perr := p.parent()
	if perr != nil {
		p.logger.Debug("parent process unavailable", "error", perr)
	}

	env := RuleEnv{
		Entry:  entry,
		Parent: parent,
		Frames: frameNames(frames),
		Env:    environMap(p.environ()),
	}

	for _, f := range p.frontends {
		matched, err := f.matches(env)
		if err != nil {
			return values.ClassificationNormal, apperrors.NewProbeError("frontend rule "+f.Name, err)
		}
		if matched {
			p.logger.Info("detected incompatible launcher front-end", "frontend", f.Name, "entry", entry, "parent", parent)
			return values.ClassificationIncompatibleFrontend, nil
		}
	}

	p.logger.Debug("launch environment is normal", "entry", entry, "parent", parent)
	return values.ClassificationNormal, nil
}

func (f compiledFrontend) matches(env RuleEnv) (bool, error) {
	if f.EntryPoint != "" && matchesIdentifier(env.Entry, f.EntryPoint) {
		return true, nil
	}
	if f.ParentProcess != "" && env.Parent != "" && strings.EqualFold(trimExe(env.Parent), trimExe(f.ParentProcess)) {
		return true, nil
	}
	if f.program != nil {
		out, err := expr.Run(f.program, env)
		if err != nil {
			return false, err
		}
		matched, _ := out.(bool)
		return matched, nil
	}
	return false, nil
}

// EntryPoint returns the identifier of the outermost non-runtime frame.
// For main.main the identifier is the main package path followed by ".main".
func EntryPoint(frames []runtime.Frame, mainPath string) (string, bool) {
	for i := len(frames) - 1; i >= 0; i-- {
		fn := frames[i].Function
		if fn == "" || strings.HasPrefix(fn, "runtime.") {
			continue
		}
		if fn == "main.main" && mainPath != "" {
			return mainPath + ".main", true
		}
		return fn, true
	}
	return "", false
}

func matchesIdentifier(entry, want string) bool {
	if entry == want {
		return true
	}
	return strings.HasPrefix(entry, want+".") || strings.HasPrefix(entry, want+"/")
}

func trimExe(name string) string {
	return strings.TrimSuffix(strings.ToLower(name), ".exe")
}

func frameNames(frames []runtime.Frame) []string {
	names := make([]string, 0, len(frames))
	for _, f := range frames {
		names = append(names, f.Function)
	}
	return names
}

func environMap(environ []string) map[string]string {
	m := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, _ := strings.Cut(kv, "=")
		m[k] = v
	}
	return m
}

func callerFrames() ([]runtime.Frame, error) {
	pcs := make([]uintptr, 64)
	for {
		n := runtime.Callers(0, pcs)
		if n < len(pcs) {
			pcs = pcs[:n]
			break
		}
		pcs = make([]uintptr, len(pcs)*2)
	}
	if len(pcs) == 0 {
		return nil, errors.New("runtime returned no callers")
	}

	iter := runtime.CallersFrames(pcs)
	var frames []runtime.Frame
	for {
		frame, more := iter.Next()
		frames = append(frames, frame)
		if !more {
			break
		}
	}
	return frames, nil
}

func parentProcessName() (string, error) {
	p, err := process.NewProcess(int32(os.Getppid())) //nolint:gosec // pids fit in int32
	if err != nil {
		return "", fmt.Errorf("failed to open parent process: %w", err)
	}
	name, err := p.Name()
	if err != nil {
		return "", fmt.Errorf("failed to read parent process name: %w", err)
	}
	return name, nil
}

func mainPackagePath() string {
	if bi, ok := debug.ReadBuildInfo(); ok {
		return bi.Path
	}
	return ""
}
