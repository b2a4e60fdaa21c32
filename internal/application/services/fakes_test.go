package services

import (
	"bytes"
	"errors"
	"log/slog"
	"net/url"
	"slices"

	"github.com/reglet-dev/consolepatch/internal/application/ports"
	"github.com/reglet-dev/consolepatch/internal/domain/values"
)

type fakeProbe struct {
	classification values.Classification
}

func (p *fakeProbe) Classify() values.Classification {
	return p.classification
}

type namedFieldError struct {
	field string
}

func (e *namedFieldError) Error() string          { return e.field + ": sealed" }
func (e *namedFieldError) QualifiedField() string { return e.field }

type fakeStore struct {
	err       error
	record    values.CapabilityRecord
	overrides int
}

func (s *fakeStore) Current() values.CapabilityRecord {
	return s.record
}

func (s *fakeStore) Override(target values.CapabilityRecord) error {
	if s.err != nil {
		return s.err
	}
	s.overrides++
	s.record = target
	return nil
}

type fakeSink struct {
	layout  any
	initErr error
	events  *[]string
	closes  int
	inits   int
}

func (s *fakeSink) Close() error {
	s.closes++
	if s.events != nil {
		*s.events = append(*s.events, "close")
	}
	return nil
}

func (s *fakeSink) InitializeTerminal() error {
	if s.initErr != nil {
		return s.initErr
	}
	s.inits++
	if s.events != nil {
		*s.events = append(*s.events, "init")
	}
	return nil
}

func (s *fakeSink) Layout() any {
	return s.layout
}

type fakeRegistry map[string]any

func (r fakeRegistry) Appender(name string) (any, bool) {
	a, ok := r[name]
	return a, ok
}

type fakeLayout struct {
	selector any
}

func (l *fakeLayout) Selector() any {
	return l.selector
}

type fakeSelector struct {
	defaults []any
	loggers  [][]any
}

func (s *fakeSelector) DefaultFormatters() []any  { return s.defaults }
func (s *fakeSelector) LoggerFormatters() [][]any { return s.loggers }

type fakeHighlight struct {
	noANSI bool
}

func (h *fakeHighlight) NoANSI() bool          { return h.noANSI }
func (h *fakeHighlight) SetNoANSI(noANSI bool) { h.noANSI = noANSI }

type plainFormatter struct{}

type fakeLocator struct {
	err  error
	path string
}

func (l *fakeLocator) Location() (string, error) {
	return l.path, l.err
}

type fakeClasspath struct {
	err  error
	urls []string
}

func (c *fakeClasspath) Contains(u *url.URL) bool {
	return slices.Contains(c.urls, u.String())
}

func (c *fakeClasspath) Append(u *url.URL) error {
	if c.err != nil {
		return c.err
	}
	c.urls = append(c.urls, u.String())
	return nil
}

type fakeQueue struct {
	paths []string
}

func (q *fakeQueue) Contains(path string) bool { return slices.Contains(q.paths, path) }
func (q *fakeQueue) Append(path string)        { q.paths = append(q.paths, path) }
func (q *fakeQueue) Paths() []string           { return q.paths }

type fakeEnv struct {
	classpath *fakeClasspath
	queue     *fakeQueue
	baseDir   string
}

func (e *fakeEnv) BaseDir() (string, bool)           { return e.baseDir, e.baseDir != "" }
func (e *fakeEnv) Classpath() ports.Classpath        { return e.classpath }
func (e *fakeEnv) TransformerQueue() ports.PathQueue { return e.queue }

func newFakeEnv() *fakeEnv {
	return &fakeEnv{classpath: &fakeClasspath{}, queue: &fakeQueue{}}
}

func testLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

var errBoom = errors.New("boom")

// fixture wires a ConsolePatchService around fakes.
type fixture struct {
	probe    *fakeProbe
	store    *fakeStore
	sink     *fakeSink
	selector *fakeSelector
	env      *fakeEnv
	stdout   *bytes.Buffer
	logs     *bytes.Buffer
	locator  *fakeLocator
	service  *ConsolePatchService
}

func newFixture(classification values.Classification, record values.CapabilityRecord) *fixture {
	logger, logs := testLogger()
	f := &fixture{
		probe:    &fakeProbe{classification: classification},
		store:    &fakeStore{record: record},
		selector: &fakeSelector{},
		env:      newFakeEnv(),
		stdout:   &bytes.Buffer{},
		logs:     logs,
		locator:  &fakeLocator{path: "/opt/host/plugins/consolepatch"},
	}
	f.sink = &fakeSink{layout: &fakeLayout{selector: f.selector}}
	registry := fakeRegistry{"Console": f.sink}

	patcher := NewPatchEngine(f.store, logger)
	service, err := NewConsolePatchService(ConsolePatchOptions{
		Probe:   f.probe,
		Patcher: patcher,
		Enable: NewEnableANSITask(EnableANSIOptions{
			Locator:   f.locator,
			Patcher:   patcher,
			Reinit:    NewSinkReinitializer(registry, "Console", logger),
			Stdout:    f.stdout,
			Logger:    logger,
			Target:    values.RichANSI,
			CursorFix: true,
		}),
		Disable: NewDisableANSITask(registry, "Console", logger),
		Guard:   NewDeduplicationGuard(f.locator, "", logger),
		Logger:  logger,
	})
	if err != nil {
		panic(err)
	}
	f.service = service
	return f
}
