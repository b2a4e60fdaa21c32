// Package host is a minimal plugin launcher host: it owns the launch
// environment (base directory, classpath, transformer path queue) and drives
// the lifecycle hooks of registered services.
package host

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"sync"

	"github.com/reglet-dev/consolepatch/internal/application/ports"
)

var (
	// ErrClasspathSealed is returned when appending after the load phase.
	ErrClasspathSealed = errors.New("class path is sealed")

	// ErrUnsupportedScheme is returned for non-file classpath entries.
	ErrUnsupportedScheme = errors.New("only file URLs can be added to the class path")
)

var (
	_ ports.LaunchEnvironment = (*Environment)(nil)
	_ ports.Classpath         = (*Classpath)(nil)
	_ ports.PathQueue         = (*PathQueue)(nil)
)

// Environment is handed to every service during bootstrap.
type Environment struct {
	classpath    *Classpath
	transformers *PathQueue
	baseDir      string
}

// NewEnvironment creates an environment rooted at baseDir (may be empty).
func NewEnvironment(baseDir string) *Environment {
	return &Environment{
		baseDir:      baseDir,
		classpath:    &Classpath{},
		transformers: &PathQueue{},
	}
}

// BaseDir returns the configured base directory.
func (e *Environment) BaseDir() (string, bool) {
	return e.baseDir, e.baseDir != ""
}

// Classpath returns the host classpath.
func (e *Environment) Classpath() ports.Classpath {
	return e.classpath
}

// TransformerQueue returns the queue of plugin paths excluded from regular discovery.
func (e *Environment) TransformerQueue() ports.PathQueue {
	return e.transformers
}

// Classpath is the ordered list of artifacts visible to the main loader.
type Classpath struct {
	urls   []string
	mu     sync.Mutex
	sealed bool
}

// Contains reports whether u is already on the classpath.
func (c *Classpath) Contains(u *url.URL) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Contains(c.urls, u.String())
}

// Append adds u to the end of the classpath.
func (c *Classpath) Append(u *url.URL) error {
	if u == nil || u.Scheme != "file" {
		return fmt.Errorf("%w: %v", ErrUnsupportedScheme, u)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sealed {
		return ErrClasspathSealed
	}
	if !slices.Contains(c.urls, u.String()) {
		c.urls = append(c.urls, u.String())
	}
	return nil
}

// URLs returns a copy of the classpath entries.
func (c *Classpath) URLs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.urls)
}

func (c *Classpath) seal() {
	c.mu.Lock()
	c.sealed = true
	c.mu.Unlock()
}

// PathQueue is an append-only ordered collection of paths.
type PathQueue struct {
	paths []string
	mu    sync.Mutex
}

// Contains reports whether path is queued.
func (q *PathQueue) Contains(path string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return slices.Contains(q.paths, path)
}

// Append adds path to the end of the queue.
func (q *PathQueue) Append(path string) {
	q.mu.Lock()
	q.paths = append(q.paths, path)
	q.mu.Unlock()
}

// Paths returns a copy of the queued paths.
func (q *PathQueue) Paths() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return slices.Clone(q.paths)
}
