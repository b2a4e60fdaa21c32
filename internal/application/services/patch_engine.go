package services

import (
	"errors"
	"log/slog"
	"sync"

	apperrors "github.com/reglet-dev/consolepatch/internal/application/errors"
	"github.com/reglet-dev/consolepatch/internal/application/ports"
	"github.com/reglet-dev/consolepatch/internal/domain/values"
)

// unknownField is reported when the store does not name the failing field.
const unknownField = "capability record"

// PatchEngine applies a one-shot override to the capability store.
type PatchEngine struct {
	store   ports.CapabilityStore
	logger  *slog.Logger
	mu      sync.Mutex
	applied bool
}

// NewPatchEngine creates a patch engine for store.
func NewPatchEngine(store ports.CapabilityStore, logger *slog.Logger) *PatchEngine {
	if logger == nil {
		logger = slog.Default()
	}
	return &PatchEngine{
		store:  store,
		logger: logger,
	}
}

// CurrentCapability reads the live capability record.
func (e *PatchEngine) CurrentCapability() values.CapabilityRecord {
	return e.store.Current()
}

// ForceCapability overwrites the capability record with target.
// After the first success every call is a no-op. A failed write is not
// rolled back.
func (e *PatchEngine) ForceCapability(target values.CapabilityRecord) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.applied {
		e.logger.Debug("capability record already overridden", "version", e.store.Current().String())
		return nil
	}

	if err := e.store.Override(target); err != nil {
		field := unknownField
		var named interface{ QualifiedField() string }
		if errors.As(err, &named) {
			field = named.QualifiedField()
		}
		return apperrors.NewPatchError(field, err)
	}

	e.applied = true
	e.logger.Debug("capability record overridden", "version", e.store.Current().String())
	return nil
}

// Applied reports whether an override has succeeded.
func (e *PatchEngine) Applied() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.applied
}
