// Package terminal owns the process-wide ANSI capability record.
//
// The record is populated once by Detect and then sealed; the rest of the
// process treats it as read-only. Override is the one exception.
package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/reglet-dev/consolepatch/internal/domain/values"
)

// Qualified names of the cached fields.
const (
	FieldMajor = "terminal.Store.major"
	FieldMinor = "terminal.Store.minor"
)

var (
	// ErrSealed is returned by Set once the store has been sealed.
	ErrSealed = errors.New("capability record is sealed")

	// ErrNotPopulated is returned when the store was never detected or set.
	ErrNotPopulated = errors.New("capability record has not been populated")
)

// FieldError reports which cached field could not be written.
type FieldError struct {
	Err   error
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// QualifiedField returns the qualified name of the field.
func (e *FieldError) QualifiedField() string {
	return e.Field
}

// Store caches the detected capability record.
type Store struct {
	mu        sync.Mutex
	major     int
	minor     int
	populated bool
	sealed    bool
}

// NewStore returns an empty, unsealed store.
func NewStore() *Store {
	return &Store{}
}

// Detect creates a sealed store from the color profile of out.
func Detect(out io.Writer) *Store {
	s := NewStore()
	// Set cannot fail on a fresh store.
	_ = s.Set(recordForProfile(profileOf(out)))
	s.Seal()
	return s
}

func profileOf(out io.Writer) termenv.Profile {
	if f, ok := out.(*os.File); ok {
		fd := f.Fd()
		if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
			return termenv.Ascii
		}
	}
	return termenv.NewOutput(out).Profile
}

func recordForProfile(p termenv.Profile) values.CapabilityRecord {
	switch p {
	case termenv.TrueColor:
		return values.RichANSI
	case termenv.ANSI256:
		return values.CapabilityRecord{Major: 1, Minor: 8}
	case termenv.ANSI:
		return values.CapabilityRecord{Major: 1}
	default:
		return values.Unsupported
	}
}

// Current returns the live record.
func (s *Store) Current() values.CapabilityRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return values.CapabilityRecord{Major: s.major, Minor: s.minor}
}

// Set assigns the record unless the store is sealed.
func (s *Store) Set(r values.CapabilityRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sealed {
		return &FieldError{Field: FieldMajor, Err: ErrSealed}
	}
	s.assign(r)
	return nil
}

// Seal marks the record read-only for Set.
func (s *Store) Seal() {
	s.mu.Lock()
	s.sealed = true
	s.mu.Unlock()
}

// Sealed reports whether Seal has been called.
func (s *Store) Sealed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sealed
}

// Override assigns the record regardless of the seal.
//
// This deliberately violates the store's read-only contract and exists for
// exactly one caller: the capability patch. The seal is restored afterwards.
func (s *Store) Override(r values.CapabilityRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.populated {
		return &FieldError{Field: FieldMajor, Err: ErrNotPopulated}
	}

	sealed := s.sealed
	s.sealed = false
	s.assign(r)
	s.sealed = sealed
	return nil
}

func (s *Store) assign(r values.CapabilityRecord) {
	s.major = r.Major
	s.minor = r.Minor
	s.populated = true
}
