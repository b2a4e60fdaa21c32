// Package values contains domain value objects that encapsulate
// primitive types with validation and such.
package values

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CapabilityRecord is the capability layer's belief about which ANSI
// support implementation is active. The zero record means unsupported.
type CapabilityRecord struct {
	Major int
	Minor int
}

var (
	// Unsupported is reported when no ANSI implementation is active.
	Unsupported = CapabilityRecord{}

	// RichANSI is the first implementation version with full ANSI support.
	RichANSI = CapabilityRecord{Major: 1, Minor: 18}
)

// ParseCapabilityRecord parses "major.minor" (a bare major is accepted).
func ParseCapabilityRecord(s string) (CapabilityRecord, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return CapabilityRecord{}, fmt.Errorf("capability version cannot be empty")
	}

	majorStr, minorStr, hasMinor := strings.Cut(s, ".")
	major, err := strconv.Atoi(majorStr)
	if err != nil || major < 0 {
		return CapabilityRecord{}, fmt.Errorf("invalid capability major version: %q", majorStr)
	}

	minor := 0
	if hasMinor {
		minor, err = strconv.Atoi(minorStr)
		if err != nil || minor < 0 {
			return CapabilityRecord{}, fmt.Errorf("invalid capability minor version: %q", minorStr)
		}
	}

	return CapabilityRecord{Major: major, Minor: minor}, nil
}

// MustParseCapabilityRecord parses a record or panics
func MustParseCapabilityRecord(s string) CapabilityRecord {
	r, err := ParseCapabilityRecord(s)
	if err != nil {
		panic(err)
	}
	return r
}

// IsSupported returns true when any ANSI implementation is active.
func (r CapabilityRecord) IsSupported() bool {
	return r.Major != 0
}

// Equals checks if two records are equal
func (r CapabilityRecord) Equals(other CapabilityRecord) bool {
	return r.Major == other.Major && r.Minor == other.Minor
}

// Version returns the record as a semantic version (patch is always zero).
func (r CapabilityRecord) Version() *semver.Version {
	return semver.New(uint64(r.Major), uint64(r.Minor), 0, "", "") //nolint:gosec // fields are never negative
}

// Satisfies reports whether the record matches a semver constraint such as "> 0" or ">= 1.18".
func (r CapabilityRecord) Satisfies(c *semver.Constraints) bool {
	if c == nil {
		return false
	}
	return c.Check(r.Version())
}

// String returns "major.minor"
func (r CapabilityRecord) String() string {
	return fmt.Sprintf("%d.%d", r.Major, r.Minor)
}
