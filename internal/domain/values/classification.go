package values

// Classification is the result of inspecting the launch environment.
type Classification int

const (
	// ClassificationNormal means nothing unusual was detected.
	ClassificationNormal Classification = iota
	// ClassificationIncompatibleFrontend means the process was started by a
	// launcher front-end that cannot render ANSI output.
	ClassificationIncompatibleFrontend
)

// IsIncompatible returns true for ClassificationIncompatibleFrontend
func (c Classification) IsIncompatible() bool {
	return c == ClassificationIncompatibleFrontend
}

// String returns the string representation
func (c Classification) String() string {
	switch c {
	case ClassificationNormal:
		return "normal"
	case ClassificationIncompatibleFrontend:
		return "incompatible-frontend"
	default:
		return "unknown"
	}
}
