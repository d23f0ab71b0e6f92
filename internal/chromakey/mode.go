package chromakey

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidMode      = errors.New("invalid chroma-key mode")
	ErrInvalidThreshold = errors.New("invalid threshold")
)

// Mode selects which background color class is keyed out.
type Mode int

// The zero Mode is deliberately invalid so an unset mode is caught.
const (
	Light Mode = iota + 1 // near-white backgrounds
	Dark                  // near-black backgrounds
)

const (
	MinThreshold = 0
	MaxThreshold = 255
)

// ParseMode converts a mode name to a Mode. "white" and "black" are accepted
// as aliases for light and dark.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light", "white":
		return Light, nil
	case "dark", "black":
		return Dark, nil
	default:
		return 0, fmt.Errorf("%w: %q (want light or dark)", ErrInvalidMode, s)
	}
}

func (m Mode) String() string {
	switch m {
	case Light:
		return "light"
	case Dark:
		return "dark"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

func (m Mode) Valid() bool {
	return m == Light || m == Dark
}

// ValidateThreshold rejects thresholds outside [0,255].
func ValidateThreshold(t int) error {
	if t < MinThreshold || t > MaxThreshold {
		return fmt.Errorf("%w: %d (must be %d-%d)", ErrInvalidThreshold, t, MinThreshold, MaxThreshold)
	}
	return nil
}
