package ikfk

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownMode = errors.New("unknown IK/FK mode")

// Mode is the IK/FK selector value.
type Mode string

const (
	// Mixed keeps the rig's own per-limb blends.
	Mixed Mode = "RIG"
	IK    Mode = "IK"
	FK    Mode = "FK"
)

// Modes lists the selector values in display order.
var Modes = []Mode{FK, IK, Mixed}

// ParseMode accepts a mode name case-insensitively. "mixed" and "rigify" are
// aliases of Mixed.
func ParseMode(s string) (Mode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "FK":
		return FK, nil
	case "IK":
		return IK, nil
	case "RIG", "RIGIFY", "MIXED":
		return Mixed, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Label is the display name of m.
func (m Mode) Label() string {
	switch m {
	case FK:
		return "FK"
	case IK:
		return "IK"
	case Mixed:
		return "Rigify"
	default:
		return string(m)
	}
}

// Blend is the limb blend value a forced mode writes.
func (m Mode) blend() float64 {
	if m == FK {
		return 1
	}

	return 0
}
