package quantity

import (
	"fmt"
	"strings"
)

// RoundingMode defines how discarded digits affect the retained ones.
type RoundingMode uint8

const (
	// HalfEven rounds towards the nearest neighbor, ties go to the even neighbor.
	HalfEven RoundingMode = iota
	// HalfUp rounds towards the nearest neighbor, ties go away from zero.
	HalfUp
	// HalfDown rounds towards the nearest neighbor, ties go towards zero.
	HalfDown
	// Up rounds away from zero.
	Up
	// Down truncates.
	Down
	// Ceiling rounds towards positive infinity.
	Ceiling
	// Floor rounds towards negative infinity.
	Floor
)

var roundingModeNames = [...]string{
	HalfEven: "half-even",
	HalfUp:   "half-up",
	HalfDown: "half-down",
	Up:       "up",
	Down:     "down",
	Ceiling:  "ceiling",
	Floor:    "floor",
}

func (m RoundingMode) String() string {
	if int(m) < len(roundingModeNames) {
		return roundingModeNames[m]
	}
	return fmt.Sprintf("RoundingMode(%d)", m)
}

// ParseRoundingMode returns a mode by its name, like "half-even" or "ceiling".
// Names are case-insensitive, underscores are accepted instead of dashes.
func ParseRoundingMode(s string) (RoundingMode, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for i, n := range roundingModeNames {
		if n == name {
			return RoundingMode(i), nil
		}
	}
	return HalfEven, fmt.Errorf("unknown rounding mode %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m RoundingMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *RoundingMode) UnmarshalText(data []byte) error {
	parsed, err := ParseRoundingMode(string(data))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Context is a rounding mode with an optional precision limit.
// If Precision is positive, any rounding keeps at most Precision significant digits.
type Context struct {
	Mode      RoundingMode
	Precision int
}

// DefaultContext rounds half-even without a precision limit.
var DefaultContext = Context{Mode: HalfEven}

// effectiveMagnitude raises the rounding magnitude so that no more than
// c.Precision significant digits survive.
func (c Context) effectiveMagnitude(magnitude, msd int) int {
	if c.Precision > 0 {
		if m := msd - c.Precision + 1; m > magnitude {
			return m
		}
	}
	return magnitude
}

// section tells where the discarded part of a number lies
// relative to a half of the retained unit.
type section uint8

const (
	sectionZero section = iota
	sectionLower
	sectionMidpoint
	sectionUpper
)

// sectionOf classifies the discarded digits, given the first of them
// and whether any of the rest is not zero.
func sectionOf(first byte, restNonZero bool) section {
	switch {
	case first == 0 && !restNonZero:
		return sectionZero
	case first < 5:
		return sectionLower
	case first == 5 && !restNonZero:
		return sectionMidpoint
	default:
		return sectionUpper
	}
}

// roundsUp tells if the absolute value of the retained part must be incremented.
// odd reports the parity of the last retained digit.
func (m RoundingMode) roundsUp(sec section, neg, odd bool) bool {
	if sec == sectionZero {
		return false
	}
	switch m {
	case Up:
		return true
	case Down:
		return false
	case Ceiling:
		return !neg
	case Floor:
		return neg
	case HalfUp:
		return sec != sectionLower
	case HalfDown:
		return sec == sectionUpper
	default:
		return sec == sectionUpper || sec == sectionMidpoint && odd
	}
}

// discarded computes the rounding section for dropping all digits of q below magnitude.
// Stored digits are normalized, so the lowest stored digit is never zero.
func discarded(q DecimalQuantity, scale, magnitude int) (sec section, odd bool) {
	first := q.DigitAt(magnitude - 1)
	sec = sectionOf(first, scale < magnitude-1)
	return sec, q.DigitAt(magnitude)&1 == 1
}
