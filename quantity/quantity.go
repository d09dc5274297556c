// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package quantity implements a signed decimal number with per-digit access,
// used as the intermediate representation of a number being formatted.
//
// Three encodings share the DecimalQuantity contract:
//   - BCD stores one byte per decimal digit and is effectively unbounded;
//   - Compact stores a uint64 coefficient and keeps up to 19 digits;
//   - Big stores an arbitrary-precision shopspring/decimal coefficient.
//
// All of them expose identical digits, signs and magnitudes for the same value,
// as long as the value fits MaxRepresentableDigits of each encoding.
//
// Every mutating method changes the quantity in place.
// Callers must Clone a quantity to preserve the original.
package quantity

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	mu "github.com/avdva/numfmt/internal/mathutil"
)

// Unlimited disables an integer or fraction digit bound.
const Unlimited = math.MaxInt32

// minMagnitude is below the lowest digit of any quantity.
const minMagnitude = -Unlimited

var (
	// ErrNonPositiveInterval is returned for a rounding interval <= 0.
	ErrNonPositiveInterval = errors.New("rounding interval must be positive")

	errBadFloat = errors.New("bad float number")
)

// Encoding selects the storage of a DecimalQuantity.
type Encoding uint8

const (
	// Auto chooses Compact for literals of up to 19 digits, and BCD otherwise.
	Auto Encoding = iota
	// BCD is a digit array.
	BCD
	// Compact is a uint64 coefficient with an exponent.
	Compact
	// Big is an arbitrary-precision decimal.
	Big
)

// Encodings lists all concrete encodings.
var Encodings = []Encoding{BCD, Compact, Big}

func (e Encoding) String() string {
	switch e {
	case Auto:
		return "auto"
	case BCD:
		return "bcd"
	case Compact:
		return "compact"
	case Big:
		return "big"
	default:
		return fmt.Sprintf("Encoding(%d)", e)
	}
}

// ParseEncoding returns an encoding by its name.
func ParseEncoding(s string) (Encoding, error) {
	for _, e := range []Encoding{Auto, BCD, Compact, Big} {
		if e.String() == s {
			return e, nil
		}
	}
	return Auto, fmt.Errorf("unknown encoding %q", s)
}

// DecimalQuantity is a signed decimal number with addressable digits
// and a display window.
type DecimalQuantity interface {
	// Encoding returns the storage kind of the quantity.
	Encoding() Encoding
	// Clone returns an independent copy.
	Clone() DecimalQuantity

	IsNegative() bool
	IsZero() bool
	// Negate flips the sign. Zero keeps a sign too.
	Negate()
	// Magnitude returns the magnitude of the most significant digit, or 0 for zero.
	Magnitude() int
	// DigitAt returns the digit at given magnitude, or 0 outside of the stored digits.
	DigitAt(magnitude int) byte
	// UpperDisplayMagnitude returns the highest magnitude to render.
	UpperDisplayMagnitude() int
	// LowerDisplayMagnitude returns the lowest magnitude to render.
	LowerDisplayMagnitude() int
	// Fingerprint summarizes which magnitudes carry data and the display window.
	// Two quantities with equal positions have equal fingerprints, regardless of their encodings.
	Fingerprint() uint64
	// MaxRepresentableDigits returns the number of digits the encoding holds exactly.
	MaxRepresentableDigits() int

	// RoundToMagnitude discards all digits below magnitude, according to ctx.
	RoundToMagnitude(magnitude int, ctx Context)
	// RoundToInterval rounds to the nearest multiple of interval, according to ctx.
	// Returns ErrNonPositiveInterval if interval <= 0, the quantity is not changed in this case.
	RoundToInterval(interval decimal.Decimal, ctx Context) error
	// AdjustMagnitude multiplies the quantity by 10^delta.
	AdjustMagnitude(delta int)
	// MultiplyBy multiplies the quantity by factor.
	MultiplyBy(factor decimal.Decimal)
	// SetIntegerFractionLength sets the display window and truncates digits outside of
	// [maxInt-1, -maxFrac]. Pass Unlimited to disable maxInt or maxFrac.
	SetIntegerFractionLength(minInt, maxInt, minFrac, maxFrac int)

	// Float64 returns the closest float64 value.
	Float64() float64
	// ExactString returns the value in plain notation, without loss of digits.
	ExactString() string
	// String returns a debug representation.
	String() string
}

// HealthChecker is implemented by encodings able to verify their internal invariants.
// CheckHealth returns an empty string for a consistent quantity, or a description of the problem.
type HealthChecker interface {
	CheckHealth() string
}

// Parse returns a quantity for given decimal literal, like "-12.5" or "1.25e-3".
// The error, if any, is a *ParseError.
func Parse(enc Encoding, s string) (DecimalQuantity, error) {
	lit, err := parseLiteral(s)
	if err != nil {
		return nil, err
	}
	return fromLiteral(enc, lit), nil
}

// MustParse is like Parse, but panics on errors.
func MustParse(enc Encoding, s string) DecimalQuantity {
	q, err := Parse(enc, s)
	if err != nil {
		panic(err)
	}
	return q
}

// FromFloat64 returns a quantity for the shortest decimal representation of f.
// Returns an error for infinities and not-a-numbers.
func FromFloat64(enc Encoding, f float64) (DecimalQuantity, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, errBadFloat
	}
	lit, err := parseLiteral(strconv.FormatFloat(f, 'e', -1, 64))
	if err != nil {
		return nil, err
	}
	lit.neg = math.Signbit(f)
	return fromLiteral(enc, lit), nil
}

// FromInt64 returns a quantity for given integer.
func FromInt64(enc Encoding, i int64) DecimalQuantity {
	lit, _ := parseLiteral(strconv.FormatInt(i, 10))
	return fromLiteral(enc, lit)
}

// FromDecimal returns a quantity for given decimal.
func FromDecimal(enc Encoding, d decimal.Decimal) DecimalQuantity {
	q := fromBigInt(enc, d.Coefficient(), int(d.Exponent()))
	if d.Sign() < 0 {
		q.Negate()
	}
	return q
}

func fromLiteral(enc Encoding, lit literal) DecimalQuantity {
	switch enc {
	case BCD:
		return newBCD(lit)
	case Compact:
		return newCompact(lit)
	case Big:
		return newBig(lit)
	default:
		if len(lit.digits) <= mu.MaxDigits {
			return newCompact(lit)
		}
		return newBCD(lit)
	}
}

// display holds the sign and the display window, which every encoding shares.
type display struct {
	neg bool

	lReq int // minInt
	lOpt int // maxInt
	rReq int // -minFrac
	rOpt int // -maxFrac
}

func newDisplay(neg bool) display {
	return display{neg: neg, lReq: 1, lOpt: Unlimited, rReq: 0, rOpt: -Unlimited}
}

func (d *display) IsNegative() bool {
	return d.neg
}

func (d *display) Negate() {
	d.neg = !d.neg
}

func (d *display) setLengths(minInt, maxInt, minFrac, maxFrac int) {
	d.lReq, d.lOpt = minInt, maxInt
	d.rReq, d.rOpt = -minFrac, -maxFrac
}

// upper returns the upper display magnitude for stored digits occupying [scale, top).
func (d *display) upper(top, scale int) int {
	bound := d.lReq
	if bound <= top {
		bound = mu.MinInt(d.lOpt, top)
	}
	return mu.MaxInt(bound-1, d.lower(scale))
}

// lower returns the lower display magnitude for stored digits starting at scale.
func (d *display) lower(scale int) int {
	if d.rReq < scale {
		return d.rReq
	}
	return mu.MaxInt(d.rOpt, scale)
}

func (d *display) fingerprint(top, scale int) uint64 {
	const (
		offset = 14695981039346656037
		prime  = 1099511628211
	)
	h := uint64(offset)
	for _, v := range [...]int{d.lOpt, d.lReq, d.rReq, d.rOpt, top, scale} {
		h ^= uint64(int64(v))
		h *= prime
	}
	return h
}

func (d *display) debugString(enc Encoding, exact string, top, scale int) string {
	return fmt.Sprintf("%s {%s, digits=[%d,%d), window=[%d,%d]}",
		exact, enc, scale, top, d.upper(top, scale), d.lower(scale))
}

// truncationBounds converts maxInt and maxFrac into the range of magnitudes to keep.
func truncationBounds(maxInt, maxFrac int) (above, below int) {
	above, below = Unlimited, minMagnitude
	if maxInt < Unlimited {
		above = maxInt
	}
	if maxFrac < Unlimited {
		below = -maxFrac
	}
	return above, below
}

// bounded is implemented by all encodings of the package.
// Stored digits occupy magnitudes [scale, top).
type bounded interface {
	bounds() (top, scale int)
}

// Equivalent compares all read-only accessors of two quantities and returns
// a description of the first mismatch, or nil.
// If one of the quantities holds more digits than the other encoding can,
// only the most significant digits both can hold are compared.
func Equivalent(a, b DecimalQuantity) error {
	if a.IsNegative() != b.IsNegative() {
		return fmt.Errorf("sign mismatch: %v vs %v", a, b)
	}
	if a.IsZero() != b.IsZero() {
		return fmt.Errorf("zero mismatch: %v vs %v", a, b)
	}
	digits := mu.MinInt(a.MaxRepresentableDigits(), b.MaxRepresentableDigits())
	exact := fits(a, digits) && fits(b, digits)
	if exact {
		if ua, ub := a.UpperDisplayMagnitude(), b.UpperDisplayMagnitude(); ua != ub {
			return fmt.Errorf("upper display magnitude mismatch %d vs %d: %v vs %v", ua, ub, a, b)
		}
		if la, lb := a.LowerDisplayMagnitude(), b.LowerDisplayMagnitude(); la != lb {
			return fmt.Errorf("lower display magnitude mismatch %d vs %d: %v vs %v", la, lb, a, b)
		}
		if a.Fingerprint() != b.Fingerprint() {
			return fmt.Errorf("fingerprint mismatch: %v vs %v", a, b)
		}
	}
	if a.IsZero() {
		return nil
	}
	top := a.Magnitude()
	if mb := b.Magnitude(); top != mb {
		return fmt.Errorf("magnitude mismatch %d vs %d: %v vs %v", top, mb, a, b)
	}
	lowest := top - digits + 1
	if exact {
		_, scale := a.(bounded).bounds()
		lowest = mu.MinInt(a.LowerDisplayMagnitude(), scale)
	}
	for m := top; m >= lowest; m-- {
		if da, db := a.DigitAt(m), b.DigitAt(m); da != db {
			return fmt.Errorf("digit mismatch at %d: %d vs %d: %v vs %v", m, da, db, a, b)
		}
	}
	return nil
}

// fits tells if all stored digits of q fit the given number of digits.
func fits(q DecimalQuantity, digits int) bool {
	bq, ok := q.(bounded)
	if !ok {
		return false
	}
	top, scale := bq.bounds()
	return top-scale <= digits
}
