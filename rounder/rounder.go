// Package rounder implements the rounding strategies applied to a quantity before it is rendered.
//
// A Rounder is built once from a configuration and may then be applied to any number of
// quantities. Apply mutates the quantity in place; rounders themselves are immutable.
package rounder

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	mu "github.com/avdva/numfmt/internal/mathutil"
	"github.com/avdva/numfmt/properties"
	"github.com/avdva/numfmt/quantity"
)

// Unlimited disables a digit bound.
const Unlimited = quantity.Unlimited

var (
	// ErrConflictingRounding is returned if both a rounding interval and significant digits are configured.
	ErrConflictingRounding = errors.New("rounding interval and significant digits are mutually exclusive")
)

// Rounder rounds a quantity and sets its display window.
type Rounder interface {
	// Apply rounds q in place.
	Apply(q quantity.DecimalQuantity)
	// Export writes the equivalent legacy properties into p.
	Export(p *properties.Properties)
}

// Bounds are the integer and fraction digit limits shared by all rounders.
type Bounds struct {
	MinInt, MaxInt   int
	MinFrac, MaxFrac int
	Context          quantity.Context
}

// DefaultBounds returns at least one integer digit and no other limits.
func DefaultBounds() Bounds {
	return Bounds{MinInt: 1, MaxInt: Unlimited, MinFrac: 0, MaxFrac: Unlimited, Context: quantity.DefaultContext}
}

// BoundsFrom reads the digit limits from p, using defaults for the unset ones.
func BoundsFrom(p *properties.Properties) Bounds {
	b := DefaultBounds()
	if p.MinimumIntegerDigits != properties.Unset {
		b.MinInt = p.MinimumIntegerDigits
	}
	if p.MaximumIntegerDigits != properties.Unset {
		b.MaxInt = p.MaximumIntegerDigits
	}
	if p.MinimumFractionDigits != properties.Unset {
		b.MinFrac = p.MinimumFractionDigits
	}
	if p.MaximumFractionDigits != properties.Unset {
		b.MaxFrac = p.MaximumFractionDigits
	}
	b.Context = p.Context()
	return b.normalized()
}

// normalized makes the bounds consistent: min <= max, nothing is negative.
func (b Bounds) normalized() Bounds {
	b.MinInt = mu.MaxInt(b.MinInt, 0)
	b.MaxInt = mu.MaxInt(b.MaxInt, 0)
	b.MinFrac = mu.MaxInt(b.MinFrac, 0)
	b.MaxFrac = mu.MaxInt(b.MaxFrac, 0)
	b.MinInt = mu.MinInt(b.MinInt, b.MaxInt)
	b.MaxFrac = mu.MaxInt(b.MaxFrac, b.MinFrac)
	if b.Context.Precision < 0 {
		b.Context.Precision = 0
	}
	return b
}

func (b Bounds) apply(q quantity.DecimalQuantity, minFrac, maxFrac int) {
	q.SetIntegerFractionLength(b.MinInt, b.MaxInt, minFrac, maxFrac)
}

func (b Bounds) export(p *properties.Properties) {
	p.MinimumIntegerDigits = b.MinInt
	p.MaximumIntegerDigits = unsetIfUnlimited(b.MaxInt)
	p.MinimumFractionDigits = b.MinFrac
	p.MaximumFractionDigits = unsetIfUnlimited(b.MaxFrac)
	p.RoundingMode = b.Context.Mode
	p.Precision = b.Context.Precision
	p.RoundingInterval = nil
	p.MinimumSignificantDigits = properties.Unset
	p.MaximumSignificantDigits = properties.Unset
	p.SignificantDigitsOverride = false
}

func unsetIfUnlimited(v int) int {
	if v >= Unlimited {
		return properties.Unset
	}
	return v
}

// New returns a rounder for given properties:
// an interval rounder if the rounding interval is set, a significant digits rounder
// if any of the significant digits bounds is set, or a fraction rounder otherwise.
func New(p *properties.Properties) (Rounder, error) {
	b := BoundsFrom(p)
	switch {
	case p.RoundingInterval != nil && p.HasSignificantDigits():
		return nil, ErrConflictingRounding
	case p.RoundingInterval != nil:
		r, err := NewInterval(*p.RoundingInterval, b)
		if err != nil {
			return nil, err
		}
		return r, nil
	case p.HasSignificantDigits():
		minSig, maxSig := 1, Unlimited
		if p.MinimumSignificantDigits != properties.Unset {
			minSig = p.MinimumSignificantDigits
		}
		if p.MaximumSignificantDigits != properties.Unset {
			maxSig = p.MaximumSignificantDigits
		}
		return NewSignificant(minSig, maxSig, p.SignificantDigitsOverride, b), nil
	default:
		return NewFraction(b), nil
	}
}

// FractionRounder rounds to the maximum number of fraction digits.
type FractionRounder struct {
	Bounds
}

// NewFraction returns a FractionRounder.
func NewFraction(b Bounds) *FractionRounder {
	return &FractionRounder{Bounds: b.normalized()}
}

func (r *FractionRounder) Apply(q quantity.DecimalQuantity) {
	q.RoundToMagnitude(-r.MaxFrac, r.Context)
	r.apply(q, r.MinFrac, r.MaxFrac)
}

func (r *FractionRounder) Export(p *properties.Properties) {
	r.export(p)
}

// IntervalRounder rounds to a multiple of a positive interval, like 0.05.
type IntervalRounder struct {
	Bounds
	interval decimal.Decimal
}

// NewInterval returns an IntervalRounder, or ErrNonPositiveInterval.
// At least as many fraction digits as the interval has are displayed.
func NewInterval(interval decimal.Decimal, b Bounds) (*IntervalRounder, error) {
	if interval.Sign() <= 0 {
		return nil, fmt.Errorf("interval %s: %w", interval, quantity.ErrNonPositiveInterval)
	}
	b = b.normalized()
	if frac := -int(interval.Exponent()); frac > b.MinFrac {
		b.MinFrac = frac
		b.MaxFrac = mu.MaxInt(b.MaxFrac, frac)
	}
	return &IntervalRounder{Bounds: b, interval: interval}, nil
}

// Interval returns the rounding interval.
func (r *IntervalRounder) Interval() decimal.Decimal {
	return r.interval
}

func (r *IntervalRounder) Apply(q quantity.DecimalQuantity) {
	// the interval has been validated by NewInterval.
	_ = q.RoundToInterval(r.interval, r.Context)
	r.apply(q, r.MinFrac, r.MaxFrac)
}

func (r *IntervalRounder) Export(p *properties.Properties) {
	r.export(p)
	p.RoundingInterval = properties.Decimal(r.interval)
}

// SignificantRounder limits the number of significant digits.
//
// If override is set, the significant digits bounds win over the fraction bounds:
// 4.567 with maxFrac=1 and maxSig=3 becomes 4.57. Otherwise, fraction and integer
// bounds may round the number first, and 4.567 becomes 4.6.
type SignificantRounder struct {
	Bounds
	minSig, maxSig int
	override       bool
}

// NewSignificant returns a SignificantRounder.
// maxSig is at least 1, and minSig is in [1, maxSig].
func NewSignificant(minSig, maxSig int, override bool, b Bounds) *SignificantRounder {
	maxSig = mu.MaxInt(maxSig, 1)
	minSig = mu.MinInt(mu.MaxInt(minSig, 1), maxSig)
	return &SignificantRounder{Bounds: b.normalized(), minSig: minSig, maxSig: maxSig, override: override}
}

func (r *SignificantRounder) Apply(q quantity.DecimalQuantity) {
	magnitude := r.magnitudeOf(q)
	if r.maxSig < Unlimited {
		var target int
		if r.override {
			target = magnitude - r.maxSig + 1
		} else {
			effective := mu.MinInt(magnitude+1, r.MaxInt)
			target = mu.MaxInt(-r.MaxFrac, effective-r.maxSig)
		}
		q.RoundToMagnitude(target, r.Context)
		// 995 may become 1000.
		magnitude = r.magnitudeOf(q)
	} else {
		q.RoundToMagnitude(-Unlimited, r.Context)
	}
	minFrac, maxFrac := r.minSig-magnitude-1, Unlimited
	if r.override {
		minFrac = mu.MaxInt(r.MinFrac, minFrac)
	} else {
		minFrac = mu.MinInt(r.MaxFrac, mu.MaxInt(r.MinFrac, minFrac))
		maxFrac = r.MaxFrac
	}
	r.apply(q, minFrac, maxFrac)
}

// magnitudeOf treats zero as having minInt digits.
func (r *SignificantRounder) magnitudeOf(q quantity.DecimalQuantity) int {
	if q.IsZero() {
		return r.MinInt - 1
	}
	return q.Magnitude()
}

func (r *SignificantRounder) Export(p *properties.Properties) {
	r.export(p)
	p.MinimumSignificantDigits = r.minSig
	p.MaximumSignificantDigits = unsetIfUnlimited(r.maxSig)
	p.SignificantDigitsOverride = r.override
}
