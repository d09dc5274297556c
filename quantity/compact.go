// Copyright 2020 Aleksandr Demakin. All rights reserved.

package quantity

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	mu "github.com/avdva/numfmt/internal/mathutil"
)

// compactQuantity keeps the coefficient in a uint64.
// The value is mant * 10^scale, mant has no trailing zeros and at most 19 digits.
// Operations producing longer coefficients truncate the least significant digits.
type compactQuantity struct {
	display
	mant  uint64
	scale int
}

func newCompact(lit literal) *compactQuantity {
	q := &compactQuantity{display: newDisplay(lit.neg)}
	q.setLiteral(lit)
	return q
}

func (q *compactQuantity) setLiteral(lit literal) {
	if toCut := len(lit.digits) - mu.MaxDigits; toCut > 0 {
		lit.digits = lit.digits[:mu.MaxDigits]
		lit.exp += toCut
	}
	q.mant, q.scale = 0, lit.exp
	if len(lit.digits) > 0 {
		u, err := strconv.ParseUint(lit.digits, 10, 64)
		if err != nil {
			panic(err) // should not normally happen
		}
		q.mant = u
	}
	q.normalize()
}

func (q *compactQuantity) Encoding() Encoding {
	return Compact
}

func (q *compactQuantity) Clone() DecimalQuantity {
	c := *q
	return &c
}

func (q *compactQuantity) IsZero() bool {
	return q.mant == 0
}

func (q *compactQuantity) bounds() (top, scale int) {
	if q.IsZero() {
		return 0, 0
	}
	return q.scale + mu.DecimalDigits(q.mant), q.scale
}

func (q *compactQuantity) Magnitude() int {
	if q.IsZero() {
		return 0
	}
	return q.scale + mu.DecimalDigits(q.mant) - 1
}

func (q *compactQuantity) DigitAt(magnitude int) byte {
	i := magnitude - q.scale
	if i < 0 || i >= mu.MaxDigits {
		return 0
	}
	return byte(q.mant / mu.Pow10(i) % 10)
}

func (q *compactQuantity) UpperDisplayMagnitude() int {
	return q.upper(q.bounds())
}

func (q *compactQuantity) LowerDisplayMagnitude() int {
	_, scale := q.bounds()
	return q.lower(scale)
}

func (q *compactQuantity) Fingerprint() uint64 {
	return q.fingerprint(q.bounds())
}

func (q *compactQuantity) MaxRepresentableDigits() int {
	return mu.MaxDigits
}

func (q *compactQuantity) RoundToMagnitude(magnitude int, ctx Context) {
	roundToMagnitude(q, magnitude, ctx)
}

// RoundToInterval tries to divide in uint64 first, and falls back to big.Int,
// if the aligned coefficients do not fit.
func (q *compactQuantity) RoundToInterval(interval decimal.Decimal, ctx Context) error {
	if interval.Sign() <= 0 {
		return ErrNonPositiveInterval
	}
	if q.IsZero() {
		return nil
	}
	if k := interval.Coefficient(); !k.IsUint64() || !q.roundToIntervalFast(k.Uint64(), int(interval.Exponent()), ctx.Mode) {
		c, e := roundBigToInterval(new(big.Int).SetUint64(q.mant), q.scale, q.neg, interval, ctx.Mode)
		q.setLiteral(literalFromBig(c, e))
	}
	roundToMagnitude(q, minMagnitude, ctx)
	return nil
}

func (q *compactQuantity) roundToIntervalFast(k uint64, b int, mode RoundingMode) bool {
	e := mu.MinInt(q.scale, b)
	x, ok := mulPow10(q.mant, q.scale-e)
	if !ok {
		return false
	}
	kk, ok := mulPow10(k, b-e)
	if !ok {
		return false
	}
	quo, rem := x/kk, x%kk
	var sec section
	switch {
	case rem == 0:
		sec = sectionZero
	case rem < kk-rem:
		sec = sectionLower
	case rem == kk-rem:
		sec = sectionMidpoint
	default:
		sec = sectionUpper
	}
	if mode.roundsUp(sec, q.neg, quo&1 == 1) {
		quo++
	}
	m, ok := mu.MulExact(quo, kk)
	if !ok || m > mu.MaxCoefficient {
		return false
	}
	q.mant, q.scale = m, e
	q.normalize()
	return true
}

// mulPow10 returns v*10^p, if it fits 19 digits.
func mulPow10(v uint64, p int) (uint64, bool) {
	p10 := mu.Pow10(p)
	if p10 == 0 {
		return 0, false
	}
	m, ok := mu.MulExact(v, p10)
	return m, ok && m <= mu.MaxCoefficient
}

func (q *compactQuantity) AdjustMagnitude(delta int) {
	if !q.IsZero() {
		q.scale += delta
	}
}

// MultiplyBy multiplies the coefficients in 128 bits, and truncates the product to 19 digits.
func (q *compactQuantity) MultiplyBy(factor decimal.Decimal) {
	if factor.Sign() < 0 {
		q.neg = !q.neg
	}
	if q.IsZero() {
		return
	}
	f := newCompact(literalFromBig(factor.Coefficient(), int(factor.Exponent())))
	if f.IsZero() {
		q.mant, q.scale = 0, 0
		return
	}
	m, e := mu.Mul64(q.mant, f.mant)
	m, dropped := mu.FitDigits(m)
	q.mant = m
	q.scale += f.scale + e + dropped
	q.normalize()
}

func (q *compactQuantity) SetIntegerFractionLength(minInt, maxInt, minFrac, maxFrac int) {
	setIntegerFractionLength(q, minInt, maxInt, minFrac, maxFrac)
}

func (q *compactQuantity) Float64() float64 {
	f, _ := strconv.ParseFloat(q.ExactString(), 64)
	return f
}

func (q *compactQuantity) ExactString() string {
	var b strings.Builder
	var digits string
	if !q.IsZero() {
		digits = strconv.FormatUint(q.mant, 10)
	}
	formatPlain(&b, q.neg, digits, q.scale)
	return b.String()
}

func (q *compactQuantity) String() string {
	top, scale := q.bounds()
	return q.debugString(Compact, q.ExactString(), top, scale)
}

func (q *compactQuantity) dropBelow(m int) {
	if cut := m - q.scale; cut > mu.MaxDigits {
		q.mant = 0
	} else {
		q.mant /= mu.Pow10(cut)
	}
	q.scale = m
}

func (q *compactQuantity) increment(m int) {
	q.mant++
	q.scale = m
}

func (q *compactQuantity) dropAbove(m int) {
	keep := m - q.scale
	switch {
	case keep <= 0:
		q.mant = 0
	case keep < mu.MaxDigits:
		q.mant %= mu.Pow10(keep)
	}
}

func (q *compactQuantity) normalize() {
	if q.mant == 0 {
		q.scale = 0
		return
	}
	q.mant, q.scale = mu.TrimZeros(q.mant, q.scale)
}
