package quantity

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// bigQuantity stores an arbitrary-precision coefficient.
// The value is coef * 10^shift, where coef is non-negative and its
// coefficient has no trailing zeros. shift makes AdjustMagnitude O(1).
// text caches the digits of coef, the most significant first.
type bigQuantity struct {
	display
	coef  decimal.Decimal
	shift int
	text  string
}

func newBig(lit literal) *bigQuantity {
	q := &bigQuantity{display: newDisplay(lit.neg)}
	q.setLiteral(lit)
	return q
}

func (q *bigQuantity) setLiteral(lit literal) {
	c := new(big.Int)
	if len(lit.digits) > 0 {
		c.SetString(lit.digits, 10)
	}
	q.coef, q.shift = decimal.NewFromBigInt(c, int32(lit.exp)), 0
	q.normalize()
}

func (q *bigQuantity) Encoding() Encoding {
	return Big
}

func (q *bigQuantity) Clone() DecimalQuantity {
	c := *q
	return &c
}

func (q *bigQuantity) IsZero() bool {
	return q.coef.IsZero()
}

func (q *bigQuantity) scale() int {
	return int(q.coef.Exponent()) + q.shift
}

func (q *bigQuantity) bounds() (top, scale int) {
	if q.IsZero() {
		return 0, 0
	}
	scale = q.scale()
	return scale + len(q.text), scale
}

func (q *bigQuantity) Magnitude() int {
	if q.IsZero() {
		return 0
	}
	return q.scale() + len(q.text) - 1
}

func (q *bigQuantity) DigitAt(magnitude int) byte {
	if q.IsZero() {
		return 0
	}
	i := magnitude - q.scale()
	if i < 0 || i >= len(q.text) {
		return 0
	}
	return q.text[len(q.text)-1-i] - '0'
}

func (q *bigQuantity) UpperDisplayMagnitude() int {
	return q.upper(q.bounds())
}

func (q *bigQuantity) LowerDisplayMagnitude() int {
	_, scale := q.bounds()
	return q.lower(scale)
}

func (q *bigQuantity) Fingerprint() uint64 {
	return q.fingerprint(q.bounds())
}

func (q *bigQuantity) MaxRepresentableDigits() int {
	return math.MaxInt32
}

func (q *bigQuantity) RoundToMagnitude(magnitude int, ctx Context) {
	roundToMagnitude(q, magnitude, ctx)
}

func (q *bigQuantity) RoundToInterval(interval decimal.Decimal, ctx Context) error {
	if interval.Sign() <= 0 {
		return ErrNonPositiveInterval
	}
	if q.IsZero() {
		return nil
	}
	c, e := roundBigToInterval(q.coef.Coefficient(), q.scale(), q.neg, interval, ctx.Mode)
	q.coef, q.shift = decimal.NewFromBigInt(c, int32(e)), 0
	q.normalize()
	roundToMagnitude(q, minMagnitude, ctx)
	return nil
}

func (q *bigQuantity) AdjustMagnitude(delta int) {
	if !q.IsZero() {
		q.shift += delta
	}
}

func (q *bigQuantity) MultiplyBy(factor decimal.Decimal) {
	if factor.Sign() < 0 {
		q.neg = !q.neg
	}
	if q.IsZero() {
		return
	}
	q.coef = q.coef.Mul(factor.Abs())
	q.normalize()
}

func (q *bigQuantity) SetIntegerFractionLength(minInt, maxInt, minFrac, maxFrac int) {
	setIntegerFractionLength(q, minInt, maxInt, minFrac, maxFrac)
}

// value returns the signed decimal.
func (q *bigQuantity) value() decimal.Decimal {
	v := decimal.NewFromBigInt(q.coef.Coefficient(), q.coef.Exponent()+int32(q.shift))
	if q.neg {
		v = v.Neg()
	}
	return v
}

func (q *bigQuantity) Float64() float64 {
	f, _ := q.value().Float64()
	return f
}

func (q *bigQuantity) ExactString() string {
	return q.value().String()
}

func (q *bigQuantity) String() string {
	top, scale := q.bounds()
	return q.debugString(Big, q.ExactString(), top, scale)
}

// CheckHealth verifies the coefficient against the cached digits.
func (q *bigQuantity) CheckHealth() string {
	c := q.coef.Coefficient()
	switch {
	case c.Sign() < 0:
		return fmt.Sprintf("negative coefficient %s", c)
	case c.Sign() == 0:
		if q.text != "" || q.shift != 0 {
			return fmt.Sprintf("zero with digits %q and shift %d", q.text, q.shift)
		}
		return ""
	}
	s := c.String()
	if strings.HasSuffix(s, "0") {
		return fmt.Sprintf("coefficient %s has trailing zeros", s)
	}
	if s != q.text {
		return fmt.Sprintf("cached digits %q do not match coefficient %s", q.text, s)
	}
	return ""
}

func (q *bigQuantity) dropBelow(m int) {
	c := q.coef.Coefficient()
	if top, scale := q.bounds(); m >= top {
		c.SetInt64(0)
	} else {
		c.Quo(c, pow10Big(m-scale))
	}
	q.coef = decimal.NewFromBigInt(c, int32(m-q.shift))
}

func (q *bigQuantity) increment(m int) {
	q.coef = q.coef.Add(decimal.New(1, int32(m-q.shift)))
}

func (q *bigQuantity) dropAbove(m int) {
	c := q.coef.Coefficient()
	if keep := m - q.scale(); keep <= 0 {
		c.SetInt64(0)
	} else {
		c.Mod(c, pow10Big(keep))
	}
	q.coef = decimal.NewFromBigInt(c, q.coef.Exponent())
}

func (q *bigQuantity) normalize() {
	c := q.coef.Coefficient()
	if c.Sign() == 0 {
		q.coef, q.shift, q.text = decimal.Zero, 0, ""
		return
	}
	l := literalFromBig(c, int(q.coef.Exponent()))
	if l.exp != int(q.coef.Exponent()) {
		c.SetString(l.digits, 10)
		q.coef = decimal.NewFromBigInt(c, int32(l.exp))
	}
	q.text = l.digits
}
