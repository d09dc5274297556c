package quantity

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	bigOne = big.NewInt(1)
	bigTen = big.NewInt(10)
)

// storage is the encoding-specific half of a DecimalQuantity.
// The algorithms below are written once in terms of it.
type storage interface {
	DecimalQuantity
	bounded

	window() *display
	// dropBelow removes all digits below m and makes m the lowest magnitude. m > scale.
	dropBelow(m int)
	// increment adds 10^m. Called right after dropBelow(m).
	increment(m int)
	// dropAbove removes all digits at m and above.
	dropAbove(m int)
	// normalize removes trailing zeros and resets the scale of zero.
	normalize()
}

func (d *display) window() *display {
	return d
}

func roundToMagnitude(q storage, magnitude int, ctx Context) {
	if q.IsZero() {
		return
	}
	magnitude = ctx.effectiveMagnitude(magnitude, q.Magnitude())
	_, scale := q.bounds()
	if magnitude <= scale {
		return
	}
	sec, odd := discarded(q, scale, magnitude)
	up := ctx.Mode.roundsUp(sec, q.IsNegative(), odd)
	q.dropBelow(magnitude)
	if up {
		q.increment(magnitude)
	}
	q.normalize()
}

func setIntegerFractionLength(q storage, minInt, maxInt, minFrac, maxFrac int) {
	q.window().setLengths(minInt, maxInt, minFrac, maxFrac)
	if q.IsZero() {
		return
	}
	above, below := truncationBounds(maxInt, maxFrac)
	if _, scale := q.bounds(); below > scale {
		q.dropBelow(below)
		q.normalize()
	}
	if q.IsZero() {
		return
	}
	if top, _ := q.bounds(); above < top {
		q.dropAbove(above)
		q.normalize()
	}
}

func pow10Big(n int) *big.Int {
	return new(big.Int).Exp(bigTen, big.NewInt(int64(n)), nil)
}

// literalFromBig converts |c| * 10^exp to a literal.
func literalFromBig(c *big.Int, exp int) literal {
	s := new(big.Int).Abs(c).String()
	if s == "0" {
		return literal{}
	}
	trimmed := strings.TrimRight(s, "0")
	return literal{digits: trimmed, exp: exp + len(s) - len(trimmed)}
}

func fromBigInt(enc Encoding, c *big.Int, exp int) DecimalQuantity {
	return fromLiteral(enc, literalFromBig(c, exp))
}

// roundBigToInterval rounds c * 10^exp to a multiple of interval.
// Both numbers are brought to the same exponent, so that the quotient
// and the remainder are computed exactly with integer division.
// Returns the coefficient and the exponent of the result.
func roundBigToInterval(c *big.Int, exp int, neg bool, interval decimal.Decimal, mode RoundingMode) (*big.Int, int) {
	k := new(big.Int).Abs(interval.Coefficient())
	b := int(interval.Exponent())
	e := exp
	if b < e {
		e = b
	}
	x := new(big.Int).Mul(c, pow10Big(exp-e))
	k.Mul(k, pow10Big(b-e))
	quo, rem := new(big.Int).QuoRem(x, k, new(big.Int))
	var sec section
	if rem.Sign() != 0 {
		switch rem.Lsh(rem, 1).Cmp(k) {
		case -1:
			sec = sectionLower
		case 0:
			sec = sectionMidpoint
		default:
			sec = sectionUpper
		}
	}
	if mode.roundsUp(sec, neg, quo.Bit(0) == 1) {
		quo.Add(quo, bigOne)
	}
	return quo.Mul(quo, k), e
}
