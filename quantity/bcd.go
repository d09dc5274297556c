// Copyright 2020 Aleksandr Demakin. All rights reserved.

package quantity

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// maxBCDDigits is the longest coefficient a BCD quantity keeps.
const maxBCDDigits = 1 << 20

// bcdQuantity stores one decimal digit per byte.
// digits[0] is the least significant digit, its magnitude is scale.
// Neither the first nor the last element of digits is zero.
type bcdQuantity struct {
	display
	digits []byte
	scale  int
}

func newBCD(lit literal) *bcdQuantity {
	q := &bcdQuantity{display: newDisplay(lit.neg)}
	q.setLiteral(lit)
	return q
}

func (q *bcdQuantity) setLiteral(lit literal) {
	if toCut := len(lit.digits) - maxBCDDigits; toCut > 0 {
		lit.digits = lit.digits[:maxBCDDigits]
		lit.exp += toCut
	}
	q.digits = q.digits[:0]
	for i := len(lit.digits) - 1; i >= 0; i-- {
		q.digits = append(q.digits, lit.digits[i]-'0')
	}
	q.scale = lit.exp
	q.normalize()
}

func (q *bcdQuantity) Encoding() Encoding {
	return BCD
}

func (q *bcdQuantity) Clone() DecimalQuantity {
	c := *q
	c.digits = append([]byte(nil), q.digits...)
	return &c
}

func (q *bcdQuantity) IsZero() bool {
	return len(q.digits) == 0
}

func (q *bcdQuantity) bounds() (top, scale int) {
	if q.IsZero() {
		return 0, 0
	}
	return q.scale + len(q.digits), q.scale
}

func (q *bcdQuantity) Magnitude() int {
	if q.IsZero() {
		return 0
	}
	return q.scale + len(q.digits) - 1
}

func (q *bcdQuantity) DigitAt(magnitude int) byte {
	i := magnitude - q.scale
	if i < 0 || i >= len(q.digits) {
		return 0
	}
	return q.digits[i]
}

func (q *bcdQuantity) UpperDisplayMagnitude() int {
	return q.upper(q.bounds())
}

func (q *bcdQuantity) LowerDisplayMagnitude() int {
	_, scale := q.bounds()
	return q.lower(scale)
}

func (q *bcdQuantity) Fingerprint() uint64 {
	return q.fingerprint(q.bounds())
}

func (q *bcdQuantity) MaxRepresentableDigits() int {
	return maxBCDDigits
}

func (q *bcdQuantity) RoundToMagnitude(magnitude int, ctx Context) {
	roundToMagnitude(q, magnitude, ctx)
}

func (q *bcdQuantity) RoundToInterval(interval decimal.Decimal, ctx Context) error {
	if interval.Sign() <= 0 {
		return ErrNonPositiveInterval
	}
	if q.IsZero() {
		return nil
	}
	c, e := roundBigToInterval(q.bigCoefficient(), q.scale, q.neg, interval, ctx.Mode)
	q.setLiteral(literalFromBig(c, e))
	roundToMagnitude(q, minMagnitude, ctx)
	return nil
}

func (q *bcdQuantity) AdjustMagnitude(delta int) {
	if !q.IsZero() {
		q.scale += delta
	}
}

// MultiplyBy performs a schoolbook multiplication of the digit arrays.
func (q *bcdQuantity) MultiplyBy(factor decimal.Decimal) {
	if factor.Sign() < 0 {
		q.neg = !q.neg
	}
	if q.IsZero() {
		return
	}
	f := literalFromBig(factor.Coefficient(), int(factor.Exponent()))
	if len(f.digits) == 0 {
		q.digits, q.scale = q.digits[:0], 0
		return
	}
	acc := make([]int, len(q.digits)+len(f.digits))
	for j := 0; j < len(f.digits); j++ {
		fd := int(f.digits[len(f.digits)-1-j] - '0')
		if fd == 0 {
			continue
		}
		for i, d := range q.digits {
			acc[i+j] += int(d) * fd
		}
	}
	product := make([]byte, len(acc))
	carry := 0
	for i, v := range acc {
		v += carry
		product[i] = byte(v % 10)
		carry = v / 10
	}
	q.digits = product
	q.scale += f.exp
	q.normalize()
	if toCut := len(q.digits) - maxBCDDigits; toCut > 0 {
		q.dropBelow(q.scale + toCut)
		q.normalize()
	}
}

func (q *bcdQuantity) SetIntegerFractionLength(minInt, maxInt, minFrac, maxFrac int) {
	setIntegerFractionLength(q, minInt, maxInt, minFrac, maxFrac)
}

func (q *bcdQuantity) Float64() float64 {
	f, _ := strconv.ParseFloat(q.ExactString(), 64)
	return f
}

func (q *bcdQuantity) ExactString() string {
	var b strings.Builder
	formatPlain(&b, q.neg, q.text(), q.scale)
	return b.String()
}

func (q *bcdQuantity) String() string {
	top, scale := q.bounds()
	return q.debugString(BCD, q.ExactString(), top, scale)
}

// CheckHealth verifies the digit array.
func (q *bcdQuantity) CheckHealth() string {
	if q.IsZero() {
		if q.scale != 0 {
			return fmt.Sprintf("zero with scale %d", q.scale)
		}
		return ""
	}
	if len(q.digits) > maxBCDDigits {
		return fmt.Sprintf("%d digits exceed the maximum of %d", len(q.digits), maxBCDDigits)
	}
	for i, d := range q.digits {
		if d > 9 {
			return fmt.Sprintf("digit %d at magnitude %d is out of range", d, q.scale+i)
		}
	}
	if q.digits[0] == 0 {
		return fmt.Sprintf("trailing zero at magnitude %d", q.scale)
	}
	if q.digits[len(q.digits)-1] == 0 {
		return fmt.Sprintf("leading zero at magnitude %d", q.scale+len(q.digits)-1)
	}
	return ""
}

// text returns the digits, the most significant first.
func (q *bcdQuantity) text() string {
	buf := make([]byte, len(q.digits))
	for i, d := range q.digits {
		buf[len(buf)-1-i] = '0' + d
	}
	return string(buf)
}

func (q *bcdQuantity) bigCoefficient() *big.Int {
	c, _ := new(big.Int).SetString(q.text(), 10)
	return c
}

func (q *bcdQuantity) dropBelow(m int) {
	if cut := m - q.scale; cut >= len(q.digits) {
		q.digits = q.digits[:0]
	} else {
		n := copy(q.digits, q.digits[cut:])
		q.digits = q.digits[:n]
	}
	q.scale = m
}

func (q *bcdQuantity) increment(m int) {
	if q.IsZero() {
		q.digits, q.scale = append(q.digits, 1), m
		return
	}
	for i := range q.digits {
		if q.digits[i] < 9 {
			q.digits[i]++
			return
		}
		q.digits[i] = 0
	}
	q.digits = append(q.digits, 1)
}

func (q *bcdQuantity) dropAbove(m int) {
	keep := m - q.scale
	switch {
	case keep <= 0:
		q.digits = q.digits[:0]
	case keep < len(q.digits):
		q.digits = q.digits[:keep]
	}
}

func (q *bcdQuantity) normalize() {
	i := 0
	for i < len(q.digits) && q.digits[i] == 0 {
		i++
	}
	if i == len(q.digits) {
		q.digits, q.scale = q.digits[:0], 0
		return
	}
	if i > 0 {
		n := copy(q.digits, q.digits[i:])
		q.digits = q.digits[:n]
		q.scale += i
	}
	for q.digits[len(q.digits)-1] == 0 {
		q.digits = q.digits[:len(q.digits)-1]
	}
}
