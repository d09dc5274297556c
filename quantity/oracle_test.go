// Copyright 2020 Aleksandr Demakin. All rights reserved.

package quantity

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/apd/v3"
	gv "github.com/govalues/decimal"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gopkg.in/inf.v0"
)

var apdRounders = map[RoundingMode]apd.Rounder{
	HalfEven: apd.RoundHalfEven,
	HalfUp:   apd.RoundHalfUp,
	HalfDown: apd.RoundHalfDown,
	Up:       apd.RoundUp,
	Down:     apd.RoundDown,
	Ceiling:  apd.RoundCeiling,
	Floor:    apd.RoundFloor,
}

// apdRound rounds s to given magnitude with apd.
func apdRound(s string, magnitude int, mode RoundingMode) (string, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return "", err
	}
	if d.IsZero() {
		return "0", nil
	}
	if int(d.NumDigits())+int(d.Exponent) <= magnitude {
		return apdRoundAll(d, magnitude, mode), nil
	}
	ctx := apd.BaseContext.WithPrecision(1000)
	ctx.Rounding = apdRounders[mode]
	if int(d.Exponent) < magnitude {
		rounded := new(apd.Decimal)
		if _, err := ctx.Quantize(rounded, d, int32(magnitude)); err != nil {
			return "", err
		}
		d = rounded
	}
	if d.IsZero() {
		return "0", nil
	}
	d.Reduce(d)
	return d.Text('f'), nil
}

// apdRoundAll handles |d| < 10^magnitude, where Quantize yields 0 for any mode.
// The result is either 0 or ±10^magnitude.
func apdRoundAll(d *apd.Decimal, magnitude int, mode RoundingMode) string {
	frac := new(apd.Decimal).Abs(d)
	frac.Exponent -= int32(magnitude)
	half := frac.Cmp(apd.New(5, -1))
	var up bool
	switch mode {
	case Up:
		up = true
	case Ceiling:
		up = !d.Negative
	case Floor:
		up = d.Negative
	case HalfUp:
		up = half >= 0
	case HalfDown, HalfEven:
		// the retained digit is 0, so ties go down for half-even too.
		up = half > 0
	}
	if !up {
		return "0"
	}
	result := apd.New(1, int32(magnitude))
	result.Negative = d.Negative
	return result.Text('f')
}

func randomDigits(rnd *rand.Rand, maxDigits int) string {
	var b strings.Builder
	if rnd.Intn(2) == 0 {
		b.WriteByte('-')
	}
	digits := 1 + rnd.Intn(maxDigits)
	point := rnd.Intn(digits + 1)
	if point == 0 {
		b.WriteByte('0')
	}
	for i := 0; i < digits; i++ {
		if i == point {
			b.WriteByte('.')
		}
		b.WriteByte(byte('0' + rnd.Intn(10)))
	}
	return b.String()
}

// TestRoundToMagnitudeOracle compares the rounding of long numbers to an arbitrary-precision library.
func TestRoundToMagnitudeOracle(t *testing.T) {
	a := assert.New(t)
	seed := time.Now().UnixNano()
	rnd := rand.New(rand.NewSource(seed))
	for i := 0; i < 1000; i++ {
		s := randomDigits(rnd, 40)
		magnitude := rnd.Intn(50) - 30
		mode := RoundingMode(rnd.Intn(len(roundingModeNames)))
		expected, err := apdRound(s, magnitude, mode)
		if !a.NoError(err) {
			return
		}
		for _, enc := range []Encoding{BCD, Big} {
			q := MustParse(enc, s)
			q.RoundToMagnitude(magnitude, Context{Mode: mode})
			if !a.Equal(expected, q.ExactString(), "seed %d: %s rounded to %d with %v, %v", seed, s, magnitude, mode, enc) {
				return
			}
		}
	}
}

func TestRoundAboveTopDigit(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		s         string
		magnitude int
		mode      RoundingMode
		result    string
	}{
		{"-25.5", 11, Up, "-100000000000"},
		{"-25.5", 11, Down, "0"},
		{"12250.327", 17, Ceiling, "100000000000000000"},
		{"12250.327", 17, Floor, "0"},
		{"-12250.327", 17, Floor, "-100000000000000000"},
		{"0.0123", -1, HalfUp, "0"},
		{"0.05", -1, HalfUp, "0.1"},
		{"0.05", -1, HalfEven, "0"},
		{"-0.051", -1, HalfDown, "-0.1"},
		{"7", 1, HalfEven, "10"},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			expected, err := apdRound(test.s, test.magnitude, test.mode)
			if a.NoError(err) {
				a.Equal(test.result, expected)
			}
			for _, enc := range Encodings {
				q := MustParse(enc, test.s)
				q.RoundToMagnitude(test.magnitude, Context{Mode: test.mode})
				a.Equal(test.result, q.ExactString(), "%v", enc)
			}
		})
	}
}

// TestRoundCompactOracle compares the rounding of short numbers to a 64-bit decimal library.
func TestRoundCompactOracle(t *testing.T) {
	a := assert.New(t)
	seed := time.Now().UnixNano()
	rnd := rand.New(rand.NewSource(seed))
	for i := 0; i < 1000; i++ {
		s := randomDigits(rnd, 18)
		d, err := gv.Parse(s)
		if !a.NoError(err) {
			return
		}
		scale := rnd.Intn(d.Scale() + 1)
		var expected gv.Decimal
		var mode RoundingMode
		switch rnd.Intn(4) {
		case 0:
			mode, expected = HalfEven, d.Round(scale)
		case 1:
			mode, expected = Down, d.Trunc(scale)
		case 2:
			mode, expected = Ceiling, d.Ceil(scale)
		default:
			mode, expected = Floor, d.Floor(scale)
		}
		q := MustParse(Compact, s)
		q.RoundToMagnitude(-scale, Context{Mode: mode})
		a.Equal(expected.Trim(0).String(), q.ExactString(), "seed %d: %s rounded to %d with %v", seed, s, -scale, mode)
	}
}

func TestRoundToIntervalOracle(t *testing.T) {
	a := assert.New(t)
	intervals := []string{"0.05", "0.25", "3", "0.001", "12.5", "0.0007"}
	for i, s := range []string{"11.17", "-0.0249", "123456789012345678901234.5678", "7.49999", "-1000"} {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			for _, interval := range intervals {
				x, _ := new(inf.Dec).SetString(s)
				k, _ := new(inf.Dec).SetString(interval)
				quo := new(inf.Dec).QuoRound(x, k, 0, inf.RoundHalfEven)
				expected := new(inf.Dec).Mul(quo, k)
				for _, enc := range []Encoding{BCD, Big} {
					q := MustParse(enc, s)
					a.NoError(q.RoundToInterval(decimal.RequireFromString(interval), DefaultContext))
					a.Equal(MustParse(BCD, expected.String()).ExactString(), q.ExactString(), "%s to %s, %v", s, interval, enc)
				}
			}
		})
	}
}

func BenchmarkRoundGovalues(b *testing.B) {
	d := gv.MustParse("123456789.987654")
	for i := 0; i < b.N; i++ {
		d.Round(2)
	}
}

func BenchmarkRoundInf(b *testing.B) {
	x, _ := new(inf.Dec).SetString("123456789.987654")
	for i := 0; i < b.N; i++ {
		new(inf.Dec).Round(x, 2, inf.RoundHalfEven)
	}
}
