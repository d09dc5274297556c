package rounder

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/avdva/numfmt/properties"
	"github.com/avdva/numfmt/quantity"
)

// render writes the digits of the display window.
func render(q quantity.DecimalQuantity) string {
	var b strings.Builder
	if q.IsNegative() {
		b.WriteByte('-')
	}
	for m := q.UpperDisplayMagnitude(); m >= q.LowerDisplayMagnitude(); m-- {
		if m == -1 {
			b.WriteByte('.')
		}
		b.WriteByte('0' + q.DigitAt(m))
	}
	return b.String()
}

func bounds(minInt, maxInt, minFrac, maxFrac int) Bounds {
	return Bounds{MinInt: minInt, MaxInt: maxInt, MinFrac: minFrac, MaxFrac: maxFrac, Context: quantity.DefaultContext}
}

func TestRounders(t *testing.T) {
	a := assert.New(t)
	withMode := func(b Bounds, mode quantity.RoundingMode) Bounds {
		b.Context.Mode = mode
		return b
	}
	withPrecision := func(b Bounds, precision int) Bounds {
		b.Context.Precision = precision
		return b
	}
	tests := []struct {
		in  string
		r   Rounder
		out string
	}{
		{"4.567", NewFraction(DefaultBounds()), "4.567"},
		{"4.567", NewFraction(bounds(1, Unlimited, 0, 2)), "4.57"},
		{"4.5", NewFraction(bounds(1, Unlimited, 3, 3)), "4.500"},
		{"-2.5", NewFraction(bounds(1, Unlimited, 0, 0)), "-2"},
		{"-2.5", NewFraction(withMode(bounds(1, Unlimited, 0, 0), quantity.Floor)), "-3"},
		{"-2.5", NewFraction(withMode(bounds(1, Unlimited, 0, 0), quantity.Ceiling)), "-2"},
		{"2.5", NewFraction(withMode(bounds(1, Unlimited, 0, 0), quantity.HalfUp)), "3"},
		{"2.5", NewFraction(withMode(bounds(1, Unlimited, 0, 0), quantity.HalfDown)), "2"},
		{"2.1", NewFraction(withMode(bounds(1, Unlimited, 0, 0), quantity.Up)), "3"},
		{"2.9", NewFraction(withMode(bounds(1, Unlimited, 0, 0), quantity.Down)), "2"},
		{"-0.4", NewFraction(bounds(1, Unlimited, 0, 0)), "-0"},
		{"5", NewFraction(bounds(3, Unlimited, 0, Unlimited)), "005"},
		{"0.5", NewFraction(bounds(0, Unlimited, 0, Unlimited)), ".5"},
		{"1234.5", NewFraction(bounds(1, 2, 0, 0)), "34"},
		{"1234.5", NewFraction(withPrecision(DefaultBounds(), 3)), "1230"},
		{"0.99", NewFraction(bounds(1, Unlimited, 0, 1)), "1"},

		{"4.567", NewSignificant(1, 3, true, bounds(1, Unlimited, 0, 1)), "4.57"},
		{"4.567", NewSignificant(1, 3, false, bounds(1, Unlimited, 0, 1)), "4.6"},
		{"5.8", NewSignificant(3, Unlimited, false, DefaultBounds()), "5.80"},
		{"995", NewSignificant(1, 2, false, DefaultBounds()), "1000"},
		{"0", NewSignificant(3, 3, false, DefaultBounds()), "0.00"},
		{"0.012345", NewSignificant(2, 3, false, DefaultBounds()), "0.0123"},
		{"0.01", NewSignificant(2, 3, false, DefaultBounds()), "0.010"},
		{"123456", NewSignificant(1, 2, false, DefaultBounds()), "120000"},
		{"1.5", NewSignificant(5, 2, false, DefaultBounds()), "1.5"},
		{"1.25", NewSignificant(1, 0, false, DefaultBounds()), "1"},

		{"11.17", mustInterval("0.05", DefaultBounds()), "11.15"},
		{"11.175", mustInterval("0.05", DefaultBounds()), "11.20"},
		{"-11.175", mustInterval("0.05", withMode(DefaultBounds(), quantity.Ceiling)), "-11.15"},
		{"1234", mustInterval("25", DefaultBounds()), "1225"},
		{"1238", mustInterval("25", DefaultBounds()), "1250"},
		{"0.01", mustInterval("0.5", DefaultBounds()), "0.0"},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			for _, enc := range quantity.Encodings {
				q := quantity.MustParse(enc, test.in)
				test.r.Apply(q)
				a.Equal(test.out, render(q), "encoding %v: %v", enc, q)
			}
		})
	}
}

func mustInterval(interval string, b Bounds) *IntervalRounder {
	r, err := NewInterval(decimal.RequireFromString(interval), b)
	if err != nil {
		panic(err)
	}
	return r
}

func TestNewInterval(t *testing.T) {
	a := assert.New(t)
	for _, s := range []string{"0", "-0.05"} {
		_, err := NewInterval(decimal.RequireFromString(s), DefaultBounds())
		a.True(errors.Is(err, quantity.ErrNonPositiveInterval), s)
	}
	r, err := NewInterval(decimal.RequireFromString("0.050"), bounds(1, Unlimited, 0, 1))
	if a.NoError(err) {
		a.Equal(3, r.MinFrac)
		a.Equal(3, r.MaxFrac)
		a.Equal("0.05", r.Interval().String())
	}
}

func TestNew(t *testing.T) {
	a := assert.New(t)
	p := properties.New()
	r, err := New(p)
	if a.NoError(err) {
		a.IsType(&FractionRounder{}, r)
	}

	p.MaximumSignificantDigits = 3
	r, err = New(p)
	if a.NoError(err) {
		a.IsType(&SignificantRounder{}, r)
	}

	p.RoundingInterval = properties.Decimal(decimal.RequireFromString("0.05"))
	_, err = New(p)
	a.ErrorIs(err, ErrConflictingRounding)

	p.MaximumSignificantDigits = properties.Unset
	r, err = New(p)
	if a.NoError(err) {
		a.IsType(&IntervalRounder{}, r)
	}

	p.RoundingInterval = properties.Decimal(decimal.Zero)
	_, err = New(p)
	a.ErrorIs(err, quantity.ErrNonPositiveInterval)
}

func TestBoundsFrom(t *testing.T) {
	a := assert.New(t)
	p := properties.New()
	a.Equal(DefaultBounds(), BoundsFrom(p))

	p.MinimumIntegerDigits = 5
	p.MaximumIntegerDigits = 3
	p.MinimumFractionDigits = 4
	p.MaximumFractionDigits = 2
	p.RoundingMode = quantity.Floor
	p.Precision = 7
	b := BoundsFrom(p)
	a.Equal(3, b.MinInt)
	a.Equal(3, b.MaxInt)
	a.Equal(4, b.MinFrac)
	a.Equal(4, b.MaxFrac)
	a.Equal(quantity.Context{Mode: quantity.Floor, Precision: 7}, b.Context)
}

func TestExport(t *testing.T) {
	a := assert.New(t)
	interval := decimal.RequireFromString("0.25")
	tests := []func() *properties.Properties{
		func() *properties.Properties {
			p := properties.New()
			p.MaximumFractionDigits = 2
			p.RoundingMode = quantity.HalfUp
			return p
		},
		func() *properties.Properties {
			p := properties.New()
			p.MinimumSignificantDigits = 2
			p.MaximumSignificantDigits = 4
			p.SignificantDigitsOverride = true
			return p
		},
		func() *properties.Properties {
			p := properties.New()
			p.RoundingInterval = &interval
			p.MinimumIntegerDigits = 2
			return p
		},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			r, err := New(test())
			if !a.NoError(err) {
				return
			}
			exported := properties.New()
			exported.MaximumSignificantDigits = 10
			r.Export(exported)
			again, err := New(exported)
			if !a.NoError(err) {
				return
			}
			a.Equal(r, again)
			for _, in := range []string{"0", "1.23456", "-987.654321", "0.000123"} {
				q1, q2 := quantity.MustParse(quantity.Auto, in), quantity.MustParse(quantity.Auto, in)
				r.Apply(q1)
				again.Apply(q2)
				a.Equal(render(q1), render(q2), in)
			}
		})
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	a := assert.New(t)
	rounders := []Rounder{
		NewFraction(bounds(1, Unlimited, 1, 3)),
		NewSignificant(2, 3, false, DefaultBounds()),
		NewSignificant(1, 2, true, bounds(1, Unlimited, 0, 0)),
		mustInterval("0.05", DefaultBounds()),
	}
	for i, r := range rounders {
		for _, in := range []string{"0", "1.2345", "-0.0995", "99.99", "123456.789"} {
			q := quantity.MustParse(quantity.BCD, in)
			r.Apply(q)
			once := q.ExactString()
			r.Apply(q)
			a.Equal(once, q.ExactString(), "rounder %d, input %s", i, in)
		}
	}
}

func BenchmarkSignificantRounder(b *testing.B) {
	r := NewSignificant(1, 3, false, DefaultBounds())
	for _, enc := range quantity.Encodings {
		q := quantity.MustParse(enc, "12345.6789")
		b.Run(enc.String(), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				r.Apply(q.Clone())
			}
		})
	}
}
