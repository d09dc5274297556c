// Package format renders decimal quantities into strings.
//
// A Formatter is built once from properties.Properties:
//
//	p := properties.New()
//	p.MaximumFractionDigits = 2
//	p.PositivePrefix = properties.String("$")
//	f, err := format.New(p)
//	...
//	s, err := f.FormatString("-1234.567") // "-$1234.57"
//
// The pipeline for every value is: multiply, round, render the digits, apply the affixes,
// apply the extra modifiers. Digits are ASCII, and the decimal separator is '.'.
package format

import (
	"github.com/shopspring/decimal"

	"github.com/avdva/numfmt/buffer"
	"github.com/avdva/numfmt/modifier"
	"github.com/avdva/numfmt/properties"
	"github.com/avdva/numfmt/quantity"
	"github.com/avdva/numfmt/rounder"
)

// Formatter formats numbers according to properties.
// It is immutable, and can be used by multiple goroutines.
type Formatter struct {
	enc        quantity.Encoding
	rounder    rounder.Rounder
	affixes    *modifier.AffixModifier
	modifiers  []modifier.Modifier
	multiplier *decimal.Decimal
	magnitude  int
	showPoint  bool
}

// Option customizes a Formatter.
type Option func(f *Formatter)

// WithEncoding sets the encoding for values created by FormatString, FormatFloat and FormatInt.
func WithEncoding(enc quantity.Encoding) Option {
	return func(f *Formatter) {
		f.enc = enc
	}
}

// WithModifiers adds modifiers applied after the affixes, the first one is the innermost.
func WithModifiers(mods ...modifier.Modifier) Option {
	return func(f *Formatter) {
		f.modifiers = append(f.modifiers, mods...)
	}
}

// New returns a Formatter for p. p is not retained.
func New(p *properties.Properties, opts ...Option) (*Formatter, error) {
	r, err := rounder.New(p)
	if err != nil {
		return nil, err
	}
	f := &Formatter{
		enc:       quantity.Auto,
		rounder:   r,
		affixes:   modifier.FromProperties(p),
		magnitude: p.MagnitudeMultiplier,
		showPoint: p.DecimalSeparatorAlwaysShown,
	}
	if p.Multiplier != nil {
		f.multiplier = properties.Decimal(*p.Multiplier)
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Format formats q. q is not changed.
func (f *Formatter) Format(q quantity.DecimalQuantity) string {
	return f.FormatBuffer(q).String()
}

// FormatBuffer formats q into a new buffer, where the parts of the number are tagged with fields.
func (f *Formatter) FormatBuffer(q quantity.DecimalQuantity) *buffer.TextBuffer {
	q = q.Clone()
	if f.magnitude != 0 {
		q.AdjustMagnitude(f.magnitude)
	}
	if f.multiplier != nil {
		q.MultiplyBy(*f.multiplier)
	}
	f.rounder.Apply(q)
	b := buffer.New()
	length := writeDigits(b, q, f.showPoint)
	length += f.affixes.ApplyTo(q, b, 0, length)
	for _, m := range f.modifiers {
		length += m.Apply(b, 0, length)
	}
	return b
}

// FormatString parses s and formats it.
func (f *Formatter) FormatString(s string) (string, error) {
	q, err := quantity.Parse(f.enc, s)
	if err != nil {
		return "", err
	}
	return f.Format(q), nil
}

// FormatFloat formats the shortest decimal representation of v.
func (f *Formatter) FormatFloat(v float64) (string, error) {
	q, err := quantity.FromFloat64(f.enc, v)
	if err != nil {
		return "", err
	}
	return f.Format(q), nil
}

// FormatInt formats v.
func (f *Formatter) FormatInt(v int64) string {
	return f.Format(quantity.FromInt64(f.enc, v))
}

// Export writes the properties equivalent to the formatter into p.
// Returns modifier.ErrExportUnsupported, if one of the extra modifiers cannot be exported.
func (f *Formatter) Export(p *properties.Properties) error {
	f.rounder.Export(p)
	p.Multiplier = nil
	if f.multiplier != nil {
		p.Multiplier = properties.Decimal(*f.multiplier)
	}
	p.MagnitudeMultiplier = f.magnitude
	p.DecimalSeparatorAlwaysShown = f.showPoint
	if err := f.affixes.Export(p); err != nil {
		return err
	}
	for _, m := range f.modifiers {
		if err := m.Export(p); err != nil {
			return err
		}
	}
	return nil
}

// writeDigits appends the display window of q to b, and returns the number of written codepoints.
func writeDigits(b *buffer.TextBuffer, q quantity.DecimalQuantity, showPoint bool) int {
	start := b.Len()
	lower := q.LowerDisplayMagnitude()
	for m := q.UpperDisplayMagnitude(); m >= lower; m-- {
		if m == -1 {
			b.InsertRune(b.Len(), '.', buffer.DecimalSeparator)
		}
		field := buffer.Integer
		if m < 0 {
			field = buffer.Fraction
		}
		b.InsertRune(b.Len(), rune('0'+q.DigitAt(m)), field)
	}
	if showPoint && lower >= 0 {
		b.InsertRune(b.Len(), '.', buffer.DecimalSeparator)
	}
	return b.Len() - start
}
