// Package modifier wraps rendered digits with literal text.
//
// A Modifier inserts its text around a region of a buffer.TextBuffer and reports
// the number of inserted codepoints, so that the caller can track the region boundaries.
// Modifiers are immutable and can be shared between goroutines.
package modifier

import (
	"unicode/utf8"

	"github.com/avdva/numfmt/buffer"
	"github.com/avdva/numfmt/properties"
	"github.com/avdva/numfmt/quantity"
)

// Modifier inserts text around [left, right) of a buffer.
type Modifier interface {
	// Apply inserts the text and returns the number of inserted codepoints.
	Apply(b *buffer.TextBuffer, left, right int) int
	// Length returns the number of codepoints Apply would insert.
	Length() int
	// Export writes the equivalent legacy properties into p.
	Export(p *properties.Properties) error
}

// ConstantAffixModifier adds a fixed prefix and suffix.
type ConstantAffixModifier struct {
	prefix, suffix string
	field          buffer.Field
}

// NewConstantAffix returns a modifier, which tags its text with given field.
func NewConstantAffix(prefix, suffix string, field buffer.Field) *ConstantAffixModifier {
	return &ConstantAffixModifier{prefix: prefix, suffix: suffix, field: field}
}

// Apply inserts the suffix at right, and then the prefix at left.
func (m *ConstantAffixModifier) Apply(b *buffer.TextBuffer, left, right int) int {
	// inserting the prefix first would move the right boundary.
	n := b.Insert(right, m.suffix, m.field)
	return n + b.Insert(left, m.prefix, m.field)
}

func (m *ConstantAffixModifier) Length() int {
	return utf8.RuneCountInString(m.prefix) + utf8.RuneCountInString(m.suffix)
}

// Export sets the positive prefix and suffix.
func (m *ConstantAffixModifier) Export(p *properties.Properties) error {
	p.PositivePrefix = properties.String(m.prefix)
	p.PositiveSuffix = properties.String(m.suffix)
	return nil
}

func (m *ConstantAffixModifier) Prefix() string {
	return m.prefix
}

func (m *ConstantAffixModifier) Suffix() string {
	return m.suffix
}

func (m *ConstantAffixModifier) Field() buffer.Field {
	return m.field
}

// AffixModifier selects the affixes by the sign of a value.
type AffixModifier struct {
	positive, negative *ConstantAffixModifier
}

// NewAffix returns an AffixModifier for given affixes.
func NewAffix(positive, negative *ConstantAffixModifier) *AffixModifier {
	return &AffixModifier{positive: positive, negative: negative}
}

// FromProperties builds the affixes from p.
// Unset affixes are empty, except for the negative prefix, which defaults to "-" followed by the positive prefix,
// and the negative suffix, which defaults to the positive suffix.
func FromProperties(p *properties.Properties) *AffixModifier {
	posPrefix := properties.Get(p.PositivePrefix, "")
	posSuffix := properties.Get(p.PositiveSuffix, "")
	negPrefix := properties.Get(p.NegativePrefix, "-"+posPrefix)
	negSuffix := properties.Get(p.NegativeSuffix, posSuffix)
	return NewAffix(
		NewConstantAffix(posPrefix, posSuffix, buffer.None),
		NewConstantAffix(negPrefix, negSuffix, buffer.Sign),
	)
}

// For returns the affixes for q.
// A negative zero uses the negative affixes.
func (m *AffixModifier) For(q quantity.DecimalQuantity) *ConstantAffixModifier {
	if q.IsNegative() {
		return m.negative
	}
	return m.positive
}

// ApplyTo applies the affixes chosen for q.
func (m *AffixModifier) ApplyTo(q quantity.DecimalQuantity, b *buffer.TextBuffer, left, right int) int {
	return m.For(q).Apply(b, left, right)
}

// Export sets all four affixes.
func (m *AffixModifier) Export(p *properties.Properties) error {
	p.PositivePrefix = properties.String(m.positive.prefix)
	p.PositiveSuffix = properties.String(m.positive.suffix)
	p.NegativePrefix = properties.String(m.negative.prefix)
	p.NegativeSuffix = properties.String(m.negative.suffix)
	return nil
}
