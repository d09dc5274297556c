// Package properties defines the property bag consumed by rounders and modifiers.
//
// Integer fields use Unset for "not configured", pointer fields use nil.
// Rounders and modifiers read a Properties once, when they are constructed,
// and write their equivalent settings back with Export.
package properties

import (
	"github.com/shopspring/decimal"

	"github.com/avdva/numfmt/quantity"
)

// Unset marks an integer property as not configured.
const Unset = -1

// Properties is a legacy pattern-style configuration.
type Properties struct {
	RoundingInterval          *decimal.Decimal      `yaml:"rounding_interval,omitempty" mapstructure:"rounding_interval"`
	MinimumSignificantDigits  int                   `yaml:"min_significant_digits" mapstructure:"min_significant_digits"`
	MaximumSignificantDigits  int                   `yaml:"max_significant_digits" mapstructure:"max_significant_digits"`
	SignificantDigitsOverride bool                  `yaml:"significant_digits_override" mapstructure:"significant_digits_override"`
	MinimumIntegerDigits      int                   `yaml:"min_integer_digits" mapstructure:"min_integer_digits"`
	MaximumIntegerDigits      int                   `yaml:"max_integer_digits" mapstructure:"max_integer_digits"`
	MinimumFractionDigits     int                   `yaml:"min_fraction_digits" mapstructure:"min_fraction_digits"`
	MaximumFractionDigits     int                   `yaml:"max_fraction_digits" mapstructure:"max_fraction_digits"`
	RoundingMode              quantity.RoundingMode `yaml:"rounding_mode" mapstructure:"rounding_mode"`
	// Precision limits the number of significant digits after any rounding, 0 disables it.
	Precision int `yaml:"precision" mapstructure:"precision"`

	// Multiplier scales a value before rounding, like 100 for percents.
	Multiplier *decimal.Decimal `yaml:"multiplier,omitempty" mapstructure:"multiplier"`
	// MagnitudeMultiplier scales a value by a power of ten before rounding.
	MagnitudeMultiplier         int  `yaml:"magnitude_multiplier" mapstructure:"magnitude_multiplier"`
	DecimalSeparatorAlwaysShown bool `yaml:"decimal_separator_always_shown" mapstructure:"decimal_separator_always_shown"`

	PositivePrefix *string `yaml:"positive_prefix,omitempty" mapstructure:"positive_prefix"`
	PositiveSuffix *string `yaml:"positive_suffix,omitempty" mapstructure:"positive_suffix"`
	NegativePrefix *string `yaml:"negative_prefix,omitempty" mapstructure:"negative_prefix"`
	NegativeSuffix *string `yaml:"negative_suffix,omitempty" mapstructure:"negative_suffix"`
}

// New returns properties with nothing configured.
func New() *Properties {
	p := &Properties{}
	p.Clear()
	return p
}

// Clear resets all properties to their unset state.
func (p *Properties) Clear() {
	*p = Properties{
		MinimumSignificantDigits: Unset,
		MaximumSignificantDigits: Unset,
		MinimumIntegerDigits:     Unset,
		MaximumIntegerDigits:     Unset,
		MinimumFractionDigits:    Unset,
		MaximumFractionDigits:    Unset,
		RoundingMode:             quantity.HalfEven,
	}
}

// Copy returns a deep copy of p.
func (p *Properties) Copy() *Properties {
	c := *p
	if p.RoundingInterval != nil {
		c.RoundingInterval = Decimal(*p.RoundingInterval)
	}
	if p.Multiplier != nil {
		c.Multiplier = Decimal(*p.Multiplier)
	}
	for _, s := range []**string{&c.PositivePrefix, &c.PositiveSuffix, &c.NegativePrefix, &c.NegativeSuffix} {
		if *s != nil {
			*s = String(**s)
		}
	}
	return &c
}

// HasSignificantDigits tells if any significant digits bound is configured.
func (p *Properties) HasSignificantDigits() bool {
	return p.MinimumSignificantDigits != Unset || p.MaximumSignificantDigits != Unset
}

// Context returns the rounding context.
func (p *Properties) Context() quantity.Context {
	ctx := quantity.Context{Mode: p.RoundingMode}
	if p.Precision > 0 {
		ctx.Precision = p.Precision
	}
	return ctx
}

// String returns a pointer to a copy of s.
func String(s string) *string {
	return &s
}

// Decimal returns a pointer to a copy of d.
func Decimal(d decimal.Decimal) *decimal.Decimal {
	return &d
}

// Get returns *s, or def if s is nil.
func Get(s *string, def string) string {
	if s == nil {
		return def
	}
	return *s
}
