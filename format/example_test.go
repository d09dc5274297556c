package format_test

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/avdva/numfmt/format"
	"github.com/avdva/numfmt/properties"
)

func ExampleFormatter() {
	p := properties.New()
	p.MaximumFractionDigits = 2
	p.PositivePrefix = properties.String("$")
	f, err := format.New(p)
	if err != nil {
		panic(err)
	}
	for _, s := range []string{"-1234.567", "0.005", "42"} {
		formatted, err := f.FormatString(s)
		if err != nil {
			panic(err)
		}
		fmt.Println(formatted)
	}
	// Output:
	// -$1234.57
	// $0
	// $42
}

func ExampleFormatter_percent() {
	p := properties.New()
	p.Multiplier = properties.Decimal(decimal.NewFromInt(100))
	p.MinimumFractionDigits = 1
	p.MaximumFractionDigits = 1
	p.PositiveSuffix = properties.String("%")
	f, err := format.New(p)
	if err != nil {
		panic(err)
	}
	s, _ := f.FormatFloat(0.4567)
	fmt.Println(s)
	// Output: 45.7%
}
