package main

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/avdva/numfmt/properties"
	"github.com/avdva/numfmt/quantity"
)

// envPrefix prefixes the environment variables, like NUMFMT_MAX_FRACTION_DIGITS.
const envPrefix = "NUMFMT"

// config is read from a yaml file, the environment, and the command line, in increasing priority.
type config struct {
	properties.Properties `mapstructure:",squash"`

	Encoding string `mapstructure:"encoding"`
	// Pattern is an optional "{0}" pattern applied after the affixes.
	Pattern string `mapstructure:"pattern"`
}

type flagSpec struct {
	name, key, usage string
}

var (
	intFlags = []flagSpec{
		{"min-int", "min_integer_digits", "minimum integer digits"},
		{"max-int", "max_integer_digits", "maximum integer digits"},
		{"min-frac", "min_fraction_digits", "minimum fraction digits"},
		{"max-frac", "max_fraction_digits", "maximum fraction digits"},
		{"min-sig", "min_significant_digits", "minimum significant digits"},
		{"max-sig", "max_significant_digits", "maximum significant digits"},
	}
	stringFlags = []flagSpec{
		{"encoding", "encoding", "quantity encoding: auto, bcd, compact or big"},
		{"rounding-mode", "rounding_mode", "half-even, half-up, half-down, up, down, ceiling or floor"},
		{"interval", "rounding_interval", "rounding interval, like 0.05"},
		{"multiplier", "multiplier", "multiplier applied before rounding, like 100"},
		{"prefix", "positive_prefix", "positive prefix"},
		{"suffix", "positive_suffix", "positive suffix"},
		{"negative-prefix", "negative_prefix", "negative prefix (default: \"-\" and the positive prefix)"},
		{"negative-suffix", "negative_suffix", "negative suffix (default: the positive suffix)"},
		{"pattern", "pattern", "pattern applied after the affixes, like \"{0} km\""},
	}
	otherFlags = []flagSpec{
		{"sig-override", "significant_digits_override", "let significant digits override the fraction limit"},
		{"show-point", "decimal_separator_always_shown", "always show the decimal separator"},
		{"magnitude", "magnitude_multiplier", "power of ten applied before rounding"},
		{"precision", "precision", "maximum significant digits after any rounding, 0 for unlimited"},
	}
)

func addFormatFlags(flags *pflag.FlagSet) {
	for _, f := range intFlags {
		flags.Int(f.name, properties.Unset, f.usage)
	}
	for _, f := range stringFlags {
		flags.String(f.name, "", f.usage)
	}
	flags.Bool("sig-override", false, otherFlags[0].usage)
	flags.Bool("show-point", false, otherFlags[1].usage)
	flags.Int("magnitude", 0, otherFlags[2].usage)
	flags.Int("precision", 0, otherFlags[3].usage)
}

func configKeys() map[string]string {
	keys := make(map[string]string)
	for _, specs := range [][]flagSpec{intFlags, stringFlags, otherFlags} {
		for _, f := range specs {
			keys[f.name] = f.key
		}
	}
	return keys
}

// loadConfig merges the config file at path, if any, the environment, and the flags explicitly set.
func loadConfig(path string, flags *pflag.FlagSet) (*config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	keys := configKeys()
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	// only explicitly set flags override the file and the environment,
	// so that an empty prefix flag does not replace a configured one.
	flags.Visit(func(f *pflag.Flag) {
		if key, ok := keys[f.Name]; ok {
			v.Set(key, f.Value.String())
		}
	})
	cfg := &config{
		Properties: *properties.New(),
		Encoding:   quantity.Auto.String(),
	}
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		numberToDecimalHook,
		mapstructure.TextUnmarshallerHookFunc(),
	))
	if err := v.Unmarshal(cfg, hook); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Encoding = strings.ToLower(strings.TrimSpace(cfg.Encoding))
	return cfg, nil
}

var decimalType = reflect.TypeOf(decimal.Decimal{})

// numberToDecimalHook converts yaml numbers to decimals. Strings are handled by the text hook.
func numberToDecimalHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if to != decimalType {
		return data, nil
	}
	switch v := data.(type) {
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case float64:
		return decimal.NewFromFloat(v), nil
	}
	return data, nil
}
