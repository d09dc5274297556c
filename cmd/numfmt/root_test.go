package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
	"gopkg.in/yaml.v3"

	"github.com/avdva/numfmt/modifier"
	"github.com/avdva/numfmt/properties"
	"github.com/avdva/numfmt/quantity"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	cmd := newRootCmd(zaptest.NewLogger(t))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "numfmt.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFormatCommand(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		stdin  string
		args   []string
		result string
	}{
		{"", []string{"format", "1234.5"}, "1234.5\n"},
		{"", []string{"format", "--max-frac", "2", "--prefix", "$", "--", "-1234.567", "5"}, "-$1234.57\n$5\n"},
		{"0.125\n\n 0.5 \n", []string{"format", "--multiplier", "100", "--suffix", "%"}, "12.5%\n50%\n"},
		{"", []string{"format", "--interval", "0.05", "11.17"}, "11.15\n"},
		{"", []string{"format", "--max-sig", "2", "--encoding", "big", "123456"}, "120000\n"},
		{"", []string{"format", "--min-frac", "2", "--rounding-mode", "floor", "--max-frac", "2", "--", "-0.001"}, "-0.01\n"},
		{"", []string{"format", "--pattern", "{0} km", "--max-frac", "1", "3.14159"}, "3.1 km\n"},
		{"", []string{"format", "--magnitude", "-3", "--max-frac", "0", "--suffix", "K", "1500"}, "2K\n"},
		{"", []string{"format", "--show-point", "--max-frac", "0", "7"}, "7.\n"},
		{"", []string{"format", "--negative-prefix", "(", "--negative-suffix", ")", "--", "-42"}, "(42)\n"},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			out, err := run(t, test.stdin, test.args...)
			if a.NoError(err) {
				a.Equal(test.result, out)
			}
		})
	}
}

func TestFormatCommandErrors(t *testing.T) {
	a := assert.New(t)
	out, err := run(t, "", "format", "abc", "1")
	a.EqualError(err, "1 of 2 values failed")
	a.Equal("1\n", out)

	_, err = run(t, "", "format", "--encoding", "decimal64", "1")
	a.Error(err)

	_, err = run(t, "", "format", "--interval", "0.5", "--max-sig", "2", "1")
	a.Error(err)

	_, err = run(t, "", "format", "--rounding-mode", "nearest", "1")
	a.Error(err)

	_, err = run(t, "", "format", "--config", filepath.Join(t.TempDir(), "missing.yaml"), "1")
	a.Error(err)
}

func TestConfigSources(t *testing.T) {
	a := assert.New(t)
	path := writeConfig(t, `
rounding_interval: 0.5
rounding_mode: ceiling
positive_prefix: "~"
encoding: compact
`)
	out, err := run(t, "", "format", "--config", path, "1.2", "2")
	if a.NoError(err) {
		a.Equal("~1.5\n~2.0\n", out)
	}
	out, err = run(t, "", "format", "--config", path, "--rounding-mode", "floor", "1.2")
	if a.NoError(err) {
		a.Equal("~1.0\n", out)
	}

	t.Setenv("NUMFMT_MAX_FRACTION_DIGITS", "0")
	out, err = run(t, "", "format", "2.5", "3.5")
	if a.NoError(err) {
		a.Equal("2\n4\n", out)
	}
	out, err = run(t, "", "format", "--max-frac", "1", "2.25")
	if a.NoError(err) {
		a.Equal("2.2\n", out)
	}
}

func TestLoadConfig(t *testing.T) {
	a := assert.New(t)
	cmd := newRootCmd(zaptest.NewLogger(t))
	flags := cmd.PersistentFlags()
	a.NoError(flags.Parse([]string{"--max-sig", "3", "--multiplier", "1000", "--encoding", " BCD "}))
	cfg, err := loadConfig("", flags)
	if !a.NoError(err) {
		return
	}
	a.Equal("bcd", cfg.Encoding)
	a.Equal(3, cfg.MaximumSignificantDigits)
	a.Equal(properties.Unset, cfg.MinimumSignificantDigits)
	a.Equal(quantity.HalfEven, cfg.RoundingMode)
	if a.NotNil(cfg.Multiplier) {
		a.Equal("1000", cfg.Multiplier.String())
	}
	a.Nil(cfg.PositivePrefix)
	a.Nil(cfg.NegativePrefix)
	a.Nil(cfg.RoundingInterval)
}

func TestExportCommand(t *testing.T) {
	a := assert.New(t)
	out, err := run(t, "", "export", "--max-sig", "3", "--suffix", " km", "--rounding-mode", "half-up")
	if !a.NoError(err) {
		return
	}
	a.Contains(out, "max_significant_digits: 3")
	a.Contains(out, "rounding_mode: half-up")

	var p properties.Properties
	if a.NoError(yaml.Unmarshal([]byte(out), &p)) {
		a.Equal(3, p.MaximumSignificantDigits)
		a.Equal(quantity.HalfUp, p.RoundingMode)
		a.Equal(" km", properties.Get(p.PositiveSuffix, ""))
		a.Equal(" km", properties.Get(p.NegativeSuffix, ""))
		a.Equal("-", properties.Get(p.NegativePrefix, ""))
	}

	_, err = run(t, "", "export", "--pattern", "{0}%")
	a.ErrorIs(err, modifier.ErrExportUnsupported)
}
