// Command numfmt formats decimal numbers from the command line or stdin.
//
//	numfmt format --max-frac 2 --prefix '$' -- -1234.567
//	echo 0.125 | numfmt format --multiplier 100 --suffix %
//	numfmt export --config numfmt.yaml
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

func main() {
	cmd := newRootCmd(nil)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.DisableStacktrace = true
	return cfg.Build()
}
