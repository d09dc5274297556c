package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/avdva/numfmt/buffer"
	"github.com/avdva/numfmt/format"
	"github.com/avdva/numfmt/modifier"
	"github.com/avdva/numfmt/properties"
	"github.com/avdva/numfmt/quantity"
)

const version = "v0.1.0"

type app struct {
	configFile string
	verbose    bool
	logger     *zap.Logger
	cfg        *config
}

// newRootCmd returns the command tree. If logger is nil, it is built from the --verbose flag.
func newRootCmd(logger *zap.Logger) *cobra.Command {
	a := &app{logger: logger}
	root := &cobra.Command{
		Use:           "numfmt",
		Short:         "numfmt formats decimal numbers",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configFile, "config", "", "yaml config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose logging")
	addFormatFlags(root.PersistentFlags())

	root.AddCommand(&cobra.Command{
		Use:   "format [values...]",
		Short: "Format values, or lines of stdin if no values are given",
		RunE:  a.runFormat,
	})
	root.AddCommand(&cobra.Command{
		Use:   "export",
		Short: "Print the effective properties as yaml",
		Args:  cobra.NoArgs,
		RunE:  a.runExport,
	})
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	if a.logger == nil {
		logger, err := newLogger(a.verbose)
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		a.logger = logger
	}
	cfg, err := loadConfig(a.configFile, cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger.Debug("config loaded", zap.String("file", a.configFile), zap.Any("properties", cfg.Properties))
	return nil
}

func (a *app) formatter() (*format.Formatter, error) {
	enc, err := quantity.ParseEncoding(a.cfg.Encoding)
	if err != nil {
		return nil, err
	}
	opts := []format.Option{format.WithEncoding(enc)}
	if a.cfg.Pattern != "" {
		m, err := modifier.NewSimpleFromText(a.cfg.Pattern, buffer.Suffix)
		if err != nil {
			return nil, err
		}
		opts = append(opts, format.WithModifiers(m))
	}
	return format.New(&a.cfg.Properties, opts...)
}

func (a *app) runFormat(cmd *cobra.Command, args []string) error {
	f, err := a.formatter()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	var total, failed int
	handle := func(s string) {
		total++
		formatted, err := f.FormatString(s)
		if err != nil {
			failed++
			a.logger.Error("format failed", zap.String("value", s), zap.Error(err))
			return
		}
		fmt.Fprintln(out, formatted)
	}
	if len(args) > 0 {
		for _, s := range args {
			handle(s)
		}
	} else if err := eachLine(cmd.InOrStdin(), handle); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	a.logger.Debug("done", zap.Int("total", total), zap.Int("failed", failed))
	if failed > 0 {
		return fmt.Errorf("%d of %d values failed", failed, total)
	}
	return nil
}

func (a *app) runExport(cmd *cobra.Command, args []string) error {
	f, err := a.formatter()
	if err != nil {
		return err
	}
	p := properties.New()
	if err := f.Export(p); err != nil {
		return err
	}
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return err
	}
	return enc.Close()
}

// eachLine calls fn for every non-empty line of r.
func eachLine(r io.Reader, fn func(s string)) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			fn(line)
		}
	}
	return sc.Err()
}
