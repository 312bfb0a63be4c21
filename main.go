package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xmdhs/go-aestrace/codec"
	"github.com/xmdhs/go-aestrace/config"
	"github.com/xmdhs/go-aestrace/logger"

	r "math/rand/v2"
)

type rootOptions struct {
	configPath string
	logLevel   string
	lenient    bool
	format     string

	cfg *config.Config
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "aestrace",
		Short:         "AES-128 single-block encryption with a per-round state trace",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Path to a TOML config file")
	pf.StringVar(&opts.logLevel, "log-level", "INFO", "Log level (DEBUG, INFO, WARN, ERROR)")
	pf.BoolVar(&opts.lenient, "lenient", false, "Zero-pad or truncate inputs instead of rejecting them")
	pf.StringVar(&opts.format, "format", "text", "Output format (text, json)")

	cmd.AddCommand(newEncryptCmd(opts), newScheduleCmd(opts), newAvalancheCmd(opts))
	return cmd
}

// load merges the config file with explicitly set flags.
func (o *rootOptions) load(cmd *cobra.Command) error {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.LoadTOML(o.configPath); err != nil {
			return err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("lenient") {
		cfg.Strict = !o.lenient
	}
	if flags.Changed("format") {
		cfg.Format = o.format
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	o.cfg = cfg

	logger.InitWriter(cmd.ErrOrStderr(), cfg.LogLevel)
	cmd.SetContext(logger.WithRunID(cmd.Context(), fmt.Sprintf("%08x", r.Uint32())))
	return nil
}

func (o *rootOptions) mode() codec.Mode {
	if o.cfg.Strict {
		return codec.Strict
	}
	return codec.Lenient
}
