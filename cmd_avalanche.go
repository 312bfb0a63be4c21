package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/xmdhs/go-aestrace/avalanche"
	"github.com/xmdhs/go-aestrace/codec"
	"github.com/xmdhs/go-aestrace/logger"
)

func newAvalancheCmd(opts *rootOptions) *cobra.Command {
	var (
		keyHex  string
		trials  int
		workers int
		seed    uint64
	)
	cmd := &cobra.Command{
		Use:   "avalanche",
		Short: "Measure output bit changes for single-bit plaintext flips",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			key, err := codec.DecodeKey(keyHex, opts.mode())
			if err != nil {
				return err
			}

			ac := opts.cfg.Avalanche
			flags := cmd.Flags()
			if flags.Changed("trials") {
				ac.Trials = trials
			}
			if flags.Changed("workers") {
				ac.Workers = workers
			}
			if flags.Changed("seed") {
				ac.Seed = seed
			}

			logger.LogAttrs(ctx, slog.LevelInfo, "Starting avalanche run",
				slog.Int("trials", ac.Trials), slog.Int("workers", ac.Workers))
			report, err := avalanche.Run(ctx, key, avalanche.Options{
				Trials:  ac.Trials,
				Workers: ac.Workers,
				Seed:    ac.Seed,
			})
			if err != nil {
				return fmt.Errorf("avalanche run failed: %w", err)
			}

			out := cmd.OutOrStdout()
			if opts.cfg.Format == "json" {
				return writeJSON(out, report)
			}
			_, err = fmt.Fprintf(out, "trials     %d\nmean bits  %.2f / 128\nmean ratio %.4f\nmin bits   %d\nmax bits   %d\n",
				report.Trials, report.MeanBits, report.MeanRatio, report.MinBits, report.MaxBits)
			return err
		},
	}
	f := cmd.Flags()
	f.StringVarP(&keyHex, "key", "k", "00000000000000000000000000000000", "128-bit key as 32 hex characters")
	f.IntVar(&trials, "trials", 0, "Number of trials (default from config)")
	f.IntVar(&workers, "workers", 0, "Concurrent workers (default from config)")
	f.Uint64Var(&seed, "seed", 0, "Seed for plaintext generation (default from config)")
	return cmd
}
