// Package avalanche measures how many ciphertext bits change when a single
// plaintext bit is flipped.
package avalanche

import (
	"context"
	"errors"
	"log/slog"
	"math/bits"
	"math/rand/v2"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/xmdhs/go-aestrace/crypto"
	"github.com/xmdhs/go-aestrace/logger"
)

const blockBits = crypto.BlockSize * 8

// Options configures a Run.
type Options struct {
	Trials  int
	Workers int
	Seed    uint64
}

// Report summarises a Run. Ratios are flipped bits over the 128 block bits.
type Report struct {
	Trials    int     `json:"trials"`
	MeanBits  float64 `json:"mean_bits"`
	MeanRatio float64 `json:"mean_ratio"`
	MinBits   int     `json:"min_bits"`
	MaxBits   int     `json:"max_bits"`
}

type trial struct {
	block crypto.State
	bit   int
}

// FlippedBits returns the number of differing bits between a and b.
func FlippedBits(a, b crypto.State) int {
	n := 0
	for i := range a {
		n += bits.OnesCount8(a[i] ^ b[i])
	}
	return n
}

// Run encrypts opts.Trials random plaintexts under key, each alongside a copy
// with one random bit flipped, and reports the spread of changed output bits.
// Trials are generated from opts.Seed, so equal options give equal reports.
func Run(ctx context.Context, key crypto.Key, opts Options) (*Report, error) {
	if opts.Trials <= 0 {
		return nil, errors.New("trials must be positive")
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	start := time.Now()

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	trials := make([]trial, opts.Trials)
	for i := range trials {
		for j := range trials[i].block {
			trials[i].block[j] = byte(rng.UintN(256))
		}
		trials[i].bit = rng.IntN(blockBits)
	}

	sched := crypto.ExpandKey(key)
	flipped := make([]int, opts.Trials)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(opts.Workers)
	chunk := (opts.Trials + opts.Workers - 1) / opts.Workers
	for lo := 0; lo < opts.Trials; lo += chunk {
		hi := min(lo+chunk, opts.Trials)
		eg.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := egCtx.Err(); err != nil {
					return err
				}
				tr := trials[i]
				alt := tr.block
				alt[tr.bit/8] ^= 1 << (tr.bit % 8)
				flipped[i] = FlippedBits(crypto.Encrypt(&sched, tr.block), crypto.Encrypt(&sched, alt))
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	report := &Report{Trials: opts.Trials, MinBits: blockBits}
	total := 0
	for _, n := range flipped {
		total += n
		report.MinBits = min(report.MinBits, n)
		report.MaxBits = max(report.MaxBits, n)
	}
	report.MeanBits = float64(total) / float64(opts.Trials)
	report.MeanRatio = report.MeanBits / blockBits

	logger.LogAttrs(ctx, slog.LevelDebug, "Avalanche run finished",
		slog.Int("trials", opts.Trials),
		slog.Int("workers", opts.Workers),
		slog.Float64("mean_ratio", report.MeanRatio),
		slog.Duration("elapsed", time.Since(start)))
	return report, nil
}
