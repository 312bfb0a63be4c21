package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/xmdhs/go-aestrace/codec"
	"github.com/xmdhs/go-aestrace/crypto"
	"github.com/xmdhs/go-aestrace/logger"
)

type encryptResult struct {
	Key        string       `json:"key"`
	Plaintext  string       `json:"plaintext"`
	Ciphertext string       `json:"ciphertext"`
	Trace      crypto.Trace `json:"trace"`
}

func newEncryptCmd(opts *rootOptions) *cobra.Command {
	var keyHex, ptHex string
	cmd := &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt one block and print every round state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			mode := opts.mode()
			key, err := codec.DecodeKey(keyHex, mode)
			if err != nil {
				return err
			}
			pt, err := codec.DecodeBlock(ptHex, mode)
			if err != nil {
				return err
			}

			sched := crypto.ExpandKey(key)
			var rec crypto.Recorder
			ct := crypto.EncryptObserved(&sched, pt, crypto.ObserverFunc(func(s crypto.Snapshot) {
				rec.Observe(s)
				logger.LogAttrs(ctx, slog.LevelDebug, "State captured",
					slog.String("stage", s.Stage.String()),
					slog.Int("round", s.Round),
					slog.String("state", s.State.String()))
			}))
			res := encryptResult{
				Key:        key.String(),
				Plaintext:  pt.String(),
				Ciphertext: ct.String(),
				Trace:      rec.Trace(),
			}
			logger.LogAttrs(ctx, slog.LevelInfo, "Block encrypted",
				slog.String("mode", mode.String()),
				slog.String("ciphertext", res.Ciphertext))

			out := cmd.OutOrStdout()
			if opts.cfg.Format == "json" {
				return writeJSON(out, res)
			}
			return writeEncryptText(out, &res)
		},
	}
	cmd.Flags().StringVarP(&keyHex, "key", "k", "", "128-bit key as 32 hex characters")
	cmd.Flags().StringVarP(&ptHex, "plaintext", "p", "", "Plaintext block as 32 hex characters")
	_ = cmd.MarkFlagRequired("key")
	_ = cmd.MarkFlagRequired("plaintext")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeEncryptText(w io.Writer, res *encryptResult) error {
	if _, err := fmt.Fprintf(w, "key        %s\nplaintext  %s\nciphertext %s\n",
		res.Key, res.Plaintext, res.Ciphertext); err != nil {
		return err
	}
	for i := range res.Trace {
		if _, err := fmt.Fprintf(w, "\n%s\n", res.Trace.Label(i)); err != nil {
			return err
		}
		s := &res.Trace[i]
		for row := range 4 {
			if _, err := fmt.Fprintf(w, "  %02x %02x %02x %02x\n",
				s.At(row, 0), s.At(row, 1), s.At(row, 2), s.At(row, 3)); err != nil {
				return err
			}
		}
	}
	return nil
}
