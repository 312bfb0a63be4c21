package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xmdhs/go-aestrace/codec"
	"github.com/xmdhs/go-aestrace/crypto"
)

func newScheduleCmd(opts *rootOptions) *cobra.Command {
	var keyHex string
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print the expanded key schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := codec.DecodeKey(keyHex, opts.mode())
			if err != nil {
				return err
			}
			sched := crypto.ExpandKey(key)
			out := cmd.OutOrStdout()

			if opts.cfg.Format == "json" {
				words := make([]string, len(sched))
				for i, w := range sched {
					words[i] = w.String()
				}
				return writeJSON(out, map[string]any{"key": key.String(), "words": words})
			}
			for r := 0; r <= crypto.Rounds; r++ {
				rk := sched.RoundKey(r)
				if _, err := fmt.Fprintf(out, "round %2d  %s %s %s %s\n", r, rk[0], rk[1], rk[2], rk[3]); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&keyHex, "key", "k", "", "128-bit key as 32 hex characters")
	_ = cmd.MarkFlagRequired("key")
	return cmd
}
