// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ik5/chanfix"
	"github.com/ik5/chanfix/pairing"
	"github.com/ik5/chanfix/pipeline"
	"github.com/ik5/chanfix/reconstruct"
)

func newPairsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "pairs <folder>",
		Short: "List the left/right pairs a run would merge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			paths, err := audioFiles(args, cfg.AllExtensions())
			if err != nil {
				return err
			}

			found := pairing.FindPairs(pipeline.PairCandidates(chanfix.NewCodec(), paths))
			out := cmd.OutOrStdout()

			if len(found.Pairs) == 0 {
				fmt.Fprintln(out, "No pairs found")
			} else {
				rows := make([][]string, 0, len(found.Pairs))
				for _, p := range found.Pairs {
					name, err := reconstruct.PairOutputName(p.Left, p.Right)
					if err != nil {
						name = err.Error()
					}
					rows = append(rows, []string{rel(args[0], p.Dir), filepath.Base(p.Left), filepath.Base(p.Right), name})
				}
				fmt.Fprintln(out, renderTable([]string{"Folder", "Left", "Right", "Output"}, rows, nil))
			}

			for _, u := range found.Unresolved {
				fmt.Fprintf(out, "unresolved: %v\n", u.Err)
			}
			return nil
		},
	}
}

func rel(root, path string) string {
	if r, err := filepath.Rel(root, path); err == nil {
		return r
	}
	return path
}
