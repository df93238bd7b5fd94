// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ik5/chanfix"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file|folder>...",
		Short: "Classify audio files without changing anything",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			paths, err := audioFiles(args, cfg.AllExtensions())
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No audio files found")
				return nil
			}

			c := chanfix.NewCodec()
			rows := make([][]string, 0, len(paths))
			failed := 0
			for _, path := range paths {
				info, err := chanfix.Inspect(c, path)
				if err != nil {
					failed++
					rows = append(rows, []string{path, "error", "", "", "", err.Error()})
					continue
				}

				note := ""
				switch {
				case info.Mislabeled():
					note = "mislabeled as " + info.Named.String()
				case info.Verdict.Reducible() && !info.Writable:
					note = "decode-only, label only"
				}
				rows = append(rows, []string{
					path,
					info.Verdict.String(),
					strconv.Itoa(info.Channels),
					strconv.Itoa(info.SampleRate),
					info.Format.String(),
					note,
				})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"File", "Layout", "Ch", "Rate", "Format", "Note"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft, alignLeft},
			))

			if failed > 0 {
				return fmt.Errorf("%d of %d files could not be read", failed, len(paths))
			}
			return nil
		},
	}
}
