package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/orgcst/format"
)

func newCheckCmd(g *globals) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "check <file>...",
		Short: "Verify coverage and round-trip stability of .org files",
		Long: `Parse every file and verify that the leaves of its tree cover the source,
that the canonical text parses back to an equal tree and that formatting the
canonical text again changes nothing.

Exits with a non-zero status when any file fails.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := parseFiles(cmd.Context(), g.config, args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, r := range results {
				if r.Err != nil {
					failed++
					fmt.Fprintf(out, "FAIL %s\n", r.Err)
					continue
				}
				if _, err := format.Check(r.Tree, g.config.ParserOptions()...); err != nil {
					failed++
					fmt.Fprintf(out, "FAIL %s: %s\n", r.Name, err)
					continue
				}
				if !quiet {
					fmt.Fprintf(out, "ok   %s\n", r.Name)
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only report failures")

	return cmd
}
