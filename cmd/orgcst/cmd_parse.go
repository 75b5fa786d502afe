package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/orgcst/format"
)

func newParseCmd(g *globals) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "parse <file>...",
		Short: "Parse .org files and dump their syntax trees",
		Long: `Parse one or more .org files and print the concrete syntax tree of each.

Files are parsed in parallel (see --workers). The output format defaults to
the "format" setting of the configuration file, or json.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") && g.config.Format != "" {
				outputFormat = g.config.Format
			}

			results, err := parseFiles(cmd.Context(), g.config, args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, r := range results {
				if r.Err != nil {
					return r.Err
				}
				enc, err := format.NewEncoder(outputFormat, out, false)
				if err != nil {
					return err
				}
				if err := enc.Encode(r.Tree); err != nil {
					return fmt.Errorf("encode %s: %w", r.Name, err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format (json, yaml, tree, outline, org)")

	return cmd
}
