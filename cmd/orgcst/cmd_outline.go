package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/dhamidi/orgcst/format"
)

func newOutlineCmd(g *globals) *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "outline <file>",
		Short: "Print the headline outline of an .org file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			styled, err := useColor(color, out)
			if err != nil {
				return err
			}

			data, err := readFile(args[0])
			if err != nil {
				return err
			}
			tree, err := parseFile(g.config, args[0], data)
			if err != nil {
				return fmt.Errorf("parse: %w", err)
			}
			return format.NewOutlineEncoder(out, styled).Encode(tree)
		},
	}

	cmd.Flags().StringVar(&color, "color", "auto", "colorize output (auto, always, never)")

	return cmd
}

// useColor decides whether output to w is styled. In auto mode only
// terminals get colors.
func useColor(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		f, ok := w.(*os.File)
		return ok && isatty.IsTerminal(f.Fd()), nil
	default:
		return false, fmt.Errorf("unknown color mode: %s", mode)
	}
}
