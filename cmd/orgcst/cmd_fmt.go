package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dhamidi/orgcst/format"
	"github.com/dhamidi/orgcst/org/workspace"
)

func newFmtCmd(g *globals) *cobra.Command {
	var fmtOverwrite bool

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Print an .org file in canonical form",
		Long: `Print the canonical text of an .org file to stdout.

If a file is provided, it must have a .org extension.
If no file is provided, reads Org text from stdin.

Use -w to replace the file atomically (requires a file argument).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var source []byte
			var err error
			var filename string

			if len(args) == 0 {
				if fmtOverwrite {
					return fmt.Errorf("-w requires a file argument")
				}
				source, err = io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				filename = "<stdin>"
			} else {
				filename = args[0]
				if ext := filepath.Ext(filename); ext != workspace.Ext {
					return fmt.Errorf("expected .org file, got %q", ext)
				}
				source, err = readFile(filename)
				if err != nil {
					return err
				}
			}

			tree, err := parseFile(g.config, filename, source)
			if err != nil {
				return fmt.Errorf("parse: %w", err)
			}
			output, err := format.Serialize(tree)
			if err != nil {
				return fmt.Errorf("format: %w", err)
			}

			if fmtOverwrite {
				if string(output) == string(source) {
					log.Debugf("%s already formatted", filename)
					return nil
				}
				return writeFile(filename, output)
			}
			_, err = cmd.OutOrStdout().Write(output)
			return err
		},
	}

	cmd.Flags().BoolVarP(&fmtOverwrite, "write", "w", false, "overwrite the file in place")

	return cmd
}
