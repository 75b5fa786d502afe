package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dhamidi/orgcst/format"
	"github.com/dhamidi/orgcst/org/parser"
	"github.com/dhamidi/orgcst/org/workspace"
)

func newWatchCmd(g *globals) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Re-check .org files whenever they change",
		Long: `Poll a directory tree for changed .org files, re-parse them and log whether
their coverage and round-trip checks still pass. Runs until interrupted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			opts := g.config.ParserOptions()

			ws := workspace.New(dir, opts...)
			watcher := workspace.NewFileWatcher(ws, interval)
			watcher.OnChange = func(path string, doc *workspace.Document) {
				reportChange(path, doc, opts...)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Infof("watching %s every %s", dir, interval)
			watcher.Start()
			<-ctx.Done()
			watcher.Stop()
			return nil
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", time.Second, "polling interval")

	return cmd
}

func reportChange(path string, doc *workspace.Document, opts ...parser.Option) {
	switch {
	case doc == nil:
		log.Infof("%s: removed", path)
	case doc.ParseErr != nil:
		log.Errorf("%s: %s", path, doc.ParseErr)
	default:
		if _, err := format.Check(doc.Tree, opts...); err != nil {
			log.Errorf("%s: %s", path, err)
			return
		}
		log.Infof("%s: ok", path)
	}
}
