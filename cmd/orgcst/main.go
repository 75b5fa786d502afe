package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

var log = commonlog.GetLogger("orgcst.cli")

// globals carries the configuration shared by all subcommands.
type globals struct {
	configPath string
	verbosity  int
	workers    int
	maxDepth   int
	logFile    string

	config *Config
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:           "orgcst",
		Short:         "Lossless Org parser and canonical formatter",
		Version:       version,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.load(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&g.configPath, "config", "", "configuration file (default ~/.config/orgcst/config.yaml)")
	flags.CountVarP(&g.verbosity, "verbose", "v", "increase log verbosity")
	flags.IntVarP(&g.workers, "workers", "j", 0, "number of documents parsed in parallel")
	flags.IntVar(&g.maxDepth, "max-depth", 0, "maximum nesting depth")
	flags.StringVar(&g.logFile, "log-file", "", "write logs to this file instead of stderr")

	rootCmd.AddCommand(newParseCmd(g))
	rootCmd.AddCommand(newFmtCmd(g))
	rootCmd.AddCommand(newCheckCmd(g))
	rootCmd.AddCommand(newOutlineCmd(g))
	rootCmd.AddCommand(newLSPCmd(g))
	rootCmd.AddCommand(newWatchCmd(g))

	return rootCmd
}

// load reads the configuration file and applies the flags on top of it.
func (g *globals) load(cmd *cobra.Command) error {
	path, explicit := g.configPath, g.configPath != ""
	if !explicit {
		path = defaultConfigPath()
	}
	cfg, err := LoadConfig(path, explicit)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Verbosity = g.verbosity
	}
	if flags.Changed("workers") {
		cfg.Workers = g.workers
	}
	if flags.Changed("max-depth") {
		cfg.MaxDepth = g.maxDepth
	}
	if flags.Changed("log-file") {
		cfg.LogFile = g.logFile
	}
	g.config = cfg

	if cfg.LogFile != "" {
		commonlog.Configure(cfg.Verbosity, &cfg.LogFile)
	} else {
		commonlog.Configure(cfg.Verbosity, nil)
	}
	log.Debugf("configuration loaded from %q", path)
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
