// Package main is the entry point for the tasklist CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/jacksmith/tasklist/internal/cli"
	"github.com/jacksmith/tasklist/internal/ui"
)

// Version is set at build time via ldflags.
var Version = "dev"

var (
	flagBaseURL         string
	flagConfig          string
	flagDebug           bool
	flagSerializeWrites bool
	flagShowErrors      bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		stop()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tasklist",
	Short: "tasklist - a terminal client for a remote task list",
	Long: `tasklist shows the tasks held by a remote task API and lets you add,
rename and delete them.

Run without a subcommand to open the interactive list. The subcommands
do the same operations from the shell.

The API location comes from --base-url, the TASKLIST_BASE_URL environment
variable or base_url in the config file, in that order.`,
	Version:       Version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runUI,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetVersionTemplate("tasklist version {{.Version}}\n")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagBaseURL, "base-url", "", "task API base URL")
	pf.StringVar(&flagConfig, "config", "", "config file (default $XDG_CONFIG_HOME/tasklist/config.yaml)")
	pf.BoolVar(&flagDebug, "debug", false, "log at debug level")
	pf.BoolVar(&flagSerializeWrites, "serialize-writes", false, "run writes to the same task one at a time")
	pf.BoolVar(&flagShowErrors, "show-errors", false, "show failed operations in the list view")
}

func runUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logOut, closeLog := openLogFile()
	defer closeLog()

	logger, err := newLogger(logOut, cfg)
	if err != nil {
		return err
	}

	s, err := openStore(cfg, logger)
	if err != nil {
		return err
	}

	return ui.Run(commandContext(cmd), s, ui.Options{ShowErrors: cfg.ShowErrors})
}
