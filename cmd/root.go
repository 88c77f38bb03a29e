package cmd

import (
	"fmt"
	"os"

	"chartserve/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands.
// Without a subcommand it behaves like "serve".
var RootCmd = &cobra.Command{
	Use:   "chartserve",
	Short: "Local CORS-enabled server for chart assets",
	Long: `chartserve serves a directory of chart assets (HTML, SVG, shapefiles)
over HTTP with permissive CORS headers, so pages opened locally can load maps
and data files without cross-origin errors.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Startup failures are reported through a console logger so they read
		// the same as everything else the server prints.
		cfg := &logger.Config{
			Level:  "debug",
			Format: logger.FormatConsole,
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	addServeFlags(RootCmd, &rootServeOpts)
}
