package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"arkiv/internal/config"
	"arkiv/internal/logging"
)

// Shared by every subcommand, populated before any of them runs.
var (
	cfg *config.AppConfig
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "arkiv",
	Short: "Archive box tracking with QR labels",
	Long: "Arkiv keeps a utility archive's boxes, folders and documents in a\n" +
		"single tree, prints QR label sheets for the boxes, and serves the\n" +
		"pages those labels point at.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		log = logging.New(cfg.LogLevel)
	},
	SilenceUsage: true,
}

// Execute runs the CLI. Errors have been logged by the failing command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(labelsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(iconsCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)
}
