package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sparkle-sandbox",
	Short: "sparkle-sandbox is the manual-test bot for the sparkle library",
	Long: `sparkle-sandbox runs a Discord bot whose slash commands exercise the
library end to end: replies, defers, followups, autocomplete, modals,
components, DMs, permission checks and error reporting.`,
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)
}
