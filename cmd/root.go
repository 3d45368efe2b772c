package cmd

import (
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "pinglocal",
	Short: "Ping Local offer redemption backend",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "path to config")
}

// Execute runs the CLI. Called from main for subcommands other than the
// server itself.
func Execute() error {
	return rootCmd.Execute()
}
