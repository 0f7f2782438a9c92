package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// Cobra prints the error, so we just need to exit.
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:   "mothwallet",
		Short: "Moths in my wallet - personal expense bookkeeping.",
		Long: `mothwallet serves the expense tracker web application and its JSON API.
Configuration comes from the environment, an optional .env file and an
optional config.yaml.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to a config file (default ./config.yaml when present)")

	rootCmd.AddCommand(newServeCmd(&configFile))
	rootCmd.AddCommand(newMigrateCmd(&configFile))
	rootCmd.AddCommand(newAddUserCmd(&configFile))

	return rootCmd
}
