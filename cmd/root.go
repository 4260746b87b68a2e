package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCMD = &cobra.Command{
	Use:   "momentum",
	Short: "Habit tracking and trading journal analytics backend",
	Long: `Momentum is the backend for a habit tracking and trading journal
application. It serves habit streak/rank statistics and trading performance
aggregates over a REST API, and can bulk-import trade history from CSV
exports.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Missing .env just means plain environment variables.
		_ = godotenv.Load()
	},
}

func Execute() {
	err := rootCMD.Execute()
	if err != nil {
		os.Exit(1)
	}
}
