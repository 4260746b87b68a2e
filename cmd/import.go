package cmd

import (
	"log"

	"github.com/google/uuid"
	"github.com/momentumlab/momentum/database"
	"github.com/momentumlab/momentum/importer"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var importCMD = &cobra.Command{
	Use:   "import [journal-id] [csv-directory]",
	Short: "Import trade history CSV exports into a journal",
	Long: `Process CSV trade exports from the specified directory and load them
into the given trading journal using parallel batch workers. After loading,
percentage/amount derivation runs over the journal's closed trades in
chronological order.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		logger, err := zap.NewProduction()
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logger.Sync()

		journalID, err := uuid.Parse(args[0])
		if err != nil {
			logger.Fatal("Invalid journal id", zap.String("journal_id", args[0]))
		}

		logger.Info("Initializing database")
		if err := database.InitDB(); err != nil {
			logger.Fatal("Failed to initialize database", zap.Error(err))
		}

		processor := importer.NewProcessor(logger)

		logger.Info("Starting trade import",
			zap.String("journal_id", journalID.String()),
			zap.String("directory", args[1]),
		)
		if err := processor.ProcessDirectory(journalID, args[1]); err != nil {
			logger.Fatal("Failed to import trades", zap.Error(err))
		}

		logger.Info("Trade import completed")
	},
}

func init() {
	rootCMD.AddCommand(importCMD)
}
