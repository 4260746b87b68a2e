package cmd

import (
	"log"
	"os"

	"github.com/momentumlab/momentum/api"
	"github.com/momentumlab/momentum/database"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serverCMD = &cobra.Command{
	Use:   "server",
	Short: "Start the API server",
	Long:  `Start the HTTP API server for habits, journals, trades and statistics.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger, err := zap.NewProduction()
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logger.Sync()

		logger.Info("Initializing database")
		if err := database.InitDB(); err != nil {
			logger.Fatal("Failed to initialize database", zap.Error(err))
		}

		r := api.SetupRoutes(logger)

		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}

		logger.Info("Starting server", zap.String("port", port))
		if err := r.Run(":" + port); err != nil {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	},
}

func init() {
	rootCMD.AddCommand(serverCMD)
}
