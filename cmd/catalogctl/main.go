package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"library-catalog/internal/config"
	"library-catalog/internal/infrastructure/database"
	"library-catalog/pkg/logger"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Admin tool for the library catalog (migrations, seed data, api keys)",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_ = godotenv.Load()
			env := os.Getenv("APP_ENV")
			if env == "" {
				env = "development"
			}
			logger.Init(env)
		},
	}

	rootCmd.AddCommand(
		newMigrateCmd(),
		newSeedCmd(),
		newAPIKeyCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		logger.Error("catalogctl failed", err)
		os.Exit(1)
	}
}

// openDB kết nối Postgres theo cùng env vars với api server
func openDB(ctx context.Context) (*database.PostgresDB, error) {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return db, nil
}
