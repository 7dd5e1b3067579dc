package main

import (
	"github.com/spf13/cobra"

	"library-catalog/internal/infrastructure/database"
	"library-catalog/pkg/logger"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status|reset]",
		Short:     "Run schema migrations embedded in the binary",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down", "status", "reset"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			db, err := openDB(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := database.Migrate(ctx, db.Pool, args[0]); err != nil {
				return err
			}

			logger.Info("migration finished", map[string]interface{}{"command": args[0]})
			return nil
		},
	}
}
