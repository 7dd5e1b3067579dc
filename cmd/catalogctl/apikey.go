package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"library-catalog/internal/domains/apikey"
)

func newAPIKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apikey",
		Short: "Manage API keys for the JSON endpoints",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "issue <email>",
		Short: "Issue a key for an email that does not have one yet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			db, err := openDB(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			key, err := apikey.NewService(apikey.NewPostgresRepository(db.Pool)).Issue(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), key.Key)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <email>",
		Short: "Print the key and request count for an email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			db, err := openDB(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			key, err := apikey.NewService(apikey.NewPostgresRepository(db.Pool)).GetByEmail(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d\n", key.Email, key.Key, key.RequestsCount)
			return nil
		},
	})

	return cmd
}
