package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"machineshop/internal/config"
	"machineshop/internal/database"
)

func newMigrateCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.ValidateDatabase(); err != nil {
				return err
			}
			db, err := openStore(cfg)
			if err != nil {
				return err
			}
			database.CloseDB(db)
			slog.Info("schema up to date")
			return nil
		},
	}
}
