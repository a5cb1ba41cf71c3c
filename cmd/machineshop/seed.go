package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"machineshop/internal/catalog"
	"machineshop/internal/config"
	"machineshop/internal/database"
	"machineshop/internal/service"
)

func newSeedCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <catalog.yaml>",
		Short: "Load machines from a YAML catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.ValidateDatabase(); err != nil {
				return err
			}

			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open catalog: %w", err)
			}
			defer file.Close()

			f, err := catalog.Load(file)
			if err != nil {
				return err
			}

			db, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer database.CloseDB(db)

			created, err := catalog.Seed(cmd.Context(), service.NewMachineService(db), f)
			slog.Info("catalog seeded", "file", args[0], "created", len(created))
			return err
		},
	}
}
