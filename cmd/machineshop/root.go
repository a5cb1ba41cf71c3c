package main

import (
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"machineshop/internal/config"
	"machineshop/internal/database"
	"machineshop/internal/handler"
	"machineshop/internal/service"
)

func newRootCommand() *cobra.Command {
	cfg := config.New()

	cmd := &cobra.Command{
		Use:           "machineshop",
		Short:         "Machine catalog and ordering API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cfg.ApplyEnv()
		},
	}

	cfg.RegisterFlags(cmd.PersistentFlags())

	cmd.AddCommand(newServeCommand(cfg))
	cmd.AddCommand(newMigrateCommand(cfg))
	cmd.AddCommand(newSeedCommand(cfg))

	return cmd
}

// openStore connects and migrates the schema.
func openStore(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.NewDB(cfg.DatabaseURI)
	if err != nil {
		return nil, err
	}
	if err := database.InitSchema(db); err != nil {
		database.CloseDB(db)
		return nil, err
	}
	return db, nil
}

func newServices(db *gorm.DB, cfg *config.Config) handler.Services {
	clients := service.NewClientService(db)
	return handler.Services{
		Auth:     service.NewAuthService(db),
		Clients:  clients,
		Machines: service.NewMachineService(db),
		Orders:   service.NewOrderService(db, service.NewStockLedger(db), clients),
		Tokens:   service.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL),
	}
}
