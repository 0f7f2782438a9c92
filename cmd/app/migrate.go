package main

import (
	"github.com/spf13/cobra"
	"mothwallet/internal/config"
	"mothwallet/internal/infra"
	"mothwallet/pkg/logger"
)

func newMigrateCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configFile)
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			db, err := infra.OpenDatabase(cfg.Database, log)
			if err != nil {
				return err
			}
			defer infra.CloseDatabase(db, log)

			if err := infra.MigrateUp(cfg.Database, db, log); err != nil {
				return err
			}
			log.Info("migrations applied")
			return nil
		},
	}
}
