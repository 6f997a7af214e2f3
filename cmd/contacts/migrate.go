package main

import (
	"fmt"

	"github.com/deppfellow/contacts-api/internal/config"
	"github.com/deppfellow/contacts-api/internal/database"
	"github.com/deppfellow/contacts-api/internal/logger"
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply PostgreSQL migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			log := logger.NewLogger(cfg.Observability)

			if cfg.Storage.Driver != config.DriverPostgres {
				log.Info().
					Str("storage", cfg.Storage.Driver).
					Msg("storage driver has no migrations, nothing to do")
				return nil
			}

			if err := database.Migrate(cmd.Context(), &log, cfg); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}

			log.Info().Msg("migrations applied")
			return nil
		},
	}
}
