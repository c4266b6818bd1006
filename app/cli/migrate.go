package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AtharvaKhot17/QuickHireAI/config"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create Postgres tables and Mongo indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		ran := false

		switch err := config.InitPostgres(); {
		case err == nil:
			defer config.ClosePostgres()
			if err := config.MigratePostgres(cmd.Context()); err != nil {
				return fmt.Errorf("migrate postgres: %w", err)
			}
			fmt.Println("postgres: companies, candidates, answer_logs migrated")
			ran = true
		case !errors.Is(err, config.ErrNotConfigured):
			return fmt.Errorf("connect postgres: %w", err)
		}

		switch err := config.InitMongo(); {
		case err == nil:
			defer config.CloseMongo(cmd.Context())
			if err := config.EnsureMongoIndexes(); err != nil {
				return fmt.Errorf("mongo indexes: %w", err)
			}
			fmt.Println("mongo: interview_sessions, interviews, reports indexed")
			ran = true
		case !errors.Is(err, config.ErrNotConfigured):
			return fmt.Errorf("connect mongo: %w", err)
		}

		if !ran {
			return errors.New("nothing to migrate: set POSTGRES_URI and/or MONGO_URI")
		}
		return nil
	},
}
