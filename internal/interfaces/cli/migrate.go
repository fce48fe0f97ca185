package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jurisdesk/prazo-engine/internal/infrastructure/database/postgres"
	"github.com/jurisdesk/prazo-engine/pkg/errors"
)

func newMigrateCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(
		newMigrateUpCommand(opts),
		newMigrateDownCommand(opts),
		newMigrateStatusCommand(opts),
	)
	return cmd
}

func newMigrateUpCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if err := postgres.RunMigrations(postgres.BuildDSN(cfg.Database), cfg.Database.MigrationsDir); err != nil {
				return err
			}
			cmd.Println("migrations applied")
			return nil
		},
	}
}

func newMigrateDownCommand(opts *RootOptions) *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll the schema back by N steps",
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps <= 0 {
				return errors.Newf(errors.ErrCodeValidation, "steps must be positive, got %d", steps)
			}
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if err := postgres.RollbackMigration(postgres.BuildDSN(cfg.Database), cfg.Database.MigrationsDir, steps); err != nil {
				return err
			}
			cmd.Printf("rolled back %d migration(s)\n", steps)
			return nil
		},
	}

	cmd.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")
	return cmd
}

func newMigrateStatusCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			version, dirty, err := postgres.MigrationStatus(postgres.BuildDSN(cfg.Database), cfg.Database.MigrationsDir)
			if err != nil {
				return err
			}
			state := "clean"
			if dirty {
				state = "dirty"
			}
			cmd.Println(fmt.Sprintf("version: %d (%s)", version, state))
			return nil
		},
	}
}
