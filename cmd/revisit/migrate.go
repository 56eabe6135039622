package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/revisit/internal/database"
)

func newMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database schema commands",
	}

	for _, direction := range []database.MigrationDirection{database.MigrateUp, database.MigrateDown} {
		migrateCmd.AddCommand(newMigrateRunCommand(direction))
	}
	migrateCmd.AddCommand(newMigrateVersionCommand())
	return migrateCmd
}

func newMigrateRunCommand(direction database.MigrationDirection) *cobra.Command {
	short := "Apply all pending migrations"
	if direction == database.MigrateDown {
		short = "Revert all migrations"
	}

	return &cobra.Command{
		Use:   string(direction),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithMigrator(func(m *database.Migrator) error {
				if err := m.Run(direction); err != nil {
					return fmt.Errorf("migrator.Run(%s) > %w", direction, err)
				}
				version, _, err := m.Version()
				if err != nil {
					return fmt.Errorf("migrator.Version() > %w", err)
				}
				newPrinter(cmd.OutOrStdout()).success("Schema is at version %d", version)
				return nil
			})
		},
	}
}

func newMigrateVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithMigrator(func(m *database.Migrator) error {
				version, dirty, err := m.Version()
				if err != nil {
					return fmt.Errorf("migrator.Version() > %w", err)
				}
				p := newPrinter(cmd.OutOrStdout())
				if dirty {
					p.notice("Schema is at version %d (dirty)", version)
					return nil
				}
				p.plain("Schema is at version %d", version)
				return nil
			})
		},
	}
}

func runWithMigrator(fn func(m *database.Migrator) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("database.Open() > %w", err)
	}
	defer func() {
		_ = db.Close()
	}()

	migrator, err := database.NewMigrator(db)
	if err != nil {
		return fmt.Errorf("database.NewMigrator() > %w", err)
	}
	return fn(migrator)
}
