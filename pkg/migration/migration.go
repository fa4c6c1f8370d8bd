package migration

import (
	"errors"
	"fmt"
	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"
	"path"
	"strconv"
)

// MigrateCommand returns the root command for running schema migrations
// against the store at dsn. Drivers must be registered by the caller
// with blank imports.
func MigrateCommand(dsn string) *cobra.Command {
	sourceURL := "file://migrations"

	rootCmd := &cobra.Command{
		Use:   "migrate",
		Short: "apply schema migrations",
	}
	rootCmd.PersistentFlags().StringVar(&sourceURL, "source", sourceURL, "migration source URL")

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := migrate.New(sourceURL, dsn)
			if err != nil {
				return err
			}
			defer closeMigrate(m)

			err = m.Up()
			if errors.Is(err, migrate.ErrNoChange) {
				return nil
			}
			return err
		},
	}

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "roll back the last migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := migrate.New(sourceURL, dsn)
			if err != nil {
				return err
			}
			defer closeMigrate(m)

			return m.Steps(-1)
		},
	}

	forceCmd := &cobra.Command{
		Use:   "force <version>",
		Short: "force the ledger to a version, clearing the dirty flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}

			m, err := migrate.New(sourceURL, dsn)
			if err != nil {
				return err
			}
			defer closeMigrate(m)

			return m.Force(version)
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "print the current ledger version",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := migrate.New(sourceURL, dsn)
			if err != nil {
				return err
			}
			defer closeMigrate(m)

			version, dirty, err := m.Version()
			if err != nil {
				return err
			}
			fmt.Println("version:", version, "dirty:", dirty)
			return nil
		},
	}

	rootCmd.AddCommand(upCmd, downCmd, forceCmd, versionCmd)
	return rootCmd
}

// MigrateUpForTesting brings the test store to the latest schema
func MigrateUpForTesting(rootDir string, dsn string) {
	m, err := migrate.New("file://"+path.Join(rootDir, "migrations"), dsn)
	if err != nil {
		panic(err)
	}
	defer closeMigrate(m)

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		panic(err)
	}
}

func closeMigrate(m *migrate.Migrate) {
	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		panic(sourceErr)
	}
	if dbErr != nil {
		panic(dbErr)
	}
}
