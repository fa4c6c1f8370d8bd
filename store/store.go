// Package store owns the physical schema of the local cache. Open is
// the only place in the repository allowed to open the storage medium;
// every other component receives the returned connection.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"github.com/tiltwatch/tiltwatch/config"
	"github.com/tiltwatch/tiltwatch/migrations"
	"go.uber.org/zap"
	"os"
)

// latestVersion must track the highest migration under migrations/
const latestVersion = 1

// Open brings the store at conf.Path to the latest schema and returns
// the shared connection. A failure here is fatal for caching: the
// caller must not proceed without a migrated store.
func Open(conf config.SQLiteConfig, logger *zap.Logger) (*sqlx.DB, error) {
	if err := migrateUp(conf, logger); err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}

	db, err := sqlx.Connect("sqlite3", conf.DSN())
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	return db, nil
}

func migrateUp(conf config.SQLiteConfig, logger *zap.Logger) error {
	err := runMigrations(conf)
	if err == nil {
		return nil
	}

	// wipeEnabled is compiled in only under the debug build tag. A
	// release build always fails loudly on a schema mismatch.
	if !wipeEnabled || !conf.WipeOnMismatch {
		return err
	}

	logger.Warn("schema mismatch, recreating store from scratch",
		zap.String("path", conf.Path),
		zap.Error(err))

	if err := removeStoreFiles(conf.Path); err != nil {
		return err
	}
	return runMigrations(conf)
}

func runMigrations(conf config.SQLiteConfig) (err error) {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return err
	}

	db, err := sql.Open("sqlite3", conf.DSN())
	if err != nil {
		return err
	}

	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		_ = db.Close()
		return err
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		_ = db.Close()
		return err
	}
	defer func() {
		sourceErr, dbErr := m.Close()
		if err == nil && sourceErr != nil {
			err = sourceErr
		}
		if err == nil && dbErr != nil {
			err = dbErr
		}
	}()

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	if dirty {
		return fmt.Errorf("migration ledger dirty at version %d", version)
	}
	if version != latestVersion {
		return fmt.Errorf("migration ledger at version %d, expected %d", version, latestVersion)
	}
	return nil
}

func removeStoreFiles(path string) error {
	// WAL sidecars must go with the main file
	for _, p := range []string{path, path + "-wal", path + "-shm", path + "-journal"} {
		err := os.Remove(p)
		if err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}
