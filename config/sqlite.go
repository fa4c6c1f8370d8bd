package config

import (
	"fmt"
	"github.com/jmoiron/sqlx"
)

// SQLiteConfig for the shared local store. Path must point into a
// location readable by both the main process and any extension
// process; WAL mode gives many readers plus a single writer across
// process boundaries.
type SQLiteConfig struct {
	Path          string `mapstructure:"path"`
	BusyTimeoutMS int    `mapstructure:"busy_timeout_ms"`

	// WipeOnMismatch only takes effect in builds with the debug tag
	WipeOnMismatch bool `mapstructure:"wipe_on_mismatch"`
}

func (c SQLiteConfig) options() string {
	return fmt.Sprintf("_foreign_keys=on&_journal_mode=WAL&_busy_timeout=%d", c.BusyTimeoutMS)
}

// DSN returns data source name
func (c SQLiteConfig) DSN() string {
	return fmt.Sprintf("file:%s?%s", c.Path, c.options())
}

// MigrateDSN returns the golang-migrate database URL
func (c SQLiteConfig) MigrateDSN() string {
	return fmt.Sprintf("sqlite3://file:%s?%s", c.Path, c.options())
}

// MustConnect connects to the store using sqlx
func (c SQLiteConfig) MustConnect() *sqlx.DB {
	return sqlx.MustConnect("sqlite3", c.DSN())
}
