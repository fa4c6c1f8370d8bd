package main

import (
	"fmt"
	"github.com/tiltwatch/tiltwatch/config"
	"github.com/tiltwatch/tiltwatch/pkg/migration"

	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	conf := config.Load()
	cmd := migration.MigrateCommand(conf.SQLite.MigrateDSN())
	err := cmd.Execute()
	if err != nil {
		fmt.Println("[ERROR]", err)
	}
}
