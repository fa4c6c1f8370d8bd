package integration

import (
	"fmt"
	"github.com/jmoiron/sqlx"
	"github.com/tiltwatch/tiltwatch/config"
	"github.com/tiltwatch/tiltwatch/pkg/migration"
	"io/ioutil"
	"os"
	"path"
	"sync"

	// drivers for integration tests only
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/mattn/go-sqlite3"
)

// TestCase ...
type TestCase struct {
	DB   *sqlx.DB
	Conf config.Config
}

var initOnce sync.Once

var globalConf config.Config
var globalDB *sqlx.DB

// NewTestCase migrates a per-process temp store once and shares it
// between tests; use Truncate to isolate test data.
func NewTestCase() *TestCase {
	initOnce.Do(func() {
		rootDir := findRootDir()
		conf := config.LoadTestConfig(rootDir)

		dir, err := ioutil.TempDir("", "tiltwatch-test")
		if err != nil {
			panic(err)
		}
		conf.SQLite.Path = path.Join(dir, "tiltwatch.db")

		migration.MigrateUpForTesting(rootDir, conf.SQLite.MigrateDSN())

		db := conf.SQLite.MustConnect()

		globalConf = conf
		globalDB = db
	})

	return &TestCase{
		Conf: globalConf,
		DB:   globalDB,
	}
}

// Truncate deletes all rows. Truncate children before parents, the
// schema enforces foreign keys.
func (tc *TestCase) Truncate(table string) {
	tc.DB.MustExec(fmt.Sprintf("DELETE FROM %s", table))
}

func findRootDir() string {
	workdir, err := os.Getwd()
	if err != nil {
		panic(err)
	}

	directory := workdir
	for {
		files, err := ioutil.ReadDir(directory)
		if err != nil {
			panic(err)
		}
		for _, file := range files {
			if file.IsDir() {
				continue
			}
			if file.Name() == "go.mod" {
				return directory
			}
		}

		directory = path.Dir(directory)
	}
}
