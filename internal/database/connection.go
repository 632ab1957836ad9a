package database

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Supported driver names
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// SQLiteDSN builds the sqlite connection string for a database file,
// creating its directory if needed. Transactions take the write lock up
// front so concurrent read-modify-write cycles serialize.
func SQLiteDSN(path string) (string, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create data directory: %w", err)
		}
	}
	return "file:" + path + "?_txlock=immediate&_foreign_keys=on", nil
}

// Connect opens a database and creates the schema for its driver
func Connect(driver, dsn string) (*sqlx.DB, error) {
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == DriverSQLite {
		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	if err := initializeSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// dbTime normalizes a timestamp before it is written. sqlite compares
// timestamps as text, which only orders correctly at a fixed precision.
func dbTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}

func dbTimePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := dbTime(*t)
	return &v
}
