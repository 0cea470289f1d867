package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Supported drivers
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

type DB struct {
	*sqlx.DB
}

// New opens the store for driver. For SQLite, dsn is a file path.
func New(driver, dsn string) (*DB, error) {
	switch driver {
	case DriverSQLite:
		if err := ensureDirForSQLite(dsn); err != nil {
			return nil, err
		}
		dsn = sqliteDSN(dsn)
	case DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	// Open database
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &DB{db}, nil
}

// sqliteDSN enables case-sensitive LIKE, WAL and a busy timeout on every
// pooled connection.
func sqliteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path
	}
	return path + "?_cslike=1&_journal_mode=WAL&_busy_timeout=5000"
}

// ensureDirForSQLite creates the parent dir of the database file if needed.
func ensureDirForSQLite(path string) error {
	if strings.Contains(path, ":memory:") || strings.Contains(path, "mode=memory") {
		return nil
	}
	clean := strings.TrimPrefix(path, "file:")
	clean = strings.Split(clean, "?")[0]
	dir := filepath.Dir(clean)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	return nil
}

// Migrate creates the schema if it does not exist yet. Safe to run on
// every start.
func (db *DB) Migrate(ctx context.Context) error {
	for _, query := range schema(db.DriverName()) {
		if _, err := db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

func schema(driver string) []string {
	if driver == DriverPostgres {
		return []string{
			`CREATE TABLE IF NOT EXISTS notes (
				id BIGSERIAL PRIMARY KEY,
				title TEXT NOT NULL,
				content TEXT
			)`,
			`CREATE TABLE IF NOT EXISTS todos (
				id BIGSERIAL PRIMARY KEY,
				description TEXT NOT NULL,
				end_date TEXT,
				completed BOOLEAN NOT NULL DEFAULT FALSE
			)`,
		}
	}

	return []string{
		`CREATE TABLE IF NOT EXISTS notes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			content TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS todos (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			description TEXT NOT NULL,
			end_date TEXT,
			completed BOOLEAN NOT NULL DEFAULT 0
		)`,
	}
}

func (db *DB) Close() error {
	return db.DB.Close()
}
