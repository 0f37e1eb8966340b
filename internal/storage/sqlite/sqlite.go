// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	sqlitedrv "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/invotrack/invotrack/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
//
// SQLite serializes concurrent writers; requests touching the same row are
// ordered by the database, last committed write wins.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// dsn appends the per-connection pragmas to the database path. They must
// ride the DSN: database/sql opens connections lazily, and a pragma issued
// with db.Exec reaches exactly one pooled connection. Foreign keys drive
// the user -> invoices cascade; the busy timeout keeps concurrent writers
// waiting instead of failing immediately with SQLITE_BUSY.
func dsn(path string) string {
	return path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// sqliteConstraintUnique is the driver's extended result code for a
// UNIQUE constraint failure.
const sqliteConstraintUnique = 2067

// isUniqueViolation reports whether err is the driver telling us a UNIQUE
// constraint fired. The in-transaction pre-checks catch duplicates first in
// the common case; the constraint is the backstop when two concurrent
// inserts both pass their pre-check.
func isUniqueViolation(err error) bool {
	var drvErr *sqlitedrv.Error
	return errors.As(err, &drvErr) && drvErr.Code() == sqliteConstraintUnique
}

// Ping checks the database connection.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
