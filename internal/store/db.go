package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// MemoryDSN keeps the whole database inside the process.
const MemoryDSN = ":memory:"

type Store struct {
	DB *sql.DB
}

// NewStore opens the database and applies the embedded migrations. The pool
// is pinned to a single connection: an in-memory database lives and dies
// with its connection, and it also serializes writes.
func NewStore(ctx context.Context, dataSourceName string) (*Store, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, `PRAGMA foreign_keys = ON`); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	s := &Store{DB: db}
	if err := s.Migrate(ctx, migrationFiles, "migrations"); err != nil {
		db.Close()
		return nil, err
	}
	slog.Debug("Store ready", "dsn", dataSourceName)
	return s, nil
}

func (s *Store) Close() error {
	return s.DB.Close()
}

func toUnix(t time.Time) int64 {
	return t.UTC().UnixNano()
}

func fromUnix(n int64) time.Time {
	return time.Unix(0, n).UTC()
}
