// Package database opens the SQLite connection pool and owns the schema.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver, registers "sqlite"

	"github.com/MrSnakeDoc/bookmarks/internal/connect"
	"github.com/MrSnakeDoc/bookmarks/internal/logger"
)

// Options configures the pool and the startup retry.
type Options struct {
	Path           string        // file path or ":memory:"
	MaxOpenConns   int           // pool size
	BusyTimeout    time.Duration // how long a writer waits on a locked database
	ConnectTimeout time.Duration
	RetryInterval  time.Duration
	MaxWait        time.Duration
	PingTimeout    time.Duration
}

const schema = `
CREATE TABLE IF NOT EXISTS bookmarks (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	title       TEXT    NOT NULL,
	url         TEXT    NOT NULL,
	rating      REAL    NOT NULL,
	description TEXT    NOT NULL DEFAULT ''
);
`

// Open connects to SQLite, applies pragmas and makes sure the bookmarks
// table exists.
func Open(ctx context.Context, opts Options, log logger.Logger) (*sql.DB, error) {
	db, err := sql.Open("sqlite", opts.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	maxOpen := opts.MaxOpenConns
	if opts.Path == ":memory:" || maxOpen < 1 {
		// every connection to ":memory:" is a distinct database
		maxOpen = 1
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxOpen)

	retry := connect.Options{
		Name:           "sqlite",
		Target:         opts.Path,
		ConnectTimeout: opts.ConnectTimeout,
		RetryInterval:  opts.RetryInterval,
		MaxWait:        opts.MaxWait,
		PingTimeout:    opts.PingTimeout,
	}
	if err := connect.WithRetry(ctx, retry, db.PingContext, log); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := Prepare(ctx, db, opts.BusyTimeout); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Prepare applies connection pragmas and creates the schema. Safe to run
// on every start.
func Prepare(ctx context.Context, db *sql.DB, busyTimeout time.Duration) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		fmt.Sprintf("PRAGMA busy_timeout=%d", busyTimeout.Milliseconds()),
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("failed to set pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// OpenMemory returns a ready in-memory database. Used by tests.
func OpenMemory(ctx context.Context) (*sql.DB, error) {
	return Open(ctx, Options{
		Path:           ":memory:",
		MaxOpenConns:   1,
		BusyTimeout:    time.Second,
		ConnectTimeout: 5 * time.Second,
		RetryInterval:  10 * time.Millisecond,
		MaxWait:        100 * time.Millisecond,
		PingTimeout:    time.Second,
	}, logger.NewNop())
}
