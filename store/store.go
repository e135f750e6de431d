// Package store persists games, transactions, scores, achievements and
// cached price data in a SQLite database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// Store is a SQLite database of games.
type Store struct {
	db *sql.DB
	mu sync.Mutex // serializes writes
}

// Open opens (or creates) the SQLite database and runs migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// a single connection keeps ":memory:" databases alive and writes ordered.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA foreign_keys=ON"} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			game_id    TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL,
			status     TEXT NOT NULL,
			updated_at INTEGER NOT NULL,
			data       TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id, updated_at)`,

		`CREATE TABLE IF NOT EXISTS transactions (
			seq     INTEGER PRIMARY KEY AUTOINCREMENT,
			id      TEXT NOT NULL UNIQUE,
			game_id TEXT NOT NULL REFERENCES sessions(game_id) ON DELETE CASCADE,
			data    TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_game ON transactions(game_id, seq)`,

		`CREATE TABLE IF NOT EXISTS histories (
			game_id      TEXT PRIMARY KEY,
			completed_at INTEGER NOT NULL,
			data         TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS leaderboard (
			id           TEXT PRIMARY KEY,
			game_id      TEXT NOT NULL UNIQUE,
			username     TEXT NOT NULL,
			game_name    TEXT NOT NULL,
			roi          REAL NOT NULL,
			currency     TEXT NOT NULL,
			profit       TEXT NOT NULL,
			trades       INTEGER NOT NULL,
			start_date   TEXT NOT NULL,
			end_date     TEXT NOT NULL,
			initial_cash TEXT NOT NULL,
			final_value  TEXT NOT NULL,
			days_played  INTEGER NOT NULL,
			submitted_at INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS achievements (
			id          TEXT PRIMARY KEY,
			game_id     TEXT NOT NULL,
			unlocked_at INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS settings (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS price_cache (
			source     TEXT PRIMARY KEY,
			version    TEXT NOT NULL,
			fetched_at INTEGER NOT NULL,
			data       TEXT NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// inTx runs f in a transaction, committed if f succeeds.
func (s *Store) inTx(ctx context.Context, f func(*sql.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err := f(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
