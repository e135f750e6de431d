package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/etnz/simtrade"
)

const activeGameKey = "active_game"

// execer is implemented by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func saveSession(ctx context.Context, db execer, g simtrade.GameSession) error {
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("encode game %s: %w", g.GameID, err)
	}
	_, err = db.ExecContext(ctx, `INSERT INTO sessions (game_id, user_id, status, updated_at, data)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(game_id) DO UPDATE SET
			user_id = excluded.user_id, status = excluded.status,
			updated_at = excluded.updated_at, data = excluded.data`,
		g.GameID, g.UserID, string(g.Status), g.UpdatedAt.UnixNano(), string(data))
	if err != nil {
		return fmt.Errorf("save game %s: %w", g.GameID, err)
	}
	return nil
}

func appendTransaction(ctx context.Context, db execer, t simtrade.Transaction) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode transaction %s: %w", t.ID, err)
	}
	if _, err := db.ExecContext(ctx, `INSERT INTO transactions (id, game_id, data) VALUES (?, ?, ?)`, t.ID, t.GameID, string(data)); err != nil {
		return fmt.Errorf("append transaction %s: %w", t.ID, err)
	}
	return nil
}

// SaveSession inserts or replaces a game.
func (s *Store) SaveSession(ctx context.Context, g simtrade.GameSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return saveSession(ctx, s.db, g)
}

// SaveTrade saves the game after a trade together with the trade's
// transaction, atomically.
func (s *Store) SaveTrade(ctx context.Context, g simtrade.GameSession, t simtrade.Transaction) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if err := saveSession(ctx, tx, g); err != nil {
			return err
		}
		return appendTransaction(ctx, tx, t)
	})
}

// Session returns a game by ID.
func (s *Store) Session(ctx context.Context, gameID string) (simtrade.GameSession, error) {
	var g simtrade.GameSession
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM sessions WHERE game_id = ?`, gameID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return g, fmt.Errorf("game %s: %w", gameID, ErrNotFound)
	}
	if err != nil {
		return g, fmt.Errorf("read game %s: %w", gameID, err)
	}
	if err := json.Unmarshal([]byte(data), &g); err != nil {
		return g, fmt.Errorf("decode game %s: %w", gameID, err)
	}
	return g, nil
}

// Sessions returns the games of a user, most recently updated first. An empty
// userID returns every game.
func (s *Store) Sessions(ctx context.Context, userID string) ([]simtrade.GameSession, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT data FROM sessions
		WHERE ? = '' OR user_id = ? ORDER BY updated_at DESC`, userID, userID)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()
	var res []simtrade.GameSession
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var g simtrade.GameSession
		if err := json.Unmarshal([]byte(data), &g); err != nil {
			return nil, fmt.Errorf("decode game: %w", err)
		}
		res = append(res, g)
	}
	return res, rows.Err()
}

// DeleteSession deletes a game and its transactions. It clears the active
// game if it was this one.
func (s *Store) DeleteSession(ctx context.Context, gameID string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM transactions WHERE game_id = ?`, gameID); err != nil {
			return fmt.Errorf("delete transactions of %s: %w", gameID, err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE game_id = ?`, gameID)
		if err != nil {
			return fmt.Errorf("delete game %s: %w", gameID, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("game %s: %w", gameID, ErrNotFound)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM settings WHERE key = ? AND value = ?`, activeGameKey, gameID); err != nil {
			return fmt.Errorf("clear active game: %w", err)
		}
		return nil
	})
}

// AppendTransaction appends t to its game's transactions.
func (s *Store) AppendTransaction(ctx context.Context, t simtrade.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return appendTransaction(ctx, s.db, t)
}

// Transactions returns the transactions of a game in execution order.
func (s *Store) Transactions(ctx context.Context, gameID string) ([]simtrade.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT data FROM transactions WHERE game_id = ? ORDER BY seq`, gameID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var res []simtrade.Transaction
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var t simtrade.Transaction
		if err := json.Unmarshal([]byte(data), &t); err != nil {
			return nil, fmt.Errorf("decode transaction: %w", err)
		}
		res = append(res, t)
	}
	return res, rows.Err()
}

// SaveHistory records the summary of an ended game.
func (s *Store) SaveHistory(ctx context.Context, h simtrade.GameHistory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("encode history %s: %w", h.GameID, err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT OR REPLACE INTO histories (game_id, completed_at, data) VALUES (?, ?, ?)`,
		h.GameID, h.CompletedAt.UnixNano(), string(data))
	if err != nil {
		return fmt.Errorf("save history %s: %w", h.GameID, err)
	}
	return nil
}

// Histories returns the summaries of ended games, most recent first.
func (s *Store) Histories(ctx context.Context) ([]simtrade.GameHistory, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT data FROM histories ORDER BY completed_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list histories: %w", err)
	}
	defer rows.Close()
	var res []simtrade.GameHistory
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var h simtrade.GameHistory
		if err := json.Unmarshal([]byte(data), &h); err != nil {
			return nil, fmt.Errorf("decode history: %w", err)
		}
		res = append(res, h)
	}
	return res, rows.Err()
}

// SetActiveGame sets the game commands apply to by default.
func (s *Store) SetActiveGame(ctx context.Context, gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`, activeGameKey, gameID)
	if err != nil {
		return fmt.Errorf("set active game: %w", err)
	}
	return nil
}

// ActiveGame returns the ID of the active game, or ErrNotFound.
func (s *Store) ActiveGame(ctx context.Context) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, activeGameKey).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("active game: %w", ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("read active game: %w", err)
	}
	return id, nil
}
