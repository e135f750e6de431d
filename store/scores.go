package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/etnz/simtrade"
	"github.com/etnz/simtrade/date"
	"github.com/shopspring/decimal"
)

// ErrAlreadySubmitted is returned when a game's score was already submitted.
var ErrAlreadySubmitted = errors.New("score already submitted")

// SubmitScore adds e to the leaderboard. A game can be submitted only once.
func (s *Store) SubmitScore(ctx context.Context, e simtrade.LeaderboardEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `INSERT INTO leaderboard (
			id, game_id, username, game_name, roi, currency, profit, trades,
			start_date, end_date, initial_cash, final_value, days_played, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.GameID, e.Username, e.GameName, float64(e.ROI), e.InitialCash.Currency(),
		e.Profit.Decimal().String(), e.Trades, e.StartDate.String(), e.EndDate.String(),
		e.InitialCash.Decimal().String(), e.FinalValue.Decimal().String(), e.DaysPlayed,
		e.SubmittedAt.UnixNano())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return fmt.Errorf("game %s: %w", e.GameID, ErrAlreadySubmitted)
		}
		return fmt.Errorf("submit score: %w", err)
	}
	return nil
}

// LeaderboardEntries returns every submitted score, unranked.
func (s *Store) LeaderboardEntries(ctx context.Context) ([]simtrade.LeaderboardEntry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT
			id, game_id, username, game_name, roi, currency, profit, trades,
			start_date, end_date, initial_cash, final_value, days_played, submitted_at
		FROM leaderboard ORDER BY submitted_at`)
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	defer rows.Close()

	var res []simtrade.LeaderboardEntry
	for rows.Next() {
		var (
			e                           simtrade.LeaderboardEntry
			roi                         float64
			cur, profit, initial, final string
			start, end                  string
			submitted                   int64
		)
		if err := rows.Scan(&e.ID, &e.GameID, &e.Username, &e.GameName, &roi, &cur, &profit, &e.Trades,
			&start, &end, &initial, &final, &e.DaysPlayed, &submitted); err != nil {
			return nil, err
		}
		e.ROI = simtrade.Percent(roi)
		if e.StartDate, err = date.Parse(start); err != nil {
			return nil, fmt.Errorf("score %s: %w", e.ID, err)
		}
		if e.EndDate, err = date.Parse(end); err != nil {
			return nil, fmt.Errorf("score %s: %w", e.ID, err)
		}
		amounts := []struct {
			dst *simtrade.Money
			src string
		}{{&e.Profit, profit}, {&e.InitialCash, initial}, {&e.FinalValue, final}}
		for _, a := range amounts {
			v, err := decimal.NewFromString(a.src)
			if err != nil {
				return nil, fmt.Errorf("score %s: %w", e.ID, err)
			}
			*a.dst = simtrade.M(v, cur)
		}
		e.SubmittedAt = time.Unix(0, submitted).UTC()
		res = append(res, e)
	}
	return res, rows.Err()
}

// Unlock records achievements as unlocked by a game. Already unlocked ones are
// left untouched.
func (s *Store) Unlock(ctx context.Context, gameID string, at time.Time, ids ...string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, id := range ids {
			_, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO achievements (id, game_id, unlocked_at) VALUES (?, ?, ?)`,
				id, gameID, at.UnixNano())
			if err != nil {
				return fmt.Errorf("unlock %s: %w", id, err)
			}
		}
		return nil
	})
}

// Unlocked returns the IDs of unlocked achievements with the time they were
// unlocked.
func (s *Store) Unlocked(ctx context.Context) (map[string]time.Time, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, unlocked_at FROM achievements`)
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	defer rows.Close()
	res := make(map[string]time.Time)
	for rows.Next() {
		var id string
		var at int64
		if err := rows.Scan(&id, &at); err != nil {
			return nil, err
		}
		res[id] = time.Unix(0, at).UTC()
	}
	return res, rows.Err()
}
