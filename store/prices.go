package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/etnz/simtrade"
)

// PriceCacheVersion is the version of the cached rows format. Entries of
// another version are ignored.
const PriceCacheVersion = "1.0.0"

// CachePrices stores the raw rows loaded from source.
func (s *Store) CachePrices(ctx context.Context, source string, rows []simtrade.Row, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("encode prices: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT OR REPLACE INTO price_cache (source, version, fetched_at, data) VALUES (?, ?, ?, ?)`,
		source, PriceCacheVersion, at.UnixNano(), string(data))
	if err != nil {
		return fmt.Errorf("cache prices: %w", err)
	}
	return nil
}

// CachedPrices returns the rows cached for source if they are younger than
// ttl at now. It returns ErrNotFound for missing, stale or outdated entries.
func (s *Store) CachedPrices(ctx context.Context, source string, ttl time.Duration, now time.Time) ([]simtrade.Row, time.Time, error) {
	var (
		version string
		fetched int64
		data    string
	)
	err := s.db.QueryRowContext(ctx, `SELECT version, fetched_at, data FROM price_cache WHERE source = ?`, source).
		Scan(&version, &fetched, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, fmt.Errorf("prices for %s: %w", source, ErrNotFound)
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("read cached prices: %w", err)
	}
	at := time.Unix(0, fetched).UTC()
	if version != PriceCacheVersion || now.Sub(at) > ttl {
		return nil, at, fmt.Errorf("prices for %s are stale: %w", source, ErrNotFound)
	}
	var rows []simtrade.Row
	if err := json.Unmarshal([]byte(data), &rows); err != nil {
		return nil, at, fmt.Errorf("decode cached prices: %w", err)
	}
	return rows, at, nil
}
