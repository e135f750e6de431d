package simtrade

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/etnz/simtrade/date"
	"github.com/google/uuid"
)

// DefaultUsername is the name used for scores submitted anonymously.
const DefaultUsername = "Player"

// LeaderboardEntry is the score of an ended game.
type LeaderboardEntry struct {
	ID          string
	Rank        int // 1 based, set by Rank
	Username    string
	GameID      string
	GameName    string
	ROI         Percent
	Profit      Money
	Trades      int
	StartDate   date.Date
	EndDate     date.Date
	InitialCash Money
	FinalValue  Money
	DaysPlayed  int
	SubmittedAt time.Time
}

// NewLeaderboardEntry scores an ended game.
func NewLeaderboardEntry(h GameHistory, username string, now time.Time) (LeaderboardEntry, error) {
	if h.CompletedAt.IsZero() {
		return LeaderboardEntry{}, fmt.Errorf("%w: only ended games can be submitted", ErrValidation)
	}
	if username == "" {
		username = DefaultUsername
	}
	return LeaderboardEntry{
		ID:          uuid.NewString(),
		Username:    username,
		GameID:      h.GameID,
		GameName:    h.Name,
		ROI:         ROI(h.FinalValue, h.StartingCash),
		Profit:      h.FinalValue.Sub(h.StartingCash).Round(),
		Trades:      h.TransactionCount,
		StartDate:   h.StartDate,
		EndDate:     h.EndDate,
		InitialCash: h.StartingCash,
		FinalValue:  h.FinalValue,
		DaysPlayed:  h.DaysPlayed,
		SubmittedAt: now,
	}, nil
}

// Period restricts the leaderboard to recent submissions.
type Period string

const (
	AllTime   Period = "all-time"
	ThisMonth Period = "this-month"
	ThisWeek  Period = "this-week"
)

// SortBy orders the leaderboard, best first.
type SortBy string

const (
	ByROI    SortBy = "roi"
	ByProfit SortBy = "profit"
	ByTrades SortBy = "trades"
)

// DefaultLeaderboardLimit is the number of entries returned when no limit is set.
const DefaultLeaderboardLimit = 100

// LeaderboardFilter selects and orders leaderboard entries.
type LeaderboardFilter struct {
	Period Period
	SortBy SortBy
	Limit  int
	Now    time.Time // reference for Period, defaults to time.Now
}

// Rank filters, sorts and ranks entries. entries is not modified.
func Rank(entries []LeaderboardEntry, f LeaderboardFilter) []LeaderboardEntry {
	now := f.Now
	if now.IsZero() {
		now = time.Now()
	}
	var since time.Time
	switch f.Period {
	case ThisWeek:
		since = now.AddDate(0, 0, -7)
	case ThisMonth:
		since = now.AddDate(0, 0, -30)
	}

	res := make([]LeaderboardEntry, 0, len(entries))
	for _, e := range entries {
		if e.SubmittedAt.Before(since) {
			continue
		}
		res = append(res, e)
	}

	slices.SortStableFunc(res, func(a, b LeaderboardEntry) int {
		switch f.SortBy {
		case ByProfit:
			return b.Profit.value.Cmp(a.Profit.value)
		case ByTrades:
			return cmp.Compare(b.Trades, a.Trades)
		default:
			return cmp.Compare(b.ROI, a.ROI)
		}
	})
	for i := range res {
		res[i].Rank = i + 1
	}

	limit := f.Limit
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	if len(res) > limit {
		res = res[:limit]
	}
	return res
}

// LeaderboardStats summarizes a leaderboard.
type LeaderboardStats struct {
	Entries     int
	AverageROI  Percent
	HighestROI  Percent
	TotalProfit Money
}

// LeaderboardSummary summarizes entries.
func LeaderboardSummary(entries []LeaderboardEntry) LeaderboardStats {
	var s LeaderboardStats
	if len(entries) == 0 {
		return s
	}
	s.Entries = len(entries)
	s.HighestROI = entries[0].ROI
	var sum Percent
	for _, e := range entries {
		sum += e.ROI
		s.HighestROI = max(s.HighestROI, e.ROI)
		s.TotalProfit = s.TotalProfit.Add(e.Profit)
	}
	s.AverageROI = sum / Percent(len(entries))
	return s
}
