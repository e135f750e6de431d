package simtrade

import (
	"errors"
	"testing"
	"time"

	"github.com/etnz/simtrade/date"
)

func TestNewLeaderboardEntry(t *testing.T) {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	h := GameHistory{
		GameID: "g1", Name: "first", StartDate: date.New(2020, 1, 2), EndDate: date.New(2020, 7, 1),
		StartingCash: USD(10000), FinalValue: USD(12345.67), TransactionCount: 7, DaysPlayed: 181,
		CompletedAt: now,
	}
	e, err := NewLeaderboardEntry(h, "", now)
	if err != nil {
		t.Fatalf("NewLeaderboardEntry() unexpected error: %v", err)
	}
	if e.Username != DefaultUsername || e.GameID != "g1" || e.Trades != 7 || e.ID == "" {
		t.Errorf("NewLeaderboardEntry() = %+v", e)
	}
	if !e.Profit.Equal(USD(2345.67)) || !e.ROI.Equal(23.46) {
		t.Errorf("profit %v roi %v, want 2345.67 and 23.46", e.Profit, e.ROI)
	}

	h.CompletedAt = time.Time{}
	if _, err := NewLeaderboardEntry(h, "bob", now); !errors.Is(err, ErrValidation) {
		t.Errorf("NewLeaderboardEntry(not ended) error = %v, want a validation error", err)
	}
}

func TestRank(t *testing.T) {
	now := time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)
	entries := []LeaderboardEntry{
		{GameID: "old", ROI: 90, Profit: USD(100), Trades: 3, SubmittedAt: now.AddDate(0, -3, 0)},
		{GameID: "month", ROI: 10, Profit: USD(5000), Trades: 1, SubmittedAt: now.AddDate(0, 0, -20)},
		{GameID: "week", ROI: 50, Profit: USD(200), Trades: 9, SubmittedAt: now.AddDate(0, 0, -2)},
	}
	tests := []struct {
		name   string
		filter LeaderboardFilter
		want   []string
	}{
		{"default", LeaderboardFilter{Now: now}, []string{"old", "week", "month"}},
		{"by profit", LeaderboardFilter{Now: now, SortBy: ByProfit}, []string{"month", "week", "old"}},
		{"by trades", LeaderboardFilter{Now: now, SortBy: ByTrades}, []string{"week", "old", "month"}},
		{"this month", LeaderboardFilter{Now: now, Period: ThisMonth}, []string{"week", "month"}},
		{"this week", LeaderboardFilter{Now: now, Period: ThisWeek}, []string{"week"}},
		{"limit", LeaderboardFilter{Now: now, Limit: 1}, []string{"old"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rank(entries, tt.filter)
			if len(got) != len(tt.want) {
				t.Fatalf("Rank() returned %d entries, want %d", len(got), len(tt.want))
			}
			for i, e := range got {
				if e.GameID != tt.want[i] || e.Rank != i+1 {
					t.Errorf("Rank()[%d] = %s ranked %d, want %s ranked %d", i, e.GameID, e.Rank, tt.want[i], i+1)
				}
			}
		})
	}
	if entries[0].Rank != 0 {
		t.Error("Rank() modified its input")
	}

	s := LeaderboardSummary(entries)
	if s.Entries != 3 || !s.AverageROI.Equal(50) || !s.HighestROI.Equal(90) || !s.TotalProfit.Equal(USD(5300)) {
		t.Errorf("LeaderboardSummary() = %+v", s)
	}
}
