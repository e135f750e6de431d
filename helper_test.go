package simtrade

import (
	"fmt"
	"testing"
	"time"

	"github.com/etnz/simtrade/date"
	"github.com/shopspring/decimal"
)

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// closes builds one row per consecutive calendar day from start with the
// given closes. Open, high and low are equal to the close.
func closes(start string, values ...float64) []Row {
	d := date.MustParse(start)
	rows := make([]Row, len(values))
	for i, v := range values {
		s := fmt.Sprint(v)
		rows[i] = Row{Date: d.Add(i).String(), Open: s, High: s, Low: s, Close: s, AdjClose: s, Volume: "1000"}
	}
	return rows
}

// testEngine returns a deterministic engine over rows.
func testEngine(t *testing.T, rows []Row) *Engine {
	t.Helper()
	s, err := NewSeries(rows)
	if err != nil {
		t.Fatalf("NewSeries() unexpected error: %v", err)
	}
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	id := 0
	return NewEngine(s, "USD",
		WithClock(func() time.Time { clock = clock.Add(time.Second); return clock }),
		WithIDs(func() string { id++; return fmt.Sprintf("id-%d", id) }),
	)
}

// newGame creates a session with starting cash on start.
func newGame(t *testing.T, e *Engine, start string, cash int64) GameSession {
	t.Helper()
	s, err := e.CreateSession(SessionConfig{Name: "test", StartDate: date.MustParse(start), StartingCash: decimal.NewFromInt(cash)})
	if err != nil {
		t.Fatalf("CreateSession() unexpected error: %v", err)
	}
	return s
}
