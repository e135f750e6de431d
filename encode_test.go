package simtrade

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/etnz/simtrade/date"
)

func TestTransactions_JSONL(t *testing.T) {
	e := testEngine(t, closes("2020-01-02", 100, 110))
	s := newGame(t, e, "2020-01-02", 10000)
	s, buy, err := e.Buy(s, Q(12.5))
	if err != nil {
		t.Fatal(err)
	}
	s = mustAdvance(t, e, s, date.Daily, 1)
	_, sell, err := e.Sell(s, Q(2.25))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := EncodeTransactions(&buf, []Transaction{buy, sell}); err != nil {
		t.Fatalf("EncodeTransactions() unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), buf.String())
	}
	if strings.Contains(lines[0], "profitLoss") {
		t.Errorf("buy line has a profit: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], `{"transactionId":"`) || !strings.Contains(lines[1], `"profitLoss":22.5`) {
		t.Errorf("unexpected sell line: %s", lines[1])
	}

	got, err := DecodeTransactions(strings.NewReader(buf.String() + "\n\n"))
	if err != nil {
		t.Fatalf("DecodeTransactions() unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("decoded %d transactions, want 2", len(got))
	}
	if got[0].ProfitLoss != nil || !got[0].TotalAmount.Equal(buy.TotalAmount) || !got[0].Timestamp.Equal(buy.Timestamp) {
		t.Errorf("decoded buy = %+v, want %+v", got[0], buy)
	}
	if !got[1].ProfitLoss.Equal(*sell.ProfitLoss) || !got[1].ProfitLossPercent.Equal(*sell.ProfitLossPercent) || !got[1].SharesAfter.Equal(sell.SharesAfter) {
		t.Errorf("decoded sell = %+v, want %+v", got[1], sell)
	}

	if _, err := DecodeTransactions(strings.NewReader(`{"type":"short"}`)); err == nil {
		t.Error("DecodeTransactions() of an unknown side, want error")
	}
}

func TestGameSession_JSON(t *testing.T) {
	e := testEngine(t, closes("2020-01-02", 100, 110))
	s := newGame(t, e, "2020-01-02", 10000)
	s = mustBuy(t, e, s, 3.3333)
	s, h, err := e.End(s)
	if err != nil {
		t.Fatal(err)
	}

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("json.Marshal(session) unexpected error: %v", err)
	}
	if !strings.HasPrefix(string(data), `{"gameId":"id-1","gameName":"test","status":"ended"`) {
		t.Errorf("unexpected session json: %s", data)
	}
	var got GameSession
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("json.Unmarshal(session) unexpected error: %v", err)
	}
	again, _ := json.Marshal(got)
	if string(again) != string(data) {
		t.Errorf("session json changed:\n%s\n%s", data, again)
	}
	if !got.AverageHoldingPrice.Equal(s.AverageHoldingPrice) || got.Currency() != "USD" || !got.EndedAt.Equal(s.EndedAt) {
		t.Errorf("decoded session = %+v", got)
	}

	data, err = json.Marshal(h)
	if err != nil {
		t.Fatalf("json.Marshal(history) unexpected error: %v", err)
	}
	var gh GameHistory
	if err := json.Unmarshal(data, &gh); err != nil {
		t.Fatalf("json.Unmarshal(history) unexpected error: %v", err)
	}
	if !gh.FinalValue.Equal(h.FinalValue) || gh.EndDate != h.EndDate || !gh.CompletedAt.Equal(h.CompletedAt) || gh.TransactionCount != 1 {
		t.Errorf("decoded history = %+v, want %+v", gh, h)
	}
}
