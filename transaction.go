package simtrade

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/etnz/simtrade/date"
	"github.com/shopspring/decimal"
)

// Side of a trade.
type Side string

const (
	Buy  Side = "buy"
	Sell Side = "sell"
)

// ParseSide parses "buy" or "sell".
func ParseSide(s string) (Side, error) {
	switch Side(s) {
	case Buy, Sell:
		return Side(s), nil
	}
	return "", fmt.Errorf("%w: unknown trade side %q", ErrValidation, s)
}

// TradePreview is the projected outcome of a trade on a session.
type TradePreview struct {
	Side              Side
	Shares            Quantity
	PricePerShare     Money
	TotalAmount       Money
	NewCash           Money
	NewShares         Quantity
	NewAvgPrice       Money
	NewPortfolioValue Money
	// sell only
	ProfitLoss        *Money
	ProfitLossPercent *Percent
}

// Transaction is an executed trade. It is never modified once created.
type Transaction struct {
	ID        string
	GameID    string
	Date      date.Date
	Timestamp time.Time
	Side      Side

	Shares        Quantity
	PricePerShare Money
	TotalAmount   Money

	CashBefore     Money
	SharesBefore   Quantity
	AvgPriceBefore Money
	CashAfter      Money
	SharesAfter    Quantity
	AvgPriceAfter  Money

	// sell only, relative to AvgPriceBefore
	ProfitLoss        *Money
	ProfitLossPercent *Percent
}

// IsProfitable reports whether t is a sell with a positive profit.
func (t Transaction) IsProfitable() bool { return t.ProfitLoss != nil && t.ProfitLoss.IsPositive() }

// IsLosing reports whether t is a sell with a negative profit.
func (t Transaction) IsLosing() bool { return t.ProfitLoss != nil && t.ProfitLoss.IsNegative() }

type transactionJSON struct {
	ID                string          `json:"transactionId"`
	GameID            string          `json:"gameId"`
	Date              date.Date       `json:"date"`
	Timestamp         time.Time       `json:"timestamp"`
	Side              Side            `json:"type"`
	Currency          string          `json:"currency"`
	Shares            decimal.Decimal `json:"shares"`
	PricePerShare     decimal.Decimal `json:"pricePerShare"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	CashBefore        decimal.Decimal `json:"cashBefore"`
	SharesBefore      decimal.Decimal `json:"sharesBefore"`
	AvgPriceBefore    decimal.Decimal `json:"avgPriceBefore"`
	CashAfter         decimal.Decimal `json:"cashAfter"`
	SharesAfter       decimal.Decimal `json:"sharesAfter"`
	AvgPriceAfter     decimal.Decimal `json:"avgPriceAfter"`
	ProfitLoss        *decimal.Decimal `json:"profitLoss"`
	ProfitLossPercent *float64         `json:"profitLossPercent"`
}

func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("transactionId", t.ID)
	w.Append("gameId", t.GameID)
	w.Append("date", t.Date)
	w.Append("timestamp", t.Timestamp)
	w.Append("type", t.Side)
	w.Append("currency", t.PricePerShare.Currency())
	w.Append("shares", t.Shares.value)
	w.Append("pricePerShare", t.PricePerShare.value)
	w.Append("totalAmount", t.TotalAmount.value)
	w.Append("cashBefore", t.CashBefore.value)
	w.Append("sharesBefore", t.SharesBefore.value)
	w.Append("avgPriceBefore", t.AvgPriceBefore.value)
	w.Append("cashAfter", t.CashAfter.value)
	w.Append("sharesAfter", t.SharesAfter.value)
	w.Append("avgPriceAfter", t.AvgPriceAfter.value)
	if t.ProfitLoss != nil {
		w.Append("profitLoss", t.ProfitLoss.value)
	}
	if t.ProfitLossPercent != nil {
		w.Append("profitLossPercent", float64(*t.ProfitLossPercent))
	}
	return w.MarshalJSON()
}

func (t *Transaction) UnmarshalJSON(data []byte) error {
	var j transactionJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return fmt.Errorf("invalid transaction: %w", err)
	}
	if _, err := ParseSide(string(j.Side)); err != nil {
		return fmt.Errorf("invalid transaction %s: %w", j.ID, err)
	}
	cur := j.Currency
	*t = Transaction{
		ID:             j.ID,
		GameID:         j.GameID,
		Date:           j.Date,
		Timestamp:      j.Timestamp,
		Side:           j.Side,
		Shares:         Q(j.Shares),
		PricePerShare:  M(j.PricePerShare, cur),
		TotalAmount:    M(j.TotalAmount, cur),
		CashBefore:     M(j.CashBefore, cur),
		SharesBefore:   Q(j.SharesBefore),
		AvgPriceBefore: M(j.AvgPriceBefore, cur),
		CashAfter:      M(j.CashAfter, cur),
		SharesAfter:    Q(j.SharesAfter),
		AvgPriceAfter:  M(j.AvgPriceAfter, cur),
	}
	if j.ProfitLoss != nil {
		pl := M(*j.ProfitLoss, cur)
		t.ProfitLoss = &pl
	}
	if j.ProfitLossPercent != nil {
		pct := Percent(*j.ProfitLossPercent)
		t.ProfitLossPercent = &pct
	}
	return nil
}
