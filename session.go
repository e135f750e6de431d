package simtrade

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/etnz/simtrade/date"
	"github.com/shopspring/decimal"
)

// Status of a game. Ended is terminal.
type Status string

const (
	StatusActive Status = "active"
	StatusPaused Status = "paused"
	StatusEnded  Status = "ended"
)

// MaxNameLength is the maximum number of characters of a game name.
const MaxNameLength = 100

// DefaultStartingCash is the starting cash proposed for new games.
var DefaultStartingCash = decimal.NewFromInt(10000)

// SessionConfig holds what is needed to start a new game.
type SessionConfig struct {
	UserID       string
	Name         string
	StartDate    date.Date
	StartingCash decimal.Decimal
}

// GameSession is the state of one game.
//
// Engine operations never modify a GameSession, they return an updated copy.
type GameSession struct {
	GameID string
	UserID string
	Name   string
	Status Status

	StartDate   date.Date
	CurrentDate date.Date

	CreatedAt time.Time
	UpdatedAt time.Time
	EndedAt   time.Time // zero until the game ends

	StartingCash        Money
	CurrentCash         Money
	Shares              Quantity
	AverageHoldingPrice Money // meaningful only when Shares > 0

	TotalInvested      Money
	TotalDivested      Money
	RealizedProfitLoss Money
	TransactionCount   int
	BuyCount           int
	SellCount          int
}

// Currency returns the currency of every amount of the session.
func (s GameSession) Currency() string { return s.StartingCash.Currency() }

// Holding returns the cost of the shares held, at the average holding price.
func (s GameSession) Holding() Money { return s.AverageHoldingPrice.Mul(s.Shares) }

// sessionJSON is the wire representation of a GameSession, amounts are plain
// decimals in the session's currency.
type sessionJSON struct {
	GameID              string          `json:"gameId"`
	UserID              string          `json:"userId"`
	Name                string          `json:"gameName"`
	Status              Status          `json:"status"`
	StartDate           date.Date       `json:"startDate"`
	CurrentDate         date.Date       `json:"currentDate"`
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt"`
	EndedAt             time.Time       `json:"endedAt"`
	Currency            string          `json:"currency"`
	StartingCash        decimal.Decimal `json:"startingCash"`
	CurrentCash         decimal.Decimal `json:"currentCash"`
	Shares              decimal.Decimal `json:"shares"`
	AverageHoldingPrice decimal.Decimal `json:"averageHoldingPrice"`
	TotalInvested       decimal.Decimal `json:"totalInvested"`
	TotalDivested       decimal.Decimal `json:"totalDivested"`
	RealizedProfitLoss  decimal.Decimal `json:"realizedProfitLoss"`
	TransactionCount    int             `json:"transactionCount"`
	BuyCount            int             `json:"buyCount"`
	SellCount           int             `json:"sellCount"`
}

func (s GameSession) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("gameId", s.GameID)
	w.Optional("userId", s.UserID)
	w.Append("gameName", s.Name)
	w.Append("status", s.Status)
	w.Append("startDate", s.StartDate)
	w.Append("currentDate", s.CurrentDate)
	w.Append("createdAt", s.CreatedAt)
	w.Append("updatedAt", s.UpdatedAt)
	w.Optional("endedAt", s.EndedAt)
	w.Append("currency", s.Currency())
	w.Append("startingCash", s.StartingCash.value)
	w.Append("currentCash", s.CurrentCash.value)
	w.Append("shares", s.Shares.value)
	w.Append("averageHoldingPrice", s.AverageHoldingPrice.value)
	w.Append("totalInvested", s.TotalInvested.value)
	w.Append("totalDivested", s.TotalDivested.value)
	w.Append("realizedProfitLoss", s.RealizedProfitLoss.value)
	w.Append("transactionCount", s.TransactionCount)
	w.Append("buyCount", s.BuyCount)
	w.Append("sellCount", s.SellCount)
	return w.MarshalJSON()
}

func (s *GameSession) UnmarshalJSON(data []byte) error {
	var j sessionJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return fmt.Errorf("invalid game session: %w", err)
	}
	cur := j.Currency
	*s = GameSession{
		GameID:              j.GameID,
		UserID:              j.UserID,
		Name:                j.Name,
		Status:              j.Status,
		StartDate:           j.StartDate,
		CurrentDate:         j.CurrentDate,
		CreatedAt:           j.CreatedAt,
		UpdatedAt:           j.UpdatedAt,
		EndedAt:             j.EndedAt,
		StartingCash:        M(j.StartingCash, cur),
		CurrentCash:         M(j.CurrentCash, cur),
		Shares:              Q(j.Shares),
		AverageHoldingPrice: M(j.AverageHoldingPrice, cur),
		TotalInvested:       M(j.TotalInvested, cur),
		TotalDivested:       M(j.TotalDivested, cur),
		RealizedProfitLoss:  M(j.RealizedProfitLoss, cur),
		TransactionCount:    j.TransactionCount,
		BuyCount:            j.BuyCount,
		SellCount:           j.SellCount,
	}
	return nil
}

// GameHistory is the summary of an ended game.
type GameHistory struct {
	GameID                 string
	UserID                 string
	Name                   string
	StartDate              date.Date
	EndDate                date.Date
	DaysPlayed             int
	StartingCash           Money
	FinalCash              Money
	FinalShares            Quantity
	FinalValue             Money
	TotalProfitLoss        Money
	TotalProfitLossPercent Percent
	RealizedProfitLoss     Money
	UnrealizedProfitLoss   Money
	TransactionCount       int
	BuyCount               int
	SellCount              int
	CompletedAt            time.Time
}

type historyJSON struct {
	GameID                 string          `json:"gameId"`
	UserID                 string          `json:"userId"`
	Name                   string          `json:"gameName"`
	StartDate              date.Date       `json:"startDate"`
	EndDate                date.Date       `json:"endDate"`
	DaysPlayed             int             `json:"daysPlayed"`
	Currency               string          `json:"currency"`
	StartingCash           decimal.Decimal `json:"startingCash"`
	FinalCash              decimal.Decimal `json:"finalCash"`
	FinalShares            decimal.Decimal `json:"finalShares"`
	FinalValue             decimal.Decimal `json:"finalValue"`
	TotalProfitLoss        decimal.Decimal `json:"totalProfitLoss"`
	TotalProfitLossPercent float64         `json:"totalProfitLossPercent"`
	RealizedProfitLoss     decimal.Decimal `json:"realizedProfitLoss"`
	UnrealizedProfitLoss   decimal.Decimal `json:"unrealizedProfitLoss"`
	TransactionCount       int             `json:"transactionCount"`
	BuyCount               int             `json:"buyCount"`
	SellCount              int             `json:"sellCount"`
	CompletedAt            time.Time       `json:"completedAt"`
}

func (h GameHistory) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("gameId", h.GameID)
	w.Optional("userId", h.UserID)
	w.Append("gameName", h.Name)
	w.Append("startDate", h.StartDate)
	w.Append("endDate", h.EndDate)
	w.Append("daysPlayed", h.DaysPlayed)
	w.Append("currency", h.StartingCash.Currency())
	w.Append("startingCash", h.StartingCash.value)
	w.Append("finalCash", h.FinalCash.value)
	w.Append("finalShares", h.FinalShares.value)
	w.Append("finalValue", h.FinalValue.value)
	w.Append("totalProfitLoss", h.TotalProfitLoss.value)
	w.Append("totalProfitLossPercent", float64(h.TotalProfitLossPercent))
	w.Append("realizedProfitLoss", h.RealizedProfitLoss.value)
	w.Append("unrealizedProfitLoss", h.UnrealizedProfitLoss.value)
	w.Append("transactionCount", h.TransactionCount)
	w.Append("buyCount", h.BuyCount)
	w.Append("sellCount", h.SellCount)
	w.Append("completedAt", h.CompletedAt)
	return w.MarshalJSON()
}

func (h *GameHistory) UnmarshalJSON(data []byte) error {
	var j historyJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return fmt.Errorf("invalid game history: %w", err)
	}
	cur := j.Currency
	*h = GameHistory{
		GameID:                 j.GameID,
		UserID:                 j.UserID,
		Name:                   j.Name,
		StartDate:              j.StartDate,
		EndDate:                j.EndDate,
		DaysPlayed:             j.DaysPlayed,
		StartingCash:           M(j.StartingCash, cur),
		FinalCash:              M(j.FinalCash, cur),
		FinalShares:            Q(j.FinalShares),
		FinalValue:             M(j.FinalValue, cur),
		TotalProfitLoss:        M(j.TotalProfitLoss, cur),
		TotalProfitLossPercent: Percent(j.TotalProfitLossPercent),
		RealizedProfitLoss:     M(j.RealizedProfitLoss, cur),
		UnrealizedProfitLoss:   M(j.UnrealizedProfitLoss, cur),
		TransactionCount:       j.TransactionCount,
		BuyCount:               j.BuyCount,
		SellCount:              j.SellCount,
		CompletedAt:            j.CompletedAt,
	}
	return nil
}
