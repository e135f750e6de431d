package simtrade

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/etnz/simtrade/date"
	"github.com/google/uuid"
)

// Engine applies game operations against a price Series.
//
// Operations are pure: they take a GameSession value and return an updated
// copy along with any record they produce. The caller owns the sessions and
// serializes operations on a given game.
type Engine struct {
	series   *Series
	currency string
	now      func() time.Time
	newID    func() string
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the wall clock used for timestamps.
func WithClock(now func() time.Time) Option { return func(e *Engine) { e.now = now } }

// WithIDs sets the generator of game and transaction IDs.
func WithIDs(newID func() string) Option { return func(e *Engine) { e.newID = newID } }

// NewEngine returns an Engine trading on series, with amounts in currency.
func NewEngine(series *Series, currency string, opts ...Option) *Engine {
	e := &Engine{
		series:   series,
		currency: currency,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Series returns the price series the engine trades on.
func (e *Engine) Series() *Series { return e.series }

// CreateSession starts a new active game on a trading day.
func (e *Engine) CreateSession(cfg SessionConfig) (GameSession, error) {
	name := strings.TrimSpace(cfg.Name)
	if name == "" || utf8.RuneCountInString(name) > MaxNameLength {
		return GameSession{}, fmt.Errorf("%w: name must be 1 to %d characters", ErrInvalidName, MaxNameLength)
	}
	if !cfg.StartingCash.IsPositive() {
		return GameSession{}, fmt.Errorf("%w: got %s", ErrInvalidStartingCash, cfg.StartingCash)
	}
	if !e.series.Contains(cfg.StartDate) {
		return GameSession{}, fmt.Errorf("%w: %s", ErrNotTradingDay, cfg.StartDate)
	}
	now := e.now()
	zero := M(0, e.currency)
	cash := M(cfg.StartingCash, e.currency).Round()
	return GameSession{
		GameID:              e.newID(),
		UserID:              cfg.UserID,
		Name:                name,
		Status:              StatusActive,
		StartDate:           cfg.StartDate,
		CurrentDate:         cfg.StartDate,
		CreatedAt:           now,
		UpdatedAt:           now,
		StartingCash:        cash,
		CurrentCash:         cash,
		AverageHoldingPrice: zero,
		TotalInvested:       zero,
		TotalDivested:       zero,
		RealizedProfitLoss:  zero,
	}, nil
}

// price returns the execution price on d, rounded to MoneyPlaces.
func (e *Engine) price(d date.Date) (Money, bool) {
	p, ok := e.series.PriceAt(d)
	if !ok {
		return Money{}, false
	}
	return M(p.Close, e.currency).Round(), true
}

// PreviewTrade computes the outcome of trading shares at the current date's
// close, without applying it.
//
// Shares are rounded to SharePlaces and amounts to MoneyPlaces before any
// dependent computation.
func (e *Engine) PreviewTrade(s GameSession, side Side, shares Quantity) (TradePreview, error) {
	price, ok := e.price(s.CurrentDate)
	if !ok {
		return TradePreview{}, fmt.Errorf("%w: %s", ErrNoPrice, s.CurrentDate)
	}
	shares = shares.Round()
	if !shares.IsPositive() {
		return TradePreview{}, ErrInvalidShareAmount
	}
	total := price.Mul(shares).Round()
	p := TradePreview{Side: side, Shares: shares, PricePerShare: price, TotalAmount: total}

	switch side {
	case Buy:
		if total.GreaterThan(s.CurrentCash) {
			return TradePreview{}, fmt.Errorf("%w: need %v, have %v", ErrInsufficientFunds, total, s.CurrentCash)
		}
		p.NewCash = s.CurrentCash.Sub(total).Round()
		p.NewShares = s.Shares.Add(shares).Round()
		// weighted average of the held cost and the new purchase
		p.NewAvgPrice = s.Holding().Add(total).Div(p.NewShares).Round()

	case Sell:
		if shares.GreaterThan(s.Shares) {
			return TradePreview{}, fmt.Errorf("%w: trying to sell %v, have %v", ErrInsufficientShares, shares, s.Shares)
		}
		p.NewCash = s.CurrentCash.Add(total).Round()
		p.NewShares = s.Shares.Sub(shares).Round()
		p.NewAvgPrice = s.AverageHoldingPrice
		if !p.NewShares.IsPositive() {
			p.NewAvgPrice = M(0, e.currency)
		}
		pl := price.Sub(s.AverageHoldingPrice).Mul(shares).Round()
		var pct Percent
		if s.AverageHoldingPrice.IsPositive() {
			cost := s.AverageHoldingPrice.Mul(shares)
			pct = percentOf(pl.value.Div(cost.value).Mul(hundred))
		}
		p.ProfitLoss, p.ProfitLossPercent = &pl, &pct

	default:
		return TradePreview{}, fmt.Errorf("%w: unknown trade side %q", ErrValidation, side)
	}
	p.NewPortfolioValue = p.NewCash.Add(price.Mul(p.NewShares)).Round()
	return p, nil
}

// trade runs the preview again and applies it.
func (e *Engine) trade(s GameSession, side Side, shares Quantity) (GameSession, Transaction, error) {
	if err := checkActive(s); err != nil {
		return s, Transaction{}, err
	}
	p, err := e.PreviewTrade(s, side, shares)
	if err != nil {
		return s, Transaction{}, err
	}
	now := e.now()
	tx := Transaction{
		ID:                e.newID(),
		GameID:            s.GameID,
		Date:              s.CurrentDate,
		Timestamp:         now,
		Side:              side,
		Shares:            p.Shares,
		PricePerShare:     p.PricePerShare,
		TotalAmount:       p.TotalAmount,
		CashBefore:        s.CurrentCash,
		SharesBefore:      s.Shares,
		AvgPriceBefore:    s.AverageHoldingPrice,
		CashAfter:         p.NewCash,
		SharesAfter:       p.NewShares,
		AvgPriceAfter:     p.NewAvgPrice,
		ProfitLoss:        p.ProfitLoss,
		ProfitLossPercent: p.ProfitLossPercent,
	}

	next := s
	next.CurrentCash = p.NewCash
	next.Shares = p.NewShares
	next.AverageHoldingPrice = p.NewAvgPrice
	next.TransactionCount++
	next.UpdatedAt = now
	switch side {
	case Buy:
		next.TotalInvested = s.TotalInvested.Add(p.TotalAmount).Round()
		next.BuyCount++
	case Sell:
		next.TotalDivested = s.TotalDivested.Add(p.TotalAmount).Round()
		next.RealizedProfitLoss = s.RealizedProfitLoss.Add(*p.ProfitLoss).Round()
		next.SellCount++
	}
	return next, tx, nil
}

// Buy buys shares at the current date's close.
func (e *Engine) Buy(s GameSession, shares Quantity) (GameSession, Transaction, error) {
	return e.trade(s, Buy, shares)
}

// Sell sells shares at the current date's close. The average holding price is
// unchanged unless no share is left.
func (e *Engine) Sell(s GameSession, shares Quantity) (GameSession, Transaction, error) {
	return e.trade(s, Sell, shares)
}

// AdvanceDate moves the current date count units forward in calendar time,
// then forward again to the next trading day.
//
// Months and years overshoot by however many non trading days follow the
// calendar target. When no trading day is left, it returns ErrNoMoreData and
// the session unchanged.
func (e *Engine) AdvanceDate(s GameSession, unit date.Unit, count int) (GameSession, error) {
	if err := checkActive(s); err != nil {
		return s, err
	}
	if count < 1 {
		return s, fmt.Errorf("%w: got %d", ErrInvalidAdvance, count)
	}
	if !unit.Valid() {
		return s, fmt.Errorf("%w: unknown unit %d", ErrInvalidAdvance, int(unit))
	}
	target := unit.Advance(s.CurrentDate, count)
	next, ok := e.series.NextTradingDayAtOrAfter(target)
	if !ok || !next.After(s.CurrentDate) {
		return s, fmt.Errorf("%w: last trading day is %s", ErrNoMoreData, e.series.Max())
	}
	s.CurrentDate = next
	s.UpdatedAt = e.now()
	return s, nil
}

func checkActive(s GameSession) error {
	switch s.Status {
	case StatusActive:
		return nil
	case StatusEnded:
		return fmt.Errorf("%w: %w", ErrGameNotActive, ErrGameEnded)
	default:
		return fmt.Errorf("%w: game is %s", ErrGameNotActive, s.Status)
	}
}

// Pause pauses an active game.
func (e *Engine) Pause(s GameSession) (GameSession, error) {
	if err := checkActive(s); err != nil {
		return s, err
	}
	s.Status = StatusPaused
	s.UpdatedAt = e.now()
	return s, nil
}

// Resume resumes a paused game.
func (e *Engine) Resume(s GameSession) (GameSession, error) {
	switch s.Status {
	case StatusEnded:
		return s, ErrGameEnded
	case StatusActive:
		return s, fmt.Errorf("%w: game is already active", ErrValidation)
	}
	s.Status = StatusActive
	s.UpdatedAt = e.now()
	return s, nil
}

// End ends an active or paused game and returns its summary.
func (e *Engine) End(s GameSession) (GameSession, GameHistory, error) {
	if s.Status == StatusEnded {
		return s, GameHistory{}, ErrGameEnded
	}
	now := e.now()
	stats := e.ComputeStats(s)
	s.Status = StatusEnded
	s.EndedAt = now
	s.UpdatedAt = now
	h := GameHistory{
		GameID:                 s.GameID,
		UserID:                 s.UserID,
		Name:                   s.Name,
		StartDate:              s.StartDate,
		EndDate:                s.CurrentDate,
		DaysPlayed:             stats.DaysPlayed,
		StartingCash:           s.StartingCash,
		FinalCash:              s.CurrentCash,
		FinalShares:            s.Shares,
		FinalValue:             stats.CurrentValue,
		TotalProfitLoss:        stats.TotalProfitLoss,
		TotalProfitLossPercent: stats.TotalProfitLossPercent,
		RealizedProfitLoss:     s.RealizedProfitLoss,
		UnrealizedProfitLoss:   stats.UnrealizedProfitLoss,
		TransactionCount:       s.TransactionCount,
		BuyCount:               s.BuyCount,
		SellCount:              s.SellCount,
		CompletedAt:            now,
	}
	return s, h, nil
}

// Stats is the valuation of a session on its current date.
type Stats struct {
	CurrentPrice                Money
	CurrentValue                Money
	UnrealizedProfitLoss        Money
	UnrealizedProfitLossPercent Percent
	TotalProfitLoss             Money
	TotalProfitLossPercent      Percent
	DaysPlayed                  int
}

// ComputeStats values s at the close of its current date. It never fails:
// without a price the current price is zero.
//
// Holdings are valued at the close as published, not at the execution price
// rounded to cents that trades and previews use, so CurrentValue may differ by
// a few cents from the NewPortfolioValue of a preview on the same day.
func (e *Engine) ComputeStats(s GameSession) Stats {
	price := M(0, e.currency)
	if p, ok := e.series.PriceAt(s.CurrentDate); ok {
		price = M(p.Close, e.currency)
	}
	st := Stats{
		CurrentPrice:         price.Round(),
		CurrentValue:         s.CurrentCash.Add(price.Mul(s.Shares)).Round(),
		UnrealizedProfitLoss: M(0, e.currency),
		DaysPlayed:           s.CurrentDate.DaysSince(s.StartDate),
	}
	unrealized := M(0, e.currency)
	if s.Shares.IsPositive() {
		gain := price.Sub(s.AverageHoldingPrice)
		unrealized = gain.Mul(s.Shares)
		if s.AverageHoldingPrice.IsPositive() {
			st.UnrealizedProfitLossPercent = percentOf(gain.value.Div(s.AverageHoldingPrice.value).Mul(hundred))
		}
	}
	total := s.RealizedProfitLoss.Add(unrealized)
	st.UnrealizedProfitLoss = unrealized.Round()
	st.TotalProfitLoss = total.Round()
	if s.StartingCash.IsPositive() {
		st.TotalProfitLossPercent = percentOf(total.value.Div(s.StartingCash.value).Mul(hundred))
	}
	return st
}

// MaxBuyShares returns the largest quantity the current cash can buy, floored
// to SharePlaces. It is zero without a price.
func (e *Engine) MaxBuyShares(s GameSession) Quantity {
	price, ok := e.price(s.CurrentDate)
	if !ok || !price.IsPositive() {
		return Q(0)
	}
	return Quantity{value: s.CurrentCash.value.Div(price.value).RoundFloor(SharePlaces)}
}
