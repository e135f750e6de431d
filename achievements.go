package simtrade

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Category groups achievements.
type Category string

const (
	CategoryTrading   Category = "trading"
	CategoryProfit    Category = "profit"
	CategoryMilestone Category = "milestone"
	CategorySpecial   Category = "special"
)

// Achievement is a rule unlocked once its Check holds.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Category    Category
	Points      int
	Target      int // zero when the achievement has no progress
	Check       func(AchievementContext) bool
	progress    func(AchievementContext) int
}

// Progress returns the current progress toward Target.
func (a Achievement) Progress(c AchievementContext) int {
	if a.progress == nil {
		return 0
	}
	return min(a.progress(c), a.Target)
}

// AchievementContext is the player's situation the achievements are checked
// against.
type AchievementContext struct {
	TotalTrades                 int
	ProfitableTrades            int
	ROI                         Percent
	TotalProfit                 Money
	GamesPlayed                 int
	GamesCompleted              int
	DaysHeld                    int // since the first buy, while holding shares
	DaysAdvanced                int
	BoughtAt52WeekLow           bool
	SoldAt52WeekHigh            bool
	ConsecutiveProfitableTrades int // most recent sells first
	SharesHeld                  Quantity
}

func trades(c AchievementContext) int { return c.TotalTrades }
func games(c AchievementContext) int  { return c.GamesPlayed }

func profitAtLeast(v int64) func(AchievementContext) bool {
	return func(c AchievementContext) bool {
		return c.TotalProfit.value.GreaterThanOrEqual(decimal.NewFromInt(v))
	}
}

// Achievements lists every achievement in display order.
var Achievements = []Achievement{
	{ID: "first-trade", Name: "First Steps", Description: "Complete your first trade", Category: CategoryTrading, Points: 10,
		Check: func(c AchievementContext) bool { return c.TotalTrades >= 1 }},
	{ID: "ten-trades", Name: "Getting Started", Description: "Complete 10 trades", Category: CategoryTrading, Points: 25, Target: 10, progress: trades,
		Check: func(c AchievementContext) bool { return c.TotalTrades >= 10 }},
	{ID: "fifty-trades", Name: "Active Trader", Description: "Complete 50 trades", Category: CategoryTrading, Points: 50, Target: 50, progress: trades,
		Check: func(c AchievementContext) bool { return c.TotalTrades >= 50 }},
	{ID: "hundred-trades", Name: "Trading Pro", Description: "Complete 100 trades", Category: CategoryTrading, Points: 100, Target: 100, progress: trades,
		Check: func(c AchievementContext) bool { return c.TotalTrades >= 100 }},

	{ID: "first-profit", Name: "In the Green", Description: "Make your first profitable trade", Category: CategoryProfit, Points: 15,
		Check: func(c AchievementContext) bool { return c.ProfitableTrades >= 1 }},
	{ID: "ten-percent", Name: "Double Digits", Description: "Achieve 10% ROI in a game", Category: CategoryProfit, Points: 25,
		Check: func(c AchievementContext) bool { return c.ROI >= 10 }},
	{ID: "fifty-percent", Name: "Half Way There", Description: "Achieve 50% ROI in a game", Category: CategoryProfit, Points: 75,
		Check: func(c AchievementContext) bool { return c.ROI >= 50 }},
	{ID: "hundred-percent", Name: "Doubled Up", Description: "Achieve 100% ROI in a game", Category: CategoryProfit, Points: 150,
		Check: func(c AchievementContext) bool { return c.ROI >= 100 }},
	{ID: "thousand-profit", Name: "Big Winner", Description: "Earn 1,000 profit in a single game", Category: CategoryProfit, Points: 50,
		Check: profitAtLeast(1000)},
	{ID: "five-thousand-profit", Name: "Major Gains", Description: "Earn 5,000 profit in a single game", Category: CategoryProfit, Points: 100,
		Check: profitAtLeast(5000)},

	{ID: "first-game", Name: "New Investor", Description: "Start your first game", Category: CategoryMilestone, Points: 5,
		Check: func(c AchievementContext) bool { return c.GamesPlayed >= 1 }},
	{ID: "five-games", Name: "Experienced", Description: "Play 5 different games", Category: CategoryMilestone, Points: 30, Target: 5, progress: games,
		Check: func(c AchievementContext) bool { return c.GamesPlayed >= 5 }},
	{ID: "complete-game", Name: "Finisher", Description: "Complete a game from start to end", Category: CategoryMilestone, Points: 25,
		Check: func(c AchievementContext) bool { return c.GamesCompleted >= 1 }},
	{ID: "long-hold", Name: "Patient Investor", Description: "Hold shares for 30+ days", Category: CategoryMilestone, Points: 40,
		Check: func(c AchievementContext) bool { return c.DaysHeld >= 30 }},
	{ID: "year-played", Name: "Time Traveler", Description: "Advance through 1 year of simulation", Category: CategoryMilestone, Points: 50,
		Check: func(c AchievementContext) bool { return c.DaysAdvanced >= 365 }},

	{ID: "buy-low", Name: "Bottom Fisher", Description: "Buy at a 52-week low", Category: CategorySpecial, Points: 75,
		Check: func(c AchievementContext) bool { return c.BoughtAt52WeekLow }},
	{ID: "sell-high", Name: "Peak Seller", Description: "Sell at a 52-week high", Category: CategorySpecial, Points: 75,
		Check: func(c AchievementContext) bool { return c.SoldAt52WeekHigh }},
	{ID: "perfect-timing", Name: "Perfect Timing", Description: "Buy low and sell high in the same game", Category: CategorySpecial, Points: 200,
		Check: func(c AchievementContext) bool { return c.BoughtAt52WeekLow && c.SoldAt52WeekHigh }},
	{ID: "win-streak", Name: "Hot Streak", Description: "5 profitable trades in a row", Category: CategorySpecial, Points: 60,
		Check: func(c AchievementContext) bool { return c.ConsecutiveProfitableTrades >= 5 }},
	{ID: "diamond-hands", Name: "Diamond Hands", Description: "Hold shares for 100+ days", Category: CategorySpecial, Points: 100,
		Check: func(c AchievementContext) bool { return c.DaysHeld >= 100 }},
}

// AchievementByID finds an achievement.
func AchievementByID(id string) (Achievement, bool) {
	i := slices.IndexFunc(Achievements, func(a Achievement) bool { return a.ID == id })
	if i < 0 {
		return Achievement{}, false
	}
	return Achievements[i], true
}

// NewAchievementContext builds the context of the current game.
//
// games are all the player's games, txs the current game's transactions and
// stats its valuation.
func NewAchievementContext(games []GameSession, current GameSession, stats Stats, txs []Transaction, series *Series) AchievementContext {
	c := AchievementContext{
		TotalTrades:  len(txs),
		ROI:          stats.TotalProfitLossPercent,
		TotalProfit:  stats.TotalProfitLoss,
		GamesPlayed:  len(games),
		DaysAdvanced: current.CurrentDate.DaysSince(current.StartDate),
		SharesHeld:   current.Shares,
	}
	for _, g := range games {
		if g.Status == StatusEnded {
			c.GamesCompleted++
		}
	}

	sorted := slices.Clone(txs)
	slices.SortStableFunc(sorted, func(a, b Transaction) int {
		if n := a.Date.Compare(b.Date); n != 0 {
			return n
		}
		return a.Timestamp.Compare(b.Timestamp)
	})

	firstBuy := -1
	for i, tx := range sorted {
		if tx.IsProfitable() {
			c.ProfitableTrades++
		}
		if tx.Side == Buy && firstBuy < 0 {
			firstBuy = i
		}
		w, ok := series.Window52(tx.Date)
		if !ok {
			continue
		}
		switch tx.Side {
		case Buy:
			c.BoughtAt52WeekLow = c.BoughtAt52WeekLow || tx.Date == w.LowDate
		case Sell:
			c.SoldAt52WeekHigh = c.SoldAt52WeekHigh || tx.Date == w.HighDate
		}
	}
	if current.Shares.IsPositive() && firstBuy >= 0 {
		c.DaysHeld = current.CurrentDate.DaysSince(sorted[firstBuy].Date)
	}

	for i := len(sorted) - 1; i >= 0; i-- {
		tx := sorted[i]
		if tx.Side != Sell {
			continue
		}
		if !tx.IsProfitable() {
			break
		}
		c.ConsecutiveProfitableTrades++
	}
	return c
}

// Evaluate returns the achievements newly unlocked in c, in list order.
// unlocked holds the IDs already unlocked.
func Evaluate(c AchievementContext, unlocked map[string]bool) []Achievement {
	var res []Achievement
	for _, a := range Achievements {
		if unlocked[a.ID] {
			continue
		}
		if a.Check(c) {
			res = append(res, a)
		}
	}
	return res
}
