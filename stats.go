package simtrade

import (
	"math"

	"github.com/shopspring/decimal"
)

// ROI returns the return on investment of initial becoming current, in percent.
func ROI(current, initial Money) Percent {
	if !initial.IsPositive() {
		return 0
	}
	return percentOf(current.value.Sub(initial.value).Div(initial.value).Mul(hundred))
}

// AnnualizedROI scales the return of initial becoming current over days to a
// 365 days year.
func AnnualizedROI(current, initial Money, days int) Percent {
	if !initial.IsPositive() || days <= 0 {
		return 0
	}
	ratio := current.value.Div(initial.value).InexactFloat64()
	annual := (math.Pow(ratio, 365/float64(days)) - 1) * 100
	return percentOf(decimal.NewFromFloat(annual))
}

// WinRate returns the share of sells that made a profit, in percent.
func WinRate(txs []Transaction) Percent {
	return TradingStats(txs).WinRate
}

// TradeSummary aggregates a transaction history.
type TradeSummary struct {
	Total      int
	Buys       int
	Sells      int
	Profitable int
	Losing     int
	WinRate    Percent

	// sells only
	LargestGain       Money
	LargestLoss       Money
	AverageProfitLoss Money
	// ProfitFactor is total profits over total losses, +Inf without losses.
	ProfitFactor float64
}

// TradingStats summarizes txs.
func TradingStats(txs []Transaction) TradeSummary {
	var sum TradeSummary
	var total, profits, losses Money
	sum.Total = len(txs)
	for _, tx := range txs {
		if tx.Side == Buy {
			sum.Buys++
			continue
		}
		sum.Sells++
		if tx.ProfitLoss == nil {
			continue
		}
		pl := *tx.ProfitLoss
		total = total.Add(pl)
		switch {
		case pl.IsPositive():
			sum.Profitable++
			profits = profits.Add(pl)
			if pl.GreaterThan(sum.LargestGain) {
				sum.LargestGain = pl
			}
		case pl.IsNegative():
			sum.Losing++
			losses = losses.Sub(pl)
			if pl.LessThan(sum.LargestLoss) {
				sum.LargestLoss = pl
			}
		}
	}
	if sum.Sells == 0 {
		return sum
	}
	sum.WinRate = percentOf(decimal.NewFromInt(int64(sum.Profitable)).Div(decimal.NewFromInt(int64(sum.Sells))).Mul(hundred))
	sum.AverageProfitLoss = total.Div(Q(sum.Sells)).Round()
	switch {
	case losses.IsPositive():
		sum.ProfitFactor = profits.value.Div(losses.value).Round(2).InexactFloat64()
	case profits.IsPositive():
		sum.ProfitFactor = math.Inf(1)
	}
	return sum
}
