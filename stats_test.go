package simtrade

import (
	"math"
	"testing"
)

func sellTx(pl float64) Transaction {
	m := USD(pl)
	return Transaction{Side: Sell, ProfitLoss: &m}
}

func TestROI(t *testing.T) {
	tests := []struct {
		current, initial Money
		want             Percent
	}{
		{USD(12500), USD(10000), 25},
		{USD(7500), USD(10000), -25},
		{USD(10000), USD(0), 0},
		{USD(10001), USD(3), 333266.67},
	}
	for _, tt := range tests {
		if got := ROI(tt.current, tt.initial); !got.Equal(tt.want) {
			t.Errorf("ROI(%v, %v) = %v, want %v", tt.current, tt.initial, got, tt.want)
		}
	}
}

func TestAnnualizedROI(t *testing.T) {
	tests := []struct {
		current, initial Money
		days             int
		want             Percent
	}{
		{USD(11000), USD(10000), 365, 10},
		{USD(12100), USD(10000), 730, 10},
		{USD(11000), USD(10000), 0, 0},
		{USD(11000), USD(0), 10, 0},
	}
	for _, tt := range tests {
		if got := AnnualizedROI(tt.current, tt.initial, tt.days); !got.Equal(tt.want) {
			t.Errorf("AnnualizedROI(%v, %v, %d) = %v, want %v", tt.current, tt.initial, tt.days, got, tt.want)
		}
	}
}

func TestTradingStats(t *testing.T) {
	txs := []Transaction{
		{Side: Buy}, sellTx(100), sellTx(-40), {Side: Buy}, sellTx(20), sellTx(0),
	}
	got := TradingStats(txs)
	if got.Total != 6 || got.Buys != 2 || got.Sells != 4 || got.Profitable != 2 || got.Losing != 1 {
		t.Errorf("TradingStats() counts = %+v", got)
	}
	if !got.WinRate.Equal(50) {
		t.Errorf("WinRate = %v, want 50", got.WinRate)
	}
	if !got.LargestGain.Equal(USD(100)) || !got.LargestLoss.Equal(USD(-40)) {
		t.Errorf("largest gain %v loss %v, want 100 and -40", got.LargestGain, got.LargestLoss)
	}
	if !got.AverageProfitLoss.Equal(USD(20)) {
		t.Errorf("AverageProfitLoss = %v, want 20", got.AverageProfitLoss)
	}
	if got.ProfitFactor != 3 {
		t.Errorf("ProfitFactor = %v, want 3", got.ProfitFactor)
	}

	if got := TradingStats([]Transaction{sellTx(5)}); !math.IsInf(got.ProfitFactor, 1) {
		t.Errorf("ProfitFactor without losses = %v, want +Inf", got.ProfitFactor)
	}
	if got := WinRate([]Transaction{{Side: Buy}}); got != 0 {
		t.Errorf("WinRate without sells = %v, want 0", got)
	}
}
