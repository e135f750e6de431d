package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/etnz/simtrade"
	md "github.com/nao1215/markdown"
)

// PreviewMarkdown renders what a trade would do.
func PreviewMarkdown(p simtrade.TradePreview) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	verb := "Buy"
	if p.Side == simtrade.Sell {
		verb = "Sell"
	}
	doc.H2(fmt.Sprintf("%s %s shares at %s", verb, p.Shares, p.PricePerShare))
	rows := [][]string{
		{"Total", p.TotalAmount.String()},
		{"Cash After", p.NewCash.String()},
		{"Shares After", p.NewShares.String()},
		{"Average Price After", p.NewAvgPrice.String()},
		{"Portfolio Value", p.NewPortfolioValue.String()},
	}
	if p.ProfitLoss != nil && p.ProfitLossPercent != nil {
		rows = append(rows, []string{"Gain", fmt.Sprintf("%s (%s)", p.ProfitLoss.SignedString(), p.ProfitLossPercent.SignedString())})
	}
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"", ""},
		Rows:      rows,
	})
	return doc.String()
}

// Transaction renders a transaction to a string.
func Transaction(tx simtrade.Transaction) string {
	switch tx.Side {
	case simtrade.Sell:
		s := fmt.Sprintf("Sold %s shares at %s for %s", tx.Shares, tx.PricePerShare, tx.TotalAmount)
		if tx.ProfitLoss != nil {
			s += fmt.Sprintf(", %s", tx.ProfitLoss.SignedString())
		}
		return s
	default:
		return fmt.Sprintf("Bought %s shares at %s for %s", tx.Shares, tx.PricePerShare, tx.TotalAmount)
	}
}

// TransactionsMarkdown renders the transactions of a game with a summary of
// the trading activity.
func TransactionsMarkdown(txs []simtrade.Transaction) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Transactions")
	if len(txs) == 0 {
		doc.PlainText("No trade yet.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Date", "Type", "Shares", "Price", "Amount", "Cash", "Gain"},
	}
	for _, tx := range txs {
		gain := ""
		if tx.ProfitLoss != nil {
			gain = tx.ProfitLoss.SignedString()
		}
		table.Rows = append(table.Rows, []string{
			tx.Date.String(), string(tx.Side), tx.Shares.String(), tx.PricePerShare.String(),
			tx.TotalAmount.String(), tx.CashAfter.String(), gain,
		})
	}
	doc.Table(table)

	s := simtrade.TradingStats(txs)
	doc.H2("Summary")
	lines := []string{
		fmt.Sprintf("%d trades: %d buys and %d sells", s.Total, s.Buys, s.Sells),
		fmt.Sprintf("Win rate: %s (%d profitable, %d losing)", s.WinRate, s.Profitable, s.Losing),
	}
	if s.Sells > 0 {
		lines = append(lines,
			fmt.Sprintf("Largest gain: %s, largest loss: %s", s.LargestGain.SignedString(), s.LargestLoss.SignedString()),
			fmt.Sprintf("Average gain per sell: %s", s.AverageProfitLoss.SignedString()),
		)
	}
	doc.BulletList(lines...)
	return strings.TrimRight(doc.String(), "\n") + "\n"
}
