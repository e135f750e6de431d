package renderer

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/simtrade"
	md "github.com/nao1215/markdown"
)

// GameMarkdown renders the state of a game valued with stats.
func GameMarkdown(g simtrade.GameSession, stats simtrade.Stats) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("%s (%s)", g.Name, g.Status))
	doc.PlainText(fmt.Sprintf("Day %d, %s %s", stats.DaysPlayed+1, g.CurrentDate.Weekday(), g.CurrentDate))

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{md.Bold("Portfolio Value"), md.Bold(stats.CurrentValue.String()), stats.TotalProfitLossPercent.SignedString()},
		Rows: [][]string{
			{"Cash", g.CurrentCash.String(), ""},
			{"Shares", g.Shares.String(), ""},
			{"Price", stats.CurrentPrice.String(), ""},
			{"Starting Cash", g.StartingCash.String(), ""},
		},
	})

	doc.H2("Performance")
	rows := [][]string{
		{"Total", stats.TotalProfitLoss.SignedString(), stats.TotalProfitLossPercent.SignedString()},
		{"Realized", g.RealizedProfitLoss.SignedString(), ""},
	}
	if g.Shares.IsPositive() {
		rows = append(rows,
			[]string{"Unrealized", stats.UnrealizedProfitLoss.SignedString(), stats.UnrealizedProfitLossPercent.SignedString()},
			[]string{"Average Price", g.AverageHoldingPrice.String(), ""},
		)
	}
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"Gain", "Amount", "Return"},
		Rows:      rows,
	})

	doc.PlainText(fmt.Sprintf("%d trades (%d buys, %d sells) since %s.", g.TransactionCount, g.BuyCount, g.SellCount, g.StartDate))
	return doc.String()
}

// GamesMarkdown renders a list of games. The active game is marked.
func GamesMarkdown(games []simtrade.GameSession, active string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Games")
	if len(games) == 0 {
		doc.PlainText("No game yet.")
		return doc.String()
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"", "ID", "Name", "Status", "Date", "Cash"},
	}
	for _, g := range games {
		mark := ""
		if g.GameID == active {
			mark = "*"
		}
		table.Rows = append(table.Rows, []string{mark, g.GameID, g.Name, string(g.Status), g.CurrentDate.String(), g.CurrentCash.String()})
	}
	doc.Table(table)
	return doc.String()
}

// HistoryMarkdown renders the summary of an ended game.
func HistoryMarkdown(h simtrade.GameHistory) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s is over\n\n", h.Name)
	fmt.Fprintf(&b, "Played %d days, from %s to %s.\n\n", h.DaysPlayed, h.StartDate, h.EndDate)
	fmt.Fprintf(&b, "| | |\n|:---|---:|\n")
	fmt.Fprintf(&b, "| Starting Cash | %s |\n", h.StartingCash)
	fmt.Fprintf(&b, "| Final Value | %s |\n", h.FinalValue)
	fmt.Fprintf(&b, "| Total Gain | %s (%s) |\n", h.TotalProfitLoss.SignedString(), h.TotalProfitLossPercent.SignedString())
	fmt.Fprintf(&b, "| Realized | %s |\n", h.RealizedProfitLoss.SignedString())
	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprintf(w, "| Unrealized | %s |\n", h.UnrealizedProfitLoss.SignedString())
		return !h.UnrealizedProfitLoss.IsZero()
	})
	fmt.Fprintf(&b, "| Trades | %d |\n", h.TransactionCount)
	return b.String()
}
