package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/simtrade"
	"github.com/etnz/simtrade/date"
	md "github.com/nao1215/markdown"
)

// MarketMarkdown renders the market on day d: its price, the 52 weeks range
// and the trend.
func MarketMarkdown(s *simtrade.Series, d date.Date) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("Market on %s", d))

	p, ok := s.PriceAt(d)
	if !ok {
		doc.PlainText("No price on this day, the market is closed.")
		return doc.String()
	}
	change := "-"
	if p.Change.Valid && p.ChangePercent.Valid {
		change = fmt.Sprintf("%s (%s%%)", p.Change.Decimal.StringFixed(2), p.ChangePercent.Decimal.StringFixed(2))
	}
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{md.Bold("Close"), md.Bold(p.Close.StringFixed(2))},
		Rows: [][]string{
			{"Change", change},
			{"Open", p.Open.StringFixed(2)},
			{"High", p.High.StringFixed(2)},
			{"Low", p.Low.StringFixed(2)},
			{"Volume", fmt.Sprint(p.Volume)},
		},
	})

	if w, ok := s.Window52(d); ok {
		doc.H2("52 Weeks")
		doc.Table(md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignLeft},
			Header:    []string{"", "Price", "Date"},
			Rows: [][]string{
				{"High", w.High.StringFixed(2), w.HighDate.String()},
				{"Low", w.Low.StringFixed(2), w.LowDate.String()},
				{"Position", w.RangePercent.String(), ""},
			},
		})
	}
	doc.PlainText(fmt.Sprintf("Trend: %s", s.Trend(d)))
	return doc.String()
}

// PricesMarkdown renders the prices of the trading days in r.
func PricesMarkdown(s *simtrade.Series, r date.Range) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("Prices from %s to %s", r.From, r.To))
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Date", "Open", "High", "Low", "Close", "Change", "Volume"},
	}
	for _, p := range s.Range(r.From, r.To) {
		change := ""
		if p.ChangePercent.Valid {
			change = p.ChangePercent.Decimal.StringFixed(2) + "%"
		}
		table.Rows = append(table.Rows, []string{
			p.Date.String(), p.Open.StringFixed(2), p.High.StringFixed(2), p.Low.StringFixed(2),
			p.Close.StringFixed(2), change, fmt.Sprint(p.Volume),
		})
	}
	doc.Table(table)
	return doc.String()
}
