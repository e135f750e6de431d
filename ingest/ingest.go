// Package ingest reads daily price history from CSV or JSON files and URLs
// and hands it over as normalized simtrade.Row values.
//
// Exported market data is noisy: keys carry stray quotes or spaces and
// numbers come as text with thousands separators. Keys are normalized here,
// values are left as text for simtrade.NewSeries to parse.
package ingest

import (
	"strings"

	"github.com/etnz/simtrade"
)

// Format of a price file.
type Format string

const (
	CSV  Format = "csv"
	JSON Format = "json"
)

// canonical maps squashed keys to row fields.
var canonical = map[string]string{
	"date":          "date",
	"day":           "date",
	"timestamp":     "date",
	"open":          "open",
	"high":          "high",
	"low":           "low",
	"close":         "close",
	"price":         "close",
	"closelast":     "close",
	"adjclose":      "adjClose",
	"adjustedclose": "adjClose",
	"volume":        "volume",
	"vol":           "volume",
}

// NormalizeKey maps a raw column name to its row field name, e.g. ` "Adj
// Close"` becomes "adjClose". Unknown keys are returned trimmed and lower
// cased.
func NormalizeKey(key string) string {
	key = strings.ToLower(strings.Trim(key, " \t\r\n\"'*\ufeff"))
	squashed := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '_', '-', '.', '/', '"', '\'', '*':
			return -1
		}
		return r
	}, key)
	if c, ok := canonical[squashed]; ok {
		return c
	}
	return key
}

// newRow builds a row from normalized fields.
func newRow(fields map[string]string) simtrade.Row {
	return simtrade.Row{
		Date:     fields["date"],
		Open:     fields["open"],
		High:     fields["high"],
		Low:      fields["low"],
		Close:    fields["close"],
		AdjClose: fields["adjClose"],
		Volume:   fields["volume"],
	}
}
