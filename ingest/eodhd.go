package ingest

import (
	"fmt"
	"net/url"
	"os"

	"github.com/etnz/simtrade/date"
)

// EODHDAPIKeyEnv is the environment variable holding the eodhd.com API key
// when none is configured.
const EODHDAPIKeyEnv = "EODHD_API_KEY"

// EODHD returns the source of the daily prices of ticker on eodhd.com, e.g.
// "AAPL.US". A zero bound is left to the provider. The free plan is limited
// to one year of history.
//
// An empty apiKey is read from EODHD_API_KEY, then falls back to "demo".
func EODHD(ticker, apiKey string, from, to date.Date) Source {
	if apiKey == "" {
		apiKey = os.Getenv(EODHDAPIKeyEnv)
	}
	if apiKey == "" {
		apiKey = "demo"
	}
	// [{"date": "2024-02-13", "open": 675.066, "high": 684.219, "low": 648.659,
	//   "close": 668.445, "adjusted_close": 67.705, "volume": 0}, ...]
	q := url.Values{}
	q.Set("fmt", "json")
	q.Set("api_token", apiKey)
	if !from.IsZero() {
		q.Set("from", from.String())
	}
	if !to.IsZero() {
		q.Set("to", to.String())
	}
	return Source{
		Location: fmt.Sprintf("https://eodhd.com/api/eod/%s?%s", url.PathEscape(ticker), q.Encode()),
		Format:   JSON,
	}
}
