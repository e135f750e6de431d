package ingest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/etnz/simtrade"
	"github.com/etnz/simtrade/date"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"date", "date"},
		{" \"open\"", "open"},
		{` "adj close"`, "adjClose"},
		{"Adj Close**", "adjClose"},
		{"adj_close", "adjClose"},
		{"AdjClose", "adjClose"},
		{"Close/Last", "close"},
		{"\ufeffDate", "date"},
		{" Volume ", "volume"},
		{"Ticker", "ticker"},
	}
	for _, tt := range tests {
		if got := NormalizeKey(tt.key); got != tt.want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

const sampleCSV = `date, "open", "high",low, "close", "adj close", "volume"
"Jun 18, 2024"," 5,476.15"," 5,490.38","5,471.32"," 5,487.03"," 5,487.03"," 3,544,330,000"
"Jun 17, 2024"," 5,431.11"," 5,488.50","5,420.40"," 5,473.23"," 5,473.23"," 3,447,840,000"
`

func TestReadCSV(t *testing.T) {
	rows, err := ReadCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ReadCSV() unexpected error: %v", err)
	}
	want := simtrade.Row{Date: "Jun 18, 2024", Open: " 5,476.15", High: " 5,490.38", Low: "5,471.32", Close: " 5,487.03", AdjClose: " 5,487.03", Volume: " 3,544,330,000"}
	if len(rows) != 2 || rows[0] != want {
		t.Fatalf("ReadCSV() = %#v, want first row %#v", rows, want)
	}

	s, err := simtrade.NewSeries(rows)
	if err != nil {
		t.Fatalf("NewSeries(ReadCSV()) unexpected error: %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("series has %d points, want 2", s.Len())
	}

	if _, err := ReadCSV(strings.NewReader("")); err == nil {
		t.Error("ReadCSV(empty) want error")
	}
}

func TestReadJSON(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		path string
		want simtrade.Row
	}{
		{
			name: "noisy keys",
			doc:  `[{"date":"Jun 18, 2024"," \"open\"":"5,476.15"," \"high\"":"5,490.38","low":"5,471.32"," \"close\"":"5,487.03"," \"adj close\"":"5,487.03"," \"volume\"":"3,544,330,000"}]`,
			want: simtrade.Row{Date: "Jun 18, 2024", Open: "5,476.15", High: "5,490.38", Low: "5,471.32", Close: "5,487.03", AdjClose: "5,487.03", Volume: "3,544,330,000"},
		},
		{
			name: "numbers in a document",
			doc:  `{"meta":{"symbol":"SPX"},"data":{"prices":[{"Date":"2024-06-18","Close":5487.03,"Volume":3544330000}]}}`,
			path: "$.data.prices",
			want: simtrade.Row{Date: "2024-06-18", Close: "5487.03", Volume: "3544330000"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := ReadJSON(strings.NewReader(tt.doc), tt.path)
			if err != nil {
				t.Fatalf("ReadJSON() unexpected error: %v", err)
			}
			if len(rows) != 1 || rows[0] != tt.want {
				t.Errorf("ReadJSON() = %#v, want %#v", rows, tt.want)
			}
		})
	}

	errTests := []struct{ doc, path string }{
		{`{"date":"2024-01-01"}`, ""},
		{`[{"date":"2024-01-01"}, 3, "x"]`, ""},
		{`{"data":[]}`, "$.missing"},
		{`[`, ""},
	}
	for _, tt := range errTests {
		if _, err := ReadJSON(strings.NewReader(tt.doc), tt.path); err == nil {
			t.Errorf("ReadJSON(%s, %q) want error", tt.doc, tt.path)
		}
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "sp500.csv")
	if err := os.WriteFile(file, []byte(sampleCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	rows, err := Load(context.Background(), nil, Source{Location: file})
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("Load() = %d rows, want 2", len(rows))
	}

	if _, err := Load(context.Background(), nil, Source{Location: filepath.Join(dir, "prices.txt")}); err == nil {
		t.Error("Load(unknown extension) want error")
	}
	if _, err := Load(context.Background(), nil, Source{Location: filepath.Join(dir, "missing.csv")}); err == nil {
		t.Error("Load(missing file) want error")
	}
}

func TestLoad_URLIsCachedDaily(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/sp500.json" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `[{"date":"2024-06-18","close":"5,487.03"}]`)
	}))
	defer srv.Close()

	client := NewDailyClient(t.TempDir())
	src := Source{Location: srv.URL + "/sp500.json?v=1"}
	for i := 0; i < 2; i++ {
		rows, err := Load(context.Background(), client, src)
		if err != nil {
			t.Fatalf("Load() #%d unexpected error: %v", i, err)
		}
		if len(rows) != 1 || rows[0].Close != "5,487.03" {
			t.Errorf("Load() #%d = %#v", i, rows)
		}
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("server hit %d times, want 1", got)
	}

	if _, err := Load(context.Background(), client, Source{Location: srv.URL + "/other.json"}); err == nil {
		t.Error("Load(404) want error")
	}
}

func TestEODHD(t *testing.T) {
	t.Setenv(EODHDAPIKeyEnv, "")
	src := EODHD("AAPL.US", "", date.New(2023, 1, 1), date.Date{})
	want := "https://eodhd.com/api/eod/AAPL.US?api_token=demo&fmt=json&from=2023-01-01"
	if src.Location != want || src.Format != JSON {
		t.Errorf("EODHD() = %+v, want %s as JSON", src, want)
	}

	t.Setenv(EODHDAPIKeyEnv, "secret")
	if src := EODHD("AAPL.US", "", date.Date{}, date.Date{}); !strings.Contains(src.Location, "api_token=secret") {
		t.Errorf("EODHD() = %s, want the key from %s", src.Location, EODHDAPIKeyEnv)
	}
}
