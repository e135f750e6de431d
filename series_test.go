package simtrade

import (
	"errors"
	"fmt"
	"testing"

	"github.com/etnz/simtrade/date"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestNewSeries_Normalizes(t *testing.T) {
	rows := []Row{
		{Date: "Jun 18, 2024", Open: ` "5,476.15"`, High: "5,490.38", Low: "5,471.32", Close: ` "5,487.03" `, AdjClose: "5,487.03", Volume: "3,544,330,000"},
		{Date: "2024-06-17", Open: "5,431.11", High: "5,488.50", Low: "5,420.40", Close: "5,473.23", AdjClose: "", Volume: "3,447,840,000"},
		{Date: "'6/14/2024'", Open: "5,424.08", High: "5,432.39", Low: "5,403.75", Close: "5,431.60", AdjClose: "5,431.60", Volume: ""},
	}
	s, err := NewSeries(rows)
	if err != nil {
		t.Fatalf("NewSeries() unexpected error: %v", err)
	}
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	if got, want := s.Min(), date.New(2024, 6, 14); got != want {
		t.Errorf("Min() = %v, want %v", got, want)
	}
	if got, want := s.Max(), date.New(2024, 6, 18); got != want {
		t.Errorf("Max() = %v, want %v", got, want)
	}

	p, ok := s.PriceAt(date.New(2024, 6, 18))
	if !ok {
		t.Fatal("PriceAt(2024-06-18) not found")
	}
	if !p.Close.Equal(dec("5487.03")) || !p.Open.Equal(dec("5476.15")) || p.Volume != 3544330000 {
		t.Errorf("PriceAt(2024-06-18) = %+v, want close 5487.03, open 5476.15, volume 3544330000", p)
	}

	p, _ = s.PriceAt(date.New(2024, 6, 17))
	if !p.AdjClose.IsZero() {
		t.Errorf("empty adjClose = %v, want 0", p.AdjClose)
	}
	if !p.Change.Valid || !p.Change.Decimal.Equal(dec("41.63")) {
		t.Errorf("Change = %v, want 41.63", p.Change)
	}

	p, _ = s.PriceAt(date.New(2024, 6, 14))
	if p.Change.Valid || p.ChangePercent.Valid {
		t.Errorf("first point has a change %v (%v), want none", p.Change, p.ChangePercent)
	}
	if p.Volume != 0 {
		t.Errorf("empty volume = %d, want 0", p.Volume)
	}
}

func TestNewSeries_ChangePercent(t *testing.T) {
	s := MustSeries(closes("2024-01-01", 100, 110, 99))
	tests := []struct {
		on   string
		want string
	}{
		{"2024-01-02", "10"},
		{"2024-01-03", "-10"},
	}
	for _, tt := range tests {
		p, _ := s.PriceAt(date.MustParse(tt.on))
		if !p.ChangePercent.Valid || !p.ChangePercent.Decimal.Equal(dec(tt.want)) {
			t.Errorf("ChangePercent(%s) = %v, want %s", tt.on, p.ChangePercent, tt.want)
		}
	}
}

func TestNewSeries_LastDuplicateWins(t *testing.T) {
	rows := append(closes("2024-01-01", 100, 101), closes("2024-01-01", 200)...)
	s := MustSeries(rows)
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	p, _ := s.PriceAt(date.New(2024, 1, 1))
	if !p.Close.Equal(dec("200")) {
		t.Errorf("duplicated date close = %v, want 200", p.Close)
	}
}

func TestNewSeries_Errors(t *testing.T) {
	valid := Row{Date: "2024-01-02", Open: "1", High: "1", Low: "1", Close: "1", AdjClose: "1", Volume: "1"}
	tests := []struct {
		name  string
		row   Row
		field string
	}{
		{"bad date", Row{Date: "not a date", Close: "1"}, "date"},
		{"empty date", Row{Date: "", Close: "1"}, "date"},
		{"bad number", Row{Date: "2024-01-01", Close: "abc"}, "close"},
		{"negative price", Row{Date: "2024-01-01", Low: "-1"}, "low"},
		{"negative volume", Row{Date: "2024-01-01", Volume: "-10"}, "volume"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSeries([]Row{valid, tt.row})
			if s != nil {
				t.Error("NewSeries() returned a partial series")
			}
			var dfe *DataFormatError
			if !errors.As(err, &dfe) {
				t.Fatalf("NewSeries() error = %v, want a *DataFormatError", err)
			}
			if dfe.Row != 1 || dfe.Field != tt.field {
				t.Errorf("DataFormatError at row %d field %q, want row 1 field %q", dfe.Row, dfe.Field, tt.field)
			}
		})
	}

	t.Run("empty input", func(t *testing.T) {
		_, err := NewSeries(nil)
		var dfe *DataFormatError
		if !errors.As(err, &dfe) {
			t.Fatalf("NewSeries(nil) error = %v, want a *DataFormatError", err)
		}
	})
}

func TestSeries_Queries(t *testing.T) {
	// trading days on 2, 3, 6 and 7 of January 2020 (weekend in between).
	s := MustSeries([]Row{
		{Date: "2020-01-06", Close: "102"},
		{Date: "2020-01-02", Close: "100"},
		{Date: "2020-01-07", Close: "103"},
		{Date: "2020-01-03", Close: "101"},
	})
	d := date.MustParse

	if _, ok := s.PriceAt(d("2020-01-04")); ok {
		t.Error("PriceAt(weekend) found a price, want none")
	}

	rangeTests := []struct {
		from, to string
		want     []string
	}{
		{"2020-01-01", "2020-01-31", []string{"2020-01-02", "2020-01-03", "2020-01-06", "2020-01-07"}},
		{"2020-01-03", "2020-01-06", []string{"2020-01-03", "2020-01-06"}},
		{"2020-01-04", "2020-01-05", nil},
		{"2020-01-07", "2020-01-02", nil},
	}
	for _, tt := range rangeTests {
		got := s.Range(d(tt.from), d(tt.to))
		if len(got) != len(tt.want) {
			t.Errorf("Range(%s, %s) has %d points, want %d", tt.from, tt.to, len(got), len(tt.want))
			continue
		}
		for i, p := range got {
			if p.Date != d(tt.want[i]) {
				t.Errorf("Range(%s, %s)[%d] = %v, want %s", tt.from, tt.to, i, p.Date, tt.want[i])
			}
		}
	}

	dayTests := []struct {
		name string
		f    func(date.Date) (date.Date, bool)
		on   string
		want string // empty for none
	}{
		{"previous of first", s.PreviousTradingDay, "2020-01-02", ""},
		{"previous before first", s.PreviousTradingDay, "2019-12-01", ""},
		{"previous of trading day", s.PreviousTradingDay, "2020-01-06", "2020-01-03"},
		{"previous of weekend", s.PreviousTradingDay, "2020-01-05", "2020-01-03"},
		{"previous after last", s.PreviousTradingDay, "2020-02-01", "2020-01-07"},
		{"next of trading day", s.NextTradingDayAtOrAfter, "2020-01-03", "2020-01-03"},
		{"next of weekend", s.NextTradingDayAtOrAfter, "2020-01-04", "2020-01-06"},
		{"next before first", s.NextTradingDayAtOrAfter, "2019-01-01", "2020-01-02"},
		{"next after last", s.NextTradingDayAtOrAfter, "2020-01-08", ""},
	}
	for _, tt := range dayTests {
		got, ok := tt.f(d(tt.on))
		switch {
		case tt.want == "" && ok:
			t.Errorf("%s: got %v, want none", tt.name, got)
		case tt.want != "" && (!ok || got != d(tt.want)):
			t.Errorf("%s: got %v (%v), want %s", tt.name, got, ok, tt.want)
		}
	}

	pts := s.Points()
	pts[0].Close = dec("0")
	if p, _ := s.PriceAt(d("2020-01-02")); !p.Close.Equal(dec("100")) {
		t.Error("Points() exposes the series internal storage")
	}
}

func TestSeries_Window52(t *testing.T) {
	s := MustSeries([]Row{
		{Date: "2022-06-01", High: "500", Low: "1", Close: "250"}, // out of the window
		{Date: "2024-01-02", High: "110", Low: "90", Close: "100"},
		{Date: "2024-01-03", High: "120", Low: "95", Close: "200"},
		{Date: "2024-01-04", High: "115", Low: "85", Close: "102"},
		{Date: "2024-01-05", High: "120", Low: "85", Close: "118"},
	})
	d := date.MustParse

	w, ok := s.Window52(d("2024-01-05"))
	if !ok {
		t.Fatal("Window52() found no window")
	}
	if !w.High.Equal(dec("120")) || w.HighDate != d("2024-01-03") {
		t.Errorf("high = %v on %v, want 120 on 2024-01-03", w.High, w.HighDate)
	}
	if !w.Low.Equal(dec("85")) || w.LowDate != d("2024-01-04") {
		t.Errorf("low = %v on %v, want 85 on 2024-01-04", w.Low, w.LowDate)
	}
	// (118-85)/(120-85)
	if want := Percent(94.2857); !w.RangePercent.Equal(want) {
		t.Errorf("RangePercent = %v, want %v", w.RangePercent, want)
	}

	// uses high and low fields, not the close of 200.
	w, _ = s.Window52(d("2024-01-03"))
	if !w.High.Equal(dec("120")) || !w.Low.Equal(dec("90")) {
		t.Errorf("Window52(2024-01-03) = [%v, %v], want [90, 120]", w.Low, w.High)
	}
	if w.RangePercent != 100 {
		t.Errorf("RangePercent = %v, want clamped to 100", w.RangePercent)
	}

	// not a trading day: current close reads as 0.
	w, ok = s.Window52(d("2024-01-06"))
	if !ok || w.RangePercent != 0 {
		t.Errorf("Window52(weekend) = %v (%v), want range percent 0", w.RangePercent, ok)
	}

	if _, ok := s.Window52(d("2023-06-01")); ok {
		t.Error("Window52() on an empty window, want none")
	}

	flat := MustSeries(closes("2024-01-01", 100, 100))
	if w, _ := flat.Window52(d("2024-01-02")); w.RangePercent != 50 {
		t.Errorf("flat RangePercent = %v, want 50", w.RangePercent)
	}
}

func TestSeries_Trend(t *testing.T) {
	rising := make([]float64, 30)
	falling := make([]float64, 30)
	for i := range rising {
		rising[i] = float64(100 + i)
		falling[i] = float64(200 - i)
	}
	choppy := make([]float64, 30)
	for i := range choppy {
		choppy[i] = float64(100 + i%2)
	}
	tests := []struct {
		name   string
		closes []float64
		on     string
		want   Trend
	}{
		{"rising", rising, "2024-01-30", Bullish},
		{"falling", falling, "2024-01-30", Bearish},
		{"mixed", choppy, "2024-01-30", Neutral},
		{"not a trading day", rising, "2024-02-15", Neutral},
		{"insufficient sample", rising[:15], "2024-01-15", Neutral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := MustSeries(closes("2024-01-01", tt.closes...))
			if got := s.Trend(date.MustParse(tt.on)); got != tt.want {
				t.Errorf("Trend(%s) = %v, want %v", tt.on, got, tt.want)
			}
		})
	}
}

func TestSeries_TrendCalendarLookback(t *testing.T) {
	// a trading day every other day: 50 calendar days hold 26 points, all
	// rising, while the 34 earlier points are far higher.
	start := date.New(2024, 1, 1)
	var rows []Row
	for i := 0; i < 60; i++ {
		c := "1000"
		if i >= 34 {
			c = fmt.Sprint(100 + i)
		}
		rows = append(rows, Row{Date: start.Add(2 * i).String(), Close: c})
	}
	s := MustSeries(rows)
	last := s.Max()
	if n := len(s.Range(last.Add(-50), last)); n != 26 {
		t.Fatalf("lookback holds %d points, want 26", n)
	}
	if got := s.Trend(last); got != Bullish {
		t.Errorf("Trend(%s) = %v, want %v", last, got, Bullish)
	}
}
