package simtrade

import (
	"errors"
	"slices"
	"strings"

	"github.com/etnz/simtrade/date"
	"github.com/shopspring/decimal"
)

// Row is one raw daily price record, as handed over by a loader. Numeric
// fields are kept as text: thousands separators, surrounding whitespace and
// quote artifacts are tolerated, an empty field reads as zero.
type Row struct {
	Date     string `json:"date"`
	Open     string `json:"open"`
	High     string `json:"high"`
	Low      string `json:"low"`
	Close    string `json:"close"`
	AdjClose string `json:"adjClose"`
	Volume   string `json:"volume"`
}

// PricePoint is one trading day of a Series.
type PricePoint struct {
	Date     date.Date
	Open     decimal.Decimal
	High     decimal.Decimal
	Low      decimal.Decimal
	Close    decimal.Decimal
	AdjClose decimal.Decimal
	Volume   int64
	// Change and ChangePercent are relative to the previous trading day's
	// close, they are invalid on the first point.
	Change        decimal.NullDecimal
	ChangePercent decimal.NullDecimal
}

// Series is an immutable, date sorted, daily price history.
//
// It is built once by NewSeries and never modified afterwards, so it can be
// shared by any number of readers.
type Series struct {
	points []PricePoint      // ascending, unique dates
	index  map[date.Date]int // position in points
}

var errNegativePrice = errors.New("negative price")

// NewSeries normalizes raw rows into a Series.
//
// Any row with an unparseable date or number, or a negative price, rejects the
// whole input with a *DataFormatError. When the same date appears twice the
// last row wins.
func NewSeries(rows []Row) (*Series, error) {
	if len(rows) == 0 {
		return nil, &DataFormatError{Row: -1, Err: errors.New("empty price data")}
	}
	byDate := make(map[date.Date]PricePoint, len(rows))
	for i, r := range rows {
		p, err := parseRow(i, r)
		if err != nil {
			return nil, err
		}
		byDate[p.Date] = p
	}

	points := make([]PricePoint, 0, len(byDate))
	for _, p := range byDate {
		points = append(points, p)
	}
	slices.SortFunc(points, func(a, b PricePoint) int { return a.Date.Compare(b.Date) })

	s := &Series{points: points, index: make(map[date.Date]int, len(points))}
	for i := range s.points {
		s.index[s.points[i].Date] = i
		if i == 0 {
			continue
		}
		prev, cur := s.points[i-1].Close, s.points[i].Close
		if prev.IsZero() || cur.IsZero() {
			continue
		}
		change := cur.Sub(prev)
		s.points[i].Change = decimal.NewNullDecimal(change)
		s.points[i].ChangePercent = decimal.NewNullDecimal(change.Div(prev).Mul(hundred))
	}
	return s, nil
}

// MustSeries is like NewSeries but panics on error.
func MustSeries(rows []Row) *Series {
	s, err := NewSeries(rows)
	if err != nil {
		panic(err)
	}
	return s
}

func parseRow(i int, r Row) (PricePoint, error) {
	var p PricePoint
	d, err := date.Parse(cleanField(r.Date))
	if err != nil {
		return p, &DataFormatError{Row: i, Field: "date", Value: r.Date, Err: err}
	}
	p.Date = d

	prices := []struct {
		name string
		raw  string
		dst  *decimal.Decimal
	}{
		{"open", r.Open, &p.Open},
		{"high", r.High, &p.High},
		{"low", r.Low, &p.Low},
		{"close", r.Close, &p.Close},
		{"adjClose", r.AdjClose, &p.AdjClose},
	}
	for _, f := range prices {
		v, err := parseNumber(f.raw)
		if err == nil && v.IsNegative() {
			err = errNegativePrice
		}
		if err != nil {
			return p, &DataFormatError{Row: i, Field: f.name, Value: f.raw, Err: err}
		}
		*f.dst = v
	}

	v, err := parseNumber(r.Volume)
	if err == nil && v.IsNegative() {
		err = errors.New("negative volume")
	}
	if err != nil {
		return p, &DataFormatError{Row: i, Field: "volume", Value: r.Volume, Err: err}
	}
	p.Volume = v.IntPart()
	return p, nil
}

// cleanField removes whitespace and quote artifacts around a raw value.
func cleanField(s string) string {
	return strings.Trim(strings.TrimSpace(s), "\"' \t")
}

// parseNumber parses numbers like ` "5,487.03"`, empty values read as zero.
func parseNumber(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(cleanField(s), ",", "")
	if s == "" {
		return decimal.Zero, nil
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errors.New("not a number")
	}
	return v, nil
}

// Len returns the number of trading days.
func (s *Series) Len() int { return len(s.points) }

// Min returns the first trading day.
func (s *Series) Min() date.Date { return s.points[0].Date }

// Max returns the last trading day.
func (s *Series) Max() date.Date { return s.points[len(s.points)-1].Date }

// Points returns a copy of all points in ascending order.
func (s *Series) Points() []PricePoint { return slices.Clone(s.points) }

// Contains reports whether d is a trading day.
func (s *Series) Contains(d date.Date) bool {
	_, ok := s.index[d]
	return ok
}

// PriceAt returns the point for the exact date d.
func (s *Series) PriceAt(d date.Date) (PricePoint, bool) {
	i, ok := s.index[d]
	if !ok {
		return PricePoint{}, false
	}
	return s.points[i], true
}

// search returns the position of the first point on or after d.
func (s *Series) search(d date.Date) int {
	i, _ := slices.BinarySearchFunc(s.points, d, func(p PricePoint, d date.Date) int { return p.Date.Compare(d) })
	return i
}

// Range returns the points between from and to, both inclusive, in
// ascending order.
func (s *Series) Range(from, to date.Date) []PricePoint {
	if to.Before(from) {
		return nil
	}
	i, j := s.search(from), s.search(to.Add(1))
	if i >= j {
		return nil
	}
	return slices.Clone(s.points[i:j])
}

// PreviousTradingDay returns the latest trading day strictly before d.
func (s *Series) PreviousTradingDay(d date.Date) (date.Date, bool) {
	i := s.search(d)
	if i == 0 {
		return date.Date{}, false
	}
	return s.points[i-1].Date, true
}

// NextTradingDayAtOrAfter returns the earliest trading day on or after d.
func (s *Series) NextTradingDayAtOrAfter(d date.Date) (date.Date, bool) {
	i := s.search(d)
	if i == len(s.points) {
		return date.Date{}, false
	}
	return s.points[i].Date, true
}

// Window52Days is the span of the 52-week window, 52·7 days.
const Window52Days = 52 * 7

// Window52 summarizes the trailing 52-week range of prices.
type Window52 struct {
	High     decimal.Decimal
	HighDate date.Date
	Low      decimal.Decimal
	LowDate  date.Date
	// RangePercent locates the close of the day within [Low, High], from 0 to 100.
	RangePercent Percent
}

// Window52 returns the highest high and lowest low of the 52 weeks ending on
// d. Ties go to the earliest day. It returns false when no point falls in the
// window.
func (s *Series) Window52(d date.Date) (Window52, bool) {
	points := s.Range(d.Add(-Window52Days), d)
	if len(points) == 0 {
		return Window52{}, false
	}
	high, low := points[0], points[0]
	for _, p := range points[1:] {
		if p.High.GreaterThan(high.High) {
			high = p
		}
		if p.Low.LessThan(low.Low) {
			low = p
		}
	}
	w := Window52{High: high.High, HighDate: high.Date, Low: low.Low, LowDate: low.Date, RangePercent: 50}

	var current decimal.Decimal
	if p, ok := s.PriceAt(d); ok {
		current = p.Close
	}
	if span := w.High.Sub(w.Low); span.IsPositive() {
		pos := current.Sub(w.Low).Div(span).Mul(hundred)
		pos = decimal.Max(decimal.Zero, decimal.Min(hundred, pos))
		w.RangePercent = Percent(pos.InexactFloat64())
	}
	return w, true
}

// Trend is the market direction derived from moving averages.
type Trend int

const (
	Neutral Trend = iota
	Bullish
	Bearish
)

func (t Trend) String() string {
	switch t {
	case Bullish:
		return "bullish"
	case Bearish:
		return "bearish"
	default:
		return "neutral"
	}
}

const (
	trendLookback   = 50 // calendar days
	trendMinSamples = 20
)

// Trend compares the close on d with two moving averages taken over the 50
// calendar days ending on d. ma20 averages the last 20 trading days of that
// lookback, ma50 averages every trading day in it, about 35 on a regular
// exchange calendar, so it is not a conventional 50 day average.
//
// It is Neutral when d is not a trading day or fewer than 20 points are
// available.
func (s *Series) Trend(d date.Date) Trend {
	p, ok := s.PriceAt(d)
	if !ok {
		return Neutral
	}
	points := s.Range(d.Add(-trendLookback), d)
	if len(points) < trendMinSamples {
		return Neutral
	}
	ma20 := meanClose(points[len(points)-trendMinSamples:])
	ma50 := meanClose(points[max(0, len(points)-50):])
	current := p.Close
	switch {
	case current.GreaterThan(ma20) && current.GreaterThan(ma50) && ma20.GreaterThan(ma50):
		return Bullish
	case current.LessThan(ma20) && current.LessThan(ma50) && ma20.LessThan(ma50):
		return Bearish
	default:
		return Neutral
	}
}

func meanClose(points []PricePoint) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range points {
		sum = sum.Add(p.Close)
	}
	return sum.Div(decimal.NewFromInt(int64(len(points))))
}
