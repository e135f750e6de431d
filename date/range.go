package date

import "fmt"

// Range represents a range of dates.
type Range struct{ From, To Date }

// NewRange creates a new date range. If 'from' is after 'to', they are swapped.
func NewRange(from, to Date) Range {
	if from.After(to) {
		from, to = to, from
	}
	return Range{From: from, To: to}
}

// Trailing returns the range of 'days' calendar days ending on 'to' (both included).
func Trailing(to Date, days int) Range { return Range{From: to.Add(-days), To: to} }

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

// Days returns the number of calendar days between From and To.
func (r Range) Days() int { return r.To.DaysSince(r.From) }

func (r Range) String() string { return fmt.Sprintf("%s_%s", r.From, r.To) }
