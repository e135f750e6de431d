package date

import (
	"fmt"
	"strings"
)

// Unit is a calendar step used to advance a date.
type Unit int

const (
	Daily Unit = iota
	Weekly
	Monthly
	Yearly
)

func (u Unit) String() string {
	switch u {
	case Daily:
		return "day"
	case Weekly:
		return "week"
	case Monthly:
		return "month"
	case Yearly:
		return "year"
	default:
		panic(fmt.Sprintf("unknown unit %d", u))
	}
}

// Valid reports whether u is one of Daily, Weekly, Monthly or Yearly.
func (u Unit) Valid() bool { return u >= Daily && u <= Yearly }

// Advance returns d moved forward by count units using calendar arithmetic.
//
// Months and years keep the day of month and normalize overflows, they do not
// clamp to the end of the month.
func (u Unit) Advance(d Date, count int) Date {
	switch u {
	case Daily:
		return d.Add(count)
	case Weekly:
		return d.Add(7 * count)
	case Monthly:
		return d.AddMonth(count)
	case Yearly:
		return d.AddYear(count)
	default:
		panic(fmt.Sprintf("unknown unit %d", u))
	}
}

// ParseUnit parses a unit name, singular, plural or adverb.
func ParseUnit(s string) (Unit, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "d", "day", "days", "daily":
		return Daily, nil
	case "w", "week", "weeks", "weekly":
		return Weekly, nil
	case "m", "month", "months", "monthly":
		return Monthly, nil
	case "y", "year", "years", "yearly":
		return Yearly, nil
	default:
		return Daily, fmt.Errorf("unknown unit %q", s)
	}
}
