package date

import (
	"testing"
	"time"
)

func TestNewRange_Swaps(t *testing.T) {
	a, b := New(2025, time.September, 10), New(2025, time.September, 8)
	got := NewRange(a, b)
	if got.From != b || got.To != a {
		t.Errorf("NewRange() = %v, want From %v To %v", got, b, a)
	}
}

func TestRange_Contains(t *testing.T) {
	r := Trailing(New(2021, time.January, 1), 364)
	testCases := []struct {
		name string
		in   Date
		want bool
	}{
		{"lower bound", New(2020, time.January, 3), true},
		{"before lower bound", New(2020, time.January, 2), false},
		{"upper bound", New(2021, time.January, 1), true},
		{"after upper bound", New(2021, time.January, 2), false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.in); got != tc.want {
				t.Errorf("Contains(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
	if r.Days() != 364 {
		t.Errorf("Days() = %d, want 364", r.Days())
	}
}

func TestUnit_Advance(t *testing.T) {
	from := New(2020, time.January, 31)
	testCases := []struct {
		unit  string
		count int
		want  Date
	}{
		{"day", 1, New(2020, time.February, 1)},
		{"weeks", 2, New(2020, time.February, 14)},
		{"month", 1, New(2020, time.March, 2)},
		{"y", 1, New(2021, time.January, 31)},
	}
	for _, tc := range testCases {
		t.Run(tc.unit, func(t *testing.T) {
			u, err := ParseUnit(tc.unit)
			if err != nil {
				t.Fatalf("ParseUnit(%q) error = %v", tc.unit, err)
			}
			if got := u.Advance(from, tc.count); got != tc.want {
				t.Errorf("Advance(%v, %d) = %v, want %v", from, tc.count, got, tc.want)
			}
		})
	}
	if _, err := ParseUnit("fortnight"); err == nil {
		t.Error("ParseUnit(fortnight) want error")
	}
}
