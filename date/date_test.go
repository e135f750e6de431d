package date

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestNew_Normalizes(t *testing.T) {
	if got, want := New(2024, time.February, 30), New(2024, time.March, 1); got != want {
		t.Errorf("New(2024-02-30) = %v, want %v", got, want)
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{"2024-06-18", New(2024, time.June, 18), false},
		{"2025-7-1", New(2025, time.July, 1), false},
		{"  2020-01-02 ", New(2020, time.January, 2), false},
		{"Jun 18, 2024", New(2024, time.June, 18), false},
		{"June 18, 2024", New(2024, time.June, 18), false},
		{"6/18/2024", New(2024, time.June, 18), false},
		{"not a date", Date{}, true},
		{"", Date{}, true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestDate_Arithmetic(t *testing.T) {
	d := New(2020, time.January, 31)
	if got, want := d.Add(1), New(2020, time.February, 1); got != want {
		t.Errorf("Add(1) = %v, want %v", got, want)
	}
	// 2020 is a leap year: Jan 31 + 1 month overflows Feb 29 by two days.
	if got, want := d.AddMonth(1), New(2020, time.March, 2); got != want {
		t.Errorf("AddMonth(1) = %v, want %v", got, want)
	}
	if got, want := New(2020, time.February, 29).AddYear(1), New(2021, time.March, 1); got != want {
		t.Errorf("AddYear(1) = %v, want %v", got, want)
	}
	if got, want := New(2020, time.March, 2).DaysSince(d), 31; got != want {
		t.Errorf("DaysSince() = %v, want %v", got, want)
	}
}

func TestDate_JSON(t *testing.T) {
	d := New(2020, time.January, 2)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(b) != `"2020-01-02"` {
		t.Errorf("Marshal() = %s", b)
	}
	var got Date
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got != d {
		t.Errorf("Unmarshal() = %v, want %v", got, d)
	}
}
