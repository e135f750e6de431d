package cmd

import (
	"fmt"
	"testing"

	"github.com/etnz/simtrade"
	"github.com/etnz/simtrade/date"
	"github.com/shopspring/decimal"
)

func TestCommands_UniqueNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, c := range Commands {
		if seen[c.Name()] {
			t.Errorf("command %q registered twice", c.Name())
		}
		seen[c.Name()] = true
		if c.Synopsis() == "" || c.Usage() == "" {
			t.Errorf("command %q has no documentation", c.Name())
		}
	}
}

func TestCompletion(t *testing.T) {
	root := Completion(Commands)
	if _, ok := root.Flags["db"]; !ok {
		t.Errorf("global flag -db is not completed")
	}
	for _, c := range Commands {
		if _, ok := root.Sub[c.Name()]; !ok {
			t.Errorf("command %q is not completed", c.Name())
		}
	}
	if _, ok := root.Sub["buy"].Flags["g"]; !ok {
		t.Errorf("buy -g flag is not completed")
	}
}

func TestParseShares(t *testing.T) {
	var rows []simtrade.Row
	for i, c := range []string{"30", "33"} {
		rows = append(rows, simtrade.Row{Date: date.New(2020, 1, 1).Add(i).String(), Close: c, Volume: "1"})
	}
	series, err := simtrade.NewSeries(rows)
	if err != nil {
		t.Fatalf("NewSeries() unexpected error: %v", err)
	}
	e := simtrade.NewEngine(series, "USD")
	g, err := e.CreateSession(simtrade.SessionConfig{Name: "g", StartDate: date.New(2020, 1, 1), StartingCash: decimal.NewFromInt(900)})
	if err != nil {
		t.Fatalf("CreateSession() unexpected error: %v", err)
	}
	g, _, err = e.Buy(g, simtrade.Q(10))
	if err != nil {
		t.Fatalf("Buy() unexpected error: %v", err)
	}

	tests := []struct {
		side    simtrade.Side
		in      string
		want    string
		wantErr bool
	}{
		{simtrade.Buy, "max", "20", false},
		{simtrade.Buy, "MAX", "20", false},
		{simtrade.Sell, "all", "10", false},
		{simtrade.Buy, "1,000.5", "1000.5", false},
		{simtrade.Buy, "all", "", true},
		{simtrade.Sell, "lots", "", true},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprintf("%s_%s", tc.side, tc.in), func(t *testing.T) {
			got, err := parseShares(e, g, tc.side, tc.in)
			if tc.wantErr {
				if err == nil {
					t.Errorf("parseShares(%q) = %v, want error", tc.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseShares(%q) unexpected error: %v", tc.in, err)
			}
			if got.String() != tc.want {
				t.Errorf("parseShares(%q) = %v, want %s", tc.in, got, tc.want)
			}
		})
	}
}
