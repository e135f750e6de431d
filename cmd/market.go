package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/simtrade"
	"github.com/etnz/simtrade/date"
	"github.com/etnz/simtrade/renderer"
	"github.com/google/subcommands"
)

// --- Load Command ---

type loadCmd struct{}

func (*loadCmd) Name() string     { return "load" }
func (*loadCmd) Synopsis() string { return "load the price history into the database" }
func (*loadCmd) Usage() string {
	return `simtrade load

  Loads the configured price history (data.source) and caches it in the
  database. Other commands load it when the cache is older than
  data.cache_ttl.
`
}
func (*loadCmd) SetFlags(f *flag.FlagSet) {}

func (c *loadCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return fail(err)
	}
	defer a.Close()
	rows, err := a.fetchRows(ctx)
	if err != nil {
		return fail(err)
	}
	s, err := simtrade.NewSeries(rows)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Loaded %d trading days from %s to %s\n", s.Len(), s.Min(), s.Max())
	return subcommands.ExitSuccess
}

// --- Market Command ---

type marketCmd struct {
	game string
	date string
}

func (*marketCmd) Name() string     { return "market" }
func (*marketCmd) Synopsis() string { return "show the market on the game's day" }
func (*marketCmd) Usage() string {
	return `simtrade market [-g <game_id> | -d <date>]

  Shows the price, the 52 weeks range and the trend on the current day of a
  game, or on any date.
`
}

func (c *marketCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.game, "g", "", "Game ID, defaults to the active game")
	f.StringVar(&c.date, "d", "", "Date, overrides the game's day")
}

func (c *marketCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return fail(err)
	}
	defer a.Close()
	e, err := a.loadEngine(ctx)
	if err != nil {
		return fail(err)
	}
	var day date.Date
	if c.date != "" {
		if day, err = date.Parse(c.date); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
	} else {
		g, err := a.game(ctx, c.game)
		if err != nil {
			return fail(err)
		}
		day = g.CurrentDate
	}
	printMarkdown(renderer.MarketMarkdown(e.Series(), day))
	return subcommands.ExitSuccess
}

// --- Prices Command ---

type pricesCmd struct {
	game string
	days int
}

func (*pricesCmd) Name() string     { return "prices" }
func (*pricesCmd) Synopsis() string { return "list the recent prices" }
func (*pricesCmd) Usage() string {
	return `simtrade prices [-g <game_id>] [-n <days>]

  Lists the prices of the last <days> calendar days up to the game's day.
  Prices after the game's day are never shown.
`
}

func (c *pricesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.game, "g", "", "Game ID, defaults to the active game")
	f.IntVar(&c.days, "n", 14, "Number of calendar days")
}

func (c *pricesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return fail(err)
	}
	defer a.Close()
	e, err := a.loadEngine(ctx)
	if err != nil {
		return fail(err)
	}
	g, err := a.game(ctx, c.game)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.PricesMarkdown(e.Series(), date.Trailing(g.CurrentDate, c.days)))
	return subcommands.ExitSuccess
}
