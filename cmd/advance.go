package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/etnz/simtrade/date"
	"github.com/etnz/simtrade/renderer"
	"github.com/google/subcommands"
)

type advanceCmd struct {
	game  string
	quiet bool
}

func (*advanceCmd) Name() string     { return "advance" }
func (*advanceCmd) Synopsis() string { return "move a game forward in time" }
func (*advanceCmd) Usage() string {
	return `simtrade advance [-g <game_id>] [-q] [<count>] [day|week|month|year]

  Moves the game forward by <count> units (default 1 day), then to the next
  trading day. Months and years use calendar arithmetic: January 31 plus one
  month is March 2, or the first trading day after it.
`
}

func (c *advanceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.game, "g", "", "Game ID, defaults to the active game")
	f.BoolVar(&c.quiet, "q", false, "Do not print the market after advancing")
}

func (c *advanceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	count, unit := 1, date.Daily
	args := f.Args()
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil {
			count = n
			args = args[1:]
		}
	}
	switch len(args) {
	case 0:
	case 1:
		u, err := date.ParseUnit(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		unit = u
	default:
		f.Usage()
		return subcommands.ExitUsageError
	}

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
	if g, err = e.AdvanceDate(g, unit, count); err != nil {
		return fail(err)
	}
	if err := a.store.SaveSession(ctx, g); err != nil {
		return fail(err)
	}
	fmt.Printf("Advanced to %s\n", g.CurrentDate)
	if !c.quiet {
		printMarkdown(renderer.MarketMarkdown(e.Series(), g.CurrentDate))
	}
	if err := a.checkAchievements(ctx, g); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
