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
	"github.com/shopspring/decimal"
)

// --- New Command ---

type newCmd struct {
	name  string
	start string
	cash  string
}

func (*newCmd) Name() string     { return "new" }
func (*newCmd) Synopsis() string { return "start a new game and make it the active one" }
func (*newCmd) Usage() string {
	return `simtrade new -n <name> [-d <start_date>] [-c <cash>]

  Starts a new game on a trading day with some starting cash. By default the
  game starts a year after the first price, so that the 52 weeks range is
  known from day one.
`
}

func (c *newCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "n", "", "Game name")
	f.StringVar(&c.start, "d", "", "Start date, must be a trading day")
	f.StringVar(&c.cash, "c", "", "Starting cash, defaults to the configured amount")
}

func (c *newCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" {
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

	cash := a.cfg.Game.StartingCash
	if c.cash != "" {
		if cash, err = decimal.NewFromString(c.cash); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing cash %q: %v\n", c.cash, err)
			return subcommands.ExitUsageError
		}
	}

	start, ok := e.Series().NextTradingDayAtOrAfter(e.Series().Min().Add(simtrade.Window52Days))
	if !ok {
		start = e.Series().Min()
	}
	if c.start != "" {
		if start, err = date.Parse(c.start); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	g, err := e.CreateSession(simtrade.SessionConfig{
		UserID:       a.cfg.Game.User,
		Name:         c.name,
		StartDate:    start,
		StartingCash: cash,
	})
	if err != nil {
		return fail(err)
	}
	if err := a.store.SaveSession(ctx, g); err != nil {
		return fail(err)
	}
	if err := a.store.SetActiveGame(ctx, g.GameID); err != nil {
		return fail(err)
	}
	fmt.Printf("Started game %s (%s) on %s with %s\n", g.Name, g.GameID, g.StartDate, g.StartingCash)
	if err := a.checkAchievements(ctx, g); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

// --- Games Command ---

type gamesCmd struct {
	all bool
}

func (*gamesCmd) Name() string     { return "games" }
func (*gamesCmd) Synopsis() string { return "list games" }
func (*gamesCmd) Usage() string {
	return `simtrade games [-all]

  Lists the games of the configured user, most recent first. The active game
  is marked with a star.
`
}

func (c *gamesCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.all, "all", false, "List the games of every user")
}

func (c *gamesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	user := a.cfg.Game.User
	if c.all {
		user = ""
	}
	games, err := a.store.Sessions(ctx, user)
	if err != nil {
		return fail(err)
	}
	active, _ := a.store.ActiveGame(ctx)
	printMarkdown(renderer.GamesMarkdown(games, active))
	return subcommands.ExitSuccess
}

// --- Use Command ---

type useCmd struct{}

func (*useCmd) Name() string     { return "use" }
func (*useCmd) Synopsis() string { return "select the active game" }
func (*useCmd) Usage() string {
	return `simtrade use <game_id>

  Makes a game the active one, commands apply to it by default.
`
}
func (*useCmd) SetFlags(f *flag.FlagSet) {}

func (c *useCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	a, err := openApp()
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	g, err := a.store.Session(ctx, f.Arg(0))
	if err != nil {
		return fail(err)
	}
	if err := a.store.SetActiveGame(ctx, g.GameID); err != nil {
		return fail(err)
	}
	fmt.Printf("Now playing %s (%s)\n", g.Name, g.Status)
	return subcommands.ExitSuccess
}

// --- Status Command ---

type statusCmd struct {
	game string
}

func (*statusCmd) Name() string     { return "status" }
func (*statusCmd) Synopsis() string { return "show the state of a game" }
func (*statusCmd) Usage() string {
	return `simtrade status [-g <game_id>]

  Shows the cash, shares and gains of a game valued at its current date.
`
}

func (c *statusCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.game, "g", "", "Game ID, defaults to the active game")
}

func (c *statusCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	printMarkdown(renderer.GameMarkdown(g, e.ComputeStats(g)))
	return subcommands.ExitSuccess
}

// --- Pause, Resume and End Commands ---

// lifecycleCmd changes the status of a game.
type lifecycleCmd struct {
	game string
}

func (c *lifecycleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.game, "g", "", "Game ID, defaults to the active game")
}

// run applies op to the game and saves it.
func (c *lifecycleCmd) run(ctx context.Context, op func(*app, simtrade.GameSession) (simtrade.GameSession, error)) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return fail(err)
	}
	defer a.Close()
	if _, err := a.loadEngine(ctx); err != nil {
		return fail(err)
	}
	g, err := a.game(ctx, c.game)
	if err != nil {
		return fail(err)
	}
	if g, err = op(a, g); err != nil {
		return fail(err)
	}
	if err := a.store.SaveSession(ctx, g); err != nil {
		return fail(err)
	}
	fmt.Printf("Game %s is %s\n", g.Name, g.Status)
	if err := a.checkAchievements(ctx, g); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

type pauseCmd struct{ lifecycleCmd }

func (*pauseCmd) Name() string     { return "pause" }
func (*pauseCmd) Synopsis() string { return "pause a game" }
func (*pauseCmd) Usage() string {
	return `simtrade pause [-g <game_id>]

  Pauses a game. A paused game cannot trade nor advance until resumed.
`
}

func (c *pauseCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.run(ctx, func(a *app, g simtrade.GameSession) (simtrade.GameSession, error) {
		return a.engine.Pause(g)
	})
}

type resumeCmd struct{ lifecycleCmd }

func (*resumeCmd) Name() string     { return "resume" }
func (*resumeCmd) Synopsis() string { return "resume a paused game" }
func (*resumeCmd) Usage() string    { return "simtrade resume [-g <game_id>]\n" }

func (c *resumeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.run(ctx, func(a *app, g simtrade.GameSession) (simtrade.GameSession, error) {
		return a.engine.Resume(g)
	})
}

type endCmd struct{ lifecycleCmd }

func (*endCmd) Name() string     { return "end" }
func (*endCmd) Synopsis() string { return "end a game and record its result" }
func (*endCmd) Usage() string {
	return `simtrade end [-g <game_id>]

  Ends a game for good and prints its summary. Submit the score with 'submit'.
`
}

func (c *endCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.run(ctx, func(a *app, g simtrade.GameSession) (simtrade.GameSession, error) {
		g, h, err := a.engine.End(g)
		if err != nil {
			return g, err
		}
		if err := a.store.SaveHistory(ctx, h); err != nil {
			return g, err
		}
		printMarkdown(renderer.HistoryMarkdown(h))
		return g, nil
	})
}

// --- Delete Command ---

type deleteCmd struct{}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete a game and its transactions" }
func (*deleteCmd) Usage() string    { return "simtrade delete <game_id>\n" }
func (*deleteCmd) SetFlags(f *flag.FlagSet) {}

func (c *deleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	a, err := openApp()
	if err != nil {
		return fail(err)
	}
	defer a.Close()
	if err := a.store.DeleteSession(ctx, f.Arg(0)); err != nil {
		return fail(err)
	}
	fmt.Printf("Deleted game %s\n", f.Arg(0))
	return subcommands.ExitSuccess
}
