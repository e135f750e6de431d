package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/etnz/simtrade"
	"github.com/etnz/simtrade/renderer"
	"github.com/google/subcommands"
)

// --- Submit Command ---

type submitCmd struct {
	game     string
	username string
}

func (*submitCmd) Name() string     { return "submit" }
func (*submitCmd) Synopsis() string { return "submit the score of an ended game" }
func (*submitCmd) Usage() string {
	return `simtrade submit [-g <game_id>] [-u <username>]

  Adds an ended game to the leaderboard. A game is submitted only once.
`
}

func (c *submitCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.game, "g", "", "Game ID, defaults to the active game")
	f.StringVar(&c.username, "u", "", "Name on the leaderboard, defaults to the configured user")
}

func (c *submitCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return fail(err)
	}
	defer a.Close()
	g, err := a.game(ctx, c.game)
	if err != nil {
		return fail(err)
	}
	if g.Status != simtrade.StatusEnded {
		fmt.Fprintf(os.Stderr, "Error: game %s is %s, end it first\n", g.Name, g.Status)
		return subcommands.ExitFailure
	}

	var history *simtrade.GameHistory
	hs, err := a.store.Histories(ctx)
	if err != nil {
		return fail(err)
	}
	for i := range hs {
		if hs[i].GameID == g.GameID {
			history = &hs[i]
		}
	}
	if history == nil {
		fmt.Fprintf(os.Stderr, "Error: no result recorded for game %s\n", g.GameID)
		return subcommands.ExitFailure
	}

	username := c.username
	if username == "" {
		username = a.cfg.Game.User
	}
	e, err := simtrade.NewLeaderboardEntry(*history, username, time.Now())
	if err != nil {
		return fail(err)
	}
	if err := a.store.SubmitScore(ctx, e); err != nil {
		return fail(err)
	}
	fmt.Printf("Submitted %s for %s: %s\n", g.Name, username, e.ROI.SignedString())
	return subcommands.ExitSuccess
}

// --- Leaderboard Command ---

type leaderboardCmd struct {
	period string
	sortBy string
	limit  int
}

func (*leaderboardCmd) Name() string     { return "leaderboard" }
func (*leaderboardCmd) Synopsis() string { return "show the best scores" }
func (*leaderboardCmd) Usage() string {
	return `simtrade leaderboard [-p all-time|this-month|this-week] [-s roi|profit|trades] [-n <limit>]
`
}

func (c *leaderboardCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "p", string(simtrade.AllTime), "Period of submission")
	f.StringVar(&c.sortBy, "s", string(simtrade.ByROI), "Sort order")
	f.IntVar(&c.limit, "n", simtrade.DefaultLeaderboardLimit, "Maximum number of entries")
}

func (c *leaderboardCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	period, sortBy := simtrade.Period(c.period), simtrade.SortBy(c.sortBy)
	switch period {
	case simtrade.AllTime, simtrade.ThisMonth, simtrade.ThisWeek:
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown period %q\n", c.period)
		return subcommands.ExitUsageError
	}
	switch sortBy {
	case simtrade.ByROI, simtrade.ByProfit, simtrade.ByTrades:
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown sort order %q\n", c.sortBy)
		return subcommands.ExitUsageError
	}

	a, err := openApp()
	if err != nil {
		return fail(err)
	}
	defer a.Close()
	entries, err := a.store.LeaderboardEntries(ctx)
	if err != nil {
		return fail(err)
	}
	ranked := simtrade.Rank(entries, simtrade.LeaderboardFilter{Period: period, SortBy: sortBy, Limit: c.limit})
	printMarkdown(renderer.LeaderboardMarkdown(ranked, period))
	return subcommands.ExitSuccess
}

// --- Achievements Command ---

type achievementsCmd struct {
	game string
}

func (*achievementsCmd) Name() string     { return "achievements" }
func (*achievementsCmd) Synopsis() string { return "list achievements and progress" }
func (*achievementsCmd) Usage() string    { return "simtrade achievements [-g <game_id>]\n" }

func (c *achievementsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.game, "g", "", "Game ID for the progress, defaults to the active game")
}

func (c *achievementsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return fail(err)
	}
	defer a.Close()
	unlocked, err := a.store.Unlocked(ctx)
	if err != nil {
		return fail(err)
	}

	var progress simtrade.AchievementContext
	if g, err := a.game(ctx, c.game); err == nil {
		e, err := a.loadEngine(ctx)
		if err != nil {
			return fail(err)
		}
		games, err := a.store.Sessions(ctx, g.UserID)
		if err != nil {
			return fail(err)
		}
		txs, err := a.store.Transactions(ctx, g.GameID)
		if err != nil {
			return fail(err)
		}
		progress = simtrade.NewAchievementContext(games, g, e.ComputeStats(g), txs, e.Series())
	}
	printMarkdown(renderer.AchievementsMarkdown(unlocked, progress))
	return subcommands.ExitSuccess
}
