package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/simtrade"
	"github.com/etnz/simtrade/renderer"
	"github.com/google/subcommands"
)

// parseShares parses a share amount. "max" buys as many shares as cash
// allows, "all" sells every share held.
func parseShares(e *simtrade.Engine, g simtrade.GameSession, side simtrade.Side, s string) (simtrade.Quantity, error) {
	switch strings.ToLower(s) {
	case "max":
		if side == simtrade.Buy {
			return e.MaxBuyShares(g), nil
		}
	case "all":
		if side == simtrade.Sell {
			return g.Shares, nil
		}
	}
	return simtrade.ParseQuantity(s)
}

// --- Preview Command ---

type previewCmd struct {
	game string
}

func (*previewCmd) Name() string     { return "preview" }
func (*previewCmd) Synopsis() string { return "show what a trade would do without executing it" }
func (*previewCmd) Usage() string {
	return `simtrade preview [-g <game_id>] buy|sell <shares>

  Previews a trade at today's close. <shares> can be "max" for a buy, "all"
  for a sell.
`
}

func (c *previewCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.game, "g", "", "Game ID, defaults to the active game")
}

func (c *previewCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	side, err := simtrade.ParseSide(f.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
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
	shares, err := parseShares(e, g, side, f.Arg(1))
	if err != nil {
		return fail(err)
	}
	p, err := e.PreviewTrade(g, side, shares)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.PreviewMarkdown(p))
	return subcommands.ExitSuccess
}

// --- Buy and Sell Commands ---

// tradeCmd executes a trade on a game.
type tradeCmd struct {
	game string
}

func (c *tradeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.game, "g", "", "Game ID, defaults to the active game")
}

func (c *tradeCmd) run(ctx context.Context, f *flag.FlagSet, side simtrade.Side) subcommands.ExitStatus {
	if f.NArg() != 1 {
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
	shares, err := parseShares(e, g, side, f.Arg(0))
	if err != nil {
		return fail(err)
	}

	trade := e.Buy
	if side == simtrade.Sell {
		trade = e.Sell
	}
	g, tx, err := trade(g, shares)
	if err != nil {
		return fail(err)
	}
	if err := a.store.SaveTrade(ctx, g, tx); err != nil {
		return fail(err)
	}
	fmt.Println(renderer.Transaction(tx))
	fmt.Printf("Cash: %s, shares: %s\n", g.CurrentCash, g.Shares)
	if err := a.checkAchievements(ctx, g); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

type buyCmd struct{ tradeCmd }

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "buy shares at today's close" }
func (*buyCmd) Usage() string {
	return `simtrade buy [-g <game_id>] <shares>

  Buys shares at the close of the current day. <shares> can be fractional,
  up to 4 decimals, or "max" to spend all the cash.
`
}

func (c *buyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.run(ctx, f, simtrade.Buy)
}

type sellCmd struct{ tradeCmd }

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell shares at today's close" }
func (*sellCmd) Usage() string {
	return `simtrade sell [-g <game_id>] <shares>

  Sells shares at the close of the current day. <shares> can be "all".
`
}

func (c *sellCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.run(ctx, f, simtrade.Sell)
}

// --- Max Command ---

type maxCmd struct {
	game string
}

func (*maxCmd) Name() string     { return "max" }
func (*maxCmd) Synopsis() string { return "show how many shares the cash can buy" }
func (*maxCmd) Usage() string    { return "simtrade max [-g <game_id>]\n" }

func (c *maxCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.game, "g", "", "Game ID, defaults to the active game")
}

func (c *maxCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	fmt.Println(e.MaxBuyShares(g))
	return subcommands.ExitSuccess
}
