package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/simtrade"
	"github.com/etnz/simtrade/renderer"
	"github.com/google/subcommands"
)

type txCmd struct {
	game string
	head int
	tail int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list the transactions of a game" }
func (*txCmd) Usage() string {
	return `simtrade tx [-g <game_id>] [-head <n>] [-tail <n>]

  Lists the trades of a game in execution order, with a summary of the
  trading activity.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.game, "g", "", "Game ID, defaults to the active game")
	f.IntVar(&c.head, "head", 0, "Show only the first N transactions.")
	f.IntVar(&c.tail, "tail", 0, "Show only the last N transactions.")
}

func (c *txCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.head > 0 && c.tail > 0 {
		fmt.Fprintln(os.Stderr, "Error: -head and -tail flags cannot be used together.")
		return subcommands.ExitUsageError
	}
	a, err := openApp()
	if err != nil {
		return fail(err)
	}
	defer a.Close()
	g, err := a.game(ctx, c.game)
	if err != nil {
		return fail(err)
	}
	txs, err := a.store.Transactions(ctx, g.GameID)
	if err != nil {
		return fail(err)
	}
	if c.head > 0 && len(txs) > c.head {
		txs = txs[:c.head]
	}
	if c.tail > 0 && len(txs) > c.tail {
		txs = txs[len(txs)-c.tail:]
	}
	printMarkdown(renderer.TransactionsMarkdown(txs))
	return subcommands.ExitSuccess
}

type exportCmd struct {
	game   string
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the transactions of a game as JSONL" }
func (*exportCmd) Usage() string {
	return `simtrade export [-g <game_id>] [-o <file>]

  Writes one JSON transaction per line, to stdout by default.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.game, "g", "", "Game ID, defaults to the active game")
	f.StringVar(&c.output, "o", "", "Output file")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return fail(err)
	}
	defer a.Close()
	g, err := a.game(ctx, c.game)
	if err != nil {
		return fail(err)
	}
	txs, err := a.store.Transactions(ctx, g.GameID)
	if err != nil {
		return fail(err)
	}

	w := os.Stdout
	if c.output != "" {
		if w, err = os.Create(c.output); err != nil {
			return fail(err)
		}
		defer w.Close()
	}
	if err := simtrade.EncodeTransactions(w, txs); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
