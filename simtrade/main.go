// Command simtrade is a stock trading simulator: replay a price history day
// by day, trade with virtual cash and compare scores.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/simtrade/cmd"
	"github.com/google/subcommands"
)

func main() {
	name := path.Base(os.Args[0])
	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	// handles COMP_LINE when invoked by the shell for completion.
	cmd.Completion(cmd.Commands).Complete(name)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
