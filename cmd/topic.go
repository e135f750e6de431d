package cmd

import (
	"context"
	"flag"

	"github.com/etnz/simtrade/docs"
	"github.com/google/subcommands"
)

type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "read the documentation" }
func (*topicCmd) Usage() string {
	return `simtrade topic [<topic>...]

Print the given topics, or the topic index when none is given.
Use '*' to print every topic.
`
}

func (*topicCmd) SetFlags(*flag.FlagSet) {}

func (*topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var (
		doc string
		err error
	)
	if f.NArg() == 0 {
		doc, err = docs.Index()
	} else {
		doc, err = docs.Topics(f.Args()...)
	}
	if err != nil {
		return fail(err)
	}
	printMarkdown(doc)
	return subcommands.ExitSuccess
}
