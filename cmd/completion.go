package cmd

import (
	"flag"

	"github.com/etnz/simtrade/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// predictors of flag values, by flag name. Other flags accept anything.
var predictors = map[string]complete.Predictor{
	"p":      predict.Set{"all-time", "this-month", "this-week"},
	"s":      predict.Set{"roi", "profit", "trades"},
	"o":      predict.Files("*.jsonl"),
	"config": predict.Files("*.yaml"),
	"db":     predict.Files("*.db"),
}

// Completion returns the shell completion of commands and the global flags.
func Completion(commands []subcommands.Command) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: make(map[string]complete.Predictor),
	}
	flag.CommandLine.VisitAll(func(f *flag.Flag) { root.Flags[f.Name] = predictor(f) })

	for _, c := range commands {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		sub := &complete.Command{Flags: make(map[string]complete.Predictor)}
		fs.VisitAll(func(f *flag.Flag) { sub.Flags[f.Name] = predictor(f) })
		switch c.Name() {
		case "advance":
			sub.Args = predict.Set{"day", "week", "month", "year"}
		case "preview":
			sub.Args = predict.Set{"buy", "sell"}
		case "topic":
			if names, err := docs.Names(); err == nil {
				sub.Args = predict.Set(names)
			}
		}
		root.Sub[c.Name()] = sub
	}
	return root
}

func predictor(f *flag.Flag) complete.Predictor {
	if p, ok := predictors[f.Name]; ok {
		return p
	}
	if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return predict.Nothing
	}
	return predict.Something
}
