package cmd

import (
	"flag"

	"github.com/etnz/cartera"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// flagPredictors predicts the values of the flags that share a name across
// subcommands.
var flagPredictors = map[string]complete.Predictor{
	"c":         predict.Set{string(cartera.ARS), string(cartera.USD)},
	"s":         predict.Set(cartera.SortModes()),
	"t":         predict.Set{"cripto", "accion", "cedear"},
	"d":         predict.Set{"0d", "-1d", "-1w", "-1m"},
	"o":         predict.Files("*.csv"),
	"config":    predict.Files("*.toml"),
	"positions": predict.Files("*.jsonl"),
}

// Completion returns the shell completion of the subcommands registered in c
// and of the global flags.
func Completion(c *subcommands.Commander) *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: predictFlags(flag.CommandLine),
	}
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		f := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
		cmd.SetFlags(f)
		root.Sub[cmd.Name()] = &complete.Command{Flags: predictFlags(f)}
	})
	return root
}

func predictFlags(f *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	f.VisitAll(func(fl *flag.Flag) {
		if b, ok := fl.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			flags[fl.Name] = predict.Nothing
			return
		}
		if p, ok := flagPredictors[fl.Name]; ok {
			flags[fl.Name] = p
			return
		}
		flags[fl.Name] = predict.Something
	})
	return flags
}
