package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/cartera/cmd"
	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	cmd.Completion(commander).Complete("cartera")

	flag.Parse()
	os.Exit(cmd.Execute(context.Background(), commander, flag.CommandLine))
}
