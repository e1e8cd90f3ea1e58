package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`

	New      NewCmd      `cmd:"" help:"Start a new game"`
	Draw     DrawCmd     `cmd:"" help:"Draw a card for a player"`
	Stay     StayCmd     `cmd:"" help:"Player chooses to stay"`
	State    StateCmd    `cmd:"" help:"Display current game state"`
	Simulate SimulateCmd `cmd:"" help:"Run a series of commands from a script"`
	Play     PlayCmd     `cmd:"" help:"Play a game interactively"`
	Server   ServerCmd   `cmd:"" help:"Run the multi-game hosting server"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("flip7"),
		kong.Description("Rules engine and tooling for the Flip7 push-your-luck card game"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
