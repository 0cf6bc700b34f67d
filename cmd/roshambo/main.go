package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Config string `short:"c" default:"${config_file}" help:"HCL configuration file" type:"path"`
	Rounds int    `help:"Rounds per match (overrides config)"`
	Seed   *int64 `help:"Deterministic RNG seed (overrides config)"`
	Debug  bool   `help:"Enable debug logging"`
}

type CLI struct {
	Globals

	Version   kong.VersionFlag `short:"v" help:"Show version"`
	Play      PlayCmd          `cmd:"" default:"1" help:"Play in the terminal"`
	Serve     ServeCmd         `cmd:"" help:"Serve the browser version over WebSocket"`
	Simulate  SimulateCmd      `cmd:"" help:"Play many matches headlessly and print statistics"`
	ConfigCmd ConfigCmd        `cmd:"" name:"config" help:"Manage the configuration file"`
}

func newParser(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("roshambo"),
		kong.Description("Rock, paper, scissors against the computer"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":     version,
			"config_file": "roshambo.hcl",
		},
	}, options...)
	return kong.New(cli, options...)
}

func main() {
	var cli CLI
	parser, err := newParser(&cli)
	if err != nil {
		panic(err)
	}
	ctx, err := parser.Parse(nil)
	parser.FatalIfErrorf(err)

	err = ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
