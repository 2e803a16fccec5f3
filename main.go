package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"gitlab.com/browserker/seek/clicmds"
)

func main() {
	app := cli.NewApp()
	app.Name = "seek"
	app.Version = "0.1"
	app.Usage = "Find elements in a live page, waiting as long as it takes"
	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "log every search attempt",
		},
	}
	app.Before = func(ctx *cli.Context) error {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		if ctx.Bool("debug") {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
		return nil
	}
	app.Commands = []*cli.Command{
		{
			Name:    "find",
			Aliases: []string{"f"},
			Usage:   "find elements",
			Action:  clicmds.Find,
			Flags:   clicmds.FindFlags(),
		},
		{
			Name:    "missing",
			Aliases: []string{"m"},
			Usage:   "wait for an element to go away",
			Action:  clicmds.Missing,
			Flags:   clicmds.MissingFlags(),
		},
		{
			Name:    "journal",
			Aliases: []string{"j"},
			Usage:   "print recorded searches",
			Action:  clicmds.Journal,
			Flags:   clicmds.JournalFlags(),
		},
	}
	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Msg("seek failed")
	}
}
