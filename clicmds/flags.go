package clicmds

import (
	"github.com/urfave/cli/v2"
)

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "toml config to use",
			Value: "",
		},
		&cli.StringFlag{
			Name:  "datadir",
			Usage: "data directory for the journal",
			Value: "seektmp",
		},
	}
}

func searchFlags() []cli.Flag {
	return append(commonFlags(),
		&cli.StringFlag{
			Name:  "url",
			Usage: "page to search",
			Value: "",
		},
		&cli.StringFlag{
			Name:  "by",
			Usage: "id, name, class, css, xpath, tag, link or partiallink",
			Value: "css",
		},
		&cli.StringSliceFlag{
			Name:  "query",
			Usage: "query to run, repeat to search within the previous result",
		},
		&cli.StringSliceFlag{
			Name:  "arg",
			Usage: "values for {0}, {1}... placeholders in the queries",
		},
		&cli.StringFlag{
			Name:  "name",
			Usage: "element name used in messages",
		},
		&cli.StringFlag{
			Name:  "kind",
			Usage: "element kind used in messages",
		},
		&cli.StringFlag{
			Name:  "visibility",
			Usage: "any, visible or hidden",
		},
		&cli.BoolFlag{
			Name:  "safely",
			Usage: "report nothing found instead of failing",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "how long to keep searching",
		},
		&cli.DurationFlag{
			Name:  "interval",
			Usage: "time between attempts",
		},
		&cli.StringFlag{
			Name:  "chrome",
			Usage: "path to chrome",
		},
		&cli.BoolFlag{
			Name:  "show",
			Usage: "run chrome with a window",
		},
	)
}

// FindFlags for the find command
func FindFlags() []cli.Flag {
	return append(searchFlags(),
		&cli.BoolFlag{
			Name:  "all",
			Usage: "return every matching element",
		},
	)
}

// MissingFlags for the missing command
func MissingFlags() []cli.Flag {
	return searchFlags()
}

// JournalFlags for the journal command
func JournalFlags() []cli.Flag {
	return append(commonFlags(),
		&cli.IntFlag{
			Name:  "limit",
			Usage: "only print the most recent entries",
			Value: 0,
		},
	)
}
