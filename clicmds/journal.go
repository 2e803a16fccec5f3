package clicmds

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"gitlab.com/browserker/seek/retry"
	"gitlab.com/browserker/seek/store"
)

// Journal prints the recorded searches
func Journal(ctx *cli.Context) error {
	cfg, err := LoadConfig(ctx)
	if err != nil {
		return err
	}

	journal := store.NewJournal(cfg.DataPath + "/journal")
	if err := journal.Init(); err != nil {
		log.Error().Err(err).Msg("failed to init journal for viewing")
		return err
	}
	defer journal.Close()

	entries, err := journal.Entries(ctx.Int("limit"))
	if err != nil {
		return err
	}
	PrintEntries(os.Stdout, entries)
	return nil
}

// PrintEntries one per line, with the error of failed searches
func PrintEntries(w io.Writer, entries []*store.Entry) {
	fmt.Fprintf(w, "Had %d entries\n", len(entries))
	for _, entry := range entries {
		fmt.Fprintf(w, "%s %s %s %s %s in %s", entry.Time.Format("2006-01-02 15:04:05"), entry.UUID(), entry.Command, entry.URL, entry.Locator, retry.ShortInterval(entry.Elapsed))
		switch {
		case entry.Error != "":
			fmt.Fprintf(w, " failed\n%s\n", entry.Error)
		case entry.Command == "missing":
			fmt.Fprintf(w, " missing=%v\n", entry.Result)
		default:
			fmt.Fprintf(w, " found=%d\n", entry.Found)
		}
	}
}
