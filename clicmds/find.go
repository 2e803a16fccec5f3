package clicmds

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"gitlab.com/browserker/seek/browserk"
	"gitlab.com/browserker/seek/browserk/navi"
	"gitlab.com/browserker/seek/search"
)

// Search for l in sc, every match if all is set
func Search(ctx context.Context, sc browserk.SearchContext, l navi.Locator, all bool) ([]browserk.Element, error) {
	c := search.New(ctx, sc)
	if all {
		return c.FindElements(ctx, l)
	}

	el, err := c.FindElement(ctx, l)
	if err != nil || el == nil {
		return []browserk.Element{}, err
	}
	return []browserk.Element{el}, nil
}

// Find loads the page and prints the elements found
func Find(ctx *cli.Context) error {
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	start := time.Now()
	found, err := Search(s.ctx, s.tab, s.locator, ctx.Bool("all"))
	entry := newEntry(s.ctx, "find", s.locator, start, err)
	entry.Found = len(found)
	entry.Result = len(found) > 0
	s.record(entry)

	if err != nil {
		log.Error().Err(err).Str("locator", navi.Describe(s.locator)).Msg("search failed")
		return err
	}
	log.Info().Int("found", len(found)).Dur("elapsed", entry.Elapsed).Msg("search complete")
	printElements(s.ctx, os.Stdout, found)
	return nil
}

func printElements(ctx context.Context, w io.Writer, elements []browserk.Element) {
	if len(elements) == 0 {
		fmt.Fprintf(w, "No elements found\n")
		return
	}
	for i, el := range elements {
		fmt.Fprintf(w, "Element %d:\n%s\n", i+1, browserk.DetailedString(ctx, el))
	}
}
