package clicmds

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"gitlab.com/browserker/seek/browserk"
	"gitlab.com/browserker/seek/browserk/navi"
	"gitlab.com/browserker/seek/search"
)

// Absent waits for l to be missing from sc
func Absent(ctx context.Context, sc browserk.SearchContext, l navi.Locator) (bool, error) {
	return search.New(ctx, sc).Missing(ctx, l)
}

// Missing loads the page and waits for the element to go away
func Missing(ctx *cli.Context) error {
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	start := time.Now()
	missing, err := Absent(s.ctx, s.tab, s.locator)
	entry := newEntry(s.ctx, "missing", s.locator, start, err)
	entry.Result = missing
	s.record(entry)

	if err != nil {
		log.Error().Err(err).Str("locator", navi.Describe(s.locator)).Msg("element still present")
		return err
	}
	if missing {
		fmt.Printf("%s is missing\n", navi.Describe(s.locator))
	} else {
		fmt.Printf("%s is present\n", navi.Describe(s.locator))
	}
	return nil
}
