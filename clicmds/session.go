package clicmds

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"gitlab.com/browserker/seek/browser"
	"gitlab.com/browserker/seek/browserk"
	"gitlab.com/browserker/seek/browserk/navi"
	"gitlab.com/browserker/seek/store"
)

// session is a loaded page plus the journal its searches are recorded in
type session struct {
	ctx     context.Context
	cancel  context.CancelFunc
	cfg     *browserk.Config
	pool    *browser.Pool
	tab     *browser.Tab
	journal *store.Journal
	locator *navi.Extended
}

func openSession(cliCtx *cli.Context) (*session, error) {
	cfg, err := LoadConfig(cliCtx)
	if err != nil {
		return nil, err
	}
	if cfg.URL == "" {
		return nil, cli.Exit("a --url to search is required", 2)
	}

	locator, err := LocatorFromFlags(cliCtx, cfg)
	if err != nil {
		return nil, cli.Exit(err.Error(), 2)
	}

	ctx, err := ApplyDefaults(log.Logger.WithContext(context.Background()), cfg)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(ctx)

	s := &session{ctx: ctx, cancel: cancel, cfg: cfg, locator: locator}

	s.journal = store.NewJournal(cfg.DataPath + "/journal")
	if err := s.journal.Init(); err != nil {
		log.Error().Err(err).Msg("failed to init journal")
		s.close()
		return nil, err
	}

	s.pool = browser.NewPool(browser.NewLocalLeaser(cfg.Chrome, !cfg.ShowBrowser))
	if s.tab, err = s.pool.Take(ctx); err != nil {
		log.Error().Err(err).Msg("failed to start browser")
		s.close()
		return nil, err
	}
	navTimeout, err := cfg.NavigationTimeout()
	if err != nil {
		s.close()
		return nil, err
	}
	if navTimeout > 0 {
		s.tab.SetNavigationTimeout(navTimeout)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-c:
			log.Info().Msg("Ctrl-C Pressed, shutting down")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(c)
	}()

	log.Info().Str("url", cfg.URL).Msg("loading page")
	if err := s.tab.Navigate(ctx, cfg.URL); err != nil {
		s.close()
		return nil, err
	}
	return s, nil
}

func (s *session) record(entry *store.Entry) {
	entry.URL = s.cfg.URL
	if err := s.journal.Record(entry); err != nil {
		log.Error().Err(err).Msg("failed to record search")
	}
}

func (s *session) close() {
	s.cancel()
	if s.tab != nil {
		s.pool.Return(s.ctx, s.tab)
	}
	if s.pool != nil {
		if err := s.pool.Close(s.ctx); err != nil {
			log.Warn().Err(err).Msg("failed to clean up browsers")
		}
	}
	if s.journal != nil {
		log.Info().Msg("Closing journal & syncing, please wait")
		if err := s.journal.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close journal")
		}
	}
}

func newEntry(ctx context.Context, command string, l navi.Locator, start time.Time, err error) *store.Entry {
	entry := &store.Entry{
		Time:    start,
		Command: command,
		Locator: navi.Describe(l),
		Options: navi.OptionsOf(l).Describe(ctx),
		Elapsed: time.Since(start),
	}
	if err != nil {
		entry.Error = err.Error()
	}
	return entry
}
