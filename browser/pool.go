package browser

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/wirepair/gcd"
)

// ErrBrowserClosing when the pool is shutting down
var ErrBrowserClosing = errors.New("unable to load, as closing down")

// Pool leases browsers and hands out their first tab
type Pool struct {
	leaser         LeaserService
	browserTimeout time.Duration
	acquired       int32
	closing        int32
}

// NewPool on top of leaser
func NewPool(leaser LeaserService) *Pool {
	return &Pool{
		leaser:         leaser,
		browserTimeout: 45 * time.Second,
	}
}

// SetAPITimeout tells gcd how long to wait for a response from the browser for all API calls
func (p *Pool) SetAPITimeout(duration time.Duration) {
	p.browserTimeout = duration
}

// Take a new browser and return its first tab
func (p *Pool) Take(ctx context.Context) (*Tab, error) {
	if atomic.LoadInt32(&p.closing) == 1 {
		return nil, ErrBrowserClosing
	}

	port, err := p.leaser.Acquire()
	if err != nil {
		return nil, errors.Wrap(err, "acquire browser")
	}

	b := gcd.NewChromeDebugger()
	b.SetTimeout(p.browserTimeout)
	if err := b.ConnectToInstance("localhost", port); err != nil {
		p.returnPort(ctx, port)
		return nil, errors.Wrap(err, "connect to instance")
	}

	target, err := b.GetFirstTab()
	if err != nil {
		p.returnPort(ctx, port)
		return nil, errors.Wrap(err, "first tab")
	}

	tab := NewTab(ctx, b, target)
	tab.port = port

	log.Ctx(ctx).Info().Int32("acquired", atomic.AddInt32(&p.acquired, 1)).Str("port", port).Msg("acquired browser")
	return tab, nil
}

// Return a tab's browser for destruction
func (p *Pool) Return(ctx context.Context, tab *Tab) {
	tab.Close()
	atomic.AddInt32(&p.acquired, -1)
	p.returnPort(ctx, tab.Port())
}

func (p *Pool) returnPort(ctx context.Context, port string) {
	if err := p.leaser.Return(port); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("port", port).Msg("failed to return browser")
	}
}

// Close all browsers
func (p *Pool) Close(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&p.closing, 0, 1) {
		return nil
	}
	_, err := p.leaser.Cleanup()
	return err
}
