package search

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gitlab.com/browserker/seek/browserk"
	"gitlab.com/browserker/seek/browserk/navi"
	"gitlab.com/browserker/seek/retry"
	"gitlab.com/browserker/seek/wait"
)

// ErrNoLocators when MissingAll is given nothing to check
var ErrNoLocators = errors.New("no locators given")

type settings struct {
	timeout  *time.Duration
	interval *time.Duration
	clock    wait.Clock
}

// Option for a search Context
type Option func(*settings)

// WithTimeout overrides the ambient timeout for this context
func WithTimeout(d time.Duration) Option {
	return func(s *settings) {
		s.timeout = &d
	}
}

// WithRetryInterval overrides the ambient retry interval for this context
func WithRetryInterval(d time.Duration) Option {
	return func(s *settings) {
		s.interval = &d
	}
}

// WithClock replaces the system clock
func WithClock(clock wait.Clock) Option {
	return func(s *settings) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// Context wraps a browserk.SearchContext with retrying lookups. Timeout and
// RetryInterval are used by searches whose locator does not set its own.
type Context[T browserk.SearchContext] struct {
	root          T
	clock         wait.Clock
	Timeout       time.Duration
	RetryInterval time.Duration
}

// New search context over root, the timeout and interval not given as options
// are taken from the retry settings of ctx
func New[T browserk.SearchContext](ctx context.Context, root T, opts ...Option) *Context[T] {
	s := &settings{clock: wait.SystemClock}
	for _, opt := range opts {
		opt(s)
	}

	c := &Context[T]{
		root:          root,
		clock:         s.clock,
		Timeout:       retry.Timeout(ctx),
		RetryInterval: retry.Interval(ctx),
	}
	if s.timeout != nil {
		c.Timeout = *s.timeout
	}
	if s.interval != nil {
		c.RetryInterval = *s.interval
	}
	return c
}

// Root the searches run against
func (c *Context[T]) Root() T {
	return c.root
}

// Clock used to measure and wait
func (c *Context[T]) Clock() wait.Clock {
	return c.clock
}

// Until polls condition against the root until it gives a satisfying result
// (see wait.Satisfied) or times out, returning the zero value on timeout. The
// timeout and interval not set in opts come from the context.
func Until[T browserk.SearchContext, R any](ctx context.Context, c *Context[T], condition func(root T) (R, error), opts *retry.Options) (R, error) {
	var empty R
	if condition == nil {
		return empty, errors.New("nil condition")
	}

	if opts == nil {
		opts = retry.NewOptions()
	} else {
		opts = opts.Clone()
	}
	if !opts.IsTimeoutSet() {
		opts.WithTimeout(c.Timeout)
	}
	if !opts.IsIntervalSet() {
		opts.WithInterval(c.RetryInterval)
	}

	w := wait.New(c.root, opts.Timeout(ctx), opts.Interval(ctx), wait.WithClock(c.clock), wait.Ignoring(opts.Ignored...))
	return wait.Until(ctx, w, condition, empty)
}

// effective options of l with the context's own timeout and interval filled in
func (c *Context[T]) effective(l navi.Locator) *navi.SearchOptions {
	opts := navi.OptionsOf(l)
	if !opts.IsTimeoutSet() {
		opts.SetTimeout(c.Timeout)
	}
	if !opts.IsRetryIntervalSet() {
		opts.SetRetryInterval(c.RetryInterval)
	}
	return opts
}

// combined copies o with the timeout and interval MissingAllIn actually waited with
func (c *Context[T]) combined(ctx context.Context, o *navi.SearchOptions, waited *retry.Options) *navi.SearchOptions {
	opts := o.Clone().SetTimeout(c.Timeout).SetRetryInterval(c.RetryInterval)
	if waited.IsTimeoutSet() {
		opts.SetTimeout(waited.Timeout(ctx))
	}
	if waited.IsIntervalSet() {
		opts.SetRetryInterval(waited.Interval(ctx))
	}
	return opts
}

// FindElement waits for the first element l matches. When nothing turns up
// it returns a *browserk.ElementNotFoundErr, or nil for safe locators.
func (c *Context[T]) FindElement(ctx context.Context, l navi.Locator) (browserk.Element, error) {
	opts := c.effective(l)
	visibility := opts.Visibility()
	retryOpts := opts.ToRetryOptions()

	var lastFound []browserk.Element
	var element browserk.Element
	var err error

	start := c.clock.Now()
	if visibility == navi.AnyVisibility {
		retryOpts.Ignoring(browserk.IsNotFound)
		element, err = Until(ctx, c, func(root T) (browserk.Element, error) {
			return FindFirst(ctx, root, l)
		}, retryOpts)
	} else {
		element, err = Until(ctx, c, func(root T) (browserk.Element, error) {
			found, err := FindAll(ctx, root, l)
			if err != nil {
				return nil, err
			}
			lastFound = found
			return firstMatching(ctx, found, visibility)
		}, retryOpts)
	}
	spent := c.clock.Now().Sub(start)

	if err != nil {
		return nil, err
	}

	if element == nil && !opts.IsSafely() {
		log.Ctx(ctx).Debug().Str("by", navi.Describe(l)).Str("spent", retry.ShortInterval(spent)).Msg("element not found")
		return nil, browserk.NewElementNotFoundErr(ctx, &browserk.SearchFailureData{
			Locator:                            l,
			SearchTime:                         &spent,
			SearchOptions:                      opts.Resolve(ctx),
			AlikeElementsWithInverseVisibility: lastFound,
			SearchContext:                      c.root,
		})
	}
	return element, nil
}

// FindElements waits for at least one element l matches, an empty slice is
// returned on timeout
func (c *Context[T]) FindElements(ctx context.Context, l navi.Locator) ([]browserk.Element, error) {
	opts := navi.OptionsOf(l)
	visibility := opts.Visibility()

	elements, err := Until(ctx, c, func(root T) ([]browserk.Element, error) {
		found, err := FindAll(ctx, root, l)
		if err != nil {
			return nil, err
		}
		return filter(ctx, found, visibility)
	}, opts.ToRetryOptions())

	if err != nil {
		return nil, err
	}
	if elements == nil {
		elements = []browserk.Element{}
	}
	return elements, nil
}

// Exists is FindElement != nil, unsafe locators still fail with an error
func (c *Context[T]) Exists(ctx context.Context, l navi.Locator) (bool, error) {
	el, err := c.FindElement(ctx, l)
	if err != nil {
		return false, err
	}
	return el != nil, nil
}

// Missing waits until nothing of the requested visibility matches l. On
// timeout it returns a *browserk.ElementNotMissingErr, or false for safe
// locators.
func (c *Context[T]) Missing(ctx context.Context, l navi.Locator) (bool, error) {
	opts := c.effective(l)
	visibility := opts.Visibility()

	start := c.clock.Now()
	missing, err := Until(ctx, c, func(root T) (bool, error) {
		return isMissing(ctx, root, l, visibility)
	}, opts.ToRetryOptions())
	spent := c.clock.Now().Sub(start)

	if err != nil {
		return false, err
	}

	if !missing && !opts.IsSafely() {
		log.Ctx(ctx).Debug().Str("by", navi.Describe(l)).Str("spent", retry.ShortInterval(spent)).Msg("element not missing")
		return false, browserk.NewElementNotMissingErr(ctx, &browserk.SearchFailureData{
			Locator:       l,
			SearchTime:    &spent,
			SearchOptions: opts.Resolve(ctx),
			SearchContext: c.root,
		})
	}
	return missing, nil
}

// Target pairs a locator with the context it is searched in, a nil Context
// means the root
type Target struct {
	Locator navi.Locator
	Context browserk.SearchContext
}

// MissingAll waits until none of the locators match in the root
func (c *Context[T]) MissingAll(ctx context.Context, locators ...navi.Locator) (bool, error) {
	targets := make([]Target, len(locators))
	for i, l := range locators {
		targets[i] = Target{Locator: l}
	}
	return c.MissingAllIn(ctx, targets)
}

// MissingAllIn waits until none of the targets match. Every poll checks only
// the targets still present, once those are all gone the ones cleared in
// earlier polls are checked again and any that came back are tracked anew.
// The wait uses the largest timeout and smallest interval set on any locator.
func (c *Context[T]) MissingAllIn(ctx context.Context, targets []Target) (bool, error) {
	if len(targets) == 0 {
		return false, ErrNoLocators
	}

	targets = append([]Target(nil), targets...)
	options := make([]*navi.SearchOptions, len(targets))
	retryOpts := retry.NewOptions()
	anyUnsafe := false

	for i := range targets {
		if targets[i].Context == nil {
			targets[i].Context = c.root
		}
		o := navi.OptionsOf(targets[i].Locator)
		options[i] = o
		if !o.IsSafely() {
			anyUnsafe = true
		}
		if o.IsTimeoutSet() && (!retryOpts.IsTimeoutSet() || o.Timeout(ctx) > retryOpts.Timeout(ctx)) {
			retryOpts.WithTimeout(o.Timeout(ctx))
		}
		if o.IsRetryIntervalSet() && (!retryOpts.IsIntervalSet() || o.RetryInterval(ctx) < retryOpts.Interval(ctx)) {
			retryOpts.WithInterval(o.RetryInterval(ctx))
		}
	}

	check := func(i int) (bool, error) {
		return isMissing(ctx, targets[i].Context, targets[i].Locator, options[i].Visibility())
	}

	left := make([]int, len(targets))
	for i := range targets {
		left[i] = i
	}

	start := c.clock.Now()
	missing, err := Until(ctx, c, func(T) (bool, error) {
		checked := make(map[int]bool, len(left))
		present := make([]int, 0, len(left))

		for _, i := range left {
			checked[i] = true
			gone, err := check(i)
			if err != nil {
				return false, err
			}
			if !gone {
				present = append(present, i)
			}
		}
		left = present

		if len(left) > 0 {
			return false, nil
		}

		for i := range targets {
			if checked[i] {
				continue
			}
			gone, err := check(i)
			if err != nil {
				return false, err
			}
			if !gone {
				left = append(left, i)
			}
		}
		return len(left) == 0, nil
	}, retryOpts)
	spent := c.clock.Now().Sub(start)

	if err != nil {
		return false, err
	}

	if !missing && anyUnsafe {
		data := &browserk.SearchFailureData{SearchTime: &spent}
		if len(left) > 0 {
			first := left[0]
			data.Locator = targets[first].Locator
			data.SearchOptions = c.combined(ctx, options[first], retryOpts).Resolve(ctx)
			data.SearchContext = targets[first].Context
		}
		log.Ctx(ctx).Debug().Int("left", len(left)).Str("spent", retry.ShortInterval(spent)).Msg("elements not missing")
		return false, browserk.NewElementNotMissingErr(ctx, data)
	}
	return missing, nil
}
