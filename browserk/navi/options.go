package navi

import (
	"context"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"gitlab.com/browserker/seek/retry"
)

// Visibility an element must have to match
type Visibility int8

const (
	AnyVisibility Visibility = iota
	Visible
	Hidden
)

// VisibilityMap for printing
var VisibilityMap = map[Visibility]string{
	AnyVisibility: "Any",
	Visible:       "Visible",
	Hidden:        "Hidden",
}

// StrToVisibilityMap for parsing user input
var StrToVisibilityMap = map[string]Visibility{
	"any":     AnyVisibility,
	"visible": Visible,
	"hidden":  Hidden,
}

func (v Visibility) String() string {
	if s, ok := VisibilityMap[v]; ok {
		return s
	}
	return "Unknown"
}

// Inverse of Visible is Hidden and the other way around, Any has none
func (v Visibility) Inverse() Visibility {
	switch v {
	case Visible:
		return Hidden
	case Hidden:
		return Visible
	}
	return AnyVisibility
}

// Matches reports whether an element that is (or isn't) displayed fits v
func (v Visibility) Matches(displayed bool) bool {
	switch v {
	case Visible:
		return displayed
	case Hidden:
		return !displayed
	}
	return true
}

var defaultVisibility int32

// DefaultVisibility used when search options do not set one
func DefaultVisibility() Visibility {
	return Visibility(atomic.LoadInt32(&defaultVisibility))
}

// SetDefaultVisibility for every search that does not set one
func SetDefaultVisibility(v Visibility) {
	atomic.StoreInt32(&defaultVisibility, int32(v))
}

// SearchOptions control a single search. Unset fields resolve when read:
// timeout and retry interval from the retry settings of the context,
// visibility from DefaultVisibility and safely to false.
type SearchOptions struct {
	timeout       *time.Duration
	retryInterval *time.Duration
	visibility    *Visibility
	safely        *bool
}

// NewSearchOptions with nothing set
func NewSearchOptions() *SearchOptions {
	return &SearchOptions{}
}

func (o *SearchOptions) SetTimeout(d time.Duration) *SearchOptions {
	o.timeout = &d
	return o
}

func (o *SearchOptions) SetRetryInterval(d time.Duration) *SearchOptions {
	o.retryInterval = &d
	return o
}

func (o *SearchOptions) SetVisibility(v Visibility) *SearchOptions {
	o.visibility = &v
	return o
}

func (o *SearchOptions) SetSafely(safely bool) *SearchOptions {
	o.safely = &safely
	return o
}

func (o *SearchOptions) IsTimeoutSet() bool       { return o.timeout != nil }
func (o *SearchOptions) IsRetryIntervalSet() bool { return o.retryInterval != nil }
func (o *SearchOptions) IsVisibilitySet() bool    { return o.visibility != nil }
func (o *SearchOptions) IsSafelySet() bool        { return o.safely != nil }

// Timeout set or the ambient one from ctx
func (o *SearchOptions) Timeout(ctx context.Context) time.Duration {
	if o.timeout != nil {
		return *o.timeout
	}
	return retry.Timeout(ctx)
}

// RetryInterval set or the ambient one from ctx
func (o *SearchOptions) RetryInterval(ctx context.Context) time.Duration {
	if o.retryInterval != nil {
		return *o.retryInterval
	}
	return retry.Interval(ctx)
}

func (o *SearchOptions) Visibility() Visibility {
	if o.visibility != nil {
		return *o.visibility
	}
	return DefaultVisibility()
}

func (o *SearchOptions) IsSafely() bool {
	if o.safely != nil {
		return *o.safely
	}
	return false
}

// Clone the options, nil clones to empty options
func (o *SearchOptions) Clone() *SearchOptions {
	c := &SearchOptions{}
	if o == nil {
		return c
	}
	c.Merge(o)
	return c
}

// Merge copies the fields set in other onto o
func (o *SearchOptions) Merge(other *SearchOptions) *SearchOptions {
	if other == nil {
		return o
	}
	if other.timeout != nil {
		o.SetTimeout(*other.timeout)
	}
	if other.retryInterval != nil {
		o.SetRetryInterval(*other.retryInterval)
	}
	if other.visibility != nil {
		o.SetVisibility(*other.visibility)
	}
	if other.safely != nil {
		o.SetSafely(*other.safely)
	}
	return o
}

// Resolve returns a clone with every field set from ctx and the defaults
func (o *SearchOptions) Resolve(ctx context.Context) *SearchOptions {
	return NewSearchOptions().
		SetTimeout(o.Timeout(ctx)).
		SetRetryInterval(o.RetryInterval(ctx)).
		SetVisibility(o.Visibility()).
		SetSafely(o.IsSafely())
}

// ToRetryOptions copies only the timeout and interval that are set
func (o *SearchOptions) ToRetryOptions() *retry.Options {
	opts := retry.NewOptions()
	if o.timeout != nil {
		opts.WithTimeout(*o.timeout)
	}
	if o.retryInterval != nil {
		opts.WithInterval(*o.retryInterval)
	}
	return opts
}

// Describe the options as they resolve for ctx
func (o *SearchOptions) Describe(ctx context.Context) string {
	var b strings.Builder
	b.WriteString("{Visibility=")
	b.WriteString(o.Visibility().String())
	b.WriteString(", Timeout=")
	b.WriteString(retry.ShortInterval(o.Timeout(ctx)))
	b.WriteString(", RetryInterval=")
	b.WriteString(retry.ShortInterval(o.RetryInterval(ctx)))
	b.WriteString(", IsSafely=")
	b.WriteString(strconv.FormatBool(o.IsSafely()))
	b.WriteString("}")
	return b.String()
}

func (o *SearchOptions) String() string {
	return o.Describe(context.Background())
}

func SearchSafely(isSafely ...bool) *SearchOptions {
	return NewSearchOptions().SetSafely(len(isSafely) == 0 || isSafely[0])
}

func SearchUnsafely() *SearchOptions {
	return NewSearchOptions().SetSafely(false)
}

func SearchSafelyAtOnce(isSafely ...bool) *SearchOptions {
	return SearchSafely(isSafely...).SetTimeout(0)
}

func SearchUnsafelyAtOnce() *SearchOptions {
	return SearchUnsafely().SetTimeout(0)
}

func SearchOfVisibility(v Visibility) *SearchOptions {
	return NewSearchOptions().SetVisibility(v)
}

func SearchVisible() *SearchOptions {
	return SearchOfVisibility(Visible)
}

func SearchHidden() *SearchOptions {
	return SearchOfVisibility(Hidden)
}

func SearchOfAnyVisibility() *SearchOptions {
	return SearchOfVisibility(AnyVisibility)
}

// SearchWithin timeout, optionally polling every retryInterval
func SearchWithin(timeout time.Duration, retryInterval ...time.Duration) *SearchOptions {
	o := NewSearchOptions().SetTimeout(timeout)
	if len(retryInterval) > 0 {
		o.SetRetryInterval(retryInterval[0])
	}
	return o
}

func SearchSafelyWithin(timeout time.Duration, retryInterval ...time.Duration) *SearchOptions {
	return SearchWithin(timeout, retryInterval...).SetSafely(true)
}

// SearchAtOnce polls a single time
func SearchAtOnce() *SearchOptions {
	return NewSearchOptions().SetTimeout(0)
}
