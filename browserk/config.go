package browserk

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"gitlab.com/browserker/seek/browserk/navi"
)

// Config for seek, usually decoded from a toml file
type Config struct {
	URL         string
	DataPath    string
	Chrome      string // path to the chrome binary, platform default if empty
	ShowBrowser bool   // run chrome with a window
	Navigation  string // navigation timeout, "30s"
	Search      *SearchConfig
}

// SearchConfig are the defaults applied to every search
type SearchConfig struct {
	Timeout    string // "5s"
	Interval   string // "200ms"
	Visibility string // any, visible or hidden
	Safely     bool
}

// NavigationTimeout parsed, 0 if unset
func (c *Config) NavigationTimeout() (time.Duration, error) {
	if c.Navigation == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Navigation)
	return d, errors.Wrap(err, "navigation timeout")
}

// SearchOptions built from the search section, unset fields stay unset
func (c *Config) SearchOptions() (*navi.SearchOptions, error) {
	opts := navi.NewSearchOptions()
	if c.Search == nil {
		return opts, nil
	}

	if c.Search.Timeout != "" {
		d, err := time.ParseDuration(c.Search.Timeout)
		if err != nil {
			return nil, errors.Wrap(err, "search timeout")
		}
		opts.SetTimeout(d)
	}
	if c.Search.Interval != "" {
		d, err := time.ParseDuration(c.Search.Interval)
		if err != nil {
			return nil, errors.Wrap(err, "search interval")
		}
		opts.SetRetryInterval(d)
	}
	if c.Search.Visibility != "" {
		v, ok := navi.StrToVisibilityMap[strings.ToLower(c.Search.Visibility)]
		if !ok {
			return nil, errors.Errorf("unknown visibility %q", c.Search.Visibility)
		}
		opts.SetVisibility(v)
	}
	if c.Search.Safely {
		opts.SetSafely(true)
	}
	return opts, nil
}
