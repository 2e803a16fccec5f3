package clicmds

import (
	"context"
	"io/ioutil"
	"strings"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gitlab.com/browserker/seek/browserk"
	"gitlab.com/browserker/seek/browserk/navi"
	"gitlab.com/browserker/seek/retry"
)

// LoadConfig from --config, with flags taking precedence
func LoadConfig(ctx *cli.Context) (*browserk.Config, error) {
	cfg := &browserk.Config{}

	if ctx.String("config") != "" {
		data, err := ioutil.ReadFile(ctx.String("config"))
		if err != nil {
			return nil, err
		}

		if err := toml.NewDecoder(strings.NewReader(string(data))).Decode(cfg); err != nil {
			return nil, errors.Wrap(err, "decode config")
		}
	}

	if ctx.IsSet("url") || cfg.URL == "" {
		cfg.URL = ctx.String("url")
	}
	if ctx.IsSet("datadir") || cfg.DataPath == "" {
		cfg.DataPath = ctx.String("datadir")
	}
	if ctx.IsSet("chrome") {
		cfg.Chrome = ctx.String("chrome")
	}
	if ctx.Bool("show") {
		cfg.ShowBrowser = true
	}
	return cfg, nil
}

// ApplyDefaults from the config to the retry settings of parent and the
// default visibility
func ApplyDefaults(parent context.Context, cfg *browserk.Config) (context.Context, error) {
	opts, err := cfg.SearchOptions()
	if err != nil {
		return parent, err
	}

	ctx := parent
	if opts.IsTimeoutSet() {
		ctx = retry.SetTimeout(ctx, opts.Timeout(ctx))
	}
	if opts.IsRetryIntervalSet() {
		ctx = retry.SetInterval(ctx, opts.RetryInterval(ctx))
	}
	if opts.IsVisibilitySet() {
		navi.SetDefaultVisibility(opts.Visibility())
	}
	return ctx, nil
}

// LocatorFromFlags builds the locator and its options from the search flags
func LocatorFromFlags(ctx *cli.Context, cfg *browserk.Config) (*navi.Extended, error) {
	by, ok := navi.StrToByMap[strings.ToLower(ctx.String("by"))]
	if !ok {
		return nil, errors.Errorf("unknown selector kind %q", ctx.String("by"))
	}

	queries := ctx.StringSlice("query")
	if len(queries) == 0 {
		return nil, errors.New("at least one --query is required")
	}

	var l navi.Locator = &navi.Selector{By: by, Query: queries[0]}
	for _, q := range queries[1:] {
		l = navi.Then(l, &navi.Selector{By: by, Query: q})
	}

	if args := ctx.StringSlice("arg"); len(args) > 0 {
		values := make([]interface{}, len(args))
		for i, arg := range args {
			values[i] = arg
		}
		formatted, err := navi.FormatWith(l, values...)
		if err != nil {
			return nil, err
		}
		l = formatted
	}

	ext := navi.Extend(l)
	if cfg.Search != nil && cfg.Search.Safely {
		ext = ext.Safely()
	}
	if ctx.IsSet("safely") {
		ext = ext.Safely(ctx.Bool("safely"))
	}
	if ctx.IsSet("visibility") {
		v, ok := navi.StrToVisibilityMap[strings.ToLower(ctx.String("visibility"))]
		if !ok {
			return nil, errors.Errorf("unknown visibility %q", ctx.String("visibility"))
		}
		ext = ext.WithVisibility(v)
	}
	if ctx.IsSet("timeout") {
		ext = ext.Within(ctx.Duration("timeout"))
	}
	if ctx.IsSet("interval") {
		ext = ext.WithRetryInterval(ctx.Duration("interval"))
	}
	if ctx.String("kind") != "" {
		ext = ext.OfKind(ctx.String("kind"))
	}
	if ctx.String("name") != "" {
		ext = ext.Named(ctx.String("name"))
	}
	return ext, nil
}
