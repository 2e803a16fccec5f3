package clicmds_test

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/urfave/cli/v2"
	"gitlab.com/browserker/seek/browserk"
	"gitlab.com/browserker/seek/browserk/navi"
	"gitlab.com/browserker/seek/clicmds"
	"gitlab.com/browserker/seek/mock"
	"gitlab.com/browserker/seek/retry"
	"gitlab.com/browserker/seek/store"
)

// testRun runs action as the find command with args
func testRun(t *testing.T, action cli.ActionFunc, args ...string) {
	app := cli.NewApp()
	app.Commands = []*cli.Command{
		{
			Name:    "find",
			Aliases: []string{"f"},
			Usage:   "find elements",
			Action:  action,
			Flags:   clicmds.FindFlags(),
		},
	}
	if err := app.Run(append([]string{"app", "f"}, args...)); err != nil {
		t.Fatalf("err: %s\n", err)
	}
}

func TestLoadConfig(t *testing.T) {
	var cfg *browserk.Config
	testRun(t, func(ctx *cli.Context) error {
		var err error
		cfg, err = clicmds.LoadConfig(ctx)
		return err
	}, "--config", "testdata/seek.toml", "--url", "http://example.com")

	spew.Dump(cfg)
	if cfg.URL != "http://example.com" {
		t.Fatalf("flag should override the config url got %s\n", cfg.URL)
	}
	if cfg.DataPath != "testdata/tmp" {
		t.Fatalf("expected config datadir got %s\n", cfg.DataPath)
	}
	if cfg.Search == nil || cfg.Search.Timeout != "2s" || !cfg.Search.Safely {
		t.Fatalf("search section not decoded %#v\n", cfg.Search)
	}
	nav, err := cfg.NavigationTimeout()
	if err != nil || nav != 10*time.Second {
		t.Fatalf("expected 10s navigation timeout got %s %v\n", nav, err)
	}
}

func TestApplyDefaults(t *testing.T) {
	defer navi.SetDefaultVisibility(navi.AnyVisibility)

	cfg := &browserk.Config{Search: &browserk.SearchConfig{Timeout: "2s", Interval: "100ms", Visibility: "visible"}}
	ctx, err := clicmds.ApplyDefaults(context.Background(), cfg)
	if err != nil {
		t.Fatalf("error applying defaults: %s\n", err)
	}
	if retry.Timeout(ctx) != 2*time.Second || retry.Interval(ctx) != 100*time.Millisecond {
		t.Fatalf("expected ambient 2s/100ms got %s/%s\n", retry.Timeout(ctx), retry.Interval(ctx))
	}
	if navi.DefaultVisibility() != navi.Visible {
		t.Fatalf("expected default visibility to be visible")
	}
	if retry.Timeout(context.Background()) != retry.DefaultTimeout {
		t.Fatalf("parent context should keep the defaults")
	}
}

func TestLocatorFromFlags(t *testing.T) {
	var l *navi.Extended
	testRun(t, func(ctx *cli.Context) error {
		var err error
		l, err = clicmds.LocatorFromFlags(ctx, &browserk.Config{})
		return err
	}, "--by", "id", "--query", "menu-{0}", "--query", "item-{1}", "--arg", "top", "--arg", "3",
		"--visibility", "hidden", "--timeout", "2s", "--interval", "50ms", "--kind", "link", "--name", "Login", "--safely")

	if desc := navi.Describe(l); desc != `chain [id "menu-top", id "item-3"]` {
		t.Fatalf("unexpected locator %s\n", desc)
	}
	if l.NameWithKind() != `"Login" link` {
		t.Fatalf("unexpected name %s\n", l.NameWithKind())
	}
	opts := l.Options()
	if opts.String() != "{Visibility=Hidden, Timeout=2s, RetryInterval=0.05s, IsSafely=true}" {
		t.Fatalf("unexpected options %s\n", opts)
	}
}

func TestLocatorFromFlagsErrors(t *testing.T) {
	var inputs = [][]string{
		{"--by", "sideways", "--query", "x"},
		{"--by", "css"},
		{"--query", "x", "--visibility", "sometimes"},
		{"--query", "{0", "--arg", "a"},
	}
	for _, args := range inputs {
		var err error
		testRun(t, func(ctx *cli.Context) error {
			_, err = clicmds.LocatorFromFlags(ctx, &browserk.Config{})
			return nil
		}, args...)
		if err == nil {
			t.Fatalf("expected error for %v\n", args)
		}
	}
}

func TestSearch(t *testing.T) {
	ctx := retry.SetTimeout(context.Background(), 0)
	links := mock.MakeElements("link", true, 3)
	root := mock.MakeContext().Set(navi.ByTagName("a"), links...)

	found, err := clicmds.Search(ctx, root, navi.ByTagName("a"), true)
	if err != nil || len(found) != 3 {
		t.Fatalf("expected 3 links got %d %v\n", len(found), err)
	}

	found, err = clicmds.Search(ctx, root, navi.ByTagName("a"), false)
	if err != nil || len(found) != 1 || found[0].ID() != "link-0" {
		t.Fatalf("expected first link got %v %v\n", found, err)
	}

	found, err = clicmds.Search(ctx, root, navi.Extend(navi.ByID("nope")).Safely(), false)
	if err != nil || len(found) != 0 {
		t.Fatalf("expected nothing safely got %v %v\n", found, err)
	}

	_, err = clicmds.Search(ctx, root, navi.ByID("nope"), false)
	if !browserk.IsNotFound(err) {
		t.Fatalf("expected not found got %v\n", err)
	}
}

func TestAbsent(t *testing.T) {
	ctx := retry.SetTimeout(context.Background(), 0)
	root := mock.MakeContext().Set(navi.ByID("spinner"), mock.MakeElement("spinner", true))

	missing, err := clicmds.Absent(ctx, root, navi.ByID("gone"))
	if err != nil || !missing {
		t.Fatalf("expected missing %v %v\n", missing, err)
	}

	_, err = clicmds.Absent(ctx, root, navi.ByID("spinner"))
	if !browserk.IsNotMissing(err) {
		t.Fatalf("expected not missing got %v\n", err)
	}
}

func TestJournal(t *testing.T) {
	path := "testdata/journal"
	os.RemoveAll(path)
	defer os.RemoveAll(path)

	j := store.NewJournal(path + "/journal")
	if err := j.Init(); err != nil {
		t.Fatalf("error init journal: %s\n", err)
	}
	if err := j.Record(&store.Entry{Command: "find", Locator: `id "login"`, Found: 1}); err != nil {
		t.Fatalf("error recording: %s\n", err)
	}
	if err := j.Close(); err != nil {
		t.Fatalf("error closing: %s\n", err)
	}

	app := cli.NewApp()
	app.Commands = []*cli.Command{
		{
			Name:   "journal",
			Action: clicmds.Journal,
			Flags:  clicmds.JournalFlags(),
		},
	}
	if err := app.Run([]string{"app", "journal", "--datadir", path}); err != nil {
		t.Fatalf("err: %s\n", err)
	}
}

func TestPrintEntries(t *testing.T) {
	var buf bytes.Buffer
	clicmds.PrintEntries(&buf, []*store.Entry{
		{Command: "find", Locator: `id "a"`, Found: 2, Elapsed: 1500 * time.Millisecond},
		{Command: "missing", Locator: `id "b"`, Result: true},
		{Command: "find", Locator: `id "c"`, Error: "Unable to locate element."},
	})
	out := buf.String()
	for _, want := range []string{"Had 3 entries", `id "a" in 1.5s found=2`, "missing=true", "failed\nUnable to locate element."} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in\n%s", want, out)
		}
	}
}
