package browser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
)

func TestFindChromeCandidates(t *testing.T) {
	looked := make([]string, 0)
	lookPath := func(name string) (string, error) {
		looked = append(looked, name)
		if name == "chromium" {
			return "/opt/bin/chromium", nil
		}
		return "", errors.New("not on path")
	}

	path, err := findChrome("", []string{"google-chrome", "chromium", "chromium-browser"}, lookPath)
	if err != nil {
		t.Fatalf("error finding chrome: %s\n", err)
	}
	if path != "/opt/bin/chromium" {
		t.Fatalf("expected the first installed candidate got %s", path)
	}
	if len(looked) != 2 {
		t.Fatalf("expected lookup to stop at the first hit: %v", looked)
	}
}

func TestFindChromeConfiguredPath(t *testing.T) {
	bin := filepath.Join(t.TempDir(), "my-chrome")
	if err := os.WriteFile(bin, []byte{}, 0700); err != nil {
		t.Fatalf("error writing binary: %s\n", err)
	}
	never := func(string) (string, error) { return "", errors.New("not on path") }

	path, err := findChrome(bin, []string{"google-chrome"}, never)
	if err != nil || path != bin {
		t.Fatalf("expected configured path %s got %s %v", bin, path, err)
	}

	missing := filepath.Join(t.TempDir(), "nope")
	path, err = findChrome(missing, []string{"google-chrome"}, func(string) (string, error) { return "/usr/bin/google-chrome", nil })
	if errors.Cause(err) != ErrChromeNotFound {
		t.Fatalf("expected ErrChromeNotFound got %v", err)
	}
	if path != missing {
		t.Fatalf("configured path should not fall back to candidates got %s", path)
	}

	if _, err := findChrome("", []string{"google-chrome"}, never); err != ErrChromeNotFound {
		t.Fatalf("expected ErrChromeNotFound got %v", err)
	}
}

func TestProfileDir(t *testing.T) {
	if dir := ProfileDir(); filepath.Base(filepath.Clean(dir)) != "seek" {
		t.Fatalf("expected profiles under a seek dir got %s", dir)
	}
}
