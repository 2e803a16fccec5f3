package browser

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/pkg/errors"
)

// ErrChromeNotFound when neither the configured path nor any known install resolves
var ErrChromeNotFound = errors.New("chrome not found")

// chrome installs tried in order when no path is configured, names without a
// separator are looked up on PATH
var chromeCandidates = map[string][]string{
	"linux": {
		"google-chrome",
		"google-chrome-stable",
		"chromium",
		"chromium-browser",
		"/usr/bin/chromium-browser",
		"/snap/bin/chromium",
	},
	"darwin": {
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
		"/Applications/Chromium.app/Contents/MacOS/Chromium",
	},
	"windows": {
		"C:\\Program Files\\Google\\Chrome\\Application\\chrome.exe",
		"C:\\Program Files (x86)\\Google\\Chrome\\Application\\chrome.exe",
	},
}

// FindChrome resolves chrome, a path or a name on PATH, to the binary to
// launch. Empty chrome takes the first installed candidate for this platform.
func FindChrome(chrome string) (string, error) {
	return findChrome(chrome, chromeCandidates[runtime.GOOS], exec.LookPath)
}

func findChrome(chrome string, candidates []string, lookPath func(string) (string, error)) (string, error) {
	if chrome != "" {
		candidates = []string{chrome}
	}
	for _, candidate := range candidates {
		if filepath.Base(candidate) == candidate {
			if path, err := lookPath(candidate); err == nil {
				return path, nil
			}
			continue
		}
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	if chrome != "" {
		return chrome, errors.Wrap(ErrChromeNotFound, chrome)
	}
	return "", ErrChromeNotFound
}

// ProfileDir holds the temporary profiles of launched browsers
func ProfileDir() string {
	return filepath.Join(os.TempDir(), "seek") + string(filepath.Separator)
}

// FindKill based on OS
func FindKill(browser string) []string {
	switch runtime.GOOS {
	case "windows":
		return []string{"taskkill", "/IM", browser + ".exe"}
	case "darwin", "linux":
		return []string{"killall", browser}
	}
	return []string{""}
}
