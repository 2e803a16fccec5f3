package browser

import (
	"io/ioutil"
	"net"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// LeaserService hands out running browsers by debugger port
type LeaserService interface {
	Acquire() (string, error) // returns port number
	Return(port string) error
	Cleanup() (string, error)
	Count() (string, error)
}

var startupFlags = []string{
	"--enable-automation",
	"--test-type",
	"--disable-client-side-phishing-detection",
	"--disable-component-update",
	"--disable-infobars",
	"--disable-sync",
	"--disable-background-networking",
	"--disable-default-apps",
	"--disable-popup-blocking",
	"--disable-extensions",
	"--disable-features=TranslateUI",
	"--disable-gpu",
	"--disable-dev-shm-usage",
	"--no-sandbox",
	"--no-first-run",
	"--window-size=1024,768",
	"--password-store=basic",
	"--headless",
	"about:blank",
}

func randPort() string {
	l, err := net.Listen("tcp", ":0")

	if err != nil {
		log.Warn().Err(err).Msg("unable to get port using default 9022")
		return "9022"
	}
	_, randPort, _ := net.SplitHostPort(l.Addr().String())
	l.Close()
	return randPort
}

func randProfile(tmp string) string {
	if err := os.MkdirAll(tmp, 0700); err != nil {
		log.Warn().Err(err).Str("tmp", tmp).Msg("failed to create profile root")
	}
	profile, err := ioutil.TempDir(tmp, "gcd")
	if profile == "" {
		log.Fatal().Msg("profile returned empty which could delete system files on termination")
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to create temporary profile directory")
		return "tmp"
	}

	return profile
}

// RemoveTmpContents that the browser created
func RemoveTmpContents(tmp string) error {
	if tmp == "" {
		return nil
	}
	files, err := filepath.Glob(filepath.Join(tmp, "gcd*"))
	if err != nil {
		return err
	}
	for _, file := range files {
		err = os.RemoveAll(file)
		if err != nil {
			return err
		}
	}
	return nil
}

// KillOldProcesses of the browser binary we launch
func KillOldProcesses(chrome string) error {
	killer := FindKill(filepath.Base(chrome))
	cmd := exec.Command(killer[0], killer[1:]...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		log.Warn().Msgf("%s %s:%s", chrome, err.Error(), string(output))
	}
	return nil
}
