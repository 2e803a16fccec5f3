package browser

import (
	"strconv"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/wirepair/gcd"
)

// LocalLeaser starts browser processes on this host
type LocalLeaser struct {
	browserLock sync.RWMutex
	browsers    map[string]*gcd.Gcd
	chrome      string
	tmp         string
	flags       []string
}

// NewLocalLeaser using chrome, a path or a name on PATH, or the first
// platform install found when empty
func NewLocalLeaser(chrome string, headless bool) *LocalLeaser {
	resolved, err := FindChrome(chrome)
	if err != nil {
		log.Warn().Err(err).Msg("chrome not resolved, acquire will fail")
	}
	s := &LocalLeaser{
		browsers: make(map[string]*gcd.Gcd),
		chrome:   resolved,
		tmp:      ProfileDir(),
	}
	for _, flag := range startupFlags {
		if flag == "--headless" && !headless {
			continue
		}
		s.flags = append(s.flags, flag)
	}
	return s
}

// Acquire a new browser process and return its debugger port
func (s *LocalLeaser) Acquire() (string, error) {
	if s.chrome == "" {
		return "", ErrChromeNotFound
	}
	b := gcd.NewChromeDebugger()
	b.DeleteProfileOnExit()

	profileDir := randProfile(s.tmp)
	port := randPort()

	b.AddFlags(s.flags)
	if err := b.StartProcess(s.chrome, profileDir, port); err != nil {
		return "", errors.Wrap(err, "starting "+s.chrome)
	}
	s.browserLock.Lock()
	s.browsers[port] = b
	s.browserLock.Unlock()

	return port, nil
}

// Count of running browsers
func (s *LocalLeaser) Count() (string, error) {
	s.browserLock.RLock()
	count := len(s.browsers)
	s.browserLock.RUnlock()
	return strconv.Itoa(count), nil
}

// Return (and kill) the browser on port
func (s *LocalLeaser) Return(port string) error {
	s.browserLock.Lock()
	defer s.browserLock.Unlock()

	if b, ok := s.browsers[port]; ok {
		if err := b.ExitProcess(); err != nil {
			return err
		}
		delete(s.browsers, port)
		return nil
	}

	return errors.New("not found")
}

// Cleanup every browser we started and their profiles
func (s *LocalLeaser) Cleanup() (string, error) {
	s.browserLock.Lock()
	for port, b := range s.browsers {
		if err := b.ExitProcess(); err != nil {
			_ = KillOldProcesses(s.chrome)
		}
		delete(s.browsers, port)
	}
	s.browserLock.Unlock()

	if err := RemoveTmpContents(s.tmp); err != nil {
		return "", err
	}
	return "ok", nil
}
