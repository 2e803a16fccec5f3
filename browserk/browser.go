package browserk

import (
	"context"
	"sync/atomic"

	"gitlab.com/browserker/seek/browserk/navi"
)

// SearchContext is anything elements can be looked up in, a page or an element
type SearchContext interface {
	// FindElements matching s, an empty slice when there are none
	FindElements(ctx context.Context, s *navi.Selector) ([]Element, error)
}

// SingleFinder is implemented by contexts with a cheaper way to get the
// first match. It returns a *NoSuchElementErr when there is none.
type SingleFinder interface {
	FindElement(ctx context.Context, s *navi.Selector) (Element, error)
}

// Element found in a SearchContext
type Element interface {
	SearchContext
	// ID of the element, stable for the life of the handle
	ID() string
	// Displayed is evaluated against the live element on every call
	Displayed(ctx context.Context) (bool, error)
}

// Detailer is implemented by elements that can describe themselves in
// failure messages
type Detailer interface {
	Details(ctx context.Context) (*ElementDetails, error)
}

// ElementDetails for failure messages
type ElementDetails struct {
	Tag    string
	X      int
	Y      int
	Width  int
	Height int
	Text   string
}

// Browser is a page we can navigate and search
type Browser interface {
	SearchContext
	ID() int64
	Navigate(ctx context.Context, url string) error
	Close()
}

var browserCounter int64

// GetBrowserID a global browser ID
func GetBrowserID() int64 {
	return atomic.AddInt64(&browserCounter, 1)
}
