package browser

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/wirepair/gcd"
	"github.com/wirepair/gcd/gcdapi"
	"gitlab.com/browserker/seek/browserk"
	"gitlab.com/browserker/seek/browserk/navi"
)

// Tab is a chromium browser tab elements are searched in
type Tab struct {
	g                 *gcd.Gcd
	t                 *gcd.ChromeTarget
	id                int64
	port              string
	topNodeID         atomic.Value  // the nodeID of the current top level #document, 0 when unknown
	isNavigatingFlag  atomic.Value  // are we currently navigating (between Page.Navigate -> page.loadEventFired)
	navigationCh      chan struct{} // for receiving navigation complete messages while isNavigating is true
	exitCh            chan struct{} // for when we close the tab, kill go routines
	closeOnce         sync.Once
	navigationTimeout time.Duration // amount of time to wait before failing navigation
}

// NewTab to use
func NewTab(ctx context.Context, gcdBrowser *gcd.Gcd, tab *gcd.ChromeTarget) *Tab {
	t := &Tab{
		g:                 gcdBrowser,
		t:                 tab,
		id:                browserk.GetBrowserID(),
		navigationCh:      make(chan struct{}, 1),
		exitCh:            make(chan struct{}),
		navigationTimeout: 30 * time.Second,
	}
	if gcdBrowser != nil {
		t.port = gcdBrowser.Port()
	}
	t.topNodeID.Store(0)
	t.isNavigatingFlag.Store(false)
	t.subscribeBrowserEvents(ctx)
	return t
}

func (t *Tab) subscribeBrowserEvents(ctx context.Context) {
	t.t.DOM.Enable()
	t.t.Page.Enable()

	t.t.Subscribe("Page.loadEventFired", func(target *gcd.ChromeTarget, payload []byte) {
		if !t.IsNavigating() {
			return
		}
		select {
		case t.navigationCh <- struct{}{}:
		case <-t.exitCh:
		default:
		}
	})

	// node ids are no longer valid
	t.t.Subscribe("DOM.documentUpdated", func(target *gcd.ChromeTarget, payload []byte) {
		log.Ctx(ctx).Debug().Int64("tab", t.id).Msg("document updated")
		t.topNodeID.Store(0)
	})
}

// SetNavigationTimeout for Navigate
func (t *Tab) SetNavigationTimeout(timeout time.Duration) {
	t.navigationTimeout = timeout
}

// ID of this browser (tab)
func (t *Tab) ID() int64 {
	return t.id
}

// Port of the debugger this tab belongs to
func (t *Tab) Port() string {
	return t.port
}

// IsNavigating answers if we are currently navigating
func (t *Tab) IsNavigating() bool {
	if flag, ok := t.isNavigatingFlag.Load().(bool); ok {
		return flag
	}
	return false
}

// Close the exit channel
func (t *Tab) Close() {
	t.closeOnce.Do(func() {
		close(t.exitCh)
	})
}

// Navigate to url and wait for the load event
func (t *Tab) Navigate(ctx context.Context, url string) error {
	select {
	case <-t.exitCh:
		return ErrTabClosing
	case <-t.navigationCh:
	default:
	}

	t.isNavigatingFlag.Store(true)
	defer t.isNavigatingFlag.Store(false)
	t.topNodeID.Store(0)

	navParams := &gcdapi.PageNavigateParams{Url: url, TransitionType: "typed"}
	_, _, errText, err := t.t.Page.NavigateWithParams(navParams)
	if err != nil {
		return err
	}

	if errText != "" {
		return errors.Wrap(ErrNavigating, errText)
	}

	navTimer := time.NewTimer(t.navigationTimeout)
	defer navTimer.Stop()

	select {
	case <-navTimer.C:
		return ErrNavigationTimedOut
	case <-ctx.Done():
		return ctx.Err()
	case <-t.exitCh:
		return ErrTabClosing
	case <-t.navigationCh:
	}
	log.Ctx(ctx).Info().Str("url", url).Int64("tab", t.id).Msg("navigation complete")
	return nil
}

// document node id, requested once per loaded document since
// DOM.getDocument invalidates every node id handed out before it
func (t *Tab) document() (int, error) {
	if id, ok := t.topNodeID.Load().(int); ok && id != 0 {
		return id, nil
	}
	doc, err := t.t.DOM.GetDocument(-1, false)
	if err != nil {
		return 0, mapErr(err, "get document")
	}
	if doc == nil || doc.NodeId == 0 {
		return 0, ErrNoDocument
	}
	t.topNodeID.Store(doc.NodeId)
	return doc.NodeId, nil
}

// FindElements matching s anywhere in the current document
func (t *Tab) FindElements(ctx context.Context, s *navi.Selector) ([]browserk.Element, error) {
	docID, err := t.document()
	if err != nil {
		return nil, err
	}
	return t.find(ctx, docID, s, true)
}

// FindElement returns the first match of s in the current document
func (t *Tab) FindElement(ctx context.Context, s *navi.Selector) (browserk.Element, error) {
	docID, err := t.document()
	if err != nil {
		return nil, err
	}
	return t.findOne(ctx, docID, s, true)
}

func (t *Tab) find(ctx context.Context, nodeID int, s *navi.Selector, isDocument bool) ([]browserk.Element, error) {
	select {
	case <-t.exitCh:
		return nil, ErrTabClosing
	default:
	}

	q, err := Translate(s)
	if err != nil {
		return nil, err
	}

	var nodeIDs []int
	if q.Search {
		if !isDocument {
			return nil, &UnsupportedSelectorErr{Selector: s, Message: "only supported from the document"}
		}
		nodeIDs, err = t.search(q.Value)
	} else {
		nodeIDs, err = t.t.DOM.QuerySelectorAll(nodeID, q.Value)
		err = mapErr(err, s.String())
	}
	if err != nil {
		return nil, err
	}

	log.Ctx(ctx).Debug().Int64("tab", t.id).Str("query", q.Value).Int("found", len(nodeIDs)).Msg("find")
	elements := make([]browserk.Element, 0, len(nodeIDs))
	for _, id := range nodeIDs {
		if id == 0 {
			continue
		}
		elements = append(elements, newElement(t, id))
	}
	return elements, nil
}

func (t *Tab) findOne(ctx context.Context, nodeID int, s *navi.Selector, isDocument bool) (browserk.Element, error) {
	q, err := Translate(s)
	if err != nil {
		return nil, err
	}
	if q.Search {
		elements, err := t.find(ctx, nodeID, s, isDocument)
		if err != nil {
			return nil, err
		}
		if len(elements) == 0 {
			return nil, &browserk.NoSuchElementErr{Message: s.String()}
		}
		return elements[0], nil
	}

	found, err := t.t.DOM.QuerySelector(nodeID, q.Value)
	if err != nil {
		return nil, mapErr(err, s.String())
	}
	if found == 0 {
		return nil, &browserk.NoSuchElementErr{Message: s.String()}
	}
	return newElement(t, found), nil
}

// search runs an XPath query through DOM.performSearch, only element nodes are kept
func (t *Tab) search(query string) ([]int, error) {
	var s gcdapi.DOMPerformSearchParams
	s.Query = query
	s.IncludeUserAgentShadowDOM = false
	id, count, err := t.t.DOM.PerformSearchWithParams(&s)
	if err != nil {
		return nil, mapErr(err, "search "+query)
	}
	defer t.t.DOM.DiscardSearchResults(id)

	if count < 1 {
		return []int{}, nil
	}

	var r gcdapi.DOMGetSearchResultsParams
	r.SearchId = id
	r.FromIndex = 0
	r.ToIndex = count
	nodeIDs, err := t.t.DOM.GetSearchResultsWithParams(&r)
	if err != nil {
		return nil, mapErr(err, "search results "+query)
	}
	return nodeIDs, nil
}
