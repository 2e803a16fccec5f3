package mock

import (
	"context"
	"strconv"
	"sync"

	"gitlab.com/browserker/seek/browserk"
)

// Element is a fake browserk.Element that can also be searched within
type Element struct {
	*Context
	id      string
	lock    sync.Mutex
	visible bool
	stale   bool
	details *browserk.ElementDetails
}

// MakeElement with an id and visibility
func MakeElement(id string, visible bool) *Element {
	return &Element{
		Context: MakeContext(),
		id:      id,
		visible: visible,
	}
}

// MakeElements visible or hidden, ids are prefix-0, prefix-1...
func MakeElements(prefix string, visible bool, count int) []browserk.Element {
	elements := make([]browserk.Element, count)
	for i := 0; i < count; i++ {
		elements[i] = MakeElement(prefix+"-"+strconv.Itoa(i), visible)
	}
	return elements
}

func (e *Element) ID() string {
	return e.id
}

func (e *Element) Displayed(ctx context.Context) (bool, error) {
	e.lock.Lock()
	defer e.lock.Unlock()
	if e.stale {
		return false, &browserk.StaleElementErr{Message: e.id}
	}
	return e.visible, nil
}

func (e *Element) SetVisible(visible bool) {
	e.lock.Lock()
	e.visible = visible
	e.lock.Unlock()
}

// SetStale makes Displayed fail with a stale element error
func (e *Element) SetStale(stale bool) {
	e.lock.Lock()
	e.stale = stale
	e.lock.Unlock()
}

func (e *Element) SetDetails(details *browserk.ElementDetails) *Element {
	e.lock.Lock()
	e.details = details
	e.lock.Unlock()
	return e
}

// Details set with SetDetails, or a bare div
func (e *Element) Details(ctx context.Context) (*browserk.ElementDetails, error) {
	e.lock.Lock()
	defer e.lock.Unlock()
	if e.details == nil {
		return &browserk.ElementDetails{Tag: "div"}, nil
	}
	d := *e.details
	return &d, nil
}
