package mock

import (
	"context"
	"sync"

	"gitlab.com/browserker/seek/browserk"
	"gitlab.com/browserker/seek/browserk/navi"
)

// FindFunc returns the result of the nth (1 based) lookup of a selector
type FindFunc func(call int) ([]browserk.Element, error)

// Context is a scriptable browserk.SearchContext keyed by selector
type Context struct {
	lock    sync.Mutex
	finders map[string]FindFunc
	calls   map[string]int
	single  int
	OnFind  func(s *navi.Selector)
}

// MakeContext with nothing in it
func MakeContext() *Context {
	return &Context{
		finders: make(map[string]FindFunc),
		calls:   make(map[string]int),
	}
}

// Set the elements s finds
func (c *Context) Set(s *navi.Selector, elements ...browserk.Element) *Context {
	return c.SetFunc(s, func(int) ([]browserk.Element, error) {
		return elements, nil
	})
}

// SetFunc computes the result of s on every lookup
func (c *Context) SetFunc(s *navi.Selector, fn FindFunc) *Context {
	c.lock.Lock()
	c.finders[navi.Describe(s)] = fn
	c.lock.Unlock()
	return c
}

// Remove s so it finds nothing
func (c *Context) Remove(s *navi.Selector) {
	c.lock.Lock()
	delete(c.finders, navi.Describe(s))
	c.lock.Unlock()
}

// Calls made for s, single lookups included
func (c *Context) Calls(s *navi.Selector) int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.calls[navi.Describe(s)]
}

// SingleCalls made through FindElement
func (c *Context) SingleCalls() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.single
}

// FindElements registered for s
func (c *Context) FindElements(ctx context.Context, s *navi.Selector) ([]browserk.Element, error) {
	if c.OnFind != nil {
		c.OnFind(s)
	}

	key := navi.Describe(s)
	c.lock.Lock()
	c.calls[key]++
	call := c.calls[key]
	fn, ok := c.finders[key]
	c.lock.Unlock()

	if !ok {
		return []browserk.Element{}, nil
	}
	elements, err := fn(call)
	if err != nil {
		return nil, err
	}
	if elements == nil {
		elements = []browserk.Element{}
	}
	return elements, nil
}

// FindElement returns the first match or a *browserk.NoSuchElementErr
func (c *Context) FindElement(ctx context.Context, s *navi.Selector) (browserk.Element, error) {
	c.lock.Lock()
	c.single++
	c.lock.Unlock()

	elements, err := c.FindElements(ctx, s)
	if err != nil {
		return nil, err
	}
	if len(elements) == 0 {
		return nil, &browserk.NoSuchElementErr{Message: navi.Describe(s)}
	}
	return elements[0], nil
}

// PlainContext hides the FindElement method of a Context
type PlainContext struct {
	Inner *Context
}

func (p *PlainContext) FindElements(ctx context.Context, s *navi.Selector) ([]browserk.Element, error) {
	return p.Inner.FindElements(ctx, s)
}
