package navi

import (
	"strings"
	"time"
)

// Locator describes how to find elements. Implemented only by *Selector,
// *Chain and *Extended.
type Locator interface {
	locator()
	String() string
}

// Chain searches each stage within every result of the previous stage
type Chain struct {
	items []Locator
}

// NewChain of locators, in search order
func NewChain(items ...Locator) *Chain {
	c := &Chain{items: make([]Locator, len(items))}
	copy(c.items, items)
	return c
}

func (c *Chain) locator() {}

// Items of the chain, a copy
func (c *Chain) Items() []Locator {
	items := make([]Locator, len(c.items))
	copy(items, c.items)
	return items
}

func (c *Chain) String() string {
	return Describe(c)
}

// Extended wraps a locator with an element name, kind and search options.
// The wrapped locator is never itself an *Extended and every decorating
// method returns a new value.
type Extended struct {
	inner   Locator
	name    string
	kind    string
	options *SearchOptions
}

// Extend l, an *Extended is copied rather than wrapped again
func Extend(l Locator) *Extended {
	if e, ok := l.(*Extended); ok {
		return e.clone()
	}
	return &Extended{inner: l, options: NewSearchOptions()}
}

func (e *Extended) locator() {}

func (e *Extended) String() string {
	return Describe(e.inner)
}

func (e *Extended) clone() *Extended {
	return &Extended{
		inner:   e.inner,
		name:    e.name,
		kind:    e.kind,
		options: e.options.Clone(),
	}
}

// Inner locator
func (e *Extended) Inner() Locator {
	return e.inner
}

// ElementName or empty
func (e *Extended) ElementName() string {
	return e.name
}

// ElementKind or empty
func (e *Extended) ElementKind() string {
	return e.kind
}

// Options attached, a copy
func (e *Extended) Options() *SearchOptions {
	return e.options.Clone()
}

// NameWithKind returns `"name" kind`, or whichever one is set, or empty
func (e *Extended) NameWithKind() string {
	name := strings.TrimSpace(e.name) != ""
	kind := strings.TrimSpace(e.kind) != ""
	switch {
	case name && kind:
		return "\"" + e.name + "\" " + e.kind
	case name:
		return e.name
	case kind:
		return e.kind
	}
	return ""
}

// Named sets the element name, a {0} in the query is replaced with it
func (e *Extended) Named(name string) *Extended {
	n := e.clone()
	n.name = name
	if !strings.Contains(Describe(n.inner), "{0}") {
		return n
	}
	formatted, err := FormatWith(n, name)
	if err != nil {
		return n
	}
	return formatted.(*Extended)
}

// OfKind sets the element kind and optionally the name
func (e *Extended) OfKind(kind string, name ...string) *Extended {
	n := e.clone()
	n.kind = kind
	if len(name) > 0 {
		return n.Named(name[0])
	}
	return n
}

// Safely makes a failed search return nothing instead of an error
func (e *Extended) Safely(isSafely ...bool) *Extended {
	n := e.clone()
	n.options.SetSafely(len(isSafely) == 0 || isSafely[0])
	return n
}

// Unsafely makes a failed search return an error
func (e *Extended) Unsafely() *Extended {
	n := e.clone()
	n.options.SetSafely(false)
	return n
}

func (e *Extended) WithVisibility(v Visibility) *Extended {
	n := e.clone()
	n.options.SetVisibility(v)
	return n
}

func (e *Extended) Visible() *Extended {
	return e.WithVisibility(Visible)
}

func (e *Extended) Hidden() *Extended {
	return e.WithVisibility(Hidden)
}

func (e *Extended) OfAnyVisibility() *Extended {
	return e.WithVisibility(AnyVisibility)
}

// Within sets the timeout and optionally the retry interval
func (e *Extended) Within(timeout time.Duration, retryInterval ...time.Duration) *Extended {
	n := e.clone()
	n.options.SetTimeout(timeout)
	if len(retryInterval) > 0 {
		n.options.SetRetryInterval(retryInterval[0])
	}
	return n
}

func (e *Extended) WithRetryInterval(d time.Duration) *Extended {
	n := e.clone()
	n.options.SetRetryInterval(d)
	return n
}

// AtOnce searches a single time
func (e *Extended) AtOnce() *Extended {
	return e.Within(0)
}

func (e *Extended) SafelyAtOnce(isSafely ...bool) *Extended {
	return e.Safely(isSafely...).AtOnce()
}

// With overlays the fields set in opts
func (e *Extended) With(opts *SearchOptions) *Extended {
	n := e.clone()
	n.options.Merge(opts)
	return n
}

// Unwrap removes any extension from l
func Unwrap(l Locator) Locator {
	if e, ok := l.(*Extended); ok {
		return e.inner
	}
	return l
}

// OptionsOf l, fresh defaults if it carries none
func OptionsOf(l Locator) *SearchOptions {
	if e, ok := l.(*Extended); ok {
		return e.Options()
	}
	return NewSearchOptions()
}

// NameOf the element l looks for, with kind
func NameOf(l Locator) string {
	if e, ok := l.(*Extended); ok {
		return e.NameWithKind()
	}
	return ""
}

// Then chains next after l. Chains are extended rather than nested and the
// settings of an extended l carry over to the result.
func Then(l, next Locator) Locator {
	ext, isExt := l.(*Extended)

	var chain *Chain
	if c, ok := Unwrap(l).(*Chain); ok {
		chain = NewChain(append(c.Items(), next)...)
	} else {
		chain = NewChain(Unwrap(l), next)
	}

	if !isExt {
		return chain
	}
	n := ext.clone()
	n.inner = chain
	return n
}

// Describe l for humans: `id "x"`, `chain [id "a", class "b"]`
func Describe(l Locator) string {
	switch t := Unwrap(l).(type) {
	case *Chain:
		parts := make([]string, len(t.items))
		for i, item := range t.items {
			parts[i] = Describe(item)
		}
		return "chain [" + strings.Join(parts, ", ") + "]"
	case *Selector:
		return t.By.String() + " \"" + t.Query + "\""
	}
	return ""
}
