package search

import (
	"context"

	"github.com/pkg/errors"
	"gitlab.com/browserker/seek/browserk"
	"gitlab.com/browserker/seek/browserk/navi"
)

// FindAll runs l once against sc. Extensions are ignored and chains search
// every stage within each result of the stage before.
func FindAll(ctx context.Context, sc browserk.SearchContext, l navi.Locator) ([]browserk.Element, error) {
	switch t := navi.Unwrap(l).(type) {
	case *navi.Selector:
		return sc.FindElements(ctx, t)
	case *navi.Chain:
		items := t.Items()
		if len(items) == 0 {
			return []browserk.Element{}, nil
		}

		elements, err := FindAll(ctx, sc, items[0])
		if err != nil {
			return nil, err
		}

		for _, item := range items[1:] {
			next := make([]browserk.Element, 0)
			for _, el := range elements {
				found, err := FindAll(ctx, el, item)
				if err != nil {
					return nil, err
				}
				next = append(next, found...)
			}
			elements = next
		}
		return elements, nil
	}
	return nil, errors.Errorf("unsupported locator %T", l)
}

// FindFirst runs l once against sc returning the first match or a
// *browserk.NoSuchElementErr
func FindFirst(ctx context.Context, sc browserk.SearchContext, l navi.Locator) (browserk.Element, error) {
	if s, ok := navi.Unwrap(l).(*navi.Selector); ok {
		if single, ok := sc.(browserk.SingleFinder); ok {
			return single.FindElement(ctx, s)
		}
	}

	elements, err := FindAll(ctx, sc, l)
	if err != nil {
		return nil, err
	}
	if len(elements) == 0 {
		return nil, &browserk.NoSuchElementErr{Message: navi.Describe(l)}
	}
	return elements[0], nil
}

func firstMatching(ctx context.Context, elements []browserk.Element, v navi.Visibility) (browserk.Element, error) {
	for _, el := range elements {
		ok, err := matches(ctx, el, v)
		if err != nil {
			return nil, err
		}
		if ok {
			return el, nil
		}
	}
	return nil, nil
}

func filter(ctx context.Context, elements []browserk.Element, v navi.Visibility) ([]browserk.Element, error) {
	if v == navi.AnyVisibility {
		return elements, nil
	}
	filtered := make([]browserk.Element, 0, len(elements))
	for _, el := range elements {
		ok, err := matches(ctx, el, v)
		if err != nil {
			return nil, err
		}
		if ok {
			filtered = append(filtered, el)
		}
	}
	return filtered, nil
}

func matches(ctx context.Context, el browserk.Element, v navi.Visibility) (bool, error) {
	if v == navi.AnyVisibility {
		return true, nil
	}
	displayed, err := el.Displayed(ctx)
	if err != nil {
		return false, err
	}
	return v.Matches(displayed), nil
}

// isMissing returns true if nothing of visibility v matches l in sc right now
func isMissing(ctx context.Context, sc browserk.SearchContext, l navi.Locator, v navi.Visibility) (bool, error) {
	elements, err := FindAll(ctx, sc, l)
	if err != nil {
		return false, err
	}
	el, err := firstMatching(ctx, elements, v)
	if err != nil {
		return false, err
	}
	return el == nil, nil
}
