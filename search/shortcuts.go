package search

import (
	"context"

	"gitlab.com/browserker/seek/browserk"
	"gitlab.com/browserker/seek/browserk/navi"
)

// Get the first element l matches in sc, retrying with ambient settings
func Get(ctx context.Context, sc browserk.SearchContext, l navi.Locator) (browserk.Element, error) {
	return New(ctx, sc).FindElement(ctx, l)
}

// GetAll elements l matches in sc
func GetAll(ctx context.Context, sc browserk.SearchContext, l navi.Locator) ([]browserk.Element, error) {
	return New(ctx, sc).FindElements(ctx, l)
}

// Exists see Context.Exists
func Exists(ctx context.Context, sc browserk.SearchContext, l navi.Locator) (bool, error) {
	return New(ctx, sc).Exists(ctx, l)
}

// Missing see Context.Missing
func Missing(ctx context.Context, sc browserk.SearchContext, l navi.Locator) (bool, error) {
	return New(ctx, sc).Missing(ctx, l)
}
