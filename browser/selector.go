package browser

import (
	"strings"

	"gitlab.com/browserker/seek/browserk/navi"
)

// Query is a selector translated into something the DOM domain can run
type Query struct {
	Value string
	// Search queries go through DOM.performSearch and are always document wide
	Search bool
}

// Translate s into a CSS selector, or an XPath search
func Translate(s *navi.Selector) (*Query, error) {
	if s == nil {
		return nil, &UnsupportedSelectorErr{Selector: &navi.Selector{}, Message: "nil selector"}
	}
	switch s.By {
	case navi.ID:
		return &Query{Value: `[id="` + cssString(s.Query) + `"]`}, nil
	case navi.Name:
		return &Query{Value: `[name="` + cssString(s.Query) + `"]`}, nil
	case navi.ClassName:
		if strings.ContainsAny(strings.TrimSpace(s.Query), " \t\n") {
			return nil, &UnsupportedSelectorErr{Selector: s, Message: "compound class names are not permitted"}
		}
		return &Query{Value: `[class~="` + cssString(strings.TrimSpace(s.Query)) + `"]`}, nil
	case navi.CSS, navi.TagName:
		return &Query{Value: s.Query}, nil
	case navi.XPath:
		return &Query{Value: s.Query, Search: true}, nil
	case navi.LinkText:
		return &Query{Value: "//a[normalize-space(.)=" + xpathString(strings.TrimSpace(s.Query)) + "]", Search: true}, nil
	case navi.PartialLinkText:
		return &Query{Value: "//a[contains(., " + xpathString(s.Query) + ")]", Search: true}, nil
	}
	return nil, &UnsupportedSelectorErr{Selector: s, Message: "unknown kind"}
}

func cssString(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	return strings.ReplaceAll(v, `"`, `\"`)
}

// xpathString quotes v as an XPath 1.0 literal, which has no escapes
func xpathString(v string) string {
	if !strings.Contains(v, `"`) {
		return `"` + v + `"`
	}
	if !strings.Contains(v, `'`) {
		return `'` + v + `'`
	}
	parts := strings.Split(v, `"`)
	quoted := make([]string, 0, len(parts)*2)
	for i, part := range parts {
		if i > 0 {
			quoted = append(quoted, `'"'`)
		}
		if part != "" {
			quoted = append(quoted, `"`+part+`"`)
		}
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}
