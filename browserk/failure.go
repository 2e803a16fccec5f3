package browserk

import (
	"context"
	"strconv"
	"strings"
	"time"

	"gitlab.com/browserker/seek/browserk/navi"
	"gitlab.com/browserker/seek/retry"
)

// SearchFailureData is a snapshot of a failed search, every field is optional
type SearchFailureData struct {
	ElementName                        string
	Locator                            navi.Locator
	SearchTime                         *time.Duration
	SearchOptions                      *navi.SearchOptions
	AlikeElementsWithInverseVisibility []Element
	SearchContext                      SearchContext
}

// NotFoundMessage starting with "Unable to locate"
func (d *SearchFailureData) NotFoundMessage(ctx context.Context) string {
	details := d.details(ctx, true)
	return "Unable to locate " + d.fullElementName() + terminator(details) + details
}

// NotMissingMessage starting with "Able to locate"
func (d *SearchFailureData) NotMissingMessage(ctx context.Context) string {
	details := d.details(ctx, false)
	return "Able to locate " + d.fullElementName() + " that should be missing" + terminator(details) + details
}

func terminator(details string) string {
	if details != "" {
		return ":"
	}
	return "."
}

func (d *SearchFailureData) fullElementName() string {
	var b strings.Builder

	if d.SearchOptions != nil && d.SearchOptions.Visibility() != navi.AnyVisibility {
		b.WriteString(strings.ToLower(d.SearchOptions.Visibility().String()))
		b.WriteByte(' ')
	}

	name := d.ElementName
	if name == "" && d.Locator != nil {
		name = navi.NameOf(d.Locator)
	}
	if name != "" {
		if name[0] != '"' && name[0] != '\'' {
			name = "\"" + name + "\""
		}
		b.WriteString(name)
		b.WriteByte(' ')
	}

	b.WriteString("element")
	return b.String()
}

func (d *SearchFailureData) details(ctx context.Context, alike bool) string {
	var b strings.Builder

	if d.Locator != nil {
		b.WriteString("\n- By: ")
		b.WriteString(navi.Describe(d.Locator))
	}
	if d.SearchTime != nil {
		b.WriteString("\n- Search time: ")
		b.WriteString(retry.ShortInterval(*d.SearchTime))
	}
	if d.SearchOptions != nil {
		b.WriteString("\n- Search options: ")
		b.WriteString(d.SearchOptions.Describe(ctx))
	}

	count := len(d.AlikeElementsWithInverseVisibility)
	if alike && count > 0 && d.SearchOptions != nil && d.SearchOptions.Visibility() != navi.AnyVisibility {
		b.WriteString("\n- Notice: Found ")
		b.WriteString(strconv.Itoa(count))
		b.WriteString(" element")
		if count > 1 {
			b.WriteByte('s')
		}
		b.WriteString(" matching specified selector but ")
		b.WriteString(strings.ToLower(d.SearchOptions.Visibility().Inverse().String()))
	}

	if el, ok := d.SearchContext.(Element); ok {
		b.WriteString("\n\nContext element:\n")
		b.WriteString(DetailedString(ctx, el))
	}
	return b.String()
}

// DetailedString of an element for failure messages
func DetailedString(ctx context.Context, el Element) string {
	detailer, ok := el.(Detailer)
	if !ok {
		return "- Element ID: " + el.ID()
	}
	det, err := detailer.Details(ctx)
	if err != nil || det == nil {
		return "- Element ID: " + el.ID()
	}

	var b strings.Builder
	b.WriteString("- Tag: " + det.Tag)
	b.WriteString("\n- Location: {X=" + strconv.Itoa(det.X) + ", Y=" + strconv.Itoa(det.Y) + "}")
	b.WriteString("\n- Size: {Width=" + strconv.Itoa(det.Width) + ", Height=" + strconv.Itoa(det.Height) + "}")

	if id := el.ID(); id != "" {
		b.WriteString("\n- Element ID: " + id)
	}

	if text := strings.TrimSpace(det.Text); text != "" {
		sep := " "
		if strings.Contains(text, "\n") {
			sep = "\n"
		}
		b.WriteString("\n- Text:" + sep + text)
	}
	return b.String()
}
