package browserk_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"gitlab.com/browserker/seek/browserk"
	"gitlab.com/browserker/seek/browserk/navi"
	"gitlab.com/browserker/seek/mock"
)

func TestEmptyFailureMessages(t *testing.T) {
	ctx := context.Background()
	if msg := browserk.NewElementNotFoundErr(ctx, nil).Error(); msg != "Unable to locate element." {
		t.Fatalf("unexpected %q", msg)
	}
	if msg := browserk.NewElementNotMissingErr(ctx, nil).Error(); msg != "Able to locate element that should be missing." {
		t.Fatalf("unexpected %q", msg)
	}
}

func TestNotFoundMessage(t *testing.T) {
	ctx := context.Background()
	spent := 1500 * time.Millisecond

	contextElement := mock.MakeElement("div-id-001", true).SetDetails(&browserk.ElementDetails{
		Tag: "div", X: 50, Y: 75, Width: 100, Height: 150, Text: " Some text ",
	})

	data := &browserk.SearchFailureData{
		Locator:                            navi.Extend(navi.ByXPath(".//a")).Named("anchor"),
		SearchTime:                         &spent,
		SearchOptions:                      navi.SearchVisible().Resolve(ctx),
		AlikeElementsWithInverseVisibility: mock.MakeElements("a", false, 2),
		SearchContext:                      contextElement,
	}

	want := `Unable to locate visible "anchor" element:
- By: XPath ".//a"
- Search time: 1.5s
- Search options: {Visibility=Visible, Timeout=5s, RetryInterval=0.2s, IsSafely=false}
- Notice: Found 2 elements matching specified selector but hidden

Context element:
- Tag: div
- Location: {X=50, Y=75}
- Size: {Width=100, Height=150}
- Element ID: div-id-001
- Text: Some text`

	err := browserk.NewElementNotFoundErr(ctx, data)
	if err.Error() != want {
		t.Fatalf("expected:\n%s\ngot:\n%s", want, err.Error())
	}
	if !browserk.IsNotFound(errors.Wrap(err, "wrapped")) {
		t.Fatalf("not found errors should be detectable through wrapping")
	}
}

func TestNotMissingMessage(t *testing.T) {
	ctx := context.Background()
	data := &browserk.SearchFailureData{
		ElementName:                        "'Save' button",
		Locator:                            navi.ByID("save"),
		SearchOptions:                      navi.SearchHidden(),
		AlikeElementsWithInverseVisibility: mock.MakeElements("x", true, 1),
	}

	want := "Able to locate hidden 'Save' button element that should be missing:\n" +
		"- By: id \"save\"\n" +
		"- Search options: {Visibility=Hidden, Timeout=5s, RetryInterval=0.2s, IsSafely=false}"

	err := browserk.NewElementNotMissingErr(ctx, data)
	if err.Error() != want {
		t.Fatalf("expected:\n%s\ngot:\n%s", want, err.Error())
	}
	if !browserk.IsNotMissing(err) || browserk.IsNotFound(err) {
		t.Fatalf("wrong classification")
	}
}

func TestNoticeOnlyForSingleAlike(t *testing.T) {
	data := &browserk.SearchFailureData{
		SearchOptions:                      navi.SearchHidden().SetTimeout(0).SetRetryInterval(0),
		AlikeElementsWithInverseVisibility: mock.MakeElements("x", true, 1),
	}
	want := "Unable to locate hidden element:\n" +
		"- Search options: {Visibility=Hidden, Timeout=0s, RetryInterval=0s, IsSafely=false}\n" +
		"- Notice: Found 1 element matching specified selector but visible"
	if msg := data.NotFoundMessage(context.Background()); msg != want {
		t.Fatalf("expected:\n%s\ngot:\n%s", want, msg)
	}
}

func TestDetailedStringMultilineText(t *testing.T) {
	el := mock.MakeElement("", true).SetDetails(&browserk.ElementDetails{Tag: "p", Text: "line one\nline two"})
	want := "- Tag: p\n- Location: {X=0, Y=0}\n- Size: {Width=0, Height=0}\n- Text:\nline one\nline two"
	if got := browserk.DetailedString(context.Background(), el); got != want {
		t.Fatalf("expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestStaleErr(t *testing.T) {
	el := mock.MakeElement("gone", true)
	el.SetStale(true)
	_, err := el.Displayed(context.Background())
	stale := &browserk.StaleElementErr{}
	if !errors.As(err, &stale) || !stale.Stale() {
		t.Fatalf("expected stale element error got %v", err)
	}
}
