package search_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"gitlab.com/browserker/seek/browserk"
	"gitlab.com/browserker/seek/browserk/navi"
	"gitlab.com/browserker/seek/mock"
	"gitlab.com/browserker/seek/retry"
	"gitlab.com/browserker/seek/search"
)

func testContext(root *mock.Context, opts ...search.Option) (*search.Context[*mock.Context], *mock.Clock) {
	clock := mock.MakeClock()
	opts = append(opts, search.WithClock(clock))
	return search.New(context.Background(), root, opts...), clock
}

func TestFindElementImmediate(t *testing.T) {
	ctx := context.Background()
	root := mock.MakeContext().Set(navi.ByID("first-name"), mock.MakeElement("first-name", true))
	sc, clock := testContext(root)

	el, err := sc.FindElement(ctx, navi.ByID("first-name"))
	if err != nil {
		t.Fatalf("error finding: %s\n", err)
	}
	if el == nil || el.ID() != "first-name" {
		t.Fatalf("expected first-name element got %v", el)
	}
	if clock.Elapsed() != 0 {
		t.Fatalf("expected immediate result got %s", clock.Elapsed())
	}
}

func TestFindElementSafely(t *testing.T) {
	ctx := context.Background()
	sc, clock := testContext(mock.MakeContext())

	el, err := sc.FindElement(ctx, navi.Extend(navi.ByID("unknown")).Safely())
	if err != nil {
		t.Fatalf("safe search returned error: %s", err)
	}
	if el != nil {
		t.Fatalf("expected nil element")
	}
	if clock.Elapsed() != 5*time.Second {
		t.Fatalf("expected to wait the default 5s got %s", clock.Elapsed())
	}
}

func TestFindElementUnsafely(t *testing.T) {
	ctx := context.Background()
	sc, clock := testContext(mock.MakeContext())

	_, err := sc.FindElement(ctx, navi.Extend(navi.ByID("unknown")).Unsafely())
	if !browserk.IsNotFound(err) {
		t.Fatalf("expected not found got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "Unable to locate element:") {
		t.Fatalf("unexpected message %s", err)
	}
	if !strings.Contains(err.Error(), "- Search time: 5s") || !strings.Contains(err.Error(), `- By: id "unknown"`) {
		t.Fatalf("message missing details: %s", err)
	}
	if clock.Elapsed() != 5*time.Second {
		t.Fatalf("expected 5s got %s", clock.Elapsed())
	}

	notFound := &browserk.ElementNotFoundErr{}
	if !errors.As(err, &notFound) || notFound.Data == nil || notFound.Data.SearchContext == nil {
		t.Fatalf("expected failure data on the error")
	}
}

func TestFindElementHidden(t *testing.T) {
	ctx := context.Background()
	root := mock.MakeContext().Set(navi.ByID("hidden-input"), mock.MakeElement("hidden-input", false))
	sc, clock := testContext(root)

	for _, l := range []navi.Locator{
		navi.Extend(navi.ByID("hidden-input")).Hidden(),
		navi.Extend(navi.ByID("hidden-input")).OfAnyVisibility(),
	} {
		el, err := sc.FindElement(ctx, l)
		if err != nil || el == nil {
			t.Fatalf("expected hidden element got %v %v", el, err)
		}
	}
	if clock.Elapsed() != 0 {
		t.Fatalf("expected immediate result got %s", clock.Elapsed())
	}
}

func TestFindElementTimeoutButHidden(t *testing.T) {
	ctx := context.Background()
	root := mock.MakeContext().Set(navi.ByID("hidden-input"), mock.MakeElement("hidden-input", false))
	sc, clock := testContext(root)

	l := navi.Extend(navi.ByID("hidden-input")).Named("secret").Visible().Within(3 * time.Second)
	_, err := sc.FindElement(ctx, l)
	if err == nil {
		t.Fatalf("expected error")
	}

	msg := err.Error()
	if !strings.HasPrefix(msg, `Unable to locate visible "secret" element:`) {
		t.Fatalf("unexpected message %s", msg)
	}
	if !strings.Contains(msg, "- Notice: Found 1 element matching specified selector but hidden") {
		t.Fatalf("expected notice about the hidden element: %s", msg)
	}
	if clock.Elapsed() != 3*time.Second {
		t.Fatalf("expected 3s got %s", clock.Elapsed())
	}
}

func TestFindElementRetry(t *testing.T) {
	ctx := context.Background()
	block := mock.MakeElement("value-block", true)
	root := mock.MakeContext().SetFunc(navi.ByID("value-block"), func(call int) ([]browserk.Element, error) {
		if call < 4 {
			return nil, nil
		}
		return []browserk.Element{block}, nil
	})
	sc, clock := testContext(root)

	el, err := sc.FindElement(ctx, navi.ByID("value-block"))
	if err != nil || el != block {
		t.Fatalf("expected value block got %v %v", el, err)
	}
	if clock.Elapsed() != 600*time.Millisecond {
		t.Fatalf("expected 3 retries of 200ms got %s", clock.Elapsed())
	}
	if root.SingleCalls() != 4 {
		t.Fatalf("any visibility should use the single finder, got %d calls", root.SingleCalls())
	}
}

func TestFindElementPropagatesErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("driver exploded")
	root := mock.MakeContext().SetFunc(navi.ByID("x"), func(int) ([]browserk.Element, error) {
		return nil, boom
	})
	sc, clock := testContext(root)

	_, err := sc.FindElement(ctx, navi.Extend(navi.ByID("x")).Safely())
	if errors.Cause(err) != boom {
		t.Fatalf("expected driver error got %v", err)
	}
	if clock.Elapsed() != 0 {
		t.Fatalf("should not retry unknown errors")
	}
}

func TestFindElementStaleVisibility(t *testing.T) {
	ctx := context.Background()
	el := mock.MakeElement("x", true)
	el.SetStale(true)
	root := mock.MakeContext().Set(navi.ByID("x"), el)
	sc, _ := testContext(root)

	_, err := sc.FindElement(ctx, navi.Extend(navi.ByID("x")).Visible())
	if !retry.IsStale(err) {
		t.Fatalf("expected stale error got %v", err)
	}
}

func TestFindElementContextElement(t *testing.T) {
	ctx := context.Background()
	parent := mock.MakeElement("parent-id", true)
	parent.SetDetails(&browserk.ElementDetails{Tag: "form"})

	sc := search.New(ctx, browserk.Element(parent), search.WithClock(mock.MakeClock()), search.WithTimeout(0))
	_, err := sc.FindElement(ctx, navi.ByCSS("input"))
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "\n\nContext element:\n- Tag: form") {
		t.Fatalf("expected context element block: %s", err)
	}
	if !strings.Contains(err.Error(), "Timeout=0s") {
		t.Fatalf("expected effective timeout in options: %s", err)
	}
}

func TestFindElements(t *testing.T) {
	ctx := context.Background()
	root := mock.MakeContext().Set(navi.ByTagName("li"),
		mock.MakeElement("a", true), mock.MakeElement("b", false), mock.MakeElement("c", true))
	sc, clock := testContext(root)

	all, err := sc.FindElements(ctx, navi.ByTagName("li"))
	if err != nil || len(all) != 3 {
		t.Fatalf("expected 3 got %d %v", len(all), err)
	}

	visible, _ := sc.FindElements(ctx, navi.Extend(navi.ByTagName("li")).Visible())
	if len(visible) != 2 || visible[0].ID() != "a" || visible[1].ID() != "c" {
		t.Fatalf("expected a and c")
	}

	none, err := sc.FindElements(ctx, navi.Extend(navi.ByTagName("p")).Within(time.Second))
	if err != nil {
		t.Fatalf("find all never fails on empty: %s", err)
	}
	if none == nil || len(none) != 0 {
		t.Fatalf("expected empty non-nil slice")
	}
	if clock.Elapsed() != time.Second {
		t.Fatalf("expected 1s got %s", clock.Elapsed())
	}
}

func TestExists(t *testing.T) {
	ctx := context.Background()
	root := mock.MakeContext().Set(navi.ByID("here"), mock.MakeElement("here", true))
	sc, _ := testContext(root, search.WithTimeout(time.Second))

	if ok, err := sc.Exists(ctx, navi.ByID("here")); !ok || err != nil {
		t.Fatalf("expected to exist %v %v", ok, err)
	}
	if ok, err := sc.Exists(ctx, navi.Extend(navi.ByID("gone")).Safely()); ok || err != nil {
		t.Fatalf("expected false without error %v %v", ok, err)
	}
	if _, err := sc.Exists(ctx, navi.ByID("gone")); !browserk.IsNotFound(err) {
		t.Fatalf("unsafe exists should fail with not found, got %v", err)
	}
}

func TestMissing(t *testing.T) {
	ctx := context.Background()
	root := mock.MakeContext().Set(navi.ByID("present"), mock.MakeElement("present", true))
	sc, clock := testContext(root)

	_, err := sc.Missing(ctx, navi.ByID("present"))
	if !browserk.IsNotMissing(err) {
		t.Fatalf("expected not missing got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "Able to locate element that should be missing:") {
		t.Fatalf("unexpected message %s", err)
	}
	if clock.Elapsed() != 5*time.Second {
		t.Fatalf("expected 5s got %s", clock.Elapsed())
	}

	ok, err := sc.Missing(ctx, navi.Extend(navi.ByID("present")).SafelyAtOnce())
	if ok || err != nil {
		t.Fatalf("safe missing should return false %v %v", ok, err)
	}

	ok, err = sc.Missing(ctx, navi.Extend(navi.ByID("present")).Hidden().AtOnce())
	if !ok || err != nil {
		t.Fatalf("visible element is missing when looking for hidden ones %v %v", ok, err)
	}
}

func TestMissingDisappears(t *testing.T) {
	ctx := context.Background()
	root := mock.MakeContext().SetFunc(navi.ByID("spinner"), func(call int) ([]browserk.Element, error) {
		if call <= 2 {
			return []browserk.Element{mock.MakeElement("spinner", true)}, nil
		}
		return nil, nil
	})
	sc, clock := testContext(root)

	ok, err := sc.Missing(ctx, navi.ByID("spinner"))
	if !ok || err != nil {
		t.Fatalf("expected spinner to go away %v %v", ok, err)
	}
	if clock.Elapsed() != 400*time.Millisecond {
		t.Fatalf("expected 400ms got %s", clock.Elapsed())
	}
}

func TestMissingAllRechecksCleared(t *testing.T) {
	ctx := context.Background()
	present := []browserk.Element{mock.MakeElement("x", true)}
	a, b := navi.ByID("a"), navi.ByID("b")

	root := mock.MakeContext().
		SetFunc(a, func(call int) ([]browserk.Element, error) {
			if call == 2 {
				return present, nil
			}
			return nil, nil
		}).
		SetFunc(b, func(call int) ([]browserk.Element, error) {
			if call == 1 {
				return present, nil
			}
			return nil, nil
		})
	sc, clock := testContext(root)

	ok, err := sc.MissingAll(ctx, a, b)
	if !ok || err != nil {
		t.Fatalf("expected all missing %v %v", ok, err)
	}
	if clock.Elapsed() != 400*time.Millisecond {
		t.Fatalf("expected success on the third poll got %s", clock.Elapsed())
	}
	if root.Calls(a) != 3 || root.Calls(b) != 3 {
		t.Fatalf("unexpected call counts a=%d b=%d", root.Calls(a), root.Calls(b))
	}
}

func TestMissingAllTimeouts(t *testing.T) {
	ctx := context.Background()
	root := mock.MakeContext().
		Set(navi.ByID("a"), mock.MakeElement("a", true)).
		Set(navi.ByID("b"), mock.MakeElement("b", true))
	sc, clock := testContext(root)

	ok, err := sc.MissingAll(ctx,
		navi.Extend(navi.ByID("a")).Safely().Within(time.Second, 500*time.Millisecond),
		navi.Extend(navi.ByID("b")).Safely().Within(3*time.Second, 100*time.Millisecond),
	)
	if ok || err != nil {
		t.Fatalf("expected safe false %v %v", ok, err)
	}
	if clock.Elapsed() != 3*time.Second {
		t.Fatalf("expected max timeout 3s got %s", clock.Elapsed())
	}
	for _, s := range clock.Sleeps() {
		if s != 100*time.Millisecond {
			t.Fatalf("expected min interval of 100ms got %s", s)
		}
	}
}

func TestMissingAllUnsafe(t *testing.T) {
	ctx := context.Background()
	root := mock.MakeContext().Set(navi.ByID("b"), mock.MakeElement("b", true))
	sc, clock := testContext(root, search.WithTimeout(2*time.Second))

	_, err := sc.MissingAll(ctx, navi.Extend(navi.ByID("a")).Safely(), navi.ByID("b"))
	if !browserk.IsNotMissing(err) {
		t.Fatalf("expected not missing got %v", err)
	}
	if !strings.Contains(err.Error(), `- By: id "b"`) {
		t.Fatalf("expected first left locator in message: %s", err)
	}
	if clock.Elapsed() != 2*time.Second {
		t.Fatalf("expected context timeout of 2s got %s", clock.Elapsed())
	}

	if _, err := sc.MissingAll(ctx); err != search.ErrNoLocators {
		t.Fatalf("expected ErrNoLocators got %v", err)
	}
}

func TestMissingAllUnsafeReportsCombinedWait(t *testing.T) {
	ctx := context.Background()
	root := mock.MakeContext().
		Set(navi.ByID("a"), mock.MakeElement("a", true)).
		Set(navi.ByID("b"), mock.MakeElement("b", true))
	sc, clock := testContext(root)

	_, err := sc.MissingAll(ctx,
		navi.Extend(navi.ByID("a")).Within(time.Second, 500*time.Millisecond),
		navi.Extend(navi.ByID("b")).Within(3*time.Second, 100*time.Millisecond),
	)
	if !browserk.IsNotMissing(err) {
		t.Fatalf("expected not missing got %v", err)
	}
	want := "{Visibility=Any, Timeout=3s, RetryInterval=0.1s, IsSafely=false}"
	if !strings.Contains(err.Error(), want) {
		t.Fatalf("expected the options waited with %s in: %s", want, err)
	}
	if clock.Elapsed() != 3*time.Second {
		t.Fatalf("expected max timeout 3s got %s", clock.Elapsed())
	}
}

func TestMissingAllInTargets(t *testing.T) {
	ctx := context.Background()
	panel := mock.MakeElement("panel", true)
	root := mock.MakeContext().Set(navi.ByID("row"), mock.MakeElement("row", true))
	sc, _ := testContext(root, search.WithTimeout(0))

	ok, err := sc.MissingAllIn(ctx, []search.Target{
		{Locator: navi.ByID("row"), Context: panel},
		{Locator: navi.ByID("other")},
	})
	if !ok || err != nil {
		t.Fatalf("row is only in the root, not in the panel %v %v", ok, err)
	}
}

func TestUntil(t *testing.T) {
	ctx := context.Background()

	sc, clock := testContext(mock.MakeContext(), search.WithTimeout(2*time.Second))
	ok, err := search.Until(ctx, sc, func(*mock.Context) (bool, error) { return true, nil }, nil)
	if !ok || err != nil || clock.Elapsed() != 0 {
		t.Fatalf("expected immediate true")
	}

	ok, _ = search.Until(ctx, sc, func(*mock.Context) (bool, error) { return false, nil }, nil)
	if ok || clock.Elapsed() != 2*time.Second {
		t.Fatalf("expected context timeout of 2s got %s", clock.Elapsed())
	}

	sc, clock = testContext(mock.MakeContext())
	search.Until(ctx, sc, func(*mock.Context) (bool, error) { return false, nil }, nil)
	if clock.Elapsed() != 5*time.Second {
		t.Fatalf("expected default timeout of 5s got %s", clock.Elapsed())
	}

	sc, clock = testContext(mock.MakeContext())
	search.Until(ctx, sc, func(*mock.Context) (bool, error) { return false, nil }, retry.NewOptions().WithTimeout(2*time.Second))
	if clock.Elapsed() != 2*time.Second {
		t.Fatalf("expected until timeout of 2s got %s", clock.Elapsed())
	}
}

func TestAmbientSettings(t *testing.T) {
	ctx := retry.SetTimeout(context.Background(), time.Second)
	ctx = retry.SetInterval(ctx, 250*time.Millisecond)

	sc := search.New(ctx, mock.MakeContext())
	if sc.Timeout != time.Second || sc.RetryInterval != 250*time.Millisecond {
		t.Fatalf("expected ambient settings got %s %s", sc.Timeout, sc.RetryInterval)
	}
}

func TestShortcuts(t *testing.T) {
	ctx := context.Background()
	root := mock.MakeContext().Set(navi.ByName("q"), mock.MakeElement("q", true))

	el, err := search.Get(ctx, root, navi.ByName("q"))
	if err != nil || el == nil {
		t.Fatalf("expected element %v", err)
	}
	all, err := search.GetAll(ctx, root, navi.ByName("q"))
	if err != nil || len(all) != 1 {
		t.Fatalf("expected one element %v", err)
	}
	if ok, _ := search.Exists(ctx, root, navi.ByName("q")); !ok {
		t.Fatalf("expected to exist")
	}
	if ok, _ := search.Missing(ctx, root, navi.Extend(navi.ByName("q")).Hidden()); !ok {
		t.Fatalf("visible element should be missing as hidden")
	}
}
