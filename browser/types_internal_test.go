package browser

import (
	"testing"

	"github.com/pkg/errors"
	"gitlab.com/browserker/seek/browserk"
)

func TestMapErr(t *testing.T) {
	if mapErr(nil, "x") != nil {
		t.Fatalf("nil should stay nil")
	}

	err := mapErr(errors.New("Could not find node with given id"), "el")
	if _, ok := err.(*browserk.StaleElementErr); !ok {
		t.Fatalf("expected stale got %T\n", err)
	}

	err = mapErr(errors.New("request timed out"), "el")
	if _, ok := err.(*browserk.TransientErr); !ok {
		t.Fatalf("expected transient got %T\n", err)
	}

	err = mapErr(errors.New("DOM Error while querying"), "el")
	if errors.Cause(err).Error() != "DOM Error while querying" {
		t.Fatalf("expected wrapped cause got %s\n", err)
	}
}
