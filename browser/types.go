package browser

import (
	"strings"

	"github.com/pkg/errors"
	"gitlab.com/browserker/seek/browserk"
	"gitlab.com/browserker/seek/browserk/navi"
)

// revive:exported
var (
	ErrNavigationTimedOut = errors.New("navigation timed out")
	ErrTabClosing         = errors.New("closing")
	ErrNavigating         = errors.New("error in navigation")
	ErrNoDocument         = errors.New("no document loaded")
)

// UnsupportedSelectorErr when a selector kind can not be run in a context
type UnsupportedSelectorErr struct {
	Selector *navi.Selector
	Message  string
}

func (e *UnsupportedSelectorErr) Error() string {
	return "unsupported selector " + e.Selector.String() + ": " + e.Message
}

// NodeType are standard browser node types
type NodeType uint8

// revive:exported
const (
	NodeElement  NodeType = 0x1
	NodeTextType NodeType = 0x3
	NodeComment  NodeType = 0x8
	NodeDocument NodeType = 0x9
)

var nodeTypeMap = map[NodeType]string{
	NodeElement:  "ELEMENT_NODE",
	NodeTextType: "TEXT_NODE",
	NodeComment:  "COMMENT_NODE",
	NodeDocument: "DOCUMENT_NODE",
}

func (n NodeType) String() string {
	if s, ok := nodeTypeMap[n]; ok {
		return s
	}
	return "UNKNOWN_NODE"
}

var staleMessages = []string{
	"Could not find node with given id",
	"No node with given id found",
	"Node with given id does not belong to the document",
	"No node found for given backend id",
}

// mapErr turns protocol errors into the errors searches know how to retry
func mapErr(err error, what string) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	for _, stale := range staleMessages {
		if strings.Contains(msg, stale) {
			return &browserk.StaleElementErr{Message: what}
		}
	}
	if strings.Contains(msg, "timed out") || strings.Contains(msg, "Inspected target navigated or closed") {
		return &browserk.TransientErr{Message: what + ": " + msg}
	}
	return errors.Wrap(err, what)
}
