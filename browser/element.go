package browser

import (
	"context"
	"strconv"
	"strings"

	"github.com/wirepair/gcd/gcdapi"
	"gitlab.com/browserker/seek/browserk"
	"gitlab.com/browserker/seek/browserk/navi"
)

// Element is a handle to a DOM node of a Tab. It is only valid for the
// document it was found in, afterwards every call returns a
// *browserk.StaleElementErr.
type Element struct {
	tab    *Tab
	nodeID int
}

func newElement(tab *Tab, nodeID int) *Element {
	return &Element{tab: tab, nodeID: nodeID}
}

// ID of the element
func (e *Element) ID() string {
	return strconv.FormatInt(e.tab.id, 10) + ":" + strconv.Itoa(e.nodeID)
}

// NodeID of the element in its document
func (e *Element) NodeID() int {
	return e.nodeID
}

// FindElements below this element
func (e *Element) FindElements(ctx context.Context, s *navi.Selector) ([]browserk.Element, error) {
	return e.tab.find(ctx, e.nodeID, s, false)
}

// FindElement returns the first match below this element
func (e *Element) FindElement(ctx context.Context, s *navi.Selector) (browserk.Element, error) {
	return e.tab.findOne(ctx, e.nodeID, s, false)
}

// Displayed if the element has a rendered box with an area
func (e *Element) Displayed(ctx context.Context) (bool, error) {
	box, err := e.tab.t.DOM.GetBoxModelWithParams(&gcdapi.DOMGetBoxModelParams{NodeId: e.nodeID})
	if err != nil {
		if strings.Contains(err.Error(), "Could not compute box model") {
			return false, nil
		}
		return false, mapErr(err, "displayed "+e.ID())
	}
	return box != nil && box.Width > 0 && box.Height > 0, nil
}

// Details of the element used in failure messages
func (e *Element) Details(ctx context.Context) (*browserk.ElementDetails, error) {
	node, err := e.tab.t.DOM.DescribeNodeWithParams(&gcdapi.DOMDescribeNodeParams{NodeId: e.nodeID, Depth: 1})
	if err != nil {
		return nil, mapErr(err, "describe "+e.ID())
	}

	details := &browserk.ElementDetails{
		Tag:  strings.ToLower(node.LocalName),
		Text: NodeText(node),
	}
	if details.Tag == "" {
		details.Tag = strings.ToLower(node.NodeName)
	}
	if details.Text == "" {
		details.Text = NodeGetAttribute(node, "value")
	}

	box, err := e.tab.t.DOM.GetBoxModelWithParams(&gcdapi.DOMGetBoxModelParams{NodeId: e.nodeID})
	if err == nil && box != nil {
		details.Width = box.Width
		details.Height = box.Height
		if len(box.Content) >= 2 {
			details.X = int(box.Content[0])
			details.Y = int(box.Content[1])
		}
	}
	return details, nil
}
