package browser_test

import (
	"testing"

	"github.com/wirepair/gcd/gcdapi"
	"gitlab.com/browserker/seek/browser"
)

func TestNodeAttributes(t *testing.T) {
	d := &gcdapi.DOMNode{
		Attributes: []string{"HREF", "blah", "value", "zop"},
	}
	if !browser.NodeHasAttribute(d, "href") {
		t.Fatalf("expected href")
	}
	if browser.NodeGetAttribute(d, "Value") != "zop" {
		t.Fatalf("expected value=zop")
	}
	if browser.NodeGetAttribute(d, "missing") != "" {
		t.Fatalf("expected empty value")
	}
}

func TestNodeText(t *testing.T) {
	d := &gcdapi.DOMNode{
		NodeType: 1,
		Children: []*gcdapi.DOMNode{
			{NodeType: 3, NodeValue: "  Sign\n in "},
			{NodeType: 1, NodeName: "SPAN"},
			{NodeType: 3, NodeValue: "now"},
		},
	}
	if text := browser.NodeText(d); text != "Sign in now" {
		t.Fatalf("expected joined text got %q\n", text)
	}
	if browser.NodeText(nil) != "" {
		t.Fatalf("expected empty text for nil")
	}
}

func TestNodeTextOfTextNode(t *testing.T) {
	d := &gcdapi.DOMNode{NodeType: int(browser.NodeTextType), NodeValue: " plain  text "}
	if text := browser.NodeText(d); text != "plain text" {
		t.Fatalf("expected text node value got %q\n", text)
	}
	if browser.NodeTextType.String() != "TEXT_NODE" {
		t.Fatalf("expected TEXT_NODE got %s\n", browser.NodeTextType)
	}
}
