package browser

import (
	"strings"

	"github.com/wirepair/gcd/gcdapi"
)

// NodeHasAttribute ignoring case
func NodeHasAttribute(node *gcdapi.DOMNode, attr string) bool {
	attr = strings.ToLower(attr)
	for i := 0; i+1 < len(node.Attributes); i += 2 {
		if strings.ToLower(node.Attributes[i]) == attr {
			return true
		}
	}
	return false
}

// NodeGetAttribute ignoring case, empty if unset
func NodeGetAttribute(node *gcdapi.DOMNode, attr string) string {
	attr = strings.ToLower(attr)
	for i := 0; i+1 < len(node.Attributes); i += 2 {
		if strings.ToLower(node.Attributes[i]) == attr {
			return node.Attributes[i+1]
		}
	}
	return ""
}

// NodeText joins the direct text children of node, collapsing whitespace
func NodeText(node *gcdapi.DOMNode) string {
	if node == nil {
		return ""
	}
	if NodeType(node.NodeType) == NodeTextType {
		return strings.Join(strings.Fields(node.NodeValue), " ")
	}
	parts := make([]string, 0, len(node.Children))
	for _, child := range node.Children {
		if child == nil || NodeType(child.NodeType) != NodeTextType {
			continue
		}
		if text := strings.Join(strings.Fields(child.NodeValue), " "); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}
