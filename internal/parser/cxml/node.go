// Package cxml parses cXML PaymentRemittanceRequest documents into the
// standard payment advice structure. Element lookup matches local names
// only, so namespaced and non-namespaced documents parse identically.
package cxml

import (
	"encoding/xml"
	"strings"
)

// node is a generic element tree; unmarshalling any well-formed document
// into it preserves tags, attributes, text and children.
type node struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Chardata string     `xml:",chardata"`
	Children []node     `xml:",any"`
}

// local returns the element's name with any namespace stripped. The Space
// split also covers undeclared prefixes that decoders leave in Local.
func localName(n xml.Name) string {
	if i := strings.LastIndex(n.Local, ":"); i >= 0 {
		return n.Local[i+1:]
	}
	return n.Local
}

func (n *node) local() string { return localName(n.XMLName) }

// attr returns the value of the named attribute, matching by local name.
func (n *node) attr(name string) string {
	for _, a := range n.Attrs {
		if localName(a.Name) == name {
			return a.Value
		}
	}
	return ""
}

func (n *node) text() string { return strings.TrimSpace(n.Chardata) }

// walk visits n and all its descendants in document order until fn returns
// false.
func (n *node) walk(fn func(*node) bool) bool {
	if !fn(n) {
		return false
	}
	for i := range n.Children {
		if !n.Children[i].walk(fn) {
			return false
		}
	}
	return true
}

// findAll returns n and every descendant whose local name equals tag.
func (n *node) findAll(tag string) []*node {
	var out []*node
	n.walk(func(c *node) bool {
		if c.local() == tag {
			out = append(out, c)
		}
		return true
	})
	return out
}

// findFirst returns the first of findAll, or nil.
func (n *node) findFirst(tag string) *node {
	var found *node
	n.walk(func(c *node) bool {
		if c.local() == tag {
			found = c
			return false
		}
		return true
	})
	return found
}
