// Package vdom builds trees of attributed nodes. It only constructs them;
// diffing and patching belong to whatever renders the tree.
package vdom

import (
	"slices"
	"strings"
)

type Kind int

const (
	Element Kind = iota
	Text
)

// Node is either an element with attributes, handlers and children, or a
// text leaf.
type Node struct {
	Kind     Kind
	Tag      string
	Text     string
	ID       string
	Classes  []string
	Value    string
	Children []*Node

	OnClick func()
	OnInput func(string)
}

// Attr configures an element at construction.
type Attr func(*Node)

func ID(id string) Attr {
	return func(n *Node) { n.ID = id }
}

// Class adds class names, skipping empty ones so callers can pass optional
// classes unconditionally.
func Class(names ...string) Attr {
	return func(n *Node) {
		for _, name := range names {
			if name != "" && !slices.Contains(n.Classes, name) {
				n.Classes = append(n.Classes, name)
			}
		}
	}
}

func Value(v string) Attr {
	return func(n *Node) { n.Value = v }
}

func OnClick(f func()) Attr {
	return func(n *Node) { n.OnClick = f }
}

func OnInput(f func(string)) Attr {
	return func(n *Node) { n.OnInput = f }
}

func NewText(s string) *Node {
	return &Node{Kind: Text, Text: s}
}

func NewElement(tag string, attrs []Attr, children ...*Node) *Node {
	n := &Node{Kind: Element, Tag: tag, Children: children}
	for _, attr := range attrs {
		attr(n)
	}
	return n
}

func Tr(attrs []Attr, cells ...*Node) *Node { return NewElement("tr", attrs, cells...) }
func Td(attrs []Attr, children ...*Node) *Node {
	return NewElement("td", attrs, children...)
}
func Th(attrs []Attr, children ...*Node) *Node {
	return NewElement("th", attrs, children...)
}
func Input(attrs ...Attr) *Node { return NewElement("input", attrs) }

func (n *Node) HasClass(name string) bool {
	return slices.Contains(n.Classes, name)
}

// InnerText concatenates the text of every leaf under n, plus input values.
func (n *Node) InnerText() string {
	var sb strings.Builder
	n.Walk(func(c *Node) {
		switch {
		case c.Kind == Text:
			sb.WriteString(c.Text)
		case c.Tag == "input":
			sb.WriteString(c.Value)
		}
	})
	return sb.String()
}

// Walk visits n and its descendants depth first.
func (n *Node) Walk(visit func(*Node)) {
	visit(n)
	for _, c := range n.Children {
		c.Walk(visit)
	}
}

// Find returns every node under n, n included, for which match holds.
func (n *Node) Find(match func(*Node) bool) []*Node {
	var found []*Node
	n.Walk(func(c *Node) {
		if match(c) {
			found = append(found, c)
		}
	})
	return found
}

// ByID returns the first node with the given id.
func (n *Node) ByID(id string) (*Node, bool) {
	found := n.Find(func(c *Node) bool { return c.ID == id })
	if len(found) == 0 {
		return nil, false
	}
	return found[0], true
}
