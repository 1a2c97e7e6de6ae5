package html

import (
	"strings"

	"noddy/pkg/css"
)

// NodeType discriminates element nodes from text nodes.
type NodeType int

const (
	ElementNode NodeType = iota
	TextNode
)

func (t NodeType) String() string {
	if t == TextNode {
		return "text"
	}
	return "element"
}

// Attribute is one key/value pair of an element, kept in source order.
type Attribute struct {
	Key   string
	Value string
}

// Box holds the layout output for a node. It is nil on a node until a
// layout pass has visited it.
type Box struct {
	Top    float64
	Left   float64
	Width  float64
	Height float64
}

// Node is either an element or a text node, discriminated by Type.
//
// Elements carry a tag name, attributes, children and a resolved style.
// Text nodes carry Text only and use their parent's style. Parent is a
// back-reference; the Children slice is the only owning edge of the tree.
type Node struct {
	Type       NodeType
	TagName    string
	Attributes []Attribute
	Text       string
	Children   []*Node
	Parent     *Node
	Style      *css.Style
	Box        *Box
}

// Document is the result of a parse. Root is never nil.
type Document struct {
	Root *Node
}

// NewElement constructs an element whose style is resolved once, from its
// tag defaults and the style of parent. The element is not appended to
// parent's children; callers attach it with AddChild or AppendChild.
func NewElement(tag string, parent *Node, attrs []Attribute) *Node {
	var parentStyle *css.Style
	if parent != nil {
		parentStyle = parent.Style
	}
	return &Node{
		Type:       ElementNode,
		TagName:    strings.ToLower(tag),
		Attributes: attrs,
		Children:   make([]*Node, 0),
		Parent:     parent,
		Style:      css.NewStyle(tag, parentStyle),
	}
}

// NewText constructs a detached text node.
func NewText(text string) *Node {
	return &Node{Type: TextNode, Text: text}
}

func (n *Node) IsElement() bool {
	return n.Type == ElementNode
}

func (n *Node) IsText() bool {
	return n.Type == TextNode
}

func (n *Node) GetAttribute(name string) (string, bool) {
	for _, a := range n.Attributes {
		if a.Key == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttribute replaces the value of an existing attribute in place or
// appends a new one.
func (n *Node) SetAttribute(name, value string) {
	for i := range n.Attributes {
		if n.Attributes[i].Key == name {
			n.Attributes[i].Value = value
			return
		}
	}
	n.Attributes = append(n.Attributes, Attribute{Key: name, Value: value})
}

// AddChild adds a child node and sets up the parent relationship
func (n *Node) AddChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// AppendText creates a text node and adds it as a child
func (n *Node) AppendText(text string) {
	if text == "" {
		return
	}
	n.AddChild(NewText(text))
}

// AppendChild moves child (and its subtree) under n. Styles of the moved
// elements are resolved anew against their new ancestors.
func (n *Node) AppendChild(child *Node) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	n.AddChild(child)
	restyle(child)
}

func restyle(n *Node) {
	if n.Type != ElementNode {
		return
	}
	var parentStyle *css.Style
	if n.Parent != nil {
		parentStyle = n.Parent.Style
	}
	n.Style = css.NewStyle(n.TagName, parentStyle)
	for _, c := range n.Children {
		restyle(c)
	}
}

// RemoveChild removes the given child from this node's children list,
// clears its parent pointer, and returns the removed child.
// Returns nil if child is not found.
func (n *Node) RemoveChild(child *Node) *Node {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			return child
		}
	}
	return nil
}

// EffectiveStyle is the style used to lay out and paint n: its own for an
// element, the parent's for a text node. A parentless text node falls
// back to the root defaults.
func (n *Node) EffectiveStyle() *css.Style {
	if n.Type == TextNode {
		if n.Parent != nil && n.Parent.Style != nil {
			return n.Parent.Style
		}
		return css.Root()
	}
	if n.Style == nil {
		return css.Root()
	}
	return n.Style
}

// Walk visits n and its descendants in document order. Returning false
// from fn skips the children of the visited node.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// TextContent concatenates the text of all descendant text nodes.
func (n *Node) TextContent() string {
	if n.Type == TextNode {
		return n.Text
	}
	var sb strings.Builder
	for _, child := range n.Children {
		sb.WriteString(child.TextContent())
	}
	return sb.String()
}

// ElementsByTag collects all elements below and including n with the
// given tag name.
func (n *Node) ElementsByTag(tag string) []*Node {
	var result []*Node
	n.Walk(func(c *Node) bool {
		if c.Type == ElementNode && c.TagName == tag {
			result = append(result, c)
		}
		return true
	})
	return result
}

// ElementByID returns the first element with a matching id attribute.
func (n *Node) ElementByID(id string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if v, ok := c.GetAttribute("id"); ok && c.Type == ElementNode && v == id {
			found = c
			return false
		}
		return true
	})
	return found
}

// Ancestor returns the nearest ancestor element (n excluded) with the
// given tag name.
func (n *Node) Ancestor(tag string) *Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.TagName == tag {
			return p
		}
	}
	return nil
}

// ResetBoxes clears the layout output of n and its descendants.
func (n *Node) ResetBoxes() {
	n.Walk(func(c *Node) bool {
		c.Box = nil
		return true
	})
}
