package model

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Node is an immutable document node. Edits never mutate a node; they build
// new nodes and share unchanged children by reference, so two equal subtrees
// are the same pointer and pointer identity is a sound cache key.
type Node struct {
	typ      *NodeType
	attrs    *CellAttrs
	children []*Node
	text     string
	size     int
}

// NewNode builds a node of the given type. Cell types get default attrs
// when attrs is nil; non-cell types ignore attrs.
func NewNode(typ *NodeType, attrs *CellAttrs, children ...*Node) *Node {
	if typ == Text {
		panic("model: use NewText for text nodes")
	}
	if typ.IsCell() && attrs == nil {
		attrs = DefaultCellAttrs()
	}
	if !typ.IsCell() {
		attrs = nil
	}
	n := &Node{typ: typ, attrs: attrs, children: children}
	n.size = 2
	for _, c := range children {
		n.size += c.size
	}
	return n
}

// NewText builds a text leaf. Its size is its length in runes.
func NewText(text string) *Node {
	return &Node{typ: Text, text: text, size: utf8.RuneCountInString(text)}
}

// EmptyParagraph is the canonical "empty" block content of a fresh cell.
func EmptyParagraph() *Node { return NewNode(Paragraph, nil) }

// EmptyCell builds a cell of the given type filled with an empty paragraph,
// the minimal content a cell can hold.
func EmptyCell(typ *NodeType) *Node {
	return EmptyCellWithAttrs(typ, nil)
}

func EmptyCellWithAttrs(typ *NodeType, attrs *CellAttrs) *Node {
	if !typ.IsCell() {
		panic(fmt.Sprintf("model: EmptyCell of non-cell type %s", typ))
	}
	return NewNode(typ, attrs, EmptyParagraph())
}

func (n *Node) Type() *NodeType { return n.typ }

// Attrs returns the cell attrs, or defaults for non-cell nodes. The result
// must not be mutated; use the With* helpers to derive new attrs.
func (n *Node) Attrs() *CellAttrs {
	if n.attrs == nil {
		return DefaultCellAttrs()
	}
	return n.attrs
}

func (n *Node) Text() string { return n.text }

func (n *Node) ChildCount() int { return len(n.children) }

func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		panic(fmt.Sprintf("model: child index %d out of range (%d children)", i, len(n.children)))
	}
	return n.children[i]
}

// Content returns a copy of the children slice.
func (n *Node) Content() []*Node {
	res := make([]*Node, len(n.children))
	copy(res, n.children)
	return res
}

func (n *Node) FirstChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[0]
}

func (n *Node) LastChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[len(n.children)-1]
}

// NodeSize is the node's footprint in token positions: rune count for text,
// 2 plus the children's sizes otherwise (one token to enter, one to leave).
func (n *Node) NodeSize() int { return n.size }

// ContentSize is the size of the node's content, excluding its own two
// boundary tokens.
func (n *Node) ContentSize() int {
	if n.typ == Text {
		return 0
	}
	return n.size - 2
}

// Copy returns a node with the same type and attrs over new children.
func (n *Node) Copy(children ...*Node) *Node {
	if n.typ == Text {
		panic("model: cannot Copy a text node with children")
	}
	return NewNode(n.typ, n.attrs, children...)
}

// WithAttrs returns the node with replaced attrs, sharing children.
func (n *Node) WithAttrs(attrs *CellAttrs) *Node {
	return NewNode(n.typ, attrs, n.children...)
}

// WithType returns the node with replaced type and attrs, sharing children.
// Used to flip cells between plain and header.
func (n *Node) WithType(typ *NodeType, attrs *CellAttrs) *Node {
	return NewNode(typ, attrs, n.children...)
}

// SameMarkup reports whether two nodes have the same type and attrs.
func (n *Node) SameMarkup(other *Node) bool {
	if n.typ != other.typ {
		return false
	}
	if !n.typ.IsCell() {
		return true
	}
	return n.Attrs().Eq(other.Attrs())
}

// IsEmptyCellContent reports whether the node (a cell) holds only the
// canonical empty content: a single childless textblock.
func (n *Node) IsEmptyCellContent() bool {
	return n.ChildCount() == 1 &&
		n.children[0].typ == Paragraph &&
		n.children[0].ChildCount() == 0
}

// TextContent concatenates the text of all descendants, separating block
// children with newlines.
func (n *Node) TextContent() string {
	if n.typ == Text {
		return n.text
	}
	var parts []string
	for _, c := range n.children {
		parts = append(parts, c.TextContent())
	}
	if n.typ == Doc || n.typ.IsCell() {
		return strings.Join(parts, "\n")
	}
	return strings.Join(parts, "")
}

// findIndex locates the child at content offset off. It returns the child
// index and the offset at which that child starts; when off falls exactly
// on a boundary, start == off and index is the child after the boundary.
func (n *Node) findIndex(off int) (index, start int) {
	if off == 0 {
		return 0, 0
	}
	if off == n.ContentSize() {
		return len(n.children), off
	}
	cur := 0
	for i, c := range n.children {
		end := cur + c.size
		if off < end {
			return i, cur
		}
		if off == end {
			return i + 1, end
		}
		cur = end
	}
	panic(fmt.Sprintf("model: content offset %d out of range", off))
}

// NodeAt returns the node starting at the given position relative to this
// node's content, or nil when no node starts there.
func (n *Node) NodeAt(pos int) *Node {
	node := n
	for {
		index, start := node.findIndex(pos)
		if index == node.ChildCount() && pos > start {
			return nil
		}
		if index == node.ChildCount() {
			return nil
		}
		child := node.Child(index)
		if start == pos || child.typ == Text {
			return child
		}
		node = child
		pos -= start + 1
	}
}

// Descendants walks all descendant nodes depth-first, calling f with each
// node and its position in this node's content. Returning false skips the
// node's children.
func (n *Node) Descendants(f func(node *Node, pos int) bool) {
	n.nodesBetween(f, 0)
}

func (n *Node) nodesBetween(f func(node *Node, pos int) bool, base int) {
	off := 0
	for _, c := range n.children {
		if f(c, base+off) && c.typ != Text {
			c.nodesBetween(f, base+off+1)
		}
		off += c.size
	}
}

func (n *Node) String() string {
	if n.typ == Text {
		return fmt.Sprintf("%q", n.text)
	}
	var b strings.Builder
	b.WriteString(n.typ.Name)
	if n.typ.IsCell() {
		a := n.Attrs()
		if a.Colspan != 1 || a.Rowspan != 1 {
			fmt.Fprintf(&b, "[%dx%d]", a.Colspan, a.Rowspan)
		}
	}
	if len(n.children) > 0 {
		b.WriteString("(")
		for i, c := range n.children {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(c.String())
		}
		b.WriteString(")")
	}
	return b.String()
}
