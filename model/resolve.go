package model

import "fmt"

// ResolvedPos is a position annotated with its chain of ancestor nodes,
// enabling O(depth) context queries. Depth arguments to its methods may be
// negative, counting up from the position's own depth (-1 is the parent's
// parent, and so on).
type ResolvedPos struct {
	Pos int

	nodes   []*Node // ancestor chain, nodes[0] is the document
	indexes []int   // child index entered (or boundary index) per depth
	befores []int   // absolute position before the child at indexes[d]
}

// Resolve computes the resolved form of a position in doc. The position
// must lie within the document; anything else is a caller bug and panics.
func Resolve(doc *Node, pos int) *ResolvedPos {
	if pos < 0 || pos > doc.ContentSize() {
		panic(fmt.Sprintf("model: position %d outside of document (size %d)", pos, doc.ContentSize()))
	}
	r := &ResolvedPos{Pos: pos}
	start := 0
	parentOffset := pos
	node := doc
	for {
		index, offset := node.findIndex(parentOffset)
		rem := parentOffset - offset
		r.nodes = append(r.nodes, node)
		r.indexes = append(r.indexes, index)
		r.befores = append(r.befores, start+offset)
		if rem == 0 {
			break
		}
		child := node.Child(index)
		if child.typ == Text {
			break
		}
		node = child
		parentOffset = rem - 1
		start += offset + 1
	}
	return r
}

// Depth is the number of ancestors between the position and the document
// root; 0 means the position points directly into the document.
func (r *ResolvedPos) Depth() int { return len(r.nodes) - 1 }

func (r *ResolvedPos) resolveDepth(d int) int {
	if d < 0 {
		d = r.Depth() + d
	}
	if d < 0 || d > r.Depth() {
		panic(fmt.Sprintf("model: depth %d out of range for position %d", d, r.Pos))
	}
	return d
}

// Node returns the ancestor node at the given depth.
func (r *ResolvedPos) Node(d int) *Node { return r.nodes[r.resolveDepth(d)] }

// Index returns the child index pointed at within the node at depth d.
func (r *ResolvedPos) Index(d int) int { return r.indexes[r.resolveDepth(d)] }

// IndexAfter returns the index of the child after the position at depth d.
func (r *ResolvedPos) IndexAfter(d int) int {
	d = r.resolveDepth(d)
	i := r.indexes[d]
	if d == r.Depth() && r.textOffset() == 0 {
		return i
	}
	return i + 1
}

// Start returns the position at the start of the node at depth d's content.
func (r *ResolvedPos) Start(d int) int {
	d = r.resolveDepth(d)
	if d == 0 {
		return 0
	}
	return r.befores[d-1] + 1
}

// End returns the position at the end of the node at depth d's content.
func (r *ResolvedPos) End(d int) int {
	d = r.resolveDepth(d)
	return r.Start(d) + r.nodes[d].ContentSize()
}

// Before returns the position immediately before the node at depth d.
func (r *ResolvedPos) Before(d int) int {
	d = r.resolveDepth(d)
	if d == 0 {
		panic("model: no position before the document")
	}
	return r.befores[d-1]
}

// After returns the position immediately after the node at depth d.
func (r *ResolvedPos) After(d int) int {
	d = r.resolveDepth(d)
	if d == 0 {
		panic("model: no position after the document")
	}
	return r.befores[d-1] + r.nodes[d].NodeSize()
}

// Parent is the node the position points directly into.
func (r *ResolvedPos) Parent() *Node { return r.nodes[r.Depth()] }

// textOffset is how far the position sits inside a text node, 0 when the
// position is at a node boundary.
func (r *ResolvedPos) textOffset() int {
	return r.Pos - r.befores[len(r.befores)-1]
}

// NodeAfter returns the node directly after the position, nil at the end of
// the parent. Inside a text node the remainder of the text is returned.
func (r *ResolvedPos) NodeAfter() *Node {
	parent := r.Parent()
	index := r.Index(r.Depth())
	if index == parent.ChildCount() {
		return nil
	}
	child := parent.Child(index)
	if off := r.textOffset(); off > 0 {
		return NewText(string([]rune(child.Text())[off:]))
	}
	return child
}

// NodeBefore returns the node directly before the position, nil at the
// start of the parent.
func (r *ResolvedPos) NodeBefore() *Node {
	index := r.Index(r.Depth())
	if off := r.textOffset(); off > 0 {
		child := r.Parent().Child(index)
		return NewText(string([]rune(child.Text())[:off]))
	}
	if index == 0 {
		return nil
	}
	return r.Parent().Child(index - 1)
}

// AtNodeBoundary reports whether the position sits between nodes rather
// than inside a text node.
func (r *ResolvedPos) AtNodeBoundary() bool { return r.textOffset() == 0 }
