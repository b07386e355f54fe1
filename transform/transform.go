package transform

import (
	"fmt"

	"github.com/prosetree/tables/model"
)

// Transform accumulates edits against a document, producing a new document
// per step while the originals stay untouched. Positions from before any
// step can be carried forward through Mapping.
type Transform struct {
	Doc *model.Node

	// Selection optionally carries the selection the editing code wants
	// after this transform. The transform layer does not interpret it.
	Selection any

	mapping Mapping
	steps   int
	meta    map[string]any
}

func New(doc *model.Node) *Transform {
	return &Transform{Doc: doc}
}

func (t *Transform) Mapping() *Mapping { return &t.mapping }

// DocChanged reports whether any step has been applied.
func (t *Transform) DocChanged() bool { return t.steps > 0 }

func (t *Transform) SetMeta(key string, v any) {
	if t.meta == nil {
		t.meta = map[string]any{}
	}
	t.meta[key] = v
}

func (t *Transform) GetMeta(key string) any {
	return t.meta[key]
}

// Delete removes the content between from and to.
func (t *Transform) Delete(from, to int) {
	t.Doc = replaceNodes(t.Doc, from, to, nil)
	t.mapping.appendMap(NewStepMap(from, to-from, 0))
	t.steps++
}

// Insert places nodes at pos.
func (t *Transform) Insert(pos int, nodes ...*model.Node) {
	t.ReplaceWith(pos, pos, nodes...)
}

// ReplaceWith replaces the content between from and to with nodes.
func (t *Transform) ReplaceWith(from, to int, nodes ...*model.Node) {
	t.Doc = replaceNodes(t.Doc, from, to, nodes)
	t.mapping.appendMap(NewStepMap(from, to-from, nodesSize(nodes)))
	t.steps++
}

// SetNodeAttrs swaps the type and/or attrs of the node starting at pos,
// keeping its content. A nil typ keeps the current type; sizes are
// unaffected so the step maps positions unchanged.
func (t *Transform) SetNodeAttrs(pos int, typ *model.NodeType, attrs *model.CellAttrs) {
	r := model.Resolve(t.Doc, pos)
	node := r.NodeAfter()
	if node == nil {
		panic(fmt.Sprintf("transform: no node at position %d", pos))
	}
	if typ == nil {
		typ = node.Type()
	}
	t.Doc = replaceNodes(t.Doc, pos, pos+node.NodeSize(), []*model.Node{node.WithType(typ, attrs)})
	t.mapping.appendMap(IdentityStepMap)
	t.steps++
}

func nodesSize(nodes []*model.Node) int {
	size := 0
	for _, n := range nodes {
		size += n.NodeSize()
	}
	return size
}

// replaceNodes rebuilds doc with the children between from and to replaced.
// Both positions must sit at node boundaries under the same parent; table
// edits only ever cut between whole nodes, so anything else is a caller
// bug.
func replaceNodes(doc *model.Node, from, to int, repl []*model.Node) *model.Node {
	if to < from {
		panic(fmt.Sprintf("transform: inverted replace range %d..%d", from, to))
	}
	rf := model.Resolve(doc, from)
	rt := model.Resolve(doc, to)
	if !rf.AtNodeBoundary() || !rt.AtNodeBoundary() {
		panic(fmt.Sprintf("transform: replace range %d..%d not at node boundaries", from, to))
	}
	if rf.Depth() != rt.Depth() || rf.Parent() != rt.Parent() {
		panic(fmt.Sprintf("transform: replace range %d..%d crosses parents", from, to))
	}
	depth := rf.Depth()
	parent := rf.Parent()
	i, j := rf.Index(depth), rt.Index(depth)

	kids := make([]*model.Node, 0, parent.ChildCount()+len(repl)-(j-i))
	kids = append(kids, parent.Content()[:i]...)
	kids = append(kids, repl...)
	kids = append(kids, parent.Content()[j:]...)
	node := parent.Copy(kids...)

	for d := depth; d > 0; d-- {
		p := rf.Node(d - 1)
		idx := rf.Index(d - 1)
		pk := p.Content()
		pk[idx] = node
		node = p.Copy(pk...)
	}
	return node
}
