package tables

import (
	"testing"

	"github.com/prosetree/tables/model"
	"github.com/prosetree/tables/tablemap"
	"github.com/prosetree/tables/transform"
)

// Builders for test documents, named after the HTML elements the node
// types correspond to.

func para(text string) *model.Node {
	if text == "" {
		return model.EmptyParagraph()
	}
	return model.NewNode(model.Paragraph, nil, model.NewText(text))
}

func td(text string) *model.Node {
	return model.NewNode(model.Cell, nil, para(text))
}

func th(text string) *model.Node {
	return model.NewNode(model.HeaderCell, nil, para(text))
}

func tdSpan(colspan, rowspan int, text string) *model.Node {
	attrs := &model.CellAttrs{Colspan: colspan, Rowspan: rowspan}
	return model.NewNode(model.Cell, attrs, para(text))
}

func thSpan(colspan, rowspan int, text string) *model.Node {
	attrs := &model.CellAttrs{Colspan: colspan, Rowspan: rowspan}
	return model.NewNode(model.HeaderCell, attrs, para(text))
}

func tdWidth(widths []int, text string) *model.Node {
	attrs := &model.CellAttrs{Colspan: len(widths), Rowspan: 1, Colwidth: widths}
	return model.NewNode(model.Cell, attrs, para(text))
}

func trow(cells ...*model.Node) *model.Node {
	return model.NewNode(model.Row, nil, cells...)
}

func ttable(rows ...*model.Node) *model.Node {
	return model.NewNode(model.Table, nil, rows...)
}

func tdoc(children ...*model.Node) *model.Node {
	return model.NewNode(model.Doc, nil, children...)
}

// cellPositions returns the position before every cell in the document,
// in document order.
func cellPositions(doc *model.Node) []int {
	var res []int
	doc.Descendants(func(n *model.Node, pos int) bool {
		if n.Type().IsCell() {
			res = append(res, pos)
			return false
		}
		return true
	})
	return res
}

// cellSel builds a cell selection between the i-th and j-th cells of the
// document.
func cellSel(t *testing.T, doc *model.Node, anchor, head int) *CellSelection {
	t.Helper()
	cells := cellPositions(doc)
	if anchor >= len(cells) || head >= len(cells) {
		t.Fatalf("document has only %d cells", len(cells))
	}
	return NewCellSelection(model.Resolve(doc, cells[anchor]), model.Resolve(doc, cells[head]))
}

// stateAt builds a state with a range selection at the given position.
func stateAt(doc *model.Node, pos int) *State {
	return &State{Doc: doc, Selection: &RangeSelection{Anchor: pos, Head: pos}}
}

// apply runs a command against the state and fails the test when the
// command reports itself inapplicable.
func apply(t *testing.T, cmd Command, state *State) *State {
	t.Helper()
	var tr *transform.Transform
	if !cmd(state, func(x *transform.Transform) { tr = x }) {
		t.Fatalf("command not applicable")
	}
	if tr == nil {
		t.Fatalf("command applicable but dispatched nothing")
	}
	return state.Apply(tr)
}

// applies runs the command in dry-run mode and reports applicability.
func applies(cmd Command, state *State) bool {
	return cmd(state, nil)
}

// gridOf returns the grid map of the document's first table.
func gridOf(t *testing.T, doc *model.Node) *tablemap.TableMap {
	t.Helper()
	var table *model.Node
	doc.Descendants(func(n *model.Node, pos int) bool {
		if table == nil && n.Type().Role == model.RoleTable {
			table = n
		}
		return false
	})
	if table == nil {
		t.Fatalf("document has no table")
	}
	return tablemap.Get(table)
}
