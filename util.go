package tables

import (
	"github.com/prosetree/tables/model"
	"github.com/prosetree/tables/tablemap"
)

// CellAround returns the position immediately before the cell the given
// position sits inside, or nil when the position is not inside a cell.
func CellAround(pos *model.ResolvedPos) *model.ResolvedPos {
	for d := pos.Depth() - 1; d > 0; d-- {
		if pos.Node(d).Type().Role == model.RoleRow {
			return model.Resolve(root(pos), pos.Before(d+1))
		}
	}
	return nil
}

// CellWrapping returns the cell node the position sits inside, or nil.
func CellWrapping(pos *model.ResolvedPos) *model.Node {
	for d := pos.Depth(); d > 0; d-- {
		if pos.Node(d).Type().IsCell() {
			return pos.Node(d)
		}
	}
	return nil
}

// PointsAtCell reports whether the position sits immediately before a cell
// in a row.
func PointsAtCell(pos *model.ResolvedPos) bool {
	if pos.Parent().Type().Role != model.RoleRow {
		return false
	}
	after := pos.NodeAfter()
	return after != nil && after.Type().IsCell()
}

// MoveCellForward returns the position just after the cell the given
// position points at.
func MoveCellForward(pos *model.ResolvedPos) *model.ResolvedPos {
	return model.Resolve(root(pos), pos.Pos+pos.NodeAfter().NodeSize())
}

// InSameTable reports whether two cell positions address the same table.
func InSameTable(a, b *model.ResolvedPos) bool {
	return a.Depth() == b.Depth() && a.Pos >= b.Start(-1) && a.Pos <= b.End(-1)
}

func root(pos *model.ResolvedPos) *model.Node { return pos.Node(0) }

// IsInTable reports whether the state's selection head is inside a table.
func IsInTable(state *State) bool {
	head := resolvedHead(state)
	if head == nil {
		return false
	}
	for d := head.Depth(); d > 0; d-- {
		if head.Node(d).Type().Role == model.RoleRow {
			return true
		}
	}
	return false
}

func resolvedHead(state *State) *model.ResolvedPos {
	switch sel := state.Selection.(type) {
	case *CellSelection:
		return sel.HeadCell
	case *RangeSelection:
		return model.Resolve(state.Doc, sel.Head)
	}
	return nil
}

// selectionCell returns the position of the cell the selection is anchored
// in: the later of the two cells of a cell selection, or the cell around
// an ordinary selection's head. Nil when the selection is not in a cell.
func selectionCell(state *State) *model.ResolvedPos {
	switch sel := state.Selection.(type) {
	case *CellSelection:
		if sel.AnchorCell.Pos > sel.HeadCell.Pos {
			return sel.AnchorCell
		}
		return sel.HeadCell
	case *RangeSelection:
		return CellAround(model.Resolve(state.Doc, sel.Head))
	}
	return nil
}

// RemoveColSpan returns attrs with n columns removed starting at the given
// span offset, dropping the matching colwidth entries. A width array left
// with no real widths becomes nil.
func RemoveColSpan(attrs *model.CellAttrs, pos, n int) *model.CellAttrs {
	res := attrs.WithColspan(attrs.Colspan - n)
	if res.Colwidth != nil {
		res.Colwidth = append(res.Colwidth[:pos], res.Colwidth[pos+n:]...)
		real := false
		for _, w := range res.Colwidth {
			if w > 0 {
				real = true
				break
			}
		}
		if !real {
			res.Colwidth = nil
		}
	}
	return res
}

// AddColSpan returns attrs with n columns inserted at the given span
// offset, padding the colwidth array with unset entries.
func AddColSpan(attrs *model.CellAttrs, pos, n int) *model.CellAttrs {
	res := attrs.WithColspan(attrs.Colspan + n)
	if res.Colwidth != nil {
		widened := make([]int, 0, len(res.Colwidth)+n)
		widened = append(widened, res.Colwidth[:pos]...)
		widened = append(widened, make([]int, n)...)
		widened = append(widened, res.Colwidth[pos:]...)
		res.Colwidth = widened
	}
	return res
}

// ColumnIsHeader reports whether every cell covering the column is a
// header cell.
func ColumnIsHeader(m *tablemap.TableMap, table *model.Node, col int) bool {
	for row := 0; row < m.Height; row++ {
		if table.NodeAt(m.Map[col+row*m.Width]).Type() != model.HeaderCell {
			return false
		}
	}
	return true
}

// RowIsHeader reports whether every cell covering the row is a header
// cell.
func RowIsHeader(m *tablemap.TableMap, table *model.Node, row int) bool {
	for col := 0; col < m.Width; col++ {
		if table.NodeAt(m.Map[col+row*m.Width]).Type() != model.HeaderCell {
			return false
		}
	}
	return true
}
