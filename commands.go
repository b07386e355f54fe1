package tables

import (
	"github.com/prosetree/tables/debug"
	"github.com/prosetree/tables/model"
	"github.com/prosetree/tables/tablemap"
	"github.com/prosetree/tables/transform"
)

// TableRect is a grid rectangle annotated with the table it belongs to,
// handed to the low-level mutation helpers.
type TableRect struct {
	tablemap.Rect
	Table      *model.Node
	TableStart int
	Map        *tablemap.TableMap
}

// refresh re-reads the table and its map after a sub-step has shifted
// positions; offsets computed against the previous map are stale.
func (r *TableRect) refresh(doc *model.Node) {
	r.Table = doc.NodeAt(r.TableStart - 1)
	r.Map = tablemap.Get(r.Table)
}

// SelectedRect returns the rectangle covered by the current cell
// selection, or the single cell containing the cursor. Nil when the
// selection is not in a table.
func SelectedRect(state *State) *TableRect {
	cell := selectionCell(state)
	if cell == nil {
		return nil
	}
	table := cell.Node(-1)
	tableStart := cell.Start(-1)
	m := tablemap.Get(table)
	res := &TableRect{Table: table, TableStart: tableStart, Map: m}
	if sel, ok := state.Selection.(*CellSelection); ok {
		res.Rect = m.RectBetween(sel.AnchorCell.Pos-tableStart, sel.HeadCell.Pos-tableStart)
	} else {
		res.Rect = m.FindCell(cell.Pos - tableStart)
	}
	return res
}

// addColumn inserts a column at the given grid position. A cell whose span
// crosses the position grows instead of being split; otherwise a new cell
// is inserted whose type mirrors a reference neighboring column: the left
// neighbor when inserting to the right of column zero, the column at col
// otherwise. When that reference column is uniformly header, the reference
// moves to the column at col, except at the extreme edges where new cells
// default to plain.
func addColumn(tr *transform.Transform, rect *TableRect, col int) {
	debug.Commandf("addColumn col=%d table@%d\n", col, rect.TableStart)
	haveRef := true
	refColumn := 0
	if col > 0 {
		refColumn = -1
	}
	if ColumnIsHeader(rect.Map, rect.Table, col+refColumn) {
		if col == 0 || col == rect.Map.Width {
			haveRef = false
		} else {
			refColumn = 0
		}
	}
	for row := 0; row < rect.Map.Height; row++ {
		index := row*rect.Map.Width + col
		// a cell spanning across col grows instead of splitting
		if col > 0 && col < rect.Map.Width && rect.Map.Map[index-1] == rect.Map.Map[index] {
			pos := rect.Map.Map[index]
			cell := rect.Table.NodeAt(pos)
			tr.SetNodeAttrs(tr.Mapping().Map(rect.TableStart+pos), nil,
				AddColSpan(cell.Attrs(), col-rect.Map.ColCount(pos), 1))
			row += cell.Attrs().Rowspan - 1
			continue
		}
		typ := model.Cell
		if haveRef {
			typ = rect.Table.NodeAt(rect.Map.Map[index+refColumn]).Type()
		}
		pos := rect.Map.PositionAt(row, col, rect.Table)
		tr.Insert(tr.Mapping().Map(rect.TableStart+pos), model.EmptyCell(typ))
	}
}

// AddColumnBefore inserts a column before the selected columns.
func AddColumnBefore(state *State, dispatch func(*transform.Transform)) bool {
	if !IsInTable(state) {
		return false
	}
	if dispatch != nil {
		rect := SelectedRect(state)
		tr := state.Tr()
		addColumn(tr, rect, rect.Left)
		dispatch(tr)
	}
	return true
}

// AddColumnAfter inserts a column after the selected columns.
func AddColumnAfter(state *State, dispatch func(*transform.Transform)) bool {
	if !IsInTable(state) {
		return false
	}
	if dispatch != nil {
		rect := SelectedRect(state)
		tr := state.Tr()
		addColumn(tr, rect, rect.Right)
		dispatch(tr)
	}
	return true
}

// removeColumn deletes the given grid column: spans crossing it shrink,
// cells wholly inside it are deleted.
func removeColumn(tr *transform.Transform, rect *TableRect, col int) {
	debug.Commandf("removeColumn col=%d table@%d\n", col, rect.TableStart)
	mapStart := tr.Mapping().Len()
	for row := 0; row < rect.Map.Height; {
		index := row*rect.Map.Width + col
		pos := rect.Map.Map[index]
		cell := rect.Table.NodeAt(pos)
		attrs := cell.Attrs()
		// part of a col-spanning cell
		if col > 0 && rect.Map.Map[index-1] == pos || col < rect.Map.Width-1 && rect.Map.Map[index+1] == pos {
			tr.SetNodeAttrs(tr.Mapping().Slice(mapStart).Map(rect.TableStart+pos), nil,
				RemoveColSpan(attrs, col-rect.Map.ColCount(pos), 1))
		} else {
			start := tr.Mapping().Slice(mapStart).Map(rect.TableStart + pos)
			tr.Delete(start, start+cell.NodeSize())
		}
		row += attrs.Rowspan
	}
}

// DeleteColumn removes the selected columns. Deleting every column of the
// table is rejected. Columns are removed right to left so position shifts
// from earlier sub-steps cannot invalidate later lookups.
func DeleteColumn(state *State, dispatch func(*transform.Transform)) bool {
	if !IsInTable(state) {
		return false
	}
	rect := SelectedRect(state)
	if rect.Left == 0 && rect.Right == rect.Map.Width {
		return false
	}
	if dispatch != nil {
		tr := state.Tr()
		for i := rect.Right - 1; ; i-- {
			removeColumn(tr, rect, i)
			if i == rect.Left {
				break
			}
			rect.refresh(tr.Doc)
		}
		dispatch(tr)
	}
	return true
}

// addRow inserts a row at the given grid row. Cells whose rowspan crosses
// the position grow; the new row's cell types mirror a reference
// neighboring row under the same policy as addColumn.
func addRow(tr *transform.Transform, rect *TableRect, row int) {
	debug.Commandf("addRow row=%d table@%d\n", row, rect.TableStart)
	rowPos := rect.TableStart
	for i := 0; i < row; i++ {
		rowPos += rect.Table.Child(i).NodeSize()
	}
	haveRef := true
	refRow := 0
	if row > 0 {
		refRow = -1
	}
	if RowIsHeader(rect.Map, rect.Table, row+refRow) {
		if row == 0 || row == rect.Map.Height {
			haveRef = false
		} else {
			refRow = 0
		}
	}
	var cells []*model.Node
	for col, index := 0, rect.Map.Width*row; col < rect.Map.Width; col, index = col+1, index+1 {
		// covered by a rowspan cell crossing this row
		if row > 0 && row < rect.Map.Height && rect.Map.Map[index] == rect.Map.Map[index-rect.Map.Width] {
			pos := rect.Map.Map[index]
			attrs := rect.Table.NodeAt(pos).Attrs()
			tr.SetNodeAttrs(rect.TableStart+pos, nil, attrs.WithRowspan(attrs.Rowspan+1))
			col += attrs.Colspan - 1
			index += attrs.Colspan - 1
			continue
		}
		typ := model.Cell
		if haveRef {
			typ = rect.Table.NodeAt(rect.Map.Map[index+refRow*rect.Map.Width]).Type()
		}
		cells = append(cells, model.EmptyCell(typ))
	}
	tr.Insert(rowPos, model.NewNode(model.Row, nil, cells...))
}

// AddRowBefore inserts a row above the selected rows.
func AddRowBefore(state *State, dispatch func(*transform.Transform)) bool {
	if !IsInTable(state) {
		return false
	}
	if dispatch != nil {
		rect := SelectedRect(state)
		tr := state.Tr()
		addRow(tr, rect, rect.Top)
		dispatch(tr)
	}
	return true
}

// AddRowAfter inserts a row below the selected rows.
func AddRowAfter(state *State, dispatch func(*transform.Transform)) bool {
	if !IsInTable(state) {
		return false
	}
	if dispatch != nil {
		rect := SelectedRect(state)
		tr := state.Tr()
		addRow(tr, rect, rect.Bottom)
		dispatch(tr)
	}
	return true
}

// removeRow deletes the given grid row. A cell whose span starts above the
// row has its rowspan decremented in place; a cell that starts in the row
// but continues below is recreated one row down with the remaining span.
func removeRow(tr *transform.Transform, rect *TableRect, row int) {
	debug.Commandf("removeRow row=%d table@%d\n", row, rect.TableStart)
	rowPos := 0
	for i := 0; i < row; i++ {
		rowPos += rect.Table.Child(i).NodeSize()
	}
	nextRow := rowPos + rect.Table.Child(row).NodeSize()
	mapFrom := tr.Mapping().Len()
	tr.Delete(rowPos+rect.TableStart, nextRow+rect.TableStart)

	seen := map[int]bool{}
	for col, index := 0, row*rect.Map.Width; col < rect.Map.Width; col, index = col+1, index+1 {
		pos := rect.Map.Map[index]
		if seen[pos] {
			continue
		}
		seen[pos] = true
		if row > 0 && pos == rect.Map.Map[index-rect.Map.Width] {
			// spans from above: shrink in place
			attrs := rect.Table.NodeAt(pos).Attrs()
			tr.SetNodeAttrs(tr.Mapping().Slice(mapFrom).Map(pos+rect.TableStart), nil,
				attrs.WithRowspan(attrs.Rowspan-1))
			col += attrs.Colspan - 1
			index += attrs.Colspan - 1
		} else if row < rect.Map.Height-1 && pos == rect.Map.Map[index+rect.Map.Width] {
			// starts here but continues below: recreate one row down
			cell := rect.Table.NodeAt(pos)
			attrs := cell.Attrs()
			copied := cell.WithAttrs(attrs.WithRowspan(attrs.Rowspan - 1))
			newPos := rect.Map.PositionAt(row+1, col, rect.Table)
			tr.Insert(tr.Mapping().Slice(mapFrom).Map(rect.TableStart+newPos), copied)
			col += attrs.Colspan - 1
			index += attrs.Colspan - 1
		}
	}
}

// DeleteRow removes the selected rows. Deleting every row is rejected.
// Rows are removed bottom to top for the same reason columns go right to
// left.
func DeleteRow(state *State, dispatch func(*transform.Transform)) bool {
	if !IsInTable(state) {
		return false
	}
	rect := SelectedRect(state)
	if rect.Top == 0 && rect.Bottom == rect.Map.Height {
		return false
	}
	if dispatch != nil {
		tr := state.Tr()
		for i := rect.Bottom - 1; ; i-- {
			removeRow(tr, rect, i)
			if i == rect.Top {
				break
			}
			rect.refresh(tr.Doc)
		}
		dispatch(tr)
	}
	return true
}

// DeleteTable removes the table around the selection head.
func DeleteTable(state *State, dispatch func(*transform.Transform)) bool {
	head := resolvedHead(state)
	if head == nil {
		return false
	}
	for d := head.Depth(); d > 0; d-- {
		if head.Node(d).Type().Role == model.RoleTable {
			if dispatch != nil {
				tr := state.Tr()
				tr.Delete(head.Before(d), head.After(d))
				dispatch(tr)
			}
			return true
		}
	}
	return false
}

// SetCellAttrs rewrites attrs of every selected cell through fn, which
// receives each cell's current attrs and returns the replacement. Returns
// false when no cell would change.
func SetCellAttrs(fn func(attrs *model.CellAttrs) *model.CellAttrs) Command {
	return func(state *State, dispatch func(*transform.Transform)) bool {
		if !IsInTable(state) {
			return false
		}
		cell := selectionCell(state)
		changed := false
		if sel, ok := state.Selection.(*CellSelection); ok {
			sel.ForEachCell(func(node *model.Node, pos int) {
				if !fn(node.Attrs()).Eq(node.Attrs()) {
					changed = true
				}
			})
		} else {
			changed = !fn(cell.NodeAfter().Attrs()).Eq(cell.NodeAfter().Attrs())
		}
		if !changed {
			return false
		}
		if dispatch != nil {
			tr := state.Tr()
			if sel, ok := state.Selection.(*CellSelection); ok {
				sel.ForEachCell(func(node *model.Node, pos int) {
					next := fn(node.Attrs())
					if !next.Eq(node.Attrs()) {
						tr.SetNodeAttrs(pos, nil, next)
					}
				})
			} else {
				tr.SetNodeAttrs(cell.Pos, nil, fn(cell.NodeAfter().Attrs()))
			}
			dispatch(tr)
		}
		return true
	}
}

// GoToNextCell moves the selection to the next (dir > 0) or previous
// (dir < 0) cell, wrapping across row boundaries. At the table's first or
// last cell it reports false so the caller can fall through to non-table
// behavior.
func GoToNextCell(dir int) Command {
	return func(state *State, dispatch func(*transform.Transform)) bool {
		if !IsInTable(state) {
			return false
		}
		cell := selectionCell(state)
		if cell == nil {
			return false
		}
		next, ok := findNextCell(cell, dir)
		if !ok {
			return false
		}
		if dispatch != nil {
			tr := state.Tr()
			target := model.Resolve(state.Doc, next)
			tr.Selection = &RangeSelection{Anchor: next + 1, Head: next + target.NodeAfter().NodeSize() - 1}
			dispatch(tr)
		}
		return true
	}
}

func findNextCell(cell *model.ResolvedPos, dir int) (int, bool) {
	if dir < 0 {
		if before := cell.NodeBefore(); before != nil {
			return cell.Pos - before.NodeSize(), true
		}
		rowEnd := cell.Before(cell.Depth())
		for row := cell.Index(-1) - 1; row >= 0; row-- {
			rowNode := cell.Node(-1).Child(row)
			if rowNode.ChildCount() > 0 {
				return rowEnd - 1 - rowNode.LastChild().NodeSize(), true
			}
			rowEnd -= rowNode.NodeSize()
		}
		return 0, false
	}
	if cell.Index(cell.Depth()) < cell.Parent().ChildCount()-1 {
		return cell.Pos + cell.NodeAfter().NodeSize(), true
	}
	table := cell.Node(-1)
	rowStart := cell.After(cell.Depth())
	for row := cell.IndexAfter(-1); row < table.ChildCount(); row++ {
		rowNode := table.Child(row)
		if rowNode.ChildCount() > 0 {
			return rowStart + 1, true
		}
		rowStart += rowNode.NodeSize()
	}
	return 0, false
}
