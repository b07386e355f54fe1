package tables

import (
	"github.com/prosetree/tables/debug"
	"github.com/prosetree/tables/model"
	"github.com/prosetree/tables/tablemap"
	"github.com/prosetree/tables/transform"
)

// The commands in this file rewrite the table's whole row fragment in one
// replace step rather than issuing per-cell edits. Spans that straddle
// the selected band make the rewrite ambiguous, so those make the command
// inapplicable.

// cellOffsets returns, per row, the table-relative offset of each of the
// row's cells, in child order.
func cellOffsets(table *model.Node) [][]int {
	res := make([][]int, table.ChildCount())
	off := 0
	for r := 0; r < table.ChildCount(); r++ {
		row := table.Child(r)
		cellOff := off + 1
		offs := make([]int, row.ChildCount())
		for c := 0; c < row.ChildCount(); c++ {
			offs[c] = cellOff
			cellOff += row.Child(c).NodeSize()
		}
		res[r] = offs
		off += row.NodeSize()
	}
	return res
}

// replaceRows swaps the table's entire row fragment and returns the new
// table's start so callers can rebuild the selection.
func replaceRows(tr *transform.Transform, rect *TableRect, rows []*model.Node) {
	tr.ReplaceWith(rect.TableStart, rect.TableStart+rect.Table.ContentSize(), rows...)
}

// bandSelection selects the grid band between two corner slots of the
// freshly rebuilt table.
func bandSelection(doc *model.Node, tableStart, anchorSlot, headSlot int, axis tablemap.Axis) *CellSelection {
	table := doc.NodeAt(tableStart - 1)
	m := tablemap.Get(table)
	anchor := model.Resolve(doc, tableStart+m.Map[anchorSlot])
	head := model.Resolve(doc, tableStart+m.Map[headSlot])
	if axis == tablemap.Horiz {
		return RowSelection(anchor, head)
	}
	return ColSelection(anchor, head)
}

// DuplicateRow copies the selected rows and inserts the copy directly
// below them, then selects the copy. Not applicable while a cell's
// rowspan straddles the band boundary.
func DuplicateRow(state *State, dispatch func(*transform.Transform)) bool {
	rect := SelectedRect(state)
	if rect == nil {
		return false
	}
	band := tablemap.Rect{Left: 0, Top: rect.Top, Right: rect.Map.Width, Bottom: rect.Bottom}
	if cellsOverlapRectangle(rect.Map, band) {
		return false
	}
	if dispatch != nil {
		debug.Commandf("duplicateRow band=%d..%d table@%d\n", rect.Top, rect.Bottom, rect.TableStart)
		kids := rect.Table.Content()
		rows := make([]*model.Node, 0, len(kids)+rect.Height())
		rows = append(rows, kids[:rect.Bottom]...)
		rows = append(rows, kids[rect.Top:rect.Bottom]...)
		rows = append(rows, kids[rect.Bottom:]...)

		tr := state.Tr()
		replaceRows(tr, rect, rows)
		w := rect.Map.Width
		newTop, newBottom := rect.Bottom, rect.Bottom+rect.Height()
		tr.Selection = bandSelection(tr.Doc, rect.TableStart,
			newTop*w, (newBottom-1)*w+w-1, tablemap.Horiz)
		dispatch(tr)
	}
	return true
}

// DuplicateColumn copies the selected columns and inserts the copy
// directly to their right, then selects the copy. Not applicable while a
// cell's colspan straddles the band boundary.
func DuplicateColumn(state *State, dispatch func(*transform.Transform)) bool {
	rect := SelectedRect(state)
	if rect == nil {
		return false
	}
	band := tablemap.Rect{Left: rect.Left, Top: 0, Right: rect.Right, Bottom: rect.Map.Height}
	if cellsOverlapRectangle(rect.Map, band) {
		return false
	}
	if dispatch != nil {
		debug.Commandf("duplicateColumn band=%d..%d table@%d\n", rect.Left, rect.Right, rect.TableStart)
		offs := cellOffsets(rect.Table)
		rows := make([]*model.Node, rect.Table.ChildCount())
		for r := 0; r < rect.Table.ChildCount(); r++ {
			row := rect.Table.Child(r)
			kids := row.Content()
			var dups []*model.Node
			insertAt := 0
			for c, off := range offs[r] {
				cr := rect.Map.FindCell(off)
				if cr.Left >= rect.Right {
					break
				}
				insertAt = c + 1
				if cr.Left >= rect.Left && cr.Top == r {
					dups = append(dups, kids[c])
				}
			}
			merged := make([]*model.Node, 0, len(kids)+len(dups))
			merged = append(merged, kids[:insertAt]...)
			merged = append(merged, dups...)
			merged = append(merged, kids[insertAt:]...)
			rows[r] = row.Copy(merged...)
		}

		tr := state.Tr()
		replaceRows(tr, rect, rows)
		newLeft, newRight := rect.Right, rect.Right+rect.Width()
		tr.Selection = bandSelection(tr.Doc, rect.TableStart,
			newLeft, newRight-1, tablemap.Vert)
		dispatch(tr)
	}
	return true
}

// clearBand empties every cell that intersects the band, keeping types
// and span attributes, then reselects the band.
func clearBand(state *State, dispatch func(*transform.Transform), band tablemap.Rect, axis tablemap.Axis) bool {
	rect := SelectedRect(state)
	if rect == nil {
		return false
	}
	if axis == tablemap.Horiz {
		band = tablemap.Rect{Left: 0, Top: band.Top, Right: rect.Map.Width, Bottom: band.Bottom}
	} else {
		band = tablemap.Rect{Left: band.Left, Top: 0, Right: band.Right, Bottom: rect.Map.Height}
	}
	if dispatch != nil {
		clear := map[int]bool{}
		for _, pos := range rect.Map.CellsInRect(band) {
			clear[pos] = true
		}
		offs := cellOffsets(rect.Table)
		rows := make([]*model.Node, rect.Table.ChildCount())
		for r := 0; r < rect.Table.ChildCount(); r++ {
			row := rect.Table.Child(r)
			kids := row.Content()
			for c := range kids {
				if clear[offs[r][c]] && !kids[c].IsEmptyCellContent() {
					kids[c] = kids[c].Copy(model.EmptyParagraph())
				}
			}
			rows[r] = row.Copy(kids...)
		}

		tr := state.Tr()
		replaceRows(tr, rect, rows)
		w := rect.Map.Width
		var anchorSlot, headSlot int
		if axis == tablemap.Horiz {
			anchorSlot, headSlot = band.Top*w, (band.Bottom-1)*w+w-1
		} else {
			anchorSlot, headSlot = band.Left, (rect.Map.Height-1)*w+band.Right-1
		}
		tr.Selection = bandSelection(tr.Doc, rect.TableStart, anchorSlot, headSlot, axis)
		dispatch(tr)
	}
	return true
}

// ClearRowContent empties every cell intersecting the selected rows.
func ClearRowContent(state *State, dispatch func(*transform.Transform)) bool {
	rect := SelectedRect(state)
	if rect == nil {
		return false
	}
	return clearBand(state, dispatch, rect.Rect, tablemap.Horiz)
}

// ClearColumnContent empties every cell intersecting the selected columns.
func ClearColumnContent(state *State, dispatch func(*transform.Transform)) bool {
	rect := SelectedRect(state)
	if rect == nil {
		return false
	}
	return clearBand(state, dispatch, rect.Rect, tablemap.Vert)
}
