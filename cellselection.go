package tables

import (
	"fmt"

	"github.com/prosetree/tables/model"
	"github.com/prosetree/tables/tablemap"
	"github.com/prosetree/tables/transform"
)

// CellSelection is a rectangular selection of table cells, identified by
// the positions immediately before its anchor and head cells. The covered
// rectangle and member cells are derived from the grid map, not stored.
type CellSelection struct {
	AnchorCell *model.ResolvedPos
	HeadCell   *model.ResolvedPos
}

// NewCellSelection builds a cell selection between two cell positions in
// the same table. Passing positions that do not point at cells of one
// table is a caller bug.
func NewCellSelection(anchorCell, headCell *model.ResolvedPos) *CellSelection {
	if headCell == nil {
		headCell = anchorCell
	}
	if !PointsAtCell(anchorCell) || !PointsAtCell(headCell) {
		panic(fmt.Sprintf("tables: cell selection positions %d/%d do not point at cells",
			anchorCell.Pos, headCell.Pos))
	}
	if !InSameTable(anchorCell, headCell) {
		panic(fmt.Sprintf("tables: cell selection positions %d/%d are in different tables",
			anchorCell.Pos, headCell.Pos))
	}
	return &CellSelection{AnchorCell: anchorCell, HeadCell: headCell}
}

// Table returns the table both cells belong to.
func (s *CellSelection) Table() *model.Node { return s.AnchorCell.Node(-1) }

// TableStart returns the position of the table's content start.
func (s *CellSelection) TableStart() int { return s.AnchorCell.Start(-1) }

// Rect returns the grid rectangle covered by the selection.
func (s *CellSelection) Rect() tablemap.Rect {
	m := tablemap.Get(s.Table())
	start := s.TableStart()
	return m.RectBetween(s.AnchorCell.Pos-start, s.HeadCell.Pos-start)
}

// SelRange is a content range of one member cell.
type SelRange struct {
	From, To int
}

// Ranges returns the content ranges of the member cells, the head cell's
// range first.
func (s *CellSelection) Ranges() []SelRange {
	table := s.Table()
	start := s.TableStart()
	m := tablemap.Get(table)
	headPos := s.HeadCell.Pos - start
	ranges := make([]SelRange, 0, 4)
	add := func(pos int) {
		cell := table.NodeAt(pos)
		ranges = append(ranges, SelRange{From: start + pos + 1, To: start + pos + cell.NodeSize() - 1})
	}
	add(headPos)
	for _, pos := range m.CellsInRect(s.Rect()) {
		if pos != headPos {
			add(pos)
		}
	}
	return ranges
}

// ForEachCell calls f for every member cell with its node and absolute
// position.
func (s *CellSelection) ForEachCell(f func(cell *model.Node, pos int)) {
	table := s.Table()
	start := s.TableStart()
	m := tablemap.Get(table)
	for _, pos := range m.CellsInRect(s.Rect()) {
		f(table.NodeAt(pos), start+pos)
	}
}

// IsColSelection reports whether the selected cells' combined row spans
// reach from the table's top edge to its bottom edge.
func (s *CellSelection) IsColSelection() bool {
	anchorTop := s.AnchorCell.Index(-1)
	headTop := s.HeadCell.Index(-1)
	if min(anchorTop, headTop) > 0 {
		return false
	}
	anchorBottom := anchorTop + s.AnchorCell.NodeAfter().Attrs().Rowspan
	headBottom := headTop + s.HeadCell.NodeAfter().Attrs().Rowspan
	return max(anchorBottom, headBottom) == s.Table().ChildCount()
}

// IsRowSelection reports whether the selected cells' combined column spans
// reach from the table's left edge to its right edge.
func (s *CellSelection) IsRowSelection() bool {
	table := s.Table()
	start := s.TableStart()
	m := tablemap.Get(table)
	anchorLeft := m.ColCount(s.AnchorCell.Pos - start)
	headLeft := m.ColCount(s.HeadCell.Pos - start)
	if min(anchorLeft, headLeft) > 0 {
		return false
	}
	anchorRight := anchorLeft + s.AnchorCell.NodeAfter().Attrs().Colspan
	headRight := headLeft + s.HeadCell.NodeAfter().Attrs().Colspan
	return max(anchorRight, headRight) == m.Width
}

// ColSelection returns a cell selection extended to cover the anchor and
// head cells' columns in full.
func ColSelection(anchorCell, headCell *model.ResolvedPos) *CellSelection {
	if headCell == nil {
		headCell = anchorCell
	}
	m := tablemap.Get(anchorCell.Node(-1))
	start := anchorCell.Start(-1)
	doc := root(anchorCell)
	anchorRect := m.FindCell(anchorCell.Pos - start)
	headRect := m.FindCell(headCell.Pos - start)
	if anchorRect.Top <= headRect.Top {
		if anchorRect.Top > 0 {
			anchorCell = model.Resolve(doc, start+m.Map[anchorRect.Left])
		}
		if headRect.Bottom < m.Height {
			headCell = model.Resolve(doc, start+m.Map[m.Width*(m.Height-1)+headRect.Right-1])
		}
	} else {
		if headRect.Top > 0 {
			headCell = model.Resolve(doc, start+m.Map[headRect.Left])
		}
		if anchorRect.Bottom < m.Height {
			anchorCell = model.Resolve(doc, start+m.Map[m.Width*(m.Height-1)+anchorRect.Right-1])
		}
	}
	return NewCellSelection(anchorCell, headCell)
}

// RowSelection returns a cell selection extended to cover the anchor and
// head cells' rows in full.
func RowSelection(anchorCell, headCell *model.ResolvedPos) *CellSelection {
	if headCell == nil {
		headCell = anchorCell
	}
	m := tablemap.Get(anchorCell.Node(-1))
	start := anchorCell.Start(-1)
	doc := root(anchorCell)
	anchorRect := m.FindCell(anchorCell.Pos - start)
	headRect := m.FindCell(headCell.Pos - start)
	if anchorRect.Left <= headRect.Left {
		if anchorRect.Left > 0 {
			anchorCell = model.Resolve(doc, start+m.Map[anchorRect.Top*m.Width])
		}
		if headRect.Right < m.Width {
			headCell = model.Resolve(doc, start+m.Map[m.Width*(headRect.Top+1)-1])
		}
	} else {
		if headRect.Left > 0 {
			headCell = model.Resolve(doc, start+m.Map[headRect.Top*m.Width])
		}
		if anchorRect.Right < m.Width {
			anchorCell = model.Resolve(doc, start+m.Map[m.Width*(anchorRect.Top+1)-1])
		}
	}
	return NewCellSelection(anchorCell, headCell)
}

// Map carries the selection across an edit. When both ends still point at
// cells of one table the rectangle is reconstructed, going through the
// full-row/full-column constructors when the selection was a full band and
// the table changed identity, so full selections stay full. Otherwise the
// selection degrades to an ordinary range selection.
func (s *CellSelection) Map(doc *model.Node, mapping *transform.Mapping) Selection {
	anchor := mapping.Map(s.AnchorCell.Pos)
	head := mapping.Map(s.HeadCell.Pos)
	a := model.Resolve(doc, clampPos(doc, anchor))
	h := model.Resolve(doc, clampPos(doc, head))
	if PointsAtCell(a) && PointsAtCell(h) && InSameTable(a, h) {
		tableChanged := s.Table() != a.Node(-1)
		switch {
		case tableChanged && s.IsRowSelection():
			return RowSelection(a, h)
		case tableChanged && s.IsColSelection():
			return ColSelection(a, h)
		default:
			return NewCellSelection(a, h)
		}
	}
	return &RangeSelection{Anchor: anchor, Head: head}
}

// Content extracts the selected rectangle as row nodes. Cells whose span
// crosses the rectangle boundary are trimmed: the remainder that starts
// inside the rectangle keeps its content, remainders entering from outside
// become empty filler cells of the trimmed size.
func (s *CellSelection) Content() []*model.Node {
	table := s.Table()
	m := tablemap.Get(table)
	rect := s.Rect()
	seen := map[int]bool{}
	rows := make([]*model.Node, 0, rect.Height())
	for row := rect.Top; row < rect.Bottom; row++ {
		var rowContent []*model.Node
		for col := rect.Left; col < rect.Right; col++ {
			pos := m.Map[row*m.Width+col]
			if seen[pos] {
				continue
			}
			seen[pos] = true
			cellRect := m.FindCell(pos)
			cell := table.NodeAt(pos)
			extraLeft := rect.Left - cellRect.Left
			extraRight := cellRect.Right - rect.Right
			if extraLeft > 0 || extraRight > 0 {
				attrs := cell.Attrs()
				if extraLeft > 0 {
					attrs = RemoveColSpan(attrs, 0, extraLeft)
				}
				if extraRight > 0 {
					attrs = RemoveColSpan(attrs, attrs.Colspan-extraRight, extraRight)
				}
				if cellRect.Left < rect.Left {
					cell = model.EmptyCellWithAttrs(cell.Type(), attrs)
				} else {
					cell = cell.WithAttrs(attrs)
				}
			}
			if cellRect.Top < rect.Top || cellRect.Bottom > rect.Bottom {
				attrs := cell.Attrs().WithRowspan(min(cellRect.Bottom, rect.Bottom) - max(cellRect.Top, rect.Top))
				if cellRect.Top < rect.Top {
					cell = model.EmptyCellWithAttrs(cell.Type(), attrs)
				} else {
					cell = cell.WithAttrs(attrs)
				}
			}
			rowContent = append(rowContent, cell)
		}
		rows = append(rows, table.Child(row).Copy(rowContent...))
	}
	return rows
}

// Replace gives the first selected cell the supplied content and clears
// the remaining cells to the canonical empty content. The selection after
// the edit becomes an ordinary selection near the head cell.
func (s *CellSelection) Replace(tr *transform.Transform, content ...*model.Node) {
	mapFrom := tr.Mapping().Len()
	for i, rng := range s.Ranges() {
		mapping := tr.Mapping().Slice(mapFrom)
		from, to := mapping.Map(rng.From), mapping.Map(rng.To)
		if i == 0 && len(content) > 0 {
			tr.ReplaceWith(from, to, content...)
		} else {
			tr.ReplaceWith(from, to, model.EmptyParagraph())
		}
	}
	near := tr.Mapping().Slice(mapFrom).Map(s.HeadCell.Pos + 1)
	tr.Selection = &RangeSelection{Anchor: near, Head: near}
}

// Eq reports whether the other selection is a cell selection with the same
// anchor and head positions.
func (s *CellSelection) Eq(other Selection) bool {
	o, ok := other.(*CellSelection)
	return ok && o.AnchorCell.Pos == s.AnchorCell.Pos && o.HeadCell.Pos == s.HeadCell.Pos
}

func (s *CellSelection) ToJSON() SelectionJSON {
	return SelectionJSON{Type: "cell", Anchor: s.AnchorCell.Pos, Head: s.HeadCell.Pos}
}
