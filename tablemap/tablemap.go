// Package tablemap derives a flat width x height grid from a table node and
// answers geometric queries over it. The map is a pure function of the
// table node; because nodes are immutable and share structure, maps are
// memoized by node identity.
package tablemap

import (
	"fmt"

	"github.com/prosetree/tables/model"
)

// Rect is an axis-aligned grid rectangle; Right and Bottom are exclusive.
type Rect struct {
	Left, Top, Right, Bottom int
}

func (r Rect) Width() int  { return r.Right - r.Left }
func (r Rect) Height() int { return r.Bottom - r.Top }

// Axis selects the direction of a neighbor lookup.
type Axis int

const (
	Horiz Axis = iota
	Vert
)

// TableMap gives, for every grid slot, the offset (relative to the start of
// the table node) of the cell covering it. A spanning cell's offset appears
// in every slot it covers. Offset 0 never addresses a cell, so it doubles
// as the unfilled sentinel while building.
type TableMap struct {
	Width    int
	Height   int
	Map      []int
	Problems []Problem
}

// FindCell returns the rectangle covered by the cell at the given offset.
// Asking about an offset that is not a cell in this map is a caller bug.
func (m *TableMap) FindCell(pos int) Rect {
	for i, curPos := range m.Map {
		if curPos != pos {
			continue
		}
		left, top := i%m.Width, i/m.Width
		right, bottom := left+1, top+1
		for right < m.Width && m.Map[top*m.Width+right] == curPos {
			right++
		}
		for bottom < m.Height && m.Map[bottom*m.Width+left] == curPos {
			bottom++
		}
		return Rect{Left: left, Top: top, Right: right, Bottom: bottom}
	}
	panic(fmt.Sprintf("tablemap: no cell with offset %d found", pos))
}

// ColCount returns the grid column of the cell at the given offset.
func (m *TableMap) ColCount(pos int) int {
	for i, curPos := range m.Map {
		if curPos == pos {
			return i % m.Width
		}
	}
	panic(fmt.Sprintf("tablemap: no cell with offset %d found", pos))
}

// RowCount returns the grid row of the cell at the given offset.
func (m *TableMap) RowCount(pos int) int {
	for i, curPos := range m.Map {
		if curPos == pos {
			return i / m.Width
		}
	}
	panic(fmt.Sprintf("tablemap: no cell with offset %d found", pos))
}

// NextCell returns the offset of the cell across the given cell's boundary
// on the given axis, or -1 at the table edge.
func (m *TableMap) NextCell(pos int, axis Axis, dir int) int {
	r := m.FindCell(pos)
	if axis == Horiz {
		if dir < 0 && r.Left == 0 || dir > 0 && r.Right == m.Width {
			return -1
		}
		if dir < 0 {
			return m.Map[r.Top*m.Width+r.Left-1]
		}
		return m.Map[r.Top*m.Width+r.Right]
	}
	if dir < 0 && r.Top == 0 || dir > 0 && r.Bottom == m.Height {
		return -1
	}
	if dir < 0 {
		return m.Map[r.Left+m.Width*(r.Top-1)]
	}
	return m.Map[r.Left+m.Width*r.Bottom]
}

// RectBetween returns the smallest rectangle covering both cells,
// regardless of which comes first.
func (m *TableMap) RectBetween(a, b int) Rect {
	ra, rb := m.FindCell(a), m.FindCell(b)
	return Rect{
		Left:   min(ra.Left, rb.Left),
		Top:    min(ra.Top, rb.Top),
		Right:  max(ra.Right, rb.Right),
		Bottom: max(ra.Bottom, rb.Bottom),
	}
}

// CellsInRect returns the distinct cell offsets visible in the rectangle,
// each reported once at its top-left-most point of entry. A spanning cell
// only partially inside the rectangle is still reported.
func (m *TableMap) CellsInRect(rect Rect) []int {
	var result []int
	seen := map[int]bool{}
	for row := rect.Top; row < rect.Bottom; row++ {
		for col := rect.Left; col < rect.Right; col++ {
			pos := m.Map[row*m.Width+col]
			if seen[pos] {
				continue
			}
			seen[pos] = true
			result = append(result, pos)
		}
	}
	return result
}

// PositionAt computes the table-relative offset at which a cell at the
// given grid coordinate starts, or would be inserted, skipping slots
// claimed by rowspans from earlier rows.
func (m *TableMap) PositionAt(row, col int, table *model.Node) int {
	rowStart := 0
	for i := 0; ; i++ {
		rowEnd := rowStart + table.Child(i).NodeSize()
		if i == row {
			index := col + row*m.Width
			rowEndIndex := (row + 1) * m.Width
			// skip slots covered by earlier rows' rowspans
			for index < rowEndIndex && m.Map[index] < rowStart {
				index++
			}
			if index == rowEndIndex {
				return rowEnd - 1
			}
			return m.Map[index]
		}
		rowStart = rowEnd
	}
}

// Get returns the memoized table map for the given table node, computing
// it on first use.
func Get(table *model.Node) *TableMap {
	if m := readFromCache(table); m != nil {
		return m
	}
	return addToCache(table, computeMap(table))
}

func computeMap(table *model.Node) *TableMap {
	if table.Type().Role != model.RoleTable {
		panic(fmt.Sprintf("tablemap: not a table node: %s", table.Type()))
	}
	width := findWidth(table)
	height := table.ChildCount()
	m := &TableMap{Width: width, Height: height, Map: make([]int, width*height)}
	colWidths := make([]int, width*2)
	haveWidths := false

	mapPos := 0
	pos := 0
	for row := 0; row < height; row++ {
		rowNode := table.Child(row)
		pos++
		for i := 0; ; i++ {
			for mapPos < len(m.Map) && m.Map[mapPos] != 0 {
				mapPos++
			}
			if i == rowNode.ChildCount() {
				break
			}
			cellNode := rowNode.Child(i)
			attrs := cellNode.Attrs()
			for h := 0; h < attrs.Rowspan; h++ {
				if h+row >= height {
					m.Problems = append(m.Problems, Problem{Kind: OverlongRowspan, Pos: pos, N: attrs.Rowspan - h})
					break
				}
				start := mapPos + h*width
				for w := 0; w < attrs.Colspan; w++ {
					if m.Map[start+w] == 0 {
						m.Map[start+w] = pos
					} else {
						m.Problems = append(m.Problems, Problem{Kind: Collision, Row: row, Pos: pos, N: attrs.Colspan - w})
					}
					colW := 0
					if w < len(attrs.Colwidth) {
						colW = attrs.Colwidth[w]
					}
					if colW != 0 {
						widthIndex := ((start + w) % width) * 2
						prev := colWidths[widthIndex]
						if prev == 0 || (prev != colW && colWidths[widthIndex+1] == 1) {
							colWidths[widthIndex] = colW
							colWidths[widthIndex+1] = 1
						} else if prev == colW {
							colWidths[widthIndex+1]++
						}
						haveWidths = true
					}
				}
			}
			mapPos += attrs.Colspan
			pos += cellNode.NodeSize()
		}
		expectedPos := (row + 1) * width
		missing := 0
		for mapPos < expectedPos {
			if m.Map[mapPos] == 0 {
				missing++
			}
			mapPos++
		}
		if missing > 0 {
			m.Problems = append(m.Problems, Problem{Kind: Missing, Row: row, N: missing})
		}
		pos++
	}
	if width == 0 || height == 0 {
		m.Problems = append(m.Problems, Problem{Kind: ZeroSized})
	}

	if haveWidths {
		badWidths := false
		for i := 0; i < len(colWidths); i += 2 {
			if colWidths[i] != 0 && colWidths[i+1] < height {
				badWidths = true
				break
			}
		}
		if badWidths {
			findBadColWidths(m, colWidths, table)
		}
	}
	return m
}

// findWidth computes the table's width as the maximum effective row width,
// counting columns claimed by rowspans carried down from earlier rows.
func findWidth(table *model.Node) int {
	width := -1
	hasRowSpan := false
	for row := 0; row < table.ChildCount(); row++ {
		rowNode := table.Child(row)
		rowWidth := 0
		if hasRowSpan {
			for j := 0; j < row; j++ {
				prevRow := table.Child(j)
				for i := 0; i < prevRow.ChildCount(); i++ {
					cell := prevRow.Child(i)
					if j+cell.Attrs().Rowspan > row {
						rowWidth += cell.Attrs().Colspan
					}
				}
			}
		}
		for i := 0; i < rowNode.ChildCount(); i++ {
			cell := rowNode.Child(i)
			rowWidth += cell.Attrs().Colspan
			if cell.Attrs().Rowspan > 1 {
				hasRowSpan = true
			}
		}
		if width == -1 {
			width = rowWidth
		} else if width != rowWidth {
			width = max(width, rowWidth)
		}
	}
	if width == -1 {
		return 0
	}
	return width
}

// findBadColWidths records, for every cell whose declared widths disagree
// with the column consensus, a corrected per-cell width array. The
// corrections are put first so that repair rewrites widths before it moves
// anything.
func findBadColWidths(m *TableMap, colWidths []int, table *model.Node) {
	var fixes []Problem
	seen := map[int]bool{}
	for i, pos := range m.Map {
		if pos == 0 || seen[pos] {
			continue
		}
		seen[pos] = true
		node := table.NodeAt(pos)
		if node == nil {
			continue
		}
		attrs := node.Attrs()
		var updated []int
		for j := 0; j < attrs.Colspan; j++ {
			col := (i + j) % m.Width
			colWidth := colWidths[col*2]
			declared := 0
			if j < len(attrs.Colwidth) {
				declared = attrs.Colwidth[j]
			}
			if colWidth != 0 && (attrs.Colwidth == nil || declared != colWidth) {
				if updated == nil {
					updated = freshColWidth(attrs)
				}
				updated[j] = colWidth
			}
		}
		if updated != nil {
			fixes = append(fixes, Problem{Kind: ColwidthMismatch, Pos: pos, Colwidth: updated})
		}
	}
	m.Problems = append(fixes, m.Problems...)
}

func freshColWidth(attrs *model.CellAttrs) []int {
	res := make([]int, attrs.Colspan)
	copy(res, attrs.Colwidth)
	return res
}
