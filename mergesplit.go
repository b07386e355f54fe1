package tables

import (
	"github.com/prosetree/tables/debug"
	"github.com/prosetree/tables/model"
	"github.com/prosetree/tables/tablemap"
	"github.com/prosetree/tables/transform"
)

// cellsOverlapRectangle reports whether any cell's span straddles the
// rectangle's boundary on either axis.
func cellsOverlapRectangle(m *tablemap.TableMap, rect tablemap.Rect) bool {
	indexTop := rect.Top*m.Width + rect.Left
	indexLeft := indexTop
	indexBottom := (rect.Bottom-1)*m.Width + rect.Left
	indexRight := indexTop + rect.Width() - 1
	for i := rect.Top; i < rect.Bottom; i++ {
		if rect.Left > 0 && m.Map[indexLeft] == m.Map[indexLeft-1] ||
			rect.Right < m.Width && m.Map[indexRight] == m.Map[indexRight+1] {
			return true
		}
		indexLeft += m.Width
		indexRight += m.Width
	}
	for i := rect.Left; i < rect.Right; i++ {
		if rect.Top > 0 && m.Map[indexTop] == m.Map[indexTop-m.Width] ||
			rect.Bottom < m.Height && m.Map[indexBottom] == m.Map[indexBottom+m.Width] {
			return true
		}
		indexTop++
		indexBottom++
	}
	return false
}

// MergeCells merges the cells of the selected rectangle into one. Legal
// only when the rectangle is exactly tiled by its member cells, with none
// straddling its boundary. The top-left cell absorbs the rectangle's span
// and the non-empty content of the other members.
func MergeCells(state *State, dispatch func(*transform.Transform)) bool {
	sel, ok := state.Selection.(*CellSelection)
	if !ok || sel.AnchorCell.Pos == sel.HeadCell.Pos {
		return false
	}
	rect := SelectedRect(state)
	if cellsOverlapRectangle(rect.Map, rect.Rect) {
		return false
	}
	if dispatch != nil {
		debug.Commandf("mergeCells rect=%+v table@%d\n", rect.Rect, rect.TableStart)
		tr := state.Tr()
		seen := map[int]bool{}
		var content []*model.Node
		mergedPos := -1
		var mergedCell *model.Node
		for row := rect.Top; row < rect.Bottom; row++ {
			for col := rect.Left; col < rect.Right; col++ {
				cellPos := rect.Map.Map[row*rect.Map.Width+col]
				if seen[cellPos] {
					continue
				}
				seen[cellPos] = true
				cell := rect.Table.NodeAt(cellPos)
				if mergedPos == -1 {
					mergedPos = cellPos
					mergedCell = cell
					continue
				}
				if !cell.IsEmptyCellContent() {
					content = append(content, cell.Content()...)
				}
				mapped := tr.Mapping().Map(cellPos + rect.TableStart)
				tr.Delete(mapped, mapped+cell.NodeSize())
			}
		}
		attrs := AddColSpan(mergedCell.Attrs(), mergedCell.Attrs().Colspan,
			rect.Width()-mergedCell.Attrs().Colspan)
		attrs = attrs.WithRowspan(rect.Height())
		tr.SetNodeAttrs(mergedPos+rect.TableStart, nil, attrs)
		if len(content) > 0 {
			end := mergedPos + 1 + mergedCell.ContentSize()
			start := end
			if mergedCell.IsEmptyCellContent() {
				start = mergedPos + 1
			}
			tr.ReplaceWith(start+rect.TableStart, end+rect.TableStart, content...)
		}
		mergedCellPos := model.Resolve(tr.Doc, rect.TableStart+mergedPos)
		tr.Selection = NewCellSelection(mergedCellPos, nil)
		dispatch(tr)
	}
	return true
}

// CellTypeFn picks the node type for a cell produced by a split, given the
// original cell and the grid coordinate of the new cell.
type CellTypeFn func(cell *model.Node, row, col int) *model.NodeType

// SplitCell splits a spanning cell back into unit cells, keeping the
// original cell's type for every fragment.
func SplitCell(state *State, dispatch func(*transform.Transform)) bool {
	return SplitCellWithType(func(cell *model.Node, row, col int) *model.NodeType {
		return cell.Type()
	})(state, dispatch)
}

// SplitCellWithType splits a spanning cell into unit cells, asking
// getType for the type of each resulting cell. Applicable only when the
// selection is a single cell with colspan or rowspan above one.
func SplitCellWithType(getType CellTypeFn) Command {
	return func(state *State, dispatch func(*transform.Transform)) bool {
		var cellNode *model.Node
		var cellPos int
		if sel, ok := state.Selection.(*CellSelection); ok {
			if sel.AnchorCell.Pos != sel.HeadCell.Pos {
				return false
			}
			cellNode = sel.AnchorCell.NodeAfter()
			cellPos = sel.AnchorCell.Pos
		} else {
			head := resolvedHead(state)
			if head == nil || CellWrapping(head) == nil {
				return false
			}
			cellNode = CellWrapping(head)
			cellPos = CellAround(head).Pos
		}
		attrs := cellNode.Attrs()
		if attrs.Colspan == 1 && attrs.Rowspan == 1 {
			return false
		}
		if dispatch != nil {
			debug.Commandf("splitCell cell@%d %dx%d\n", cellPos, attrs.Colspan, attrs.Rowspan)
			baseAttrs := attrs.Clone()
			baseAttrs.Rowspan = 1
			baseAttrs.Colspan = 1
			colwidth := attrs.Colwidth
			baseAttrs.Colwidth = nil

			rect := SelectedRect(state)
			tr := state.Tr()
			// per-column attrs inherit a slice of the width array
			colAttrs := make([]*model.CellAttrs, rect.Width())
			for i := range colAttrs {
				a := baseAttrs.Clone()
				if i < len(colwidth) && colwidth[i] > 0 {
					a.Colwidth = []int{colwidth[i]}
				}
				colAttrs[i] = a
			}
			lastCell := -1
			for row := rect.Top; row < rect.Bottom; row++ {
				pos := rect.Map.PositionAt(row, rect.Left, rect.Table)
				if row == rect.Top {
					pos += cellNode.NodeSize()
				}
				for col, i := rect.Left, 0; col < rect.Right; col, i = col+1, i+1 {
					if col == rect.Left && row == rect.Top {
						continue
					}
					typ := getType(cellNode, row, col)
					lastCell = tr.Mapping().MapAssoc(pos+rect.TableStart, 1)
					tr.Insert(lastCell, model.EmptyCellWithAttrs(typ, colAttrs[i]))
				}
			}
			tr.SetNodeAttrs(tr.Mapping().Map(cellPos), getType(cellNode, rect.Top, rect.Left), colAttrs[0])
			if _, ok := state.Selection.(*CellSelection); ok && lastCell >= 0 {
				anchor := model.Resolve(tr.Doc, tr.Mapping().Map(cellPos))
				head := model.Resolve(tr.Doc, lastCell)
				tr.Selection = NewCellSelection(anchor, head)
			}
			dispatch(tr)
		}
		return true
	}
}
