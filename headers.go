package tables

import (
	"github.com/prosetree/tables/debug"
	"github.com/prosetree/tables/model"
	"github.com/prosetree/tables/tablemap"
	"github.com/prosetree/tables/transform"
)

// HeaderScope names what ToggleHeader flips.
type HeaderScope int

const (
	HeaderRow HeaderScope = iota
	HeaderColumn
	HeaderCell
)

func (s HeaderScope) String() string {
	switch s {
	case HeaderRow:
		return "row"
	case HeaderColumn:
		return "column"
	case HeaderCell:
		return "cell"
	}
	return "unknown"
}

// ToggleHeaderOptions selects between the current first-band semantics and
// the older selection-based behavior.
type ToggleHeaderOptions struct {
	// UseDeprecatedLogic flips the cells covered by the selection instead
	// of the table's first row or column. Kept for compatibility with
	// documents produced by older hosts.
	UseDeprecatedLogic bool
}

// headerBandUniform reports whether every cell intersecting the first row
// (scope HeaderRow) or first column (scope HeaderColumn) is a header cell.
func headerBandUniform(scope HeaderScope, rect *TableRect) bool {
	band := tablemap.Rect{Left: 0, Top: 0, Right: 1, Bottom: 1}
	if scope == HeaderRow {
		band.Right = rect.Map.Width
	} else {
		band.Bottom = rect.Map.Height
	}
	for _, pos := range rect.Map.CellsInRect(band) {
		if rect.Table.NodeAt(pos).Type() != model.HeaderCell {
			return false
		}
	}
	return true
}

// ToggleHeader flips the first row, first column, or the selected cells
// between plain and header type. The first band toggles based on whether
// it is currently uniformly header-typed; when the crossing band is
// already header, the shared corner cell is left to that band.
func ToggleHeader(scope HeaderScope, options ToggleHeaderOptions) Command {
	if options.UseDeprecatedLogic {
		return deprecatedToggleHeader(scope)
	}
	return func(state *State, dispatch func(*transform.Transform)) bool {
		if !IsInTable(state) {
			return false
		}
		if dispatch != nil {
			rect := SelectedRect(state)
			tr := state.Tr()
			rowEnabled := headerBandUniform(HeaderRow, rect)
			colEnabled := headerBandUniform(HeaderColumn, rect)

			// Skip the corner when the crossing band is already header.
			startsAt := 0
			if scope == HeaderColumn && rowEnabled || scope == HeaderRow && colEnabled {
				startsAt = 1
			}

			var band tablemap.Rect
			var newType *model.NodeType
			switch scope {
			case HeaderColumn:
				band = tablemap.Rect{Left: 0, Top: startsAt, Right: 1, Bottom: rect.Map.Height}
				newType = model.HeaderCell
				if colEnabled {
					newType = model.Cell
				}
			case HeaderRow:
				band = tablemap.Rect{Left: startsAt, Top: 0, Right: rect.Map.Width, Bottom: 1}
				newType = model.HeaderCell
				if rowEnabled {
					newType = model.Cell
				}
			default:
				band = rect.Rect
				newType = model.Cell
			}
			debug.Commandf("toggleHeader scope=%s band=%+v type=%s\n", scope, band, newType.Name)
			for _, relPos := range rect.Map.CellsInRect(band) {
				pos := relPos + rect.TableStart
				if cell := tr.Doc.NodeAt(pos); cell != nil {
					tr.SetNodeAttrs(pos, newType, cell.Attrs())
				}
			}
			dispatch(tr)
		}
		return true
	}
}

// deprecatedToggleHeader converts any header cells covered by the
// selection band to plain cells; if there were none, it converts the
// whole band to header cells.
func deprecatedToggleHeader(scope HeaderScope) Command {
	return func(state *State, dispatch func(*transform.Transform)) bool {
		if !IsInTable(state) {
			return false
		}
		if dispatch != nil {
			rect := SelectedRect(state)
			tr := state.Tr()
			band := rect.Rect
			switch scope {
			case HeaderColumn:
				band = tablemap.Rect{Left: rect.Left, Top: 0, Right: rect.Right, Bottom: rect.Map.Height}
			case HeaderRow:
				band = tablemap.Rect{Left: 0, Top: rect.Top, Right: rect.Map.Width, Bottom: rect.Bottom}
			}
			cells := rect.Map.CellsInRect(band)
			nodes := make([]*model.Node, len(cells))
			for i, pos := range cells {
				nodes[i] = rect.Table.NodeAt(pos)
			}
			for i, pos := range cells {
				if nodes[i].Type() == model.HeaderCell {
					tr.SetNodeAttrs(rect.TableStart+pos, model.Cell, nodes[i].Attrs())
				}
			}
			if !tr.DocChanged() {
				for i, pos := range cells {
					tr.SetNodeAttrs(rect.TableStart+pos, model.HeaderCell, nodes[i].Attrs())
				}
			}
			dispatch(tr)
		}
		return true
	}
}

// ToggleHeaderRow toggles the first row between header and plain cells.
func ToggleHeaderRow(state *State, dispatch func(*transform.Transform)) bool {
	return ToggleHeader(HeaderRow, ToggleHeaderOptions{})(state, dispatch)
}

// ToggleHeaderColumn toggles the first column between header and plain cells.
func ToggleHeaderColumn(state *State, dispatch func(*transform.Transform)) bool {
	return ToggleHeader(HeaderColumn, ToggleHeaderOptions{})(state, dispatch)
}

// ToggleHeaderCell toggles the selected cells between header and plain:
// any header cell in the band turns plain, and when none were headers the
// whole band turns header.
func ToggleHeaderCell(state *State, dispatch func(*transform.Transform)) bool {
	return ToggleHeader(HeaderCell, ToggleHeaderOptions{UseDeprecatedLogic: true})(state, dispatch)
}
