package tables

import (
	"github.com/prosetree/tables/debug"
	"github.com/prosetree/tables/model"
	"github.com/prosetree/tables/tablemap"
	"github.com/prosetree/tables/transform"
)

// FixTablesMeta marks corrective transforms so hosts can keep them out of
// the undo history.
const FixTablesMeta = "fix-tables"

// FixTables inspects every table in the state's document, or only the
// tables that changed since oldState when one is given, and returns a
// transform that repairs the problems the grid map found. Returns nil
// when nothing needs fixing.
func FixTables(state, oldState *State) *transform.Transform {
	var tr *transform.Transform
	check := func(node *model.Node, pos int) {
		if node.Type().Role == model.RoleTable {
			tr = fixTable(state, node, pos, tr)
		}
	}
	if oldState == nil {
		state.Doc.Descendants(func(node *model.Node, pos int) bool {
			check(node, pos)
			return true
		})
	} else if oldState.Doc != state.Doc {
		changedDescendants(oldState.Doc, state.Doc, 0, check)
	}
	return tr
}

// changedDescendants calls f on every updated node in cur, comparing
// against old by identity. Structural sharing makes untouched subtrees
// pointer-equal, so the scan skips them wholesale.
func changedDescendants(old, cur *model.Node, offset int, f func(node *model.Node, pos int)) {
	oldSize, curSize := old.ChildCount(), cur.ChildCount()
outer:
	for i, j := 0, 0; i < curSize; i++ {
		child := cur.Child(i)
		for scan, e := j, min(oldSize, i+3); scan < e; scan++ {
			if old.Child(scan) == child {
				j = scan + 1
				offset += child.NodeSize()
				continue outer
			}
		}
		f(child, offset)
		if j < oldSize && old.Child(j).SameMarkup(child) {
			changedDescendants(old.Child(j), child, offset+1, f)
		} else {
			base := offset + 1
			child.Descendants(func(n *model.Node, pos int) bool {
				f(n, base+pos)
				return true
			})
		}
		offset += child.NodeSize()
	}
}

// fixTable produces repair steps for a single table, appending them to tr
// (or starting a fresh transform when tr is nil). tablePos addresses the
// position directly before the table in the pre-repair document.
func fixTable(state *State, table *model.Node, tablePos int, tr *transform.Transform) *transform.Transform {
	m := tablemap.Get(table)
	if len(m.Problems) == 0 {
		return tr
	}
	if tr == nil {
		tr = state.Tr()
	}
	debug.Repairf("fixTable table@%d problems=%d\n", tablePos, len(m.Problems))

	// Track how many cells each row ends up short.
	mustAdd := make([]int, m.Height)
	for _, prob := range m.Problems {
		switch prob.Kind {
		case tablemap.Collision:
			cell := table.NodeAt(prob.Pos)
			if cell == nil {
				continue
			}
			attrs := cell.Attrs()
			for j := 0; j < attrs.Rowspan; j++ {
				mustAdd[prob.Row+j] += prob.N
			}
			tr.SetNodeAttrs(tr.Mapping().Map(tablePos+1+prob.Pos), nil,
				RemoveColSpan(attrs, attrs.Colspan-prob.N, prob.N))
		case tablemap.Missing:
			mustAdd[prob.Row] += prob.N
		case tablemap.OverlongRowspan:
			cell := table.NodeAt(prob.Pos)
			if cell == nil {
				continue
			}
			tr.SetNodeAttrs(tr.Mapping().Map(tablePos+1+prob.Pos), nil,
				cell.Attrs().WithRowspan(cell.Attrs().Rowspan-prob.N))
		case tablemap.ColwidthMismatch:
			cell := table.NodeAt(prob.Pos)
			if cell == nil {
				continue
			}
			tr.SetNodeAttrs(tr.Mapping().Map(tablePos+1+prob.Pos), nil,
				cell.Attrs().WithColwidth(prob.Colwidth))
		case tablemap.ZeroSized:
			pos := tr.Mapping().Map(tablePos)
			tr.Delete(pos, pos+table.NodeSize())
		}
	}

	first, last := -1, -1
	for i, add := range mustAdd {
		if add > 0 {
			if first == -1 {
				first = i
			}
			last = i
		}
	}
	for i, pos := 0, tablePos+1; i < m.Height; i++ {
		row := table.Child(i)
		end := pos + row.NodeSize()
		if add := mustAdd[i]; add > 0 {
			typ := model.Cell
			if fc := row.FirstChild(); fc != nil && fc.Type().Role == model.RoleHeaderCell {
				typ = model.HeaderCell
			}
			nodes := make([]*model.Node, add)
			for j := range nodes {
				nodes[j] = model.EmptyCell(typ)
			}
			// Pad at the row's front when the shortfall hugs the top of
			// the table, otherwise at its end.
			side := end - 1
			if (i == 0 || first == i-1) && last == i {
				side = pos + 1
			}
			tr.Insert(tr.Mapping().Map(side), nodes...)
		}
		pos = end
	}
	tr.SetMeta(FixTablesMeta, true)
	return tr
}
