package tables

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prosetree/tables/model"
)

// doc22 is a 2x2 table with one letter of text per cell. Cell positions
// are a=2, b=7, c=14, d=19; cursor positions inside the text are cell+2.
func doc22() *model.Node {
	return tdoc(ttable(
		trow(td("a"), td("b")),
		trow(td("c"), td("d")),
	))
}

func TestAddColumn(t *testing.T) {
	tests := []struct {
		name   string
		doc    *model.Node
		cursor int
		cmd    Command
		want   *model.Node
	}{
		{
			name:   "after first column",
			doc:    doc22(),
			cursor: 4,
			cmd:    AddColumnAfter,
			want: tdoc(ttable(
				trow(td("a"), td(""), td("b")),
				trow(td("c"), td(""), td("d")),
			)),
		},
		{
			name:   "before first column",
			doc:    doc22(),
			cursor: 4,
			cmd:    AddColumnBefore,
			want: tdoc(ttable(
				trow(td(""), td("a"), td("b")),
				trow(td(""), td("c"), td("d")),
			)),
		},
		{
			name: "before header column stays plain",
			doc: tdoc(ttable(
				trow(th("a"), td("b")),
				trow(th("c"), td("d")),
			)),
			cursor: 4,
			cmd:    AddColumnBefore,
			want: tdoc(ttable(
				trow(td(""), th("a"), td("b")),
				trow(td(""), th("c"), td("d")),
			)),
		},
		{
			// The left neighbor is a header column, so the reference
			// moves to the column at the insertion point instead.
			name: "after header column mirrors right neighbor",
			doc: tdoc(ttable(
				trow(th("a"), th("b"), td("c")),
			)),
			cursor: 9,
			cmd:    AddColumnAfter,
			want: tdoc(ttable(
				trow(th("a"), th("b"), td(""), td("c")),
			)),
		},
		{
			name: "grows cell spanning the insertion point",
			doc: tdoc(ttable(
				trow(tdSpan(2, 1, "ab")),
				trow(td("c"), td("d")),
			)),
			cursor: 17, // inside d
			cmd:    AddColumnBefore,
			want: tdoc(ttable(
				trow(tdSpan(3, 1, "ab")),
				trow(td("c"), td(""), td("d")),
			)),
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			state := apply(t, tc.cmd, stateAt(tc.doc, tc.cursor))
			if d := cmp.Diff(tc.want.String(), state.Doc.String()); d != "" {
				t.Errorf("document mismatch (-want +got):\n%s", d)
			}
		})
	}
}

func TestDeleteColumn(t *testing.T) {
	doc := doc22()
	state := apply(t, DeleteColumn, stateAt(doc, 9)) // cursor in b
	want := tdoc(ttable(trow(td("a")), trow(td("c"))))
	if d := cmp.Diff(want.String(), state.Doc.String()); d != "" {
		t.Errorf("document mismatch (-want +got):\n%s", d)
	}
}

func TestDeleteColumnRejectsWholeTable(t *testing.T) {
	doc := doc22()
	state := &State{Doc: doc, Selection: cellSel(t, doc, 0, 1)}
	if applies(DeleteColumn, state) {
		t.Fatalf("deleting every column should not apply")
	}
}

func TestDeleteColumnShrinksSpans(t *testing.T) {
	doc := tdoc(ttable(
		trow(tdSpan(2, 1, "ab"), td("c")),
		trow(td("d"), td("e"), td("f")),
	))
	// cursor in e, the middle column
	state := apply(t, DeleteColumn, stateAt(doc, 22))
	want := tdoc(ttable(
		trow(td("ab"), td("c")),
		trow(td("d"), td("f")),
	))
	if d := cmp.Diff(want.String(), state.Doc.String()); d != "" {
		t.Errorf("document mismatch (-want +got):\n%s", d)
	}
}

func TestAddRow(t *testing.T) {
	tests := []struct {
		name   string
		doc    *model.Node
		cursor int
		cmd    Command
		want   *model.Node
	}{
		{
			name:   "after first row",
			doc:    doc22(),
			cursor: 4,
			cmd:    AddRowAfter,
			want: tdoc(ttable(
				trow(td("a"), td("b")),
				trow(td(""), td("")),
				trow(td("c"), td("d")),
			)),
		},
		{
			name:   "before first row",
			doc:    doc22(),
			cursor: 4,
			cmd:    AddRowBefore,
			want: tdoc(ttable(
				trow(td(""), td("")),
				trow(td("a"), td("b")),
				trow(td("c"), td("d")),
			)),
		},
		{
			name: "grows cell spanning the insertion point",
			doc: tdoc(ttable(
				trow(tdSpan(1, 2, "a"), td("b")),
				trow(td("c")),
			)),
			cursor: 9, // inside b
			cmd:    AddRowAfter,
			want: tdoc(ttable(
				trow(tdSpan(1, 3, "a"), td("b")),
				trow(td("")),
				trow(td("c")),
			)),
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			state := apply(t, tc.cmd, stateAt(tc.doc, tc.cursor))
			if d := cmp.Diff(tc.want.String(), state.Doc.String()); d != "" {
				t.Errorf("document mismatch (-want +got):\n%s", d)
			}
		})
	}
}

func TestDeleteRow(t *testing.T) {
	tests := []struct {
		name   string
		doc    *model.Node
		cursor int
		want   *model.Node
	}{
		{
			name:   "first row",
			doc:    doc22(),
			cursor: 4,
			want:   tdoc(ttable(trow(td("c"), td("d")))),
		},
		{
			// a starts in the deleted row and continues below, so it is
			// recreated one row down with the remaining span.
			name: "row owning a rowspan cell",
			doc: tdoc(ttable(
				trow(tdSpan(1, 2, "a"), td("b")),
				trow(td("c")),
			)),
			cursor: 9, // inside b
			want:   tdoc(ttable(trow(td("a"), td("c")))),
		},
		{
			// a spans into the deleted row from above and shrinks.
			name: "row under a rowspan cell",
			doc: tdoc(ttable(
				trow(tdSpan(1, 2, "a"), td("b")),
				trow(td("c")),
			)),
			cursor: 16, // inside c
			want:   tdoc(ttable(trow(td("a"), td("b")))),
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			state := apply(t, DeleteRow, stateAt(tc.doc, tc.cursor))
			if d := cmp.Diff(tc.want.String(), state.Doc.String()); d != "" {
				t.Errorf("document mismatch (-want +got):\n%s", d)
			}
		})
	}
}

func TestDeleteRowRejectsWholeTable(t *testing.T) {
	doc := doc22()
	state := &State{Doc: doc, Selection: cellSel(t, doc, 0, 2)}
	if applies(DeleteRow, state) {
		t.Fatalf("deleting every row should not apply")
	}
}

func TestDeleteTable(t *testing.T) {
	state := apply(t, DeleteTable, stateAt(doc22(), 4))
	if state.Doc.ChildCount() != 0 {
		t.Fatalf("table not removed: %s", state.Doc)
	}
	if !applies(DeleteTable, stateAt(doc22(), 4)) {
		t.Fatalf("DeleteTable should apply inside a table")
	}
}

func TestSetCellAttrs(t *testing.T) {
	setWidth := SetCellAttrs(func(attrs *model.CellAttrs) *model.CellAttrs {
		return attrs.WithColwidth([]int{100})
	})
	state := apply(t, setWidth, stateAt(doc22(), 4))
	got := state.Doc.Child(0).Child(0).Child(0).Attrs().Colwidth
	if d := cmp.Diff([]int{100}, got); d != "" {
		t.Errorf("colwidth mismatch (-want +got):\n%s", d)
	}

	noop := SetCellAttrs(func(attrs *model.CellAttrs) *model.CellAttrs {
		return attrs
	})
	if applies(noop, stateAt(doc22(), 4)) {
		t.Errorf("attr rewrite changing nothing should not apply")
	}
}

func TestGoToNextCell(t *testing.T) {
	doc := doc22()
	tests := []struct {
		name       string
		cursor     int
		dir        int
		ok         bool
		anchor, to int
	}{
		{name: "forward within row", cursor: 4, dir: 1, ok: true, anchor: 8, to: 11},
		{name: "forward wraps to next row", cursor: 9, dir: 1, ok: true, anchor: 15, to: 18},
		{name: "backward wraps to previous row", cursor: 16, dir: -1, ok: true, anchor: 8, to: 11},
		{name: "backward within row", cursor: 21, dir: -1, ok: true, anchor: 15, to: 18},
		{name: "forward at last cell", cursor: 21, dir: 1},
		{name: "backward at first cell", cursor: 4, dir: -1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			state := stateAt(doc, tc.cursor)
			if !tc.ok {
				if applies(GoToNextCell(tc.dir), state) {
					t.Fatalf("should not apply at table edge")
				}
				return
			}
			next := apply(t, GoToNextCell(tc.dir), state)
			sel, ok := next.Selection.(*RangeSelection)
			if !ok {
				t.Fatalf("selection is %T, want range", next.Selection)
			}
			if sel.Anchor != tc.anchor || sel.Head != tc.to {
				t.Errorf("selection %d..%d, want %d..%d", sel.Anchor, sel.Head, tc.anchor, tc.to)
			}
		})
	}
}
