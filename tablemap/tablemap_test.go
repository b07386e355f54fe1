package tablemap

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prosetree/tables/model"
)

func cell(text string) *model.Node {
	return model.NewNode(model.Cell, nil, para(text))
}

func cellSpan(colspan, rowspan int, text string) *model.Node {
	attrs := &model.CellAttrs{Colspan: colspan, Rowspan: rowspan}
	return model.NewNode(model.Cell, attrs, para(text))
}

func cellWidth(widths []int, text string) *model.Node {
	attrs := &model.CellAttrs{Colspan: len(widths), Rowspan: 1, Colwidth: widths}
	return model.NewNode(model.Cell, attrs, para(text))
}

func para(text string) *model.Node {
	if text == "" {
		return model.EmptyParagraph()
	}
	return model.NewNode(model.Paragraph, nil, model.NewText(text))
}

func row(cells ...*model.Node) *model.Node {
	return model.NewNode(model.Row, nil, cells...)
}

func table(rows ...*model.Node) *model.Node {
	return model.NewNode(model.Table, nil, rows...)
}

type mapTest struct {
	name     string
	table    *model.Node
	width    int
	height   int
	m        []int
	problems []Problem
}

func TestComputeMap(t *testing.T) {
	tests := []mapTest{
		{
			name:   "simple 2x2",
			table:  table(row(cell("a"), cell("b")), row(cell("c"), cell("d"))),
			width:  2,
			height: 2,
			m:      []int{1, 6, 13, 18},
		},
		{
			name:   "colspan",
			table:  table(row(cellSpan(2, 1, "")), row(cell(""), cell(""))),
			width:  2,
			height: 2,
			m:      []int{1, 1, 7, 11},
		},
		{
			name:   "rowspan",
			table:  table(row(cellSpan(1, 2, "a"), cell("b")), row(cell("c"))),
			width:  2,
			height: 2,
			m:      []int{1, 6, 1, 13},
		},
		{
			name:     "missing slot",
			table:    table(row(cell("a"), cell("b")), row(cell("c"))),
			width:    2,
			height:   2,
			m:        []int{1, 6, 13, 0},
			problems: []Problem{{Kind: Missing, Row: 1, N: 1}},
		},
		{
			name: "colspan collides with rowspan",
			table: table(
				row(cell("a"), cellSpan(1, 2, "b"), cell("c")),
				row(cellSpan(2, 1, "d")),
			),
			width:  3,
			height: 2,
			m:      []int{1, 6, 11, 18, 6, 0},
			problems: []Problem{
				{Kind: Collision, Row: 1, Pos: 18, N: 1},
				{Kind: Missing, Row: 1, N: 1},
			},
		},
		{
			name: "overlong rowspan",
			table: table(
				row(cell("a"), cell("b")),
				row(cellSpan(1, 2, "c"), cell("d")),
			),
			width:    2,
			height:   2,
			m:        []int{1, 6, 13, 18},
			problems: []Problem{{Kind: OverlongRowspan, Pos: 13, N: 1}},
		},
		{
			name: "colwidth mismatch",
			table: table(
				row(cellWidth([]int{100}, "a"), cell("b")),
				row(cellWidth([]int{50}, "c"), cell("d")),
			),
			width:  2,
			height: 2,
			m:      []int{1, 6, 13, 18},
			problems: []Problem{
				{Kind: ColwidthMismatch, Pos: 1, Colwidth: []int{50}},
			},
		},
		{
			name:     "zero sized",
			table:    table(),
			width:    0,
			height:   0,
			m:        []int{},
			problems: []Problem{{Kind: ZeroSized}},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := computeMap(tc.table)
			if m.Width != tc.width || m.Height != tc.height {
				t.Fatalf("got %dx%d, want %dx%d", m.Width, m.Height, tc.width, tc.height)
			}
			if d := cmp.Diff(tc.m, m.Map, cmp.Comparer(intSliceEq)); d != "" {
				t.Errorf("map mismatch (-want +got):\n%s", d)
			}
			if d := cmp.Diff(tc.problems, m.Problems); d != "" {
				t.Errorf("problems mismatch (-want +got):\n%s", d)
			}
		})
	}
}

func intSliceEq(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFindCell(t *testing.T) {
	spanned := computeMap(table(row(cellSpan(2, 1, "")), row(cell(""), cell(""))))
	if got, want := spanned.FindCell(1), (Rect{Left: 0, Top: 0, Right: 2, Bottom: 1}); got != want {
		t.Errorf("FindCell(1) = %+v, want %+v", got, want)
	}
	if got, want := spanned.FindCell(11), (Rect{Left: 1, Top: 1, Right: 2, Bottom: 2}); got != want {
		t.Errorf("FindCell(11) = %+v, want %+v", got, want)
	}

	rowspanned := computeMap(table(row(cellSpan(1, 2, "a"), cell("b")), row(cell("c"))))
	if got, want := rowspanned.FindCell(1), (Rect{Left: 0, Top: 0, Right: 1, Bottom: 2}); got != want {
		t.Errorf("FindCell(1) = %+v, want %+v", got, want)
	}
}

func TestNextCell(t *testing.T) {
	m := computeMap(table(row(cellSpan(1, 2, "a"), cell("b")), row(cell("c"))))
	tests := []struct {
		pos  int
		axis Axis
		dir  int
		want int
	}{
		{1, Horiz, 1, 6},
		{1, Horiz, -1, -1},
		{1, Vert, 1, -1},
		{6, Vert, 1, 13},
		{13, Vert, -1, 6},
		{13, Horiz, -1, 1},
	}
	for _, tc := range tests {
		if got := m.NextCell(tc.pos, tc.axis, tc.dir); got != tc.want {
			t.Errorf("NextCell(%d, %v, %d) = %d, want %d", tc.pos, tc.axis, tc.dir, got, tc.want)
		}
	}
}

func TestRectBetween(t *testing.T) {
	m := computeMap(table(row(cell("a"), cell("b")), row(cell("c"), cell("d"))))
	if got, want := m.RectBetween(1, 18), (Rect{Left: 0, Top: 0, Right: 2, Bottom: 2}); got != want {
		t.Errorf("RectBetween(1, 18) = %+v, want %+v", got, want)
	}
	if got, want := m.RectBetween(18, 1), (Rect{Left: 0, Top: 0, Right: 2, Bottom: 2}); got != want {
		t.Errorf("RectBetween(18, 1) = %+v, want %+v", got, want)
	}
	if got, want := m.RectBetween(6, 18), (Rect{Left: 1, Top: 0, Right: 2, Bottom: 2}); got != want {
		t.Errorf("RectBetween(6, 18) = %+v, want %+v", got, want)
	}
}

func TestCellsInRect(t *testing.T) {
	m := computeMap(table(row(cellSpan(1, 2, "a"), cell("b")), row(cell("c"))))
	// The bottom row still sees the rowspan cell protruding into it, and
	// reports it once.
	got := m.CellsInRect(Rect{Left: 0, Top: 1, Right: 2, Bottom: 2})
	want := []int{1, 13}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("CellsInRect mismatch (-want +got):\n%s", d)
	}
}

func TestPositionAt(t *testing.T) {
	spanTable := table(row(cellSpan(1, 2, "a"), cell("b")), row(cell("c")))
	m := computeMap(spanTable)
	// The rowspan covers slot (1, 0); the first real cell of row 1 is c.
	if got := m.PositionAt(1, 0, spanTable); got != 13 {
		t.Errorf("PositionAt(1, 0) = %d, want 13", got)
	}
	if got := m.PositionAt(0, 1, spanTable); got != 6 {
		t.Errorf("PositionAt(0, 1) = %d, want 6", got)
	}

	shortTable := table(row(cell("a"), cell("b")), row(cell("c")))
	m = computeMap(shortTable)
	// Column 1 of row 1 is unfilled; the position is the row's end.
	if got := m.PositionAt(1, 1, shortTable); got != 18 {
		t.Errorf("PositionAt(1, 1) = %d, want 18", got)
	}
}

func TestGetCaches(t *testing.T) {
	tbl := table(row(cell("a"), cell("b")), row(cell("c"), cell("d")))
	if Get(tbl) != Get(tbl) {
		t.Fatalf("same node produced distinct maps")
	}
	other := table(row(cell("a"), cell("b")), row(cell("c"), cell("d")))
	if d := cmp.Diff(Get(tbl).Map, Get(other).Map); d != "" {
		t.Errorf("equal tables disagree (-want +got):\n%s", d)
	}
}
