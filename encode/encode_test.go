package encode

import (
	"strings"
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

func header(text string) *model.Node {
	return model.NewNode(model.HeaderCell, nil, para(text))
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

func TestGridColspan(t *testing.T) {
	tbl := table(
		row(cellSpan(2, 1, "ab")),
		row(cell("c"), cell("d")),
	)
	want := strings.Join([]string{
		"+----+---+",
		"| ab   < |",
		"+----+---+",
		"| c  | d |",
		"+----+---+",
		"",
	}, "\n")
	if d := cmp.Diff(want, Grid(tbl)); d != "" {
		t.Errorf("grid mismatch (-want +got):\n%s", d)
	}
}

func TestGridRowspan(t *testing.T) {
	tbl := table(
		row(cellSpan(1, 2, "a"), cell("b")),
		row(cell("c")),
	)
	want := strings.Join([]string{
		"+---+---+",
		"| a | b |",
		"+   +---+",
		"| ^ | c |",
		"+---+---+",
		"",
	}, "\n")
	if d := cmp.Diff(want, Grid(tbl)); d != "" {
		t.Errorf("grid mismatch (-want +got):\n%s", d)
	}
}

func TestGridMarksProblems(t *testing.T) {
	tbl := table(
		row(cell("a"), cell("b")),
		row(cell("c")),
	)
	want := strings.Join([]string{
		"+---+----+",
		"| a | b  |",
		"+---+----+",
		"| c | ?? |",
		"+---+----+",
		"problems:",
		"  - 1 missing slots in row 1",
		"",
	}, "\n")
	if d := cmp.Diff(want, Grid(tbl)); d != "" {
		t.Errorf("grid mismatch (-want +got):\n%s", d)
	}

	var b strings.Builder
	if err := Encode(tbl, &b, EncodeProblems(false)); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(b.String(), "problems:") {
		t.Errorf("problem list printed despite EncodeProblems(false)")
	}
}

func TestGridLabels(t *testing.T) {
	tbl := table(row(header(""), cell("")))
	want := strings.Join([]string{
		"+---+---+",
		"| # | - |",
		"+---+---+",
		"",
	}, "\n")
	if d := cmp.Diff(want, Grid(tbl)); d != "" {
		t.Errorf("grid mismatch (-want +got):\n%s", d)
	}
}

func TestGridTruncatesLongCells(t *testing.T) {
	tbl := table(row(cell("abcdefgh")))
	var b strings.Builder
	if err := Encode(tbl, &b, EncodeCellWidth(5)); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"+-------+",
		"| abc.. |",
		"+-------+",
		"",
	}, "\n")
	if d := cmp.Diff(want, b.String()); d != "" {
		t.Errorf("grid mismatch (-want +got):\n%s", d)
	}
}

func TestGridEmptyTable(t *testing.T) {
	got := Grid(table())
	want := strings.Join([]string{
		"(empty table)",
		"problems:",
		"  - zero-sized table",
		"",
	}, "\n")
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("grid mismatch (-want +got):\n%s", d)
	}
}

func TestColorsEscapePercent(t *testing.T) {
	c := NewColors()
	got := c.Color(CellColor, "100%")
	if !strings.Contains(got, "100%") {
		t.Errorf("Color mangled the input: %q", got)
	}
	if c.Get(ColorAttr(99)) == nil {
		t.Errorf("unknown attr should fall back to the default")
	}
}
