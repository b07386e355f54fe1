// Package encode renders a table's grid map as ASCII art for dump output
// and debugging. Spans are drawn as merged boxes, unfilled slots show up
// as holes, and the map's problems can be listed underneath.
package encode

import (
	"fmt"
	"io"
	"strings"

	"github.com/prosetree/tables/model"
	"github.com/prosetree/tables/tablemap"
)

type encState struct {
	colors   *Colors
	problems bool
	maxCell  int
}

type Option func(*encState)

// EncodeColors turns on ANSI coloring with the given palette.
func EncodeColors(c *Colors) Option {
	return func(es *encState) { es.colors = c }
}

// EncodeProblems controls whether the map's problem list is printed
// under the grid. On by default.
func EncodeProblems(on bool) Option {
	return func(es *encState) { es.problems = on }
}

// EncodeCellWidth caps how many runes of cell text a slot shows.
func EncodeCellWidth(n int) Option {
	return func(es *encState) { es.maxCell = n }
}

// Encode writes the table's grid to w.
func Encode(table *model.Node, w io.Writer, opts ...Option) error {
	es := &encState{problems: true, maxCell: 12}
	for _, opt := range opts {
		opt(es)
	}
	if es.colors == nil {
		es.colors = &Colors{Default: colorDefault}
	}
	m := tablemap.Get(table)
	if m.Width == 0 || m.Height == 0 {
		if _, err := fmt.Fprintln(w, "(empty table)"); err != nil {
			return err
		}
		return es.writeProblems(m, w)
	}
	labels := make([][]string, m.Height)
	attrs := make([][]ColorAttr, m.Height)
	colWidth := make([]int, m.Width)
	for row := 0; row < m.Height; row++ {
		labels[row] = make([]string, m.Width)
		attrs[row] = make([]ColorAttr, m.Width)
		for col := 0; col < m.Width; col++ {
			label, attr := es.slot(table, m, row, col)
			labels[row][col] = label
			attrs[row][col] = attr
			if n := len([]rune(label)); n > colWidth[col] {
				colWidth[col] = n
			}
		}
	}
	for row := 0; row < m.Height; row++ {
		if err := es.writeBorder(m, w, row, colWidth); err != nil {
			return err
		}
		var b strings.Builder
		for col := 0; col < m.Width; col++ {
			sep := "|"
			if col > 0 && m.Map[row*m.Width+col] != 0 &&
				m.Map[row*m.Width+col] == m.Map[row*m.Width+col-1] {
				sep = " "
			}
			b.WriteString(es.colors.Color(BorderColor, sep))
			label := labels[row][col]
			pad := colWidth[col] - len([]rune(label))
			b.WriteString(" " + es.colors.Color(attrs[row][col], label) + strings.Repeat(" ", pad) + " ")
		}
		b.WriteString(es.colors.Color(BorderColor, "|"))
		if _, err := fmt.Fprintln(w, b.String()); err != nil {
			return err
		}
	}
	if err := es.writeBorder(m, w, m.Height, colWidth); err != nil {
		return err
	}
	return es.writeProblems(m, w)
}

// slot picks the label and color for one grid position.
func (es *encState) slot(table *model.Node, m *tablemap.TableMap, row, col int) (string, ColorAttr) {
	pos := m.Map[row*m.Width+col]
	if pos == 0 {
		return "??", ProblemColor
	}
	coveredLeft := col > 0 && m.Map[row*m.Width+col-1] == pos
	coveredUp := row > 0 && m.Map[(row-1)*m.Width+col] == pos
	if coveredLeft || coveredUp {
		if coveredUp {
			return "^", SpanColor
		}
		return "<", SpanColor
	}
	cell := table.NodeAt(pos)
	if cell == nil {
		return "??", ProblemColor
	}
	text := cell.TextContent()
	if runes := []rune(text); len(runes) > es.maxCell {
		text = string(runes[:es.maxCell-2]) + ".."
	}
	attr := CellColor
	if cell.Type().Role == model.RoleHeaderCell {
		attr = HeaderColor
		if text == "" {
			text = "#"
		}
	}
	if text == "" {
		text = "-"
	}
	return text, attr
}

// writeBorder draws the horizontal rule above grid row `row` (row ==
// Height draws the bottom edge). Segments inside a rowspan stay open.
func (es *encState) writeBorder(m *tablemap.TableMap, w io.Writer, row int, colWidth []int) error {
	var b strings.Builder
	for col := 0; col < m.Width; col++ {
		b.WriteString("+")
		fill := "-"
		if row > 0 && row < m.Height &&
			m.Map[(row-1)*m.Width+col] != 0 &&
			m.Map[(row-1)*m.Width+col] == m.Map[row*m.Width+col] {
			fill = " "
		}
		b.WriteString(strings.Repeat(fill, colWidth[col]+2))
	}
	b.WriteString("+")
	_, err := fmt.Fprintln(w, es.colors.Color(BorderColor, b.String()))
	return err
}

func (es *encState) writeProblems(m *tablemap.TableMap, w io.Writer) error {
	if !es.problems || len(m.Problems) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "problems:"); err != nil {
		return err
	}
	for _, p := range m.Problems {
		if _, err := fmt.Fprintln(w, es.colors.Color(ProblemColor, "  - "+p.String())); err != nil {
			return err
		}
	}
	return nil
}

// Grid renders the table without color, problems included.
func Grid(table *model.Node) string {
	var b strings.Builder
	if err := Encode(table, &b); err != nil {
		return err.Error()
	}
	return b.String()
}
