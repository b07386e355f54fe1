// Package export writes tables to xlsx workbooks. Spanning cells become
// merged ranges, explicit column widths carry over, and header cells are
// styled bold.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/prosetree/tables/model"
	"github.com/prosetree/tables/tablemap"
)

// Pixel widths from cell attrs map to excelize's character-based column
// widths at roughly 7px per character.
const pxPerChar = 7.0

// Workbook builds an xlsx file holding one sheet per table in doc.
// Returns an error when doc contains no table or a table is malformed.
func Workbook(doc *model.Node) (*excelize.File, error) {
	var tables []*model.Node
	doc.Descendants(func(n *model.Node, pos int) bool {
		if n.Type().Role == model.RoleTable {
			tables = append(tables, n)
			return false
		}
		return true
	})
	if len(tables) == 0 {
		return nil, fmt.Errorf("export: document contains no table")
	}
	f := excelize.NewFile()
	for i, table := range tables {
		sheet := fmt.Sprintf("Table %d", i+1)
		if i == 0 {
			f.SetSheetName(f.GetSheetName(0), sheet)
		} else if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
		if err := writeTable(f, sheet, table); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Write streams the workbook for doc to w.
func Write(doc *model.Node, w io.Writer) error {
	f, err := Workbook(doc)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

// WriteFile saves the workbook for doc at path.
func WriteFile(doc *model.Node, path string) error {
	f, err := Workbook(doc)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}

func writeTable(f *excelize.File, sheet string, table *model.Node) error {
	m := tablemap.Get(table)
	if len(m.Problems) > 0 {
		return fmt.Errorf("export: table has %d problems, repair it first", len(m.Problems))
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	widths := make([]int, m.Width)
	seen := map[int]bool{}
	for row := 0; row < m.Height; row++ {
		for col := 0; col < m.Width; col++ {
			pos := m.Map[row*m.Width+col]
			if seen[pos] {
				continue
			}
			seen[pos] = true
			cell := table.NodeAt(pos)
			attrs := cell.Attrs()
			name, err := excelize.CoordinatesToCellName(col+1, row+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, name, cell.TextContent()); err != nil {
				return err
			}
			if cell.Type().Role == model.RoleHeaderCell {
				if err := f.SetCellStyle(sheet, name, name, headerStyle); err != nil {
					return err
				}
			}
			if attrs.Colspan > 1 || attrs.Rowspan > 1 {
				end, err := excelize.CoordinatesToCellName(col+attrs.Colspan, row+attrs.Rowspan)
				if err != nil {
					return err
				}
				if err := f.MergeCell(sheet, name, end); err != nil {
					return err
				}
			}
			for i, w := range attrs.Colwidth {
				if w > 0 {
					widths[col+i] = w
				}
			}
		}
	}
	for col, px := range widths {
		if px == 0 {
			continue
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, float64(px)/pxPerChar); err != nil {
			return err
		}
	}
	return nil
}
