package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/scott-cotton/cli"

	tables "github.com/prosetree/tables"
	"github.com/prosetree/tables/docio"
	"github.com/prosetree/tables/internal/logger"
	"github.com/prosetree/tables/model"
	"github.com/prosetree/tables/transform"
)

var commandsByName = map[string]tables.Command{
	"addColumnBefore":    tables.AddColumnBefore,
	"addColumnAfter":     tables.AddColumnAfter,
	"deleteColumn":       tables.DeleteColumn,
	"addRowBefore":       tables.AddRowBefore,
	"addRowAfter":        tables.AddRowAfter,
	"deleteRow":          tables.DeleteRow,
	"duplicateRow":       tables.DuplicateRow,
	"duplicateColumn":    tables.DuplicateColumn,
	"clearRowContent":    tables.ClearRowContent,
	"clearColumnContent": tables.ClearColumnContent,
	"mergeCells":         tables.MergeCells,
	"splitCell":          tables.SplitCell,
	"toggleHeaderRow":    tables.ToggleHeaderRow,
	"toggleHeaderColumn": tables.ToggleHeaderColumn,
	"toggleHeaderCell":   tables.ToggleHeaderCell,
	"goToNextCell":       tables.GoToNextCell(1),
	"goToPrevCell":       tables.GoToNextCell(-1),
	"deleteTable":        tables.DeleteTable,
}

func exec(cfg *ExecConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Exec.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: exec needs a command", cli.ErrUsage)
	}
	cmd, ok := commandsByName[args[0]]
	if !ok {
		return fmt.Errorf("%w: unknown command %q, have: %s",
			cli.ErrUsage, args[0], strings.Join(commandNames(), " "))
	}
	name := "-"
	if len(args) > 1 {
		name = args[1]
	}
	doc, err := readDoc(cc, name)
	if err != nil {
		return err
	}
	sel, err := execSelection(cfg, doc)
	if err != nil {
		return err
	}
	state := &tables.State{Doc: doc, Selection: sel}
	var applied *transform.Transform
	if !cmd(state, func(tr *transform.Transform) { applied = tr }) {
		return fmt.Errorf("%s does not apply to this selection", args[0])
	}
	logger.Info("exec", "command", args[0], "doc", name)
	state = state.Apply(applied)
	data, err := docio.Encode(state.Doc)
	if err != nil {
		return err
	}
	_, err = cc.Out.Write(data)
	return err
}

func execSelection(cfg *ExecConfig, doc *model.Node) (tables.Selection, error) {
	if cfg.Anchor < 0 {
		pos := firstCellPos(doc)
		if pos < 0 {
			return nil, fmt.Errorf("document contains no table cell")
		}
		// inside the cell's first textblock
		return &tables.RangeSelection{Anchor: pos + 2, Head: pos + 2}, nil
	}
	head := cfg.Head
	if head < 0 {
		head = cfg.Anchor
	}
	if !cfg.Cells {
		return &tables.RangeSelection{Anchor: cfg.Anchor, Head: head}, nil
	}
	anchor := model.Resolve(doc, cfg.Anchor)
	headPos := model.Resolve(doc, head)
	if !tables.PointsAtCell(anchor) || !tables.PointsAtCell(headPos) {
		return nil, fmt.Errorf("%w: -cells positions must address cells", cli.ErrUsage)
	}
	if !tables.InSameTable(anchor, headPos) {
		return nil, fmt.Errorf("%w: -cells positions must share a table", cli.ErrUsage)
	}
	return tables.NewCellSelection(anchor, headPos), nil
}

func firstCellPos(doc *model.Node) int {
	pos := -1
	doc.Descendants(func(n *model.Node, p int) bool {
		if pos >= 0 {
			return false
		}
		if n.Type().IsCell() {
			pos = p
			return false
		}
		return true
	})
	return pos
}

func commandNames() []string {
	names := make([]string, 0, len(commandsByName))
	for name := range commandsByName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
