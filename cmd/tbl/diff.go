package main

import (
	"fmt"
	"strings"

	"github.com/scott-cotton/cli"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/prosetree/tables/docio"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff needs exactly two documents", cli.ErrUsage)
	}
	a, err := readDoc(cc, args[0])
	if err != nil {
		return err
	}
	b, err := readDoc(cc, args[1])
	if err != nil {
		return err
	}
	aText, err := docio.Encode(a)
	if err != nil {
		return err
	}
	bText, err := docio.Encode(b)
	if err != nil {
		return err
	}
	dmp := diffpatch.New()
	diffs := dmp.DiffMain(string(aText), string(bText), true)
	diffs = dmp.DiffCleanupSemantic(diffs)
	if len(diffs) == 1 && diffs[0].Type == diffpatch.DiffEqual {
		return nil
	}
	if cfg.colorized(cc.Out) {
		fmt.Fprint(cc.Out, dmp.DiffPrettyText(diffs))
		return fmt.Errorf("documents differ")
	}
	var sb strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffpatch.DiffDelete:
			writeMarked(&sb, "-", d.Text)
		case diffpatch.DiffInsert:
			writeMarked(&sb, "+", d.Text)
		case diffpatch.DiffEqual:
			writeMarked(&sb, " ", d.Text)
		}
	}
	fmt.Fprint(cc.Out, sb.String())
	return fmt.Errorf("documents differ")
}

func writeMarked(sb *strings.Builder, mark, text string) {
	for _, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			continue
		}
		sb.WriteString(mark)
		sb.WriteString(" ")
		sb.WriteString(line)
		if !strings.HasSuffix(line, "\n") {
			sb.WriteString("\n")
		}
	}
}
