package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/prosetree/tables/schema"
	"github.com/prosetree/tables/tablemap"
)

func lint(cfg *LintConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Lint.Parse(cc, args)
	if err != nil {
		return err
	}
	docs, err := readDocs(cc, args)
	if err != nil {
		return err
	}
	registry := schema.Default()
	total := 0
	for _, nd := range docs {
		for _, v := range registry.Validate(nd.Doc) {
			fmt.Fprintf(cc.Out, "%s: %s\n", nd.Name, v)
			total++
		}
		for _, t := range tablesOf(nd.Doc) {
			m := tablemap.Get(t.Table)
			for _, p := range m.Problems {
				fmt.Fprintf(cc.Out, "%s: table@%d: %s\n", nd.Name, t.Pos, p)
				total++
			}
		}
	}
	if total > 0 {
		return fmt.Errorf("%d problems", total)
	}
	return nil
}
