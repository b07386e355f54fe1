package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/prosetree/tables/encode"
	"github.com/prosetree/tables/internal/logger"
)

func dump(cfg *DumpConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dump.Parse(cc, args)
	if err != nil {
		return err
	}
	docs, err := readDocs(cc, args)
	if err != nil {
		return err
	}
	opts := cfg.encOpts(cc.Out)
	opts = append(opts, encode.EncodeProblems(cfg.Problems))
	for _, nd := range docs {
		tables := tablesOf(nd.Doc)
		logger.Debug("dump", "doc", nd.Name, "tables", len(tables))
		if len(tables) == 0 {
			fmt.Fprintf(cc.Out, "%s: no tables\n", nd.Name)
			continue
		}
		for _, t := range tables {
			if len(docs) > 1 || len(tables) > 1 {
				fmt.Fprintf(cc.Out, "%s: table at %d\n", nd.Name, t.Pos)
			}
			if err := encode.Encode(t.Table, cc.Out, opts...); err != nil {
				return err
			}
		}
	}
	return nil
}
