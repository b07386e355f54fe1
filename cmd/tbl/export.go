package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	exportpkg "github.com/prosetree/tables/export"
	"github.com/prosetree/tables/internal/logger"
)

func export(cfg *ExportConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Export.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.XlsxOut == "" {
		return fmt.Errorf("%w: export needs -xlsx", cli.ErrUsage)
	}
	name := "-"
	if len(args) > 0 {
		name = args[0]
	}
	doc, err := readDoc(cc, name)
	if err != nil {
		return err
	}
	if err := exportpkg.WriteFile(doc, cfg.XlsxOut); err != nil {
		return err
	}
	logger.Info("export", "doc", name, "xlsx", cfg.XlsxOut)
	return nil
}
