package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	fileCfg, err := loadFileConfig()
	if err != nil {
		fileCfg = &FileConfig{}
	}
	cfg := &MainConfig{FileConfig: fileCfg}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "tbl").
		WithSynopsis("tbl [opts] command [opts]").
		WithDescription("tbl is a tool for working with table documents.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return tblMain(cfg, cc, args)
		}).
		WithSubs(
			DumpCommand(cfg),
			LintCommand(cfg),
			FixCommand(cfg),
			DiffCommand(cfg),
			ExecCommand(cfg),
			ExportCommand(cfg))
}

func DumpCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DumpConfig{MainConfig: mainCfg, Problems: true}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Dump, "dump").
		WithAliases("d").
		WithSynopsis("dump [files]").
		WithDescription("render the grid of every table in the given documents").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return dump(cfg, cc, args)
		})
}

func LintCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &LintConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Lint, "lint").
		WithAliases("l").
		WithSynopsis("lint [files]").
		WithDescription("validate cell attributes and report grid problems").
		WithRun(func(cc *cli.Context, args []string) error {
			return lint(cfg, cc, args)
		})
}

func FixCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FixConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Fix, "fix").
		WithAliases("f").
		WithSynopsis("fix [-patch|-w] [files]").
		WithDescription("repair malformed tables").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return fix(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("di").
		WithSynopsis("diff a b").
		WithDescription("diff two table documents").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

func ExecCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ExecConfig{MainConfig: mainCfg, Anchor: -1, Head: -1}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Exec, "exec").
		WithAliases("e", "x").
		WithSynopsis("exec [-anchor p [-head p] [-cells]] <command> [file]").
		WithDescription(execDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return exec(cfg, cc, args)
		})
}

const execDescription = `exec runs a structural table command against a document.

The selection defaults to the first cell of the first table. Pass -anchor
(and optionally -head) to place it elsewhere; with -cells the positions
must address cells and form a cell selection.

Commands:

  addColumnBefore addColumnAfter deleteColumn
  addRowBefore addRowAfter deleteRow
  duplicateRow duplicateColumn clearRowContent clearColumnContent
  mergeCells splitCell
  toggleHeaderRow toggleHeaderColumn toggleHeaderCell
  goToNextCell goToPrevCell
  deleteTable

A command that does not apply to the given selection exits nonzero.`

func ExportCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ExportConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Export, "export").
		WithSynopsis("export -xlsx out.xlsx [file]").
		WithDescription("export a table document to an xlsx workbook").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return export(cfg, cc, args)
		})
}
