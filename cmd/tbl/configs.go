package main

import (
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"

	"github.com/prosetree/tables/encode"
)

type MainConfig struct {
	Color bool `cli:"name=color desc='render with color'"`
	Debug bool `cli:"name=debug desc='verbose logging'"`

	FileConfig *FileConfig

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

// encOpts decides rendering options for w: the -color flag wins, then the
// config file, then whether w is a terminal.
func (cfg *MainConfig) encOpts(w io.Writer) []encode.Option {
	var res []encode.Option
	if width := cfg.FileConfig.CellWidth; width > 0 {
		res = append(res, encode.EncodeCellWidth(width))
	}
	if cfg.Color {
		return append(res, encode.EncodeColors(encode.NewColors()))
	}
	colorSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorSet = opt.Value != nil
		break
	}
	if colorSet {
		return res
	}
	if cfg.FileConfig.Color != nil {
		if *cfg.FileConfig.Color {
			res = append(res, encode.EncodeColors(encode.NewColors()))
		}
		return res
	}
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

func (cfg *MainConfig) colorized(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	if cfg.FileConfig.Color != nil {
		return *cfg.FileConfig.Color
	}
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

type DumpConfig struct {
	*MainConfig
	Problems bool `cli:"name=problems desc='list grid problems under the table'"`

	Dump *cli.Command
}

type LintConfig struct {
	*MainConfig

	Lint *cli.Command
}

type FixConfig struct {
	*MainConfig
	Patch bool `cli:"name=patch desc='print an RFC 7386 merge patch instead of the fixed document'"`
	Write bool `cli:"name=w desc='rewrite the input file in place'"`

	Fix *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Diff *cli.Command
}

type ExecConfig struct {
	*MainConfig
	Anchor int  `cli:"name=anchor desc='selection anchor position'"`
	Head   int  `cli:"name=head desc='selection head position (defaults to anchor)'"`
	Cells  bool `cli:"name=cells desc='anchor/head address cells, making a cell selection'"`

	Exec *cli.Command
}

type ExportConfig struct {
	*MainConfig
	XlsxOut string `cli:"name=xlsx desc='output workbook path'"`

	Export *cli.Command
}
