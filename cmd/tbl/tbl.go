package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/prosetree/tables/docio"
	"github.com/prosetree/tables/internal/logger"
	"github.com/prosetree/tables/model"
)

func tblMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Debug || cfg.FileConfig.Debug); err != nil {
		fmt.Fprintf(os.Stderr, "tbl: logging disabled: %v\n", err)
	}
	defer logger.Close()
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

type namedDoc struct {
	Name string
	Doc  *model.Node
}

// readDocs loads the documents named by args, or one document from stdin
// when args is empty.
func readDocs(cc *cli.Context, args []string) ([]namedDoc, error) {
	if len(args) == 0 {
		doc, err := readDoc(cc, "-")
		if err != nil {
			return nil, err
		}
		return []namedDoc{{Name: "-", Doc: doc}}, nil
	}
	res := make([]namedDoc, 0, len(args))
	for _, arg := range args {
		doc, err := readDoc(cc, arg)
		if err != nil {
			return nil, err
		}
		res = append(res, namedDoc{Name: arg, Doc: doc})
	}
	return res, nil
}

func readDoc(cc *cli.Context, name string) (*model.Node, error) {
	if name == "-" {
		in := io.Reader(cc.In)
		if in == nil {
			in = os.Stdin
		}
		data, err := io.ReadAll(in)
		if err != nil {
			return nil, err
		}
		doc, err := docio.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("stdin: %w", err)
		}
		return doc, nil
	}
	doc, err := docio.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return doc, nil
}

type tableAt struct {
	Pos   int
	Table *model.Node
}

// tablesOf collects every table in the document with its position.
func tablesOf(doc *model.Node) []tableAt {
	var res []tableAt
	doc.Descendants(func(n *model.Node, pos int) bool {
		if n.Type().Role == model.RoleTable {
			res = append(res, tableAt{pos, n})
			return false
		}
		return true
	})
	return res
}
