package main

import (
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/scott-cotton/cli"

	tables "github.com/prosetree/tables"
	"github.com/prosetree/tables/docio"
	"github.com/prosetree/tables/internal/logger"
	"github.com/prosetree/tables/model"
)

func fix(cfg *FixConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fix.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Write && len(args) == 0 {
		return fmt.Errorf("%w: -w needs file arguments", cli.ErrUsage)
	}
	docs, err := readDocs(cc, args)
	if err != nil {
		return err
	}
	for _, nd := range docs {
		fixed, changed := fixDoc(nd.Doc)
		logger.Info("fix", "doc", nd.Name, "changed", changed)
		switch {
		case cfg.Patch:
			patch, err := mergePatch(nd.Doc, fixed)
			if err != nil {
				return err
			}
			fmt.Fprintln(cc.Out, string(patch))
		case cfg.Write:
			if !changed {
				continue
			}
			if err := docio.WriteFile(nd.Name, fixed); err != nil {
				return err
			}
		default:
			data, err := docio.Encode(fixed)
			if err != nil {
				return err
			}
			if _, err := cc.Out.Write(data); err != nil {
				return err
			}
		}
	}
	return nil
}

func fixDoc(doc *model.Node) (*model.Node, bool) {
	state := &tables.State{Doc: doc}
	tr := tables.FixTables(state, nil)
	if tr == nil {
		return doc, false
	}
	return tr.Doc, true
}

// mergePatch computes the RFC 7386 patch turning the JSON encoding of
// before into that of after.
func mergePatch(before, after *model.Node) ([]byte, error) {
	a, err := docio.EncodeJSON(before)
	if err != nil {
		return nil, err
	}
	b, err := docio.EncodeJSON(after)
	if err != nil {
		return nil, err
	}
	return jsonpatch.CreateMergePatch(a, b)
}
