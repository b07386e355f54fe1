// Package docio reads and writes documents. YAML is the primary on-disk
// form; a JSON twin of the same shape exists so merge patches can be
// computed against it.
package docio

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/prosetree/tables/model"
)

type wireAttrs struct {
	Colspan  int   `yaml:"colspan,omitempty" json:"colspan,omitempty"`
	Rowspan  int   `yaml:"rowspan,omitempty" json:"rowspan,omitempty"`
	Colwidth []int `yaml:"colwidth,omitempty" json:"colwidth,omitempty"`
}

type wireNode struct {
	Type    string     `yaml:"type" json:"type"`
	Text    string     `yaml:"text,omitempty" json:"text,omitempty"`
	Attrs   *wireAttrs `yaml:"attrs,omitempty" json:"attrs,omitempty"`
	Content []wireNode `yaml:"content,omitempty" json:"content,omitempty"`
}

func toWire(n *model.Node) wireNode {
	res := wireNode{Type: n.Type().Name}
	if n.Type() == model.Text {
		res.Text = n.Text()
		return res
	}
	if n.Type().IsCell() {
		attrs := n.Attrs()
		if !attrs.Eq(nil) {
			res.Attrs = &wireAttrs{
				Colspan:  attrs.Colspan,
				Rowspan:  attrs.Rowspan,
				Colwidth: attrs.Colwidth,
			}
		}
	}
	for _, c := range n.Content() {
		res.Content = append(res.Content, toWire(c))
	}
	return res
}

func fromWire(w wireNode) (*model.Node, error) {
	typ, ok := model.TypeByName(w.Type)
	if !ok {
		return nil, fmt.Errorf("docio: unknown node type %q", w.Type)
	}
	if typ == model.Text {
		if len(w.Content) > 0 {
			return nil, fmt.Errorf("docio: text node with content")
		}
		if w.Text == "" {
			return nil, fmt.Errorf("docio: empty text node")
		}
		return model.NewText(w.Text), nil
	}
	kids := make([]*model.Node, 0, len(w.Content))
	for _, c := range w.Content {
		kid, err := fromWire(c)
		if err != nil {
			return nil, err
		}
		kids = append(kids, kid)
	}
	var attrs *model.CellAttrs
	if typ.IsCell() && w.Attrs != nil {
		attrs = model.DefaultCellAttrs()
		if w.Attrs.Colspan > 0 {
			attrs.Colspan = w.Attrs.Colspan
		}
		if w.Attrs.Rowspan > 0 {
			attrs.Rowspan = w.Attrs.Rowspan
		}
		attrs.Colwidth = w.Attrs.Colwidth
	}
	return model.NewNode(typ, attrs, kids...), nil
}

// Encode renders the document as YAML.
func Encode(n *model.Node) ([]byte, error) {
	return yaml.Marshal(toWire(n))
}

// Decode parses a YAML document.
func Decode(data []byte) (*model.Node, error) {
	var w wireNode
	if err := yaml.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("docio: %w", err)
	}
	return fromWire(w)
}

// EncodeJSON renders the same wire shape as JSON, for merge patches.
func EncodeJSON(n *model.Node) ([]byte, error) {
	return json.Marshal(toWire(n))
}

// DecodeJSON parses the JSON wire shape.
func DecodeJSON(data []byte) (*model.Node, error) {
	var w wireNode
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("docio: %w", err)
	}
	return fromWire(w)
}

// ReadFile loads a YAML document from disk.
func ReadFile(path string) (*model.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// WriteFile stores the document as YAML.
func WriteFile(path string, n *model.Node) error {
	data, err := Encode(n)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
