// Package tables adds table editing to a tree-structured document: a
// rectangular multi-cell selection, structural commands that always leave
// tables rectangular, and a repair pass that normalizes tables after
// arbitrary edits.
package tables

import (
	"encoding/json"
	"fmt"

	"github.com/prosetree/tables/model"
	"github.com/prosetree/tables/transform"
)

// State is the editor state commands operate on.
type State struct {
	Doc       *model.Node
	Selection Selection
}

// Tr starts a transform over the state's document.
func (s *State) Tr() *transform.Transform {
	return transform.New(s.Doc)
}

// Apply produces the state after a transform. The transform's selection
// wins when set; otherwise the current selection is mapped through the
// edit.
func (s *State) Apply(tr *transform.Transform) *State {
	next := &State{Doc: tr.Doc}
	if sel, ok := tr.Selection.(Selection); ok && sel != nil {
		next.Selection = sel
	} else if s.Selection != nil {
		next.Selection = s.Selection.Map(tr.Doc, tr.Mapping())
	}
	return next
}

// Command is the uniform contract of all structural commands: it reports
// whether the command applies to the state, and performs its edit through
// dispatch only when applicable and dispatch is non-nil.
type Command func(state *State, dispatch func(*transform.Transform)) bool

// Selection is the closed set of selection variants. Variants serialize to
// a tagged JSON shape and are dispatched by type switch.
type Selection interface {
	// Map carries the selection across an edit, degrading to a simpler
	// variant when the selected structure no longer exists.
	Map(doc *model.Node, mapping *transform.Mapping) Selection
	Eq(other Selection) bool
	ToJSON() SelectionJSON
}

// SelectionJSON is the serialized form of a selection.
type SelectionJSON struct {
	Type   string `json:"type"`
	Anchor int    `json:"anchor"`
	Head   int    `json:"head"`
}

func (j SelectionJSON) MarshalBinary() ([]byte, error) { return json.Marshal(j) }

// RangeSelection is an ordinary selection between two positions.
type RangeSelection struct {
	Anchor int
	Head   int
}

func (s *RangeSelection) From() int { return min(s.Anchor, s.Head) }
func (s *RangeSelection) To() int   { return max(s.Anchor, s.Head) }

func (s *RangeSelection) Map(doc *model.Node, mapping *transform.Mapping) Selection {
	return &RangeSelection{Anchor: mapping.Map(s.Anchor), Head: mapping.Map(s.Head)}
}

func (s *RangeSelection) Eq(other Selection) bool {
	o, ok := other.(*RangeSelection)
	return ok && o.Anchor == s.Anchor && o.Head == s.Head
}

func (s *RangeSelection) ToJSON() SelectionJSON {
	return SelectionJSON{Type: "range", Anchor: s.Anchor, Head: s.Head}
}

// SelectionFromJSON rehydrates a serialized selection against a document.
// A cell selection whose anchor or head no longer addresses a cell, or
// whose cells sit in different tables, degrades to a nearby range
// selection.
func SelectionFromJSON(doc *model.Node, j SelectionJSON) (Selection, error) {
	switch j.Type {
	case "range":
		return &RangeSelection{
			Anchor: clampPos(doc, j.Anchor),
			Head:   clampPos(doc, j.Head),
		}, nil
	case "cell":
		anchor, head := clampPos(doc, j.Anchor), clampPos(doc, j.Head)
		a, h := model.Resolve(doc, anchor), model.Resolve(doc, head)
		if PointsAtCell(a) && PointsAtCell(h) && InSameTable(a, h) {
			return NewCellSelection(a, h), nil
		}
		return &RangeSelection{Anchor: anchor, Head: head}, nil
	}
	return nil, fmt.Errorf("unrecognized selection type %q", j.Type)
}

func clampPos(doc *model.Node, pos int) int {
	return max(0, min(pos, doc.ContentSize()))
}
