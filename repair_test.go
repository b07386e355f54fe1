package tables

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prosetree/tables/model"
)

func TestFixTablesPadsMissingCells(t *testing.T) {
	doc := tdoc(ttable(
		trow(td("a"), td("b")),
		trow(td("c")),
	))
	tr := FixTables(&State{Doc: doc}, nil)
	if tr == nil {
		t.Fatal("expected a repair transform")
	}
	want := tdoc(ttable(
		trow(td("a"), td("b")),
		trow(td("c"), td("")),
	))
	if d := cmp.Diff(want.String(), tr.Doc.String()); d != "" {
		t.Errorf("document mismatch (-want +got):\n%s", d)
	}
	if tr.GetMeta(FixTablesMeta) != true {
		t.Errorf("repair transform not marked with %q", FixTablesMeta)
	}
}

func TestFixTablesPadsAtFrontWhenTopRowShort(t *testing.T) {
	doc := tdoc(ttable(
		trow(td("a")),
		trow(td("c"), td("d")),
	))
	tr := FixTables(&State{Doc: doc}, nil)
	if tr == nil {
		t.Fatal("expected a repair transform")
	}
	want := tdoc(ttable(
		trow(td(""), td("a")),
		trow(td("c"), td("d")),
	))
	if d := cmp.Diff(want.String(), tr.Doc.String()); d != "" {
		t.Errorf("document mismatch (-want +got):\n%s", d)
	}
}

func TestFixTablesPadsWithHeaderCells(t *testing.T) {
	doc := tdoc(ttable(
		trow(th("a"), th("b")),
		trow(th("c")),
	))
	tr := FixTables(&State{Doc: doc}, nil)
	if tr == nil {
		t.Fatal("expected a repair transform")
	}
	added := tr.Doc.Child(0).Child(1).Child(1)
	if added.Type() != model.HeaderCell {
		t.Errorf("cell added to a header row is %s, want %s", added.Type(), model.HeaderCell)
	}
}

func TestFixTablesTruncatesOverlongRowspan(t *testing.T) {
	doc := tdoc(ttable(
		trow(td("a"), td("b")),
		trow(tdSpan(1, 2, "c"), td("d")),
	))
	tr := FixTables(&State{Doc: doc}, nil)
	if tr == nil {
		t.Fatal("expected a repair transform")
	}
	if d := cmp.Diff(doc22().String(), tr.Doc.String()); d != "" {
		t.Errorf("document mismatch (-want +got):\n%s", d)
	}
}

func TestFixTablesRewritesColwidth(t *testing.T) {
	doc := tdoc(ttable(
		trow(tdWidth([]int{100}, "a"), td("b")),
		trow(tdWidth([]int{50}, "c"), td("d")),
	))
	tr := FixTables(&State{Doc: doc}, nil)
	if tr == nil {
		t.Fatal("expected a repair transform")
	}
	got := tr.Doc.Child(0).Child(0).Child(0).Attrs().Colwidth
	if d := cmp.Diff([]int{50}, got); d != "" {
		t.Errorf("colwidth mismatch (-want +got):\n%s", d)
	}
}

func TestFixTablesDeletesZeroSizedTable(t *testing.T) {
	doc := tdoc(ttable())
	tr := FixTables(&State{Doc: doc}, nil)
	if tr == nil {
		t.Fatal("expected a repair transform")
	}
	if tr.Doc.ChildCount() != 0 {
		t.Errorf("zero-sized table survived: %s", tr.Doc)
	}
}

func TestFixTablesIdempotent(t *testing.T) {
	doc := tdoc(ttable(
		trow(td("a"), td("b")),
		trow(td("c")),
	))
	tr := FixTables(&State{Doc: doc}, nil)
	if tr == nil {
		t.Fatal("expected a repair transform")
	}
	if again := FixTables(&State{Doc: tr.Doc}, nil); again != nil {
		t.Errorf("repaired document still produces fixes: %s", again.Doc)
	}
}

func TestFixTablesCleanDocument(t *testing.T) {
	if tr := FixTables(&State{Doc: doc22()}, nil); tr != nil {
		t.Errorf("clean document produced a repair transform")
	}
}

func TestFixTablesSkipsUnchangedTables(t *testing.T) {
	broken := ttable(
		trow(td("a"), td("b")),
		trow(td("c")),
	)
	oldDoc := tdoc(broken)
	newDoc := tdoc(broken)

	// The table node is shared between both documents, so the diff walk
	// never reaches it.
	if tr := FixTables(&State{Doc: newDoc}, &State{Doc: oldDoc}); tr != nil {
		t.Errorf("shared table was revisited")
	}

	// Same document pointer: nothing to scan at all.
	if tr := FixTables(&State{Doc: oldDoc}, &State{Doc: oldDoc}); tr != nil {
		t.Errorf("identical documents were scanned")
	}
}

func TestFixTablesVisitsChangedTables(t *testing.T) {
	clean := ttable(trow(td("x")))
	oldDoc := tdoc(clean, ttable(trow(td("a"), td("b")), trow(td("c"))))
	newDoc := tdoc(clean, ttable(trow(td("a"), td("b")), trow(td("d"))))
	tr := FixTables(&State{Doc: newDoc}, &State{Doc: oldDoc})
	if tr == nil {
		t.Fatal("changed broken table was not repaired")
	}
	secondRow := tr.Doc.Child(1).Child(1)
	if secondRow.ChildCount() != 2 {
		t.Errorf("short row not padded: %s", secondRow)
	}
	if tr.Doc.Child(0) != clean {
		t.Errorf("untouched table was rebuilt")
	}
}

func TestFixTablesMultipleProblems(t *testing.T) {
	// Row 1 is short and c's rowspan runs past the bottom.
	doc := tdoc(ttable(
		trow(td("a"), td("b")),
		trow(tdSpan(1, 2, "c")),
	))
	tr := FixTables(&State{Doc: doc}, nil)
	if tr == nil {
		t.Fatal("expected a repair transform")
	}
	m := gridOf(t, tr.Doc)
	if len(m.Problems) != 0 {
		t.Errorf("problems remain after repair: %v", m.Problems)
	}
}
