package model

import "testing"

func TestResolveAtCell(t *testing.T) {
	d := doc22()
	r := Resolve(d, 2) // before cell a
	if r.Depth() != 2 {
		t.Fatalf("Depth() = %d, want 2", r.Depth())
	}
	if r.Parent().Type() != Row {
		t.Errorf("Parent() = %s, want row", r.Parent().Type())
	}
	if r.Node(-1).Type() != Table {
		t.Errorf("Node(-1) = %s, want table", r.Node(-1).Type())
	}
	if r.Node(0).Type() != Doc {
		t.Errorf("Node(0) = %s, want doc", r.Node(0).Type())
	}
	if got := r.Start(-1); got != 1 {
		t.Errorf("Start(-1) = %d, want 1", got)
	}
	if got := r.End(-1); got != 25 {
		t.Errorf("End(-1) = %d, want 25", got)
	}
	if got := r.Index(-1); got != 0 {
		t.Errorf("Index(-1) = %d, want 0", got)
	}
	if got := r.Before(2); got != 1 {
		t.Errorf("Before(2) = %d, want 1", got)
	}
	if got := r.After(2); got != 13 {
		t.Errorf("After(2) = %d, want 13", got)
	}
	after := r.NodeAfter()
	if after == nil || !after.Type().IsCell() {
		t.Errorf("NodeAfter() = %v, want cell", after)
	}
	if r.NodeBefore() != nil {
		t.Errorf("NodeBefore() at row start should be nil")
	}
	if !r.AtNodeBoundary() {
		t.Errorf("cell positions sit at node boundaries")
	}
}

func TestResolveSecondRow(t *testing.T) {
	d := doc22()
	r := Resolve(d, 14) // before cell c
	if got := r.Index(-1); got != 1 {
		t.Errorf("Index(-1) = %d, want 1", got)
	}
	if got := r.Before(2); got != 13 {
		t.Errorf("Before(2) = %d, want 13", got)
	}
	if got := r.Start(-1); got != 1 {
		t.Errorf("Start(-1) = %d, want 1", got)
	}
	if got := r.IndexAfter(-1); got != 2 {
		t.Errorf("IndexAfter(-1) = %d, want 2", got)
	}
}

func TestResolveInsideText(t *testing.T) {
	d := doc22()
	r := Resolve(d, 4) // inside cell a's text? no: before the letter
	if r.Parent().Type() != Paragraph {
		t.Fatalf("Parent() = %s, want paragraph", r.Parent().Type())
	}
	if !r.AtNodeBoundary() {
		t.Errorf("position before the text should be a boundary")
	}
	after := r.NodeAfter()
	if after == nil || after.Text() != "a" {
		t.Errorf("NodeAfter() = %v, want text a", after)
	}

	mid := Resolve(d, 5) // after the letter
	if before := mid.NodeBefore(); before == nil || before.Text() != "a" {
		t.Errorf("NodeBefore() = %v, want text a", before)
	}
}

func TestResolveTextOffset(t *testing.T) {
	d := doc(table(row(cell("xyz"))))
	// cell at 2, paragraph at 3, text runs 4..7
	r := Resolve(d, 5)
	if r.AtNodeBoundary() {
		t.Fatalf("position inside text reported as boundary")
	}
	if after := r.NodeAfter(); after == nil || after.Text() != "yz" {
		t.Errorf("NodeAfter() = %v, want text yz", after)
	}
	if before := r.NodeBefore(); before == nil || before.Text() != "x" {
		t.Errorf("NodeBefore() = %v, want text x", before)
	}
}

func TestResolveOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("resolving past the document should panic")
		}
	}()
	Resolve(doc22(), 100)
}
