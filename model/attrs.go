package model

import "slices"

// CellAttrs carries the span attributes of a cell. Colspan and Rowspan are
// at least 1; Colwidth, when non-nil, has exactly Colspan entries where 0
// means "no declared width".
type CellAttrs struct {
	Colspan  int
	Rowspan  int
	Colwidth []int
}

// DefaultCellAttrs returns a fresh 1x1 attribute set.
func DefaultCellAttrs() *CellAttrs {
	return &CellAttrs{Colspan: 1, Rowspan: 1}
}

// Clone copies the attrs, including the colwidth array.
func (a *CellAttrs) Clone() *CellAttrs {
	if a == nil {
		return DefaultCellAttrs()
	}
	res := &CellAttrs{Colspan: a.Colspan, Rowspan: a.Rowspan}
	if a.Colwidth != nil {
		res.Colwidth = slices.Clone(a.Colwidth)
	}
	return res
}

func (a *CellAttrs) WithColspan(n int) *CellAttrs {
	res := a.Clone()
	res.Colspan = n
	return res
}

func (a *CellAttrs) WithRowspan(n int) *CellAttrs {
	res := a.Clone()
	res.Rowspan = n
	return res
}

func (a *CellAttrs) WithColwidth(w []int) *CellAttrs {
	res := a.Clone()
	if w == nil {
		res.Colwidth = nil
	} else {
		res.Colwidth = slices.Clone(w)
	}
	return res
}

// Eq compares attrs by value. Both nil-as-default and explicit defaults
// compare equal.
func (a *CellAttrs) Eq(b *CellAttrs) bool {
	av, bv := a, b
	if av == nil {
		av = DefaultCellAttrs()
	}
	if bv == nil {
		bv = DefaultCellAttrs()
	}
	return av.Colspan == bv.Colspan && av.Rowspan == bv.Rowspan &&
		slices.Equal(av.Colwidth, bv.Colwidth)
}
