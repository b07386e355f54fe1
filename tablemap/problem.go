package tablemap

import "fmt"

// ProblemKind tags the anomalies the map builder can detect. Problems are
// data, not errors: malformed tables still produce a usable map, and the
// repair pass consumes the problem list to normalize the table.
type ProblemKind int

const (
	// Collision means two cells claim the same grid slot.
	Collision ProblemKind = iota
	// Missing means a grid slot is not covered by any cell.
	Missing
	// OverlongRowspan means a rowspan extends past the table's last row.
	OverlongRowspan
	// ColwidthMismatch means rows declare conflicting widths for a column.
	ColwidthMismatch
	// ZeroSized means the table has no rows or no columns.
	ZeroSized
)

func (k ProblemKind) String() string {
	switch k {
	case Collision:
		return "collision"
	case Missing:
		return "missing"
	case OverlongRowspan:
		return "overlong_rowspan"
	case ColwidthMismatch:
		return "colwidth mismatch"
	case ZeroSized:
		return "zero_sized"
	}
	return "<unknown problem>"
}

// Problem describes one grid anomaly. Which fields are meaningful depends
// on the kind: Pos names the offending cell (Collision, OverlongRowspan,
// ColwidthMismatch), Row the affected row (Collision, Missing), N a slot
// or span count (Collision, Missing, OverlongRowspan), and Colwidth the
// corrected width array (ColwidthMismatch).
type Problem struct {
	Kind     ProblemKind
	Row      int
	Pos      int
	N        int
	Colwidth []int
}

func (p Problem) String() string {
	switch p.Kind {
	case Collision:
		return fmt.Sprintf("collision at cell %d in row %d (%d slots)", p.Pos, p.Row, p.N)
	case Missing:
		return fmt.Sprintf("%d missing slots in row %d", p.N, p.Row)
	case OverlongRowspan:
		return fmt.Sprintf("cell %d rowspan extends %d rows past table bottom", p.Pos, p.N)
	case ColwidthMismatch:
		return fmt.Sprintf("cell %d colwidth disagrees, corrected %v", p.Pos, p.Colwidth)
	case ZeroSized:
		return "zero-sized table"
	}
	return p.Kind.String()
}
