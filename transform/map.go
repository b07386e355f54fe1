// Package transform implements edit transactions over the document model:
// node-boundary replacement plus the step-wise position mapping that lets
// positions computed before an edit be carried across it.
package transform

// StepMap maps positions through a single replacement step. It is a flat
// list of (start, oldSize, newSize) triples describing replaced ranges,
// sorted by start.
type StepMap struct {
	ranges []int
}

// NewStepMap builds a StepMap from (start, oldSize, newSize) triples.
func NewStepMap(ranges ...int) *StepMap {
	if len(ranges)%3 != 0 {
		panic("transform: step map ranges must come in triples")
	}
	return &StepMap{ranges: ranges}
}

// IdentityStepMap is used for steps that change markup but not positions.
var IdentityStepMap = NewStepMap()

// Map maps a position through the step. assoc determines which side the
// position associates with when it falls exactly on a replaced range's
// edge: negative keeps it before inserted content, positive after.
func (m *StepMap) Map(pos, assoc int) int {
	diff := 0
	for i := 0; i+2 < len(m.ranges); i += 3 {
		start := m.ranges[i]
		if start > pos {
			break
		}
		oldSize, newSize := m.ranges[i+1], m.ranges[i+2]
		end := start + oldSize
		if pos <= end {
			var side int
			switch {
			case oldSize == 0:
				side = assoc
			case pos == start:
				side = -1
			case pos == end:
				side = 1
			default:
				side = assoc
			}
			if side < 0 {
				return start + diff
			}
			return start + diff + newSize
		}
		diff += newSize - oldSize
	}
	return pos + diff
}

// Mapping accumulates the step maps of a transform and maps positions
// through all of them in order.
type Mapping struct {
	maps []*StepMap
}

func (m *Mapping) Len() int { return len(m.maps) }

func (m *Mapping) appendMap(sm *StepMap) { m.maps = append(m.maps, sm) }

// Slice returns a mapping through only the steps from the given index on.
// Commands use it to map positions computed mid-transform.
func (m *Mapping) Slice(from int) *Mapping {
	return &Mapping{maps: m.maps[from:]}
}

// Map maps a position through every step, associating forward.
func (m *Mapping) Map(pos int) int { return m.MapAssoc(pos, 1) }

func (m *Mapping) MapAssoc(pos, assoc int) int {
	for _, sm := range m.maps {
		pos = sm.Map(pos, assoc)
	}
	return pos
}
