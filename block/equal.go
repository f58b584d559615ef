package block

import "math"

// RealTolerance is the maximum allowed absolute difference between two
// real values still considered equal by Equal.
const RealTolerance = 1e-5

// Equal reports whether b and other are structurally equal per spec.md
// §3: equal scalar maps (reals compared within RealTolerance), pairwise
// equal sub-blocks by name, and equal indexed-block maps.
func (b *Block) Equal(other *Block) bool {
	if b == nil || other == nil {
		return b == other
	}
	if len(b.bools) != len(other.bools) || len(b.ints) != len(other.ints) ||
		len(b.reals) != len(other.reals) || len(b.strings) != len(other.strings) {
		return false
	}
	for k, v := range b.bools {
		if ov, ok := other.bools[k]; !ok || ov != v {
			return false
		}
	}
	for k, v := range b.ints {
		if ov, ok := other.ints[k]; !ok || ov != v {
			return false
		}
	}
	for k, v := range b.reals {
		ov, ok := other.reals[k]
		if !ok || math.Abs(ov-v) > RealTolerance {
			return false
		}
	}
	for k, v := range b.strings {
		if ov, ok := other.strings[k]; !ok || ov != v {
			return false
		}
	}

	if len(b.subBlockOrder) != len(other.subBlockOrder) {
		return false
	}
	for _, name := range b.subBlockOrder {
		otherSub, ok := other.subBlocks[name]
		if !ok || !b.subBlocks[name].Equal(otherSub) {
			return false
		}
	}

	return indexedMapsEqual(b.indexed, other.indexed)
}

func indexedMapsEqual(a, c IndexedBlockMap) bool {
	// A block with no indexed-block map has the same (empty) set of
	// indexed blocks as one with an empty map.
	var namesA, namesC []string
	if a != nil {
		namesA = a.Names()
	}
	if c != nil {
		namesC = c.Names()
	}
	if len(namesA) != len(namesC) {
		return false
	}
	for _, name := range namesA {
		if !c.HasIndexedBlock(name) {
			return false
		}
		ia, err := a.GetIndexedBlock(name)
		if err != nil {
			return false
		}
		ic, err := c.GetIndexedBlock(name)
		if err != nil {
			return false
		}
		if !ia.Equal(ic) {
			return false
		}
	}
	return true
}

// Equal reports whether ib and other are structurally equal: same row
// count and, for every column present in either block, equal values at
// every row with the same definedness (reals within RealTolerance).
func (ib *IndexedBlock) Equal(other *IndexedBlock) bool {
	if ib == nil || other == nil {
		return ib == other
	}
	if ib.rows != other.rows {
		return false
	}
	if len(ib.bools) != len(other.bools) || len(ib.ints) != len(other.ints) ||
		len(ib.reals) != len(other.reals) || len(ib.strings) != len(other.strings) {
		return false
	}
	for k, p := range ib.bools {
		op, ok := other.bools[k]
		if !ok || !equalColumns(p, op, func(a, b bool) bool { return a == b }) {
			return false
		}
	}
	for k, p := range ib.ints {
		op, ok := other.ints[k]
		if !ok || !equalColumns(p, op, func(a, b int) bool { return a == b }) {
			return false
		}
	}
	for k, p := range ib.reals {
		op, ok := other.reals[k]
		if !ok || !equalColumns(p, op, func(a, b float64) bool { return math.Abs(a-b) <= RealTolerance }) {
			return false
		}
	}
	for k, p := range ib.strings {
		op, ok := other.strings[k]
		if !ok || !equalColumns(p, op, func(a, b string) bool { return a == b }) {
			return false
		}
	}
	return true
}

func equalColumns[T any](a, b *IndexedProperty[T], eq func(a, b T) bool) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		if a.IsDefined(i) != b.IsDefined(i) {
			return false
		}
		if !a.IsDefined(i) {
			continue
		}
		if !eq(a.values[i], b.values[i]) {
			return false
		}
	}
	return true
}
