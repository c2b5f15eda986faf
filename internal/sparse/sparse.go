// Package sparse provides the state sets used by NFA simulation.
//
// A sparse set supports O(1) insertion, membership testing and clearing while
// keeping a dense list of its elements in insertion order. The universe of
// values is fixed at construction (the automaton's state count); inserting a
// value outside it panics.
package sparse

// SparseSet is a set of uint32 values in [0, capacity).
type SparseSet struct {
	sparse []uint32 // value -> index in dense
	dense  []uint32 // values in insertion order
}

// NewSparseSet creates an empty set over the universe [0, capacity).
func NewSparseSet(capacity uint32) *SparseSet {
	return &SparseSet{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Insert adds value and reports whether it was newly added.
func (s *SparseSet) Insert(value uint32) bool {
	if s.Contains(value) {
		return false
	}
	//nolint:gosec // G115: len(dense) < len(sparse) <= MaxUint32
	s.sparse[value] = uint32(len(s.dense))
	s.dense = append(s.dense, value)
	return true
}

// Contains reports whether value is in the set. Values outside the universe
// are never members.
func (s *SparseSet) Contains(value uint32) bool {
	if int(value) >= len(s.sparse) {
		return false
	}
	i := s.sparse[value]
	return int(i) < len(s.dense) && s.dense[i] == value
}

// Clear empties the set without touching the sparse array; stale entries
// fail the dense cross-check in Contains.
func (s *SparseSet) Clear() { s.dense = s.dense[:0] }

// Len returns the number of elements.
func (s *SparseSet) Len() int { return len(s.dense) }

// IsEmpty reports whether the set has no elements.
func (s *SparseSet) IsEmpty() bool { return len(s.dense) == 0 }

// Values returns the elements in insertion order. The slice is valid until
// the next mutation.
func (s *SparseSet) Values() []uint32 { return s.dense }

// FirstShared returns the index of the first element of ordered that is also
// in the set, or -1 when the two are disjoint. Callers pass values in
// priority order, so the result is the highest-priority shared value.
func (s *SparseSet) FirstShared(ordered []uint32) int {
	for i, v := range ordered {
		if s.Contains(v) {
			return i
		}
	}
	return -1
}

// SparseSets is the current/next pair stepped by a simulation.
type SparseSets struct {
	Set1 *SparseSet
	Set2 *SparseSet
}

// NewSparseSets creates a pair of empty sets over [0, capacity).
func NewSparseSets(capacity uint32) *SparseSets {
	return &SparseSets{
		Set1: NewSparseSet(capacity),
		Set2: NewSparseSet(capacity),
	}
}

// Swap exchanges Set1 and Set2.
func (ss *SparseSets) Swap() { ss.Set1, ss.Set2 = ss.Set2, ss.Set1 }
