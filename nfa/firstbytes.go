package nfa

// FirstByteSet represents the set of bytes that can start a non-empty match.
// Used to skip input positions where no match can begin.
type FirstByteSet struct {
	// bytes is a 256-bit lookup table for O(1) membership test
	bytes [256]bool
	// count is the number of valid first bytes (0-256)
	count int
	// nullable is true if the start state already accepts (empty match)
	nullable bool
}

// Contains returns true if b can be the first byte of a match.
func (f *FirstByteSet) Contains(b byte) bool {
	return f.bytes[b]
}

// Count returns the number of possible first bytes.
func (f *FirstByteSet) Count() int {
	return f.count
}

// Nullable reports whether the automaton accepts the empty string.
func (f *FirstByteSet) Nullable() bool {
	return f.nullable
}

// Bytes returns the possible first bytes in ascending order.
func (f *FirstByteSet) Bytes() []byte {
	out := make([]byte, 0, f.count)
	for c := 0; c < 256; c++ {
		if f.bytes[c] {
			out = append(out, byte(c))
		}
	}
	return out
}

// IsUseful returns true if this set can reject input positions.
// Returns false if:
//   - All 256 bytes are valid (e.g., for .* style patterns)
//   - The automaton accepts the empty string, so every position matches
func (f *FirstByteSet) IsUseful() bool {
	return !f.nullable && f.count < 256
}

// FirstBytes computes the bytes accepted by consuming edges that leave the
// epsilon closure of the start state.
func (n *NFA) FirstBytes() *FirstByteSet {
	result := &FirstByteSet{}
	m := NewMatcher(n)
	m.sets.Set1.Clear()
	m.addClosure(m.sets.Set1, n.Start())
	for _, v := range m.sets.Set1.Values() {
		s := StateID(v)
		if n.IsAccept(s) {
			result.nullable = true
		}
		for _, e := range n.consuming[s] {
			for c := 0; c < 256; c++ {
				if !result.bytes[c] && e.Label.Matches(byte(c)) {
					result.bytes[c] = true
					result.count++
				}
			}
		}
	}
	return result
}
