package nfa

import (
	"github.com/coregx/lers/internal/conv"
	"github.com/coregx/lers/internal/sparse"
)

// Skipper finds candidate match starts. Find returns the first position
// >= at where a non-empty match could begin, or -1 if there is none.
// A Skipper may report false candidates but must never skip a real one.
type Skipper interface {
	Find(haystack []byte, at int) int
}

// Match is the span of a match and the pattern that produced it.
type Match struct {
	Start int
	End   int

	// Pattern is the priority index of the winning accept state.
	Pattern int
}

// Len returns the length of the match.
func (m Match) Len() int {
	return m.End - m.Start
}

// Matcher executes an NFA by epsilon-closure and move over state sets.
//
// A Matcher holds mutable scratch space and must not be used concurrently.
// Create one per goroutine; the NFA itself can be shared.
type Matcher struct {
	nfa     *NFA
	sets    *sparse.SparseSets
	accepts []uint32
	skip    Skipper
}

// NewMatcher creates a matcher for n. State sets are sized to the automaton,
// so they can hold every state and never overflow.
func NewMatcher(n *NFA) *Matcher {
	accepts := make([]uint32, len(n.accepts))
	for i, s := range n.accepts {
		accepts[i] = uint32(s)
	}
	return &Matcher{
		nfa:     n,
		sets:    sparse.NewSparseSets(conv.IntToUint32(n.states)),
		accepts: accepts,
	}
}

// NFA returns the automaton the matcher executes.
func (m *Matcher) NFA() *NFA {
	return m.nfa
}

// SetSkipper installs a candidate-start finder used by Search and
// LongestMatch. Nil removes it.
func (m *Matcher) SetSkipper(s Skipper) {
	m.skip = s
}

// current returns the live set; Set2 is scratch for the following step.
func (m *Matcher) current() *sparse.SparseSet { return m.sets.Set1 }

// addClosure adds s and everything epsilon-reachable from it to set.
func (m *Matcher) addClosure(set *sparse.SparseSet, s StateID) {
	from := set.Len()
	if set.Insert(uint32(s)) {
		m.closeFrom(set, from)
	}
}

// closeFrom closes set under epsilon edges, treating the elements from
// index from onward as the worklist. Each state enters the set once.
func (m *Matcher) closeFrom(set *sparse.SparseSet, from int) {
	for i := from; i < set.Len(); i++ {
		s := set.Values()[i]
		for _, t := range m.nfa.epsilon[s] {
			set.Insert(uint32(t))
		}
	}
}

// move inserts into dst every state reachable from src by one edge
// accepting c.
func (m *Matcher) move(src, dst *sparse.SparseSet, c byte) {
	for _, s := range src.Values() {
		for _, e := range m.nfa.consuming[s] {
			if e.Label.Matches(c) {
				dst.Insert(uint32(e.To))
			}
		}
	}
}

// step replaces the live set with closure(move(live, c)).
func (m *Matcher) step(c byte) {
	next := m.sets.Set2
	next.Clear()
	m.move(m.sets.Set1, next, c)
	m.closeFrom(next, 0)
	m.sets.Swap()
}

// seed resets the live set to closure({start}).
func (m *Matcher) seed() {
	m.sets.Set1.Clear()
	m.addClosure(m.sets.Set1, m.nfa.Start())
}

// acceptRank returns the priority index of the first accept state in the
// live set, or -1.
func (m *Matcher) acceptRank() int {
	return m.current().FirstShared(m.accepts)
}

// FullMatch reports whether the automaton accepts the whole input.
func (m *Matcher) FullMatch(input []byte) bool {
	m.seed()
	for _, c := range input {
		if m.current().IsEmpty() {
			return false
		}
		m.step(c)
	}
	return m.acceptRank() >= 0
}

// Search reports whether any substring of input, including the empty one,
// is accepted. The start closure is re-seeded at every position, so matches
// starting at any offset are found in a single pass.
func (m *Matcher) Search(input []byte) bool {
	m.seed()
	if m.acceptRank() >= 0 {
		return true
	}
	live := m.current()
	live.Clear()
	for pos := 0; pos < len(input); pos++ {
		if live.IsEmpty() && m.skip != nil {
			next := m.skip.Find(input, pos)
			if next < 0 {
				return false
			}
			pos = next
		}
		m.addClosure(live, m.nfa.Start())
		m.step(input[pos])
		live = m.current()
		if m.acceptRank() >= 0 {
			return true
		}
	}
	return false
}

// LongestAt returns the longest non-empty match starting exactly at at.
// Among accept states reached at the same length, the earliest in
// AcceptStates wins.
func (m *Matcher) LongestAt(input []byte, at int) (Match, bool) {
	end, rank := -1, -1
	m.seed()
	for pos := at; pos < len(input) && !m.current().IsEmpty(); pos++ {
		m.step(input[pos])
		if r := m.acceptRank(); r >= 0 {
			end, rank = pos+1, r
		}
	}
	if end < 0 {
		return Match{}, false
	}
	return Match{Start: at, End: end, Pattern: rank}, true
}

// LongestMatch returns the leftmost-longest non-empty match at or after
// from. When no match starts at a position the search resumes at the next
// one.
func (m *Matcher) LongestMatch(input []byte, from int) (Match, bool) {
	for at := from; at < len(input); at++ {
		if m.skip != nil {
			at = m.skip.Find(input, at)
			if at < 0 {
				break
			}
		}
		if match, ok := m.LongestAt(input, at); ok {
			return match, true
		}
	}
	return Match{}, false
}
