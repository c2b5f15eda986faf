package nfa

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// StateID identifies an NFA state. States are numbered 0..States()-1 and
// have no identity beyond their number.
type StateID uint32

// InvalidState represents an invalid/uninitialized state ID
const InvalidState StateID = 0xFFFFFFFF

// Edge is a labeled transition between two states.
type Edge struct {
	Label Label
	From  StateID
	To    StateID
}

// String renders the edge as "from --label--> to".
func (e Edge) String() string {
	return fmt.Sprintf("%d --%s--> %d", e.From, e.Label, e.To)
}

// NFA is a compiled Thompson automaton: a state count, an edge list and an
// ordered list of accept states. The start state is always 0.
//
// The order of AcceptStates is the match priority: when several accept
// states are live at once, the one listed first wins. For automata built by
// CompileMany, accept state i belongs to pattern i.
//
// An NFA is immutable after construction and safe for concurrent use.
type NFA struct {
	states   int
	edges    []Edge
	accepts  []StateID
	patterns []string

	// adjacency derived from edges
	epsilon   [][]StateID
	consuming [][]Edge

	// acceptRank[s] is the index of s in accepts, or -1
	acceptRank []int32
}

// newNFA validates the parts and derives adjacency. The slices are owned by
// the returned NFA.
func newNFA(states int, edges []Edge, accepts []StateID, patterns []string) (*NFA, error) {
	if states <= 0 {
		return nil, &BuildError{Message: "automaton has no states", StateID: InvalidState}
	}
	n := &NFA{
		states:     states,
		edges:      edges,
		accepts:    accepts,
		patterns:   patterns,
		epsilon:    make([][]StateID, states),
		consuming:  make([][]Edge, states),
		acceptRank: make([]int32, states),
	}
	for i := range n.acceptRank {
		n.acceptRank[i] = -1
	}
	for i, s := range accepts {
		if int(s) >= states {
			return nil, &BuildError{Message: "accept state out of range", StateID: s}
		}
		if n.acceptRank[s] < 0 {
			//nolint:gosec // G115: accept count is bounded by the state limit
			n.acceptRank[s] = int32(i)
		}
	}
	for _, e := range edges {
		if int(e.From) >= states {
			return nil, &BuildError{Message: fmt.Sprintf("edge %v: source out of range", e), StateID: e.From}
		}
		if int(e.To) >= states {
			return nil, &BuildError{Message: fmt.Sprintf("edge %v: target out of range", e), StateID: e.To}
		}
		if e.Label.IsEpsilon() {
			n.epsilon[e.From] = append(n.epsilon[e.From], e.To)
		} else {
			n.consuming[e.From] = append(n.consuming[e.From], e)
		}
	}
	return n, nil
}

// Start returns the start state, which is always 0.
func (n *NFA) Start() StateID {
	return 0
}

// States returns the number of states.
func (n *NFA) States() int {
	return n.states
}

// Edges returns the edge list. The caller must not modify it.
func (n *NFA) Edges() []Edge {
	return n.edges
}

// AcceptStates returns the accept states in priority order.
// The caller must not modify the result.
func (n *NFA) AcceptStates() []StateID {
	return n.accepts
}

// PatternCount returns the number of accept states, i.e. the number of
// patterns the automaton distinguishes.
func (n *NFA) PatternCount() int {
	return len(n.accepts)
}

// Patterns returns the source patterns in priority order, or nil for
// hand-built automata.
func (n *NFA) Patterns() []string {
	return n.patterns
}

// IsAccept reports whether s is an accept state.
func (n *NFA) IsAccept(s StateID) bool {
	return int(s) < n.states && n.acceptRank[s] >= 0
}

// AcceptIndex returns the priority index of accept state s, or -1 when s is
// not an accept state.
func (n *NFA) AcceptIndex(s StateID) int {
	if int(s) >= n.states {
		return -1
	}
	return int(n.acceptRank[s])
}

// EpsilonClosure returns the smallest superset of states closed under
// epsilon edges, in discovery order.
func (n *NFA) EpsilonClosure(states []StateID) []StateID {
	m := NewMatcher(n)
	m.sets.Set1.Clear()
	for _, s := range states {
		m.addClosure(m.sets.Set1, s)
	}
	return toStateIDs(m.sets.Set1.Values())
}

// Move returns the states reachable from states by one edge accepting c.
// Epsilon edges are not followed.
func (n *NFA) Move(states []StateID, c byte) []StateID {
	m := NewMatcher(n)
	m.sets.Set1.Clear()
	for _, s := range states {
		m.sets.Set1.Insert(uint32(s))
	}
	m.sets.Set2.Clear()
	m.move(m.sets.Set1, m.sets.Set2, c)
	return toStateIDs(m.sets.Set2.Values())
}

func toStateIDs(values []uint32) []StateID {
	out := make([]StateID, len(values))
	for i, v := range values {
		out[i] = StateID(v)
	}
	return out
}

// WriteTo writes the edge dump, one edge per line in "from --label--> to"
// form, followed by the accept states.
func (n *NFA) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var total int64
	for _, e := range n.edges {
		k, err := fmt.Fprintln(bw, e.String())
		total += int64(k)
		if err != nil {
			return total, err
		}
	}
	k, err := fmt.Fprintf(bw, "accept: %v\n", n.accepts)
	total += int64(k)
	if err != nil {
		return total, err
	}
	return total, bw.Flush()
}

// String returns the edge dump produced by WriteTo.
func (n *NFA) String() string {
	var sb strings.Builder
	_, _ = n.WriteTo(&sb)
	return sb.String()
}
