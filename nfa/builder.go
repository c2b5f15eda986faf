package nfa

// Builder constructs NFAs by hand using a low-level API.
// State 0 is the start state. The Compiler uses the same representation.
type Builder struct {
	states  int
	edges   []Edge
	accepts []StateID
}

// NewBuilder creates an empty builder
func NewBuilder() *Builder {
	return NewBuilderWithCapacity(16)
}

// NewBuilderWithCapacity creates an empty builder with room for capacity edges
func NewBuilderWithCapacity(capacity int) *Builder {
	return &Builder{
		edges: make([]Edge, 0, capacity),
	}
}

// AddState allocates a new state and returns its ID
func (b *Builder) AddState() StateID {
	id := StateID(b.states)
	b.states++
	return id
}

// SetStateCount declares the number of states. Edges may then refer to any
// state below n without calling AddState.
func (b *Builder) SetStateCount(n int) {
	b.states = n
}

// StateCount returns the number of states allocated so far
func (b *Builder) StateCount() int {
	return b.states
}

// AddEdge appends an edge with the given label
func (b *Builder) AddEdge(label Label, from, to StateID) {
	b.edges = append(b.edges, Edge{Label: label, From: from, To: to})
}

// AddEpsilon appends an edge traversed without consuming input
func (b *Builder) AddEpsilon(from, to StateID) {
	b.AddEdge(Epsilon(), from, to)
}

// AddSymbol appends an edge accepting the byte c
func (b *Builder) AddSymbol(from, to StateID, c byte) {
	b.AddEdge(Symbol(c), from, to)
}

// AddRange appends an edge accepting bytes in [lo, hi], inverted when negated
func (b *Builder) AddRange(from, to StateID, lo, hi byte, negated bool) {
	b.AddEdge(ByteRange(lo, hi, negated), from, to)
}

// AddSet appends an edge accepting the member bytes, inverted when negated
func (b *Builder) AddSet(from, to StateID, members []byte, negated bool) {
	b.AddEdge(ByteSet(members, negated), from, to)
}

// AddAccept appends s to the accept states. Earlier accept states take
// priority over later ones.
func (b *Builder) AddAccept(s StateID) {
	b.accepts = append(b.accepts, s)
}

// Validate checks that every edge and accept state refers to an allocated
// state and that at least one accept state exists
func (b *Builder) Validate() error {
	if b.states == 0 {
		return &BuildError{Message: "automaton has no states", StateID: InvalidState}
	}
	if len(b.accepts) == 0 {
		return &BuildError{Message: "no accept states", StateID: InvalidState}
	}
	for _, e := range b.edges {
		if int(e.From) >= b.states {
			return &BuildError{Message: "edge " + e.String() + ": source out of range", StateID: e.From}
		}
		if int(e.To) >= b.states {
			return &BuildError{Message: "edge " + e.String() + ": target out of range", StateID: e.To}
		}
	}
	for _, s := range b.accepts {
		if int(s) >= b.states {
			return &BuildError{Message: "accept state out of range", StateID: s}
		}
	}
	return nil
}

// Build validates and returns the NFA. The builder may be reused afterwards;
// the NFA does not share memory with it.
func (b *Builder) Build() (*NFA, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	edges := make([]Edge, len(b.edges))
	copy(edges, b.edges)
	accepts := make([]StateID, len(b.accepts))
	copy(accepts, b.accepts)
	return newNFA(b.states, edges, accepts, nil)
}
