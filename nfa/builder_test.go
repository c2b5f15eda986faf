package nfa

import (
	"errors"
	"testing"
)

func TestBuilder_AddState(t *testing.T) {
	b := NewBuilder()
	s0 := b.AddState()
	s1 := b.AddState()
	s2 := b.AddState()
	if s0 != 0 || s1 != 1 || s2 != 2 || b.StateCount() != 3 {
		t.Fatalf("AddState ids = %d %d %d, count %d", s0, s1, s2, b.StateCount())
	}
	b.AddRange(s0, s1, 'a', 'c', false)
	b.AddSet(s1, s2, []byte("xy"), false)
	b.AddAccept(s2)

	n, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	m := NewMatcher(n)
	if !m.FullMatch([]byte("by")) || m.FullMatch([]byte("dy")) {
		t.Error("hand-built range/set automaton matches wrongly")
	}
}

func TestBuilder_Validate(t *testing.T) {
	tests := []struct {
		name  string
		setup func(b *Builder)
		state StateID
	}{
		{"no states", func(b *Builder) {}, InvalidState},
		{"no accepts", func(b *Builder) { b.SetStateCount(2) }, InvalidState},
		{"edge source", func(b *Builder) {
			b.SetStateCount(2)
			b.AddEpsilon(3, 1)
			b.AddAccept(1)
		}, 3},
		{"edge target", func(b *Builder) {
			b.SetStateCount(2)
			b.AddSymbol(0, 9, 'a')
			b.AddAccept(1)
		}, 9},
		{"accept", func(b *Builder) {
			b.SetStateCount(2)
			b.AddAccept(2)
		}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			tt.setup(b)
			_, err := b.Build()
			var berr *BuildError
			if !errors.As(err, &berr) {
				t.Fatalf("got %v, want *BuildError", err)
			}
			if berr.StateID != tt.state {
				t.Errorf("StateID = %d, want %d", berr.StateID, tt.state)
			}
		})
	}
}

// TestBuilder_Reuse tests that a built NFA is unaffected by later builder
// mutations.
func TestBuilder_Reuse(t *testing.T) {
	b := NewBuilder()
	b.SetStateCount(2)
	b.AddSymbol(0, 1, 'a')
	b.AddAccept(1)
	first, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	b.AddSymbol(0, 1, 'b')
	if len(first.Edges()) != 1 {
		t.Errorf("NFA shares edges with builder: %v", first.Edges())
	}
}

// TestBuilder_DuplicateAccept tests that an accept state listed twice keeps
// its first priority.
func TestBuilder_DuplicateAccept(t *testing.T) {
	b := NewBuilder()
	b.SetStateCount(3)
	b.AddSymbol(0, 1, 'a')
	b.AddSymbol(0, 2, 'b')
	b.AddAccept(1)
	b.AddAccept(2)
	b.AddAccept(1)
	n, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	if n.AcceptIndex(1) != 0 || n.AcceptIndex(2) != 1 {
		t.Errorf("AcceptIndex = %d, %d", n.AcceptIndex(1), n.AcceptIndex(2))
	}
}
