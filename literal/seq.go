// Package literal computes the literal strings every match of a pattern
// must begin with.
//
// A pattern like if|else|while matches only three strings. Knowing that, a
// literal searcher can find candidates, or answer a search by itself,
// without stepping the automaton. A Literal marked Complete is a whole
// match, not just its prefix.
package literal

import (
	"bytes"
	"fmt"
	"sort"
)

// Literal is a byte string a match can start with. Complete means the
// literal is the entire match: "if" for if, but only "fo" for fo+.
type Literal struct {
	Bytes    []byte
	Complete bool
}

// NewLiteral returns a literal that refers to b without copying it.
func NewLiteral(b []byte, complete bool) Literal {
	return Literal{Bytes: b, Complete: complete}
}

func (l Literal) Len() int { return len(l.Bytes) }

// String formats l as literal{bytes, complete=bool} for test output and
// traces.
func (l Literal) String() string {
	return fmt.Sprintf("literal{%s, complete=%t}", l.Bytes, l.Complete)
}

// Seq is the set of literals a match can start with. A nil *Seq is an
// empty set; extraction uses nil to mean "unbounded", see ExtractPrefixes.
type Seq struct {
	literals []Literal
}

func NewSeq(lits ...Literal) *Seq {
	return &Seq{literals: lits}
}

func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// Get returns literal i. It panics when i is out of range.
func (s *Seq) Get(i int) Literal {
	return s.literals[i]
}

// Literals returns the literals. The caller must not modify the result.
func (s *Seq) Literals() []Literal {
	if s == nil {
		return nil
	}
	return s.literals
}

func (s *Seq) IsEmpty() bool {
	return s == nil || len(s.literals) == 0
}

// AllComplete reports whether the sequence is non-empty and every literal
// is complete and non-empty. Such a sequence is exactly the set of strings
// the pattern matches, so a literal searcher is an exact replacement for
// the automaton.
func (s *Seq) AllComplete() bool {
	if s.IsEmpty() {
		return false
	}
	for _, lit := range s.literals {
		if !lit.Complete || len(lit.Bytes) == 0 {
			return false
		}
	}
	return true
}

// MinLen returns the length of the shortest literal, or 0 for an empty sequence.
func (s *Seq) MinLen() int {
	if s.IsEmpty() {
		return 0
	}
	n := len(s.literals[0].Bytes)
	for _, lit := range s.literals[1:] {
		n = min(n, len(lit.Bytes))
	}
	return n
}

// Clone copies the sequence together with every literal's bytes.
func (s *Seq) Clone() *Seq {
	if s == nil {
		return nil
	}
	out := &Seq{literals: make([]Literal, len(s.literals))}
	for i, lit := range s.literals {
		out.literals[i] = NewLiteral(bytes.Clone(lit.Bytes), lit.Complete)
	}
	return out
}

// Dedup sorts the literals and removes exact duplicates. When the same bytes
// appear both complete and incomplete, the incomplete copy is kept, since it
// makes the weaker claim.
func (s *Seq) Dedup() {
	if s.IsEmpty() {
		return
	}
	sort.SliceStable(s.literals, func(i, j int) bool {
		if c := bytes.Compare(s.literals[i].Bytes, s.literals[j].Bytes); c != 0 {
			return c < 0
		}
		return !s.literals[i].Complete && s.literals[j].Complete
	})
	kept := s.literals[:1]
	for _, lit := range s.literals[1:] {
		if bytes.Equal(kept[len(kept)-1].Bytes, lit.Bytes) {
			continue
		}
		kept = append(kept, lit)
	}
	s.literals = kept
}

// LongestCommonPrefix returns a copy of the prefix shared by all literals,
// empty when there is none.
func (s *Seq) LongestCommonPrefix() []byte {
	if s.IsEmpty() {
		return []byte{}
	}
	n := len(s.literals[0].Bytes)
	first := s.literals[0].Bytes
	for _, lit := range s.literals[1:] {
		i := 0
		for i < n && i < len(lit.Bytes) && lit.Bytes[i] == first[i] {
			i++
		}
		n = i
	}
	return append([]byte{}, first[:n]...)
}
