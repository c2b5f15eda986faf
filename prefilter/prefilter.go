// Package prefilter finds positions where a match may begin, so the
// automaton only runs at candidates.
//
// Build picks a searcher from the literal prefixes of a pattern:
//
//	one literal      substring search (memchr when it is a single byte)
//	several literals Aho-Corasick
//
// FromFirstBytes covers patterns with no usable prefixes by scanning for
// any byte that can start a match.
//
//	node, _ := syntax.Parse("if|else")
//	prefixes := literal.New(literal.DefaultConfig()).ExtractPrefixes(node)
//	pf := prefilter.NewBuilder(prefixes).Build()
//	pf.Find([]byte("x = else"), 0) // 4
package prefilter

import (
	"bytes"

	"github.com/coregx/lers/literal"
	"github.com/coregx/lers/nfa"
	"github.com/coregx/lers/simd"
)

// Prefilter reports candidate match positions.
//
// Every Prefilter is an nfa.Skipper and can be installed on a matcher as is.
type Prefilter interface {
	// Find returns the first candidate position at or after start, or -1.
	// A candidate is only a guaranteed match start when IsComplete is true.
	Find(haystack []byte, start int) int

	// IsComplete reports whether the literals are exactly the strings the
	// pattern matches.
	IsComplete() bool

	// LiteralLen is the common length of all matches for a complete
	// prefilter whose literals share one length, 0 otherwise.
	LiteralLen() int

	// HeapBytes is the memory held by the prefilter's own literal copies.
	HeapBytes() int
}

var _ nfa.Skipper = Prefilter(nil)

// Builder constructs a prefilter from extracted prefix literals.
type Builder struct {
	prefixes *literal.Seq
}

// NewBuilder returns a builder for prefixes. A nil or empty sequence
// yields no prefilter.
func NewBuilder(prefixes *literal.Seq) *Builder {
	return &Builder{prefixes: prefixes}
}

// Build returns the searcher for the prefixes, or nil when they cannot
// reject anything (no literals, or an empty one).
func (b *Builder) Build() Prefilter {
	if b.prefixes.IsEmpty() || b.prefixes.MinLen() == 0 {
		return nil
	}
	seq := b.prefixes.Clone()
	if seq.Len() == 1 {
		lit := seq.Get(0)
		return &substrPrefilter{needle: lit.Bytes, complete: lit.Complete}
	}
	pf, err := newAhoCorasickPrefilter(seq)
	if err != nil {
		return nil
	}
	return pf
}

// substrPrefilter searches for one literal. Single bytes go through
// simd.Memchr.
type substrPrefilter struct {
	needle   []byte
	complete bool
}

func (p *substrPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	var i int
	if len(p.needle) == 1 {
		i = simd.Memchr(haystack[start:], p.needle[0])
	} else {
		i = bytes.Index(haystack[start:], p.needle)
	}
	if i < 0 {
		return -1
	}
	return start + i
}

func (p *substrPrefilter) IsComplete() bool { return p.complete }

func (p *substrPrefilter) LiteralLen() int {
	if !p.complete {
		return 0
	}
	return len(p.needle)
}

func (p *substrPrefilter) HeapBytes() int {
	if len(p.needle) == 1 {
		return 0
	}
	return len(p.needle)
}
