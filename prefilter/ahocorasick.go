package prefilter

import (
	"bytes"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/lers/literal"
)

// ahoCorasickPrefilter finds the leftmost occurrence of any of several
// literals.
//
// The automaton reports the occurrence that ends first. An occurrence that
// starts earlier ends later, but still within maxLen bytes of its start, so
// Find re-checks that window to recover the leftmost start.
type ahoCorasickPrefilter struct {
	auto       *ahocorasick.Automaton
	lits       [][]byte
	first      [256]bool
	maxLen     int
	complete   bool
	literalLen int
	heap       int
}

func newAhoCorasickPrefilter(seq *literal.Seq) (*ahoCorasickPrefilter, error) {
	builder := ahocorasick.NewBuilder().SetMatchKind(ahocorasick.LeftmostFirst)
	p := &ahoCorasickPrefilter{complete: seq.AllComplete()}
	sameLen := seq.Get(0).Len()
	for _, lit := range seq.Literals() {
		builder.AddPattern(lit.Bytes)
		p.lits = append(p.lits, lit.Bytes)
		p.first[lit.Bytes[0]] = true
		p.maxLen = max(p.maxLen, lit.Len())
		p.heap += lit.Len()
		if lit.Len() != sameLen {
			sameLen = 0
		}
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	p.auto = auto
	if p.complete {
		p.literalLen = sameLen
	}
	return p, nil
}

// Find implements Prefilter.Find.
func (p *ahoCorasickPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	m := p.auto.Find(haystack, start)
	if m == nil {
		return -1
	}
	for i := max(start, m.End-p.maxLen); i < m.Start; i++ {
		if p.startsAt(haystack, i) {
			return i
		}
	}
	return m.Start
}

// startsAt reports whether some literal occurs at haystack[i:].
func (p *ahoCorasickPrefilter) startsAt(haystack []byte, i int) bool {
	if !p.first[haystack[i]] {
		return false
	}
	for _, lit := range p.lits {
		if bytes.HasPrefix(haystack[i:], lit) {
			return true
		}
	}
	return false
}

// IsMatch reports whether any literal occurs in haystack.
func (p *ahoCorasickPrefilter) IsMatch(haystack []byte) bool {
	return p.auto.IsMatch(haystack)
}

// IsComplete implements Prefilter.IsComplete.
func (p *ahoCorasickPrefilter) IsComplete() bool {
	return p.complete
}

// LiteralLen implements Prefilter.LiteralLen.
func (p *ahoCorasickPrefilter) LiteralLen() int {
	return p.literalLen
}

// HeapBytes implements Prefilter.HeapBytes. The automaton's own tables are
// not counted.
func (p *ahoCorasickPrefilter) HeapBytes() int {
	return p.heap
}
