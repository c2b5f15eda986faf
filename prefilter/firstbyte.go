package prefilter

import (
	"github.com/coregx/lers/nfa"
	"github.com/coregx/lers/simd"
)

// FromFirstBytes builds a prefilter that skips to the next byte able to
// begin a match. Returns nil when the set cannot reject any position.
func FromFirstBytes(fb *nfa.FirstByteSet) Prefilter {
	if fb == nil || !fb.IsUseful() || fb.Count() == 0 {
		return nil
	}
	p := &firstBytePrefilter{}
	bs := fb.Bytes()
	p.n = len(bs)
	copy(p.needles[:], bs)
	for _, c := range bs {
		p.table[c] = true
	}
	return p
}

// firstBytePrefilter uses memchr variants for up to three bytes and a
// lookup table beyond that.
type firstBytePrefilter struct {
	needles [3]byte
	n       int
	table   [256]bool
}

// Find implements Prefilter.Find.
func (p *firstBytePrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	h := haystack[start:]
	var idx int
	switch p.n {
	case 1:
		idx = simd.Memchr(h, p.needles[0])
	case 2:
		idx = simd.Memchr2(h, p.needles[0], p.needles[1])
	case 3:
		idx = simd.Memchr3(h, p.needles[0], p.needles[1], p.needles[2])
	default:
		idx = simd.MemchrInTable(h, &p.table)
	}
	if idx == -1 {
		return -1
	}
	return start + idx
}

// IsComplete implements Prefilter.IsComplete. A first byte never proves a
// match.
func (p *firstBytePrefilter) IsComplete() bool {
	return false
}

// LiteralLen implements Prefilter.LiteralLen.
func (p *firstBytePrefilter) LiteralLen() int {
	return 0
}

// HeapBytes implements Prefilter.HeapBytes.
func (p *firstBytePrefilter) HeapBytes() int {
	return 0
}
