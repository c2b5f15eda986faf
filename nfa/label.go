package nfa

import (
	"fmt"
	"math/bits"
	"strings"
)

// LabelKind identifies which inputs an edge accepts.
type LabelKind uint8

const (
	// LabelEpsilon is traversed without consuming input
	LabelEpsilon LabelKind = iota

	// LabelSymbol accepts exactly one byte
	LabelSymbol

	// LabelRange accepts bytes in [lo, hi], or outside it when negated
	LabelRange

	// LabelSet accepts the member bytes, or every other byte when negated
	LabelSet
)

// String returns a human-readable representation of the LabelKind
func (k LabelKind) String() string {
	switch k {
	case LabelEpsilon:
		return "Epsilon"
	case LabelSymbol:
		return "Symbol"
	case LabelRange:
		return "Range"
	case LabelSet:
		return "Set"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Label is the transition condition carried by an edge.
//
// The kind is an explicit discriminant, so an epsilon label can never be
// confused with any of the 256 input bytes. Labels are comparable values.
type Label struct {
	kind    LabelKind
	lo, hi  byte
	negated bool
	members [4]uint64 // LabelSet membership bitmap
}

// Epsilon returns the epsilon label.
func Epsilon() Label {
	return Label{kind: LabelEpsilon}
}

// Symbol returns a label accepting only c.
func Symbol(c byte) Label {
	return Label{kind: LabelSymbol, lo: c, hi: c}
}

// ByteRange returns a label accepting lo <= c <= hi, inverted when negated.
// lo > hi yields an empty range (or, negated, every byte).
func ByteRange(lo, hi byte, negated bool) Label {
	return Label{kind: LabelRange, lo: lo, hi: hi, negated: negated}
}

// ByteSet returns a label accepting the listed bytes, inverted when negated.
// Duplicates and order in members are irrelevant.
func ByteSet(members []byte, negated bool) Label {
	l := Label{kind: LabelSet, negated: negated}
	for _, c := range members {
		l.members[c>>6] |= 1 << (c & 63)
	}
	return l
}

// Kind returns the label's discriminant.
func (l Label) Kind() LabelKind {
	return l.kind
}

// IsEpsilon reports whether the label consumes no input.
func (l Label) IsEpsilon() bool {
	return l.kind == LabelEpsilon
}

// Negated reports whether a range or set label is inverted.
func (l Label) Negated() bool {
	return l.negated
}

// Symbol returns the byte of a symbol label, or 0 for other kinds.
func (l Label) Symbol() byte {
	if l.kind != LabelSymbol {
		return 0
	}
	return l.lo
}

// Range returns the bounds of a range label, or (0, 0) for other kinds.
func (l Label) Range() (lo, hi byte) {
	if l.kind != LabelRange {
		return 0, 0
	}
	return l.lo, l.hi
}

// Members returns the members of a set label in ascending order,
// or nil for other kinds.
func (l Label) Members() []byte {
	if l.kind != LabelSet {
		return nil
	}
	var out []byte
	for w, word := range l.members {
		for word != 0 {
			i := bits.TrailingZeros64(word)
			out = append(out, byte(w*64+i))
			word &= word - 1
		}
	}
	return out
}

// Matches reports whether the edge can be traversed on input byte c.
// An epsilon label never matches a real byte.
func (l Label) Matches(c byte) bool {
	switch l.kind {
	case LabelEpsilon:
		return false
	case LabelSymbol:
		return c == l.lo
	case LabelRange:
		return (l.lo <= c && c <= l.hi) != l.negated
	case LabelSet:
		return (l.members[c>>6]&(1<<(c&63)) != 0) != l.negated
	default:
		panic(fmt.Sprintf("nfa: unexpected label kind %v", l.kind))
	}
}

// Count returns how many of the 256 byte values the label accepts.
func (l Label) Count() int {
	n := 0
	switch l.kind {
	case LabelEpsilon:
		return 0
	case LabelSymbol:
		return 1
	case LabelRange:
		if l.lo <= l.hi {
			n = int(l.hi) - int(l.lo) + 1
		}
	case LabelSet:
		for _, w := range l.members {
			n += bits.OnesCount64(w)
		}
	default:
		panic(fmt.Sprintf("nfa: unexpected label kind %v", l.kind))
	}
	if l.negated {
		return 256 - n
	}
	return n
}

// String renders the label for edge dumps: ε for epsilon, the byte itself
// for a symbol, and bracket syntax for ranges and sets. Newline is drawn as ↵.
func (l Label) String() string {
	var sb strings.Builder
	switch l.kind {
	case LabelEpsilon:
		return "ε"
	case LabelSymbol:
		writeLabelByte(&sb, l.lo)
		return sb.String()
	case LabelRange:
		sb.WriteByte('[')
		if l.negated {
			sb.WriteByte('^')
		}
		writeLabelByte(&sb, l.lo)
		sb.WriteByte('-')
		writeLabelByte(&sb, l.hi)
		sb.WriteByte(']')
	case LabelSet:
		sb.WriteByte('[')
		if l.negated {
			sb.WriteByte('^')
		}
		for _, c := range l.Members() {
			writeLabelByte(&sb, c)
		}
		sb.WriteByte(']')
	default:
		panic(fmt.Sprintf("nfa: unexpected label kind %v", l.kind))
	}
	return sb.String()
}

func writeLabelByte(sb *strings.Builder, c byte) {
	switch {
	case c == '\n':
		sb.WriteString("↵")
	case c < 0x20 || c >= 0x7f:
		fmt.Fprintf(sb, `\x%02x`, c)
	default:
		sb.WriteByte(c)
	}
}
