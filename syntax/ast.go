package syntax

import (
	"bytes"
	"fmt"
	"strings"
)

// Node is a node of a parsed pattern tree.
//
// The set of node types is closed: *Literal, *Range, *Set, *Concat,
// *Alternate, *Repeat and *Group. Code that switches over nodes should
// treat any other type as a programming error.
//
// Every interior node owns its children exclusively; trees never share
// subtrees. Use Clone to duplicate a subtree.
type Node interface {
	// String renders the node back into pattern syntax.
	String() string

	node()
}

// Literal matches exactly one byte.
type Literal struct {
	Value byte
}

// Range matches any byte in [Lo, Hi], or any byte outside it when Negated.
type Range struct {
	Lo, Hi  byte
	Negated bool
}

// Set matches any byte listed in Members, or any byte not listed when Negated.
// Members may contain duplicates; order is irrelevant for matching.
type Set struct {
	Members []byte
	Negated bool
}

// Concat matches Left followed by Right.
type Concat struct {
	Left, Right Node
}

// Alternate matches Left or Right.
type Alternate struct {
	Left, Right Node
}

// Repeat matches zero or more repetitions of Sub.
type Repeat struct {
	Sub Node
}

// Group is a parenthesized subexpression. It does not change what Sub matches.
type Group struct {
	Sub Node
}

func (*Literal) node()   {}
func (*Range) node()     {}
func (*Set) node()       {}
func (*Concat) node()    {}
func (*Alternate) node() {}
func (*Repeat) node()    {}
func (*Group) node()     {}

// Contains reports whether c is accepted by the range.
func (r *Range) Contains(c byte) bool {
	return (r.Lo <= c && c <= r.Hi) != r.Negated
}

// Contains reports whether c is accepted by the set.
func (s *Set) Contains(c byte) bool {
	return (bytes.IndexByte(s.Members, c) >= 0) != s.Negated
}

// String renders the literal, escaping metacharacters.
func (l *Literal) String() string { return render(l) }

// String renders the range as a bracket expression.
func (r *Range) String() string { return render(r) }

// String renders the set as a bracket expression.
func (s *Set) String() string { return render(s) }

// String renders the concatenation.
func (c *Concat) String() string { return render(c) }

// String renders the alternation.
func (a *Alternate) String() string { return render(a) }

// String renders the repetition, adding parentheses for compound operands.
func (r *Repeat) String() string { return render(r) }

// String renders the group.
func (g *Group) String() string { return render(g) }

func render(n Node) string {
	var sb strings.Builder
	write(&sb, n)
	return sb.String()
}

// write renders n into sb. Chains of Concat or Alternate are walked with an
// explicit stack, so rendering is linear in the size of the tree.
func write(sb *strings.Builder, n Node) {
	switch n := n.(type) {
	case *Literal:
		writeEscaped(sb, n.Value, "()[]^-.+*|\\")
	case *Range:
		sb.WriteByte('[')
		if n.Negated {
			sb.WriteByte('^')
		}
		writeEscaped(sb, n.Lo, classMeta)
		sb.WriteByte('-')
		writeEscaped(sb, n.Hi, classMeta)
		sb.WriteByte(']')
	case *Set:
		sb.WriteByte('[')
		if n.Negated {
			sb.WriteByte('^')
		}
		for _, c := range n.Members {
			writeEscaped(sb, c, classMeta)
		}
		sb.WriteByte(']')
	case *Concat:
		writeChain(sb, n)
	case *Alternate:
		writeChain(sb, n)
	case *Repeat:
		switch n.Sub.(type) {
		case *Literal, *Range, *Set, *Group, *Repeat:
			write(sb, n.Sub)
			sb.WriteByte('*')
		default:
			sb.WriteByte('(')
			write(sb, n.Sub)
			sb.WriteString(")*")
		}
	case *Group:
		sb.WriteByte('(')
		write(sb, n.Sub)
		sb.WriteByte(')')
	}
}

// writeChain renders a tree of nodes of root's kind in order. A nil entry on
// the stack stands for the '|' between alternatives.
func writeChain(sb *strings.Builder, root Node) {
	stack := []Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch x := n.(type) {
		case nil:
			sb.WriteByte('|')
			continue
		case *Concat:
			if _, ok := root.(*Concat); ok {
				stack = append(stack, x.Right, x.Left)
				continue
			}
		case *Alternate:
			if _, ok := root.(*Alternate); ok {
				stack = append(stack, x.Right, nil, x.Left)
				continue
			}
		}
		write(sb, n)
	}
}

const classMeta = "]^-\\"

func writeEscaped(sb *strings.Builder, c byte, meta string) {
	switch c {
	case '\n':
		sb.WriteString(`\n`)
		return
	case '\t':
		sb.WriteString(`\t`)
		return
	case '\r':
		sb.WriteString(`\r`)
		return
	}
	if strings.IndexByte(meta, c) >= 0 {
		sb.WriteByte('\\')
	}
	sb.WriteByte(c)
}

// Clone returns a deep copy of n. The copy shares no memory with n,
// including Set members.
func Clone(n Node) Node {
	switch n := n.(type) {
	case nil:
		return nil
	case *Literal:
		return &Literal{Value: n.Value}
	case *Range:
		return &Range{Lo: n.Lo, Hi: n.Hi, Negated: n.Negated}
	case *Set:
		members := make([]byte, len(n.Members))
		copy(members, n.Members)
		return &Set{Members: members, Negated: n.Negated}
	case *Concat:
		return &Concat{Left: Clone(n.Left), Right: Clone(n.Right)}
	case *Alternate:
		return &Alternate{Left: Clone(n.Left), Right: Clone(n.Right)}
	case *Repeat:
		return &Repeat{Sub: Clone(n.Sub)}
	case *Group:
		return &Group{Sub: Clone(n.Sub)}
	default:
		panic(fmt.Sprintf("syntax: unexpected node type %T", n))
	}
}

// Equal reports whether a and b have the same shape and payloads.
//
// Sets compare by membership and negation: [ab] equals [ba] and [aab],
// but a Set never equals a Range even when both accept the same bytes.
func Equal(a, b Node) bool {
	switch a := a.(type) {
	case nil:
		return b == nil
	case *Literal:
		b, ok := b.(*Literal)
		return ok && a.Value == b.Value
	case *Range:
		b, ok := b.(*Range)
		return ok && *a == *b
	case *Set:
		b, ok := b.(*Set)
		return ok && a.Negated == b.Negated && memberMask(a.Members) == memberMask(b.Members)
	case *Concat:
		b, ok := b.(*Concat)
		return ok && Equal(a.Left, b.Left) && Equal(a.Right, b.Right)
	case *Alternate:
		b, ok := b.(*Alternate)
		return ok && Equal(a.Left, b.Left) && Equal(a.Right, b.Right)
	case *Repeat:
		b, ok := b.(*Repeat)
		return ok && Equal(a.Sub, b.Sub)
	case *Group:
		b, ok := b.(*Group)
		return ok && Equal(a.Sub, b.Sub)
	default:
		panic(fmt.Sprintf("syntax: unexpected node type %T", a))
	}
}

func memberMask(members []byte) (mask [4]uint64) {
	for _, c := range members {
		mask[c>>6] |= 1 << (c & 63)
	}
	return mask
}

// Depth returns the height of the tree rooted at n. A leaf has depth 1.
func Depth(n Node) int {
	switch n := n.(type) {
	case nil:
		return 0
	case *Literal, *Range, *Set:
		return 1
	case *Concat:
		return 1 + max(Depth(n.Left), Depth(n.Right))
	case *Alternate:
		return 1 + max(Depth(n.Left), Depth(n.Right))
	case *Repeat:
		return 1 + Depth(n.Sub)
	case *Group:
		return 1 + Depth(n.Sub)
	default:
		panic(fmt.Sprintf("syntax: unexpected node type %T", n))
	}
}
