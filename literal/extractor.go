package literal

import (
	"fmt"

	"github.com/coregx/lers/syntax"
)

// ExtractorConfig configures literal extraction limits.
//
// These limits prevent excessive extraction from complex patterns:
//   - MaxLiterals: prevents memory bloat from alternations like (a|b|c|d|...)
//   - MaxLiteralLen: prevents extracting very long literals that hurt cache locality
//   - MaxClassSize: prevents expanding large character classes like [a-z]
type ExtractorConfig struct {
	// MaxLiterals limits the maximum number of literals to extract. Default: 64.
	MaxLiterals int

	// MaxLiteralLen limits the maximum length of each extracted literal.
	// Longer literals are truncated and marked incomplete. Default: 64.
	MaxLiteralLen int

	// MaxClassSize limits the size of byte classes to expand.
	// Classes like [abc] are expanded to "a", "b", "c"; classes with more
	// members, and every negated class, stop extraction. Default: 10.
	MaxClassSize int
}

// DefaultConfig returns the default extractor configuration.
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiterals:   64,
		MaxLiteralLen: 64,
		MaxClassSize:  10,
	}
}

// Extractor extracts prefix literal sequences from pattern trees.
type Extractor struct {
	config ExtractorConfig
}

// New creates an extractor. Zero limits are replaced by the defaults.
func New(config ExtractorConfig) *Extractor {
	def := DefaultConfig()
	if config.MaxLiterals <= 0 {
		config.MaxLiterals = def.MaxLiterals
	}
	if config.MaxLiteralLen <= 0 {
		config.MaxLiteralLen = def.MaxLiteralLen
	}
	if config.MaxClassSize <= 0 {
		config.MaxClassSize = def.MaxClassSize
	}
	return &Extractor{config: config}
}

// ExtractPrefixes returns literals such that every non-empty match of n
// begins with one of them, or nil when no such finite set exists within the
// configured limits (for example when n can match the empty string, or
// starts with a large class).
//
// When the result's AllComplete is true, the literals are exactly the
// strings n matches.
//
// Example:
//
//	node, _ := syntax.Parse("(if|in)t")
//	seq := literal.New(literal.DefaultConfig()).ExtractPrefixes(node)
//	// seq: "ift", "int", both complete
func (e *Extractor) ExtractPrefixes(n syntax.Node) *Seq {
	lits, ok := e.prefixes(n)
	if !ok || len(lits) == 0 {
		return nil
	}
	seq := NewSeq(lits...)
	seq.Dedup()
	return seq
}

func (e *Extractor) prefixes(n syntax.Node) ([]Literal, bool) {
	switch n := n.(type) {
	case *syntax.Literal:
		return []Literal{NewLiteral([]byte{n.Value}, true)}, true
	case *syntax.Range:
		if n.Negated || n.Lo > n.Hi || int(n.Hi)-int(n.Lo)+1 > e.config.MaxClassSize {
			return nil, false
		}
		lits := make([]Literal, 0, int(n.Hi)-int(n.Lo)+1)
		for c := int(n.Lo); c <= int(n.Hi); c++ {
			lits = append(lits, NewLiteral([]byte{byte(c)}, true))
		}
		return lits, true
	case *syntax.Set:
		if n.Negated {
			return nil, false
		}
		var seen [256]bool
		var lits []Literal
		for _, c := range n.Members {
			if seen[c] {
				continue
			}
			seen[c] = true
			lits = append(lits, NewLiteral([]byte{c}, true))
		}
		if len(lits) == 0 || len(lits) > e.config.MaxClassSize {
			return nil, false
		}
		return lits, true
	case *syntax.Group:
		return e.prefixes(n.Sub)
	case *syntax.Repeat:
		// Matches the empty string.
		return nil, false
	case *syntax.Alternate:
		left, ok := e.prefixes(n.Left)
		if !ok {
			return nil, false
		}
		right, ok := e.prefixes(n.Right)
		if !ok || len(left)+len(right) > e.config.MaxLiterals {
			return nil, false
		}
		return append(left, right...), true
	case *syntax.Concat:
		return e.concat(n)
	default:
		panic(fmt.Sprintf("literal: unexpected node type %T", n))
	}
}

// concat extends each complete literal of the left side with the literals
// of the right side. If the right side has no finite prefix set, or the
// product would exceed the limits, the left literals become prefixes.
func (e *Extractor) concat(n *syntax.Concat) ([]Literal, bool) {
	left, ok := e.prefixes(n.Left)
	if !ok {
		return nil, false
	}
	if !anyComplete(left) {
		return left, true
	}
	right, ok := e.prefixes(n.Right)
	if !ok || len(left)*len(right) > e.config.MaxLiterals {
		return markIncomplete(left), true
	}

	out := make([]Literal, 0, len(left)*len(right))
	for _, l := range left {
		if !l.Complete {
			out = append(out, l)
			continue
		}
		for _, r := range right {
			b := make([]byte, 0, len(l.Bytes)+len(r.Bytes))
			b = append(append(b, l.Bytes...), r.Bytes...)
			complete := r.Complete
			if len(b) > e.config.MaxLiteralLen {
				b = b[:e.config.MaxLiteralLen]
				complete = false
			}
			out = append(out, NewLiteral(b, complete))
		}
	}
	return out, true
}

func anyComplete(lits []Literal) bool {
	for _, l := range lits {
		if l.Complete {
			return true
		}
	}
	return false
}

func markIncomplete(lits []Literal) []Literal {
	for i := range lits {
		lits[i].Complete = false
	}
	return lits
}
