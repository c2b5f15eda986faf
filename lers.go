// Package lers compiles byte-oriented regular expressions into Thompson
// NFAs and matches them by direct NFA simulation.
//
// One Automaton holds either a single pattern or an ordered list of
// patterns. The list form is a lexer core: ScanNext returns the
// leftmost-longest token and the index of the rule that produced it, with
// earlier rules winning ties, the way flex resolves them.
//
// Basic usage:
//
//	a := lers.MustCompile("fo(o|ba*r)*baz")
//	a.MatchesFully("fobarobaz") // true
//	a.Search("xx fobaz yy")     // true
//
//	text, n, ok := lers.MustCompile("foo|foooo|fo*b").LongestMatch("bfooooob")
//	// text == "fooooob", n == 7, ok == true
//
// Scanning with several rules:
//
//	rules, _ := lers.CompileMany([]string{"if", "[a-z]+", "[0-9]+", " +"})
//	tok, ok := rules.ScanNext([]byte("if x1"), 0)
//	// tok.Pattern == 0, tok.Text == "if", tok.End == 2
//
// Supported syntax: literal bytes, '.', '(' ')', '|', '*', '+' and bracket
// classes '[a-z0-9]' / '[^...]'. A backslash escapes the next byte. There
// are no anchors, captures, counted repetition or Unicode classes.
//
// Matching time is O(n*m) for input length n and automaton size m; there
// is no backtracking.
package lers

import (
	"strings"
	"sync"

	"github.com/coregx/lers/internal/logger"
	"github.com/coregx/lers/literal"
	"github.com/coregx/lers/nfa"
	"github.com/coregx/lers/prefilter"
	"github.com/coregx/lers/syntax"
)

// Automaton is a compiled pattern or pattern list.
//
// An Automaton is safe for concurrent use. Each call borrows a Matcher
// from an internal pool.
type Automaton struct {
	nfa       *nfa.NFA
	patterns  []string
	prefilter prefilter.Prefilter
	matchers  sync.Pool
}

// Match is the span of a match and the index of the pattern that won.
type Match = nfa.Match

// Token is one scanned lexeme.
type Token struct {
	// Pattern is the index of the winning pattern.
	Pattern int

	// Start and End delimit the lexeme in the scanned buffer. End is also
	// the cursor for the next ScanNext call.
	Start, End int

	// Text is a copy of the lexeme.
	Text string
}

// Len returns the lexeme length.
func (t Token) Len() int {
	return t.End - t.Start
}

// Compile compiles a single pattern.
//
// Example:
//
//	a, err := lers.Compile("[0-9]+")
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Automaton, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile is like Compile but panics if the pattern cannot be compiled.
func MustCompile(pattern string) *Automaton {
	a, err := Compile(pattern)
	if err != nil {
		panic("lers: Compile(`" + pattern + "`): " + err.Error())
	}
	return a
}

// CompileMany compiles an ordered pattern list into one automaton. Order
// is priority: when two patterns match the same longest lexeme, the one
// listed first wins.
func CompileMany(patterns []string) (*Automaton, error) {
	return CompileManyWithConfig(patterns, DefaultConfig())
}

// CompileWithConfig compiles a single pattern with custom configuration.
func CompileWithConfig(pattern string, config Config) (*Automaton, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	log := logger.NewWithOutput(config.Verbose, config.LogOutput)
	n, err := nfa.NewCompiler(compilerConfig(config, log)).Compile(pattern)
	if err != nil {
		return nil, err
	}
	return newAutomaton(n, config, log), nil
}

// CompileManyWithConfig compiles a pattern list with custom configuration.
func CompileManyWithConfig(patterns []string, config Config) (*Automaton, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	log := logger.NewWithOutput(config.Verbose, config.LogOutput)
	n, err := nfa.NewCompiler(compilerConfig(config, log)).CompileMany(patterns)
	if err != nil {
		return nil, err
	}
	return newAutomaton(n, config, log), nil
}

// FromNFA wraps an automaton built directly, for example with nfa.Builder
// or by generated code. Prefiltering uses first bytes only, since no
// pattern text is available.
func FromNFA(n *nfa.NFA) *Automaton {
	return newAutomaton(n, DefaultConfig(), logger.Nop())
}

func compilerConfig(config Config, log *logger.Logger) nfa.CompilerConfig {
	return nfa.CompilerConfig{
		MaxStates:         config.MaxStates,
		MaxRecursionDepth: config.MaxRecursionDepth,
		Logger:            log,
	}
}

func newAutomaton(n *nfa.NFA, config Config, log *logger.Logger) *Automaton {
	a := &Automaton{
		nfa:      n,
		patterns: n.Patterns(),
	}
	if config.EnablePrefilter {
		a.prefilter = selectPrefilter(n, config, log)
	}
	a.matchers.New = func() any {
		m := nfa.NewMatcher(a.nfa)
		if a.prefilter != nil {
			m.SetSkipper(a.prefilter)
		}
		return m
	}
	return a
}

// selectPrefilter prefers literal prefixes shared by every pattern and
// falls back to the first-byte set of the automaton.
func selectPrefilter(n *nfa.NFA, config Config, log *logger.Logger) prefilter.Prefilter {
	log.Section("prefilter")
	if pf := literalPrefilter(n.Patterns(), config, log); pf != nil {
		log.Log("selected", "kind", "literal", "complete", pf.IsComplete())
		return pf
	}
	fb := n.FirstBytes()
	if pf := prefilter.FromFirstBytes(fb); pf != nil {
		log.Log("selected", "kind", "first-byte", "bytes", fb.Count())
		return pf
	}
	log.Log("selected", "kind", "none", "nullable", fb.Nullable())
	return nil
}

func literalPrefilter(patterns []string, config Config, log *logger.Logger) prefilter.Prefilter {
	if len(patterns) == 0 {
		return nil
	}
	limits := syntax.Limits{MaxDepth: config.MaxRecursionDepth, MaxNodes: 2 * config.MaxStates}
	extractor := literal.New(literal.DefaultConfig())
	var all []literal.Literal
	for _, p := range patterns {
		node, err := syntax.ParseWithLimits(p, limits)
		if err != nil {
			return nil
		}
		seq := extractor.ExtractPrefixes(node)
		if seq == nil {
			return nil
		}
		all = append(all, seq.Literals()...)
	}
	seq := literal.NewSeq(all...)
	seq.Dedup()
	if log.Enabled() {
		log.Log("prefixes", "count", seq.Len(), "common", string(seq.LongestCommonPrefix()))
	}
	return prefilter.NewBuilder(seq).Build()
}

func (a *Automaton) get() *nfa.Matcher {
	return a.matchers.Get().(*nfa.Matcher)
}

func (a *Automaton) put(m *nfa.Matcher) {
	a.matchers.Put(m)
}

// NFA returns the underlying automaton.
func (a *Automaton) NFA() *nfa.NFA {
	return a.nfa
}

// Patterns returns the compiled patterns in priority order. Automata built
// with FromNFA have none.
func (a *Automaton) Patterns() []string {
	return a.patterns
}

// String returns the source pattern, or the patterns one per line.
func (a *Automaton) String() string {
	return strings.Join(a.patterns, "\n")
}

// MatchesFully reports whether the automaton accepts all of s.
func (a *Automaton) MatchesFully(s string) bool {
	return a.MatchesFullyBytes([]byte(s))
}

// MatchesFullyBytes reports whether the automaton accepts all of b.
func (a *Automaton) MatchesFullyBytes(b []byte) bool {
	m := a.get()
	defer a.put(m)
	return m.FullMatch(b)
}

// Search reports whether any substring of s, including the empty one, is
// accepted.
func (a *Automaton) Search(s string) bool {
	return a.SearchBytes([]byte(s))
}

// SearchBytes reports whether any substring of b is accepted.
func (a *Automaton) SearchBytes(b []byte) bool {
	if a.prefilter != nil && a.prefilter.IsComplete() {
		if im, ok := a.prefilter.(interface{ IsMatch([]byte) bool }); ok {
			return im.IsMatch(b)
		}
		return a.prefilter.Find(b, 0) >= 0
	}
	m := a.get()
	defer a.put(m)
	return m.Search(b)
}

// LongestMatch returns the leftmost-longest non-empty match in s and its
// length.
func (a *Automaton) LongestMatch(s string) (string, int, bool) {
	match, ok := a.FindLongest([]byte(s), 0)
	if !ok {
		return "", 0, false
	}
	return s[match.Start:match.End], match.Len(), true
}

// FindLongest returns the leftmost-longest non-empty match in b at or
// after from.
func (a *Automaton) FindLongest(b []byte, from int) (Match, bool) {
	if from < 0 || from >= len(b) {
		return Match{}, false
	}
	m := a.get()
	defer a.put(m)
	return m.LongestMatch(b, from)
}

// ScanNext returns the next token in buf at or after cursor. Bytes that
// begin no match are skipped. The next cursor is the token's End.
func (a *Automaton) ScanNext(buf []byte, cursor int) (Token, bool) {
	match, ok := a.FindLongest(buf, cursor)
	if !ok {
		return Token{}, false
	}
	return Token{
		Pattern: match.Pattern,
		Start:   match.Start,
		End:     match.End,
		Text:    string(buf[match.Start:match.End]),
	}, true
}
