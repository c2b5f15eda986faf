// Package rules reads scanner rule files.
//
// A rule file lists named patterns in priority order:
//
//	// keywords first so they win ties against IDENT
//	IF     = "if";
//	ELSE   = "else";
//	IDENT  = "[a-z_][a-z0-9_]*";
//	NUMBER = "[0-9]+";
//	SPACE  = "[ \t\n]+" skip;
//
// Patterns are Go string literals, interpreted or raw, so `\(` and "\\("
// both denote the pattern \(. A trailing skip marks a rule whose tokens a
// scanner should drop.
package rules

import (
	"errors"
	"fmt"
	"io"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/coregx/lers"
	"github.com/coregx/lers/nfa"
)

// ErrDuplicate reports two rules with the same name.
var ErrDuplicate = errors.New("duplicate rule name")

// Ruleset is a parsed rule file.
type Ruleset struct {
	Rules []*Rule `parser:"@@*"`
}

// Rule is one named pattern.
type Rule struct {
	Pos lexer.Position

	Name    string `parser:"@Ident '='"`
	Pattern string `parser:"@(String | RawString)"`
	Skip    bool   `parser:"@'skip'? ';'"`
}

var parser = participle.MustBuild[Ruleset](
	participle.Unquote("String", "RawString"),
)

// Parse reads a rule file from r. filename is used in error positions.
func Parse(filename string, r io.Reader) (*Ruleset, error) {
	rs, err := parser.Parse(filename, r)
	if err != nil {
		return nil, err
	}
	return rs, rs.validate()
}

// ParseString reads a rule file from src.
func ParseString(filename, src string) (*Ruleset, error) {
	rs, err := parser.ParseString(filename, src)
	if err != nil {
		return nil, err
	}
	return rs, rs.validate()
}

func (rs *Ruleset) validate() error {
	seen := make(map[string]*Rule, len(rs.Rules))
	for _, r := range rs.Rules {
		if prev, ok := seen[r.Name]; ok {
			return fmt.Errorf("%s: %w %s (first defined at %s)", r.Pos, ErrDuplicate, r.Name, prev.Pos)
		}
		seen[r.Name] = r
	}
	return nil
}

// Names returns the rule names in priority order.
func (rs *Ruleset) Names() []string {
	out := make([]string, len(rs.Rules))
	for i, r := range rs.Rules {
		out[i] = r.Name
	}
	return out
}

// Patterns returns the patterns in priority order.
func (rs *Ruleset) Patterns() []string {
	out := make([]string, len(rs.Rules))
	for i, r := range rs.Rules {
		out[i] = r.Pattern
	}
	return out
}

// Compile builds one automaton from all rules; token pattern indexes are
// rule indexes. A pattern error is reported at its rule's position.
func (rs *Ruleset) Compile(config lers.Config) (*lers.Automaton, error) {
	a, err := lers.CompileManyWithConfig(rs.Patterns(), config)
	if err != nil {
		var cerr *nfa.CompileError
		if errors.As(err, &cerr) && cerr.Index >= 0 && cerr.Index < len(rs.Rules) {
			r := rs.Rules[cerr.Index]
			return nil, fmt.Errorf("%s: rule %s: %w", r.Pos, r.Name, err)
		}
		return nil, err
	}
	return a, nil
}
