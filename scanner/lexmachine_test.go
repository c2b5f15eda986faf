package scanner

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"

	"github.com/coregx/lers"
)

// rules is written in the syntax both engines share.
var rules = []string{
	"if",
	"else",
	"while",
	"[a-z_][a-z0-9_]*",
	"[0-9]+",
	"==",
	"=",
	`\(`,
	`\)`,
	"[ \t\n]+",
}

func lexmachineTokens(t *testing.T, input []byte) []lexeme {
	t.Helper()
	lexer := lexmachine.NewLexer()
	for i, r := range rules {
		rule := i
		lexer.Add([]byte(r), func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
			return lexeme{Rule: rule, Text: string(m.Bytes)}, nil
		})
	}
	if err := lexer.Compile(); err != nil {
		t.Fatalf("lexmachine compile: %v", err)
	}
	s, err := lexer.Scanner(input)
	if err != nil {
		t.Fatal(err)
	}
	var out []lexeme
	for tok, err, eof := s.Next(); !eof; tok, err, eof = s.Next() {
		if err != nil {
			t.Fatalf("lexmachine: %v", err)
		}
		out = append(out, tok.(lexeme))
	}
	return out
}

// TestScanner_AgreesWithLexmachine tests longest match and rule priority
// against an independent DFA-based lexer.
func TestScanner_AgreesWithLexmachine(t *testing.T) {
	a, err := lers.CompileMany(rules)
	if err != nil {
		t.Fatal(err)
	}
	inputs := []string{
		"if x == 1",
		"while (iffy) else_ = 42",
		"elsewhere if_ ifelse\n\tx=y==z",
		"ifwhile123 (0) else",
		"",
	}
	for _, in := range inputs {
		s := New(a, []byte(in))
		s.SetStrict(true)
		got := collect(s)
		if s.Err() != nil {
			t.Fatalf("%q: %v", in, s.Err())
		}
		want := lexmachineTokens(t, []byte(in))
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%q: tokens differ (-lexmachine +lers):\n%s", in, diff)
		}
	}
}
