package lers

import (
	"errors"
	"strings"
	"testing"

	"github.com/coregx/lers/nfa"
	"github.com/coregx/lers/syntax"
)

func TestMatchesFully(t *testing.T) {
	tests := []struct {
		pattern string
		accept  []string
		reject  []string
	}{
		{"ab", []string{"ab"}, []string{"a", "b", "", "abc"}},
		{"re|lers", []string{"re", "lers"}, []string{"r", "lersx"}},
		{"ba*r", []string{"br", "bar", "baaaar"}, []string{"bcr"}},
		{"a+", []string{"a", "aaa"}, []string{""}},
		{"[0-9]", []string{"5"}, []string{"x"}},
		{"[a-z0-9]", []string{"q", "4"}, []string{"Q", "-"}},
		{"fo(o|ba*r)*baz", []string{"fobaz", "fooobaarbaz"}, []string{"fobazz"}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			a := MustCompile(tt.pattern)
			for _, s := range tt.accept {
				if !a.MatchesFully(s) {
					t.Errorf("MatchesFully(%q) = false, want true", s)
				}
			}
			for _, s := range tt.reject {
				if a.MatchesFully(s) {
					t.Errorf("MatchesFully(%q) = true, want false", s)
				}
			}
		})
	}
}

func TestClassComplement(t *testing.T) {
	pos, neg := MustCompile("[0-9]"), MustCompile("[^0-9]")
	for c := 0; c < 256; c++ {
		s := string([]byte{byte(c)})
		if pos.MatchesFully(s) == neg.MatchesFully(s) {
			t.Errorf("byte %#x: [0-9] and [^0-9] agree", c)
		}
	}
}

func TestSearch(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    bool
	}{
		{"lers", "parser lers", true},
		{"lers", "parser lexers", false},
		{"if|else", "x else y", true},
		{"if|else", "elze", false},
		{"[0-9]+", "abc 7", true},
		{"a*", "", true},
		{"(if|in)t", "print", true},
		{"(if|in)t", "pint", true},
		{"(if|in)t", "pit", false},
	}
	for _, tt := range tests {
		for _, config := range []Config{DefaultConfig(), noPrefilter()} {
			a, err := CompileWithConfig(tt.pattern, config)
			if err != nil {
				t.Fatal(err)
			}
			if got := a.Search(tt.input); got != tt.want {
				t.Errorf("Search(%q, %q) prefilter=%v = %v, want %v",
					tt.pattern, tt.input, config.EnablePrefilter, got, tt.want)
			}
		}
	}
}

func noPrefilter() Config {
	c := DefaultConfig()
	c.EnablePrefilter = false
	return c
}

func TestLongestMatch(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    string
		ok      bool
	}{
		{"foo|foooo|fo*b", "bfooooob", "fooooob", true},
		{"foo|foooo|fo*b", "bfoooa", "foo", true},
		{"[0-9]+", "call 5551234 now", "5551234", true},
		{"a*", "bbb", "", false},
		{"x", "", "", false},
	}
	for _, tt := range tests {
		text, n, ok := MustCompile(tt.pattern).LongestMatch(tt.input)
		if ok != tt.ok || text != tt.want || n != len(tt.want) {
			t.Errorf("LongestMatch(%q, %q) = %q, %d, %v; want %q, %d, %v",
				tt.pattern, tt.input, text, n, ok, tt.want, len(tt.want), tt.ok)
		}
	}
}

func TestScanNext_Priority(t *testing.T) {
	a, err := CompileMany([]string{"foo", "foooo", "fo*b"})
	if err != nil {
		t.Fatal(err)
	}
	tok, ok := a.ScanNext([]byte("fooobaz"), 0)
	if !ok {
		t.Fatal("no token")
	}
	if tok.Pattern != 2 || tok.Text != "fooob" || tok.End != 5 {
		t.Errorf("ScanNext = %+v, want pattern 2 %q ending at 5", tok, "fooob")
	}
	if _, ok := a.ScanNext([]byte("fooobaz"), tok.End); ok {
		t.Error("ScanNext found a token in \"az\"")
	}
}

func TestScanNext_Tokens(t *testing.T) {
	a, err := CompileMany([]string{"if", "else", "[a-z]+", "[0-9]+", "[ \t\n]+"})
	if err != nil {
		t.Fatal(err)
	}
	type tok struct {
		pattern int
		text    string
	}
	want := []tok{{0, "if"}, {4, " "}, {2, "iffy"}, {4, " "}, {3, "42"}, {4, "\n"}, {1, "else"}, {2, "x"}}
	buf := []byte("if iffy 42\nelse#x")

	var got []tok
	for cursor := 0; ; {
		tk, ok := a.ScanNext(buf, cursor)
		if !ok {
			break
		}
		got = append(got, tok{tk.Pattern, tk.Text})
		if tk.Len() == 0 {
			t.Fatal("zero-length token")
		}
		cursor = tk.End
	}
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %v", len(got), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

// TestDeterministic tests that repeated compiles and repeated calls give
// the same answers.
func TestDeterministic(t *testing.T) {
	inputs := []string{"", "a", "ab", "abb", "aabb", "babb", "abba"}
	first := MustCompile("(a|b)*abb")
	second := MustCompile("(a|b)*abb")
	for range 3 {
		for _, s := range inputs {
			if first.MatchesFully(s) != second.MatchesFully(s) {
				t.Errorf("%q: compiles disagree", s)
			}
		}
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		pattern string
		is      error
	}{
		{"", ErrSyntax},
		{"a(", ErrSyntax},
		{"(a))", ErrSyntax},
		{"[z-a]", ErrSyntax},
		{"*a", ErrSyntax},
		{"a|", ErrSyntax},
	}
	for _, tt := range tests {
		_, err := Compile(tt.pattern)
		if !errors.Is(err, tt.is) {
			t.Errorf("Compile(%q) = %v, want %v", tt.pattern, err, tt.is)
		}
		var serr *syntax.Error
		if !errors.As(err, &serr) {
			t.Errorf("Compile(%q): no *syntax.Error in %v", tt.pattern, err)
		}
	}

	_, err := CompileMany(nil)
	if !errors.Is(err, ErrInvalidPattern) {
		t.Errorf("CompileMany(nil) = %v", err)
	}

	config := DefaultConfig()
	config.MaxStates = 11
	_, err = CompileWithConfig("abcdefghijk", config)
	if !errors.Is(err, ErrTooComplex) {
		t.Errorf("state limit: got %v, want ErrTooComplex", err)
	}
}

func TestMustCompilePanics(t *testing.T) {
	defer func() {
		r := recover()
		msg, ok := r.(string)
		if !ok || !strings.HasPrefix(msg, "lers: Compile(`a(`): ") {
			t.Errorf("panic = %v", r)
		}
	}()
	MustCompile("a(")
}

func TestFromNFA(t *testing.T) {
	b := nfa.NewBuilder()
	b.SetStateCount(3)
	b.AddSymbol(0, 1, 'o')
	b.AddSymbol(1, 2, 'k')
	b.AddEpsilon(2, 0)
	b.AddAccept(2)
	n, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	a := FromNFA(n)
	if !a.MatchesFully("okok") || a.MatchesFully("oko") {
		t.Error("hand-built automaton matches wrongly")
	}
	if text, _, ok := a.LongestMatch("xxokokx"); !ok || text != "okok" {
		t.Errorf("LongestMatch = %q, %v", text, ok)
	}
	if a.String() != "" || len(a.Patterns()) != 0 {
		t.Error("hand-built automaton has patterns")
	}
}

func TestAutomaton_String(t *testing.T) {
	a, err := CompileMany([]string{"if", "[a-z]+"})
	if err != nil {
		t.Fatal(err)
	}
	if got := a.String(); got != "if\n[a-z]+" {
		t.Errorf("String() = %q", got)
	}
	if a.NFA().PatternCount() != 2 {
		t.Errorf("PatternCount() = %d", a.NFA().PatternCount())
	}
}

func TestFindLongest_Bounds(t *testing.T) {
	a := MustCompile("a")
	for _, from := range []int{-1, 3, 10} {
		if _, ok := a.FindLongest([]byte("aaa"), from); ok {
			t.Errorf("FindLongest(from=%d) matched", from)
		}
	}
	m, ok := a.FindLongest([]byte("baa"), 2)
	if !ok || m.Start != 2 {
		t.Errorf("FindLongest(from=2) = %+v, %v", m, ok)
	}
}
