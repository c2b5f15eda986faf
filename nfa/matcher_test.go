package nfa

import (
	"testing"
)

func mustCompile(t *testing.T, pattern string) *NFA {
	t.Helper()
	n, err := Compile(pattern)
	if err != nil {
		t.Fatalf("Compile(%q): %v", pattern, err)
	}
	return n
}

func TestMatcher_FullMatch(t *testing.T) {
	tests := []struct {
		pattern string
		accept  []string
		reject  []string
	}{
		{"ab", []string{"ab"}, []string{"a", "b", "", "abc"}},
		{"re|lers", []string{"re", "lers"}, []string{"r", "lersx", "relers", ""}},
		{"ba*r", []string{"br", "bar", "baaaar"}, []string{"bcr", "ba", "barr"}},
		{"a+", []string{"a", "aaa"}, []string{"", "b", "aab"}},
		{"[0-9]", []string{"0", "5", "9"}, []string{"x", "", "55"}},
		{"[^0-9]", []string{"x", "\n", "\xff"}, []string{"5", "", "xx"}},
		{"[a-z0-9]", []string{"q", "7"}, []string{"Q", "-"}},
		{".", []string{"a", "\r", "\x00"}, []string{"\n", ""}},
		{"fo(o|ba*r)*baz", []string{"fobaz", "foobaz", "fobrbaz", "fobaaarobaz"}, []string{"foba", "fooz", "fbaz"}},
		{"(a|b)*c", []string{"c", "abbac"}, []string{"abca", "ab"}},
		{`a\*b`, []string{"a*b"}, []string{"ab", "aab"}},
		{"(a*)*", []string{"", "aaaa"}, []string{"b"}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			m := NewMatcher(mustCompile(t, tt.pattern))
			for _, s := range tt.accept {
				if !m.FullMatch([]byte(s)) {
					t.Errorf("FullMatch(%q) = false, want true", s)
				}
			}
			for _, s := range tt.reject {
				if m.FullMatch([]byte(s)) {
					t.Errorf("FullMatch(%q) = true, want false", s)
				}
			}
		})
	}
}

// TestMatcher_ClassComplement tests that [^0-9] accepts exactly the single
// bytes that [0-9] rejects.
func TestMatcher_ClassComplement(t *testing.T) {
	pos := NewMatcher(mustCompile(t, "[0-9]"))
	neg := NewMatcher(mustCompile(t, "[^0-9]"))
	for c := 0; c < 256; c++ {
		in := []byte{byte(c)}
		if pos.FullMatch(in) == neg.FullMatch(in) {
			t.Errorf("byte %#x: [0-9] and [^0-9] agree", c)
		}
	}
}

func TestMatcher_Search(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    bool
	}{
		{"ab", "xxabyy", true},
		{"ab", "xxayb", false},
		{"aab", "aaab", true},
		{"abc", "ababc", true},
		{"re|lers", "parlers", true},
		{"re|lers", "parle", false},
		{"a*", "", true},
		{"a*", "zzz", true},
		{"x", "", false},
		{"[0-9]+", "abc123", true},
		{"b.d", "abcd", true},
		{"b.d", "ab\nd", false},
	}

	for _, tt := range tests {
		m := NewMatcher(mustCompile(t, tt.pattern))
		if got := m.Search([]byte(tt.input)); got != tt.want {
			t.Errorf("Search(%q, %q) = %v, want %v", tt.pattern, tt.input, got, tt.want)
		}
	}
}

func TestMatcher_LongestMatch(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    string
		start   int
		ok      bool
	}{
		{"foo|foooo|fo*b", "bfooooob", "fooooob", 1, true},
		{"foo|foooo|fo*b", "bfoooa", "foo", 1, true},
		{"foo|foooo|fo*b", "bfoooooa", "foooo", 1, true},
		{"foo|foooo|fo*b", "xyz", "", 0, false},
		{"a*", "bbb", "", 0, false},
		{"a*", "bbaaab", "aaa", 2, true},
		{"ab|abcd", "abcx", "ab", 0, true},
		{"[0-9]+", "tel 5551234 ext", "5551234", 4, true},
	}

	for _, tt := range tests {
		m := NewMatcher(mustCompile(t, tt.pattern))
		got, ok := m.LongestMatch([]byte(tt.input), 0)
		if ok != tt.ok {
			t.Errorf("LongestMatch(%q, %q) ok = %v, want %v", tt.pattern, tt.input, ok, tt.ok)
			continue
		}
		if !ok {
			continue
		}
		if text := tt.input[got.Start:got.End]; text != tt.want || got.Start != tt.start {
			t.Errorf("LongestMatch(%q, %q) = %q at %d, want %q at %d",
				tt.pattern, tt.input, text, got.Start, tt.want, tt.start)
		}
		if got.Len() != len(tt.want) {
			t.Errorf("Len() = %d, want %d", got.Len(), len(tt.want))
		}
	}
}

func TestMatcher_LongestAtIsAnchored(t *testing.T) {
	m := NewMatcher(mustCompile(t, "ab"))
	if _, ok := m.LongestAt([]byte("xab"), 0); ok {
		t.Error("LongestAt(0) matched past the anchor")
	}
	got, ok := m.LongestAt([]byte("xab"), 1)
	if !ok || got.Start != 1 || got.End != 3 {
		t.Errorf("LongestAt(1) = %+v, %v", got, ok)
	}
}

func TestMatcher_MultiPatternFullMatch(t *testing.T) {
	n, err := CompileMany([]string{"foo", "foooo", "fo*b"})
	if err != nil {
		t.Fatal(err)
	}
	m := NewMatcher(n)
	for _, s := range []string{"foo", "foooo", "fb", "foooooob"} {
		if !m.FullMatch([]byte(s)) {
			t.Errorf("FullMatch(%q) = false", s)
		}
	}
	for _, s := range []string{"fo", "fooo", "fbi"} {
		if m.FullMatch([]byte(s)) {
			t.Errorf("FullMatch(%q) = true", s)
		}
	}
}

func TestMatcher_Priority(t *testing.T) {
	n, err := CompileMany([]string{"foo", "foooo", "fo*b"})
	if err != nil {
		t.Fatal(err)
	}
	m := NewMatcher(n)

	tests := []struct {
		input   string
		text    string
		pattern int
	}{
		{"fooobaz", "fooob", 2},
		{"bfooooob", "fooooob", 2},
		{"bfoooa", "foo", 0},
		{"bfoooooa", "foooo", 1},
	}
	for _, tt := range tests {
		got, ok := m.LongestMatch([]byte(tt.input), 0)
		if !ok {
			t.Errorf("%q: no match", tt.input)
			continue
		}
		if text := tt.input[got.Start:got.End]; text != tt.text || got.Pattern != tt.pattern {
			t.Errorf("%q: got %q pattern %d, want %q pattern %d",
				tt.input, text, got.Pattern, tt.text, tt.pattern)
		}
	}
}

// TestMatcher_PriorityTie tests that at equal length the pattern listed
// first wins, whatever the state numbering.
func TestMatcher_PriorityTie(t *testing.T) {
	tests := []struct {
		patterns []string
		want     int
	}{
		{[]string{"if", "[a-z]+"}, 0},
		{[]string{"[a-z]+", "if"}, 0},
		{[]string{"i.", "if", "[a-z]+"}, 0},
		{[]string{"x", "if", "i."}, 1},
	}
	for _, tt := range tests {
		n, err := CompileMany(tt.patterns)
		if err != nil {
			t.Fatal(err)
		}
		got, ok := NewMatcher(n).LongestMatch([]byte("if"), 0)
		if !ok || got.Pattern != tt.want || got.End != 2 {
			t.Errorf("%v: got %+v, want pattern %d", tt.patterns, got, tt.want)
		}
	}
}

type byteSkipper byte

func (b byteSkipper) Find(h []byte, at int) int {
	for i := at; i < len(h); i++ {
		if h[i] == byte(b) {
			return i
		}
	}
	return -1
}

func TestMatcher_Skipper(t *testing.T) {
	m := NewMatcher(mustCompile(t, "fo*b"))
	m.SetSkipper(byteSkipper('f'))

	input := []byte("xxxxfoxxfooob")
	if !m.Search(input) {
		t.Error("Search with skipper missed the match")
	}
	got, ok := m.LongestMatch(input, 0)
	if !ok || got.Start != 8 || got.End != 13 {
		t.Errorf("LongestMatch with skipper = %+v, %v", got, ok)
	}
	if m.Search([]byte("xxxx")) {
		t.Error("Search with skipper matched")
	}
	m.SetSkipper(nil)
	if !m.Search(input) {
		t.Error("Search without skipper missed the match")
	}
}

// TestMatcher_Reuse tests that one matcher gives the same answers however
// it was used before.
func TestMatcher_Reuse(t *testing.T) {
	m := NewMatcher(mustCompile(t, "(a|b)*abb"))
	inputs := []string{"abb", "aabb", "ab", "babb", "", "abba"}
	first := make([]bool, len(inputs))
	for i, s := range inputs {
		first[i] = m.FullMatch([]byte(s))
	}
	m.Search([]byte("zzzabbzz"))
	m.LongestMatch([]byte("abbabb"), 0)
	for i, s := range inputs {
		if got := m.FullMatch([]byte(s)); got != first[i] {
			t.Errorf("FullMatch(%q) changed from %v to %v", s, first[i], got)
		}
	}
}

func TestMatcher_BinaryInput(t *testing.T) {
	m := NewMatcher(mustCompile(t, "a[^b]c"))
	if !m.FullMatch([]byte{'a', 0x00, 'c'}) {
		t.Error("NUL byte not matched by negated class")
	}
	if !m.FullMatch([]byte{'a', 0xff, 'c'}) {
		t.Error("0xff not matched by negated class")
	}
}

func BenchmarkMatcher_LongestMatch(b *testing.B) {
	n, err := CompileMany([]string{"if", "else", "[a-z]+", "[0-9]+", " +"})
	if err != nil {
		b.Fatal(err)
	}
	m := NewMatcher(n)
	input := []byte("if x1 else yy 42 if zz")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for at := 0; at < len(input); {
			got, ok := m.LongestMatch(input, at)
			if !ok {
				break
			}
			at = got.End
		}
	}
}
