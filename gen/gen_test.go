package gen

import (
	"bytes"
	"errors"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/coregx/lers/internal/logger"
	"github.com/coregx/lers/nfa"
)

func generate(t *testing.T, n *nfa.NFA, config Config) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Generate(&buf, n, config); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

// builderCalls counts calls of the form b.Method(...) in the generated file.
func builderCalls(t *testing.T, src string) map[string]int {
	t.Helper()
	file, err := parser.ParseFile(token.NewFileSet(), "gen.go", src, 0)
	if err != nil {
		t.Fatalf("generated code does not parse: %v\n%s", err, src)
	}
	calls := make(map[string]int)
	ast.Inspect(file, func(node ast.Node) bool {
		call, ok := node.(*ast.CallExpr)
		if !ok {
			return true
		}
		sel, ok := call.Fun.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		if id, ok := sel.X.(*ast.Ident); ok && id.Name == "b" {
			calls[sel.Sel.Name]++
		}
		return true
	})
	return calls
}

func TestGenerate_ReplaysEdges(t *testing.T) {
	n, err := nfa.CompileMany([]string{"if", "[a-z]+", "[^0-9]", "x.y"})
	if err != nil {
		t.Fatal(err)
	}
	src := generate(t, n, Config{Names: []string{"IF", "IDENT", "OTHER", "XY"}})

	calls := builderCalls(t, src)
	var eps, sym, rng, set int
	for _, e := range n.Edges() {
		switch e.Label.Kind() {
		case nfa.LabelEpsilon:
			eps++
		case nfa.LabelSymbol:
			sym++
		case nfa.LabelRange:
			rng++
		case nfa.LabelSet:
			set++
		}
	}
	want := map[string]int{
		"SetStateCount": 1,
		"AddEpsilon":    eps,
		"AddSymbol":     sym,
		"AddRange":      rng,
		"AddSet":        set,
		"AddAccept":     4,
		"Build":         1,
	}
	for name, count := range want {
		if calls[name] != count {
			t.Errorf("%s called %d times, want %d", name, calls[name], count)
		}
	}

	for _, s := range []string{
		"// Code generated by lers. DO NOT EDIT.",
		"package tokens",
		"func NewAutomaton() *lers.Automaton",
		"IF    = 0",
		"XY    = 3",
		`"github.com/coregx/lers/nfa"`,
		"lers.FromNFA(n)",
		`1: "[a-z]+"`,
	} {
		if !strings.Contains(src, s) {
			t.Errorf("generated code lacks %q:\n%s", s, src)
		}
	}
}

func TestGenerate_Config(t *testing.T) {
	n, err := nfa.Compile("ab")
	if err != nil {
		t.Fatal(err)
	}
	src := generate(t, n, Config{Package: "lexer", FuncName: "Rules"})
	if !strings.Contains(src, "package lexer") || !strings.Contains(src, "func Rules()") {
		t.Errorf("config ignored:\n%s", src)
	}
	if strings.Contains(src, "const") {
		t.Error("constants emitted without names")
	}

	var buf bytes.Buffer
	if err := Generate(&buf, n, Config{FuncName: "not valid"}); !errors.Is(err, ErrInvalidName) {
		t.Errorf("bad func name: got %v", err)
	}
	if err := Generate(&buf, n, Config{Names: []string{"A", "B"}}); err == nil {
		t.Error("name count mismatch accepted")
	}
}

func TestGenerate_Logging(t *testing.T) {
	n, err := nfa.Compile("a|b")
	if err != nil {
		t.Fatal(err)
	}
	var logBuf, out bytes.Buffer
	if err := Generate(&out, n, Config{Logger: logger.NewWithOutput(true, &logBuf)}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(logBuf.String(), "msg=generated") || !strings.Contains(logBuf.String(), "states=6") {
		t.Errorf("log = %s", logBuf.String())
	}
}
