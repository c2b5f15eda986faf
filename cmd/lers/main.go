// Command lers compiles patterns and runs them against input.
//
// Usage:
//
//	lers [-v] match [-search] [pattern]
//	lers [-v] scan -rules FILE [-strict] [INPUT]
//	lers [-v] dump PATTERN...
//	lers [-v] gen -rules FILE [-o OUT] [-pkg NAME] [-func NAME]
//
// match reads a pattern (from the argument or the first input line), then
// test strings one per line until "q", printing "Matches!" or
// "Doesn't match." for each. scan tokenizes INPUT (default stdin) with a
// rule file. dump prints the automaton edges. gen writes Go source that
// rebuilds the rule automaton.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/coregx/lers"
	"github.com/coregx/lers/gen"
	"github.com/coregx/lers/internal/logger"
	"github.com/coregx/lers/rules"
	"github.com/coregx/lers/scanner"
)

var errUsage = errors.New("usage: lers [-v] match|scan|dump|gen [flags] [args]")

type env struct {
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
	interactive bool
	verbose     bool
}

func main() {
	e := &env{
		stdin:       os.Stdin,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		interactive: isTerminal(int(os.Stdin.Fd())),
	}
	if err := run(e, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "lers:", err)
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(e *env, args []string) error {
	fs := flag.NewFlagSet("lers", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	fs.BoolVar(&e.verbose, "v", false, "trace compilation to stderr")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() == 0 {
		return errUsage
	}

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "match":
		return runMatch(e, rest)
	case "scan":
		return runScan(e, rest)
	case "dump":
		return runDump(e, rest)
	case "gen":
		return runGen(e, rest)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

func (e *env) config() lers.Config {
	c := lers.DefaultConfig()
	c.Verbose = e.verbose
	c.LogOutput = e.stderr
	return c
}

func (e *env) prompt(msg string) {
	if e.interactive {
		fmt.Fprintln(e.stdout, msg)
	}
}

func runMatch(e *env, args []string) error {
	fs := flag.NewFlagSet("match", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	search := fs.Bool("search", false, "accept strings containing a match instead of full matches")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	in := bufio.NewScanner(e.stdin)
	pattern := fs.Arg(0)
	if fs.NArg() == 0 {
		e.prompt("Input a Regular Expression:")
		if !in.Scan() {
			return in.Err()
		}
		pattern = in.Text()
	}
	a, err := lers.CompileWithConfig(pattern, e.config())
	if err != nil {
		return err
	}

	for {
		e.prompt("Input string to be matched with RE(press q to quit):")
		if !in.Scan() {
			return in.Err()
		}
		line := in.Text()
		if line == "q" {
			return nil
		}
		ok := a.MatchesFully(line)
		if *search {
			ok = a.Search(line)
		}
		if ok {
			fmt.Fprintln(e.stdout, "Matches!")
		} else {
			fmt.Fprintln(e.stdout, "Doesn't match.")
		}
	}
}

func loadRules(path string) (*rules.Ruleset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return rules.Parse(path, f)
}

func runScan(e *env, args []string) error {
	fs := flag.NewFlagSet("scan", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	rulesPath := fs.String("rules", "", "rule file")
	strict := fs.Bool("strict", false, "stop at input no rule matches")
	if err := fs.Parse(args); err != nil || *rulesPath == "" {
		return errUsage
	}

	rs, err := loadRules(*rulesPath)
	if err != nil {
		return err
	}
	a, err := rs.Compile(e.config())
	if err != nil {
		return err
	}

	var input []byte
	if fs.NArg() > 0 {
		input, err = os.ReadFile(fs.Arg(0))
	} else {
		input, err = io.ReadAll(e.stdin)
	}
	if err != nil {
		return err
	}

	s := scanner.New(a, input)
	s.SetStrict(*strict)
	out := bufio.NewWriter(e.stdout)
	for tok := range s.Tokens() {
		r := rs.Rules[tok.Pattern]
		if r.Skip {
			continue
		}
		line, col := s.Position(tok.Start)
		fmt.Fprintf(out, "%d:%d\t%s\t%q\n", line, col, r.Name, tok.Text)
	}
	if err := out.Flush(); err != nil {
		return err
	}
	return s.Err()
}

func runDump(e *env, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	var (
		a   *lers.Automaton
		err error
	)
	if len(args) == 1 {
		a, err = lers.CompileWithConfig(args[0], e.config())
	} else {
		a, err = lers.CompileManyWithConfig(args, e.config())
	}
	if err != nil {
		return err
	}
	n := a.NFA()
	fmt.Fprintf(e.stdout, "states: %d\n", n.States())
	_, err = n.WriteTo(e.stdout)
	return err
}

func runGen(e *env, args []string) error {
	fs := flag.NewFlagSet("gen", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	rulesPath := fs.String("rules", "", "rule file")
	outPath := fs.String("o", "", "output file (default stdout)")
	pkg := fs.String("pkg", "tokens", "generated package name")
	fn := fs.String("func", "NewAutomaton", "generated constructor name")
	if err := fs.Parse(args); err != nil || *rulesPath == "" {
		return errUsage
	}

	rs, err := loadRules(*rulesPath)
	if err != nil {
		return err
	}
	a, err := rs.Compile(e.config())
	if err != nil {
		return err
	}

	config := gen.Config{
		Package:  *pkg,
		FuncName: *fn,
		Names:    rs.Names(),
		Logger:   logger.NewWithOutput(e.verbose, e.stderr),
	}
	if *outPath == "" {
		return gen.Generate(e.stdout, a.NFA(), config)
	}

	var sb strings.Builder
	if err := gen.Generate(&sb, a.NFA(), config); err != nil {
		return err
	}
	return os.WriteFile(*outPath, []byte(sb.String()), 0o644)
}
