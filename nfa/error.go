// Package nfa builds and executes Thompson NFAs for lers patterns.
//
// A Compiler lowers syntax trees into an NFA whose edges carry Labels
// (epsilon, symbol, range or set). State ids come from a counter owned by a
// single compilation; concatenation reuses the left fragment's accept state
// as the right fragment's start, so no epsilon edge joins them.
//
// A Matcher executes the NFA directly by epsilon-closure and move over
// state sets. No DFA is ever built.
package nfa

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidState is the cause of every BuildError.
	ErrInvalidState = errors.New("nfa: state out of range")

	// ErrInvalidPattern reports an empty pattern list or a nil tree.
	ErrInvalidPattern = errors.New("nfa: no pattern")

	// ErrTooComplex is the cause of every CapacityError.
	ErrTooComplex = errors.New("nfa: pattern too complex")

	// ErrInvalidConfig reports a configuration the compiler cannot use.
	ErrInvalidConfig = errors.New("nfa: invalid configuration")
)

// CompileError carries the pattern that failed to compile.
type CompileError struct {
	Pattern string
	Index   int // position in a CompileMany list, -1 for a single pattern
	Err     error
}

func (e *CompileError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("nfa: compile %q: %v", e.Pattern, e.Err)
	}
	return fmt.Sprintf("nfa: compile pattern %d (%q): %v", e.Index, e.Pattern, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// CapacityError reports that compilation would exceed a configured limit.
type CapacityError struct {
	What  string // "states" or "recursion depth"
	Limit int
	Need  int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("nfa: %s limit %d exceeded (need %d)", e.What, e.Limit, e.Need)
}

func (e *CapacityError) Unwrap() error { return ErrTooComplex }

// BuildError rejects a hand-assembled automaton. StateID is InvalidState
// when the problem is not tied to one state.
type BuildError struct {
	Message string
	StateID StateID
}

func (e *BuildError) Error() string {
	if e.StateID == InvalidState {
		return "nfa: build: " + e.Message
	}
	return fmt.Sprintf("nfa: build: state %d: %s", e.StateID, e.Message)
}

func (e *BuildError) Unwrap() error { return ErrInvalidState }
