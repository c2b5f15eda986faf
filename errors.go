package lers

import (
	"github.com/coregx/lers/nfa"
	"github.com/coregx/lers/syntax"
)

// Error categories. Test with errors.Is; use errors.As with
// *syntax.Error, *nfa.CompileError, *nfa.CapacityError or *ConfigError
// for details.
var (
	// ErrSyntax reports a malformed pattern.
	ErrSyntax = syntax.ErrSyntax

	// ErrTooLarge reports a pattern nested or sized past the parser limits.
	ErrTooLarge = syntax.ErrTooLarge

	// ErrTooComplex reports an automaton that exceeds a configured limit.
	ErrTooComplex = nfa.ErrTooComplex

	// ErrInvalidPattern reports an empty pattern list.
	ErrInvalidPattern = nfa.ErrInvalidPattern

	// ErrInvalidConfig reports an out-of-range Config field.
	ErrInvalidConfig = nfa.ErrInvalidConfig
)
