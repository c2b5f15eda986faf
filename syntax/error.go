// Package syntax parses lers patterns into syntax trees.
//
// The accepted syntax is small: literal bytes, '.' (any byte except
// newline), '(' ')' grouping, '|' alternation, '*' zero-or-more, '+'
// one-or-more and '[...]' / '[^...]' bracket classes with single members
// and 'a-z' ranges. A backslash makes the next byte literal; \n, \t and \r
// denote the corresponding control bytes.
//
// Parsing is a single left-to-right pass with one token of lookahead.
// The first token that does not fit the grammar aborts the parse with an
// *Error; there is no recovery.
package syntax

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax is the category of every malformed-pattern error.
	ErrSyntax = errors.New("invalid pattern syntax")

	// ErrTooLarge indicates the pattern exceeds the parser's nesting or size limits.
	ErrTooLarge = errors.New("pattern too large")
)

// Error describes a pattern that could not be parsed.
type Error struct {
	// Pattern is the full pattern text.
	Pattern string

	// Pos is the byte offset of the offending token.
	Pos int

	// Found is the token that did not fit the grammar.
	Found Token

	// Expected describes what the grammar allowed at Pos. May be empty.
	Expected string

	// Msg overrides the default "unexpected token" description.
	Msg string

	// Err is the error category: ErrSyntax or ErrTooLarge.
	Err error
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = "unexpected " + e.Found.String()
		if e.Expected != "" {
			msg += ", expected " + e.Expected
		}
	}
	return fmt.Sprintf("lers: %s at offset %d in %q", msg, e.Pos, e.Pattern)
}

// Unwrap returns the error category
func (e *Error) Unwrap() error {
	if e.Err == nil {
		return ErrSyntax
	}
	return e.Err
}
