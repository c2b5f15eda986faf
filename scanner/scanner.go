// Package scanner tokenizes a fixed buffer with a multi-pattern automaton.
//
// A Scanner owns the cursor that lers.Automaton.ScanNext leaves to its
// caller. Each call to Next returns the leftmost-longest lexeme at or after
// the cursor together with the index of the rule that matched it, and
// advances the cursor past the lexeme.
//
// By default bytes that begin no lexeme are skipped silently. In strict
// mode the first such byte stops the scan and Err reports it.
package scanner

import (
	"fmt"
	"iter"

	"github.com/coregx/lers"
)

// UnmatchedError reports input that no rule matches.
type UnmatchedError struct {
	// Offset is the position of the first unmatched byte.
	Offset int

	// Byte is the unmatched byte.
	Byte byte
}

// Error implements the error interface.
func (e *UnmatchedError) Error() string {
	return fmt.Sprintf("scanner: no rule matches %q at offset %d", e.Byte, e.Offset)
}

// Scanner walks a buffer token by token. It is not safe for concurrent
// use; the automaton it reads from is.
type Scanner struct {
	automaton *lers.Automaton
	buf       []byte
	cursor    int
	strict    bool
	skipped   int
	err       error
}

// New creates a scanner over buf. The buffer must not change while the
// scanner is in use.
func New(a *lers.Automaton, buf []byte) *Scanner {
	return &Scanner{automaton: a, buf: buf}
}

// SetStrict makes unmatched input an error instead of skipping it.
func (s *Scanner) SetStrict(strict bool) {
	s.strict = strict
}

// Reset starts scanning buf from the beginning.
func (s *Scanner) Reset(buf []byte) {
	s.buf = buf
	s.cursor = 0
	s.skipped = 0
	s.err = nil
}

// Cursor returns the offset where the next scan starts.
func (s *Scanner) Cursor() int {
	return s.cursor
}

// Skipped returns the number of bytes skipped so far because no rule
// matched them.
func (s *Scanner) Skipped() int {
	return s.skipped
}

// Err returns the error that stopped a strict scan, if any.
func (s *Scanner) Err() error {
	return s.err
}

// Next returns the next token. It returns false at the end of input, or
// after an unmatched byte in strict mode.
func (s *Scanner) Next() (lers.Token, bool) {
	if s.err != nil || s.cursor >= len(s.buf) {
		return lers.Token{}, false
	}
	tok, ok := s.automaton.ScanNext(s.buf, s.cursor)
	if !ok {
		s.fail(s.cursor)
		if !s.strict {
			s.skipped += len(s.buf) - s.cursor
			s.cursor = len(s.buf)
		}
		return lers.Token{}, false
	}
	if tok.Start > s.cursor {
		if s.strict {
			s.fail(s.cursor)
			return lers.Token{}, false
		}
		s.skipped += tok.Start - s.cursor
	}
	s.cursor = tok.End
	return tok, true
}

func (s *Scanner) fail(at int) {
	if s.strict {
		s.err = &UnmatchedError{Offset: at, Byte: s.buf[at]}
	}
}

// Tokens returns an iterator over the remaining tokens.
//
// Example:
//
//	for tok := range scanner.New(a, buf).Tokens() {
//	    fmt.Println(tok.Pattern, tok.Text)
//	}
func (s *Scanner) Tokens() iter.Seq[lers.Token] {
	return func(yield func(lers.Token) bool) {
		for {
			tok, ok := s.Next()
			if !ok || !yield(tok) {
				return
			}
		}
	}
}

// Position converts a byte offset into a 1-based line and column.
func (s *Scanner) Position(offset int) (line, column int) {
	line, column = 1, 1
	for i := 0; i < offset && i < len(s.buf); i++ {
		if s.buf[i] == '\n' {
			line++
			column = 1
		} else {
			column++
		}
	}
	return line, column
}
