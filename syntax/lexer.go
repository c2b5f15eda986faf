package syntax

// Lexer splits a pattern into tokens, one byte per token.
//
// Once the pattern is exhausted, Next returns a TokenEnd token on every call.
type Lexer struct {
	pattern string
	pos     int
}

// NewLexer creates a lexer over pattern.
func NewLexer(pattern string) *Lexer {
	return &Lexer{pattern: pattern}
}

// Next consumes one byte and returns its token.
func (l *Lexer) Next() Token {
	if l.pos >= len(l.pattern) {
		return Token{Kind: TokenEnd, Pos: len(l.pattern)}
	}

	c := l.pattern[l.pos]
	tok := Token{Kind: classify(c), Value: c, Pos: l.pos}
	l.pos++
	return tok
}

// Pos returns the offset of the next unread byte.
func (l *Lexer) Pos() int {
	return l.pos
}

func classify(c byte) TokenKind {
	switch c {
	case '(':
		return TokenLParen
	case ')':
		return TokenRParen
	case '[':
		return TokenLBracket
	case ']':
		return TokenRBracket
	case '^':
		return TokenCaret
	case '-':
		return TokenDash
	case '.':
		return TokenDot
	case '+':
		return TokenPlus
	case '*':
		return TokenStar
	case '|':
		return TokenBar
	case '\\':
		return TokenBackslash
	default:
		return TokenLiteral
	}
}
