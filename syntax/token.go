package syntax

import "fmt"

// TokenKind identifies the lexical class of a pattern character.
type TokenKind uint8

const (
	// TokenLParen is '('
	TokenLParen TokenKind = iota
	// TokenRParen is ')'
	TokenRParen
	// TokenLBracket is '['
	TokenLBracket
	// TokenRBracket is ']'
	TokenRBracket
	// TokenCaret is '^'
	TokenCaret
	// TokenDash is '-'
	TokenDash
	// TokenDot is '.'
	TokenDot
	// TokenPlus is '+'
	TokenPlus
	// TokenStar is '*'
	TokenStar
	// TokenBar is '|'
	TokenBar
	// TokenBackslash is '\'
	TokenBackslash
	// TokenLiteral is any other byte; Token.Value holds it
	TokenLiteral
	// TokenEnd marks the end of the pattern
	TokenEnd
)

// String returns a human-readable representation of the TokenKind
func (k TokenKind) String() string {
	switch k {
	case TokenLParen:
		return "'('"
	case TokenRParen:
		return "')'"
	case TokenLBracket:
		return "'['"
	case TokenRBracket:
		return "']'"
	case TokenCaret:
		return "'^'"
	case TokenDash:
		return "'-'"
	case TokenDot:
		return "'.'"
	case TokenPlus:
		return "'+'"
	case TokenStar:
		return "'*'"
	case TokenBar:
		return "'|'"
	case TokenBackslash:
		return "'\\'"
	case TokenLiteral:
		return "literal"
	case TokenEnd:
		return "end of pattern"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Token is a single lexical unit of a pattern.
// Value is the source byte for every kind except TokenEnd.
type Token struct {
	Kind  TokenKind
	Value byte
	Pos   int // byte offset in the pattern
}

// String returns a human-readable representation of the token
func (t Token) String() string {
	if t.Kind == TokenLiteral {
		return fmt.Sprintf("literal %q", t.Value)
	}
	return t.Kind.String()
}
