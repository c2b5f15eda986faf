package syntax

import "fmt"

// Limits bounds the trees the parser is willing to build.
type Limits struct {
	// MaxDepth limits group nesting.
	// Default: 1000
	MaxDepth int

	// MaxNodes limits the total number of tree nodes. '+' duplicates its
	// operand, so nested '+' operators grow the tree geometrically.
	// Default: 1 << 20
	MaxNodes int
}

// DefaultLimits returns the limits used by Parse.
func DefaultLimits() Limits {
	return Limits{
		MaxDepth: 1000,
		MaxNodes: 1 << 20,
	}
}

// Parse parses pattern into a syntax tree using DefaultLimits.
func Parse(pattern string) (Node, error) {
	return ParseWithLimits(pattern, DefaultLimits())
}

// ParseWithLimits parses pattern into a syntax tree.
//
// Grammar:
//
//	regex  := concat ('|' concat)*
//	concat := factor factor*
//	factor := base ('*' | '+')*
//	base   := LITERAL | '^' | '-' | ']' | '.' | '\' ANY | '[' class ']' | '(' regex ')'
//	class  := '^'? item item*
//	item   := member ('-' member)?
//
// E+ is desugared to E followed by E*, with the first copy cloned.
func ParseWithLimits(pattern string, limits Limits) (Node, error) {
	def := DefaultLimits()
	if limits.MaxDepth <= 0 {
		limits.MaxDepth = def.MaxDepth
	}
	if limits.MaxNodes <= 0 {
		limits.MaxNodes = def.MaxNodes
	}

	p := &parser{
		lex:     NewLexer(pattern),
		pattern: pattern,
		limits:  limits,
	}
	p.advance()

	n, err := p.parseRegex()
	if err != nil {
		return nil, err
	}
	if p.tok.Kind != TokenEnd {
		return nil, p.unexpected("end of pattern")
	}
	return n, nil
}

type parser struct {
	lex     *Lexer
	tok     Token
	pattern string
	limits  Limits
	depth   int
	nodes   int
}

func (p *parser) advance() {
	p.tok = p.lex.Next()
}

func (p *parser) expect(kind TokenKind) error {
	if p.tok.Kind != kind {
		return p.unexpected(kind.String())
	}
	p.advance()
	return nil
}

func (p *parser) unexpected(expected string) *Error {
	return &Error{
		Pattern:  p.pattern,
		Pos:      p.tok.Pos,
		Found:    p.tok,
		Expected: expected,
	}
}

func (p *parser) fail(pos int, msg string, category error) *Error {
	return &Error{
		Pattern: p.pattern,
		Pos:     pos,
		Found:   p.tok,
		Msg:     msg,
		Err:     category,
	}
}

// grow accounts for n new nodes.
func (p *parser) grow(n int) error {
	p.nodes += n
	if p.nodes > p.limits.MaxNodes {
		return p.fail(p.tok.Pos, fmt.Sprintf("pattern expands to more than %d nodes", p.limits.MaxNodes), ErrTooLarge)
	}
	return nil
}

func (p *parser) parseRegex() (Node, error) {
	left, err := p.parseConcat()
	if err != nil {
		return nil, err
	}
	for p.tok.Kind == TokenBar {
		p.advance()
		right, err := p.parseConcat()
		if err != nil {
			return nil, err
		}
		if err := p.grow(1); err != nil {
			return nil, err
		}
		left = &Alternate{Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseConcat() (Node, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for startsBase(p.tok.Kind) {
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		if err := p.grow(1); err != nil {
			return nil, err
		}
		left = &Concat{Left: left, Right: right}
	}
	return left, nil
}

func startsBase(kind TokenKind) bool {
	switch kind {
	case TokenLiteral, TokenCaret, TokenDash, TokenRBracket, TokenDot,
		TokenBackslash, TokenLBracket, TokenLParen:
		return true
	default:
		return false
	}
}

func (p *parser) parseFactor() (Node, error) {
	n, err := p.parseBase()
	if err != nil {
		return nil, err
	}
	for {
		switch p.tok.Kind {
		case TokenStar:
			p.advance()
			if err := p.grow(1); err != nil {
				return nil, err
			}
			n = &Repeat{Sub: n}
		case TokenPlus:
			p.advance()
			if err := p.grow(Size(n) + 2); err != nil {
				return nil, err
			}
			n = &Concat{Left: Clone(n), Right: &Repeat{Sub: n}}
		default:
			return n, nil
		}
	}
}

func (p *parser) parseBase() (Node, error) {
	tok := p.tok
	switch tok.Kind {
	case TokenLiteral, TokenCaret, TokenDash, TokenRBracket:
		p.advance()
		return p.leaf(&Literal{Value: tok.Value})
	case TokenDot:
		p.advance()
		return p.leaf(&Set{Members: []byte{'\n'}, Negated: true})
	case TokenBackslash:
		c, err := p.parseEscape()
		if err != nil {
			return nil, err
		}
		return p.leaf(&Literal{Value: c})
	case TokenLBracket:
		p.advance()
		n, err := p.parseClass(tok.Pos)
		if err != nil {
			return nil, err
		}
		return p.leaf(n)
	case TokenLParen:
		p.advance()
		p.depth++
		if p.depth > p.limits.MaxDepth {
			return nil, p.fail(tok.Pos, fmt.Sprintf("group nesting exceeds %d", p.limits.MaxDepth), ErrTooLarge)
		}
		sub, err := p.parseRegex()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		p.depth--
		if err := p.grow(1); err != nil {
			return nil, err
		}
		return &Group{Sub: sub}, nil
	default:
		return nil, p.unexpected("literal, '.', '[' or '('")
	}
}

func (p *parser) leaf(n Node) (Node, error) {
	if err := p.grow(1); err != nil {
		return nil, err
	}
	return n, nil
}

// parseEscape consumes '\' and the byte after it.
func (p *parser) parseEscape() (byte, error) {
	p.advance()
	if p.tok.Kind == TokenEnd {
		return 0, p.fail(p.tok.Pos, "trailing backslash", ErrSyntax)
	}
	c := p.tok.Value
	p.advance()
	switch c {
	case 'n':
		return '\n', nil
	case 't':
		return '\t', nil
	case 'r':
		return '\r', nil
	default:
		return c, nil
	}
}

type classItem struct {
	lo, hi byte
}

// parseClass parses the body of a bracket expression; '[' is already consumed.
func (p *parser) parseClass(open int) (Node, error) {
	negated := false
	if p.tok.Kind == TokenCaret {
		negated = true
		p.advance()
	}

	var items []classItem
	ranges := 0
	for p.tok.Kind != TokenRBracket {
		lo, err := p.parseMember()
		if err != nil {
			return nil, err
		}
		if p.tok.Kind != TokenDash {
			items = append(items, classItem{lo, lo})
			continue
		}

		dash := p.tok
		p.advance()
		if p.tok.Kind == TokenRBracket {
			// trailing '-' is a member
			items = append(items, classItem{lo, lo}, classItem{'-', '-'})
			break
		}
		hi, err := p.parseMember()
		if err != nil {
			return nil, err
		}
		if lo > hi {
			return nil, p.fail(dash.Pos, fmt.Sprintf("invalid class range %q-%q", lo, hi), ErrSyntax)
		}
		items = append(items, classItem{lo, hi})
		ranges++
	}
	if len(items) == 0 {
		return nil, p.fail(open, "empty character class", ErrSyntax)
	}
	p.advance()

	if len(items) == 1 && ranges == 1 {
		return &Range{Lo: items[0].lo, Hi: items[0].hi, Negated: negated}, nil
	}

	var members []byte
	for _, it := range items {
		for c := int(it.lo); c <= int(it.hi); c++ {
			members = append(members, byte(c))
		}
	}
	return &Set{Members: members, Negated: negated}, nil
}

// parseMember consumes one class member: any byte other than ']', or an escape.
func (p *parser) parseMember() (byte, error) {
	switch p.tok.Kind {
	case TokenEnd:
		return 0, p.unexpected("']'")
	case TokenRBracket:
		return 0, p.unexpected("class member")
	case TokenBackslash:
		return p.parseEscape()
	default:
		c := p.tok.Value
		p.advance()
		return c, nil
	}
}

// Size returns the number of nodes in the tree rooted at n.
func Size(n Node) int {
	switch n := n.(type) {
	case nil:
		return 0
	case *Literal, *Range, *Set:
		return 1
	case *Concat:
		return 1 + Size(n.Left) + Size(n.Right)
	case *Alternate:
		return 1 + Size(n.Left) + Size(n.Right)
	case *Repeat:
		return 1 + Size(n.Sub)
	case *Group:
		return 1 + Size(n.Sub)
	default:
		panic(fmt.Sprintf("syntax: unexpected node type %T", n))
	}
}
