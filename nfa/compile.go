package nfa

import (
	"fmt"

	"github.com/coregx/lers/internal/logger"
	"github.com/coregx/lers/syntax"
)

// CompilerConfig configures NFA compilation behavior
type CompilerConfig struct {
	// MaxStates limits the number of states in one automaton.
	// Default: 1 << 20
	MaxStates int

	// MaxRecursionDepth limits recursion during parsing and lowering to
	// prevent stack overflow. Concatenation and alternation chains are
	// lowered iteratively and do not count against it.
	// Default: 1000
	MaxRecursionDepth int

	// Logger receives compile tracing. Nil disables tracing.
	Logger *logger.Logger
}

// DefaultCompilerConfig returns a compiler configuration with sensible defaults
func DefaultCompilerConfig() CompilerConfig {
	return CompilerConfig{
		MaxStates:         1 << 20,
		MaxRecursionDepth: 1000,
	}
}

// Fragment is a lowered subexpression: the states where it begins and
// where it accepts. Its edges live in the compiler that produced it.
type Fragment struct {
	Start  StateID
	Accept StateID
}

// counter hands out state ids for one compilation.
type counter struct {
	next  int
	limit int
}

func (c *counter) alloc() (StateID, error) {
	if c.next >= c.limit {
		return InvalidState, &CapacityError{What: "states", Limit: c.limit, Need: c.next + 1}
	}
	id := StateID(c.next)
	c.next++
	return id, nil
}

// unify rewinds the counter by one so the next allocation reuses the most
// recently allocated id.
func (c *counter) unify() {
	c.next--
}

// Compiler lowers syntax trees into NFAs using Thompson's construction.
// A Compiler is not safe for concurrent use; each Compile call starts a
// fresh state numbering.
type Compiler struct {
	config  CompilerConfig
	log     *logger.Logger
	edges   []Edge
	counter counter
	depth   int // current recursion depth
}

// NewCompiler creates a new NFA compiler with the given configuration
func NewCompiler(config CompilerConfig) *Compiler {
	def := DefaultCompilerConfig()
	if config.MaxStates <= 0 {
		config.MaxStates = def.MaxStates
	}
	if config.MaxRecursionDepth <= 0 {
		config.MaxRecursionDepth = def.MaxRecursionDepth
	}
	return &Compiler{
		config: config,
		log:    config.Logger,
	}
}

// NewDefaultCompiler creates a new NFA compiler with default configuration
func NewDefaultCompiler() *Compiler {
	return NewCompiler(DefaultCompilerConfig())
}

// Compile compiles pattern into an NFA with a single accept state.
func Compile(pattern string) (*NFA, error) {
	return NewDefaultCompiler().Compile(pattern)
}

// CompileMany compiles patterns into one NFA; see Compiler.CompileMany.
func CompileMany(patterns []string) (*NFA, error) {
	return NewDefaultCompiler().CompileMany(patterns)
}

func (c *Compiler) limits() syntax.Limits {
	return syntax.Limits{
		MaxDepth: c.config.MaxRecursionDepth,
		MaxNodes: 2 * c.config.MaxStates,
	}
}

func (c *Compiler) reset() {
	c.edges = nil
	c.counter = counter{limit: c.config.MaxStates}
	c.depth = 0
}

func (c *Compiler) parse(pattern string) (syntax.Node, error) {
	node, err := syntax.ParseWithLimits(pattern, c.limits())
	if err != nil {
		return nil, err
	}
	if c.log.Enabled() {
		c.log.Log("parsed", "pattern", pattern, "ast", node.String(), "depth", syntax.Depth(node))
	}
	return node, nil
}

// Compile compiles a pattern string into an NFA whose only accept state is
// the accept state of the whole pattern.
func (c *Compiler) Compile(pattern string) (*NFA, error) {
	c.log.Section("compile")
	node, err := c.parse(pattern)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Index: -1, Err: err}
	}
	n, err := c.compileNode(node, pattern)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Index: -1, Err: err}
	}
	return n, nil
}

// CompileAST compiles an already parsed tree. node is not modified.
func (c *Compiler) CompileAST(node syntax.Node) (*NFA, error) {
	if node == nil {
		return nil, &CompileError{Index: -1, Err: fmt.Errorf("%w: nil syntax tree", ErrInvalidPattern)}
	}
	pattern := node.String()
	n, err := c.compileNode(node, pattern)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Index: -1, Err: err}
	}
	return n, nil
}

func (c *Compiler) compileNode(node syntax.Node, pattern string) (*NFA, error) {
	c.reset()
	frag, err := c.Lower(node)
	if err != nil {
		return nil, err
	}
	if frag.Start != 0 {
		panic(fmt.Sprintf("nfa: root fragment starts at state %d", frag.Start))
	}
	c.log.Log("lowered", "states", c.counter.next, "edges", len(c.edges), "accept", frag.Accept)
	return newNFA(c.counter.next, c.edges, []StateID{frag.Accept}, []string{pattern})
}

// CompileMany compiles patterns into one NFA. A shared start state 0 has an
// epsilon edge to each pattern's start; accept state i belongs to
// patterns[i], and earlier patterns win ties. A syntax error in any pattern
// aborts the whole build.
func (c *Compiler) CompileMany(patterns []string) (*NFA, error) {
	if len(patterns) == 0 {
		return nil, &CompileError{Index: -1, Err: fmt.Errorf("%w: no patterns", ErrInvalidPattern)}
	}
	c.log.Section("compile many")
	c.reset()

	start, err := c.counter.alloc()
	if err != nil {
		return nil, &CompileError{Index: -1, Err: err}
	}
	accepts := make([]StateID, 0, len(patterns))
	for i, pattern := range patterns {
		node, err := c.parse(pattern)
		if err != nil {
			return nil, &CompileError{Pattern: pattern, Index: i, Err: err}
		}
		frag, err := c.Lower(node)
		if err != nil {
			return nil, &CompileError{Pattern: pattern, Index: i, Err: err}
		}
		c.addEpsilon(start, frag.Start)
		accepts = append(accepts, frag.Accept)
		c.log.Log("lowered", "index", i, "start", frag.Start, "accept", frag.Accept)
	}
	c.log.Log("built", "patterns", len(patterns), "states", c.counter.next, "edges", len(c.edges))

	owned := make([]string, len(patterns))
	copy(owned, patterns)
	return newNFA(c.counter.next, c.edges, accepts, owned)
}

func (c *Compiler) addEdge(label Label, from, to StateID) {
	c.edges = append(c.edges, Edge{Label: label, From: from, To: to})
}

func (c *Compiler) addEpsilon(from, to StateID) {
	c.addEdge(Epsilon(), from, to)
}

// Lower appends the edges for node to the compilation in progress and
// returns its fragment. It continues the current state numbering.
func (c *Compiler) Lower(node syntax.Node) (Fragment, error) {
	c.depth++
	defer func() { c.depth-- }()
	if c.depth > c.config.MaxRecursionDepth {
		return Fragment{}, &CapacityError{What: "recursion depth", Limit: c.config.MaxRecursionDepth, Need: c.depth}
	}

	switch n := node.(type) {
	case *syntax.Literal:
		return c.lowerLeaf(Symbol(n.Value))
	case *syntax.Range:
		return c.lowerLeaf(ByteRange(n.Lo, n.Hi, n.Negated))
	case *syntax.Set:
		return c.lowerLeaf(ByteSet(n.Members, n.Negated))
	case *syntax.Concat:
		return c.lowerConcat(n)
	case *syntax.Alternate:
		return c.lowerAlternate(n)
	case *syntax.Repeat:
		return c.lowerRepeat(n)
	case *syntax.Group:
		return c.Lower(n.Sub)
	default:
		panic(fmt.Sprintf("nfa: unexpected node type %T", node))
	}
}

// lowerLeaf builds START --label--> ACCEPT.
func (c *Compiler) lowerLeaf(label Label) (Fragment, error) {
	start, err := c.counter.alloc()
	if err != nil {
		return Fragment{}, err
	}
	accept, err := c.counter.alloc()
	if err != nil {
		return Fragment{}, err
	}
	c.addEdge(label, start, accept)
	return Fragment{Start: start, Accept: accept}, nil
}

// lowerConcat builds START --left--> (left accept = right start) --right--> ACCEPT.
//
// Every fragment allocates its accept state last, so rewinding the counter
// makes the right operand start on the left operand's accept state. The
// left-leaning chain a·b·c·... is walked iteratively.
func (c *Compiler) lowerConcat(n *syntax.Concat) (Fragment, error) {
	var operands []syntax.Node
	var cur syntax.Node = n
	for {
		cat, ok := cur.(*syntax.Concat)
		if !ok {
			break
		}
		operands = append(operands, cat.Right)
		cur = cat.Left
	}
	operands = append(operands, cur)

	frag, err := c.Lower(operands[len(operands)-1])
	if err != nil {
		return Fragment{}, err
	}
	for i := len(operands) - 2; i >= 0; i-- {
		c.counter.unify()
		right, err := c.Lower(operands[i])
		if err != nil {
			return Fragment{}, err
		}
		if right.Start != frag.Accept {
			panic(fmt.Sprintf("nfa: concatenation joined state %d to %d", frag.Accept, right.Start))
		}
		frag.Accept = right.Accept
	}
	return frag, nil
}

// lowerAlternate builds
//
//	         /-ε-> left --ε-\
//	START --<                >--> ACCEPT
//	         \-ε-> right -ε-/
//
// For a chain (a|b)|c the outer START is allocated before the inner one, and
// the inner ACCEPT before the outer one, exactly as nested recursion would.
func (c *Compiler) lowerAlternate(n *syntax.Alternate) (Fragment, error) {
	var spine []*syntax.Alternate
	var cur syntax.Node = n
	for {
		alt, ok := cur.(*syntax.Alternate)
		if !ok {
			break
		}
		spine = append(spine, alt)
		cur = alt.Left
	}

	starts := make([]StateID, len(spine))
	for i := range spine {
		s, err := c.counter.alloc()
		if err != nil {
			return Fragment{}, err
		}
		starts[i] = s
	}

	frag, err := c.Lower(cur)
	if err != nil {
		return Fragment{}, err
	}
	for i := len(spine) - 1; i >= 0; i-- {
		right, err := c.Lower(spine[i].Right)
		if err != nil {
			return Fragment{}, err
		}
		accept, err := c.counter.alloc()
		if err != nil {
			return Fragment{}, err
		}
		c.addEpsilon(starts[i], frag.Start)
		c.addEpsilon(starts[i], right.Start)
		c.addEpsilon(frag.Accept, accept)
		c.addEpsilon(right.Accept, accept)
		frag = Fragment{Start: starts[i], Accept: accept}
	}
	return frag, nil
}

// lowerRepeat builds
//
//	              .-<-ε-<-.
//	             /         \
//	START --ε--> S --sub--> A --ε--> ACCEPT
//	    \                            /
//	     .---------->-ε->-----------.
func (c *Compiler) lowerRepeat(n *syntax.Repeat) (Fragment, error) {
	start, err := c.counter.alloc()
	if err != nil {
		return Fragment{}, err
	}
	body, err := c.Lower(n.Sub)
	if err != nil {
		return Fragment{}, err
	}
	accept, err := c.counter.alloc()
	if err != nil {
		return Fragment{}, err
	}
	c.addEpsilon(start, body.Start)
	c.addEpsilon(start, accept)
	c.addEpsilon(body.Accept, body.Start)
	c.addEpsilon(body.Accept, accept)
	return Fragment{Start: start, Accept: accept}, nil
}
