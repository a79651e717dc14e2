package parser

import (
	"context"
	"strings"

	"notemark-be/pkg/block"
	"notemark-be/pkg/grammar"
	"notemark-be/pkg/richtext"
)

// ParentContext is an open container on the parent stack. Lines claimed
// while it is on top are parsed when it closes.
type ParentContext struct {
	Block       block.Parent
	ChildLines  []string
	ChildBlocks []block.Block

	// nested delimiters that belong to ChildLines, not to this parent
	rawDepth int
}

// Context is the mutable state of one Parse call. Nested parses get their
// own Context.
type Context struct {
	Line          string
	LinesConsumed int
	Result        []block.Block
	ParentStack   []*ParentContext

	ctx   context.Context
	lines []string
	index int
	depth int
	// level is the indentation level of these lines in the whole
	// document. It differs from depth inside columns, whose content is
	// not indented.
	level  int
	parser *Parser
}

func newContext(ctx context.Context, p *Parser, lines []string, depth, level int) *Context {
	return &Context{ctx: ctx, parser: p, lines: lines, depth: depth, level: level}
}

// Context returns the request context the parse runs under.
func (c *Context) Context() context.Context {
	return c.ctx
}

// Trimmed is the current line without surrounding whitespace.
func (c *Context) Trimmed() string {
	return strings.TrimSpace(c.Line)
}

// Index of the current line.
func (c *Context) Index() int {
	return c.index
}

// RemainingLines are the lines after the current one.
func (c *Context) RemainingLines() []string {
	if c.index+1 >= len(c.lines) {
		return nil
	}
	return c.lines[c.index+1:]
}

func (c *Context) IsInsideParentContext() bool {
	return len(c.ParentStack) > 0
}

func (c *Context) top() *ParentContext {
	if len(c.ParentStack) == 0 {
		return nil
	}
	return c.ParentStack[len(c.ParentStack)-1]
}

func (c *Context) PushParent(b block.Parent) *ParentContext {
	pc := &ParentContext{Block: b}
	c.ParentStack = append(c.ParentStack, pc)
	return pc
}

func (c *Context) PopParent() *ParentContext {
	pc := c.top()
	if pc != nil {
		c.ParentStack = c.ParentStack[:len(c.ParentStack)-1]
	}
	return pc
}

// Emit appends b to the open parent, or to the result when none is open.
func (c *Context) Emit(b block.Block) {
	if pc := c.top(); pc != nil {
		pc.ChildBlocks = append(pc.ChildBlocks, b)
		return
	}
	c.Result = append(c.Result, b)
}

// LastBlock is the most recent top-level block, or nil.
func (c *Context) LastBlock() block.Block {
	if len(c.Result) == 0 {
		return nil
	}
	return c.Result[len(c.Result)-1]
}

// RichText parses inline markdown with the configured resolvers.
func (c *Context) RichText(text string) []richtext.RichText {
	return c.parser.rich.Parse(c.ctx, text)
}

// ParseNested dedents lines and parses them one level deeper.
func (c *Context) ParseNested(lines []string) ([]block.Block, error) {
	if len(lines) == 0 {
		return nil, nil
	}
	body, width := dedent(lines)
	level := c.level + width/grammar.SpacesPerNestingLevel
	return c.parser.parse(c.ctx, strings.Join(body, "\n"), c.depth+1, level)
}

// Level is the indentation level of the current line in the document.
func (c *Context) Level() int {
	return c.level + indentWidth(c.Line)/grammar.SpacesPerNestingLevel
}

// CollectIndentedChildren returns the lines following the current one that
// are indented deeper than it. Blank lines are kept only when more indented
// content follows. LinesConsumed is not touched.
func (c *Context) CollectIndentedChildren() ([]string, int) {
	base := indentWidth(c.Line)
	var out []string
	pending := 0
	consumed := 0

	for j := c.index + 1; j < len(c.lines); j++ {
		line := c.lines[j]
		if strings.TrimSpace(line) == "" {
			pending++
			continue
		}
		if indentWidth(line) <= base {
			break
		}
		for ; pending > 0; pending-- {
			out = append(out, "")
		}
		out = append(out, line)
		consumed = j - c.index
	}
	return out, consumed
}

// findClosingFence returns the index of the fence closing the block opened
// at start, or -1.
func (c *Context) findClosingFence(start int) int {
	for j := start + 1; j < len(c.lines); j++ {
		if c.parser.g.CodeEnd.MatchString(strings.TrimSpace(c.lines[j])) {
			return j
		}
	}
	return -1
}

func indentWidth(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

// dedent strips the common indentation and reports its width.
func dedent(lines []string) ([]string, int) {
	min := -1
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		if w := indentWidth(l); min < 0 || w < min {
			min = w
		}
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		out[i] = l[min:]
	}
	if min < 0 {
		min = 0
	}
	return out, min
}
