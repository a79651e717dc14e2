package parser

import (
	"strconv"
	"strings"

	"notemark-be/pkg/block"
)

type columnListParser struct{ p *Parser }

func (h *columnListParser) CanHandle(c *Context) bool {
	return !c.IsInsideParentContext() && h.p.g.ColumnListStart.MatchString(c.Trimmed())
}

func (h *columnListParser) Process(c *Context) error {
	c.PushParent(&block.ColumnList{})
	return nil
}

type columnParser struct{ p *Parser }

func (h *columnParser) CanHandle(c *Context) bool {
	if !h.p.g.ColumnStart.MatchString(c.Trimmed()) {
		return false
	}
	top := c.top()
	if top == nil {
		return true
	}
	_, isList := top.Block.(*block.ColumnList)
	return isList && top.rawDepth == 0
}

func (h *columnParser) Process(c *Context) error {
	col := &block.Column{}
	if m := h.p.g.ColumnStart.FindStringSubmatch(c.Trimmed()); m[1] != "" {
		if r, err := strconv.ParseFloat(m[1], 64); err == nil {
			col.WidthRatio = r
		}
	}
	c.PushParent(col)
	return nil
}

type columnEndParser struct{ p *Parser }

func (h *columnEndParser) CanHandle(c *Context) bool {
	top := c.top()
	return top != nil && top.rawDepth == 0 && h.p.g.ColumnEnd.MatchString(c.Trimmed())
}

func (h *columnEndParser) Process(c *Context) error {
	return closeParent(c)
}

// closeParent pops the open parent, parses its claimed lines and emits it
// to the next parent or to the result.
func closeParent(c *Context) error {
	pc := c.PopParent()
	if pc == nil {
		return nil
	}

	switch b := pc.Block.(type) {
	case *block.ColumnList:
		if hasContent(pc.ChildLines) {
			c.parser.log.Debug(logModule, "Ignoring content outside of columns", map[string]interface{}{
				"lines": len(pc.ChildLines),
			})
		}
		b.SetChildBlocks(pc.ChildBlocks)
	default:
		children, err := c.ParseNested(pc.ChildLines)
		if err != nil {
			return err
		}
		b.SetChildBlocks(append(pc.ChildBlocks, children...))
	}

	c.Emit(pc.Block)
	return nil
}

func hasContent(lines []string) bool {
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			return true
		}
	}
	return false
}

// parentLineCollector claims every line while a parent is open. Code
// fences are claimed whole, nested column delimiters are tracked so they
// close their own blocks once re-parsed.
type parentLineCollector struct{ p *Parser }

func (h *parentLineCollector) CanHandle(c *Context) bool {
	return c.IsInsideParentContext()
}

func (h *parentLineCollector) Process(c *Context) error {
	top := c.top()
	trimmed := c.Trimmed()
	g := h.p.g

	if g.CodeStart.MatchString(trimmed) {
		end := c.findClosingFence(c.index)
		if end < 0 {
			end = len(c.lines) - 1
		}
		top.ChildLines = append(top.ChildLines, c.lines[c.index:end+1]...)
		c.LinesConsumed = end - c.index
		return nil
	}

	switch {
	case g.ColumnListStart.MatchString(trimmed), g.ColumnStart.MatchString(trimmed):
		top.rawDepth++
	case g.ColumnEnd.MatchString(trimmed) && top.rawDepth > 0:
		top.rawDepth--
	}
	top.ChildLines = append(top.ChildLines, c.Line)
	return nil
}
