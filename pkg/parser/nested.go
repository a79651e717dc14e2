package parser

import (
	"strings"

	"notemark-be/pkg/block"
	"notemark-be/pkg/grammar"
	"notemark-be/pkg/richtext"
	"notemark-be/pkg/syntax"
)

// collectToggleBody returns the lines up to the matching bare closing
// delimiter, or the indented lines when no closer exists. The returned
// count includes the closer.
func collectToggleBody(c *Context) ([]string, int) {
	g := c.parser.g
	depth := 0
	for j := c.index + 1; j < len(c.lines); j++ {
		t := strings.TrimSpace(c.lines[j])
		switch {
		case g.CodeStart.MatchString(t):
			if end := c.findClosingFence(j); end > 0 {
				j = end
			}
		case g.ToggleEnd.MatchString(t):
			if depth == 0 {
				return c.lines[c.index+1 : j], j - c.index
			}
			depth--
		case g.ToggleStart.MatchString(t), g.ToggleableHeading.MatchString(t):
			depth++
		}
	}
	return c.CollectIndentedChildren()
}

// attachChildren parses lines into the children of parent and emits it.
func attachChildren(c *Context, parent block.Parent, lines []string, consumed int) error {
	children, err := c.ParseNested(lines)
	if err != nil {
		return err
	}
	parent.SetChildBlocks(children)
	c.LinesConsumed = consumed
	c.Emit(parent)
	return nil
}

type toggleParser struct{ p *Parser }

func (h *toggleParser) CanHandle(c *Context) bool {
	return !c.IsInsideParentContext() && h.p.registry.Get(syntax.KeyToggle).Pattern.MatchString(c.Trimmed())
}

func (h *toggleParser) Process(c *Context) error {
	m := h.p.registry.Get(syntax.KeyToggle).Pattern.FindStringSubmatch(c.Trimmed())
	lines, consumed := collectToggleBody(c)
	toggle := &block.Toggle{RichText: c.RichText(strings.TrimSpace(m[1])), Color: richtext.ColorDefault}
	return attachChildren(c, toggle, lines, consumed)
}

type toggleableHeadingParser struct{ p *Parser }

func (h *toggleableHeadingParser) CanHandle(c *Context) bool {
	return !c.IsInsideParentContext() && h.p.g.ToggleableHeading.MatchString(c.Trimmed())
}

func (h *toggleableHeadingParser) Process(c *Context) error {
	m := h.p.g.ToggleableHeading.FindStringSubmatch(c.Trimmed())
	lines, consumed := collectToggleBody(c)
	heading := &block.Heading{
		Level:        len(m[1]),
		RichText:     c.RichText(strings.TrimSpace(m[2])),
		Color:        richtext.ColorDefault,
		IsToggleable: true,
	}
	return attachChildren(c, heading, lines, consumed)
}

type calloutParser struct{ p *Parser }

func (h *calloutParser) CanHandle(c *Context) bool {
	return !c.IsInsideParentContext() && h.p.g.Callout.MatchString(c.Trimmed())
}

func (h *calloutParser) Process(c *Context) error {
	m := h.p.g.Callout.FindStringSubmatch(c.Trimmed())
	text, emoji := m[1], m[2]
	if m[3] != "" || m[4] != "" {
		text, emoji = m[3], m[4]
	}
	if emoji == "" {
		emoji = grammar.DefaultCalloutEmoji
	}

	lines, consumed := c.CollectIndentedChildren()
	callout := &block.Callout{
		RichText: c.RichText(strings.TrimSpace(text)),
		Icon:     &block.Icon{Emoji: emoji},
		Color:    richtext.ColorDefault,
	}
	return attachChildren(c, callout, lines, consumed)
}

type quoteParser struct{ p *Parser }

func isQuoteLine(g *grammar.Grammar, trimmed string) bool {
	return g.Quote.MatchString(trimmed) && !strings.HasPrefix(trimmed, ">>")
}

func (h *quoteParser) CanHandle(c *Context) bool {
	return !c.IsInsideParentContext() && isQuoteLine(h.p.g, c.Trimmed())
}

// Process joins consecutive quote lines into one block. Lines indented
// below the quote become its children.
func (h *quoteParser) Process(c *Context) error {
	g := h.p.g
	base := indentWidth(c.Line)
	var parts []string
	parts = append(parts, g.Quote.FindStringSubmatch(c.Trimmed())[1])

	rest := c.RemainingLines()
	n := 0
	for ; n < len(rest); n++ {
		t := strings.TrimSpace(rest[n])
		if indentWidth(rest[n]) != base || !isQuoteLine(g, t) {
			break
		}
		parts = append(parts, g.Quote.FindStringSubmatch(t)[1])
	}

	// children hang off the last quote line
	c.index += n
	lines, consumed := c.CollectIndentedChildren()
	c.index -= n

	text := strings.TrimSpace(strings.Join(parts, "\n"))
	if text == "" {
		c.LinesConsumed = n + consumed
		return nil
	}
	quote := &block.Quote{RichText: c.RichText(text), Color: richtext.ColorDefault}
	return attachChildren(c, quote, lines, n+consumed)
}

type todoParser struct{ p *Parser }

func (h *todoParser) CanHandle(c *Context) bool {
	t := c.Trimmed()
	return !c.IsInsideParentContext() && (h.p.g.Todo.MatchString(t) || h.p.g.TodoDone.MatchString(t))
}

func (h *todoParser) Process(c *Context) error {
	t := c.Trimmed()
	checked := false
	m := h.p.g.Todo.FindStringSubmatch(t)
	if m == nil {
		m = h.p.g.TodoDone.FindStringSubmatch(t)
		checked = true
	}
	text := strings.TrimSpace(m[1])
	lines, consumed := c.CollectIndentedChildren()
	if text == "" {
		c.LinesConsumed = consumed
		return nil
	}
	todo := &block.ToDo{RichText: c.RichText(text), Checked: checked, Color: richtext.ColorDefault}
	return attachChildren(c, todo, lines, consumed)
}

type bulletedListParser struct{ p *Parser }

func (h *bulletedListParser) CanHandle(c *Context) bool {
	return !c.IsInsideParentContext() && h.p.g.BulletedList.MatchString(c.Trimmed())
}

func (h *bulletedListParser) Process(c *Context) error {
	m := h.p.g.BulletedList.FindStringSubmatch(c.Trimmed())
	lines, consumed := c.CollectIndentedChildren()
	item := &block.BulletedListItem{RichText: c.RichText(strings.TrimSpace(m[2])), Color: richtext.ColorDefault}
	return attachChildren(c, item, lines, consumed)
}

type numberedListParser struct{ p *Parser }

func (h *numberedListParser) CanHandle(c *Context) bool {
	return !c.IsInsideParentContext() && h.match(c) != nil
}

func (h *numberedListParser) Process(c *Context) error {
	m := h.match(c)
	lines, consumed := c.CollectIndentedChildren()
	item := &block.NumberedListItem{RichText: c.RichText(strings.TrimSpace(m[3])), Color: richtext.ColorDefault}
	return attachChildren(c, item, lines, consumed)
}

// match accepts digits anywhere. A letter or roman label is accepted only
// at a level where numbering renders one, and only as the first label of
// that kind or right after another numbered item, so prose such as
// "ok. fine" stays a paragraph.
func (h *numberedListParser) match(c *Context) []string {
	t := c.Trimmed()
	if m := h.p.g.NumberedList.FindStringSubmatch(t); m != nil {
		return m
	}
	m := h.p.g.NumberedLabel.FindStringSubmatch(t)
	if m == nil || !labelFitsLevel(m[2], c.Level()) {
		return nil
	}
	if _, ok := c.LastBlock().(*block.NumberedListItem); ok || m[2] == "a" || m[2] == "i" {
		return m
	}
	return nil
}

func labelFitsLevel(label string, level int) bool {
	switch level % 3 {
	case 1:
		return true
	case 2:
		return strings.Trim(label, "ivxlcdm") == ""
	}
	return false
}

// syncedBlockParser only builds references. Originals are created through
// the UI, so their lines are consumed and dropped with a warning.
type syncedBlockParser struct{ p *Parser }

func (h *syncedBlockParser) CanHandle(c *Context) bool {
	return !c.IsInsideParentContext() && h.p.g.SyncedBlock.MatchString(c.Trimmed())
}

func (h *syncedBlockParser) Process(c *Context) error {
	_, consumed := c.CollectIndentedChildren()
	c.LinesConsumed = consumed

	m := h.p.g.SyncedReference.FindStringSubmatch(c.Trimmed())
	if m == nil {
		h.p.log.Warn(logModule, "Original synced blocks cannot be created from markdown, they must be created via the UI", map[string]interface{}{
			"line":  c.Index() + 1,
			"title": h.p.g.SyncedBlock.FindStringSubmatch(c.Trimmed())[1],
		})
		return nil
	}
	c.Emit(&block.SyncedBlock{SyncedFrom: &block.SyncedFrom{BlockID: m[1]}})
	return nil
}
