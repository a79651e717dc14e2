package parser

import (
	"strings"

	"notemark-be/pkg/block"
	"notemark-be/pkg/grammar"
	"notemark-be/pkg/richtext"
)

type codeParser struct{ p *Parser }

func (h *codeParser) CanHandle(c *Context) bool {
	return !c.IsInsideParentContext() && h.p.g.CodeStart.MatchString(c.Trimmed())
}

// Process keeps the body verbatim. An unterminated fence runs to the end of
// the input.
func (h *codeParser) Process(c *Context) error {
	m := h.p.g.CodeStart.FindStringSubmatch(c.Trimmed())
	language := strings.ToLower(m[1])
	if language == "" {
		language = grammar.DefaultCodeLanguage
	}

	end := c.findClosingFence(c.index)
	if end < 0 {
		end = len(c.lines)
	}
	indent := indentWidth(c.Line)
	body := make([]string, 0, end-c.index-1)
	for _, line := range c.lines[c.index+1 : end] {
		body = append(body, stripIndent(line, indent))
	}

	content := strings.Join(body, "\n")
	code := &block.Code{
		RichText: []richtext.RichText{},
		Language: language,
		Captions: []richtext.RichText{},
	}
	if content != "" {
		code.RichText = []richtext.RichText{richtext.FromPlainText(content)}
	}
	if caption := strings.TrimSpace(m[2]); caption != "" {
		code.Captions = c.RichText(caption)
	}

	if end == len(c.lines) {
		c.LinesConsumed = end - c.index - 1
	} else {
		c.LinesConsumed = end - c.index
	}
	c.Emit(code)
	return nil
}

func stripIndent(line string, n int) string {
	w := indentWidth(line)
	if w > n {
		w = n
	}
	return line[w:]
}

type equationParser struct{ p *Parser }

func (h *equationParser) CanHandle(c *Context) bool {
	t := c.Trimmed()
	return !c.IsInsideParentContext() && (h.p.g.EquationFence.MatchString(t) || h.p.g.EquationInline.MatchString(t))
}

func (h *equationParser) Process(c *Context) error {
	if m := h.p.g.EquationInline.FindStringSubmatch(c.Trimmed()); m != nil {
		emitEquation(c, []string{m[1]})
		return nil
	}

	var body []string
	j := c.index + 1
	for ; j < len(c.lines); j++ {
		if h.p.g.EquationFence.MatchString(strings.TrimSpace(c.lines[j])) {
			break
		}
		body = append(body, c.lines[j])
	}
	if j == len(c.lines) {
		c.LinesConsumed = j - c.index - 1
	} else {
		c.LinesConsumed = j - c.index
	}
	emitEquation(c, body)
	return nil
}

// emitEquation builds the expression, doubling a trailing escape so a line
// ending in a single backslash keeps its continuation.
func emitEquation(c *Context, lines []string) {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		l = strings.TrimRight(l, " \t")
		trailing := len(l) - len(strings.TrimRight(l, `\`))
		if trailing%2 == 1 {
			l += `\`
		}
		out = append(out, l)
	}
	expr := strings.TrimSpace(strings.Join(out, "\n"))
	if expr == "" {
		return
	}
	c.Emit(&block.Equation{Expression: expr})
}

type tableParser struct{ p *Parser }

func (h *tableParser) CanHandle(c *Context) bool {
	return !c.IsInsideParentContext() && h.p.g.TableRow.MatchString(c.Line)
}

// Process collects consecutive pipe rows. A separator row directly after
// the first row marks it as the column header.
func (h *tableParser) Process(c *Context) error {
	g := h.p.g
	rows := [][]string{splitCells(g.TableRow.FindStringSubmatch(c.Line)[1])}
	hasHeader := false

	rest := c.RemainingLines()
	n := 0
	for ; n < len(rest); n++ {
		line := rest[n]
		if !g.TableRow.MatchString(line) {
			break
		}
		if g.TableSeparator.MatchString(line) {
			if n == 0 {
				hasHeader = true
			}
			continue
		}
		rows = append(rows, splitCells(g.TableRow.FindStringSubmatch(line)[1]))
	}
	c.LinesConsumed = n

	width := len(rows[0])
	table := &block.Table{Width: width, HasColumnHeader: hasHeader}
	for _, cells := range rows {
		row := &block.TableRow{Cells: make([][]richtext.RichText, width)}
		for i := 0; i < width; i++ {
			row.Cells[i] = []richtext.RichText{}
			if i < len(cells) && cells[i] != "" {
				row.Cells[i] = c.RichText(cells[i])
			}
		}
		table.Rows = append(table.Rows, row)
	}
	c.Emit(table)
	return nil
}

func splitCells(inner string) []string {
	parts := strings.Split(inner, grammar.TableDelimiter)
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
