package renderer

import (
	"regexp"
	"strconv"
	"strings"

	"notemark-be/pkg/block"
	"notemark-be/pkg/grammar"
	"notemark-be/pkg/richtext"
)

type paragraphRenderer struct{}

func (paragraphRenderer) CanRender(b block.Block) bool {
	_, ok := b.(*block.Paragraph)
	return ok
}

func (paragraphRenderer) Render(c *Context, b block.Block) (string, error) {
	p := b.(*block.Paragraph)
	text := c.RichText(p.RichText)
	if strings.TrimSpace(text) == "" {
		return grammar.SpaceMarker, nil
	}
	return text, nil
}

type headingRenderer struct{}

func (headingRenderer) CanRender(b block.Block) bool {
	h, ok := b.(*block.Heading)
	return ok && !h.IsToggleable
}

func (headingRenderer) Render(c *Context, b block.Block) (string, error) {
	h := b.(*block.Heading)
	text := c.RichText(h.RichText)
	if text == "" {
		return "", nil
	}
	return headingPrefix(h.Level) + " " + text, nil
}

func headingPrefix(level int) string {
	if level < 1 {
		level = 1
	}
	if level > 3 {
		level = 3
	}
	return strings.Repeat(grammar.HeadingPrefix, level)
}

type toggleableHeadingRenderer struct{}

func (toggleableHeadingRenderer) CanRender(b block.Block) bool {
	h, ok := b.(*block.Heading)
	return ok && h.IsToggleable
}

func (toggleableHeadingRenderer) Render(c *Context, b block.Block) (string, error) {
	h := b.(*block.Heading)
	children, err := c.IndentedChildren(h.Children)
	if err != nil {
		return "", err
	}
	title := grammar.ToggleDelimiter + headingPrefix(h.Level) + " " + c.RichText(h.RichText)
	return joinNonEmpty(title, children, grammar.ToggleDelimiter), nil
}

type toggleRenderer struct{}

func (toggleRenderer) CanRender(b block.Block) bool {
	_, ok := b.(*block.Toggle)
	return ok
}

func (toggleRenderer) Render(c *Context, b block.Block) (string, error) {
	t := b.(*block.Toggle)
	children, err := c.IndentedChildren(t.Children)
	if err != nil {
		return "", err
	}
	title := grammar.ToggleDelimiter + " " + c.RichText(t.RichText)
	return joinNonEmpty(title, children, grammar.ToggleDelimiter), nil
}

// withChildren renders a single line followed by its indented children.
func withChildren(c *Context, line string, children []block.Block) (string, error) {
	nested, err := c.IndentedChildren(children)
	if err != nil {
		return "", err
	}
	return joinNonEmpty(line, nested), nil
}

type bulletedListRenderer struct{}

func (bulletedListRenderer) CanRender(b block.Block) bool {
	_, ok := b.(*block.BulletedListItem)
	return ok
}

func (bulletedListRenderer) Render(c *Context, b block.Block) (string, error) {
	item := b.(*block.BulletedListItem)
	return withChildren(c, grammar.BulletedListPrefix+c.RichText(item.RichText), item.Children)
}

type numberedListRenderer struct{}

func (numberedListRenderer) CanRender(b block.Block) bool {
	_, ok := b.(*block.NumberedListItem)
	return ok
}

func (numberedListRenderer) Render(c *Context, b block.Block) (string, error) {
	item := b.(*block.NumberedListItem)
	return withChildren(c, grammar.NumberedListPlaceholder+". "+c.RichText(item.RichText), item.Children)
}

type todoRenderer struct{}

func (todoRenderer) CanRender(b block.Block) bool {
	_, ok := b.(*block.ToDo)
	return ok
}

func (todoRenderer) Render(c *Context, b block.Block) (string, error) {
	todo := b.(*block.ToDo)
	prefix := grammar.TodoPrefix
	if todo.Checked {
		prefix = grammar.TodoDonePrefix
	}
	return withChildren(c, prefix+c.RichText(todo.RichText), todo.Children)
}

type quoteRenderer struct{}

func (quoteRenderer) CanRender(b block.Block) bool {
	_, ok := b.(*block.Quote)
	return ok
}

func (quoteRenderer) Render(c *Context, b block.Block) (string, error) {
	q := b.(*block.Quote)
	text := c.RichText(q.RichText)
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = grammar.QuotePrefix + l
	}
	return withChildren(c, strings.Join(lines, "\n"), q.Children)
}

type calloutRenderer struct{}

func (calloutRenderer) CanRender(b block.Block) bool {
	_, ok := b.(*block.Callout)
	return ok
}

func (calloutRenderer) Render(c *Context, b block.Block) (string, error) {
	co := b.(*block.Callout)
	inner := c.RichText(co.RichText)
	if co.Icon != nil && co.Icon.Emoji != "" {
		inner += ` "` + co.Icon.Emoji + `"`
	}
	return withChildren(c, grammar.CalloutMarker+"("+inner+")", co.Children)
}

type columnListRenderer struct{}

func (columnListRenderer) CanRender(b block.Block) bool {
	_, ok := b.(*block.ColumnList)
	return ok
}

func (columnListRenderer) Render(c *Context, b block.Block) (string, error) {
	list := b.(*block.ColumnList)
	parts := []string{grammar.ColumnDelimiter + " " + grammar.ColumnListKeyword}
	for _, col := range list.Columns {
		out, err := renderColumn(c, col)
		if err != nil {
			return "", err
		}
		parts = append(parts, out)
	}
	parts = append(parts, grammar.ColumnDelimiter)
	return strings.Join(parts, "\n"), nil
}

// columnRenderer covers a column found outside of a column list.
type columnRenderer struct{}

func (columnRenderer) CanRender(b block.Block) bool {
	_, ok := b.(*block.Column)
	return ok
}

func (columnRenderer) Render(c *Context, b block.Block) (string, error) {
	return renderColumn(c, b.(*block.Column))
}

func renderColumn(c *Context, col *block.Column) (string, error) {
	start := grammar.ColumnDelimiter + " " + grammar.ColumnKeyword
	if col.WidthRatio > 0 && col.WidthRatio <= 1 {
		start += " " + strconv.FormatFloat(col.WidthRatio, 'f', -1, 64)
	}
	children, err := c.Children(col.Children)
	if err != nil {
		return "", err
	}
	return joinNonEmpty(start, children, grammar.ColumnDelimiter), nil
}

var codeLanguage = regexp.MustCompile(`^[\w+#.-]+$`)

type codeRenderer struct{}

func (codeRenderer) CanRender(b block.Block) bool {
	_, ok := b.(*block.Code)
	return ok
}

// Render writes the body verbatim. Languages the fence cannot carry, such
// as the default "plain text", are left off.
func (codeRenderer) Render(c *Context, b block.Block) (string, error) {
	code := b.(*block.Code)
	open := grammar.CodeFence
	if code.Language != grammar.DefaultCodeLanguage && codeLanguage.MatchString(code.Language) {
		open += code.Language
	}
	body := richtext.Plain(code.RichText)
	if body == "" {
		return open + "\n" + grammar.CodeFence, nil
	}
	return open + "\n" + body + "\n" + grammar.CodeFence, nil
}

type equationRenderer struct{}

func (equationRenderer) CanRender(b block.Block) bool {
	_, ok := b.(*block.Equation)
	return ok
}

func (equationRenderer) Render(_ *Context, b block.Block) (string, error) {
	expr := strings.TrimSpace(b.(*block.Equation).Expression)
	if expr == "" {
		return "", nil
	}
	return grammar.EquationDelimiter + "\n" + expr + "\n" + grammar.EquationDelimiter, nil
}

type dividerRenderer struct{}

func (dividerRenderer) CanRender(b block.Block) bool {
	_, ok := b.(*block.Divider)
	return ok
}

func (dividerRenderer) Render(*Context, block.Block) (string, error) {
	return grammar.DividerMarker, nil
}

type breadcrumbRenderer struct{}

func (breadcrumbRenderer) CanRender(b block.Block) bool {
	_, ok := b.(*block.Breadcrumb)
	return ok
}

func (breadcrumbRenderer) Render(*Context, block.Block) (string, error) {
	return grammar.BreadcrumbMarker, nil
}

type tableOfContentsRenderer struct{}

func (tableOfContentsRenderer) CanRender(b block.Block) bool {
	_, ok := b.(*block.TableOfContents)
	return ok
}

func (tableOfContentsRenderer) Render(_ *Context, b block.Block) (string, error) {
	color := b.(*block.TableOfContents).Color
	if color.IsDefault() {
		return grammar.TableOfContentsMark, nil
	}
	return grammar.TableOfContentsMark + "(" + string(color) + ")", nil
}

type bookmarkRenderer struct{}

func (bookmarkRenderer) CanRender(b block.Block) bool {
	_, ok := b.(*block.Bookmark)
	return ok
}

func (bookmarkRenderer) Render(_ *Context, b block.Block) (string, error) {
	url := b.(*block.Bookmark).URL
	if url == "" {
		return "", nil
	}
	return grammar.BookmarkMarker + "(" + url + ")", nil
}

type embedRenderer struct{}

func (embedRenderer) CanRender(b block.Block) bool {
	_, ok := b.(*block.Embed)
	return ok
}

func (embedRenderer) Render(_ *Context, b block.Block) (string, error) {
	url := b.(*block.Embed).URL
	if url == "" {
		return "", nil
	}
	return grammar.EmbedMarker + "(" + url + ")", nil
}

// mediaRenderer handles every file backed kind.
type mediaRenderer struct{}

func (mediaRenderer) CanRender(b block.Block) bool {
	return mediaMarker(b) != ""
}

func (mediaRenderer) Render(_ *Context, b block.Block) (string, error) {
	var url string
	switch m := b.(type) {
	case *block.Image:
		url = m.URL()
	case *block.Video:
		url = m.URL()
	case *block.Audio:
		url = m.URL()
	case *block.File:
		url = m.URL()
	case *block.PDF:
		url = m.URL()
	}
	if url == "" {
		return "", nil
	}
	return mediaMarker(b) + "(" + url + ")", nil
}

func mediaMarker(b block.Block) string {
	switch b.(type) {
	case *block.Image:
		return grammar.ImageMarker
	case *block.Video:
		return grammar.VideoMarker
	case *block.Audio:
		return grammar.AudioMarker
	case *block.File:
		return grammar.FileMarker
	case *block.PDF:
		return grammar.PDFMarker
	}
	return ""
}

type syncedBlockRenderer struct{}

func (syncedBlockRenderer) CanRender(b block.Block) bool {
	_, ok := b.(*block.SyncedBlock)
	return ok
}

// Render writes references as a marker line. Originals cannot be recreated
// from markdown, so their content is written in place.
func (syncedBlockRenderer) Render(c *Context, b block.Block) (string, error) {
	s := b.(*block.SyncedBlock)
	if s.SyncedFrom != nil && s.SyncedFrom.BlockID != "" {
		return grammar.SyncedBlockPrefix + grammar.SyncedFromMarker + " " + s.SyncedFrom.BlockID, nil
	}
	return c.Children(s.Children)
}

type childPageRenderer struct{}

func (childPageRenderer) CanRender(b block.Block) bool {
	_, ok := b.(*block.ChildPage)
	return ok
}

func (childPageRenderer) Render(_ *Context, b block.Block) (string, error) {
	p := b.(*block.ChildPage)
	label := p.Title
	if label == "" {
		label = p.ID
	}
	return grammar.PageMentionPrefix + label + grammar.MentionSuffix, nil
}

type childDatabaseRenderer struct{}

func (childDatabaseRenderer) CanRender(b block.Block) bool {
	_, ok := b.(*block.ChildDatabase)
	return ok
}

func (childDatabaseRenderer) Render(_ *Context, b block.Block) (string, error) {
	d := b.(*block.ChildDatabase)
	label := d.Title
	if label == "" {
		label = d.ID
	}
	return grammar.DatabaseMentionPrefix + label + grammar.MentionSuffix, nil
}
