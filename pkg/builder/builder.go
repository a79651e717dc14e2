// Package builder assembles dialect markdown programmatically.
package builder

import (
	"strconv"
	"strings"

	"notemark-be/pkg/grammar"
)

// Builder collects top-level parts and joins them with blank lines.
type Builder struct {
	parts []string
}

func New() *Builder {
	return &Builder{}
}

func (b *Builder) add(part string) *Builder {
	b.parts = append(b.parts, part)
	return b
}

func (b *Builder) H1(text string) *Builder { return b.Heading(1, text) }
func (b *Builder) H2(text string) *Builder { return b.Heading(2, text) }
func (b *Builder) H3(text string) *Builder { return b.Heading(3, text) }

func (b *Builder) Heading(level int, text string) *Builder {
	return b.add(strings.Repeat(grammar.HeadingPrefix, clampLevel(level)) + " " + text)
}

func (b *Builder) Paragraph(text string) *Builder {
	return b.add(text)
}

func (b *Builder) Space() *Builder {
	return b.add(grammar.SpaceMarker)
}

func (b *Builder) BulletedList(items ...string) *Builder {
	return b.list(grammar.BulletedListPrefix, items)
}

// NumberedList writes items with sequential arabic numbers.
func (b *Builder) NumberedList(items ...string) *Builder {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = strconv.Itoa(i+1) + ". " + item
	}
	return b.add(strings.Join(lines, "\n"))
}

func (b *Builder) Todo(text string, checked bool) *Builder {
	if checked {
		return b.add(grammar.TodoDonePrefix + text)
	}
	return b.add(grammar.TodoPrefix + text)
}

func (b *Builder) list(prefix string, items []string) *Builder {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = prefix + item
	}
	return b.add(strings.Join(lines, "\n"))
}

func (b *Builder) Quote(text string) *Builder {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = grammar.QuotePrefix + l
	}
	return b.add(strings.Join(lines, "\n"))
}

// Callout uses the default emoji when emoji is empty.
func (b *Builder) Callout(text, emoji string) *Builder {
	if emoji == "" {
		emoji = grammar.DefaultCalloutEmoji
	}
	return b.add(grammar.CalloutMarker + "(" + text + ` "` + emoji + `")`)
}

// Toggle nests the content built by fn under title.
func (b *Builder) Toggle(title string, fn func(*Builder)) *Builder {
	return b.add(delimited(grammar.ToggleDelimiter+" "+title, fn, grammar.ToggleDelimiter))
}

func (b *Builder) ToggleableHeading(level int, title string, fn func(*Builder)) *Builder {
	open := grammar.ToggleDelimiter + strings.Repeat(grammar.HeadingPrefix, clampLevel(level)) + " " + title
	return b.add(delimited(open, fn, grammar.ToggleDelimiter))
}

func (b *Builder) Code(language, code string) *Builder {
	return b.add(grammar.CodeFence + language + "\n" + code + "\n" + grammar.CodeFence)
}

func (b *Builder) Equation(expression string) *Builder {
	return b.add(grammar.EquationDelimiter + "\n" + expression + "\n" + grammar.EquationDelimiter)
}

func (b *Builder) Divider() *Builder {
	return b.add(grammar.DividerMarker)
}

func (b *Builder) TableOfContents() *Builder {
	return b.add(grammar.TableOfContentsMark)
}

func (b *Builder) Breadcrumb() *Builder {
	return b.add(grammar.BreadcrumbMarker)
}

func (b *Builder) Bookmark(url string) *Builder {
	return b.add(grammar.BookmarkMarker + "(" + url + ")")
}

func (b *Builder) Embed(url string) *Builder {
	return b.add(grammar.EmbedMarker + "(" + url + ")")
}

func (b *Builder) Image(url, caption string) *Builder {
	return b.media(grammar.ImageMarker, url, caption)
}

func (b *Builder) Video(url, caption string) *Builder {
	return b.media(grammar.VideoMarker, url, caption)
}

func (b *Builder) Audio(url, caption string) *Builder {
	return b.media(grammar.AudioMarker, url, caption)
}

func (b *Builder) File(url, caption string) *Builder {
	return b.media(grammar.FileMarker, url, caption)
}

func (b *Builder) PDF(url, caption string) *Builder {
	return b.media(grammar.PDFMarker, url, caption)
}

func (b *Builder) media(marker, url, caption string) *Builder {
	out := marker + "(" + url + ")"
	if caption != "" {
		out += "\n" + grammar.CaptionMarker + " " + caption
	}
	return b.add(out)
}

// Table writes a header row, a separator and the body rows.
func (b *Builder) Table(headers []string, rows [][]string) *Builder {
	lines := []string{tableRow(headers)}
	sep := make([]string, len(headers))
	for i := range sep {
		sep[i] = "---"
	}
	lines = append(lines, tableRow(sep))
	for _, row := range rows {
		lines = append(lines, tableRow(row))
	}
	return b.add(strings.Join(lines, "\n"))
}

func tableRow(cells []string) string {
	return grammar.TableDelimiter + " " + strings.Join(cells, " "+grammar.TableDelimiter+" ") + " " + grammar.TableDelimiter
}

// Column is one column of a Columns call. Ratio zero leaves it unset.
type Column struct {
	Ratio   float64
	Content func(*Builder)
}

func (b *Builder) Columns(columns ...Column) *Builder {
	parts := []string{grammar.ColumnDelimiter + " " + grammar.ColumnListKeyword}
	for _, col := range columns {
		open := grammar.ColumnDelimiter + " " + grammar.ColumnKeyword
		if col.Ratio > 0 {
			open += " " + strconv.FormatFloat(col.Ratio, 'f', -1, 64)
		}
		inner := New()
		if col.Content != nil {
			col.Content(inner)
		}
		parts = append(parts, open)
		if body := inner.Build(); body != "" {
			parts = append(parts, body)
		}
		parts = append(parts, grammar.ColumnDelimiter)
	}
	parts = append(parts, grammar.ColumnDelimiter)
	return b.add(strings.Join(parts, "\n"))
}

// Build returns the markdown.
func (b *Builder) Build() string {
	return strings.Join(b.parts, "\n\n")
}

func delimited(open string, fn func(*Builder), closer string) string {
	inner := New()
	if fn != nil {
		fn(inner)
	}
	body := inner.Build()
	if body == "" {
		return open + "\n" + closer
	}
	return open + "\n" + indent(body) + "\n" + closer
}

func indent(text string) string {
	pad := strings.Repeat(" ", grammar.SpacesPerNestingLevel)
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = pad + l
		}
	}
	return strings.Join(lines, "\n")
}

func clampLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > 3 {
		return 3
	}
	return level
}
