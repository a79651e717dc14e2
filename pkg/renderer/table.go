package renderer

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"notemark-be/pkg/block"
	"notemark-be/pkg/grammar"
)

const minColumnWidth = 3

type tableRenderer struct{}

func (tableRenderer) CanRender(b block.Block) bool {
	_, ok := b.(*block.Table)
	return ok
}

// Render pads every cell to its column's display width so wide runes line
// up. The separator row is only written for tables with a header row.
func (tableRenderer) Render(c *Context, b block.Block) (string, error) {
	t := b.(*block.Table)
	if len(t.Rows) == 0 {
		return "", nil
	}

	width := t.Width
	for _, row := range t.Rows {
		if len(row.Cells) > width {
			width = len(row.Cells)
		}
	}
	if width == 0 {
		return "", nil
	}

	cells := make([][]string, len(t.Rows))
	widths := make([]int, width)
	for i := range widths {
		widths[i] = minColumnWidth
	}
	for r, row := range t.Rows {
		cells[r] = make([]string, width)
		for i := 0; i < width && i < len(row.Cells); i++ {
			text := strings.ReplaceAll(c.RichText(row.Cells[i]), "\n", " ")
			cells[r][i] = text
			if w := runewidth.StringWidth(text); w > widths[i] {
				widths[i] = w
			}
		}
	}

	lines := make([]string, 0, len(cells)+1)
	for r, row := range cells {
		lines = append(lines, formatRow(row, widths))
		if r == 0 && t.HasColumnHeader {
			lines = append(lines, separatorRow(widths))
		}
	}
	return strings.Join(lines, "\n"), nil
}

func formatRow(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		padded[i] = center(cell, widths[i])
	}
	return grammar.TableDelimiter + " " + strings.Join(padded, " "+grammar.TableDelimiter+" ") + " " + grammar.TableDelimiter
}

func separatorRow(widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("-", w+2)
	}
	return grammar.TableDelimiter + strings.Join(parts, grammar.TableDelimiter) + grammar.TableDelimiter
}

func center(text string, width int) string {
	pad := width - runewidth.StringWidth(text)
	if pad <= 0 {
		return text
	}
	left := pad / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", pad-left)
}
