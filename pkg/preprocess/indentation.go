package preprocess

import (
	"strings"

	"notemark-be/pkg/grammar"
)

// IndentationNormalizer snaps leading whitespace to multiples of Unit so
// nesting can be derived by integer division. Fenced code is left alone.
type IndentationNormalizer struct {
	Unit int
}

func NewIndentationNormalizer(unit int) *IndentationNormalizer {
	if unit <= 0 {
		unit = grammar.SpacesPerNestingLevel
	}
	return &IndentationNormalizer{Unit: unit}
}

func (n *IndentationNormalizer) Process(text string) string {
	if text == "" {
		return text
	}
	lines := strings.Split(text, "\n")
	inCode := false

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		isFence := strings.HasPrefix(trimmed, grammar.CodeFence)

		if inCode && !isFence {
			continue
		}
		if isFence {
			inCode = !inCode
		}
		if trimmed == "" {
			lines[i] = ""
			continue
		}
		lines[i] = n.normalizeLine(line)
	}
	return strings.Join(lines, "\n")
}

func (n *IndentationNormalizer) normalizeLine(line string) string {
	width := 0
	pos := 0
	for pos < len(line) {
		switch line[pos] {
		case ' ':
			width++
		case '\t':
			width += n.Unit
		default:
			return strings.Repeat(" ", n.round(width)) + line[pos:]
		}
		pos++
	}
	return line
}

// round maps up to two stray spaces to zero and everything else to the
// nearest multiple of Unit, halves rounding up.
func (n *IndentationNormalizer) round(width int) int {
	if width <= 2 {
		return 0
	}
	levels := (width + n.Unit/2) / n.Unit
	return levels * n.Unit
}
