// Package numbering replaces numbered list placeholders in rendered text
// with their final labels.
package numbering

import (
	"strconv"
	"strings"

	"notemark-be/pkg/grammar"
)

// Processor labels placeholders by depth: arabic numerals, then lowercase
// letters, then lowercase roman numerals, repeating every three levels.
type Processor struct {
	unit int
	g    *grammar.Grammar
}

func NewProcessor(g *grammar.Grammar, unit int) *Processor {
	if unit <= 0 {
		unit = grammar.SpacesPerNestingLevel
	}
	return &Processor{unit: unit, g: g}
}

// Process rewrites every placeholder line. A placeholder resets the
// counters of all deeper levels. Other non-blank content resets its own
// level and everything below it. Blank lines reset nothing, code fence
// bodies are left alone.
func (p *Processor) Process(text string) string {
	if !strings.Contains(text, grammar.NumberedListPlaceholder) {
		return text
	}

	var counters []int
	inFence := false
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, grammar.CodeFence) {
			inFence = !inFence
		} else if inFence || trimmed == "" {
			continue
		}
		depth := p.depthOf(line)

		m := p.g.NumberedPlaceholder.FindStringSubmatch(line)
		if m == nil {
			if depth < len(counters) {
				counters = counters[:depth]
			}
			continue
		}

		for len(counters) <= depth {
			counters = append(counters, 0)
		}
		counters = counters[:depth+1]
		counters[depth]++
		lines[i] = m[1] + Label(depth, counters[depth]) + "." + m[2]
	}
	return strings.Join(lines, "\n")
}

func (p *Processor) depthOf(line string) int {
	width := 0
	for _, r := range line {
		switch r {
		case ' ':
			width++
		case '\t':
			width += p.unit
		default:
			return width / p.unit
		}
	}
	return width / p.unit
}

// Label returns the n-th (1-based) label for the given depth.
func Label(depth, n int) string {
	switch depth % 3 {
	case 1:
		return Letters(n)
	case 2:
		return Roman(n)
	}
	return strconv.Itoa(n)
}

// Letters is bijective base-26: a..z, aa, ab, ...
func Letters(n int) string {
	if n <= 0 {
		return ""
	}
	var out []byte
	for n > 0 {
		n--
		out = append([]byte{byte('a' + n%26)}, out...)
		n /= 26
	}
	return string(out)
}

var romanTable = []struct {
	value  int
	symbol string
}{
	{1000, "m"}, {900, "cm"}, {500, "d"}, {400, "cd"},
	{100, "c"}, {90, "xc"}, {50, "l"}, {40, "xl"},
	{10, "x"}, {9, "ix"}, {5, "v"}, {4, "iv"}, {1, "i"},
}

// Roman renders n in lowercase roman numerals. Values outside 1..3999 fall
// back to arabic.
func Roman(n int) string {
	if n <= 0 || n >= 4000 {
		return strconv.Itoa(n)
	}
	var sb strings.Builder
	for _, e := range romanTable {
		for n >= e.value {
			sb.WriteString(e.symbol)
			n -= e.value
		}
	}
	return sb.String()
}
