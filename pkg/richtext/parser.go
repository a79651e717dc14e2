package richtext

import (
	"context"
	"regexp"
	"strings"

	"notemark-be/pkg/grammar"
)

type spanKind int

const (
	spanBoldItalic spanKind = iota
	spanBold
	spanUnderline
	spanItalic
	spanItalicUnderscore
	spanStrikethrough
	spanCode
	spanLink
	spanEquation
	spanColor
	spanPageMention
	spanDatabaseMention
	spanDataSourceMention
	spanUserMention
	spanDateMention
)

type inlinePattern struct {
	kind spanKind
	re   *regexp.Regexp
}

// Parser turns inline markdown into rich text runs.
type Parser struct {
	resolvers Resolvers
	patterns  []inlinePattern
}

func NewParser(g *grammar.Grammar, resolvers Resolvers) *Parser {
	in := g.Inline
	return &Parser{
		resolvers: resolvers,
		// Order is the tie-break when two spans start at the same offset.
		patterns: []inlinePattern{
			{spanBoldItalic, in.BoldItalic},
			{spanBold, in.Bold},
			{spanUnderline, in.Underline},
			{spanItalic, in.ItalicStar},
			{spanItalicUnderscore, in.ItalicUnder},
			{spanStrikethrough, in.Strikethrough},
			{spanCode, in.Code},
			{spanLink, in.Link},
			{spanEquation, in.Equation},
			{spanColor, in.Color},
			{spanPageMention, in.PageMention},
			{spanDatabaseMention, in.DatabaseMention},
			{spanDataSourceMention, in.DataSourceMention},
			{spanUserMention, in.UserMention},
			{spanDateMention, in.DateMention},
		},
	}
}

// Parse splits text into runs. The leftmost span wins; plain text between
// spans becomes unstyled runs.
func (p *Parser) Parse(ctx context.Context, text string) []RichText {
	if text == "" {
		return nil
	}
	return p.parse(ctx, text)
}

func (p *Parser) parse(ctx context.Context, text string) []RichText {
	var out []RichText
	rest := text
	for rest != "" {
		kind, loc := p.earliest(rest)
		if loc == nil {
			out = appendPlain(out, rest)
			break
		}
		if loc[0] > 0 {
			out = appendPlain(out, rest[:loc[0]])
		}
		for _, run := range p.build(ctx, kind, rest, loc) {
			if isPlainRun(run) {
				out = appendPlain(out, run.Text.Content)
				continue
			}
			out = append(out, run)
		}
		rest = rest[loc[1]:]
	}
	return out
}

func (p *Parser) earliest(text string) (spanKind, []int) {
	var bestKind spanKind
	var best []int
	for _, pat := range p.patterns {
		loc := p.find(pat, text)
		if loc == nil {
			continue
		}
		if best == nil || loc[0] < best[0] {
			best, bestKind = loc, pat.kind
		}
	}
	return bestKind, best
}

func (p *Parser) find(pat inlinePattern, text string) []int {
	if pat.kind != spanColor {
		return pat.re.FindStringSubmatchIndex(text)
	}
	// Color spans with an unknown color name are plain text, keep looking.
	for _, loc := range pat.re.FindAllStringSubmatchIndex(text, -1) {
		if Color(text[loc[2]:loc[3]]).IsValid() {
			return loc
		}
	}
	return nil
}

func group(text string, loc []int, n int) string {
	return text[loc[2*n]:loc[2*n+1]]
}

func (p *Parser) build(ctx context.Context, kind spanKind, text string, loc []int) []RichText {
	inner := group(text, loc, 1)
	switch kind {
	case spanBoldItalic:
		return annotate(p.parse(ctx, inner), Annotations{Bold: true, Italic: true})
	case spanBold:
		return annotate(p.parse(ctx, inner), Annotations{Bold: true})
	case spanUnderline:
		return annotate(p.parse(ctx, inner), Annotations{Underline: true})
	case spanItalic, spanItalicUnderscore:
		return annotate(p.parse(ctx, inner), Annotations{Italic: true})
	case spanStrikethrough:
		return annotate(p.parse(ctx, inner), Annotations{Strikethrough: true})
	case spanCode:
		return []RichText{Styled(inner, Annotations{Code: true})}
	case spanEquation:
		return []RichText{EquationInline(inner)}
	case spanLink:
		url := group(text, loc, 2)
		label := p.parse(ctx, inner)
		for i := range label {
			label[i] = label[i].WithLink(url)
		}
		return label
	case spanColor:
		color := Color(inner)
		return annotate(p.parse(ctx, group(text, loc, 2)), Annotations{Color: color})
	case spanDateMention:
		return []RichText{parseDate(inner)}
	}
	raw := text[loc[0]:loc[1]]
	return []RichText{p.mention(ctx, mentionTypeOf(kind), strings.TrimSpace(inner), raw)}
}

func mentionTypeOf(kind spanKind) MentionType {
	switch kind {
	case spanDatabaseMention:
		return MentionDatabase
	case spanDataSourceMention:
		return MentionDataSource
	case spanUserMention:
		return MentionUser
	}
	return MentionPage
}

func (p *Parser) mention(ctx context.Context, t MentionType, value, raw string) RichText {
	id := value
	if !LooksLikeID(value) {
		resolver := p.resolvers.forType(t)
		if resolver == nil {
			return FromPlainText(raw)
		}
		resolved, err := resolver.ResolveNameToID(ctx, value)
		if err != nil || resolved == "" {
			return FromPlainText(raw)
		}
		id = resolved
	}
	switch t {
	case MentionDatabase:
		return MentionDatabaseRef(id)
	case MentionDataSource:
		return MentionDataSourceRef(id)
	case MentionUser:
		return MentionUserRef(id)
	}
	return MentionPageRef(id)
}

func parseDate(value string) RichText {
	start, end, found := strings.Cut(value, grammar.DateRangeSeparator)
	if !found {
		return MentionDateRange(strings.TrimSpace(value), "")
	}
	return MentionDateRange(strings.TrimSpace(start), strings.TrimSpace(end))
}

func annotate(runs []RichText, ann Annotations) []RichText {
	for i := range runs {
		runs[i] = runs[i].WithAnnotations(ann)
	}
	return runs
}

func isPlainRun(r RichText) bool {
	return r.Type == TypeText && r.Text != nil && r.Text.Link == nil && r.Annotations.IsPlain()
}

func appendPlain(out []RichText, content string) []RichText {
	if content == "" {
		return out
	}
	if n := len(out); n > 0 && isPlainRun(out[n-1]) {
		merged := out[n-1].Text.Content + content
		out[n-1] = FromPlainText(merged)
		return out
	}
	return append(out, FromPlainText(content))
}
