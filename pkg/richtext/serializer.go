package richtext

import (
	"context"
	"strings"

	"notemark-be/pkg/grammar"
)

// Serializer renders rich text runs back into inline markdown.
type Serializer struct {
	resolvers Resolvers
}

func NewSerializer(resolvers Resolvers) *Serializer {
	return &Serializer{resolvers: resolvers}
}

func (s *Serializer) Serialize(ctx context.Context, runs []RichText) string {
	var sb strings.Builder
	for _, run := range runs {
		sb.WriteString(s.serializeRun(ctx, run))
	}
	return sb.String()
}

func (s *Serializer) serializeRun(ctx context.Context, run RichText) string {
	var text string
	switch run.Type {
	case TypeMention:
		if run.Mention == nil {
			return run.PlainText
		}
		return s.mention(ctx, run.Mention)
	case TypeEquation:
		if run.Equation == nil {
			return ""
		}
		text = grammar.EquationWrapper + run.Equation.Expression + grammar.EquationWrapper
	default:
		if run.Text == nil {
			return run.PlainText
		}
		text = run.Text.Content
	}

	if text == "" {
		return ""
	}
	if run.Annotations != nil {
		text = wrapAnnotations(text, *run.Annotations)
	}

	url := run.Href
	if run.Text != nil && run.Text.Link != nil {
		url = run.Text.Link.URL
	}
	if url != "" {
		text = "[" + text + "](" + url + ")"
	}
	return text
}

// wrapAnnotations applies code innermost, then strikethrough, underline,
// italic and bold, then the color tag.
func wrapAnnotations(text string, a Annotations) string {
	if a.Code {
		text = grammar.CodeWrapper + text + grammar.CodeWrapper
	}
	if a.Strikethrough {
		text = grammar.StrikethroughWrapper + text + grammar.StrikethroughWrapper
	}
	if a.Underline {
		text = grammar.UnderlineWrapper + text + grammar.UnderlineWrapper
	}
	switch {
	case a.Bold && a.Italic:
		text = grammar.BoldWrapper + grammar.ItalicWrapper + text + grammar.ItalicWrapper + grammar.BoldWrapper
	case a.Italic:
		text = grammar.ItalicWrapper + text + grammar.ItalicWrapper
	case a.Bold:
		text = grammar.BoldWrapper + text + grammar.BoldWrapper
	}
	if !a.Color.IsDefault() && a.Color.IsValid() {
		text = "(" + string(a.Color) + ":" + text + ")"
	}
	return text
}

func (s *Serializer) mention(ctx context.Context, m *Mention) string {
	if m.Type == MentionDate {
		if m.Date == nil {
			return ""
		}
		value := m.Date.Start
		if m.Date.End != nil && *m.Date.End != "" {
			value += grammar.DateRangeSeparator + *m.Date.End
		}
		return grammar.DateMentionPrefix + value + grammar.MentionSuffix
	}

	id := m.TargetID()
	label := id
	if resolver := s.resolvers.forType(m.Type); resolver != nil && id != "" {
		if name, err := resolver.ResolveIDToName(ctx, id); err == nil && name != "" {
			label = name
		}
	}
	return mentionPrefix(m.Type) + label + grammar.MentionSuffix
}

func mentionPrefix(t MentionType) string {
	switch t {
	case MentionDatabase:
		return grammar.DatabaseMentionPrefix
	case MentionDataSource:
		return grammar.DataSourceMentionPrefix
	case MentionUser:
		return grammar.UserMentionPrefix
	}
	return grammar.PageMentionPrefix
}
