package richtext

import "strings"

// Type discriminates the three run kinds.
type Type string

const (
	TypeText     Type = "text"
	TypeEquation Type = "equation"
	TypeMention  Type = "mention"
)

// Color is shared by text annotations and block payloads.
type Color string

const (
	ColorDefault          Color = "default"
	ColorGray             Color = "gray"
	ColorBrown            Color = "brown"
	ColorOrange           Color = "orange"
	ColorYellow           Color = "yellow"
	ColorGreen            Color = "green"
	ColorBlue             Color = "blue"
	ColorPurple           Color = "purple"
	ColorPink             Color = "pink"
	ColorRed              Color = "red"
	ColorGrayBackground   Color = "gray_background"
	ColorBrownBackground  Color = "brown_background"
	ColorOrangeBackground Color = "orange_background"
	ColorYellowBackground Color = "yellow_background"
	ColorGreenBackground  Color = "green_background"
	ColorBlueBackground   Color = "blue_background"
	ColorPurpleBackground Color = "purple_background"
	ColorPinkBackground   Color = "pink_background"
	ColorRedBackground    Color = "red_background"
)

var validColors = map[Color]struct{}{
	ColorDefault: {}, ColorGray: {}, ColorBrown: {}, ColorOrange: {}, ColorYellow: {},
	ColorGreen: {}, ColorBlue: {}, ColorPurple: {}, ColorPink: {}, ColorRed: {},
	ColorGrayBackground: {}, ColorBrownBackground: {}, ColorOrangeBackground: {},
	ColorYellowBackground: {}, ColorGreenBackground: {}, ColorBlueBackground: {},
	ColorPurpleBackground: {}, ColorPinkBackground: {}, ColorRedBackground: {},
}

// IsValid reports whether c is one of the known palette entries.
func (c Color) IsValid() bool {
	_, ok := validColors[c]
	return ok
}

// IsDefault treats the empty color as default.
func (c Color) IsDefault() bool {
	return c == "" || c == ColorDefault
}

type Annotations struct {
	Bold          bool  `json:"bold"`
	Italic        bool  `json:"italic"`
	Strikethrough bool  `json:"strikethrough"`
	Underline     bool  `json:"underline"`
	Code          bool  `json:"code"`
	Color         Color `json:"color"`
}

// IsPlain is true when no style and no color is set.
func (a *Annotations) IsPlain() bool {
	if a == nil {
		return true
	}
	return !a.Bold && !a.Italic && !a.Strikethrough && !a.Underline && !a.Code && a.Color.IsDefault()
}

// Merge ORs the flags of other into a copy of a. The color of a is kept
// unless it is default.
func (a Annotations) Merge(other Annotations) Annotations {
	out := Annotations{
		Bold:          a.Bold || other.Bold,
		Italic:        a.Italic || other.Italic,
		Strikethrough: a.Strikethrough || other.Strikethrough,
		Underline:     a.Underline || other.Underline,
		Code:          a.Code || other.Code,
		Color:         a.Color,
	}
	if out.Color.IsDefault() {
		out.Color = other.Color
	}
	if out.Color == "" {
		out.Color = ColorDefault
	}
	return out
}

type Link struct {
	URL string `json:"url"`
}

type Text struct {
	Content string `json:"content"`
	Link    *Link  `json:"link,omitempty"`
}

type EquationContent struct {
	Expression string `json:"expression"`
}

// MentionType discriminates the mention payload.
type MentionType string

const (
	MentionPage       MentionType = "page"
	MentionDatabase   MentionType = "database"
	MentionDataSource MentionType = "data_source"
	MentionUser       MentionType = "user"
	MentionDate       MentionType = "date"
)

type Reference struct {
	ID string `json:"id"`
}

type DateRange struct {
	Start string  `json:"start"`
	End   *string `json:"end,omitempty"`
}

type Mention struct {
	Type       MentionType `json:"type"`
	Page       *Reference  `json:"page,omitempty"`
	Database   *Reference  `json:"database,omitempty"`
	DataSource *Reference  `json:"data_source,omitempty"`
	User       *Reference  `json:"user,omitempty"`
	Date       *DateRange  `json:"date,omitempty"`
}

// TargetID returns the referenced object id; empty for dates.
func (m *Mention) TargetID() string {
	switch m.Type {
	case MentionPage:
		return refID(m.Page)
	case MentionDatabase:
		return refID(m.Database)
	case MentionDataSource:
		return refID(m.DataSource)
	case MentionUser:
		return refID(m.User)
	}
	return ""
}

func refID(r *Reference) string {
	if r == nil {
		return ""
	}
	return r.ID
}

// RichText is one inline run. Exactly one of Text, Equation and Mention is
// set, matching Type. Mentions never carry annotations.
type RichText struct {
	Type        Type             `json:"type"`
	Text        *Text            `json:"text,omitempty"`
	Equation    *EquationContent `json:"equation,omitempty"`
	Mention     *Mention         `json:"mention,omitempty"`
	Annotations *Annotations     `json:"annotations,omitempty"`
	PlainText   string           `json:"plain_text,omitempty"`
	Href        string           `json:"href,omitempty"`
}

func defaultAnnotations() *Annotations {
	return &Annotations{Color: ColorDefault}
}

// FromPlainText builds an unstyled text run.
func FromPlainText(content string) RichText {
	return RichText{
		Type:        TypeText,
		Text:        &Text{Content: content},
		Annotations: defaultAnnotations(),
		PlainText:   content,
	}
}

// Styled builds a text run with the given annotations.
func Styled(content string, ann Annotations) RichText {
	if ann.Color == "" {
		ann.Color = ColorDefault
	}
	rt := FromPlainText(content)
	rt.Annotations = &ann
	return rt
}

// ForLink builds a hyperlinked text run.
func ForLink(content, url string) RichText {
	rt := FromPlainText(content)
	rt.Text.Link = &Link{URL: url}
	rt.Href = url
	return rt
}

// EquationInline builds an inline equation run.
func EquationInline(expression string) RichText {
	return RichText{
		Type:        TypeEquation,
		Equation:    &EquationContent{Expression: expression},
		Annotations: defaultAnnotations(),
		PlainText:   expression,
	}
}

func mention(m *Mention, plain string) RichText {
	return RichText{Type: TypeMention, Mention: m, PlainText: plain}
}

func MentionPageRef(id string) RichText {
	return mention(&Mention{Type: MentionPage, Page: &Reference{ID: id}}, id)
}

func MentionDatabaseRef(id string) RichText {
	return mention(&Mention{Type: MentionDatabase, Database: &Reference{ID: id}}, id)
}

func MentionDataSourceRef(id string) RichText {
	return mention(&Mention{Type: MentionDataSource, DataSource: &Reference{ID: id}}, id)
}

func MentionUserRef(id string) RichText {
	return mention(&Mention{Type: MentionUser, User: &Reference{ID: id}}, id)
}

// MentionDateRange builds a date mention; end may be empty.
func MentionDateRange(start, end string) RichText {
	d := &DateRange{Start: start}
	plain := start
	if end != "" {
		d.End = &end
		plain = start + " → " + end
	}
	return mention(&Mention{Type: MentionDate, Date: d}, plain)
}

// WithAnnotations returns a copy of rt carrying ann. Mentions are returned
// unchanged.
func (rt RichText) WithAnnotations(ann Annotations) RichText {
	if rt.Type == TypeMention {
		return rt
	}
	base := Annotations{Color: ColorDefault}
	if rt.Annotations != nil {
		base = *rt.Annotations
	}
	merged := base.Merge(ann)
	rt.Annotations = &merged
	return rt
}

// WithLink returns a copy of a text run pointing at url.
func (rt RichText) WithLink(url string) RichText {
	if rt.Type != TypeText || rt.Text == nil {
		return rt
	}
	txt := *rt.Text
	txt.Link = &Link{URL: url}
	rt.Text = &txt
	rt.Href = url
	return rt
}

// Plain concatenates the plain text of runs.
func Plain(runs []RichText) string {
	var sb strings.Builder
	for _, r := range runs {
		switch {
		case r.Type == TypeText && r.Text != nil:
			sb.WriteString(r.Text.Content)
		case r.Type == TypeEquation && r.Equation != nil:
			sb.WriteString(r.Equation.Expression)
		default:
			sb.WriteString(r.PlainText)
		}
	}
	return sb.String()
}
