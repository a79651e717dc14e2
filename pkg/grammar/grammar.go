package grammar

import (
	"regexp"
	"sync"
)

// Delimiters and markers of the block dialect.
const (
	SpacesPerNestingLevel   = 4
	NumberedListPlaceholder = "__NUM__"

	HeadingPrefix       = "#"
	BulletedListPrefix  = "- "
	TodoPrefix          = "- [ ] "
	TodoDonePrefix      = "- [x] "
	QuotePrefix         = "> "
	SyncedBlockPrefix   = ">>> "
	SyncedFromMarker    = "Synced from:"
	TableDelimiter      = "|"
	ToggleDelimiter     = "+++"
	ColumnDelimiter     = ":::"
	ColumnListKeyword   = "columns"
	ColumnKeyword       = "column"
	CodeFence           = "```"
	EquationDelimiter   = "$$"
	DividerMarker       = "---"
	CaptionMarker       = "[caption]"
	SpaceMarker         = "[space]"
	BreadcrumbMarker    = "[breadcrumb]"
	TableOfContentsMark = "[toc]"
	CalloutMarker       = "[callout]"
	BookmarkMarker      = "[bookmark]"
	EmbedMarker         = "[embed]"
	ImageMarker         = "[image]"
	VideoMarker         = "[video]"
	AudioMarker         = "[audio]"
	FileMarker          = "[file]"
	PDFMarker           = "[pdf]"

	DefaultCalloutEmoji = "💡"
	DefaultCodeLanguage = "plain text"

	BoldWrapper          = "**"
	ItalicWrapper        = "*"
	UnderlineWrapper     = "__"
	StrikethroughWrapper = "~~"
	CodeWrapper          = "`"
	EquationWrapper      = "$"

	PageMentionPrefix       = "@page["
	DatabaseMentionPrefix   = "@database["
	DataSourceMentionPrefix = "@datasource["
	UserMentionPrefix       = "@user["
	DateMentionPrefix       = "@date["
	MentionSuffix           = "]"
	DateRangeSeparator      = "–"
)

// Grammar bundles every compiled pattern of the dialect. Instances are
// immutable after construction and safe to share between goroutines.
type Grammar struct {
	Heading      *regexp.Regexp
	BulletedList *regexp.Regexp
	NumberedList *regexp.Regexp
	// NumberedLabel matches the letter and roman labels the renderer emits
	// for nested levels. Whether a label is accepted depends on the level.
	NumberedLabel       *regexp.Regexp
	Todo                *regexp.Regexp
	TodoDone            *regexp.Regexp
	Quote               *regexp.Regexp
	Divider             *regexp.Regexp
	Breadcrumb          *regexp.Regexp
	TableOfContents     *regexp.Regexp
	Caption             *regexp.Regexp
	Space               *regexp.Regexp
	Callout             *regexp.Regexp
	Bookmark            *regexp.Regexp
	Embed               *regexp.Regexp
	Image               *regexp.Regexp
	Video               *regexp.Regexp
	Audio               *regexp.Regexp
	File                *regexp.Regexp
	PDF                 *regexp.Regexp
	CodeStart           *regexp.Regexp
	CodeEnd             *regexp.Regexp
	EquationFence       *regexp.Regexp
	EquationInline      *regexp.Regexp
	ToggleStart         *regexp.Regexp
	ToggleEnd           *regexp.Regexp
	ToggleableHeading   *regexp.Regexp
	ColumnListStart     *regexp.Regexp
	ColumnStart         *regexp.Regexp
	ColumnEnd           *regexp.Regexp
	TableRow            *regexp.Regexp
	TableSeparator      *regexp.Regexp
	SyncedBlock         *regexp.Regexp
	SyncedReference     *regexp.Regexp
	NumberedPlaceholder *regexp.Regexp

	Inline InlinePatterns
}

// InlinePatterns are the span-level expressions, ordered by tie-break
// priority. Earlier entries win when two matches start at the same offset.
type InlinePatterns struct {
	BoldItalic        *regexp.Regexp
	Bold              *regexp.Regexp
	Underline         *regexp.Regexp
	ItalicStar        *regexp.Regexp
	ItalicUnder       *regexp.Regexp
	Strikethrough     *regexp.Regexp
	Code              *regexp.Regexp
	Link              *regexp.Regexp
	Equation          *regexp.Regexp
	Color             *regexp.Regexp
	PageMention       *regexp.Regexp
	DatabaseMention   *regexp.Regexp
	DataSourceMention *regexp.Regexp
	UserMention       *regexp.Regexp
	DateMention       *regexp.Regexp
}

var (
	defaultOnce    sync.Once
	defaultGrammar *Grammar
)

// Default returns the process-wide grammar.
func Default() *Grammar {
	defaultOnce.Do(func() {
		defaultGrammar = New()
	})
	return defaultGrammar
}

// New compiles a fresh grammar.
func New() *Grammar {
	return &Grammar{
		Heading:             regexp.MustCompile(`^(#{1,3})[ \t]+(.+)$`),
		BulletedList:        regexp.MustCompile(`^(\s*)-\s+(.+)$`),
		NumberedList:        regexp.MustCompile(`^(\s*)(\d+)\.\s+(.+)$`),
		NumberedLabel:       regexp.MustCompile(`^(\s*)([a-z]+)\.\s+(.+)$`),
		Todo:                regexp.MustCompile(`^\s*-\s+\[ \](?:\s+(.*))?$`),
		TodoDone:            regexp.MustCompile(`(?i)^\s*-\s+\[x\](?:\s+(.*))?$`),
		Quote:               regexp.MustCompile(`^>\s*(.*)$`),
		Divider:             regexp.MustCompile(`^\s*-{3,}\s*$`),
		Breadcrumb:          regexp.MustCompile(`(?i)^\[breadcrumb\]\s*$`),
		TableOfContents:     regexp.MustCompile(`(?i)^\[toc\](?:\((\w+)\))?\s*$`),
		Caption:             regexp.MustCompile(`^\[caption\]\s+(\S.*)$`),
		Space:               regexp.MustCompile(`(?i)^\[space\]\s*$`),
		Callout:             regexp.MustCompile(`^\[callout\](?:\((.*?)(?:\s+"([^"]+)")?\)|\s+(.*?)(?:\s+"([^"]+)")?)\s*$`),
		Bookmark:            regexp.MustCompile(`^\[bookmark\]\((https?://[^\s)]+)\)\s*$`),
		Embed:               regexp.MustCompile(`^\[embed\]\((https?://[^\s)]+)\)\s*$`),
		Image:               regexp.MustCompile(`^\[image\]\(([^)]+)\)\s*$`),
		Video:               regexp.MustCompile(`^\[video\]\(([^)]+)\)\s*$`),
		Audio:               regexp.MustCompile(`^\[audio\]\(([^)]+)\)\s*$`),
		File:                regexp.MustCompile(`^\[file\]\(([^)]+)\)\s*$`),
		PDF:                 regexp.MustCompile(`^\[pdf\]\(([^)]+)\)\s*$`),
		CodeStart:           regexp.MustCompile("^```([\\w+#.-]*)(?:\\s+\"([^\"]*)\")?\\s*$"),
		CodeEnd:             regexp.MustCompile("^```\\s*$"),
		EquationFence:       regexp.MustCompile(`^\$\$\s*$`),
		EquationInline:      regexp.MustCompile(`^\$\$(.+)\$\$\s*$`),
		ToggleStart:         regexp.MustCompile(`^\+\+\+\s+(.+)$`),
		ToggleEnd:           regexp.MustCompile(`^\+\+\+\s*$`),
		ToggleableHeading:   regexp.MustCompile(`^\+\+\+\s*(#{1,3})\s*([^#\s].*)$`),
		ColumnListStart:     regexp.MustCompile(`(?i)^:::\s*columns\s*$`),
		ColumnStart:         regexp.MustCompile(`(?i)^:::\s*column(?:\s+(0?\.\d+|1(?:\.0*)?))?\s*$`),
		ColumnEnd:           regexp.MustCompile(`^:::\s*$`),
		TableRow:            regexp.MustCompile(`^\s*\|(.+)\|\s*$`),
		TableSeparator:      regexp.MustCompile(`^\s*\|(?:\s*:?-+:?\s*\|)+\s*$`),
		SyncedBlock:         regexp.MustCompile(`^>>>\s+(.+)$`),
		SyncedReference:     regexp.MustCompile(`(?i)^>>>\s+Synced from:\s*([a-f0-9-]+)\s*$`),
		NumberedPlaceholder: regexp.MustCompile(`^(\s*)` + regexp.QuoteMeta(NumberedListPlaceholder) + `\.(.*)$`),

		Inline: InlinePatterns{
			BoldItalic:        regexp.MustCompile(`\*\*\*(.+?)\*\*\*`),
			Bold:              regexp.MustCompile(`\*\*(.+?)\*\*`),
			Underline:         regexp.MustCompile(`__(.+?)__`),
			ItalicStar:        regexp.MustCompile(`\*((?:[^*]|\*\*[^*]+\*\*)+)\*`),
			ItalicUnder:       regexp.MustCompile(`_([^_]+?)_`),
			Strikethrough:     regexp.MustCompile(`~~(.+?)~~`),
			Code:              regexp.MustCompile("`(.+?)`"),
			Link:              regexp.MustCompile(`\[(.+?)\]\((.+?)\)`),
			Equation:          regexp.MustCompile(`\$(.+?)\$`),
			Color:             regexp.MustCompile(`\((\w+):(.+?)\)`),
			PageMention:       regexp.MustCompile(`@page\[([^\]]+)\]`),
			DatabaseMention:   regexp.MustCompile(`@database\[([^\]]+)\]`),
			DataSourceMention: regexp.MustCompile(`@datasource\[([^\]]+)\]`),
			UserMention:       regexp.MustCompile(`@user\[([^\]]+)\]`),
			DateMention:       regexp.MustCompile(`@date\[([^\]]+)\]`),
		},
	}
}
