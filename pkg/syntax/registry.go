package syntax

import (
	"fmt"
	"regexp"

	"notemark-be/pkg/grammar"
)

// Key identifies a syntax definition.
type Key string

const (
	KeyParagraph         Key = "paragraph"
	KeyHeading           Key = "heading"
	KeyBulletedList      Key = "bulleted_list"
	KeyNumberedList      Key = "numbered_list"
	KeyTodo              Key = "todo"
	KeyTodoDone          Key = "todo_done"
	KeyQuote             Key = "quote"
	KeyCallout           Key = "callout"
	KeyToggle            Key = "toggle"
	KeyToggleableHeading Key = "toggleable_heading"
	KeyColumnList        Key = "column_list"
	KeyColumn            Key = "column"
	KeyTable             Key = "table"
	KeyTableSeparator    Key = "table_separator"
	KeyCode              Key = "code"
	KeyEquation          Key = "equation"
	KeyDivider           Key = "divider"
	KeyBreadcrumb        Key = "breadcrumb"
	KeyTableOfContents   Key = "table_of_contents"
	KeyBookmark          Key = "bookmark"
	KeyEmbed             Key = "embed"
	KeyImage             Key = "image"
	KeyVideo             Key = "video"
	KeyAudio             Key = "audio"
	KeyFile              Key = "file"
	KeyPDF               Key = "pdf"
	KeySyncedBlock       Key = "synced_block"
	KeyCaption           Key = "caption"
	KeySpace             Key = "space"
)

// Definition describes how one block kind is delimited.
type Definition struct {
	StartDelimiter string
	EndDelimiter   string
	Pattern        *regexp.Regexp
	EndPattern     *regexp.Regexp
}

// Registry is an immutable lookup of syntax definitions.
type Registry struct {
	defs map[Key]Definition
	keys []Key
}

type builder struct {
	defs map[Key]Definition
	keys []Key
}

func (b *builder) add(k Key, d Definition) *builder {
	b.defs[k] = d
	b.keys = append(b.keys, k)
	return b
}

func (b *builder) build() *Registry {
	return &Registry{defs: b.defs, keys: b.keys}
}

// NewRegistry builds the registry from the compiled grammar.
func NewRegistry(g *grammar.Grammar) *Registry {
	b := &builder{defs: make(map[Key]Definition)}
	return b.
		add(KeyParagraph, Definition{Pattern: regexp.MustCompile(`^\S.*$`)}).
		add(KeyHeading, Definition{StartDelimiter: grammar.HeadingPrefix, Pattern: g.Heading}).
		add(KeyBulletedList, Definition{StartDelimiter: grammar.BulletedListPrefix, Pattern: g.BulletedList}).
		add(KeyNumberedList, Definition{StartDelimiter: "1. ", Pattern: g.NumberedList}).
		add(KeyTodo, Definition{StartDelimiter: grammar.TodoPrefix, Pattern: g.Todo}).
		add(KeyTodoDone, Definition{StartDelimiter: grammar.TodoDonePrefix, Pattern: g.TodoDone}).
		add(KeyQuote, Definition{StartDelimiter: grammar.QuotePrefix, Pattern: g.Quote}).
		add(KeyCallout, Definition{StartDelimiter: grammar.CalloutMarker, Pattern: g.Callout}).
		add(KeyToggle, Definition{StartDelimiter: grammar.ToggleDelimiter, EndDelimiter: grammar.ToggleDelimiter, Pattern: g.ToggleStart, EndPattern: g.ToggleEnd}).
		add(KeyToggleableHeading, Definition{StartDelimiter: grammar.ToggleDelimiter, EndDelimiter: grammar.ToggleDelimiter, Pattern: g.ToggleableHeading, EndPattern: g.ToggleEnd}).
		add(KeyColumnList, Definition{StartDelimiter: grammar.ColumnDelimiter + " " + grammar.ColumnListKeyword, EndDelimiter: grammar.ColumnDelimiter, Pattern: g.ColumnListStart, EndPattern: g.ColumnEnd}).
		add(KeyColumn, Definition{StartDelimiter: grammar.ColumnDelimiter + " " + grammar.ColumnKeyword, EndDelimiter: grammar.ColumnDelimiter, Pattern: g.ColumnStart, EndPattern: g.ColumnEnd}).
		add(KeyTable, Definition{StartDelimiter: grammar.TableDelimiter, EndDelimiter: grammar.TableDelimiter, Pattern: g.TableRow}).
		add(KeyTableSeparator, Definition{StartDelimiter: grammar.TableDelimiter, Pattern: g.TableSeparator}).
		add(KeyCode, Definition{StartDelimiter: grammar.CodeFence, EndDelimiter: grammar.CodeFence, Pattern: g.CodeStart, EndPattern: g.CodeEnd}).
		add(KeyEquation, Definition{StartDelimiter: grammar.EquationDelimiter, EndDelimiter: grammar.EquationDelimiter, Pattern: g.EquationFence, EndPattern: g.EquationFence}).
		add(KeyDivider, Definition{StartDelimiter: grammar.DividerMarker, Pattern: g.Divider}).
		add(KeyBreadcrumb, Definition{StartDelimiter: grammar.BreadcrumbMarker, Pattern: g.Breadcrumb}).
		add(KeyTableOfContents, Definition{StartDelimiter: grammar.TableOfContentsMark, Pattern: g.TableOfContents}).
		add(KeyBookmark, Definition{StartDelimiter: grammar.BookmarkMarker, Pattern: g.Bookmark}).
		add(KeyEmbed, Definition{StartDelimiter: grammar.EmbedMarker, Pattern: g.Embed}).
		add(KeyImage, Definition{StartDelimiter: grammar.ImageMarker, Pattern: g.Image}).
		add(KeyVideo, Definition{StartDelimiter: grammar.VideoMarker, Pattern: g.Video}).
		add(KeyAudio, Definition{StartDelimiter: grammar.AudioMarker, Pattern: g.Audio}).
		add(KeyFile, Definition{StartDelimiter: grammar.FileMarker, Pattern: g.File}).
		add(KeyPDF, Definition{StartDelimiter: grammar.PDFMarker, Pattern: g.PDF}).
		add(KeySyncedBlock, Definition{StartDelimiter: grammar.SyncedBlockPrefix, Pattern: g.SyncedBlock}).
		add(KeyCaption, Definition{StartDelimiter: grammar.CaptionMarker, Pattern: g.Caption}).
		add(KeySpace, Definition{StartDelimiter: grammar.SpaceMarker, Pattern: g.Space}).
		build()
}

// Get returns the definition for k. A missing key is a programming error.
func (r *Registry) Get(k Key) Definition {
	d, ok := r.defs[k]
	if !ok {
		panic(fmt.Sprintf("syntax: no definition registered for %q", k))
	}
	return d
}

// Keys lists the registered keys in registration order.
func (r *Registry) Keys() []Key {
	out := make([]Key, len(r.keys))
	copy(out, r.keys)
	return out
}
