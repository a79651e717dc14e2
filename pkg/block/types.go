package block

import "notemark-be/pkg/richtext"

// Type is the discriminant of a block.
type Type string

const (
	TypeParagraph        Type = "paragraph"
	TypeHeading1         Type = "heading_1"
	TypeHeading2         Type = "heading_2"
	TypeHeading3         Type = "heading_3"
	TypeBulletedListItem Type = "bulleted_list_item"
	TypeNumberedListItem Type = "numbered_list_item"
	TypeToDo             Type = "to_do"
	TypeQuote            Type = "quote"
	TypeCallout          Type = "callout"
	TypeToggle           Type = "toggle"
	TypeColumnList       Type = "column_list"
	TypeColumn           Type = "column"
	TypeTable            Type = "table"
	TypeTableRow         Type = "table_row"
	TypeCode             Type = "code"
	TypeEquation         Type = "equation"
	TypeDivider          Type = "divider"
	TypeBreadcrumb       Type = "breadcrumb"
	TypeTableOfContents  Type = "table_of_contents"
	TypeBookmark         Type = "bookmark"
	TypeEmbed            Type = "embed"
	TypeImage            Type = "image"
	TypeVideo            Type = "video"
	TypeAudio            Type = "audio"
	TypeFile             Type = "file"
	TypePDF              Type = "pdf"
	TypeSyncedBlock      Type = "synced_block"
	TypeChildPage        Type = "child_page"
	TypeChildDatabase    Type = "child_database"
)

// Block is implemented only by the payload types of this package.
type Block interface {
	Type() Type
	isBlock()
}

// Parent is a block that owns child blocks.
type Parent interface {
	Block
	ChildBlocks() []Block
	SetChildBlocks(children []Block)
}

// Captioner is a block that carries a caption.
type Captioner interface {
	Block
	Caption() []richtext.RichText
	SetCaption(caption []richtext.RichText)
}

type Paragraph struct {
	RichText []richtext.RichText
	Color    richtext.Color
}

type Heading struct {
	Level        int
	RichText     []richtext.RichText
	Color        richtext.Color
	IsToggleable bool
	Children     []Block
}

type BulletedListItem struct {
	RichText []richtext.RichText
	Color    richtext.Color
	Children []Block
}

type NumberedListItem struct {
	RichText []richtext.RichText
	Color    richtext.Color
	Children []Block
}

type ToDo struct {
	RichText []richtext.RichText
	Checked  bool
	Color    richtext.Color
	Children []Block
}

type Quote struct {
	RichText []richtext.RichText
	Color    richtext.Color
	Children []Block
}

// Icon is either an emoji or an external image.
type Icon struct {
	Emoji       string
	ExternalURL string
}

type Callout struct {
	RichText []richtext.RichText
	Icon     *Icon
	Color    richtext.Color
	Children []Block
}

type Toggle struct {
	RichText []richtext.RichText
	Color    richtext.Color
	Children []Block
}

type ColumnList struct {
	Columns []*Column
}

// Column is a vertical section of a column list. WidthRatio is zero when
// unset.
type Column struct {
	WidthRatio float64
	Children   []Block
}

type Table struct {
	Width           int
	HasColumnHeader bool
	HasRowHeader    bool
	Rows            []*TableRow
}

type TableRow struct {
	Cells [][]richtext.RichText
}

type Code struct {
	RichText []richtext.RichText
	Language string
	Captions []richtext.RichText
}

type Equation struct {
	Expression string
}

type Divider struct{}

type Breadcrumb struct{}

type TableOfContents struct {
	Color richtext.Color
}

type Bookmark struct {
	URL      string
	Captions []richtext.RichText
}

type Embed struct {
	URL      string
	Captions []richtext.RichText
}

// ExternalFile points at a URL outside the workspace.
type ExternalFile struct {
	URL string
}

// HostedFile is uploaded content with a signed, expiring URL.
type HostedFile struct {
	URL        string
	ExpiryTime string
}

// FileData is the shared payload of file based blocks.
type FileData struct {
	External *ExternalFile
	Hosted   *HostedFile
	Captions []richtext.RichText
	Name     string
}

// URL prefers the external location over the hosted one.
func (f *FileData) URL() string {
	if f.External != nil && f.External.URL != "" {
		return f.External.URL
	}
	if f.Hosted != nil {
		return f.Hosted.URL
	}
	return ""
}

func (f *FileData) Caption() []richtext.RichText     { return f.Captions }
func (f *FileData) SetCaption(c []richtext.RichText) { f.Captions = c }

// NewExternalFile builds file data for a URL.
func NewExternalFile(url string) FileData {
	return FileData{External: &ExternalFile{URL: url}}
}

type Image struct{ FileData }
type Video struct{ FileData }
type Audio struct{ FileData }
type File struct{ FileData }
type PDF struct{ FileData }

// SyncedFrom is set on references to an original synced block.
type SyncedFrom struct {
	BlockID string
}

type SyncedBlock struct {
	SyncedFrom *SyncedFrom
	Children   []Block
}

type ChildPage struct {
	ID    string
	Title string
}

type ChildDatabase struct {
	ID    string
	Title string
}

// Unsupported keeps the discriminant of a block kind this package does not
// model.
type Unsupported struct {
	RawType string
}

func (*Paragraph) Type() Type        { return TypeParagraph }
func (*BulletedListItem) Type() Type { return TypeBulletedListItem }
func (*NumberedListItem) Type() Type { return TypeNumberedListItem }
func (*ToDo) Type() Type             { return TypeToDo }
func (*Quote) Type() Type            { return TypeQuote }
func (*Callout) Type() Type          { return TypeCallout }
func (*Toggle) Type() Type           { return TypeToggle }
func (*ColumnList) Type() Type       { return TypeColumnList }
func (*Column) Type() Type           { return TypeColumn }
func (*Table) Type() Type            { return TypeTable }
func (*TableRow) Type() Type         { return TypeTableRow }
func (*Code) Type() Type             { return TypeCode }
func (*Equation) Type() Type         { return TypeEquation }
func (*Divider) Type() Type          { return TypeDivider }
func (*Breadcrumb) Type() Type       { return TypeBreadcrumb }
func (*TableOfContents) Type() Type  { return TypeTableOfContents }
func (*Bookmark) Type() Type         { return TypeBookmark }
func (*Embed) Type() Type            { return TypeEmbed }
func (*Image) Type() Type            { return TypeImage }
func (*Video) Type() Type            { return TypeVideo }
func (*Audio) Type() Type            { return TypeAudio }
func (*File) Type() Type             { return TypeFile }
func (*PDF) Type() Type              { return TypePDF }
func (*SyncedBlock) Type() Type      { return TypeSyncedBlock }
func (*ChildPage) Type() Type        { return TypeChildPage }
func (*ChildDatabase) Type() Type    { return TypeChildDatabase }
func (u *Unsupported) Type() Type    { return Type(u.RawType) }

func (h *Heading) Type() Type {
	switch h.Level {
	case 2:
		return TypeHeading2
	case 3:
		return TypeHeading3
	}
	return TypeHeading1
}

func (*Paragraph) isBlock()        {}
func (*Heading) isBlock()          {}
func (*BulletedListItem) isBlock() {}
func (*NumberedListItem) isBlock() {}
func (*ToDo) isBlock()             {}
func (*Quote) isBlock()            {}
func (*Callout) isBlock()          {}
func (*Toggle) isBlock()           {}
func (*ColumnList) isBlock()       {}
func (*Column) isBlock()           {}
func (*Table) isBlock()            {}
func (*TableRow) isBlock()         {}
func (*Code) isBlock()             {}
func (*Equation) isBlock()         {}
func (*Divider) isBlock()          {}
func (*Breadcrumb) isBlock()       {}
func (*TableOfContents) isBlock()  {}
func (*Bookmark) isBlock()         {}
func (*Embed) isBlock()            {}
func (*Image) isBlock()            {}
func (*Video) isBlock()            {}
func (*Audio) isBlock()            {}
func (*File) isBlock()             {}
func (*PDF) isBlock()              {}
func (*SyncedBlock) isBlock()      {}
func (*ChildPage) isBlock()        {}
func (*ChildDatabase) isBlock()    {}
func (*Unsupported) isBlock()      {}

func (b *Code) Caption() []richtext.RichText         { return b.Captions }
func (b *Code) SetCaption(c []richtext.RichText)     { b.Captions = c }
func (b *Bookmark) Caption() []richtext.RichText     { return b.Captions }
func (b *Bookmark) SetCaption(c []richtext.RichText) { b.Captions = c }
func (b *Embed) Caption() []richtext.RichText        { return b.Captions }
func (b *Embed) SetCaption(c []richtext.RichText)    { b.Captions = c }

func (b *Heading) ChildBlocks() []Block              { return b.Children }
func (b *Heading) SetChildBlocks(c []Block)          { b.Children = c }
func (b *BulletedListItem) ChildBlocks() []Block     { return b.Children }
func (b *BulletedListItem) SetChildBlocks(c []Block) { b.Children = c }
func (b *NumberedListItem) ChildBlocks() []Block     { return b.Children }
func (b *NumberedListItem) SetChildBlocks(c []Block) { b.Children = c }
func (b *ToDo) ChildBlocks() []Block                 { return b.Children }
func (b *ToDo) SetChildBlocks(c []Block)             { b.Children = c }
func (b *Quote) ChildBlocks() []Block                { return b.Children }
func (b *Quote) SetChildBlocks(c []Block)            { b.Children = c }
func (b *Callout) ChildBlocks() []Block              { return b.Children }
func (b *Callout) SetChildBlocks(c []Block)          { b.Children = c }
func (b *Toggle) ChildBlocks() []Block               { return b.Children }
func (b *Toggle) SetChildBlocks(c []Block)           { b.Children = c }
func (b *Column) ChildBlocks() []Block               { return b.Children }
func (b *Column) SetChildBlocks(c []Block)           { b.Children = c }
func (b *SyncedBlock) ChildBlocks() []Block          { return b.Children }
func (b *SyncedBlock) SetChildBlocks(c []Block)      { b.Children = c }

// ChildBlocks exposes the columns as blocks.
func (b *ColumnList) ChildBlocks() []Block {
	out := make([]Block, len(b.Columns))
	for i, c := range b.Columns {
		out[i] = c
	}
	return out
}

// SetChildBlocks keeps only column children.
func (b *ColumnList) SetChildBlocks(children []Block) {
	b.Columns = b.Columns[:0]
	for _, c := range children {
		if col, ok := c.(*Column); ok {
			b.Columns = append(b.Columns, col)
		}
	}
}

// ChildBlocks exposes the rows as blocks.
func (b *Table) ChildBlocks() []Block {
	out := make([]Block, len(b.Rows))
	for i, r := range b.Rows {
		out[i] = r
	}
	return out
}

// SetChildBlocks keeps only row children.
func (b *Table) SetChildBlocks(children []Block) {
	b.Rows = b.Rows[:0]
	for _, c := range children {
		if row, ok := c.(*TableRow); ok {
			b.Rows = append(b.Rows, row)
		}
	}
}
