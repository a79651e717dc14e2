package renderer

import (
	"context"
	"testing"

	"notemark-be/pkg/block"
	"notemark-be/pkg/richtext"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type debugRecorder struct {
	messages []string
}

func (d *debugRecorder) Debug(_, message string, _ map[string]interface{}) {
	d.messages = append(d.messages, message)
}

func text(s string) []richtext.RichText {
	return []richtext.RichText{richtext.FromPlainText(s)}
}

func para(s string) *block.Paragraph {
	return &block.Paragraph{RichText: text(s), Color: richtext.ColorDefault}
}

func render(t *testing.T, blocks ...block.Block) string {
	t.Helper()
	out, err := New(richtext.NewSerializer(richtext.Resolvers{})).Render(context.Background(), blocks)
	require.NoError(t, err)
	return out
}

func TestRender_Blocks(t *testing.T) {
	tests := []struct {
		name   string
		blocks []block.Block
		want   string
	}{
		{"paragraph", []block.Block{para("Hello")}, "Hello"},
		{"empty paragraph", []block.Block{&block.Paragraph{}}, "[space]"},
		{"heading", []block.Block{&block.Heading{Level: 2, RichText: text("Title")}}, "## Title"},
		{"bold heading text", []block.Block{&block.Heading{Level: 1, RichText: []richtext.RichText{
			richtext.Styled("Big", richtext.Annotations{Bold: true}),
		}}}, "# **Big**"},
		{"toggleable heading", []block.Block{&block.Heading{
			Level: 2, RichText: text("Title"), IsToggleable: true,
			Children: []block.Block{para("inside")},
		}}, "+++## Title\n    inside\n+++"},
		{"empty toggle", []block.Block{&block.Toggle{RichText: text("T")}}, "+++ T\n+++"},
		{"toggle", []block.Block{&block.Toggle{
			RichText: text("T"),
			Children: []block.Block{para("a"), para("b")},
		}}, "+++ T\n    a\n    b\n+++"},
		{"bulleted run", []block.Block{
			&block.BulletedListItem{RichText: text("a")},
			&block.BulletedListItem{RichText: text("b"), Children: []block.Block{
				&block.BulletedListItem{RichText: text("c")},
			}},
		}, "- a\n- b\n    - c"},
		{"numbered run", []block.Block{
			&block.NumberedListItem{RichText: text("one")},
			&block.NumberedListItem{RichText: text("two")},
		}, "__NUM__. one\n__NUM__. two"},
		{"todos", []block.Block{
			&block.ToDo{RichText: text("open")},
			&block.ToDo{RichText: text("done"), Checked: true},
		}, "- [ ] open\n- [x] done"},
		{"quote", []block.Block{&block.Quote{RichText: text("line1\nline2")}}, "> line1\n> line2"},
		{"consecutive quotes", []block.Block{
			&block.Quote{RichText: text("a")},
			&block.Quote{RichText: text("b")},
		}, "> a\n\n> b"},
		{"callout", []block.Block{&block.Callout{RichText: text("Note"), Icon: &block.Icon{Emoji: "💡"}}}, `[callout](Note "💡")`},
		{"callout without icon", []block.Block{&block.Callout{RichText: text("Note")}}, "[callout](Note)"},
		{"code", []block.Block{&block.Code{RichText: text("fmt.Println()"), Language: "go"}}, "```go\nfmt.Println()\n```"},
		{"plain text code", []block.Block{&block.Code{RichText: text("x"), Language: "plain text"}}, "```\nx\n```"},
		{"code caption", []block.Block{&block.Code{RichText: text("x"), Language: "go", Captions: text("snippet")}}, "```go\nx\n```\n[caption] snippet"},
		{"equation", []block.Block{&block.Equation{Expression: "E = mc^2"}}, "$$\nE = mc^2\n$$"},
		{"divider", []block.Block{&block.Divider{}}, "---"},
		{"breadcrumb", []block.Block{&block.Breadcrumb{}}, "[breadcrumb]"},
		{"toc", []block.Block{&block.TableOfContents{Color: richtext.ColorDefault}}, "[toc]"},
		{"toc color", []block.Block{&block.TableOfContents{Color: richtext.ColorGray}}, "[toc](gray)"},
		{"bookmark", []block.Block{&block.Bookmark{URL: "https://example.com"}}, "[bookmark](https://example.com)"},
		{"embed", []block.Block{&block.Embed{URL: "https://example.com/e"}}, "[embed](https://example.com/e)"},
		{"image with caption", []block.Block{&block.Image{FileData: block.FileData{
			External: &block.ExternalFile{URL: "https://example.com/a.png"},
			Captions: text("A cat"),
		}}}, "[image](https://example.com/a.png)\n[caption] A cat"},
		{"pdf", []block.Block{&block.PDF{FileData: block.NewExternalFile("https://example.com/d.pdf")}}, "[pdf](https://example.com/d.pdf)"},
		{"synced reference", []block.Block{&block.SyncedBlock{SyncedFrom: &block.SyncedFrom{BlockID: "abc-123"}}}, ">>> Synced from: abc-123"},
		{"synced original", []block.Block{&block.SyncedBlock{Children: []block.Block{para("shared")}}}, "shared"},
		{"child page", []block.Block{&block.ChildPage{ID: "p1", Title: "Roadmap"}}, "@page[Roadmap]"},
		{"child database", []block.Block{&block.ChildDatabase{ID: "d1"}}, "@database[d1]"},
		{"mixed top level", []block.Block{
			para("intro"),
			&block.BulletedListItem{RichText: text("a")},
			para("outro"),
		}, "intro\n\n- a\n\noutro"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(t, tt.blocks...))
		})
	}
}

func TestRender_Columns(t *testing.T) {
	list := &block.ColumnList{Columns: []*block.Column{
		{WidthRatio: 0.5, Children: []block.Block{para("L")}},
		{Children: []block.Block{para("R1"), para("R2")}},
	}}
	want := "::: columns\n::: column 0.5\nL\n:::\n::: column\nR1\nR2\n:::\n:::"
	assert.Equal(t, want, render(t, list))
}

func TestRender_Table(t *testing.T) {
	table := &block.Table{
		Width:           2,
		HasColumnHeader: true,
		Rows: []*block.TableRow{
			{Cells: [][]richtext.RichText{text("Name"), text("Score")}},
			{Cells: [][]richtext.RichText{text("Ann"), text("9")}},
			{Cells: [][]richtext.RichText{text("日本")}},
		},
	}
	want := "| Name | Score |\n" +
		"|------|-------|\n" +
		"| Ann  |   9   |\n" +
		"| 日本 |       |"
	assert.Equal(t, want, render(t, table))

	table.HasColumnHeader = false
	table.Rows = table.Rows[:1]
	assert.Equal(t, "| Name | Score |", render(t, table))
}

func TestRender_TableMinimumWidth(t *testing.T) {
	table := &block.Table{Width: 1, Rows: []*block.TableRow{
		{Cells: [][]richtext.RichText{text("a")}},
	}}
	assert.Equal(t, "|  a  |", render(t, table))
}

func TestRender_UnsupportedIsSkipped(t *testing.T) {
	log := &debugRecorder{}
	r := New(richtext.NewSerializer(richtext.Resolvers{}), WithLogger(log))
	out, err := r.Render(context.Background(), []block.Block{
		para("a"),
		&block.Unsupported{RawType: "link_preview"},
		para("b"),
	})
	require.NoError(t, err)
	assert.Equal(t, "a\n\nb", out)
	assert.Len(t, log.messages, 1)
}

func TestRender_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(richtext.NewSerializer(richtext.Resolvers{})).Render(ctx, []block.Block{para("a")})
	assert.ErrorIs(t, err, context.Canceled)
}
