package builder

import (
	"context"
	"testing"

	"notemark-be/pkg/block"
	"notemark-be/pkg/converter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Output(t *testing.T) {
	tests := []struct {
		name string
		b    *Builder
		want string
	}{
		{"heading", New().H2("Title"), "## Title"},
		{"heading level clamped", New().Heading(6, "x"), "### x"},
		{"bullets", New().BulletedList("a", "b"), "- a\n- b"},
		{"numbers", New().NumberedList("a", "b"), "1. a\n2. b"},
		{"todo", New().Todo("x", true), "- [x] x"},
		{"quote", New().Quote("a\nb"), "> a\n> b"},
		{"callout default emoji", New().Callout("Note", ""), `[callout](Note "💡")`},
		{"toggle", New().Toggle("T", func(b *Builder) { b.Paragraph("in") }), "+++ T\n    in\n+++"},
		{"empty toggle", New().Toggle("T", nil), "+++ T\n+++"},
		{"image caption", New().Image("https://x/a.png", "cap"), "[image](https://x/a.png)\n[caption] cap"},
		{"table", New().Table([]string{"A", "B"}, [][]string{{"1", "2"}}), "| A | B |\n| --- | --- |\n| 1 | 2 |"},
		{"joined", New().H1("T").Paragraph("p"), "# T\n\np"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.b.Build())
		})
	}
}

func TestBuilder_ParsesBack(t *testing.T) {
	md := New().
		H1("Report").
		Paragraph("Intro with **bold**").
		BulletedList("one", "two").
		NumberedList("first", "second").
		Todo("ship", false).
		Quote("wise words").
		Callout("Heads up", "⚠️").
		Toggle("More", func(b *Builder) { b.Paragraph("hidden").BulletedList("x") }).
		ToggleableHeading(2, "Section", func(b *Builder) { b.Paragraph("body") }).
		Code("go", "fmt.Println(1)").
		Equation("a^2 + b^2").
		Divider().
		TableOfContents().
		Breadcrumb().
		Bookmark("https://example.com").
		Embed("https://example.com/e").
		Image("https://example.com/a.png", "pic").
		Video("https://example.com/v.mp4", "").
		Audio("https://example.com/a.mp3", "").
		File("https://example.com/f.zip", "").
		PDF("https://example.com/d.pdf", "").
		Table([]string{"A", "B"}, [][]string{{"1", "2"}}).
		Columns(
			Column{Ratio: 0.5, Content: func(b *Builder) { b.Paragraph("left") }},
			Column{Ratio: 0.5, Content: func(b *Builder) { b.Paragraph("right") }},
		).
		Space().
		Build()

	blocks, err := converter.New().MarkdownToBlocks(context.Background(), md)
	require.NoError(t, err)

	var types []block.Type
	for _, b := range blocks {
		types = append(types, b.Type())
	}
	assert.Equal(t, []block.Type{
		block.TypeHeading1,
		block.TypeParagraph,
		block.TypeBulletedListItem, block.TypeBulletedListItem,
		block.TypeNumberedListItem, block.TypeNumberedListItem,
		block.TypeToDo,
		block.TypeQuote,
		block.TypeCallout,
		block.TypeToggle,
		block.TypeHeading2,
		block.TypeCode,
		block.TypeEquation,
		block.TypeDivider,
		block.TypeTableOfContents,
		block.TypeBreadcrumb,
		block.TypeBookmark,
		block.TypeEmbed,
		block.TypeImage,
		block.TypeVideo,
		block.TypeAudio,
		block.TypeFile,
		block.TypePDF,
		block.TypeTable,
		block.TypeColumnList,
		block.TypeParagraph,
	}, types)

	toggle := blocks[9].(*block.Toggle)
	assert.Len(t, toggle.Children, 2)
	assert.True(t, blocks[10].(*block.Heading).IsToggleable)
}
