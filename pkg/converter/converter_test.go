package converter

import (
	"context"
	"strings"
	"testing"

	"notemark-be/pkg/block"
	"notemark-be/pkg/parser"
	"notemark-be/pkg/preprocess"
	"notemark-be/pkg/richtext"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticNames map[string]string

func (s staticNames) ResolveNameToID(_ context.Context, name string) (string, error) {
	return s[name], nil
}

func (s staticNames) ResolveIDToName(_ context.Context, id string) (string, error) {
	for name, v := range s {
		if v == id {
			return name, nil
		}
	}
	return "", nil
}

func TestMarkdownToBlocks_Empty(t *testing.T) {
	blocks, err := New().MarkdownToBlocks(context.Background(), "  \n ")
	require.NoError(t, err)
	assert.Nil(t, blocks)
}

func TestMarkdownToBlocks_ColumnsScenario(t *testing.T) {
	input := "::: columns\n::: column 0.5\nLeft\n:::\n::: column 0.5\nRight\n:::\n:::"
	blocks, err := New().MarkdownToBlocks(context.Background(), input)
	require.NoError(t, err)
	require.Len(t, blocks, 1)

	list := blocks[0].(*block.ColumnList)
	require.Len(t, list.Columns, 2)
	for i, want := range []string{"Left", "Right"} {
		col := list.Columns[i]
		assert.InDelta(t, 0.5, col.WidthRatio, 1e-9)
		require.Len(t, col.Children, 1)
		assert.Equal(t, want, richtext.Plain(col.Children[0].(*block.Paragraph).RichText))
	}
}

func TestMarkdownToBlocks_ColumnErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"single column", "::: columns\n::: column\nonly\n:::\n:::", preprocess.ErrInsufficientColumns},
		{"bad ratios", "::: columns\n::: column 0.5\na\n:::\n::: column 0.3\nb\n:::\n:::", preprocess.ErrInvalidColumnRatioSum},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().MarkdownToBlocks(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestMarkdownToBlocks_NormalizesIndentation(t *testing.T) {
	blocks, err := New().MarkdownToBlocks(context.Background(), "- parent\n   - child")
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Len(t, blocks[0].(*block.BulletedListItem).Children, 1)
}

func TestMarkdownToBlocks_SplitsLongRuns(t *testing.T) {
	blocks, err := New(WithMaxTextLength(10)).MarkdownToBlocks(context.Background(), strings.Repeat("x", 25))
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Len(t, blocks[0].(*block.Paragraph).RichText, 3)
}

func TestMarkdownToBlocks_MaxDepth(t *testing.T) {
	_, err := New(WithMaxDepth(1)).MarkdownToBlocks(context.Background(), "- a\n    - b\n        - c")
	assert.ErrorIs(t, err, parser.ErrNestingTooDeep)
}

func TestBlocksToMarkdown_Numbering(t *testing.T) {
	blocks := []block.Block{
		&block.NumberedListItem{RichText: text("top"), Children: []block.Block{
			&block.NumberedListItem{RichText: text("a"), Children: []block.Block{
				&block.NumberedListItem{RichText: text("i")},
			}},
		}},
		&block.NumberedListItem{RichText: text("top2")},
	}
	out, err := New().BlocksToMarkdown(context.Background(), blocks)
	require.NoError(t, err)
	assert.Equal(t, "1. top\n    a. a\n        i. i\n2. top2", out)
}

func text(s string) []richtext.RichText {
	return []richtext.RichText{richtext.FromPlainText(s)}
}

func TestRoundTrip_Markdown(t *testing.T) {
	docs := []string{
		"# Title",
		"Hello **bold** and *italic* with `code`",
		"- a\n- b\n    - c",
		"1. one\n2. two\n    a. nested",
		"- [ ] open\n- [x] done",
		"> quoted\n> twice",
		`[callout](Careful "⚠️")`,
		"+++ Details\n    inside\n+++",
		"+++## Section\n    body\n+++",
		"```go\nfmt.Println(1)\n```\n[caption] snippet",
		"$$\nE = mc^2\n$$",
		"---",
		"[toc](gray)",
		"[breadcrumb]",
		"[bookmark](https://example.com)",
		"[image](https://example.com/a.png)\n[caption] A cat",
		"| Name | Score |\n|------|-------|\n| Ann  |   9   |",
		"::: columns\n::: column 0.5\nLeft\n:::\n::: column 0.5\nRight\n:::\n:::",
		">>> Synced from: 1a2b3c4d-0000-0000-0000-000000000000",
		"[space]",
		"# Title\n\nparagraph\n\n- item",
	}

	c := New()
	for _, doc := range docs {
		t.Run(doc, func(t *testing.T) {
			blocks, err := c.MarkdownToBlocks(context.Background(), doc)
			require.NoError(t, err)
			out, err := c.BlocksToMarkdown(context.Background(), blocks)
			require.NoError(t, err)
			assert.Equal(t, doc, out)
		})
	}
}

func TestRoundTrip_Blocks(t *testing.T) {
	original := []block.Block{
		&block.Heading{Level: 2, RichText: text("Plan"), Color: richtext.ColorDefault},
		&block.Toggle{RichText: text("More"), Color: richtext.ColorDefault, Children: []block.Block{
			&block.BulletedListItem{RichText: text("one"), Color: richtext.ColorDefault},
			&block.BulletedListItem{RichText: text("two"), Color: richtext.ColorDefault},
		}},
		&block.Equation{Expression: `a \\ b`},
	}

	c := New()
	md, err := c.BlocksToMarkdown(context.Background(), original)
	require.NoError(t, err)
	parsed, err := c.MarkdownToBlocks(context.Background(), md)
	require.NoError(t, err)

	require.Len(t, parsed, 3)
	assert.Equal(t, "Plan", richtext.Plain(parsed[0].(*block.Heading).RichText))
	toggle := parsed[1].(*block.Toggle)
	require.Len(t, toggle.Children, 2)
	assert.Equal(t, "two", richtext.Plain(toggle.Children[1].(*block.BulletedListItem).RichText))
	assert.Equal(t, `a \\ b`, parsed[2].(*block.Equation).Expression)
}

func TestRoundTrip_Mentions(t *testing.T) {
	names := staticNames{"Roadmap": "1a2b3c4d-1111-2222-3333-444455556666"}
	c := New(WithResolvers(richtext.Resolvers{Page: names}))

	blocks, err := c.MarkdownToBlocks(context.Background(), "See @page[Roadmap]")
	require.NoError(t, err)
	runs := blocks[0].(*block.Paragraph).RichText
	require.Len(t, runs, 2)
	require.NotNil(t, runs[1].Mention)
	assert.Equal(t, "1a2b3c4d-1111-2222-3333-444455556666", runs[1].Mention.TargetID())

	out, err := c.BlocksToMarkdown(context.Background(), blocks)
	require.NoError(t, err)
	assert.Equal(t, "See @page[Roadmap]", out)
}
