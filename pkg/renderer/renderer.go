// Package renderer turns a block tree back into dialect markdown.
package renderer

import (
	"context"
	"strings"

	"notemark-be/pkg/block"
	"notemark-be/pkg/grammar"
	"notemark-be/pkg/richtext"
)

const logModule = "MarkdownRenderer"

// Logger is the subset of the application logger the renderer needs.
type Logger interface {
	Debug(module, message string, details map[string]interface{})
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}

// BlockRenderer is one link of the rendering chain.
type BlockRenderer interface {
	CanRender(b block.Block) bool
	Render(c *Context, b block.Block) (string, error)
}

// Context carries the state of one render call down the tree.
type Context struct {
	ctx      context.Context
	renderer *Renderer
	depth    int
}

func (c *Context) Context() context.Context {
	return c.ctx
}

// Depth is the nesting level of the block being rendered.
func (c *Context) Depth() int {
	return c.depth
}

// RichText serializes inline runs.
func (c *Context) RichText(runs []richtext.RichText) string {
	return c.renderer.rich.Serialize(c.ctx, runs)
}

// Children renders blocks one level deeper without indenting them.
func (c *Context) Children(children []block.Block) (string, error) {
	return c.renderer.renderList(c.ctx, children, c.depth+1)
}

// IndentedChildren renders blocks one level deeper, indented by one
// nesting unit.
func (c *Context) IndentedChildren(children []block.Block) (string, error) {
	out, err := c.Children(children)
	if err != nil || out == "" {
		return out, err
	}
	return indent(out), nil
}

type Renderer struct {
	rich  *richtext.Serializer
	log   Logger
	chain []BlockRenderer
}

type Option func(*Renderer)

func WithLogger(l Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.log = l
		}
	}
}

func New(rich *richtext.Serializer, opts ...Option) *Renderer {
	r := &Renderer{rich: rich, log: nopLogger{}}
	for _, opt := range opts {
		opt(r)
	}

	r.chain = []BlockRenderer{
		&toggleableHeadingRenderer{},
		&headingRenderer{},
		&paragraphRenderer{},
		&bulletedListRenderer{},
		&numberedListRenderer{},
		&todoRenderer{},
		&quoteRenderer{},
		&calloutRenderer{},
		&toggleRenderer{},
		&columnListRenderer{},
		&columnRenderer{},
		&tableRenderer{},
		&codeRenderer{},
		&equationRenderer{},
		&dividerRenderer{},
		&breadcrumbRenderer{},
		&tableOfContentsRenderer{},
		&bookmarkRenderer{},
		&embedRenderer{},
		&mediaRenderer{},
		&syncedBlockRenderer{},
		&childPageRenderer{},
		&childDatabaseRenderer{},
	}
	return r
}

// Render converts top-level blocks into markdown. Numbered list items keep
// their placeholder marker.
func (r *Renderer) Render(ctx context.Context, blocks []block.Block) (string, error) {
	return r.renderList(ctx, blocks, 0)
}

func (r *Renderer) renderList(ctx context.Context, blocks []block.Block, depth int) (string, error) {
	var sb strings.Builder
	var prev block.Block
	for _, b := range blocks {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		out, err := r.renderBlock(&Context{ctx: ctx, renderer: r, depth: depth}, b)
		if err != nil {
			return "", err
		}
		if out == "" {
			continue
		}
		if prev != nil {
			sb.WriteString(separator(prev, b, depth))
		}
		sb.WriteString(out)
		prev = b
	}
	return sb.String(), nil
}

func (r *Renderer) renderBlock(c *Context, b block.Block) (string, error) {
	if b == nil {
		return "", nil
	}
	for _, br := range r.chain {
		if !br.CanRender(b) {
			continue
		}
		out, err := br.Render(c, b)
		if err != nil {
			return "", err
		}
		return withCaption(c, b, out), nil
	}
	r.log.Debug(logModule, "Skipping unsupported block", map[string]interface{}{
		"type": string(b.Type()),
	})
	return "", nil
}

func withCaption(c *Context, b block.Block, out string) string {
	captioner, ok := b.(block.Captioner)
	if !ok || out == "" || len(captioner.Caption()) == 0 {
		return out
	}
	text := c.RichText(captioner.Caption())
	if text == "" {
		return out
	}
	return out + "\n" + grammar.CaptionMarker + " " + text
}

// separator keeps list runs tight. Quotes and tables are always split by a
// blank line so they re-parse as separate blocks.
func separator(prev, next block.Block, depth int) string {
	if prev.Type() == next.Type() {
		switch prev.(type) {
		case *block.BulletedListItem, *block.NumberedListItem, *block.ToDo:
			return "\n"
		case *block.Quote, *block.Table:
			return "\n\n"
		}
	}
	if depth > 0 {
		return "\n"
	}
	return "\n\n"
}

func indent(text string) string {
	pad := strings.Repeat(" ", grammar.SpacesPerNestingLevel)
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = pad + l
		}
	}
	return strings.Join(lines, "\n")
}

// joinNonEmpty joins parts with newlines, skipping empty ones.
func joinNonEmpty(parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n")
}
