// Package converter is the entry point for both conversion directions.
package converter

import (
	"context"
	"strings"

	"notemark-be/pkg/block"
	"notemark-be/pkg/grammar"
	"notemark-be/pkg/numbering"
	"notemark-be/pkg/parser"
	"notemark-be/pkg/preprocess"
	"notemark-be/pkg/renderer"
	"notemark-be/pkg/richtext"
	"notemark-be/pkg/syntax"
)

// Logger is satisfied by the application logger.
type Logger interface {
	Debug(module, message string, details map[string]interface{})
	Warn(module, message string, details map[string]interface{})
}

type options struct {
	resolvers     richtext.Resolvers
	logger        Logger
	indentUnit    int
	maxDepth      int
	maxTextLength int
}

type Option func(*options)

func WithResolvers(r richtext.Resolvers) Option {
	return func(o *options) { o.resolvers = r }
}

func WithLogger(l Logger) Option {
	return func(o *options) { o.logger = l }
}

func WithIndentUnit(n int) Option {
	return func(o *options) { o.indentUnit = n }
}

func WithMaxDepth(n int) Option {
	return func(o *options) { o.maxDepth = n }
}

// WithMaxTextLength caps the content length of a single rich text run.
// Longer runs are split.
func WithMaxTextLength(n int) Option {
	return func(o *options) { o.maxTextLength = n }
}

// Converter is safe for concurrent use. All per-call state lives in the
// parse and render contexts.
type Converter struct {
	prompts    *syntax.PromptRegistry
	normalizer *preprocess.IndentationNormalizer
	validator  *preprocess.ColumnsValidator
	parser     *parser.Parser
	renderer   *renderer.Renderer
	numbering  *numbering.Processor
	maxLength  int
}

func New(opts ...Option) *Converter {
	o := options{
		indentUnit:    grammar.SpacesPerNestingLevel,
		maxDepth:      parser.DefaultMaxDepth,
		maxTextLength: richtext.MaxContentLength,
	}
	for _, opt := range opts {
		opt(&o)
	}

	g := grammar.Default()
	registry := syntax.NewRegistry(g)

	parserOpts := []parser.Option{parser.WithMaxDepth(o.maxDepth)}
	var rendererOpts []renderer.Option
	if o.logger != nil {
		parserOpts = append(parserOpts, parser.WithLogger(o.logger))
		rendererOpts = append(rendererOpts, renderer.WithLogger(o.logger))
	}

	return &Converter{
		prompts:    syntax.NewPromptRegistry(registry),
		normalizer: preprocess.NewIndentationNormalizer(o.indentUnit),
		validator:  preprocess.NewColumnsValidator(g),
		parser:     parser.New(g, registry, richtext.NewParser(g, o.resolvers), parserOpts...),
		renderer:   renderer.New(richtext.NewSerializer(o.resolvers), rendererOpts...),
		numbering:  numbering.NewProcessor(g, o.indentUnit),
		maxLength:  o.maxTextLength,
	}
}

// MarkdownToBlocks parses dialect text. Blank input yields no blocks. A
// malformed column layout fails the whole conversion.
func (c *Converter) MarkdownToBlocks(ctx context.Context, markdown string) ([]block.Block, error) {
	if strings.TrimSpace(markdown) == "" {
		return nil, nil
	}

	text := c.normalizer.Process(markdown)
	if err := c.validator.Validate(text); err != nil {
		return nil, err
	}

	blocks, err := c.parser.Parse(ctx, text)
	if err != nil {
		return nil, err
	}
	if c.maxLength > 0 {
		splitRuns(blocks, c.maxLength)
	}
	return blocks, nil
}

// BlocksToMarkdown renders blocks and resolves list numbering.
func (c *Converter) BlocksToMarkdown(ctx context.Context, blocks []block.Block) (string, error) {
	out, err := c.renderer.Render(ctx, blocks)
	if err != nil {
		return "", err
	}
	return c.numbering.Process(out), nil
}

// Syntax exposes the per-kind documentation.
func (c *Converter) Syntax() *syntax.PromptRegistry {
	return c.prompts
}

func splitRuns(blocks []block.Block, limit int) {
	block.Walk(blocks, func(b block.Block) bool {
		switch v := b.(type) {
		case *block.Paragraph:
			v.RichText = richtext.SplitLongRuns(v.RichText, limit)
		case *block.Heading:
			v.RichText = richtext.SplitLongRuns(v.RichText, limit)
		case *block.BulletedListItem:
			v.RichText = richtext.SplitLongRuns(v.RichText, limit)
		case *block.NumberedListItem:
			v.RichText = richtext.SplitLongRuns(v.RichText, limit)
		case *block.ToDo:
			v.RichText = richtext.SplitLongRuns(v.RichText, limit)
		case *block.Quote:
			v.RichText = richtext.SplitLongRuns(v.RichText, limit)
		case *block.Callout:
			v.RichText = richtext.SplitLongRuns(v.RichText, limit)
		case *block.Toggle:
			v.RichText = richtext.SplitLongRuns(v.RichText, limit)
		case *block.Code:
			v.RichText = richtext.SplitLongRuns(v.RichText, limit)
		case *block.Table:
			for _, row := range v.Rows {
				for i := range row.Cells {
					row.Cells[i] = richtext.SplitLongRuns(row.Cells[i], limit)
				}
			}
		}
		return true
	})
}
