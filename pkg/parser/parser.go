package parser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"notemark-be/pkg/block"
	"notemark-be/pkg/grammar"
	"notemark-be/pkg/richtext"
	"notemark-be/pkg/syntax"
)

const (
	DefaultMaxDepth = 64
	logModule       = "MarkdownParser"
)

var ErrNestingTooDeep = errors.New("maximum nesting depth exceeded")

// Logger is the subset of the application logger the parser needs.
type Logger interface {
	Debug(module, message string, details map[string]interface{})
	Warn(module, message string, details map[string]interface{})
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}

// LineParser is one link of the parsing chain. CanHandle must not mutate
// the context.
type LineParser interface {
	CanHandle(c *Context) bool
	Process(c *Context) error
}

// Parser turns dialect text into a block tree.
type Parser struct {
	g        *grammar.Grammar
	registry *syntax.Registry
	rich     *richtext.Parser
	log      Logger
	maxDepth int
	chain    []LineParser
}

type Option func(*Parser)

func WithLogger(l Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.log = l
		}
	}
}

func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxDepth = n
		}
	}
}

func New(g *grammar.Grammar, registry *syntax.Registry, rich *richtext.Parser, opts ...Option) *Parser {
	p := &Parser{
		g:        g,
		registry: registry,
		rich:     rich,
		log:      nopLogger{},
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(p)
	}

	// First match wins. Container delimiters and the line collector come
	// first so nothing else runs while a parent is open.
	p.chain = []LineParser{
		&columnListParser{p},
		&columnParser{p},
		&columnEndParser{p},
		&parentLineCollector{p},
		&codeParser{p},
		&equationParser{p},
		&tableParser{p},
		&toggleableHeadingParser{p},
		&toggleParser{p},
		&syncedBlockParser{p},
		&calloutParser{p},
		&quoteParser{p},
		&headingParser{p},
		&dividerParser{p},
		&breadcrumbParser{p},
		&tableOfContentsParser{p},
		&spaceParser{p},
		&todoParser{p},
		&bulletedListParser{p},
		&numberedListParser{p},
		&bookmarkParser{p},
		&embedParser{p},
		newMediaParser(p, syntax.KeyImage, func(url string) block.Block { return &block.Image{FileData: block.NewExternalFile(url)} }),
		newMediaParser(p, syntax.KeyVideo, func(url string) block.Block { return &block.Video{FileData: block.NewExternalFile(url)} }),
		newMediaParser(p, syntax.KeyAudio, func(url string) block.Block { return &block.Audio{FileData: block.NewExternalFile(url)} }),
		newMediaParser(p, syntax.KeyFile, func(url string) block.Block { return &block.File{FileData: block.NewExternalFile(url)} }),
		newMediaParser(p, syntax.KeyPDF, func(url string) block.Block { return &block.PDF{FileData: block.NewExternalFile(url)} }),
		&captionParser{p},
		&paragraphParser{p},
	}
	return p
}

// Parse converts text into top-level blocks. Input is expected to be
// normalized already.
func (p *Parser) Parse(ctx context.Context, text string) ([]block.Block, error) {
	return p.parse(ctx, text, 0, 0)
}

func (p *Parser) parse(ctx context.Context, text string, depth, level int) ([]block.Block, error) {
	if depth > p.maxDepth {
		return nil, fmt.Errorf("depth %d: %w", depth, ErrNestingTooDeep)
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	c := newContext(ctx, p, strings.Split(text, "\n"), depth, level)
	for c.index < len(c.lines) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c.Line = c.lines[c.index]
		c.LinesConsumed = 0
		if err := p.handle(c); err != nil {
			return nil, err
		}
		c.index += 1 + c.LinesConsumed
	}

	// end of input closes whatever is still open
	for c.IsInsideParentContext() {
		if err := closeParent(c); err != nil {
			return nil, err
		}
	}
	return c.Result, nil
}

func (p *Parser) handle(c *Context) error {
	for _, lp := range p.chain {
		if lp.CanHandle(c) {
			return lp.Process(c)
		}
	}
	return nil
}
