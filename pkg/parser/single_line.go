package parser

import (
	"strings"

	"notemark-be/pkg/block"
	"notemark-be/pkg/richtext"
	"notemark-be/pkg/syntax"
)

type headingParser struct{ p *Parser }

func (h *headingParser) CanHandle(c *Context) bool {
	return !c.IsInsideParentContext() && h.p.registry.Get(syntax.KeyHeading).Pattern.MatchString(c.Trimmed())
}

func (h *headingParser) Process(c *Context) error {
	m := h.p.registry.Get(syntax.KeyHeading).Pattern.FindStringSubmatch(c.Trimmed())
	text := strings.TrimSpace(m[2])
	if text == "" {
		return nil
	}
	c.Emit(&block.Heading{Level: len(m[1]), RichText: c.RichText(text), Color: richtext.ColorDefault})
	return nil
}

type dividerParser struct{ p *Parser }

func (h *dividerParser) CanHandle(c *Context) bool {
	return !c.IsInsideParentContext() && h.p.g.Divider.MatchString(c.Line)
}

func (h *dividerParser) Process(c *Context) error {
	c.Emit(&block.Divider{})
	return nil
}

type breadcrumbParser struct{ p *Parser }

func (h *breadcrumbParser) CanHandle(c *Context) bool {
	return !c.IsInsideParentContext() && h.p.g.Breadcrumb.MatchString(c.Trimmed())
}

func (h *breadcrumbParser) Process(c *Context) error {
	c.Emit(&block.Breadcrumb{})
	return nil
}

type tableOfContentsParser struct{ p *Parser }

func (h *tableOfContentsParser) CanHandle(c *Context) bool {
	return !c.IsInsideParentContext() && h.p.g.TableOfContents.MatchString(c.Trimmed())
}

func (h *tableOfContentsParser) Process(c *Context) error {
	m := h.p.g.TableOfContents.FindStringSubmatch(c.Trimmed())
	color := richtext.Color(strings.ToLower(m[1]))
	if !color.IsValid() {
		color = richtext.ColorDefault
	}
	c.Emit(&block.TableOfContents{Color: color})
	return nil
}

type spaceParser struct{ p *Parser }

func (h *spaceParser) CanHandle(c *Context) bool {
	return !c.IsInsideParentContext() && h.p.g.Space.MatchString(c.Trimmed())
}

func (h *spaceParser) Process(c *Context) error {
	c.Emit(&block.Paragraph{RichText: []richtext.RichText{}, Color: richtext.ColorDefault})
	return nil
}

type bookmarkParser struct{ p *Parser }

func (h *bookmarkParser) CanHandle(c *Context) bool {
	return !c.IsInsideParentContext() && h.p.g.Bookmark.MatchString(c.Trimmed())
}

func (h *bookmarkParser) Process(c *Context) error {
	m := h.p.g.Bookmark.FindStringSubmatch(c.Trimmed())
	c.Emit(&block.Bookmark{URL: m[1]})
	return nil
}

type embedParser struct{ p *Parser }

func (h *embedParser) CanHandle(c *Context) bool {
	return !c.IsInsideParentContext() && h.p.g.Embed.MatchString(c.Trimmed())
}

func (h *embedParser) Process(c *Context) error {
	m := h.p.g.Embed.FindStringSubmatch(c.Trimmed())
	c.Emit(&block.Embed{URL: m[1]})
	return nil
}

// mediaParser covers the file based kinds, which differ only in marker and
// block constructor.
type mediaParser struct {
	p     *Parser
	key   syntax.Key
	build func(url string) block.Block
}

func newMediaParser(p *Parser, key syntax.Key, build func(string) block.Block) *mediaParser {
	return &mediaParser{p: p, key: key, build: build}
}

func (h *mediaParser) CanHandle(c *Context) bool {
	return !c.IsInsideParentContext() && h.p.registry.Get(h.key).Pattern.MatchString(c.Trimmed())
}

func (h *mediaParser) Process(c *Context) error {
	m := h.p.registry.Get(h.key).Pattern.FindStringSubmatch(c.Trimmed())
	url := strings.TrimSpace(m[1])
	if url == "" {
		return nil
	}
	c.Emit(h.build(url))
	return nil
}

// captionParser attaches a caption to the block emitted just before it.
type captionParser struct{ p *Parser }

func (h *captionParser) CanHandle(c *Context) bool {
	if c.IsInsideParentContext() || !h.p.g.Caption.MatchString(c.Trimmed()) {
		return false
	}
	_, ok := c.LastBlock().(block.Captioner)
	return ok
}

func (h *captionParser) Process(c *Context) error {
	m := h.p.g.Caption.FindStringSubmatch(c.Trimmed())
	c.LastBlock().(block.Captioner).SetCaption(c.RichText(strings.TrimSpace(m[1])))
	return nil
}

type paragraphParser struct{ p *Parser }

func (h *paragraphParser) CanHandle(c *Context) bool {
	return !c.IsInsideParentContext() && c.Trimmed() != ""
}

func (h *paragraphParser) Process(c *Context) error {
	c.Emit(&block.Paragraph{RichText: c.RichText(c.Trimmed()), Color: richtext.ColorDefault})
	return nil
}
