package syntax

import (
	"fmt"
	"strings"

	"notemark-be/pkg/grammar"
)

// Prompt documents one block kind for humans and language models.
type Prompt struct {
	Key         Key      `json:"key"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Examples    []string `json:"examples"`
	Nesting     string   `json:"nesting,omitempty"`
}

// PromptRegistry holds the documentation of every kind in the Registry.
type PromptRegistry struct {
	prompts map[Key]Prompt
	order   []Key
}

func NewPromptRegistry(r *Registry) *PromptRegistry {
	indent := strings.Repeat(" ", grammar.SpacesPerNestingLevel)
	nested := fmt.Sprintf("Children are indented by %d spaces.", grammar.SpacesPerNestingLevel)
	fence := grammar.CodeFence

	prompts := []Prompt{
		{Key: KeyParagraph, Title: "Paragraph", Description: "Any line that matches no other syntax.",
			Examples: []string{"Plain text with **bold**, *italic*, __underline__, ~~strike~~, `code` and $x^2$."}},
		{Key: KeyHeading, Title: "Heading", Description: "One to three hash marks followed by a space.",
			Examples: []string{"# Title", "## Section", "### Subsection"}},
		{Key: KeyBulletedList, Title: "Bulleted list", Description: "A dash followed by a space.",
			Examples: []string{"- First", "- Second\n" + indent + "- Nested"}, Nesting: nested},
		{Key: KeyNumberedList, Title: "Numbered list", Description: "A number, a dot and a space. Numbering is recomputed on output.",
			Examples: []string{"1. First\n2. Second\n" + indent + "a. Nested"}, Nesting: nested},
		{Key: KeyTodo, Title: "To-do", Description: "A dash, a checkbox and a space.",
			Examples: []string{grammar.TodoPrefix + "Open", grammar.TodoDonePrefix + "Done"}, Nesting: nested},
		{Key: KeyQuote, Title: "Quote", Description: "Consecutive lines starting with a greater-than sign.",
			Examples: []string{grammar.QuotePrefix + "Quoted line\n" + grammar.QuotePrefix + "continues"}, Nesting: nested},
		{Key: KeyCallout, Title: "Callout", Description: "Highlighted text with an optional emoji icon.",
			Examples: []string{grammar.CalloutMarker + `(Remember this "🔥")`, grammar.CalloutMarker + "(Default icon)"}, Nesting: nested},
		{Key: KeyToggle, Title: "Toggle", Description: "Collapsible block. Close with a bare delimiter or rely on indentation.",
			Examples: []string{grammar.ToggleDelimiter + " Details\n" + indent + "Hidden content\n" + grammar.ToggleDelimiter}, Nesting: nested},
		{Key: KeyToggleableHeading, Title: "Toggleable heading", Description: "A heading whose children collapse.",
			Examples: []string{grammar.ToggleDelimiter + "## Section\n" + indent + "Content\n" + grammar.ToggleDelimiter}, Nesting: nested},
		{Key: KeyColumnList, Title: "Columns", Description: "Side by side columns, at least two. Ratios, when all given, must sum to 1.",
			Examples: []string{grammar.ColumnDelimiter + " columns\n" + grammar.ColumnDelimiter + " column 0.6\nLeft\n" + grammar.ColumnDelimiter + "\n" +
				grammar.ColumnDelimiter + " column 0.4\nRight\n" + grammar.ColumnDelimiter + "\n" + grammar.ColumnDelimiter}},
		{Key: KeyTable, Title: "Table", Description: "Pipe delimited rows. A separator after the first row marks it as header.",
			Examples: []string{"| Name | Role |\n| --- | --- |\n| Ada | Eng |"}},
		{Key: KeyCode, Title: "Code", Description: "Fenced code with an optional language and caption.",
			Examples: []string{fence + "python\nprint('hi')\n" + fence, fence + "go\nfmt.Println()\n" + fence + "\n" + grammar.CaptionMarker + " Example"}},
		{Key: KeyEquation, Title: "Equation", Description: "Block level LaTeX between double dollar signs.",
			Examples: []string{grammar.EquationDelimiter + "\nE = mc^2\n" + grammar.EquationDelimiter}},
		{Key: KeyDivider, Title: "Divider", Description: "Three or more dashes.", Examples: []string{grammar.DividerMarker}},
		{Key: KeyBreadcrumb, Title: "Breadcrumb", Description: "Navigation trail of the page.", Examples: []string{grammar.BreadcrumbMarker}},
		{Key: KeyTableOfContents, Title: "Table of contents", Description: "Outline of headings with an optional color.",
			Examples: []string{grammar.TableOfContentsMark, grammar.TableOfContentsMark + "(gray)"}},
		{Key: KeyBookmark, Title: "Bookmark", Description: "Link preview of a web page.",
			Examples: []string{grammar.BookmarkMarker + "(https://example.com)"}},
		{Key: KeyEmbed, Title: "Embed", Description: "Embedded web content.",
			Examples: []string{grammar.EmbedMarker + "(https://example.com/widget)"}},
		{Key: KeyImage, Title: "Image", Description: "Image by URL, optionally followed by a caption line.",
			Examples: []string{grammar.ImageMarker + "(https://example.com/a.png)\n" + grammar.CaptionMarker + " Figure 1"}},
		{Key: KeyVideo, Title: "Video", Description: "Video by URL.", Examples: []string{grammar.VideoMarker + "(https://example.com/a.mp4)"}},
		{Key: KeyAudio, Title: "Audio", Description: "Audio by URL.", Examples: []string{grammar.AudioMarker + "(https://example.com/a.mp3)"}},
		{Key: KeyFile, Title: "File", Description: "File attachment by URL.", Examples: []string{grammar.FileMarker + "(https://example.com/a.zip)"}},
		{Key: KeyPDF, Title: "PDF", Description: "PDF document by URL.", Examples: []string{grammar.PDFMarker + "(https://example.com/a.pdf)"}},
		{Key: KeySyncedBlock, Title: "Synced block", Description: "Reference to an existing synced block. Originals cannot be created from text.",
			Examples: []string{grammar.SyncedBlockPrefix + grammar.SyncedFromMarker + " 1f2e3d4c-0000-0000-0000-000000000000"}},
		{Key: KeyCaption, Title: "Caption", Description: "Attaches a caption to the preceding code, media, bookmark or embed block.",
			Examples: []string{grammar.CaptionMarker + " Caption text"}},
		{Key: KeySpace, Title: "Space", Description: "An empty paragraph.", Examples: []string{grammar.SpaceMarker}},
	}

	pr := &PromptRegistry{prompts: make(map[Key]Prompt, len(prompts))}
	for _, p := range prompts {
		// keep documentation in step with the registry
		r.Get(p.Key)
		pr.prompts[p.Key] = p
		pr.order = append(pr.order, p.Key)
	}
	return pr
}

// Get returns the prompt for k.
func (pr *PromptRegistry) Get(k Key) (Prompt, bool) {
	p, ok := pr.prompts[k]
	return p, ok
}

// All returns the prompts in documentation order.
func (pr *PromptRegistry) All() []Prompt {
	out := make([]Prompt, 0, len(pr.order))
	for _, k := range pr.order {
		out = append(out, pr.prompts[k])
	}
	return out
}

// Cheatsheet renders every prompt as one markdown document.
func (pr *PromptRegistry) Cheatsheet() string {
	var sb strings.Builder
	sb.WriteString("# Syntax\n")
	for _, p := range pr.All() {
		sb.WriteString("\n## " + p.Title + "\n\n")
		sb.WriteString(p.Description + "\n")
		if p.Nesting != "" {
			sb.WriteString(p.Nesting + "\n")
		}
		for _, ex := range p.Examples {
			sb.WriteString("\n" + grammar.CodeFence + "markdown\n" + ex + "\n" + grammar.CodeFence + "\n")
		}
	}
	return sb.String()
}
