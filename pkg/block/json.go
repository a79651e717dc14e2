package block

import (
	"encoding/json"
	"fmt"

	"notemark-be/pkg/richtext"
)

// Encode marshals a block into the API create-payload shape, children
// nested inside the type object.
func Encode(b Block) ([]byte, error) {
	return json.Marshal(toWire(b))
}

// EncodeList marshals blocks as a JSON array.
func EncodeList(blocks []Block) ([]byte, error) {
	out := make([]map[string]interface{}, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, toWire(b))
	}
	return json.Marshal(out)
}

func toWire(b Block) map[string]interface{} {
	t := b.Type()
	return map[string]interface{}{
		"object":  "block",
		"type":    t,
		string(t): payloadOf(b),
	}
}

func wireChildren(children []Block) []map[string]interface{} {
	if len(children) == 0 {
		return nil
	}
	out := make([]map[string]interface{}, 0, len(children))
	for _, c := range children {
		out = append(out, toWire(c))
	}
	return out
}

func runs(r []richtext.RichText) []richtext.RichText {
	if r == nil {
		return []richtext.RichText{}
	}
	return r
}

func color(c richtext.Color) richtext.Color {
	if c == "" {
		return richtext.ColorDefault
	}
	return c
}

func textPayload(r []richtext.RichText, c richtext.Color, children []Block) map[string]interface{} {
	p := map[string]interface{}{"rich_text": runs(r), "color": color(c)}
	if ch := wireChildren(children); ch != nil {
		p["children"] = ch
	}
	return p
}

func filePayload(f *FileData) map[string]interface{} {
	p := map[string]interface{}{"caption": runs(f.Captions)}
	switch {
	case f.External != nil:
		p["type"] = "external"
		p["external"] = map[string]string{"url": f.External.URL}
	case f.Hosted != nil:
		p["type"] = "file"
		p["file"] = map[string]string{"url": f.Hosted.URL, "expiry_time": f.Hosted.ExpiryTime}
	}
	if f.Name != "" {
		p["name"] = f.Name
	}
	return p
}

func payloadOf(b Block) map[string]interface{} {
	switch v := b.(type) {
	case *Paragraph:
		return textPayload(v.RichText, v.Color, nil)
	case *Heading:
		p := textPayload(v.RichText, v.Color, v.Children)
		p["is_toggleable"] = v.IsToggleable
		return p
	case *BulletedListItem:
		return textPayload(v.RichText, v.Color, v.Children)
	case *NumberedListItem:
		return textPayload(v.RichText, v.Color, v.Children)
	case *ToDo:
		p := textPayload(v.RichText, v.Color, v.Children)
		p["checked"] = v.Checked
		return p
	case *Quote:
		return textPayload(v.RichText, v.Color, v.Children)
	case *Toggle:
		return textPayload(v.RichText, v.Color, v.Children)
	case *Callout:
		p := textPayload(v.RichText, v.Color, v.Children)
		if v.Icon != nil {
			if v.Icon.ExternalURL != "" {
				p["icon"] = map[string]interface{}{"type": "external", "external": map[string]string{"url": v.Icon.ExternalURL}}
			} else {
				p["icon"] = map[string]interface{}{"type": "emoji", "emoji": v.Icon.Emoji}
			}
		}
		return p
	case *ColumnList:
		return map[string]interface{}{"children": wireChildren(v.ChildBlocks())}
	case *Column:
		p := map[string]interface{}{"children": wireChildren(v.Children)}
		if v.WidthRatio > 0 {
			p["width_ratio"] = v.WidthRatio
		}
		return p
	case *Table:
		return map[string]interface{}{
			"table_width":       v.Width,
			"has_column_header": v.HasColumnHeader,
			"has_row_header":    v.HasRowHeader,
			"children":          wireChildren(v.ChildBlocks()),
		}
	case *TableRow:
		cells := make([][]richtext.RichText, len(v.Cells))
		for i, c := range v.Cells {
			cells[i] = runs(c)
		}
		return map[string]interface{}{"cells": cells}
	case *Code:
		return map[string]interface{}{"rich_text": runs(v.RichText), "language": v.Language, "caption": runs(v.Captions)}
	case *Equation:
		return map[string]interface{}{"expression": v.Expression}
	case *TableOfContents:
		return map[string]interface{}{"color": color(v.Color)}
	case *Bookmark:
		return map[string]interface{}{"url": v.URL, "caption": runs(v.Captions)}
	case *Embed:
		return map[string]interface{}{"url": v.URL, "caption": runs(v.Captions)}
	case *Image:
		return filePayload(&v.FileData)
	case *Video:
		return filePayload(&v.FileData)
	case *Audio:
		return filePayload(&v.FileData)
	case *File:
		return filePayload(&v.FileData)
	case *PDF:
		return filePayload(&v.FileData)
	case *SyncedBlock:
		p := map[string]interface{}{"synced_from": nil}
		if v.SyncedFrom != nil {
			p["synced_from"] = map[string]string{"type": "block_id", "block_id": v.SyncedFrom.BlockID}
		}
		if ch := wireChildren(v.Children); ch != nil {
			p["children"] = ch
		}
		return p
	case *ChildPage:
		return map[string]interface{}{"title": v.Title}
	case *ChildDatabase:
		return map[string]interface{}{"title": v.Title}
	}
	return map[string]interface{}{}
}

type wireURL struct {
	URL        string `json:"url"`
	ExpiryTime string `json:"expiry_time"`
}

type wireIcon struct {
	Type     string   `json:"type"`
	Emoji    string   `json:"emoji"`
	External *wireURL `json:"external"`
}

type wireSyncedFrom struct {
	BlockID string `json:"block_id"`
}

type wirePayload struct {
	RichText        []richtext.RichText   `json:"rich_text"`
	Color           richtext.Color        `json:"color"`
	IsToggleable    bool                  `json:"is_toggleable"`
	Checked         bool                  `json:"checked"`
	Icon            *wireIcon             `json:"icon"`
	Language        string                `json:"language"`
	Caption         []richtext.RichText   `json:"caption"`
	Expression      string                `json:"expression"`
	URL             string                `json:"url"`
	External        *wireURL              `json:"external"`
	File            *wireURL              `json:"file"`
	Name            string                `json:"name"`
	WidthRatio      float64               `json:"width_ratio"`
	TableWidth      int                   `json:"table_width"`
	HasColumnHeader bool                  `json:"has_column_header"`
	HasRowHeader    bool                  `json:"has_row_header"`
	Cells           [][]richtext.RichText `json:"cells"`
	SyncedFrom      *wireSyncedFrom       `json:"synced_from"`
	Title           string                `json:"title"`
	Children        []json.RawMessage     `json:"children"`
}

type wireEnvelope struct {
	ID       string            `json:"id"`
	Type     Type              `json:"type"`
	Children []json.RawMessage `json:"children"`
}

// Decode unmarshals a single block. Unknown kinds become Unsupported.
func Decode(data []byte) (Block, error) {
	var env wireEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to decode block: %w", err)
	}
	if env.Type == "" {
		return nil, fmt.Errorf("failed to decode block: missing type")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("failed to decode block: %w", err)
	}

	var p wirePayload
	if raw, ok := fields[string(env.Type)]; ok && string(raw) != "null" {
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("failed to decode %s payload: %w", env.Type, err)
		}
	}
	if len(p.Children) == 0 {
		p.Children = env.Children
	}

	children, err := decodeRaw(p.Children)
	if err != nil {
		return nil, err
	}
	return fromWire(env, &p, children), nil
}

// DecodeList unmarshals a JSON array of blocks.
func DecodeList(data []byte) ([]Block, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode block list: %w", err)
	}
	return decodeRaw(raw)
}

func decodeRaw(raw []json.RawMessage) ([]Block, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]Block, 0, len(raw))
	for _, r := range raw {
		b, err := Decode(r)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func fileData(p *wirePayload) FileData {
	f := FileData{Captions: p.Caption, Name: p.Name}
	if p.External != nil {
		f.External = &ExternalFile{URL: p.External.URL}
	}
	if p.File != nil {
		f.Hosted = &HostedFile{URL: p.File.URL, ExpiryTime: p.File.ExpiryTime}
	}
	return f
}

func fromWire(env wireEnvelope, p *wirePayload, children []Block) Block {
	switch env.Type {
	case TypeParagraph:
		return &Paragraph{RichText: p.RichText, Color: p.Color}
	case TypeHeading1, TypeHeading2, TypeHeading3:
		level := int(env.Type[len(env.Type)-1] - '0')
		return &Heading{Level: level, RichText: p.RichText, Color: p.Color, IsToggleable: p.IsToggleable, Children: children}
	case TypeBulletedListItem:
		return &BulletedListItem{RichText: p.RichText, Color: p.Color, Children: children}
	case TypeNumberedListItem:
		return &NumberedListItem{RichText: p.RichText, Color: p.Color, Children: children}
	case TypeToDo:
		return &ToDo{RichText: p.RichText, Checked: p.Checked, Color: p.Color, Children: children}
	case TypeQuote:
		return &Quote{RichText: p.RichText, Color: p.Color, Children: children}
	case TypeToggle:
		return &Toggle{RichText: p.RichText, Color: p.Color, Children: children}
	case TypeCallout:
		c := &Callout{RichText: p.RichText, Color: p.Color, Children: children}
		if p.Icon != nil {
			c.Icon = &Icon{Emoji: p.Icon.Emoji}
			if p.Icon.External != nil {
				c.Icon.ExternalURL = p.Icon.External.URL
			}
		}
		return c
	case TypeColumnList:
		cl := &ColumnList{}
		cl.SetChildBlocks(children)
		return cl
	case TypeColumn:
		return &Column{WidthRatio: p.WidthRatio, Children: children}
	case TypeTable:
		t := &Table{Width: p.TableWidth, HasColumnHeader: p.HasColumnHeader, HasRowHeader: p.HasRowHeader}
		t.SetChildBlocks(children)
		return t
	case TypeTableRow:
		return &TableRow{Cells: p.Cells}
	case TypeCode:
		return &Code{RichText: p.RichText, Language: p.Language, Captions: p.Caption}
	case TypeEquation:
		return &Equation{Expression: p.Expression}
	case TypeDivider:
		return &Divider{}
	case TypeBreadcrumb:
		return &Breadcrumb{}
	case TypeTableOfContents:
		return &TableOfContents{Color: p.Color}
	case TypeBookmark:
		return &Bookmark{URL: p.URL, Captions: p.Caption}
	case TypeEmbed:
		return &Embed{URL: p.URL, Captions: p.Caption}
	case TypeImage:
		return &Image{fileData(p)}
	case TypeVideo:
		return &Video{fileData(p)}
	case TypeAudio:
		return &Audio{fileData(p)}
	case TypeFile:
		return &File{fileData(p)}
	case TypePDF:
		return &PDF{fileData(p)}
	case TypeSyncedBlock:
		s := &SyncedBlock{Children: children}
		if p.SyncedFrom != nil {
			s.SyncedFrom = &SyncedFrom{BlockID: p.SyncedFrom.BlockID}
		}
		return s
	case TypeChildPage:
		return &ChildPage{ID: env.ID, Title: p.Title}
	case TypeChildDatabase:
		return &ChildDatabase{ID: env.ID, Title: p.Title}
	}
	return &Unsupported{RawType: string(env.Type)}
}
