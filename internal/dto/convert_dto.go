package dto

import (
	"encoding/json"

	"notemark-be/pkg/syntax"
)

type MarkdownToBlocksRequest struct {
	Markdown string `json:"markdown" validate:"required"`
}

type MarkdownToBlocksResponse struct {
	Blocks     json.RawMessage `json:"blocks"`
	BlockCount int             `json:"block_count"`
}

type BlocksToMarkdownRequest struct {
	Blocks json.RawMessage `json:"blocks" validate:"required"`
}

type BlocksToMarkdownResponse struct {
	Markdown string `json:"markdown"`
}

type SyntaxResponse struct {
	Cheatsheet string          `json:"cheatsheet"`
	Blocks     []syntax.Prompt `json:"blocks"`
}

type ConversionStatsResponse struct {
	MarkdownToBlocks int64 `json:"markdown_to_blocks"`
	BlocksToMarkdown int64 `json:"blocks_to_markdown"`
	Failed           int64 `json:"failed"`
	BlocksProduced   int64 `json:"blocks_produced"`
}
