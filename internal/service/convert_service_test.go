package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"notemark-be/internal/dto"
	"notemark-be/internal/pkg/logger"
	"notemark-be/pkg/converter"
	"notemark-be/pkg/events"
	"notemark-be/pkg/preprocess"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) error {
	p.events = append(p.events, event)
	return p.err
}

func newConvertService(pub EventPublisher) IConvertService {
	return NewConvertService(converter.New(), pub, logger.NewNopLogger())
}

func TestConvertService_MarkdownToBlocks(t *testing.T) {
	pub := &recordingPublisher{}
	svc := newConvertService(pub)

	res, err := svc.MarkdownToBlocks(context.Background(), &dto.MarkdownToBlocksRequest{
		Markdown: "# Title\n\n- one\n    - nested",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.BlockCount)

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(res.Blocks, &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "heading_1", decoded[0]["type"])

	require.Len(t, pub.events, 1)
	assert.Equal(t, events.TypeConversionCompleted, pub.events[0].EventType())
	assert.Equal(t, DirectionMarkdownToBlocks, pub.events[0].Payload()["direction"])
}

func TestConvertService_MarkdownToBlocks_ColumnError(t *testing.T) {
	pub := &recordingPublisher{}
	svc := newConvertService(pub)

	_, err := svc.MarkdownToBlocks(context.Background(), &dto.MarkdownToBlocksRequest{
		Markdown: "::: columns\n::: column\nonly\n:::\n:::",
	})
	assert.ErrorIs(t, err, preprocess.ErrInsufficientColumns)
	require.Len(t, pub.events, 1)
	assert.Equal(t, events.TypeConversionFailed, pub.events[0].EventType())
}

func TestConvertService_BlocksToMarkdown(t *testing.T) {
	svc := newConvertService(nil)

	blocks := `[
		{"type": "heading_2", "heading_2": {"rich_text": [{"type": "text", "text": {"content": "Plan"}}]}},
		{"type": "numbered_list_item", "numbered_list_item": {"rich_text": [{"type": "text", "text": {"content": "a"}}]}},
		{"type": "numbered_list_item", "numbered_list_item": {"rich_text": [{"type": "text", "text": {"content": "b"}}]}}
	]`
	res, err := svc.BlocksToMarkdown(context.Background(), &dto.BlocksToMarkdownRequest{Blocks: json.RawMessage(blocks)})
	require.NoError(t, err)
	assert.Equal(t, "## Plan\n\n1. a\n2. b", res.Markdown)
}

func TestConvertService_BlocksToMarkdown_InvalidJSON(t *testing.T) {
	svc := newConvertService(&recordingPublisher{})

	_, err := svc.BlocksToMarkdown(context.Background(), &dto.BlocksToMarkdownRequest{Blocks: json.RawMessage(`{"type": 1}`)})
	assert.ErrorIs(t, err, ErrInvalidBlocks)
}

func TestConvertService_PublishFailureIsIgnored(t *testing.T) {
	svc := newConvertService(&recordingPublisher{err: errors.New("nats down")})

	res, err := svc.MarkdownToBlocks(context.Background(), &dto.MarkdownToBlocksRequest{Markdown: "hello"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.BlockCount)
}

func TestConvertService_Syntax(t *testing.T) {
	res := newConvertService(nil).Syntax()

	assert.NotEmpty(t, res.Cheatsheet)
	assert.NotEmpty(t, res.Blocks)
}

func TestStatsService_Handle(t *testing.T) {
	svc := NewStatsService(nil, "stats")
	ctx := context.Background()

	require.NoError(t, svc.Start(ctx))
	require.NoError(t, svc.Handle(ctx, events.ConversionCompleted(DirectionMarkdownToBlocks, 4, 10, 0)))
	// payloads decoded from the bus carry float64 numbers
	require.NoError(t, svc.Handle(ctx, events.BaseEvent{
		Type: events.TypeConversionCompleted,
		Data: map[string]interface{}{"direction": DirectionMarkdownToBlocks, "block_count": float64(2)},
	}))
	require.NoError(t, svc.Handle(ctx, events.ConversionCompleted(DirectionBlocksToMarkdown, 1, 10, 0)))
	require.NoError(t, svc.Handle(ctx, events.ConversionFailed(DirectionBlocksToMarkdown, errors.New("x"))))

	assert.Equal(t, &dto.ConversionStatsResponse{
		MarkdownToBlocks: 2,
		BlocksToMarkdown: 1,
		Failed:           1,
		BlocksProduced:   6,
	}, svc.Snapshot())
}
