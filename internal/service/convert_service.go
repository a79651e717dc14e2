package service

import (
	"context"
	"fmt"
	"time"

	"notemark-be/internal/dto"
	"notemark-be/internal/pkg/logger"
	"notemark-be/internal/tracer"
	"notemark-be/pkg/block"
	"notemark-be/pkg/converter"
	"notemark-be/pkg/events"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	convertModule = "ConvertService"

	DirectionMarkdownToBlocks = "markdown_to_blocks"
	DirectionBlocksToMarkdown = "blocks_to_markdown"
)

// EventPublisher is satisfied by *nats.Publisher.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type IConvertService interface {
	MarkdownToBlocks(ctx context.Context, req *dto.MarkdownToBlocksRequest) (*dto.MarkdownToBlocksResponse, error)
	BlocksToMarkdown(ctx context.Context, req *dto.BlocksToMarkdownRequest) (*dto.BlocksToMarkdownResponse, error)
	Syntax() *dto.SyntaxResponse
}

type convertService struct {
	converter      *converter.Converter
	eventPublisher EventPublisher
	log            logger.ILogger
}

// NewConvertService accepts a nil eventPublisher when NATS is unavailable.
func NewConvertService(conv *converter.Converter, eventPublisher EventPublisher, log logger.ILogger) IConvertService {
	return &convertService{
		converter:      conv,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func (s *convertService) MarkdownToBlocks(ctx context.Context, req *dto.MarkdownToBlocksRequest) (*dto.MarkdownToBlocksResponse, error) {
	ctx, span := tracer.Tracer("convert").Start(ctx, "MarkdownToBlocks")
	defer span.End()
	start := time.Now()

	span.SetAttributes(attribute.Int("markdown.bytes", len(req.Markdown)))

	blocks, err := s.converter.MarkdownToBlocks(ctx, req.Markdown)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.publish(ctx, events.ConversionFailed(DirectionMarkdownToBlocks, err))
		return nil, err
	}

	data, err := block.EncodeList(blocks)
	if err != nil {
		return nil, fmt.Errorf("encode blocks: %w", err)
	}

	count := block.Count(blocks)
	span.SetAttributes(attribute.Int("blocks.count", count))
	s.publish(ctx, events.ConversionCompleted(DirectionMarkdownToBlocks, count, len(data), time.Since(start)))

	return &dto.MarkdownToBlocksResponse{
		Blocks:     data,
		BlockCount: count,
	}, nil
}

func (s *convertService) BlocksToMarkdown(ctx context.Context, req *dto.BlocksToMarkdownRequest) (*dto.BlocksToMarkdownResponse, error) {
	ctx, span := tracer.Tracer("convert").Start(ctx, "BlocksToMarkdown")
	defer span.End()
	start := time.Now()

	blocks, err := block.DecodeList(req.Blocks)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.publish(ctx, events.ConversionFailed(DirectionBlocksToMarkdown, err))
		return nil, fmt.Errorf("%w: %v", ErrInvalidBlocks, err)
	}

	count := block.Count(blocks)
	span.SetAttributes(attribute.Int("blocks.count", count))

	markdown, err := s.converter.BlocksToMarkdown(ctx, blocks)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	s.publish(ctx, events.ConversionCompleted(DirectionBlocksToMarkdown, count, len(markdown), time.Since(start)))

	return &dto.BlocksToMarkdownResponse{Markdown: markdown}, nil
}

func (s *convertService) Syntax() *dto.SyntaxResponse {
	prompts := s.converter.Syntax()
	return &dto.SyntaxResponse{
		Cheatsheet: prompts.Cheatsheet(),
		Blocks:     prompts.All(),
	}
}

// publish never fails the request; events are auxiliary.
func (s *convertService) publish(ctx context.Context, event events.Event) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.log.Warn(convertModule, "Failed to publish conversion event", map[string]interface{}{
			"event": event.EventType(),
			"error": err.Error(),
		})
	}
}
