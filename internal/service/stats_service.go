package service

import (
	"context"
	"sync/atomic"

	"notemark-be/internal/dto"
	"notemark-be/pkg/events"
)

// EventSubscriber is satisfied by *nats.Subscriber.
type EventSubscriber interface {
	Subscribe(ctx context.Context, eventType, durableName string, handler func(context.Context, events.Event) error) error
}

// IStatsService tallies conversion events from the bus. Counts are per
// process and start at zero.
type IStatsService interface {
	Start(ctx context.Context) error
	Handle(ctx context.Context, event events.Event) error
	Snapshot() *dto.ConversionStatsResponse
}

type statsService struct {
	subscriber EventSubscriber
	durable    string

	markdownToBlocks atomic.Int64
	blocksToMarkdown atomic.Int64
	failed           atomic.Int64
	blocksProduced   atomic.Int64
}

func NewStatsService(subscriber EventSubscriber, durable string) IStatsService {
	return &statsService{subscriber: subscriber, durable: durable}
}

// Start is a no-op without a subscriber.
func (s *statsService) Start(ctx context.Context) error {
	if s.subscriber == nil {
		return nil
	}
	if err := s.subscriber.Subscribe(ctx, events.TypeConversionCompleted, s.durable+"-completed", s.Handle); err != nil {
		return err
	}
	return s.subscriber.Subscribe(ctx, events.TypeConversionFailed, s.durable+"-failed", s.Handle)
}

func (s *statsService) Handle(_ context.Context, event events.Event) error {
	if event.EventType() == events.TypeConversionFailed {
		s.failed.Add(1)
		return nil
	}

	payload := event.Payload()
	switch payload["direction"] {
	case DirectionMarkdownToBlocks:
		s.markdownToBlocks.Add(1)
		s.blocksProduced.Add(asInt64(payload["block_count"]))
	case DirectionBlocksToMarkdown:
		s.blocksToMarkdown.Add(1)
	}
	return nil
}

func (s *statsService) Snapshot() *dto.ConversionStatsResponse {
	return &dto.ConversionStatsResponse{
		MarkdownToBlocks: s.markdownToBlocks.Load(),
		BlocksToMarkdown: s.blocksToMarkdown.Load(),
		Failed:           s.failed.Load(),
		BlocksProduced:   s.blocksProduced.Load(),
	}
}

// asInt64 accepts the float64 json.Unmarshal yields as well as native ints.
func asInt64(v interface{}) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int:
		return int64(n)
	case int64:
		return n
	}
	return 0
}
