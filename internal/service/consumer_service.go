package service

import (
	"context"
	"encoding/json"
	"log"

	"notemark-be/internal/dto"
	"notemark-be/pkg/resolver"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService keeps the resolver cache in step with registry writes.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	cache     resolver.Cache
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	cache resolver.Cache,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		cache:     cache,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.MentionUpdatedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack()
		return
	}

	if payload.Kind == "" || payload.Name == "" || payload.ExternalId == "" {
		log.Printf("[WARN] Ignoring incomplete mention update: %+v", payload)
		msg.Ack()
		return
	}

	if payload.Removed {
		resolver.Evict(ctx, cs.cache, payload.Kind, payload.Name, payload.ExternalId)
		log.Printf("[INFO] Evicted mention cache for %s %q", payload.Kind, payload.Name)
		msg.Ack()
		return
	}

	resolver.Warm(ctx, cs.cache, payload.Kind, payload.Name, payload.ExternalId)
	log.Printf("[INFO] Warmed mention cache for %s %q", payload.Kind, payload.Name)
	msg.Ack()
}
