package bootstrap

import (
	"context"
	"log"

	"notemark-be/internal/config"
	"notemark-be/internal/controller"
	"notemark-be/internal/pkg/logger"
	"notemark-be/internal/repository/unitofwork"
	"notemark-be/internal/service"
	"notemark-be/pkg/converter"
	pktNats "notemark-be/pkg/nats"
	"notemark-be/pkg/resolver"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const mentionTopic = "mention.updated"

type Container struct {
	ConvertController controller.IConvertController
	MentionController controller.IMentionController

	ConsumerService service.IConsumerService
	StatsService    service.IStatsService

	Logger logger.ILogger

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Infrastructure
	var closers []func()
	var eventPublisher service.EventPublisher
	var eventSubscriber service.EventSubscriber
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			eventPublisher = natsPub
			closers = append(closers, natsPub.Close)
		}

		natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		} else {
			eventSubscriber = natsSub
			closers = append(closers, natsSub.Close)
		}
	}

	cache := newMentionCache(cfg)

	// 4. Services
	publisherService := service.NewPublisherService(mentionTopic, pubSub)
	mentionService := service.NewMentionService(uowFactory, publisherService, sysLogger)
	consumerService := service.NewConsumerService(pubSub, mentionTopic, cache)

	conv := converter.New(
		converter.WithResolvers(resolver.NewResolvers(mentionService, cache)),
		converter.WithLogger(sysLogger),
		converter.WithIndentUnit(cfg.Converter.IndentUnit),
		converter.WithMaxDepth(cfg.Converter.MaxDepth),
		converter.WithMaxTextLength(cfg.Converter.MaxTextLength),
	)
	convertService := service.NewConvertService(conv, eventPublisher, sysLogger)
	statsService := service.NewStatsService(eventSubscriber, "notemark-stats")

	// 5. Controllers
	return &Container{
		ConvertController: controller.NewConvertController(convertService, statsService),
		MentionController: controller.NewMentionController(mentionService, cfg.App.JwtSecret),
		ConsumerService:   consumerService,
		StatsService:      statsService,
		Logger:            sysLogger,
		closers:           append(closers, func() { _ = pubSub.Close() }),
	}
}

// newMentionCache layers the in-process cache over redis when REDIS_URL is set.
func newMentionCache(cfg *config.Config) resolver.Cache {
	memory := resolver.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
	if cfg.App.RedisURL == "" {
		return memory
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		return memory
	}

	return resolver.NewTiered(memory, resolver.NewRedisCache(rdb, cfg.Cache.RedisPrefix, cfg.Cache.TTL))
}

// Close releases bus connections.
func (c *Container) Close() {
	for _, fn := range c.closers {
		fn()
	}
	_ = c.Logger.Sync()
}
