package bootstrap

import (
	"context"
	"log"

	"text-summarizer-be/internal/config"
	"text-summarizer-be/internal/controller"
	"text-summarizer-be/internal/pkg/logger"
	"text-summarizer-be/internal/pkg/serverutils"
	"text-summarizer-be/internal/repository/contract"
	"text-summarizer-be/internal/repository/implementation"
	"text-summarizer-be/internal/repository/memory"
	"text-summarizer-be/internal/service"
	"text-summarizer-be/pkg/inference"
	"text-summarizer-be/pkg/inference/factory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	SummarizerController controller.ISummarizerController
	SessionController    controller.ISessionController
	StatsController      controller.IStatsController
	PageController       controller.IPageController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger            logger.ILogger
	Tokens            *serverutils.SessionTokens
	SessionCookieName string
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(logger.Options{
		FilePath:   cfg.App.LogFilePath,
		Production: cfg.IsProduction(),
		Level:      cfg.App.LogLevel,
		MaxSizeMB:  cfg.App.LogMaxSizeMB,
		MaxBackups: cfg.App.LogMaxBackups,
		MaxAgeDays: cfg.App.LogMaxAgeDays,
	})

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Inference
	registry, err := factory.NewRegistry(
		cfg.Ai.Provider,
		cfg.Ai.BaseURL,
		cfg.Ai.ApiKey,
		cfg.Ai.RequestTimeout,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize inference provider: %v", err)
	}
	registry.OnBuild = func(key inference.Key) {
		sysLogger.Info("InferenceRegistry", "pipeline built", map[string]interface{}{"key": key.String()})
	}
	log.Printf("[INFO] Using inference provider: %s (%s, %s)", cfg.Ai.Provider, cfg.Ai.SummarizationModel, cfg.Ai.TranslationModel)

	// 4. Session storage
	sessionRepo := newSessionRepository(cfg)

	// 5. Services
	publisherService := service.NewPublisherService(cfg.App.EventsTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.App.EventsTopic, sysLogger)
	sessionService := service.NewSessionService(sessionRepo, sysLogger)
	summarizerService := service.NewSummarizerService(
		registry,
		cfg.Ai.SummarizationModel,
		cfg.Ai.TranslationModel,
		publisherService,
		sysLogger,
	)

	// 6. Controllers
	tokens := serverutils.NewSessionTokens(cfg.Session.Secret)

	pageController := controller.NewPageController(controller.PageControllerConfig{
		Assets: controller.PageAssets{
			Dir:         cfg.Assets.Dir,
			BannerImage: cfg.Assets.BannerImage,
			LogoImage:   cfg.Assets.LogoImage,
		},
		CookieName:       cfg.Session.CookieName,
		SessionTTL:       cfg.Session.TTL,
		SecureCookie:     cfg.IsProduction(),
		MinLengthDefault: cfg.Summary.MinLengthDefault,
		MaxLengthDefault: cfg.Summary.MaxLengthDefault,
	}, sessionService, summarizerService, tokens, sysLogger)

	return &Container{
		SummarizerController: controller.NewSummarizerController(
			summarizerService,
			sessionService,
			cfg.Summary.MinLengthDefault,
			cfg.Summary.MaxLengthDefault,
		),
		SessionController: controller.NewSessionController(
			sessionService,
			summarizerService,
			tokens,
			cfg.Session.CookieName,
			cfg.Session.TTL,
			cfg.IsProduction(),
		),
		StatsController: controller.NewStatsController(consumerService),
		PageController:  pageController,
		ConsumerService: consumerService,
		Logger:            sysLogger,
		Tokens:            tokens,
		SessionCookieName: cfg.Session.CookieName,
	}
}

func newSessionRepository(cfg *config.Config) contract.ISessionRepository {
	if cfg.Session.Store != "redis" {
		log.Printf("[INFO] Using in-memory session store (ttl %s)", cfg.Session.TTL)
		return memory.NewSessionRepository(cfg.Session.TTL, cfg.Session.CleanupInterval)
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
	}
	log.Printf("[INFO] Using Redis session store (ttl %s)", cfg.Session.TTL)
	return implementation.NewRedisSessionRepository(rdb, cfg.Session.TTL)
}
