package bootstrap

import (
	"context"
	"log"

	"docedit-be/internal/config"
	"docedit-be/internal/controller"
	"docedit-be/internal/handler"
	"docedit-be/internal/pkg/logger"
	"docedit-be/internal/repository/memory"
	"docedit-be/internal/repository/unitofwork"
	"docedit-be/internal/service"
	"docedit-be/internal/websocket"
	"docedit-be/pkg/store"

	pktNats "docedit-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	DocumentController controller.IDocumentController

	// Background Services (Exposed for main.go to run)
	PreviewConsumer    service.IConsumerService
	ExportAuditService *service.ExportAuditService

	// WebSockets
	DocumentSocketHandler *handler.DocumentSocketHandler
	WebSocketHub          *websocket.Hub

	Sessions *memory.SessionRepository

	Logger logger.ILogger

	natsPub *pktNats.Publisher
	natsSub *pktNats.Subscriber
	rdb     *redis.Client
}

func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())

	// 2. Event Bus (in-process jobs)
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger(cfg.App.SocketLogFilePath)
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run(ctx)

	// Edit sessions live in memory only
	sessionRepo := memory.NewSessionRepository(cfg.Editor.SessionTTL())
	sessionRepo.OnExpired(func(session *store.EditSession) {
		sysLogger.Info("Container", "Edit session closed", map[string]interface{}{
			"session_id":    session.ID,
			"document_id":   session.DocumentID,
			"modifications": session.Ledger.Len(),
		})
		wsHub.SendToSession(session.ID, service.MsgSessionExpired, nil)
	})

	// 4. Services
	// a nil *Publisher must not end up inside a non-nil interface
	var eventPublisher service.EventPublisher
	if natsPub != nil {
		eventPublisher = natsPub
	}

	publisherService := service.NewPublisherService(cfg.Editor.PreviewTopic, pubSub)
	previewConsumer := service.NewPreviewConsumerService(pubSub, cfg.Editor.PreviewTopic, uowFactory, sysLogger)

	documentService := service.NewDocumentService(
		uowFactory,
		sessionRepo,
		publisherService,
		eventPublisher,
		wsHub,
		sysLogger,
		cfg.Editor.MaxDistance,
	)

	var exportAudit *service.ExportAuditService
	if natsSub != nil {
		exportAudit = service.NewExportAuditService(natsSub, uowFactory, sysLogger)
	}

	// 5. Controllers & Handlers
	return &Container{
		DocumentController:    controller.NewDocumentController(documentService),
		DocumentSocketHandler: handler.NewDocumentSocketHandler(documentService, wsHub, wsLogger),
		WebSocketHub:          wsHub,
		Sessions:              sessionRepo,

		PreviewConsumer:    previewConsumer,
		ExportAuditService: exportAudit,

		Logger: sysLogger,

		natsPub: natsPub,
		natsSub: natsSub,
		rdb:     rdb,
	}
}

// Close releases broker connections and flushes the logger.
func (c *Container) Close() {
	if c.natsSub != nil {
		c.natsSub.Close()
	}
	if c.natsPub != nil {
		c.natsPub.Close()
	}
	if c.rdb != nil {
		_ = c.rdb.Close()
	}
	_ = c.Logger.Sync()
}
