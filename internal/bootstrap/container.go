package bootstrap

import (
	"context"
	"log"

	"cim-memo-be/internal/config"
	"cim-memo-be/internal/controller"
	"cim-memo-be/internal/handler"
	"cim-memo-be/internal/pkg/logger"
	"cim-memo-be/internal/pkg/mailer"
	"cim-memo-be/internal/repository/memory"
	"cim-memo-be/internal/repository/unitofwork"
	"cim-memo-be/internal/service"
	"cim-memo-be/internal/websocket"
	"cim-memo-be/pkg/converter"
	"cim-memo-be/pkg/gdocs"
	"cim-memo-be/pkg/llm"
	"cim-memo-be/pkg/llm/factory"
	"cim-memo-be/pkg/storage/gcs"

	pktNats "cim-memo-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const eventTopic = "WORKSPACE_EVENTS"

type Container struct {
	// Controllers
	WorkspaceController controller.IWorkspaceController
	SummaryController   controller.ISummaryController
	ChatController      controller.IChatController
	MemoController      controller.IMemoController
	ExportController    controller.IExportController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	ProgressHandler *handler.ProgressHandler
	WebSocketHub    *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	uploader, err := gcs.NewUploader(context.Background(), cfg.Google.Bucket)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize GCS uploader: %v", err)
	}

	var docsExporter *gdocs.Exporter
	if cfg.Google.ServiceAccount != "" {
		docsExporter, err = gdocs.NewExporter(context.Background(), cfg.Google.ServiceAccount)
		if err != nil {
			log.Printf("[WARN] Google Docs exporter unavailable, memo export falls back to pandoc: %v", err)
			docsExporter = nil
		}
	} else {
		log.Printf("[INFO] No service account configured, memo export uses pandoc only")
	}

	pandoc := converter.NewPandocConverter(cfg.Export.PandocPath, cfg.Export.PDFEngine, cfg.Export.Margin)

	// The model gateway is built per request: the model option arrives with
	// the request and the system instruction is fixed per chatbot function.
	gatewayFactory := service.GatewayFactory(func(ctx context.Context, modelOption, chatbotFunction string) (llm.Gateway, error) {
		return factory.NewGateway(ctx, cfg, modelOption, chatbotFunction)
	})

	// Initialize In-Memory Workspace Storage
	workspaceRepo := memory.NewWorkspaceRepository(cfg.App.SessionTTL)

	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
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
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/progress.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Services
	publisherService := service.NewPublisherService(eventTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		eventTopic,
		uowFactory,
		natsPub,
		wsHub, // Hub implements ProgressNotifier
		sysLogger,
	)

	workspaceService := service.NewWorkspaceService(workspaceRepo, uploader, publisherService, cfg, sysLogger)
	summaryService := service.NewSummaryService(workspaceRepo, gatewayFactory, publisherService, cfg.Models.SummaryModel, sysLogger)
	chatService := service.NewChatService(workspaceRepo, gatewayFactory, publisherService, cfg.Models.ChatModel, sysLogger)
	memoService := service.NewMemoService(workspaceRepo, gatewayFactory, publisherService, docsExporter, pandoc, cfg, sysLogger)
	exportService := service.NewExportService(workspaceRepo, pandoc, emailService, publisherService, sysLogger)

	// 4. Controllers
	return &Container{
		ProgressHandler: handler.NewProgressHandler(wsHub, wsLogger),
		WebSocketHub:    wsHub,

		WorkspaceController: controller.NewWorkspaceController(workspaceService),
		SummaryController:   controller.NewSummaryController(summaryService),
		ChatController:      controller.NewChatController(chatService),
		MemoController:      controller.NewMemoController(memoService),
		ExportController:    controller.NewExportController(exportService),

		ConsumerService: consumerService,
	}
}
