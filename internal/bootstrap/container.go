package bootstrap

import (
	"notes-sharing-be/internal/config"
	"notes-sharing-be/internal/controller"
	"notes-sharing-be/internal/pkg/logger"
	"notes-sharing-be/internal/pkg/serverutils"
	"notes-sharing-be/internal/pkg/token"
	"notes-sharing-be/internal/repository/memory"
	"notes-sharing-be/internal/repository/unitofwork"
	"notes-sharing-be/internal/service"
	natspkg "notes-sharing-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

// Container holds every wired component. Construction is explicit and
// top-down so the dependency graph stays readable.
type Container struct {
	Logger      logger.ILogger
	AuditLogger logger.ILogger

	Tokens *token.Service

	AuthController *controller.AuthController
	NoteController *controller.NoteController

	ConsumerService service.IConsumerService

	eventBus *natspkg.Publisher
}

func NewContainer(cfg *config.Config, db *gorm.DB) *Container {
	appLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	auditLogger := logger.NewIsolatedLogger("note_activity.log")

	uowFactory := unitofwork.NewRepositoryFactory(db)

	tokens := token.NewService(
		cfg.Auth.JWTSecret,
		cfg.Auth.RefreshTokenSecret,
		cfg.Auth.AccessTokenTTL,
		cfg.Auth.RefreshTokenTTL,
	)

	// In-process bus for the note activity audit pipeline.
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NopLogger{},
	)
	publisherService := service.NewPublisherService(pubSub, cfg.App.ActivityTopic, appLogger)
	consumerService := service.NewConsumerService(pubSub, cfg.App.ActivityTopic, auditLogger, appLogger)

	// The NATS bus is optional; auth events are skipped when it is down.
	eventBus, err := natspkg.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		appLogger.Warn("bootstrap", "NATS unavailable, auth events disabled", map[string]interface{}{
			"url":   cfg.App.NatsURL,
			"error": err.Error(),
		})
		eventBus = nil
	}

	identities := memory.NewIdentityCache()
	authGate := serverutils.NewAuthGate(tokens, uowFactory, identities)

	sharingLedger := service.NewSharingLedger(appLogger)
	authService := service.NewAuthService(uowFactory, tokens, eventBus, appLogger)
	noteService := service.NewNoteService(uowFactory, sharingLedger, publisherService, appLogger)

	return &Container{
		Logger:          appLogger,
		AuditLogger:     auditLogger,
		Tokens:          tokens,
		AuthController:  controller.NewAuthController(authService, cfg.Auth.RefreshTokenTTL),
		NoteController:  controller.NewNoteController(noteService, authGate),
		ConsumerService: consumerService,
		eventBus:        eventBus,
	}
}

func (c *Container) Close() {
	if c.eventBus != nil {
		c.eventBus.Close()
	}
	_ = c.Logger.Sync()
	_ = c.AuditLogger.Sync()
}
