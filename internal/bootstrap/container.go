package bootstrap

import (
	"context"
	"log"
	"time"

	"hustlee-be/internal/config"
	"hustlee-be/internal/controller"
	"hustlee-be/internal/handler"
	"hustlee-be/internal/pkg/logger"
	"hustlee-be/internal/pkg/mailer"
	"hustlee-be/internal/repository/implementation"
	"hustlee-be/internal/repository/unitofwork"
	"hustlee-be/internal/service"
	"hustlee-be/internal/websocket"
	"hustlee-be/pkg/lock"

	pktNats "hustlee-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController       controller.IAuthController
	OAuthController      controller.IOAuthController
	UserController       controller.IUserController
	MentorController     controller.IMentorController
	SessionController    controller.ISessionController
	MentorshipController controller.IMentorshipController

	// Background services, run from main.go
	ConsumerService service.IConsumerService

	// WebSockets & notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	sysLogger.Info("Bootstrap", "Wiring application container", map[string]interface{}{
		"environment": cfg.App.Environment,
	})

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event bus (in-process queue for confirmation emails)
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
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
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// Per-mentor calendar lock guarding the conflict check during booking
	calendarLock := lock.NewCalendarLock(rdb, time.Duration(cfg.Booking.CalendarLockTTL)*time.Second)

	// Mentor profile cache
	profileCache := gocache.New(5*time.Minute, 10*time.Minute)

	// WebSocket hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Services
	publisherService := service.NewPublisherService(cfg.Booking.ConfirmationTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Booking.ConfirmationTopic,
		emailService,
	)

	authService := service.NewAuthService(uowFactory, emailService, natsPub)
	oauthService := service.NewOAuthService(uowFactory)
	userService := service.NewUserService(uowFactory)
	mentorService := service.NewMentorService(uowFactory, profileCache)

	sessionService := service.NewSessionService(
		uowFactory,
		calendarLock,
		natsPub,
		publisherService,
		profileCache,
	)
	mentorshipService := service.NewMentorshipService(
		uowFactory,
		calendarLock,
		natsPub,
		publisherService,
		profileCache,
	)

	// 3.5 Notification system
	notifRepo := implementation.NewNotificationRepository(db)
	notifService := service.NewNotificationService(notifRepo, natsSub, wsHub, wsLogger)

	if natsSub != nil {
		go notifService.Start()
	}

	notifHandler := handler.NewNotificationHandler(notifService, wsHub, wsLogger)

	// 4. Controllers
	return &Container{
		AuthController:       controller.NewAuthController(authService),
		OAuthController:      controller.NewOAuthController(oauthService),
		UserController:       controller.NewUserController(userService),
		MentorController:     controller.NewMentorController(mentorService),
		SessionController:    controller.NewSessionController(sessionService),
		MentorshipController: controller.NewMentorshipController(mentorshipService),

		ConsumerService: consumerService,

		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,
	}
}
