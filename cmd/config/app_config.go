package config

import (
	"blood-portal/internal/api/handlers"
	"blood-portal/internal/api/routes"
	"blood-portal/internal/middleware"
	"blood-portal/internal/utils"
	"blood-portal/internal/utils/mailing"
	"blood-portal/internal/utils/storage"
	"blood-portal/pkg/assignment"
	"blood-portal/pkg/bloodrequest"
	"blood-portal/pkg/donation"
	"blood-portal/pkg/donor"
	"blood-portal/pkg/inventory"
	"blood-portal/pkg/jwt"
	"blood-portal/pkg/notification"
	"context"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewApp wires every service onto a fiber app. The returned cleanup waits
// for background work and closes outbound clients.
func NewApp(ctx context.Context, db *gorm.DB, log *zap.Logger) (*fiber.App, func(), error) {
	jwtService, err := jwt.NewJWTService()
	if err != nil {
		return nil, nil, err
	}

	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	if err := os.MkdirAll("./logs", os.ModePerm); err != nil {
		return nil, nil, err
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		return nil, nil, err
	}
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   utils.GetConfigOrDefault("DB_TIMEZONE", "Asia/Dhaka"),
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3, err := storage.NewAwsS3(ctx)
	if err != nil {
		log.Warn("s3 storage unavailable, report archiving disabled", zap.Error(err))
		s3 = nil
	}
	mailer, err := mailing.NewMailer(ctx)
	if err != nil {
		log.Warn("mailer unavailable, assignment emails disabled", zap.Error(err))
		mailer = nil
	}

	publisher := notification.NewNopPublisher()
	var redisClient *redis.Client
	if addr := utils.GetConfig("REDIS_ADDR"); addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: utils.GetConfig("REDIS_PASSWORD"),
			DB:       utils.GetConfigInt("REDIS_DB", 0),
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn("redis not reachable, notifications will be retried per publish", zap.String("addr", addr), zap.Error(err))
		}
		publisher = notification.NewRedisPublisher(redisClient)
	}

	// Repository
	bloodRequestRepository := bloodrequest.NewBloodRequestRepository(db)
	inventoryRepository := inventory.NewInventoryRepository(db)
	donorRepository := donor.NewDonorRepository(db)
	donationRepository := donation.NewDonationRepository(db)
	notificationRepository := notification.NewNotificationRepository(db)
	assignmentRepository := assignment.NewAssignmentRepository(db)

	// Service
	notificationService := notification.NewNotificationService(notificationRepository, publisher, log)
	bloodRequestService := bloodrequest.NewBloodRequestService(bloodRequestRepository, notificationService, log)
	inventoryService := inventory.NewInventoryService(inventoryRepository, s3, log)
	donorService := donor.NewDonorService(donorRepository)
	donationService := donation.NewDonationService(donationRepository)
	assignmentService := assignment.NewAssignmentService(
		assignmentRepository,
		bloodRequestService,
		donorService,
		notificationService,
		mailer,
		log,
		assignment.Config{AppURL: utils.GetConfig("APP_URL")},
	)

	// Handler
	bloodRequestHandler := handlers.NewBloodRequestHandler(bloodRequestService, assignmentService, validator)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService, validator)
	donationHandler := handlers.NewDonationHandler(donationService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// routes
	routesConfig := routes.Config{
		App:                 app,
		BloodRequestHandler: bloodRequestHandler,
		InventoryHandler:    inventoryHandler,
		DonationHandler:     donationHandler,
		NotificationHandler: notificationHandler,
		Middleware:          middlewares,
		JWTService:          jwtService,
	}
	routesConfig.Setup()

	cleanup := func() {
		assignmentService.Drain()
		if redisClient != nil {
			_ = redisClient.Close()
		}
		_ = file.Close()
	}
	return app, cleanup, nil
}
