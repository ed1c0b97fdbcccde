package main

import (
	"blood-portal/cmd/config"
	migration "blood-portal/cmd/database/migrate"
	"blood-portal/internal/utils"
	"blood-portal/internal/utils/logging"
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

func main() {
	migrate := flag.Bool("migrate", false, "run database migrations before serving")
	flag.Parse()

	utils.LoadConfig()

	logger, err := logging.New(logging.Options{
		Level:   utils.GetConfig("LOG_LEVEL"),
		Format:  utils.GetConfig("LOG_FORMAT"),
		Service: "blood-portal",
	})
	if err != nil {
		log.Fatalf("error creating logger: %v", err)
	}
	defer logger.Sync()

	db, err := config.ConnectDB()
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}

	if *migrate {
		if err := migration.Migrate(db); err != nil {
			logger.Fatal("migration failed", zap.Error(err))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, cleanup, err := config.NewApp(ctx, db, logger)
	if err != nil {
		logger.Fatal("failed to build app", zap.Error(err))
	}

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
			logger.Warn("shutdown error", zap.Error(err))
		}
	}()

	port := utils.GetConfigOrDefault("APP_PORT", "8080")
	if err := app.Listen(":" + port); err != nil {
		logger.Error("server stopped", zap.Error(err))
	}

	cleanup()
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
