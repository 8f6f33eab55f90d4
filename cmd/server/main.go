package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"event-planner-api/internal/config"
	"event-planner-api/internal/database"
	"event-planner-api/internal/job"
	"event-planner-api/internal/presence"
	"event-planner-api/internal/repository"
	"event-planner-api/internal/router"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Starting Event Planner API",
		zap.Int("port", cfg.Server.Port),
		zap.String("basePath", cfg.Server.BasePath),
		zap.String("env", cfg.Server.Env))

	db, err := database.NewDB(cfg)
	if err != nil {
		logger.Warn("Failed to connect to PostgreSQL on startup, will retry in background",
			zap.Error(err))
		database.NewAsync(cfg, 5*time.Second)
	} else {
		database.SetDB(db)
		logger.Info("PostgreSQL connected")
	}

	redisClient, err := database.NewRedis(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	logger.Info("Redis connected")

	// Background jobs: presence index compaction each minute, invitation
	// expiry every ten minutes
	store := presence.NewStore(redisClient, logger)
	store.SetTTL(cfg.Presence.TTL())
	invitationRepo := repository.NewInvitationRepository(db)

	c := cron.New()
	if _, err := c.AddJob("@every 1m", job.NewPresenceSweepJob(store, logger)); err != nil {
		logger.Fatal("Failed to schedule presence sweep job", zap.Error(err))
	}
	if _, err := c.AddJob("@every 10m", job.NewInvitationExpiryJob(invitationRepo, logger)); err != nil {
		logger.Fatal("Failed to schedule invitation expiry job", zap.Error(err))
	}
	c.Start()
	defer c.Stop()

	r := router.Setup(cfg, db, redisClient, logger)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info("Event Planner API started successfully", zap.String("address", addr))

	if err := r.Run(addr); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}
