package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/geogrid-service/internal/config"
	"github.com/geogrid-service/internal/pkg/logger"
	"github.com/geogrid-service/internal/repository/cache"
	redisRepo "github.com/geogrid-service/internal/repository/redis"
	"github.com/geogrid-service/internal/usecase"
	"github.com/geogrid-service/internal/worker"
	"github.com/geogrid-service/internal/worker/collarstats"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting collar stats worker",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Duration("read_timeout", cfg.Worker.StreamReadTimeout))

	// 3. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 4. Initialize repositories and use cases
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log, cfg.Worker.StreamReadTimeout)
	statsUC := usecase.NewStatsUseCase(
		cache.NewStatsRepository(redisClient),
		cache.NewCacheRepository(redisClient),
		cfg.Cache.StatsTTL,
		log,
	)

	// 5. Register workers
	workerManager := worker.NewWorkerManager(log, worker.DefaultShutdownTimeout)
	workerManager.Register(collarstats.NewWorker(streamRepo, statsUC, cfg.Worker.ConsumerGroup, log))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// 6. Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
