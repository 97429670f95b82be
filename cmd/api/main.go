package main

// @title GeoGrid Service API
// @version 1.0.0
// @description Сервис сборки geohash-агрегаций для карт. Хранит состояние сессии карты (viewport, зум, map collar) в Redis, выбирает точность geohash по зуму и возвращает упорядоченный список агрегаций вместе с телом поискового запроса.
// @description
// @description Основные возможности:
// @description - Сборка filter / geohash_grid / geo_centroid агрегаций
// @description - Кеширование map collar между перемещениями карты
// @description - Сохранённые визуализации
// @description - Статистика пересчётов collar

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/geogrid-service/docs/swagger"
	"github.com/geogrid-service/internal/aggtype"
	"github.com/geogrid-service/internal/config"
	httpDelivery "github.com/geogrid-service/internal/delivery/http"
	"github.com/geogrid-service/internal/delivery/http/handler"
	"github.com/geogrid-service/internal/pkg/logger"
	"github.com/geogrid-service/internal/repository/cache"
	"github.com/geogrid-service/internal/repository/postgres"
	redisRepo "github.com/geogrid-service/internal/repository/redis"
	"github.com/geogrid-service/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting GeoGrid Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.Float64("collar_margin", cfg.Geohash.CollarMargin),
		zap.Int("max_precision", cfg.Geohash.MaxPrecision),
		zap.String("grid_bounds", string(cfg.Geohash.GridBounds)),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Initialize repositories
	visualizationRepo := postgres.NewVisualizationRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	sessionRepo := cache.NewSessionRepository(redisClient)
	statsRepo := cache.NewStatsRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log, 0)

	// 6. Initialize use cases
	geohashAgg := aggtype.NewGeoHashAgg(aggtype.Options{
		Margin:       cfg.Geohash.CollarMargin,
		MaxPrecision: cfg.Geohash.MaxPrecision,
		GridBounds:   cfg.Geohash.GridBounds,
	})

	visualizationUC := usecase.NewVisualizationUseCase(visualizationRepo, cacheRepo, cfg.Cache.VisualizationTTL, log)
	aggregationUC := usecase.NewAggregationUseCase(
		geohashAgg,
		sessionRepo,
		streamRepo,
		visualizationUC,
		cfg.Cache.SessionTTL,
		log,
	)
	statsUC := usecase.NewStatsUseCase(statsRepo, cacheRepo, cfg.Cache.StatsTTL, log)

	// 7. Initialize HTTP handlers and server
	server := httpDelivery.NewServer(
		cfg,
		log,
		handler.NewAggregationHandler(aggregationUC, log),
		handler.NewVisualizationHandler(visualizationUC, log),
		handler.NewStatsHandler(statsUC, log),
		map[string]httpDelivery.HealthChecker{
			"postgres": db,
			"redis":    redisClient,
		},
	)

	// 8. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully", zap.String("address", cfg.GetServerAddr()))

	// 9. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}
