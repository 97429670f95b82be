package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/geogrid-service/internal/domain"
	"github.com/geogrid-service/internal/domain/repository"
	"github.com/geogrid-service/internal/pkg/errors"
	"github.com/geogrid-service/internal/pkg/metrics"
)

// StatsUseCase обрабатывает бизнес-логику для статистики map collar
type StatsUseCase struct {
	statsRepo repository.StatsRepository
	cacheRepo repository.CacheRepository
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// NewStatsUseCase создает новый экземпляр StatsUseCase
func NewStatsUseCase(
	statsRepo repository.StatsRepository,
	cacheRepo repository.CacheRepository,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *StatsUseCase {
	return &StatsUseCase{
		statsRepo: statsRepo,
		cacheRepo: cacheRepo,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// GetStatistics возвращает статистику, используя кеш когда возможно
func (uc *StatsUseCase) GetStatistics(ctx context.Context) (*domain.CollarStats, error) {
	// 1. Проверяем кеш
	cached, err := uc.cacheRepo.GetStats(ctx)
	if err == nil && cached != nil {
		metrics.CacheHits.WithLabelValues("stats").Inc()
		uc.logger.Debug("Statistics fetched from cache")
		return cached, nil
	}
	if err != nil {
		uc.logger.Warn("Failed to get stats from cache", zap.Error(err))
	}
	metrics.CacheMisses.WithLabelValues("stats").Inc()

	// 2. Читаем счётчики
	stats, err := uc.statsRepo.GetCollarStats(ctx)
	if err != nil {
		uc.logger.Error("Failed to get collar stats", zap.Error(err))
		return nil, errors.ErrCacheError
	}

	// 3. Кешируем на короткое время
	if err := uc.cacheRepo.SetStats(ctx, stats, uc.cacheTTL); err != nil {
		// Не возвращаем ошибку, т.к. данные уже получены
		uc.logger.Warn("Failed to cache stats", zap.Error(err))
	}

	return stats, nil
}

// RecordCollarUpdate учитывает событие пересчёта collar
func (uc *StatsUseCase) RecordCollarUpdate(ctx context.Context, event *domain.CollarUpdatedEvent) error {
	if err := uc.statsRepo.IncrementCollar(ctx, event); err != nil {
		return err
	}
	metrics.CollarEventsConsumed.Inc()
	return nil
}
