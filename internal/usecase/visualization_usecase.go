package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/geogrid-service/internal/domain"
	"github.com/geogrid-service/internal/domain/repository"
	"github.com/geogrid-service/internal/pkg/errors"
	"github.com/geogrid-service/internal/pkg/metrics"
	"github.com/geogrid-service/internal/usecase/dto"
)

// VisualizationUseCase управляет сохранёнными визуализациями; чтение идёт через кеш
type VisualizationUseCase struct {
	visRepo   repository.VisualizationRepository
	cacheRepo repository.CacheRepository
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// NewVisualizationUseCase создает новый экземпляр VisualizationUseCase
func NewVisualizationUseCase(
	visRepo repository.VisualizationRepository,
	cacheRepo repository.CacheRepository,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *VisualizationUseCase {
	return &VisualizationUseCase{
		visRepo:   visRepo,
		cacheRepo: cacheRepo,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// CreateVisualization сохраняет новую визуализацию
func (uc *VisualizationUseCase) CreateVisualization(ctx context.Context, req dto.CreateVisualizationRequest) (*domain.Visualization, error) {
	vis := &domain.Visualization{
		ID:                 uuid.New(),
		Title:              req.Title,
		Field:              req.Field,
		IsFilteredByCollar: boolOr(req.IsFilteredByCollar, defaultIsFilteredByCollar),
		UseGeocentroid:     boolOr(req.UseGeocentroid, defaultUseGeocentroid),
		AutoPrecision:      boolOr(req.AutoPrecision, defaultAutoPrecision),
		Precision:          defaultPrecision,
	}
	if req.Precision != nil {
		vis.Precision = *req.Precision
	}

	if err := uc.visRepo.Create(ctx, vis); err != nil {
		uc.logger.Error("Failed to create visualization", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	if err := uc.cacheRepo.SetVisualization(ctx, vis, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to cache visualization", zap.String("id", vis.ID.String()), zap.Error(err))
	}

	uc.logger.Info("Visualization created",
		zap.String("id", vis.ID.String()),
		zap.String("field", vis.Field))
	return vis, nil
}

// GetVisualization возвращает визуализацию, используя кеш когда возможно
func (uc *VisualizationUseCase) GetVisualization(ctx context.Context, id uuid.UUID) (*domain.Visualization, error) {
	// 1. Проверяем кеш
	cached, err := uc.cacheRepo.GetVisualization(ctx, id)
	if err == nil && cached != nil {
		metrics.CacheHits.WithLabelValues("visualization").Inc()
		return cached, nil
	}
	if err != nil {
		uc.logger.Warn("Failed to get visualization from cache", zap.String("id", id.String()), zap.Error(err))
	}
	metrics.CacheMisses.WithLabelValues("visualization").Inc()

	// 2. Получаем из БД
	vis, err := uc.visRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Error("Failed to get visualization", zap.String("id", id.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	if vis == nil {
		return nil, errors.ErrVisualizationNotFound
	}

	// 3. Кешируем
	if err := uc.cacheRepo.SetVisualization(ctx, vis, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to cache visualization", zap.String("id", id.String()), zap.Error(err))
	}

	return vis, nil
}

// GetVisualizationByRawID разбирает идентификатор и возвращает визуализацию
func (uc *VisualizationUseCase) GetVisualizationByRawID(ctx context.Context, rawID string) (*domain.Visualization, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, errors.ErrInvalidVisualizationID
	}
	return uc.GetVisualization(ctx, id)
}

// ListVisualizations возвращает страницу визуализаций (без кеша)
func (uc *VisualizationUseCase) ListVisualizations(ctx context.Context, req dto.ListVisualizationsRequest) (*dto.VisualizationListResponse, error) {
	items, total, err := uc.visRepo.List(ctx, req.Limit, req.Offset)
	if err != nil {
		uc.logger.Error("Failed to list visualizations", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &dto.VisualizationListResponse{
		Visualizations: items,
		Total:          total,
	}, nil
}

// DeleteVisualization удаляет визуализацию и её запись в кеше
func (uc *VisualizationUseCase) DeleteVisualization(ctx context.Context, rawID string) error {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return errors.ErrInvalidVisualizationID
	}

	deleted, err := uc.visRepo.Delete(ctx, id)
	if err != nil {
		uc.logger.Error("Failed to delete visualization", zap.String("id", rawID), zap.Error(err))
		return errors.ErrDatabaseError
	}

	if err := uc.cacheRepo.DeleteVisualization(ctx, id); err != nil {
		uc.logger.Warn("Failed to evict visualization from cache", zap.String("id", rawID), zap.Error(err))
	}

	if !deleted {
		return errors.ErrVisualizationNotFound
	}

	uc.logger.Info("Visualization deleted", zap.String("id", rawID))
	return nil
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
