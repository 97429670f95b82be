package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/geogrid-service/internal/domain"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error

	// GetVisualization получает визуализацию из кеша
	GetVisualization(ctx context.Context, id uuid.UUID) (*domain.Visualization, error)

	// SetVisualization сохраняет визуализацию в кеше
	SetVisualization(ctx context.Context, vis *domain.Visualization, ttl time.Duration) error

	// DeleteVisualization удаляет визуализацию из кеша
	DeleteVisualization(ctx context.Context, id uuid.UUID) error

	// GetStats получает статистику из кеша
	GetStats(ctx context.Context) (*domain.CollarStats, error)

	// SetStats сохраняет статистику в кеше
	SetStats(ctx context.Context, stats *domain.CollarStats, ttl time.Duration) error
}
