package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/geogrid-service/internal/domain"
	"github.com/geogrid-service/internal/domain/repository"
)

const (
	visualizationKeyPrefix = "visualization:"
	statsCacheKey          = "stats:current"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

// GetVisualization получает визуализацию из кеша
func (r *cacheRepository) GetVisualization(ctx context.Context, id uuid.UUID) (*domain.Visualization, error) {
	var vis domain.Visualization
	found, err := r.getJSON(ctx, visualizationKeyPrefix+id.String(), &vis)
	if err != nil || !found {
		return nil, err
	}
	return &vis, nil
}

// SetVisualization сохраняет визуализацию в кеше
func (r *cacheRepository) SetVisualization(ctx context.Context, vis *domain.Visualization, ttl time.Duration) error {
	return r.setJSON(ctx, visualizationKeyPrefix+vis.ID.String(), vis, ttl)
}

// DeleteVisualization удаляет визуализацию из кеша
func (r *cacheRepository) DeleteVisualization(ctx context.Context, id uuid.UUID) error {
	return r.Delete(ctx, visualizationKeyPrefix+id.String())
}

// GetStats получает статистику из кеша
func (r *cacheRepository) GetStats(ctx context.Context) (*domain.CollarStats, error) {
	var stats domain.CollarStats
	found, err := r.getJSON(ctx, statsCacheKey, &stats)
	if err != nil || !found {
		return nil, err
	}
	return &stats, nil
}

// SetStats сохраняет статистику в кеше
func (r *cacheRepository) SetStats(ctx context.Context, stats *domain.CollarStats, ttl time.Duration) error {
	return r.setJSON(ctx, statsCacheKey, stats, ttl)
}

func (r *cacheRepository) getJSON(ctx context.Context, key string, dst interface{}) (bool, error) {
	data, err := r.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}

	if err := json.Unmarshal(data, dst); err != nil {
		r.logger.Error("Failed to unmarshal cached value", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return true, nil
}

func (r *cacheRepository) setJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		r.logger.Error("Failed to marshal value", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("marshal %s: %w", key, err)
	}

	return r.Set(ctx, key, data, ttl)
}
