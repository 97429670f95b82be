package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/geogrid-service/internal/domain"
	"github.com/geogrid-service/internal/domain/repository"
)

const (
	statsCollarKey       = "stats:collar"
	statsCollarReasonKey = "stats:collar:reason"
	statsCollarMetaKey   = "stats:collar:meta"

	metaTotalField       = "total"
	metaLastUpdatedField = "last_updated"
)

// statsRepository накапливает счётчики пересчётов collar в Redis hash
type statsRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewStatsRepository(redis *Redis) repository.StatsRepository {
	return &statsRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *statsRepository) IncrementCollar(ctx context.Context, event *domain.CollarUpdatedEvent) error {
	occurred := event.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now()
	}

	pipe := r.client.TxPipeline()
	pipe.HIncrBy(ctx, statsCollarKey, event.StatsKey(), 1)
	if event.Reason != "" {
		pipe.HIncrBy(ctx, statsCollarReasonKey, event.Reason, 1)
	}
	pipe.HIncrBy(ctx, statsCollarMetaKey, metaTotalField, 1)
	pipe.HSet(ctx, statsCollarMetaKey, metaLastUpdatedField, occurred.UTC().Format(time.RFC3339Nano))

	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("Failed to increment collar stats",
			zap.String("stats_key", event.StatsKey()),
			zap.Error(err))
		return fmt.Errorf("increment collar stats: %w", err)
	}
	return nil
}

func (r *statsRepository) GetCollarStats(ctx context.Context) (*domain.CollarStats, error) {
	pipe := r.client.Pipeline()
	byVis := pipe.HGetAll(ctx, statsCollarKey)
	byReason := pipe.HGetAll(ctx, statsCollarReasonKey)
	meta := pipe.HGetAll(ctx, statsCollarMetaKey)

	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("Failed to read collar stats", zap.Error(err))
		return nil, fmt.Errorf("read collar stats: %w", err)
	}

	stats := &domain.CollarStats{
		Recomputations: parseCounters(byVis.Val()),
		ByReason:       parseCounters(byReason.Val()),
	}

	m := meta.Val()
	if v, ok := m[metaTotalField]; ok {
		stats.Total, _ = strconv.ParseInt(v, 10, 64)
	}
	if v, ok := m[metaLastUpdatedField]; ok {
		if ts, err := time.Parse(time.RFC3339Nano, v); err == nil {
			stats.LastUpdated = ts
		}
	}

	return stats, nil
}

func parseCounters(raw map[string]string) map[string]int64 {
	out := make(map[string]int64, len(raw))
	for k, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			continue
		}
		out[k] = n
	}
	return out
}
