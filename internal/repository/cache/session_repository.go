package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/geogrid-service/internal/domain/repository"
)

const sessionKeyPrefix = "session:"

// sessionRepository хранит слоты сессии в Redis hash session:<id>
type sessionRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewSessionRepository(redis *Redis) repository.SessionRepository {
	return &sessionRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func sessionKey(id uuid.UUID) string {
	return sessionKeyPrefix + id.String()
}

func (r *sessionRepository) Load(ctx context.Context, id uuid.UUID) (map[string][]byte, error) {
	raw, err := r.client.HGetAll(ctx, sessionKey(id)).Result()
	if err != nil {
		r.logger.Error("Failed to load session", zap.String("session_id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("session load error: %w", err)
	}

	values := make(map[string][]byte, len(raw))
	for k, v := range raw {
		values[k] = []byte(v)
	}
	return values, nil
}

func (r *sessionRepository) Save(ctx context.Context, id uuid.UUID, values map[string][]byte, ttl time.Duration) error {
	if len(values) == 0 {
		return nil
	}

	key := sessionKey(id)
	fields := make(map[string]interface{}, len(values))
	for k, v := range values {
		fields[k] = v
	}

	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, key, fields)
	if ttl > 0 {
		pipe.Expire(ctx, key, ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("Failed to save session", zap.String("session_id", id.String()), zap.Error(err))
		return fmt.Errorf("session save error: %w", err)
	}

	r.logger.Debug("Session saved",
		zap.String("session_id", id.String()),
		zap.Int("slots", len(values)),
	)
	return nil
}

func (r *sessionRepository) Touch(ctx context.Context, id uuid.UUID, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := r.client.Expire(ctx, sessionKey(id), ttl).Err(); err != nil {
		r.logger.Error("Failed to touch session", zap.String("session_id", id.String()), zap.Error(err))
		return fmt.Errorf("session touch error: %w", err)
	}
	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		r.logger.Error("Failed to delete session", zap.String("session_id", id.String()), zap.Error(err))
		return fmt.Errorf("session delete error: %w", err)
	}
	return nil
}
