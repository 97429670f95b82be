package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionRepository хранит состояние сессии визуализации как набор именованных слотов
type SessionRepository interface {
	// Load возвращает все слоты сессии; для неизвестной сессии - пустую map
	Load(ctx context.Context, id uuid.UUID) (map[string][]byte, error)

	// Save перезаписывает только переданные слоты и продлевает TTL
	Save(ctx context.Context, id uuid.UUID, values map[string][]byte, ttl time.Duration) error

	// Touch продлевает TTL существующей сессии без записи слотов
	Touch(ctx context.Context, id uuid.UUID, ttl time.Duration) error

	// Delete удаляет сессию целиком
	Delete(ctx context.Context, id uuid.UUID) error
}
