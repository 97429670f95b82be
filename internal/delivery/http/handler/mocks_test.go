package handler_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/geogrid-service/internal/domain"
)

type mockSessionRepository struct {
	mock.Mock
}

func (m *mockSessionRepository) Load(ctx context.Context, id uuid.UUID) (map[string][]byte, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]byte), args.Error(1)
}

func (m *mockSessionRepository) Save(ctx context.Context, id uuid.UUID, values map[string][]byte, ttl time.Duration) error {
	return m.Called(ctx, id, values, ttl).Error(0)
}

func (m *mockSessionRepository) Touch(ctx context.Context, id uuid.UUID, ttl time.Duration) error {
	args := m.Called(ctx, id, ttl)
	return args.Error(0)
}

func (m *mockSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockStreamRepository struct {
	mock.Mock
}

func (m *mockStreamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer)
	return nil, args.Error(1)
}

func (m *mockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	return m.Called(ctx, stream, group, messageID).Error(0)
}

func (m *mockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	return m.Called(ctx, stream, group).Error(0)
}

func (m *mockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	return m.Called(ctx, stream, data).Error(0)
}

type mockVisualizationRepository struct {
	mock.Mock
}

func (m *mockVisualizationRepository) Create(ctx context.Context, vis *domain.Visualization) error {
	return m.Called(ctx, vis).Error(0)
}

func (m *mockVisualizationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Visualization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Visualization), args.Error(1)
}

func (m *mockVisualizationRepository) List(ctx context.Context, limit, offset int) ([]*domain.Visualization, int, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.Visualization), args.Int(1), args.Error(2)
}

func (m *mockVisualizationRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type mockCacheRepository struct {
	mock.Mock
}

func (m *mockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *mockCacheRepository) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockCacheRepository) GetVisualization(ctx context.Context, id uuid.UUID) (*domain.Visualization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Visualization), args.Error(1)
}

func (m *mockCacheRepository) SetVisualization(ctx context.Context, vis *domain.Visualization, ttl time.Duration) error {
	return m.Called(ctx, vis, ttl).Error(0)
}

func (m *mockCacheRepository) DeleteVisualization(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCacheRepository) GetStats(ctx context.Context) (*domain.CollarStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CollarStats), args.Error(1)
}

func (m *mockCacheRepository) SetStats(ctx context.Context, stats *domain.CollarStats, ttl time.Duration) error {
	return m.Called(ctx, stats, ttl).Error(0)
}

type mockStatsRepository struct {
	mock.Mock
}

func (m *mockStatsRepository) IncrementCollar(ctx context.Context, event *domain.CollarUpdatedEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockStatsRepository) GetCollarStats(ctx context.Context) (*domain.CollarStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CollarStats), args.Error(1)
}
