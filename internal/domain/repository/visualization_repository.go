package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/geogrid-service/internal/domain"
)

// VisualizationRepository - хранилище сохранённых визуализаций
type VisualizationRepository interface {
	// Create сохраняет новую визуализацию
	Create(ctx context.Context, vis *domain.Visualization) error

	// GetByID возвращает визуализацию; nil, nil если её нет
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Visualization, error)

	// List возвращает страницу визуализаций и общее количество
	List(ctx context.Context, limit, offset int) ([]*domain.Visualization, int, error)

	// Delete удаляет визуализацию; false если её не было
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
