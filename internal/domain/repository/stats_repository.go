package repository

import (
	"context"

	"github.com/geogrid-service/internal/domain"
)

// StatsRepository интерфейс для работы со статистикой map collar
type StatsRepository interface {
	// IncrementCollar учитывает событие пересчёта collar
	IncrementCollar(ctx context.Context, event *domain.CollarUpdatedEvent) error

	// GetCollarStats возвращает накопленную статистику
	GetCollarStats(ctx context.Context) (*domain.CollarStats, error)
}
