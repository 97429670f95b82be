package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/geogrid-service/internal/domain"
	"github.com/geogrid-service/internal/domain/repository"
)

const visualizationColumns = `id, title, field, is_filtered_by_collar, use_geocentroid,
	auto_precision, precision, created_at, updated_at`

type visualizationRepository struct {
	db *DB
}

// NewVisualizationRepository создает репозиторий сохранённых визуализаций
func NewVisualizationRepository(db *DB) repository.VisualizationRepository {
	return &visualizationRepository{db: db}
}

func (r *visualizationRepository) Create(ctx context.Context, vis *domain.Visualization) error {
	if vis.ID == uuid.Nil {
		vis.ID = uuid.New()
	}
	now := time.Now().UTC()
	if vis.CreatedAt.IsZero() {
		vis.CreatedAt = now
	}
	vis.UpdatedAt = now

	query := `
		INSERT INTO geohash_visualizations (` + visualizationColumns + `)
		VALUES (:id, :title, :field, :is_filtered_by_collar, :use_geocentroid,
			:auto_precision, :precision, :created_at, :updated_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, vis); err != nil {
		r.db.logger.Error("failed to create visualization",
			zap.String("id", vis.ID.String()),
			zap.Error(err))
		return fmt.Errorf("create visualization: %w", err)
	}

	return nil
}

func (r *visualizationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Visualization, error) {
	query := `SELECT ` + visualizationColumns + ` FROM geohash_visualizations WHERE id = $1`

	var vis domain.Visualization
	err := r.db.GetContext(ctx, &vis, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.db.logger.Error("failed to get visualization",
			zap.String("id", id.String()),
			zap.Error(err))
		return nil, fmt.Errorf("get visualization: %w", err)
	}

	return &vis, nil
}

func (r *visualizationRepository) List(ctx context.Context, limit, offset int) ([]*domain.Visualization, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM geohash_visualizations`); err != nil {
		r.db.logger.Error("failed to count visualizations", zap.Error(err))
		return nil, 0, fmt.Errorf("count visualizations: %w", err)
	}

	query := `
		SELECT ` + visualizationColumns + `
		FROM geohash_visualizations
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2
	`

	visualizations := make([]*domain.Visualization, 0, limit)
	if err := r.db.SelectContext(ctx, &visualizations, query, limit, offset); err != nil {
		r.db.logger.Error("failed to list visualizations", zap.Error(err))
		return nil, 0, fmt.Errorf("list visualizations: %w", err)
	}

	return visualizations, total, nil
}

func (r *visualizationRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM geohash_visualizations WHERE id = $1`, id)
	if err != nil {
		r.db.logger.Error("failed to delete visualization",
			zap.String("id", id.String()),
			zap.Error(err))
		return false, fmt.Errorf("delete visualization: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete visualization rows affected: %w", err)
	}
	return n > 0, nil
}
