package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/geogrid-service/internal/domain/repository"
	"github.com/geogrid-service/internal/repository/postgres"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// NewVisualizationRepositoryForTest creates a visualization repository with test database and logger
func NewVisualizationRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.VisualizationRepository {
	return postgres.NewVisualizationRepository(NewDBForTest(db, logger))
}
