package dto

import "github.com/geogrid-service/internal/domain"

// BuildAggregationResponse - результат сборки агрегаций
type BuildAggregationResponse struct {
	SessionID        string                     `json:"session_id"`
	VisualizationID  string                     `json:"visualization_id,omitempty"`
	Field            string                     `json:"field"`
	Precision        int                        `json:"precision"`
	Zoom             *int                       `json:"zoom,omitempty"`
	Viewport         *domain.BoundingBox        `json:"viewport,omitempty"`
	Collar           *domain.MapCollar          `json:"collar,omitempty"`
	CollarRecomputed bool                       `json:"collar_recomputed"`
	Aggregations     []domain.AggregationClause `json:"aggregations"`
	SearchBody       map[string]interface{}     `json:"search_body"`
}

// SessionResponse - сохранённое состояние сессии карты
type SessionResponse struct {
	SessionID string              `json:"session_id"`
	MapBounds *domain.BoundingBox `json:"map_bounds,omitempty"`
	MapZoom   *int                `json:"map_zoom,omitempty"`
	MapCollar *domain.MapCollar   `json:"map_collar,omitempty"`
}

// PrecisionLevel - соответствие зума и точности
type PrecisionLevel struct {
	Zoom      int `json:"zoom"`
	Precision int `json:"precision"`
}

// PrecisionTableResponse - таблица точностей по всем зумам
type PrecisionTableResponse struct {
	MaxPrecision int              `json:"max_precision"`
	Levels       []PrecisionLevel `json:"levels"`
}

// VisualizationListResponse - страница сохранённых визуализаций
type VisualizationListResponse struct {
	Visualizations []*domain.Visualization `json:"visualizations"`
	Total          int                     `json:"total"`
}
