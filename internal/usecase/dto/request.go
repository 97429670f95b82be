package dto

import "github.com/geogrid-service/internal/domain"

// Point - координаты точки; указатели, чтобы 0 не считался отсутствующим значением
type Point struct {
	Lat *float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lon *float64 `json:"lon" validate:"required,min=-180,max=180"`
}

// ToDomain переводит точку в доменную модель
func (p Point) ToDomain() domain.GeoPoint {
	var gp domain.GeoPoint
	if p.Lat != nil {
		gp.Lat = *p.Lat
	}
	if p.Lon != nil {
		gp.Lon = *p.Lon
	}
	return gp
}

// BoundingBox - границы viewport карты
type BoundingBox struct {
	TopLeft     Point `json:"top_left"`
	BottomRight Point `json:"bottom_right"`
}

// ToDomain переводит границы в доменную модель
func (b BoundingBox) ToDomain() domain.BoundingBox {
	return domain.BoundingBox{
		TopLeft:     b.TopLeft.ToDomain(),
		BottomRight: b.BottomRight.ToDomain(),
	}
}

// BuildAggregationRequest - запрос на сборку geohash-агрегаций для текущего состояния карты
type BuildAggregationRequest struct {
	// SessionID - сессия карты; если пусто, создаётся новая
	SessionID string `json:"session_id,omitempty" validate:"omitempty,uuid"`
	// VisualizationID - сохранённая визуализация, из которой берутся настройки
	VisualizationID string `json:"visualization_id,omitempty" validate:"omitempty,uuid"`
	Field           string `json:"field,omitempty" validate:"required_without=VisualizationID,max=255"`

	Viewport *BoundingBox `json:"viewport,omitempty"`
	Zoom     *int         `json:"zoom,omitempty" validate:"omitempty,min=0,max=21"`

	IsFilteredByCollar *bool `json:"is_filtered_by_collar,omitempty"`
	UseGeocentroid     *bool `json:"use_geocentroid,omitempty"`
	AutoPrecision      *bool `json:"auto_precision,omitempty"`
	Precision          *int  `json:"precision,omitempty" validate:"omitempty,min=1,max=12"`
}

// CreateVisualizationRequest - запрос на сохранение визуализации.
// Не заданные флаги получают значения по умолчанию (все включены, precision 2).
type CreateVisualizationRequest struct {
	Title              string `json:"title" validate:"required,min=1,max=255"`
	Field              string `json:"field" validate:"required,min=1,max=255"`
	IsFilteredByCollar *bool  `json:"is_filtered_by_collar,omitempty"`
	UseGeocentroid     *bool  `json:"use_geocentroid,omitempty"`
	AutoPrecision      *bool  `json:"auto_precision,omitempty"`
	Precision          *int   `json:"precision,omitempty" validate:"omitempty,min=1,max=12"`
}

// ListVisualizationsRequest - параметры страницы списка визуализаций
type ListVisualizationsRequest struct {
	Limit  int `json:"limit" validate:"min=1,max=100"`
	Offset int `json:"offset" validate:"min=0"`
}

// PrecisionRequest - запрос точности для зума
type PrecisionRequest struct {
	Zoom *int `json:"zoom,omitempty" validate:"omitempty,min=0,max=21"`
}
