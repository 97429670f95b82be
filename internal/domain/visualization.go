package domain

import (
	"time"

	"github.com/google/uuid"
)

// Visualization - сохранённая geohash-визуализация карты
type Visualization struct {
	ID                 uuid.UUID `json:"id" db:"id"`
	Title              string    `json:"title" db:"title"`
	Field              string    `json:"field" db:"field"`
	IsFilteredByCollar bool      `json:"is_filtered_by_collar" db:"is_filtered_by_collar"`
	UseGeocentroid     bool      `json:"use_geocentroid" db:"use_geocentroid"`
	AutoPrecision      bool      `json:"auto_precision" db:"auto_precision"`
	Precision          int       `json:"precision" db:"precision"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

// Flags - переключатели агрегаций визуализации
func (v *Visualization) Flags() AggregationFlags {
	return AggregationFlags{
		IsFilteredByCollar: v.IsFilteredByCollar,
		UseGeocentroid:     v.UseGeocentroid,
	}
}
