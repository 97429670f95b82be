package domain

import "fmt"

// ClauseType - тип агрегации в запросе к поисковому движку
type ClauseType string

const (
	ClauseFilter      ClauseType = "filter"
	ClauseGeohashGrid ClauseType = "geohash_grid"
	ClauseGeoCentroid ClauseType = "geo_centroid"
)

// Идентификаторы агрегаций в дереве запроса
const (
	FilterAggID   = "filter_agg"
	GridAggID     = "grid_agg"
	CentroidAggID = "centroid_agg"
)

// Схемы агрегаций
const (
	SchemaBuckets = "buckets"
	SchemaMetric  = "metric"
)

// AggregationFlags - пользовательские переключатели, определяющие набор агрегаций
type AggregationFlags struct {
	IsFilteredByCollar bool `json:"is_filtered_by_collar"`
	UseGeocentroid     bool `json:"use_geocentroid"`
}

// GridBoundsSource - откуда geohash_grid берёт собственный bounding box
type GridBoundsSource string

const (
	GridBoundsViewport GridBoundsSource = "viewport"
	GridBoundsCollar   GridBoundsSource = "collar"
	GridBoundsNone     GridBoundsSource = "none"
)

// ParseGridBoundsSource разбирает строковое значение; пустая строка означает viewport
func ParseGridBoundsSource(s string) (GridBoundsSource, error) {
	switch GridBoundsSource(s) {
	case "", GridBoundsViewport:
		return GridBoundsViewport, nil
	case GridBoundsCollar:
		return GridBoundsCollar, nil
	case GridBoundsNone:
		return GridBoundsNone, nil
	}
	return "", fmt.Errorf("unknown grid bounds source %q", s)
}

// AggregationClause - одна агрегация в упорядоченном списке запроса
type AggregationClause struct {
	ID     string       `json:"id"`
	Type   ClauseType   `json:"type"`
	Schema string       `json:"schema"`
	Params ClauseParams `json:"params"`
}

// ClauseParams - параметры агрегации в формате поискового движка
type ClauseParams struct {
	Field          string                 `json:"field"`
	TopLeft        *GeoPoint              `json:"top_left,omitempty"`
	BottomRight    *GeoPoint              `json:"bottom_right,omitempty"`
	Precision      *int                   `json:"precision,omitempty"`
	GeoBoundingBox map[string]interface{} `json:"geo_bounding_box,omitempty"`
}
