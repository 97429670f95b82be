// Package aggtype собирает geohash-агрегации для карт: параметры,
// map collar и упорядоченный список агрегаций запроса.
package aggtype

import (
	"errors"

	"github.com/geogrid-service/internal/domain"
	"github.com/geogrid-service/internal/pkg/geohash"
)

// ErrFieldRequired - у агрегации не задано гео-поле
var ErrFieldRequired = errors.New("geohash aggregation: field is required")

// Options - настройки GeoHashAgg
type Options struct {
	Margin       float64
	MaxPrecision int
	GridBounds   domain.GridBoundsSource
}

// GeoHashAgg - тип агрегации geohash_grid
type GeoHashAgg struct {
	params     []Param
	collars    *CollarManager
	mapper     *geohash.Mapper
	gridBounds domain.GridBoundsSource
}

// NewGeoHashAgg создаёт GeoHashAgg. Нулевые опции заменяются значениями по умолчанию.
func NewGeoHashAgg(opts Options) *GeoHashAgg {
	if opts.MaxPrecision == 0 {
		opts.MaxPrecision = geohash.DefaultMaxPrecision
	}
	if opts.GridBounds == "" {
		opts.GridBounds = domain.GridBoundsViewport
	}

	mapper := geohash.NewMapper(opts.MaxPrecision)
	return &GeoHashAgg{
		params: []Param{
			FieldParam{},
			ToggleParam{name: ParamAutoPrecision},
			ToggleParam{name: ParamIsFilteredByCollar},
			ToggleParam{name: ParamUseGeocentroid},
			NewPrecisionParam(mapper),
		},
		collars:    NewCollarManager(opts.Margin),
		mapper:     mapper,
		gridBounds: opts.GridBounds,
	}
}

// Params возвращает описания параметров в порядке объявления
func (a *GeoHashAgg) Params() []Param {
	out := make([]Param, len(a.params))
	copy(out, a.params)
	return out
}

// Param ищет параметр по имени
func (a *GeoHashAgg) Param(name string) (Param, bool) {
	for _, p := range a.params {
		if p.Name() == name {
			return p, true
		}
	}
	return nil, false
}

// Mapper - отображение зума в точность, которым пользуется агрегация
func (a *GeoHashAgg) Mapper() *geohash.Mapper {
	return a.mapper
}

// Collars - менеджер map collar
func (a *GeoHashAgg) Collars() *CollarManager {
	return a.collars
}

// Write вызывает Write у всех параметров
func (a *GeoHashAgg) Write(cfg *AggConfig) *Output {
	out := NewOutput()
	for _, p := range a.params {
		p.Write(cfg, out)
	}
	return out
}

// Result - результат сборки агрегаций
type Result struct {
	Clauses          []domain.AggregationClause
	Precision        int
	Viewport         *domain.BoundingBox
	Collar           *domain.MapCollar
	CollarRecomputed bool
}

// RequestAggs собирает агрегации для текущего состояния карты.
// Collar поддерживается, только когда есть и viewport, и зум.
func (a *GeoHashAgg) RequestAggs(cfg *AggConfig) (*Result, error) {
	if cfg == nil || cfg.Field == "" {
		return nil, ErrFieldRequired
	}

	out := a.Write(cfg)
	precision, _ := out.Precision()

	res := &Result{Precision: precision}

	viewport, hasViewport := cfg.Vis.Viewport()
	if hasViewport {
		res.Viewport = &viewport
	}

	needCollar := cfg.Params.IsFilteredByCollar || a.gridBounds == domain.GridBoundsCollar
	if zoom, hasZoom := cfg.Vis.Zoom(); needCollar && hasViewport && hasZoom {
		collar, recomputed := a.collars.GetOrUpdate(cfg.Vis.Session, viewport, zoom)
		res.Collar = &collar
		res.CollarRecomputed = recomputed
	}

	res.Clauses = BuildAggregations(cfg.Field, cfg.Params.Flags(), res.Collar, res.Viewport, precision, a.gridBounds)
	return res, nil
}

// BuildAggregations собирает упорядоченный список агрегаций:
// filter (если включён и есть collar), geohash_grid (всегда), geo_centroid (если включён).
func BuildAggregations(
	field string,
	flags domain.AggregationFlags,
	collar *domain.MapCollar,
	viewport *domain.BoundingBox,
	precision int,
	gridBounds domain.GridBoundsSource,
) []domain.AggregationClause {
	clauses := make([]domain.AggregationClause, 0, 3)

	if flags.IsFilteredByCollar && collar != nil {
		clauses = append(clauses, filterClause(field, collar.BoundingBox))
	}

	var bounds *domain.BoundingBox
	switch gridBounds {
	case domain.GridBoundsViewport, "":
		bounds = viewport
	case domain.GridBoundsCollar:
		if collar != nil {
			bounds = &collar.BoundingBox
		}
	}
	clauses = append(clauses, gridClause(field, precision, bounds))

	if flags.UseGeocentroid {
		clauses = append(clauses, centroidClause(field))
	}

	return clauses
}

func filterClause(field string, box domain.BoundingBox) domain.AggregationClause {
	topLeft, bottomRight := box.TopLeft, box.BottomRight
	return domain.AggregationClause{
		ID:     domain.FilterAggID,
		Type:   domain.ClauseFilter,
		Schema: domain.SchemaBuckets,
		Params: domain.ClauseParams{
			Field:       field,
			TopLeft:     &topLeft,
			BottomRight: &bottomRight,
			GeoBoundingBox: map[string]interface{}{
				"ignore_unmapped": true,
				field: domain.BoundingBox{
					TopLeft:     topLeft,
					BottomRight: bottomRight,
				},
			},
		},
	}
}

func gridClause(field string, precision int, bounds *domain.BoundingBox) domain.AggregationClause {
	params := domain.ClauseParams{
		Field:     field,
		Precision: &precision,
	}
	if bounds != nil {
		topLeft, bottomRight := bounds.TopLeft, bounds.BottomRight
		params.TopLeft = &topLeft
		params.BottomRight = &bottomRight
	}
	return domain.AggregationClause{
		ID:     domain.GridAggID,
		Type:   domain.ClauseGeohashGrid,
		Schema: domain.SchemaBuckets,
		Params: params,
	}
}

func centroidClause(field string) domain.AggregationClause {
	return domain.AggregationClause{
		ID:     domain.CentroidAggID,
		Type:   domain.ClauseGeoCentroid,
		Schema: domain.SchemaMetric,
		Params: domain.ClauseParams{Field: field},
	}
}
