package aggtype

import (
	"strconv"

	"github.com/geogrid-service/internal/domain"
	"github.com/geogrid-service/internal/pkg/geohash"
)

// Имена параметров geohash-агрегации
const (
	ParamField              = "field"
	ParamAutoPrecision      = "autoPrecision"
	ParamIsFilteredByCollar = "isFilteredByCollar"
	ParamUseGeocentroid     = "useGeocentroid"
	ParamPrecision          = "precision"
)

// AggParams - значения параметров, выбранные пользователем
type AggParams struct {
	IsFilteredByCollar bool
	UseGeocentroid     bool
	AutoPrecision      bool
	// Precision - литеральная точность, как её ввёл пользователь
	Precision string
}

// Flags возвращает переключатели набора агрегаций
func (p AggParams) Flags() domain.AggregationFlags {
	return domain.AggregationFlags{
		IsFilteredByCollar: p.IsFilteredByCollar,
		UseGeocentroid:     p.UseGeocentroid,
	}
}

// Vis - визуализация, к которой относится агрегация
type Vis struct {
	// Session - состояние сессии (viewport, collar)
	Session SessionState
	// UIState - состояние UI; может отсутствовать
	UIState SessionState
	// MapZoom - зум из параметров визуализации, используется без UI state
	MapZoom *int
}

// HasUIState сообщает, подключено ли состояние UI
func (v *Vis) HasUIState() bool {
	return v != nil && v.UIState != nil
}

// Zoom возвращает текущий зум. Ноль - допустимое значение,
// отсутствие зума определяется только по наличию слота.
func (v *Vis) Zoom() (int, bool) {
	if v == nil {
		return 0, false
	}
	if v.HasUIState() {
		var zoom int
		if getJSON(v.UIState, SessionKeyMapZoom, &zoom) {
			return zoom, true
		}
	}
	if v.MapZoom != nil {
		return *v.MapZoom, true
	}
	return 0, false
}

// Viewport читает текущие границы карты из состояния сессии
func (v *Vis) Viewport() (domain.BoundingBox, bool) {
	if v == nil {
		return domain.BoundingBox{}, false
	}
	var bounds domain.BoundingBox
	if !getJSON(v.Session, SessionKeyMapBounds, &bounds) {
		return domain.BoundingBox{}, false
	}
	return bounds, true
}

// AggConfig - сконфигурированная агрегация
type AggConfig struct {
	Field  string
	Params AggParams
	Vis    *Vis
}

// Output накапливает параметры, которые уйдут в запрос
type Output struct {
	Params map[string]interface{}
}

// NewOutput создаёт пустой Output
func NewOutput() *Output {
	return &Output{Params: make(map[string]interface{})}
}

// Precision возвращает записанную точность
func (o *Output) Precision() (int, bool) {
	p, ok := o.Params[ParamPrecision].(int)
	return p, ok
}

// Param - описание параметра агрегации. Write вызывается перед
// финализацией запроса и переносит значение параметра в output.
type Param interface {
	Name() string
	Write(cfg *AggConfig, out *Output)
}

// FieldParam пишет имя гео-поля
type FieldParam struct{}

func (FieldParam) Name() string { return ParamField }

func (FieldParam) Write(cfg *AggConfig, out *Output) {
	out.Params[ParamField] = cfg.Field
}

// ToggleParam - булев переключатель набора агрегаций
type ToggleParam struct {
	name string
}

func (p ToggleParam) Name() string { return p.name }

func (p ToggleParam) Write(cfg *AggConfig, out *Output) {
	switch p.name {
	case ParamAutoPrecision:
		out.Params[p.name] = cfg.Params.AutoPrecision
	case ParamIsFilteredByCollar:
		out.Params[p.name] = cfg.Params.IsFilteredByCollar
	case ParamUseGeocentroid:
		out.Params[p.name] = cfg.Params.UseGeocentroid
	}
}

// PrecisionParam пишет точность geohash-сетки: по зуму при autoPrecision,
// иначе литеральное значение пользователя.
type PrecisionParam struct {
	mapper *geohash.Mapper
}

// NewPrecisionParam создаёт PrecisionParam поверх Mapper
func NewPrecisionParam(mapper *geohash.Mapper) *PrecisionParam {
	return &PrecisionParam{mapper: mapper}
}

func (p *PrecisionParam) Name() string { return ParamPrecision }

func (p *PrecisionParam) Write(cfg *AggConfig, out *Output) {
	out.Params[ParamPrecision] = p.resolve(cfg)
}

func (p *PrecisionParam) resolve(cfg *AggConfig) int {
	if cfg.Params.AutoPrecision {
		if zoom, ok := cfg.Vis.Zoom(); ok {
			return p.mapper.Precision(zoom)
		}
	}
	return geohash.ParsePrecision(cfg.Params.Precision, p.mapper.MaxPrecision())
}

// FormatPrecision переводит точность в литеральное значение параметра
func FormatPrecision(precision int) string {
	return strconv.Itoa(precision)
}
