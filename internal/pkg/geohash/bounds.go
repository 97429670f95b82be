package geohash

import (
	"math"

	"github.com/geogrid-service/internal/domain"
)

// DefaultMargin - доля высоты/ширины viewport, добавляемая с каждой стороны collar
const DefaultMargin = 0.5

// MinCollarDelta - минимальное расширение с каждой стороны. Больше
// погрешности округления до 5 знаков (0.5e-5), поэтому collar строго
// содержит исходный viewport даже для точки.
const MinCollarDelta = 1e-5

// Expand расширяет viewport на margin его высоты и ширины с каждой стороны,
// но не меньше чем на MinCollarDelta. Координаты округляются до 5 знаков,
// широта прижимается к [-90, 90], долгота к [-180, 180].
// Переход через антимеридиан не поддерживается.
func Expand(viewport domain.BoundingBox, margin float64) domain.BoundingBox {
	latDiff := round5(math.Abs(viewport.TopLeft.Lat - viewport.BottomRight.Lat))
	lonDiff := round5(math.Abs(viewport.BottomRight.Lon - viewport.TopLeft.Lon))

	// Только что созданная карта может иметь нулевую высоту
	if latDiff == 0 {
		latDiff = lonDiff
	}

	latDelta := math.Max(latDiff*margin, MinCollarDelta)
	lonDelta := math.Max(lonDiff*margin, MinCollarDelta)

	return domain.NewBoundingBox(
		math.Min(round5(viewport.TopLeft.Lat)+latDelta, 90),
		math.Max(round5(viewport.TopLeft.Lon)-lonDelta, -180),
		math.Max(round5(viewport.BottomRight.Lat)-latDelta, -90),
		math.Min(round5(viewport.BottomRight.Lon)+lonDelta, 180),
	)
}

// Contains сообщает, лежит ли viewport целиком внутри collar (границы включительно)
func Contains(collar, viewport domain.BoundingBox) bool {
	if viewport.TopLeft.Lat > collar.TopLeft.Lat || viewport.TopLeft.Lon < collar.TopLeft.Lon {
		return false
	}
	if viewport.BottomRight.Lat < collar.BottomRight.Lat || viewport.BottomRight.Lon > collar.BottomRight.Lon {
		return false
	}
	return true
}

func round5(v float64) float64 {
	return math.Round(v*1e5) / 1e5
}
