package aggtype

import (
	"github.com/geogrid-service/internal/domain"
	"github.com/geogrid-service/internal/pkg/geohash"
)

// CollarManager решает, можно ли переиспользовать сохранённый map collar
// или его нужно пересчитать. Единственный побочный эффект - запись
// нового collar в слот mapCollar состояния сессии.
type CollarManager struct {
	margin float64
}

// NewCollarManager создаёт CollarManager; margin <= 0 заменяется на geohash.DefaultMargin
func NewCollarManager(margin float64) *CollarManager {
	if margin <= 0 {
		margin = geohash.DefaultMargin
	}
	return &CollarManager{margin: margin}
}

// Margin - доля расширения viewport
func (m *CollarManager) Margin() float64 {
	return m.margin
}

// GetOrUpdate возвращает действующий collar и признак пересчёта.
// Collar пересчитывается, если его нет, если изменился зум или если
// viewport вышел за его границы. Иначе состояние не трогается.
func (m *CollarManager) GetOrUpdate(state SessionState, viewport domain.BoundingBox, zoom int) (domain.MapCollar, bool) {
	if stored, ok := LoadCollar(state); ok {
		if stored.Zoom == zoom && geohash.Contains(stored.BoundingBox, viewport) {
			return stored, false
		}
	}

	collar := domain.MapCollar{
		BoundingBox: geohash.Expand(viewport, m.margin),
		Zoom:        zoom,
	}
	// MapCollar состоит только из чисел, маршалинг не падает
	_ = setJSON(state, SessionKeyMapCollar, collar)

	return collar, true
}

// LoadCollar читает collar из состояния сессии
func LoadCollar(state SessionState) (domain.MapCollar, bool) {
	var collar domain.MapCollar
	if !getJSON(state, SessionKeyMapCollar, &collar) {
		return domain.MapCollar{}, false
	}
	return collar, true
}
