package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stream names
const (
	StreamCollarUpdated = "stream:geogrid:collar"
)

// Причины пересчёта map collar
const (
	CollarReasonInitial     = "initial"
	CollarReasonZoomChanged = "zoom_changed"
	CollarReasonOutOfCollar = "out_of_collar"
)

// AdHocStatsKey - ключ статистики для запросов без сохранённой визуализации
const AdHocStatsKey = "adhoc"

// CollarUpdatedEvent - событие о пересчёте map collar
type CollarUpdatedEvent struct {
	EventID         uuid.UUID  `json:"event_id"`
	SessionID       uuid.UUID  `json:"session_id"`
	VisualizationID *uuid.UUID `json:"visualization_id,omitempty"`
	Field           string     `json:"field"`
	Reason          string     `json:"reason"`
	Collar          MapCollar  `json:"collar"`
	Precision       int        `json:"precision"`
	OccurredAt      time.Time  `json:"occurred_at"`
}

// StatsKey - ключ, под которым событие учитывается в статистике
func (e *CollarUpdatedEvent) StatsKey() string {
	if e.VisualizationID != nil {
		return e.VisualizationID.String()
	}
	return AdHocStatsKey
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
