package domain

import "time"

// CollarStats - статистика пересчётов map collar
type CollarStats struct {
	// Recomputations - число пересчётов по визуализации (или "adhoc")
	Recomputations map[string]int64 `json:"recomputations"`
	// ByReason - число пересчётов по причине
	ByReason    map[string]int64 `json:"by_reason"`
	Total       int64            `json:"total"`
	LastUpdated time.Time        `json:"last_updated"`
}
