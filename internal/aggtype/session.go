package aggtype

import (
	"encoding/json"
	"sort"
)

// Ключи состояния сессии визуализации
const (
	SessionKeyMapCollar = "mapCollar"
	SessionKeyMapBounds = "mapBounds"
	SessionKeyMapZoom   = "mapZoom"
)

// SessionState - внешнее key-value хранилище состояния визуализации.
// Ядро читает его и при необходимости перезаписывает отдельные слоты.
type SessionState interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
}

// MemorySession - SessionState в памяти, запоминающий изменённые ключи
type MemorySession struct {
	values  map[string][]byte
	changed map[string]struct{}
}

// NewMemorySession создаёт пустую сессию
func NewMemorySession() *MemorySession {
	return NewMemorySessionFrom(nil)
}

// NewMemorySessionFrom создаёт сессию из загруженных значений; изменённых ключей нет
func NewMemorySessionFrom(values map[string][]byte) *MemorySession {
	s := &MemorySession{
		values:  make(map[string][]byte, len(values)),
		changed: make(map[string]struct{}),
	}
	for k, v := range values {
		s.values[k] = append([]byte(nil), v...)
	}
	return s
}

func (s *MemorySession) Get(key string) ([]byte, bool) {
	v, ok := s.values[key]
	return v, ok
}

func (s *MemorySession) Set(key string, value []byte) {
	s.values[key] = append([]byte(nil), value...)
	s.changed[key] = struct{}{}
}

// Changed возвращает отсортированный список ключей, записанных после загрузки
func (s *MemorySession) Changed() []string {
	keys := make([]string, 0, len(s.changed))
	for k := range s.changed {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ChangedValues возвращает значения изменённых ключей
func (s *MemorySession) ChangedValues() map[string][]byte {
	out := make(map[string][]byte, len(s.changed))
	for k := range s.changed {
		out[k] = s.values[k]
	}
	return out
}

// Snapshot возвращает копию всех значений
func (s *MemorySession) Snapshot() map[string][]byte {
	out := make(map[string][]byte, len(s.values))
	for k, v := range s.values {
		out[k] = append([]byte(nil), v...)
	}
	return out
}

// ResetChanged забывает изменения, например после сохранения
func (s *MemorySession) ResetChanged() {
	s.changed = make(map[string]struct{})
}

// getJSON читает слот как JSON. Отсутствующий или битый слот считается пустым.
func getJSON(state SessionState, key string, v interface{}) bool {
	if state == nil {
		return false
	}
	data, ok := state.Get(key)
	if !ok || len(data) == 0 {
		return false
	}
	return json.Unmarshal(data, v) == nil
}

// setJSON пишет значение в слот как JSON
func setJSON(state SessionState, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	state.Set(key, data)
	return nil
}
