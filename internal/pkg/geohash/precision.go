// Package geohash содержит чистые функции для geohash-агрегаций:
// выбор точности по уровню зума и геометрию map collar.
package geohash

import (
	"math"
	"strconv"
	"strings"
)

const (
	// MinPrecision и MaxEnginePrecision - диапазон точности, который поддерживает поисковый движок
	MinPrecision       = 1
	MaxEnginePrecision = 12

	// DefaultMaxPrecision - верхняя граница точности для автоматического режима
	DefaultMaxPrecision = 7

	// DefaultPrecision используется, когда литеральное значение не удалось разобрать
	DefaultPrecision = 2

	// MaxZoom - максимальный уровень зума веб-карты
	MaxZoom = 21

	tileSize         = 256
	minGeohashPixels = 16
)

// geohashCells считает число ячеек вдоль оси (0 - столбцы, 1 - строки).
// На нечётных символах строки делятся на 4, столбцы на 8; на чётных наоборот.
func geohashCells(precision, axis int) int {
	cells := 1
	for i := 1; i <= precision; i++ {
		if i%2 == axis {
			cells *= 4
		} else {
			cells *= 8
		}
	}
	return cells
}

// Columns - число geohash-столбцов на весь мир при заданной точности
func Columns(precision int) int {
	return geohashCells(precision, 0)
}

// Rows - число geohash-строк на весь мир при заданной точности
func Rows(precision int) int {
	return geohashCells(precision, 1)
}

// PrecisionTable строит таблицу zoom -> precision для зумов 0..MaxZoom.
// Для каждого зума берётся наибольшая точность, при которой ячейка
// занимает на тайловой карте не меньше minGeohashPixels пикселей.
func PrecisionTable(maxPrecision int) []int {
	maxPrecision = ClampPrecision(maxPrecision, MaxEnginePrecision)

	table := make([]int, MaxZoom+1)
	for zoom := 0; zoom <= MaxZoom; zoom++ {
		worldPixels := tileSize * math.Pow(2, float64(zoom))
		table[zoom] = MinPrecision
		for precision := MinPrecision + 1; precision <= maxPrecision; precision++ {
			if worldPixels/float64(Columns(precision)) < minGeohashPixels {
				break
			}
			table[zoom] = precision
		}
	}
	return table
}

// Mapper - отображение зума в точность с фиксированной верхней границей
type Mapper struct {
	maxPrecision int
	table        []int
}

// NewMapper создаёт Mapper; maxPrecision приводится к [1, 12]
func NewMapper(maxPrecision int) *Mapper {
	maxPrecision = ClampPrecision(maxPrecision, MaxEnginePrecision)
	return &Mapper{
		maxPrecision: maxPrecision,
		table:        PrecisionTable(maxPrecision),
	}
}

var defaultMapper = NewMapper(DefaultMaxPrecision)

// Precision возвращает точность для зума. Зум вне 0..MaxZoom прижимается к краю таблицы.
func (m *Mapper) Precision(zoom int) int {
	if zoom < 0 {
		zoom = 0
	}
	if zoom > MaxZoom {
		zoom = MaxZoom
	}
	return m.table[zoom]
}

// MaxPrecision - верхняя граница точности этого Mapper
func (m *Mapper) MaxPrecision() int {
	return m.maxPrecision
}

// Table возвращает копию таблицы zoom -> precision
func (m *Mapper) Table() []int {
	out := make([]int, len(m.table))
	copy(out, m.table)
	return out
}

// ZoomToPrecision - точность для зума с границей по умолчанию (7)
func ZoomToPrecision(zoom int) int {
	return defaultMapper.Precision(zoom)
}

// ClampPrecision приводит точность к диапазону [MinPrecision, max]
func ClampPrecision(precision, max int) int {
	if max > MaxEnginePrecision {
		max = MaxEnginePrecision
	}
	if max < MinPrecision {
		max = MinPrecision
	}
	if precision < MinPrecision {
		return MinPrecision
	}
	if precision > max {
		return max
	}
	return precision
}

// ParsePrecision разбирает литеральную точность. Мусор даёт DefaultPrecision.
func ParsePrecision(raw string, max int) int {
	precision, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		precision = DefaultPrecision
	}
	return ClampPrecision(precision, max)
}
