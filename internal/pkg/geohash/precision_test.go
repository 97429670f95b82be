package geohash_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/geogrid-service/internal/pkg/geohash"
)

var zoomToGeohashPrecision = map[int]int{
	0: 1, 1: 2, 2: 2, 3: 2, 4: 3, 5: 3, 6: 4, 7: 4, 8: 4, 9: 5, 10: 5,
	11: 6, 12: 6, 13: 6, 14: 7, 15: 7, 16: 7, 17: 7, 18: 7, 19: 7, 20: 7, 21: 7,
}

func TestZoomToPrecision(t *testing.T) {
	for zoom := 0; zoom <= geohash.MaxZoom; zoom++ {
		zoom := zoom
		t.Run(fmt.Sprintf("zoom %d", zoom), func(t *testing.T) {
			assert.Equal(t, zoomToGeohashPrecision[zoom], geohash.ZoomToPrecision(zoom))
		})
	}
}

func TestZoomToPrecision_ZoomZeroIsValid(t *testing.T) {
	// zoom 0 is a real zoom level, not "no zoom"
	assert.Equal(t, 1, geohash.ZoomToPrecision(0))
}

func TestZoomToPrecision_Clamps(t *testing.T) {
	assert.Equal(t, 1, geohash.ZoomToPrecision(-3))
	assert.Equal(t, 7, geohash.ZoomToPrecision(22))
	assert.Equal(t, 7, geohash.ZoomToPrecision(100))
}

func TestZoomToPrecision_Monotonic(t *testing.T) {
	prev := 0
	for zoom := 0; zoom <= geohash.MaxZoom; zoom++ {
		p := geohash.ZoomToPrecision(zoom)
		assert.GreaterOrEqual(t, p, prev, "zoom %d", zoom)
		prev = p
	}
}

func TestColumnsAndRows(t *testing.T) {
	assert.Equal(t, 8, geohash.Columns(1))
	assert.Equal(t, 4, geohash.Rows(1))
	assert.Equal(t, 32, geohash.Columns(2))
	assert.Equal(t, 32, geohash.Rows(2))
	assert.Equal(t, 262144, geohash.Columns(7))
}

func TestMapper(t *testing.T) {
	t.Run("lower max precision caps the table", func(t *testing.T) {
		m := geohash.NewMapper(4)
		assert.Equal(t, 4, m.MaxPrecision())
		assert.Equal(t, 1, m.Precision(0))
		assert.Equal(t, 3, m.Precision(4))
		assert.Equal(t, 4, m.Precision(6))
		assert.Equal(t, 4, m.Precision(21))
	})

	t.Run("higher max precision keeps low zooms unchanged", func(t *testing.T) {
		m := geohash.NewMapper(12)
		for zoom := 0; zoom <= 13; zoom++ {
			assert.Equal(t, zoomToGeohashPrecision[zoom], m.Precision(zoom), "zoom %d", zoom)
		}
		assert.Equal(t, 10, m.Precision(21))
	})

	t.Run("max precision is clamped to engine range", func(t *testing.T) {
		assert.Equal(t, 12, geohash.NewMapper(40).MaxPrecision())
		assert.Equal(t, 1, geohash.NewMapper(0).MaxPrecision())
	})

	t.Run("table is a copy", func(t *testing.T) {
		m := geohash.NewMapper(7)
		table := m.Table()
		table[0] = 99
		assert.Equal(t, 1, m.Precision(0))
	})
}

func TestClampPrecision(t *testing.T) {
	assert.Equal(t, 1, geohash.ClampPrecision(0, 7))
	assert.Equal(t, 1, geohash.ClampPrecision(-5, 7))
	assert.Equal(t, 5, geohash.ClampPrecision(5, 7))
	assert.Equal(t, 7, geohash.ClampPrecision(9, 7))
	assert.Equal(t, 12, geohash.ClampPrecision(20, 30))
}

func TestParsePrecision(t *testing.T) {
	assert.Equal(t, 4, geohash.ParsePrecision("4", 7))
	assert.Equal(t, 4, geohash.ParsePrecision(" 4 ", 7))
	assert.Equal(t, 7, geohash.ParsePrecision("11", 7))
	assert.Equal(t, geohash.DefaultPrecision, geohash.ParsePrecision("abc", 7))
	assert.Equal(t, geohash.DefaultPrecision, geohash.ParsePrecision("", 7))
}
