package domain

// GeoPoint - точка в координатах WGS 84
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// BoundingBox - прямоугольная область, заданная северо-западным и юго-восточным углами.
// Значение неизменяемое: при пересчёте создаётся новый экземпляр.
type BoundingBox struct {
	TopLeft     GeoPoint `json:"top_left"`
	BottomRight GeoPoint `json:"bottom_right"`
}

// NewBoundingBox создаёт BoundingBox из границ top/left/bottom/right
func NewBoundingBox(top, left, bottom, right float64) BoundingBox {
	return BoundingBox{
		TopLeft:     GeoPoint{Lat: top, Lon: left},
		BottomRight: GeoPoint{Lat: bottom, Lon: right},
	}
}

// Valid проверяет, что углы не перепутаны и координаты в допустимых пределах
func (b BoundingBox) Valid() bool {
	if b.TopLeft.Lat < b.BottomRight.Lat || b.TopLeft.Lon > b.BottomRight.Lon {
		return false
	}
	return validLat(b.TopLeft.Lat) && validLat(b.BottomRight.Lat) &&
		validLon(b.TopLeft.Lon) && validLon(b.BottomRight.Lon)
}

// Height - высота области в градусах широты
func (b BoundingBox) Height() float64 {
	return b.TopLeft.Lat - b.BottomRight.Lat
}

// Width - ширина области в градусах долготы
func (b BoundingBox) Width() float64 {
	return b.BottomRight.Lon - b.TopLeft.Lon
}

// MapCollar - закешированная область вокруг viewport и зум, на котором она посчитана
type MapCollar struct {
	BoundingBox
	Zoom int `json:"zoom"`
}

func validLat(lat float64) bool {
	return lat >= -90 && lat <= 90
}

func validLon(lon float64) bool {
	return lon >= -180 && lon <= 180
}
