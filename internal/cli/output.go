package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/geogrid-service/internal/domain"
)

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatBox(b domain.BoundingBox) string {
	return fmt.Sprintf("top=%g left=%g bottom=%g right=%g",
		b.TopLeft.Lat, b.TopLeft.Lon, b.BottomRight.Lat, b.BottomRight.Lon)
}

// parseViewport разбирает "top,left,bottom,right"
func parseViewport(raw string) (domain.BoundingBox, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 4 {
		return domain.BoundingBox{}, fmt.Errorf("viewport must be top,left,bottom,right, got %q", raw)
	}

	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return domain.BoundingBox{}, fmt.Errorf("viewport value %q: %w", p, err)
		}
		v[i] = f
	}

	box := domain.NewBoundingBox(v[0], v[1], v[2], v[3])
	if !box.Valid() {
		return domain.BoundingBox{}, fmt.Errorf("viewport %q is not a valid bounding box", raw)
	}
	return box, nil
}
