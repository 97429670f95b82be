package validator_test

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geogrid-service/internal/pkg/errors"
	"github.com/geogrid-service/internal/pkg/validator"
)

type point struct {
	Lat *float64 `validate:"required,min=-90,max=90"`
	Lon *float64 `validate:"required,min=-180,max=180"`
}

type request struct {
	Zoom       *int   `validate:"required,min=0,max=30"`
	Point      point
	GridBounds string `validate:"grid_bounds"`
}

func ptr[T any](v T) *T { return &v }

func TestValidate(t *testing.T) {
	t.Run("zero values behind pointers are valid", func(t *testing.T) {
		err := validator.Validate(&request{
			Zoom:  ptr(0),
			Point: point{Lat: ptr(0.0), Lon: ptr(0.0)},
		})
		assert.NoError(t, err)
	})

	t.Run("missing and out of range fields are reported", func(t *testing.T) {
		err := validator.Validate(&request{
			Point:      point{Lat: ptr(91.0), Lon: ptr(0.0)},
			GridBounds: "tile",
		})
		require.Error(t, err)

		appErr, ok := errors.As(err)
		require.True(t, ok)
		assert.True(t, stderrors.Is(appErr, errors.ErrInvalidRequest))
		assert.Equal(t, "required", appErr.Details["Zoom"])
		assert.Equal(t, "max", appErr.Details["Point.Lat"])
		assert.Equal(t, "grid_bounds", appErr.Details["GridBounds"])
	})
}
