package errors

import "net/http"

var (
	ErrInvalidViewport = New(
		"INVALID_VIEWPORT",
		"Invalid viewport bounds",
		http.StatusBadRequest,
	)

	ErrInvalidZoom = New(
		"INVALID_ZOOM",
		"Invalid zoom level",
		http.StatusBadRequest,
	)

	ErrInvalidPrecision = New(
		"INVALID_PRECISION",
		"Invalid geohash precision",
		http.StatusBadRequest,
	)

	ErrInvalidField = New(
		"INVALID_FIELD",
		"Geo field is required",
		http.StatusBadRequest,
	)

	ErrInvalidSessionID = New(
		"INVALID_SESSION_ID",
		"Invalid session ID",
		http.StatusBadRequest,
	)

	ErrInvalidVisualizationID = New(
		"INVALID_VISUALIZATION_ID",
		"Invalid visualization ID",
		http.StatusBadRequest,
	)

	ErrVisualizationNotFound = New(
		"VISUALIZATION_NOT_FOUND",
		"Visualization not found",
		http.StatusNotFound,
	)

	ErrSessionNotFound = New(
		"SESSION_NOT_FOUND",
		"Session not found",
		http.StatusNotFound,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrSessionError = New(
		"SESSION_ERROR",
		"Session state operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
