package handler_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/geogrid-service/internal/aggtype"
	"github.com/geogrid-service/internal/delivery/http/handler"
	"github.com/geogrid-service/internal/domain"
	"github.com/geogrid-service/internal/usecase"
)

type testEnv struct {
	app      *fiber.App
	sessions *mockSessionRepository
	streams  *mockStreamRepository
	visRepo  *mockVisualizationRepository
	cache    *mockCacheRepository
	stats    *mockStatsRepository
}

func newTestEnv() *testEnv {
	env := &testEnv{
		sessions: &mockSessionRepository{},
		streams:  &mockStreamRepository{},
		visRepo:  &mockVisualizationRepository{},
		cache:    &mockCacheRepository{},
		stats:    &mockStatsRepository{},
	}
	logger := zap.NewNop()

	visUC := usecase.NewVisualizationUseCase(env.visRepo, env.cache, time.Hour, logger)
	aggUC := usecase.NewAggregationUseCase(
		aggtype.NewGeoHashAgg(aggtype.Options{}),
		env.sessions, env.streams, visUC, time.Hour, logger,
	)
	statsUC := usecase.NewStatsUseCase(env.stats, env.cache, time.Minute, logger)

	aggH := handler.NewAggregationHandler(aggUC, logger)
	visH := handler.NewVisualizationHandler(visUC, logger)
	statsH := handler.NewStatsHandler(statsUC, logger)

	app := fiber.New()
	api := app.Group("/api/v1")
	api.Post("/aggregations/geohash", aggH.BuildGeohash)
	api.Get("/geohash/precision", aggH.GetPrecision)
	api.Get("/sessions/:id", aggH.GetSession)
	api.Delete("/sessions/:id", aggH.ResetSession)
	api.Post("/visualizations", visH.Create)
	api.Get("/visualizations", visH.List)
	api.Get("/visualizations/:id", visH.Get)
	api.Delete("/visualizations/:id", visH.Delete)
	api.Get("/stats", statsH.GetStatistics)

	env.app = app
	return env
}

func (e *testEnv) do(t *testing.T, method, target, body string) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), string(raw))
	}
	return resp.StatusCode, decoded
}

func errorCode(body map[string]interface{}) string {
	e, _ := body["error"].(map[string]interface{})
	code, _ := e["code"].(string)
	return code
}

func TestAggregationHandler_BuildGeohash(t *testing.T) {
	env := newTestEnv()
	env.sessions.On("Load", mock.Anything, mock.Anything).Return(map[string][]byte{}, nil)
	env.sessions.On("Save", mock.Anything, mock.Anything, mock.Anything, time.Hour).Return(nil)
	env.streams.On("PublishToStream", mock.Anything, domain.StreamCollarUpdated, mock.Anything).Return(nil)

	status, body := env.do(t, http.MethodPost, "/api/v1/aggregations/geohash", `{
		"field": "location",
		"viewport": {"top_left": {"lat": 1, "lon": -1}, "bottom_right": {"lat": -1, "lon": 1}},
		"zoom": 10
	}`)
	require.Equal(t, http.StatusOK, status, body)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(5), data["precision"])
	assert.Equal(t, true, data["collar_recomputed"])
	assert.Len(t, data["aggregations"], 3)

	searchBody := data["search_body"].(map[string]interface{})
	aggs := searchBody["aggs"].(map[string]interface{})
	assert.Contains(t, aggs, domain.FilterAggID)

	meta := body["meta"].(map[string]interface{})
	assert.Equal(t, float64(3), meta["total"])
}

func TestAggregationHandler_BuildGeohash_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
		code string
	}{
		{name: "malformed json", body: `{"field":`, code: "INVALID_REQUEST"},
		{name: "missing field", body: `{"zoom": 3}`, code: "INVALID_REQUEST"},
		{name: "zoom out of range", body: `{"field": "location", "zoom": 30}`, code: "INVALID_REQUEST"},
		{name: "latitude out of range", body: `{"field": "location", "viewport": {"top_left": {"lat": 91, "lon": 0}, "bottom_right": {"lat": 0, "lon": 1}}}`, code: "INVALID_REQUEST"},
		{name: "missing corner coordinate", body: `{"field": "location", "viewport": {"top_left": {"lat": 1}, "bottom_right": {"lat": 0, "lon": 1}}}`, code: "INVALID_REQUEST"},
		{name: "bad session id", body: `{"field": "location", "session_id": "abc"}`, code: "INVALID_REQUEST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			status, body := env.do(t, http.MethodPost, "/api/v1/aggregations/geohash", tt.body)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, tt.code, errorCode(body))
		})
	}
}

func TestAggregationHandler_Sessions(t *testing.T) {
	env := newTestEnv()
	sessionID := uuid.New()
	env.sessions.On("Load", mock.Anything, sessionID).Return(map[string][]byte{
		aggtype.SessionKeyMapZoom: []byte("0"),
	}, nil)
	env.sessions.On("Delete", mock.Anything, sessionID).Return(nil)

	status, body := env.do(t, http.MethodGet, "/api/v1/sessions/"+sessionID.String(), "")
	require.Equal(t, http.StatusOK, status)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(0), data["map_zoom"], "zoom 0 is a stored value")

	status, _ = env.do(t, http.MethodDelete, "/api/v1/sessions/"+sessionID.String(), "")
	assert.Equal(t, http.StatusNoContent, status)

	status, body = env.do(t, http.MethodGet, "/api/v1/sessions/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_SESSION_ID", errorCode(body))
}

func TestAggregationHandler_GetPrecision(t *testing.T) {
	env := newTestEnv()

	status, body := env.do(t, http.MethodGet, "/api/v1/geohash/precision?zoom=4", "")
	require.Equal(t, http.StatusOK, status)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(4), data["zoom"])
	assert.Equal(t, float64(3), data["precision"])

	status, body = env.do(t, http.MethodGet, "/api/v1/geohash/precision", "")
	require.Equal(t, http.StatusOK, status)
	data = body["data"].(map[string]interface{})
	assert.Len(t, data["levels"], 22)

	status, body = env.do(t, http.MethodGet, "/api/v1/geohash/precision?zoom=abc", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_ZOOM", errorCode(body))

	status, _ = env.do(t, http.MethodGet, "/api/v1/geohash/precision?zoom=22", "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestVisualizationHandler(t *testing.T) {
	env := newTestEnv()
	id := uuid.New()
	stored := &domain.Visualization{ID: id, Title: "Stores", Field: "location", Precision: 2}

	env.visRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	env.cache.On("SetVisualization", mock.Anything, mock.Anything, time.Hour).Return(nil)
	env.cache.On("GetVisualization", mock.Anything, id).Return(stored, nil)
	env.visRepo.On("Delete", mock.Anything, id).Return(true, nil)
	env.cache.On("DeleteVisualization", mock.Anything, id).Return(nil)
	env.visRepo.On("List", mock.Anything, 20, 0).Return([]*domain.Visualization{stored}, 1, nil)

	status, body := env.do(t, http.MethodPost, "/api/v1/visualizations", `{"title": "Stores", "field": "location"}`)
	require.Equal(t, http.StatusCreated, status, body)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Stores", data["title"])
	assert.Equal(t, true, data["auto_precision"])

	status, body = env.do(t, http.MethodPost, "/api/v1/visualizations", `{"field": "location"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_REQUEST", errorCode(body))

	status, body = env.do(t, http.MethodGet, "/api/v1/visualizations/"+id.String(), "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, id.String(), body["data"].(map[string]interface{})["id"])

	status, body = env.do(t, http.MethodGet, "/api/v1/visualizations", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["meta"].(map[string]interface{})["total"])

	status, _ = env.do(t, http.MethodGet, "/api/v1/visualizations?limit=500", "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = env.do(t, http.MethodDelete, "/api/v1/visualizations/"+id.String(), "")
	assert.Equal(t, http.StatusNoContent, status)
}

func TestStatsHandler_GetStatistics(t *testing.T) {
	env := newTestEnv()
	env.cache.On("GetStats", mock.Anything).Return(&domain.CollarStats{
		Recomputations: map[string]int64{"adhoc": 2},
		ByReason:       map[string]int64{"initial": 2},
		Total:          2,
	}, nil)

	status, body := env.do(t, http.MethodGet, "/api/v1/stats", "")
	require.Equal(t, http.StatusOK, status)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["total"])
}
