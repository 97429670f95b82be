package metrics_test

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geogrid-service/internal/pkg/metrics"
)

func TestObserveCollar(t *testing.T) {
	reused := testutil.ToFloat64(metrics.CollarDecisions.WithLabelValues("reused"))
	recomputed := testutil.ToFloat64(metrics.CollarDecisions.WithLabelValues("recomputed"))

	metrics.ObserveCollar(false)
	metrics.ObserveCollar(true)
	metrics.ObserveCollar(true)

	assert.Equal(t, reused+1, testutil.ToFloat64(metrics.CollarDecisions.WithLabelValues("reused")))
	assert.Equal(t, recomputed+2, testutil.ToFloat64(metrics.CollarDecisions.WithLabelValues("recomputed")))
}

func TestHandler_ServesMetrics(t *testing.T) {
	app := fiber.New()
	app.Use(metrics.Middleware())
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })
	app.Get("/metrics", metrics.Handler())

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), "geogrid_http_requests_total")
}
