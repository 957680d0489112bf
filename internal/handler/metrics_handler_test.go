package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edu-advisor-api/internal/service"
)

func TestMetricsHandlerHealthIncludesSnapshot(t *testing.T) {
	metrics := service.NewMetricsService()
	metrics.ObserveHTTPRequest(http.MethodGet, "/api/queries", http.StatusOK, 20*time.Millisecond)
	handler := NewMetricsHandler(metrics)

	c, w := newGinContext(http.MethodGet, "/health", nil)
	handler.Health(c)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "ok", body["status"])
	snapshot := body["metrics"].(map[string]interface{})
	assert.Equal(t, float64(1), snapshot["requests_total"])
}

func TestMetricsHandlerReady(t *testing.T) {
	ok := ReadinessCheck{Name: "postgres", Check: func(ctx context.Context) error { return nil }}
	down := ReadinessCheck{Name: "redis", Check: func(ctx context.Context) error { return errors.New("connection refused") }}

	c, w := newGinContext(http.MethodGet, "/ready", nil)
	NewMetricsHandler(nil, ok).Ready(c)
	require.Equal(t, http.StatusOK, w.Code)

	c, w = newGinContext(http.MethodGet, "/ready", nil)
	NewMetricsHandler(nil, ok, down).Ready(c)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	checks := decodeBody(t, w)["checks"].(map[string]interface{})
	assert.Equal(t, "ok", checks["postgres"])
	assert.Equal(t, "connection refused", checks["redis"])
}

func TestMetricsHandlerPrometheus(t *testing.T) {
	c, w := newGinContext(http.MethodGet, "/metrics", nil)
	NewMetricsHandler(service.NewMetricsService()).Prometheus(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "goroutines_total")

	c, w = newGinContext(http.MethodGet, "/metrics", nil)
	NewMetricsHandler(nil).Prometheus(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
