package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runHealthCheck(t *testing.T, checks map[string]HealthCheckFunc) (int, HealthResponse) {
	t.Helper()
	router := gin.New()
	router.GET("/health", HealthCheck(checks))

	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return w.Code, response
}

func TestHealthCheck_Healthy(t *testing.T) {
	ok := func(ctx context.Context) error { return nil }

	code, response := runHealthCheck(t, map[string]HealthCheckFunc{"mongodb": ok, "redis": ok})

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", response.Status)
	assert.Equal(t, map[string]string{"mongodb": "healthy", "redis": "healthy"}, response.Services)
}

func TestHealthCheck_Unhealthy(t *testing.T) {
	code, response := runHealthCheck(t, map[string]HealthCheckFunc{
		"mongodb": func(ctx context.Context) error { return nil },
		"redis":   func(ctx context.Context) error { return errors.New("connection refused") },
	})

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "unhealthy", response.Status)
	assert.Equal(t, "healthy", response.Services["mongodb"])
	assert.Equal(t, "unhealthy", response.Services["redis"])
}
