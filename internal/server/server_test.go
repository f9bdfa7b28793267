package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/smallbiznis/togetherbot/internal/observability"
	obsmetrics "github.com/smallbiznis/togetherbot/internal/observability/metrics"
	"github.com/smallbiznis/togetherbot/pkg/db/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHealthAndMetrics(t *testing.T) {
	conn := dbtest.Open(t)
	reg := prometheus.NewRegistry()
	metrics, err := obsmetrics.New(obsmetrics.Config{ServiceName: "togetherbot"}, reg)
	require.NoError(t, err)
	metrics.RecordGrant("advanced_stats")

	r := NewEngine(EngineParams{
		ObsConfig: observability.Config{Environment: "test"},
		Log:       zap.NewNop(),
		DB:        conn,
		Gatherer:  reg,
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "togetherbot_entitlement_grants_total")
}

func TestHealthReportsClosedStore(t *testing.T) {
	conn := dbtest.Open(t)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	r := NewEngine(EngineParams{
		ObsConfig: observability.Config{Environment: "test"},
		Log:       zap.NewNop(),
		DB:        conn,
		Gatherer:  prometheus.NewRegistry(),
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
