package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsServiceExposesCollectors(t *testing.T) {
	metrics := NewMetricsService()
	metrics.ObserveHTTPRequest(http.MethodGet, "/weekly", http.StatusOK, 15*time.Millisecond)
	metrics.RecordExport("weekly", "pdf")

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `http_requests_total{method="GET",path="/weekly",status="200"} 1`)
	assert.Contains(t, body, `exports_total{format="pdf",kind="weekly"} 1`)
	assert.Contains(t, body, "goroutines_total")
}

func TestMetricsServiceNilSafe(t *testing.T) {
	var metrics *MetricsService
	metrics.ObserveHTTPRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
	metrics.RecordExport("weekly", "csv")
	metrics.RecordAuditFailure("add_teacher")

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
