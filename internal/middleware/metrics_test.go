package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type observation struct {
	method string
	path   string
	status int
}

type recordingObserver struct {
	seen []observation
}

func (r *recordingObserver) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	r.seen = append(r.seen, observation{method: method, path: path, status: status})
}

func serve(r *gin.Engine, method, path string) {
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(method, path, nil))
}

func TestMetricsUsesRoutePattern(t *testing.T) {
	gin.SetMode(gin.TestMode)
	obs := &recordingObserver{}
	r := gin.New()
	r.Use(Metrics(obs, "/metrics"))
	r.GET("/teachers/:id/edit", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(r, http.MethodGet, "/teachers/abc/edit")
	serve(r, http.MethodGet, "/nowhere/42")
	serve(r, http.MethodGet, "/metrics")

	require.Len(t, obs.seen, 2)
	assert.Equal(t, observation{method: http.MethodGet, path: "/teachers/:id/edit", status: http.StatusOK}, obs.seen[0])
	assert.Equal(t, observation{method: http.MethodGet, path: unmatchedRoute, status: http.StatusNotFound}, obs.seen[1])
}

func TestMetricsWithoutObserver(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Metrics(nil))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
