package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bearingmart/storefront/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestGinMetricsMiddleware_CountsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := metrics.New("middleware_test")

	router := gin.New()
	router.Use(GinMetricsMiddleware(m))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}

	assert.Equal(t, float64(3), testutil.ToFloat64(m.HTTPRequestsTotal))
}

func TestGinMetricsMiddleware_NilMetricsPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(GinMetricsMiddleware(nil))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
