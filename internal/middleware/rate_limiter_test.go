package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"posadmin/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func hitTimes(r *gin.Engine, path string, n int) []int {
	codes := make([]int, n)
	for i := 0; i < n; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(w, req)
		codes[i] = w.Code
	}
	return codes
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", middleware.NewRateLimiter(2, time.Minute).Handle(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := hitTimes(r, "/ping", 3)
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimiter_InstancesAreIndependent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api", middleware.NewRateLimiter(1, time.Minute).Handle(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/login", middleware.NewLoginRateLimiter(1, time.Minute).Handle(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// Exhausting one limiter must not consume the other's budget.
	codes := hitTimes(r, "/api", 2)
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)

	codes = hitTimes(r, "/login", 2)
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/login", nil)
	r.ServeHTTP(w, req)
	assert.Contains(t, w.Body.String(), "too many login attempts")
}
