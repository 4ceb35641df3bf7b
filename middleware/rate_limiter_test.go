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

func TestTokenBucketExhaustsAndRefills(t *testing.T) {
	tb := NewTokenBucket(0, 3)

	for i := 0; i < 3; i++ {
		assert.True(t, tb.Allow(), "request %d should pass within the burst", i+1)
	}
	assert.False(t, tb.Allow(), "the bucket is empty and never refills at rate 0")
}

func TestTokenBucketRefill(t *testing.T) {
	tb := NewTokenBucket(1000, 1)
	require.True(t, tb.Allow())

	// At 1000 tokens/s the bucket refills almost immediately.
	assert.Eventually(t, tb.Allow, 100*time.Millisecond, time.Millisecond)
}

func TestIPRateLimiterRejectsOverBurst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", IPRateLimiter(0, 2), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	get := func() int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.1.2.3:5000"
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, get())
	assert.Equal(t, http.StatusOK, get())
	assert.Equal(t, http.StatusTooManyRequests, get())
}
