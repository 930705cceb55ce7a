package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func setupLimitedRouter(t *testing.T, client *redis.Client, cfg RateLimiterConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)

	rl := NewRateLimiter(client, cfg, zaptest.NewLogger(t))

	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	return r
}

func ping(r *gin.Engine) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_AllowsWithinBurst(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	r := setupLimitedRouter(t, client, RateLimiterConfig{
		RequestsPerSecond: 1,
		BurstCapacity:     3,
		Enabled:           true,
	})

	for i := 0; i < 3; i++ {
		w := ping(r)
		assert.Equal(t, http.StatusOK, w.Code, "request %d within burst", i+1)
	}
}

func TestRateLimiter_RejectsBeyondBurst(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	r := setupLimitedRouter(t, client, RateLimiterConfig{
		RequestsPerSecond: 1,
		BurstCapacity:     2,
		Enabled:           true,
	})

	assert.Equal(t, http.StatusOK, ping(r).Code)
	assert.Equal(t, http.StatusOK, ping(r).Code)

	w := ping(r)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "RATE_LIMITED")
}

func TestRateLimiter_DisabledPassesThrough(t *testing.T) {
	r := setupLimitedRouter(t, nil, RateLimiterConfig{
		RequestsPerSecond: 1,
		BurstCapacity:     1,
		Enabled:           false,
	})

	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, ping(r).Code)
	}
}

func TestRateLimiter_FailsOpenOnRedisError(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	r := setupLimitedRouter(t, client, RateLimiterConfig{
		RequestsPerSecond: 1,
		BurstCapacity:     1,
		Enabled:           true,
	})

	mr.Close()

	w := ping(r)
	assert.Equal(t, http.StatusOK, w.Code, "unreachable limiter does not block traffic")
}
