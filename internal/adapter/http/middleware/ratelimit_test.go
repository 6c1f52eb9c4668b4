package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"escrow-relay/internal/adapter/http/middleware"
	redisStore "escrow-relay/internal/adapter/storage/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func setupRateLimitRouter(t *testing.T) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := redisStore.NewRateLimitStore(client)

	rule := middleware.RateLimitRule{Limit: 3, Window: time.Minute}
	log := zerolog.Nop()
	ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) }

	r := gin.New()
	r.GET("/claims", middleware.RateLimiter(store, "claims", rule, log), ok)
	r.GET("/verify", middleware.RateLimiter(store, "verify", rule, log), ok)
	return r, mr
}

func get(router *gin.Engine, path, remoteAddr string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, path, nil)
	if remoteAddr != "" {
		req.RemoteAddr = remoteAddr
	}
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_AllowsWithinLimit(t *testing.T) {
	router, _ := setupRateLimitRouter(t)

	for i := 0; i < 3; i++ {
		w := get(router, "/claims", "")
		assert.Equal(t, http.StatusOK, w.Code, "request %d should succeed", i+1)
		assert.Equal(t, "3", w.Header().Get("X-RateLimit-Limit"))
		assert.NotEmpty(t, w.Header().Get("X-RateLimit-Remaining"))
		assert.NotEmpty(t, w.Header().Get("X-RateLimit-Reset"))
	}
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	router, _ := setupRateLimitRouter(t)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, get(router, "/claims", "").Code)
	}

	w := get(router, "/claims", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "RATE_001")
}

func TestRateLimiter_GroupsAndClientsAreIndependent(t *testing.T) {
	router, _ := setupRateLimitRouter(t)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, get(router, "/claims", "10.0.0.1:1000").Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, get(router, "/claims", "10.0.0.1:1000").Code)

	assert.Equal(t, http.StatusOK, get(router, "/verify", "10.0.0.1:1000").Code)
	assert.Equal(t, http.StatusOK, get(router, "/claims", "10.0.0.2:1000").Code)
}

func TestRateLimiter_RedisDownAllowsRequest(t *testing.T) {
	router, mr := setupRateLimitRouter(t)
	mr.Close()

	w := get(router, "/claims", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
}

func TestDefaultRateLimitRules(t *testing.T) {
	rules := middleware.DefaultRateLimitRules()
	assert.Equal(t, int64(120), rules["verify"].Limit)
	assert.Equal(t, int64(30), rules["claims"].Limit)
	assert.Equal(t, int64(60), rules["linked_accounts"].Limit)
	for group, rule := range rules {
		assert.Equal(t, time.Minute, rule.Window, group)
	}
}
