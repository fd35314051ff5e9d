package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wallet-atm/internal/adapter/http/middleware"
	redisStore "wallet-atm/internal/adapter/storage/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRateLimitRouter(t *testing.T, limit int64) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store := redisStore.NewRateLimitStore(client)
	rule := middleware.RateLimitRule{Limit: limit, Window: time.Minute}

	r := gin.New()
	withSession := func(c *gin.Context) {
		if id := c.GetHeader("X-Test-Session"); id != "" {
			c.Set(middleware.CtxSessionID, id)
		}
		c.Next()
	}
	r.POST("/deposit", withSession, middleware.RateLimiter(store, "transactions", rule, zerolog.Nop()), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, mr
}

func post(r *gin.Engine, session string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/deposit", nil)
	if session != "" {
		req.Header.Set("X-Test-Session", session)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	r, _ := setupRateLimitRouter(t, 2)

	for i := 0; i < 2; i++ {
		w := post(r, "s-1")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	w := post(r, "s-1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "RATE_001")
}

func TestRateLimiter_KeysBySession(t *testing.T) {
	r, _ := setupRateLimitRouter(t, 1)

	assert.Equal(t, http.StatusOK, post(r, "s-1").Code)
	assert.Equal(t, http.StatusOK, post(r, "s-2").Code)
	assert.Equal(t, http.StatusOK, post(r, "").Code, "anonymous callers are keyed by IP")
	assert.Equal(t, http.StatusTooManyRequests, post(r, "s-1").Code)
}

func TestRateLimiter_RedisDown(t *testing.T) {
	r, mr := setupRateLimitRouter(t, 1)
	mr.Close()

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, post(r, "s-1").Code)
	}
}

func TestDefaultRateLimitRules(t *testing.T) {
	rules := middleware.DefaultRateLimitRules()
	for _, group := range []string{"session_read", "session_write", "transactions"} {
		rule, ok := rules[group]
		require.True(t, ok, group)
		assert.Positive(t, rule.Limit)
		assert.Equal(t, time.Minute, rule.Window)
	}
	assert.Less(t, rules["transactions"].Limit, rules["session_read"].Limit)
}
