package middleware

import (
	"math"
	"strconv"
	"time"

	redisStore "wallet-atm/internal/adapter/storage/redis"
	"wallet-atm/pkg/apperror"
	"wallet-atm/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RateLimitRule is the request budget of one endpoint group.
type RateLimitRule struct {
	Limit  int64
	Window time.Duration
}

// DefaultRateLimitRules returns the per-group budgets.
func DefaultRateLimitRules() map[string]RateLimitRule {
	return map[string]RateLimitRule{
		"session_read":  {Limit: 60, Window: time.Minute},
		"session_write": {Limit: 30, Window: time.Minute},
		"transactions":  {Limit: 10, Window: time.Minute},
	}
}

// RateLimiter enforces rule for group. If Redis cannot be reached the
// request is let through.
func RateLimiter(store *redisStore.RateLimitStore, group string, rule RateLimitRule, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := store.Allow(c.Request.Context(), group, callerID(c), rule.Limit, rule.Window)
		if err != nil {
			log.Warn().Err(err).Str("group", group).Msg("rate limit check failed, allowing request")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(result.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

		if !result.Allowed {
			retry := int64(math.Ceil(result.RetryAfter.Seconds()))
			c.Header("Retry-After", strconv.FormatInt(max(retry, 1), 10))
			response.Error(c, apperror.ErrRateLimitExceeded())
			c.Abort()
			return
		}
		c.Next()
	}
}

// callerID prefers the session over the client IP.
func callerID(c *gin.Context) string {
	if id := c.GetString(CtxSessionID); id != "" {
		return "session:" + id
	}
	return "ip:" + c.ClientIP()
}
