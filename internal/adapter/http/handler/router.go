package handler

import (
	"wallet-atm/config"
	"wallet-atm/internal/adapter/http/middleware"
	redisStore "wallet-atm/internal/adapter/storage/redis"
	"wallet-atm/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	Sessions       ports.SessionController
	Tokens         ports.TokenService
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Cookie         middleware.CookieConfig
	Owner          config.OwnerConfig
	Logger         zerolog.Logger
}

// SetupRouter builds the Gin engine: the HTML page at /, the JSON API under
// /api/v1/session and /health.
func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(Templates())

	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(16 << 10))

	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	rules := middleware.DefaultRateLimitRules()
	rl := func(group string) gin.HandlerFunc {
		rule, ok := rules[group]
		if deps.RateLimitStore == nil || !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	startSession := middleware.SessionCookie(deps.Tokens, deps.Sessions, deps.Cookie, true, deps.Logger)
	requireSession := middleware.SessionCookie(deps.Tokens, deps.Sessions, deps.Cookie, false, deps.Logger)

	// --- HTML page (post/redirect/get) ---
	page := NewPageHandler(deps.Sessions, deps.Owner, deps.Logger)
	r.GET("/", startSession, rl("session_read"), page.Index)
	r.POST("/connect", startSession, rl("session_write"), page.Connect)
	r.POST("/deposit", startSession, rl("transactions"), page.Deposit)
	r.POST("/withdraw", startSession, rl("transactions"), page.Withdraw)
	r.POST("/notifications/clear", startSession, rl("session_write"), page.ClearNotifications)

	// --- JSON API ---
	api := NewSessionHandler(deps.Sessions, deps.Owner)
	v1 := r.Group("/api/v1")
	v1.GET("/session", startSession, rl("session_read"), api.Get)

	session := v1.Group("/session", requireSession)
	{
		session.POST("/wallet", rl("session_write"), api.DetectWallet)
		session.POST("/connect", rl("session_write"), api.Connect)
		session.POST("/balance/refresh", rl("session_read"), api.RefreshBalance)
		session.POST("/deposit", rl("transactions"), api.Deposit)
		session.POST("/withdraw", rl("transactions"), api.Withdraw)
		session.DELETE("/notifications", rl("session_write"), api.ClearNotifications)
	}

	return r
}
