package middleware

import (
	"errors"
	"net/http"
	"time"

	"wallet-atm/internal/core/ports"
	"wallet-atm/pkg/apperror"
	"wallet-atm/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	HeaderRequestID = "X-Request-ID"

	// Context keys
	CtxSessionID = "session_id"

	maxRequestIDLen = 64
)

// CookieConfig describes the session cookie.
type CookieConfig struct {
	Name       string
	SecureOnly bool
}

// RequestID reuses the caller's X-Request-ID when it looks sane and
// otherwise assigns a new one. The ID is echoed back in the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		c.Set(response.CtxRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// SessionCookie resolves the caller's session from the signed cookie.
// With create set, a missing or stale cookie starts a new session and sets
// a fresh cookie; without it the request is rejected with SESSION_001.
func SessionCookie(tokens ports.TokenService, sessions ports.SessionController, cookie CookieConfig, create bool, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if raw, err := c.Cookie(cookie.Name); err == nil && raw != "" {
			id, err := tokens.Validate(raw)
			if err == nil {
				_, err = sessions.Resume(ctx, id)
			}
			switch {
			case err == nil:
				c.Set(CtxSessionID, id)
				c.Next()
				return
			case isAppError(err, "SYS_001"):
				response.Error(c, err)
				c.Abort()
				return
			default:
				log.Debug().Err(err).Msg("stale session cookie")
			}
		}

		if !create {
			response.Error(c, apperror.ErrInvalidSession())
			c.Abort()
			return
		}

		session, err := sessions.Start(ctx)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		token, expiresAt, err := tokens.Generate(session.ID)
		if err != nil {
			response.Error(c, apperror.InternalError(err))
			c.Abort()
			return
		}

		http.SetCookie(c.Writer, &http.Cookie{
			Name:     cookie.Name,
			Value:    token,
			Path:     "/",
			Expires:  expiresAt,
			HttpOnly: true,
			Secure:   cookie.SecureOnly,
			SameSite: http.SameSiteLaxMode,
		})
		c.Set(CtxSessionID, session.ID)
		c.Next()
	}
}

// RequestLogger logs every request once it has been handled.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		status := c.Writer.Status()

		event := log.Info()
		switch {
		case status >= http.StatusInternalServerError:
			event = log.Error()
		case status >= http.StatusBadRequest:
			event = log.Warn()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Str("request_id", c.GetString(response.CtxRequestID)).
			Str("session_id", c.GetString(CtxSessionID)).
			Msg("http request")
	}
}

// Recovery turns a panic into a SYS_001 response.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().
					Interface("panic", r).
					Str("path", c.Request.URL.Path).
					Str("request_id", c.GetString(response.CtxRequestID)).
					Msg("panic recovered")
				response.Error(c, apperror.InternalError(nil))
				c.Abort()
			}
		}()
		c.Next()
	}
}

func isAppError(err error, code string) bool {
	var appErr *apperror.AppError
	return errors.As(err, &appErr) && appErr.Code == code
}
