package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"wallet-atm/internal/core/domain"
	"wallet-atm/internal/core/ports/mocks"
	"wallet-atm/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testCookie = CookieConfig{Name: "atm_session"}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.Unmarshal(body, &resp))
	code, _ := resp["error_code"].(string)
	return code
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/id", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})

	t.Run("generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/id", nil))
		assert.Len(t, w.Body.String(), 36)
		assert.Equal(t, w.Body.String(), w.Header().Get(HeaderRequestID))
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/id", nil)
		req.Header.Set(HeaderRequestID, "trace-123")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, "trace-123", w.Body.String())
	})

	t.Run("oversized header replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/id", nil)
		req.Header.Set(HeaderRequestID, strings.Repeat("x", 100))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Len(t, w.Body.String(), 36)
	})
}

func sessionRouter(t *testing.T, create bool) (*gin.Engine, *mocks.MockTokenService, *mocks.MockSessionController) {
	t.Helper()
	ctrl := gomock.NewController(t)
	tokens := mocks.NewMockTokenService(ctrl)
	sessions := mocks.NewMockSessionController(ctrl)

	router := gin.New()
	router.GET("/s", SessionCookie(tokens, sessions, testCookie, create, zerolog.Nop()), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(CtxSessionID))
	})
	return router, tokens, sessions
}

func TestSessionCookie_StartsSession(t *testing.T) {
	router, tokens, sessions := sessionRouter(t, true)
	expires := time.Now().Add(time.Hour)

	sessions.EXPECT().Start(gomock.Any()).Return(&domain.Session{ID: "new-session"}, nil)
	tokens.EXPECT().Generate("new-session").Return("signed", expires, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/s", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "new-session", w.Body.String())

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "atm_session", cookies[0].Name)
	assert.Equal(t, "signed", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestSessionCookie_ResumesSession(t *testing.T) {
	router, tokens, sessions := sessionRouter(t, false)

	tokens.EXPECT().Validate("signed").Return("s-1", nil)
	sessions.EXPECT().Resume(gomock.Any(), "s-1").Return(&domain.Session{ID: "s-1"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/s", nil)
	req.AddCookie(&http.Cookie{Name: "atm_session", Value: "signed"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "s-1", w.Body.String())
	assert.Empty(t, w.Result().Cookies())
}

func TestSessionCookie_StaleCookie(t *testing.T) {
	t.Run("replaced when creating", func(t *testing.T) {
		router, tokens, sessions := sessionRouter(t, true)
		tokens.EXPECT().Validate("old").Return("gone", nil)
		sessions.EXPECT().Resume(gomock.Any(), "gone").Return(nil, apperror.ErrInvalidSession())
		sessions.EXPECT().Start(gomock.Any()).Return(&domain.Session{ID: "fresh"}, nil)
		tokens.EXPECT().Generate("fresh").Return("signed", time.Now().Add(time.Hour), nil)

		req := httptest.NewRequest(http.MethodGet, "/s", nil)
		req.AddCookie(&http.Cookie{Name: "atm_session", Value: "old"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "fresh", w.Body.String())
	})

	t.Run("rejected otherwise", func(t *testing.T) {
		router, tokens, _ := sessionRouter(t, false)
		tokens.EXPECT().Validate("forged").Return("", errors.New("signature is invalid"))

		req := httptest.NewRequest(http.MethodGet, "/s", nil)
		req.AddCookie(&http.Cookie{Name: "atm_session", Value: "forged"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "SESSION_001", errorCode(t, w.Body.Bytes()))
	})

	t.Run("missing cookie rejected", func(t *testing.T) {
		router, _, _ := sessionRouter(t, false)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/s", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestSessionCookie_StoreFailure(t *testing.T) {
	router, tokens, sessions := sessionRouter(t, true)
	tokens.EXPECT().Validate("signed").Return("s-1", nil)
	sessions.EXPECT().Resume(gomock.Any(), "s-1").Return(nil, apperror.InternalError(errors.New("boom")))

	req := httptest.NewRequest(http.MethodGet, "/s", nil)
	req.AddCookie(&http.Cookie{Name: "atm_session", Value: "signed"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "SYS_001", errorCode(t, w.Body.Bytes()))
}

func TestRecovery_PanicRecovered(t *testing.T) {
	router := gin.New()
	router.Use(RequestID(), Recovery(zerolog.Nop()))
	router.GET("/panic", func(c *gin.Context) {
		panic("something went wrong")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "SYS_001", errorCode(t, w.Body.Bytes()))
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	router := gin.New()
	router.Use(RequestID(), RequestLogger(log))
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/bad", func(c *gin.Context) { c.Status(http.StatusConflict) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/bad", nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first, second map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))

	assert.Equal(t, "info", first["level"])
	assert.Equal(t, "/ok", first["path"])
	assert.NotEmpty(t, first["request_id"])
	assert.Equal(t, "warn", second["level"])
	assert.EqualValues(t, 409, second["status"])
}
