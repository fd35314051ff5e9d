package handler

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"time"

	"wallet-atm/config"
	"wallet-atm/internal/adapter/http/dto"
	"wallet-atm/internal/adapter/http/middleware"
	"wallet-atm/internal/core/domain"
	"wallet-atm/internal/core/ports"
	"wallet-atm/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page templates.
func Templates() *template.Template {
	return template.Must(template.New("").
		Funcs(template.FuncMap{"timeOfDay": timeOfDay}).
		ParseFS(templateFS, "templates/*.html"))
}

func timeOfDay(t time.Time) string {
	return t.Local().Format("3:04:05 PM")
}

type notificationPanel struct {
	Class string
	Title string
	Log   domain.NotificationLog
}

type pageView struct {
	Session     *domain.Session
	Owner       config.OwnerConfig
	Error       string
	Deposits    notificationPanel
	Withdrawals notificationPanel
}

// PageHandler renders the ATM page and accepts its form posts. Every post
// redirects back to the page.
type PageHandler struct {
	sessions ports.SessionController
	owner    config.OwnerConfig
	log      zerolog.Logger
}

func NewPageHandler(sessions ports.SessionController, owner config.OwnerConfig, log zerolog.Logger) *PageHandler {
	return &PageHandler{sessions: sessions, owner: owner, log: log}
}

// Index handles GET /. A connected session without a known balance has it
// loaded before rendering.
func (h *PageHandler) Index(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := c.GetString(middleware.CtxSessionID)

	session, err := h.sessions.Snapshot(ctx, sessionID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	notice := c.Query("error")
	if session.IsConnected() && session.Balance == nil {
		refreshed, err := h.sessions.RefreshBalance(ctx, sessionID)
		if err != nil {
			h.log.Warn().Err(err).Str("session_id", sessionID).Msg("balance load failed")
			if notice == "" {
				notice = messageOf(err)
			}
		} else {
			session = refreshed
		}
	}

	c.HTML(http.StatusOK, "index.html", pageView{
		Session: session,
		Owner:   h.owner,
		Error:   notice,
		Deposits: notificationPanel{
			Class: "left-notifications",
			Title: "Deposit Notifications",
			Log:   session.Notifications.Deposit,
		},
		Withdrawals: notificationPanel{
			Class: "right-notifications",
			Title: "Withdrawal Notifications",
			Log:   session.Notifications.Withdrawal,
		},
	})
}

// Connect handles POST /connect.
func (h *PageHandler) Connect(c *gin.Context) {
	_, err := h.sessions.Connect(c.Request.Context(), c.GetString(middleware.CtxSessionID))
	h.redirect(c, err)
}

// Deposit handles POST /deposit.
func (h *PageHandler) Deposit(c *gin.Context) {
	h.transact(c, h.sessions.Deposit)
}

// Withdraw handles POST /withdraw.
func (h *PageHandler) Withdraw(c *gin.Context) {
	h.transact(c, h.sessions.Withdraw)
}

// ClearNotifications handles POST /notifications/clear.
func (h *PageHandler) ClearNotifications(c *gin.Context) {
	_, err := h.sessions.ClearNotifications(c.Request.Context(), c.GetString(middleware.CtxSessionID))
	h.redirect(c, err)
}

func (h *PageHandler) transact(c *gin.Context, op amountOp) {
	var req dto.AmountRequest
	if err := c.ShouldBind(&req); err != nil {
		h.redirect(c, apperror.ErrInvalidAmount(err))
		return
	}
	_, err := op(c.Request.Context(), c.GetString(middleware.CtxSessionID), req.Amount.String())
	h.redirect(c, err)
}

// redirect sends the browser back to the page, carrying err's message.
func (h *PageHandler) redirect(c *gin.Context, err error) {
	target := "/"
	if err != nil {
		target += "?" + url.Values{"error": {messageOf(err)}}.Encode()
	}
	c.Redirect(http.StatusSeeOther, target)
}

func (h *PageHandler) renderError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status = appErr.HTTPStatus
	}
	c.String(status, messageOf(err))
}

func messageOf(err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Something went wrong"
}
