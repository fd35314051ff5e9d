package handler

import (
	"context"

	"wallet-atm/config"
	"wallet-atm/internal/adapter/http/dto"
	"wallet-atm/internal/adapter/http/middleware"
	"wallet-atm/internal/core/domain"
	"wallet-atm/internal/core/ports"
	"wallet-atm/pkg/apperror"
	"wallet-atm/pkg/response"

	"github.com/gin-gonic/gin"
)

type sessionOp func(ctx context.Context, sessionID string) (*domain.Session, error)

type amountOp func(ctx context.Context, sessionID, amount string) (*domain.NotificationEntry, error)

// SessionHandler serves the JSON API under /api/v1/session.
type SessionHandler struct {
	sessions ports.SessionController
	owner    config.OwnerConfig
}

func NewSessionHandler(sessions ports.SessionController, owner config.OwnerConfig) *SessionHandler {
	return &SessionHandler{sessions: sessions, owner: owner}
}

// Get handles GET /api/v1/session.
func (h *SessionHandler) Get(c *gin.Context) {
	h.respond(c, h.sessions.Snapshot)
}

// DetectWallet handles POST /api/v1/session/wallet. It re-runs wallet
// detection followed by the silent account query.
func (h *SessionHandler) DetectWallet(c *gin.Context) {
	h.respond(c, func(ctx context.Context, id string) (*domain.Session, error) {
		if _, err := h.sessions.DetectWallet(ctx, id); err != nil {
			return nil, err
		}
		return h.sessions.QueryAccounts(ctx, id)
	})
}

// Connect handles POST /api/v1/session/connect.
func (h *SessionHandler) Connect(c *gin.Context) {
	h.respond(c, h.sessions.Connect)
}

// RefreshBalance handles POST /api/v1/session/balance/refresh.
func (h *SessionHandler) RefreshBalance(c *gin.Context) {
	h.respond(c, h.sessions.RefreshBalance)
}

// ClearNotifications handles DELETE /api/v1/session/notifications.
func (h *SessionHandler) ClearNotifications(c *gin.Context) {
	h.respond(c, h.sessions.ClearNotifications)
}

// Deposit handles POST /api/v1/session/deposit.
func (h *SessionHandler) Deposit(c *gin.Context) {
	h.transact(c, h.sessions.Deposit)
}

// Withdraw handles POST /api/v1/session/withdraw.
func (h *SessionHandler) Withdraw(c *gin.Context) {
	h.transact(c, h.sessions.Withdraw)
}

func (h *SessionHandler) respond(c *gin.Context, op sessionOp) {
	session, err := op(c.Request.Context(), c.GetString(middleware.CtxSessionID))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toSessionResponse(session, h.owner))
}

func (h *SessionHandler) transact(c *gin.Context, op amountOp) {
	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.ErrInvalidAmount(err))
		return
	}

	ctx := c.Request.Context()
	sessionID := c.GetString(middleware.CtxSessionID)

	entry, err := op(ctx, sessionID, req.Amount.String())
	if err != nil {
		response.Error(c, err)
		return
	}
	session, err := h.sessions.Snapshot(ctx, sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.TransactionResultResponse{
		Notification: toNotificationResponse(*entry),
		Session:      toSessionResponse(session, h.owner),
	})
}
