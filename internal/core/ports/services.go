package ports

//go:generate mockgen -source=services.go -destination=mocks/services_mock.go -package=mocks

import (
	"context"
	"time"

	"wallet-atm/internal/core/domain"
)

// SessionController mediates between a session, the wallet provider and
// the ATM contract.
type SessionController interface {
	// Start creates a session and runs the startup hook (wallet detection
	// and a non-interactive account query).
	Start(ctx context.Context) (*domain.Session, error)
	// Resume marks an existing session as used and returns it.
	Resume(ctx context.Context, sessionID string) (*domain.Session, error)
	Snapshot(ctx context.Context, sessionID string) (*domain.Session, error)

	DetectWallet(ctx context.Context, sessionID string) (*domain.Session, error)
	QueryAccounts(ctx context.Context, sessionID string) (*domain.Session, error)
	Connect(ctx context.Context, sessionID string) (*domain.Session, error)
	RefreshBalance(ctx context.Context, sessionID string) (*domain.Session, error)
	Deposit(ctx context.Context, sessionID string, amount string) (*domain.NotificationEntry, error)
	Withdraw(ctx context.Context, sessionID string, amount string) (*domain.NotificationEntry, error)
	ClearNotifications(ctx context.Context, sessionID string) (*domain.Session, error)

	// EvictIdle drops sessions unused for longer than ttl.
	EvictIdle(ctx context.Context, ttl time.Duration) (int, error)
}

// TokenService signs and verifies session cookies.
type TokenService interface {
	Generate(sessionID string) (string, time.Time, error)
	Validate(tokenString string) (string, error)
}
