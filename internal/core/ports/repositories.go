package ports

//go:generate mockgen -source=repositories.go -destination=mocks/repositories_mock.go -package=mocks

import (
	"context"
	"time"

	"wallet-atm/internal/core/domain"
)

// SessionStore keeps process-local session state. Every change goes through
// Dispatch, which applies domain.Reduce atomically.
type SessionStore interface {
	Create(ctx context.Context, session domain.Session) error
	// Get returns a snapshot, or domain.ErrSessionNotFound.
	Get(ctx context.Context, id string) (*domain.Session, error)
	// Dispatch applies actions in order under one lock and returns the result.
	Dispatch(ctx context.Context, id string, actions ...domain.Action) (*domain.Session, error)
	// DeleteIdle removes sessions last seen before cutoff and returns their IDs.
	DeleteIdle(ctx context.Context, cutoff time.Time) ([]string, error)
}
