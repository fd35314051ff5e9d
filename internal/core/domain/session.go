package domain

import (
	"errors"
	"time"
)

// ErrSessionNotFound is returned by session stores for unknown or evicted IDs.
var ErrSessionNotFound = errors.New("session not found")

// SessionState is the coarse connection state derived from a Session.
type SessionState string

const (
	StateUnconnected  SessionState = "UNCONNECTED"
	StateWalletReady  SessionState = "WALLET_READY"
	StateConnected    SessionState = "CONNECTED"
	StateBalanceKnown SessionState = "BALANCE_KNOWN"
)

// Session is the per-browser ATM state. Values are only changed through
// Reduce, which never mutates shared slices, so a Session can be handed
// out as a snapshot.
type Session struct {
	ID              string        `json:"id"`
	WalletAvailable bool          `json:"wallet_available"`
	Account         string        `json:"account,omitempty"`  // "" until an account is known
	Contract        string        `json:"contract,omitempty"` // bound contract address, "" until Connect
	Balance         *uint64       `json:"balance,omitempty"`
	Notifications   Notifications `json:"notifications"`
	CreatedAt       time.Time     `json:"created_at"`
	LastSeen        time.Time     `json:"last_seen"`
}

// NewSession creates an empty session.
func NewSession(id string, now time.Time) Session {
	return Session{
		ID:            id,
		Notifications: EmptyNotifications(),
		CreatedAt:     now,
		LastSeen:      now,
	}
}

// IsConnected reports whether a contract handle has been bound.
func (s *Session) IsConnected() bool {
	return s.Contract != ""
}

// State derives the connection state.
func (s *Session) State() SessionState {
	switch {
	case s.IsConnected() && s.Balance != nil:
		return StateBalanceKnown
	case s.IsConnected():
		return StateConnected
	case s.WalletAvailable:
		return StateWalletReady
	default:
		return StateUnconnected
	}
}
