package domain

import "time"

// Action describes one state change applied to a Session by Reduce.
type Action interface {
	isAction()
}

// WalletDetected records whether a wallet provider is present.
type WalletDetected struct{ Available bool }

// AccountsLoaded records the accounts returned by a non-interactive request.
// An empty list leaves the session untouched. If the wallet now reports a
// different account than the connected one, the binding is dropped and the
// user has to connect again.
type AccountsLoaded struct{ Accounts []string }

// Connected records a successful interactive connect.
type Connected struct {
	Account  string
	Contract string
}

// BalanceLoaded stores a freshly read balance.
type BalanceLoaded struct{ Balance uint64 }

// NotificationAdded appends an entry to its category's log.
type NotificationAdded struct{ Entry NotificationEntry }

// NotificationsCleared empties both logs.
type NotificationsCleared struct{}

// Touched marks the session as recently used.
type Touched struct{ At time.Time }

func (WalletDetected) isAction()       {}
func (AccountsLoaded) isAction()       {}
func (Connected) isAction()            {}
func (BalanceLoaded) isAction()        {}
func (NotificationAdded) isAction()    {}
func (NotificationsCleared) isAction() {}
func (Touched) isAction()              {}

// Reduce returns the session that results from applying action to s.
func Reduce(s Session, action Action) Session {
	switch a := action.(type) {
	case WalletDetected:
		s.WalletAvailable = a.Available
	case AccountsLoaded:
		if len(a.Accounts) == 0 {
			break
		}
		if s.IsConnected() && a.Accounts[0] != s.Account {
			s.Contract = ""
			s.Balance = nil
		}
		s.Account = a.Accounts[0]
	case Connected:
		// A cached balance belongs to the previous account.
		if a.Account != s.Account {
			s.Balance = nil
		}
		s.Account = a.Account
		s.Contract = a.Contract
	case BalanceLoaded:
		balance := a.Balance
		s.Balance = &balance
	case NotificationAdded:
		s.Notifications = s.Notifications.Append(a.Entry)
	case NotificationsCleared:
		s.Notifications = EmptyNotifications()
	case Touched:
		s.LastSeen = a.At
	}
	return s
}

// ReduceAll applies actions in order.
func ReduceAll(s Session, actions ...Action) Session {
	for _, a := range actions {
		s = Reduce(s, a)
	}
	return s
}
