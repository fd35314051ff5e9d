package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category selects which notification log an entry belongs to.
type Category string

const (
	CategoryDeposit    Category = "deposit"
	CategoryWithdrawal Category = "withdrawal"
)

// Valid reports whether c is one of the two known categories.
func (c Category) Valid() bool {
	return c == CategoryDeposit || c == CategoryWithdrawal
}

// Notification messages. Every failure cause collapses to the same text.
const (
	MsgDepositSuccess    = "Deposit successful!"
	MsgDepositFailure    = "Error depositing. Please try again."
	MsgWithdrawalSuccess = "Withdrawal successful!"
	MsgWithdrawalFailure = "Error withdrawing. Please try again."
)

// NotificationEntry records the outcome of one deposit or withdrawal.
// Entries are never modified after creation.
type NotificationEntry struct {
	ID        uuid.UUID        `json:"id"`
	Category  Category         `json:"category"`
	Message   string           `json:"message"`
	Amount    *decimal.Decimal `json:"amount,omitempty"` // nil for failures
	Success   bool             `json:"success"`
	Timestamp time.Time        `json:"timestamp"`
}

// NewNotification builds the entry for a finished mutation. Failed entries
// carry no amount.
func NewNotification(category Category, amount Amount, success bool, at time.Time) NotificationEntry {
	entry := NotificationEntry{
		ID:        uuid.New(),
		Category:  category,
		Success:   success,
		Timestamp: at,
	}

	switch {
	case category == CategoryDeposit && success:
		entry.Message = MsgDepositSuccess
	case category == CategoryDeposit:
		entry.Message = MsgDepositFailure
	case success:
		entry.Message = MsgWithdrawalSuccess
	default:
		entry.Message = MsgWithdrawalFailure
	}

	if success {
		v := amount.Decimal()
		entry.Amount = &v
	}
	return entry
}

// NotificationLog is the ordered log for one category.
// Count always equals len(Entries).
type NotificationLog struct {
	Count   int                 `json:"count"`
	Entries []NotificationEntry `json:"entries"`
}

// Notifications holds both per-category logs.
type Notifications struct {
	Deposit    NotificationLog `json:"deposit"`
	Withdrawal NotificationLog `json:"withdrawal"`
}

// Log returns the log for the given category.
func (n Notifications) Log(category Category) NotificationLog {
	if category == CategoryWithdrawal {
		return n.Withdrawal
	}
	return n.Deposit
}

// Append returns a copy of n with entry added to its category's log.
// The receiver's slices are never written, so earlier snapshots stay valid.
func (n Notifications) Append(entry NotificationEntry) Notifications {
	appendTo := func(log NotificationLog) NotificationLog {
		entries := make([]NotificationEntry, len(log.Entries), len(log.Entries)+1)
		copy(entries, log.Entries)
		entries = append(entries, entry)
		return NotificationLog{Count: len(entries), Entries: entries}
	}

	switch entry.Category {
	case CategoryDeposit:
		n.Deposit = appendTo(n.Deposit)
	case CategoryWithdrawal:
		n.Withdrawal = appendTo(n.Withdrawal)
	}
	return n
}

// EmptyNotifications returns both logs empty with zero counts.
func EmptyNotifications() Notifications {
	return Notifications{
		Deposit:    NotificationLog{Entries: []NotificationEntry{}},
		Withdrawal: NotificationLog{Entries: []NotificationEntry{}},
	}
}
