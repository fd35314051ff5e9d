package dto

import "encoding/json"

// AmountRequest is the body of a deposit or withdrawal, as JSON or as a
// posted form. JSON callers may send the amount as a number or a string.
type AmountRequest struct {
	Amount json.Number `json:"amount" form:"amount" binding:"required,max=78,decimal_amount"`
}

// SessionResponse is the view of a session returned by the API.
type SessionResponse struct {
	ID              string                `json:"id"`
	State           string                `json:"state"`
	WalletAvailable bool                  `json:"wallet_available"`
	Account         string                `json:"account,omitempty"`
	Contract        string                `json:"contract,omitempty"`
	Balance         *uint64               `json:"balance,omitempty"`
	Owner           OwnerResponse         `json:"owner"`
	Notifications   NotificationsResponse `json:"notifications"`
}

type OwnerResponse struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

type NotificationsResponse struct {
	Deposit    NotificationLogResponse `json:"deposit"`
	Withdrawal NotificationLogResponse `json:"withdrawal"`
}

type NotificationLogResponse struct {
	Count   int                    `json:"count"`
	Entries []NotificationResponse `json:"entries"`
}

// NotificationResponse is one deposit or withdrawal outcome.
type NotificationResponse struct {
	ID        string `json:"id"`
	Category  string `json:"category"`
	Message   string `json:"message"`
	Amount    string `json:"amount,omitempty"`
	Success   bool   `json:"success"`
	Timestamp string `json:"timestamp"`
}

// TransactionResultResponse is returned by deposit and withdraw.
type TransactionResultResponse struct {
	Notification NotificationResponse `json:"notification"`
	Session      SessionResponse      `json:"session"`
}
