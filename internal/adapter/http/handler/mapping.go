package handler

import (
	"time"

	"wallet-atm/config"
	"wallet-atm/internal/adapter/http/dto"
	"wallet-atm/internal/core/domain"
)

func toSessionResponse(s *domain.Session, owner config.OwnerConfig) dto.SessionResponse {
	return dto.SessionResponse{
		ID:              s.ID,
		State:           string(s.State()),
		WalletAvailable: s.WalletAvailable,
		Account:         s.Account,
		Contract:        s.Contract,
		Balance:         s.Balance,
		Owner:           dto.OwnerResponse{Name: owner.Name, Country: owner.Country},
		Notifications: dto.NotificationsResponse{
			Deposit:    toNotificationLogResponse(s.Notifications.Deposit),
			Withdrawal: toNotificationLogResponse(s.Notifications.Withdrawal),
		},
	}
}

func toNotificationLogResponse(log domain.NotificationLog) dto.NotificationLogResponse {
	entries := make([]dto.NotificationResponse, 0, len(log.Entries))
	for _, e := range log.Entries {
		entries = append(entries, toNotificationResponse(e))
	}
	return dto.NotificationLogResponse{Count: log.Count, Entries: entries}
}

func toNotificationResponse(e domain.NotificationEntry) dto.NotificationResponse {
	resp := dto.NotificationResponse{
		ID:        e.ID.String(),
		Category:  string(e.Category),
		Message:   e.Message,
		Success:   e.Success,
		Timestamp: e.Timestamp.UTC().Format(time.RFC3339),
	}
	if e.Amount != nil {
		resp.Amount = e.Amount.String()
	}
	return resp
}
