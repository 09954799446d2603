package dto

import (
	"time"

	"github.com/spec-kit/support-desk/internal/domain"
)

// NotificationResponse is a single inbox entry.
type NotificationResponse struct {
	ID        string                      `json:"id"`
	Title     string                      `json:"title"`
	Message   string                      `json:"message"`
	Category  domain.NotificationCategory `json:"category"`
	Read      bool                        `json:"read"`
	CreatedAt time.Time                   `json:"created_at"`
}

// NotificationListResponse wraps an inbox page with the unread total.
type NotificationListResponse struct {
	Items       []NotificationResponse `json:"items"`
	UnreadCount int                    `json:"unread_count"`
}

// NewNotificationResponse maps a notification.
func NewNotificationResponse(n *domain.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Category:  n.Category,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}
