package domain

import "time"

// NotificationCategory classifies notification severity for the UI.
type NotificationCategory string

const (
	NotificationInfo     NotificationCategory = "INFO"
	NotificationSuccess  NotificationCategory = "SUCCESS"
	NotificationWarning  NotificationCategory = "WARNING"
	NotificationSecurity NotificationCategory = "SECURITY"
)

// Notification is a persisted message addressed to a single user. The row is
// the durable record; real-time push is best effort on top of it.
type Notification struct {
	ID          string
	RecipientID string
	Title       string
	Message     string
	Category    NotificationCategory
	Read        bool
	CreatedAt   time.Time
}
