package domain

import "time"

// NotificationType classifies notifications for the frontend.
type NotificationType string

const (
	NotificationTypeRequest  NotificationType = "request"
	NotificationTypeDonation NotificationType = "donation"
	NotificationTypeSystem   NotificationType = "system"
)

// Notification is a per-user message produced by domain events.
type Notification struct {
	ID        string
	UserID    string
	Title     string
	Message   string
	Type      NotificationType
	IsRead    bool
	CreatedAt time.Time
}
