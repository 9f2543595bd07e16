package models

import "time"

// NotificationLevel classifies a user-visible notification.
type NotificationLevel string

const (
	NotificationInfo    NotificationLevel = "info"
	NotificationSuccess NotificationLevel = "success"
	NotificationError   NotificationLevel = "error"
)

// Notification is a user-visible message naming the action it reports on.
type Notification struct {
	Level   NotificationLevel `json:"level"`
	Action  string            `json:"action"`
	Message string            `json:"message"`
	At      time.Time         `json:"at"`
}
