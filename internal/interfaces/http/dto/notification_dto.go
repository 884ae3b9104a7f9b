package dto

import (
	"github.com/google/uuid"

	"github.com/vendora/backend/internal/domain/notification"
)

// NotificationResponse is one in-store notification in responses
type NotificationResponse struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Message  string    `json:"message"`
	Type     string    `json:"type"`
	Read     bool      `json:"read"`
	Link     string    `json:"link,omitempty"`
	Audience string    `json:"audience"`
	TimestampResponse
}

// NewNotificationResponse maps a notification to its response form
func NewNotificationResponse(n *notification.Notification) NotificationResponse {
	return NotificationResponse{
		ID:                n.ID,
		Title:             n.Title,
		Message:           n.Message,
		Type:              string(n.Type),
		Read:              n.Read,
		Link:              n.Link,
		Audience:          string(n.Audience),
		TimestampResponse: TimestampResponse{CreatedAt: n.CreatedAt, UpdatedAt: n.UpdatedAt},
	}
}

// NewNotificationListResponse maps a notification slice to response forms
func NewNotificationListResponse(notifications []notification.Notification) []NotificationResponse {
	out := make([]NotificationResponse, len(notifications))
	for i := range notifications {
		out[i] = NewNotificationResponse(&notifications[i])
	}
	return out
}

// UnreadCountResponse reports the recipient's unread notification count
type UnreadCountResponse struct {
	Unread int64 `json:"unread"`
}
