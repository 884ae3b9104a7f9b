package handler

import (
	"github.com/gin-gonic/gin"

	appnotification "github.com/vendora/backend/internal/application/notification"
	"github.com/vendora/backend/internal/domain/notification"
	"github.com/vendora/backend/internal/infrastructure/auth"
	"github.com/vendora/backend/internal/interfaces/http/dto"
	"github.com/vendora/backend/internal/interfaces/http/middleware"
)

// NotificationHandler serves in-store notifications. The recipient is
// derived from the token: vendors see their own feed, admins the shared
// operator feed.
type NotificationHandler struct {
	BaseHandler
	notifications *appnotification.Service
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifications *appnotification.Service) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// recipient resolves the notification recipient key for the caller
func (h *NotificationHandler) recipient(c *gin.Context) (string, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return "", false
	}
	if claims.Role == auth.RoleAdmin {
		return notification.AdminRecipient, true
	}
	return claims.SubjectID, true
}

// List handles GET /notifications
func (h *NotificationHandler) List(c *gin.Context) {
	recipient, ok := h.recipient(c)
	if !ok {
		h.Forbidden(c, "Authentication required")
		return
	}

	req, err := bindListRequest(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filters := make(map[string]interface{})
	if read := c.Query("read"); read != "" {
		filters["read"] = read == "true"
	}
	if typ := c.Query("type"); typ != "" {
		filters["type"] = typ
	}

	notifications, err := h.notifications.List(c.Request.Context(), recipient, toFilter(req, filters))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewNotificationListResponse(notifications))
}

// UnreadCount handles GET /notifications/unread
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	recipient, ok := h.recipient(c)
	if !ok {
		h.Forbidden(c, "Authentication required")
		return
	}

	count, err := h.notifications.UnreadCount(c.Request.Context(), recipient)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.UnreadCountResponse{Unread: count})
}

// MarkRead handles POST /notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	recipient, ok := h.recipient(c)
	if !ok {
		h.Forbidden(c, "Authentication required")
		return
	}
	notificationID, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid notification ID")
		return
	}

	if err := h.notifications.MarkRead(c.Request.Context(), notificationID, recipient); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
