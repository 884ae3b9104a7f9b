package notification

import (
	"context"

	"github.com/google/uuid"

	"github.com/vendora/backend/internal/domain/notification"
	"github.com/vendora/backend/internal/domain/shared"
)

// Service exposes the notification read side to the HTTP layer
type Service struct {
	repo notification.Repository
}

// NewService creates a new Service
func NewService(repo notification.Repository) *Service {
	return &Service{repo: repo}
}

// List returns a recipient's notifications, newest first
func (s *Service) List(ctx context.Context, recipient string, filter shared.Filter) ([]notification.Notification, error) {
	if recipient == "" {
		return nil, shared.NewDomainError("INVALID_RECIPIENT", "Recipient is required")
	}
	if filter.PageSize <= 0 {
		filter = shared.DefaultFilter()
	}
	return s.repo.FindByRecipient(ctx, recipient, filter)
}

// UnreadCount returns the number of unread notifications for a recipient
func (s *Service) UnreadCount(ctx context.Context, recipient string) (int64, error) {
	return s.repo.CountUnread(ctx, recipient)
}

// MarkRead flags one notification as read. The recipient must own it.
func (s *Service) MarkRead(ctx context.Context, id uuid.UUID, recipient string) error {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if n.Recipient != recipient {
		return shared.ErrForbidden
	}
	if n.Read {
		return nil
	}
	n.MarkRead()
	return s.repo.Save(ctx, n)
}
