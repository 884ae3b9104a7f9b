package notification

import (
	"context"

	"github.com/google/uuid"

	"github.com/vendora/backend/internal/domain/shared"
)

// Repository defines persistence operations for notifications
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Notification, error)
	FindByRecipient(ctx context.Context, recipient string, filter shared.Filter) ([]Notification, error)
	CountUnread(ctx context.Context, recipient string) (int64, error)
	Save(ctx context.Context, n *Notification) error
	Delete(ctx context.Context, id uuid.UUID) error
}
