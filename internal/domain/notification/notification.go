package notification

import (
	"time"

	"github.com/vendora/backend/internal/domain/shared"
)

// AdminRecipient addresses notifications at marketplace administrators
// instead of a vendor account.
const AdminRecipient = "admin"

// Type categorizes a notification
type Type string

const (
	TypeOrder   Type = "order"
	TypeProduct Type = "product"
	TypeReview  Type = "review"
	TypeVendor  Type = "vendor"
)

// Audience marks who the notification is rendered for
type Audience string

const (
	AudienceVendor Audience = "vendor"
	AudienceAdmin  Audience = "admin"
)

// Notification is an in-store message created as a side effect of the
// approval and order workflows. Writes are best-effort: a failed write
// is logged and never rolls back the triggering workflow.
type Notification struct {
	shared.BaseEntity
	Recipient string   `gorm:"type:varchar(64);not null;index"` // vendor id or AdminRecipient
	Title     string   `gorm:"type:varchar(255);not null"`
	Message   string   `gorm:"type:text;not null"`
	Type      Type     `gorm:"type:varchar(20);not null"`
	Read      bool     `gorm:"not null;default:false"`
	Link      string   `gorm:"type:text"`
	Audience  Audience `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (Notification) TableName() string {
	return "notifications"
}

// New creates a notification record
func New(recipient, title, message string, typ Type, link string, audience Audience) (*Notification, error) {
	if recipient == "" {
		return nil, shared.NewDomainError("INVALID_RECIPIENT", "Notification recipient is required")
	}
	if title == "" || message == "" {
		return nil, shared.NewDomainError("INVALID_NOTIFICATION", "Notification title and message are required")
	}
	switch typ {
	case TypeOrder, TypeProduct, TypeReview, TypeVendor:
	default:
		return nil, shared.NewDomainError("INVALID_TYPE", "Unknown notification type")
	}

	return &Notification{
		BaseEntity: shared.NewBaseEntity(),
		Recipient:  recipient,
		Title:      title,
		Message:    message,
		Type:       typ,
		Link:       link,
		Audience:   audience,
	}, nil
}

// MarkRead flags the notification as read
func (n *Notification) MarkRead() {
	n.Read = true
	n.UpdatedAt = time.Now()
}
