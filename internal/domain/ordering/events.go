package ordering

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vendora/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeVendorOrder = "VendorOrder"

// Event type constants
const EventTypeVendorOrderCreated = "VendorOrderCreated"

// VendorOrderCreatedEvent is published when a vendor partition of an
// external order is first persisted. Notification and email dispatch
// ride on this event; the ingestion workflow itself never depends on
// their outcome.
type VendorOrderCreatedEvent struct {
	shared.BaseDomainEvent
	VendorOrderID   uuid.UUID       `json:"vendor_order_id"`
	PlatformOrderID string          `json:"platform_order_id"`
	OrderNumber     string          `json:"order_number"`
	VendorName      string          `json:"vendor_name"`
	VendorID        *uuid.UUID      `json:"vendor_id,omitempty"`
	ItemCount       int             `json:"item_count"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
}

// NewVendorOrderCreatedEvent creates a new VendorOrderCreatedEvent
func NewVendorOrderCreatedEvent(order *VendorOrder) *VendorOrderCreatedEvent {
	return &VendorOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeVendorOrderCreated, AggregateTypeVendorOrder, order.ID),
		VendorOrderID:   order.ID,
		PlatformOrderID: order.PlatformOrderID,
		OrderNumber:     order.OrderNumber,
		VendorName:      order.VendorName,
		VendorID:        order.VendorID,
		ItemCount:       len(order.Items),
		TotalAmount:     order.TotalAmount,
	}
}
