package catalog

import (
	"github.com/google/uuid"

	"github.com/vendora/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeProduct = "Product"

// Event type constants
const (
	EventTypeProductSubmitted   = "ProductSubmitted"
	EventTypeProductUpdated     = "ProductUpdated"
	EventTypeProductApproved    = "ProductApproved"
	EventTypeProductRejected    = "ProductRejected"
	EventTypeProductDeactivated = "ProductDeactivated"
)

// ProductSubmittedEvent is published when a vendor submits a new product
type ProductSubmittedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	VendorID  uuid.UUID `json:"vendor_id"`
	Title     string    `json:"title"`
}

// NewProductSubmittedEvent creates a new ProductSubmittedEvent
func NewProductSubmittedEvent(product *Product) *ProductSubmittedEvent {
	return &ProductSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductSubmitted, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		VendorID:        product.VendorID,
		Title:           product.Title,
	}
}

// ProductUpdatedEvent is published when a vendor edits a product
type ProductUpdatedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	VendorID  uuid.UUID `json:"vendor_id"`
	Title     string    `json:"title"`
}

// NewProductUpdatedEvent creates a new ProductUpdatedEvent
func NewProductUpdatedEvent(product *Product) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductUpdated, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		VendorID:        product.VendorID,
		Title:           product.Title,
	}
}

// ProductApprovedEvent is published after a clean storefront publish
// flips the product to approved
type ProductApprovedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	VendorID  uuid.UUID `json:"vendor_id"`
	Title     string    `json:"title"`
	Remarks   string    `json:"remarks"`
}

// NewProductApprovedEvent creates a new ProductApprovedEvent
func NewProductApprovedEvent(product *Product) *ProductApprovedEvent {
	return &ProductApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductApproved, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		VendorID:        product.VendorID,
		Title:           product.Title,
		Remarks:         product.VerificationRemarks,
	}
}

// ProductRejectedEvent is published when an admin rejects a product
type ProductRejectedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	VendorID  uuid.UUID `json:"vendor_id"`
	Title     string    `json:"title"`
	Remarks   string    `json:"remarks"`
}

// NewProductRejectedEvent creates a new ProductRejectedEvent
func NewProductRejectedEvent(product *Product) *ProductRejectedEvent {
	return &ProductRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductRejected, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		VendorID:        product.VendorID,
		Title:           product.Title,
		Remarks:         product.VerificationRemarks,
	}
}

// ProductDeactivatedEvent is published when a product is taken off the
// marketplace
type ProductDeactivatedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	VendorID  uuid.UUID `json:"vendor_id"`
	Title     string    `json:"title"`
}

// NewProductDeactivatedEvent creates a new ProductDeactivatedEvent
func NewProductDeactivatedEvent(product *Product) *ProductDeactivatedEvent {
	return &ProductDeactivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductDeactivated, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		VendorID:        product.VendorID,
		Title:           product.Title,
	}
}
