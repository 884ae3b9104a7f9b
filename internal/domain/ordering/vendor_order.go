package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vendora/backend/internal/domain/shared"
)

// UnattributedVendor is the partition label for line items whose
// storefront vendor field is empty. They are still persisted so no sold
// item is dropped.
const UnattributedVendor = "unattributed"

// VendorOrderStatus represents the fulfillment status of a vendor order
type VendorOrderStatus string

const (
	VendorOrderStatusPending   VendorOrderStatus = "pending"
	VendorOrderStatusFulfilled VendorOrderStatus = "fulfilled"
	VendorOrderStatusCancelled VendorOrderStatus = "cancelled"
)

// OrderLine is the snapshot of one storefront line item assigned to a
// vendor partition.
type OrderLine struct {
	PlatformLineID    string          `json:"platform_line_id"`
	PlatformProductID string          `json:"platform_product_id"`
	Title             string          `json:"title"`
	VariantTitle      string          `json:"variant_title"`
	Quantity          int             `json:"quantity"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	SKU               string          `json:"sku"`
}

// ShippingAddress is the delivery address snapshot taken at ingestion
// time. Orders without one persist a null address.
type ShippingAddress struct {
	Name     string `json:"name"`
	Address1 string `json:"address1"`
	Address2 string `json:"address2,omitempty"`
	City     string `json:"city"`
	Province string `json:"province"`
	Country  string `json:"country"`
	Zip      string `json:"zip"`
	Phone    string `json:"phone,omitempty"`
}

// VendorOrder is one vendor's partition of an externally placed
// multi-vendor order. At most one exists per (platform order id, vendor)
// pair; the storage layer enforces the uniqueness and a duplicate insert
// is the idempotency signal. Records are never updated by later
// deliveries of the same order.
type VendorOrder struct {
	shared.BaseAggregateRoot
	PlatformOrderID string            `gorm:"type:varchar(64);not null;uniqueIndex:idx_vendor_orders_order_vendor,priority:1"`
	OrderNumber     string            `gorm:"type:varchar(64);not null"`
	VendorName      string            `gorm:"type:varchar(200);not null;uniqueIndex:idx_vendor_orders_order_vendor,priority:2"`
	VendorID        *uuid.UUID        `gorm:"type:uuid;index"`
	Items           []OrderLine       `gorm:"serializer:json;type:jsonb"`
	TotalAmount     decimal.Decimal   `gorm:"type:decimal(18,2);not null;default:0"`
	Currency        string            `gorm:"type:varchar(8);not null"`
	FinancialStatus string            `gorm:"type:varchar(32)"`
	TotalPrice      decimal.Decimal   `gorm:"type:decimal(18,2);not null;default:0"`
	SubtotalPrice   decimal.Decimal   `gorm:"type:decimal(18,2);not null;default:0"`
	TotalTax        decimal.Decimal   `gorm:"type:decimal(18,2);not null;default:0"`
	CustomerEmail   string            `gorm:"type:varchar(255)"`
	CustomerName    string            `gorm:"type:varchar(200)"`
	Shipping        *ShippingAddress  `gorm:"serializer:json;type:jsonb"`
	PlacedAt        time.Time         `gorm:"not null"`
	Status          VendorOrderStatus `gorm:"type:varchar(20);not null;default:'pending'"`
}

// TableName returns the table name for GORM
func (VendorOrder) TableName() string {
	return "vendor_orders"
}

// NewVendorOrder creates a vendor partition of an external order. The
// total amount is computed from the line items; an explicit vendorID is
// set only when the storefront vendor label resolved to a local vendor.
func NewVendorOrder(platformOrderID, orderNumber, vendorName string, items []OrderLine) (*VendorOrder, error) {
	if platformOrderID == "" {
		return nil, shared.NewDomainError("INVALID_ORDER", "Platform order ID is required")
	}
	if vendorName == "" {
		return nil, shared.NewDomainError("INVALID_ORDER", "Vendor name is required")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("INVALID_ORDER", "Vendor order needs at least one line item")
	}

	total := decimal.Zero
	for _, line := range items {
		if line.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_ORDER", "Line item quantity must be positive")
		}
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	return &VendorOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PlatformOrderID:   platformOrderID,
		OrderNumber:       orderNumber,
		VendorName:        vendorName,
		Items:             items,
		TotalAmount:       total,
		PlacedAt:          time.Now(),
		Status:            VendorOrderStatusPending,
	}, nil
}

// RecordCreated appends the VendorOrderCreated event. Called once the
// order context and vendor resolution are in place, so the event carries
// the resolved vendor ID.
func (o *VendorOrder) RecordCreated() {
	o.AddDomainEvent(NewVendorOrderCreatedEvent(o))
}

// SetOrderContext snapshots order-level fields shared by all partitions
// of the same external order.
func (o *VendorOrder) SetOrderContext(currency, financialStatus string, totalPrice, subtotalPrice, totalTax decimal.Decimal, placedAt time.Time) {
	o.Currency = currency
	o.FinancialStatus = financialStatus
	o.TotalPrice = totalPrice
	o.SubtotalPrice = subtotalPrice
	o.TotalTax = totalTax
	if !placedAt.IsZero() {
		o.PlacedAt = placedAt
	}
}

// SetCustomer snapshots the buyer contact fields
func (o *VendorOrder) SetCustomer(email, name string) {
	o.CustomerEmail = email
	o.CustomerName = name
}

// SetShipping snapshots the delivery address; nil is preserved for
// orders placed without one.
func (o *VendorOrder) SetShipping(address *ShippingAddress) {
	o.Shipping = address
}

// ResolveVendor links the partition to a local vendor account
func (o *VendorOrder) ResolveVendor(vendorID uuid.UUID) {
	if vendorID == uuid.Nil {
		return
	}
	o.VendorID = &vendorID
}

// MarkFulfilled transitions the order to fulfilled
func (o *VendorOrder) MarkFulfilled() error {
	if o.Status != VendorOrderStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending orders can be fulfilled")
	}
	o.Status = VendorOrderStatusFulfilled
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// Cancel transitions the order to cancelled
func (o *VendorOrder) Cancel() error {
	if o.Status == VendorOrderStatusCancelled {
		return shared.NewDomainError("ALREADY_CANCELLED", "Order is already cancelled")
	}
	o.Status = VendorOrderStatusCancelled
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}
