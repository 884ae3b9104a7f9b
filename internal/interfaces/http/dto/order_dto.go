package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vendora/backend/internal/domain/ordering"
)

// OrderLineResponse is one line-item snapshot in responses
type OrderLineResponse struct {
	PlatformLineID    string          `json:"platform_line_id"`
	PlatformProductID string          `json:"platform_product_id,omitempty"`
	Title             string          `json:"title"`
	VariantTitle      string          `json:"variant_title,omitempty"`
	Quantity          int             `json:"quantity"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	SKU               string          `json:"sku,omitempty"`
}

// ShippingAddressResponse is the delivery address snapshot in responses
type ShippingAddressResponse struct {
	Name     string `json:"name"`
	Address1 string `json:"address1"`
	Address2 string `json:"address2,omitempty"`
	City     string `json:"city"`
	Province string `json:"province"`
	Country  string `json:"country"`
	Zip      string `json:"zip"`
	Phone    string `json:"phone,omitempty"`
}

// VendorOrderResponse is one vendor order partition in responses
type VendorOrderResponse struct {
	ID              uuid.UUID                `json:"id"`
	PlatformOrderID string                   `json:"platform_order_id"`
	OrderNumber     string                   `json:"order_number"`
	VendorName      string                   `json:"vendor_name"`
	VendorID        *uuid.UUID               `json:"vendor_id,omitempty"`
	Items           []OrderLineResponse      `json:"items"`
	TotalAmount     decimal.Decimal          `json:"total_amount"`
	Currency        string                   `json:"currency"`
	FinancialStatus string                   `json:"financial_status,omitempty"`
	CustomerEmail   string                   `json:"customer_email,omitempty"`
	CustomerName    string                   `json:"customer_name,omitempty"`
	Shipping        *ShippingAddressResponse `json:"shipping,omitempty"`
	PlacedAt        time.Time                `json:"placed_at"`
	Status          string                   `json:"status"`
	TimestampResponse
}

// NewVendorOrderResponse maps a vendor order to its response form
func NewVendorOrderResponse(o *ordering.VendorOrder) VendorOrderResponse {
	items := make([]OrderLineResponse, len(o.Items))
	for i, line := range o.Items {
		items[i] = OrderLineResponse{
			PlatformLineID:    line.PlatformLineID,
			PlatformProductID: line.PlatformProductID,
			Title:             line.Title,
			VariantTitle:      line.VariantTitle,
			Quantity:          line.Quantity,
			UnitPrice:         line.UnitPrice,
			SKU:               line.SKU,
		}
	}

	resp := VendorOrderResponse{
		ID:              o.ID,
		PlatformOrderID: o.PlatformOrderID,
		OrderNumber:     o.OrderNumber,
		VendorName:      o.VendorName,
		VendorID:        o.VendorID,
		Items:           items,
		TotalAmount:     o.TotalAmount,
		Currency:        o.Currency,
		FinancialStatus: o.FinancialStatus,
		CustomerEmail:   o.CustomerEmail,
		CustomerName:    o.CustomerName,
		PlacedAt:        o.PlacedAt,
		Status:          string(o.Status),
		TimestampResponse: TimestampResponse{
			CreatedAt: o.CreatedAt,
			UpdatedAt: o.UpdatedAt,
		},
	}
	if o.Shipping != nil {
		resp.Shipping = &ShippingAddressResponse{
			Name:     o.Shipping.Name,
			Address1: o.Shipping.Address1,
			Address2: o.Shipping.Address2,
			City:     o.Shipping.City,
			Province: o.Shipping.Province,
			Country:  o.Shipping.Country,
			Zip:      o.Shipping.Zip,
			Phone:    o.Shipping.Phone,
		}
	}
	return resp
}

// NewVendorOrderListResponse maps a vendor order slice to response forms
func NewVendorOrderListResponse(orders []ordering.VendorOrder) []VendorOrderResponse {
	out := make([]VendorOrderResponse, len(orders))
	for i := range orders {
		out[i] = NewVendorOrderResponse(&orders[i])
	}
	return out
}
