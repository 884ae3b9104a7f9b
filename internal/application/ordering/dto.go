package ordering

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderWebhookPayload mirrors the storefront's orders/create webhook
// body. Only the fields ingestion consumes are declared; monetary
// amounts arrive as decimal strings.
type OrderWebhookPayload struct {
	ID              int64                   `json:"id"`
	Name            string                  `json:"name"`
	OrderNumber     int64                   `json:"order_number"`
	Email           string                  `json:"email"`
	Currency        string                  `json:"currency"`
	FinancialStatus string                  `json:"financial_status"`
	TotalPrice      string                  `json:"total_price"`
	SubtotalPrice   string                  `json:"subtotal_price"`
	TotalTax        string                  `json:"total_tax"`
	CreatedAt       time.Time               `json:"created_at"`
	Customer        *CustomerPayload        `json:"customer"`
	ShippingAddress *ShippingAddressPayload `json:"shipping_address"`
	LineItems       []LineItemPayload       `json:"line_items"`
}

// CustomerPayload is the buyer block of the webhook body
type CustomerPayload struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// ShippingAddressPayload is the delivery address block; absent on
// orders placed without shipping.
type ShippingAddressPayload struct {
	Name     string `json:"name"`
	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
	City     string `json:"city"`
	Province string `json:"province"`
	Country  string `json:"country"`
	Zip      string `json:"zip"`
	Phone    string `json:"phone"`
}

// LineItemPayload is one webhook line item. Vendor carries the
// storefront vendor label that drives partitioning.
type LineItemPayload struct {
	ID           int64  `json:"id"`
	ProductID    int64  `json:"product_id"`
	Title        string `json:"title"`
	VariantTitle string `json:"variant_title"`
	Vendor       string `json:"vendor"`
	Quantity     int    `json:"quantity"`
	Price        string `json:"price"`
	SKU          string `json:"sku"`
}

// PlatformOrderID returns the webhook's numeric order id as the string
// key partitions are stored under.
func (p *OrderWebhookPayload) PlatformOrderID() string {
	return strconv.FormatInt(p.ID, 10)
}

// CustomerName joins the buyer's first and last name
func (p *OrderWebhookPayload) CustomerName() string {
	if p.Customer == nil {
		return ""
	}
	name := p.Customer.FirstName
	if p.Customer.LastName != "" {
		if name != "" {
			name += " "
		}
		name += p.Customer.LastName
	}
	return name
}

// GroupResult is the per-vendor outcome of one ingestion run
type GroupResult struct {
	VendorName       string          `json:"vendor_name"`
	VendorOrderID    uuid.UUID       `json:"vendor_order_id,omitempty"`
	ItemCount        int             `json:"item_count"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	AlreadyProcessed bool            `json:"already_processed,omitempty"`
	Error            string          `json:"error,omitempty"`
}

// IngestResult summarizes one webhook delivery. AlreadyProcessed is set
// when the whole order had been ingested before; per-group failures are
// listed without failing the rest.
type IngestResult struct {
	PlatformOrderID  string        `json:"platform_order_id"`
	AlreadyProcessed bool          `json:"already_processed"`
	Created          int           `json:"created"`
	Failed           int           `json:"failed"`
	Groups           []GroupResult `json:"groups"`
}
