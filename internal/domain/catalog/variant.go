package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vendora/backend/internal/domain/shared"
)

// VariantLabelSeparator joins option values into the composite variant
// label. It matches the storefront's default-variant title format, which
// is what the label is compared against during reconciliation.
const VariantLabelSeparator = " / "

// OptionValue is one attribute/value pair of a variant, e.g. Color/Blue.
type OptionValue struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Variant is a locally authored product variant. It belongs to exactly
// one product; the option value combination is unique within that
// product's variant set. Platform IDs stay empty until the product has
// been published to the vendor's storefront.
type Variant struct {
	shared.BaseEntity
	ProductID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_variants_product_label,priority:1"`
	OptionValues      []OptionValue   `gorm:"serializer:json;type:jsonb"`
	Label             string          `gorm:"type:varchar(255);not null;uniqueIndex:idx_variants_product_label,priority:2"`
	Price             decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	CompareAtPrice    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Barcode           string          `gorm:"type:varchar(64)"`
	SKU               string          `gorm:"type:varchar(64);index"`
	StockQuantity     int             `gorm:"not null;default:0"`
	ImageURL          string          `gorm:"type:text"`
	PlatformProductID string          `gorm:"type:varchar(128)"`
	PlatformVariantID string          `gorm:"type:varchar(128);index"`
}

// TableName returns the table name for GORM
func (Variant) TableName() string {
	return "variants"
}

// NewVariant creates a variant for a product. The label is derived from
// the option values and is immutable afterwards.
func NewVariant(productID uuid.UUID, optionValues []OptionValue, price, compareAtPrice decimal.Decimal) (*Variant, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID is required")
	}
	if len(optionValues) == 0 {
		return nil, shared.NewDomainError("INVALID_VARIANT", "Variant needs at least one option value")
	}
	for _, ov := range optionValues {
		if strings.TrimSpace(ov.Name) == "" || strings.TrimSpace(ov.Value) == "" {
			return nil, shared.NewDomainError("INVALID_VARIANT", "Option name and value cannot be empty")
		}
	}
	if price.IsNegative() || compareAtPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Variant prices cannot be negative")
	}

	return &Variant{
		BaseEntity:     shared.NewBaseEntity(),
		ProductID:      productID,
		OptionValues:   optionValues,
		Label:          ComposeLabel(optionValues),
		Price:          price,
		CompareAtPrice: compareAtPrice,
	}, nil
}

// ComposeLabel builds the composite variant label from option values,
// e.g. [Color/Blue, Size/M] -> "Blue / M".
func ComposeLabel(optionValues []OptionValue) string {
	values := make([]string, 0, len(optionValues))
	for _, ov := range optionValues {
		values = append(values, ov.Value)
	}
	return strings.Join(values, VariantLabelSeparator)
}

// SetIdentifiers sets barcode and SKU
func (v *Variant) SetIdentifiers(barcode, sku string) {
	v.Barcode = barcode
	v.SKU = sku
	v.UpdatedAt = time.Now()
}

// SetStock sets the stock quantity
func (v *Variant) SetStock(quantity int) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock quantity cannot be negative")
	}
	v.StockQuantity = quantity
	v.UpdatedAt = time.Now()
	return nil
}

// SetImage sets the variant image URL
func (v *Variant) SetImage(url string) {
	v.ImageURL = url
	v.UpdatedAt = time.Now()
}

// UpdatePricing updates price and compare-at price
func (v *Variant) UpdatePricing(price, compareAtPrice decimal.Decimal) error {
	if price.IsNegative() || compareAtPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Variant prices cannot be negative")
	}
	v.Price = price
	v.CompareAtPrice = compareAtPrice
	v.UpdatedAt = time.Now()
	return nil
}

// LinkPlatform records the storefront IDs assigned during publish
func (v *Variant) LinkPlatform(platformProductID, platformVariantID string) {
	v.PlatformProductID = platformProductID
	v.PlatformVariantID = platformVariantID
	v.UpdatedAt = time.Now()
}

// IsPublished returns true once the variant has a storefront counterpart
func (v *Variant) IsPublished() bool {
	return v.PlatformVariantID != ""
}

// ValidateVariantSet checks the uniqueness invariant over a product's
// full variant list: no two variants may share the same option value
// combination.
func ValidateVariantSet(variants []Variant) error {
	seen := make(map[string]struct{}, len(variants))
	for _, v := range variants {
		key := v.Label
		if _, dup := seen[key]; dup {
			return shared.NewDomainError("DUPLICATE_VARIANT", "Duplicate variant option values: "+key)
		}
		seen[key] = struct{}{}
	}
	return nil
}
