package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vendora/backend/internal/domain/catalog"
)

// OptionInput declares one product option on submission
type OptionInput struct {
	Name   string
	Values []string
}

// VariantInput declares one variant on submission
type VariantInput struct {
	OptionValues   []catalog.OptionValue
	Price          decimal.Decimal
	CompareAtPrice decimal.Decimal
	SKU            string
	Barcode        string
	StockQuantity  int
	ImageURL       string
}

// SubmitProductCommand carries a vendor's new product submission
type SubmitProductCommand struct {
	VendorID        uuid.UUID
	Title           string
	Description     string
	Brand           string
	ProductType     string
	CategoryID      *uuid.UUID
	Price           decimal.Decimal
	DiscountedPrice decimal.Decimal
	Options         []OptionInput
	Variants        []VariantInput
	Tags            []string
	Thumbnail       string
	Images          []string
	SEOTitle        string
	SEODescription  string
}

// UpdateProductCommand carries vendor edits to an existing product
type UpdateProductCommand struct {
	Title           string
	Description     string
	Brand           string
	Price           decimal.Decimal
	DiscountedPrice decimal.Decimal
	Tags            []string
	Thumbnail       string
	Images          []string
	SEOTitle        string
	SEODescription  string
}

// UpdateVariantCommand carries vendor edits to one variant
type UpdateVariantCommand struct {
	Price          decimal.Decimal
	CompareAtPrice decimal.Decimal
	SKU            string
	Barcode        string
	StockQuantity  int
	ImageURL       string
}

// ProductDetail bundles a product with its variants for read paths
type ProductDetail struct {
	Product  *catalog.Product
	Variants []catalog.Variant
}
