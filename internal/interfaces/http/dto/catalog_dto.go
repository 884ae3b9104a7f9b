package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appcatalog "github.com/vendora/backend/internal/application/catalog"
	"github.com/vendora/backend/internal/domain/catalog"
)

// OptionRequest declares one product option on submission
type OptionRequest struct {
	Name   string   `json:"name" binding:"required"`
	Values []string `json:"values" binding:"required,min=1"`
}

// OptionValueRequest is one attribute/value pair of a variant
type OptionValueRequest struct {
	Name  string `json:"name" binding:"required"`
	Value string `json:"value" binding:"required"`
}

// VariantRequest declares one variant on submission
type VariantRequest struct {
	OptionValues   []OptionValueRequest `json:"option_values" binding:"required,min=1,dive"`
	Price          decimal.Decimal      `json:"price" binding:"required"`
	CompareAtPrice decimal.Decimal      `json:"compare_at_price"`
	SKU            string               `json:"sku"`
	Barcode        string               `json:"barcode"`
	StockQuantity  int                  `json:"stock_quantity" binding:"min=0"`
	ImageURL       string               `json:"image_url"`
}

// SubmitProductRequest is a vendor's new product submission
type SubmitProductRequest struct {
	Title           string           `json:"title" binding:"required,max=255"`
	Description     string           `json:"description"`
	Brand           string           `json:"brand"`
	ProductType     string           `json:"product_type"`
	CategoryID      *uuid.UUID       `json:"category_id"`
	Price           decimal.Decimal  `json:"price" binding:"required"`
	DiscountedPrice decimal.Decimal  `json:"discounted_price"`
	Options         []OptionRequest  `json:"options" binding:"dive"`
	Variants        []VariantRequest `json:"variants" binding:"required,min=1,dive"`
	Tags            []string         `json:"tags"`
	Thumbnail       string           `json:"thumbnail"`
	Images          []string         `json:"images"`
	SEOTitle        string           `json:"seo_title"`
	SEODescription  string           `json:"seo_description"`
}

// ToCommand converts the request into the application-layer command
func (r *SubmitProductRequest) ToCommand(vendorID uuid.UUID) appcatalog.SubmitProductCommand {
	options := make([]appcatalog.OptionInput, len(r.Options))
	for i, o := range r.Options {
		options[i] = appcatalog.OptionInput{Name: o.Name, Values: o.Values}
	}

	variants := make([]appcatalog.VariantInput, len(r.Variants))
	for i, v := range r.Variants {
		values := make([]catalog.OptionValue, len(v.OptionValues))
		for j, ov := range v.OptionValues {
			values[j] = catalog.OptionValue{Name: ov.Name, Value: ov.Value}
		}
		variants[i] = appcatalog.VariantInput{
			OptionValues:   values,
			Price:          v.Price,
			CompareAtPrice: v.CompareAtPrice,
			SKU:            v.SKU,
			Barcode:        v.Barcode,
			StockQuantity:  v.StockQuantity,
			ImageURL:       v.ImageURL,
		}
	}

	return appcatalog.SubmitProductCommand{
		VendorID:        vendorID,
		Title:           r.Title,
		Description:     r.Description,
		Brand:           r.Brand,
		ProductType:     r.ProductType,
		CategoryID:      r.CategoryID,
		Price:           r.Price,
		DiscountedPrice: r.DiscountedPrice,
		Options:         options,
		Variants:        variants,
		Tags:            r.Tags,
		Thumbnail:       r.Thumbnail,
		Images:          r.Images,
		SEOTitle:        r.SEOTitle,
		SEODescription:  r.SEODescription,
	}
}

// UpdateProductRequest carries vendor edits to an existing product
type UpdateProductRequest struct {
	Title           string          `json:"title" binding:"required,max=255"`
	Description     string          `json:"description"`
	Brand           string          `json:"brand"`
	Price           decimal.Decimal `json:"price" binding:"required"`
	DiscountedPrice decimal.Decimal `json:"discounted_price"`
	Tags            []string        `json:"tags"`
	Thumbnail       string          `json:"thumbnail"`
	Images          []string        `json:"images"`
	SEOTitle        string          `json:"seo_title"`
	SEODescription  string          `json:"seo_description"`
}

// ToCommand converts the request into the application-layer command
func (r *UpdateProductRequest) ToCommand() appcatalog.UpdateProductCommand {
	return appcatalog.UpdateProductCommand{
		Title:           r.Title,
		Description:     r.Description,
		Brand:           r.Brand,
		Price:           r.Price,
		DiscountedPrice: r.DiscountedPrice,
		Tags:            r.Tags,
		Thumbnail:       r.Thumbnail,
		Images:          r.Images,
		SEOTitle:        r.SEOTitle,
		SEODescription:  r.SEODescription,
	}
}

// UpdateVariantRequest carries vendor edits to one variant
type UpdateVariantRequest struct {
	Price          decimal.Decimal `json:"price" binding:"required"`
	CompareAtPrice decimal.Decimal `json:"compare_at_price"`
	SKU            string          `json:"sku"`
	Barcode        string          `json:"barcode"`
	StockQuantity  int             `json:"stock_quantity" binding:"min=0"`
	ImageURL       string          `json:"image_url"`
}

// ToCommand converts the request into the application-layer command
func (r *UpdateVariantRequest) ToCommand() appcatalog.UpdateVariantCommand {
	return appcatalog.UpdateVariantCommand{
		Price:          r.Price,
		CompareAtPrice: r.CompareAtPrice,
		SKU:            r.SKU,
		Barcode:        r.Barcode,
		StockQuantity:  r.StockQuantity,
		ImageURL:       r.ImageURL,
	}
}

// OptionResponse is one product option in responses
type OptionResponse struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// VariantResponse is one variant in responses
type VariantResponse struct {
	ID                uuid.UUID            `json:"id"`
	ProductID         uuid.UUID            `json:"product_id"`
	OptionValues      []OptionValueRequest `json:"option_values"`
	Label             string               `json:"label"`
	Price             decimal.Decimal      `json:"price"`
	CompareAtPrice    decimal.Decimal      `json:"compare_at_price"`
	SKU               string               `json:"sku,omitempty"`
	Barcode           string               `json:"barcode,omitempty"`
	StockQuantity     int                  `json:"stock_quantity"`
	ImageURL          string               `json:"image_url,omitempty"`
	PlatformProductID string               `json:"platform_product_id,omitempty"`
	PlatformVariantID string               `json:"platform_variant_id,omitempty"`
	TimestampResponse
}

// NewVariantResponse maps a variant entity to its response form
func NewVariantResponse(v *catalog.Variant) VariantResponse {
	values := make([]OptionValueRequest, len(v.OptionValues))
	for i, ov := range v.OptionValues {
		values[i] = OptionValueRequest{Name: ov.Name, Value: ov.Value}
	}
	return VariantResponse{
		ID:                v.ID,
		ProductID:         v.ProductID,
		OptionValues:      values,
		Label:             v.Label,
		Price:             v.Price,
		CompareAtPrice:    v.CompareAtPrice,
		SKU:               v.SKU,
		Barcode:           v.Barcode,
		StockQuantity:     v.StockQuantity,
		ImageURL:          v.ImageURL,
		PlatformProductID: v.PlatformProductID,
		PlatformVariantID: v.PlatformVariantID,
		TimestampResponse: TimestampResponse{CreatedAt: v.CreatedAt, UpdatedAt: v.UpdatedAt},
	}
}

// ProductResponse is a product in responses
type ProductResponse struct {
	ID                  uuid.UUID        `json:"id"`
	VendorID            uuid.UUID        `json:"vendor_id"`
	Title               string           `json:"title"`
	Description         string           `json:"description,omitempty"`
	Brand               string           `json:"brand,omitempty"`
	ProductType         string           `json:"product_type,omitempty"`
	CategoryID          *uuid.UUID       `json:"category_id,omitempty"`
	Price               decimal.Decimal  `json:"price"`
	DiscountedPrice     decimal.Decimal  `json:"discounted_price"`
	IsApproved          bool             `json:"is_approved"`
	IsActive            bool             `json:"is_active"`
	VerificationRemarks string           `json:"verification_remarks,omitempty"`
	Options             []OptionResponse `json:"options"`
	Tags                []string         `json:"tags,omitempty"`
	Thumbnail           string           `json:"thumbnail,omitempty"`
	Images              []string         `json:"images,omitempty"`
	SEOTitle            string           `json:"seo_title,omitempty"`
	SEODescription      string           `json:"seo_description,omitempty"`
	Version             int              `json:"version"`
	TimestampResponse
}

// NewProductResponse maps a product aggregate to its response form
func NewProductResponse(p *catalog.Product) ProductResponse {
	options := make([]OptionResponse, len(p.Options))
	for i, o := range p.Options {
		options[i] = OptionResponse{Name: o.Name, Values: o.Values}
	}
	return ProductResponse{
		ID:                  p.ID,
		VendorID:            p.VendorID,
		Title:               p.Title,
		Description:         p.Description,
		Brand:               p.Brand,
		ProductType:         p.ProductType,
		CategoryID:          p.CategoryID,
		Price:               p.Price,
		DiscountedPrice:     p.DiscountedPrice,
		IsApproved:          p.IsApproved,
		IsActive:            p.IsActive,
		VerificationRemarks: p.VerificationRemarks,
		Options:             options,
		Tags:                p.Tags,
		Thumbnail:           p.Thumbnail,
		Images:              p.Images,
		SEOTitle:            p.SEOTitle,
		SEODescription:      p.SEODescription,
		Version:             p.Version,
		TimestampResponse:   TimestampResponse{CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt},
	}
}

// ProductDetailResponse bundles a product with its variants
type ProductDetailResponse struct {
	Product  ProductResponse   `json:"product"`
	Variants []VariantResponse `json:"variants"`
}

// NewProductDetailResponse maps a product detail to its response form
func NewProductDetailResponse(detail *appcatalog.ProductDetail) ProductDetailResponse {
	variants := make([]VariantResponse, len(detail.Variants))
	for i := range detail.Variants {
		variants[i] = NewVariantResponse(&detail.Variants[i])
	}
	return ProductDetailResponse{
		Product:  NewProductResponse(detail.Product),
		Variants: variants,
	}
}

// NewProductListResponse maps a product slice to response forms
func NewProductListResponse(products []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = NewProductResponse(&products[i])
	}
	return out
}
