package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vendora/backend/internal/domain/shared"
)

// DefaultApprovalRemarks is recorded when an admin approves a product
// without supplying remarks.
const DefaultApprovalRemarks = "Approved by admin."

// ProductOption describes a product-level option and its allowed values,
// e.g. {Name: "Color", Values: ["Blue", "Red"]}. Options are ordered; the
// storefront derives the default variant title from them.
type ProductOption struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// Product is a vendor-authored catalog entry. It is the aggregate root for
// the submission/approval lifecycle: created unapproved by the vendor,
// approved only by the publish workflow after a clean storefront publish,
// and never hard-deleted, only deactivated.
type Product struct {
	shared.BaseAggregateRoot
	VendorID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title               string          `gorm:"type:varchar(255);not null"`
	Description         string          `gorm:"type:text"` // HTML
	Brand               string          `gorm:"type:varchar(120)"`
	ProductType         string          `gorm:"type:varchar(120)"`
	CategoryID          *uuid.UUID      `gorm:"type:uuid;index"`
	Price               decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	DiscountedPrice     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	IsApproved          bool            `gorm:"not null;default:false"`
	IsActive            bool            `gorm:"not null;default:true"`
	VerificationRemarks string          `gorm:"type:text"`
	Options             []ProductOption `gorm:"serializer:json;type:jsonb"`
	Tags                []string        `gorm:"serializer:json;type:jsonb"`
	Thumbnail           string          `gorm:"type:text"`
	Images              []string        `gorm:"serializer:json;type:jsonb"`
	SEOTitle            string          `gorm:"type:varchar(255)"`
	SEODescription      string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new, unapproved product submitted by a vendor
func NewProduct(vendorID uuid.UUID, title, description, brand string, price, discountedPrice decimal.Decimal) (*Product, error) {
	if vendorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VENDOR", "Vendor ID is required")
	}
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validatePrices(price, discountedPrice); err != nil {
		return nil, err
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		VendorID:          vendorID,
		Title:             strings.TrimSpace(title),
		Description:       description,
		Brand:             brand,
		Price:             price,
		DiscountedPrice:   discountedPrice,
		IsApproved:        false,
		IsActive:          true,
		Options:           make([]ProductOption, 0),
		Tags:              make([]string, 0),
		Images:            make([]string, 0),
	}

	product.AddDomainEvent(NewProductSubmittedEvent(product))

	return product, nil
}

// AddOption appends a product option. Option names are unique within a
// product and every option needs at least one value.
func (p *Product) AddOption(name string, values []string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_OPTION", "Option name cannot be empty")
	}
	if len(values) == 0 {
		return shared.NewDomainError("INVALID_OPTION", "Option needs at least one value")
	}
	for _, existing := range p.Options {
		if strings.EqualFold(existing.Name, name) {
			return shared.NewDomainError("DUPLICATE_OPTION", "Option with this name already exists")
		}
	}

	p.Options = append(p.Options, ProductOption{Name: name, Values: values})
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Update updates vendor-editable fields. Allowed before and after
// approval; approval state is untouched.
func (p *Product) Update(title, description, brand string, price, discountedPrice decimal.Decimal) error {
	if err := validateTitle(title); err != nil {
		return err
	}
	if err := validatePrices(price, discountedPrice); err != nil {
		return err
	}

	p.Title = strings.TrimSpace(title)
	p.Description = description
	p.Brand = brand
	p.Price = price
	p.DiscountedPrice = discountedPrice
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetCategory sets the product category
func (p *Product) SetCategory(categoryID *uuid.UUID) {
	p.CategoryID = categoryID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetMedia replaces the thumbnail and image list
func (p *Product) SetMedia(thumbnail string, images []string) {
	p.Thumbnail = thumbnail
	if images == nil {
		images = make([]string, 0)
	}
	p.Images = images
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetSEO sets the storefront SEO fields
func (p *Product) SetSEO(title, description string) {
	p.SEOTitle = title
	p.SEODescription = description
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetTags replaces the tag list
func (p *Product) SetTags(tags []string) {
	if tags == nil {
		tags = make([]string, 0)
	}
	p.Tags = tags
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Approve marks the product as approved. Called only by the publish
// workflow after every storefront call completed without user errors.
func (p *Product) Approve(remarks string) error {
	if !p.IsActive {
		return shared.NewDomainError("INACTIVE_PRODUCT", "Cannot approve an inactive product")
	}
	if remarks == "" {
		remarks = DefaultApprovalRemarks
	}

	p.IsApproved = true
	p.VerificationRemarks = remarks
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductApprovedEvent(p))

	return nil
}

// Reject records a rejection. It never touches the external catalog.
func (p *Product) Reject(remarks string) error {
	if remarks == "" {
		return shared.NewDomainError("REMARKS_REQUIRED", "Rejection remarks are required")
	}

	p.IsApproved = false
	p.VerificationRemarks = remarks
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductRejectedEvent(p))

	return nil
}

// Deactivate takes the product off the marketplace. Products are never
// hard-deleted.
func (p *Product) Deactivate() error {
	if !p.IsActive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Product is already inactive")
	}

	p.IsActive = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductDeactivatedEvent(p))

	return nil
}

// Activate puts a deactivated product back on the marketplace
func (p *Product) Activate() error {
	if p.IsActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Product is already active")
	}

	p.IsActive = true
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// OptionNames returns the option names in declaration order
func (p *Product) OptionNames() []string {
	names := make([]string, 0, len(p.Options))
	for _, opt := range p.Options {
		names = append(names, opt.Name)
	}
	return names
}

func validateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Product title cannot be empty")
	}
	if len(title) > 255 {
		return shared.NewDomainError("INVALID_TITLE", "Product title cannot exceed 255 characters")
	}
	return nil
}

func validatePrices(price, discountedPrice decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if discountedPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Discounted price cannot be negative")
	}
	if !discountedPrice.IsZero() && discountedPrice.GreaterThan(price) {
		return shared.NewDomainError("INVALID_PRICE", "Discounted price cannot exceed the regular price")
	}
	return nil
}
