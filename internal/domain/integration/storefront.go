package integration

import (
	"context"
	"errors"
	"strings"

	"github.com/vendora/backend/internal/domain/shared"
)

// ---------------------------------------------------------------------------
// Storefront Errors
// ---------------------------------------------------------------------------

var (
	// ErrShopNotConfigured indicates the vendor has no storefront credential
	ErrShopNotConfigured = errors.New("integration: shop not configured")
	// ErrStorefrontAuth indicates the shop credential was rejected
	ErrStorefrontAuth = errors.New("integration: storefront authentication failed")
	// ErrStorefrontUnavailable indicates a network-level failure reaching the storefront
	ErrStorefrontUnavailable = errors.New("integration: storefront temporarily unavailable")
	// ErrStorefrontRequestFailed indicates the storefront rejected the request
	ErrStorefrontRequestFailed = errors.New("integration: storefront request failed")
	// ErrStorefrontInvalidResponse indicates an unparseable storefront response
	ErrStorefrontInvalidResponse = errors.New("integration: invalid storefront response")
)

// UserError is one entry of a storefront mutation's userErrors list.
// The storefront reports domain-level validation failures this way on a
// transport-successful response, so callers branch on these rather than
// treating them as exceptional.
type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

// UserErrorList is the full userErrors payload of one mutation. It
// implements error so adapters can return it unwrapped and orchestrators
// can pick it out with errors.As.
type UserErrorList []UserError

// Error implements the error interface
func (l UserErrorList) Error() string {
	if len(l) == 0 {
		return "integration: storefront reported user errors"
	}
	msgs := make([]string, 0, len(l))
	for _, ue := range l {
		msgs = append(msgs, ue.Message)
	}
	return "integration: " + strings.Join(msgs, "; ")
}

// Details converts the list into the shared error-detail shape used by
// API envelopes.
func (l UserErrorList) Details() []shared.ErrorDetail {
	details := make([]shared.ErrorDetail, 0, len(l))
	for _, ue := range l {
		details = append(details, shared.ErrorDetail{
			Field:   strings.Join(ue.Field, "."),
			Message: ue.Message,
		})
	}
	return details
}

// ---------------------------------------------------------------------------
// Shop Credential
// ---------------------------------------------------------------------------

// ShopCredential identifies one vendor's storefront and authorizes API
// calls against it. It is threaded through every adapter call; there is
// no process-wide session.
type ShopCredential struct {
	ShopDomain  string
	AccessToken string
}

// Validate checks the credential is usable
func (c ShopCredential) Validate() error {
	if c.ShopDomain == "" || c.AccessToken == "" {
		return ErrShopNotConfigured
	}
	return nil
}

// ---------------------------------------------------------------------------
// External Catalog Value Objects
// ---------------------------------------------------------------------------

// ExternalOptionValue is one allowed value of an external product option
type ExternalOptionValue struct {
	ID   string
	Name string
}

// ExternalOption is a product option as it exists on the storefront,
// with the IDs variant payloads must reference.
type ExternalOption struct {
	ID     string
	Name   string
	Values []ExternalOptionValue
}

// ExternalVariant is a variant as it exists on the storefront
type ExternalVariant struct {
	ID    string
	Title string
}

// ExternalProduct is the storefront's representation of a published
// product. DefaultVariant is the variant the storefront creates
// automatically at product-creation time; it has no local counterpart
// until reconciled.
type ExternalProduct struct {
	ID             string
	Title          string
	Handle         string
	Options        []ExternalOption
	DefaultVariant ExternalVariant
}

// OptionByName resolves an external option by name, matching
// case-insensitively against the locally recorded option name.
func (p *ExternalProduct) OptionByName(name string) (ExternalOption, bool) {
	for _, opt := range p.Options {
		if strings.EqualFold(opt.Name, name) {
			return opt, true
		}
	}
	return ExternalOption{}, false
}

// ---------------------------------------------------------------------------
// Mutation Inputs
// ---------------------------------------------------------------------------

// ProductOptionInput declares a product option at creation time
type ProductOptionInput struct {
	Name   string
	Values []string
}

// MediaInput references one product image to attach at creation time
type MediaInput struct {
	URL string
	Alt string
}

// SEOInput carries the storefront SEO fields
type SEOInput struct {
	Title       string
	Description string
}

// MetafieldInput carries the vendor-identifying metafield attached to
// every published product.
type MetafieldInput struct {
	Namespace string
	Key       string
	Value     string
	Type      string
}

// ProductCreateInput is the payload for creating the external product
type ProductCreateInput struct {
	Title           string
	DescriptionHTML string
	Vendor          string
	ProductType     string
	Tags            []string
	Options         []ProductOptionInput
	Media           []MediaInput
	SEO             *SEOInput
	VendorMetafield *MetafieldInput
}

// VariantOptionValueInput binds a variant to one external option value,
// referencing the external option by ID.
type VariantOptionValueInput struct {
	OptionID string
	Name     string
}

// VariantCreateInput is one entry of the bulk variant creation payload.
// Prices are decimal strings as the storefront expects; inventory is
// seeded at the configured location.
type VariantCreateInput struct {
	OptionValues      []VariantOptionValueInput
	Price             string
	CompareAtPrice    string
	Barcode           string
	SKU               string
	InventoryQuantity int
	LocationID        string
}

// VariantUpdateInput updates the storefront's auto-created default
// variant in place. When no local variant matched the default title the
// local fields are empty; that payload is still sent (preserved
// behavior, see Reconcile).
type VariantUpdateInput struct {
	ID             string
	Price          string
	CompareAtPrice string
	Barcode        string
	SKU            string
}

// ---------------------------------------------------------------------------
// Storefront Port
// ---------------------------------------------------------------------------

// StorefrontClient is the port to one external e-commerce catalog,
// authenticated per call with a shop credential. Implementations live in
// the infrastructure layer.
//
// Each method distinguishes three failure classes: credential problems
// (ErrShopNotConfigured, ErrStorefrontAuth), transport problems
// (ErrStorefrontUnavailable, ErrStorefrontRequestFailed), and domain
// rejections reported by the storefront itself, returned as a
// UserErrorList error value.
type StorefrontClient interface {
	// CreateProduct creates the product with options, media, SEO and the
	// vendor metafield. The storefront auto-creates a default variant
	// whose title is derived from the product options.
	CreateProduct(ctx context.Context, cred ShopCredential, input ProductCreateInput) (*ExternalProduct, error)

	// UpdateDefaultVariant bulk-updates the single auto-created default
	// variant with locally authored fields.
	UpdateDefaultVariant(ctx context.Context, cred ShopCredential, productID string, input VariantUpdateInput) (*ExternalVariant, error)

	// BulkCreateVariants creates the remaining locally authored variants
	// against the product, resolving option values by external option ID.
	// Returned variants are in input order.
	BulkCreateVariants(ctx context.Context, cred ShopCredential, productID string, inputs []VariantCreateInput) ([]ExternalVariant, error)
}
