package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/vendora/backend/internal/domain/shared"
)

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	FindAllByVendor(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]Product, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// Save persists the product with an optimistic version check; a stale
	// version surfaces shared.ErrConcurrencyConflict.
	Save(ctx context.Context, product *Product) error
}

// VariantRepository defines persistence operations for variants
type VariantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Variant, error)
	// FindByProduct returns the product's variants in creation order
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]Variant, error)
	Save(ctx context.Context, variant *Variant) error
	SaveAll(ctx context.Context, variants []Variant) error
	Delete(ctx context.Context, id uuid.UUID) error
}
