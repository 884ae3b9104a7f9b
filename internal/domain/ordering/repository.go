package ordering

import (
	"context"

	"github.com/google/uuid"

	"github.com/vendora/backend/internal/domain/shared"
)

// Repository defines persistence operations for vendor orders
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*VendorOrder, error)
	// ExistsByPlatformOrderID reports whether any vendor partition of the
	// external order has already been persisted.
	ExistsByPlatformOrderID(ctx context.Context, platformOrderID string) (bool, error)
	FindByPlatformOrderID(ctx context.Context, platformOrderID string) ([]VendorOrder, error)
	FindAllByVendor(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]VendorOrder, error)
	// Insert persists a new vendor order. A uniqueness violation on
	// (platform order id, vendor name) surfaces shared.ErrAlreadyExists,
	// which ingestion treats as the idempotency signal.
	Insert(ctx context.Context, order *VendorOrder) error
	Save(ctx context.Context, order *VendorOrder) error
}
