package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vendora/backend/internal/domain/ordering"
	"github.com/vendora/backend/internal/domain/shared"
)

// GormVendorOrderRepository implements ordering.Repository using GORM
type GormVendorOrderRepository struct {
	db *gorm.DB
}

// NewGormVendorOrderRepository creates a new GormVendorOrderRepository
func NewGormVendorOrderRepository(db *gorm.DB) *GormVendorOrderRepository {
	return &GormVendorOrderRepository{db: db}
}

// FindByID finds a vendor order by its ID
func (r *GormVendorOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.VendorOrder, error) {
	var order ordering.VendorOrder
	if err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// ExistsByPlatformOrderID reports whether any vendor partition of the
// external order has already been persisted
func (r *GormVendorOrderRepository) ExistsByPlatformOrderID(ctx context.Context, platformOrderID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&ordering.VendorOrder{}).
		Where("platform_order_id = ?", platformOrderID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByPlatformOrderID returns all vendor partitions of an external order
func (r *GormVendorOrderRepository) FindByPlatformOrderID(ctx context.Context, platformOrderID string) ([]ordering.VendorOrder, error) {
	var orders []ordering.VendorOrder
	if err := r.db.WithContext(ctx).
		Where("platform_order_id = ?", platformOrderID).
		Order("vendor_name ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindAllByVendor finds all vendor orders for a vendor
func (r *GormVendorOrderRepository) FindAllByVendor(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]ordering.VendorOrder, error) {
	var orders []ordering.VendorOrder
	query := r.db.WithContext(ctx).Model(&ordering.VendorOrder{}).Where("vendor_id = ?", vendorID)

	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, VendorOrderSortFields, "placed_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	if err := query.Order(orderBy + " " + orderDir).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Insert persists a new vendor order. A uniqueness violation on
// (platform_order_id, vendor_name) surfaces shared.ErrAlreadyExists; the
// ingestion workflow treats that as the idempotency signal for redelivered
// webhooks.
func (r *GormVendorOrderRepository) Insert(ctx context.Context, order *ordering.VendorOrder) error {
	err := r.db.WithContext(ctx).Create(order).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrAlreadyExists
	}
	return err
}

// Save updates an existing vendor order
func (r *GormVendorOrderRepository) Save(ctx context.Context, order *ordering.VendorOrder) error {
	return r.db.WithContext(ctx).Save(order).Error
}

// Ensure GormVendorOrderRepository implements ordering.Repository
var _ ordering.Repository = (*GormVendorOrderRepository)(nil)
