package ordering

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vendora/backend/internal/domain/ordering"
	"github.com/vendora/backend/internal/domain/shared"
)

// OrderService covers the vendor-facing read and fulfillment surface of
// the order partitions that ingestion writes.
type OrderService struct {
	orderRepo ordering.Repository
	logger    *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo ordering.Repository, logger *zap.Logger) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{orderRepo: orderRepo, logger: logger}
}

// ListByVendor returns the vendor's order partitions
func (s *OrderService) ListByVendor(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]ordering.VendorOrder, error) {
	return s.orderRepo.FindAllByVendor(ctx, vendorID, filter)
}

// Get returns one order partition, scoped to the owning vendor
func (s *OrderService) Get(ctx context.Context, orderID, vendorID uuid.UUID) (*ordering.VendorOrder, error) {
	order, err := s.loadOwned(ctx, orderID, vendorID)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Fulfill marks the vendor's partition as fulfilled
func (s *OrderService) Fulfill(ctx context.Context, orderID, vendorID uuid.UUID) (*ordering.VendorOrder, error) {
	order, err := s.loadOwned(ctx, orderID, vendorID)
	if err != nil {
		return nil, err
	}
	if err := order.MarkFulfilled(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("vendor order fulfilled",
		zap.String("order_id", orderID.String()),
		zap.String("vendor_id", vendorID.String()),
	)
	return order, nil
}

// Cancel cancels the vendor's partition
func (s *OrderService) Cancel(ctx context.Context, orderID, vendorID uuid.UUID) (*ordering.VendorOrder, error) {
	order, err := s.loadOwned(ctx, orderID, vendorID)
	if err != nil {
		return nil, err
	}
	if err := order.Cancel(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("vendor order cancelled",
		zap.String("order_id", orderID.String()),
		zap.String("vendor_id", vendorID.String()),
	)
	return order, nil
}

func (s *OrderService) loadOwned(ctx context.Context, orderID, vendorID uuid.UUID) (*ordering.VendorOrder, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.VendorID == nil || *order.VendorID != vendorID {
		return nil, shared.ErrForbidden
	}
	return order, nil
}
