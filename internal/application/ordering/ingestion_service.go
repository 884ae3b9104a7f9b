package ordering

import (
	"context"
	"errors"
	"strconv"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vendora/backend/internal/domain/ordering"
	"github.com/vendora/backend/internal/domain/shared"
	"github.com/vendora/backend/internal/domain/vendor"
)

// ErrEmptyOrder is returned when a webhook delivery carries no line items
var ErrEmptyOrder = errors.New("ingestion: order has no line items")

// IngestionService partitions incoming storefront orders by vendor and
// persists one VendorOrder per partition. Deliveries are idempotent:
// the storage-level uniqueness on (platform order id, vendor) is the
// authoritative duplicate guard, with an existence pre-check as a fast
// path for whole-order redeliveries.
type IngestionService struct {
	orderRepo      ordering.Repository
	vendorRepo     vendor.Repository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewIngestionService creates a new IngestionService
func NewIngestionService(
	orderRepo ordering.Repository,
	vendorRepo vendor.Repository,
	eventPublisher shared.EventPublisher,
	logger *zap.Logger,
) *IngestionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IngestionService{
		orderRepo:      orderRepo,
		vendorRepo:     vendorRepo,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

// Ingest processes one orders/create webhook delivery. Vendor groups
// are isolated: a failing group is recorded in the result and never
// rolls back or blocks the others. Only infrastructure failures before
// any group work (the idempotency pre-check) surface as errors.
func (s *IngestionService) Ingest(ctx context.Context, payload *OrderWebhookPayload) (*IngestResult, error) {
	if len(payload.LineItems) == 0 {
		return nil, ErrEmptyOrder
	}

	platformOrderID := payload.PlatformOrderID()
	result := &IngestResult{PlatformOrderID: platformOrderID}

	exists, err := s.orderRepo.ExistsByPlatformOrderID(ctx, platformOrderID)
	if err != nil {
		return nil, err
	}
	if exists {
		result.AlreadyProcessed = true
		s.logger.Info("order already ingested",
			zap.String("platform_order_id", platformOrderID),
		)
		return result, nil
	}

	for _, group := range partitionByVendor(payload.LineItems) {
		result.Groups = append(result.Groups, s.ingestGroup(ctx, payload, platformOrderID, group))
	}

	for _, g := range result.Groups {
		switch {
		case g.Error != "":
			result.Failed++
		case !g.AlreadyProcessed:
			result.Created++
		}
	}

	s.logger.Info("order ingested",
		zap.String("platform_order_id", platformOrderID),
		zap.String("order_number", payload.Name),
		zap.Int("groups", len(result.Groups)),
		zap.Int("created", result.Created),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}

// vendorGroup is one vendor's slice of an order's line items
type vendorGroup struct {
	vendorName string
	items      []ordering.OrderLine
}

// partitionByVendor groups line items by their vendor label, preserving
// first-seen vendor order. Lines without a vendor label are grouped
// together under the empty label and still persisted, so no sold item
// is silently dropped.
func partitionByVendor(lines []LineItemPayload) []vendorGroup {
	index := make(map[string]int)
	groups := make([]vendorGroup, 0)

	for _, line := range lines {
		snapshot := ordering.OrderLine{
			PlatformLineID:    strconv.FormatInt(line.ID, 10),
			PlatformProductID: strconv.FormatInt(line.ProductID, 10),
			Title:             line.Title,
			VariantTitle:      line.VariantTitle,
			Quantity:          line.Quantity,
			UnitPrice:         parseMoney(line.Price),
			SKU:               line.SKU,
		}

		i, seen := index[line.Vendor]
		if !seen {
			i = len(groups)
			index[line.Vendor] = i
			groups = append(groups, vendorGroup{vendorName: line.Vendor})
		}
		groups[i].items = append(groups[i].items, snapshot)
	}
	return groups
}

func (s *IngestionService) ingestGroup(ctx context.Context, payload *OrderWebhookPayload, platformOrderID string, group vendorGroup) GroupResult {
	vendorName := group.vendorName
	if vendorName == "" {
		vendorName = ordering.UnattributedVendor
	}
	gr := GroupResult{VendorName: vendorName, ItemCount: len(group.items)}

	order, err := ordering.NewVendorOrder(platformOrderID, payload.Name, vendorName, group.items)
	if err != nil {
		gr.Error = err.Error()
		s.logGroupFailure(platformOrderID, vendorName, "build vendor order", err)
		return gr
	}
	order.SetOrderContext(
		payload.Currency,
		payload.FinancialStatus,
		parseMoney(payload.TotalPrice),
		parseMoney(payload.SubtotalPrice),
		parseMoney(payload.TotalTax),
		payload.CreatedAt,
	)
	order.SetCustomer(payload.Email, payload.CustomerName())
	order.SetShipping(toShippingAddress(payload.ShippingAddress))
	gr.TotalAmount = order.TotalAmount

	// Resolve the storefront vendor label before persisting so the
	// created event carries the local vendor id. An unknown label is
	// normal for consignment items and not an error.
	resolved := s.resolveVendor(ctx, platformOrderID, group.vendorName)
	if resolved != nil {
		order.ResolveVendor(resolved.ID)
	}

	if err := s.orderRepo.Insert(ctx, order); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			gr.AlreadyProcessed = true
			gr.VendorOrderID = order.ID
			return gr
		}
		gr.Error = err.Error()
		s.logGroupFailure(platformOrderID, vendorName, "insert vendor order", err)
		return gr
	}
	gr.VendorOrderID = order.ID

	if resolved != nil {
		order.RecordCreated()
		if err := s.eventPublisher.Publish(ctx, order.GetDomainEvents()...); err != nil {
			s.logger.Error("failed to publish vendor order created event",
				zap.String("platform_order_id", platformOrderID),
				zap.String("vendor", vendorName),
				zap.Error(err),
			)
		}
		order.ClearDomainEvents()
	}
	return gr
}

func (s *IngestionService) resolveVendor(ctx context.Context, platformOrderID, label string) *vendor.Vendor {
	if label == "" {
		return nil
	}
	v, err := s.vendorRepo.FindByName(ctx, label)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Error("vendor lookup failed",
				zap.String("platform_order_id", platformOrderID),
				zap.String("vendor", label),
				zap.Error(err),
			)
		}
		return nil
	}
	return v
}

func (s *IngestionService) logGroupFailure(platformOrderID, vendorName, op string, err error) {
	s.logger.Error("vendor group ingestion failed",
		zap.String("platform_order_id", platformOrderID),
		zap.String("vendor", vendorName),
		zap.String("op", op),
		zap.Error(err),
	)
}

func toShippingAddress(p *ShippingAddressPayload) *ordering.ShippingAddress {
	if p == nil {
		return nil
	}
	return &ordering.ShippingAddress{
		Name:     p.Name,
		Address1: p.Address1,
		Address2: p.Address2,
		City:     p.City,
		Province: p.Province,
		Country:  p.Country,
		Zip:      p.Zip,
		Phone:    p.Phone,
	}
}

// parseMoney decodes a webhook decimal string; webhook amounts are
// platform-generated, a malformed one is logged upstream as a zero.
func parseMoney(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
