package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vendora/backend/internal/domain/catalog"
	"github.com/vendora/backend/internal/domain/notification"
	"github.com/vendora/backend/internal/domain/ordering"
	"github.com/vendora/backend/internal/domain/shared"
	"github.com/vendora/backend/internal/domain/vendor"
)

// EmailSender delivers notification emails. Implementations live in the
// infrastructure layer; a no-op implementation is used when email is
// not configured.
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Dispatcher turns domain events into in-store notifications and
// emails. Every write here is best-effort: failures are logged and the
// triggering workflow never sees them.
type Dispatcher struct {
	notificationRepo notification.Repository
	vendorRepo       vendor.Repository
	email            EmailSender
	logger           *zap.Logger
}

// NewDispatcher creates a new Dispatcher
func NewDispatcher(
	notificationRepo notification.Repository,
	vendorRepo vendor.Repository,
	email EmailSender,
	logger *zap.Logger,
) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		notificationRepo: notificationRepo,
		vendorRepo:       vendorRepo,
		email:            email,
		logger:           logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (d *Dispatcher) EventTypes() []string {
	return []string{
		catalog.EventTypeProductSubmitted,
		catalog.EventTypeProductApproved,
		catalog.EventTypeProductRejected,
		ordering.EventTypeVendorOrderCreated,
	}
}

// Handle processes one domain event. It always returns nil: dispatch is
// a side channel and must never fail the publishing workflow.
func (d *Dispatcher) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *catalog.ProductSubmittedEvent:
		d.onProductSubmitted(ctx, e)
	case *catalog.ProductApprovedEvent:
		d.onProductApproved(ctx, e)
	case *catalog.ProductRejectedEvent:
		d.onProductRejected(ctx, e)
	case *ordering.VendorOrderCreatedEvent:
		d.onVendorOrderCreated(ctx, e)
	default:
		d.logger.Debug("ignoring event", zap.String("event_type", event.EventType()))
	}
	return nil
}

func (d *Dispatcher) onProductSubmitted(ctx context.Context, e *catalog.ProductSubmittedEvent) {
	vendorName := e.VendorID.String()
	if v := d.lookupVendor(ctx, e.VendorID); v != nil {
		vendorName = v.Name
	}

	d.store(ctx,
		notification.AdminRecipient,
		"New product submitted",
		fmt.Sprintf("%s submitted %q for review.", vendorName, e.Title),
		notification.TypeProduct,
		"/admin/products/"+e.ProductID.String(),
		notification.AudienceAdmin,
	)
}

func (d *Dispatcher) onProductApproved(ctx context.Context, e *catalog.ProductApprovedEvent) {
	d.store(ctx,
		e.VendorID.String(),
		"Product approved",
		fmt.Sprintf("Your product %q was approved and published to your storefront. Remarks: %s", e.Title, e.Remarks),
		notification.TypeProduct,
		"/products/"+e.ProductID.String(),
		notification.AudienceVendor,
	)
	d.emailVendor(ctx, e.VendorID,
		"Your product was approved",
		fmt.Sprintf("Good news! %q passed review and is now live on your storefront.\n\nRemarks: %s\n", e.Title, e.Remarks),
	)
}

func (d *Dispatcher) onProductRejected(ctx context.Context, e *catalog.ProductRejectedEvent) {
	d.store(ctx,
		e.VendorID.String(),
		"Product rejected",
		fmt.Sprintf("Your product %q was rejected. Remarks: %s", e.Title, e.Remarks),
		notification.TypeProduct,
		"/products/"+e.ProductID.String(),
		notification.AudienceVendor,
	)
	d.emailVendor(ctx, e.VendorID,
		"Your product needs changes",
		fmt.Sprintf("%q did not pass review.\n\nRemarks: %s\n\nPlease address the remarks and resubmit.\n", e.Title, e.Remarks),
	)
}

func (d *Dispatcher) onVendorOrderCreated(ctx context.Context, e *ordering.VendorOrderCreatedEvent) {
	if e.VendorID == nil {
		// unresolved vendor label, nobody to notify
		return
	}

	d.store(ctx,
		e.VendorID.String(),
		"New order received",
		fmt.Sprintf("Order %s: %d item(s), total %s.", e.OrderNumber, e.ItemCount, e.TotalAmount.StringFixed(2)),
		notification.TypeOrder,
		"/orders/"+e.VendorOrderID.String(),
		notification.AudienceVendor,
	)
	d.emailVendor(ctx, *e.VendorID,
		fmt.Sprintf("New order %s", e.OrderNumber),
		fmt.Sprintf("You received a new order %s with %d item(s) totalling %s.\n", e.OrderNumber, e.ItemCount, e.TotalAmount.StringFixed(2)),
	)
}

func (d *Dispatcher) store(ctx context.Context, recipient, title, message string, typ notification.Type, link string, audience notification.Audience) {
	n, err := notification.New(recipient, title, message, typ, link, audience)
	if err != nil {
		d.logger.Error("failed to build notification",
			zap.String("recipient", recipient),
			zap.Error(err),
		)
		return
	}
	if err := d.notificationRepo.Save(ctx, n); err != nil {
		d.logger.Error("failed to store notification",
			zap.String("recipient", recipient),
			zap.String("title", title),
			zap.Error(err),
		)
	}
}

func (d *Dispatcher) emailVendor(ctx context.Context, vendorID uuid.UUID, subject, body string) {
	if d.email == nil {
		return
	}
	v := d.lookupVendor(ctx, vendorID)
	if v == nil || v.Email == "" {
		return
	}
	if err := d.email.Send(ctx, v.Email, subject, body); err != nil {
		d.logger.Error("failed to send notification email",
			zap.String("vendor_id", vendorID.String()),
			zap.String("subject", subject),
			zap.Error(err),
		)
	}
}

func (d *Dispatcher) lookupVendor(ctx context.Context, vendorID uuid.UUID) *vendor.Vendor {
	v, err := d.vendorRepo.FindByID(ctx, vendorID)
	if err != nil {
		d.logger.Warn("vendor lookup failed for notification",
			zap.String("vendor_id", vendorID.String()),
			zap.Error(err),
		)
		return nil
	}
	return v
}
