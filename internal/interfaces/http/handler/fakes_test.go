package handler

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vendora/backend/internal/domain/catalog"
	"github.com/vendora/backend/internal/domain/integration"
	"github.com/vendora/backend/internal/domain/notification"
	"github.com/vendora/backend/internal/domain/ordering"
	"github.com/vendora/backend/internal/domain/shared"
	"github.com/vendora/backend/internal/domain/vendor"
)

// In-memory repository fakes backing the handler tests. They implement
// only the behavior the routes exercise.

type memProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*catalog.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: make(map[uuid.UUID]*catalog.Product)}
}

func (r *memProductRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memProductRepo) FindAll(_ context.Context, filter shared.Filter) ([]catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []catalog.Product
	for _, p := range r.products {
		if matchProductFilter(p, filter) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memProductRepo) FindAllByVendor(_ context.Context, vendorID uuid.UUID, _ shared.Filter) ([]catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []catalog.Product
	for _, p := range r.products {
		if p.VendorID == vendorID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memProductRepo) Count(_ context.Context, filter shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.products {
		if matchProductFilter(p, filter) {
			n++
		}
	}
	return n, nil
}

func (r *memProductRepo) Save(_ context.Context, product *catalog.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *product
	r.products[product.ID] = &cp
	return nil
}

func matchProductFilter(p *catalog.Product, filter shared.Filter) bool {
	if approved, ok := filter.Filters["is_approved"].(bool); ok && p.IsApproved != approved {
		return false
	}
	if active, ok := filter.Filters["is_active"].(bool); ok && p.IsActive != active {
		return false
	}
	return true
}

type memVariantRepo struct {
	mu       sync.Mutex
	variants map[uuid.UUID]*catalog.Variant
}

func newMemVariantRepo() *memVariantRepo {
	return &memVariantRepo{variants: make(map[uuid.UUID]*catalog.Variant)}
}

func (r *memVariantRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Variant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.variants[id]; ok {
		cp := *v
		return &cp, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memVariantRepo) FindByProduct(_ context.Context, productID uuid.UUID) ([]catalog.Variant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []catalog.Variant
	for _, v := range r.variants {
		if v.ProductID == productID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r *memVariantRepo) Save(_ context.Context, variant *catalog.Variant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *variant
	r.variants[variant.ID] = &cp
	return nil
}

func (r *memVariantRepo) SaveAll(_ context.Context, variants []catalog.Variant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range variants {
		cp := variants[i]
		r.variants[cp.ID] = &cp
	}
	return nil
}

func (r *memVariantRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.variants[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.variants, id)
	return nil
}

type memVendorRepo struct {
	mu      sync.Mutex
	vendors map[uuid.UUID]*vendor.Vendor
}

func newMemVendorRepo() *memVendorRepo {
	return &memVendorRepo{vendors: make(map[uuid.UUID]*vendor.Vendor)}
}

func (r *memVendorRepo) FindByID(_ context.Context, id uuid.UUID) (*vendor.Vendor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.vendors[id]; ok {
		cp := *v
		return &cp, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memVendorRepo) FindByName(_ context.Context, name string) (*vendor.Vendor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.vendors {
		if v.Name == name {
			cp := *v
			return &cp, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memVendorRepo) FindAll(_ context.Context, _ shared.Filter) ([]vendor.Vendor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []vendor.Vendor
	for _, v := range r.vendors {
		out = append(out, *v)
	}
	return out, nil
}

func (r *memVendorRepo) Save(_ context.Context, v *vendor.Vendor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.vendors {
		if existing.Name == v.Name && existing.ID != v.ID {
			return shared.ErrAlreadyExists
		}
	}
	cp := *v
	r.vendors[v.ID] = &cp
	return nil
}

type memOrderRepo struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*ordering.VendorOrder
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: make(map[uuid.UUID]*ordering.VendorOrder)}
}

func (r *memOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*ordering.VendorOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o, ok := r.orders[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memOrderRepo) ExistsByPlatformOrderID(_ context.Context, platformOrderID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.PlatformOrderID == platformOrderID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memOrderRepo) FindByPlatformOrderID(_ context.Context, platformOrderID string) ([]ordering.VendorOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []ordering.VendorOrder
	for _, o := range r.orders {
		if o.PlatformOrderID == platformOrderID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *memOrderRepo) FindAllByVendor(_ context.Context, vendorID uuid.UUID, _ shared.Filter) ([]ordering.VendorOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []ordering.VendorOrder
	for _, o := range r.orders {
		if o.VendorID != nil && *o.VendorID == vendorID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *memOrderRepo) Insert(_ context.Context, order *ordering.VendorOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.PlatformOrderID == order.PlatformOrderID && o.VendorName == order.VendorName {
			return shared.ErrAlreadyExists
		}
	}
	cp := *order
	r.orders[order.ID] = &cp
	return nil
}

func (r *memOrderRepo) Save(_ context.Context, order *ordering.VendorOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *order
	r.orders[order.ID] = &cp
	return nil
}

type memNotificationRepo struct {
	mu            sync.Mutex
	notifications map[uuid.UUID]*notification.Notification
}

func newMemNotificationRepo() *memNotificationRepo {
	return &memNotificationRepo{notifications: make(map[uuid.UUID]*notification.Notification)}
}

func (r *memNotificationRepo) FindByID(_ context.Context, id uuid.UUID) (*notification.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n, ok := r.notifications[id]; ok {
		cp := *n
		return &cp, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memNotificationRepo) FindByRecipient(_ context.Context, recipient string, _ shared.Filter) ([]notification.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []notification.Notification
	for _, n := range r.notifications {
		if n.Recipient == recipient {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (r *memNotificationRepo) CountUnread(_ context.Context, recipient string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, item := range r.notifications {
		if item.Recipient == recipient && !item.Read {
			n++
		}
	}
	return n, nil
}

func (r *memNotificationRepo) Save(_ context.Context, n *notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *n
	r.notifications[n.ID] = &cp
	return nil
}

func (r *memNotificationRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.notifications, id)
	return nil
}

// fakeStorefront is a canned StorefrontClient for publish-route tests
type fakeStorefront struct {
	createErr        error
	created          *integration.ExternalProduct
	createUserErrors integration.UserErrorList
	updateUserErrors integration.UserErrorList
	bulkCreated      []integration.ExternalVariant
	createCalls      int
}

func (f *fakeStorefront) CreateProduct(_ context.Context, _ integration.ShopCredential, _ integration.ProductCreateInput) (*integration.ExternalProduct, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	if len(f.createUserErrors) > 0 {
		return nil, f.createUserErrors
	}
	return f.created, nil
}

func (f *fakeStorefront) UpdateDefaultVariant(_ context.Context, _ integration.ShopCredential, _ string, input integration.VariantUpdateInput) (*integration.ExternalVariant, error) {
	if len(f.updateUserErrors) > 0 {
		return nil, f.updateUserErrors
	}
	return &integration.ExternalVariant{ID: input.ID}, nil
}

func (f *fakeStorefront) BulkCreateVariants(_ context.Context, _ integration.ShopCredential, _ string, inputs []integration.VariantCreateInput) ([]integration.ExternalVariant, error) {
	if len(inputs) == 0 {
		return nil, nil
	}
	if f.bulkCreated != nil {
		return f.bulkCreated, nil
	}
	out := make([]integration.ExternalVariant, len(inputs))
	for i := range inputs {
		out[i] = integration.ExternalVariant{ID: "gid://shopify/ProductVariant/" + strconv.Itoa(900+i)}
	}
	return out, nil
}

// alwaysFreeLock is a PublishLock that always grants acquisition
type alwaysFreeLock struct{}

func (alwaysFreeLock) Acquire(context.Context, string, time.Duration) (string, bool, error) {
	return "free-token", true, nil
}
func (alwaysFreeLock) Release(context.Context, string, string) error { return nil }

// heldLock is a PublishLock that is already held
type heldLock struct{}

func (heldLock) Acquire(context.Context, string, time.Duration) (string, bool, error) {
	return "", false, nil
}
func (heldLock) Release(context.Context, string, string) error { return nil }
