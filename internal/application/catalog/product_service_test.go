package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendora/backend/internal/domain/catalog"
	"github.com/vendora/backend/internal/domain/shared"
	"github.com/vendora/backend/internal/domain/vendor"
)

// =============================================================================
// Fakes
// =============================================================================

type fakeProductRepo struct {
	products map[uuid.UUID]*catalog.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*catalog.Product)}
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

func (r *fakeProductRepo) FindAll(context.Context, shared.Filter) ([]catalog.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) FindAllByVendor(_ context.Context, vendorID uuid.UUID, _ shared.Filter) ([]catalog.Product, error) {
	out := make([]catalog.Product, 0)
	for _, p := range r.products {
		if p.VendorID == vendorID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Count(context.Context, shared.Filter) (int64, error) {
	return int64(len(r.products)), nil
}

func (r *fakeProductRepo) Save(_ context.Context, p *catalog.Product) error {
	r.products[p.ID] = p
	return nil
}

type fakeVariantRepo struct {
	byID      map[uuid.UUID]*catalog.Variant
	byProduct map[uuid.UUID][]catalog.Variant
}

func newFakeVariantRepo() *fakeVariantRepo {
	return &fakeVariantRepo{
		byID:      make(map[uuid.UUID]*catalog.Variant),
		byProduct: make(map[uuid.UUID][]catalog.Variant),
	}
}

func (r *fakeVariantRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Variant, error) {
	v, ok := r.byID[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return v, nil
}

func (r *fakeVariantRepo) FindByProduct(_ context.Context, productID uuid.UUID) ([]catalog.Variant, error) {
	return r.byProduct[productID], nil
}

func (r *fakeVariantRepo) Save(_ context.Context, v *catalog.Variant) error {
	r.byID[v.ID] = v
	return nil
}

func (r *fakeVariantRepo) SaveAll(_ context.Context, variants []catalog.Variant) error {
	for i := range variants {
		v := variants[i]
		r.byID[v.ID] = &v
		r.byProduct[v.ProductID] = append(r.byProduct[v.ProductID], v)
	}
	return nil
}

func (r *fakeVariantRepo) Delete(context.Context, uuid.UUID) error { return nil }

type fakeVendorRepo struct {
	vendors map[uuid.UUID]*vendor.Vendor
}

func (r *fakeVendorRepo) FindByID(_ context.Context, id uuid.UUID) (*vendor.Vendor, error) {
	v, ok := r.vendors[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return v, nil
}

func (r *fakeVendorRepo) FindByName(context.Context, string) (*vendor.Vendor, error) {
	return nil, shared.ErrNotFound
}

func (r *fakeVendorRepo) FindAll(context.Context, shared.Filter) ([]vendor.Vendor, error) {
	return nil, nil
}

func (r *fakeVendorRepo) Save(context.Context, *vendor.Vendor) error { return nil }

type capturingPublisher struct {
	events []shared.DomainEvent
}

func (p *capturingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

// =============================================================================
// Fixture
// =============================================================================

func submitCommand(vendorID uuid.UUID) SubmitProductCommand {
	return SubmitProductCommand{
		VendorID:    vendorID,
		Title:       "Classic Tee",
		Description: "<p>Soft cotton tee</p>",
		Brand:       "Acme",
		Price:       decimal.RequireFromString("29.90"),
		Options: []OptionInput{
			{Name: "Color", Values: []string{"Blue", "Red"}},
			{Name: "Size", Values: []string{"M", "L"}},
		},
		Variants: []VariantInput{
			{
				OptionValues:  []catalog.OptionValue{{Name: "Color", Value: "Blue"}, {Name: "Size", Value: "M"}},
				Price:         decimal.RequireFromString("19.90"),
				SKU:           "TEE-BLU-M",
				StockQuantity: 10,
			},
			{
				OptionValues:  []catalog.OptionValue{{Name: "Color", Value: "Red"}, {Name: "Size", Value: "L"}},
				Price:         decimal.RequireFromString("21.50"),
				SKU:           "TEE-RED-L",
				StockQuantity: 5,
			},
		},
		Tags: []string{"apparel"},
	}
}

func newProductService(t *testing.T) (*ProductService, *fakeProductRepo, *fakeVariantRepo, *capturingPublisher, uuid.UUID) {
	t.Helper()
	v, err := vendor.NewVendor("VendorOne", "owner@vendorone.com")
	require.NoError(t, err)

	products := newFakeProductRepo()
	variants := newFakeVariantRepo()
	vendors := &fakeVendorRepo{vendors: map[uuid.UUID]*vendor.Vendor{v.ID: v}}
	publisher := &capturingPublisher{}
	svc := NewProductService(products, variants, vendors, publisher, nil)
	return svc, products, variants, publisher, v.ID
}

// =============================================================================
// Tests
// =============================================================================

func TestSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an unapproved product with variants", func(t *testing.T) {
		svc, products, variants, publisher, vendorID := newProductService(t)

		detail, err := svc.Submit(ctx, submitCommand(vendorID))
		require.NoError(t, err)

		assert.False(t, detail.Product.IsApproved)
		require.Len(t, detail.Variants, 2)
		assert.Equal(t, "Blue / M", detail.Variants[0].Label)
		assert.Len(t, products.products, 1)
		assert.Len(t, variants.byProduct[detail.Product.ID], 2)

		require.Len(t, publisher.events, 1)
		assert.Equal(t, catalog.EventTypeProductSubmitted, publisher.events[0].EventType())
	})

	t.Run("rejects a variant referencing an undeclared option", func(t *testing.T) {
		svc, products, _, _, vendorID := newProductService(t)
		cmd := submitCommand(vendorID)
		cmd.Variants[0].OptionValues = []catalog.OptionValue{{Name: "Material", Value: "Cotton"}}

		_, err := svc.Submit(ctx, cmd)
		require.Error(t, err)
		assert.Empty(t, products.products)
	})

	t.Run("rejects a variant referencing an undeclared value", func(t *testing.T) {
		svc, _, _, _, vendorID := newProductService(t)
		cmd := submitCommand(vendorID)
		cmd.Variants[0].OptionValues = []catalog.OptionValue{{Name: "Color", Value: "Green"}, {Name: "Size", Value: "M"}}

		_, err := svc.Submit(ctx, cmd)
		assert.Error(t, err)
	})

	t.Run("rejects duplicate variant combinations", func(t *testing.T) {
		svc, _, _, _, vendorID := newProductService(t)
		cmd := submitCommand(vendorID)
		cmd.Variants[1] = cmd.Variants[0]

		_, err := svc.Submit(ctx, cmd)
		assert.Error(t, err)
	})

	t.Run("suspended vendor cannot submit", func(t *testing.T) {
		svc, _, _, _, vendorID := newProductService(t)
		v, err := svc.vendorRepo.FindByID(ctx, vendorID)
		require.NoError(t, err)
		require.NoError(t, v.Suspend())

		_, err = svc.Submit(ctx, submitCommand(vendorID))
		assert.Error(t, err)
	})

	t.Run("unknown vendor surfaces not found", func(t *testing.T) {
		svc, _, _, _, _ := newProductService(t)
		_, err := svc.Submit(ctx, submitCommand(uuid.New()))
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestUpdateAndDeactivate(t *testing.T) {
	ctx := context.Background()

	t.Run("only the owning vendor may edit", func(t *testing.T) {
		svc, _, _, _, vendorID := newProductService(t)
		detail, err := svc.Submit(ctx, submitCommand(vendorID))
		require.NoError(t, err)

		_, err = svc.Update(ctx, detail.Product.ID, uuid.New(), UpdateProductCommand{
			Title: "Hijacked", Price: decimal.RequireFromString("1"),
		})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("update keeps approval state", func(t *testing.T) {
		svc, _, _, _, vendorID := newProductService(t)
		detail, err := svc.Submit(ctx, submitCommand(vendorID))
		require.NoError(t, err)

		updated, err := svc.Update(ctx, detail.Product.ID, vendorID, UpdateProductCommand{
			Title:       "Premium Tee",
			Description: "<p>Updated</p>",
			Brand:       "Acme",
			Price:       decimal.RequireFromString("35.00"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Premium Tee", updated.Title)
		assert.False(t, updated.IsApproved)
	})

	t.Run("deactivate raises the event", func(t *testing.T) {
		svc, _, _, publisher, vendorID := newProductService(t)
		detail, err := svc.Submit(ctx, submitCommand(vendorID))
		require.NoError(t, err)
		publisher.events = nil

		require.NoError(t, svc.Deactivate(ctx, detail.Product.ID, vendorID))
		require.Len(t, publisher.events, 1)
		assert.Equal(t, catalog.EventTypeProductDeactivated, publisher.events[0].EventType())
	})
}

func TestUpdateVariant(t *testing.T) {
	ctx := context.Background()

	t.Run("owner edits pricing, stock and identifiers", func(t *testing.T) {
		svc, _, variants, _, vendorID := newProductService(t)
		detail, err := svc.Submit(ctx, submitCommand(vendorID))
		require.NoError(t, err)
		target := variants.byProduct[detail.Product.ID][0]

		updated, err := svc.UpdateVariant(ctx, target.ID, vendorID, UpdateVariantCommand{
			Price:          decimal.RequireFromString("17.90"),
			CompareAtPrice: decimal.RequireFromString("19.90"),
			SKU:            "TEE-BLU-M-2",
			StockQuantity:  3,
		})
		require.NoError(t, err)
		assert.True(t, updated.Price.Equal(decimal.RequireFromString("17.90")))
		assert.Equal(t, "TEE-BLU-M-2", updated.SKU)
		assert.Equal(t, 3, updated.StockQuantity)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		svc, _, variants, _, vendorID := newProductService(t)
		detail, err := svc.Submit(ctx, submitCommand(vendorID))
		require.NoError(t, err)
		target := variants.byProduct[detail.Product.ID][0]

		_, err = svc.UpdateVariant(ctx, target.ID, uuid.New(), UpdateVariantCommand{
			Price: decimal.RequireFromString("1"),
		})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}
