package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vendora/backend/internal/domain/catalog"
	"github.com/vendora/backend/internal/domain/shared"
	"github.com/vendora/backend/internal/domain/vendor"
)

// ProductService implements the vendor-facing product lifecycle:
// submission, edits, deactivation and reads. Approval is owned by the
// publish workflow, not by this service.
type ProductService struct {
	productRepo    catalog.ProductRepository
	variantRepo    catalog.VariantRepository
	vendorRepo     vendor.Repository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	variantRepo catalog.VariantRepository,
	vendorRepo vendor.Repository,
	eventPublisher shared.EventPublisher,
	logger *zap.Logger,
) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		productRepo:    productRepo,
		variantRepo:    variantRepo,
		vendorRepo:     vendorRepo,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

// Submit creates a new, unapproved product with its options and
// variants. Every variant's option values must reference a declared
// option, and no two variants may share the same combination.
func (s *ProductService) Submit(ctx context.Context, cmd SubmitProductCommand) (*ProductDetail, error) {
	owner, err := s.vendorRepo.FindByID(ctx, cmd.VendorID)
	if err != nil {
		return nil, err
	}
	if !owner.IsActive() {
		return nil, shared.NewDomainError("VENDOR_SUSPENDED", "Suspended vendors cannot submit products")
	}

	product, err := catalog.NewProduct(cmd.VendorID, cmd.Title, cmd.Description, cmd.Brand, cmd.Price, cmd.DiscountedPrice)
	if err != nil {
		return nil, err
	}
	product.ProductType = cmd.ProductType
	product.SetCategory(cmd.CategoryID)
	product.SetMedia(cmd.Thumbnail, cmd.Images)
	product.SetSEO(cmd.SEOTitle, cmd.SEODescription)
	product.SetTags(cmd.Tags)

	for _, opt := range cmd.Options {
		if err := product.AddOption(opt.Name, opt.Values); err != nil {
			return nil, err
		}
	}

	variants, err := buildVariants(product, cmd.Variants)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	if len(variants) > 0 {
		if err := s.variantRepo.SaveAll(ctx, variants); err != nil {
			return nil, err
		}
	}
	s.publishEvents(ctx, product)

	s.logger.Info("product submitted",
		zap.String("product_id", product.ID.String()),
		zap.String("vendor_id", cmd.VendorID.String()),
		zap.Int("variants", len(variants)),
	)
	return &ProductDetail{Product: product, Variants: variants}, nil
}

// Update applies vendor edits to an existing product. Only the owning
// vendor may edit; approval state is untouched.
func (s *ProductService) Update(ctx context.Context, productID, vendorID uuid.UUID, cmd UpdateProductCommand) (*catalog.Product, error) {
	product, err := s.loadOwned(ctx, productID, vendorID)
	if err != nil {
		return nil, err
	}

	if err := product.Update(cmd.Title, cmd.Description, cmd.Brand, cmd.Price, cmd.DiscountedPrice); err != nil {
		return nil, err
	}
	product.SetMedia(cmd.Thumbnail, cmd.Images)
	product.SetSEO(cmd.SEOTitle, cmd.SEODescription)
	product.SetTags(cmd.Tags)

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, product)
	return product, nil
}

// Deactivate takes a vendor's product off the marketplace
func (s *ProductService) Deactivate(ctx context.Context, productID, vendorID uuid.UUID) error {
	product, err := s.loadOwned(ctx, productID, vendorID)
	if err != nil {
		return err
	}
	if err := product.Deactivate(); err != nil {
		return err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return err
	}
	s.publishEvents(ctx, product)
	return nil
}

// UpdateVariant applies vendor edits to one variant of an owned product
func (s *ProductService) UpdateVariant(ctx context.Context, variantID, vendorID uuid.UUID, cmd UpdateVariantCommand) (*catalog.Variant, error) {
	v, err := s.variantRepo.FindByID(ctx, variantID)
	if err != nil {
		return nil, err
	}
	if _, err := s.loadOwned(ctx, v.ProductID, vendorID); err != nil {
		return nil, err
	}

	if err := v.UpdatePricing(cmd.Price, cmd.CompareAtPrice); err != nil {
		return nil, err
	}
	if err := v.SetStock(cmd.StockQuantity); err != nil {
		return nil, err
	}
	v.SetIdentifiers(cmd.Barcode, cmd.SKU)
	v.SetImage(cmd.ImageURL)

	if err := s.variantRepo.Save(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// Get returns a product with its variants
func (s *ProductService) Get(ctx context.Context, productID uuid.UUID) (*ProductDetail, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	variants, err := s.variantRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &ProductDetail{Product: product, Variants: variants}, nil
}

// ListByVendor returns one vendor's products
func (s *ProductService) ListByVendor(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	if filter.PageSize <= 0 {
		filter = shared.DefaultFilter()
	}
	return s.productRepo.FindAllByVendor(ctx, vendorID, filter)
}

// List returns products across vendors, for the admin review queue
func (s *ProductService) List(ctx context.Context, filter shared.Filter) ([]catalog.Product, int64, error) {
	if filter.PageSize <= 0 {
		filter = shared.DefaultFilter()
	}
	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (s *ProductService) loadOwned(ctx context.Context, productID, vendorID uuid.UUID) (*catalog.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.VendorID != vendorID {
		return nil, shared.ErrForbidden
	}
	return product, nil
}

func (s *ProductService) publishEvents(ctx context.Context, product *catalog.Product) {
	events := product.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish product events",
			zap.String("product_id", product.ID.String()),
			zap.Error(err),
		)
	}
	product.ClearDomainEvents()
}

// buildVariants materializes the variant set, checking every option
// value against the declared options and the set-level uniqueness.
func buildVariants(product *catalog.Product, inputs []VariantInput) ([]catalog.Variant, error) {
	variants := make([]catalog.Variant, 0, len(inputs))
	declared := make(map[string]map[string]bool, len(product.Options))
	for _, opt := range product.Options {
		values := make(map[string]bool, len(opt.Values))
		for _, v := range opt.Values {
			values[strings.ToLower(v)] = true
		}
		declared[strings.ToLower(opt.Name)] = values
	}

	for _, in := range inputs {
		for _, ov := range in.OptionValues {
			values, ok := declared[strings.ToLower(ov.Name)]
			if !ok {
				return nil, shared.NewDomainError("UNDECLARED_OPTION", "Variant references undeclared option: "+ov.Name)
			}
			if !values[strings.ToLower(ov.Value)] {
				return nil, shared.NewDomainError("UNDECLARED_OPTION_VALUE", "Variant references undeclared value for option "+ov.Name+": "+ov.Value)
			}
		}

		v, err := catalog.NewVariant(product.ID, in.OptionValues, in.Price, in.CompareAtPrice)
		if err != nil {
			return nil, err
		}
		v.SetIdentifiers(in.Barcode, in.SKU)
		if err := v.SetStock(in.StockQuantity); err != nil {
			return nil, err
		}
		v.SetImage(in.ImageURL)
		variants = append(variants, *v)
	}

	if err := catalog.ValidateVariantSet(variants); err != nil {
		return nil, err
	}
	return variants, nil
}
