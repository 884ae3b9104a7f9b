package integration

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vendora/backend/internal/domain/catalog"
	"github.com/vendora/backend/internal/domain/integration"
	"github.com/vendora/backend/internal/domain/shared"
	"github.com/vendora/backend/internal/domain/vendor"
)

var (
	// ErrPublishInProgress is returned when another publish of the same
	// product holds the lock.
	ErrPublishInProgress = errors.New("publish: already in progress for this product")
)

// PublishStage identifies the storefront call a publish run failed at
type PublishStage string

const (
	StageProductCreate PublishStage = "product_create"
	StageVariantUpdate PublishStage = "variant_update"
	StageVariantCreate PublishStage = "variant_create"
)

// PublishLock provides per-product mutual exclusion for publish runs.
// Implementations live in the infrastructure layer.
type PublishLock interface {
	// Acquire takes the lock, returning a release token; acquired false
	// means another holder has it
	Acquire(ctx context.Context, key string, ttl time.Duration) (token string, acquired bool, err error)
	// Release frees the lock only while token still identifies the
	// current holder, so a run that outlived its TTL cannot free a lock
	// a later holder re-acquired. Releasing an unheld lock is a no-op.
	Release(ctx context.Context, key, token string) error
}

// PublishResult is the outcome of one publish run.
//
// Approved means every storefront call succeeded and the product was
// approved locally. UserErrors non-empty means the storefront rejected
// the run at FailedStage; Partial then reports whether the external
// product already existed when the run stopped, since there is no
// compensating deletion.
type PublishResult struct {
	ProductID         uuid.UUID
	ExternalProductID string
	ExternalHandle    string
	Approved          bool
	Partial           bool
	FailedStage       PublishStage
	UserErrors        integration.UserErrorList
	VariantsLinked    int
}

// PublishServiceConfig holds the orchestrator's collaborators
type PublishServiceConfig struct {
	ProductRepo    catalog.ProductRepository
	VariantRepo    catalog.VariantRepository
	VendorRepo     vendor.Repository
	Storefront     integration.StorefrontClient
	Lock           PublishLock
	EventPublisher shared.EventPublisher
	Logger         *zap.Logger

	// Match selects the default-variant label strategy; nil means exact
	Match integration.MatchStrategy
	// LocationID seeds created variants' inventory on the storefront
	LocationID string
	// LockTTL bounds how long a crashed publish can hold the lock
	LockTTL time.Duration
	// MetafieldNamespace/Key identify the vendor metafield written onto
	// every published product.
	MetafieldNamespace string
	MetafieldKey       string
}

// PublishService orchestrates the approval-and-publish workflow: create
// the product on the vendor's storefront, reconcile variants, and only
// on a fully clean run approve the product locally.
type PublishService struct {
	productRepo    catalog.ProductRepository
	variantRepo    catalog.VariantRepository
	vendorRepo     vendor.Repository
	storefront     integration.StorefrontClient
	lock           PublishLock
	eventPublisher shared.EventPublisher
	logger         *zap.Logger

	match              integration.MatchStrategy
	locationID         string
	lockTTL            time.Duration
	metafieldNamespace string
	metafieldKey       string
}

// NewPublishService creates a new PublishService
func NewPublishService(config PublishServiceConfig) *PublishService {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	lockTTL := config.LockTTL
	if lockTTL <= 0 {
		lockTTL = 2 * time.Minute
	}
	namespace := config.MetafieldNamespace
	if namespace == "" {
		namespace = "marketplace"
	}
	key := config.MetafieldKey
	if key == "" {
		key = "vendor"
	}

	return &PublishService{
		productRepo:        config.ProductRepo,
		variantRepo:        config.VariantRepo,
		vendorRepo:         config.VendorRepo,
		storefront:         config.Storefront,
		lock:               config.Lock,
		eventPublisher:     config.EventPublisher,
		logger:             logger,
		match:              config.Match,
		locationID:         config.LocationID,
		lockTTL:            lockTTL,
		metafieldNamespace: namespace,
		metafieldKey:       key,
	}
}

// Publish runs the full publish workflow for one product.
//
// Storefront user errors are not transport failures: they come back in
// the result with the failed stage so callers can show them verbatim.
// Transport and auth failures return an error instead. Either way the
// product is approved only when every stage completed cleanly; there is
// no compensating deletion of external state.
func (s *PublishService) Publish(ctx context.Context, productID uuid.UUID, remarks string) (*PublishResult, error) {
	lockKey := publishLockKey(productID)
	lockToken, acquired, err := s.lock.Acquire(ctx, lockKey, s.lockTTL)
	if err != nil {
		return nil, fmt.Errorf("acquire publish lock: %w", err)
	}
	if !acquired {
		return nil, ErrPublishInProgress
	}
	defer func() {
		if err := s.lock.Release(context.WithoutCancel(ctx), lockKey, lockToken); err != nil {
			s.logger.Warn("failed to release publish lock",
				zap.String("product_id", productID.String()),
				zap.Error(err),
			)
		}
	}()

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, shared.NewDomainError("INACTIVE_PRODUCT", "Cannot publish an inactive product")
	}
	if product.IsApproved {
		// Re-running would create a second external product and orphan
		// the first; there is no compensating deletion.
		return nil, shared.NewDomainError("ALREADY_APPROVED", "Product is already approved and published")
	}

	owner, err := s.vendorRepo.FindByID(ctx, product.VendorID)
	if err != nil {
		return nil, err
	}
	cred := integration.ShopCredential{ShopDomain: owner.ShopDomain, AccessToken: owner.AccessToken}
	if err := cred.Validate(); err != nil {
		return nil, err
	}

	variants, err := s.variantRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	result := &PublishResult{ProductID: productID}

	// Stage 1: create the external product
	external, err := s.storefront.CreateProduct(ctx, cred, s.buildProductInput(product, owner))
	if err != nil {
		var userErrors integration.UserErrorList
		if errors.As(err, &userErrors) {
			result.FailedStage = StageProductCreate
			result.UserErrors = userErrors
			s.logPublishAborted(product, result)
			return result, nil
		}
		return nil, fmt.Errorf("create external product: %w", err)
	}
	result.ExternalProductID = external.ID
	result.ExternalHandle = external.Handle

	// Stage 2+3: reconcile local variants against the created product
	plan, err := integration.Reconcile(external, variantPointers(variants), integration.ReconcileOptions{
		Match:      s.match,
		LocationID: s.locationID,
	})
	if err != nil {
		return nil, err
	}
	if !plan.DefaultMatched {
		s.logger.Warn("no local variant matched the storefront default variant",
			zap.String("product_id", productID.String()),
			zap.String("default_title", external.DefaultVariant.Title),
		)
	}

	defaultVariant, err := s.storefront.UpdateDefaultVariant(ctx, cred, external.ID, plan.DefaultUpdate)
	if err != nil {
		var userErrors integration.UserErrorList
		if errors.As(err, &userErrors) {
			result.FailedStage = StageVariantUpdate
			result.UserErrors = userErrors
			result.Partial = true
			s.logPublishAborted(product, result)
			return result, nil
		}
		return nil, fmt.Errorf("update default variant: %w", err)
	}

	var created []integration.ExternalVariant
	if len(plan.ToCreate) > 0 {
		created, err = s.storefront.BulkCreateVariants(ctx, cred, external.ID, plan.ToCreate)
		if err != nil {
			var userErrors integration.UserErrorList
			if errors.As(err, &userErrors) {
				result.FailedStage = StageVariantCreate
				result.UserErrors = userErrors
				result.Partial = true
				s.logPublishAborted(product, result)
				return result, nil
			}
			return nil, fmt.Errorf("bulk create variants: %w", err)
		}
	}

	// All clean: backfill platform ids and approve locally
	linked := s.linkVariants(variants, plan, external.ID, defaultVariant, created)
	if err := s.variantRepo.SaveAll(ctx, variants); err != nil {
		return nil, err
	}

	if err := product.Approve(remarks); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, product)

	result.Approved = true
	result.VariantsLinked = linked
	s.logger.Info("product published",
		zap.String("product_id", productID.String()),
		zap.String("external_product_id", external.ID),
		zap.Int("variants_linked", linked),
	)
	return result, nil
}

// Reject records an admin rejection. No storefront call is made: a
// rejected product never reached, or no longer belongs on, the external
// catalog.
func (s *PublishService) Reject(ctx context.Context, productID uuid.UUID, remarks string) error {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if err := product.Reject(remarks); err != nil {
		return err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return err
	}
	s.publishEvents(ctx, product)

	s.logger.Info("product rejected",
		zap.String("product_id", productID.String()),
	)
	return nil
}

func (s *PublishService) buildProductInput(product *catalog.Product, owner *vendor.Vendor) integration.ProductCreateInput {
	options := make([]integration.ProductOptionInput, 0, len(product.Options))
	for _, opt := range product.Options {
		options = append(options, integration.ProductOptionInput{Name: opt.Name, Values: opt.Values})
	}

	media := make([]integration.MediaInput, 0, len(product.Images)+1)
	if product.Thumbnail != "" {
		media = append(media, integration.MediaInput{URL: product.Thumbnail, Alt: product.Title})
	}
	for _, img := range product.Images {
		media = append(media, integration.MediaInput{URL: img, Alt: product.Title})
	}

	var seo *integration.SEOInput
	if product.SEOTitle != "" || product.SEODescription != "" {
		seo = &integration.SEOInput{Title: product.SEOTitle, Description: product.SEODescription}
	}

	return integration.ProductCreateInput{
		Title:           product.Title,
		DescriptionHTML: product.Description,
		Vendor:          owner.Name,
		ProductType:     product.ProductType,
		Tags:            product.Tags,
		Options:         options,
		Media:           media,
		SEO:             seo,
		VendorMetafield: &integration.MetafieldInput{
			Namespace: s.metafieldNamespace,
			Key:       s.metafieldKey,
			Value:     owner.Name,
			Type:      "single_line_text_field",
		},
	}
}

// linkVariants writes the storefront ids back onto the local variants.
// Created variants are linked positionally, in plan order.
func (s *PublishService) linkVariants(
	variants []catalog.Variant,
	plan *integration.VariantPlan,
	externalProductID string,
	defaultVariant *integration.ExternalVariant,
	created []integration.ExternalVariant,
) int {
	byID := make(map[uuid.UUID]*catalog.Variant, len(variants))
	for i := range variants {
		byID[variants[i].ID] = &variants[i]
	}

	linked := 0
	if plan.DefaultLocalID != nil && defaultVariant != nil {
		if v, ok := byID[*plan.DefaultLocalID]; ok {
			v.LinkPlatform(externalProductID, defaultVariant.ID)
			linked++
		}
	}
	for i, localID := range plan.CreateLocalIDs {
		if i >= len(created) {
			s.logger.Warn("storefront returned fewer variants than requested",
				zap.String("external_product_id", externalProductID),
				zap.Int("requested", len(plan.CreateLocalIDs)),
				zap.Int("returned", len(created)),
			)
			break
		}
		if v, ok := byID[localID]; ok {
			v.LinkPlatform(externalProductID, created[i].ID)
			linked++
		}
	}
	return linked
}

func (s *PublishService) publishEvents(ctx context.Context, product *catalog.Product) {
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

func (s *PublishService) logPublishAborted(product *catalog.Product, result *PublishResult) {
	s.logger.Warn("publish aborted by storefront user errors",
		zap.String("product_id", product.ID.String()),
		zap.String("stage", string(result.FailedStage)),
		zap.Bool("partial", result.Partial),
		zap.String("user_errors", strings.TrimPrefix(result.UserErrors.Error(), "integration: ")),
	)
}

func publishLockKey(productID uuid.UUID) string {
	return "publish:product:" + productID.String()
}

func variantPointers(variants []catalog.Variant) []*catalog.Variant {
	out := make([]*catalog.Variant, 0, len(variants))
	for i := range variants {
		out = append(out, &variants[i])
	}
	return out
}
