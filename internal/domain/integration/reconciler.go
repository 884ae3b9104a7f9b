package integration

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vendora/backend/internal/domain/catalog"
	"github.com/vendora/backend/internal/domain/shared"
)

// MatchStrategy decides whether a local variant label corresponds to the
// storefront's auto-created default variant title.
type MatchStrategy func(localLabel, defaultTitle string) bool

// MatchExact requires byte-equal labels. This is the default strategy:
// the storefront composes the default title from option values joined
// with " / ", and locally composed labels use the same rule, so any
// divergence in spacing or casing is surfaced rather than papered over.
func MatchExact(localLabel, defaultTitle string) bool {
	return localLabel == defaultTitle
}

// MatchNormalized compares labels case-insensitively with whitespace
// around separators collapsed. Opt-in for shops whose option values were
// entered with inconsistent casing.
func MatchNormalized(localLabel, defaultTitle string) bool {
	return normalizeLabel(localLabel) == normalizeLabel(defaultTitle)
}

func normalizeLabel(s string) string {
	parts := strings.Split(s, catalog.VariantLabelSeparator)
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return strings.Join(parts, catalog.VariantLabelSeparator)
}

// ReconcileOptions tunes a reconciliation run
type ReconcileOptions struct {
	// Match selects the label comparison strategy; nil means MatchExact
	Match MatchStrategy
	// LocationID is the storefront inventory location seeded with each
	// created variant's stock.
	LocationID string
}

// VariantPlan is the outcome of reconciling local variants against a
// freshly created external product: one update payload for the
// storefront's auto-created default variant, and create payloads for
// every remaining local variant.
type VariantPlan struct {
	// DefaultUpdate always targets the external default variant. When no
	// local variant matched the default title its local fields are empty.
	DefaultUpdate VariantUpdateInput
	// DefaultMatched reports whether a local variant matched the default
	// title. When false the default keeps the storefront's own values and
	// no local variant is linked to it.
	DefaultMatched bool
	// DefaultLocalID is the matched local variant, nil when unmatched
	DefaultLocalID *uuid.UUID
	// ToCreate holds the creation payloads for the unmatched variants
	ToCreate []VariantCreateInput
	// CreateLocalIDs holds the local variant IDs in ToCreate order, so
	// returned external IDs can be linked back positionally.
	CreateLocalIDs []uuid.UUID
}

// Reconcile maps locally authored variants onto the external product.
// At most one local variant (the first whose label matches the default
// variant's title under the chosen strategy) becomes an update of the
// auto-created default; every other variant becomes a bulk-create entry
// with option values resolved against the external product's options.
//
// Reconcile is pure: it performs no I/O and does not mutate its inputs.
func Reconcile(external *ExternalProduct, locals []*catalog.Variant, opts ReconcileOptions) (*VariantPlan, error) {
	match := opts.Match
	if match == nil {
		match = MatchExact
	}

	plan := &VariantPlan{
		DefaultUpdate: VariantUpdateInput{ID: external.DefaultVariant.ID},
	}

	for _, v := range locals {
		if !plan.DefaultMatched && match(v.Label, external.DefaultVariant.Title) {
			id := v.ID
			plan.DefaultMatched = true
			plan.DefaultLocalID = &id
			plan.DefaultUpdate.Price = formatPrice(v.Price)
			plan.DefaultUpdate.CompareAtPrice = formatOptionalPrice(v.CompareAtPrice)
			plan.DefaultUpdate.Barcode = v.Barcode
			plan.DefaultUpdate.SKU = v.SKU
			continue
		}

		input, err := buildCreateInput(external, v, opts.LocationID)
		if err != nil {
			return nil, err
		}
		plan.ToCreate = append(plan.ToCreate, input)
		plan.CreateLocalIDs = append(plan.CreateLocalIDs, v.ID)
	}

	return plan, nil
}

func buildCreateInput(external *ExternalProduct, v *catalog.Variant, locationID string) (VariantCreateInput, error) {
	optionValues := make([]VariantOptionValueInput, 0, len(v.OptionValues))
	for _, ov := range v.OptionValues {
		opt, ok := external.OptionByName(ov.Name)
		if !ok {
			return VariantCreateInput{}, shared.NewDomainError(
				"OPTION_NOT_FOUND",
				fmt.Sprintf("option %q of variant %q does not exist on the external product", ov.Name, v.Label),
			)
		}
		optionValues = append(optionValues, VariantOptionValueInput{
			OptionID: opt.ID,
			Name:     ov.Value,
		})
	}

	return VariantCreateInput{
		OptionValues:      optionValues,
		Price:             formatPrice(v.Price),
		CompareAtPrice:    formatOptionalPrice(v.CompareAtPrice),
		Barcode:           v.Barcode,
		SKU:               v.SKU,
		InventoryQuantity: v.StockQuantity,
		LocationID:        locationID,
	}, nil
}

func formatPrice(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func formatOptionalPrice(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return d.StringFixed(2)
}
