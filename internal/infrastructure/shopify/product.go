package shopify

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/vendora/backend/internal/domain/integration"
)

// externalVariantPayload is the variant node selection shared by all
// three mutations
type externalVariantPayload struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// userErrorPayload mirrors the Admin API userErrors entry
type userErrorPayload struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

func toUserErrorList(payload []userErrorPayload) integration.UserErrorList {
	list := make(integration.UserErrorList, 0, len(payload))
	for _, ue := range payload {
		list = append(list, integration.UserError{Field: ue.Field, Message: ue.Message})
	}
	return list
}

// CreateProduct creates the product with its options, media, SEO and
// vendor metafield. Storefront-side validation failures come back as a
// UserErrorList error value; the product is not created in that case.
func (c *Client) CreateProduct(ctx context.Context, cred integration.ShopCredential, input integration.ProductCreateInput) (*integration.ExternalProduct, error) {
	variables := map[string]any{
		"input": buildProductInput(input),
	}
	if media := buildMediaInput(input.Media); len(media) > 0 {
		variables["media"] = media
	}

	data, err := c.execute(ctx, cred, productCreateMutation, variables)
	if err != nil {
		return nil, err
	}

	var payload struct {
		ProductCreate struct {
			Product *struct {
				ID      string `json:"id"`
				Title   string `json:"title"`
				Handle  string `json:"handle"`
				Options []struct {
					ID           string `json:"id"`
					Name         string `json:"name"`
					OptionValues []struct {
						ID   string `json:"id"`
						Name string `json:"name"`
					} `json:"optionValues"`
				} `json:"options"`
				Variants struct {
					Nodes []externalVariantPayload `json:"nodes"`
				} `json:"variants"`
			} `json:"product"`
			UserErrors []userErrorPayload `json:"userErrors"`
		} `json:"productCreate"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", integration.ErrStorefrontInvalidResponse, err)
	}

	if len(payload.ProductCreate.UserErrors) > 0 {
		return nil, toUserErrorList(payload.ProductCreate.UserErrors)
	}
	if payload.ProductCreate.Product == nil {
		return nil, fmt.Errorf("%w: productCreate returned no product", integration.ErrStorefrontInvalidResponse)
	}

	product := payload.ProductCreate.Product
	external := &integration.ExternalProduct{
		ID:     product.ID,
		Title:  product.Title,
		Handle: product.Handle,
	}
	for _, opt := range product.Options {
		extOpt := integration.ExternalOption{ID: opt.ID, Name: opt.Name}
		for _, val := range opt.OptionValues {
			extOpt.Values = append(extOpt.Values, integration.ExternalOptionValue{ID: val.ID, Name: val.Name})
		}
		external.Options = append(external.Options, extOpt)
	}
	if len(product.Variants.Nodes) > 0 {
		node := product.Variants.Nodes[0]
		external.DefaultVariant = integration.ExternalVariant{ID: node.ID, Title: node.Title}
	}

	c.logger.Info("created storefront product",
		zap.String("shop", cred.ShopDomain),
		zap.String("external_product_id", external.ID),
		zap.String("handle", external.Handle))

	return external, nil
}

// UpdateDefaultVariant bulk-updates the auto-created default variant in
// place with locally authored pricing and identifiers
func (c *Client) UpdateDefaultVariant(ctx context.Context, cred integration.ShopCredential, productID string, input integration.VariantUpdateInput) (*integration.ExternalVariant, error) {
	variant := map[string]any{"id": input.ID}
	if input.Price != "" {
		variant["price"] = input.Price
	}
	if input.CompareAtPrice != "" {
		variant["compareAtPrice"] = input.CompareAtPrice
	}
	if input.Barcode != "" {
		variant["barcode"] = input.Barcode
	}
	if input.SKU != "" {
		variant["inventoryItem"] = map[string]any{"sku": input.SKU}
	}

	variables := map[string]any{
		"productId": productID,
		"variants":  []map[string]any{variant},
	}

	data, err := c.execute(ctx, cred, variantsBulkUpdateMutation, variables)
	if err != nil {
		return nil, err
	}

	variants, userErrors, err := decodeBulkVariantPayload(data, "productVariantsBulkUpdate")
	if err != nil {
		return nil, err
	}
	if len(userErrors) > 0 {
		return nil, toUserErrorList(userErrors)
	}
	if len(variants) == 0 {
		return nil, fmt.Errorf("%w: productVariantsBulkUpdate returned no variants", integration.ErrStorefrontInvalidResponse)
	}

	return &integration.ExternalVariant{ID: variants[0].ID, Title: variants[0].Title}, nil
}

// BulkCreateVariants creates the remaining locally authored variants.
// Returned variants preserve input order, which callers rely on to link
// platform IDs back to local rows.
func (c *Client) BulkCreateVariants(ctx context.Context, cred integration.ShopCredential, productID string, inputs []integration.VariantCreateInput) ([]integration.ExternalVariant, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	variants := make([]map[string]any, 0, len(inputs))
	for _, in := range inputs {
		variants = append(variants, buildVariantCreateInput(in))
	}

	variables := map[string]any{
		"productId": productID,
		"variants":  variants,
	}

	data, err := c.execute(ctx, cred, variantsBulkCreateMutation, variables)
	if err != nil {
		return nil, err
	}

	created, userErrors, err := decodeBulkVariantPayload(data, "productVariantsBulkCreate")
	if err != nil {
		return nil, err
	}
	if len(userErrors) > 0 {
		return nil, toUserErrorList(userErrors)
	}

	external := make([]integration.ExternalVariant, 0, len(created))
	for _, v := range created {
		external = append(external, integration.ExternalVariant{ID: v.ID, Title: v.Title})
	}

	c.logger.Info("created storefront variants",
		zap.String("shop", cred.ShopDomain),
		zap.String("external_product_id", productID),
		zap.Int("count", len(external)))

	return external, nil
}

// decodeBulkVariantPayload decodes the shared response shape of the two
// bulk variant mutations
func decodeBulkVariantPayload(data json.RawMessage, field string) ([]externalVariantPayload, []userErrorPayload, error) {
	var envelope map[string]struct {
		ProductVariants []externalVariantPayload `json:"productVariants"`
		UserErrors      []userErrorPayload       `json:"userErrors"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", integration.ErrStorefrontInvalidResponse, err)
	}
	payload, ok := envelope[field]
	if !ok {
		return nil, nil, fmt.Errorf("%w: missing %s payload", integration.ErrStorefrontInvalidResponse, field)
	}
	return payload.ProductVariants, payload.UserErrors, nil
}

// buildProductInput maps the domain payload onto the Admin ProductInput
func buildProductInput(input integration.ProductCreateInput) map[string]any {
	productInput := map[string]any{
		"title": input.Title,
	}
	if input.DescriptionHTML != "" {
		productInput["descriptionHtml"] = input.DescriptionHTML
	}
	if input.Vendor != "" {
		productInput["vendor"] = input.Vendor
	}
	if input.ProductType != "" {
		productInput["productType"] = input.ProductType
	}
	if len(input.Tags) > 0 {
		productInput["tags"] = input.Tags
	}

	if len(input.Options) > 0 {
		options := make([]map[string]any, 0, len(input.Options))
		for _, opt := range input.Options {
			values := make([]map[string]any, 0, len(opt.Values))
			for _, v := range opt.Values {
				values = append(values, map[string]any{"name": v})
			}
			options = append(options, map[string]any{
				"name":   opt.Name,
				"values": values,
			})
		}
		productInput["productOptions"] = options
	}

	if input.SEO != nil {
		productInput["seo"] = map[string]any{
			"title":       input.SEO.Title,
			"description": input.SEO.Description,
		}
	}
	if input.VendorMetafield != nil {
		productInput["metafields"] = []map[string]any{{
			"namespace": input.VendorMetafield.Namespace,
			"key":       input.VendorMetafield.Key,
			"value":     input.VendorMetafield.Value,
			"type":      input.VendorMetafield.Type,
		}}
	}

	return productInput
}

// buildMediaInput maps image references onto CreateMediaInput entries
func buildMediaInput(media []integration.MediaInput) []map[string]any {
	out := make([]map[string]any, 0, len(media))
	for _, m := range media {
		entry := map[string]any{
			"originalSource":   m.URL,
			"mediaContentType": "IMAGE",
		}
		if m.Alt != "" {
			entry["alt"] = m.Alt
		}
		out = append(out, entry)
	}
	return out
}

// buildVariantCreateInput maps one variant onto ProductVariantsBulkInput
func buildVariantCreateInput(in integration.VariantCreateInput) map[string]any {
	optionValues := make([]map[string]any, 0, len(in.OptionValues))
	for _, ov := range in.OptionValues {
		optionValues = append(optionValues, map[string]any{
			"optionId": ov.OptionID,
			"name":     ov.Name,
		})
	}

	variant := map[string]any{
		"optionValues": optionValues,
	}
	if in.Price != "" {
		variant["price"] = in.Price
	}
	if in.CompareAtPrice != "" {
		variant["compareAtPrice"] = in.CompareAtPrice
	}
	if in.Barcode != "" {
		variant["barcode"] = in.Barcode
	}
	if in.SKU != "" {
		variant["inventoryItem"] = map[string]any{"sku": in.SKU}
	}
	if in.LocationID != "" {
		variant["inventoryQuantities"] = []map[string]any{{
			"availableQuantity": in.InventoryQuantity,
			"locationId":        in.LocationID,
		}}
	}

	return variant
}
