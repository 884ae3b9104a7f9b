package shopify

// Admin GraphQL mutation documents. The product create selection pulls
// the option and option-value IDs plus the auto-created default variant
// so the caller can reconcile local variants without a second round
// trip.

const productCreateMutation = `mutation ProductCreate($input: ProductInput!, $media: [CreateMediaInput!]) {
	productCreate(input: $input, media: $media) {
		product {
			id
			title
			handle
			options {
				id
				name
				optionValues {
					id
					name
				}
			}
			variants(first: 1) {
				nodes {
					id
					title
				}
			}
		}
		userErrors {
			field
			message
		}
	}
}`

const variantsBulkUpdateMutation = `mutation ProductVariantsBulkUpdate($productId: ID!, $variants: [ProductVariantsBulkInput!]!) {
	productVariantsBulkUpdate(productId: $productId, variants: $variants) {
		productVariants {
			id
			title
		}
		userErrors {
			field
			message
		}
	}
}`

const variantsBulkCreateMutation = `mutation ProductVariantsBulkCreate($productId: ID!, $variants: [ProductVariantsBulkInput!]!) {
	productVariantsBulkCreate(productId: $productId, variants: $variants) {
		productVariants {
			id
			title
		}
		userErrors {
			field
			message
		}
	}
}`
