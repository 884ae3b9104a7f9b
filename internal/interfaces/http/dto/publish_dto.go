package dto

import (
	"github.com/google/uuid"

	appintegration "github.com/vendora/backend/internal/application/integration"
	"github.com/vendora/backend/internal/domain/integration"
)

// PublishRequest carries optional admin remarks for a publish run
type PublishRequest struct {
	Remarks string `json:"remarks"`
}

// RejectRequest carries the mandatory rejection remarks
type RejectRequest struct {
	Remarks string `json:"remarks" binding:"required"`
}

// PublishResponse is the outcome of a clean publish run
type PublishResponse struct {
	ProductID         uuid.UUID `json:"product_id"`
	ExternalProductID string    `json:"external_product_id"`
	ExternalHandle    string    `json:"external_handle,omitempty"`
	VariantsLinked    int       `json:"variants_linked"`
}

// NewPublishResponse maps a successful publish result to its response form
func NewPublishResponse(result *appintegration.PublishResult) PublishResponse {
	return PublishResponse{
		ProductID:         result.ProductID,
		ExternalProductID: result.ExternalProductID,
		ExternalHandle:    result.ExternalHandle,
		VariantsLinked:    result.VariantsLinked,
	}
}

// UserErrorDetails converts storefront user errors into the envelope's
// field-level detail form, verbatim.
func UserErrorDetails(userErrors integration.UserErrorList) []ValidationDetail {
	details := make([]ValidationDetail, 0, len(userErrors))
	for _, d := range userErrors.Details() {
		details = append(details, ValidationDetail{Field: d.Field, Message: d.Message})
	}
	return details
}
