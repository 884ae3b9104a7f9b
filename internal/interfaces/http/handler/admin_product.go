package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	appcatalog "github.com/vendora/backend/internal/application/catalog"
	appintegration "github.com/vendora/backend/internal/application/integration"
	"github.com/vendora/backend/internal/interfaces/http/dto"
)

// AdminProductHandler is the operator surface of the catalog: the
// publish/reject decisions and the moderation queue.
type AdminProductHandler struct {
	BaseHandler
	products  *appcatalog.ProductService
	publisher *appintegration.PublishService
}

// NewAdminProductHandler creates a new AdminProductHandler
func NewAdminProductHandler(products *appcatalog.ProductService, publisher *appintegration.PublishService) *AdminProductHandler {
	return &AdminProductHandler{products: products, publisher: publisher}
}

// Publish handles POST /admin/products/:id/publish.
//
// A clean run returns the external product reference. A storefront
// rejection comes back as USER_ERRORS (nothing committed externally) or
// PARTIAL_PUBLISH (the external product exists, variants incomplete),
// both carrying the storefront's user errors verbatim. A held publish
// lock is a conflict; transport and auth failures surface as the
// storefront-unavailable error.
func (h *AdminProductHandler) Publish(c *gin.Context) {
	productID, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req dto.PublishRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}

	result, err := h.publisher.Publish(c.Request.Context(), productID, req.Remarks)
	if err != nil {
		if errors.Is(err, appintegration.ErrPublishInProgress) {
			h.Conflict(c, "A publish of this product is already in progress")
			return
		}
		h.handlePublishError(c, err)
		return
	}

	if len(result.UserErrors) > 0 {
		code := dto.ErrCodeUserErrors
		message := "The storefront rejected the product"
		if result.Partial {
			code = dto.ErrCodePartialPublish
			message = "The product was created on the storefront but its variants were rejected"
		}
		h.ErrorWithDetails(c, code, message, dto.UserErrorDetails(result.UserErrors))
		return
	}

	h.Success(c, dto.NewPublishResponse(result))
}

// Reject handles POST /admin/products/:id/reject
func (h *AdminProductHandler) Reject(c *gin.Context) {
	productID, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req dto.RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Rejection remarks are required")
		return
	}

	if err := h.publisher.Reject(c.Request.Context(), productID, req.Remarks); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Get handles GET /admin/products/:id
func (h *AdminProductHandler) Get(c *gin.Context) {
	productID, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	detail, err := h.products.Get(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewProductDetailResponse(detail))
}

// List handles GET /admin/products. ?approved=false surfaces the
// moderation queue.
func (h *AdminProductHandler) List(c *gin.Context) {
	req, err := bindListRequest(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filters := make(map[string]interface{})
	if approved := c.Query("approved"); approved != "" {
		filters["is_approved"] = approved == "true"
	}
	if active := c.Query("active"); active != "" {
		filters["is_active"] = active == "true"
	}

	products, total, err := h.products.List(c.Request.Context(), toFilter(req, filters))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, dto.NewProductListResponse(products), total, req.Page, req.PageSize)
}

// handlePublishError maps non-result publish failures. Storefront
// transport and auth errors are gateway-class: the decision could not be
// carried out, not refused.
func (h *AdminProductHandler) handlePublishError(c *gin.Context, err error) {
	if integrationErr := storefrontErrorMessage(err); integrationErr != "" {
		h.ErrorWithCode(c, dto.ErrCodeStorefrontUnavailable, integrationErr)
		return
	}
	h.HandleError(c, err)
}
