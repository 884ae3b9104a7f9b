package handler

import (
	appcatalog "github.com/vendora/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"

	"github.com/vendora/backend/internal/interfaces/http/dto"
	"github.com/vendora/backend/internal/interfaces/http/middleware"
)

// ProductHandler is the vendor-facing product surface: submission,
// edits, deactivation, and reads scoped to the authenticated vendor.
type ProductHandler struct {
	BaseHandler
	products *appcatalog.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(products *appcatalog.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// Submit handles POST /vendor/products
func (h *ProductHandler) Submit(c *gin.Context) {
	vendorID, ok := middleware.GetVendorID(c)
	if !ok {
		h.Forbidden(c, "Vendor identity required")
		return
	}

	var req dto.SubmitProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	detail, err := h.products.Submit(c.Request.Context(), req.ToCommand(vendorID))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, dto.NewProductDetailResponse(detail))
}

// Update handles PUT /vendor/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	vendorID, ok := middleware.GetVendorID(c)
	if !ok {
		h.Forbidden(c, "Vendor identity required")
		return
	}
	productID, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.products.Update(c.Request.Context(), productID, vendorID, req.ToCommand())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewProductResponse(product))
}

// Deactivate handles DELETE /vendor/products/:id
func (h *ProductHandler) Deactivate(c *gin.Context) {
	vendorID, ok := middleware.GetVendorID(c)
	if !ok {
		h.Forbidden(c, "Vendor identity required")
		return
	}
	productID, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.products.Deactivate(c.Request.Context(), productID, vendorID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// UpdateVariant handles PUT /vendor/variants/:id
func (h *ProductHandler) UpdateVariant(c *gin.Context) {
	vendorID, ok := middleware.GetVendorID(c)
	if !ok {
		h.Forbidden(c, "Vendor identity required")
		return
	}
	variantID, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid variant ID")
		return
	}

	var req dto.UpdateVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	variant, err := h.products.UpdateVariant(c.Request.Context(), variantID, vendorID, req.ToCommand())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewVariantResponse(variant))
}

// Get handles GET /vendor/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	vendorID, ok := middleware.GetVendorID(c)
	if !ok {
		h.Forbidden(c, "Vendor identity required")
		return
	}
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
	if detail.Product.VendorID != vendorID {
		h.NotFound(c, "Product not found")
		return
	}
	h.Success(c, dto.NewProductDetailResponse(detail))
}

// List handles GET /vendor/products
func (h *ProductHandler) List(c *gin.Context) {
	vendorID, ok := middleware.GetVendorID(c)
	if !ok {
		h.Forbidden(c, "Vendor identity required")
		return
	}

	req, err := bindListRequest(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := toFilter(req, nil)
	products, err := h.products.ListByVendor(c.Request.Context(), vendorID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewProductListResponse(products))
}
