package handler

import (
	"github.com/gin-gonic/gin"

	appvendor "github.com/vendora/backend/internal/application/vendor"
	"github.com/vendora/backend/internal/infrastructure/auth"
	"github.com/vendora/backend/internal/interfaces/http/dto"
)

// VendorHandler is the operator surface for managing marketplace
// sellers: registration, storefront credentials, suspension, and API
// token issuance.
type VendorHandler struct {
	BaseHandler
	vendors *appvendor.Service
	tokens  *auth.JWTService
}

// NewVendorHandler creates a new VendorHandler
func NewVendorHandler(vendors *appvendor.Service, tokens *auth.JWTService) *VendorHandler {
	return &VendorHandler{vendors: vendors, tokens: tokens}
}

// Create handles POST /admin/vendors
func (h *VendorHandler) Create(c *gin.Context) {
	var req dto.CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	created, err := h.vendors.Create(c.Request.Context(), req.Name, req.Email, req.Phone)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, dto.NewVendorResponse(created))
}

// SetCredential handles PUT /admin/vendors/:id/credential
func (h *VendorHandler) SetCredential(c *gin.Context) {
	vendorID, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid vendor ID")
		return
	}

	var req dto.SetCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	updated, err := h.vendors.SetShopCredential(c.Request.Context(), vendorID, req.ShopDomain, req.AccessToken)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewVendorResponse(updated))
}

// Suspend handles POST /admin/vendors/:id/suspend
func (h *VendorHandler) Suspend(c *gin.Context) {
	vendorID, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid vendor ID")
		return
	}

	if err := h.vendors.Suspend(c.Request.Context(), vendorID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Reinstate handles POST /admin/vendors/:id/reinstate
func (h *VendorHandler) Reinstate(c *gin.Context) {
	vendorID, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid vendor ID")
		return
	}

	if err := h.vendors.Reinstate(c.Request.Context(), vendorID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Get handles GET /admin/vendors/:id
func (h *VendorHandler) Get(c *gin.Context) {
	vendorID, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid vendor ID")
		return
	}

	found, err := h.vendors.Get(c.Request.Context(), vendorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewVendorResponse(found))
}

// List handles GET /admin/vendors
func (h *VendorHandler) List(c *gin.Context) {
	req, err := bindListRequest(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filters := make(map[string]interface{})
	if status := c.Query("status"); status != "" {
		filters["status"] = status
	}

	vendors, err := h.vendors.List(c.Request.Context(), toFilter(req, filters))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewVendorListResponse(vendors))
}

// IssueToken handles POST /admin/vendors/:id/token. Vendor API tokens
// are issued by operators; there is no self-service login.
func (h *VendorHandler) IssueToken(c *gin.Context) {
	vendorID, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid vendor ID")
		return
	}

	found, err := h.vendors.Get(c.Request.Context(), vendorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	token, expiresAt, err := h.tokens.GenerateToken(auth.GenerateTokenInput{
		SubjectID: found.ID,
		Role:      auth.RoleVendor,
		Name:      found.Name,
	})
	if err != nil {
		h.InternalError(c, "Failed to issue token")
		return
	}
	h.Success(c, dto.VendorTokenResponse{Token: token, ExpiresAt: expiresAt})
}
