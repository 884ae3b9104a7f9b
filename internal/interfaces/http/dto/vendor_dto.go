package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/vendora/backend/internal/domain/vendor"
)

// CreateVendorRequest registers a new marketplace seller
type CreateVendorRequest struct {
	Name  string `json:"name" binding:"required,max=200"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone"`
}

// SetCredentialRequest attaches the storefront credential to a vendor
type SetCredentialRequest struct {
	ShopDomain  string `json:"shop_domain" binding:"required"`
	AccessToken string `json:"access_token" binding:"required"`
}

// VendorResponse is a vendor in responses. The access token never
// leaves the server; only its presence is reported.
type VendorResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	ShopDomain    string    `json:"shop_domain,omitempty"`
	HasCredential bool      `json:"has_credential"`
	Status        string    `json:"status"`
	TimestampResponse
}

// NewVendorResponse maps a vendor aggregate to its response form
func NewVendorResponse(v *vendor.Vendor) VendorResponse {
	return VendorResponse{
		ID:                v.ID,
		Name:              v.Name,
		Email:             v.Email,
		Phone:             v.Phone,
		ShopDomain:        v.ShopDomain,
		HasCredential:     v.ShopDomain != "" && v.AccessToken != "",
		Status:            string(v.Status),
		TimestampResponse: TimestampResponse{CreatedAt: v.CreatedAt, UpdatedAt: v.UpdatedAt},
	}
}

// NewVendorListResponse maps a vendor slice to response forms
func NewVendorListResponse(vendors []vendor.Vendor) []VendorResponse {
	out := make([]VendorResponse, len(vendors))
	for i := range vendors {
		out[i] = NewVendorResponse(&vendors[i])
	}
	return out
}

// VendorTokenResponse carries an API token issued for a vendor
type VendorTokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
