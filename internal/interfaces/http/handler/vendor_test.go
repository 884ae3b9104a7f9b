package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendora/backend/internal/infrastructure/auth"
	"github.com/vendora/backend/internal/interfaces/http/dto"
)

func TestCreateVendor(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodPost, "/api/v1/admin/vendors", env.adminToken(t),
		dto.CreateVendorRequest{Name: "Alpine Goods", Email: "ops@alpine.example"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := decodeEnvelope(t, w)
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var created dto.VendorResponse
	require.NoError(t, json.Unmarshal(raw, &created))
	assert.Equal(t, "Alpine Goods", created.Name)
	assert.Equal(t, "active", created.Status)
	assert.False(t, created.HasCredential)
}

func TestCreateVendorDuplicateName(t *testing.T) {
	env := newTestEnv(t, nil)
	env.seedVendor(t, "Alpine Goods")

	w := env.do(t, http.MethodPost, "/api/v1/admin/vendors", env.adminToken(t),
		dto.CreateVendorRequest{Name: "Alpine Goods", Email: "dup@alpine.example"})
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
}

func TestSetVendorCredential(t *testing.T) {
	env := newTestEnv(t, nil)
	v, err := seedVendorWithoutCredential(env, "Bare Vendor")
	require.NoError(t, err)

	w := env.do(t, http.MethodPut, "/api/v1/admin/vendors/"+v.ID.String()+"/credential",
		env.adminToken(t), dto.SetCredentialRequest{
			ShopDomain:  "bare-vendor.myshopify.com",
			AccessToken: "shpat_new",
		})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decodeEnvelope(t, w)
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var updated dto.VendorResponse
	require.NoError(t, json.Unmarshal(raw, &updated))
	assert.True(t, updated.HasCredential)
	assert.Equal(t, "bare-vendor.myshopify.com", updated.ShopDomain)

	// the raw token never appears in the response body
	assert.NotContains(t, w.Body.String(), "shpat_new")
}

func TestSuspendAndReinstateVendor(t *testing.T) {
	env := newTestEnv(t, nil)
	v := env.seedVendor(t, "Alpine Goods")
	admin := env.adminToken(t)

	w := env.do(t, http.MethodPost, "/api/v1/admin/vendors/"+v.ID.String()+"/suspend", admin, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	// suspending twice is an invalid transition
	w = env.do(t, http.MethodPost, "/api/v1/admin/vendors/"+v.ID.String()+"/suspend", admin, nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/admin/vendors/"+v.ID.String()+"/reinstate", admin, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	stored, err := env.vendors.FindByID(nil, v.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsActive())
}

func TestIssueVendorToken(t *testing.T) {
	env := newTestEnv(t, nil)
	v := env.seedVendor(t, "Alpine Goods")

	w := env.do(t, http.MethodPost, "/api/v1/admin/vendors/"+v.ID.String()+"/token",
		env.adminToken(t), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decodeEnvelope(t, w)
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var issued dto.VendorTokenResponse
	require.NoError(t, json.Unmarshal(raw, &issued))
	require.NotEmpty(t, issued.Token)

	claims, err := env.jwt.ValidateToken(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, auth.RoleVendor, claims.Role)
	assert.Equal(t, v.ID.String(), claims.SubjectID)

	// the issued token works against the vendor surface
	w = env.do(t, http.MethodGet, "/api/v1/vendor/products", issued.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIssueVendorTokenUnknownVendor(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodPost, "/api/v1/admin/vendors/a2e6bf10-51ab-4cf5-9a53-02b34a84f4a5/token",
		env.adminToken(t), nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestListVendors(t *testing.T) {
	env := newTestEnv(t, nil)
	env.seedVendor(t, "Alpine Goods")
	env.seedVendor(t, "Summit Snacks")

	w := env.do(t, http.MethodGet, "/api/v1/admin/vendors", env.adminToken(t), nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeEnvelope(t, w)
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var vendors []dto.VendorResponse
	require.NoError(t, json.Unmarshal(raw, &vendors))
	assert.Len(t, vendors, 2)
}
