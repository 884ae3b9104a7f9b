package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	appcatalog "github.com/vendora/backend/internal/application/catalog"
	appintegration "github.com/vendora/backend/internal/application/integration"
	appnotification "github.com/vendora/backend/internal/application/notification"
	appordering "github.com/vendora/backend/internal/application/ordering"
	appvendor "github.com/vendora/backend/internal/application/vendor"
	"github.com/vendora/backend/internal/domain/vendor"
	"github.com/vendora/backend/internal/infrastructure/auth"
	"github.com/vendora/backend/internal/infrastructure/config"
	"github.com/vendora/backend/internal/infrastructure/event"
	"github.com/vendora/backend/internal/interfaces/http/dto"
	"github.com/vendora/backend/internal/interfaces/http/middleware"
)

// testEnv wires real services over in-memory fakes behind a gin engine
// with the production auth middleware.
type testEnv struct {
	router     *gin.Engine
	jwt        *auth.JWTService
	products   *memProductRepo
	variants   *memVariantRepo
	vendors    *memVendorRepo
	orders        *memOrderRepo
	notifications *memNotificationRepo
	storefront    *fakeStorefront
}

func newTestEnv(t *testing.T, lock appintegration.PublishLock) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		products:      newMemProductRepo(),
		variants:      newMemVariantRepo(),
		vendors:       newMemVendorRepo(),
		orders:        newMemOrderRepo(),
		notifications: newMemNotificationRepo(),
		storefront:    &fakeStorefront{},
	}
	env.jwt = auth.NewJWTService(config.JWTConfig{
		Secret:     "handler-test-secret-32-characters!!!",
		Expiration: time.Hour,
		Issuer:     "vendora-test",
	})
	if lock == nil {
		lock = alwaysFreeLock{}
	}

	bus := event.NewInMemoryEventBus(nil)

	productSvc := appcatalog.NewProductService(env.products, env.variants, env.vendors, bus, nil)
	publishSvc := appintegration.NewPublishService(appintegration.PublishServiceConfig{
		ProductRepo:    env.products,
		VariantRepo:    env.variants,
		VendorRepo:     env.vendors,
		Storefront:     env.storefront,
		Lock:           lock,
		EventPublisher: bus,
	})
	ingestionSvc := appordering.NewIngestionService(env.orders, env.vendors, bus, nil)
	orderSvc := appordering.NewOrderService(env.orders, nil)
	vendorSvc := appvendor.NewService(env.vendors, nil)
	notificationSvc := appnotification.NewService(env.notifications)

	products := NewProductHandler(productSvc)
	adminProducts := NewAdminProductHandler(productSvc, publishSvc)
	vendors := NewVendorHandler(vendorSvc, env.jwt)
	orders := NewOrderHandler(orderSvc)
	notifications := NewNotificationHandler(notificationSvc)
	webhooks := NewWebhookHandler(ingestionSvc, nil)

	r := gin.New()
	r.Use(middleware.RequestID())

	r.POST("/webhooks/orders/create", webhooks.OrderCreated)

	authed := r.Group("/api/v1", middleware.Authenticate(env.jwt, nil))

	vendorGroup := authed.Group("", middleware.RequireVendor())
	vendorGroup.POST("/vendor/products", products.Submit)
	vendorGroup.PUT("/vendor/products/:id", products.Update)
	vendorGroup.DELETE("/vendor/products/:id", products.Deactivate)
	vendorGroup.GET("/vendor/products/:id", products.Get)
	vendorGroup.GET("/vendor/products", products.List)
	vendorGroup.PUT("/vendor/variants/:id", products.UpdateVariant)
	vendorGroup.GET("/vendor/orders", orders.List)
	vendorGroup.GET("/vendor/orders/:id", orders.Get)
	vendorGroup.POST("/vendor/orders/:id/fulfill", orders.Fulfill)
	vendorGroup.POST("/vendor/orders/:id/cancel", orders.Cancel)

	adminGroup := authed.Group("/admin", middleware.RequireAdmin())
	adminGroup.POST("/products/:id/publish", adminProducts.Publish)
	adminGroup.POST("/products/:id/reject", adminProducts.Reject)
	adminGroup.GET("/products/:id", adminProducts.Get)
	adminGroup.GET("/products", adminProducts.List)
	adminGroup.POST("/vendors", vendors.Create)
	adminGroup.PUT("/vendors/:id/credential", vendors.SetCredential)
	adminGroup.POST("/vendors/:id/suspend", vendors.Suspend)
	adminGroup.POST("/vendors/:id/reinstate", vendors.Reinstate)
	adminGroup.GET("/vendors/:id", vendors.Get)
	adminGroup.GET("/vendors", vendors.List)
	adminGroup.POST("/vendors/:id/token", vendors.IssueToken)

	authed.GET("/notifications", notifications.List)
	authed.GET("/notifications/unread", notifications.UnreadCount)
	authed.POST("/notifications/:id/read", notifications.MarkRead)

	env.router = r
	return env
}

// seedVendor stores an active vendor with a shop credential
func (e *testEnv) seedVendor(t *testing.T, name string) *vendor.Vendor {
	t.Helper()
	v, err := vendor.NewVendor(name, name+"@example.com")
	require.NoError(t, err)
	require.NoError(t, v.SetShopCredential(name+".myshopify.com", "shpat_test"))
	require.NoError(t, e.vendors.Save(nil, v))
	return v
}

// seedVendorWithoutCredential stores an active vendor that has not
// connected a storefront shop yet.
func seedVendorWithoutCredential(e *testEnv, name string) (*vendor.Vendor, error) {
	v, err := vendor.NewVendor(name, name+"@example.com")
	if err != nil {
		return nil, err
	}
	return v, e.vendors.Save(nil, v)
}

func (e *testEnv) vendorToken(t *testing.T, vendorID uuid.UUID) string {
	t.Helper()
	token, _, err := e.jwt.GenerateToken(auth.GenerateTokenInput{
		SubjectID: vendorID,
		Role:      auth.RoleVendor,
	})
	require.NoError(t, err)
	return token
}

func (e *testEnv) adminToken(t *testing.T) string {
	t.Helper()
	token, _, err := e.jwt.GenerateToken(auth.GenerateTokenInput{
		SubjectID: uuid.New(),
		Role:      auth.RoleAdmin,
	})
	require.NoError(t, err)
	return token
}

// do performs a request with an optional bearer token and JSON body
func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func submitRequestFixture() dto.SubmitProductRequest {
	return dto.SubmitProductRequest{
		Title: "Wool Hiking Socks",
		Brand: "Alpine",
		Price: decimal.NewFromInt(25),
		Options: []dto.OptionRequest{
			{Name: "Size", Values: []string{"M", "L"}},
		},
		Variants: []dto.VariantRequest{
			{
				OptionValues:  []dto.OptionValueRequest{{Name: "Size", Value: "M"}},
				Price:         decimal.NewFromInt(25),
				SKU:           "SOCK-M",
				StockQuantity: 10,
			},
			{
				OptionValues:  []dto.OptionValueRequest{{Name: "Size", Value: "L"}},
				Price:         decimal.NewFromInt(27),
				SKU:           "SOCK-L",
				StockQuantity: 5,
			},
		},
	}
}
