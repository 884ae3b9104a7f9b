package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appordering "github.com/vendora/backend/internal/application/ordering"
)

func orderPayloadFixture() appordering.OrderWebhookPayload {
	return appordering.OrderWebhookPayload{
		ID:              5001,
		Name:            "#1001",
		OrderNumber:     1001,
		Email:           "buyer@example.com",
		Currency:        "USD",
		FinancialStatus: "paid",
		TotalPrice:      "55.00",
		CreatedAt:       time.Now().UTC(),
		Customer: &appordering.CustomerPayload{
			FirstName: "Jamie",
			LastName:  "Ortega",
			Email:     "buyer@example.com",
		},
		LineItems: []appordering.LineItemPayload{
			{
				ID:        9001,
				ProductID: 7001,
				Title:     "Wool Hiking Socks",
				Vendor:    "Alpine Goods",
				Quantity:  2,
				Price:     "25.00",
				SKU:       "SOCK-M",
			},
			{
				ID:        9002,
				ProductID: 7002,
				Title:     "Trail Mix",
				Vendor:    "Summit Snacks",
				Quantity:  1,
				Price:     "5.00",
				SKU:       "MIX-1",
			},
		},
	}
}

func TestOrderCreatedWebhook(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodPost, "/webhooks/orders/create", "", orderPayloadFixture())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Webhook processed successfully", w.Body.String())

	// one vendor order per vendor label
	orders, err := env.orders.FindByPlatformOrderID(nil, "5001")
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}

func TestOrderCreatedWebhookDuplicate(t *testing.T) {
	env := newTestEnv(t, nil)
	payload := orderPayloadFixture()

	first := env.do(t, http.MethodPost, "/webhooks/orders/create", "", payload)
	require.Equal(t, http.StatusOK, first.Code)

	second := env.do(t, http.MethodPost, "/webhooks/orders/create", "", payload)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "Order already processed", second.Body.String())

	orders, err := env.orders.FindByPlatformOrderID(nil, "5001")
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}

func TestOrderCreatedWebhookEmptyOrder(t *testing.T) {
	env := newTestEnv(t, nil)
	payload := orderPayloadFixture()
	payload.LineItems = nil

	w := env.do(t, http.MethodPost, "/webhooks/orders/create", "", payload)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Error processing webhook", w.Body.String())
}

func TestOrderCreatedWebhookMalformedBody(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodPost, "/webhooks/orders/create", "", "not-an-order")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Error processing webhook", w.Body.String())
}

func TestOrderCreatedWebhookRequiresNoAuth(t *testing.T) {
	env := newTestEnv(t, nil)

	// the endpoint sits outside the authenticated group
	w := env.do(t, http.MethodPost, "/webhooks/orders/create", "", orderPayloadFixture())
	assert.Equal(t, http.StatusOK, w.Code)
}
