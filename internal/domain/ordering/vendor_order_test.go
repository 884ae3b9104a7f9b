package ordering

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNewVendorOrder(t *testing.T) {
	t.Run("computes the vendor total from line items", func(t *testing.T) {
		order, err := NewVendorOrder("1001", "#1001", "VendorOne", []OrderLine{
			{PlatformLineID: "L1", Title: "Tee", Quantity: 2, UnitPrice: money("10.00")},
		})
		require.NoError(t, err)

		assert.True(t, order.TotalAmount.Equal(money("20.00")), "got %s", order.TotalAmount)
		assert.Equal(t, VendorOrderStatusPending, order.Status)
		assert.Nil(t, order.VendorID)
		assert.Empty(t, order.GetDomainEvents())
	})

	t.Run("sibling partition totals are independent", func(t *testing.T) {
		v1, err := NewVendorOrder("1001", "#1001", "VendorOne", []OrderLine{
			{PlatformLineID: "L1", Quantity: 2, UnitPrice: money("10.00")},
		})
		require.NoError(t, err)
		v2, err := NewVendorOrder("1001", "#1001", "VendorTwo", []OrderLine{
			{PlatformLineID: "L2", Quantity: 1, UnitPrice: money("5.00")},
		})
		require.NoError(t, err)

		assert.True(t, v1.TotalAmount.Equal(money("20.00")))
		assert.True(t, v2.TotalAmount.Equal(money("5.00")))
	})

	t.Run("requires platform order id, vendor and items", func(t *testing.T) {
		line := OrderLine{PlatformLineID: "L1", Quantity: 1, UnitPrice: money("1")}

		_, err := NewVendorOrder("", "#1", "VendorOne", []OrderLine{line})
		assert.Error(t, err)
		_, err = NewVendorOrder("1001", "#1", "", []OrderLine{line})
		assert.Error(t, err)
		_, err = NewVendorOrder("1001", "#1", "VendorOne", nil)
		assert.Error(t, err)
	})

	t.Run("rejects non-positive quantities", func(t *testing.T) {
		_, err := NewVendorOrder("1001", "#1", "VendorOne", []OrderLine{
			{PlatformLineID: "L1", Quantity: 0, UnitPrice: money("1")},
		})
		assert.Error(t, err)
	})
}

func TestVendorOrderContext(t *testing.T) {
	newOrder := func(t *testing.T) *VendorOrder {
		t.Helper()
		order, err := NewVendorOrder("1001", "#1001", "VendorOne", []OrderLine{
			{PlatformLineID: "L1", Quantity: 1, UnitPrice: money("10.00")},
		})
		require.NoError(t, err)
		return order
	}

	t.Run("snapshots order-level fields", func(t *testing.T) {
		order := newOrder(t)
		placed := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

		order.SetOrderContext("USD", "paid", money("25.00"), money("23.00"), money("2.00"), placed)
		order.SetCustomer("buyer@example.com", "Jane Buyer")

		assert.Equal(t, "USD", order.Currency)
		assert.Equal(t, placed, order.PlacedAt)
		assert.Equal(t, "Jane Buyer", order.CustomerName)
	})

	t.Run("nil shipping address is preserved", func(t *testing.T) {
		order := newOrder(t)
		order.SetShipping(nil)
		assert.Nil(t, order.Shipping)
	})

	t.Run("vendor resolution ignores the nil id", func(t *testing.T) {
		order := newOrder(t)
		order.ResolveVendor(uuid.Nil)
		assert.Nil(t, order.VendorID)

		id := uuid.New()
		order.ResolveVendor(id)
		require.NotNil(t, order.VendorID)
		assert.Equal(t, id, *order.VendorID)
	})

	t.Run("created event carries the resolved vendor", func(t *testing.T) {
		order := newOrder(t)
		id := uuid.New()
		order.ResolveVendor(id)
		order.RecordCreated()

		events := order.GetDomainEvents()
		require.Len(t, events, 1)
		created, ok := events[0].(*VendorOrderCreatedEvent)
		require.True(t, ok)
		assert.Equal(t, EventTypeVendorOrderCreated, created.EventType())
		require.NotNil(t, created.VendorID)
		assert.Equal(t, id, *created.VendorID)
		assert.Equal(t, 1, created.ItemCount)
	})
}

func TestVendorOrderTransitions(t *testing.T) {
	newOrder := func(t *testing.T) *VendorOrder {
		t.Helper()
		order, err := NewVendorOrder("1001", "#1001", "VendorOne", []OrderLine{
			{PlatformLineID: "L1", Quantity: 1, UnitPrice: money("10.00")},
		})
		require.NoError(t, err)
		return order
	}

	t.Run("pending -> fulfilled", func(t *testing.T) {
		order := newOrder(t)
		require.NoError(t, order.MarkFulfilled())
		assert.Equal(t, VendorOrderStatusFulfilled, order.Status)
		assert.Error(t, order.MarkFulfilled())
	})

	t.Run("cancel is terminal", func(t *testing.T) {
		order := newOrder(t)
		require.NoError(t, order.Cancel())
		assert.Error(t, order.Cancel())
		assert.Error(t, order.MarkFulfilled())
	})
}
