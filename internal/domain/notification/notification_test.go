package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("creates an unread notification", func(t *testing.T) {
		n, err := New("vendor-123", "New Order", "You received order #1001", TypeOrder, "/orders/1001", AudienceVendor)
		require.NoError(t, err)

		assert.False(t, n.Read)
		assert.Equal(t, TypeOrder, n.Type)
		assert.Equal(t, AudienceVendor, n.Audience)
	})

	t.Run("admin recipient addresses administrators", func(t *testing.T) {
		n, err := New(AdminRecipient, "Product Submitted", "VendorOne submitted Classic Tee", TypeProduct, "", AudienceAdmin)
		require.NoError(t, err)
		assert.Equal(t, "admin", n.Recipient)
	})

	t.Run("validates required fields and type", func(t *testing.T) {
		_, err := New("", "t", "m", TypeOrder, "", AudienceVendor)
		assert.Error(t, err)
		_, err = New("vendor-123", "", "m", TypeOrder, "", AudienceVendor)
		assert.Error(t, err)
		_, err = New("vendor-123", "t", "", TypeOrder, "", AudienceVendor)
		assert.Error(t, err)
		_, err = New("vendor-123", "t", "m", Type("bogus"), "", AudienceVendor)
		assert.Error(t, err)
	})
}

func TestMarkRead(t *testing.T) {
	n, err := New("vendor-123", "New Order", "You received order #1001", TypeOrder, "", AudienceVendor)
	require.NoError(t, err)

	n.MarkRead()
	assert.True(t, n.Read)
}
