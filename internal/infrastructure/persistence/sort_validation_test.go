package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"uppercase asc", "ASC", "ASC"},
		{"lowercase asc", "asc", "ASC"},
		{"padded asc", "  asc  ", "ASC"},
		{"desc", "desc", "DESC"},
		{"empty defaults to desc", "", "DESC"},
		{"garbage defaults to desc", "ascending; DROP TABLE products", "DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortOrder(tt.input))
		})
	}
}

func TestValidateSortField(t *testing.T) {
	t.Run("accepts whitelisted field", func(t *testing.T) {
		assert.Equal(t, "title", ValidateSortField("title", ProductSortFields, "created_at"))
	})

	t.Run("falls back for unknown field", func(t *testing.T) {
		assert.Equal(t, "created_at", ValidateSortField("secret_column", ProductSortFields, "created_at"))
	})

	t.Run("falls back for empty field", func(t *testing.T) {
		assert.Equal(t, "placed_at", ValidateSortField("", VendorOrderSortFields, "placed_at"))
	})

	t.Run("rejects injection attempts", func(t *testing.T) {
		assert.Equal(t, "created_at", ValidateSortField("title; DELETE FROM vendors", VendorSortFields, "created_at"))
	})
}
