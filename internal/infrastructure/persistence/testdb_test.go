package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vendora/backend/internal/domain/catalog"
	"github.com/vendora/backend/internal/domain/notification"
	"github.com/vendora/backend/internal/domain/ordering"
	"github.com/vendora/backend/internal/domain/vendor"
)

// setupTestDB opens an in-memory SQLite database with all marketplace
// tables migrated. TranslateError is on so unique violations surface as
// gorm.ErrDuplicatedKey, same as the production connection.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&vendor.Vendor{},
		&catalog.Product{},
		&catalog.Variant{},
		&ordering.VendorOrder{},
		&notification.Notification{},
	)
	require.NoError(t, err)

	return db
}
