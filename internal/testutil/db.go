// Package testutil holds shared helpers for package tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/toiture-lv/quote-api/internal/database"
	"github.com/toiture-lv/quote-api/internal/domain"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens a private in-memory SQLite database with the schema migrated
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	require.NoError(t, err, "Failed to open test database")
	require.NoError(t, database.AutoMigrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

// Logger returns a no-op logger for services under test
func Logger() *zap.Logger {
	return zap.NewNop()
}

// CreateTestSubmission stores a draft submission with two line items
func CreateTestSubmission(t *testing.T, db *gorm.DB, category string) *domain.Submission {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Second)
	sub := &domain.Submission{
		ID:         uuid.New(),
		Status:     domain.StatusDraft,
		Category:   category,
		ClientName: "Client Test",
		LineItems: []domain.LineItem{
			{ID: "m1", Type: domain.LineItemMaterial, Name: "Bardeaux", Quantity: 10, UnitPrice: 50, Total: 500, Order: 0},
			{ID: "l1", Type: domain.LineItemLabor, Name: "Pose", Quantity: 8, UnitPrice: 75, Total: 600, Order: 1},
		},
		PricingTiers: []domain.PricingTier{
			{Tier: domain.TierBasic, TotalPrice: 935, MaterialsCost: 425, LaborCost: 510},
			{Tier: domain.TierStandard, TotalPrice: 1100, MaterialsCost: 500, LaborCost: 600},
			{Tier: domain.TierPremium, TotalPrice: 1298, MaterialsCost: 590, LaborCost: 708},
		},
		SelectedTier:       domain.TierStandard,
		TotalPrice:         1100,
		TotalMaterialsCost: 500,
		TotalLaborCost:     600,
		CreatedBy:          "marie",
		CreatedAt:          now,
		AuditLog: []domain.AuditEntry{
			{Action: domain.AuditCreated, User: "marie", Timestamp: now},
		},
	}
	require.NoError(t, db.Create(sub).Error)
	return sub
}
