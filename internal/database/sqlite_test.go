package database

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codyseavey/tcg-inventory/internal/models"
)

func testDSN(t *testing.T) string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
}

func TestOpenMigratesSchema(t *testing.T) {
	db, err := Open(testDSN(t))
	require.NoError(t, err)
	defer func() { _ = Close(db) }()

	assert.True(t, db.Migrator().HasTable(&models.JournalEntry{}))
	assert.True(t, db.Migrator().HasTable(&models.LedgerValueSnapshot{}))

	// running again on an existing schema is harmless
	require.NoError(t, Migrate(db))
}

func TestMigrateKeepsRows(t *testing.T) {
	db, err := Open(testDSN(t))
	require.NoError(t, err)
	defer func() { _ = Close(db) }()

	entry := models.JournalEntry{
		Type:       models.EventMoneyAdded,
		Amount:     decimal.NewFromInt(5),
		Balance:    decimal.NewFromInt(5),
		OccurredAt: time.Now(),
	}
	require.NoError(t, db.Create(&entry).Error)

	require.NoError(t, Migrate(db))

	var count int64
	require.NoError(t, db.Model(&models.JournalEntry{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
