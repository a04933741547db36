package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codyseavey/tcg-inventory/internal/inventory"
	"github.com/codyseavey/tcg-inventory/internal/models"
)

func TestSnapshotServiceHistory(t *testing.T) {
	l := inventory.NewLedger(inventory.WithStartingMoney(decimal.NewFromInt(5)))
	svc := NewSnapshotService(openTestDB(t), l)

	clock := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }

	assert.Nil(t, svc.GetLastSnapshot())

	_, err := svc.TakeSnapshot("opening")
	require.NoError(t, err)

	charizard := models.MustNewCard("Charizard", models.RarityLegendary, models.VariantFullArt, decimal.NewFromInt(100))
	l.AddToCollection(charizard)
	clock = clock.Add(time.Hour)
	snap, err := svc.TakeSnapshot("after pull")
	require.NoError(t, err)
	assert.Equal(t, 1, snap.TotalCards)
	assert.True(t, decimal.NewFromInt(200).Equal(snap.CollectionValue))

	history, err := svc.History()
	require.NoError(t, err)
	require.Equal(t, 2, history.Count)
	assert.Equal(t, "opening", history.Snapshots[0].Label)
	assert.Equal(t, 0, history.Snapshots[0].TotalCards)
	assert.True(t, decimal.NewFromInt(5).Equal(history.Snapshots[0].Money))
	assert.Equal(t, "after pull", history.Snapshots[1].Label)

	last := svc.GetLastSnapshot()
	require.NotNil(t, last)
	assert.Equal(t, "after pull", last.Label)
	assert.True(t, last.TakenAt.Equal(clock))
}
