package services

import (
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/codyseavey/tcg-inventory/internal/models"
)

// StatsSource is anything that can report ledger totals
type StatsSource interface {
	Stats() models.LedgerStats
}

// SnapshotService records ledger value snapshots for the session
type SnapshotService struct {
	db     *gorm.DB
	source StatsSource
	now    func() time.Time

	mu sync.Mutex
}

// NewSnapshotService creates a snapshot service reading totals from source
func NewSnapshotService(db *gorm.DB, source StatsSource) *SnapshotService {
	return &SnapshotService{
		db:     db,
		source: source,
		now:    time.Now,
	}
}

// TakeSnapshot records the current ledger totals under label
func (s *SnapshotService) TakeSnapshot(label string) (*models.LedgerValueSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	stats := s.source.Stats()

	snapshot := models.LedgerValueSnapshot{
		Label:           label,
		TakenAt:         now,
		Money:           stats.Money,
		TotalCards:      stats.TotalCards,
		CollectionCards: stats.CollectionCards,
		UniqueCards:     stats.UniqueCards,
		CollectionValue: stats.CollectionValue,
		ContainerValue:  stats.ContainerValue,
		Binders:         stats.Binders,
		Decks:           stats.Decks,
		CreatedAt:       now,
	}

	if err := s.db.Create(&snapshot).Error; err != nil {
		return nil, errors.Wrapf(err, "record snapshot %q", label)
	}

	log.Infof("Snapshot service: recorded %q (money: $%s, cards: %d, value: $%s)",
		label, stats.Money.StringFixed(2), stats.TotalCards, stats.TotalValue().StringFixed(2))

	return &snapshot, nil
}

// History returns every snapshot of the session, oldest first
func (s *SnapshotService) History() (models.ValueHistoryResponse, error) {
	var snapshots []models.LedgerValueSnapshot
	if err := s.db.Order("taken_at ASC, id ASC").Find(&snapshots).Error; err != nil {
		return models.ValueHistoryResponse{}, errors.Wrap(err, "load snapshot history")
	}
	return models.ValueHistoryResponse{Snapshots: snapshots, Count: len(snapshots)}, nil
}

// GetLastSnapshot returns the most recent snapshot, nil when none exist
func (s *SnapshotService) GetLastSnapshot() *models.LedgerValueSnapshot {
	var snapshot models.LedgerValueSnapshot
	if err := s.db.Order("taken_at DESC, id DESC").First(&snapshot).Error; err != nil {
		return nil
	}
	return &snapshot
}
