package services

import (
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/codyseavey/tcg-inventory/internal/metrics"
	"github.com/codyseavey/tcg-inventory/internal/models"
)

// JournalService stores every ledger event in the journal database. It
// implements inventory.Recorder.
type JournalService struct {
	db *gorm.DB

	mu       sync.Mutex
	failures int
}

// NewJournalService creates a journal on an already migrated database
func NewJournalService(db *gorm.DB) *JournalService {
	return &JournalService{db: db}
}

// Record writes ev to the journal. Write failures are logged and counted
// but never interrupt the ledger operation that produced ev.
func (s *JournalService) Record(ev models.LedgerEvent) {
	entry := models.NewJournalEntry(ev)
	if err := s.db.Create(&entry).Error; err != nil {
		s.mu.Lock()
		s.failures++
		s.mu.Unlock()
		metrics.JournalWriteErrors.Inc()
		log.WithError(err).WithField("event", ev.Type).Warn("Journal: failed to record event")
	}
}

// Failures returns how many events could not be written
func (s *JournalService) Failures() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failures
}

// Entries returns all journal rows, oldest first
func (s *JournalService) Entries() ([]models.JournalEntry, error) {
	var entries []models.JournalEntry
	if err := s.db.Order("id ASC").Find(&entries).Error; err != nil {
		return nil, errors.Wrap(err, "load journal")
	}
	return entries, nil
}

// EntriesForContainer returns the rows that touched the given container.
// uuid.Nil selects collection events.
func (s *JournalService) EntriesForContainer(id uuid.UUID) ([]models.JournalEntry, error) {
	key := ""
	if id != uuid.Nil {
		key = id.String()
	}

	var entries []models.JournalEntry
	if err := s.db.Where("container_id = ?", key).Order("id ASC").Find(&entries).Error; err != nil {
		return nil, errors.Wrapf(err, "load journal for %s", id)
	}
	return entries, nil
}

// EntriesByType returns rows of a single event type, oldest first
func (s *JournalService) EntriesByType(t models.EventType) ([]models.JournalEntry, error) {
	var entries []models.JournalEntry
	if err := s.db.Where("type = ?", t).Order("id ASC").Find(&entries).Error; err != nil {
		return nil, errors.Wrapf(err, "load %s journal", t)
	}
	return entries, nil
}

// SalesTotal sums the amounts credited by card and container sales
func (s *JournalService) SalesTotal() (decimal.Decimal, error) {
	var entries []models.JournalEntry
	err := s.db.Select("amount").
		Where("type IN ?", []models.EventType{models.EventCardSold, models.EventContainerSold}).
		Find(&entries).Error
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "sum sales")
	}

	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Amount)
	}
	return total, nil
}
