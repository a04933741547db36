package database

import (
	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/codyseavey/tcg-inventory/internal/models"
)

// Migrate creates or updates the journal and snapshot tables
func Migrate(db *gorm.DB) error {
	fresh := !db.Migrator().HasTable(&models.JournalEntry{})

	if err := db.AutoMigrate(&models.JournalEntry{}, &models.LedgerValueSnapshot{}); err != nil {
		return errors.Wrap(err, "migrate journal schema")
	}

	if fresh {
		log.Debug("Journal schema created")
	}
	return nil
}
