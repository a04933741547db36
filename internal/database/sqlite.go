package database

import (
	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MemoryDSN keeps the journal in memory for the lifetime of the process
const MemoryDSN = "file::memory:?cache=shared"

// Open connects to the sqlite database at dsn and migrates the journal schema
func Open(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		dsn = MemoryDSN
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open journal database %q", dsn)
	}

	log.Debugf("Journal database connected (%s)", dsn)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Close releases the underlying connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "journal database handle")
	}
	return sqlDB.Close()
}
