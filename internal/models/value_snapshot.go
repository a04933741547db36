package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerValueSnapshot stores the ledger totals at a point in the session
type LedgerValueSnapshot struct {
	ID              uint            `json:"id" gorm:"primaryKey;autoIncrement"`
	Label           string          `json:"label" gorm:"index"`
	TakenAt         time.Time       `json:"taken_at" gorm:"not null;index"`
	Money           decimal.Decimal `json:"money" gorm:"type:decimal(20,4)"`
	TotalCards      int             `json:"total_cards"`
	CollectionCards int             `json:"collection_cards"`
	UniqueCards     int             `json:"unique_cards"`
	CollectionValue decimal.Decimal `json:"collection_value" gorm:"type:decimal(20,4)"`
	ContainerValue  decimal.Decimal `json:"container_value" gorm:"type:decimal(20,4)"`
	Binders         int             `json:"binders"`
	Decks           int             `json:"decks"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ValueHistoryResponse lists snapshots oldest first
type ValueHistoryResponse struct {
	Snapshots []LedgerValueSnapshot `json:"snapshots"`
	Count     int                   `json:"count"`
}
