package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EventType names a successful ledger mutation
type EventType string

const (
	EventCardAdded        EventType = "card_added"
	EventCardRemoved      EventType = "card_removed"
	EventCardMoved        EventType = "card_moved"
	EventCardReturned     EventType = "card_returned"
	EventCardSold         EventType = "card_sold"
	EventCardTraded       EventType = "card_traded"
	EventContainerCreated EventType = "container_created"
	EventContainerDeleted EventType = "container_deleted"
	EventContainerSold    EventType = "container_sold"
	EventPriceSet         EventType = "price_set"
	EventMoneyAdded       EventType = "money_added"
)

// LedgerEvent describes one mutation after it has been applied
type LedgerEvent struct {
	Type          EventType
	At            time.Time
	ContainerID   uuid.UUID // uuid.Nil for the collection
	ContainerName string
	Class         ContainerClass
	CardName      string
	OtherCardName string // incoming card of a trade
	Amount        decimal.Decimal
	Balance       decimal.Decimal
	TotalCards    int
}

// JournalEntry is the stored form of a LedgerEvent
type JournalEntry struct {
	ID            uint            `json:"id" gorm:"primaryKey;autoIncrement"`
	Type          EventType       `json:"type" gorm:"not null;index"`
	ContainerID   string          `json:"container_id" gorm:"index"`
	ContainerName string          `json:"container_name"`
	Class         ContainerClass  `json:"class"`
	CardName      string          `json:"card_name" gorm:"index"`
	OtherCardName string          `json:"other_card_name"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:decimal(20,4)"`
	Balance       decimal.Decimal `json:"balance" gorm:"type:decimal(20,4)"`
	TotalCards    int             `json:"total_cards"`
	OccurredAt    time.Time       `json:"occurred_at" gorm:"not null;index"`
	CreatedAt     time.Time       `json:"created_at"`
}

// NewJournalEntry converts an event to its stored form
func NewJournalEntry(ev LedgerEvent) JournalEntry {
	entry := JournalEntry{
		Type:          ev.Type,
		ContainerName: ev.ContainerName,
		Class:         ev.Class,
		CardName:      ev.CardName,
		OtherCardName: ev.OtherCardName,
		Amount:        ev.Amount,
		Balance:       ev.Balance,
		TotalCards:    ev.TotalCards,
		OccurredAt:    ev.At,
	}
	if ev.ContainerID != uuid.Nil {
		entry.ContainerID = ev.ContainerID.String()
	}
	return entry
}
