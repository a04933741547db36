package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Holding is one card entry of a container together with its copy count.
// Count may be zero: entries are only dropped by an explicit purge.
type Holding struct {
	Card  Card `json:"card"`
	Count int  `json:"count"`
}

// Value returns the card total value times the count
func (h Holding) Value() decimal.Decimal {
	return h.Card.TotalValue().Mul(decimal.NewFromInt(int64(h.Count)))
}

// ContainerSummary is a read-only view of a container used for display
type ContainerSummary struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Class        ContainerClass  `json:"class"`
	Type         string          `json:"type"`
	Capacity     int             `json:"capacity"`
	TotalCards   int             `json:"total_cards"`
	UniqueCards  int             `json:"unique_cards"`
	TotalValue   decimal.Decimal `json:"total_value"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	Sellable     bool            `json:"sellable"`
	Tradeable    bool            `json:"tradeable"`
}

// LedgerStats mirrors the numbers shown on the stats panel
type LedgerStats struct {
	Money           decimal.Decimal `json:"money"`
	TotalCards      int             `json:"total_cards"`
	CollectionCards int             `json:"collection_cards"`
	UniqueCards     int             `json:"unique_cards"`
	CollectionValue decimal.Decimal `json:"collection_value"`
	ContainerValue  decimal.Decimal `json:"container_value"`
	Binders         int             `json:"binders"`
	Decks           int             `json:"decks"`
}

// TotalValue is the value of every card owned, collection and containers
func (s LedgerStats) TotalValue() decimal.Decimal {
	return s.CollectionValue.Add(s.ContainerValue)
}

// SaleQuote is the price a container would fetch if sold now
type SaleQuote struct {
	ContainerID  uuid.UUID       `json:"container_id"`
	Name         string          `json:"name"`
	Sellable     bool            `json:"sellable"`
	TotalValue   decimal.Decimal `json:"total_value"`
	SellingValue decimal.Decimal `json:"selling_value"`
	Premium      decimal.Decimal `json:"premium"`
	Revision     uint64          `json:"revision"`
}

// TradeQuote compares the two sides of a binder trade
type TradeQuote struct {
	Outgoing   Card            `json:"outgoing"`
	Incoming   Card            `json:"incoming"`
	Difference decimal.Decimal `json:"difference"` // incoming minus outgoing
	Unbalanced bool            `json:"unbalanced"`
}
