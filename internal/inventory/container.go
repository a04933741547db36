package inventory

import (
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/codyseavey/tcg-inventory/internal/models"
)

type holding struct {
	card  models.Card
	count int
}

// Container is a named multiset of cards with a capacity. Its rules come
// from its ContainerKind. AddCard and RemoveCard are plain mutations:
// callers must check CanAddCard first.
type Container struct {
	mu           sync.RWMutex
	id           uuid.UUID
	name         string
	kind         ContainerKind
	capacity     int
	holdings     map[models.CardKey]*holding
	order        []models.CardKey
	sellingPrice decimal.Decimal
	revision     uint64
}

func newContainer(name string, kind ContainerKind) *Container {
	return &Container{
		id:       uuid.New(),
		name:     name,
		kind:     kind,
		capacity: kind.capacity(),
		holdings: make(map[models.CardKey]*holding),
	}
}

// NewBinder builds a standalone binder. Binders owned by a Ledger are
// created through Ledger.CreateBinder.
func NewBinder(name string, binderType models.BinderType) *Container {
	return newContainer(name, BinderKind{Type: binderType})
}

// NewDeck builds a standalone deck
func NewDeck(name string, deckType models.DeckType) *Container {
	return newContainer(name, DeckKind{Type: deckType})
}

func (c *Container) ID() uuid.UUID       { return c.id }
func (c *Container) Name() string        { return c.name }
func (c *Container) Kind() ContainerKind { return c.kind }
func (c *Container) Capacity() int       { return c.capacity }

// AddCard adds one copy. The first card stored under a name stays the
// stored card: later copies with the same name only bump the count.
func (c *Container) AddCard(card models.Card) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := card.Key()
	if h, ok := c.holdings[key]; ok {
		h.count++
	} else {
		c.holdings[key] = &holding{card: card, count: 1}
		c.order = append(c.order, key)
	}
	c.touch()
}

// RemoveCard removes one copy, never going below zero. The entry stays
// in place with a zero count. Removing an absent card does nothing.
func (c *Container) RemoveCard(card models.Card) {
	c.mu.Lock()
	defer c.mu.Unlock()

	h, ok := c.holdings[card.Key()]
	if !ok {
		return
	}
	if h.count > 0 {
		h.count--
	}
	c.touch()
}

// Purge drops the entry for card outright, whatever its count, and
// returns how many copies were discarded.
func (c *Container) Purge(card models.Card) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := card.Key()
	h, ok := c.holdings[key]
	if !ok {
		return 0
	}
	delete(c.holdings, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.touch()
	return h.count
}

// touch must be called with mu held after every mutation
func (c *Container) touch() {
	c.revision++
	if _, ok := c.kind.(BinderKind); ok {
		c.sellingPrice = c.totalValue()
	}
}

// CanAddCard reports whether one more copy of card is allowed
func (c *Container) CanAddCard(card models.Card) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return canAdd(c, card)
}

// HasCard reports whether an entry exists for name, even with zero copies
func (c *Container) HasCard(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.holdings[models.ProbeCard(name).Key()]
	return ok
}

// CardCount returns the number of copies held, 0 if absent
func (c *Container) CardCount(card models.Card) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.count(card.Key())
}

// Card returns the stored card for name
func (c *Container) Card(name string) (models.Card, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	h, ok := c.holdings[models.CardKey(name)]
	if !ok {
		return models.Card{}, false
	}
	return h.card, true
}

func (c *Container) count(key models.CardKey) int {
	if h, ok := c.holdings[key]; ok {
		return h.count
	}
	return 0
}

// TotalCards is the sum of all counts
func (c *Container) TotalCards() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.totalCards()
}

func (c *Container) totalCards() int {
	total := 0
	for _, h := range c.holdings {
		total += h.count
	}
	return total
}

// UniqueCards counts entries with at least one copy
func (c *Container) UniqueCards() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.uniqueCards()
}

func (c *Container) uniqueCards() int {
	unique := 0
	for _, h := range c.holdings {
		if h.count > 0 {
			unique++
		}
	}
	return unique
}

// TotalValue is the sum of card value times count
func (c *Container) TotalValue() decimal.Decimal {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.totalValue()
}

func (c *Container) totalValue() decimal.Decimal {
	total := decimal.Zero
	for _, h := range c.holdings {
		total = total.Add(h.card.TotalValue().Mul(decimal.NewFromInt(int64(h.count))))
	}
	return total
}

// Cards lists every entry in insertion order, zero counts included
func (c *Container) Cards() []models.Holding {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.Holding, 0, len(c.order))
	for _, key := range c.order {
		h := c.holdings[key]
		out = append(out, models.Holding{Card: h.card, Count: h.count})
	}
	return out
}

// HeldCards lists entries with at least one copy
func (c *Container) HeldCards() []models.Holding {
	all := c.Cards()
	held := all[:0]
	for _, h := range all {
		if h.Count > 0 {
			held = append(held, h)
		}
	}
	return held
}

func (c *Container) IsSellable() bool  { return sellable(c.kind) }
func (c *Container) IsTradeable() bool { return tradeable(c.kind) }

// SellingValue is the amount credited if the container is sold
func (c *Container) SellingValue() decimal.Decimal {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return sellingValue(c)
}

// SellingPrice is the binder asking price. It follows the content value
// after each add or remove unless set explicitly in between.
func (c *Container) SellingPrice() decimal.Decimal {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sellingPrice
}

// SetSellingPrice overrides the asking price of a binder
func (c *Container) SetSellingPrice(price decimal.Decimal) error {
	if _, ok := c.kind.(BinderKind); !ok {
		return ErrNotABinder
	}
	if price.IsNegative() {
		return ErrNegativeValue
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.sellingPrice = price
	c.revision++
	return nil
}

// Revision increases with every mutation
func (c *Container) Revision() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.revision
}

// Summary returns a display snapshot of the container
func (c *Container) Summary() models.ContainerSummary {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return models.ContainerSummary{
		ID:           c.id,
		Name:         c.name,
		Class:        c.kind.Class(),
		Type:         c.kind.TypeName(),
		Capacity:     c.capacity,
		TotalCards:   c.totalCards(),
		UniqueCards:  c.uniqueCards(),
		TotalValue:   c.totalValue(),
		SellingPrice: c.sellingPrice,
		Sellable:     sellable(c.kind),
		Tradeable:    tradeable(c.kind),
	}
}

// Quote prices a sale of the container at its current revision
func (c *Container) Quote() models.SaleQuote {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := c.totalValue()
	q := models.SaleQuote{
		ContainerID: c.id,
		Name:        c.name,
		Sellable:    sellable(c.kind),
		TotalValue:  total,
		Revision:    c.revision,
	}
	if q.Sellable {
		q.SellingValue = sellingValue(c)
		q.Premium = q.SellingValue.Sub(total)
	}
	return q
}
