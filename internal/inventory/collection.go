package inventory

import (
	"github.com/codyseavey/tcg-inventory/internal/models"
)

// CollectionName is the fixed name of the master pool
const CollectionName = "Main Collection"

// Collection is the single unlimited container owned by a Ledger
type Collection struct {
	*Container
}

func newCollection() *Collection {
	return &Collection{Container: newContainer(CollectionName, CollectionKind{})}
}

// FindMatchingCard returns the stored card whose name, rarity and variant
// all match template. Zero-count entries are considered too.
func (c *Collection) FindMatchingCard(template models.Card) (models.Card, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, key := range c.order {
		h := c.holdings[key]
		if h.card.Matches(template) {
			return h.card, true
		}
	}
	return models.Card{}, false
}

// reconcile maps an incoming card onto the stored card when one matches
func (c *Collection) reconcile(card models.Card) models.Card {
	if stored, ok := c.FindMatchingCard(card); ok {
		return stored
	}
	return card
}
