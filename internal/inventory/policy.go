package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/codyseavey/tcg-inventory/internal/models"
)

// SalePremium is applied to the selling value of RARES and LUXURY binders
var SalePremium = decimal.RequireFromString("1.10")

// canAdd decides whether one more copy of card may enter c.
// Binders cap distinct cards, decks and the collection cap total copies.
func canAdd(c *Container, card models.Card) bool {
	switch k := c.kind.(type) {
	case CollectionKind:
		return c.totalCards() < c.capacity
	case DeckKind:
		return c.totalCards() < c.capacity
	case BinderKind:
		if c.uniqueCards() >= c.capacity {
			return false
		}
		return binderAccepts(k.Type, card)
	default:
		return false
	}
}

// binderAccepts is the content rule for each binder type
func binderAccepts(t models.BinderType, card models.Card) bool {
	switch t {
	case models.BinderPauper:
		return card.Rarity() == models.RarityCommon || card.Rarity() == models.RarityUncommon
	case models.BinderRares:
		return card.Rarity().IsRareTier()
	case models.BinderLuxury:
		return card.Variant() != models.VariantNormal
	case models.BinderCollector:
		return card.Rarity().IsRareTier() && card.Variant() != models.VariantNormal
	default:
		return true
	}
}

func sellable(kind ContainerKind) bool {
	switch k := kind.(type) {
	case CollectionKind:
		return true
	case BinderKind:
		return k.Type == models.BinderPauper || k.Type == models.BinderRares || k.Type == models.BinderLuxury
	case DeckKind:
		return k.Type == models.DeckSellable
	default:
		return false
	}
}

func tradeable(kind ContainerKind) bool {
	k, ok := kind.(BinderKind)
	if !ok {
		return false
	}
	return k.Type == models.BinderNonCurated || k.Type == models.BinderCollector
}

// earnsPremium reports whether the 10% uplift applies
func earnsPremium(kind ContainerKind) bool {
	k, ok := kind.(BinderKind)
	if !ok {
		return false
	}
	return k.Type == models.BinderRares || k.Type == models.BinderLuxury
}

// sellingValue is what a sale credits. Premium binders sell for the larger
// of their content value and asking price, plus 10%.
func sellingValue(c *Container) decimal.Decimal {
	value := c.totalValue()
	if earnsPremium(c.kind) {
		return decimal.Max(value, c.sellingPrice).Mul(SalePremium)
	}
	return value
}
