package inventory

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codyseavey/tcg-inventory/internal/models"
)

func card(name string, rarity models.Rarity, variant models.Variant, base string) models.Card {
	return models.MustNewCard(name, rarity, variant, decimal.RequireFromString(base))
}

func assertMoney(t *testing.T, want string, got decimal.Decimal, context ...string) {
	t.Helper()
	msg := fmt.Sprintf("expected %s, got %s", want, got.String())
	if len(context) > 0 {
		msg += ": " + strings.Join(context, " ")
	}
	assert.True(t, decimal.RequireFromString(want).Equal(got), msg)
}

func TestContainer_AddAndRemoveCounts(t *testing.T) {
	deck := NewDeck("Starter", models.DeckNormal)
	pikachu := card("Pikachu", models.RarityCommon, models.VariantNormal, "2")

	deck.AddCard(pikachu)
	deck.AddCard(pikachu)
	assert.Equal(t, 2, deck.CardCount(pikachu))
	assert.Equal(t, 2, deck.TotalCards())
	assert.Equal(t, 1, deck.UniqueCards())

	deck.RemoveCard(pikachu)
	deck.RemoveCard(pikachu)
	deck.RemoveCard(pikachu)
	assert.Equal(t, 0, deck.CardCount(pikachu), "count must floor at zero")
	assert.Equal(t, 0, deck.UniqueCards())
	assert.True(t, deck.HasCard("Pikachu"), "zero-count entry stays in place")
	assert.Len(t, deck.Cards(), 1)
	assert.Empty(t, deck.HeldCards())
}

func TestContainer_RemoveAbsentCardIsNoop(t *testing.T) {
	binder := NewBinder("Empty", models.BinderNonCurated)
	before := binder.Revision()

	binder.RemoveCard(card("Ghost", models.RarityRare, models.VariantNormal, "1"))

	assert.Equal(t, 0, binder.TotalCards())
	assert.False(t, binder.HasCard("Ghost"))
	assert.Equal(t, before, binder.Revision())
}

func TestContainer_PurgeDropsEntry(t *testing.T) {
	deck := NewDeck("Burn", models.DeckNormal)
	bolt := card("Bolt", models.RarityCommon, models.VariantNormal, "1")
	deck.AddCard(bolt)
	deck.AddCard(bolt)

	assert.Equal(t, 2, deck.Purge(bolt))
	assert.False(t, deck.HasCard("Bolt"))
	assert.Empty(t, deck.Cards())
	assert.Equal(t, 0, deck.Purge(bolt))
}

func TestContainer_NameOnlyIdentity(t *testing.T) {
	deck := NewDeck("Mixed", models.DeckNormal)
	cheap := card("Pikachu", models.RarityCommon, models.VariantNormal, "1")
	shiny := card("Pikachu", models.RarityRare, models.VariantAltArt, "40")

	deck.AddCard(cheap)
	deck.AddCard(shiny)

	assert.Equal(t, 2, deck.CardCount(cheap))
	assert.Equal(t, 2, deck.CardCount(shiny))
	stored, ok := deck.Card("Pikachu")
	require.True(t, ok)
	assert.True(t, stored.Matches(cheap), "first stored card is kept")
	assertMoney(t, "2", deck.TotalValue())
}

func TestContainer_CountInvariantsUnderRandomOps(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	c := NewBinder("Stress", models.BinderNonCurated)
	cards := []models.Card{
		card("A", models.RarityCommon, models.VariantNormal, "1"),
		card("B", models.RarityRare, models.VariantFullArt, "2"),
		card("C", models.RarityLegendary, models.VariantAltArt, "3"),
		card("D", models.RarityUncommon, models.VariantNormal, "4"),
	}
	expected := map[string]int{}

	for i := 0; i < 500; i++ {
		target := cards[rng.Intn(len(cards))]
		if rng.Intn(2) == 0 {
			c.AddCard(target)
			expected[target.Name()]++
		} else {
			c.RemoveCard(target)
			if expected[target.Name()] > 0 {
				expected[target.Name()]--
			}
		}

		sum, unique := 0, 0
		for _, h := range c.Cards() {
			require.GreaterOrEqual(t, h.Count, 0)
			require.Equal(t, expected[h.Card.Name()], h.Count)
			sum += h.Count
			if h.Count > 0 {
				unique++
			}
		}
		require.Equal(t, sum, c.TotalCards())
		require.Equal(t, unique, c.UniqueCards())
	}
}

func TestContainer_TotalValue(t *testing.T) {
	deck := NewDeck("Value", models.DeckNormal)
	deck.AddCard(card("A", models.RarityRare, models.VariantExtendedArt, "10")) // 15
	deck.AddCard(card("A", models.RarityRare, models.VariantExtendedArt, "10")) // 15
	deck.AddCard(card("B", models.RarityCommon, models.VariantNormal, "0.25"))

	assertMoney(t, "30.25", deck.TotalValue())
}

func TestBinder_SellingPriceFollowsContents(t *testing.T) {
	binder := NewBinder("Rares", models.BinderRares)
	rare := card("Dragonite", models.RarityRare, models.VariantNormal, "12")

	binder.AddCard(rare)
	assertMoney(t, "12", binder.SellingPrice())

	require.NoError(t, binder.SetSellingPrice(decimal.NewFromInt(50)))
	assertMoney(t, "50", binder.SellingPrice())

	binder.AddCard(rare)
	assertMoney(t, "24", binder.SellingPrice(), "add resets the asking price")

	binder.RemoveCard(rare)
	assertMoney(t, "12", binder.SellingPrice())
}

func TestSetSellingPrice_Rejections(t *testing.T) {
	deck := NewDeck("Deck", models.DeckSellable)
	assert.ErrorIs(t, deck.SetSellingPrice(decimal.NewFromInt(5)), ErrNotABinder)

	binder := NewBinder("Binder", models.BinderLuxury)
	assert.ErrorIs(t, binder.SetSellingPrice(decimal.NewFromInt(-1)), ErrNegativeValue)
}

func TestContainer_Summary(t *testing.T) {
	binder := NewBinder("Trade Bait", models.BinderCollector)
	binder.AddCard(card("Mewtwo", models.RarityLegendary, models.VariantFullArt, "20"))

	s := binder.Summary()
	assert.Equal(t, binder.ID(), s.ID)
	assert.Equal(t, models.ClassBinder, s.Class)
	assert.Equal(t, "COLLECTOR", s.Type)
	assert.Equal(t, BinderCapacity, s.Capacity)
	assert.Equal(t, 1, s.TotalCards)
	assert.True(t, s.Tradeable)
	assert.False(t, s.Sellable)
	assertMoney(t, "40", s.TotalValue)
}

func TestCollection_FindMatchingCard(t *testing.T) {
	l := NewLedger()
	stored := card("Eevee", models.RarityRare, models.VariantFullArt, "8")
	l.AddToCollection(stored)

	found, ok := l.Collection().FindMatchingCard(card("Eevee", models.RarityRare, models.VariantFullArt, "999"))
	require.True(t, ok)
	assertMoney(t, "8", found.BaseValue(), "stored card is returned, not the template")

	_, ok = l.Collection().FindMatchingCard(card("Eevee", models.RarityRare, models.VariantAltArt, "8"))
	assert.False(t, ok, "variant must match")

	_, ok = l.Collection().FindMatchingCard(card("Eevee", models.RarityCommon, models.VariantNormal, "8"))
	assert.False(t, ok, "rarity must match")
}

func TestCollection_UnlimitedAndAlwaysSellable(t *testing.T) {
	c := NewLedger().Collection()
	assert.Equal(t, CollectionCapacity, c.Capacity())
	assert.True(t, c.IsSellable())
	assert.False(t, c.IsTradeable())
	assert.True(t, c.CanAddCard(card("Any", models.RarityCommon, models.VariantNormal, "1")))
}
