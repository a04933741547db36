package models

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
)

// ErrUnknownEnum is returned by the Parse helpers for unrecognized names
var ErrUnknownEnum = errors.New("unknown enum value")

// Rarity is the card tier. It affects binder eligibility only, never value.
type Rarity string

const (
	RarityCommon    Rarity = "COMMON"
	RarityUncommon  Rarity = "UNCOMMON"
	RarityRare      Rarity = "RARE"
	RarityLegendary Rarity = "LEGENDARY"
)

// AllRarities returns all rarities in tier order
func AllRarities() []Rarity {
	return []Rarity{RarityCommon, RarityUncommon, RarityRare, RarityLegendary}
}

// IsRareTier returns true for RARE and LEGENDARY
func (r Rarity) IsRareTier() bool {
	return r == RarityRare || r == RarityLegendary
}

// Variant is the cosmetic version of a card
type Variant string

const (
	VariantNormal      Variant = "NORMAL"
	VariantExtendedArt Variant = "EXTENDED_ART"
	VariantFullArt     Variant = "FULL_ART"
	VariantAltArt      Variant = "ALT_ART"
)

var variantMultipliers = map[Variant]decimal.Decimal{
	VariantNormal:      decimal.RequireFromString("1.0"),
	VariantExtendedArt: decimal.RequireFromString("1.5"),
	VariantFullArt:     decimal.RequireFromString("2.0"),
	VariantAltArt:      decimal.RequireFromString("3.0"),
}

// AllVariants returns all variants in ascending multiplier order
func AllVariants() []Variant {
	return []Variant{VariantNormal, VariantExtendedArt, VariantFullArt, VariantAltArt}
}

// Multiplier returns the value multiplier. Unknown variants (including the
// empty variant of a probe card) count as zero.
func (v Variant) Multiplier() decimal.Decimal {
	if m, ok := variantMultipliers[v]; ok {
		return m
	}
	return decimal.Zero
}

// IsSpecial returns true for every variant except NORMAL
func (v Variant) IsSpecial() bool {
	return v != VariantNormal
}

// BinderType decides which cards a binder accepts and whether it can be sold or traded
type BinderType string

const (
	BinderNonCurated BinderType = "NON_CURATED"
	BinderPauper     BinderType = "PAUPER"
	BinderRares      BinderType = "RARES"
	BinderLuxury     BinderType = "LUXURY"
	BinderCollector  BinderType = "COLLECTOR"
)

// AllBinderTypes returns all binder types
func AllBinderTypes() []BinderType {
	return []BinderType{BinderNonCurated, BinderPauper, BinderRares, BinderLuxury, BinderCollector}
}

// DeckType decides whether a deck can be sold
type DeckType string

const (
	DeckNormal   DeckType = "NORMAL"
	DeckSellable DeckType = "SELLABLE"
)

// AllDeckTypes returns all deck types
func AllDeckTypes() []DeckType {
	return []DeckType{DeckNormal, DeckSellable}
}

// ContainerClass names the three kinds of container
type ContainerClass string

const (
	ClassCollection ContainerClass = "COLLECTION"
	ClassBinder     ContainerClass = "BINDER"
	ClassDeck       ContainerClass = "DECK"
)

// normalizeEnumName maps "extended art", "Extended-Art" etc. to EXTENDED_ART
func normalizeEnumName(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}

func parseEnum[T ~string](kind, s string, all []T) (T, error) {
	name := normalizeEnumName(s)
	for _, v := range all {
		if string(v) == name {
			return v, nil
		}
	}
	var zero T
	return zero, errors.Wrapf(ErrUnknownEnum, "%s %q", kind, s)
}

// ParseRarity parses a rarity name case-insensitively
func ParseRarity(s string) (Rarity, error) {
	return parseEnum("rarity", s, AllRarities())
}

// ParseVariant parses a variant name case-insensitively
func ParseVariant(s string) (Variant, error) {
	return parseEnum("variant", s, AllVariants())
}

// ParseBinderType parses a binder type name case-insensitively
func ParseBinderType(s string) (BinderType, error) {
	return parseEnum("binder type", s, AllBinderTypes())
}

// ParseDeckType parses a deck type name case-insensitively
func ParseDeckType(s string) (DeckType, error) {
	return parseEnum("deck type", s, AllDeckTypes())
}

// Valid reports whether b is exactly one of the declared binder types
func (b BinderType) Valid() bool {
	for _, t := range AllBinderTypes() {
		if b == t {
			return true
		}
	}
	return false
}

// Valid reports whether d is exactly one of the declared deck types
func (d DeckType) Valid() bool {
	for _, t := range AllDeckTypes() {
		if d == t {
			return true
		}
	}
	return false
}
