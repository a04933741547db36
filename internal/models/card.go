package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ErrInvalidCard is returned when card construction parameters fail validation
var ErrInvalidCard = errors.New("invalid card")

// CardKey is the identity of a card inside a container. Two cards with the
// same name share a key even if rarity, variant or value differ.
type CardKey string

// Card is an immutable description of a tradeable card
type Card struct {
	name      string
	rarity    Rarity
	variant   Variant
	baseValue decimal.Decimal
}

// NewCardRequest carries validated user input for creating a card
type NewCardRequest struct {
	Name      string          `json:"name" validate:"required"`
	Rarity    Rarity          `json:"rarity" validate:"required,oneof=COMMON UNCOMMON RARE LEGENDARY"`
	Variant   Variant         `json:"variant" validate:"required,oneof=NORMAL EXTENDED_ART FULL_ART ALT_ART"`
	BaseValue decimal.Decimal `json:"base_value"`
}

// Normalize applies the add-card flow rule: only RARE and LEGENDARY cards
// may carry a special variant, everything else is forced to NORMAL.
func (r NewCardRequest) Normalize() NewCardRequest {
	r.Name = strings.TrimSpace(r.Name)
	if !r.Rarity.IsRareTier() {
		r.Variant = VariantNormal
	}
	return r
}

var cardValidator = validator.New()

// NewCard validates the request and builds a Card. It never clamps values.
func NewCard(req NewCardRequest) (Card, error) {
	if err := cardValidator.Struct(req); err != nil {
		return Card{}, errors.Wrapf(ErrInvalidCard, "%s", describeValidation(err))
	}
	if strings.TrimSpace(req.Name) == "" {
		return Card{}, errors.Wrap(ErrInvalidCard, "card name cannot be empty")
	}
	if req.BaseValue.IsNegative() {
		return Card{}, errors.Wrap(ErrInvalidCard, "value must not be negative")
	}
	return Card{
		name:      req.Name,
		rarity:    req.Rarity,
		variant:   req.Variant,
		baseValue: req.BaseValue,
	}, nil
}

// MustNewCard is NewCard for fixtures and tests; it panics on invalid input.
func MustNewCard(name string, rarity Rarity, variant Variant, baseValue decimal.Decimal) Card {
	card, err := NewCard(NewCardRequest{Name: name, Rarity: rarity, Variant: variant, BaseValue: baseValue})
	if err != nil {
		panic(err)
	}
	return card
}

// ProbeCard returns a name-only card used for membership lookups.
// Its rarity and variant are empty and it must never be stored.
func ProbeCard(name string) Card {
	return Card{name: name}
}

func (c Card) Name() string               { return c.name }
func (c Card) Rarity() Rarity             { return c.rarity }
func (c Card) Variant() Variant           { return c.variant }
func (c Card) BaseValue() decimal.Decimal { return c.baseValue }

// Key returns the container identity of the card
func (c Card) Key() CardKey {
	return CardKey(c.name)
}

// TotalValue is the base value scaled by the variant multiplier
func (c Card) TotalValue() decimal.Decimal {
	return c.baseValue.Mul(c.variant.Multiplier())
}

// Matches reports whether other has the same name, rarity and variant.
// Base value is not compared.
func (c Card) Matches(other Card) bool {
	return c.name == other.name && c.rarity == other.rarity && c.variant == other.variant
}

func (c Card) String() string {
	return fmt.Sprintf("Name: %s | Rarity: %s | Variant: %s | Base Value: $%s | Total Value: $%s",
		c.name, c.rarity, c.variant, c.baseValue.StringFixed(2), c.TotalValue().StringFixed(2))
}

// MarshalJSON exposes the card fields, which are unexported to keep cards immutable
func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name       string          `json:"name"`
		Rarity     Rarity          `json:"rarity"`
		Variant    Variant         `json:"variant"`
		BaseValue  decimal.Decimal `json:"base_value"`
		TotalValue decimal.Decimal `json:"total_value"`
	}{c.name, c.rarity, c.variant, c.baseValue, c.TotalValue()})
}

// describeValidation flattens validator errors into a single description
func describeValidation(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", strings.ToLower(fe.Field())))
		case "oneof":
			parts = append(parts, fmt.Sprintf("%s must be one of [%s]", strings.ToLower(fe.Field()), fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s failed '%s'", strings.ToLower(fe.Field()), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}
