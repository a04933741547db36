package inventory

import (
	"math"

	"github.com/codyseavey/tcg-inventory/internal/models"
)

const (
	// BinderCapacity is the maximum number of distinct cards in a binder
	BinderCapacity = 20
	// DeckCapacity is the maximum number of cards, copies included, in a deck
	DeckCapacity = 10
	// CollectionCapacity is effectively unlimited
	CollectionCapacity = math.MaxInt
)

// ContainerKind is the tagged variant carrying type-specific policy data.
// It is implemented only by CollectionKind, BinderKind and DeckKind.
type ContainerKind interface {
	Class() models.ContainerClass
	// TypeName is the serialized type (binder or deck type), empty for the collection
	TypeName() string
	capacity() int
}

// CollectionKind is the unrestricted master pool
type CollectionKind struct{}

func (CollectionKind) Class() models.ContainerClass { return models.ClassCollection }
func (CollectionKind) TypeName() string             { return "" }
func (CollectionKind) capacity() int                { return CollectionCapacity }

// BinderKind is a typed binder
type BinderKind struct {
	Type models.BinderType
}

func (BinderKind) Class() models.ContainerClass { return models.ClassBinder }
func (k BinderKind) TypeName() string           { return string(k.Type) }
func (BinderKind) capacity() int                { return BinderCapacity }

// DeckKind is a typed deck
type DeckKind struct {
	Type models.DeckType
}

func (DeckKind) Class() models.ContainerClass { return models.ClassDeck }
func (k DeckKind) TypeName() string           { return string(k.Type) }
func (DeckKind) capacity() int                { return DeckCapacity }
