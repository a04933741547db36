package inventory

import (
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/codyseavey/tcg-inventory/internal/models"
)

// UnbalancedTradeThreshold is the value gap at which a trade needs confirmation
var UnbalancedTradeThreshold = decimal.NewFromInt(1)

// Ledger owns the collection, the binders and decks, and the cash balance.
// Every exported method holds the ledger lock for its full duration.
type Ledger struct {
	mu         sync.Mutex
	collection *Collection
	containers []*Container
	money      decimal.Decimal
	recorder   Recorder
	log        logrus.FieldLogger
	now        func() time.Time
}

// Option configures a Ledger
type Option func(*Ledger)

// WithRecorder sets the event recorder
func WithRecorder(r Recorder) Option {
	return func(l *Ledger) {
		if r != nil {
			l.recorder = r
		}
	}
}

// WithLogger sets the logger used for operation traces
func WithLogger(log logrus.FieldLogger) Option {
	return func(l *Ledger) {
		if log != nil {
			l.log = log
		}
	}
}

// WithStartingMoney sets the opening balance
func WithStartingMoney(amount decimal.Decimal) Option {
	return func(l *Ledger) {
		l.money = amount
	}
}

// WithClock overrides the event timestamp source
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		if now != nil {
			l.now = now
		}
	}
}

// NewLedger creates an empty ledger with a zero balance
func NewLedger(opts ...Option) *Ledger {
	l := &Ledger{
		collection: newCollection(),
		money:      decimal.Zero,
		recorder:   nopRecorder{},
		log:        logrus.StandardLogger(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Collection returns the master pool
func (l *Ledger) Collection() *Collection {
	return l.collection
}

// Money returns the cash balance
func (l *Ledger) Money() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.money
}

// Containers returns binders and decks in creation order
func (l *Ledger) Containers() []*Container {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]*Container(nil), l.containers...)
}

// Binders returns the binders in creation order
func (l *Ledger) Binders() []*Container {
	return l.byClass(models.ClassBinder)
}

// Decks returns the decks in creation order
func (l *Ledger) Decks() []*Container {
	return l.byClass(models.ClassDeck)
}

func (l *Ledger) byClass(class models.ContainerClass) []*Container {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []*Container
	for _, c := range l.containers {
		if c.kind.Class() == class {
			out = append(out, c)
		}
	}
	return out
}

// Container looks a container up by ID
func (l *Ledger) Container(id uuid.UUID) (*Container, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, c := range l.containers {
		if c.id == id {
			return c, true
		}
	}
	return nil, false
}

// FindContainers returns every container with the given name. Names are not unique.
func (l *Ledger) FindContainers(name string) []*Container {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []*Container
	for _, c := range l.containers {
		if c.name == name {
			out = append(out, c)
		}
	}
	return out
}

// CreateBinder appends a new binder. Duplicate names are allowed.
func (l *Ledger) CreateBinder(name string, binderType models.BinderType) (*Container, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidName
	}
	if !binderType.Valid() {
		return nil, errors.Wrapf(ErrInvalidType, "binder type %q", binderType)
	}
	return l.addContainer(NewBinder(name, binderType)), nil
}

// CreateDeck appends a new deck. Duplicate names are allowed.
func (l *Ledger) CreateDeck(name string, deckType models.DeckType) (*Container, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidName
	}
	if !deckType.Valid() {
		return nil, errors.Wrapf(ErrInvalidType, "deck type %q", deckType)
	}
	return l.addContainer(NewDeck(name, deckType)), nil
}

func (l *Ledger) addContainer(c *Container) *Container {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.containers = append(l.containers, c)
	l.log.WithFields(logrus.Fields{"container": c.name, "type": c.kind.TypeName()}).Debug("container created")
	l.emit(models.LedgerEvent{Type: models.EventContainerCreated}, c, "")
	return c
}

// DeleteContainer returns every card in c to the collection, reconciled
// against matching collection entries, then drops c from the ledger.
func (l *Ledger) DeleteContainer(c *Container) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.indexOf(c)
	if idx < 0 {
		return false
	}

	value := c.TotalValue()
	for _, h := range c.Cards() {
		target := l.collection.reconcile(h.Card)
		for i := 0; i < h.Count; i++ {
			l.collection.AddCard(target)
		}
	}
	l.removeAt(idx)

	l.log.WithFields(logrus.Fields{"container": c.name, "returned_value": value.StringFixed(2)}).Debug("container deleted")
	l.emit(models.LedgerEvent{Type: models.EventContainerDeleted, Amount: value}, c, "")
	return true
}

// MoveCard moves one copy of card from the collection into dest. It does
// nothing and returns false when the collection has no copy, dest refuses
// the card, or dest is not owned by this ledger.
func (l *Ledger) MoveCard(card models.Card, dest *Container) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.indexOf(dest) < 0 {
		return false
	}
	stored, ok := l.collection.Card(card.Name())
	if !ok || l.collection.CardCount(stored) == 0 || !dest.CanAddCard(stored) {
		l.log.WithFields(logrus.Fields{"card": card.Name(), "container": dest.name}).Debug("move skipped")
		return false
	}

	l.collection.RemoveCard(stored)
	dest.AddCard(stored)

	l.log.WithFields(logrus.Fields{"card": card.Name(), "container": dest.name}).Debug("card moved")
	l.emit(models.LedgerEvent{Type: models.EventCardMoved}, dest, card.Name())
	return true
}

// SellCard sells one collection copy of card. The stored card under that
// name sets the price, not the card passed in.
func (l *Ledger) SellCard(card models.Card) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	stored, ok := l.collection.Card(card.Name())
	if !ok || l.collection.CardCount(stored) == 0 {
		return false
	}

	l.collection.RemoveCard(stored)
	value := stored.TotalValue()
	l.money = l.money.Add(value)

	l.log.WithFields(logrus.Fields{"card": card.Name(), "amount": value.StringFixed(2)}).Debug("card sold")
	l.emit(models.LedgerEvent{Type: models.EventCardSold, Amount: value}, l.collection.Container, card.Name())
	return true
}

// SellContainer liquidates a sellable container: its selling value is
// credited and the container disappears together with its cards.
func (l *Ledger) SellContainer(c *Container) (decimal.Decimal, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.indexOf(c)
	if idx < 0 || !c.IsSellable() {
		return decimal.Zero, false
	}

	value := c.SellingValue()
	l.money = l.money.Add(value)
	l.removeAt(idx)

	l.log.WithFields(logrus.Fields{"container": c.name, "amount": value.StringFixed(2)}).Debug("container sold")
	l.emit(models.LedgerEvent{Type: models.EventContainerSold, Amount: value}, c, "")
	return value, true
}

// TradeCard swaps outgoing out of a tradeable binder for a copy of
// incoming taken from the collection. The outgoing copy leaves the ledger.
func (l *Ledger) TradeCard(binder *Container, outgoing, incoming models.Card) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.indexOf(binder) < 0 ||
		!binder.IsTradeable() ||
		binder.CardCount(outgoing) == 0 ||
		l.collection.CardCount(incoming) == 0 {
		return false
	}

	stored, _ := l.collection.Card(incoming.Name())
	binder.RemoveCard(outgoing)
	binder.AddCard(stored)
	l.collection.RemoveCard(incoming)

	l.log.WithFields(logrus.Fields{
		"container": binder.name,
		"outgoing":  outgoing.Name(),
		"incoming":  incoming.Name(),
	}).Debug("card traded")
	l.emit(models.LedgerEvent{Type: models.EventCardTraded, OtherCardName: incoming.Name()}, binder, outgoing.Name())
	return true
}

// QuoteTrade compares both sides of a trade. Gaps of at least
// UnbalancedTradeThreshold are flagged for confirmation.
func (l *Ledger) QuoteTrade(outgoing, incoming models.Card) models.TradeQuote {
	diff := incoming.TotalValue().Sub(outgoing.TotalValue())
	return models.TradeQuote{
		Outgoing:   outgoing,
		Incoming:   incoming,
		Difference: diff,
		Unbalanced: diff.Abs().GreaterThanOrEqual(UnbalancedTradeThreshold),
	}
}

// TotalCardCount counts every copy in the collection and all containers
func (l *Ledger) TotalCardCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totalCardCount()
}

func (l *Ledger) totalCardCount() int {
	total := l.collection.TotalCards()
	for _, c := range l.containers {
		total += c.TotalCards()
	}
	return total
}

// AddNewCard validates user input and adds one copy to the collection.
// Cards below RARE are forced to the NORMAL variant.
func (l *Ledger) AddNewCard(req models.NewCardRequest) (models.Card, error) {
	card, err := models.NewCard(req.Normalize())
	if err != nil {
		return models.Card{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.collection.AddCard(l.collection.reconcile(card))
	stored, _ := l.collection.Card(card.Name())
	l.emit(models.LedgerEvent{Type: models.EventCardAdded}, l.collection.Container, stored.Name())
	return stored, nil
}

// AddToCollection adds one more copy of card to the collection
func (l *Ledger) AddToCollection(card models.Card) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.collection.AddCard(l.collection.reconcile(card))
	l.emit(models.LedgerEvent{Type: models.EventCardAdded}, l.collection.Container, card.Name())
}

// RemoveFromCollection discards one collection copy of card
func (l *Ledger) RemoveFromCollection(card models.Card) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.collection.CardCount(card) == 0 {
		return errors.Wrapf(ErrNoCopiesLeft, "%s", card.Name())
	}
	l.collection.RemoveCard(card)
	l.emit(models.LedgerEvent{Type: models.EventCardRemoved}, l.collection.Container, card.Name())
	return nil
}

// AddCardToContainer is the checked form of MoveCard: it reports why a
// card cannot go into c and refuses a second copy of a card already held.
func (l *Ledger) AddCardToContainer(c *Container, card models.Card) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.indexOf(c) < 0 {
		return ErrUnknownContainer
	}
	if l.collection.CardCount(card) == 0 {
		return errors.Wrapf(ErrCardNotInCollection, "%s", card.Name())
	}
	if c.CardCount(card) > 0 {
		return errors.Wrapf(ErrCardAlreadyInContainer, "%s in %s", card.Name(), c.name)
	}

	stored, _ := l.collection.Card(card.Name())
	if !c.CanAddCard(stored) {
		return errors.Wrapf(ErrCardNotAllowed, "%s in %s", card.Name(), c.name)
	}

	c.AddCard(stored)
	l.collection.RemoveCard(stored)

	l.log.WithFields(logrus.Fields{"card": card.Name(), "container": c.name}).Debug("card added to container")
	l.emit(models.LedgerEvent{Type: models.EventCardMoved}, c, card.Name())
	return nil
}

// RemoveCardFromContainer takes one copy out of c and returns it to the collection
func (l *Ledger) RemoveCardFromContainer(c *Container, card models.Card) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.indexOf(c) < 0 {
		return ErrUnknownContainer
	}
	if c.CardCount(card) == 0 {
		return errors.Wrapf(ErrCardNotInContainer, "%s in %s", card.Name(), c.name)
	}

	stored, _ := c.Card(card.Name())
	c.RemoveCard(stored)
	l.collection.AddCard(l.collection.reconcile(stored))

	l.emit(models.LedgerEvent{Type: models.EventCardReturned}, c, card.Name())
	return nil
}

// SetSellingPrice sets the asking price of an owned binder
func (l *Ledger) SetSellingPrice(binder *Container, price decimal.Decimal) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.indexOf(binder) < 0 {
		return ErrUnknownContainer
	}
	if err := binder.SetSellingPrice(price); err != nil {
		return err
	}
	l.emit(models.LedgerEvent{Type: models.EventPriceSet, Amount: price}, binder, "")
	return nil
}

// AddMoney credits the balance
func (l *Ledger) AddMoney(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeValue
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.money = l.money.Add(amount)
	l.emit(models.LedgerEvent{Type: models.EventMoneyAdded, Amount: amount}, nil, "")
	return nil
}

// Stats summarizes the ledger
func (l *Ledger) Stats() models.LedgerStats {
	l.mu.Lock()
	defer l.mu.Unlock()

	stats := models.LedgerStats{
		Money:           l.money,
		CollectionCards: l.collection.TotalCards(),
		UniqueCards:     l.collection.UniqueCards(),
		CollectionValue: l.collection.TotalValue(),
		ContainerValue:  decimal.Zero,
	}
	stats.TotalCards = stats.CollectionCards
	for _, c := range l.containers {
		stats.TotalCards += c.TotalCards()
		stats.ContainerValue = stats.ContainerValue.Add(c.TotalValue())
		switch c.kind.Class() {
		case models.ClassBinder:
			stats.Binders++
		case models.ClassDeck:
			stats.Decks++
		}
	}
	return stats
}

func (l *Ledger) indexOf(c *Container) int {
	if c == nil {
		return -1
	}
	for i, owned := range l.containers {
		if owned == c {
			return i
		}
	}
	return -1
}

func (l *Ledger) removeAt(idx int) {
	l.containers = append(l.containers[:idx], l.containers[idx+1:]...)
}

// emit must be called with mu held
func (l *Ledger) emit(ev models.LedgerEvent, c *Container, cardName string) {
	ev.At = l.now()
	ev.CardName = cardName
	if c != nil {
		ev.ContainerID = c.id
		ev.ContainerName = c.name
		ev.Class = c.kind.Class()
		if c == l.collection.Container {
			ev.ContainerID = uuid.Nil
		}
	}
	ev.Balance = l.money
	ev.TotalCards = l.totalCardCount()
	l.recorder.Record(ev)
}
