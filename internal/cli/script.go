package cli

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"

	"github.com/codyseavey/tcg-inventory/internal/inventory"
	"github.com/codyseavey/tcg-inventory/internal/models"
)

// ErrUnknownOp is returned for a script step with an unsupported op
var ErrUnknownOp = errors.New("unknown op")

// ErrStepRefused is returned when the ledger declines a step without a reason
var ErrStepRefused = errors.New("refused")

// Script is an ordered list of ledger operations read from TOML
type Script struct {
	Steps []Step `toml:"step"`
}

// Step is one scripted operation. Which fields matter depends on Op.
type Step struct {
	Op        string `toml:"op"`
	Card      string `toml:"card"`
	Rarity    string `toml:"rarity"`
	Variant   string `toml:"variant"`
	Value     string `toml:"value"`
	Name      string `toml:"name"`
	Type      string `toml:"type"`
	Container string `toml:"container"`
	Incoming  string `toml:"incoming"`
	Amount    string `toml:"amount"`
	Label     string `toml:"label"`
	Force     bool   `toml:"force"`
}

// StepResult is the outcome of one step
type StepResult struct {
	Index   int
	Op      string
	Message string
	Err     error
}

// LoadScript decodes a script file
func LoadScript(path string) (*Script, error) {
	var script Script
	meta, err := toml.DecodeFile(path, &script)
	if err != nil {
		return nil, errors.Wrapf(err, "error loading script %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Newf("script %s: unknown keys %v", path, undecoded)
	}
	return &script, nil
}

// RunScript executes every step in order. A failed step is reported in
// its result and the script carries on.
func (a *App) RunScript(script *Script) []StepResult {
	results := make([]StepResult, 0, len(script.Steps))
	for i, step := range script.Steps {
		msg, err := a.runStep(step)
		res := StepResult{Index: i + 1, Op: step.Op, Message: msg, Err: err}
		if err != nil {
			log.WithError(err).WithField("op", step.Op).Debugf("Script step %d failed", i+1)
		}
		results = append(results, res)
	}
	return results
}

func (a *App) runStep(s Step) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s.Op)) {
	case "add-card":
		return a.stepAddCard(s)
	case "remove-card":
		card, err := a.card(s.Card)
		if err != nil {
			return "", err
		}
		if err := a.Ledger.RemoveFromCollection(card); err != nil {
			return "", err
		}
		return fmt.Sprintf("removed one %s from the collection", card.Name()), nil
	case "sell-card":
		card, err := a.card(s.Card)
		if err != nil {
			return "", err
		}
		if !a.Ledger.SellCard(card) {
			return "", errors.Wrapf(ErrStepRefused, "no copy of %s in the collection", card.Name())
		}
		return fmt.Sprintf("sold %s for $%s", card.Name(), card.TotalValue().StringFixed(2)), nil
	case "create-binder":
		bt, err := models.ParseBinderType(s.Type)
		if err != nil {
			return "", err
		}
		b, err := a.Ledger.CreateBinder(s.Name, bt)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("created %s binder %s", bt, b.Name()), nil
	case "create-deck":
		dt, err := models.ParseDeckType(s.Type)
		if err != nil {
			return "", err
		}
		d, err := a.Ledger.CreateDeck(s.Name, dt)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("created %s deck %s", dt, d.Name()), nil
	case "delete":
		c, err := a.container(s.Container)
		if err != nil {
			return "", err
		}
		value := c.TotalValue()
		if !a.Ledger.DeleteContainer(c) {
			return "", errors.Wrapf(ErrStepRefused, "delete %s", c.Name())
		}
		return fmt.Sprintf("deleted %s, $%s returned to the collection", c.Name(), value.StringFixed(2)), nil
	case "move":
		return a.stepMove(s)
	case "put":
		c, card, err := a.containerAndCard(s.Container, s.Card)
		if err != nil {
			return "", err
		}
		if err := a.Ledger.AddCardToContainer(c, card); err != nil {
			return "", err
		}
		return fmt.Sprintf("put %s into %s", card.Name(), c.Name()), nil
	case "take":
		c, card, err := a.containerAndCard(s.Container, s.Card)
		if err != nil {
			return "", err
		}
		if err := a.Ledger.RemoveCardFromContainer(c, card); err != nil {
			return "", err
		}
		return fmt.Sprintf("returned %s from %s to the collection", card.Name(), c.Name()), nil
	case "sell":
		c, err := a.container(s.Container)
		if err != nil {
			return "", err
		}
		quote := a.Quotes.Quote(c)
		value, ok := a.Ledger.SellContainer(c)
		if !ok {
			return "", errors.Wrapf(ErrStepRefused, "%s is not sellable", c.Name())
		}
		if !quote.SellingValue.Equal(value) {
			log.WithField("container", c.Name()).Warnf("Sale credited $%s, quoted $%s", value.StringFixed(2), quote.SellingValue.StringFixed(2))
		}
		return fmt.Sprintf("sold %s for $%s", c.Name(), value.StringFixed(2)), nil
	case "trade":
		return a.stepTrade(s)
	case "set-price":
		c, err := a.container(s.Container)
		if err != nil {
			return "", err
		}
		price, err := parseAmount(s.Amount)
		if err != nil {
			return "", err
		}
		if err := a.Ledger.SetSellingPrice(c, price); err != nil {
			return "", err
		}
		return fmt.Sprintf("asking price of %s set to $%s", c.Name(), price.StringFixed(2)), nil
	case "add-money":
		amount, err := parseAmount(s.Amount)
		if err != nil {
			return "", err
		}
		if err := a.Ledger.AddMoney(amount); err != nil {
			return "", err
		}
		return fmt.Sprintf("added $%s", amount.StringFixed(2)), nil
	case "snapshot":
		if a.Snapshots == nil {
			return "", ErrJournalDisabled
		}
		snap, err := a.Snapshots.TakeSnapshot(s.Label)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("snapshot %q: %d cards, $%s cash", snap.Label, snap.TotalCards, snap.Money.StringFixed(2)), nil
	default:
		return "", errors.Wrapf(ErrUnknownOp, "%q", s.Op)
	}
}

func (a *App) stepAddCard(s Step) (string, error) {
	if strings.TrimSpace(s.Rarity) == "" {
		card, err := a.card(s.Card)
		if err != nil {
			return "", err
		}
		a.Ledger.AddToCollection(card)
		return fmt.Sprintf("added another %s", card.Name()), nil
	}

	req, err := cardRequest(s.Card, s.Rarity, s.Variant, s.Value)
	if err != nil {
		return "", err
	}
	card, err := a.Ledger.AddNewCard(req)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("added %s", card), nil
}

func (a *App) stepMove(s Step) (string, error) {
	c, card, err := a.containerAndCard(s.Container, s.Card)
	if err != nil {
		return "", err
	}
	if !a.Ledger.MoveCard(card, c) {
		return "", errors.Wrapf(ErrStepRefused, "%s cannot move into %s", card.Name(), c.Name())
	}
	return fmt.Sprintf("moved %s into %s", card.Name(), c.Name()), nil
}

func (a *App) stepTrade(s Step) (string, error) {
	c, outgoing, err := a.containerAndCard(s.Container, s.Card)
	if err != nil {
		return "", err
	}
	incoming, err := a.card(s.Incoming)
	if err != nil {
		return "", err
	}

	quote := a.Ledger.QuoteTrade(outgoing, incoming)
	if quote.Unbalanced && !s.Force {
		return "", errors.Wrapf(ErrStepRefused, "unbalanced trade (difference $%s), set force = true to confirm",
			quote.Difference.StringFixed(2))
	}
	if !a.Ledger.TradeCard(c, outgoing, incoming) {
		return "", errors.Wrapf(ErrStepRefused, "%s cannot trade %s for %s", c.Name(), outgoing.Name(), incoming.Name())
	}
	return fmt.Sprintf("traded %s for %s in %s", outgoing.Name(), incoming.Name(), c.Name()), nil
}

// containerAndCard resolves both names. The card is looked up in the
// container first so that cards held only there can be named.
func (a *App) containerAndCard(containerName, cardName string) (*inventory.Container, models.Card, error) {
	c, err := a.container(containerName)
	if err != nil {
		return nil, models.Card{}, err
	}
	if card, ok := c.Card(cardName); ok {
		return c, card, nil
	}
	card, err := a.card(cardName)
	if err != nil {
		return nil, models.Card{}, err
	}
	return c, card, nil
}
