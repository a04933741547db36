package cli

import (
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"

	"github.com/codyseavey/tcg-inventory/internal/inventory"
	"github.com/codyseavey/tcg-inventory/internal/models"
)

// Seed is the starting inventory read from a TOML file
type Seed struct {
	Money   string          `toml:"money"`
	Cards   []SeedCard      `toml:"card"`
	Binders []SeedContainer `toml:"binder"`
	Decks   []SeedContainer `toml:"deck"`
}

// SeedCard adds Copies copies of one card to the collection
type SeedCard struct {
	Name      string `toml:"name"`
	Rarity    string `toml:"rarity"`
	Variant   string `toml:"variant"`
	BaseValue string `toml:"base_value"`
	Copies    int    `toml:"copies"`
}

// SeedContainer creates a binder or deck and moves the named cards into it.
// A name listed twice moves two copies.
type SeedContainer struct {
	Name  string   `toml:"name"`
	Type  string   `toml:"type"`
	Price string   `toml:"price"`
	Cards []string `toml:"cards"`
}

// LoadSeed decodes a seed file
func LoadSeed(path string) (*Seed, error) {
	var seed Seed
	meta, err := toml.DecodeFile(path, &seed)
	if err != nil {
		return nil, errors.Wrapf(err, "error loading seed %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Newf("seed %s: unknown keys %v", path, undecoded)
	}
	return &seed, nil
}

// ApplySeed loads seed into the ledger. It stops at the first failure.
func (a *App) ApplySeed(seed *Seed) error {
	if strings.TrimSpace(seed.Money) != "" {
		amount, err := parseAmount(seed.Money)
		if err != nil {
			return errors.Wrap(err, "seed money")
		}
		if err := a.Ledger.AddMoney(amount); err != nil {
			return errors.Wrap(err, "seed money")
		}
	}

	for _, sc := range seed.Cards {
		req, err := cardRequest(sc.Name, sc.Rarity, sc.Variant, sc.BaseValue)
		if err != nil {
			return errors.Wrapf(err, "seed card %q", sc.Name)
		}
		copies := sc.Copies
		if copies <= 0 {
			copies = 1
		}
		for i := 0; i < copies; i++ {
			if _, err := a.Ledger.AddNewCard(req); err != nil {
				return errors.Wrapf(err, "seed card %q", sc.Name)
			}
		}
	}

	for _, sb := range seed.Binders {
		binderType, err := models.ParseBinderType(sb.Type)
		if err != nil {
			return errors.Wrapf(err, "seed binder %q", sb.Name)
		}
		binder, err := a.Ledger.CreateBinder(sb.Name, binderType)
		if err != nil {
			return errors.Wrapf(err, "seed binder %q", sb.Name)
		}
		if err := a.fillSeedContainer(binder, sb); err != nil {
			return err
		}
		if strings.TrimSpace(sb.Price) != "" {
			price, err := parseAmount(sb.Price)
			if err != nil {
				return errors.Wrapf(err, "seed binder %q price", sb.Name)
			}
			if err := a.Ledger.SetSellingPrice(binder, price); err != nil {
				return errors.Wrapf(err, "seed binder %q price", sb.Name)
			}
		}
	}

	for _, sd := range seed.Decks {
		deckType, err := models.ParseDeckType(sd.Type)
		if err != nil {
			return errors.Wrapf(err, "seed deck %q", sd.Name)
		}
		deck, err := a.Ledger.CreateDeck(sd.Name, deckType)
		if err != nil {
			return errors.Wrapf(err, "seed deck %q", sd.Name)
		}
		if strings.TrimSpace(sd.Price) != "" {
			return errors.Wrapf(inventory.ErrNotABinder, "seed deck %q price", sd.Name)
		}
		if err := a.fillSeedContainer(deck, sd); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) fillSeedContainer(c *inventory.Container, sc SeedContainer) error {
	for _, name := range sc.Cards {
		card, ok := a.Ledger.Collection().Card(name)
		if !ok {
			return errors.Wrapf(inventory.ErrCardNotInCollection, "seed %s %q: %q", c.Kind().Class(), sc.Name, name)
		}
		if !a.Ledger.MoveCard(card, c) {
			return errors.Wrapf(inventory.ErrCardNotAllowed, "seed %s %q: cannot place %q", c.Kind().Class(), sc.Name, name)
		}
	}
	return nil
}

func cardRequest(name, rarity, variant, value string) (models.NewCardRequest, error) {
	r, err := models.ParseRarity(rarity)
	if err != nil {
		return models.NewCardRequest{}, err
	}
	v := models.VariantNormal
	if strings.TrimSpace(variant) != "" {
		if v, err = models.ParseVariant(variant); err != nil {
			return models.NewCardRequest{}, err
		}
	}
	base, err := parseAmount(value)
	if err != nil {
		return models.NewCardRequest{}, err
	}
	return models.NewCardRequest{Name: name, Rarity: r, Variant: v, BaseValue: base}, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "$")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errors.Wrapf(ErrInvalidAmount, "%q", s)
	}
	return d, nil
}
