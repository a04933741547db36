package cli

import (
	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/codyseavey/tcg-inventory/internal/config"
	"github.com/codyseavey/tcg-inventory/internal/database"
	"github.com/codyseavey/tcg-inventory/internal/inventory"
	"github.com/codyseavey/tcg-inventory/internal/metrics"
	"github.com/codyseavey/tcg-inventory/internal/models"
	"github.com/codyseavey/tcg-inventory/internal/services"
)

var (
	// ErrJournalDisabled is returned by operations that need the journal
	ErrJournalDisabled = errors.New("journal is disabled")
	// ErrUnknownCard is returned when a card name matches nothing owned
	ErrUnknownCard = errors.New("unknown card")
	// ErrInvalidAmount is returned for money values that do not parse
	ErrInvalidAmount = errors.New("invalid amount")
)

// App is one ledger session together with its supporting services
type App struct {
	Ledger    *inventory.Ledger
	Journal   *services.JournalService
	Snapshots *services.SnapshotService
	Quotes    *services.QuoteService

	db *gorm.DB
}

// NewApp wires a fresh ledger according to cfg
func NewApp(cfg *config.Config) (*App, error) {
	quotes, err := services.NewQuoteService(cfg.QuoteCacheSize)
	if err != nil {
		return nil, err
	}

	app := &App{Quotes: quotes}
	recorders := inventory.MultiRecorder{metrics.Recorder{}}

	if cfg.JournalEnabled {
		db, err := database.Open(cfg.JournalDSN)
		if err != nil {
			return nil, err
		}
		app.db = db
		app.Journal = services.NewJournalService(db)
		recorders = append(recorders, app.Journal)
	}

	app.Ledger = inventory.NewLedger(
		inventory.WithRecorder(recorders),
		inventory.WithLogger(log.StandardLogger()),
		inventory.WithStartingMoney(cfg.Money()),
	)
	if app.db != nil {
		app.Snapshots = services.NewSnapshotService(app.db, app.Ledger)
	}

	log.WithFields(log.Fields{
		"journal":     cfg.JournalEnabled,
		"quote_cache": cfg.QuoteCacheSize,
	}).Debug("Ledger session ready")
	return app, nil
}

// Close releases the journal database
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return database.Close(a.db)
}

// container resolves a container by name. Names are not unique: the
// earliest created container wins.
func (a *App) container(name string) (*inventory.Container, error) {
	found := a.Ledger.FindContainers(name)
	if len(found) == 0 {
		return nil, errors.Wrapf(inventory.ErrUnknownContainer, "%q", name)
	}
	if len(found) > 1 {
		log.WithField("container", name).Debugf("%d containers share this name, using the first", len(found))
	}
	return found[0], nil
}

// card resolves a card by name, looking in the collection first and then
// in every container.
func (a *App) card(name string) (models.Card, error) {
	if c, ok := a.Ledger.Collection().Card(name); ok {
		return c, nil
	}
	for _, c := range a.Ledger.Containers() {
		if card, ok := c.Card(name); ok {
			return card, nil
		}
	}
	return models.Card{}, errors.Wrapf(ErrUnknownCard, "%q", name)
}
