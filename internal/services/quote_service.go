package services

import (
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/codyseavey/tcg-inventory/internal/inventory"
	"github.com/codyseavey/tcg-inventory/internal/metrics"
	"github.com/codyseavey/tcg-inventory/internal/models"
)

// DefaultQuoteCacheSize is used when a non-positive size is configured
const DefaultQuoteCacheSize = 128

type quoteKey struct {
	id       uuid.UUID
	revision uint64
}

// QuoteService prices container sales. Quotes are cached per container
// revision, so any mutation of the container yields a fresh quote.
type QuoteService struct {
	cache *lru.Cache[quoteKey, models.SaleQuote]
}

// NewQuoteService creates a quote service holding up to size quotes
func NewQuoteService(size int) (*QuoteService, error) {
	if size <= 0 {
		size = DefaultQuoteCacheSize
	}
	cache, err := lru.New[quoteKey, models.SaleQuote](size)
	if err != nil {
		return nil, errors.Wrap(err, "create quote cache")
	}
	return &QuoteService{cache: cache}, nil
}

// Quote returns the sale quote of c at its current revision
func (s *QuoteService) Quote(c *inventory.Container) models.SaleQuote {
	key := quoteKey{id: c.ID(), revision: c.Revision()}
	if q, ok := s.cache.Get(key); ok {
		metrics.QuoteCacheHits.Inc()
		return q
	}
	metrics.QuoteCacheMisses.Inc()

	q := c.Quote()
	s.cache.Add(quoteKey{id: q.ContainerID, revision: q.Revision}, q)
	return q
}

// QuoteAll quotes every sellable container owned by l
func (s *QuoteService) QuoteAll(l *inventory.Ledger) []models.SaleQuote {
	var quotes []models.SaleQuote
	for _, c := range l.Containers() {
		if !c.IsSellable() {
			continue
		}
		quotes = append(quotes, s.Quote(c))
	}
	return quotes
}

// Len returns the number of cached quotes
func (s *QuoteService) Len() int {
	return s.cache.Len()
}
