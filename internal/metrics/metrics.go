// Package metrics provides Prometheus metrics for the inventory ledger.
// They are gathered in process and printed by the CLI.
package metrics

import (
	"io"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/codyseavey/tcg-inventory/internal/models"
)

// Namespace prefixes every metric owned by this package
const Namespace = "tcg"

var (
	// Ledger Metrics
	LedgerEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tcg_ledger_events_total",
			Help: "Total number of successful ledger mutations",
		},
		[]string{"type"},
	)

	LedgerMoney = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tcg_ledger_money",
			Help: "Current cash balance",
		},
	)

	LedgerCardsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tcg_ledger_cards_total",
			Help: "Cards owned across the collection and all containers",
		},
	)

	// Sales Metrics
	SalesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tcg_sales_total",
			Help: "Number of completed sales",
		},
		[]string{"kind"}, // "card" or "container"
	)

	SalesValue = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tcg_sales_value",
			Help: "Money credited by sales",
		},
		[]string{"kind"},
	)

	TradesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tcg_trades_total",
			Help: "Number of completed binder trades",
		},
	)

	// Container Metrics
	ContainersOpen = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tcg_containers_open",
			Help: "Binders and decks currently owned",
		},
		[]string{"class"},
	)

	// Quote Cache Metrics
	QuoteCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tcg_quote_cache_hits_total",
			Help: "Sale quote cache hit count",
		},
	)

	QuoteCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tcg_quote_cache_misses_total",
			Help: "Sale quote cache miss count",
		},
	)

	// Journal Metrics
	JournalWriteErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tcg_journal_write_errors_total",
			Help: "Ledger events that could not be written to the journal",
		},
	)
)

// Recorder mirrors ledger events into the package metrics
type Recorder struct{}

// Record implements inventory.Recorder
func (Recorder) Record(ev models.LedgerEvent) {
	LedgerEventsTotal.WithLabelValues(string(ev.Type)).Inc()
	LedgerMoney.Set(ev.Balance.InexactFloat64())
	LedgerCardsTotal.Set(float64(ev.TotalCards))

	switch ev.Type {
	case models.EventCardSold:
		SalesTotal.WithLabelValues("card").Inc()
		SalesValue.WithLabelValues("card").Add(ev.Amount.InexactFloat64())
	case models.EventContainerSold:
		SalesTotal.WithLabelValues("container").Inc()
		SalesValue.WithLabelValues("container").Add(ev.Amount.InexactFloat64())
		ContainersOpen.WithLabelValues(string(ev.Class)).Dec()
	case models.EventContainerCreated:
		ContainersOpen.WithLabelValues(string(ev.Class)).Inc()
	case models.EventContainerDeleted:
		ContainersOpen.WithLabelValues(string(ev.Class)).Dec()
	case models.EventCardTraded:
		TradesTotal.Inc()
	}
}

// Gather collects the families registered by this package, sorted by name
func Gather() ([]*dto.MetricFamily, error) {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return nil, errors.Wrap(err, "gather metrics")
	}

	out := families[:0]
	for _, mf := range families {
		if strings.HasPrefix(mf.GetName(), Namespace+"_") {
			out = append(out, mf)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GetName() < out[j].GetName() })
	return out, nil
}

// WriteText writes the package metrics in the Prometheus text format
func WriteText(w io.Writer) error {
	families, err := Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return errors.Wrapf(err, "write %s", mf.GetName())
		}
	}
	return nil
}
