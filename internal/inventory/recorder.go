package inventory

import (
	"github.com/codyseavey/tcg-inventory/internal/models"
)

// Recorder receives an event after every successful ledger mutation.
// Record is called with the ledger lock held and must not call back into the ledger.
type Recorder interface {
	Record(ev models.LedgerEvent)
}

// RecorderFunc adapts a function to Recorder
type RecorderFunc func(ev models.LedgerEvent)

func (f RecorderFunc) Record(ev models.LedgerEvent) { f(ev) }

// MultiRecorder fans an event out to several recorders in order
type MultiRecorder []Recorder

func (m MultiRecorder) Record(ev models.LedgerEvent) {
	for _, r := range m {
		if r != nil {
			r.Record(ev)
		}
	}
}

type nopRecorder struct{}

func (nopRecorder) Record(models.LedgerEvent) {}
