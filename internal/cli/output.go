package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/codyseavey/tcg-inventory/internal/inventory"
	"github.com/codyseavey/tcg-inventory/internal/models"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	labelColor  = color.New(color.FgCyan)
	valueColor  = color.New(color.FgHiWhite)
	okColor     = color.New(color.FgGreen)
	failColor   = color.New(color.FgRed)
	mutedColor  = color.New(color.FgHiBlack)
)

func printField(w io.Writer, label string, format string, args ...any) {
	labelColor.Fprintf(w, "%-18s", label+":")
	valueColor.Fprintf(w, format, args...)
	fmt.Fprintln(w)
}

func printStats(w io.Writer, s models.LedgerStats) {
	headerColor.Fprintln(w, "Stats")
	printField(w, "Money", "$%s", s.Money.StringFixed(2))
	printField(w, "Total cards", "%d", s.TotalCards)
	printField(w, "Collection cards", "%d (%d unique)", s.CollectionCards, s.UniqueCards)
	printField(w, "Collection value", "$%s", s.CollectionValue.StringFixed(2))
	printField(w, "Container value", "$%s", s.ContainerValue.StringFixed(2))
	printField(w, "Total value", "$%s", s.TotalValue().StringFixed(2))
	printField(w, "Binders", "%d", s.Binders)
	printField(w, "Decks", "%d", s.Decks)
}

func printContainer(w io.Writer, c *inventory.Container) {
	s := c.Summary()
	title := s.Name
	if s.Type != "" {
		title = fmt.Sprintf("%s [%s %s]", s.Name, s.Type, s.Class)
	}
	headerColor.Fprintln(w, title)

	capacity := "unlimited"
	if s.Capacity != inventory.CollectionCapacity {
		capacity = fmt.Sprintf("%d", s.Capacity)
	}
	mutedColor.Fprintf(w, "  %d cards, %d unique, capacity %s, value $%s",
		s.TotalCards, s.UniqueCards, capacity, s.TotalValue.StringFixed(2))
	if s.Class == models.ClassBinder {
		mutedColor.Fprintf(w, ", asking $%s", s.SellingPrice.StringFixed(2))
	}
	fmt.Fprintln(w)

	for _, h := range c.HeldCards() {
		fmt.Fprintf(w, "  %2dx %s\n", h.Count, h.Card)
	}
}

func printQuote(w io.Writer, q models.SaleQuote) {
	headerColor.Fprintf(w, "%s\n", q.Name)
	if !q.Sellable {
		failColor.Fprintln(w, "  not sellable")
		return
	}
	printField(w, "  Content value", "$%s", q.TotalValue.StringFixed(2))
	printField(w, "  Premium", "$%s", q.Premium.StringFixed(2))
	printField(w, "  Selling value", "$%s", q.SellingValue.StringFixed(2))
}

func printResults(w io.Writer, results []StepResult) (failed int) {
	for _, r := range results {
		if r.Err != nil {
			failed++
			failColor.Fprintf(w, "✗ %d %s: %v\n", r.Index, r.Op, r.Err)
			continue
		}
		okColor.Fprintf(w, "✓ %d %s: ", r.Index, r.Op)
		fmt.Fprintln(w, r.Message)
	}
	return failed
}

func printJournal(w io.Writer, entries []models.JournalEntry) {
	headerColor.Fprintf(w, "Journal (%d entries)\n", len(entries))
	for _, e := range entries {
		where := e.ContainerName
		if where == "" {
			where = "-"
		}
		line := fmt.Sprintf("%4d %-18s %-20s %-16s", e.ID, e.Type, where, e.CardName)
		if e.OtherCardName != "" {
			line += " -> " + e.OtherCardName
		}
		fmt.Fprint(w, line)
		if !e.Amount.IsZero() {
			valueColor.Fprintf(w, " $%s", e.Amount.StringFixed(2))
		}
		mutedColor.Fprintf(w, " (balance $%s)\n", e.Balance.StringFixed(2))
	}
}

func printHistory(w io.Writer, history models.ValueHistoryResponse, latest *models.LedgerValueSnapshot) {
	headerColor.Fprintf(w, "Snapshots (%d)\n", history.Count)
	for _, s := range history.Snapshots {
		fmt.Fprintf(w, "  %-16s %s  cards %d  cash $%s  value $%s\n",
			s.Label, s.TakenAt.Format("15:04:05"), s.TotalCards,
			s.Money.StringFixed(2), s.CollectionValue.Add(s.ContainerValue).StringFixed(2))
	}
	if latest != nil {
		printField(w, "Latest", "%s, total $%s", latest.Label,
			latest.Money.Add(latest.CollectionValue).Add(latest.ContainerValue).StringFixed(2))
	}
}
