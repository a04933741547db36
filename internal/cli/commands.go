package cli

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/codyseavey/tcg-inventory/internal/inventory"
	"github.com/codyseavey/tcg-inventory/internal/metrics"
	"github.com/codyseavey/tcg-inventory/internal/models"
)

// ErrScriptFailed is returned by run when at least one step failed
var ErrScriptFailed = errors.New("script finished with failed steps")

func newStatsCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show money, card counts and values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printStats(cmd.OutOrStdout(), s.app.Ledger.Stats())
			return nil
		},
	}
}

func newListCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the collection, binders and decks with their cards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			printContainer(w, s.app.Ledger.Collection().Container)
			for _, c := range s.app.Ledger.Containers() {
				fmt.Fprintln(w)
				printContainer(w, c)
			}
			return nil
		},
	}
}

func newQuoteCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "quote [container]",
		Short: "Show what a container would sell for",
		Long: `Quote prices the sale of every container with the given name.
Without a name, every sellable binder and deck is quoted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if len(args) == 0 {
				for _, q := range s.app.Quotes.QuoteAll(s.app.Ledger) {
					printQuote(w, q)
				}
				return nil
			}

			found := s.app.Ledger.FindContainers(args[0])
			if len(found) == 0 {
				return errors.Wrapf(inventory.ErrUnknownContainer, "%q", args[0])
			}
			for _, c := range found {
				printQuote(w, s.app.Quotes.Quote(c))
			}
			return nil
		},
	}
}

func newRunCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "run [script.toml]",
		Short: "Run a TOML script of ledger operations",
		Long: `Run executes each [[step]] of the script in order and prints one line per
step. A failed step is reported and the script continues. The final stats
and the journal sales total are printed at the end.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			script, err := LoadScript(args[0])
			if err != nil {
				return err
			}

			failed := printResults(w, s.app.RunScript(script))
			fmt.Fprintln(w)
			printStats(w, s.app.Ledger.Stats())

			if s.app.Journal != nil {
				total, err := s.app.Journal.SalesTotal()
				if err != nil {
					return err
				}
				printField(w, "Sales total", "$%s", total.StringFixed(2))
			}

			if failed > 0 {
				return errors.Wrapf(ErrScriptFailed, "%d of %d", failed, len(script.Steps))
			}
			return nil
		},
	}
}

func newJournalCmd(s *session) *cobra.Command {
	var eventType, containerName string

	cmd := &cobra.Command{
		Use:   "journal [script.toml]",
		Short: "Print the transaction journal, after running an optional script",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if s.app.Journal == nil {
				return ErrJournalDisabled
			}
			if eventType != "" && containerName != "" {
				return errors.New("--type and --container cannot be combined")
			}
			w := cmd.OutOrStdout()
			if err := s.runOptionalScript(w, args); err != nil {
				return err
			}

			var entries []models.JournalEntry
			var err error
			switch {
			case eventType != "":
				entries, err = s.app.Journal.EntriesByType(models.EventType(eventType))
			case containerName != "":
				c, cerr := s.app.container(containerName)
				if cerr != nil {
					return cerr
				}
				entries, err = s.app.Journal.EntriesForContainer(c.ID())
			default:
				entries, err = s.app.Journal.Entries()
			}
			if err != nil {
				return err
			}
			printJournal(w, entries)
			return nil
		},
	}
	cmd.Flags().StringVar(&eventType, "type", "", "only show entries of this event type, e.g. card_sold")
	cmd.Flags().StringVar(&containerName, "container", "", "only show entries that touched this binder or deck")
	return cmd
}

func newHistoryCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "history [script.toml]",
		Short: "Print value snapshots, after running an optional script",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if s.app.Snapshots == nil {
				return ErrJournalDisabled
			}
			w := cmd.OutOrStdout()
			if err := s.runOptionalScript(w, args); err != nil {
				return err
			}
			if _, err := s.app.Snapshots.TakeSnapshot("final"); err != nil {
				return err
			}
			history, err := s.app.Snapshots.History()
			if err != nil {
				return err
			}
			printHistory(w, history, s.app.Snapshots.GetLastSnapshot())
			return nil
		},
	}
}

func newMetricsCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "metrics [script.toml]",
		Short: "Print ledger metrics in Prometheus text format, after running an optional script",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if err := s.runOptionalScript(w, args); err != nil {
				return err
			}
			return metrics.WriteText(w)
		},
	}
}
