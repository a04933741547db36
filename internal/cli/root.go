// Package cli implements the tcgledger command line: a local session over
// one in-memory ledger, optionally seeded and driven by TOML files.
package cli

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/codyseavey/tcg-inventory/internal/config"
)

// session holds the state shared by the commands of one invocation
type session struct {
	configPath string
	seedPath   string
	noColor    bool

	cfg *config.Config
	app *App
}

// NewRootCmd builds the command tree writing to out. Callers that run it
// more than once per process should use Run, which always closes the session.
func NewRootCmd(out io.Writer) *cobra.Command {
	return newRootCmd(&session{}, out)
}

func newRootCmd(s *session, out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "tcgledger",
		Short: "Track a trading card collection, binders, decks and cash",
		Long: `tcgledger keeps an in-memory ledger of a trading card collection.
Cards live in the main collection and can be moved into binders and decks,
sold, or traded. A session starts from an optional TOML seed and can be
driven by TOML scripts.`,
		SilenceUsage:      true,
		PersistentPreRunE: s.open,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return s.close()
		},
	}
	root.SetOut(out)
	root.SetErr(out)

	root.PersistentFlags().StringVar(&s.configPath, "config", "", "config file (toml, yaml or json)")
	root.PersistentFlags().StringVar(&s.seedPath, "seed", "", "TOML file with the starting inventory")
	root.PersistentFlags().BoolVar(&s.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		newStatsCmd(s),
		newListCmd(s),
		newQuoteCmd(s),
		newRunCmd(s),
		newJournalCmd(s),
		newHistoryCmd(s),
		newMetricsCmd(s),
	)
	return root
}

// Execute runs the root command against stdout with the process arguments
func Execute() error {
	return Run(os.Stdout, os.Args[1:])
}

// Run executes one command line. The session is closed even when the
// command fails, since cobra skips post-run hooks after an error.
func Run(out io.Writer, args []string) (err error) {
	s := &session{}
	defer func() {
		if cerr := s.close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	root := newRootCmd(s, out)
	root.SetArgs(args)
	return root.Execute()
}

func (s *session) open(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(s.configPath)
	if err != nil {
		return err
	}
	if err := config.SetupLogging(cfg); err != nil {
		return err
	}
	if s.noColor || !cfg.Color {
		color.NoColor = true
	}
	s.cfg = cfg

	app, err := NewApp(cfg)
	if err != nil {
		return err
	}
	s.app = app

	if s.seedPath != "" {
		seed, err := LoadSeed(s.seedPath)
		if err != nil {
			return errors.CombineErrors(err, s.close())
		}
		if err := app.ApplySeed(seed); err != nil {
			return errors.CombineErrors(errors.Wrapf(err, "apply seed %s", s.seedPath), s.close())
		}
		log.WithField("seed", s.seedPath).Info("Seed loaded")
	}
	return nil
}

func (s *session) close() error {
	if s.app == nil {
		return nil
	}
	err := s.app.Close()
	s.app = nil
	return err
}

// runOptionalScript runs the script named by the first argument, if any
func (s *session) runOptionalScript(w io.Writer, args []string) error {
	if len(args) == 0 {
		return nil
	}
	script, err := LoadScript(args[0])
	if err != nil {
		return err
	}
	printResults(w, s.app.RunScript(script))
	return nil
}
