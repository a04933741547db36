package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codyseavey/tcg-inventory/internal/config"
	"github.com/codyseavey/tcg-inventory/internal/inventory"
	"github.com/codyseavey/tcg-inventory/internal/models"
)

func testDSN(t *testing.T) string {
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	return fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := &config.Config{
		LogLevel:       "info",
		LogFormat:      "text",
		JournalDSN:     testDSN(t),
		JournalEnabled: true,
		QuoteCacheSize: 8,
		StartingMoney:  "0",
	}
	app, err := NewApp(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func seededApp(t *testing.T) *App {
	t.Helper()
	app := newTestApp(t)
	seed, err := LoadSeed(filepath.Join("testdata", "seed.toml"))
	require.NoError(t, err)
	require.NoError(t, app.ApplySeed(seed))
	return app
}

func money(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "expected %s, got %s", want, got)
}

func TestApplySeed(t *testing.T) {
	app := seededApp(t)
	l := app.Ledger

	money(t, "50", l.Money())
	assert.Equal(t, 7, l.TotalCardCount())
	assert.Len(t, l.Binders(), 2)
	assert.Len(t, l.Decks(), 1)

	pikachu, err := app.card("Pikachu")
	require.NoError(t, err)
	assert.Equal(t, 1, l.Collection().CardCount(pikachu))

	starter, err := app.container("Starter")
	require.NoError(t, err)
	assert.Equal(t, 2, starter.CardCount(pikachu))

	stash, err := app.container("Rare Stash")
	require.NoError(t, err)
	money(t, "30", stash.SellingPrice())
}

func TestLoadSeedRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.toml")
	require.NoError(t, os.WriteFile(path, []byte("monee = \"5\"\n"), 0o600))

	_, err := LoadSeed(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "monee")
}

func TestApplySeedStopsOnIneligibleCard(t *testing.T) {
	app := newTestApp(t)
	err := app.ApplySeed(&Seed{
		Cards:   []SeedCard{{Name: "Rattata", Rarity: "COMMON", BaseValue: "1"}},
		Binders: []SeedContainer{{Name: "Rares", Type: "RARES", Cards: []string{"Rattata"}}},
	})
	assert.ErrorIs(t, err, inventory.ErrCardNotAllowed)
}

func TestRunScript(t *testing.T) {
	app := seededApp(t)
	script, err := LoadScript(filepath.Join("testdata", "script.toml"))
	require.NoError(t, err)

	results := app.RunScript(script)
	require.Len(t, results, len(script.Steps))

	var failed []int
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r.Index)
		}
	}
	assert.Equal(t, []int{4, 7, 11, 13}, failed)

	assert.ErrorIs(t, results[3].Err, ErrStepRefused)
	assert.ErrorIs(t, results[6].Err, inventory.ErrCardNotAllowed)
	assert.Contains(t, results[10].Err.Error(), "unbalanced trade")
	assert.ErrorIs(t, results[12].Err, ErrUnknownOp)
	assert.Contains(t, results[9].Message, "$275.00")

	eevee, err := app.card("Eevee")
	require.NoError(t, err)
	assert.Equal(t, models.VariantNormal, eevee.Variant())

	stats := app.Ledger.Stats()
	money(t, "338.5", stats.Money)
	assert.Equal(t, 5, stats.TotalCards)
	money(t, "2", stats.CollectionValue)
	money(t, "67", stats.ContainerValue)
	assert.Equal(t, 2, stats.Binders)
	assert.Equal(t, 1, stats.Decks)

	sales, err := app.Journal.SalesTotal()
	require.NoError(t, err)
	money(t, "278.5", sales)

	history, err := app.Snapshots.History()
	require.NoError(t, err)
	require.Equal(t, 1, history.Count)
	assert.Equal(t, "before sale", history.Snapshots[0].Label)
}

func TestRunScriptOnUnknownNames(t *testing.T) {
	app := newTestApp(t)
	results := app.RunScript(&Script{Steps: []Step{
		{Op: "sell-card", Card: "Nobody"},
		{Op: "delete", Container: "Nowhere"},
		{Op: "add-money", Amount: "lots"},
		{Op: "add-money", Amount: "-3"},
	}})

	assert.ErrorIs(t, results[0].Err, ErrUnknownCard)
	assert.ErrorIs(t, results[1].Err, inventory.ErrUnknownContainer)
	assert.ErrorIs(t, results[2].Err, ErrInvalidAmount)
	assert.ErrorIs(t, results[3].Err, inventory.ErrNegativeValue)
	assert.True(t, app.Ledger.Money().IsZero())
}

func TestSnapshotNeedsJournal(t *testing.T) {
	app, err := NewApp(&config.Config{QuoteCacheSize: 1, StartingMoney: "0"})
	require.NoError(t, err)
	defer func() { _ = app.Close() }()

	assert.Nil(t, app.Journal)
	results := app.RunScript(&Script{Steps: []Step{{Op: "snapshot", Label: "x"}}})
	assert.ErrorIs(t, results[0].Err, ErrJournalDisabled)
}

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	t.Setenv("TCG_JOURNAL_DSN", testDSN(t))
	t.Setenv("TCG_LOG_LEVEL", "error")

	var out bytes.Buffer
	err := Run(&out, args)
	return out.String(), err
}

func TestRootStats(t *testing.T) {
	out, err := executeRoot(t, "--no-color", "--seed", filepath.Join("testdata", "seed.toml"), "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "$50.00")
	assert.Contains(t, out, "Binders")
}

func TestRootList(t *testing.T) {
	out, err := executeRoot(t, "--no-color", "--seed", filepath.Join("testdata", "seed.toml"), "list")
	require.NoError(t, err)
	assert.Contains(t, out, inventory.CollectionName)
	assert.Contains(t, out, "Rare Stash [RARES BINDER]")
	assert.Contains(t, out, "Starter [SELLABLE DECK]")
	assert.Contains(t, out, "capacity unlimited")
}

func TestRootQuote(t *testing.T) {
	out, err := executeRoot(t, "--no-color", "--seed", filepath.Join("testdata", "seed.toml"), "quote", "Rare Stash")
	require.NoError(t, err)
	assert.Contains(t, out, "$33.00")

	_, err = executeRoot(t, "--no-color", "quote", "Missing")
	assert.ErrorIs(t, err, inventory.ErrUnknownContainer)
}

func TestRootRunReportsFailures(t *testing.T) {
	out, err := executeRoot(t, "--no-color",
		"--seed", filepath.Join("testdata", "seed.toml"),
		"run", filepath.Join("testdata", "script.toml"))
	assert.ErrorIs(t, err, ErrScriptFailed)
	assert.Contains(t, out, "✓ 1 add-card")
	assert.Contains(t, out, "✗ 13 shuffle")
	assert.Contains(t, out, "$278.50")
}

func TestRootJournal(t *testing.T) {
	out, err := executeRoot(t, "--no-color", "--seed", filepath.Join("testdata", "seed.toml"), "journal")
	require.NoError(t, err)
	assert.Contains(t, out, "Journal (")
	assert.Contains(t, out, string(models.EventContainerCreated))
}

func TestRootJournalFilters(t *testing.T) {
	seed := filepath.Join("testdata", "seed.toml")

	out, err := executeRoot(t, "--no-color", "--seed", seed, "journal", "--type", string(models.EventContainerCreated))
	require.NoError(t, err)
	assert.Contains(t, out, "Journal (3 entries)")
	assert.NotContains(t, out, string(models.EventCardAdded))

	out, err = executeRoot(t, "--no-color", "--seed", seed, "journal", "--container", "Rare Stash")
	require.NoError(t, err)
	assert.Contains(t, out, "Journal (2 entries)")
	assert.Contains(t, out, "Gyarados")

	_, err = executeRoot(t, "--no-color", "--seed", seed, "journal", "--container", "Missing")
	assert.ErrorIs(t, err, inventory.ErrUnknownContainer)
}

// A failing command must still release the journal database, otherwise the
// next session on the same DSN sees the previous session's rows.
func TestRunClosesJournalAfterFailure(t *testing.T) {
	seed := filepath.Join("testdata", "seed.toml")

	_, err := executeRoot(t, "--no-color", "--seed", seed, "run", filepath.Join("testdata", "script.toml"))
	require.ErrorIs(t, err, ErrScriptFailed)

	_, err = executeRoot(t, "--no-color", "--seed", filepath.Join("testdata", "missing.toml"), "stats")
	require.Error(t, err)

	out, err := executeRoot(t, "--no-color", "--seed", seed, "journal")
	require.NoError(t, err)
	assert.Contains(t, out, "Journal (15 entries)")
}

func TestRootHistoryShowsLatest(t *testing.T) {
	out, err := executeRoot(t, "--no-color", "--seed", filepath.Join("testdata", "seed.toml"), "history")
	require.NoError(t, err)
	assert.Contains(t, out, "Snapshots (1)")
	assert.Contains(t, out, "final, total $")
}

func TestRootMetrics(t *testing.T) {
	out, err := executeRoot(t, "--no-color", "--seed", filepath.Join("testdata", "seed.toml"), "metrics")
	require.NoError(t, err)
	assert.Contains(t, out, "tcg_ledger_events_total")
}
