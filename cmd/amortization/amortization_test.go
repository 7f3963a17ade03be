package amortization_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parcelas/cmd/amortization"
	"parcelas/cmd/root"
	"parcelas/internal/config"
	"parcelas/internal/container"
	"parcelas/internal/ledger"
	"parcelas/internal/logging"
	"parcelas/internal/models"
)

func setup(t *testing.T) (*ledger.Store, models.Purchase) {
	t.Helper()
	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Storage.Backend = "memory"
	cfg.Storage.Key = models.StorageKeyCurrent
	cfg.Display.Currency = "BRL"
	cfg.Display.DateFormat = "DD/MM/YYYY"

	n := 0
	c, err := container.NewContainer(cfg,
		container.WithLogger(logging.NewMockLogger()),
		container.WithLedgerOptions(ledger.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		})))
	require.NoError(t, err)
	root.AppContainer = c
	t.Cleanup(func() { root.AppContainer = nil })

	p, err := c.GetLedger().CreatePurchase(models.PurchaseFields{
		Name:         "Notebook",
		TotalValue:   decimal.NewFromInt(1200),
		Installments: 12,
		StartDate:    models.MustParseDate("2024-01-10"),
	})
	require.NoError(t, err)
	return c.GetLedger(), p
}

func run(args ...string) (string, error) {
	cmd := amortization.NewCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAmortizationCommand_Metadata(t *testing.T) {
	assert.Equal(t, "amortization", amortization.Cmd.Use)
	assert.Contains(t, amortization.Cmd.Long, "out-of-schedule")

	add, _, err := amortization.NewCmd().Find([]string{"add"})
	require.NoError(t, err)
	assert.Equal(t, "a", add.Flags().Lookup("amount").Shorthand)
	assert.Equal(t, "t", add.Flags().Lookup("date").Shorthand)
}

func TestAddCommand_Scenario(t *testing.T) {
	l, p := setup(t)

	out, err := run("add", p.ID, "--amount", "200", "--date", "2024-02-01")
	require.NoError(t, err)
	assert.Contains(t, out, "Amortization added: id-2 (R$ 200,00 on 01/02/2024)")
	assert.Contains(t, out, "Remaining balance of Notebook: R$ 1.000,00")

	out, err = run("add", p.ID, "-a", "1.100,00", "-t", "01/03/2024")
	require.NoError(t, err)
	assert.Contains(t, out, "Remaining balance of Notebook: R$ 0,00")

	stored, err := l.Purchase(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "1300", stored.TotalAmortized().String())
	assert.Equal(t, "108.33", stored.ProgressPercentage().StringFixed(2))
}

func TestAddCommand_DefaultsDateToToday(t *testing.T) {
	l, p := setup(t)

	_, err := run("add", p.ID, "-a", "10")
	require.NoError(t, err)

	stored, _ := l.Purchase(p.ID)
	require.Len(t, stored.Amortizations, 1)
	assert.Equal(t, models.Today(), stored.Amortizations[0].Date)
}

func TestAddCommand_Errors(t *testing.T) {
	l, p := setup(t)

	_, err := run("add", "missing", "-a", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "purchase 'missing' not found", "unknown purchase is reported before the amount")

	_, err = run("add", p.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Amount must be greater than zero")

	_, err = run("add", p.ID, "-a", "-5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Amount must be greater than zero")

	_, err = run("add", p.ID, "-a", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid amount")

	stored, _ := l.Purchase(p.ID)
	assert.Empty(t, stored.Amortizations)
}

func TestEditCommand(t *testing.T) {
	l, p := setup(t)
	a, err := l.AddAmortization(p.ID, decimal.NewFromInt(200), models.MustParseDate("2024-02-01"))
	require.NoError(t, err)

	out, err := run("edit", p.ID, a.ID, "--amount", "250")
	require.NoError(t, err)
	assert.Contains(t, out, "Amortization updated: id-2 (R$ 250,00 on 01/02/2024)")

	out, err = run("edit", p.ID, a.ID, "--date", "2024-02-05")
	require.NoError(t, err)
	assert.Contains(t, out, "(R$ 250,00 on 05/02/2024)")

	stored, err := l.Amortization(p.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "250", stored.Amount.String())
	assert.Equal(t, "2024-02-05", stored.Date.String())
}

func TestEditCommand_Errors(t *testing.T) {
	l, p := setup(t)
	a, err := l.AddAmortization(p.ID, decimal.NewFromInt(200), models.Today())
	require.NoError(t, err)

	_, err = run("edit", p.ID, "missing", "-a", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amortization 'missing' not found")

	_, err = run("edit", p.ID, a.ID, "-a", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Amount must be greater than zero")

	_, err = run("edit", p.ID)
	assert.Error(t, err)
}
