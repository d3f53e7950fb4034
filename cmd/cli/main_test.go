package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

// execute runs one command line against a ledger file in dir and returns
// its exit status and standard output.
func execute(t *testing.T, dir string, args ...string) (subcommands.ExitStatus, string) {
	t.Helper()

	t.Setenv("DATA_FILE", filepath.Join(dir, "data.json"))
	t.Setenv("STORE_DRIVER", "file")
	t.Setenv("LOG_LEVEL", "error")

	var out, errOut bytes.Buffer
	stdout, stderr = &out, &errOut
	t.Cleanup(func() { stdout, stderr = os.Stdout, os.Stderr })

	fs := flag.NewFlagSet("tally", flag.ContinueOnError)
	c := subcommands.NewCommander(fs, "tally")
	register(c)
	require.NoError(t, fs.Parse(args))

	status := c.Execute(context.Background())
	t.Log(errOut.String())

	return status, out.String()
}

func TestCLI_RecordAndReport(t *testing.T) {
	*plain = true
	t.Cleanup(func() { *plain = false })

	dir := t.TempDir()

	status, out := execute(t, dir, "purchase", "-supplier", "Acme", "-product", "Widget", "-d", "2024-01-10", "-price", "5", "-qty", "10")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "| Acme |")

	status, _ = execute(t, dir, "sale", "-product", "Widget", "-d", "2024-01-15", "-price", "12", "-qty", "3")
	require.Equal(t, subcommands.ExitSuccess, status)

	status, _ = execute(t, dir, "sale", "-product", "Widget", "-d", "2024-01-15", "-price", "twelve", "-qty", "3")
	assert.Equal(t, subcommands.ExitUsageError, status)

	status, out = execute(t, dir, "sales", "-s", "widg")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "| 2024-01-15 | Widget |")

	status, out = execute(t, dir, "invoice", "0")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "# Invoice 0")

	status, _ = execute(t, dir, "invoice", "4")
	assert.Equal(t, subcommands.ExitFailure, status)

	status, out = execute(t, dir, "ledger", "acme")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "acme")
}

func TestCLI_JSON(t *testing.T) {
	*asJSON = true
	t.Cleanup(func() { *asJSON = false })

	dir := t.TempDir()

	status, _ := execute(t, dir, "sale", "-product", "Widget", "-d", "2024-01-15", "-price", "12", "-qty", "3")
	require.Equal(t, subcommands.ExitSuccess, status)

	status, out := execute(t, dir, "profit", "-expenses", "6")
	require.Equal(t, subcommands.ExitSuccess, status)

	var profit ledger.ProfitResult
	require.NoError(t, json.Unmarshal([]byte(out), &profit))
	assert.Equal(t, "30", profit.NetProfit.String())

	status, out = execute(t, dir, "cashflow", "-opening", "x")
	require.Equal(t, subcommands.ExitSuccess, status)

	var flow ledger.CashFlowResult
	require.NoError(t, json.Unmarshal([]byte(out), &flow))
	assert.Equal(t, "36", flow.ClosingBalance.String())
}

func TestCLI_ImportAndPDF(t *testing.T) {
	*plain = true
	t.Cleanup(func() { *plain = false })

	dir := t.TempDir()
	csv := filepath.Join(dir, "purchases.csv")
	require.NoError(t, os.WriteFile(csv, []byte(
		"supplier_name,product_name,purchase_date,unit_price,quantity\nAcme,Widget,2024-01-10,5,10\nAcme,Gadget,2024-01-11,2,4\n"), 0o600))

	status, out := execute(t, dir, "import", csv)
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "Imported 2 records")

	pdf := filepath.Join(dir, "ledger.pdf")

	status, _ = execute(t, dir, "ledger", "-o", pdf, "-layout", "table", "Acme")
	require.Equal(t, subcommands.ExitSuccess, status)

	content, err := os.ReadFile(pdf)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-", string(content[:5]))

	status, _ = execute(t, dir, "ledger", "-o", pdf, "-layout", "poster")
	assert.Equal(t, subcommands.ExitUsageError, status)
}
