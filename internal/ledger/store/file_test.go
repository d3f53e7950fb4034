package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
	"github.com/MrJamesThe3rd/tally/internal/ledger/store"
)

func seeded(t *testing.T) *ledger.Snapshot {
	t.Helper()

	book := ledger.NewBook(nil)

	entries := []ledger.Entry{
		{Kind: ledger.KindSale, ProductName: "Widget", Date: "2024-01-02", UnitPrice: "10", Quantity: "3"},
		{Kind: ledger.KindPurchase, SupplierName: "Acme", ProductName: "Widget", Date: "2024-01-01", UnitPrice: "4.25", Quantity: "100"},
		{Kind: ledger.KindSaleReturn, ProductName: "Widget", Date: "2024-01-09", UnitPrice: "10", Quantity: "1"},
		{Kind: ledger.KindPurchaseReturn, SupplierName: "Acme", ProductName: "Widget", Date: "2024-01-04", UnitPrice: "4.25", Quantity: "2"},
	}
	for _, e := range entries {
		require.NoError(t, book.Record(e))
	}

	return book.Snapshot()
}

func TestFile_LoadMissing(t *testing.T) {
	s := store.NewFile(filepath.Join(t.TempDir(), "data.json"))

	snap, err := s.Load(context.Background())
	require.NoError(t, err)

	assert.NotNil(t, snap.SalesRecords)
	assert.Empty(t, snap.SalesRecords)
	assert.Empty(t, snap.PurchaseReturnRecords)
}

func TestFile_SaveLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "data.json")
	s := store.NewFile(path)
	want := seeded(t)

	require.NoError(t, s.Save(context.Background(), want))

	got, err := s.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, ledger.NewBook(want).Fingerprint(), ledger.NewBook(got).Fingerprint())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `    "sales_records": [`)
}

func TestFile_LoadLegacy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	legacy := `{
    "sales_records": [
        {"product_name": "Widget", "sale_date": "2024-01-02", "unit_price": 10.5, "quantity": 2.0, "total_sale": 21.0}
    ],
    "purchase_records": []
}`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o600))

	snap, err := store.NewFile(path).Load(context.Background())
	require.NoError(t, err)

	require.Len(t, snap.SalesRecords, 1)
	assert.Equal(t, "21", snap.SalesRecords[0].TotalSale.String())
	assert.NotNil(t, snap.SaleReturnRecords)
	assert.NotNil(t, snap.PurchaseReturnRecords)
}

func TestFile_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := store.NewFile(path).Load(context.Background())
	assert.Error(t, err)
}

func TestFile_SaveCancelled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.NewFile(path).Save(ctx, seeded(t))
	assert.ErrorIs(t, err, context.Canceled)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestFile_ServiceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	ctx := context.Background()

	svc := ledger.NewService(store.NewFile(path))
	require.NoError(t, svc.Load(ctx))

	rec, err := svc.RecordSale(ctx, ledger.SaleParams{ProductName: "Widget", Date: "2024-01-02", UnitPrice: "10", Quantity: "3"})
	require.NoError(t, err)

	reloaded := ledger.NewService(store.NewFile(path))
	require.NoError(t, reloaded.Load(ctx))

	_, got, err := reloaded.Sale(rec.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Widget", got.ProductName)
	assert.Equal(t, svc.Fingerprint(), reloaded.Fingerprint())
}
