package view

import (
	"context"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/document"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
	"github.com/MrJamesThe3rd/tally/internal/ledger/store"
)

func newLedger(t *testing.T) *ledger.Service {
	t.Helper()

	ctx := context.Background()

	svc := ledger.NewService(store.NewFile(filepath.Join(t.TempDir(), "data.json")))
	require.NoError(t, svc.Load(ctx))

	_, err := svc.ImportBatch(ctx, []ledger.Entry{
		{Kind: ledger.KindPurchase, SupplierName: "Acme", ProductName: "Widget", Date: "2024-01-10", UnitPrice: "5", Quantity: "10"},
		{Kind: ledger.KindSale, ProductName: "Widget", Date: "2024-01-15", UnitPrice: "12", Quantity: "3"},
		{Kind: ledger.KindSale, ProductName: "Gadget", Date: "2024-01-16", UnitPrice: "7", Quantity: "1"},
		{Kind: ledger.KindPurchaseReturn, SupplierName: "Acme", ProductName: "Widget", Date: "2024-01-17", UnitPrice: "5", Quantity: "2"},
	})
	require.NoError(t, err)

	return svc
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}

	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestRecordModel_Save(t *testing.T) {
	type testCase struct {
		name       string
		fields     recordFields
		wantErr    error
		wantStatus string
	}

	tests := []testCase{
		{
			name:       "Sale",
			fields:     recordFields{kind: ledger.KindSale, product: "Widget", date: "2024-02-01", price: "2.5", quantity: "4"},
			wantStatus: "Sale of Widget recorded, total $10.00.",
		},
		{
			name:       "Purchase return keeps supplier",
			fields:     recordFields{kind: ledger.KindPurchaseReturn, supplier: "Acme", product: "Widget", date: "2024-02-01", price: "5", quantity: "1"},
			wantStatus: "Purchase return of Widget recorded, credit $5.00.",
		},
		{
			name:    "Invalid quantity",
			fields:  recordFields{kind: ledger.KindSale, product: "Widget", price: "1", quantity: "many"},
			wantErr: ledger.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewRecordModel(newLedger(t), "USD")
			*m.fields = tt.fields

			msg, ok := m.saveCmd()().(recordSavedMsg)
			require.True(t, ok)

			if tt.wantErr != nil {
				assert.ErrorIs(t, msg.err, tt.wantErr)
				return
			}

			require.NoError(t, msg.err)
			assert.Equal(t, tt.wantStatus, msg.status)

			next, _ := m.Update(msg)
			rm := next.(RecordModel)
			assert.Equal(t, tt.fields.kind, rm.fields.kind)
			assert.Empty(t, rm.fields.product)
		})
	}
}

func TestRecordFields_EntryDropsSupplierForSales(t *testing.T) {
	f := recordFields{kind: ledger.KindSale, supplier: "Acme", product: "Widget"}
	assert.Empty(t, f.entry().SupplierName)

	f.kind = ledger.KindPurchase
	assert.Equal(t, "Acme", f.entry().SupplierName)
}

func TestListModel_TabsAndSearch(t *testing.T) {
	m := NewListModel(newLedger(t), "USD")
	assert.Len(t, m.table.Rows(), 2)

	next, _ := m.Update(key("/"))
	m = next.(ListModel)
	require.True(t, m.searching)

	for _, r := range "gadg" {
		next, _ = m.Update(key(string(r)))
		m = next.(ListModel)
	}

	next, _ = m.Update(key("enter"))
	m = next.(ListModel)
	require.Len(t, m.table.Rows(), 1)
	assert.Equal(t, "Gadget", m.table.Rows()[0][1])

	next, _ = m.Update(key("tab"))
	m = next.(ListModel)
	assert.Equal(t, listTabPurchases, m.tab)
	assert.Empty(t, m.table.Rows())

	next, _ = m.Update(key("tab"))
	m = next.(ListModel)
	next, _ = m.Update(key("tab"))
	m = next.(ListModel)
	assert.Equal(t, listTabPurchaseReturns, m.tab)
	assert.Len(t, m.table.Rows(), 1)

	_, cmd := m.Update(key("esc"))
	require.NotNil(t, cmd)
	assert.Equal(t, BackMsg{}, cmd())
}

func TestReportModel_Tabs(t *testing.T) {
	l := newLedger(t)
	m := NewReportModel(l, document.NewService(l, document.NewPDF("USD", "")), "USD", document.LayoutText)

	rows := m.table.Rows()
	require.Len(t, rows, 9)
	// 43 sales - 40 net purchases
	assert.Equal(t, []string{"Net profit", "$3.00"}, []string(rows[8]))

	m.inputs.expenses = "oops"
	m.refresh()
	assert.Contains(t, m.warning, "read as 0")

	next, _ := m.Update(key("tab"))
	m = next.(ReportModel)
	assert.Equal(t, reportTabCashFlow, m.tab)
	assert.Len(t, m.table.Rows(), 5)

	for range 4 {
		next, _ = m.Update(key("tab"))
		m = next.(ReportModel)
	}

	require.Equal(t, reportTabSuppliers, m.tab)
	require.Len(t, m.table.Rows(), 1)
	assert.Equal(t, "Acme", m.table.Rows()[0][0])

	next, _ = m.Update(key("enter"))
	m = next.(ReportModel)
	assert.Equal(t, "Acme", m.supplier)
	// two entries and the net row
	assert.Len(t, m.table.Rows(), 3)

	next, _ = m.Update(key("esc"))
	m = next.(ReportModel)
	assert.Empty(t, m.supplier)
}

func TestInvoiceModel_Preview(t *testing.T) {
	l := newLedger(t)

	md, err := document.NewMarkdown("USD")
	require.NoError(t, err)

	m := NewInvoiceModel(l, document.NewService(l, document.NewPDF("USD", "")), md, "USD", document.LayoutText)
	require.Len(t, m.table.Rows(), 2)

	next, _ := m.Update(key("enter"))
	m = next.(InvoiceModel)

	require.NoError(t, m.err)
	assert.Contains(t, m.preview, "Invoice 0")
}
