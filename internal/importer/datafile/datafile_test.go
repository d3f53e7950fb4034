package datafile_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/importer/datafile"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

func TestParser_Parse(t *testing.T) {
	data := `{
    "sales_records": [
        {"product_name": "Widget", "sale_date": "2024-01-02", "unit_price": 10.5, "quantity": 2.0, "total_sale": 21.0}
    ],
    "purchase_return_records": [
        {"supplier_name": "Acme", "product_name": "Widget", "return_date": "2024-01-04", "unit_price": "4", "quantity": "3", "total_return": "12"}
    ]
}`

	entries, err := datafile.NewParser().Parse(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, ledger.Entry{
		Kind: ledger.KindSale, ProductName: "Widget", Date: "2024-01-02", UnitPrice: "10.5", Quantity: "2",
	}, entries[0])
	assert.Equal(t, ledger.KindPurchaseReturn, entries[1].Kind)
	assert.Equal(t, "Acme", entries[1].SupplierName)
}

func TestParser_Invalid(t *testing.T) {
	_, err := datafile.NewParser().Parse(strings.NewReader("[1, 2]"))
	assert.Error(t, err)
}
