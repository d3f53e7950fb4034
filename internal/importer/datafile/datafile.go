// Package datafile reads the records of another ledger data file so they
// can be merged into the current one.
package datafile

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse returns the records of a data file as entries, sales first, then
// purchases, sale returns and purchase returns. Totals are recomputed on
// import, ids are not carried over.
func (p *Parser) Parse(r io.Reader) ([]ledger.Entry, error) {
	var snap ledger.Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode data file: %w", err)
	}

	entries := make([]ledger.Entry, 0,
		len(snap.SalesRecords)+len(snap.PurchaseRecords)+len(snap.SaleReturnRecords)+len(snap.PurchaseReturnRecords))

	for _, rec := range snap.SalesRecords {
		entries = append(entries, ledger.Entry{
			Kind:        ledger.KindSale,
			ProductName: rec.ProductName,
			Date:        rec.SaleDate,
			UnitPrice:   rec.UnitPrice.String(),
			Quantity:    rec.Quantity.String(),
		})
	}

	for _, rec := range snap.PurchaseRecords {
		entries = append(entries, ledger.Entry{
			Kind:         ledger.KindPurchase,
			SupplierName: rec.SupplierName,
			ProductName:  rec.ProductName,
			Date:         rec.PurchaseDate,
			UnitPrice:    rec.UnitPrice.String(),
			Quantity:     rec.Quantity.String(),
		})
	}

	for _, rec := range snap.SaleReturnRecords {
		entries = append(entries, ledger.Entry{
			Kind:        ledger.KindSaleReturn,
			ProductName: rec.ProductName,
			Date:        rec.ReturnDate,
			UnitPrice:   rec.UnitPrice.String(),
			Quantity:    rec.Quantity.String(),
		})
	}

	for _, rec := range snap.PurchaseReturnRecords {
		entries = append(entries, ledger.Entry{
			Kind:         ledger.KindPurchaseReturn,
			SupplierName: rec.SupplierName,
			ProductName:  rec.ProductName,
			Date:         rec.ReturnDate,
			UnitPrice:    rec.UnitPrice.String(),
			Quantity:     rec.Quantity.String(),
		})
	}

	return entries, nil
}
