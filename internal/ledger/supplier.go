package ledger

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func newLedgerRow(supplier string) *LedgerRow {
	return &LedgerRow{
		Supplier:        supplier,
		Purchases:       []PurchaseRecord{},
		PurchaseReturns: []PurchaseReturnRecord{},
	}
}

func (r *LedgerRow) total() {
	r.TotalPurchase = decimal.Zero
	for _, rec := range r.Purchases {
		r.TotalPurchase = r.TotalPurchase.Add(rec.TotalPurchase)
	}

	r.TotalReturn = decimal.Zero
	for _, rec := range r.PurchaseReturns {
		r.TotalReturn = r.TotalReturn.Add(rec.TotalReturn)
	}

	r.Net = r.TotalPurchase.Sub(r.TotalReturn)
}

// SupplierLedgers groups purchases and purchase returns by trimmed supplier
// name. Grouping is case-sensitive: "Acme" and "acme" are separate rows,
// unlike the lookup done by SupplierLedger.
func (b *Book) SupplierLedgers() map[string]LedgerRow {
	rows := make(map[string]*LedgerRow)

	row := func(supplier string) *LedgerRow {
		r, ok := rows[supplier]
		if !ok {
			r = newLedgerRow(supplier)
			rows[supplier] = r
		}

		return r
	}

	for _, rec := range b.purchases {
		if supplier := strings.TrimSpace(rec.SupplierName); supplier != "" {
			r := row(supplier)
			r.Purchases = append(r.Purchases, rec)
		}
	}

	for _, rec := range b.purchaseReturns {
		if supplier := strings.TrimSpace(rec.SupplierName); supplier != "" {
			r := row(supplier)
			r.PurchaseReturns = append(r.PurchaseReturns, rec)
		}
	}

	out := make(map[string]LedgerRow, len(rows))
	for supplier, r := range rows {
		r.total()
		out[supplier] = *r
	}

	return out
}

// SupplierLedger returns the ledger of one supplier, matched ignoring case
// and surrounding spaces. Entries lists the purchases and returns by date;
// if any date does not parse, they keep insertion order (purchases first).
func (b *Book) SupplierLedger(name string) (LedgerRow, error) {
	supplier := strings.TrimSpace(name)
	if supplier == "" {
		return LedgerRow{}, fmt.Errorf("supplier %q: %w", name, ErrNotFound)
	}

	r := newLedgerRow(supplier)

	for _, rec := range b.purchases {
		if strings.EqualFold(strings.TrimSpace(rec.SupplierName), supplier) {
			r.Purchases = append(r.Purchases, rec)
		}
	}

	for _, rec := range b.purchaseReturns {
		if strings.EqualFold(strings.TrimSpace(rec.SupplierName), supplier) {
			r.PurchaseReturns = append(r.PurchaseReturns, rec)
		}
	}

	if len(r.Purchases) == 0 && len(r.PurchaseReturns) == 0 {
		return LedgerRow{}, fmt.Errorf("supplier %q: %w", supplier, ErrNotFound)
	}

	r.total()
	r.Entries = chronological(r.Purchases, r.PurchaseReturns)

	return *r, nil
}

func chronological(purchases []PurchaseRecord, returns []PurchaseReturnRecord) []LedgerEntry {
	entries := make([]LedgerEntry, 0, len(purchases)+len(returns))

	for _, rec := range purchases {
		entries = append(entries, LedgerEntry{
			Kind:        KindPurchase,
			Date:        rec.PurchaseDate,
			ProductName: rec.ProductName,
			UnitPrice:   rec.UnitPrice,
			Quantity:    rec.Quantity,
			Amount:      rec.TotalPurchase,
		})
	}

	for _, rec := range returns {
		entries = append(entries, LedgerEntry{
			Kind:        KindPurchaseReturn,
			Date:        rec.ReturnDate,
			ProductName: rec.ProductName,
			UnitPrice:   rec.UnitPrice,
			Quantity:    rec.Quantity,
			Amount:      rec.TotalReturn,
		})
	}

	dates := make([]time.Time, len(entries))

	for i, e := range entries {
		t, err := parseDate(e.Date)
		if err != nil {
			return entries
		}

		dates[i] = t
	}

	idx := make([]int, len(entries))
	for i := range idx {
		idx[i] = i
	}

	slices.SortStableFunc(idx, func(a, b int) int { return dates[a].Compare(dates[b]) })

	sorted := make([]LedgerEntry, len(entries))
	for i, j := range idx {
		sorted[i] = entries[j]
	}

	return sorted
}
