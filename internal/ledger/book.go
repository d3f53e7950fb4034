package ledger

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/amount"
)

// Book owns the four record collections. Records are only ever appended;
// the position of a sale doubles as its legacy invoice index.
//
// A Book is not safe for concurrent use. Service serialises access.
type Book struct {
	sales           []SaleRecord
	purchases       []PurchaseRecord
	saleReturns     []SaleReturnRecord
	purchaseReturns []PurchaseReturnRecord

	newID func() uuid.UUID
}

// NewBook returns a Book seeded with the records of snap. A nil snapshot
// yields an empty book.
func NewBook(snap *Snapshot) *Book {
	b := &Book{newID: uuid.New}
	if snap == nil {
		return b
	}

	b.sales = slices.Clone(snap.SalesRecords)
	b.purchases = slices.Clone(snap.PurchaseRecords)
	b.saleReturns = slices.Clone(snap.SaleReturnRecords)
	b.purchaseReturns = slices.Clone(snap.PurchaseReturnRecords)

	return b
}

// Clone returns an independent copy of b.
func (b *Book) Clone() *Book {
	return &Book{
		sales:           slices.Clone(b.sales),
		purchases:       slices.Clone(b.purchases),
		saleReturns:     slices.Clone(b.saleReturns),
		purchaseReturns: slices.Clone(b.purchaseReturns),
		newID:           b.newID,
	}
}

// Snapshot copies the collections into their persisted form.
func (b *Book) Snapshot() *Snapshot {
	snap := &Snapshot{
		SalesRecords:          slices.Clone(b.sales),
		PurchaseRecords:       slices.Clone(b.purchases),
		SaleReturnRecords:     slices.Clone(b.saleReturns),
		PurchaseReturnRecords: slices.Clone(b.purchaseReturns),
	}
	snap.Normalize()

	return snap
}

// Fingerprint identifies the current contents of the book. Two books with
// the same records in the same order share a fingerprint.
func (b *Book) Fingerprint() uint64 {
	h := fnv.New64a()
	// Records only hold strings, uuids and decimals, marshalling cannot fail.
	_ = json.NewEncoder(h).Encode(b.Snapshot())

	return h.Sum64()
}

// Len reports the number of records of the given kind.
func (b *Book) Len(kind Kind) int {
	switch kind {
	case KindSale:
		return len(b.sales)
	case KindPurchase:
		return len(b.purchases)
	case KindSaleReturn:
		return len(b.saleReturns)
	case KindPurchaseReturn:
		return len(b.purchaseReturns)
	}

	return 0
}

// AssignMissingIDs gives every record without an id a fresh one and reports
// how many were assigned. Stores written before records carried ids load
// with zero ids.
func (b *Book) AssignMissingIDs() int {
	n := 0

	assign := func(id *uuid.UUID) {
		if *id == uuid.Nil {
			*id = b.newID()
			n++
		}
	}

	for i := range b.sales {
		assign(&b.sales[i].ID)
	}

	for i := range b.purchases {
		assign(&b.purchases[i].ID)
	}

	for i := range b.saleReturns {
		assign(&b.saleReturns[i].ID)
	}

	for i := range b.purchaseReturns {
		assign(&b.purchaseReturns[i].ID)
	}

	return n
}

// priced parses the unit price and quantity of a new record and returns
// them with their product.
func priced(unitPrice, quantity string) (price, qty, total decimal.Decimal, err error) {
	price, err = amount.Parse(unitPrice)
	if err != nil {
		return price, qty, total, fmt.Errorf("unit price %q: %w", unitPrice, ErrInvalidInput)
	}

	qty, err = amount.Parse(quantity)
	if err != nil {
		return price, qty, total, fmt.Errorf("quantity %q: %w", quantity, ErrInvalidInput)
	}

	return price, qty, price.Mul(qty), nil
}

// RecordSale appends a sale. Nothing is appended when the price or quantity
// does not parse.
func (b *Book) RecordSale(p SaleParams) (SaleRecord, error) {
	price, qty, total, err := priced(p.UnitPrice, p.Quantity)
	if err != nil {
		return SaleRecord{}, err
	}

	rec := SaleRecord{
		ID:          b.newID(),
		ProductName: strings.TrimSpace(p.ProductName),
		SaleDate:    p.Date,
		UnitPrice:   price,
		Quantity:    qty,
		TotalSale:   total,
	}
	b.sales = append(b.sales, rec)

	return rec, nil
}

// RecordPurchase appends a purchase.
func (b *Book) RecordPurchase(p PurchaseParams) (PurchaseRecord, error) {
	price, qty, total, err := priced(p.UnitPrice, p.Quantity)
	if err != nil {
		return PurchaseRecord{}, err
	}

	rec := PurchaseRecord{
		ID:            b.newID(),
		SupplierName:  strings.TrimSpace(p.SupplierName),
		ProductName:   strings.TrimSpace(p.ProductName),
		PurchaseDate:  p.Date,
		UnitPrice:     price,
		Quantity:      qty,
		TotalPurchase: total,
	}
	b.purchases = append(b.purchases, rec)

	return rec, nil
}

// RecordSaleReturn appends a customer return.
func (b *Book) RecordSaleReturn(p SaleReturnParams) (SaleReturnRecord, error) {
	price, qty, total, err := priced(p.UnitPrice, p.Quantity)
	if err != nil {
		return SaleReturnRecord{}, err
	}

	rec := SaleReturnRecord{
		ID:           b.newID(),
		ProductName:  strings.TrimSpace(p.ProductName),
		ReturnDate:   p.Date,
		UnitPrice:    price,
		Quantity:     qty,
		RefundAmount: total,
	}
	b.saleReturns = append(b.saleReturns, rec)

	return rec, nil
}

// RecordPurchaseReturn appends a return to a supplier.
func (b *Book) RecordPurchaseReturn(p PurchaseReturnParams) (PurchaseReturnRecord, error) {
	price, qty, total, err := priced(p.UnitPrice, p.Quantity)
	if err != nil {
		return PurchaseReturnRecord{}, err
	}

	rec := PurchaseReturnRecord{
		ID:           b.newID(),
		SupplierName: strings.TrimSpace(p.SupplierName),
		ProductName:  strings.TrimSpace(p.ProductName),
		ReturnDate:   p.Date,
		UnitPrice:    price,
		Quantity:     qty,
		TotalReturn:  total,
	}
	b.purchaseReturns = append(b.purchaseReturns, rec)

	return rec, nil
}

// Record dispatches e to the matching Record method.
func (b *Book) Record(e Entry) error {
	var err error

	switch e.Kind {
	case KindSale:
		_, err = b.RecordSale(SaleParams{
			ProductName: e.ProductName, Date: e.Date, UnitPrice: e.UnitPrice, Quantity: e.Quantity,
		})
	case KindPurchase:
		_, err = b.RecordPurchase(PurchaseParams{
			SupplierName: e.SupplierName, ProductName: e.ProductName, Date: e.Date,
			UnitPrice: e.UnitPrice, Quantity: e.Quantity,
		})
	case KindSaleReturn:
		_, err = b.RecordSaleReturn(SaleReturnParams{
			ProductName: e.ProductName, Date: e.Date, UnitPrice: e.UnitPrice, Quantity: e.Quantity,
		})
	case KindPurchaseReturn:
		_, err = b.RecordPurchaseReturn(PurchaseReturnParams{
			SupplierName: e.SupplierName, ProductName: e.ProductName, Date: e.Date,
			UnitPrice: e.UnitPrice, Quantity: e.Quantity,
		})
	default:
		err = fmt.Errorf("unknown record kind %q: %w", e.Kind, ErrInvalidInput)
	}

	return err
}

// SearchSales returns the sales whose product name contains query (ignoring
// case) or whose date contains query verbatim. An empty query matches all.
func (b *Book) SearchSales(query string) []SaleRecord {
	if query == "" {
		return slices.Clone(b.sales)
	}

	lower := strings.ToLower(query)
	out := make([]SaleRecord, 0)

	for _, rec := range b.sales {
		if strings.Contains(strings.ToLower(rec.ProductName), lower) || strings.Contains(rec.SaleDate, query) {
			out = append(out, rec)
		}
	}

	return out
}

// SearchPurchases is SearchSales for purchases, additionally matching the
// supplier name.
func (b *Book) SearchPurchases(query string) []PurchaseRecord {
	if query == "" {
		return slices.Clone(b.purchases)
	}

	lower := strings.ToLower(query)
	out := make([]PurchaseRecord, 0)

	for _, rec := range b.purchases {
		if strings.Contains(strings.ToLower(rec.ProductName), lower) ||
			strings.Contains(strings.ToLower(rec.SupplierName), lower) ||
			strings.Contains(rec.PurchaseDate, query) {
			out = append(out, rec)
		}
	}

	return out
}

// SaleReturns lists all customer returns in insertion order.
func (b *Book) SaleReturns() []SaleReturnRecord {
	return slices.Clone(b.saleReturns)
}

// PurchaseReturns lists all supplier returns in insertion order.
func (b *Book) PurchaseReturns() []PurchaseReturnRecord {
	return slices.Clone(b.purchaseReturns)
}

// Sale returns the sale at position i (0-based).
func (b *Book) Sale(i int) (SaleRecord, error) {
	if i < 0 || i >= len(b.sales) {
		return SaleRecord{}, fmt.Errorf("sale %d: %w", i, ErrNotFound)
	}

	return b.sales[i], nil
}

// SaleByID returns the sale with the given id and its position.
func (b *Book) SaleByID(id uuid.UUID) (int, SaleRecord, error) {
	for i, rec := range b.sales {
		if rec.ID == id {
			return i, rec, nil
		}
	}

	return 0, SaleRecord{}, fmt.Errorf("sale %s: %w", id, ErrNotFound)
}

// SaleByRef resolves ref either as a 0-based index or as a record id.
func (b *Book) SaleByRef(ref string) (int, SaleRecord, error) {
	ref = strings.TrimSpace(ref)

	if i, err := strconv.Atoi(ref); err == nil {
		rec, err := b.Sale(i)
		return i, rec, err
	}

	id, err := uuid.Parse(ref)
	if err != nil {
		return 0, SaleRecord{}, fmt.Errorf("sale %q: %w", ref, ErrNotFound)
	}

	return b.SaleByID(id)
}
