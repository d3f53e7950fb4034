// Package store persists ledger snapshots. Every implementation writes the
// whole snapshot at once: a reader sees either the previous or the new state.
package store

import (
	"encoding/json"
	"fmt"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

// Bucket names double as the top-level keys of the JSON file format.
const (
	bucketSales           = "sales_records"
	bucketPurchases       = "purchase_records"
	bucketSaleReturns     = "sale_return_records"
	bucketPurchaseReturns = "purchase_return_records"
)

var buckets = []string{bucketSales, bucketPurchases, bucketSaleReturns, bucketPurchaseReturns}

// target returns the snapshot field a bucket decodes into.
func target(snap *ledger.Snapshot, bucket string) (any, bool) {
	switch bucket {
	case bucketSales:
		return &snap.SalesRecords, true
	case bucketPurchases:
		return &snap.PurchaseRecords, true
	case bucketSaleReturns:
		return &snap.SaleReturnRecords, true
	case bucketPurchaseReturns:
		return &snap.PurchaseReturnRecords, true
	}

	return nil, false
}

func decode(payload []byte, dst any) error {
	return json.Unmarshal(payload, dst)
}

func encodeBucket(snap *ledger.Snapshot, bucket string) ([]byte, error) {
	var (
		data []byte
		err  error
	)

	switch bucket {
	case bucketSales:
		data, err = json.Marshal(snap.SalesRecords)
	case bucketPurchases:
		data, err = json.Marshal(snap.PurchaseRecords)
	case bucketSaleReturns:
		data, err = json.Marshal(snap.SaleReturnRecords)
	case bucketPurchaseReturns:
		data, err = json.Marshal(snap.PurchaseReturnRecords)
	default:
		return nil, fmt.Errorf("unknown bucket %q", bucket)
	}

	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", bucket, err)
	}

	return data, nil
}
