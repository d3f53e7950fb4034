package ledger

import "context"

// Snapshot is the persisted form of a Book: four named record lists.
// Stores written by older versions may lack any of the lists.
type Snapshot struct {
	SalesRecords          []SaleRecord           `json:"sales_records"`
	PurchaseRecords       []PurchaseRecord       `json:"purchase_records"`
	SaleReturnRecords     []SaleReturnRecord     `json:"sale_return_records"`
	PurchaseReturnRecords []PurchaseReturnRecord `json:"purchase_return_records"`
}

// Normalize replaces missing lists with empty ones so they persist as [].
func (s *Snapshot) Normalize() {
	if s.SalesRecords == nil {
		s.SalesRecords = []SaleRecord{}
	}

	if s.PurchaseRecords == nil {
		s.PurchaseRecords = []PurchaseRecord{}
	}

	if s.SaleReturnRecords == nil {
		s.SaleReturnRecords = []SaleReturnRecord{}
	}

	if s.PurchaseReturnRecords == nil {
		s.PurchaseReturnRecords = []PurchaseReturnRecord{}
	}
}

//go:generate mockgen -source=snapshot.go -destination=repository_mock.go -package=ledger
type Repository interface {
	// Load returns the stored snapshot, or an empty one if nothing was
	// stored yet.
	Load(ctx context.Context) (*Snapshot, error)
	// Save replaces the stored snapshot with snap as one atomic write.
	Save(ctx context.Context, snap *Snapshot) error
}
