package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Observer is notified of ledger activity, typically to export metrics.
type Observer interface {
	RecordAdded(kind Kind)
	SnapshotSaved(took time.Duration, err error)
}

type noopObserver struct{}

func (noopObserver) RecordAdded(Kind)                   {}
func (noopObserver) SnapshotSaved(time.Duration, error) {}

type Option func(*Service)

// WithObserver reports record and snapshot activity to o.
func WithObserver(o Observer) Option {
	return func(s *Service) { s.observer = o }
}

// Service is the concurrency-safe entry point to a Book. Mutations take the
// writer lock, run against a copy of the book and only replace the live book
// once the repository accepted the new snapshot. Queries share a read lock.
type Service struct {
	repo     Repository
	observer Observer

	mu          sync.RWMutex
	book        *Book
	fingerprint uint64
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		observer: noopObserver{},
		book:     NewBook(nil),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.fingerprint = s.book.Fingerprint()

	return s
}

// Load replaces the in-memory book with the stored snapshot. Records stored
// without an id get one, and the snapshot is written back once so the ids
// stay stable across restarts.
func (s *Service) Load(ctx context.Context) error {
	snap, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading snapshot: %w", err)
	}

	book := NewBook(snap)

	if n := book.AssignMissingIDs(); n > 0 {
		if err := s.save(ctx, book); err != nil {
			return fmt.Errorf("saving assigned ids: %w", err)
		}

		slog.Info("assigned ids to stored records", "count", n)
	}

	s.mu.Lock()
	s.book = book
	s.fingerprint = book.Fingerprint()
	s.mu.Unlock()

	slog.Info("ledger loaded",
		"sales", book.Len(KindSale),
		"purchases", book.Len(KindPurchase),
		"sale_returns", book.Len(KindSaleReturn),
		"purchase_returns", book.Len(KindPurchaseReturn),
	)

	return nil
}

func (s *Service) save(ctx context.Context, b *Book) error {
	start := time.Now()
	err := s.repo.Save(ctx, b.Snapshot())
	s.observer.SnapshotSaved(time.Since(start), err)

	return err
}

// mutate applies fn to a copy of the book, persists it and swaps it in.
func (s *Service) mutate(ctx context.Context, fn func(b *Book) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.book.Clone()
	if err := fn(next); err != nil {
		return err
	}

	if err := s.save(ctx, next); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}

	s.book = next
	s.fingerprint = next.Fingerprint()

	return nil
}

func (s *Service) RecordSale(ctx context.Context, p SaleParams) (*SaleRecord, error) {
	var rec SaleRecord

	err := s.mutate(ctx, func(b *Book) error {
		var err error
		rec, err = b.RecordSale(p)

		return err
	})
	if err != nil {
		slog.Error("adding sale record", "error", err)
		return nil, err
	}

	s.observer.RecordAdded(KindSale)
	slog.Info("added sale record", "id", rec.ID, "product", rec.ProductName, "total", rec.TotalSale)

	return &rec, nil
}

func (s *Service) RecordPurchase(ctx context.Context, p PurchaseParams) (*PurchaseRecord, error) {
	var rec PurchaseRecord

	err := s.mutate(ctx, func(b *Book) error {
		var err error
		rec, err = b.RecordPurchase(p)

		return err
	})
	if err != nil {
		slog.Error("adding purchase record", "error", err)
		return nil, err
	}

	s.observer.RecordAdded(KindPurchase)
	slog.Info("added purchase record", "id", rec.ID, "supplier", rec.SupplierName, "total", rec.TotalPurchase)

	return &rec, nil
}

func (s *Service) RecordSaleReturn(ctx context.Context, p SaleReturnParams) (*SaleReturnRecord, error) {
	var rec SaleReturnRecord

	err := s.mutate(ctx, func(b *Book) error {
		var err error
		rec, err = b.RecordSaleReturn(p)

		return err
	})
	if err != nil {
		slog.Error("adding sale return record", "error", err)
		return nil, err
	}

	s.observer.RecordAdded(KindSaleReturn)
	slog.Info("added sale return record", "id", rec.ID, "product", rec.ProductName, "refund", rec.RefundAmount)

	return &rec, nil
}

func (s *Service) RecordPurchaseReturn(ctx context.Context, p PurchaseReturnParams) (*PurchaseReturnRecord, error) {
	var rec PurchaseReturnRecord

	err := s.mutate(ctx, func(b *Book) error {
		var err error
		rec, err = b.RecordPurchaseReturn(p)

		return err
	})
	if err != nil {
		slog.Error("adding purchase return record", "error", err)
		return nil, err
	}

	s.observer.RecordAdded(KindPurchaseReturn)
	slog.Info("added purchase return record", "id", rec.ID, "supplier", rec.SupplierName, "total", rec.TotalReturn)

	return &rec, nil
}

// ImportBatch records all entries or none of them, with a single save.
func (s *Service) ImportBatch(ctx context.Context, entries []Entry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	err := s.mutate(ctx, func(b *Book) error {
		for i, e := range entries {
			if err := b.Record(e); err != nil {
				return fmt.Errorf("entry %d: %w", i+1, err)
			}
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	for _, e := range entries {
		s.observer.RecordAdded(e.Kind)
	}

	slog.Info("imported records", "count", len(entries))

	return len(entries), nil
}

func (s *Service) SearchSales(query string) []SaleRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.book.SearchSales(query)
}

func (s *Service) SearchPurchases(query string) []PurchaseRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.book.SearchPurchases(query)
}

func (s *Service) SaleReturns() []SaleReturnRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.book.SaleReturns()
}

func (s *Service) PurchaseReturns() []PurchaseReturnRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.book.PurchaseReturns()
}

// Sale resolves ref as a 0-based index or a record id.
func (s *Service) Sale(ref string) (int, *SaleRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, rec, err := s.book.SaleByRef(ref)
	if err != nil {
		return 0, nil, err
	}

	return i, &rec, nil
}

// Profit computes the profit for raw operating expenses. When they do not
// parse, the result is computed with zero expenses and returned together
// with an ErrInvalidInput error.
func (s *Service) Profit(operatingExpenses string) (ProfitResult, error) {
	expenses, parseErr := ParseProfitInput(operatingExpenses)

	s.mu.RLock()
	r := s.book.Profit(expenses)
	s.mu.RUnlock()

	slog.Debug("profit calculated", "net_profit", r.NetProfit, "invalid_input", parseErr != nil)

	return r, parseErr
}

// CashFlow is Profit's counterpart for the cash-flow statement.
func (s *Service) CashFlow(openingBalance, additionalOutflow string) (CashFlowResult, error) {
	opening, outflow, parseErr := ParseCashFlowInput(openingBalance, additionalOutflow)

	s.mu.RLock()
	r := s.book.CashFlow(opening, outflow)
	s.mu.RUnlock()

	slog.Debug("cash flow calculated", "closing_balance", r.ClosingBalance, "invalid_input", parseErr != nil)

	return r, parseErr
}

func (s *Service) CashFlowReport() CashFlowReport {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.book.CashFlowReport()
}

func (s *Service) Inventory() map[string]InventoryRow {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.book.Inventory()
}

func (s *Service) SupplierLedgers() map[string]LedgerRow {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.book.SupplierLedgers()
}

func (s *Service) SupplierLedger(name string) (*LedgerRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, err := s.book.SupplierLedger(name)
	if err != nil {
		return nil, err
	}

	return &row, nil
}

// Fingerprint identifies the current state; it changes with every mutation.
func (s *Service) Fingerprint() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.fingerprint
}
