package document

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/tally/internal/cache"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

const contentTypePDF = "application/pdf"

// Recorder counts served documents.
type Recorder interface {
	DocumentRendered(kind string, cached bool)
}

type noopRecorder struct{}

func (noopRecorder) DocumentRendered(string, bool) {}

type Option func(*Service)

func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithCache stores rendered PDFs in c for ttl.
func WithCache(c cache.DocumentCache, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = c
		s.ttl = ttl
	}
}

// Service renders PDFs from the live ledger. Rendered files are cached under
// the ledger fingerprint, so any new record invalidates them.
type Service struct {
	ledger   *ledger.Service
	pdf      *PDF
	cache    cache.DocumentCache
	ttl      time.Duration
	recorder Recorder
}

func NewService(l *ledger.Service, pdf *PDF, opts ...Option) *Service {
	s := &Service{
		ledger:   l,
		pdf:      pdf,
		cache:    cache.Noop{},
		recorder: noopRecorder{},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// render serves kind/key from the cache or calls draw and caches its output.
// Callers read fp before reading the ledger, so a concurrent record can only
// make the cached file newer than its key, never older.
func (s *Service) render(ctx context.Context, fp uint64, kind, key string, layout Layout, draw func(buf *bytes.Buffer) error) ([]byte, error) {
	cacheKey := fmt.Sprintf("%s:%s:%s:%x", kind, layout, key, fp)

	content, ok, err := s.cache.Get(ctx, cacheKey)
	if err != nil {
		slog.Warn("reading document cache", "key", cacheKey, "error", err)
	}

	if ok {
		s.recorder.DocumentRendered(kind, true)
		return content, nil
	}

	var buf bytes.Buffer
	if err := draw(&buf); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", kind, err)
	}

	if err := s.cache.Set(ctx, cacheKey, buf.Bytes(), s.ttl); err != nil {
		slog.Warn("writing document cache", "key", cacheKey, "error", err)
	}

	s.recorder.DocumentRendered(kind, false)
	slog.Debug("document rendered", "kind", kind, "key", key, "bytes", buf.Len())

	return buf.Bytes(), nil
}

// InvoiceFor builds the invoice of the sale ref points to, an index or an id.
func (s *Service) InvoiceFor(ref string) (Invoice, error) {
	i, sale, err := s.ledger.Sale(ref)
	if err != nil {
		return Invoice{}, err
	}

	return Invoice{
		Index:       i,
		ID:          sale.ID.String(),
		Date:        sale.SaleDate,
		ProductName: sale.ProductName,
		Quantity:    sale.Quantity,
		UnitPrice:   sale.UnitPrice,
		Total:       sale.TotalSale,
	}, nil
}

func (s *Service) Invoice(ctx context.Context, ref string, layout Layout) (*Document, error) {
	fp := s.ledger.Fingerprint()

	inv, err := s.InvoiceFor(ref)
	if err != nil {
		return nil, err
	}

	content, err := s.render(ctx, fp, "invoice", inv.ID, layout, func(buf *bytes.Buffer) error {
		return s.pdf.Invoice(buf, inv, layout)
	})
	if err != nil {
		return nil, err
	}

	return &Document{
		Filename:    fmt.Sprintf("invoice_%d.pdf", inv.Index),
		ContentType: contentTypePDF,
		Content:     content,
	}, nil
}

func (s *Service) SupplierLedgers(ctx context.Context, layout Layout) (*Document, error) {
	fp := s.ledger.Fingerprint()

	content, err := s.render(ctx, fp, "supplier_ledgers", "all", layout, func(buf *bytes.Buffer) error {
		return s.pdf.SupplierLedgers(buf, s.ledger.SupplierLedgers(), layout)
	})
	if err != nil {
		return nil, err
	}

	return &Document{
		Filename:    "supplier_ledgers.pdf",
		ContentType: contentTypePDF,
		Content:     content,
	}, nil
}

func (s *Service) SupplierLedger(ctx context.Context, name string, layout Layout) (*Document, error) {
	fp := s.ledger.Fingerprint()

	row, err := s.ledger.SupplierLedger(name)
	if err != nil {
		return nil, err
	}

	content, err := s.render(ctx, fp, "supplier_ledger", row.Supplier, layout, func(buf *bytes.Buffer) error {
		return s.pdf.SupplierLedger(buf, *row, layout)
	})
	if err != nil {
		return nil, err
	}

	return &Document{
		Filename:    "supplier_ledger_" + strings.ReplaceAll(row.Supplier, " ", "_") + ".pdf",
		ContentType: contentTypePDF,
		Content:     content,
	}, nil
}
