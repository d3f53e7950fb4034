package document_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/document"
	httpdocument "github.com/MrJamesThe3rd/tally/internal/http/document"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
	"github.com/MrJamesThe3rd/tally/internal/ledger/store"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()

	ctx := context.Background()

	l := ledger.NewService(store.NewFile(filepath.Join(t.TempDir(), "data.json")))
	require.NoError(t, l.Load(ctx))

	_, err := l.ImportBatch(ctx, []ledger.Entry{
		{Kind: ledger.KindSale, ProductName: "Widget", Date: "2024-01-02", UnitPrice: "10", Quantity: "3"},
		{Kind: ledger.KindPurchase, SupplierName: "Acme Corp", ProductName: "Widget", Date: "2024-01-01", UnitPrice: "4", Quantity: "100"},
	})
	require.NoError(t, err)

	svc := document.NewService(l, document.NewPDF("USD", "Tally"))

	r := chi.NewRouter()
	httpdocument.NewHandler(svc, document.LayoutText).Routes(r)

	return r
}

func TestHandler_Documents(t *testing.T) {
	type testCase struct {
		name       string
		target     string
		wantStatus int
		wantFile   string
	}

	tests := []testCase{
		{
			name:       "Invoice by index",
			target:     "/invoices/0.pdf",
			wantStatus: http.StatusOK,
			wantFile:   "invoice_0.pdf",
		},
		{
			name:       "Invoice as table",
			target:     "/invoices/0.pdf?layout=table",
			wantStatus: http.StatusOK,
			wantFile:   "invoice_0.pdf",
		},
		{
			name:       "Unknown invoice",
			target:     "/invoices/3.pdf",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "Missing extension",
			target:     "/invoices/0",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "Unknown layout",
			target:     "/invoices/0.pdf?layout=fancy",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "All supplier ledgers",
			target:     "/supplier-ledger.pdf",
			wantStatus: http.StatusOK,
			wantFile:   "supplier_ledgers.pdf",
		},
		{
			name:       "One supplier ledger",
			target:     "/supplier-ledger/Acme%20Corp.pdf",
			wantStatus: http.StatusOK,
			wantFile:   "supplier_ledger_Acme_Corp.pdf",
		},
		{
			name:       "Unknown supplier",
			target:     "/supplier-ledger/Globex.pdf",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newRouter(t)

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			if tt.wantFile == "" {
				return
			}

			assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
			assert.Equal(t, `attachment; filename="`+tt.wantFile+`"`, rec.Header().Get("Content-Disposition"))
			assert.Equal(t, "%PDF-", rec.Body.String()[:5])
		})
	}
}
