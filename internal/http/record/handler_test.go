package record_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/http/record"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
	"github.com/MrJamesThe3rd/tally/internal/ledger/store"
)

func newRouter(t *testing.T) (http.Handler, *ledger.Service) {
	t.Helper()

	svc := ledger.NewService(store.NewFile(filepath.Join(t.TempDir(), "data.json")))
	require.NoError(t, svc.Load(context.Background()))

	r := chi.NewRouter()
	record.NewHandler(svc).Routes(r)

	return r, svc
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func TestHandler_CreateSale(t *testing.T) {
	type testCase struct {
		name       string
		body       string
		wantStatus int
		wantTotal  string
	}

	tests := []testCase{
		{
			name:       "String amounts",
			body:       `{"product_name":"Widget","sale_date":"2024-01-15","unit_price":"12.50","quantity":"2"}`,
			wantStatus: http.StatusCreated,
			wantTotal:  "25",
		},
		{
			name:       "Numeric amounts",
			body:       `{"product_name":"Widget","sale_date":"2024-01-15","unit_price":1.5,"quantity":4}`,
			wantStatus: http.StatusCreated,
			wantTotal:  "6",
		},
		{
			name:       "Invalid price",
			body:       `{"product_name":"Widget","sale_date":"2024-01-15","unit_price":"abc","quantity":"2"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Missing quantity",
			body:       `{"product_name":"Widget","sale_date":"2024-01-15","unit_price":"1"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Malformed body",
			body:       `{"product_name":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, svc := newRouter(t)

			rec := do(t, h, http.MethodPost, "/sales", tt.body)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			if tt.wantStatus != http.StatusCreated {
				assert.Empty(t, svc.SearchSales(""))
				return
			}

			var got ledger.SaleRecord
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))

			assert.NotEmpty(t, got.ID)
			assert.Equal(t, "Widget", got.ProductName)
			assert.True(t, got.TotalSale.Equal(decimal.RequireFromString(tt.wantTotal)), got.TotalSale.String())
		})
	}
}

func TestHandler_ListAndGetSales(t *testing.T) {
	h, _ := newRouter(t)

	for _, body := range []string{
		`{"product_name":"Widget","sale_date":"2024-01-15","unit_price":"1","quantity":"1"}`,
		`{"product_name":"Gadget","sale_date":"2024-01-16","unit_price":"2","quantity":"1"}`,
	} {
		require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/sales", body).Code)
	}

	rec := do(t, h, http.MethodGet, "/sales?search=gadg", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var found []ledger.SaleRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &found))
	require.Len(t, found, 1)
	assert.Equal(t, "Gadget", found[0].ProductName)

	rec = do(t, h, http.MethodGet, "/sales/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var byIndex struct {
		Index int    `json:"index"`
		ID    string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &byIndex))
	assert.Equal(t, 1, byIndex.Index)
	assert.Equal(t, found[0].ID.String(), byIndex.ID)

	rec = do(t, h, http.MethodGet, "/sales/"+found[0].ID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"index":1`)

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/sales/7", "").Code)
}

func TestHandler_Purchases(t *testing.T) {
	h, _ := newRouter(t)

	rec := do(t, h, http.MethodPost, "/purchases",
		`{"supplier_name":"Acme","product_name":"Widget","purchase_date":"2024-01-10","unit_price":"5","quantity":"10"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created ledger.PurchaseRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.True(t, created.TotalPurchase.Equal(decimal.NewFromInt(50)))

	rec = do(t, h, http.MethodGet, "/purchases?search=ACME", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var found []ledger.PurchaseRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &found))
	assert.Len(t, found, 1)
}

func TestHandler_Returns(t *testing.T) {
	h, svc := newRouter(t)

	rec := do(t, h, http.MethodPost, "/sale-returns",
		`{"product_name":"Widget","return_date":"2024-01-20","unit_price":"12.5","quantity":"1"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/purchase-returns",
		`{"supplier_name":"Acme","product_name":"Widget","return_date":"2024-01-21","unit_price":"5","quantity":"2"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/purchase-returns",
		`{"supplier_name":"Acme","product_name":"Widget","return_date":"2024-01-21","unit_price":"five","quantity":"2"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Len(t, svc.SaleReturns(), 1)
	assert.Len(t, svc.PurchaseReturns(), 1)

	rec = do(t, h, http.MethodGet, "/sale-returns", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var saleReturns []ledger.SaleReturnRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saleReturns))
	require.Len(t, saleReturns, 1)
	assert.True(t, saleReturns[0].RefundAmount.Equal(decimal.RequireFromString("12.5")))

	rec = do(t, h, http.MethodGet, "/purchase-returns", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var purchaseReturns []ledger.PurchaseReturnRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &purchaseReturns))
	require.Len(t, purchaseReturns, 1)
	assert.True(t, purchaseReturns[0].TotalReturn.Equal(decimal.NewFromInt(10)))
}
