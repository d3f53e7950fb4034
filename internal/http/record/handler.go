package record

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tally/internal/http/respond"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

type Handler struct {
	svc *ledger.Service
}

func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Route("/sales", func(r chi.Router) {
		r.Post("/", h.createSale)
		r.Get("/", h.listSales)
		r.Get("/{ref}", h.getSale)
	})

	r.Route("/purchases", func(r chi.Router) {
		r.Post("/", h.createPurchase)
		r.Get("/", h.listPurchases)
	})

	r.Route("/sale-returns", func(r chi.Router) {
		r.Post("/", h.createSaleReturn)
		r.Get("/", h.listSaleReturns)
	})

	r.Route("/purchase-returns", func(r chi.Router) {
		r.Post("/", h.createPurchaseReturn)
		r.Get("/", h.listPurchaseReturns)
	})
}

type saleResponse struct {
	Index int `json:"index"`
	ledger.SaleRecord
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return false
	}

	return true
}

func (h *Handler) createSale(w http.ResponseWriter, r *http.Request) {
	var req saleRequest
	if !decode(w, r, &req) {
		return
	}

	rec, err := h.svc.RecordSale(r.Context(), ledger.SaleParams{
		ProductName: req.ProductName,
		Date:        req.SaleDate,
		UnitPrice:   string(req.UnitPrice),
		Quantity:    string(req.Quantity),
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, rec)
}

func (h *Handler) listSales(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, h.svc.SearchSales(r.URL.Query().Get("search")))
}

func (h *Handler) getSale(w http.ResponseWriter, r *http.Request) {
	i, rec, err := h.svc.Sale(chi.URLParam(r, "ref"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, saleResponse{Index: i, SaleRecord: *rec})
}

func (h *Handler) createPurchase(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if !decode(w, r, &req) {
		return
	}

	rec, err := h.svc.RecordPurchase(r.Context(), ledger.PurchaseParams{
		SupplierName: req.SupplierName,
		ProductName:  req.ProductName,
		Date:         req.PurchaseDate,
		UnitPrice:    string(req.UnitPrice),
		Quantity:     string(req.Quantity),
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, rec)
}

func (h *Handler) listPurchases(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, h.svc.SearchPurchases(r.URL.Query().Get("search")))
}

func (h *Handler) createSaleReturn(w http.ResponseWriter, r *http.Request) {
	var req saleReturnRequest
	if !decode(w, r, &req) {
		return
	}

	rec, err := h.svc.RecordSaleReturn(r.Context(), ledger.SaleReturnParams{
		ProductName: req.ProductName,
		Date:        req.ReturnDate,
		UnitPrice:   string(req.UnitPrice),
		Quantity:    string(req.Quantity),
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, rec)
}

func (h *Handler) listSaleReturns(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, h.svc.SaleReturns())
}

func (h *Handler) createPurchaseReturn(w http.ResponseWriter, r *http.Request) {
	var req purchaseReturnRequest
	if !decode(w, r, &req) {
		return
	}

	rec, err := h.svc.RecordPurchaseReturn(r.Context(), ledger.PurchaseReturnParams{
		SupplierName: req.SupplierName,
		ProductName:  req.ProductName,
		Date:         req.ReturnDate,
		UnitPrice:    string(req.UnitPrice),
		Quantity:     string(req.Quantity),
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, rec)
}

func (h *Handler) listPurchaseReturns(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, h.svc.PurchaseReturns())
}
