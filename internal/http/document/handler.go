package document

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tally/internal/document"
	"github.com/MrJamesThe3rd/tally/internal/http/respond"
)

type Handler struct {
	svc    *document.Service
	layout document.Layout
}

// NewHandler serves PDFs drawn with layout unless a request asks for another.
func NewHandler(svc *document.Service, layout document.Layout) *Handler {
	return &Handler{svc: svc, layout: layout}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/invoices/{file}", h.invoice)
	r.Get("/supplier-ledger.pdf", h.supplierLedgers)
	r.Get("/supplier-ledger/{file}", h.supplierLedger)
}

func (h *Handler) layoutFor(r *http.Request) (document.Layout, error) {
	raw := r.URL.Query().Get("layout")
	if raw == "" {
		return h.layout, nil
	}

	return document.ParseLayout(raw)
}

// pdfName strips the .pdf extension from the last path segment.
func pdfName(r *http.Request) (string, bool) {
	return strings.CutSuffix(chi.URLParam(r, "file"), ".pdf")
}

func (h *Handler) invoice(w http.ResponseWriter, r *http.Request) {
	ref, ok := pdfName(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	h.serve(w, r, func(layout document.Layout) (*document.Document, error) {
		return h.svc.Invoice(r.Context(), ref, layout)
	})
}

func (h *Handler) supplierLedgers(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(layout document.Layout) (*document.Document, error) {
		return h.svc.SupplierLedgers(r.Context(), layout)
	})
}

func (h *Handler) supplierLedger(w http.ResponseWriter, r *http.Request) {
	name, ok := pdfName(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	h.serve(w, r, func(layout document.Layout) (*document.Document, error) {
		return h.svc.SupplierLedger(r.Context(), name, layout)
	})
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request, build func(document.Layout) (*document.Document, error)) {
	layout, err := h.layoutFor(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	doc, err := build(layout)
	if err != nil {
		respond.Error(w, err)
		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Content)))
	w.WriteHeader(http.StatusOK)

	_, _ = w.Write(doc.Content)
}
