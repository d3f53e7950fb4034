package report

import (
	"errors"
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
	r.Get("/profit", h.profit)
	r.Get("/cash-flow", h.cashFlow)
	r.Get("/cash-flow-report", h.cashFlowReport)
	r.Get("/inventory", h.inventory)
	r.Get("/supplier-ledger", h.supplierLedgers)
	r.Get("/supplier-ledger/{name}", h.supplierLedger)
}

type profitResponse struct {
	ledger.ProfitResult
	Message string `json:"message,omitempty"`
}

type cashFlowResponse struct {
	ledger.CashFlowResult
	Message string `json:"message,omitempty"`
}

// message turns an invalid-input error into a note for the caller. The
// result is still served with the offending value read as zero.
func message(w http.ResponseWriter, err error) (string, bool) {
	if err == nil {
		return "", true
	}

	if errors.Is(err, ledger.ErrInvalidInput) {
		return err.Error(), true
	}

	respond.Error(w, err)

	return "", false
}

func (h *Handler) profit(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Profit(r.URL.Query().Get("operating_expenses"))

	msg, ok := message(w, err)
	if !ok {
		return
	}

	respond.JSON(w, http.StatusOK, profitResponse{ProfitResult: res, Message: msg})
}

func (h *Handler) cashFlow(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := h.svc.CashFlow(q.Get("opening_balance"), q.Get("additional_outflow"))

	msg, ok := message(w, err)
	if !ok {
		return
	}

	respond.JSON(w, http.StatusOK, cashFlowResponse{CashFlowResult: res, Message: msg})
}

func (h *Handler) cashFlowReport(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, h.svc.CashFlowReport())
}

func (h *Handler) inventory(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, h.svc.Inventory())
}

func (h *Handler) supplierLedgers(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, h.svc.SupplierLedgers())
}

func (h *Handler) supplierLedger(w http.ResponseWriter, r *http.Request) {
	row, err := h.svc.SupplierLedger(chi.URLParam(r, "name"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, row)
}
