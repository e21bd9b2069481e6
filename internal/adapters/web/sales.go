package web

import (
	"net/http"
	"time"

	"github.com/Seeka1-GIFT/Shawed-POS-sub001/internal/app"
	"github.com/Seeka1-GIFT/Shawed-POS-sub001/internal/core"

	"github.com/go-chi/chi/v5"
)

// completeSale handles POST /api/sales. The request body is a SaleCandidate;
// a client may also supply the idempotency key via the Idempotency-Key header,
// which takes precedence over the body field.
func (h *Handler) completeSale(w http.ResponseWriter, r *http.Request) {
	var candidate core.SaleCandidate
	if !decodeBody(w, r, &candidate) {
		return
	}
	if key := r.Header.Get("Idempotency-Key"); key != "" {
		candidate.IdempotencyKey = key
	}
	sale, err := h.svc.CompleteSale(r.Context(), candidate)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, sale)
}

// listSales handles GET /api/sales. Supports customer_id, from, and to
// query parameters; from/to are RFC 3339 timestamps.
func (h *Handler) listSales(w http.ResponseWriter, r *http.Request) {
	var filter core.SaleFilter
	filter.CustomerID = r.URL.Query().Get("customer_id")
	if v := r.URL.Query().Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, r, "from must be an RFC 3339 timestamp", "BAD_REQUEST", http.StatusBadRequest)
			return
		}
		filter.From = t
	}
	if v := r.URL.Query().Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, r, "to must be an RFC 3339 timestamp", "BAD_REQUEST", http.StatusBadRequest)
			return
		}
		filter.To = t
	}
	result, err := h.svc.ListSales(r.Context(), filter)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// getSale handles GET /api/sales/{id}.
func (h *Handler) getSale(w http.ResponseWriter, r *http.Request) {
	sale, err := h.svc.GetSale(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sale)
}

// reverseSale handles DELETE /api/sales/{id} — restores stock for every line
// and removes the sale record in one transaction.
func (h *Handler) reverseSale(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ReverseSale(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// recordPayment handles POST /api/sales/{id}/payments — pays down the balance
// of a credit or partially paid sale.
func (h *Handler) recordPayment(w http.ResponseWriter, r *http.Request) {
	var req app.RecordPaymentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	sale, err := h.svc.RecordPayment(r.Context(), chi.URLParam(r, "id"), req.Amount)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sale)
}
