package web

import (
	"net/http"

	"github.com/Seeka1-GIFT/Shawed-POS-sub001/internal/app"

	"github.com/go-chi/chi/v5"
)

// listPurchases handles GET /api/purchases.
func (h *Handler) listPurchases(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListPurchases(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// createPurchase handles POST /api/purchases — records a goods receipt,
// increasing stock and recomputing weighted-average cost.
func (h *Handler) createPurchase(w http.ResponseWriter, r *http.Request) {
	var req app.CreatePurchaseRequest
	if !decodeBody(w, r, &req) {
		return
	}
	purchase, err := h.svc.CreatePurchase(r.Context(), req)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, purchase)
}

// getPurchase handles GET /api/purchases/{id}.
func (h *Handler) getPurchase(w http.ResponseWriter, r *http.Request) {
	purchase, err := h.svc.GetPurchase(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, purchase)
}
