package web

import (
	"net/http"
	"strconv"

	"github.com/Seeka1-GIFT/Shawed-POS-sub001/internal/app"
	"github.com/Seeka1-GIFT/Shawed-POS-sub001/internal/core"

	"github.com/go-chi/chi/v5"
)

// listProducts handles GET /api/products.
func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListProducts(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// createProduct handles POST /api/products.
func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var input core.ProductInput
	if !decodeBody(w, r, &input) {
		return
	}
	product, err := h.svc.CreateProduct(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

// getProduct handles GET /api/products/{id}.
func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.svc.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// updateProduct handles PUT /api/products/{id}.
func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var input core.ProductInput
	if !decodeBody(w, r, &input) {
		return
	}
	product, err := h.svc.UpdateProduct(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// deleteProduct handles DELETE /api/products/{id} — a soft deactivation.
// Historical sale and movement rows keep referencing the product.
func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// adjustStock handles POST /api/products/{id}/adjust.
func (h *Handler) adjustStock(w http.ResponseWriter, r *http.Request) {
	var req app.AdjustStockRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.ProductID = chi.URLParam(r, "id")
	product, err := h.svc.AdjustStock(r.Context(), req)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// getMovements handles GET /api/products/{id}/movements.
func (h *Handler) getMovements(w http.ResponseWriter, r *http.Request) {
	movements, err := h.svc.GetStockMovements(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"movements": movements})
}

// getStockAlerts handles GET /api/stock/alerts. The optional horizon_days
// query parameter controls the near-expiry window; default is 30.
func (h *Handler) getStockAlerts(w http.ResponseWriter, r *http.Request) {
	horizonDays := 0
	if v := r.URL.Query().Get("horizon_days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, r, "horizon_days must be a non-negative integer", "BAD_REQUEST", http.StatusBadRequest)
			return
		}
		horizonDays = n
	}
	alerts, err := h.svc.GetStockAlerts(r.Context(), horizonDays)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, alerts)
}
