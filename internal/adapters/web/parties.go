package web

import (
	"net/http"

	"github.com/Seeka1-GIFT/Shawed-POS-sub001/internal/core"

	"github.com/go-chi/chi/v5"
)

// ── Customers ─────────────────────────────────────────────────────────────────

// listCustomers handles GET /api/customers.
func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListCustomers(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// createCustomer handles POST /api/customers.
func (h *Handler) createCustomer(w http.ResponseWriter, r *http.Request) {
	var input core.CustomerInput
	if !decodeBody(w, r, &input) {
		return
	}
	customer, err := h.svc.CreateCustomer(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, customer)
}

// getCustomer handles GET /api/customers/{id}.
func (h *Handler) getCustomer(w http.ResponseWriter, r *http.Request) {
	customer, err := h.svc.GetCustomer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

// ── Suppliers ─────────────────────────────────────────────────────────────────

// listSuppliers handles GET /api/suppliers.
func (h *Handler) listSuppliers(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListSuppliers(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// createSupplier handles POST /api/suppliers.
func (h *Handler) createSupplier(w http.ResponseWriter, r *http.Request) {
	var input core.SupplierInput
	if !decodeBody(w, r, &input) {
		return
	}
	supplier, err := h.svc.CreateSupplier(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, supplier)
}

// getSupplier handles GET /api/suppliers/{id}.
func (h *Handler) getSupplier(w http.ResponseWriter, r *http.Request) {
	supplier, err := h.svc.GetSupplier(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, supplier)
}
