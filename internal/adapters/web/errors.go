package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Seeka1-GIFT/Shawed-POS-sub001/internal/core"
)

// errorBody is the stable JSON shape for all error responses.
type errorBody struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, msg, code string, status int) {
	writeJSON(w, status, errorBody{
		Error:     msg,
		Code:      code,
		RequestID: requestIDFromContext(r.Context()),
	})
}

// writeDomainError maps domain errors to HTTP statuses and stable error codes.
// Stock conflicts are 409, validation failures 422, missing entities 404.
// Anything unrecognized is treated as an internal error and hides its detail.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		insufficient *core.InsufficientStockError
		invalidItem  *core.InvalidItemError
		notFound     *core.ProductNotFoundError
		saleNotFound *core.SaleNotFoundError
	)
	switch {
	case errors.As(err, &insufficient):
		writeError(w, r, insufficient.Error(), "INSUFFICIENT_STOCK", http.StatusConflict)
	case errors.Is(err, core.ErrDuplicateSale):
		writeError(w, r, err.Error(), "DUPLICATE_SALE", http.StatusConflict)
	case errors.As(err, &invalidItem):
		writeError(w, r, invalidItem.Error(), "INVALID_ITEM", http.StatusUnprocessableEntity)
	case errors.Is(err, core.ErrEmptyCart):
		writeError(w, r, err.Error(), "EMPTY_CART", http.StatusUnprocessableEntity)
	case errors.Is(err, core.ErrCreditRequiresCustomer):
		writeError(w, r, err.Error(), "CREDIT_REQUIRES_CUSTOMER", http.StatusUnprocessableEntity)
	case errors.As(err, &notFound):
		writeError(w, r, notFound.Error(), "PRODUCT_NOT_FOUND", http.StatusNotFound)
	case errors.As(err, &saleNotFound):
		writeError(w, r, saleNotFound.Error(), "SALE_NOT_FOUND", http.StatusNotFound)
	case errors.Is(err, core.ErrNotFound):
		writeError(w, r, err.Error(), "NOT_FOUND", http.StatusNotFound)
	default:
		writeError(w, r, "internal server error", "INTERNAL_ERROR", http.StatusInternalServerError)
	}
}
