package web_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Seeka1-GIFT/Shawed-POS-sub001/internal/adapters/web"
	"github.com/Seeka1-GIFT/Shawed-POS-sub001/internal/app"
	"github.com/Seeka1-GIFT/Shawed-POS-sub001/internal/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubService returns canned values so handler behavior can be tested without
// a database. Only the methods a test exercises need non-nil fields.
type stubService struct {
	app.ApplicationService

	completeSaleErr error
	sale            *core.Sale
	product         *core.Product
	productErr      error
	reverseErr      error
}

func (s *stubService) CompleteSale(ctx context.Context, candidate core.SaleCandidate) (*core.Sale, error) {
	if s.completeSaleErr != nil {
		return nil, s.completeSaleErr
	}
	return s.sale, nil
}

func (s *stubService) GetProduct(ctx context.Context, productID string) (*core.Product, error) {
	if s.productErr != nil {
		return nil, s.productErr
	}
	return s.product, nil
}

func (s *stubService) ReverseSale(ctx context.Context, saleID string) error {
	return s.reverseErr
}

func postSale(t *testing.T, handler http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/sales", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) (errMsg, code string) {
	t.Helper()
	var body struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error, body.Code
}

const validCandidateJSON = `{"items":[{"product_id":"p1","quantity":1,"unit_price":"2.00"}],"amount_paid":"2.00"}`

func TestCompleteSaleHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"InsufficientStock", &core.InsufficientStockError{ProductID: "p1", Available: 1, Requested: 2},
			http.StatusConflict, "INSUFFICIENT_STOCK"},
		{"DuplicateSale", core.ErrDuplicateSale, http.StatusConflict, "DUPLICATE_SALE"},
		{"EmptyCart", core.ErrEmptyCart, http.StatusUnprocessableEntity, "EMPTY_CART"},
		{"InvalidItem", &core.InvalidItemError{Line: 1, Reason: "quantity must be positive"},
			http.StatusUnprocessableEntity, "INVALID_ITEM"},
		{"CreditRequiresCustomer", core.ErrCreditRequiresCustomer,
			http.StatusUnprocessableEntity, "CREDIT_REQUIRES_CUSTOMER"},
		{"ProductNotFound", &core.ProductNotFoundError{ProductID: "p1"},
			http.StatusNotFound, "PRODUCT_NOT_FOUND"},
		{"PersistenceHidden", &core.PersistenceError{Op: "commit sale", Err: context.DeadlineExceeded},
			http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := web.NewHandler(&stubService{completeSaleErr: tc.err}, nil, "")
			rec := postSale(t, handler, validCandidateJSON)

			assert.Equal(t, tc.wantStatus, rec.Code)
			errMsg, code := decodeErrorBody(t, rec)
			assert.Equal(t, tc.wantCode, code)
			if tc.wantCode == "INTERNAL_ERROR" {
				assert.NotContains(t, errMsg, "commit sale", "storage detail must not leak")
			} else {
				assert.NotEmpty(t, errMsg)
			}
		})
	}
}

func TestCompleteSaleHandler_Success(t *testing.T) {
	sale := &core.Sale{ID: "s1", Total: decimal.NewFromInt(2), PaymentStatus: core.PaymentPaid}
	handler := web.NewHandler(&stubService{sale: sale}, nil, "")

	rec := postSale(t, handler, validCandidateJSON)
	require.Equal(t, http.StatusCreated, rec.Code)

	var got core.Sale
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "s1", got.ID)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestCompleteSaleHandler_MalformedBody(t *testing.T) {
	handler := web.NewHandler(&stubService{}, nil, "")
	rec := postSale(t, handler, `{"items": [`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	_, code := decodeErrorBody(t, rec)
	assert.Equal(t, "BAD_REQUEST", code)
}

func TestCompleteSaleHandler_IdempotencyKeyHeaderWins(t *testing.T) {
	var captured core.SaleCandidate
	stub := &captureService{onCompleteSale: func(c core.SaleCandidate) { captured = c }}
	handler := web.NewHandler(stub, nil, "")

	req := httptest.NewRequest(http.MethodPost, "/api/sales",
		strings.NewReader(`{"items":[{"product_id":"p1","quantity":1,"unit_price":"2.00"}],"idempotency_key":"body-key"}`))
	req.Header.Set("Idempotency-Key", "header-key")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "header-key", captured.IdempotencyKey)
}

type captureService struct {
	app.ApplicationService
	onCompleteSale func(core.SaleCandidate)
}

func (s *captureService) CompleteSale(ctx context.Context, candidate core.SaleCandidate) (*core.Sale, error) {
	s.onCompleteSale(candidate)
	return &core.Sale{ID: "s1"}, nil
}

func TestGetProductHandler_NotFound(t *testing.T) {
	handler := web.NewHandler(&stubService{productErr: &core.ProductNotFoundError{ProductID: "p9"}}, nil, "")
	req := httptest.NewRequest(http.MethodGet, "/api/products/p9", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	_, code := decodeErrorBody(t, rec)
	assert.Equal(t, "PRODUCT_NOT_FOUND", code)
}

func TestReverseSaleHandler(t *testing.T) {
	t.Run("NoContentOnSuccess", func(t *testing.T) {
		handler := web.NewHandler(&stubService{}, nil, "")
		req := httptest.NewRequest(http.MethodDelete, "/api/sales/s1", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		handler := web.NewHandler(&stubService{reverseErr: &core.SaleNotFoundError{SaleID: "s9"}}, nil, "")
		req := httptest.NewRequest(http.MethodDelete, "/api/sales/s9", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		_, code := decodeErrorBody(t, rec)
		assert.Equal(t, "SALE_NOT_FOUND", code)
	})
}

func TestHealthHandler(t *testing.T) {
	handler := web.NewHandler(&stubService{}, nil, "")
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
