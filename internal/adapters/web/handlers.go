package web

import (
	"encoding/json"
	"net/http"

	"github.com/Seeka1-GIFT/Shawed-POS-sub001/internal/app"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc    app.ApplicationService
	router chi.Router
	logger *zap.Logger
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, logger *zap.Logger, allowedOrigins string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Handler{svc: svc, logger: logger}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recoverer(logger))
	r.Use(CORS(allowedOrigins))
	r.Use(RequestBodyLimit(1 << 20)) // 1 MB

	// ── Health ────────────────────────────────────────────────────────────────
	r.Get("/api/health", h.health)

	// ── Product catalog & stock ───────────────────────────────────────────────
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.listProducts)
		r.Post("/", h.createProduct)
		r.Get("/{id}", h.getProduct)
		r.Put("/{id}", h.updateProduct)
		r.Delete("/{id}", h.deleteProduct)
		r.Post("/{id}/adjust-stock", h.adjustStock)
		r.Get("/{id}/movements", h.getMovements)
	})
	r.Get("/api/stock/alerts", h.getStockAlerts)

	// ── Customers & suppliers ─────────────────────────────────────────────────
	r.Route("/api/customers", func(r chi.Router) {
		r.Get("/", h.listCustomers)
		r.Post("/", h.createCustomer)
		r.Get("/{id}", h.getCustomer)
	})
	r.Route("/api/suppliers", func(r chi.Router) {
		r.Get("/", h.listSuppliers)
		r.Post("/", h.createSupplier)
		r.Get("/{id}", h.getSupplier)
	})

	// ── Purchases (goods receipt) ─────────────────────────────────────────────
	r.Route("/api/purchases", func(r chi.Router) {
		r.Get("/", h.listPurchases)
		r.Post("/", h.createPurchase)
		r.Get("/{id}", h.getPurchase)
	})

	// ── Sales ─────────────────────────────────────────────────────────────────
	r.Route("/api/sales", func(r chi.Router) {
		r.Get("/", h.listSales)
		r.Post("/", h.completeSale)
		r.Get("/{id}", h.getSale)
		r.Delete("/{id}", h.reverseSale)
		r.Post("/{id}/payments", h.recordPayment)
	})

	h.router = r
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeBody decodes a JSON request body into v. On failure it writes a 400
// response and returns false; callers should return immediately.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, r, "invalid request body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}
