package core_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Seeka1-GIFT/Shawed-POS-sub001/internal/core"
)

func TestProduct_Lifecycle(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	svc := core.NewProductService(pool, nil)

	t.Run("CreateDefaultsThreshold", func(t *testing.T) {
		p, err := svc.CreateProduct(ctx, core.ProductInput{
			Name: "Sugar 1kg", Quantity: 20, SellPrice: dec("1.10"),
		})
		if err != nil {
			t.Fatalf("CreateProduct: %v", err)
		}
		if p.LowStockThreshold != 5 {
			t.Errorf("threshold = %d, want default 5", p.LowStockThreshold)
		}
		if !p.IsActive {
			t.Error("new product should be active")
		}
	})

	t.Run("CreateRejectsInvalidInput", func(t *testing.T) {
		if _, err := svc.CreateProduct(ctx, core.ProductInput{Quantity: 1}); err == nil {
			t.Error("expected error for missing name")
		}
		if _, err := svc.CreateProduct(ctx, core.ProductInput{Name: "X", Quantity: -1}); err == nil {
			t.Error("expected error for negative quantity")
		}
		if _, err := svc.CreateProduct(ctx, core.ProductInput{Name: "X", SellPrice: dec("-1")}); err == nil {
			t.Error("expected error for negative price")
		}
	})

	t.Run("DeleteDeactivates", func(t *testing.T) {
		p := seedProduct(t, pool, "Tea Leaves 250g", 5, "1.95")
		if err := svc.DeleteProduct(ctx, p.ID); err != nil {
			t.Fatalf("DeleteProduct: %v", err)
		}

		// Gone from lookups and from sale eligibility, but the row survives.
		var notFound *core.ProductNotFoundError
		if _, err := svc.GetProduct(ctx, p.ID); !errors.As(err, &notFound) {
			t.Errorf("expected ProductNotFoundError after deactivation, got %v", err)
		}
		saleSvc := core.NewSaleService(pool, nil)
		_, err := saleSvc.CompleteSale(ctx, core.SaleCandidate{
			Items:      []core.CandidateItem{{ProductID: p.ID, Quantity: 1, UnitPrice: dec("1.95")}},
			AmountPaid: dec("1.95"),
		})
		if !errors.As(err, &notFound) {
			t.Errorf("deactivated product must not be sellable, got %v", err)
		}
	})
}

func TestAdjustStock(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	svc := core.NewProductService(pool, nil)
	p := seedProduct(t, pool, "Powdered Milk 400g", 10, "4.25")

	after, err := svc.AdjustStock(ctx, p.ID, -4, "breakage")
	if err != nil {
		t.Fatalf("AdjustStock: %v", err)
	}
	if after.Quantity != 6 {
		t.Errorf("quantity = %d, want 6", after.Quantity)
	}

	// A downward adjustment never takes stock negative.
	_, err = svc.AdjustStock(ctx, p.ID, -7, "stock take")
	var insufficient *core.InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if got := productQuantity(t, pool, p.ID); got != 6 {
		t.Errorf("quantity = %d, want untouched 6", got)
	}

	movements, err := svc.GetMovements(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetMovements: %v", err)
	}
	if len(movements) != 1 {
		t.Fatalf("movements = %d, want 1", len(movements))
	}
	if movements[0].MovementType != core.MovementAdjustment || movements[0].Quantity != -4 {
		t.Errorf("movement = %s %d, want ADJUSTMENT -4", movements[0].MovementType, movements[0].Quantity)
	}
}

func TestStockAlerts(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	prodSvc := core.NewProductService(pool, nil)
	soon := time.Now().AddDate(0, 0, 10)
	far := time.Now().AddDate(1, 0, 0)

	mk := func(name string, qty, threshold int, expiry *time.Time) *core.Product {
		p, err := prodSvc.CreateProduct(ctx, core.ProductInput{
			Name: name, Quantity: qty, SellPrice: dec("1.00"),
			LowStockThreshold: threshold, ExpiryDate: expiry,
		})
		if err != nil {
			t.Fatalf("CreateProduct %s: %v", name, err)
		}
		return p
	}

	out := mk("Out", 0, 5, nil)
	low := mk("Low", 3, 5, nil)
	expiring := mk("Expiring", 50, 5, &soon)
	mk("Healthy", 50, 5, &far)

	svc := core.NewAdvisoryService(pool)
	alerts, err := svc.GetStockAlerts(ctx, 30)
	if err != nil {
		t.Fatalf("GetStockAlerts: %v", err)
	}

	ids := func(products []core.Product) map[string]bool {
		m := make(map[string]bool, len(products))
		for _, p := range products {
			m[p.ID] = true
		}
		return m
	}

	if got := ids(alerts.OutOfStock); len(got) != 1 || !got[out.ID] {
		t.Errorf("out of stock = %v, want only %s", got, out.ID)
	}
	// Out-of-stock products are not repeated in the low-stock list.
	if got := ids(alerts.LowStock); len(got) != 1 || !got[low.ID] {
		t.Errorf("low stock = %v, want only %s", got, low.ID)
	}
	if got := ids(alerts.NearExpiry); len(got) != 1 || !got[expiring.ID] {
		t.Errorf("near expiry = %v, want only %s", got, expiring.ID)
	}
}
