package core_test

import (
	"context"
	"testing"

	"github.com/Seeka1-GIFT/Shawed-POS-sub001/internal/core"

	"github.com/jackc/pgx/v5/pgxpool"
)

func seedSupplier(t *testing.T, pool *pgxpool.Pool, name string) *core.Supplier {
	t.Helper()
	svc := core.NewSupplierService(pool)
	s, err := svc.CreateSupplier(context.Background(), core.SupplierInput{Name: name})
	if err != nil {
		t.Fatalf("seed supplier %s: %v", name, err)
	}
	return s
}

func TestCreatePurchase_ReceivesStockAndAveragesCost(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	supplier := seedSupplier(t, pool, "Hawlwadag Wholesale")
	prodSvc := core.NewProductService(pool, nil)
	rice, err := prodSvc.CreateProduct(ctx, core.ProductInput{
		Name: "Rice 25kg", Quantity: 10, BuyPrice: dec("18.00"), SellPrice: dec("24.50"),
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	svc := core.NewPurchaseService(pool, nil)
	purchase, err := svc.CreatePurchase(ctx, supplier.ID, []core.PurchaseLineInput{
		{ProductID: rice.ID, Quantity: 30, UnitCost: dec("20.00")},
	}, "restock")
	if err != nil {
		t.Fatalf("CreatePurchase: %v", err)
	}
	if !purchase.Total.Equal(dec("600.00")) {
		t.Errorf("purchase total = %s, want 600.00", purchase.Total)
	}

	after, err := prodSvc.GetProduct(ctx, rice.ID)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if after.Quantity != 40 {
		t.Errorf("quantity = %d, want 40", after.Quantity)
	}
	// Weighted average: (10×18.00 + 30×20.00) / 40 = 19.50
	if !after.BuyPrice.Equal(dec("19.50")) {
		t.Errorf("buy price = %s, want weighted average 19.50", after.BuyPrice)
	}

	movements, err := prodSvc.GetMovements(ctx, rice.ID)
	if err != nil {
		t.Fatalf("GetMovements: %v", err)
	}
	if len(movements) != 1 || movements[0].MovementType != core.MovementPurchase || movements[0].Quantity != 30 {
		t.Errorf("expected one PURCHASE +30 movement, got %+v", movements)
	}
}

func TestCreatePurchase_Validation(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	supplier := seedSupplier(t, pool, "Hawlwadag Wholesale")
	rice := seedProduct(t, pool, "Rice 25kg", 10, "24.50")
	svc := core.NewPurchaseService(pool, nil)

	if _, err := svc.CreatePurchase(ctx, supplier.ID, nil, ""); err == nil {
		t.Error("expected error for empty purchase")
	}
	if _, err := svc.CreatePurchase(ctx, supplier.ID, []core.PurchaseLineInput{
		{ProductID: rice.ID, Quantity: 0, UnitCost: dec("1.00")},
	}, ""); err == nil {
		t.Error("expected error for zero quantity line")
	}
	_, err := svc.CreatePurchase(ctx, "44444444-4444-4444-4444-444444444444", []core.PurchaseLineInput{
		{ProductID: rice.ID, Quantity: 1, UnitCost: dec("1.00")},
	}, "")
	if err == nil {
		t.Error("expected error for unknown supplier")
	}

	if got := productQuantity(t, pool, rice.ID); got != 10 {
		t.Errorf("quantity = %d, want untouched 10", got)
	}
}
