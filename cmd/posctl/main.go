package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/Seeka1-GIFT/Shawed-POS-sub001/internal/adapters/cli"
	"github.com/Seeka1-GIFT/Shawed-POS-sub001/internal/app"
	"github.com/Seeka1-GIFT/Shawed-POS-sub001/internal/core"
	"github.com/Seeka1-GIFT/Shawed-POS-sub001/internal/db"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: posctl <products|alerts|sale|reverse|show> [args]")
		os.Exit(2)
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	svc := app.NewAppService(
		core.NewProductService(pool, nil),
		core.NewCustomerService(pool),
		core.NewSupplierService(pool),
		core.NewPurchaseService(pool, nil),
		core.NewSaleService(pool, nil),
		core.NewAdvisoryService(pool),
	)

	cli.Run(ctx, svc, os.Args[1:])
}
