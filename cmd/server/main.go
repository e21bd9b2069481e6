package main

import (
	"context"
	"log"
	"net/http"
	"os"

	webAdapter "github.com/Seeka1-GIFT/Shawed-POS-sub001/internal/adapters/web"
	"github.com/Seeka1-GIFT/Shawed-POS-sub001/internal/app"
	"github.com/Seeka1-GIFT/Shawed-POS-sub001/internal/core"
	"github.com/Seeka1-GIFT/Shawed-POS-sub001/internal/db"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	pool, err := db.NewPool(ctx, os.Getenv("DATABASE_URL"))
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	productService := core.NewProductService(pool, logger)
	customerService := core.NewCustomerService(pool)
	supplierService := core.NewSupplierService(pool)
	purchaseService := core.NewPurchaseService(pool, logger)
	saleService := core.NewSaleService(pool, logger)
	advisoryService := core.NewAdvisoryService(pool)

	svc := app.NewAppService(productService, customerService, supplierService,
		purchaseService, saleService, advisoryService)

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	handler := webAdapter.NewHandler(svc, logger, allowedOrigins)

	logger.Info("server starting", zap.String("port", port))
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		logger.Fatal("server", zap.Error(err))
	}
}
