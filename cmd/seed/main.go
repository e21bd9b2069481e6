// seed is a one-shot tool that loads a small demo catalog into an empty
// database: one supplier, one customer, and a handful of products.
//
// Usage: go run ./cmd/seed
package main

import (
	"context"
	"log"
	"os"

	"github.com/Seeka1-GIFT/Shawed-POS-sub001/internal/db"
	"github.com/Seeka1-GIFT/Shawed-POS-sub001/migrations"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	pool, err := db.NewPool(ctx, os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, migrations.Schema); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	log.Println("Seeding supplier and customer...")
	_, err = tx.Exec(ctx, `
		INSERT INTO suppliers (id, name, email, phone, address)
		VALUES ('aaaaaaaa-0000-0000-0000-000000000001', 'Hawlwadag Wholesale', 'orders@hawlwadag.example', '+252-61-5550001', 'Bakaara Market, Mogadishu')
		ON CONFLICT (id) DO NOTHING;

		INSERT INTO customers (id, name, email, phone, address)
		VALUES ('cccccccc-0000-0000-0000-000000000001', 'Asha Abdi', 'asha@example.com', '+252-61-5550002', 'Wadajir District')
		ON CONFLICT (id) DO NOTHING;
	`)
	if err != nil {
		log.Fatalf("Failed to seed parties: %v", err)
	}

	log.Println("Seeding products...")
	_, err = tx.Exec(ctx, `
		INSERT INTO products (id, name, category, quantity, buy_price, sell_price, low_stock_threshold, supplier_id)
		VALUES
			('bbbbbbbb-0000-0000-0000-000000000001', 'Rice 25kg',        'Staples',   40, 18.00, 24.50, 10, 'aaaaaaaa-0000-0000-0000-000000000001'),
			('bbbbbbbb-0000-0000-0000-000000000002', 'Sugar 1kg',        'Staples',  120,  0.70,  1.10, 25, 'aaaaaaaa-0000-0000-0000-000000000001'),
			('bbbbbbbb-0000-0000-0000-000000000003', 'Cooking Oil 3L',   'Staples',   30,  4.80,  6.75,  8, 'aaaaaaaa-0000-0000-0000-000000000001'),
			('bbbbbbbb-0000-0000-0000-000000000004', 'Powdered Milk 400g', 'Dairy',   15,  2.90,  4.25,  5, 'aaaaaaaa-0000-0000-0000-000000000001'),
			('bbbbbbbb-0000-0000-0000-000000000005', 'Tea Leaves 250g',  'Beverages', 60,  1.20,  1.95, 12, 'aaaaaaaa-0000-0000-0000-000000000001')
		ON CONFLICT (id) DO NOTHING;
	`)
	if err != nil {
		log.Fatalf("Failed to seed products: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("Failed to commit: %v", err)
	}
	log.Println("Seed complete.")
}
