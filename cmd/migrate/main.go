package main

import (
	"context"
	"log"
	"os"

	"github.com/Seeka1-GIFT/Shawed-POS-sub001/internal/db"
	"github.com/Seeka1-GIFT/Shawed-POS-sub001/migrations"

	"github.com/joho/godotenv"
)

// Applies the embedded schema. The DDL is idempotent, so running this against
// an existing database is safe.
func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	pool, err := db.NewPool(ctx, os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, migrations.Schema); err != nil {
		log.Fatalf("apply schema: %v", err)
	}
	log.Println("schema applied")
}
