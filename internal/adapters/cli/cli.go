package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/Seeka1-GIFT/Shawed-POS-sub001/internal/app"
	"github.com/Seeka1-GIFT/Shawed-POS-sub001/internal/core"
)

// Run executes a one-shot CLI command and exits.
// args is os.Args[1:] — the first element is the subcommand name.
func Run(ctx context.Context, svc app.ApplicationService, args []string) {
	switch args[0] {
	case "products", "prod", "p":
		result, err := svc.ListProducts(ctx)
		if err != nil {
			log.Fatalf("Failed to list products: %v", err)
		}
		printProducts(result)

	case "alerts", "a":
		alerts, err := svc.GetStockAlerts(ctx, 0)
		if err != nil {
			log.Fatalf("Failed to get stock alerts: %v", err)
		}
		printAlerts(alerts)

	case "sale", "s":
		var candidate core.SaleCandidate
		if err := json.NewDecoder(os.Stdin).Decode(&candidate); err != nil {
			log.Fatalf("Invalid JSON: %v", err)
		}
		sale, err := svc.CompleteSale(ctx, candidate)
		if err != nil {
			log.Fatalf("Sale failed: %v", err)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(sale)

	case "reverse", "rev", "r":
		if len(args) < 2 {
			log.Fatal("Usage: posctl reverse <sale-id>")
		}
		if err := svc.ReverseSale(ctx, args[1]); err != nil {
			log.Fatalf("Reversal failed: %v", err)
		}
		fmt.Println("Sale reversed. Stock restored.")

	case "show":
		if len(args) < 2 {
			log.Fatal("Usage: posctl show <sale-id>")
		}
		sale, err := svc.GetSale(ctx, args[1])
		if err != nil {
			log.Fatalf("Failed to fetch sale: %v", err)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(sale)

	default:
		log.Fatalf("Unknown command: %s\nAvailable: products, alerts, sale, reverse, show", args[0])
	}
}

func printProducts(result *app.ProductListResult) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 78))
	fmt.Printf("  %-74s\n", "PRODUCT CATALOG")
	fmt.Println(strings.Repeat("=", 78))
	fmt.Printf("  %-36s %-20s %6s %10s\n", "ID", "NAME", "QTY", "PRICE")
	fmt.Println(strings.Repeat("-", 78))
	for _, p := range result.Products {
		fmt.Printf("  %-36s %-20s %6d %10s\n", p.ID, truncate(p.Name, 20), p.Quantity, p.SellPrice.StringFixed(2))
	}
	fmt.Println(strings.Repeat("=", 78))
}

func printAlerts(alerts *core.StockAlerts) {
	printAlertSection("OUT OF STOCK", alerts.OutOfStock)
	printAlertSection("LOW STOCK", alerts.LowStock)
	printAlertSection("NEAR EXPIRY", alerts.NearExpiry)
}

func printAlertSection(title string, products []core.Product) {
	fmt.Println()
	fmt.Printf("  %s (%d)\n", title, len(products))
	fmt.Println(strings.Repeat("-", 62))
	for _, p := range products {
		fmt.Printf("  %-36s %-16s qty=%d\n", p.ID, truncate(p.Name, 16), p.Quantity)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
