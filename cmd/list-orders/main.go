package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"concert-storefront/internal/config"
	"concert-storefront/internal/models"
	"concert-storefront/internal/services"
	"concert-storefront/internal/storage"
	"concert-storefront/internal/utils"

	"github.com/jonboulle/clockwork"
)

func main() {
	userID := flag.String("user", "", "only show orders owned by this user id")
	flag.Parse()

	fmt.Println("📋 Concert Storefront - order ledger")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	ctx := context.Background()

	store, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to open storage backend:", err)
	}
	defer cleanup()

	orders := services.NewOrderService(store, clockwork.NewRealClock())

	var ledger []*models.Order
	if *userID != "" {
		ledger = orders.GetUserOrders(*userID)
	} else {
		ledger = orders.ListOrders()
	}

	if len(ledger) == 0 {
		fmt.Println("   (no orders)")
		return
	}

	for _, order := range ledger {
		fmt.Printf("\n%s  [%s]\n", order.ID, order.Status)
		fmt.Printf("   user:    %s\n", order.UserID)
		fmt.Printf("   created: %s\n", utils.FormatTimestamp(order.CreatedAt))
		if order.PaidAt != nil {
			fmt.Printf("   paid:    %s\n", utils.FormatTimestamp(*order.PaidAt))
		}
		for _, item := range order.Items {
			fmt.Printf("   %d× %s (%s) %s\n",
				item.Quantity, item.TicketCategoryName, item.EventTitle, utils.FormatCurrency(item.Subtotal()))
		}
		fmt.Printf("   total:   %s via %s\n", utils.FormatCurrency(order.TotalAmount), order.PaymentMethod)
		fmt.Printf("   QR code: %s\n", order.QRCode)
	}

	fmt.Printf("\n%d order(s)\n", len(ledger))
}

// openStore selects the snapshot backend from configuration
func openStore(ctx context.Context, cfg *config.Config) (storage.Store, func(), error) {
	switch cfg.Storage.Backend {
	case "memory":
		return storage.NewMemoryStore(), func() {}, nil
	case "file":
		store, err := storage.NewFileStore(cfg.Storage.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	case "redis":
		store, err := storage.NewRedisStore(ctx, cfg.Storage.RedisAddr, cfg.Storage.RedisPassword, cfg.Storage.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	case "postgres":
		store, err := storage.NewPostgresStore(ctx, cfg.Storage.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
