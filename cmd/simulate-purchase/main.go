package main

import (
	"context"
	"fmt"
	"log"

	"concert-storefront/internal/config"
	"concert-storefront/internal/services"
	"concert-storefront/internal/storage"
	"concert-storefront/internal/utils"

	"github.com/jonboulle/clockwork"
)

func main() {
	fmt.Println("🎟  Concert Storefront - purchase simulation")

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

	clock := clockwork.NewRealClock()

	session := services.NewSessionService(store, clock, cfg.Latency.Delay(cfg.Latency.Login), cfg.Session.TokenSecret)
	cart := services.NewCartService(store)
	orders := services.NewOrderService(store, clock)
	checkout := services.NewCheckoutService(session, cart, orders, clock, cfg.Latency.Delay(cfg.Latency.Checkout), cfg.Checkout.ServiceFee)
	payment := services.NewPaymentService(orders, clock, cfg.Latency.Delay(cfg.Latency.Payment))

	catalog, err := services.NewCatalogService(clock, cfg.Latency.Delay(cfg.Latency.Catalog))
	if err != nil {
		log.Fatal("Failed to load event catalog:", err)
	}

	// Log in with mock credentials
	user, token, err := session.Login(ctx, "demo@example.com", "secret123")
	if err != nil {
		log.Fatal("Login failed:", err)
	}
	fmt.Printf("✅ Logged in as %s <%s>\n", user.Name, user.Email)
	fmt.Printf("   session token: %s…\n", token[:24])

	// Browse the catalog
	events, err := catalog.ListEvents(ctx)
	if err != nil {
		log.Fatal("Failed to list events:", err)
	}
	fmt.Printf("\n🎸 %d events on sale:\n", len(events))
	for _, e := range events {
		fmt.Printf("   %-8s %s (%s, %s)\n", e.ID, e.Title, e.Location, utils.FormatDate(e.Date))
	}

	// Pick the first event and fill the cart
	event, err := catalog.GetEventByID(ctx, events[0].ID)
	if err != nil {
		log.Fatal("Failed to load event:", err)
	}

	first := event.TicketCategories[0]
	if err := cart.AddItem(ctx, event.LineItem(&first, 2)); err != nil {
		log.Fatal("Failed to add tickets to cart:", err)
	}

	if len(event.TicketCategories) > 1 {
		second := event.TicketCategories[1]
		if err := cart.AddItem(ctx, event.LineItem(&second, 1)); err != nil {
			log.Fatal("Failed to add tickets to cart:", err)
		}
	}

	fmt.Printf("\n🛒 Cart for %s:\n", event.Title)
	for _, item := range cart.Items() {
		fmt.Printf("   %d× %-18s %s\n", item.Quantity, item.TicketCategoryName, utils.FormatCurrency(item.Subtotal()))
	}
	fmt.Printf("   %d tickets, subtotal %s, service fee %s\n",
		cart.TotalItemCount(), utils.FormatCurrency(cart.TotalPrice()), utils.FormatCurrency(checkout.ServiceFee()))

	// Checkout and pay
	order, err := checkout.Checkout(ctx, "bank-transfer")
	if err != nil {
		log.Fatal("Checkout failed:", err)
	}
	fmt.Printf("\n📦 Order %s created, status %s, total %s\n",
		order.ID, order.Status, utils.FormatCurrency(order.TotalAmount))

	result, err := payment.ProcessPayment(ctx, order.ID)
	if err != nil {
		log.Fatal("Payment failed:", err)
	}

	paid, err := orders.GetOrderByID(order.ID)
	if err != nil {
		log.Fatal("Failed to reload order:", err)
	}

	fmt.Printf("\n💳 Payment %s succeeded (%s)\n", result.PaymentID, utils.FormatCurrency(result.Amount))
	fmt.Printf("🎫 E-ticket ready:\n")
	fmt.Printf("   order:   %s\n", paid.ID)
	fmt.Printf("   status:  %s (paid at %s)\n", paid.Status, utils.FormatTimestamp(*paid.PaidAt))
	fmt.Printf("   holder:  %s\n", user.Name)
	fmt.Printf("   QR code: %s\n", paid.QRCode)
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
