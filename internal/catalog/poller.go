package catalog

import (
	"context"
	"log"
	"time"

	"github.com/mholtz/tote/internal/shopapi"
)

const defaultPollInterval = 30 * time.Second

// StartPoller launches a background goroutine that refreshes the store at a
// fixed cadence. It returns immediately.
func StartPoller(ctx context.Context, store *Store, client shopapi.Catalog, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			Refresh(ctx, store, client)
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

// Refresh fetches the full catalog and the active flash sales once.
func Refresh(ctx context.Context, store *Store, client shopapi.Catalog) {
	products, err := client.FetchProducts(ctx, shopapi.ProductQuery{})
	if err != nil {
		store.Update(nil, nil, err)
		log.Printf("catalog poll failed: %v", err)
		return
	}
	flashSales, err := client.FetchProducts(ctx, shopapi.ProductQuery{FlashSales: true})
	if err != nil {
		store.Update(nil, nil, err)
		log.Printf("flash sale poll failed: %v", err)
		return
	}
	store.Update(products, flashSales, nil)
}
