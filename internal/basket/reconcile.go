package basket

import (
	"context"
	"log"

	"github.com/mholtz/tote/internal/shopapi"
)

// Reconcile merges the local cart with the server-persisted one. It runs at
// most once per session: the first call after authentication does the work,
// every later call is a no-op. Calls while a reconciliation is in flight are
// also no-ops; the guard is engaged before the fetch starts, not after it
// completes.
//
// The merged result is written back to both sides. Pushing to the server is
// a sequential clear-then-add; a failure partway through leaves the remote
// collection stale until the next session, which is accepted. The sync flag
// flips once the attempt settles, success or failure, so a failed sync is
// not retried until restart.
func (c *Cart) Reconcile(ctx context.Context) {
	c.mu.Lock()
	if c.synced || c.syncing {
		c.mu.Unlock()
		return
	}
	c.syncing = true
	local := cloneItems(c.items)
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.syncing = false
		c.synced = true
		c.mu.Unlock()
	}()

	doc, err := c.remote.FetchCart(ctx)
	if err != nil {
		log.Printf("cart sync failed: %v", err)
		return
	}

	switch {
	case len(doc.Products) > 0:
		merged := mergeCart(local, doc.Products)
		c.mu.Lock()
		c.items = merged
		c.persistLocked()
		c.mu.Unlock()
		c.pushCart(ctx, merged, true)
	case len(local) > 0:
		// Remote is empty, nothing to merge; adds alone suffice.
		c.pushCart(ctx, local, false)
	}
}

// mergeCart folds remote entries into the local snapshot. A quantity
// conflict takes the larger value, never the sum, so neither side's intent
// to hold at least N of an item is lost. Remote-only entries are appended
// with their denormalized product fields, after the local items and in
// remote order.
func mergeCart(local []CartItem, remote []shopapi.CartEntry) []CartItem {
	merged := cloneItems(local)
	for _, entry := range remote {
		if idx := indexOfItem(merged, entry.Product.ID); idx >= 0 {
			if entry.Quantity > merged[idx].Quantity {
				merged[idx].Quantity = entry.Quantity
			}
			continue
		}
		merged = append(merged, CartItem{Product: entry.Product, Quantity: entry.Quantity})
	}
	return merged
}

// pushCart replaces the remote cart with items. Each step is awaited before
// the next begins; the first failure aborts the rest.
func (c *Cart) pushCart(ctx context.Context, items []CartItem, clearFirst bool) {
	if clearFirst {
		if err := c.remote.ClearCart(ctx); err != nil {
			log.Printf("cart push failed: %v", err)
			return
		}
	}
	for _, item := range items {
		if err := c.remote.AddCartItem(ctx, item.ID, item.Quantity); err != nil {
			log.Printf("cart push failed: %v", err)
			return
		}
	}
}

// Reconcile merges the local wishlist with the server-persisted one under
// the same once-per-session contract as Cart.Reconcile. Favorites carry no
// quantity, so the merge is a presence union: local items keep their order
// and remote-only products are appended.
func (w *Wishlist) Reconcile(ctx context.Context) {
	w.mu.Lock()
	if w.synced || w.syncing {
		w.mu.Unlock()
		return
	}
	w.syncing = true
	local := cloneProducts(w.items)
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.syncing = false
		w.synced = true
		w.mu.Unlock()
	}()

	doc, err := w.remote.FetchWishlist(ctx)
	if err != nil {
		log.Printf("wishlist sync failed: %v", err)
		return
	}

	switch {
	case len(doc.Products) > 0:
		merged := mergeWishlist(local, doc.Products)
		w.mu.Lock()
		w.items = merged
		w.persistLocked()
		w.mu.Unlock()
		w.pushWishlist(ctx, merged, true)
	case len(local) > 0:
		w.pushWishlist(ctx, local, false)
	}
}

func mergeWishlist(local, remote []shopapi.Product) []shopapi.Product {
	merged := cloneProducts(local)
	for _, product := range remote {
		if indexOfProduct(merged, product.ID) < 0 {
			merged = append(merged, product)
		}
	}
	return merged
}

func (w *Wishlist) pushWishlist(ctx context.Context, items []shopapi.Product, clearFirst bool) {
	if clearFirst {
		if err := w.remote.ClearWishlist(ctx); err != nil {
			log.Printf("wishlist push failed: %v", err)
			return
		}
	}
	for _, item := range items {
		if err := w.remote.AddWishlistItem(ctx, item.ID); err != nil {
			log.Printf("wishlist push failed: %v", err)
			return
		}
	}
}
