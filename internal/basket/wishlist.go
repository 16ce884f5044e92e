package basket

import (
	"context"
	"log"
	"sync"

	"github.com/mholtz/tote/internal/localstore"
	"github.com/mholtz/tote/internal/shopapi"
)

const wishlistSnapshotName = "wishlist.json"

// WishlistRemote is the server-side wishlist surface mirrored by the
// gateway. It is implemented by *shopapi.Client.
type WishlistRemote interface {
	FetchWishlist(ctx context.Context) (shopapi.WishlistDocument, error)
	AddWishlistItem(ctx context.Context, productID string) error
	RemoveWishlistItem(ctx context.Context, productID string) error
	ClearWishlist(ctx context.Context) error
}

var _ WishlistRemote = (*shopapi.Client)(nil)

// Wishlist is the mutation gateway for favorites. Presence is boolean: a
// product is either on the list or not, with no quantity. The same
// commit-locally-then-mirror contract as Cart applies. Use NewWishlist to
// construct one.
type Wishlist struct {
	dir    localstore.Dir
	remote WishlistRemote
	auth   AuthSignal

	mu      sync.Mutex
	items   []shopapi.Product
	synced  bool
	syncing bool
}

// NewWishlist restores the wishlist snapshot from dir. A missing or corrupt
// snapshot is an empty wishlist.
func NewWishlist(dir localstore.Dir, remote WishlistRemote, auth AuthSignal) *Wishlist {
	w := &Wishlist{dir: dir, remote: remote, auth: auth}
	dir.Read(wishlistSnapshotName, &w.items)
	return w
}

// Toggle flips product membership and reports whether it is now a favorite.
func (w *Wishlist) Toggle(ctx context.Context, product shopapi.Product) bool {
	w.mu.Lock()
	wasFavorite := indexOfProduct(w.items, product.ID) >= 0
	if wasFavorite {
		w.removeLocked(product.ID)
	} else {
		w.items = append(w.items, product)
	}
	w.persistLocked()
	w.mu.Unlock()

	if w.authed() {
		if wasFavorite {
			w.mirror("remove", w.remote.RemoveWishlistItem(ctx, product.ID))
		} else {
			w.mirror("add", w.remote.AddWishlistItem(ctx, product.ID))
		}
	}
	return !wasFavorite
}

// Add inserts product when it is not already on the list; otherwise it is a
// no-op and nothing is mirrored.
func (w *Wishlist) Add(ctx context.Context, product shopapi.Product) {
	w.mu.Lock()
	if indexOfProduct(w.items, product.ID) >= 0 {
		w.mu.Unlock()
		return
	}
	w.items = append(w.items, product)
	w.persistLocked()
	w.mu.Unlock()

	if w.authed() {
		w.mirror("add", w.remote.AddWishlistItem(ctx, product.ID))
	}
}

// Remove deletes one product from the list.
func (w *Wishlist) Remove(ctx context.Context, productID string) {
	w.mu.Lock()
	w.removeLocked(productID)
	w.persistLocked()
	w.mu.Unlock()

	if w.authed() {
		w.mirror("remove", w.remote.RemoveWishlistItem(ctx, productID))
	}
}

// Clear empties the wishlist.
func (w *Wishlist) Clear(ctx context.Context) {
	w.mu.Lock()
	w.items = nil
	w.persistLocked()
	w.mu.Unlock()

	if w.authed() {
		w.mirror("clear", w.remote.ClearWishlist(ctx))
	}
}

// Has reports whether the product is currently a favorite.
func (w *Wishlist) Has(productID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return indexOfProduct(w.items, productID) >= 0
}

// Items returns a copy of the current wishlist in insertion order.
func (w *Wishlist) Items() []shopapi.Product {
	w.mu.Lock()
	defer w.mu.Unlock()
	return cloneProducts(w.items)
}

// Count returns the number of favorites.
func (w *Wishlist) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.items)
}

// Synced reports whether this session's reconciliation has settled.
func (w *Wishlist) Synced() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.synced
}

func (w *Wishlist) removeLocked(productID string) {
	kept := w.items[:0]
	for _, item := range w.items {
		if item.ID != productID {
			kept = append(kept, item)
		}
	}
	w.items = kept
}

func (w *Wishlist) authed() bool {
	return w.auth != nil && w.auth.IsAuthenticated()
}

func (w *Wishlist) mirror(op string, err error) {
	if err != nil {
		log.Printf("wishlist %s mirror failed: %v", op, err)
	}
}

func (w *Wishlist) persistLocked() {
	if err := w.dir.Write(wishlistSnapshotName, w.items); err != nil {
		log.Printf("wishlist persist failed: %v", err)
	}
}

func indexOfProduct(items []shopapi.Product, productID string) int {
	for i, item := range items {
		if item.ID == productID {
			return i
		}
	}
	return -1
}

func cloneProducts(items []shopapi.Product) []shopapi.Product {
	if len(items) == 0 {
		return nil
	}
	dup := make([]shopapi.Product, len(items))
	copy(dup, items)
	return dup
}
