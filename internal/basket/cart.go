package basket

import (
	"context"
	"log"
	"sync"

	"github.com/mholtz/tote/internal/localstore"
	"github.com/mholtz/tote/internal/shopapi"
)

const cartSnapshotName = "cart.json"

// CartItem is the unit of cart storage: a denormalized product plus a
// quantity. Identity is the product ID; the gateway never stores two items
// with the same ID.
type CartItem struct {
	shopapi.Product
	Quantity int `json:"quantity"`
}

// CartRemote is the server-side cart surface mirrored by the gateway.
// It is implemented by *shopapi.Client.
type CartRemote interface {
	FetchCart(ctx context.Context) (shopapi.CartDocument, error)
	AddCartItem(ctx context.Context, productID string, quantity int) error
	UpdateCartItem(ctx context.Context, productID string, quantity int) error
	RemoveCartItem(ctx context.Context, productID string) error
	ClearCart(ctx context.Context) error
}

var _ CartRemote = (*shopapi.Client)(nil)

// AuthSignal reports the current authentication state. It is implemented by
// *session.Session.
type AuthSignal interface {
	IsAuthenticated() bool
	Identity() (shopapi.Identity, bool)
}

// Cart is the mutation gateway for the shopping cart. Every change commits
// to the local snapshot first and is then mirrored to the remote collection
// when authenticated; mirror failures are logged and swallowed, never rolled
// back. Use NewCart to construct one.
type Cart struct {
	dir    localstore.Dir
	remote CartRemote
	auth   AuthSignal

	mu      sync.Mutex
	items   []CartItem
	synced  bool
	syncing bool
}

// NewCart restores the cart snapshot from dir. A missing or corrupt snapshot
// is an empty cart.
func NewCart(dir localstore.Dir, remote CartRemote, auth AuthSignal) *Cart {
	c := &Cart{dir: dir, remote: remote, auth: auth}
	dir.Read(cartSnapshotName, &c.items)
	return c
}

// Add inserts product with the given quantity, or increments the existing
// line by it. Quantities below 1 count as 1.
func (c *Cart) Add(ctx context.Context, product shopapi.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	c.mu.Lock()
	if idx := indexOfItem(c.items, product.ID); idx >= 0 {
		c.items[idx].Quantity += quantity
	} else {
		c.items = append(c.items, CartItem{Product: product, Quantity: quantity})
	}
	c.persistLocked()
	c.mu.Unlock()

	if c.authed() {
		c.mirror("add", c.remote.AddCartItem(ctx, product.ID, quantity))
	}
}

// UpdateQuantity sets the absolute quantity of a cart line. Quantities below
// 1 are a no-op; removal is a distinct operation.
func (c *Cart) UpdateQuantity(ctx context.Context, productID string, quantity int) {
	if quantity < 1 {
		return
	}

	c.mu.Lock()
	if idx := indexOfItem(c.items, productID); idx >= 0 {
		c.items[idx].Quantity = quantity
		c.persistLocked()
	}
	c.mu.Unlock()

	if c.authed() {
		c.mirror("update", c.remote.UpdateCartItem(ctx, productID, quantity))
	}
}

// Remove deletes one cart line.
func (c *Cart) Remove(ctx context.Context, productID string) {
	c.mu.Lock()
	kept := c.items[:0]
	for _, item := range c.items {
		if item.ID != productID {
			kept = append(kept, item)
		}
	}
	c.items = kept
	c.persistLocked()
	c.mu.Unlock()

	if c.authed() {
		c.mirror("remove", c.remote.RemoveCartItem(ctx, productID))
	}
}

// Clear empties the cart.
func (c *Cart) Clear(ctx context.Context) {
	c.mu.Lock()
	c.items = nil
	c.persistLocked()
	c.mu.Unlock()

	if c.authed() {
		c.mirror("clear", c.remote.ClearCart(ctx))
	}
}

// Items returns a copy of the current cart snapshot in insertion order.
func (c *Cart) Items() []CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneItems(c.items)
}

// Count returns the total quantity across all lines, computed fresh from the
// current snapshot.
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// Total returns the monetary value of the cart, computed fresh from the
// current snapshot.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0.0
	for _, item := range c.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// Synced reports whether this session's reconciliation has settled.
func (c *Cart) Synced() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.synced
}

func (c *Cart) authed() bool {
	return c.auth != nil && c.auth.IsAuthenticated()
}

func (c *Cart) mirror(op string, err error) {
	if err != nil {
		log.Printf("cart %s mirror failed: %v", op, err)
	}
}

func (c *Cart) persistLocked() {
	if err := c.dir.Write(cartSnapshotName, c.items); err != nil {
		log.Printf("cart persist failed: %v", err)
	}
}

func indexOfItem(items []CartItem, productID string) int {
	for i, item := range items {
		if item.ID == productID {
			return i
		}
	}
	return -1
}

func cloneItems(items []CartItem) []CartItem {
	if len(items) == 0 {
		return nil
	}
	dup := make([]CartItem, len(items))
	copy(dup, items)
	return dup
}
