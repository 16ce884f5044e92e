package basket

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/mholtz/tote/internal/localstore"
	"github.com/mholtz/tote/internal/shopapi"
)

func testDir(t *testing.T) localstore.Dir {
	t.Helper()
	dir, err := localstore.NewDir(t.TempDir())
	if err != nil {
		t.Fatalf("NewDir: %v", err)
	}
	return dir
}

func product(id string, price float64) shopapi.Product {
	return shopapi.Product{ID: id, Name: "Product " + id, Price: price, Stock: 10}
}

// fakeAuth is a static authentication signal.
type fakeAuth struct {
	authed bool
}

func (f fakeAuth) IsAuthenticated() bool { return f.authed }

func (f fakeAuth) Identity() (shopapi.Identity, bool) {
	if !f.authed {
		return shopapi.Identity{}, false
	}
	return shopapi.Identity{ID: "u1", Name: "Test User"}, true
}

// fakeRemote records every call in order and can fail selectively.
type fakeRemote struct {
	mu  sync.Mutex
	ops []string

	cart     shopapi.CartDocument
	wishlist shopapi.WishlistDocument

	fetchErr error
	failOps  map[string]error
}

func (f *fakeRemote) record(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, op)
	if err, ok := f.failOps[op]; ok {
		return err
	}
	return nil
}

func (f *fakeRemote) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	dup := make([]string, len(f.ops))
	copy(dup, f.ops)
	return dup
}

func (f *fakeRemote) FetchCart(context.Context) (shopapi.CartDocument, error) {
	_ = f.record("fetch")
	return f.cart, f.fetchErr
}

func (f *fakeRemote) AddCartItem(_ context.Context, productID string, quantity int) error {
	return f.record(fmt.Sprintf("add %s x%d", productID, quantity))
}

func (f *fakeRemote) UpdateCartItem(_ context.Context, productID string, quantity int) error {
	return f.record(fmt.Sprintf("update %s x%d", productID, quantity))
}

func (f *fakeRemote) RemoveCartItem(_ context.Context, productID string) error {
	return f.record("remove " + productID)
}

func (f *fakeRemote) ClearCart(context.Context) error {
	return f.record("clear")
}

func (f *fakeRemote) FetchWishlist(context.Context) (shopapi.WishlistDocument, error) {
	_ = f.record("fetch")
	return f.wishlist, f.fetchErr
}

func (f *fakeRemote) AddWishlistItem(_ context.Context, productID string) error {
	return f.record("add " + productID)
}

func (f *fakeRemote) RemoveWishlistItem(_ context.Context, productID string) error {
	return f.record("remove " + productID)
}

func (f *fakeRemote) ClearWishlist(context.Context) error {
	return f.record("clear")
}

var errRemote = errors.New("remote unavailable")
