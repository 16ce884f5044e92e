package shopapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, "client-123")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func writeEnvelope(t *testing.T, w http.ResponseWriter, data any) {
	t.Helper()
	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal data: %v", err)
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"message": "ok",
		"data":    json.RawMessage(raw),
	})
}

func TestParseBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"empty uses default", "", "http://127.0.0.1:4000", false},
		{"host and port", "localhost:4000", "http://localhost:4000", false},
		{"full url", "https://shop.example.com", "https://shop.example.com", false},
		{"strips path", "http://shop.example.com/api/", "http://shop.example.com", false},
		{"whitespace trimmed", "  localhost:4000  ", "http://localhost:4000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := parseBaseURL(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseBaseURL(%q): %v", tt.input, err)
			}
			if u.String() != tt.want {
				t.Errorf("parseBaseURL(%q) = %q, want %q", tt.input, u.String(), tt.want)
			}
		})
	}
}

func TestFetchProductsPaths(t *testing.T) {
	tests := []struct {
		name     string
		query    ProductQuery
		wantPath string
		wantQ    string
	}{
		{"all products", ProductQuery{}, "/api/products", ""},
		{"flash sales", ProductQuery{FlashSales: true}, "/api/products/flash-sales", ""},
		{"by category", ProductQuery{CategoryID: "cat1"}, "/api/products/category/cat1", ""},
		{"search", ProductQuery{Search: " lamp "}, "/api/products/search", "lamp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath, gotQ string
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotQ = r.URL.Query().Get("q")
				writeEnvelope(t, w, []Product{{ID: "p1", Name: "Lamp", Price: 25}})
			}))

			products, err := client.FetchProducts(context.Background(), tt.query)
			if err != nil {
				t.Fatalf("FetchProducts: %v", err)
			}
			if gotPath != tt.wantPath {
				t.Errorf("path = %q, want %q", gotPath, tt.wantPath)
			}
			if gotQ != tt.wantQ {
				t.Errorf("q = %q, want %q", gotQ, tt.wantQ)
			}
			if len(products) != 1 || products[0].ID != "p1" {
				t.Errorf("products = %+v, want one product p1", products)
			}
		})
	}
}

func TestRequestHeaders(t *testing.T) {
	var gotAuth, gotClientID, gotAccept string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotClientID = r.Header.Get("X-Client-ID")
		gotAccept = r.Header.Get("Accept")
		writeEnvelope(t, w, CartDocument{})
	}))
	client.SetToken("tok-1")

	if _, err := client.FetchCart(context.Background()); err != nil {
		t.Fatalf("FetchCart: %v", err)
	}

	if gotAuth != "Bearer tok-1" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer tok-1")
	}
	if gotClientID != "client-123" {
		t.Errorf("X-Client-ID = %q, want %q", gotClientID, "client-123")
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept = %q, want %q", gotAccept, "application/json")
	}
}

func TestLogin(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var creds map[string]string
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Errorf("decode credentials: %v", err)
		}
		if creds["email"] != "a@b.c" || creds["password"] != "pw" {
			t.Errorf("credentials = %v", creds)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"message": "ok",
			"token":   "tok-9",
			"data":    map[string]string{"id": "u1", "name": "Alice", "email": "a@b.c", "role": "user"},
		})
	}))

	result, err := client.Login(context.Background(), "a@b.c", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.Token != "tok-9" {
		t.Errorf("Token = %q, want %q", result.Token, "tok-9")
	}
	if result.Identity.Name != "Alice" {
		t.Errorf("Identity.Name = %q, want %q", result.Identity.Name, "Alice")
	}
}

func TestLoginRejected(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "Invalid credentials",
		})
	}))

	_, err := client.Login(context.Background(), "a@b.c", "wrong")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestEnvelopeFailureBecomesError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "Product not found",
		})
	}))

	err := client.AddCartItem(context.Background(), "missing", 1)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestErrorStatusPrefersEnvelopeMessage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "database down",
		})
	}))

	_, err := client.FetchCart(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if got := err.Error(); !strings.Contains(got, "database down") {
		t.Errorf("error = %q, want it to carry the envelope message", got)
	}
}

func TestCartEndpoints(t *testing.T) {
	type call struct{ method, path string }
	var got []call
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, call{r.Method, r.URL.Path})
		writeEnvelope(t, w, nil)
	}))
	ctx := context.Background()

	if err := client.AddCartItem(ctx, "p1", 2); err != nil {
		t.Fatalf("AddCartItem: %v", err)
	}
	if err := client.UpdateCartItem(ctx, "p1", 5); err != nil {
		t.Fatalf("UpdateCartItem: %v", err)
	}
	if err := client.RemoveCartItem(ctx, "p1"); err != nil {
		t.Fatalf("RemoveCartItem: %v", err)
	}
	if err := client.ClearCart(ctx); err != nil {
		t.Fatalf("ClearCart: %v", err)
	}

	want := []call{
		{http.MethodPost, "/api/cart/add"},
		{http.MethodPut, "/api/cart/update/p1"},
		{http.MethodDelete, "/api/cart/remove/p1"},
		{http.MethodDelete, "/api/cart/clear"},
	}
	if len(got) != len(want) {
		t.Fatalf("calls = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("call[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestWishlistEndpoints(t *testing.T) {
	type call struct{ method, path string }
	var got []call
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, call{r.Method, r.URL.Path})
		writeEnvelope(t, w, nil)
	}))
	ctx := context.Background()

	if err := client.AddWishlistItem(ctx, "p1"); err != nil {
		t.Fatalf("AddWishlistItem: %v", err)
	}
	if err := client.RemoveWishlistItem(ctx, "p1"); err != nil {
		t.Fatalf("RemoveWishlistItem: %v", err)
	}
	if err := client.ClearWishlist(ctx); err != nil {
		t.Fatalf("ClearWishlist: %v", err)
	}

	want := []call{
		{http.MethodPost, "/api/wishlist/add/p1"},
		{http.MethodDelete, "/api/wishlist/remove/p1"},
		{http.MethodDelete, "/api/wishlist/clear"},
	}
	if len(got) != len(want) {
		t.Fatalf("calls = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("call[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFetchCartDecodesDocument(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, CartDocument{
			ID:   "c1",
			User: "u1",
			Products: []CartEntry{
				{Product: Product{ID: "p1", Name: "Lamp", Price: 25}, Quantity: 3},
			},
		})
	}))

	doc, err := client.FetchCart(context.Background())
	if err != nil {
		t.Fatalf("FetchCart: %v", err)
	}
	if len(doc.Products) != 1 {
		t.Fatalf("len(Products) = %d, want 1", len(doc.Products))
	}
	entry := doc.Products[0]
	if entry.Product.ID != "p1" || entry.Quantity != 3 {
		t.Errorf("entry = %+v, want p1 x3", entry)
	}
}
