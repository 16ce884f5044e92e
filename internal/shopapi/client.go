package shopapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Catalog defines the read-only product surface consumed by the catalog
// poller and the UI. It is implemented by *Client.
type Catalog interface {
	FetchProducts(ctx context.Context, query ProductQuery) ([]Product, error)
}

var _ Catalog = (*Client)(nil)

// Client talks to the storefront HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	clientID  string

	mu    sync.RWMutex
	token string
}

const (
	defaultAPIBase   = "127.0.0.1:4000"
	defaultUserAgent = "tote/0.1"
	requestTimeout   = 5 * time.Second
)

// NewClient builds a Client for the given API base (host:port or full URL).
// clientID is the browser-scoped anonymous identifier attached to every
// request; it may be empty.
func NewClient(apiBase, clientID string) (*Client, error) {
	base, err := parseBaseURL(apiBase)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
		clientID:  clientID,
	}, nil
}

// SetToken installs the bearer token used for authenticated endpoints.
// An empty token reverts the client to anonymous requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Login exchanges credentials for a session token and identity.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	if c == nil {
		return LoginResult{}, fmt.Errorf("client is nil")
	}
	body := map[string]string{"email": email, "password": password}
	var payload struct {
		envelope
		Token string `json:"token"`
	}
	if err := c.doRaw(ctx, http.MethodPost, "/api/auth/login", body, &payload); err != nil {
		return LoginResult{}, err
	}
	if !payload.Success {
		return LoginResult{}, fmt.Errorf("login rejected: %s", payload.Message)
	}
	var identity Identity
	if len(payload.Data) > 0 {
		if err := json.Unmarshal(payload.Data, &identity); err != nil {
			return LoginResult{}, fmt.Errorf("decode identity: %w", err)
		}
	}
	return LoginResult{Token: payload.Token, Identity: identity}, nil
}

// Logout invalidates the server-side session. The local token is not
// touched; callers clear it regardless of the outcome.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

// FetchProducts retrieves the catalog slice selected by query.
func (c *Client) FetchProducts(ctx context.Context, query ProductQuery) ([]Product, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: "/api/products"}
	switch {
	case query.FlashSales:
		rel.Path = "/api/products/flash-sales"
	case query.CategoryID != "":
		rel.Path = "/api/products/category/" + query.CategoryID
	case strings.TrimSpace(query.Search) != "":
		rel.Path = "/api/products/search"
		values := url.Values{}
		values.Set("q", strings.TrimSpace(query.Search))
		rel.RawQuery = values.Encode()
	}
	var products []Product
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// FetchCart retrieves the authenticated user's cart document. The server
// creates an empty cart on first read, so a missing cart is not an error.
func (c *Client) FetchCart(ctx context.Context) (CartDocument, error) {
	var doc CartDocument
	if err := c.do(ctx, http.MethodGet, "/api/cart", nil, &doc); err != nil {
		return CartDocument{}, err
	}
	return doc, nil
}

// AddCartItem adds or increments a cart line.
func (c *Client) AddCartItem(ctx context.Context, productID string, quantity int) error {
	body := map[string]any{"productId": productID, "quantity": quantity}
	return c.do(ctx, http.MethodPost, "/api/cart/add", body, nil)
}

// UpdateCartItem sets the absolute quantity of a cart line.
func (c *Client) UpdateCartItem(ctx context.Context, productID string, quantity int) error {
	body := map[string]any{"quantity": quantity}
	return c.do(ctx, http.MethodPut, "/api/cart/update/"+productID, body, nil)
}

// RemoveCartItem deletes one cart line.
func (c *Client) RemoveCartItem(ctx context.Context, productID string) error {
	return c.do(ctx, http.MethodDelete, "/api/cart/remove/"+productID, nil, nil)
}

// ClearCart empties the cart document.
func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/cart/clear", nil, nil)
}

// FetchWishlist retrieves the authenticated user's wishlist document.
func (c *Client) FetchWishlist(ctx context.Context) (WishlistDocument, error) {
	var doc WishlistDocument
	if err := c.do(ctx, http.MethodGet, "/api/wishlist", nil, &doc); err != nil {
		return WishlistDocument{}, err
	}
	return doc, nil
}

// AddWishlistItem adds one product to the wishlist.
func (c *Client) AddWishlistItem(ctx context.Context, productID string) error {
	return c.do(ctx, http.MethodPost, "/api/wishlist/add/"+productID, nil, nil)
}

// RemoveWishlistItem deletes one product from the wishlist.
func (c *Client) RemoveWishlistItem(ctx context.Context, productID string) error {
	return c.do(ctx, http.MethodDelete, "/api/wishlist/remove/"+productID, nil, nil)
}

// ClearWishlist empties the wishlist document.
func (c *Client) ClearWishlist(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/wishlist/clear", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, method, rel, body, dest)
}

// doURL executes a request and decodes the envelope's data field into dest.
func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	var payload envelope
	if err := c.doRaw(ctx, method, rel.String(), body, &payload); err != nil {
		return err
	}
	if !payload.Success {
		return fmt.Errorf("api %s rejected: %s", rel.Path, payload.Message)
	}
	if dest == nil || len(payload.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload.Data, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// doRaw executes a request and decodes the full response body into dest.
func (c *Client) doRaw(ctx context.Context, method, path string, body, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	rel, err := url.Parse(path)
	if err != nil {
		return fmt.Errorf("parse path %q: %w", path, err)
	}
	reqURL := c.baseURL.ResolveReference(rel)

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.clientID != "" {
		req.Header.Set("X-Client-ID", c.clientID)
	}
	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		// The API reports failures with an envelope body; prefer its message.
		var failure envelope
		if decodeErr := json.NewDecoder(resp.Body).Decode(&failure); decodeErr == nil && failure.Message != "" {
			return fmt.Errorf("api %s returned status %d: %s", rel.Path, resp.StatusCode, failure.Message)
		}
		return fmt.Errorf("api %s returned status %d", rel.Path, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(apiBase string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBase)
	if trimmed == "" {
		trimmed = defaultAPIBase
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_base %q: %w", apiBase, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
