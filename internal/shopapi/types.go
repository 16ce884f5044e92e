package shopapi

import (
	"encoding/json"
	"time"
)

// envelope mirrors the response wrapper every storefront endpoint uses.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Product is the denormalized catalog entry returned by the API.
type Product struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    Category `json:"category"`
	Images      []string `json:"images"`
	Stock       int      `json:"stock"`
	CreatedAt   string   `json:"createdAt"`
}

// Category is the populated category reference on a product.
type Category struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// ParsedCreatedAt returns the parsed creation timestamp.
func (p Product) ParsedCreatedAt() time.Time {
	return parseTime(p.CreatedAt)
}

// CartEntry is one line of the server-persisted cart document.
type CartEntry struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// CartDocument mirrors the identity-scoped cart resource. The server creates
// it lazily on first read, so an empty Products slice is the well-defined
// "no cart yet" result.
type CartDocument struct {
	ID        string      `json:"_id"`
	User      string      `json:"user"`
	Products  []CartEntry `json:"products"`
	UpdatedAt string      `json:"updatedAt"`
}

// WishlistDocument mirrors the identity-scoped wishlist resource. Products
// are populated, so each entry carries the full denormalized product.
type WishlistDocument struct {
	ID        string    `json:"_id"`
	User      string    `json:"user"`
	Products  []Product `json:"products"`
	UpdatedAt string    `json:"updatedAt"`
}

// Identity describes the authenticated user as reported by the login
// endpoint.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// LoginResult bundles the session token with the user it belongs to.
type LoginResult struct {
	Token    string
	Identity Identity
}

// ProductQuery configures catalog requests.
type ProductQuery struct {
	CategoryID string
	Search     string
	FlashSales bool
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
