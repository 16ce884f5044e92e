// Package shopapi provides an HTTP client for the storefront REST API.
//
// # Overview
//
// This package defines the API client tote uses to reach the storefront
// backend: authentication, the product catalog, and the identity-scoped cart
// and wishlist collections. It handles HTTP transport, the JSON response
// envelope, and type-safe representation of the API schema.
//
// # Response Envelope
//
// Every endpoint wraps its payload in the same envelope:
//
//	{ "success": bool, "message": string, "data": ... }
//
// The client unwraps the envelope and decodes the data field into the
// caller's type. A response with success=false is surfaced as an error
// carrying the server's message, as is any HTTP status >= 400.
//
// # Endpoints
//
//   - POST /api/auth/login, POST /api/auth/logout
//   - GET  /api/products (plus /category/{id}, /search, /flash-sales)
//   - GET  /api/cart, POST /api/cart/add, PUT /api/cart/update/{id},
//     DELETE /api/cart/remove/{id}, DELETE /api/cart/clear
//   - GET  /api/wishlist, POST /api/wishlist/add/{id},
//     DELETE /api/wishlist/remove/{id}, DELETE /api/wishlist/clear
//
// Cart and wishlist endpoints require authentication. The server creates
// the per-user document lazily on first read, so a fresh account fetches an
// empty collection rather than a 404.
//
// # Request Handling
//
// All requests use context for cancellation, carry Accept and User-Agent
// headers, attach the anonymous X-Client-ID when configured, and send the
// session token as a bearer Authorization header once SetToken has been
// called. The underlying http.Client enforces a 5-second timeout.
//
// # Error Handling
//
// Errors are wrapped with descriptive context using fmt.Errorf:
//
//   - "execute request: dial tcp: connection refused"
//   - "api /api/cart/add returned status 401: Not authorized"
//   - "decode response: unexpected end of JSON input"
//
// Callers in the mutation path treat every error here as non-fatal: local
// state is committed before the remote call and is never rolled back.
//
// # Thread Safety
//
// The Client is safe for concurrent use. The token is guarded by a mutex so
// login/logout can race with in-flight mirror calls without torn reads.
package shopapi
