// Package app provides the orchestration layer for the tote application.
//
// # Overview
//
// This package wires together configuration, the API client, the session,
// the cart/wishlist gateways, catalog polling, and the UI. It serves as the
// composition root where all dependencies are initialized and connected;
// business logic lives in the domain packages.
//
// # Initialization Order
//
//  1. Load configuration from ~/.config/tote/config.toml
//  2. Load user preferences (theme, remembered email)
//  3. Resolve the data directory and restore the session snapshot
//  4. Initialize the HTTP client with the restored token and client ID
//  5. Restore the cart and wishlist gateways from their local snapshots
//  6. Subscribe the reconcilers to the session's auth transitions, and
//     trigger them immediately for a session restored from disk
//  7. Launch the background catalog poller and do one synchronous refresh
//  8. Start the TUI and block until the user exits or the context cancels
//
// # Reconciliation Trigger
//
// The reconcilers fire when the session reports an authenticated identity.
// Each gateway enforces its own once-per-run guard, so the trigger itself
// is free to fire on every transition. Reconciliation runs on background
// goroutines; the UI keeps rendering local state while it is in flight.
//
// # Error Handling
//
// Fatal errors (returned from Run): unreadable config, unresolvable data
// directory, malformed API base URL. Everything network-shaped after
// startup is recoverable and only logged: tote is built to run offline
// against its local snapshots.
package app
