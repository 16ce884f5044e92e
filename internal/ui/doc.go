// Package ui provides the terminal user interface for tote.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program with a single root Model. All domain
// state lives in the collaborating packages (catalog, basket, session);
// the Model keeps only presentation state such as the active view,
// cursor positions, the last catalog snapshot, and the open form.
//
// # Package Structure
//
// The package is organized into focused modules:
//
//   - app.go: Root Model, key dispatch, messages, commands, and Run
//   - catalog_view.go: Product table, scrolling window, add/favorite commands
//   - cart_view.go: Cart table with quantity controls and running total
//   - wishlist_view.go: Favorites table
//   - search.go: Catalog search input ("/" to open, enter to query)
//   - login.go: Login form and the sign-in command
//   - header.go: Status line and per-view command bar
//   - theme.go: Theme palettes and pre-built Lipgloss styles
//
// # View Types
//
// Three views are cycled with tab or selected with 1/2/3:
//
//   - Catalog: Polled product list with flash-sale and stock badges
//   - Cart: Line items with quantities and a total
//   - Favorites: Saved products, one keypress away from the cart
//
// # Mutations
//
// Every cart and wishlist keypress issues a tea.Cmd that calls into the
// basket package and resolves to a mutationMsg. The basket commits
// locally before mirroring to the shop, so the views always reflect the
// new state on the very next render regardless of network health.
package ui
