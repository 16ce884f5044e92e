package ui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mholtz/tote/internal/basket"
	"github.com/mholtz/tote/internal/shopapi"
)

func (m Model) wishlistItems() []shopapi.Product {
	return m.wishlist.Items()
}

func (m Model) handleWishlistKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.wishlistItems()

	switch msg.String() {
	case "j", "down", "k", "up", "g", "home", "G", "end":
		m.moveSelection(msg.String(), len(items))
		return m, nil

	case "a", "enter":
		if product, ok := m.selectedWishlistItem(items); ok {
			return m, addToCartCmd(m.ctx, m.cart, product)
		}

	case "x", "delete", "f":
		if product, ok := m.selectedWishlistItem(items); ok {
			return m, removeFavoriteCmd(m.ctx, m.wishlist, product)
		}

	case "C":
		if len(items) > 0 {
			return m, clearWishlistCmd(m.ctx, m.wishlist)
		}
	}

	return m, nil
}

func (m Model) selectedWishlistItem(items []shopapi.Product) (shopapi.Product, bool) {
	row := m.selectedRow[ViewWishlist]
	if row < 0 || row >= len(items) {
		return shopapi.Product{}, false
	}
	return items[row], true
}

func (m Model) renderWishlist() string {
	styles := m.theme.Styles()
	items := m.wishlistItems()

	if len(items) == 0 {
		return styles.MutedText.Render("  No favorites yet. Press f on a catalog item to save it here.")
	}

	nameWidth := m.width - 40
	if nameWidth < 16 {
		nameWidth = 16
	}

	var b strings.Builder
	selected := m.selectedRow[ViewWishlist]
	for i, product := range visibleWindow(items, selected, m.contentHeight()) {
		row := strings.Join([]string{
			"  " + styles.DangerText.Render("♥"),
			padRight(product.Name, nameWidth),
			padRight(product.Category.Name, 12),
			padRight(formatPrice(product.Price), 10),
			styles.StockStyle(stockLevel(product.Stock)).Render(stockLabel(product.Stock)),
		}, " ")
		if indexInWindow(len(items), selected, m.contentHeight(), i) == selected {
			row = styles.Selected.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	return b.String()
}

func removeFavoriteCmd(ctx context.Context, wishlist *basket.Wishlist, product shopapi.Product) tea.Cmd {
	return func() tea.Msg {
		wishlist.Remove(ctx, product.ID)
		return mutationMsg{notice: product.Name + " removed from favorites"}
	}
}

func clearWishlistCmd(ctx context.Context, wishlist *basket.Wishlist) tea.Cmd {
	return func() tea.Msg {
		wishlist.Clear(ctx)
		return mutationMsg{notice: "Favorites cleared"}
	}
}
