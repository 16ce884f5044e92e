package ui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mholtz/tote/internal/basket"
	"github.com/mholtz/tote/internal/shopapi"
)

// catalogItems returns the products currently shown in the catalog view:
// search results when a search is live, the polled catalog otherwise.
func (m Model) catalogItems() []shopapi.Product {
	if m.searchResults != nil {
		return m.searchResults
	}
	return m.snapshot.Products
}

func (m Model) handleCatalogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.catalogItems()

	switch msg.String() {
	case "j", "down", "k", "up", "g", "home", "G", "end":
		m.moveSelection(msg.String(), len(items))
		return m, nil

	case "a", "enter":
		if product, ok := m.selectedCatalogItem(); ok {
			return m, addToCartCmd(m.ctx, m.cart, product)
		}

	case "f":
		if product, ok := m.selectedCatalogItem(); ok {
			return m, toggleFavoriteCmd(m.ctx, m.wishlist, product)
		}
	}

	return m, nil
}

func (m Model) selectedCatalogItem() (shopapi.Product, bool) {
	items := m.catalogItems()
	row := m.selectedRow[ViewCatalog]
	if row < 0 || row >= len(items) {
		return shopapi.Product{}, false
	}
	return items[row], true
}

func (m Model) renderCatalog() string {
	styles := m.theme.Styles()
	items := m.catalogItems()

	if len(items) == 0 {
		if m.searchResults != nil {
			return styles.MutedText.Render("  No products match your search. Press esc to go back.")
		}
		if m.snapshot.IsOffline() {
			return styles.DangerText.Render("  Shop unreachable. Showing nothing; cart and wishlist still work offline.")
		}
		return styles.MutedText.Render("  No products yet.")
	}

	flashSale := make(map[string]bool, len(m.snapshot.FlashSales))
	for _, p := range m.snapshot.FlashSales {
		flashSale[p.ID] = true
	}

	nameWidth := m.width - 46
	if nameWidth < 16 {
		nameWidth = 16
	}

	var b strings.Builder
	selected := m.selectedRow[ViewCatalog]
	for i, product := range visibleWindow(items, selected, m.contentHeight()) {
		row := renderCatalogRow(styles, product, nameWidth, flashSale[product.ID], m.wishlist.Has(product.ID))
		if indexInWindow(len(items), selected, m.contentHeight(), i) == selected {
			row = styles.Selected.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	return b.String()
}

func renderCatalogRow(styles Styles, product shopapi.Product, nameWidth int, onSale, favorite bool) string {
	parts := []string{
		"  " + padRight(product.Name, nameWidth),
		padRight(product.Category.Name, 12),
		padRight(formatPrice(product.Price), 10),
		styles.StockStyle(stockLevel(product.Stock)).Render(stockLabel(product.Stock)),
	}
	if onSale {
		parts = append(parts, styles.WarningText.Render(" SALE"))
	}
	if favorite {
		parts = append(parts, styles.DangerText.Render(" ♥"))
	}
	return strings.Join(parts, " ")
}

// visibleWindow slices items so the selected row stays on screen.
func visibleWindow(items []shopapi.Product, selected, height int) []shopapi.Product {
	start := windowStart(len(items), selected, height)
	end := start + height
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func windowStart(count, selected, height int) int {
	if count <= height {
		return 0
	}
	start := selected - height/2
	if start < 0 {
		start = 0
	}
	if start > count-height {
		start = count - height
	}
	return start
}

// indexInWindow maps a window-relative index back to the absolute one.
func indexInWindow(count, selected, height, i int) int {
	return windowStart(count, selected, height) + i
}

func addToCartCmd(ctx context.Context, cart *basket.Cart, product shopapi.Product) tea.Cmd {
	return func() tea.Msg {
		cart.Add(ctx, product, 1)
		return mutationMsg{notice: product.Name + " added to cart"}
	}
}

func toggleFavoriteCmd(ctx context.Context, wishlist *basket.Wishlist, product shopapi.Product) tea.Cmd {
	return func() tea.Msg {
		if wishlist.Toggle(ctx, product) {
			return mutationMsg{notice: product.Name + " added to favorites"}
		}
		return mutationMsg{notice: product.Name + " removed from favorites"}
	}
}
