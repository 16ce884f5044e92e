package ui

import (
	"context"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mholtz/tote/internal/basket"
)

func (m Model) cartItems() []basket.CartItem {
	return m.cart.Items()
}

func (m Model) handleCartKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.cartItems()

	switch msg.String() {
	case "j", "down", "k", "up", "g", "home", "G", "end":
		m.moveSelection(msg.String(), len(items))
		return m, nil

	case "+", "=":
		if item, ok := m.selectedCartItem(items); ok {
			return m, updateQuantityCmd(m.ctx, m.cart, item.ID, item.Quantity+1)
		}

	case "-":
		if item, ok := m.selectedCartItem(items); ok {
			// Quantity clamps at 1; removal is explicit.
			return m, updateQuantityCmd(m.ctx, m.cart, item.ID, item.Quantity-1)
		}

	case "x", "delete":
		if item, ok := m.selectedCartItem(items); ok {
			return m, removeFromCartCmd(m.ctx, m.cart, item.ID, item.Name)
		}

	case "f":
		if item, ok := m.selectedCartItem(items); ok {
			return m, toggleFavoriteCmd(m.ctx, m.wishlist, item.Product)
		}

	case "C":
		if len(items) > 0 {
			return m, clearCartCmd(m.ctx, m.cart)
		}
	}

	return m, nil
}

func (m Model) selectedCartItem(items []basket.CartItem) (basket.CartItem, bool) {
	row := m.selectedRow[ViewCart]
	if row < 0 || row >= len(items) {
		return basket.CartItem{}, false
	}
	return items[row], true
}

func (m Model) renderCart() string {
	styles := m.theme.Styles()
	items := m.cartItems()

	if len(items) == 0 {
		return styles.MutedText.Render("  Your cart is empty. Browse the catalog and press a to add items.")
	}

	nameWidth := m.width - 40
	if nameWidth < 16 {
		nameWidth = 16
	}

	var b strings.Builder
	selected := m.selectedRow[ViewCart]
	height := m.contentHeight() - 1 // keep one line for the total
	if height < 1 {
		height = 1
	}

	start := windowStart(len(items), selected, height)
	end := start + height
	if end > len(items) {
		end = len(items)
	}
	for i := start; i < end; i++ {
		item := items[i]
		row := strings.Join([]string{
			"  " + padRight(item.Name, nameWidth),
			padRight(formatPrice(item.Price), 10),
			padRight(quantityLabel(item.Quantity), 8),
			formatPrice(item.Price * float64(item.Quantity)),
		}, " ")
		if i == selected {
			row = styles.Selected.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	b.WriteString(styles.AccentText.Render("  Total: " + formatPrice(m.cart.Total())))
	return b.String()
}

func quantityLabel(quantity int) string {
	return "x" + strconv.Itoa(quantity)
}

func updateQuantityCmd(ctx context.Context, cart *basket.Cart, productID string, quantity int) tea.Cmd {
	return func() tea.Msg {
		cart.UpdateQuantity(ctx, productID, quantity)
		return mutationMsg{}
	}
}

func removeFromCartCmd(ctx context.Context, cart *basket.Cart, productID, name string) tea.Cmd {
	return func() tea.Msg {
		cart.Remove(ctx, productID)
		return mutationMsg{notice: name + " removed from cart"}
	}
}

func clearCartCmd(ctx context.Context, cart *basket.Cart) tea.Cmd {
	return func() tea.Msg {
		cart.Clear(ctx)
		return mutationMsg{notice: "Cart cleared"}
	}
}
