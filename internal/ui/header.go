package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the top status line: logo, view tabs, cart and
// favorites badges, and session/connection status.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	var left strings.Builder
	left.WriteString(styles.Logo.Render(" tote "))

	tabs := []struct {
		view  View
		label string
	}{
		{ViewCatalog, "1:catalog"},
		{ViewCart, fmt.Sprintf("2:cart(%d)", m.cart.Count())},
		{ViewWishlist, fmt.Sprintf("3:favorites(%d)", m.wishlist.Count())},
	}
	for _, tab := range tabs {
		left.WriteString(" ")
		if tab.view == m.currentView {
			left.WriteString(styles.AccentText.Bold(true).Render(tab.label))
		} else {
			left.WriteString(styles.MutedText.Render(tab.label))
		}
	}

	if total := m.cart.Total(); total > 0 {
		left.WriteString("  ")
		left.WriteString(styles.Text.Render(formatPrice(total)))
	}

	var right []string
	if m.snapshot.IsOffline() {
		right = append(right, styles.DangerText.Render("OFFLINE"))
	}
	if identity, ok := m.session.Identity(); ok {
		name := identity.Name
		if name == "" {
			name = identity.Email
		}
		right = append(right, styles.SuccessText.Render(truncate(name, 24)))
		if m.cart.Synced() && m.wishlist.Synced() {
			right = append(right, styles.InfoText.Render("synced"))
		}
	} else {
		right = append(right, styles.MutedText.Render("guest"))
	}
	if m.notice != "" {
		right = append(right, styles.WarningText.Render(truncate(m.notice, 48)))
	}

	line := left.String()
	status := strings.Join(right, " ")
	pad := m.width - lipgloss.Width(line) - lipgloss.Width(status) - 1
	if pad < 1 {
		pad = 1
	}
	return line + strings.Repeat(" ", pad) + status
}

// renderCommandBar renders the key hint line for the current view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()

	if m.search.active {
		return " " + m.search.input.View()
	}
	if m.search.busy {
		return styles.Footer.Render("searching...")
	}

	var hints []string
	switch m.currentView {
	case ViewCatalog:
		hints = []string{"a add", "f fav", "/ search"}
		if m.searchResults != nil {
			hints = append(hints, "esc back")
		}
	case ViewCart:
		hints = []string{"+/- qty", "x remove", "f fav", "C clear"}
	case ViewWishlist:
		hints = []string{"a add to cart", "x remove", "C clear"}
	}
	hints = append(hints, "tab view", "L "+sessionHint(m), "T theme", "q quit")

	return styles.Footer.Render(strings.Join(hints, "  "))
}

func sessionHint(m Model) string {
	if m.session != nil && m.session.IsAuthenticated() {
		return "logout"
	}
	return "login"
}
