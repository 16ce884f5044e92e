package ui

import (
	"fmt"
	"strings"
)

// truncate shortens a string to the given limit, adding ellipsis if needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

// formatPrice renders a monetary value the way the storefront does.
func formatPrice(value float64) string {
	return fmt.Sprintf("$%.2f", value)
}

// stockLevel buckets a stock count into the badge levels the themes know.
func stockLevel(stock int) string {
	switch {
	case stock <= 0:
		return "out_of_stock"
	case stock <= 5:
		return "low_stock"
	default:
		return "in_stock"
	}
}

// stockLabel is the human text for a stock bucket.
func stockLabel(stock int) string {
	switch {
	case stock <= 0:
		return "SOLD OUT"
	case stock <= 5:
		return fmt.Sprintf("%d LEFT", stock)
	default:
		return "IN STOCK"
	}
}

// padRight pads value with spaces to width, truncating when longer.
func padRight(value string, width int) string {
	value = truncate(value, width)
	if len([]rune(value)) >= width {
		return value
	}
	return value + strings.Repeat(" ", width-len([]rune(value)))
}
