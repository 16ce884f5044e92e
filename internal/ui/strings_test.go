package ui

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		value string
		limit int
		want  string
	}{
		{"shorter than limit", "lamp", 10, "lamp"},
		{"exactly at limit", "lamp", 4, "lamp"},
		{"over limit", "floor lamp deluxe", 10, "floor l..."},
		{"tiny limit", "lamp", 2, "la"},
		{"zero limit returns input", "lamp", 0, "lamp"},
		{"trims whitespace", "  lamp  ", 10, "lamp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.value, tt.limit); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.value, tt.limit, got, tt.want)
			}
		})
	}
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0, "$0.00"},
		{25, "$25.00"},
		{19.99, "$19.99"},
		{1234.5, "$1234.50"},
	}

	for _, tt := range tests {
		if got := formatPrice(tt.value); got != tt.want {
			t.Errorf("formatPrice(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestStockLevel(t *testing.T) {
	tests := []struct {
		stock int
		want  string
	}{
		{-1, "out_of_stock"},
		{0, "out_of_stock"},
		{1, "low_stock"},
		{5, "low_stock"},
		{6, "in_stock"},
		{100, "in_stock"},
	}

	for _, tt := range tests {
		if got := stockLevel(tt.stock); got != tt.want {
			t.Errorf("stockLevel(%d) = %q, want %q", tt.stock, got, tt.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 5); got != "ab   " {
		t.Errorf("padRight = %q, want %q", got, "ab   ")
	}
	if got := padRight("abcdefgh", 5); got != "ab..." {
		t.Errorf("padRight = %q, want %q", got, "ab...")
	}
}

func TestNextThemeCycles(t *testing.T) {
	seen := map[string]bool{}
	name := themeOrder[0]
	for range themeOrder {
		seen[name] = true
		name = NextTheme(name)
	}
	if name != themeOrder[0] {
		t.Errorf("cycle ended at %q, want %q", name, themeOrder[0])
	}
	if len(seen) != len(themeOrder) {
		t.Errorf("visited %d themes, want %d", len(seen), len(themeOrder))
	}
}

func TestGetThemeUnknownFallsBack(t *testing.T) {
	theme := GetTheme("NoSuchTheme")
	if theme.Name != "Nightfox" {
		t.Errorf("Name = %q, want Nightfox fallback", theme.Name)
	}
}
