package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// ParseHexColor converts a "#RRGGBB" (or "RRGGBB") display hint to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color %q: want 6 digits", hex)
	}

	rgb, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return tcell.NewHexColor(int32(rgb)), nil
}

// ColorOr returns the colour named by a combatant's hint, or fallback when
// the hint is empty or malformed.
func ColorOr(hint string, fallback tcell.Color) tcell.Color {
	if hint == "" {
		return fallback
	}
	c, err := ParseHexColor(hint)
	if err != nil {
		return fallback
	}
	return c
}
