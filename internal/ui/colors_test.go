package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		hex     string
		want    tcell.Color
		wantErr bool
	}{
		{"#3366FF", tcell.NewRGBColor(0x33, 0x66, 0xFF), false},
		{"00ff7f", tcell.NewRGBColor(0x00, 0xFF, 0x7F), false},
		{" #000000 ", tcell.NewRGBColor(0, 0, 0), false},
		{"#FFF", tcell.ColorDefault, true},
		{"#GG0000", tcell.ColorDefault, true},
		{"", tcell.ColorDefault, true},
	}

	for _, tt := range tests {
		got, err := ParseHexColor(tt.hex)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHexColor(%q) error = %v, wantErr %v", tt.hex, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHexColor(%q) = %v, want %v", tt.hex, got, tt.want)
		}
	}
}

func TestColorOr(t *testing.T) {
	if got := ColorOr("", tcell.ColorRed); got != tcell.ColorRed {
		t.Errorf("empty hint = %v, want fallback", got)
	}
	if got := ColorOr("nope", tcell.ColorRed); got != tcell.ColorRed {
		t.Errorf("bad hint = %v, want fallback", got)
	}
	if got := ColorOr("#008000", tcell.ColorRed); got != tcell.NewRGBColor(0, 0x80, 0) {
		t.Errorf("ColorOr(#008000) = %v", got)
	}
}

func TestHPBar(t *testing.T) {
	tests := []struct {
		hp, maxHP int
		want      string
	}{
		{10, 10, "[##########]"},
		{5, 10, "[#####-----]"},
		{0, 10, "[----------]"},
		{1, 100, "[#---------]"},
		{3, 0, "[----------]"},
	}

	for _, tt := range tests {
		if got := hpBar(tt.hp, tt.maxHP, 10); got != tt.want {
			t.Errorf("hpBar(%d, %d) = %q, want %q", tt.hp, tt.maxHP, got, tt.want)
		}
	}
}
