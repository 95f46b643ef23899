package apptheme

import (
	"image/color"
	"testing"

	"fyne.io/fyne/v2/theme"
)

func TestParseHex(t *testing.T) {
	got := ParseHex("#924040")
	if got != (color.NRGBA{R: 0x92, G: 0x40, B: 0x40, A: 255}) {
		t.Fatalf("unexpected color %v", got)
	}
	if ParseHex("tomato") != (color.NRGBA{A: 255}) {
		t.Fatal("expected black for invalid input")
	}
}

func TestFormatHex(t *testing.T) {
	if got := FormatHex(color.NRGBA{R: 0x05, G: 0x60, B: 0x27, A: 255}); got != "#056027" {
		t.Fatalf("unexpected hex %s", got)
	}
	if got := FormatHex(ParseHex("#3713af")); got != "#3713af" {
		t.Fatalf("expected #3713af, got %s", got)
	}
}

func TestAlphaByte(t *testing.T) {
	if AlphaByte(1) != 255 || AlphaByte(0) != 0 || AlphaByte(2) != 255 || AlphaByte(-1) != 0 {
		t.Fatal("unexpected clamping")
	}
	if AlphaByte(0.4) != 102 {
		t.Fatalf("expected 102, got %d", AlphaByte(0.4))
	}
}

func TestThemePinsVariant(t *testing.T) {
	light := New(false)
	dark := New(true)
	if light.Color(theme.ColorNameBackground, theme.VariantDark) != theme.DefaultTheme().Color(theme.ColorNameBackground, theme.VariantLight) {
		t.Fatal("light theme must ignore the requested variant")
	}
	if dark.Color(theme.ColorNameBackground, theme.VariantLight) != theme.DefaultTheme().Color(theme.ColorNameBackground, theme.VariantDark) {
		t.Fatal("dark theme must ignore the requested variant")
	}
}
