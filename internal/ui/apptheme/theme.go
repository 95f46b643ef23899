// Package apptheme provides the light/dark appearance and color helpers.
package apptheme

import (
	"image/color"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Theme wraps the default theme and pins its variant.
type Theme struct {
	variant fyne.ThemeVariant
}

// New returns a dark or light theme.
func New(dark bool) *Theme {
	if dark {
		return &Theme{variant: theme.VariantDark}
	}
	return &Theme{variant: theme.VariantLight}
}

// Color returns the default theme color for the pinned variant.
func (appTheme *Theme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return theme.DefaultTheme().Color(name, appTheme.variant)
}

// Font returns the default font.
func (appTheme *Theme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns the default icon.
func (appTheme *Theme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns the default size.
func (appTheme *Theme) Size(name fyne.ThemeSizeName) float32 {
	return theme.DefaultTheme().Size(name)
}

// ParseHex converts #rrggbb to an opaque color. Invalid values give black.
func ParseHex(value string) color.NRGBA {
	hex := strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(hex) != 6 {
		return color.NRGBA{A: 255}
	}
	parsed, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{A: 255}
	}
	return color.NRGBA{
		R: uint8(parsed >> 16),
		G: uint8(parsed >> 8),
		B: uint8(parsed),
		A: 255,
	}
}

// FormatHex converts a color to #rrggbb.
func FormatHex(value color.Color) string {
	nrgba := color.NRGBAModel.Convert(value).(color.NRGBA)
	return "#" + hexByte(nrgba.R) + hexByte(nrgba.G) + hexByte(nrgba.B)
}

// WithAlpha returns value with its alpha replaced by opacity in [0, 1].
func WithAlpha(value color.NRGBA, opacity float64) color.NRGBA {
	value.A = AlphaByte(opacity)
	return value
}

// AlphaByte maps an opacity in [0, 1] to 0..255, clamping out-of-range input.
func AlphaByte(opacity float64) uint8 {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	return uint8(opacity*255 + 0.5)
}

func hexByte(value uint8) string {
	encoded := strconv.FormatUint(uint64(value), 16)
	if len(encoded) == 1 {
		return "0" + encoded
	}
	return encoded
}
