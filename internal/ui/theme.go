package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// ── Colour palette ───────────────────────────────────────────────────────────

var (
	colBackground = color.NRGBA{R: 15, G: 15, B: 20, A: 255}
	colAccent     = color.NRGBA{R: 99, G: 102, B: 241, A: 255}
	colInput      = color.NRGBA{R: 35, G: 35, B: 50, A: 255}
	colDisabled   = color.NRGBA{R: 80, G: 80, B: 100, A: 255}
	colSeparator  = color.NRGBA{R: 50, G: 50, B: 65, A: 255}
	colSelection  = color.NRGBA{R: 20, G: 30, B: 25, A: 255}
)

// appTheme pins the default theme to one variant; the dark variant also
// applies the app palette.
type appTheme struct {
	dark bool
}

func (t appTheme) variant() fyne.ThemeVariant {
	if t.dark {
		return theme.VariantDark
	}
	return theme.VariantLight
}

func (t appTheme) Color(n fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	if t.dark {
		switch n {
		case theme.ColorNameBackground:
			return colBackground
		case theme.ColorNameButton, theme.ColorNamePrimary:
			return colAccent
		case theme.ColorNameForeground:
			return color.White
		case theme.ColorNameInputBackground:
			return colInput
		case theme.ColorNameDisabled:
			return colDisabled
		case theme.ColorNameSeparator:
			return colSeparator
		case theme.ColorNameSelection:
			return colSelection
		}
	}
	return theme.DefaultTheme().Color(n, t.variant())
}

func (appTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (appTheme) Icon(n fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(n)
}

func (appTheme) Size(n fyne.ThemeSizeName) float32 {
	return theme.DefaultTheme().Size(n)
}
