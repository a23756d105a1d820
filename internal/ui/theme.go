package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"github.com/ytget/prodbar/internal/model"
)

// BarTheme is a compact theme with a fixed light or dark variant and a
// text size taken from the font size preference
type BarTheme struct {
	variant  fyne.ThemeVariant
	textSize float32
}

// NewBarTheme creates the theme for the given appearance
func NewBarTheme(t model.Theme, size model.FontSize) fyne.Theme {
	bt := &BarTheme{variant: theme.VariantDark, textSize: TextSizeNormal}
	if t.Normalize() == model.ThemeLight {
		bt.variant = theme.VariantLight
	}
	if size.Normalize() == model.FontLarge {
		bt.textSize = TextSizeLarge
	}
	return bt
}

// TextSizeFor returns the text size used for a font size preference
func TextSizeFor(size model.FontSize) float32 {
	if size.Normalize() == model.FontLarge {
		return TextSizeLarge
	}
	return TextSizeNormal
}

// Color returns theme colors. The system variant is ignored.
func (t *BarTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameError:
		return color.RGBA{R: 183, G: 28, B: 28, A: 255}
	case theme.ColorNameWarning:
		return color.RGBA{R: 255, G: 193, B: 7, A: 255}
	case theme.ColorNamePrimary:
		return color.RGBA{R: 25, G: 118, B: 210, A: 255}
	case theme.ColorNameBackground:
		if t.variant == theme.VariantDark {
			return color.RGBA{R: 18, G: 18, B: 18, A: 255}
		}
		return color.RGBA{R: 250, G: 250, B: 250, A: 255}
	case theme.ColorNameForeground:
		if t.variant == theme.VariantDark {
			return color.RGBA{R: 255, G: 255, B: 255, A: 255}
		}
		return color.RGBA{R: 33, G: 33, B: 33, A: 255}
	}

	return theme.DefaultTheme().Color(name, t.variant)
}

// Font returns theme fonts
func (t *BarTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *BarTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns compact sizes; text sizes follow the font size preference
func (t *BarTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameLineSpacing:
		return 2
	case theme.SizeNameScrollBar:
		return 12
	case theme.SizeNameText:
		return t.textSize
	case theme.SizeNameHeadingText:
		return t.textSize + 3
	case theme.SizeNameSubHeadingText:
		return t.textSize
	case theme.SizeNameCaptionText:
		return t.textSize - 3
	case theme.SizeNameInputRadius:
		return 3
	case theme.SizeNameSelectionRadius:
		return 2
	}

	return theme.DefaultTheme().Size(name)
}

// Variant returns the forced variant
func (t *BarTheme) Variant() fyne.ThemeVariant {
	return t.variant
}
