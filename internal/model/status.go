package model

// Theme is the colour scheme of the bar
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// DefaultTheme is used when nothing valid is stored
const DefaultTheme = ThemeDark

// String returns the string representation of Theme
func (t Theme) String() string {
	return string(t)
}

// Normalize maps anything other than "light" to the dark theme
func (t Theme) Normalize() Theme {
	if t == ThemeLight {
		return ThemeLight
	}
	return ThemeDark
}

// FontSize is the text size preset of the bar
type FontSize string

const (
	FontNormal FontSize = "normal"
	FontLarge  FontSize = "large"
)

// DefaultFontSize is used when nothing valid is stored
const DefaultFontSize = FontNormal

// String returns the string representation of FontSize
func (f FontSize) String() string {
	return string(f)
}

// Normalize maps anything other than "large" to the normal size
func (f FontSize) Normalize() FontSize {
	if f == FontLarge {
		return FontLarge
	}
	return FontNormal
}

// SessionState is the state of the settings view
type SessionState string

const (
	// SessionClosed means the settings view is hidden
	SessionClosed SessionState = "closed"

	// SessionOpen means the settings view is visible and its lists are live
	SessionOpen SessionState = "open"
)

// String returns the string representation of SessionState
func (s SessionState) String() string {
	return string(s)
}

// IsOpen returns true if the settings view is visible
func (s SessionState) IsOpen() bool {
	return s == SessionOpen
}

// Size is a measured width and height in device independent pixels
type Size struct {
	Width  float32
	Height float32
}

// Add grows the size by the same padding on both axes
func (s Size) Add(padding float32) Size {
	return Size{Width: s.Width + padding, Height: s.Height + padding}
}

// Clamp limits the size to min on both axes and to max where max is positive
func (s Size) Clamp(min, max Size) Size {
	out := s
	if out.Width < min.Width {
		out.Width = min.Width
	}
	if out.Height < min.Height {
		out.Height = min.Height
	}
	if max.Width > 0 && out.Width > max.Width {
		out.Width = max.Width
	}
	if max.Height > 0 && out.Height > max.Height {
		out.Height = max.Height
	}
	return out
}
