package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconClose    = "×"
	IconWarning  = "⚠"
)

// Text fragments
const (
	CountFormat     = "%s (%d/%d)"
	CellPlaceholder = "—"
)

// Window titles
const (
	BarTitle      = "Queue Metrics"
	SettingsTitle = "Bar Settings"
)

// Layout sizing
const (
	SettingsWindowWidth  float32 = 520
	SettingsWindowHeight float32 = 560

	// CellPadding is the horizontal space added around each measured cell
	CellPadding float32 = 16
	// RowGap is the vertical space between rows
	RowGap float32 = 4
	// SettingsButtonWidth is reserved next to the table for the settings button
	SettingsButtonWidth float32 = 36
)

// Text sizes per font size preference
const (
	TextSizeNormal float32 = 13
	TextSizeLarge  float32 = 16
)

// Toast notification sizing and behavior
const (
	ToastWidth    float32 = 300
	ToastHeight   float32 = 64
	ToastMargin   float32 = 8
	ToastAutoHide         = 4 * time.Second
)
