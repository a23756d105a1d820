package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

const (
	AppIconFile = "prodbar.png"
)

// LoadAppIcon loads the window icon from AppIconFile, falling back to a
// theme icon when the file is not shipped next to the binary
func LoadAppIcon() fyne.Resource {
	res, err := fyne.LoadResourceFromPath(AppIconFile)
	if err != nil {
		return theme.GridIcon()
	}
	return res
}
