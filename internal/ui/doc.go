package ui

// Package ui is the Fyne host shell: the always-on-top bar window that shows
// the metrics table, the settings window that edits the selection, and the
// theme that applies the user's appearance choices. It implements the views
// the settings controller and render coordinator drive; it holds no
// selection state of its own.
