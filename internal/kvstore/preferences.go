package kvstore

import (
	"fyne.io/fyne/v2"
)

// Preferences stores values in the fyne application preferences
type Preferences struct {
	prefs fyne.Preferences
}

// NewPreferences wraps the preferences of a fyne app
func NewPreferences(app fyne.App) *Preferences {
	return &Preferences{prefs: app.Preferences()}
}

// Get returns the value stored under key. An empty string counts as absent.
func (p *Preferences) Get(key string) (string, bool, error) {
	v := p.prefs.String(key)
	return v, v != "", nil
}

// Set stores value under key
func (p *Preferences) Set(key, value string) error {
	p.prefs.SetString(key, value)
	return nil
}

// Remove deletes key
func (p *Preferences) Remove(key string) error {
	p.prefs.RemoveValue(key)
	return nil
}
