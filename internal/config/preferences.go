package config

import (
	"log/slog"

	"github.com/ytget/prodbar/internal/kvstore"
	"github.com/ytget/prodbar/internal/model"
)

// Preference keys in the key-value store
const (
	KeyTheme    = "prodBarTheme"
	KeyFontSize = "prodBarFontSize"
)

// Preferences manages the user's appearance choices
type Preferences struct {
	storage kvstore.Storage
	logger  *slog.Logger
}

// NewPreferences creates a preferences manager over storage
func NewPreferences(storage kvstore.Storage, logger *slog.Logger) *Preferences {
	if logger == nil {
		logger = slog.Default()
	}
	return &Preferences{storage: storage, logger: logger.With("component", "preferences")}
}

// GetTheme returns the stored theme, or the default
func (p *Preferences) GetTheme() model.Theme {
	var theme model.Theme
	if !p.load(KeyTheme, &theme) {
		return model.DefaultTheme
	}
	return theme.Normalize()
}

// SetTheme stores the theme. Unknown values are stored as the default.
func (p *Preferences) SetTheme(theme model.Theme) error {
	return kvstore.SaveJSON(p.storage, KeyTheme, theme.Normalize())
}

// GetFontSize returns the stored font size, or the default
func (p *Preferences) GetFontSize() model.FontSize {
	var size model.FontSize
	if !p.load(KeyFontSize, &size) {
		return model.DefaultFontSize
	}
	return size.Normalize()
}

// SetFontSize stores the font size. Unknown values are stored as the default.
func (p *Preferences) SetFontSize(size model.FontSize) error {
	return kvstore.SaveJSON(p.storage, KeyFontSize, size.Normalize())
}

// GetThemeOptions returns the selectable themes
func (p *Preferences) GetThemeOptions() []model.Theme {
	return []model.Theme{model.ThemeDark, model.ThemeLight}
}

// GetFontSizeOptions returns the selectable font sizes
func (p *Preferences) GetFontSizeOptions() []model.FontSize {
	return []model.FontSize{model.FontNormal, model.FontLarge}
}

// Reset removes both preferences
func (p *Preferences) Reset() error {
	for _, key := range []string{KeyTheme, KeyFontSize} {
		if err := p.storage.Remove(key); err != nil {
			return err
		}
	}
	return nil
}

func (p *Preferences) load(key string, v any) bool {
	found, err := kvstore.LoadJSON(p.storage, key, v)
	if err != nil {
		p.logger.Warn("ignoring stored preference", "key", key, "error", err)
		return false
	}
	return found
}
