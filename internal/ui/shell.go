package ui

import (
	"log/slog"

	"fyne.io/fyne/v2"

	"github.com/ytget/prodbar/internal/settings"
)

// Controller is the part of settings.Controller the shell drives
type Controller interface {
	SettingsActions
	ToggleOpen() bool
}

// Shell owns the fyne windows of the application: the bar and the settings
// window. It applies appearance changes and routes notices to whichever
// window is in front.
type Shell struct {
	app      fyne.App
	loc      *Localization
	bar      *BarWindow
	settings *SettingsWindow
	logger   *slog.Logger
}

// NewShell creates both windows. language is a code such as "en", "ru",
// "pt" or "system".
func NewShell(app fyne.App, language string, logger *slog.Logger) *Shell {
	if logger == nil {
		logger = slog.Default()
	}

	loc := NewLocalization()
	loc.SetLanguage(language)

	s := &Shell{
		app:      app,
		loc:      loc,
		bar:      NewBarWindow(app, loc),
		settings: NewSettingsWindow(app, loc),
		logger:   logger,
	}
	s.bar.Window().SetMaster()
	return s
}

// Bar returns the bar window
func (s *Shell) Bar() *BarWindow {
	return s.bar
}

// Settings returns the settings window
func (s *Shell) Settings() *SettingsWindow {
	return s.settings
}

// Localization returns the text catalogue in use
func (s *Shell) Localization() *Localization {
	return s.loc
}

// Bind connects the settings button and the settings window to ctrl
func (s *Shell) Bind(ctrl Controller) {
	s.bar.SetOnSettings(func() {
		ctrl.ToggleOpen()
	})
	s.settings.SetActions(ctrl)
}

// ApplyAppearance switches the application theme and refits the bar
func (s *Shell) ApplyAppearance(a settings.Appearance) {
	th := NewBarTheme(a.Theme, a.FontSize)
	fyne.Do(func() {
		s.app.Settings().SetTheme(th)
	})
	s.bar.SetTextSize(TextSizeFor(a.FontSize))
	s.logger.Debug("appearance applied", "theme", a.Theme, "font_size", a.FontSize)
}

// Notify implements settings.Notifier
func (s *Shell) Notify(n settings.Notice) {
	s.logger.Info("notice", "level", n.Level, "code", n.Code, "message", n.Message)
	if s.settings.Visible() {
		s.settings.ShowNotice(n)
		return
	}
	s.bar.ShowToast(n)
}

// Run shows the bar and blocks until the application quits
func (s *Shell) Run() {
	s.bar.Window().ShowAndRun()
}

// Quit stops the application event loop
func (s *Shell) Quit() {
	fyne.Do(s.app.Quit)
}
