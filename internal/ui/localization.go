package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyBarTitle        = "bar_title"
	KeySettingsTitle   = "settings_title"
	KeySettings        = "settings"
	KeyQueuesTab       = "queues_tab"
	KeyMetricsTab      = "metrics_tab"
	KeyAppearanceTab   = "appearance_tab"
	KeySelectedQueues  = "selected_queues"
	KeySelectedMetrics = "selected_metrics"
	KeySearchQueues    = "search_queues"
	KeyNoQueuesMatch   = "no_queues_match"
	KeyTheme           = "theme"
	KeyFontSize        = "font_size"
	KeyThemeDark       = "theme_dark"
	KeyThemeLight      = "theme_light"
	KeyFontNormal      = "font_normal"
	KeyFontLarge       = "font_large"
	KeyClose           = "close"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "" || lang == "system" {
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyBarTitle:        BarTitle,
		KeySettingsTitle:   SettingsTitle,
		KeySettings:        "Settings",
		KeyQueuesTab:       "Queues",
		KeyMetricsTab:      "Metrics",
		KeyAppearanceTab:   "Appearance",
		KeySelectedQueues:  "Selected queues",
		KeySelectedMetrics: "Selected metrics",
		KeySearchQueues:    "Search queues...",
		KeyNoQueuesMatch:   "No queues match",
		KeyTheme:           "Theme",
		KeyFontSize:        "Font size",
		KeyThemeDark:       "Dark",
		KeyThemeLight:      "Light",
		KeyFontNormal:      "Normal",
		KeyFontLarge:       "Large",
		KeyClose:           "Close",
	}

	l.texts["ru"] = map[string]string{
		KeyBarTitle:        "Метрики очередей",
		KeySettingsTitle:   "Настройки панели",
		KeySettings:        "Настройки",
		KeyQueuesTab:       "Очереди",
		KeyMetricsTab:      "Метрики",
		KeyAppearanceTab:   "Оформление",
		KeySelectedQueues:  "Выбранные очереди",
		KeySelectedMetrics: "Выбранные метрики",
		KeySearchQueues:    "Поиск очередей...",
		KeyNoQueuesMatch:   "Нет подходящих очередей",
		KeyTheme:           "Тема",
		KeyFontSize:        "Размер шрифта",
		KeyThemeDark:       "Тёмная",
		KeyThemeLight:      "Светлая",
		KeyFontNormal:      "Обычный",
		KeyFontLarge:       "Крупный",
		KeyClose:           "Закрыть",
	}

	l.texts["pt"] = map[string]string{
		KeyBarTitle:        "Métricas das Filas",
		KeySettingsTitle:   "Configurações da Barra",
		KeySettings:        "Configurações",
		KeyQueuesTab:       "Filas",
		KeyMetricsTab:      "Métricas",
		KeyAppearanceTab:   "Aparência",
		KeySelectedQueues:  "Filas selecionadas",
		KeySelectedMetrics: "Métricas selecionadas",
		KeySearchQueues:    "Buscar filas...",
		KeyNoQueuesMatch:   "Nenhuma fila encontrada",
		KeyTheme:           "Tema",
		KeyFontSize:        "Tamanho da fonte",
		KeyThemeDark:       "Escuro",
		KeyThemeLight:      "Claro",
		KeyFontNormal:      "Normal",
		KeyFontLarge:       "Grande",
		KeyClose:           "Fechar",
	}
}
