package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle         = "app_title"
	KeySettings         = "settings"
	KeyFile             = "file"
	KeyView             = "view"
	KeyLanguage         = "language"
	KeyShowTranslation  = "show_translation"
	KeyResetCaption     = "reset_caption"
	KeySave             = "save"
	KeyCancel           = "cancel"
	KeySettingsSaved    = "settings_saved"
	KeyLoading          = "loading"
	KeyLoadFailed       = "load_failed"
	KeyRetry            = "retry"
	KeyErrorOpeningLink = "error_opening_link"
	KeyAspectSquare     = "aspect_square"
	KeyAspectFullBleed  = "aspect_full_bleed"
	KeyAspectOriginal   = "aspect_original"
	KeyNextClip         = "next_clip"
	KeyPreviousClip     = "previous_clip"
	KeyDragCaptionHint  = "drag_caption_hint"
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
	if lang == "system" {
		// Use system locale - simplified to English for now
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

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
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

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:         "Eizo",
		KeySettings:         "Settings",
		KeyFile:             "File",
		KeyView:             "View",
		KeyLanguage:         "Language",
		KeyShowTranslation:  "Show translation",
		KeyResetCaption:     "Reset caption position",
		KeySave:             "Save",
		KeyCancel:           "Cancel",
		KeySettingsSaved:    "Settings saved successfully!",
		KeyLoading:          "Loading…",
		KeyLoadFailed:       "Could not load clip",
		KeyRetry:            "Retry",
		KeyErrorOpeningLink: "Error opening link",
		KeyAspectSquare:     "Square",
		KeyAspectFullBleed:  "Fill",
		KeyAspectOriginal:   "Original",
		KeyNextClip:         "Next clip",
		KeyPreviousClip:     "Previous clip",
		KeyDragCaptionHint:  "Drag to move captions",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:         "Эйдзо",
		KeySettings:         "Настройки",
		KeyFile:             "Файл",
		KeyView:             "Вид",
		KeyLanguage:         "Язык",
		KeyShowTranslation:  "Показывать перевод",
		KeyResetCaption:     "Сбросить положение субтитров",
		KeySave:             "Сохранить",
		KeyCancel:           "Отмена",
		KeySettingsSaved:    "Настройки успешно сохранены!",
		KeyLoading:          "Загрузка…",
		KeyLoadFailed:       "Не удалось загрузить клип",
		KeyRetry:            "Повторить",
		KeyErrorOpeningLink: "Ошибка открытия ссылки",
		KeyAspectSquare:     "Квадрат",
		KeyAspectFullBleed:  "Заполнить",
		KeyAspectOriginal:   "Оригинал",
		KeyNextClip:         "Следующий клип",
		KeyPreviousClip:     "Предыдущий клип",
		KeyDragCaptionHint:  "Перетащите субтитры",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:         "Eizo",
		KeySettings:         "Configurações",
		KeyFile:             "Arquivo",
		KeyView:             "Exibir",
		KeyLanguage:         "Idioma",
		KeyShowTranslation:  "Mostrar tradução",
		KeyResetCaption:     "Redefinir posição das legendas",
		KeySave:             "Salvar",
		KeyCancel:           "Cancelar",
		KeySettingsSaved:    "Configurações salvas com sucesso!",
		KeyLoading:          "Carregando…",
		KeyLoadFailed:       "Não foi possível carregar o clipe",
		KeyRetry:            "Tentar novamente",
		KeyErrorOpeningLink: "Erro ao abrir link",
		KeyAspectSquare:     "Quadrado",
		KeyAspectFullBleed:  "Preencher",
		KeyAspectOriginal:   "Original",
		KeyNextClip:         "Próximo clipe",
		KeyPreviousClip:     "Clipe anterior",
		KeyDragCaptionHint:  "Arraste para mover as legendas",
	}
}
