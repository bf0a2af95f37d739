package config

import (
	"fyne.io/fyne/v2"
)

// Settings keys for Fyne preferences
const (
	KeyOverlayRatio    = "subtitle_position_ratio_y"
	KeyLanguage        = "app_language"
	KeyShowTranslation = "show_translation"
	KeyStartIndex      = "last_clip_index"
)

// Default values
const (
	DefaultOverlayRatio    = 0.5
	DefaultLanguage        = "system"
	DefaultShowTranslation = true
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// OverlayRatio returns the persisted caption overlay ratio in [0, 1]
func (s *Settings) OverlayRatio() float64 {
	ratio := s.app.Preferences().FloatWithFallback(KeyOverlayRatio, DefaultOverlayRatio)
	return clampRatio(ratio)
}

// SetOverlayRatio persists the caption overlay ratio
func (s *Settings) SetOverlayRatio(ratio float64) {
	s.app.Preferences().SetFloat(KeyOverlayRatio, clampRatio(ratio))
}

// ResetOverlayRatio restores the default caption position
func (s *Settings) ResetOverlayRatio() {
	s.app.Preferences().RemoveValue(KeyOverlayRatio)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}

// GetShowTranslation returns whether captions show the translated line
func (s *Settings) GetShowTranslation() bool {
	return s.app.Preferences().BoolWithFallback(KeyShowTranslation, DefaultShowTranslation)
}

// SetShowTranslation sets whether captions show the translated line
func (s *Settings) SetShowTranslation(show bool) {
	s.app.Preferences().SetBool(KeyShowTranslation, show)
}

// GetStartIndex returns the clip index the feed was left on
func (s *Settings) GetStartIndex(count int) int {
	index := s.app.Preferences().Int(KeyStartIndex)
	if index < 0 || index >= count {
		return 0
	}
	return index
}

// SetStartIndex remembers the current clip index
func (s *Settings) SetStartIndex(index int) {
	if index < 0 {
		index = 0
	}
	s.app.Preferences().SetInt(KeyStartIndex, index)
}

func clampRatio(r float64) float64 {
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}
