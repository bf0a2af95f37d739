package ui

import (
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/eizo/internal/config"
)

// Settings dialog sizing
const (
	SettingsDialogWidth  = 420
	SettingsDialogHeight = 320
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	languageSelect  *widget.Select
	translationChk  *widget.Check
	resetCaptionBtn *widget.Button

	languageCodes  []string
	resetRequested bool
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// ShowSettingsDialog builds and shows the settings dialog
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization, onSaved func()) {
	NewSettingsDialog(settings, localization, window, onSaved).Show()
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	l := sd.localization

	// Language selection, labels shown in their own language
	labels := sd.settings.GetLanguageOptions()
	for code := range labels {
		sd.languageCodes = append(sd.languageCodes, code)
	}
	sort.Strings(sd.languageCodes)
	options := make([]string, 0, len(sd.languageCodes))
	for _, code := range sd.languageCodes {
		options = append(options, labels[code])
	}
	sd.languageSelect = widget.NewSelect(options, nil)

	sd.translationChk = widget.NewCheck(l.GetText(KeyShowTranslation), nil)

	sd.resetCaptionBtn = widget.NewButton(l.GetText(KeyResetCaption), func() {
		sd.resetRequested = true
		sd.resetCaptionBtn.Disable()
	})

	form := container.NewVBox(
		widget.NewLabel(l.GetText(KeyLanguage)+":"),
		sd.languageSelect,
		widget.NewSeparator(),
		sd.translationChk,
		sd.resetCaptionBtn,
	)

	sd.dialog = dialog.NewCustomConfirm(
		l.GetText(KeySettings),
		l.GetText(KeySave),
		l.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	labels := sd.settings.GetLanguageOptions()
	sd.languageSelect.SetSelected(labels[sd.settings.GetLanguage()])
	sd.translationChk.SetChecked(sd.settings.GetShowTranslation())
	sd.resetRequested = false
	sd.resetCaptionBtn.Enable()
}

// selectedLanguage maps the selected label back to its code
func (sd *SettingsDialog) selectedLanguage() string {
	labels := sd.settings.GetLanguageOptions()
	for _, code := range sd.languageCodes {
		if labels[code] == sd.languageSelect.Selected {
			return code
		}
	}
	return ""
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if code := sd.selectedLanguage(); code != "" {
		sd.settings.SetLanguage(code)
	}
	sd.settings.SetShowTranslation(sd.translationChk.Checked)
	if sd.resetRequested {
		sd.settings.ResetOverlayRatio()
	}

	if sd.onSaved != nil {
		sd.onSaved()
	}
}
