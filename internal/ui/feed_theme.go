package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Custom color names used by the clip cards
const (
	ColorNameLike          fyne.ThemeColorName = "eizoLike"
	ColorNameDislike       fyne.ThemeColorName = "eizoDislike"
	ColorNameFrame         fyne.ThemeColorName = "eizoFrame"
	ColorNameCaptionPanel  fyne.ThemeColorName = "eizoCaptionPanel"
	ColorNameCaptionActive fyne.ThemeColorName = "eizoCaptionActive"
	ColorNameProgressTrack fyne.ThemeColorName = "eizoProgressTrack"
)

// FeedTheme is a dark, video-first theme. The feed always renders dark
// regardless of the system variant.
type FeedTheme struct{}

// NewFeedTheme creates a new feed theme
func NewFeedTheme() fyne.Theme {
	return &FeedTheme{}
}

// Color returns theme colors
func (t *FeedTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case ColorNameLike:
		return color.RGBA{R: 46, G: 200, B: 96, A: 230}
	case ColorNameDislike:
		return color.RGBA{R: 229, G: 57, B: 53, A: 230}
	case ColorNameFrame:
		return color.RGBA{R: 38, G: 40, B: 48, A: 255}
	case ColorNameCaptionPanel:
		return color.RGBA{R: 0, G: 0, B: 0, A: 150}
	case ColorNameCaptionActive:
		return color.RGBA{R: 25, G: 118, B: 210, A: 190}
	case ColorNameProgressTrack:
		return color.RGBA{R: 255, G: 255, B: 255, A: 60}
	case theme.ColorNameError:
		return color.RGBA{R: 183, G: 28, B: 28, A: 255}
	case theme.ColorNamePrimary:
		return color.RGBA{R: 25, G: 118, B: 210, A: 255}
	case theme.ColorNameBackground:
		return color.Black
	case theme.ColorNameForeground:
		return color.White
	}

	return theme.DefaultTheme().Color(name, theme.VariantDark)
}

// Font returns theme fonts
func (t *FeedTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *FeedTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes
func (t *FeedTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 14
	case theme.SizeNameHeadingText:
		return 18
	case theme.SizeNameCaptionText:
		return 11
	case theme.SizeNameInputRadius:
		return 8
	}

	return theme.DefaultTheme().Size(name)
}

// themeColor resolves name against the current app theme
func themeColor(name fyne.ThemeColorName) color.Color {
	return fyne.CurrentApp().Settings().Theme().Color(name, theme.VariantDark)
}
