package ui

import (
	"fyne.io/fyne/v2"
)

const (
	AppIcon = "eizo.png"
)

// LoadAppIcon loads the application icon from the working directory
func LoadAppIcon() (fyne.Resource, error) {
	return fyne.LoadResourceFromPath(AppIcon)
}
