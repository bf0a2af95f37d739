package ui

import (
	"fyne.io/fyne/v2"
)

// Insets are the parts of the canvas covered by system chrome
type Insets struct {
	Top    float32
	Bottom float32
}

// IsMobileDevice checks if the app is running on a mobile device
func IsMobileDevice() bool {
	return fyne.CurrentDevice().IsMobile()
}

// CanvasInsets derives the safe-area insets from the canvas interactive
// area. Desktop canvases report no insets.
func CanvasInsets(c fyne.Canvas) Insets {
	if c == nil {
		return Insets{}
	}
	pos, size := c.InteractiveArea()
	full := c.Size()
	bottom := full.Height - (pos.Y + size.Height)
	if bottom < 0 {
		bottom = 0
	}
	top := pos.Y
	if top < 0 {
		top = 0
	}
	return Insets{Top: top, Bottom: bottom}
}

// IsLandscape returns true if device is in landscape orientation
func IsLandscape() bool {
	orientation := fyne.CurrentDevice().Orientation()
	return orientation == fyne.OrientationHorizontalLeft || orientation == fyne.OrientationHorizontalRight
}
