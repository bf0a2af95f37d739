package ui

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"

	"github.com/ytget/eizo/internal/feed"
	"github.com/ytget/eizo/internal/gesture"
)

// Wheel pinch scale limits
const (
	MinWheelScale = 0.5
	MaxWheelScale = 2.0
)

var (
	_ fyne.Draggable    = (*ClipCard)(nil)
	_ fyne.Scrollable   = (*ClipCard)(nil)
	_ desktop.Mouseable = (*ClipCard)(nil)
	_ mobile.Touchable  = (*ClipCard)(nil)
)

func toPoint(p fyne.Position) gesture.Point {
	return gesture.Point{X: p.X, Y: p.Y}
}

// MouseDown starts a gesture on primary button press
func (c *ClipCard) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button == desktop.MouseButtonPrimary {
		c.pointerDown(ev.AbsolutePosition)
	}
}

// MouseUp ends a gesture on primary button release
func (c *ClipCard) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button == desktop.MouseButtonPrimary {
		c.pointerUp(ev.AbsolutePosition)
	}
}

// TouchDown starts a gesture on touch
func (c *ClipCard) TouchDown(ev *mobile.TouchEvent) {
	c.pointerDown(ev.AbsolutePosition)
}

// TouchUp ends a gesture on touch release
func (c *ClipCard) TouchUp(ev *mobile.TouchEvent) {
	c.pointerUp(ev.AbsolutePosition)
}

// TouchCancel abandons the gesture without committing anything
func (c *ClipCard) TouchCancel(*mobile.TouchEvent) {
	c.cancelPointer()
}

// Dragged feeds pointer movement to the arbiter
func (c *ClipCard) Dragged(ev *fyne.DragEvent) {
	if !c.pressed {
		// Drivers that skip the press event still start at the drag origin
		c.pointerDown(ev.AbsolutePosition.Subtract(ev.Dragged))
		if !c.pressed {
			return
		}
	}
	c.lastPos = ev.AbsolutePosition
	c.arbiter.Move(toPoint(ev.AbsolutePosition), time.Now())
}

// DragEnd releases the gesture at the last known position
func (c *ClipCard) DragEnd() {
	c.pointerUp(c.lastPos)
}

// Scrolled pages on wheel, or pinches while Ctrl is held
func (c *ClipCard) Scrolled(ev *fyne.ScrollEvent) {
	if c.view.ctrlHeld {
		c.wheelPinch(ev.Scrolled.DY)
		return
	}
	c.arbiter.Wheel(ev.Scrolled.DY)
}

func (c *ClipCard) pointerDown(abs fyne.Position) {
	if c.pressed || c.onControl(abs) {
		return
	}
	now := time.Now()
	c.pressed = true
	c.lastPos = abs
	c.arbiter.Down(toPoint(abs), now)

	if deadline, ok := c.arbiter.Deadline(); ok {
		c.stopPressTimer()
		c.pressTimer = time.AfterFunc(deadline.Sub(now), func() {
			fyne.Do(func() {
				c.arbiter.Poll(time.Now())
			})
		})
	}
}

func (c *ClipCard) pointerUp(abs fyne.Position) {
	if !c.pressed {
		return
	}
	c.pressed = false
	c.stopPressTimer()
	c.arbiter.Up(toPoint(abs), time.Now())
}

func (c *ClipCard) cancelPointer() {
	c.pressed = false
	c.stopPressTimer()
	c.arbiter.Cancel()
}

func (c *ClipCard) stopPressTimer() {
	if c.pressTimer != nil {
		c.pressTimer.Stop()
		c.pressTimer = nil
	}
}

// wheelPinch turns Ctrl+wheel into a pinch that ends after the wheel idles
func (c *ClipCard) wheelPinch(dy float32) {
	if c.pinchTimer == nil {
		c.wheelScale = 1
	} else {
		c.pinchTimer.Stop()
	}
	c.wheelScale *= 1 + float64(dy)*PinchWheelFactor
	if c.wheelScale < MinWheelScale {
		c.wheelScale = MinWheelScale
	}
	if c.wheelScale > MaxWheelScale {
		c.wheelScale = MaxWheelScale
	}
	c.arbiter.Pinch(c.wheelScale)

	c.pinchTimer = time.AfterFunc(PinchIdleTimeout, func() {
		fyne.Do(func() {
			c.pinchTimer = nil
			c.arbiter.PinchEnd()
		})
	})
}

// absPosition returns the card's absolute canvas position
func (c *ClipCard) absPosition() fyne.Position {
	app := fyne.CurrentApp()
	if app == nil {
		return c.Position()
	}
	return app.Driver().AbsolutePositionForObject(c)
}

// onControl reports whether abs hits one of the card's buttons
func (c *ClipCard) onControl(abs fyne.Position) bool {
	local := abs.Subtract(c.absPosition())
	for _, obj := range []fyne.CanvasObject{c.linkBtn, c.retryBtn} {
		if obj.Visible() && within(local, obj.Position(), obj.Size()) {
			return true
		}
	}
	return false
}

func within(p, pos fyne.Position, size fyne.Size) bool {
	return p.X >= pos.X && p.X <= pos.X+size.Width && p.Y >= pos.Y && p.Y <= pos.Y+size.Height
}

// swipeTarget adapts a card to the horizontal swipe recognizer
type swipeTarget struct{ c *ClipCard }

func (t swipeTarget) BeginSwipe() bool {
	return t.c.view.feed.BeginSwipe(t.c.index)
}

func (t swipeTarget) UpdateSwipe(dx, dy float32) {
	f := t.c.view.feed
	f.UpdateSwipe(t.c.index, dx, dy)
	t.c.setDisplay(f.Slot(t.c.index).RenderOffset())
}

func (t swipeTarget) EndSwipe(dx, dy float32) {
	t.c.view.settleSwipe(t.c, t.c.view.feed.EndSwipe(t.c.index, dx, dy))
}

func (t swipeTarget) CancelSwipe() {
	t.c.view.feed.CancelSwipe(t.c.index)
	t.c.animateDisplay(feed.Slot{}.RenderOffset(), t.c.view.feed.Config().SnapBackSettle)
}

// overlayTarget adapts a card's caption positioner to the long-press recognizer
type overlayTarget struct{ c *ClipCard }

func (t overlayTarget) Contains(p gesture.Point) bool {
	c := t.c
	if !c.captionPanel.Visible() {
		return false
	}
	local := fyne.NewPos(p.X, p.Y).Subtract(c.absPosition())
	return within(local, c.captionPanel.Position(), c.captionPanel.Size())
}

func (t overlayTarget) BeginPriming() {
	t.c.positioner.BeginPriming()
}

func (t overlayTarget) BeginDrag() {
	t.c.positioner.BeginDrag()
}

func (t overlayTarget) DragTo(translationY float32) {
	t.c.positioner.DragTo(translationY)
	t.c.Refresh()
}

func (t overlayTarget) EndDrag() {
	if ratio, ok := t.c.positioner.EndDrag(); ok {
		t.c.view.onOverlayRatioSaved(t.c, ratio)
	}
}

func (t overlayTarget) Cancel() {
	t.c.positioner.Cancel()
}

// pinchTarget adapts a card's aspect controller to the pinch recognizer
type pinchTarget struct{ c *ClipCard }

func (t pinchTarget) BeginPinch() {
	t.c.aspect.Begin()
}

func (t pinchTarget) UpdatePinch(scale float64) {
	t.c.aspect.Update(scale)
}

func (t pinchTarget) EndPinch() {
	t.c.aspect.End()
}
