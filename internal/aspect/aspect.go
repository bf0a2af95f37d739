// Package aspect turns pinch gestures into one of three discrete aspect
// modes. Only a pinch that crosses a threshold changes the mode; the band
// between the thresholds keeps whatever mode is current.
package aspect

import "github.com/ytget/eizo/internal/model"

// Pinch thresholds
const (
	DefaultExpandThreshold = 1.05
	DefaultShrinkThreshold = 0.95
)

// Frame ratios used for presentation sizing
const (
	OriginalFrameRatio float32 = 0.5625 // 16:9
)

// Controller holds the sticky aspect mode of one card
type Controller struct {
	mode     model.AspectMode
	expand   float64
	shrink   float64
	pinching bool
	onChange func(model.AspectMode)
}

// NewController creates a controller starting in square mode
func NewController(onChange func(model.AspectMode)) *Controller {
	return &Controller{
		mode:     model.AspectSquare,
		expand:   DefaultExpandThreshold,
		shrink:   DefaultShrinkThreshold,
		onChange: onChange,
	}
}

// SetThresholds overrides the expand and shrink thresholds
func (c *Controller) SetThresholds(expand, shrink float64) {
	if shrink > expand {
		shrink, expand = expand, shrink
	}
	c.expand = expand
	c.shrink = shrink
}

// Mode returns the current aspect mode
func (c *Controller) Mode() model.AspectMode {
	return c.mode
}

// Pinching reports whether a pinch gesture is in progress
func (c *Controller) Pinching() bool {
	return c.pinching
}

// Classify maps a cumulative pinch scale to the mode it selects.
// The second result is false when scale is inside the hysteresis band.
func (c *Controller) Classify(scale float64) (model.AspectMode, bool) {
	switch {
	case scale > c.expand:
		return model.AspectFullBleed, true
	case scale < c.shrink:
		return model.AspectOriginal, true
	default:
		return c.mode, false
	}
}

// Begin starts a pinch gesture. Scale is measured from 1.0 again; no zoom
// is carried over from the previous gesture.
func (c *Controller) Begin() {
	c.pinching = true
}

// Update applies the cumulative scale of the running pinch and reports
// whether the mode changed
func (c *Controller) Update(scale float64) (model.AspectMode, bool) {
	if !c.pinching {
		c.Begin()
	}
	mode, crossed := c.Classify(scale)
	if !crossed {
		return c.mode, false
	}
	return c.set(mode)
}

// End finishes the pinch. The mode stays where the gesture left it.
func (c *Controller) End() {
	c.pinching = false
}

// Set selects a mode directly, e.g. from a key binding
func (c *Controller) Set(mode model.AspectMode) bool {
	_, changed := c.set(mode)
	return changed
}

// Reset returns to square mode, used when the card leaves the foreground
func (c *Controller) Reset() {
	c.pinching = false
	c.set(model.AspectSquare)
}

func (c *Controller) set(mode model.AspectMode) (model.AspectMode, bool) {
	if mode == c.mode {
		return c.mode, false
	}
	c.mode = mode
	if c.onChange != nil {
		c.onChange(mode)
	}
	return c.mode, true
}

// FrameHeight returns the video frame height for a container of w x h
func FrameHeight(mode model.AspectMode, w, h float32) float32 {
	switch mode {
	case model.AspectFullBleed:
		return h
	case model.AspectOriginal:
		return w * OriginalFrameRatio
	default:
		return w
	}
}
