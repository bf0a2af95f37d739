package gesture

import (
	"fmt"
	"math"
	"time"
)

const (
	// DefaultSlop is the movement that cancels long-press priming
	DefaultSlop float32 = 10
	// DefaultClassifyDistance is the movement after which a gesture is classified
	DefaultClassifyDistance float32 = 20
	// DefaultHorizontalRatio is how much |dx| must dominate |dy| for a swipe
	DefaultHorizontalRatio float32 = 1.5
	// DefaultLongPress is the priming duration for an overlay drag
	DefaultLongPress = time.Second
)

// Claim identifies the recognizer owning the current gesture instance
type Claim int

const (
	ClaimNone Claim = iota
	ClaimOverlay
	ClaimSwipe
	ClaimPinch
	ClaimScroll
	// ClaimRejected marks an instance classified for a recognizer that refused it
	ClaimRejected
)

// String returns the claim name
func (c Claim) String() string {
	switch c {
	case ClaimNone:
		return "none"
	case ClaimOverlay:
		return "overlay"
	case ClaimSwipe:
		return "swipe"
	case ClaimPinch:
		return "pinch"
	case ClaimScroll:
		return "scroll"
	case ClaimRejected:
		return "rejected"
	default:
		return fmt.Sprintf("Claim(%d)", int(c))
	}
}

// Config holds arbiter thresholds
type Config struct {
	Slop             float32
	ClassifyDistance float32
	HorizontalRatio  float32
	LongPress        time.Duration
}

// DefaultConfig returns the default thresholds
func DefaultConfig() Config {
	return Config{
		Slop:             DefaultSlop,
		ClassifyDistance: DefaultClassifyDistance,
		HorizontalRatio:  DefaultHorizontalRatio,
		LongPress:        DefaultLongPress,
	}
}

// Arbiter classifies each gesture instance once and hands it to a single
// target. It is not safe for concurrent use; call it from the UI thread.
type Arbiter struct {
	cfg     Config
	targets Targets

	pressed   bool
	pinchOnly bool
	start     Point
	last      Point
	startAt   time.Time
	claim     Claim
	moved     bool
	priming   bool
	dragging  bool
	onClaim   func(Claim)
}

// NewArbiter creates an arbiter routing to targets
func NewArbiter(targets Targets, cfg Config) *Arbiter {
	d := DefaultConfig()
	if cfg.Slop <= 0 {
		cfg.Slop = d.Slop
	}
	if cfg.ClassifyDistance <= 0 {
		cfg.ClassifyDistance = d.ClassifyDistance
	}
	if cfg.HorizontalRatio <= 0 {
		cfg.HorizontalRatio = d.HorizontalRatio
	}
	if cfg.LongPress <= 0 {
		cfg.LongPress = d.LongPress
	}
	return &Arbiter{cfg: cfg, targets: targets}
}

// SetClaimCallback sets a function called whenever a claim is made
func (a *Arbiter) SetClaimCallback(callback func(Claim)) {
	a.onClaim = callback
}

// Claim returns the owner of the current instance
func (a *Arbiter) Claim() Claim {
	return a.claim
}

// Active reports whether a gesture instance is in progress
func (a *Arbiter) Active() bool {
	return a.pressed || a.pinchOnly
}

// Priming reports whether a press on the overlay awaits the long-press deadline
func (a *Arbiter) Priming() bool {
	return a.priming
}

// Deadline returns when a pending priming press becomes a primed drag
func (a *Arbiter) Deadline() (time.Time, bool) {
	if !a.priming {
		return time.Time{}, false
	}
	return a.startAt.Add(a.cfg.LongPress), true
}

// Down starts a pointer gesture instance
func (a *Arbiter) Down(p Point, at time.Time) {
	if a.pressed {
		a.Cancel()
	}
	if a.pinchOnly {
		a.PinchEnd()
	}
	a.reset()
	a.pressed = true
	a.start = p
	a.last = p
	a.startAt = at
	if a.targets.Overlay != nil && a.targets.Overlay.Contains(p) {
		a.priming = true
	}
}

// Poll fires the long-press deadline and returns the current claim
func (a *Arbiter) Poll(at time.Time) Claim {
	if a.priming && a.claim == ClaimNone && !at.Before(a.startAt.Add(a.cfg.LongPress)) {
		a.priming = false
		a.setClaim(ClaimOverlay)
		a.targets.Overlay.BeginPriming()
	}
	return a.claim
}

// Move feeds a pointer position of the current instance
func (a *Arbiter) Move(p Point, at time.Time) {
	if !a.pressed {
		return
	}
	a.Poll(at)
	a.last = p
	d := p.Sub(a.start)
	dist := length(d)
	if dist > a.cfg.Slop {
		a.moved = true
	}

	switch a.claim {
	case ClaimOverlay:
		if !a.dragging {
			a.dragging = true
			a.targets.Overlay.BeginDrag()
		}
		a.targets.Overlay.DragTo(d.Y)
	case ClaimSwipe:
		a.targets.Swipe.UpdateSwipe(d.X, d.Y)
	case ClaimScroll:
		a.targets.Scroll.UpdateScroll(d.Y)
	case ClaimNone:
		if a.priming && dist > a.cfg.Slop {
			a.priming = false
		}
		if !a.priming && dist > a.cfg.ClassifyDistance {
			a.classify(d)
		}
	}
}

// classify decides between swipe and scroll once per instance
func (a *Arbiter) classify(d Point) {
	ax, ay := abs(d.X), abs(d.Y)
	if ax > a.cfg.HorizontalRatio*ay {
		if a.targets.Swipe != nil && a.targets.Swipe.BeginSwipe() {
			a.setClaim(ClaimSwipe)
			a.targets.Swipe.UpdateSwipe(d.X, d.Y)
			return
		}
		a.setClaim(ClaimRejected)
		return
	}
	if a.targets.Scroll != nil {
		a.setClaim(ClaimScroll)
		a.targets.Scroll.BeginScroll()
		a.targets.Scroll.UpdateScroll(d.Y)
		return
	}
	a.setClaim(ClaimRejected)
}

// Up ends the pointer instance. A release that never moved and was never
// claimed is a tap.
func (a *Arbiter) Up(p Point, at time.Time) {
	if !a.pressed {
		return
	}
	a.Poll(at)
	d := p.Sub(a.start)

	switch a.claim {
	case ClaimOverlay:
		if a.dragging {
			a.targets.Overlay.DragTo(d.Y)
			a.targets.Overlay.EndDrag()
		} else {
			a.targets.Overlay.Cancel()
		}
	case ClaimSwipe:
		a.targets.Swipe.EndSwipe(d.X, d.Y)
	case ClaimScroll:
		a.targets.Scroll.EndScroll(d.Y)
	case ClaimPinch:
		a.targets.Pinch.EndPinch()
	case ClaimNone:
		if !a.moved && length(d) <= a.cfg.Slop && a.targets.Tap != nil {
			a.targets.Tap(p)
		}
	}
	a.reset()
}

// Cancel aborts the current instance without committing anything
func (a *Arbiter) Cancel() {
	switch a.claim {
	case ClaimOverlay:
		a.targets.Overlay.Cancel()
	case ClaimSwipe:
		a.targets.Swipe.CancelSwipe()
	case ClaimScroll:
		a.targets.Scroll.EndScroll(0)
	case ClaimPinch:
		a.targets.Pinch.EndPinch()
	}
	a.reset()
}

// Pinch feeds a cumulative pinch scale. A pinch only claims an instance
// nobody owns yet; without a pressed pointer it forms its own instance.
func (a *Arbiter) Pinch(scale float64) {
	if a.targets.Pinch == nil {
		return
	}
	switch a.claim {
	case ClaimPinch:
		a.targets.Pinch.UpdatePinch(scale)
	case ClaimNone:
		if !a.pressed {
			a.reset()
			a.pinchOnly = true
		}
		a.priming = false
		a.setClaim(ClaimPinch)
		a.targets.Pinch.BeginPinch()
		a.targets.Pinch.UpdatePinch(scale)
	}
}

// PinchEnd ends the pinch. A pointer instance stays claimed until Up.
func (a *Arbiter) PinchEnd() {
	if a.claim != ClaimPinch {
		return
	}
	if a.pressed {
		return
	}
	a.targets.Pinch.EndPinch()
	a.reset()
}

// Wheel forwards a discrete wheel step when no instance is in progress
func (a *Arbiter) Wheel(dy float32) bool {
	if a.Active() || a.targets.Scroll == nil || dy == 0 {
		return false
	}
	a.targets.Scroll.Wheel(dy)
	return true
}

func (a *Arbiter) setClaim(c Claim) {
	a.claim = c
	if a.onClaim != nil {
		a.onClaim(c)
	}
}

func (a *Arbiter) reset() {
	a.pressed = false
	a.pinchOnly = false
	a.claim = ClaimNone
	a.moved = false
	a.priming = false
	a.dragging = false
	a.start = Point{}
	a.last = Point{}
	a.startAt = time.Time{}
}

func length(p Point) float32 {
	return float32(math.Hypot(float64(p.X), float64(p.Y)))
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
