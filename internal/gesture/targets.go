package gesture

// Point is a pointer position in container coordinates
type Point struct {
	X, Y float32
}

// Sub returns p - q
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// SwipeTarget receives horizontal swipes
type SwipeTarget interface {
	// BeginSwipe reports whether the swipe is accepted
	BeginSwipe() bool
	UpdateSwipe(dx, dy float32)
	EndSwipe(dx, dy float32)
	CancelSwipe()
}

// OverlayTarget receives long-press-then-drag of the caption overlay
type OverlayTarget interface {
	// Contains reports whether p hits the overlay
	Contains(p Point) bool
	BeginPriming()
	BeginDrag()
	DragTo(translationY float32)
	EndDrag()
	Cancel()
}

// PinchTarget receives pinch scale updates
type PinchTarget interface {
	BeginPinch()
	UpdatePinch(scale float64)
	EndPinch()
}

// ScrollTarget receives vertical paging
type ScrollTarget interface {
	BeginScroll()
	UpdateScroll(dy float32)
	EndScroll(dy float32)
	// Wheel pages by a discrete wheel step
	Wheel(dy float32)
}

// Targets bundles the recognizers an arbiter routes to. Nil members are
// never claimed.
type Targets struct {
	Swipe   SwipeTarget
	Overlay OverlayTarget
	Pinch   PinchTarget
	Scroll  ScrollTarget
	Tap     func(p Point)
}
