// Package overlay places the caption overlay vertically inside a card.
//
// The only persisted value is a normalized ratio in [0, 1] held by a
// RatioStore shared by every card. Absolute positions are derived from the
// ratio and the current container geometry on every layout pass and are
// always clamped so the overlay stays clear of the system insets and the
// bottom navigation area.
package overlay

import "math"

// Layout constants
const (
	DefaultTopMargin             float32 = 30
	DefaultReservedControlHeight float32 = 220
	DefaultEdgePadding           float32 = 16
	DefaultRatio                         = 0.5
)

// RatioStore persists the global vertical overlay ratio
type RatioStore interface {
	OverlayRatio() float64
	SetOverlayRatio(ratio float64)
}

// Geometry describes the container the overlay lives in
type Geometry struct {
	Width       float32
	Height      float32
	TopInset    float32
	BottomInset float32
}

// Valid reports whether the geometry has a usable size
func (g Geometry) Valid() bool {
	return g.Width > 0 && g.Height > 0
}

// Placement is the derived overlay center
type Placement struct {
	X     float32
	Y     float32
	Known bool // false until geometry is available
}

// State is the overlay interaction state
type State int

const (
	StateIdle State = iota
	StatePriming
	StateDragging
)

// Positioner computes and clamps the overlay center for one card
type Positioner struct {
	store RatioStore

	TopMargin             float32
	ReservedControlHeight float32
	EdgePadding           float32

	geometry      Geometry
	overlayH      float32
	y             float32
	state         State
	dragStartY    float32
	onStateChange func(State)
}

// NewPositioner creates a positioner reading and writing ratios via store
func NewPositioner(store RatioStore) *Positioner {
	return &Positioner{
		store:                 store,
		TopMargin:             DefaultTopMargin,
		ReservedControlHeight: DefaultReservedControlHeight,
		EdgePadding:           DefaultEdgePadding,
	}
}

// SetStateCallback registers a callback fired on every state transition
func (p *Positioner) SetStateCallback(callback func(State)) {
	p.onStateChange = callback
}

// State returns the current interaction state
func (p *Positioner) State() State {
	return p.state
}

// Exclusive reports whether the overlay owns input for the card. While
// true, swipe and scroll must be suppressed.
func (p *Positioner) Exclusive() bool {
	return p.state != StateIdle
}

// Bounds returns the allowed range for the overlay center Y
func (p *Positioner) Bounds() (float32, float32) {
	halfHeight := float32(math.Max(float64(p.overlayH/2), 1))
	yMin := p.geometry.TopInset + p.TopMargin
	yMax := p.geometry.Height - (p.geometry.BottomInset + p.ReservedControlHeight + halfHeight + p.EdgePadding)
	return yMin, yMax
}

// Clamp limits y to the current bounds. When the container is too small
// for both bounds the upper one wins so the overlay stays above the
// navigation area.
func (p *Positioner) Clamp(y float32) float32 {
	yMin, yMax := p.Bounds()
	return float32(math.Min(math.Max(float64(y), float64(yMin)), float64(yMax)))
}

// SetGeometry updates the container geometry and re-derives the position
// from the stored ratio. During a drag the position is only re-clamped.
func (p *Positioner) SetGeometry(g Geometry) {
	if g == p.geometry {
		return
	}
	p.geometry = g
	if p.state == StateDragging {
		p.y = p.Clamp(p.y)
		return
	}
	p.rederive()
}

// SetOverlaySize updates the overlay height, which moves the lower bound
func (p *Positioner) SetOverlaySize(height float32) {
	if height == p.overlayH {
		return
	}
	p.overlayH = height
	if p.state == StateDragging {
		p.y = p.Clamp(p.y)
		return
	}
	p.rederive()
}

// Refresh re-derives the position from the store, e.g. after another card
// persisted a new ratio
func (p *Positioner) Refresh() {
	if p.state == StateIdle {
		p.rederive()
	}
}

// Placement returns the overlay center. X is always the horizontal center.
func (p *Positioner) Placement() Placement {
	if !p.geometry.Valid() {
		return Placement{}
	}
	return Placement{X: p.geometry.Width / 2, Y: p.y, Known: true}
}

// BeginPriming starts the long-press phase that precedes a drag
func (p *Positioner) BeginPriming() {
	if p.state != StateIdle {
		return
	}
	p.setState(StatePriming)
}

// BeginDrag accepts translations from now on
func (p *Positioner) BeginDrag() {
	if p.state == StateDragging {
		return
	}
	if p.state == StateIdle {
		p.setState(StatePriming)
	}
	p.dragStartY = p.y
	p.setState(StateDragging)
}

// DragTo moves the overlay by the cumulative vertical translation of the
// current drag. Horizontal movement is ignored.
func (p *Positioner) DragTo(translationY float32) {
	if p.state != StateDragging || !p.geometry.Valid() {
		return
	}
	p.y = p.Clamp(p.dragStartY + translationY)
}

// EndDrag finishes the drag and persists the new ratio. It returns the
// stored ratio and whether anything was persisted.
func (p *Positioner) EndDrag() (float64, bool) {
	wasDragging := p.state == StateDragging
	p.setState(StateIdle)
	if !wasDragging || !p.geometry.Valid() {
		return 0, false
	}
	ratio := clampRatio(float64(p.y / p.geometry.Height))
	p.store.SetOverlayRatio(ratio)
	return ratio, true
}

// Cancel abandons priming or dragging without persisting anything and
// restores the position from the stored ratio
func (p *Positioner) Cancel() {
	if p.state == StateIdle {
		return
	}
	p.setState(StateIdle)
	p.rederive()
}

func (p *Positioner) rederive() {
	if !p.geometry.Valid() {
		return
	}
	ratio := clampRatio(p.store.OverlayRatio())
	p.y = p.Clamp(p.geometry.Height * float32(ratio))
}

func (p *Positioner) setState(state State) {
	if p.state == state {
		return
	}
	p.state = state
	if p.onStateChange != nil {
		p.onStateChange(state)
	}
}

func clampRatio(r float64) float64 {
	if math.IsNaN(r) {
		return DefaultRatio
	}
	return math.Min(math.Max(r, 0), 1)
}
