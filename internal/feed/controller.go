package feed

import (
	"errors"
	"math"
	"time"

	"github.com/ytget/eizo/internal/model"
)

// Swipe thresholds and animation timing
const (
	DefaultIntentThreshold float32 = 50
	DefaultCommitThreshold float32 = 120
	DefaultFlyOutDistance  float32 = 500

	DefaultCommitSettle   = 300 * time.Millisecond
	DefaultSnapBackSettle = 500 * time.Millisecond
)

// Card presentation while dragging
const (
	VerticalDamping float32 = 0.4
	TiltDivisor     float32 = 20
)

var (
	ErrEmptyFeed       = errors.New("feed requires at least one clip")
	ErrSwipeInProgress = errors.New("swipe in progress")
)

// Config holds the swipe thresholds
type Config struct {
	IntentThreshold float32
	CommitThreshold float32
	FlyOutDistance  float32
	CommitSettle    time.Duration
	SnapBackSettle  time.Duration
}

// DefaultConfig returns the canonical thresholds: commit above 120 px,
// saturate at the last clip
func DefaultConfig() Config {
	return Config{
		IntentThreshold: DefaultIntentThreshold,
		CommitThreshold: DefaultCommitThreshold,
		FlyOutDistance:  DefaultFlyOutDistance,
		CommitSettle:    DefaultCommitSettle,
		SnapBackSettle:  DefaultSnapBackSettle,
	}
}

// Slot is the transient drag state of one card
type Slot struct {
	Offset   model.Vec
	Intent   model.SwipeIntent
	Dragging bool
	Phase    model.SwipePhase
}

// Neutral reports whether the slot carries no transient state
func (s Slot) Neutral() bool {
	return s.Offset.IsZero() && s.Intent == model.IntentNone && !s.Dragging && s.Phase == model.PhaseIdle
}

// Tilt returns the card rotation in degrees for the current offset
func (s Slot) Tilt() float32 {
	return s.Offset.DX / TiltDivisor
}

// RenderOffset returns the on-screen translation with vertical damping
func (s Slot) RenderOffset() model.Vec {
	return model.Vec{DX: s.Offset.DX, DY: s.Offset.DY * VerticalDamping}
}

// Outcome describes how a released swipe resolves
type Outcome struct {
	Committed bool
	Intent    model.SwipeIntent
	Target    model.Vec
	Settle    time.Duration
}

// Controller owns the feed state
type Controller struct {
	clips   []model.Clip
	slots   []Slot
	current int
	cfg     Config
	locked  bool

	onIndexChanged []func(old, new int)
}

// NewController creates a feed over clips, starting at the first clip
func NewController(clips []model.Clip, cfg Config) (*Controller, error) {
	if len(clips) == 0 {
		return nil, ErrEmptyFeed
	}
	return &Controller{
		clips: clips,
		slots: make([]Slot, len(clips)),
		cfg:   cfg,
	}, nil
}

// OnIndexChanged registers a callback fired after the foreground index moves
func (c *Controller) OnIndexChanged(callback func(old, new int)) {
	c.onIndexChanged = append(c.onIndexChanged, callback)
}

// Len returns the number of clips
func (c *Controller) Len() int {
	return len(c.clips)
}

// Current returns the foreground index
func (c *Controller) Current() int {
	return c.current
}

// Config returns the swipe thresholds
func (c *Controller) Config() Config {
	return c.cfg
}

// Clip returns the clip at index i
func (c *Controller) Clip(i int) (model.Clip, bool) {
	if i < 0 || i >= len(c.clips) {
		return model.Clip{}, false
	}
	return c.clips[i], true
}

// CurrentClip returns the foreground clip
func (c *Controller) CurrentClip() model.Clip {
	return c.clips[c.current]
}

// Slot returns the transient state of slot i
func (c *Controller) Slot(i int) Slot {
	if i < 0 || i >= len(c.slots) {
		return Slot{}
	}
	return c.slots[i]
}

// SetLocked suppresses swipes and paging while another recognizer, such
// as the caption overlay, owns input
func (c *Controller) SetLocked(locked bool) {
	c.locked = locked
}

// Locked reports whether input is suppressed
func (c *Controller) Locked() bool {
	return c.locked
}

// SwipeInProgress reports whether any slot is between Idle states
func (c *Controller) SwipeInProgress() bool {
	for _, slot := range c.slots {
		if slot.Phase.InProgress() {
			return true
		}
	}
	return false
}

// CanSwipe reports whether slot i would accept a new swipe
func (c *Controller) CanSwipe(i int) bool {
	return !c.locked && i == c.current && c.slots[i].Phase == model.PhaseIdle
}

// BeginSwipe moves slot i from Idle to Dragging. Only the foreground slot
// accepts the transition.
func (c *Controller) BeginSwipe(i int) bool {
	if !c.CanSwipe(i) {
		return false
	}
	c.slots[i] = Slot{Dragging: true, Phase: model.PhaseDragging}
	return true
}

// UpdateSwipe tracks the raw translation of a dragging slot
func (c *Controller) UpdateSwipe(i int, dx, dy float32) {
	if i != c.current || c.slots[i].Phase != model.PhaseDragging {
		return
	}
	slot := &c.slots[i]
	slot.Offset = model.Vec{DX: dx, DY: dy}
	slot.Intent = c.intentFor(dx)
}

// EndSwipe resolves a released swipe into Committing or SnapBack
func (c *Controller) EndSwipe(i int, dx, dy float32) Outcome {
	if i < 0 || i >= len(c.slots) || c.slots[i].Phase != model.PhaseDragging {
		return Outcome{}
	}
	slot := &c.slots[i]

	if float32(math.Abs(float64(dx))) > c.cfg.CommitThreshold {
		direction := float32(1)
		if dx < 0 {
			direction = -1
		}
		slot.Phase = model.PhaseCommitting
		slot.Offset = model.Vec{DX: direction * c.cfg.FlyOutDistance, DY: dy}
		slot.Intent = c.intentFor(dx)
		return Outcome{
			Committed: true,
			Intent:    slot.Intent,
			Target:    slot.Offset,
			Settle:    c.cfg.CommitSettle,
		}
	}

	slot.Phase = model.PhaseSnapBack
	slot.Offset = model.Zero
	slot.Intent = model.IntentNone
	return Outcome{Target: model.Zero, Settle: c.cfg.SnapBackSettle}
}

// FinishCommit completes a committed swipe: the foreground index advances
// by one, saturating at the last clip, and the vacated slot is reset.
// It returns true when the index moved.
func (c *Controller) FinishCommit(i int) bool {
	if i < 0 || i >= len(c.slots) || c.slots[i].Phase != model.PhaseCommitting {
		return false
	}
	c.slots[i] = Slot{}

	next := min(c.current+1, len(c.clips)-1)
	return c.setCurrent(next)
}

// FinishSnapBack returns a snapped-back slot to Idle
func (c *Controller) FinishSnapBack(i int) {
	if i < 0 || i >= len(c.slots) || c.slots[i].Phase != model.PhaseSnapBack {
		return
	}
	c.slots[i] = Slot{}
}

// CancelSwipe drops any in-progress drag on slot i, e.g. when the gesture
// was canceled by the platform
func (c *Controller) CancelSwipe(i int) {
	if i < 0 || i >= len(c.slots) || c.slots[i].Phase != model.PhaseDragging {
		return
	}
	c.slots[i] = Slot{}
}

// ScrollTo makes index the foreground clip. The index is clamped to the
// feed. Paging is refused while a swipe is in progress.
func (c *Controller) ScrollTo(index int) (bool, error) {
	if c.SwipeInProgress() || c.locked {
		return false, ErrSwipeInProgress
	}
	index = max(0, min(index, len(c.clips)-1))
	return c.setCurrent(index), nil
}

// Next pages forward by one clip
func (c *Controller) Next() (bool, error) {
	return c.ScrollTo(c.current + 1)
}

// Previous pages back by one clip
func (c *Controller) Previous() (bool, error) {
	return c.ScrollTo(c.current - 1)
}

// NearestPage returns the page closest to a vertical scroll offset
func (c *Controller) NearestPage(offsetY, pageHeight float32) int {
	if pageHeight <= 0 {
		return c.current
	}
	page := int(math.Round(float64(offsetY / pageHeight)))
	return max(0, min(page, len(c.clips)-1))
}

// SettleScroll snaps a finished vertical scroll to the nearest page
func (c *Controller) SettleScroll(offsetY, pageHeight float32) (bool, error) {
	return c.ScrollTo(c.NearestPage(offsetY, pageHeight))
}

func (c *Controller) setCurrent(index int) bool {
	if index == c.current {
		return false
	}
	old := c.current
	c.slots[old] = Slot{}
	c.current = index
	for _, callback := range c.onIndexChanged {
		callback(old, index)
	}
	return true
}

func (c *Controller) intentFor(dx float32) model.SwipeIntent {
	switch {
	case dx > c.cfg.IntentThreshold:
		return model.IntentLike
	case dx < -c.cfg.IntentThreshold:
		return model.IntentDislike
	default:
		return model.IntentNone
	}
}
