package gesture

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder implements every target and logs calls in order
type recorder struct {
	calls       []string
	acceptSwipe bool
	overlayTop  float32
	overlayBot  float32
}

func (r *recorder) log(format string, args ...interface{}) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) BeginSwipe() bool           { r.log("swipe.begin"); return r.acceptSwipe }
func (r *recorder) UpdateSwipe(dx, dy float32) { r.log("swipe.update(%g,%g)", dx, dy) }
func (r *recorder) EndSwipe(dx, dy float32)    { r.log("swipe.end(%g,%g)", dx, dy) }
func (r *recorder) CancelSwipe()               { r.log("swipe.cancel") }

func (r *recorder) Contains(p Point) bool       { return p.Y >= r.overlayTop && p.Y <= r.overlayBot }
func (r *recorder) BeginPriming()               { r.log("overlay.priming") }
func (r *recorder) BeginDrag()                  { r.log("overlay.drag") }
func (r *recorder) DragTo(translationY float32) { r.log("overlay.to(%g)", translationY) }
func (r *recorder) EndDrag()                    { r.log("overlay.end") }
func (r *recorder) Cancel()                     { r.log("overlay.cancel") }

func (r *recorder) BeginPinch()               { r.log("pinch.begin") }
func (r *recorder) UpdatePinch(scale float64) { r.log("pinch.update(%g)", scale) }
func (r *recorder) EndPinch()                 { r.log("pinch.end") }

func (r *recorder) BeginScroll()            { r.log("scroll.begin") }
func (r *recorder) UpdateScroll(dy float32) { r.log("scroll.update(%g)", dy) }
func (r *recorder) EndScroll(dy float32)    { r.log("scroll.end(%g)", dy) }
func (r *recorder) Wheel(dy float32)        { r.log("scroll.wheel(%g)", dy) }

func newTestArbiter() (*Arbiter, *recorder) {
	r := &recorder{acceptSwipe: true, overlayTop: 400, overlayBot: 460}
	a := NewArbiter(Targets{
		Swipe:   r,
		Overlay: r,
		Pinch:   r,
		Scroll:  r,
		Tap:     func(p Point) { r.log("tap") },
	}, DefaultConfig())
	return a, r
}

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func after(d time.Duration) time.Time { return t0.Add(d) }

func TestArbiter_HorizontalSwipe(t *testing.T) {
	a, r := newTestArbiter()

	a.Down(Point{100, 100}, t0)
	a.Move(Point{110, 102}, after(10*time.Millisecond))
	assert.Equal(t, ClaimNone, a.Claim())

	a.Move(Point{130, 105}, after(20*time.Millisecond))
	assert.Equal(t, ClaimSwipe, a.Claim())

	a.Move(Point{230, 110}, after(30*time.Millisecond))
	a.Up(Point{230, 110}, after(40*time.Millisecond))

	assert.Equal(t, []string{
		"swipe.begin",
		"swipe.update(30,5)",
		"swipe.update(130,10)",
		"swipe.end(130,10)",
	}, r.calls)
	assert.False(t, a.Active())
}

func TestArbiter_VerticalScroll(t *testing.T) {
	a, r := newTestArbiter()

	a.Down(Point{100, 100}, t0)
	a.Move(Point{110, 70}, after(10*time.Millisecond))
	a.Move(Point{112, 0}, after(20*time.Millisecond))
	a.Up(Point{112, -20}, after(30*time.Millisecond))

	assert.Equal(t, []string{
		"scroll.begin",
		"scroll.update(-30)",
		"scroll.update(-100)",
		"scroll.end(-120)",
	}, r.calls)
}

func TestArbiter_ClassificationIsExclusive(t *testing.T) {
	a, r := newTestArbiter()

	a.Down(Point{100, 100}, t0)
	a.Move(Point{100, 130}, after(10*time.Millisecond))
	require.Equal(t, ClaimScroll, a.Claim())

	// later horizontal movement never turns a scroll into a swipe
	a.Move(Point{400, 130}, after(20*time.Millisecond))
	assert.Equal(t, ClaimScroll, a.Claim())
	assert.NotContains(t, r.calls, "swipe.begin")
}

func TestArbiter_DiagonalIsScroll(t *testing.T) {
	a, _ := newTestArbiter()

	a.Down(Point{0, 0}, t0)
	a.Move(Point{28, 20}, after(10*time.Millisecond))

	assert.Equal(t, ClaimScroll, a.Claim())
}

func TestArbiter_RefusedSwipeRejectsInstance(t *testing.T) {
	a, r := newTestArbiter()
	r.acceptSwipe = false

	a.Down(Point{100, 100}, t0)
	a.Move(Point{160, 100}, after(10*time.Millisecond))
	a.Up(Point{160, 100}, after(20*time.Millisecond))

	assert.Equal(t, ClaimNone, a.Claim())
	assert.Equal(t, []string{"swipe.begin"}, r.calls)
}

func TestArbiter_Tap(t *testing.T) {
	a, r := newTestArbiter()

	a.Down(Point{100, 100}, t0)
	a.Move(Point{103, 102}, after(50*time.Millisecond))
	a.Up(Point{103, 102}, after(100*time.Millisecond))

	assert.Equal(t, []string{"tap"}, r.calls)
}

func TestArbiter_ShortPressOnOverlayIsTap(t *testing.T) {
	a, r := newTestArbiter()

	a.Down(Point{100, 430}, t0)
	assert.True(t, a.Priming())
	a.Up(Point{100, 430}, after(300*time.Millisecond))

	assert.Equal(t, []string{"tap"}, r.calls)
}

func TestArbiter_OverlayLongPressDrag(t *testing.T) {
	a, r := newTestArbiter()

	a.Down(Point{100, 430}, t0)
	deadline, ok := a.Deadline()
	require.True(t, ok)
	assert.Equal(t, after(time.Second), deadline)

	assert.Equal(t, ClaimNone, a.Poll(after(900*time.Millisecond)))
	assert.Equal(t, ClaimOverlay, a.Poll(after(time.Second)))

	// a primed overlay outranks a horizontal swipe
	a.Move(Point{300, 400}, after(1100*time.Millisecond))
	a.Move(Point{300, 350}, after(1200*time.Millisecond))
	a.Up(Point{300, 340}, after(1300*time.Millisecond))

	assert.Equal(t, []string{
		"overlay.priming",
		"overlay.drag",
		"overlay.to(-30)",
		"overlay.to(-80)",
		"overlay.to(-90)",
		"overlay.end",
	}, r.calls)
}

func TestArbiter_OverlayPrimedWithoutDragCancels(t *testing.T) {
	a, r := newTestArbiter()

	a.Down(Point{100, 430}, t0)
	a.Up(Point{100, 430}, after(1500*time.Millisecond))

	assert.Equal(t, []string{"overlay.priming", "overlay.cancel"}, r.calls)
}

func TestArbiter_MovementCancelsPriming(t *testing.T) {
	a, r := newTestArbiter()

	a.Down(Point{100, 430}, t0)
	a.Move(Point{115, 430}, after(200*time.Millisecond))
	assert.False(t, a.Priming())

	assert.Equal(t, ClaimNone, a.Poll(after(2*time.Second)))
	a.Move(Point{140, 432}, after(2100*time.Millisecond))
	assert.Equal(t, ClaimSwipe, a.Claim())
	assert.NotContains(t, r.calls, "overlay.priming")
}

func TestArbiter_PinchClaimsOnlyUnclaimed(t *testing.T) {
	a, r := newTestArbiter()

	a.Down(Point{100, 100}, t0)
	a.Move(Point{140, 100}, after(10*time.Millisecond))
	require.Equal(t, ClaimSwipe, a.Claim())

	a.Pinch(1.2)
	assert.Equal(t, ClaimSwipe, a.Claim())
	assert.NotContains(t, r.calls, "pinch.begin")
}

func TestArbiter_PinchDuringPress(t *testing.T) {
	a, r := newTestArbiter()

	a.Down(Point{100, 100}, t0)
	a.Pinch(1.1)
	a.Pinch(1.2)
	a.PinchEnd()
	assert.Equal(t, ClaimPinch, a.Claim())

	// pointer movement after a pinch claim is ignored
	a.Move(Point{200, 100}, after(10*time.Millisecond))
	a.Up(Point{200, 100}, after(20*time.Millisecond))

	assert.Equal(t, []string{"pinch.begin", "pinch.update(1.1)", "pinch.update(1.2)", "pinch.end"}, r.calls)
}

func TestArbiter_PinchOnlyInstance(t *testing.T) {
	a, r := newTestArbiter()

	a.Pinch(0.9)
	assert.True(t, a.Active())
	a.PinchEnd()
	assert.False(t, a.Active())

	assert.Equal(t, []string{"pinch.begin", "pinch.update(0.9)", "pinch.end"}, r.calls)
}

func TestArbiter_Wheel(t *testing.T) {
	a, r := newTestArbiter()

	assert.True(t, a.Wheel(-3))
	assert.False(t, a.Wheel(0))

	a.Down(Point{0, 0}, t0)
	assert.False(t, a.Wheel(-3))

	assert.Equal(t, []string{"scroll.wheel(-3)"}, r.calls)
}

func TestArbiter_CancelAbortsSwipe(t *testing.T) {
	a, r := newTestArbiter()

	a.Down(Point{0, 0}, t0)
	a.Move(Point{50, 0}, after(10*time.Millisecond))
	a.Cancel()

	assert.Equal(t, "swipe.cancel", r.calls[len(r.calls)-1])
	assert.False(t, a.Active())
}

func TestArbiter_ClaimCallback(t *testing.T) {
	a, _ := newTestArbiter()
	var claims []Claim
	a.SetClaimCallback(func(c Claim) { claims = append(claims, c) })

	a.Down(Point{0, 0}, t0)
	a.Move(Point{50, 0}, after(10*time.Millisecond))

	assert.Equal(t, []Claim{ClaimSwipe}, claims)
	assert.Equal(t, "swipe", ClaimSwipe.String())
}
