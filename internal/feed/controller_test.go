package feed

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/eizo/internal/model"
)

func clips(n int) []model.Clip {
	out := make([]model.Clip, n)
	for i := range out {
		out[i] = model.Clip{SourceID: fmt.Sprintf("clip-%d", i), Start: 0, End: 10}
	}
	return out
}

func newFeed(t *testing.T, n int) *Controller {
	t.Helper()
	c, err := NewController(clips(n), DefaultConfig())
	require.NoError(t, err)
	return c
}

func swipe(c *Controller, slot int, dx, dy float32) Outcome {
	if !c.BeginSwipe(slot) {
		return Outcome{}
	}
	c.UpdateSwipe(slot, dx/2, dy/2)
	c.UpdateSwipe(slot, dx, dy)
	return c.EndSwipe(slot, dx, dy)
}

func TestNewController_RejectsEmptyFeed(t *testing.T) {
	_, err := NewController(nil, DefaultConfig())
	assert.ErrorIs(t, err, ErrEmptyFeed)
}

func TestSwipe_IntentFeedback(t *testing.T) {
	c := newFeed(t, 3)
	require.True(t, c.BeginSwipe(0))

	tests := []struct {
		dx     float32
		intent model.SwipeIntent
	}{
		{10, model.IntentNone},
		{50, model.IntentNone},
		{51, model.IntentLike},
		{-50, model.IntentNone},
		{-51, model.IntentDislike},
	}

	for _, test := range tests {
		c.UpdateSwipe(0, test.dx, 4)
		slot := c.Slot(0)
		assert.Equal(t, test.intent, slot.Intent, "dx %g", test.dx)
		assert.Equal(t, model.Vec{DX: test.dx, DY: 4}, slot.Offset)
		assert.True(t, slot.Dragging)
	}
}

func TestSwipe_CommitAdvancesIndex(t *testing.T) {
	c := newFeed(t, 5)
	_, err := c.ScrollTo(2)
	require.NoError(t, err)

	var moves [][2]int
	c.OnIndexChanged(func(old, new int) { moves = append(moves, [2]int{old, new}) })

	outcome := swipe(c, 2, 130, 10)
	require.True(t, outcome.Committed)
	assert.Equal(t, model.IntentLike, outcome.Intent)
	assert.Equal(t, model.Vec{DX: 500, DY: 10}, outcome.Target)
	assert.Equal(t, model.PhaseCommitting, c.Slot(2).Phase)
	assert.Equal(t, 2, c.Current(), "index must not move before the settle delay")

	assert.True(t, c.FinishCommit(2))
	assert.Equal(t, 3, c.Current())
	assert.True(t, c.Slot(2).Neutral())
	assert.Equal(t, [][2]int{{2, 3}}, moves)
}

func TestSwipe_CommitLeftFliesOutLeft(t *testing.T) {
	c := newFeed(t, 3)

	outcome := swipe(c, 0, -200, 0)
	require.True(t, outcome.Committed)
	assert.Equal(t, model.IntentDislike, outcome.Intent)
	assert.Equal(t, float32(-500), outcome.Target.DX)
}

func TestSwipe_CommitAtLastIndexSaturates(t *testing.T) {
	c := newFeed(t, 5)
	_, err := c.ScrollTo(4)
	require.NoError(t, err)

	outcome := swipe(c, 4, 130, 10)
	require.True(t, outcome.Committed)

	assert.False(t, c.FinishCommit(4))
	assert.Equal(t, 4, c.Current())
	assert.True(t, c.Slot(4).Neutral())
}

func TestSwipe_BelowThresholdSnapsBack(t *testing.T) {
	c := newFeed(t, 3)

	outcome := swipe(c, 0, 120, 30)
	assert.False(t, outcome.Committed)
	assert.Equal(t, model.Zero, outcome.Target)

	slot := c.Slot(0)
	assert.Equal(t, model.Zero, slot.Offset)
	assert.Equal(t, model.IntentNone, slot.Intent)
	assert.Equal(t, model.PhaseSnapBack, slot.Phase)

	c.FinishSnapBack(0)
	assert.True(t, c.Slot(0).Neutral())
	assert.Equal(t, 0, c.Current())
}

func TestSwipe_SnapBackProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	c := newFeed(t, 3)

	for i := 0; i < 300; i++ {
		dx := (rng.Float32()*2 - 1) * 120
		dy := (rng.Float32()*2 - 1) * 400
		outcome := swipe(c, 0, dx, dy)
		require.False(t, outcome.Committed, "dx %g", dx)

		slot := c.Slot(0)
		assert.Equal(t, model.Zero, slot.Offset)
		assert.Equal(t, model.IntentNone, slot.Intent)
		c.FinishSnapBack(0)
	}
	assert.Equal(t, 0, c.Current())
}

func TestSwipe_IndexMonotonicAndBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	c := newFeed(t, 6)

	prev := c.Current()
	for i := 0; i < 200; i++ {
		dx := (rng.Float32()*2 - 1) * 400
		slot := c.Current()
		outcome := swipe(c, slot, dx, 0)
		if outcome.Committed {
			c.FinishCommit(slot)
		} else {
			c.FinishSnapBack(slot)
		}
		require.GreaterOrEqual(t, c.Current(), prev)
		require.Less(t, c.Current(), c.Len())
		require.GreaterOrEqual(t, c.Current(), 0)
		prev = c.Current()
	}
	assert.Equal(t, 5, c.Current())
}

func TestSwipe_OnlyForegroundSlotAccepts(t *testing.T) {
	c := newFeed(t, 3)

	assert.False(t, c.BeginSwipe(1))
	c.UpdateSwipe(1, 200, 0)
	assert.True(t, c.Slot(1).Neutral())

	assert.Equal(t, Outcome{}, c.EndSwipe(1, 200, 0))
	assert.False(t, c.FinishCommit(1))
}

func TestSwipe_LockedFeedRefusesSwipeAndPaging(t *testing.T) {
	c := newFeed(t, 3)
	c.SetLocked(true)

	assert.False(t, c.BeginSwipe(0))
	_, err := c.Next()
	assert.ErrorIs(t, err, ErrSwipeInProgress)

	c.SetLocked(false)
	assert.True(t, c.BeginSwipe(0))
}

func TestSwipe_NoSecondSwipeWhileCommitting(t *testing.T) {
	c := newFeed(t, 3)
	require.True(t, swipe(c, 0, 300, 0).Committed)

	assert.False(t, c.BeginSwipe(0))
	assert.True(t, c.SwipeInProgress())
}

func TestScroll_RefusedDuringSwipe(t *testing.T) {
	c := newFeed(t, 4)
	require.True(t, c.BeginSwipe(0))

	moved, err := c.ScrollTo(2)
	assert.False(t, moved)
	assert.ErrorIs(t, err, ErrSwipeInProgress)
	assert.Equal(t, 0, c.Current())

	c.CancelSwipe(0)
	moved, err = c.ScrollTo(2)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, 2, c.Current())
}

func TestScroll_ClampsAndPagesBothWays(t *testing.T) {
	c := newFeed(t, 3)

	_, err := c.ScrollTo(10)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Current())

	moved, err := c.Next()
	require.NoError(t, err)
	assert.False(t, moved)

	_, err = c.Previous()
	require.NoError(t, err)
	assert.Equal(t, 1, c.Current())

	_, err = c.ScrollTo(-4)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Current())
}

func TestScroll_NearestPage(t *testing.T) {
	c := newFeed(t, 4)

	assert.Equal(t, 0, c.NearestPage(0, 800))
	assert.Equal(t, 0, c.NearestPage(399, 800))
	assert.Equal(t, 1, c.NearestPage(400, 800))
	assert.Equal(t, 3, c.NearestPage(5000, 800))
	assert.Equal(t, 0, c.NearestPage(-300, 800))
	assert.Equal(t, c.Current(), c.NearestPage(100, 0))

	moved, err := c.SettleScroll(1700, 800)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, 2, c.Current())
}

func TestScroll_ResetsVacatedSlot(t *testing.T) {
	c := newFeed(t, 3)
	require.True(t, c.BeginSwipe(0))
	c.UpdateSwipe(0, 40, 0)
	c.CancelSwipe(0)

	_, err := c.Next()
	require.NoError(t, err)
	assert.True(t, c.Slot(0).Neutral())
}

func TestSlot_Presentation(t *testing.T) {
	slot := Slot{Offset: model.Vec{DX: 100, DY: 50}}
	assert.Equal(t, float32(5), slot.Tilt())
	assert.Equal(t, model.Vec{DX: 100, DY: 20}, slot.RenderOffset())
}
