package playback

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/ytget/eizo/internal/logging"
	"github.com/ytget/eizo/internal/model"
)

type slotEntry struct {
	state  State
	runner *runner
	cancel context.CancelFunc
}

// Bridge keeps one playback surface per visible slot
type Bridge struct {
	factory SurfaceFactory
	cfg     Config
	logger  *slog.Logger

	mu       sync.RWMutex
	slots    map[int]*slotEntry
	byHandle map[Handle]*slotEntry
	closed   bool

	events chan Event
	wg     sync.WaitGroup

	onUpdate func(State)
}

// NewBridge creates a bridge that builds surfaces with factory
func NewBridge(factory SurfaceFactory, cfg Config, logger *slog.Logger) *Bridge {
	if logger == nil {
		logger = slog.Default()
	}
	cfg = cfg.withDefaults()
	return &Bridge{
		factory:  factory,
		cfg:      cfg,
		logger:   logger,
		slots:    make(map[int]*slotEntry),
		byHandle: make(map[Handle]*slotEntry),
		events:   make(chan Event, cfg.EventBuffer),
	}
}

// SetUpdateCallback sets the function called after Apply changes a state
func (b *Bridge) SetUpdateCallback(callback func(State)) {
	b.onUpdate = callback
}

// Events returns the channel carrying runner events to the host
func (b *Bridge) Events() <-chan Event {
	return b.events
}

// Show makes slot visible with clip. Showing the same clip again is a
// no-op; a different clip replaces the previous surface.
func (b *Bridge) Show(slot int, clip model.Clip) Handle {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ""
	}

	if entry, ok := b.slots[slot]; ok {
		if sameClip(entry.state.Clip, clip) {
			return entry.state.Handle
		}
		b.hideLocked(slot)
	}

	h := newHandle()
	ctx, cancel := context.WithCancel(context.Background())
	r := newRunner(h, clip, b.factory, b.cfg, b.events, logging.WithSlot(b.logger, slot))

	entry := &slotEntry{
		state: State{
			Handle:      h,
			Slot:        slot,
			Clip:        clip,
			CurrentTime: clip.Start,
			Aspect:      model.AspectSquare,
			Visible:     true,
			Status:      model.SurfaceLoading,
		},
		runner: r,
		cancel: cancel,
	}
	b.slots[slot] = entry
	b.byHandle[h] = entry

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		r.run(ctx)
	}()

	b.logger.Debug("slot shown", "slot", slot, "handle", string(h), "source_id", clip.SourceID)
	return h
}

// Hide tears down the surface of slot and drops its state
func (b *Bridge) Hide(slot int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hideLocked(slot)
}

func (b *Bridge) hideLocked(slot int) bool {
	entry, ok := b.slots[slot]
	if !ok {
		return false
	}
	entry.cancel()
	delete(b.slots, slot)
	delete(b.byHandle, entry.state.Handle)
	b.logger.Debug("slot hidden", "slot", slot, "handle", string(entry.state.Handle))
	return true
}

// Sync reconciles the visible slots with visible
func (b *Bridge) Sync(visible map[int]model.Clip) {
	b.mu.RLock()
	var stale []int
	for slot, entry := range b.slots {
		clip, ok := visible[slot]
		if !ok || !sameClip(entry.state.Clip, clip) {
			stale = append(stale, slot)
		}
	}
	b.mu.RUnlock()

	for _, slot := range stale {
		b.Hide(slot)
	}
	for slot, clip := range visible {
		b.Show(slot, clip)
	}
}

// Load asks the runner of h to load its source. It is ignored when the
// source is already loaded and is the way to retry after a failure.
func (b *Bridge) Load(h Handle) bool {
	b.mu.RLock()
	entry, ok := b.byHandle[h]
	b.mu.RUnlock()
	if !ok {
		return false
	}
	return entry.runner.enqueue(command{kind: cmdLoad})
}

// SetAspect changes the presentation style of slot without reloading
func (b *Bridge) SetAspect(slot int, mode model.AspectMode) bool {
	b.mu.Lock()
	entry, ok := b.slots[slot]
	if ok {
		entry.state.Aspect = mode
	}
	b.mu.Unlock()
	if !ok {
		return false
	}
	return entry.runner.enqueue(command{kind: cmdStyle, aspect: mode})
}

// SetPaused pauses or resumes slot
func (b *Bridge) SetPaused(slot int, paused bool) bool {
	b.mu.Lock()
	entry, ok := b.slots[slot]
	if ok {
		entry.state.Paused = paused
	}
	b.mu.Unlock()
	if !ok {
		return false
	}
	return entry.runner.enqueue(command{kind: cmdPause, paused: paused})
}

// Rewind seeks slot back to its loop start, used when the card leaves the
// foreground but stays visible. The time reset arrives as a time event.
func (b *Bridge) Rewind(slot int) bool {
	b.mu.Lock()
	entry, ok := b.slots[slot]
	b.mu.Unlock()
	if !ok {
		return false
	}
	return entry.runner.enqueue(command{kind: cmdRewind})
}

// State returns a copy of the state of slot
func (b *Bridge) State(slot int) (State, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	entry, ok := b.slots[slot]
	if !ok {
		return State{}, false
	}
	return entry.state, true
}

// VisibleSlots returns the number of slots with a live surface
func (b *Bridge) VisibleSlots() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.slots)
}

// Apply folds ev into the state it belongs to. Events from surfaces that
// are no longer visible are dropped.
func (b *Bridge) Apply(ev Event) (State, bool) {
	b.mu.Lock()
	entry, ok := b.byHandle[ev.Handle]
	if !ok {
		b.mu.Unlock()
		return State{}, false
	}

	switch ev.Kind {
	case EventTimeUpdate:
		entry.state.CurrentTime = ev.Time
	case EventStatus:
		entry.state.Status = ev.Status
		entry.state.LastError = ""
		if ev.Err != nil {
			entry.state.LastError = ev.Err.Error()
		}
	}
	state := entry.state
	b.mu.Unlock()

	b.notifyUpdate(state)
	return state, true
}

// Close hides every slot and waits for all runners to exit
func (b *Bridge) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	for slot := range b.slots {
		b.hideLocked(slot)
	}
	b.mu.Unlock()

	b.wg.Wait()
}

// notifyUpdate calls the update callback if set
func (b *Bridge) notifyUpdate(state State) {
	if b.onUpdate != nil {
		b.onUpdate(state)
	}
}

func sameClip(a, b model.Clip) bool {
	return a.SourceID == b.SourceID && a.Start == b.Start && a.End == b.End
}

func newHandle() Handle {
	id, err := uuid.NewV7()
	if err != nil {
		return Handle(uuid.NewString())
	}
	return Handle(id.String())
}

var _ Controller = (*Bridge)(nil)
