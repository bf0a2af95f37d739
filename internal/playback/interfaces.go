package playback

import (
	"context"
	"errors"

	"github.com/ytget/eizo/internal/model"
)

// ErrNotLoaded is returned by surfaces queried before a source is loaded
var ErrNotLoaded = errors.New("no source loaded")

// Surface is an embedded playback surface. All values cross as primitives.
type Surface interface {
	// Load loads sourceID and starts playback at start seconds
	Load(ctx context.Context, sourceID string, start float64) error
	// Seek jumps to an absolute media time in seconds
	Seek(seconds float64) error
	// SetStyle applies a presentation-only style without reloading
	SetStyle(mode string) error
	// SetPaused pauses or resumes playback
	SetPaused(paused bool) error
	// CurrentTime returns the media time in seconds
	CurrentTime() (float64, error)
	// Close releases the surface
	Close() error
}

// SurfaceFactory creates a fresh surface for the slot identified by id
type SurfaceFactory func(id string) (Surface, error)

// Controller defines the host-side API of the bridge
type Controller interface {
	Show(slot int, clip model.Clip) Handle
	Hide(slot int) bool
	Sync(visible map[int]model.Clip)
	Load(h Handle) bool
	SetAspect(slot int, mode model.AspectMode) bool
	SetPaused(slot int, paused bool) bool
	Rewind(slot int) bool
	State(slot int) (State, bool)
	Events() <-chan Event
	Apply(ev Event) (State, bool)
	Close()
}
